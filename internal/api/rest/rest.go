package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-minter/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Public read access
		v1.GET("/collection", handler.GetCollection)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/wallets/:address", handler.GetWallet)
		v1.GET("/auction/price", handler.GetAuctionPrice)
		v1.GET("/receipts", handler.ListReceipts)

		// Mints are made on behalf of the authenticated caller
		mint := v1.Group("/mint", middleware.Auth(authCfg))
		{
			mint.POST("", handler.Mint)
			mint.POST("/whitelist", handler.WhitelistMint)
			mint.POST("/auction", handler.DutchAuctionMint)
		}

		admin := v1.Group("/admin", middleware.Auth(authCfg))
		{
			admin.POST("/mint", handler.AdminMint)
			admin.PUT("/stage", handler.SetStage)
			admin.PUT("/cost", handler.SetCost)
			admin.PUT("/max-mint-amount", handler.SetMaxMintAmount)
			admin.PUT("/max-mint-amount-per-tx", handler.SetMaxMintAmountPerTx)
			admin.PUT("/max-whitelist-mint-amount", handler.SetMaxWhitelistMintAmount)
			admin.PUT("/merkle-root", handler.SetMerkleRoot)
			admin.POST("/whitelist", handler.AddToWhitelist)
			admin.PUT("/revealed", handler.SetRevealed)
			admin.PUT("/base-uri", handler.SetBaseURI)
			admin.PUT("/hidden-base-uri", handler.SetHiddenBaseURI)
			admin.PUT("/auction", handler.SetDutchAuction)
			admin.PUT("/auction/start-time", handler.SetDutchAuctionStartTime)
			admin.POST("/withdraw", handler.Withdraw)
		}
	}
}
