package rest

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/api/rest/dto"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/executor"
	"github.com/feral-file/ff-minter/internal/minter"
	"github.com/feral-file/ff-minter/internal/store/schema"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetCollection returns the public state of the collection
	// GET /api/v1/collection
	GetCollection(c *gin.Context)

	// GetToken returns the owner and metadata URI of a minted token
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// GetWallet returns the tokens and allowances of an address
	// GET /api/v1/wallets/:address
	GetWallet(c *gin.Context)

	// GetAuctionPrice returns the current dutch auction price
	// GET /api/v1/auction/price
	GetAuctionPrice(c *gin.Context)

	// ListReceipts lists stored mint receipts, newest first
	// GET /api/v1/receipts?holder=<address>&kind=<kind>&limit=<limit>&offset=<offset>
	ListReceipts(c *gin.Context)

	// Mint mints during the public sale (requires authentication)
	// POST /api/v1/mint
	Mint(c *gin.Context)

	// WhitelistMint mints during the presale (requires authentication)
	// POST /api/v1/mint/whitelist
	WhitelistMint(c *gin.Context)

	// DutchAuctionMint mints during the dutch auction (requires authentication)
	// POST /api/v1/mint/auction
	DutchAuctionMint(c *gin.Context)

	AdminHandler

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	contract minter.Contract
	executor executor.Executor
	json     adapter.JSON
}

// NewHandler creates a new REST API handler. Reads go to the contract,
// mints go through the executor so they are recorded.
func NewHandler(contract minter.Contract, exec executor.Executor, jsonAdapter adapter.JSON) Handler {
	return &handler{
		contract: contract,
		executor: exec,
		json:     jsonAdapter,
	}
}

func (h *handler) GetCollection(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapStatusToDTO(h.contract.Status()))
}

func (h *handler) GetToken(c *gin.Context) {
	id, err := parseTokenID(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid token ID", err.Error())
		return
	}

	owner, err := h.contract.OwnerOf(id)
	if err != nil {
		respondContractError(c, err)
		return
	}

	uri, err := h.contract.TokenURI(id)
	if err != nil {
		respondContractError(c, err)
		return
	}

	resp := dto.TokenResponse{
		TokenID:  id,
		Owner:    owner.Hex(),
		TokenURI: uri,
	}

	receipt, err := h.executor.GetTokenReceipt(c.Request.Context(), id)
	if err != nil {
		respondDatabaseError(c, err, "Failed to get token receipt", zap.Uint64("token_id", uint64(id)))
		return
	}
	if receipt != nil {
		r, err := h.mapReceipt(receipt)
		if err != nil {
			respondDatabaseError(c, err, "Failed to read token receipt", zap.String("receipt_id", receipt.ID))
			return
		}
		resp.Receipt = &r
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetWallet(c *gin.Context) {
	addr, err := domain.ParseAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.MapWalletToDTO(h.contract, addr))
}

func (h *handler) GetAuctionPrice(c *gin.Context) {
	price, err := h.contract.CurrentPrice()
	if errors.Is(err, domain.ErrInvalidAuctionParams) {
		respondNotFound(c, "Dutch auction is not configured")
		return
	}
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuctionPriceResponse{Price: price.String()})
}

func (h *handler) ListReceipts(c *gin.Context) {
	filter, err := ParseListReceiptsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	receipts, total, err := h.executor.GetReceipts(c.Request.Context(), filter)
	if err != nil {
		respondDatabaseError(c, err, "Failed to list receipts")
		return
	}

	items := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		r, err := h.mapReceipt(&receipts[i])
		if err != nil {
			respondDatabaseError(c, err, "Failed to read receipt", zap.String("receipt_id", receipts[i].ID))
			return
		}
		items = append(items, r)
	}

	c.JSON(http.StatusOK, dto.ReceiptListResponse{
		Items:  items,
		Total:  total,
		Offset: filter.Offset,
	})
}

func (h *handler) mapReceipt(r *schema.MintReceipt) (dto.ReceiptResponse, error) {
	var ids []uint64
	if err := h.json.Unmarshal(r.TokenIDs, &ids); err != nil {
		return dto.ReceiptResponse{}, err
	}
	return dto.MapReceiptToDTO(r, ids), nil
}

func (h *handler) Mint(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	payment, err := parseOptionalWei(req.Payment)
	if err != nil {
		respondValidationError(c, "payment: "+err.Error())
		return
	}

	result, err := h.executor.Mint(c.Request.Context(), caller, req.Count, payment)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMintResultToDTO(result))
}

func (h *handler) WhitelistMint(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.WhitelistMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	payment, err := parseOptionalWei(req.Payment)
	if err != nil {
		respondValidationError(c, "payment: "+err.Error())
		return
	}

	proof, err := parseProof(req.Proof)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.executor.WhitelistMint(c.Request.Context(), caller, req.Count, proof, payment)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMintResultToDTO(result))
}

func (h *handler) DutchAuctionMint(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	payment, err := parseOptionalWei(req.Payment)
	if err != nil {
		respondValidationError(c, "payment: "+err.Error())
		return
	}

	result, err := h.executor.DutchAuctionMint(c.Request.Context(), caller, req.Count, payment)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMintResultToDTO(result))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-minter-api",
	})
}

// callerOrAbort returns the authenticated caller, responding 401 when missing
func callerOrAbort(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c)
	}
	return caller, ok
}
