package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-minter/internal/api/rest/dto"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/minter"
)

// AdminHandler defines the administrative endpoints. All of them require
// authentication and the contract rejects callers other than the owner.
type AdminHandler interface {
	// AdminMint mints for free to a beneficiary in every stage
	// POST /api/v1/admin/mint
	AdminMint(c *gin.Context)

	// SetStage PUT /api/v1/admin/stage
	SetStage(c *gin.Context)
	// SetCost PUT /api/v1/admin/cost
	SetCost(c *gin.Context)
	// SetMaxMintAmount PUT /api/v1/admin/max-mint-amount
	SetMaxMintAmount(c *gin.Context)
	// SetMaxMintAmountPerTx PUT /api/v1/admin/max-mint-amount-per-tx
	SetMaxMintAmountPerTx(c *gin.Context)
	// SetMaxWhitelistMintAmount PUT /api/v1/admin/max-whitelist-mint-amount
	SetMaxWhitelistMintAmount(c *gin.Context)
	// SetMerkleRoot PUT /api/v1/admin/merkle-root
	SetMerkleRoot(c *gin.Context)
	// AddToWhitelist POST /api/v1/admin/whitelist
	AddToWhitelist(c *gin.Context)
	// SetRevealed PUT /api/v1/admin/revealed
	SetRevealed(c *gin.Context)
	// SetBaseURI PUT /api/v1/admin/base-uri
	SetBaseURI(c *gin.Context)
	// SetHiddenBaseURI PUT /api/v1/admin/hidden-base-uri
	SetHiddenBaseURI(c *gin.Context)
	// SetDutchAuction PUT /api/v1/admin/auction
	SetDutchAuction(c *gin.Context)
	// SetDutchAuctionStartTime PUT /api/v1/admin/auction/start-time
	SetDutchAuctionStartTime(c *gin.Context)
	// Withdraw POST /api/v1/admin/withdraw
	Withdraw(c *gin.Context)
}

func (h *handler) AdminMint(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.AdminMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	beneficiary, err := domain.ParseAddress(req.Beneficiary)
	if errors.Is(err, domain.ErrZeroAddress) {
		respondContractError(c, err)
		return
	}
	if err != nil {
		respondValidationError(c, "beneficiary: "+err.Error())
		return
	}

	result, err := h.executor.MintForAddress(c.Request.Context(), caller, beneficiary, req.Count)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMintResultToDTO(result))
}

// administer binds the request body, runs the update as the caller and
// responds with the resulting collection state
func administer[T any](h *handler, c *gin.Context, update func(caller common.Address, req *T) error) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := update(caller, &req); err != nil {
		var v validationError
		if errors.As(err, &v) {
			respondValidationError(c, v.Error())
			return
		}
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusToDTO(h.contract.Status()))
}

// validationError marks request values that could not be parsed
type validationError struct {
	err error
}

func (v validationError) Error() string {
	return v.err.Error()
}

func (h *handler) SetStage(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.StageRequest) error {
		stage, err := domain.ParseStage(req.Stage)
		if err != nil {
			return validationError{err}
		}
		return h.contract.SetStage(caller, stage)
	})
}

func (h *handler) SetCost(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.CostRequest) error {
		cost, err := domain.ParseWei(req.Cost)
		if err != nil {
			return validationError{err}
		}
		return h.contract.SetCost(caller, cost)
	})
}

func (h *handler) SetMaxMintAmount(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.AmountRequest) error {
		return h.contract.SetMaxMintAmount(caller, req.Amount)
	})
}

func (h *handler) SetMaxMintAmountPerTx(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.AmountRequest) error {
		return h.contract.SetMaxMintAmountPerTx(caller, req.Amount)
	})
}

func (h *handler) SetMaxWhitelistMintAmount(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.AmountRequest) error {
		return h.contract.SetMaxWhitelistMintAmount(caller, req.Amount)
	})
}

func (h *handler) SetMerkleRoot(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.MerkleRootRequest) error {
		root, err := parseHash(req.Root)
		if err != nil {
			return validationError{err}
		}
		return h.contract.SetMerkleRoot(caller, root)
	})
}

func (h *handler) SetRevealed(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.RevealedRequest) error {
		return h.contract.SetRevealed(caller, *req.Revealed)
	})
}

func (h *handler) SetBaseURI(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.URIRequest) error {
		return h.contract.SetBaseURI(caller, req.URI)
	})
}

func (h *handler) SetHiddenBaseURI(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.URIRequest) error {
		return h.contract.SetHiddenBaseURI(caller, req.URI)
	})
}

func (h *handler) SetDutchAuction(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.AuctionRequest) error {
		params := minter.AuctionParams{
			DropInterval: time.Duration(req.DropInterval) * time.Second,
			Duration:     time.Duration(req.Duration) * time.Second,
		}
		// zero leaves the auction unscheduled
		if req.StartTime > 0 {
			params.StartTime = time.Unix(req.StartTime, 0)
		}

		var err error
		if params.StartPrice, err = domain.ParseWei(req.StartPrice); err != nil {
			return validationError{err}
		}
		if params.EndPrice, err = domain.ParseWei(req.EndPrice); err != nil {
			return validationError{err}
		}
		if params.PriceDrop, err = domain.ParseWei(req.PriceDrop); err != nil {
			return validationError{err}
		}

		return h.contract.SetDutchAuction(caller, params)
	})
}

func (h *handler) SetDutchAuctionStartTime(c *gin.Context) {
	administer(h, c, func(caller common.Address, req *dto.StartTimeRequest) error {
		return h.contract.SetDutchAuctionStartTime(caller, time.Unix(req.StartTime, 0))
	})
}

func (h *handler) AddToWhitelist(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.WhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	addrs := make([]common.Address, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		if !common.IsHexAddress(a) {
			respondValidationError(c, "invalid address: "+a)
			return
		}
		addrs = append(addrs, common.HexToAddress(a))
	}

	added, err := h.contract.AddToWhitelist(caller, addrs)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WhitelistResult{Added: added})
}

func (h *handler) Withdraw(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	amount, err := h.contract.Withdraw(caller)
	if err != nil {
		respondContractError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{Amount: amount.String()})
}
