package dto

import (
	"time"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/executor"
	"github.com/feral-file/ff-minter/internal/store/schema"
)

// MintRequest is the body of the public sale and dutch auction mint endpoints
type MintRequest struct {
	Count   uint64 `json:"count"`
	Payment string `json:"payment"` // wei, empty means zero
}

// WhitelistMintRequest is the body of the whitelist mint endpoint
type WhitelistMintRequest struct {
	Count   uint64   `json:"count"`
	Proof   []string `json:"proof"`
	Payment string   `json:"payment"`
}

// AdminMintRequest is the body of the privileged mint endpoint
type AdminMintRequest struct {
	Beneficiary string `json:"beneficiary" binding:"required"`
	Count       uint64 `json:"count"`
}

// MintResponse is returned for every committed mint
type MintResponse struct {
	ReceiptID   string           `json:"receipt_id"`
	Kind        domain.MintKind  `json:"kind"`
	Caller      string           `json:"caller"`
	Beneficiary string           `json:"beneficiary"`
	TokenIDs    []domain.TokenID `json:"token_ids"`
	Required    string           `json:"required"`
	Paid        string           `json:"paid"`
	Refund      string           `json:"refund"`
	Stage       string           `json:"stage"`
	MintedAt    time.Time        `json:"minted_at"`
}

// ReceiptResponse is a stored mint receipt
type ReceiptResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Caller      string     `json:"caller"`
	Beneficiary string     `json:"beneficiary"`
	TokenIDs    []uint64   `json:"token_ids"`
	Quantity    int        `json:"quantity"`
	Required    string     `json:"required"`
	Paid        string     `json:"paid"`
	Refund      string     `json:"refund"`
	Stage       string     `json:"stage"`
	MintedAt    time.Time  `json:"minted_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ReceiptListResponse is a page of stored receipts
type ReceiptListResponse struct {
	Items  []ReceiptResponse `json:"items"`
	Total  uint64            `json:"total"`
	Offset int               `json:"offset"`
}

// MapMintResultToDTO maps a committed mint to the mint response
func MapMintResultToDTO(result *executor.MintResult) *MintResponse {
	r := result.Receipt
	return &MintResponse{
		ReceiptID:   result.ReceiptID,
		Kind:        r.Kind,
		Caller:      r.Caller.Hex(),
		Beneficiary: r.Beneficiary.Hex(),
		TokenIDs:    r.TokenIDs,
		Required:    weiString(r.Required),
		Paid:        weiString(r.Paid),
		Refund:      weiString(r.Refund),
		Stage:       r.Stage.String(),
		MintedAt:    r.At.UTC(),
	}
}

// MapReceiptToDTO maps a stored receipt to the receipt response
func MapReceiptToDTO(r *schema.MintReceipt, tokenIDs []uint64) ReceiptResponse {
	return ReceiptResponse{
		ID:          r.ID,
		Kind:        r.Kind,
		Caller:      r.Caller,
		Beneficiary: r.Beneficiary,
		TokenIDs:    tokenIDs,
		Quantity:    r.Quantity,
		Required:    r.RequiredWei,
		Paid:        r.PaidWei,
		Refund:      r.RefundWei,
		Stage:       r.Stage,
		MintedAt:    r.MintedAt.UTC(),
		PublishedAt: r.PublishedAt,
	}
}
