package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-minter/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateMintReceipt stores a receipt and one row per minted token in a single transaction
	CreateMintReceipt(ctx context.Context, input CreateMintReceiptInput) (*schema.MintReceipt, error)
	// GetMintReceipt retrieves a receipt by its ID, nil if not found
	GetMintReceipt(ctx context.Context, id string) (*schema.MintReceipt, error)
	// GetMintReceiptByTokenID retrieves the receipt that minted a token, nil if not found
	GetMintReceiptByTokenID(ctx context.Context, collection string, tokenID uint64) (*schema.MintReceipt, error)
	// GetMintReceipts retrieves receipts matching the filter, newest first, with the total count
	GetMintReceipts(ctx context.Context, filter MintReceiptFilter) ([]schema.MintReceipt, uint64, error)
	// GetMintReceiptsAfter retrieves up to limit receipts of a collection with an ID above afterID, in ID order
	GetMintReceiptsAfter(ctx context.Context, collection string, afterID string, limit int) ([]schema.MintReceipt, error)
	// GetUnpublishedMintReceipts retrieves receipts whose event was not published yet, oldest first
	GetUnpublishedMintReceipts(ctx context.Context, limit int) ([]schema.MintReceipt, error)
	// MarkMintReceiptPublished records that the event of a receipt was published
	MarkMintReceiptPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// CreateMintReceiptInput represents the input for storing a mint receipt
type CreateMintReceiptInput struct {
	ID          string
	Kind        string
	Collection  string
	Caller      string
	Beneficiary string
	TokenIDs    []uint64
	PaidWei     string
	RequiredWei string
	RefundWei   string
	Stage       string
	MintedAt    time.Time
}

// MintReceiptFilter represents the filter for listing mint receipts
type MintReceiptFilter struct {
	Collection  string
	Beneficiary string
	Kind        string
	Limit       int
	Offset      int
}
