package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/store/schema"
)

const (
	defaultReceiptLimit = 50
	maxReceiptLimit     = 500
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateMintReceipt stores a receipt and one row per minted token in a single transaction
func (s *pgStore) CreateMintReceipt(ctx context.Context, input CreateMintReceiptInput) (*schema.MintReceipt, error) {
	if input.ID == "" {
		return nil, errors.New("receipt ID is required")
	}
	if len(input.TokenIDs) == 0 {
		return nil, errors.New("receipt has no tokens")
	}

	tokenIDs, err := json.Marshal(input.TokenIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token IDs: %w", err)
	}

	receipt := schema.MintReceipt{
		ID:          input.ID,
		Kind:        input.Kind,
		Collection:  input.Collection,
		Caller:      input.Caller,
		Beneficiary: input.Beneficiary,
		TokenIDs:    datatypes.JSON(tokenIDs),
		Quantity:    len(input.TokenIDs),
		PaidWei:     input.PaidWei,
		RequiredWei: input.RequiredWei,
		RefundWei:   input.RefundWei,
		Stage:       input.Stage,
		MintedAt:    input.MintedAt,
	}

	tokens := make([]schema.MintedToken, 0, len(input.TokenIDs))
	for _, id := range input.TokenIDs {
		tokens = append(tokens, schema.MintedToken{
			Collection: input.Collection,
			TokenID:    int64(id), //nolint:gosec,G115 // token IDs are bounded by the max supply
			ReceiptID:  input.ID,
			Owner:      input.Beneficiary,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return fmt.Errorf("failed to create mint receipt: %w", err)
		}
		if err := tx.Create(&tokens).Error; err != nil {
			return fmt.Errorf("failed to create minted tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Stored mint receipt",
		zap.String("id", receipt.ID),
		zap.String("kind", receipt.Kind),
		zap.Int("quantity", receipt.Quantity),
	)

	return &receipt, nil
}

// GetMintReceipt retrieves a receipt by its ID
func (s *pgStore) GetMintReceipt(ctx context.Context, id string) (*schema.MintReceipt, error) {
	var receipt schema.MintReceipt
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mint receipt: %w", err)
	}

	return &receipt, nil
}

// GetMintReceiptByTokenID retrieves the receipt that minted a token
func (s *pgStore) GetMintReceiptByTokenID(ctx context.Context, collection string, tokenID uint64) (*schema.MintReceipt, error) {
	var receipt schema.MintReceipt
	err := s.db.WithContext(ctx).
		Joins("JOIN minted_tokens ON minted_tokens.receipt_id = mint_receipts.id").
		Where("minted_tokens.collection = ? AND minted_tokens.token_id = ?", collection, tokenID).
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mint receipt by token: %w", err)
	}

	return &receipt, nil
}

// GetMintReceipts retrieves receipts matching the filter with the total count
func (s *pgStore) GetMintReceipts(ctx context.Context, filter MintReceiptFilter) ([]schema.MintReceipt, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.MintReceipt{})
	if filter.Collection != "" {
		query = query.Where("collection = ?", filter.Collection)
	}
	if filter.Beneficiary != "" {
		query = query.Where("beneficiary = ?", filter.Beneficiary)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count mint receipts: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultReceiptLimit
	}
	limit = min(limit, maxReceiptLimit)

	var receipts []schema.MintReceipt
	err := query.
		Order("minted_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(max(filter.Offset, 0)).
		Find(&receipts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get mint receipts: %w", err)
	}

	return receipts, uint64(total), nil //nolint:gosec,G115 // count is never negative
}

// GetMintReceiptsAfter retrieves up to limit receipts of a collection with an ID
// above afterID. Receipt IDs are ULIDs, so ID order is mint order.
func (s *pgStore) GetMintReceiptsAfter(ctx context.Context, collection string, afterID string, limit int) ([]schema.MintReceipt, error) {
	if limit <= 0 {
		limit = defaultReceiptLimit
	}
	limit = min(limit, maxReceiptLimit)

	query := s.db.WithContext(ctx).Where("collection = ?", collection)
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}

	var receipts []schema.MintReceipt
	err := query.
		Order("id ASC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get mint receipts after %q: %w", afterID, err)
	}

	return receipts, nil
}

// GetUnpublishedMintReceipts retrieves receipts whose event was not published yet
func (s *pgStore) GetUnpublishedMintReceipts(ctx context.Context, limit int) ([]schema.MintReceipt, error) {
	if limit <= 0 {
		limit = defaultReceiptLimit
	}

	var receipts []schema.MintReceipt
	err := s.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("minted_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unpublished mint receipts: %w", err)
	}

	return receipts, nil
}

// MarkMintReceiptPublished records that the event of a receipt was published
func (s *pgStore) MarkMintReceiptPublished(ctx context.Context, id string, publishedAt time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MintReceipt{}).
		Where("id = ?", id).
		Update("published_at", publishedAt)
	if result.Error != nil {
		return fmt.Errorf("failed to mark mint receipt published: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("mint receipt not found: %s", id)
	}

	return nil
}
