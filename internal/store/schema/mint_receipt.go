package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MintReceipt represents the mint_receipts table - one row per successful mint call
type MintReceipt struct {
	// ID is a ULID, so receipts sort by creation time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Kind is the mint entry point (public, whitelist, dutch_auction, privileged)
	Kind string `gorm:"column:kind;not null;type:text"`
	// Collection is the collection symbol the receipt belongs to
	Collection  string `gorm:"column:collection;not null;type:text"`
	Caller      string `gorm:"column:caller;not null;type:text"`
	Beneficiary string `gorm:"column:beneficiary;not null;type:text"`
	// TokenIDs is the JSON array of minted token IDs
	TokenIDs datatypes.JSON `gorm:"column:token_ids;not null;type:jsonb"`
	Quantity int            `gorm:"column:quantity;not null"`
	// Amounts in wei as decimal strings
	PaidWei     string    `gorm:"column:paid_wei;not null;type:text"`
	RequiredWei string    `gorm:"column:required_wei;not null;type:text"`
	RefundWei   string    `gorm:"column:refund_wei;not null;type:text"`
	Stage       string    `gorm:"column:stage;not null;type:text"`
	MintedAt    time.Time `gorm:"column:minted_at;not null;type:timestamptz"`
	// PublishedAt is set once the mint event reached the message broker
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now();autoCreateTime"`
}

// TableName specifies the table name for the MintReceipt model
func (MintReceipt) TableName() string {
	return "mint_receipts"
}

// MintedToken represents the minted_tokens table - maps every token to the receipt that minted it
type MintedToken struct {
	Collection string    `gorm:"column:collection;primaryKey;type:text"`
	TokenID    int64     `gorm:"column:token_id;primaryKey"`
	ReceiptID  string    `gorm:"column:receipt_id;not null;type:text"`
	Owner      string    `gorm:"column:owner;not null;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now();autoCreateTime"`
}

// TableName specifies the table name for the MintedToken model
func (MintedToken) TableName() string {
	return "minted_tokens"
}
