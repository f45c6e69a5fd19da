package schema

import (
	"time"
)

// PurchaseRecord represents the purchase_records table - the merge-only purchase ledger,
// one row per (wallet, content) pair
type PurchaseRecord struct {
	// ID is the public identifier of the ledger row
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// ContentID is the catalog id of the purchased content
	ContentID string `gorm:"column:content_id;not null;type:text;uniqueIndex:idx_purchase_records_wallet_content,priority:2"`
	// WalletAddress is the checksummed buyer address
	WalletAddress string `gorm:"column:wallet_address;not null;type:text;uniqueIndex:idx_purchase_records_wallet_content,priority:1"`
	// Quantity is the total number of tokens bought across merged purchases
	Quantity int64 `gorm:"column:quantity;not null"`
	// PricePerToken is the price paid in the last merged purchase, in wei
	PricePerToken string `gorm:"column:price_per_token;not null;type:numeric(78,0)"`
	// ReconciliationStatus is confirmed or paid_but_unverified
	ReconciliationStatus string `gorm:"column:reconciliation_status;not null;type:text;index"`
	// TxHash is the hash of the last merged purchase transaction
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// PurchasedAt is the time of the last merged purchase
	PurchasedAt time.Time `gorm:"column:purchased_at;not null;type:timestamptz"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PurchaseRecord model
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}
