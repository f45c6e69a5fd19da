package schema

import "time"

// OwnershipRecord represents the ownership_records table - the last known ownership
// of a content item by a wallet, superseded on every check
type OwnershipRecord struct {
	WalletAddress   string    `gorm:"column:wallet_address;primaryKey;type:text"`
	ContentID       string    `gorm:"column:content_id;primaryKey;type:text"`
	Owned           bool      `gorm:"column:owned;not null;default:false"`
	Quantity        int64     `gorm:"column:quantity;not null;default:0"`
	VerifiedOnChain bool      `gorm:"column:verified_on_chain;not null;default:false"`
	LastCheckedAt   time.Time `gorm:"column:last_checked_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the OwnershipRecord model
func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
