package schema

import (
	"time"

	"gorm.io/datatypes"
)

// TokenizationRecord represents the tokenization_records table - the lifecycle state of
// a content item's tokenization
type TokenizationRecord struct {
	// ContentID is the catalog id of the tokenized content
	ContentID string `gorm:"column:content_id;primaryKey;type:text"`
	// State is one of not_tokenized, pending, verified, failed_unverified
	State string `gorm:"column:state;not null;type:text;index:idx_tokenization_records_state_updated,priority:1"`
	// TokenID is the registry token id (decimal), set once known
	TokenID *string `gorm:"column:token_id;type:numeric(78,0)"`
	// CreatorAddress is the checksummed creator wallet
	CreatorAddress string `gorm:"column:creator_address;not null;type:text"`
	Supply         int64  `gorm:"column:supply;not null"`
	// PricePerToken is the primary sale price in wei
	PricePerToken string `gorm:"column:price_per_token;not null;type:numeric(78,0)"`
	// Thresholds holds the rights thresholds submitted with createFilm
	Thresholds datatypes.JSON `gorm:"column:thresholds;type:jsonb"`
	// TxHash is the createFilm transaction hash
	TxHash    *string   `gorm:"column:tx_hash;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz;index:idx_tokenization_records_state_updated,priority:2"`
}

// TableName specifies the table name for the TokenizationRecord model
func (TokenizationRecord) TableName() string {
	return "tokenization_records"
}

// TokenizationFailure represents the tokenization_failures table - the failure flag
// of the last unsuccessful tokenization, cleared on success
type TokenizationFailure struct {
	ContentID string    `gorm:"column:content_id;primaryKey;type:text"`
	Class     string    `gorm:"column:class;not null;type:text"`
	Message   string    `gorm:"column:message;not null;type:text"`
	FailedAt  time.Time `gorm:"column:failed_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the TokenizationFailure model
func (TokenizationFailure) TableName() string {
	return "tokenization_failures"
}
