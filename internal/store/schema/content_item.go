package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ContentItem represents the content_items table owned by the catalog. The ledger only
// writes the token_* columns and the tokenized flag.
type ContentItem struct {
	ID             string  `gorm:"column:id;primaryKey;type:text"`
	Title          string  `gorm:"column:title;not null;type:text"`
	Description    string  `gorm:"column:description;not null;default:'';type:text"`
	CreatorAddress *string `gorm:"column:creator_address;type:text"`
	// PricePerToken is the catalog listing price in wei
	PricePerToken *string `gorm:"column:price_per_token;type:numeric(78,0)"`
	// RightsThresholds is the catalog's fallback tier list, used when the chain has none
	RightsThresholds datatypes.JSON `gorm:"column:rights_thresholds;type:jsonb"`

	Tokenized       bool           `gorm:"column:tokenized;not null;default:false"`
	TokenID         *string        `gorm:"column:token_id;type:numeric(78,0)"`
	TokenSupply     *int64         `gorm:"column:token_supply"`
	TokenPrice      *string        `gorm:"column:token_price;type:numeric(78,0)"`
	TokenThresholds datatypes.JSON `gorm:"column:token_thresholds;type:jsonb"`
	TokenizedAt     *time.Time     `gorm:"column:tokenized_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ContentItem model
func (ContentItem) TableName() string {
	return "content_items"
}
