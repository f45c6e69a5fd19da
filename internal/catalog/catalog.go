package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

// Catalog is the content collaborator. It owns titles, descriptions and prices; the
// ledger only writes the tokenized flags.
//
//go:generate mockgen -source=catalog.go -destination=../mocks/catalog.go -package=mocks -mock_names=Catalog=MockCatalog
type Catalog interface {
	// GetContentByID returns the content item or domain.ErrContentNotFound
	GetContentByID(ctx context.Context, id domain.ContentID) (*domain.Content, error)

	// MarkTokenized records the token a content item was minted as
	MarkTokenized(ctx context.Context, id domain.ContentID, tokenID *big.Int, supply uint64, pricePerToken *big.Int, thresholds []domain.RightsThreshold) error

	// GetRightsThresholdsFallback returns the catalog's tier list, nil when none is configured
	GetRightsThresholdsFallback(ctx context.Context, id domain.ContentID) ([]domain.RightsThreshold, error)
}

type pgCatalog struct {
	db *gorm.DB
}

// NewPGCatalog creates a catalog backed by the content_items table
func NewPGCatalog(db *gorm.DB) Catalog {
	return &pgCatalog{db: db}
}

func (c *pgCatalog) getItem(ctx context.Context, id domain.ContentID) (*schema.ContentItem, error) {
	var item schema.ContentItem
	err := c.db.WithContext(ctx).Where("id = ?", id.String()).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	return &item, nil
}

// GetContentByID returns the content item with its tokenization columns
func (c *pgCatalog) GetContentByID(ctx context.Context, id domain.ContentID) (*domain.Content, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	content := &domain.Content{
		ID:        domain.ContentID(item.ID),
		Title:     item.Title,
		Tokenized: item.Tokenized,
	}
	if item.CreatorAddress != nil {
		content.Creator = *item.CreatorAddress
	}
	if item.PricePerToken != nil {
		content.PricePerToken, err = parseBig(*item.PricePerToken)
		if err != nil {
			return nil, fmt.Errorf("invalid price for content %s: %w", id, err)
		}
	}
	if item.TokenID != nil {
		content.TokenID, err = parseBig(*item.TokenID)
		if err != nil {
			return nil, fmt.Errorf("invalid token id for content %s: %w", id, err)
		}
	}
	content.Thresholds, err = decodeThresholds(item.TokenThresholds)
	if err != nil {
		return nil, err
	}

	return content, nil
}

// MarkTokenized sets the tokenized flag and token columns of a content item
func (c *pgCatalog) MarkTokenized(ctx context.Context, id domain.ContentID, tokenID *big.Int, supply uint64, pricePerToken *big.Int, thresholds []domain.RightsThreshold) error {
	if tokenID == nil {
		return fmt.Errorf("%w: missing token id", domain.ErrInvalidParameters)
	}

	if thresholds == nil {
		thresholds = []domain.RightsThreshold{}
	}
	encoded, err := json.Marshal(thresholds)
	if err != nil {
		return fmt.Errorf("failed to marshal thresholds: %w", err)
	}

	price := "0"
	if pricePerToken != nil {
		price = pricePerToken.String()
	}

	result := c.db.WithContext(ctx).
		Model(&schema.ContentItem{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{
			"tokenized":        true,
			"token_id":         tokenID.String(),
			"token_supply":     int64(min(supply, uint64(1<<63-1))),
			"token_price":      price,
			"token_thresholds": encoded,
			"tokenized_at":     time.Now().UTC(),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark content tokenized: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrContentNotFound, id)
	}

	return nil
}

// GetRightsThresholdsFallback returns the configured rights thresholds of a content item
func (c *pgCatalog) GetRightsThresholdsFallback(ctx context.Context, id domain.ContentID) ([]domain.RightsThreshold, error) {
	item, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	return decodeThresholds(item.RightsThresholds)
}

func decodeThresholds(raw []byte) ([]domain.RightsThreshold, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var thresholds []domain.RightsThreshold
	if err := json.Unmarshal(raw, &thresholds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thresholds: %w", err)
	}
	return thresholds, nil
}

func parseBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}
	return v, nil
}
