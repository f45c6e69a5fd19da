package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero settings fall back to NormalizeConnectionPoolSettings defaults.
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
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
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

// MergePurchase adds the purchase to the (wallet, content) row in a single upsert
func (s *pgStore) MergePurchase(ctx context.Context, purchase domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	if purchase.Quantity == 0 || purchase.Quantity > maxQuantity {
		return nil, fmt.Errorf("%w: quantity out of range", domain.ErrInvalidParameters)
	}

	row := schema.PurchaseRecord{
		ID:                   uuid.NewString(),
		ContentID:            purchase.ContentID.String(),
		WalletAddress:        domain.NormalizeAddress(purchase.Wallet),
		Quantity:             int64(purchase.Quantity),
		PricePerToken:        bigToString(purchase.PricePerToken),
		ReconciliationStatus: string(purchase.ReconciliationStatus),
		TxHash:               optionalString(purchase.TxHash),
		PurchasedAt:          purchase.PurchasedAt.UTC(),
	}

	var merged schema.PurchaseRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "wallet_address"}, {Name: "content_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":        gorm.Expr("purchase_records.quantity + EXCLUDED.quantity"),
				"price_per_token": gorm.Expr("EXCLUDED.price_per_token"),
				"tx_hash":         gorm.Expr("COALESCE(EXCLUDED.tx_hash, purchase_records.tx_hash)"),
				"purchased_at":    gorm.Expr("EXCLUDED.purchased_at"),
				"reconciliation_status": gorm.Expr(
					"CASE WHEN purchase_records.reconciliation_status = ? OR EXCLUDED.reconciliation_status = ? THEN ? ELSE ? END",
					string(domain.ReconciliationStatusPaidButUnverified),
					string(domain.ReconciliationStatusPaidButUnverified),
					string(domain.ReconciliationStatusPaidButUnverified),
					string(domain.ReconciliationStatusConfirmed),
				),
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to merge purchase: %w", err)
		}

		return tx.Where("wallet_address = ? AND content_id = ?", row.WalletAddress, row.ContentID).
			First(&merged).Error
	})
	if err != nil {
		return nil, err
	}

	return purchaseFromSchema(merged)
}

// GetPurchase retrieves the purchase row of a wallet for a content item
func (s *pgStore) GetPurchase(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.PurchaseRecord, error) {
	var row schema.PurchaseRecord
	err := s.db.WithContext(ctx).
		Where("wallet_address = ? AND content_id = ?", domain.NormalizeAddress(wallet), contentID.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	return purchaseFromSchema(row)
}

// ListPurchasesByStatus lists purchase rows with the given status, least recently updated first
func (s *pgStore) ListPurchasesByStatus(ctx context.Context, status domain.ReconciliationStatus, limit int) ([]domain.PurchaseRecord, error) {
	var rows []schema.PurchaseRecord
	err := s.db.WithContext(ctx).
		Where("reconciliation_status = ?", string(status)).
		Order("updated_at ASC").
		Limit(limitOrAll(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	records := make([]domain.PurchaseRecord, 0, len(rows))
	for _, row := range rows {
		record, err := purchaseFromSchema(row)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

// ConfirmPurchase marks the row confirmed unless a larger quantity was merged since verification
func (s *pgStore) ConfirmPurchase(ctx context.Context, wallet string, contentID domain.ContentID, verifiedQuantity uint64) (bool, error) {
	if verifiedQuantity > maxQuantity {
		verifiedQuantity = maxQuantity
	}

	result := s.db.WithContext(ctx).
		Model(&schema.PurchaseRecord{}).
		Where("wallet_address = ? AND content_id = ? AND quantity <= ?",
			domain.NormalizeAddress(wallet), contentID.String(), int64(verifiedQuantity)).
		Updates(map[string]any{
			"reconciliation_status": string(domain.ReconciliationStatusConfirmed),
			"updated_at":            gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to confirm purchase: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpsertOwnership stores the latest ownership record of a wallet for a content item
func (s *pgStore) UpsertOwnership(ctx context.Context, record domain.OwnershipRecord) error {
	row := schema.OwnershipRecord{
		WalletAddress:   domain.NormalizeAddress(record.Wallet),
		ContentID:       record.ContentID.String(),
		Owned:           record.Owned,
		Quantity:        int64(min(record.Quantity, maxQuantity)),
		VerifiedOnChain: record.VerifiedOnChain,
		LastCheckedAt:   record.LastCheckedAt.UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owned", "quantity", "verified_on_chain", "last_checked_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ownership: %w", err)
	}

	return nil
}

// GetOwnership retrieves the last stored ownership record
func (s *pgStore) GetOwnership(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.OwnershipRecord, error) {
	var row schema.OwnershipRecord
	err := s.db.WithContext(ctx).
		Where("wallet_address = ? AND content_id = ?", domain.NormalizeAddress(wallet), contentID.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}

	return &domain.OwnershipRecord{
		Wallet:          row.WalletAddress,
		ContentID:       domain.ContentID(row.ContentID),
		Owned:           row.Owned,
		Quantity:        uint64(row.Quantity),
		VerifiedOnChain: row.VerifiedOnChain,
		LastCheckedAt:   row.LastCheckedAt,
	}, nil
}

// SaveTokenization creates or replaces the tokenization record of a content item
func (s *pgStore) SaveTokenization(ctx context.Context, record domain.TokenizationRecord) error {
	row, err := tokenizationToSchema(record)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"state", "token_id", "creator_address", "supply", "price_per_token", "thresholds", "tx_hash", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save tokenization: %w", err)
	}

	return nil
}

// GetTokenization retrieves the tokenization record of a content item
func (s *pgStore) GetTokenization(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationRecord, error) {
	var row schema.TokenizationRecord
	err := s.db.WithContext(ctx).Where("content_id = ?", contentID.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tokenization: %w", err)
	}

	return tokenizationFromSchema(row)
}

// ListTokenizationsByState lists records in state last updated before the given time, oldest first
func (s *pgStore) ListTokenizationsByState(ctx context.Context, state domain.TokenizationState, updatedBefore time.Time, limit int) ([]domain.TokenizationRecord, error) {
	var rows []schema.TokenizationRecord
	err := s.db.WithContext(ctx).
		Where("state = ? AND updated_at < ?", string(state), updatedBefore.UTC()).
		Order("updated_at ASC").
		Limit(limitOrAll(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tokenizations: %w", err)
	}

	records := make([]domain.TokenizationRecord, 0, len(rows))
	for _, row := range rows {
		record, err := tokenizationFromSchema(row)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

// SetTokenizationFailure sets the failure flag of a content item
func (s *pgStore) SetTokenizationFailure(ctx context.Context, failure domain.TokenizationFailure) error {
	row := schema.TokenizationFailure{
		ContentID: failure.ContentID.String(),
		Class:     failure.Class,
		Message:   failure.Message,
		FailedAt:  failure.FailedAt.UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"class", "message", "failed_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set tokenization failure: %w", err)
	}

	return nil
}

// ClearTokenizationFailure removes the failure flag of a content item
func (s *pgStore) ClearTokenizationFailure(ctx context.Context, contentID domain.ContentID) error {
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID.String()).
		Delete(&schema.TokenizationFailure{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear tokenization failure: %w", err)
	}

	return nil
}

// GetTokenizationFailure retrieves the failure flag of a content item
func (s *pgStore) GetTokenizationFailure(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationFailure, error) {
	var row schema.TokenizationFailure
	err := s.db.WithContext(ctx).Where("content_id = ?", contentID.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tokenization failure: %w", err)
	}

	return &domain.TokenizationFailure{
		ContentID: domain.ContentID(row.ContentID),
		Class:     row.Class,
		Message:   row.Message,
		FailedAt:  row.FailedAt,
	}, nil
}

// GetRegisteredTokenID retrieves a memoized registry token id
func (s *pgStore) GetRegisteredTokenID(ctx context.Context, contentID domain.ContentID) (*big.Int, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", registeredTokenKey(contentID)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registered token id: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(kv.Value, 10)
	if !ok {
		return nil, fmt.Errorf("failed to parse registered token id: %q", kv.Value)
	}

	return tokenID, nil
}

// SetRegisteredTokenID memoizes the registry token id, an existing entry is never replaced
func (s *pgStore) SetRegisteredTokenID(ctx context.Context, contentID domain.ContentID, tokenID *big.Int) error {
	kv := schema.KeyValueStore{
		Key:   registeredTokenKey(contentID),
		Value: tokenID.String(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set registered token id: %w", err)
	}

	return nil
}

func purchaseFromSchema(row schema.PurchaseRecord) (*domain.PurchaseRecord, error) {
	price, err := stringToBig(row.PricePerToken)
	if err != nil {
		return nil, fmt.Errorf("invalid price for purchase %s: %w", row.ID, err)
	}

	record := &domain.PurchaseRecord{
		ID:                   row.ID,
		ContentID:            domain.ContentID(row.ContentID),
		Wallet:               row.WalletAddress,
		Quantity:             uint64(row.Quantity),
		PricePerToken:        price,
		PurchasedAt:          row.PurchasedAt,
		ReconciliationStatus: domain.ReconciliationStatus(row.ReconciliationStatus),
	}
	if row.TxHash != nil {
		record.TxHash = *row.TxHash
	}

	return record, nil
}

func tokenizationToSchema(record domain.TokenizationRecord) (schema.TokenizationRecord, error) {
	thresholds, err := json.Marshal(thresholdsOrEmpty(record.Thresholds))
	if err != nil {
		return schema.TokenizationRecord{}, fmt.Errorf("failed to marshal thresholds: %w", err)
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	row := schema.TokenizationRecord{
		ContentID:      record.ContentID.String(),
		State:          string(record.State),
		CreatorAddress: domain.NormalizeAddress(record.Creator),
		Supply:         int64(min(record.Supply, maxQuantity)),
		PricePerToken:  bigToString(record.PricePerToken),
		Thresholds:     thresholds,
		TxHash:         optionalString(record.TxHash),
		UpdatedAt:      updatedAt.UTC(),
	}
	if record.TokenID != nil {
		tokenID := record.TokenID.String()
		row.TokenID = &tokenID
	}

	return row, nil
}

func tokenizationFromSchema(row schema.TokenizationRecord) (*domain.TokenizationRecord, error) {
	price, err := stringToBig(row.PricePerToken)
	if err != nil {
		return nil, fmt.Errorf("invalid price for tokenization %s: %w", row.ContentID, err)
	}

	record := &domain.TokenizationRecord{
		ContentID:     domain.ContentID(row.ContentID),
		State:         domain.TokenizationState(row.State),
		Creator:       row.CreatorAddress,
		Supply:        uint64(row.Supply),
		PricePerToken: price,
		UpdatedAt:     row.UpdatedAt,
	}

	if row.TokenID != nil {
		tokenID, err := stringToBig(*row.TokenID)
		if err != nil {
			return nil, fmt.Errorf("invalid token id for tokenization %s: %w", row.ContentID, err)
		}
		record.TokenID = tokenID
	}
	if row.TxHash != nil {
		record.TxHash = *row.TxHash
	}
	if len(row.Thresholds) > 0 {
		if err := json.Unmarshal(row.Thresholds, &record.Thresholds); err != nil {
			return nil, fmt.Errorf("failed to unmarshal thresholds: %w", err)
		}
	}

	return record, nil
}
