package store

import (
	"context"
	"math/big"
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Store is the ledger store: purchase ledger, ownership records, tokenization records
// and failure flags. Getters return nil, nil when the record does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// MergePurchase atomically adds the purchase to the (wallet, content) row, creating it
	// when absent, and returns the merged row
	MergePurchase(ctx context.Context, purchase domain.PurchaseRecord) (*domain.PurchaseRecord, error)
	// GetPurchase retrieves the purchase row of a wallet for a content item
	GetPurchase(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.PurchaseRecord, error)
	// ListPurchasesByStatus lists purchase rows with the given status, least recently updated first
	ListPurchasesByStatus(ctx context.Context, status domain.ReconciliationStatus, limit int) ([]domain.PurchaseRecord, error)
	// ConfirmPurchase marks the row confirmed when its quantity is at most verifiedQuantity.
	// It reports false when a newer purchase was merged in the meantime.
	ConfirmPurchase(ctx context.Context, wallet string, contentID domain.ContentID, verifiedQuantity uint64) (bool, error)

	// UpsertOwnership stores the latest ownership record of a wallet for a content item
	UpsertOwnership(ctx context.Context, record domain.OwnershipRecord) error
	// GetOwnership retrieves the last stored ownership record
	GetOwnership(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.OwnershipRecord, error)

	// SaveTokenization creates or replaces the tokenization record of a content item
	SaveTokenization(ctx context.Context, record domain.TokenizationRecord) error
	// GetTokenization retrieves the tokenization record of a content item
	GetTokenization(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationRecord, error)
	// ListTokenizationsByState lists records in state last updated before the given time, oldest first
	ListTokenizationsByState(ctx context.Context, state domain.TokenizationState, updatedBefore time.Time, limit int) ([]domain.TokenizationRecord, error)
	// SetTokenizationFailure sets the failure flag of a content item
	SetTokenizationFailure(ctx context.Context, failure domain.TokenizationFailure) error
	// ClearTokenizationFailure removes the failure flag of a content item
	ClearTokenizationFailure(ctx context.Context, contentID domain.ContentID) error
	// GetTokenizationFailure retrieves the failure flag of a content item
	GetTokenizationFailure(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationFailure, error)

	// GetRegisteredTokenID retrieves a memoized registry token id, nil when unknown
	GetRegisteredTokenID(ctx context.Context, contentID domain.ContentID) (*big.Int, error)
	// SetRegisteredTokenID memoizes the registry token id of a content item
	SetRegisteredTokenID(ctx context.Context, contentID domain.ContentID, tokenID *big.Int) error
}
