package store

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

type purchaseKey struct {
	wallet    string
	contentID domain.ContentID
}

type memoryPurchase struct {
	record    domain.PurchaseRecord
	updatedAt time.Time
}

type memoryStore struct {
	mu            sync.RWMutex
	purchases     map[purchaseKey]*memoryPurchase
	ownership     map[purchaseKey]domain.OwnershipRecord
	tokenizations map[domain.ContentID]domain.TokenizationRecord
	failures      map[domain.ContentID]domain.TokenizationFailure
	tokenIDs      map[domain.ContentID]*big.Int
	// sequence orders purchase updates deterministically when timestamps collide
	sequence int64
}

// NewMemoryStore creates a process-local store with the same semantics as the PostgreSQL store
func NewMemoryStore() Store {
	return &memoryStore{
		purchases:     make(map[purchaseKey]*memoryPurchase),
		ownership:     make(map[purchaseKey]domain.OwnershipRecord),
		tokenizations: make(map[domain.ContentID]domain.TokenizationRecord),
		failures:      make(map[domain.ContentID]domain.TokenizationFailure),
		tokenIDs:      make(map[domain.ContentID]*big.Int),
	}
}

func keyOf(wallet string, contentID domain.ContentID) purchaseKey {
	return purchaseKey{wallet: domain.NormalizeAddress(wallet), contentID: contentID}
}

func (s *memoryStore) nextUpdate() time.Time {
	s.sequence++
	return time.Unix(0, s.sequence)
}

func (s *memoryStore) MergePurchase(_ context.Context, purchase domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	if purchase.Quantity == 0 || purchase.Quantity > maxQuantity {
		return nil, fmt.Errorf("%w: quantity out of range", domain.ErrInvalidParameters)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(purchase.Wallet, purchase.ContentID)
	existing, ok := s.purchases[key]
	if !ok {
		record := clonePurchase(purchase)
		record.ID = uuid.NewString()
		record.Wallet = key.wallet
		record.PurchasedAt = purchase.PurchasedAt.UTC()
		s.purchases[key] = &memoryPurchase{record: record, updatedAt: s.nextUpdate()}
		merged := clonePurchase(record)
		return &merged, nil
	}

	record := &existing.record
	if record.Quantity+purchase.Quantity > maxQuantity {
		return nil, fmt.Errorf("%w: quantity overflow", domain.ErrInvalidParameters)
	}
	record.Quantity += purchase.Quantity
	record.PricePerToken = cloneBig(purchase.PricePerToken)
	record.PurchasedAt = purchase.PurchasedAt.UTC()
	record.ReconciliationStatus = record.ReconciliationStatus.Merge(purchase.ReconciliationStatus)
	if purchase.TxHash != "" {
		record.TxHash = purchase.TxHash
	}
	existing.updatedAt = s.nextUpdate()

	merged := clonePurchase(*record)
	return &merged, nil
}

func (s *memoryStore) GetPurchase(_ context.Context, wallet string, contentID domain.ContentID) (*domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.purchases[keyOf(wallet, contentID)]
	if !ok {
		return nil, nil
	}

	record := clonePurchase(existing.record)
	return &record, nil
}

func (s *memoryStore) ListPurchasesByStatus(_ context.Context, status domain.ReconciliationStatus, limit int) ([]domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*memoryPurchase, 0)
	for _, p := range s.purchases {
		if p.record.ReconciliationStatus == status {
			matches = append(matches, p)
		}
	}
	slices.SortFunc(matches, func(a, b *memoryPurchase) int {
		return a.updatedAt.Compare(b.updatedAt)
	})

	records := make([]domain.PurchaseRecord, 0, len(matches))
	for _, p := range matches {
		if limit > 0 && len(records) >= limit {
			break
		}
		records = append(records, clonePurchase(p.record))
	}

	return records, nil
}

func (s *memoryStore) ConfirmPurchase(_ context.Context, wallet string, contentID domain.ContentID, verifiedQuantity uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.purchases[keyOf(wallet, contentID)]
	if !ok || existing.record.Quantity > verifiedQuantity {
		return false, nil
	}

	existing.record.ReconciliationStatus = domain.ReconciliationStatusConfirmed
	existing.updatedAt = s.nextUpdate()
	return true, nil
}

func (s *memoryStore) UpsertOwnership(_ context.Context, record domain.OwnershipRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(record.Wallet, record.ContentID)
	record.Wallet = key.wallet
	record.LastCheckedAt = record.LastCheckedAt.UTC()
	s.ownership[key] = record
	return nil
}

func (s *memoryStore) GetOwnership(_ context.Context, wallet string, contentID domain.ContentID) (*domain.OwnershipRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.ownership[keyOf(wallet, contentID)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memoryStore) SaveTokenization(_ context.Context, record domain.TokenizationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record = cloneTokenization(record)
	record.Creator = domain.NormalizeAddress(record.Creator)
	record.Thresholds = thresholdsOrEmpty(record.Thresholds)
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}
	record.UpdatedAt = record.UpdatedAt.UTC()
	s.tokenizations[record.ContentID] = record
	return nil
}

func (s *memoryStore) GetTokenization(_ context.Context, contentID domain.ContentID) (*domain.TokenizationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.tokenizations[contentID]
	if !ok {
		return nil, nil
	}

	record = cloneTokenization(record)
	return &record, nil
}

func (s *memoryStore) ListTokenizationsByState(_ context.Context, state domain.TokenizationState, updatedBefore time.Time, limit int) ([]domain.TokenizationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.TokenizationRecord, 0)
	for _, record := range s.tokenizations {
		if record.State == state && record.UpdatedAt.Before(updatedBefore) {
			records = append(records, cloneTokenization(record))
		}
	}
	slices.SortFunc(records, func(a, b domain.TokenizationRecord) int {
		return a.UpdatedAt.Compare(b.UpdatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

func (s *memoryStore) SetTokenizationFailure(_ context.Context, failure domain.TokenizationFailure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	failure.FailedAt = failure.FailedAt.UTC()
	s.failures[failure.ContentID] = failure
	return nil
}

func (s *memoryStore) ClearTokenizationFailure(_ context.Context, contentID domain.ContentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, contentID)
	return nil
}

func (s *memoryStore) GetTokenizationFailure(_ context.Context, contentID domain.ContentID) (*domain.TokenizationFailure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	failure, ok := s.failures[contentID]
	if !ok {
		return nil, nil
	}
	return &failure, nil
}

func (s *memoryStore) GetRegisteredTokenID(_ context.Context, contentID domain.ContentID) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneBig(s.tokenIDs[contentID]), nil
}

func (s *memoryStore) SetRegisteredTokenID(_ context.Context, contentID domain.ContentID, tokenID *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokenIDs[contentID]; !ok {
		s.tokenIDs[contentID] = cloneBig(tokenID)
	}
	return nil
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func clonePurchase(record domain.PurchaseRecord) domain.PurchaseRecord {
	record.PricePerToken = cloneBig(record.PricePerToken)
	if record.PricePerToken == nil {
		record.PricePerToken = big.NewInt(0)
	}
	return record
}

func cloneTokenization(record domain.TokenizationRecord) domain.TokenizationRecord {
	record.TokenID = cloneBig(record.TokenID)
	record.PricePerToken = cloneBig(record.PricePerToken)
	if record.PricePerToken == nil {
		record.PricePerToken = big.NewInt(0)
	}
	record.Thresholds = slices.Clone(record.Thresholds)
	return record
}
