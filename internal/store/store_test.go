package store

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

const (
	testWallet      = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testOtherWallet = "0x99fc8AD516FBCC9bA3123D56e63A35d05AA9EFB8"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestPurchase(wallet string, contentID domain.ContentID, quantity uint64, status domain.ReconciliationStatus) domain.PurchaseRecord {
	return domain.PurchaseRecord{
		ContentID:            contentID,
		Wallet:               wallet,
		Quantity:             quantity,
		PricePerToken:        big.NewInt(1_000_000_000_000_000),
		PurchasedAt:          time.Now().UTC().Truncate(time.Millisecond),
		ReconciliationStatus: status,
		TxHash:               "0xabc",
	}
}

func buildTestTokenization(contentID domain.ContentID, state domain.TokenizationState, updatedAt time.Time) domain.TokenizationRecord {
	return domain.TokenizationRecord{
		ContentID:     contentID,
		State:         state,
		Creator:       testWallet,
		Supply:        100,
		PricePerToken: big.NewInt(5_000),
		Thresholds: []domain.RightsThreshold{
			{Quantity: 1, Label: "Personal Viewing"},
			{Quantity: 10, Label: "Public Screening"},
		},
		TxHash:    "0xdef",
		UpdatedAt: updatedAt,
	}
}

// =============================================================================
// Purchase ledger
// =============================================================================

func testMergePurchase(t *testing.T, store Store) {
	ctx := context.Background()

	first, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-1", 2, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, uint64(2), first.Quantity)
	assert.Equal(t, domain.ReconciliationStatusConfirmed, first.ReconciliationStatus)

	second, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-1", 3, domain.ReconciliationStatusPaidButUnverified))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, uint64(5), second.Quantity)
	assert.Equal(t, domain.ReconciliationStatusPaidButUnverified, second.ReconciliationStatus)

	// a confirmed purchase does not clear the unverified portion
	third, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-1", 1, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), third.Quantity)
	assert.Equal(t, domain.ReconciliationStatusPaidButUnverified, third.ReconciliationStatus)

	stored, err := store.GetPurchase(ctx, testWallet, "film-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint64(6), stored.Quantity)
	assert.Equal(t, "0xabc", stored.TxHash)
	assert.Equal(t, 0, big.NewInt(1_000_000_000_000_000).Cmp(stored.PricePerToken))
}

func testMergePurchaseNormalizesWallet(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.MergePurchase(ctx, buildTestPurchase("0x457ee5f723c7606c12a7264b52e285906f91eea6", "film-2", 1, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-2", 1, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase("457ee5f723c7606c12a7264b52e285906f91eea6", "film-2", 10, domain.ReconciliationStatusPaidButUnverified))
	require.NoError(t, err)

	stored, err := store.GetPurchase(ctx, testWallet, "film-2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, testWallet, stored.Wallet)
	assert.Equal(t, uint64(12), stored.Quantity)
	assert.Equal(t, domain.ReconciliationStatusPaidButUnverified, stored.ReconciliationStatus)

	bare, err := store.GetPurchase(ctx, "457ee5f723c7606c12a7264b52e285906f91eea6", "film-2")
	require.NoError(t, err)
	require.NotNil(t, bare)
	assert.Equal(t, stored.ID, bare.ID)

	unverified, err := store.ListPurchasesByStatus(ctx, domain.ReconciliationStatusPaidButUnverified, 10)
	require.NoError(t, err)
	count := 0
	for _, record := range unverified {
		if record.ContentID == "film-2" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func testMergePurchaseOrderIndependent(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-3", 4, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-3", 7, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)

	_, err = store.MergePurchase(ctx, buildTestPurchase(testOtherWallet, "film-3", 7, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase(testOtherWallet, "film-3", 4, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)

	a, err := store.GetPurchase(ctx, testWallet, "film-3")
	require.NoError(t, err)
	b, err := store.GetPurchase(ctx, testOtherWallet, "film-3")
	require.NoError(t, err)

	assert.Equal(t, uint64(11), a.Quantity)
	assert.Equal(t, a.Quantity, b.Quantity)
}

func testMergePurchaseRejectsZeroQuantity(t *testing.T, store Store) {
	_, err := store.MergePurchase(context.Background(), buildTestPurchase(testWallet, "film-4", 0, domain.ReconciliationStatusConfirmed))
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func testGetPurchaseNotFound(t *testing.T, store Store) {
	record, err := store.GetPurchase(context.Background(), testWallet, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func testListPurchasesByStatus(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-5", 1, domain.ReconciliationStatusPaidButUnverified))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase(testOtherWallet, "film-5", 1, domain.ReconciliationStatusPaidButUnverified))
	require.NoError(t, err)
	_, err = store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-6", 1, domain.ReconciliationStatusConfirmed))
	require.NoError(t, err)

	unverified, err := store.ListPurchasesByStatus(ctx, domain.ReconciliationStatusPaidButUnverified, 10)
	require.NoError(t, err)
	assert.Len(t, unverified, 2)
	for _, record := range unverified {
		assert.Equal(t, domain.ReconciliationStatusPaidButUnverified, record.ReconciliationStatus)
	}

	limited, err := store.ListPurchasesByStatus(ctx, domain.ReconciliationStatusPaidButUnverified, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func testConfirmPurchase(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.MergePurchase(ctx, buildTestPurchase(testWallet, "film-7", 3, domain.ReconciliationStatusPaidButUnverified))
	require.NoError(t, err)

	// a balance below the ledger quantity does not confirm
	confirmed, err := store.ConfirmPurchase(ctx, testWallet, "film-7", 2)
	require.NoError(t, err)
	assert.False(t, confirmed)

	confirmed, err = store.ConfirmPurchase(ctx, testWallet, "film-7", 3)
	require.NoError(t, err)
	assert.True(t, confirmed)

	stored, err := store.GetPurchase(ctx, testWallet, "film-7")
	require.NoError(t, err)
	assert.Equal(t, domain.ReconciliationStatusConfirmed, stored.ReconciliationStatus)

	confirmed, err = store.ConfirmPurchase(ctx, testWallet, "missing", 10)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

// =============================================================================
// Ownership
// =============================================================================

func testOwnership(t *testing.T, store Store) {
	ctx := context.Background()
	checkedAt := time.Now().UTC().Truncate(time.Millisecond)

	record, err := store.GetOwnership(ctx, testWallet, "film-8")
	require.NoError(t, err)
	assert.Nil(t, record)

	require.NoError(t, store.UpsertOwnership(ctx, domain.OwnershipRecord{
		Wallet:          testWallet,
		ContentID:       "film-8",
		Owned:           true,
		Quantity:        2,
		VerifiedOnChain: true,
		LastCheckedAt:   checkedAt,
	}))

	require.NoError(t, store.UpsertOwnership(ctx, domain.OwnershipRecord{
		Wallet:          testWallet,
		ContentID:       "film-8",
		Owned:           true,
		Quantity:        5,
		VerifiedOnChain: false,
		LastCheckedAt:   checkedAt.Add(time.Minute),
	}))

	record, err = store.GetOwnership(ctx, testWallet, "film-8")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.Owned)
	assert.Equal(t, uint64(5), record.Quantity)
	assert.False(t, record.VerifiedOnChain)
	assert.WithinDuration(t, checkedAt.Add(time.Minute), record.LastCheckedAt, time.Millisecond)
}

// =============================================================================
// Tokenization
// =============================================================================

func testTokenization(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	record, err := store.GetTokenization(ctx, "film-9")
	require.NoError(t, err)
	assert.Nil(t, record)

	pending := buildTestTokenization("film-9", domain.TokenizationStatePending, now)
	require.NoError(t, store.SaveTokenization(ctx, pending))

	record, err = store.GetTokenization(ctx, "film-9")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.TokenizationStatePending, record.State)
	assert.Nil(t, record.TokenID)
	assert.Equal(t, testWallet, record.Creator)
	assert.Equal(t, uint64(100), record.Supply)
	assert.Len(t, record.Thresholds, 2)
	assert.Equal(t, "Public Screening", record.Thresholds[1].Label)

	verified := pending
	verified.State = domain.TokenizationStateVerified
	verified.TokenID, _ = new(big.Int).SetString("84059068165473546155149285016063385290432163383802123417848393307093843226497", 10)
	verified.UpdatedAt = now.Add(time.Second)
	require.NoError(t, store.SaveTokenization(ctx, verified))

	record, err = store.GetTokenization(ctx, "film-9")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, record.State)
	require.NotNil(t, record.TokenID)
	assert.Equal(t, 0, verified.TokenID.Cmp(record.TokenID))
}

func testListTokenizationsByState(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, store.SaveTokenization(ctx, buildTestTokenization("film-10", domain.TokenizationStatePending, now.Add(-time.Hour))))
	require.NoError(t, store.SaveTokenization(ctx, buildTestTokenization("film-11", domain.TokenizationStatePending, now.Add(-2*time.Hour))))
	require.NoError(t, store.SaveTokenization(ctx, buildTestTokenization("film-12", domain.TokenizationStatePending, now)))
	require.NoError(t, store.SaveTokenization(ctx, buildTestTokenization("film-13", domain.TokenizationStateVerified, now.Add(-time.Hour))))

	records, err := store.ListTokenizationsByState(ctx, domain.TokenizationStatePending, now.Add(-30*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.ContentID("film-11"), records[0].ContentID)
	assert.Equal(t, domain.ContentID("film-10"), records[1].ContentID)

	records, err = store.ListTokenizationsByState(ctx, domain.TokenizationStatePending, now.Add(-30*time.Minute), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ContentID("film-11"), records[0].ContentID)
}

func testTokenizationFailure(t *testing.T, store Store) {
	ctx := context.Background()

	failure, err := store.GetTokenizationFailure(ctx, "film-14")
	require.NoError(t, err)
	assert.Nil(t, failure)

	require.NoError(t, store.SetTokenizationFailure(ctx, domain.TokenizationFailure{
		ContentID: "film-14",
		Class:     "confirmation_timeout",
		Message:   "not mined",
		FailedAt:  time.Now(),
	}))
	require.NoError(t, store.SetTokenizationFailure(ctx, domain.TokenizationFailure{
		ContentID: "film-14",
		Class:     "verification_failed",
		Message:   "zero balance",
		FailedAt:  time.Now(),
	}))

	failure, err = store.GetTokenizationFailure(ctx, "film-14")
	require.NoError(t, err)
	require.NotNil(t, failure)
	assert.Equal(t, "verification_failed", failure.Class)
	assert.Equal(t, "zero balance", failure.Message)

	require.NoError(t, store.ClearTokenizationFailure(ctx, "film-14"))
	failure, err = store.GetTokenizationFailure(ctx, "film-14")
	require.NoError(t, err)
	assert.Nil(t, failure)

	// clearing a missing flag is not an error
	require.NoError(t, store.ClearTokenizationFailure(ctx, "film-14"))
}

func testRegisteredTokenID(t *testing.T, store Store) {
	ctx := context.Background()

	tokenID, err := store.GetRegisteredTokenID(ctx, "film-15")
	require.NoError(t, err)
	assert.Nil(t, tokenID)

	require.NoError(t, store.SetRegisteredTokenID(ctx, "film-15", big.NewInt(3)))
	require.NoError(t, store.SetRegisteredTokenID(ctx, "film-15", big.NewInt(9)))

	tokenID, err = store.GetRegisteredTokenID(ctx, "film-15")
	require.NoError(t, err)
	require.NotNil(t, tokenID)
	assert.Equal(t, int64(3), tokenID.Int64())
}

// RunStoreTests runs the shared store behaviour against one implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"MergePurchase", testMergePurchase},
		{"MergePurchaseNormalizesWallet", testMergePurchaseNormalizesWallet},
		{"MergePurchaseOrderIndependent", testMergePurchaseOrderIndependent},
		{"MergePurchaseRejectsZeroQuantity", testMergePurchaseRejectsZeroQuantity},
		{"GetPurchaseNotFound", testGetPurchaseNotFound},
		{"ListPurchasesByStatus", testListPurchasesByStatus},
		{"ConfirmPurchase", testConfirmPurchase},
		{"Ownership", testOwnership},
		{"Tokenization", testTokenization},
		{"ListTokenizationsByState", testListTokenizationsByState},
		{"TokenizationFailure", testTokenizationFailure},
		{"RegisteredTokenID", testRegisteredTokenID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
