package tokenization_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/mocks"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

const (
	testCreator  = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testPlatform = "0x2222222222222222222222222222222222222222"
	testContent  = domain.ContentID("film-1")

	testRetryDelay = time.Second
)

var (
	testTokenID      = big.NewInt(7)
	testContract     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testCreatorAddr  = common.HexToAddress(testCreator)
	testTxHash       = common.HexToHash("0xf11a")
	testMetadataHash = common.HexToHash("0x3e7a")
	testThresholds   = []domain.RightsThreshold{
		{Quantity: 100, Label: "Commercial"},
		{Quantity: 1, Label: "Personal"},
	}
	testSortedThresholds = []domain.RightsThreshold{
		{Quantity: 1, Label: "Personal"},
		{Quantity: 100, Label: "Commercial"},
	}
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testTokenizationMocks contains the mocks and the coordinator under test
type testTokenizationMocks struct {
	ctrl      *gomock.Controller
	identity  *mocks.MockIdentity
	gateway   *mocks.MockGateway
	catalog   *mocks.MockCatalog
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	store     store.Store
	now       time.Time

	mu     sync.Mutex
	events []messaging.Event

	coordinator tokenization.Coordinator
}

func setupTestTokenization(t *testing.T) *testTokenizationMocks {
	ctrl := gomock.NewController(t)

	tm := &testTokenizationMocks{
		ctrl:      ctrl,
		identity:  mocks.NewMockIdentity(ctrl),
		gateway:   mocks.NewMockGateway(ctrl),
		catalog:   mocks.NewMockCatalog(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		store:     store.NewMemoryStore(),
		now:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tm.clock.EXPECT().Now().DoAndReturn(func() time.Time { return tm.now }).AnyTimes()
	tm.clock.EXPECT().After(testRetryDelay).DoAndReturn(func(d time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- tm.now.Add(d)
		return ch
	}).AnyTimes()
	tm.gateway.EXPECT().Chain().Return(domain.ChainEthereumSepolia).AnyTimes()
	tm.gateway.EXPECT().ContractAddress().Return(testContract).AnyTimes()
	tm.identity.EXPECT().HashKeyed().Return(false).AnyTimes()
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event messaging.Event) error {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		tm.events = append(tm.events, event)
		return nil
	}).AnyTimes()

	tm.coordinator = tokenization.NewCoordinator(
		tokenization.Config{
			ConfirmationTimeout:    time.Minute,
			VerificationRetryDelay: testRetryDelay,
			Royalty: tokenization.RoyaltyPolicy{
				PlatformRecipient:   testPlatform,
				PlatformBasisPoints: 500,
			},
		},
		tm.identity, tm.gateway, tm.store, tm.catalog, tm.publisher, tm.clock,
	)

	return tm
}

func tearDownTestTokenization(mocks *testTokenizationMocks) {
	mocks.ctrl.Finish()
}

func (m *testTokenizationMocks) eventTypes() []messaging.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]messaging.EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

func mintReceipt(txHash common.Hash, supply int64) *types.Receipt {
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: txHash,
		Logs: []*types.Log{
			chain.EncodeTransferSingle(testContract, chain.TransferSingle{
				Operator: testCreatorAddr,
				To:       testCreatorAddr,
				TokenID:  testTokenID,
				Value:    big.NewInt(supply),
			}),
		},
	}
}

func input() tokenization.Input {
	return tokenization.Input{
		ContentID:     testContent,
		Creator:       testCreator,
		Supply:        1000,
		PricePerToken: big.NewInt(5),
		Thresholds:    testThresholds,
	}
}

// expectSubmit expects the catalog read, the account check and the createFilm submission
func (m *testTokenizationMocks) expectSubmit() {
	m.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).
		Return(&domain.Content{ID: testContent, Title: "Film One"}, nil)
	m.gateway.EXPECT().Account(gomock.Any()).Return(testCreatorAddr, nil)
	m.gateway.EXPECT().CreateFilm(gomock.Any(), gomock.Any()).Return(testTxHash, nil)
}

func (m *testTokenizationMocks) expectVerified() {
	m.gateway.EXPECT().BalanceOf(gomock.Any(), testCreatorAddr, testTokenID).Return(big.NewInt(1000), nil)
	m.identity.EXPECT().Remember(gomock.Any(), testContent, testTokenID)
	m.catalog.EXPECT().MarkTokenized(gomock.Any(), testContent, testTokenID, uint64(1000), big.NewInt(5), testSortedThresholds).Return(nil)
}

func TestTokenize_Verified(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	var params chain.CreateFilmParams
	mocks.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).
		Return(&domain.Content{ID: testContent, Title: "Film One"}, nil)
	mocks.gateway.EXPECT().Account(gomock.Any()).Return(testCreatorAddr, nil)
	mocks.gateway.EXPECT().CreateFilm(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, p chain.CreateFilmParams) (common.Hash, error) {
			// pending is persisted before the transaction is sent
			record, err := mocks.store.GetTokenization(ctx, testContent)
			require.NoError(t, err)
			require.NotNil(t, record)
			assert.Equal(t, domain.TokenizationStatePending, record.State)

			params = p
			return testTxHash, nil
		})
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.expectVerified()

	result, err := mocks.coordinator.Tokenize(ctx, input())
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
	assert.Equal(t, testTokenID, result.TokenID)
	assert.Equal(t, testTxHash.Hex(), result.TxHash)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, testContent, params.FilmID)
	assert.Equal(t, "Film One", params.Title)
	assert.Equal(t, testSortedThresholds, params.Thresholds)
	assert.Equal(t, []domain.RoyaltySplit{
		{Recipient: testCreator, BasisPoints: 9500},
		{Recipient: testPlatform, BasisPoints: 500},
	}, params.RoyaltySplits)

	state, err := mocks.coordinator.State(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, state)

	record, err := mocks.coordinator.Record(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, testTokenID, record.TokenID)

	failure, err := mocks.coordinator.Failure(ctx, testContent)
	require.NoError(t, err)
	assert.Nil(t, failure)

	assert.Equal(t, []messaging.EventType{messaging.EventTypeTokenizationVerified}, mocks.eventTypes())
}

func TestTokenize_ZeroBalanceFailsUnverified(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.gateway.EXPECT().BalanceOf(gomock.Any(), testCreatorAddr, testTokenID).Return(big.NewInt(0), nil)
	mocks.catalog.EXPECT().MarkTokenized(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := mocks.coordinator.Tokenize(ctx, input())
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, result.State)

	state, err := mocks.coordinator.State(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, state)

	failure, err := mocks.coordinator.Failure(ctx, testContent)
	require.NoError(t, err)
	require.NotNil(t, failure)
	assert.Equal(t, "verification_failed", failure.Class)
	assert.Equal(t, mocks.now, failure.FailedAt)

	assert.Equal(t, []messaging.EventType{messaging.EventTypeTokenizationFailed}, mocks.eventTypes())
}

func TestTokenize_RevertedReceiptFails(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).
		Return(&types.Receipt{Status: types.ReceiptStatusFailed, TxHash: testTxHash}, nil)

	result, err := mocks.coordinator.Tokenize(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, result.State)
}

func TestTokenize_SubmissionErrorIsClassified(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	mocks.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).Return(&domain.Content{ID: testContent}, nil)
	mocks.gateway.EXPECT().Account(gomock.Any()).Return(testCreatorAddr, nil)
	mocks.gateway.EXPECT().CreateFilm(gomock.Any(), gomock.Any()).Return(common.Hash{}, errors.New("user denied transaction signature"))

	result, err := mocks.coordinator.Tokenize(ctx, input())
	require.ErrorIs(t, err, domain.ErrWalletRejected)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, result.State)

	failure, err := mocks.coordinator.Failure(ctx, testContent)
	require.NoError(t, err)
	require.NotNil(t, failure)
	assert.Equal(t, "wallet_rejected", failure.Class)
}

func TestTokenize_TimeoutThenVerified(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(nil, domain.ErrConfirmationTimeout)
	mocks.identity.EXPECT().LookupRegisteredToken(gomock.Any(), testContent).Return(testTokenID, nil)
	mocks.expectVerified()

	result, err := mocks.coordinator.Tokenize(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
}

func TestTokenize_TimeoutThenNotRegistered(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(nil, domain.ErrConfirmationTimeout)
	mocks.identity.EXPECT().LookupRegisteredToken(gomock.Any(), testContent).Return(nil, domain.ErrTokenNotFound)

	result, err := mocks.coordinator.Tokenize(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, result.State)
}

func TestTokenize_MetadataFailureIsWarning(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.expectVerified()
	mocks.gateway.EXPECT().SetFilmMetadata(gomock.Any(), testTokenID, "ipfs://meta").Return(common.Hash{}, domain.ErrInsufficientFunds)

	in := input()
	in.MetadataURI = "ipfs://meta"
	result, err := mocks.coordinator.Tokenize(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "metadata not set")
}

func TestTokenize_MetadataSet(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.expectVerified()
	mocks.gateway.EXPECT().SetFilmMetadata(gomock.Any(), testTokenID, "ipfs://meta").Return(testMetadataHash, nil)
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testMetadataHash, time.Minute).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: testMetadataHash}, nil)

	in := input()
	in.MetadataURI = "ipfs://meta"
	result, err := mocks.coordinator.Tokenize(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, testMetadataHash.Hex(), result.MetadataTxHash)
	assert.Equal(t, []messaging.EventType{
		messaging.EventTypeTokenizationMetadataSet,
		messaging.EventTypeTokenizationVerified,
	}, mocks.eventTypes())
}

func TestTokenize_AlreadyTokenized(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	require.NoError(t, mocks.store.SaveTokenization(ctx, domain.TokenizationRecord{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
		TokenID:   testTokenID,
		Creator:   testCreator,
		Supply:    1000,
	}))
	mocks.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).Return(&domain.Content{ID: testContent}, nil)

	result, err := mocks.coordinator.Tokenize(ctx, input())
	require.ErrorIs(t, err, domain.ErrAlreadyTokenized)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
}

func TestTokenize_ForceRetokenizes(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	require.NoError(t, mocks.store.SaveTokenization(ctx, domain.TokenizationRecord{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
		TokenID:   big.NewInt(3),
		Creator:   testCreator,
		Supply:    10,
	}))
	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.expectVerified()

	in := input()
	in.Force = true
	result, err := mocks.coordinator.Tokenize(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, testTokenID, result.TokenID)
}

func TestTokenize_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *tokenization.Input)
	}{
		{"empty content", func(in *tokenization.Input) { in.ContentID = "" }},
		{"missing creator", func(in *tokenization.Input) { in.Creator = "" }},
		{"bad creator", func(in *tokenization.Input) { in.Creator = "0x123" }},
		{"zero supply", func(in *tokenization.Input) { in.Supply = 0 }},
		{"no price", func(in *tokenization.Input) { in.PricePerToken = nil }},
		{"threshold above supply", func(in *tokenization.Input) {
			in.Thresholds = []domain.RightsThreshold{{Quantity: 5000, Label: "Everything"}}
		}},
		{"duplicate thresholds", func(in *tokenization.Input) {
			in.Thresholds = []domain.RightsThreshold{{Quantity: 1, Label: "A"}, {Quantity: 1, Label: "B"}}
		}},
		{"platform in splits", func(in *tokenization.Input) {
			in.RoyaltySplits = []domain.RoyaltySplit{{Recipient: testPlatform, BasisPoints: 100}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestTokenization(t)
			defer tearDownTestTokenization(mocks)

			in := input()
			tt.modify(&in)
			result, err := mocks.coordinator.Tokenize(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidParameters)
			assert.Equal(t, domain.TokenizationStateNotTokenized, result.State)
		})
	}
}

func TestTokenize_ContentNotFound(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	mocks.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).Return(nil, domain.ErrContentNotFound)

	_, err := mocks.coordinator.Tokenize(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestTokenize_CreatorIsNotConnectedAccount(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	mocks.catalog.EXPECT().GetContentByID(gomock.Any(), testContent).Return(&domain.Content{ID: testContent}, nil)
	mocks.gateway.EXPECT().Account(gomock.Any()).Return(common.HexToAddress(testPlatform), nil)

	_, err := mocks.coordinator.Tokenize(ctx, input())
	require.ErrorIs(t, err, domain.ErrInvalidParameters)

	state, err := mocks.coordinator.State(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateNotTokenized, state)
}

func TestTokenize_CatalogFailureLeavesPending(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	mocks.expectSubmit()
	mocks.gateway.EXPECT().WaitForReceipt(gomock.Any(), testTxHash, time.Minute).Return(mintReceipt(testTxHash, 1000), nil)
	mocks.gateway.EXPECT().BalanceOf(gomock.Any(), testCreatorAddr, testTokenID).Return(big.NewInt(1000), nil)
	mocks.identity.EXPECT().Remember(gomock.Any(), testContent, testTokenID)
	mocks.catalog.EXPECT().MarkTokenized(gomock.Any(), testContent, testTokenID, uint64(1000), big.NewInt(5), testSortedThresholds).
		Return(errors.New("connection refused"))

	_, err := mocks.coordinator.Tokenize(ctx, input())
	require.Error(t, err)

	record, err := mocks.coordinator.Record(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStatePending, record.State)
	assert.Equal(t, testTokenID, record.TokenID)

	// recovery only needs the balance check and the catalog write
	mocks.expectVerified()
	result, err := mocks.coordinator.Recover(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
}

func TestRecover_PendingWithoutTokenID(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	require.NoError(t, mocks.store.SaveTokenization(ctx, domain.TokenizationRecord{
		ContentID:     testContent,
		State:         domain.TokenizationStatePending,
		Creator:       testCreator,
		Supply:        1000,
		PricePerToken: big.NewInt(5),
		Thresholds:    testSortedThresholds,
		TxHash:        testTxHash.Hex(),
	}))
	mocks.identity.EXPECT().LookupRegisteredToken(gomock.Any(), testContent).Return(testTokenID, nil)
	mocks.expectVerified()

	result, err := mocks.coordinator.Recover(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
	assert.Equal(t, testTokenID, result.TokenID)
}

func TestRecover_NeverLandedFails(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	require.NoError(t, mocks.store.SaveTokenization(ctx, domain.TokenizationRecord{
		ContentID: testContent,
		State:     domain.TokenizationStatePending,
		Creator:   testCreator,
		Supply:    1000,
	}))
	mocks.identity.EXPECT().LookupRegisteredToken(gomock.Any(), testContent).Return(nil, domain.ErrTokenNotFound)

	result, err := mocks.coordinator.Recover(ctx, testContent)
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Equal(t, domain.TokenizationStateFailedUnverified, result.State)

	failure, err := mocks.coordinator.Failure(ctx, testContent)
	require.NoError(t, err)
	require.NotNil(t, failure)
}

func TestRecover_NotPendingIsNoop(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)
	ctx := context.Background()

	require.NoError(t, mocks.store.SaveTokenization(ctx, domain.TokenizationRecord{
		ContentID: testContent,
		State:     domain.TokenizationStateVerified,
		TokenID:   testTokenID,
		Creator:   testCreator,
		Supply:    1000,
	}))

	result, err := mocks.coordinator.Recover(ctx, testContent)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenizationStateVerified, result.State)
}

func TestRecover_Unknown(t *testing.T) {
	mocks := setupTestTokenization(t)
	defer tearDownTestTokenization(mocks)

	_, err := mocks.coordinator.Recover(context.Background(), testContent)
	require.ErrorIs(t, err, domain.ErrInvalidParameters)
}
