package tokenization

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/catalog"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
	"github.com/feral-file/ff-rights-ledger/internal/store"
)

// Config holds tokenization coordinator configuration
type Config struct {
	ConfirmationTimeout    time.Duration
	VerificationRetryDelay time.Duration
	Royalty                RoyaltyPolicy
}

// Input are the parameters of a tokenization
type Input struct {
	ContentID     domain.ContentID         `json:"content_id"`
	Creator       string                   `json:"creator"`
	Supply        uint64                   `json:"supply"`
	PricePerToken *big.Int                 `json:"price_per_token"`
	Thresholds    []domain.RightsThreshold `json:"thresholds"`
	RoyaltySplits []domain.RoyaltySplit    `json:"royalty_splits"`
	MetadataURI   string                   `json:"metadata_uri,omitempty"`
	// Force re-tokenizes content that is already verified
	Force bool `json:"force,omitempty"`
}

// Result is the outcome of a tokenization
type Result struct {
	State          domain.TokenizationState `json:"state"`
	TokenID        *big.Int                 `json:"token_id,omitempty"`
	TxHash         string                   `json:"tx_hash,omitempty"`
	MetadataTxHash string                   `json:"metadata_tx_hash,omitempty"`
	Warnings       []string                 `json:"warnings,omitempty"`
}

// Coordinator creates registry tokens for content items and verifies them on chain
//
//go:generate mockgen -source=coordinator.go -destination=../mocks/tokenization_coordinator.go -package=mocks -mock_names=Coordinator=MockTokenizationCoordinator
type Coordinator interface {
	// Tokenize runs NotTokenized -> Pending -> {Verified, FailedUnverified}
	Tokenize(ctx context.Context, input Input) (Result, error)

	// Recover verifies a pending tokenization without sending a new transaction
	Recover(ctx context.Context, contentID domain.ContentID) (Result, error)

	// State returns the tokenization state of a content item
	State(ctx context.Context, contentID domain.ContentID) (domain.TokenizationState, error)

	// Record returns the tokenization record of a content item, nil when absent
	Record(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationRecord, error)

	// Failure returns the persisted failure flag of a content item, nil when absent
	Failure(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationFailure, error)
}

type coordinator struct {
	config    Config
	identity  identity.Identity
	gateway   chain.Gateway
	store     store.Store
	catalog   catalog.Catalog
	publisher messaging.Publisher
	clock     adapter.Clock

	inflight sync.Map
}

// NewCoordinator creates a tokenization coordinator
func NewCoordinator(
	cfg Config,
	identity identity.Identity,
	gateway chain.Gateway,
	st store.Store,
	catalog catalog.Catalog,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Coordinator {
	if cfg.ConfirmationTimeout <= 0 {
		cfg.ConfirmationTimeout = domain.DEFAULT_CONFIRMATION_TIMEOUT
	}
	if cfg.VerificationRetryDelay < 0 {
		cfg.VerificationRetryDelay = domain.DEFAULT_VERIFICATION_RETRY_DELAY
	}

	return &coordinator{
		config:    cfg,
		identity:  identity,
		gateway:   gateway,
		store:     st,
		catalog:   catalog,
		publisher: publisher,
		clock:     clock,
	}
}

func validate(input Input) error {
	if !input.ContentID.Valid() {
		return fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}
	if !domain.ValidAddress(input.Creator) {
		return fmt.Errorf("%w: invalid creator address %q", domain.ErrInvalidParameters, input.Creator)
	}
	if input.Supply == 0 {
		return fmt.Errorf("%w: supply must be positive", domain.ErrInvalidParameters)
	}
	if input.PricePerToken == nil || input.PricePerToken.Sign() <= 0 {
		return fmt.Errorf("%w: price per token must be positive", domain.ErrInvalidParameters)
	}
	return rights.Validate(input.Thresholds, input.Supply)
}

// Tokenize validates the input, creates the film on chain and verifies the creator holds
// the minted supply before marking the content tokenized
func (c *coordinator) Tokenize(ctx context.Context, input Input) (Result, error) {
	result := Result{State: domain.TokenizationStateNotTokenized}

	if err := validate(input); err != nil {
		return result, err
	}
	royalties, err := c.config.Royalty.Augment(input.Creator, input.RoyaltySplits)
	if err != nil {
		return result, err
	}
	input.Creator = domain.NormalizeAddress(input.Creator)
	thresholds := rights.Normalize(input.Thresholds)

	ctx = logger.WithFields(ctx, zap.String("contentID", input.ContentID.String()))

	if _, loaded := c.inflight.LoadOrStore(input.ContentID, struct{}{}); loaded {
		return result, fmt.Errorf("%w: tokenization of %s is already in progress", domain.ErrInvalidParameters, input.ContentID)
	}
	defer c.inflight.Delete(input.ContentID)

	content, err := c.catalog.GetContentByID(ctx, input.ContentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return result, fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err)
		}
		return result, err
	}

	existing, err := c.store.GetTokenization(ctx, input.ContentID)
	if err != nil {
		return result, err
	}
	if existing != nil {
		result.State = existing.State
		result.TokenID = existing.TokenID
		switch existing.State {
		case domain.TokenizationStateVerified:
			if !input.Force {
				return result, fmt.Errorf("%w: %s", domain.ErrAlreadyTokenized, input.ContentID)
			}
			logger.WarnCtx(ctx, "Re-tokenizing verified content", zap.String("tokenID", existing.TokenID.String()))
		case domain.TokenizationStatePending:
			if !input.Force {
				return result, fmt.Errorf("%w: tokenization of %s is pending verification", domain.ErrInvalidParameters, input.ContentID)
			}
			logger.WarnCtx(ctx, "Re-tokenizing content with a pending tokenization")
		}
	}

	creator := common.HexToAddress(input.Creator)
	account, err := c.gateway.Account(ctx)
	if err != nil {
		return result, err
	}
	if account != creator {
		return result, fmt.Errorf("%w: creator %s is not the connected account %s",
			domain.ErrInvalidParameters, input.Creator, account.Hex())
	}

	record := domain.TokenizationRecord{
		ContentID:     input.ContentID,
		State:         domain.TokenizationStatePending,
		Creator:       input.Creator,
		Supply:        input.Supply,
		PricePerToken: input.PricePerToken,
		Thresholds:    thresholds,
		UpdatedAt:     c.clock.Now(),
	}
	if err := c.store.SaveTokenization(ctx, record); err != nil {
		return result, fmt.Errorf("failed to persist pending tokenization: %w", err)
	}
	result.State = domain.TokenizationStatePending
	result.TokenID = nil

	txHash, err := c.gateway.CreateFilm(ctx, chain.CreateFilmParams{
		FilmID:        input.ContentID,
		Title:         content.Title,
		Supply:        input.Supply,
		PricePerToken: input.PricePerToken,
		Thresholds:    thresholds,
		RoyaltySplits: royalties,
	})
	if err != nil {
		return c.fail(ctx, record, result, err)
	}

	record.TxHash = txHash.Hex()
	record.UpdatedAt = c.clock.Now()
	if err := c.store.SaveTokenization(ctx, record); err != nil {
		logger.WarnCtx(ctx, "Failed to persist tokenization tx hash", zap.Error(err))
	}
	result.TxHash = record.TxHash

	logger.InfoCtx(ctx, "Tokenization submitted",
		zap.String("txHash", result.TxHash),
		zap.Uint64("supply", input.Supply))

	tokenID, err := c.confirm(ctx, txHash, input.ContentID, creator)
	if err != nil {
		return c.fail(ctx, record, result, err)
	}
	record.TokenID = tokenID
	result.TokenID = tokenID

	if err := c.verify(ctx, creator, tokenID); err != nil {
		return c.fail(ctx, record, result, err)
	}
	c.identity.Remember(ctx, input.ContentID, tokenID)

	if input.MetadataURI != "" {
		metadataTx, err := c.setMetadata(ctx, record, tokenID, input.MetadataURI)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to set film metadata", zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("metadata not set: %v", err))
		}
		result.MetadataTxHash = metadataTx
	}

	return c.complete(ctx, record, result)
}

// confirm waits for the createFilm receipt and returns the token id it created.
// A confirmation timeout is retried once after the verification retry delay.
func (c *coordinator) confirm(ctx context.Context, txHash common.Hash, contentID domain.ContentID, creator common.Address) (*big.Int, error) {
	receipt, err := c.gateway.WaitForReceipt(ctx, txHash, c.config.ConfirmationTimeout)
	if err != nil {
		if !errors.Is(err, domain.ErrConfirmationTimeout) {
			return nil, err
		}

		logger.WarnCtx(ctx, "Tokenization confirmation timed out, re-verifying",
			zap.String("txHash", txHash.Hex()),
			zap.Duration("retryDelay", c.config.VerificationRetryDelay))
		if !c.sleep(ctx, c.config.VerificationRetryDelay) {
			return nil, ctx.Err()
		}
		return c.lookupToken(ctx, contentID)
	}

	return c.tokenFromReceipt(ctx, receipt, contentID, creator)
}

func (c *coordinator) tokenFromReceipt(ctx context.Context, receipt *types.Receipt, contentID domain.ContentID, creator common.Address) (*big.Int, error) {
	if !chain.Succeeded(receipt) {
		return nil, fmt.Errorf("%w: createFilm transaction %s reverted", domain.ErrVerificationFailed, receipt.TxHash.Hex())
	}

	if tokenID, ok := chain.MintedTokenID(receipt, c.gateway.ContractAddress(), creator); ok {
		return tokenID, nil
	}

	return c.lookupToken(ctx, contentID)
}

// lookupToken finds the token id of a content item created by a transaction without a receipt
func (c *coordinator) lookupToken(ctx context.Context, contentID domain.ContentID) (*big.Int, error) {
	if c.identity.HashKeyed() {
		return identity.ResolveTokenID(contentID), nil
	}

	tokenID, err := c.identity.LookupRegisteredToken(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, fmt.Errorf("%w: no film registered for %s", domain.ErrVerificationFailed, contentID)
		}
		return nil, err
	}

	return tokenID, nil
}

// verify checks the creator holds a positive balance of the minted token
func (c *coordinator) verify(ctx context.Context, creator common.Address, tokenID *big.Int) error {
	balance, err := c.gateway.BalanceOf(ctx, creator, tokenID)
	if err != nil {
		return err
	}
	if balance.Sign() <= 0 {
		return fmt.Errorf("%w: creator holds no tokens of %s", domain.ErrVerificationFailed, tokenID)
	}

	logger.DebugCtx(ctx, "Tokenization verified on chain",
		zap.String("tokenID", tokenID.String()),
		zap.String("balance", balance.String()))

	return nil
}

func (c *coordinator) setMetadata(ctx context.Context, record domain.TokenizationRecord, tokenID *big.Int, uri string) (string, error) {
	txHash, err := c.gateway.SetFilmMetadata(ctx, tokenID, uri)
	if err != nil {
		return "", err
	}

	receipt, err := c.gateway.WaitForReceipt(ctx, txHash, c.config.ConfirmationTimeout)
	if err != nil {
		return txHash.Hex(), err
	}
	if !chain.Succeeded(receipt) {
		return txHash.Hex(), fmt.Errorf("%w: setFilmMetadata transaction %s reverted", domain.ErrVerificationFailed, txHash.Hex())
	}

	event := c.event(messaging.EventTypeTokenizationMetadataSet, record, tokenID)
	event.TxHash = txHash.Hex()
	event.Message = uri
	c.publish(ctx, event)

	return txHash.Hex(), nil
}

// complete marks the content tokenized and persists the verified state. A catalog
// failure leaves the record pending so that Recover can finish it.
func (c *coordinator) complete(ctx context.Context, record domain.TokenizationRecord, result Result) (Result, error) {
	if err := c.catalog.MarkTokenized(ctx, record.ContentID, record.TokenID, record.Supply, record.PricePerToken, record.Thresholds); err != nil {
		record.UpdatedAt = c.clock.Now()
		if saveErr := c.store.SaveTokenization(ctx, record); saveErr != nil {
			logger.WarnCtx(ctx, "Failed to persist pending tokenization", zap.Error(saveErr))
		}
		return result, fmt.Errorf("failed to mark content tokenized: %w", err)
	}

	record.State = domain.TokenizationStateVerified
	record.UpdatedAt = c.clock.Now()
	if err := c.store.SaveTokenization(ctx, record); err != nil {
		return result, fmt.Errorf("failed to persist verified tokenization: %w", err)
	}
	if err := c.store.ClearTokenizationFailure(ctx, record.ContentID); err != nil {
		logger.WarnCtx(ctx, "Failed to clear tokenization failure flag", zap.Error(err))
	}

	result.State = domain.TokenizationStateVerified
	result.TokenID = record.TokenID

	event := c.event(messaging.EventTypeTokenizationVerified, record, record.TokenID)
	event.TxHash = record.TxHash
	event.Quantity = record.Supply
	c.publish(ctx, event)

	logger.InfoCtx(ctx, "Tokenization verified",
		zap.String("tokenID", record.TokenID.String()),
		zap.String("txHash", record.TxHash))

	return result, nil
}

// fail persists FailedUnverified with the failure flag and returns the classified error
func (c *coordinator) fail(ctx context.Context, record domain.TokenizationRecord, result Result, cause error) (Result, error) {
	cause = chain.ClassifyError(cause)
	now := c.clock.Now()

	record.State = domain.TokenizationStateFailedUnverified
	record.UpdatedAt = now
	if err := c.store.SaveTokenization(ctx, record); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist failed tokenization: %w", err))
	}
	if err := c.store.SetTokenizationFailure(ctx, domain.TokenizationFailure{
		ContentID: record.ContentID,
		Class:     domain.ErrorClass(cause),
		Message:   cause.Error(),
		FailedAt:  now,
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist tokenization failure flag: %w", err))
	}

	result.State = domain.TokenizationStateFailedUnverified

	event := c.event(messaging.EventTypeTokenizationFailed, record, record.TokenID)
	event.TxHash = record.TxHash
	event.ErrorClass = domain.ErrorClass(cause)
	event.Message = cause.Error()
	c.publish(ctx, event)

	logger.WarnCtx(ctx, "Tokenization failed",
		zap.Error(cause),
		zap.String("class", domain.ErrorClass(cause)),
		zap.String("txHash", record.TxHash))

	return result, cause
}

// Recover finishes a pending tokenization left behind by a crash or a catalog failure
func (c *coordinator) Recover(ctx context.Context, contentID domain.ContentID) (Result, error) {
	record, err := c.store.GetTokenization(ctx, contentID)
	if err != nil {
		return Result{}, err
	}
	if record == nil {
		return Result{State: domain.TokenizationStateNotTokenized},
			fmt.Errorf("%w: no tokenization of %s", domain.ErrInvalidParameters, contentID)
	}

	result := Result{State: record.State, TokenID: record.TokenID, TxHash: record.TxHash}
	if record.State != domain.TokenizationStatePending {
		return result, nil
	}

	if _, loaded := c.inflight.LoadOrStore(contentID, struct{}{}); loaded {
		return result, fmt.Errorf("%w: tokenization of %s is already in progress", domain.ErrInvalidParameters, contentID)
	}
	defer c.inflight.Delete(contentID)

	ctx = logger.WithFields(ctx, zap.String("contentID", contentID.String()))
	logger.InfoCtx(ctx, "Recovering pending tokenization", zap.String("txHash", record.TxHash))

	tokenID := record.TokenID
	if tokenID == nil {
		tokenID, err = c.lookupToken(ctx, contentID)
		if err != nil {
			if errors.Is(err, domain.ErrVerificationFailed) {
				return c.fail(ctx, *record, result, err)
			}
			return result, err
		}
		record.TokenID = tokenID
		result.TokenID = tokenID
	}

	if err := c.verify(ctx, common.HexToAddress(record.Creator), tokenID); err != nil {
		if errors.Is(err, domain.ErrVerificationFailed) {
			return c.fail(ctx, *record, result, err)
		}
		return result, err
	}
	c.identity.Remember(ctx, contentID, tokenID)

	return c.complete(ctx, *record, result)
}

// State returns the tokenization state, NotTokenized when no record exists
func (c *coordinator) State(ctx context.Context, contentID domain.ContentID) (domain.TokenizationState, error) {
	record, err := c.store.GetTokenization(ctx, contentID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return domain.TokenizationStateNotTokenized, nil
	}
	return record.State, nil
}

func (c *coordinator) Record(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationRecord, error) {
	return c.store.GetTokenization(ctx, contentID)
}

func (c *coordinator) Failure(ctx context.Context, contentID domain.ContentID) (*domain.TokenizationFailure, error) {
	return c.store.GetTokenizationFailure(ctx, contentID)
}

func (c *coordinator) event(eventType messaging.EventType, record domain.TokenizationRecord, tokenID *big.Int) messaging.Event {
	event := messaging.NewEvent(eventType, c.gateway.Chain(), record.ContentID, tokenID, c.clock.Now())
	event.Wallet = record.Creator
	return event
}

func (c *coordinator) publish(ctx context.Context, event messaging.Event) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish tokenization event", zap.Error(err), zap.String("eventType", string(event.Type)))
	}
}

func (c *coordinator) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	select {
	case <-c.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
