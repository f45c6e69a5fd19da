package purchase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/ownership"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
	"github.com/feral-file/ff-rights-ledger/internal/store"
)

// State is the state of a purchase flow
type State string

const (
	StateInitiated         State = "initiated"
	StateSubmitted         State = "submitted"
	StateConfirmedVerified State = "confirmed_verified"
	StatePaidButUnverified State = "paid_but_unverified"
	StateFailed            State = "failed"
)

// WarningPaidButUnverified is surfaced to the buyer when access is granted before the
// transfer is visible on chain
const WarningPaidButUnverified = "payment sent but the token transfer is not confirmed yet; access is granted while it is re-verified"

var errNotYetVerified = errors.New("balance below ledger quantity")

// Config holds purchase coordinator configuration
type Config struct {
	ConfirmationTimeout    time.Duration
	VerificationRetryDelay time.Duration
	Reverification         ReverificationConfig
}

// ReverificationConfig holds the background re-verification pool and backoff settings
type ReverificationConfig struct {
	PoolSize        int
	QueueSize       int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Input are the parameters of a purchase
type Input struct {
	ContentID     domain.ContentID
	Wallet        string
	Quantity      uint64
	PricePerToken *big.Int
}

// Result is the outcome of a purchase
type Result struct {
	State   State                  `json:"state"`
	Record  *domain.PurchaseRecord `json:"record,omitempty"`
	TokenID *big.Int               `json:"token_id,omitempty"`
	TxHash  string                 `json:"tx_hash,omitempty"`
	// Rights are the tiers unlocked by the wallet's total after the purchase
	Rights  []string `json:"rights,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

// Coordinator runs token purchases and reconciles them into the local ledger
//
//go:generate mockgen -source=coordinator.go -destination=../mocks/purchase_coordinator.go -package=mocks -mock_names=Coordinator=MockPurchaseCoordinator
type Coordinator interface {
	// Purchase pays for tokens, confirms the transfer and merges the ledger record
	Purchase(ctx context.Context, input Input) (Result, error)

	// Reverify confirms a paid but unverified record once the chain balance covers it
	Reverify(ctx context.Context, wallet string, contentID domain.ContentID) (bool, error)

	// ScheduleReverification retries Reverify in the background with exponential backoff
	ScheduleReverification(wallet string, contentID domain.ContentID)

	// Record returns the ledger record of a wallet for a content item, nil when absent
	Record(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.PurchaseRecord, error)

	// Close stops background re-verification and waits for running tasks
	Close()
}

type coordinator struct {
	config    Config
	identity  identity.Identity
	gateway   chain.Gateway
	store     store.Store
	cache     ownership.Cache
	resolver  rights.ThresholdResolver
	publisher messaging.Publisher
	clock     adapter.Clock

	locks  *keyedMutex
	pool   pond.Pool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCoordinator creates a purchase coordinator with its re-verification pool
func NewCoordinator(
	cfg Config,
	identity identity.Identity,
	gateway chain.Gateway,
	st store.Store,
	cache ownership.Cache,
	resolver rights.ThresholdResolver,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Coordinator {
	if cfg.ConfirmationTimeout <= 0 {
		cfg.ConfirmationTimeout = domain.DEFAULT_CONFIRMATION_TIMEOUT
	}
	if cfg.VerificationRetryDelay < 0 {
		cfg.VerificationRetryDelay = domain.DEFAULT_VERIFICATION_RETRY_DELAY
	}
	if cfg.Reverification.PoolSize <= 0 {
		cfg.Reverification.PoolSize = 1
	}
	if cfg.Reverification.InitialInterval <= 0 {
		cfg.Reverification.InitialInterval = backoff.DefaultInitialInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &coordinator{
		config:    cfg,
		identity:  identity,
		gateway:   gateway,
		store:     st,
		cache:     cache,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
		locks:     newKeyedMutex(),
		pool: pond.NewPool(
			cfg.Reverification.PoolSize,
			pond.WithQueueSize(cfg.Reverification.QueueSize),
			pond.WithContext(ctx),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

func validate(input Input) error {
	if !input.ContentID.Valid() {
		return fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}
	if input.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidParameters)
	}
	if input.PricePerToken == nil || input.PricePerToken.Sign() <= 0 {
		return fmt.Errorf("%w: price per token must be positive", domain.ErrInvalidParameters)
	}
	if !domain.ValidAddress(input.Wallet) {
		return fmt.Errorf("%w: invalid wallet address %q", domain.ErrInvalidParameters, input.Wallet)
	}
	return nil
}

// Purchase runs Initiated -> Submitted -> {ConfirmedVerified, PaidButUnverified, Failed}.
// A Failed purchase never mutates the ledger.
func (c *coordinator) Purchase(ctx context.Context, input Input) (Result, error) {
	result := Result{State: StateInitiated}

	if err := validate(input); err != nil {
		return failed(result, err)
	}
	input.Wallet = domain.NormalizeAddress(input.Wallet)
	ctx = logger.WithFields(ctx,
		zap.String("contentID", input.ContentID.String()),
		zap.String("wallet", input.Wallet))

	tokenID, err := c.identity.Resolve(ctx, input.ContentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			err = fmt.Errorf("%w: content %s is not tokenized", domain.ErrInvalidParameters, input.ContentID)
		}
		return failed(result, err)
	}
	result.TokenID = tokenID

	buyer := common.HexToAddress(input.Wallet)
	account, err := c.gateway.Account(ctx)
	if err != nil {
		return failed(result, err)
	}
	if account != buyer {
		return failed(result, fmt.Errorf("%w: wallet %s is not the connected account %s",
			domain.ErrInvalidParameters, input.Wallet, account.Hex()))
	}

	previous, err := c.gateway.BalanceOf(ctx, buyer, tokenID)
	if err != nil {
		return failed(result, err)
	}

	value := new(big.Int).Mul(input.PricePerToken, new(big.Int).SetUint64(input.Quantity))
	txHash, err := c.gateway.PurchaseTokens(ctx, tokenID, input.Quantity, value)
	if err != nil {
		if errors.Is(err, domain.ErrPartialSuccessPaymentOnly) {
			if txHash != (common.Hash{}) {
				result.TxHash = txHash.Hex()
			}
			logger.WarnCtx(ctx, "Purchase payment sent without a confirmed transfer", zap.Error(err))
			return c.paidButUnverified(ctx, input, result)
		}
		return failed(result, err)
	}
	result.State = StateSubmitted
	result.TxHash = txHash.Hex()

	logger.InfoCtx(ctx, "Purchase submitted",
		zap.String("txHash", result.TxHash),
		zap.Uint64("quantity", input.Quantity),
		zap.String("value", value.String()))

	receipt, err := c.gateway.WaitForReceipt(ctx, txHash, c.config.ConfirmationTimeout)
	if err != nil {
		if !errors.Is(err, domain.ErrConfirmationTimeout) {
			return failed(result, err)
		}

		// the transaction may still land, verify once more after a settle delay
		logger.WarnCtx(ctx, "Purchase confirmation timed out, re-verifying",
			zap.String("txHash", result.TxHash),
			zap.Duration("retryDelay", c.config.VerificationRetryDelay))
		if !c.sleep(ctx, c.config.VerificationRetryDelay) {
			return failed(result, ctx.Err())
		}

		balance, err := c.verifyBalance(ctx, buyer, tokenID, previous, input.Quantity)
		if err != nil {
			return failed(result, fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err))
		}
		return c.confirmed(ctx, input, result, balance)
	}

	if !chain.Succeeded(receipt) {
		return failed(result, fmt.Errorf("%w: purchase transaction %s reverted", domain.ErrVerificationFailed, result.TxHash))
	}

	transferred := chain.TransferredTo(receipt, c.gateway.ContractAddress(), buyer, tokenID)
	if transferred == nil || transferred.Sign() == 0 {
		logger.WarnCtx(ctx, "Purchase receipt carries no transfer to the buyer", zap.String("txHash", result.TxHash))
		return c.paidButUnverified(ctx, input, result)
	}

	balance, err := c.verifyBalance(ctx, buyer, tokenID, previous, input.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationFailed) {
			return failed(result, err)
		}
		// the receipt proves the transfer, only the balance read failed
		logger.WarnCtx(ctx, "Failed to read balance after a confirmed transfer", zap.Error(err))
		return c.paidButUnverified(ctx, input, result)
	}

	return c.confirmed(ctx, input, result, balance)
}

// verifyBalance reads the buyer balance and checks it reflects the purchase
func (c *coordinator) verifyBalance(ctx context.Context, buyer common.Address, tokenID, previous *big.Int, quantity uint64) (*big.Int, error) {
	balance, err := c.gateway.BalanceOf(ctx, buyer, tokenID)
	if err != nil {
		return nil, err
	}

	expected := new(big.Int).Add(previous, new(big.Int).SetUint64(quantity))
	if balance.Cmp(expected) < 0 {
		return nil, fmt.Errorf("%w: balance %s below expected %s", domain.ErrVerificationFailed, balance, expected)
	}

	return balance, nil
}

func (c *coordinator) confirmed(ctx context.Context, input Input, result Result, balance *big.Int) (Result, error) {
	record, err := c.merge(ctx, input, domain.ReconciliationStatusConfirmed, result.TxHash)
	if err != nil {
		return failed(result, err)
	}
	c.cache.Invalidate(input.Wallet, input.ContentID)

	result.State = StateConfirmedVerified
	result.Record = record
	result.Rights = c.rightsFor(ctx, input.ContentID, domain.QuantityFromBig(balance))

	c.publish(ctx, messaging.EventTypePurchaseConfirmed, input, result)
	logger.InfoCtx(ctx, "Purchase confirmed",
		zap.Uint64("quantity", input.Quantity),
		zap.Uint64("total", record.Quantity))

	return result, nil
}

func (c *coordinator) paidButUnverified(ctx context.Context, input Input, result Result) (Result, error) {
	record, err := c.merge(ctx, input, domain.ReconciliationStatusPaidButUnverified, result.TxHash)
	if err != nil {
		return failed(result, err)
	}
	c.cache.Bump(input.Wallet, input.ContentID, input.Quantity)
	c.ScheduleReverification(input.Wallet, input.ContentID)

	result.State = StatePaidButUnverified
	result.Record = record
	result.Rights = c.rightsFor(ctx, input.ContentID, record.Quantity)
	result.Warning = WarningPaidButUnverified

	c.publish(ctx, messaging.EventTypePurchasePaidUnverified, input, result)

	return result, nil
}

// merge adds the purchase to the ledger, serialized per (wallet, content)
func (c *coordinator) merge(ctx context.Context, input Input, status domain.ReconciliationStatus, txHash string) (*domain.PurchaseRecord, error) {
	unlock := c.locks.Lock(input.Wallet, input.ContentID)
	defer unlock()

	record, err := c.store.MergePurchase(ctx, domain.PurchaseRecord{
		ContentID:            input.ContentID,
		Wallet:               input.Wallet,
		Quantity:             input.Quantity,
		PricePerToken:        input.PricePerToken,
		PurchasedAt:          c.clock.Now(),
		ReconciliationStatus: status,
		TxHash:               txHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	return record, nil
}

func (c *coordinator) rightsFor(ctx context.Context, contentID domain.ContentID, owned uint64) []string {
	resolution, err := c.resolver.ResolveThresholds(ctx, contentID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve rights thresholds", zap.Error(err))
		return rights.RightsFor(owned, nil)
	}
	return resolution.Rights(owned)
}

func (c *coordinator) publish(ctx context.Context, eventType messaging.EventType, input Input, result Result) {
	event := messaging.NewEvent(eventType, c.gateway.Chain(), input.ContentID, result.TokenID, c.clock.Now())
	event.Wallet = input.Wallet
	event.Quantity = input.Quantity
	event.TxHash = result.TxHash

	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish purchase event", zap.Error(err), zap.String("eventType", string(eventType)))
	}
}

// sleep waits for d and reports false when ctx is done first
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

// Reverify confirms a paid but unverified record when the chain balance covers the
// ledger quantity. It returns whether the record is confirmed.
func (c *coordinator) Reverify(ctx context.Context, wallet string, contentID domain.ContentID) (bool, error) {
	wallet = domain.NormalizeAddress(wallet)

	record, err := c.store.GetPurchase(ctx, wallet, contentID)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, fmt.Errorf("%w: no purchase of %s by %s", domain.ErrInvalidParameters, contentID, wallet)
	}
	if record.ReconciliationStatus == domain.ReconciliationStatusConfirmed {
		return true, nil
	}

	tokenID, err := c.identity.Resolve(ctx, contentID)
	if err != nil {
		return false, err
	}

	balance, err := c.gateway.BalanceOf(ctx, common.HexToAddress(wallet), tokenID)
	if err != nil {
		return false, err
	}

	verified := domain.QuantityFromBig(balance)
	if verified < record.Quantity {
		logger.DebugCtx(ctx, "Purchase not yet visible on chain",
			zap.String("wallet", wallet),
			zap.String("contentID", contentID.String()),
			zap.Uint64("balance", verified),
			zap.Uint64("ledger", record.Quantity))
		return false, nil
	}

	unlock := c.locks.Lock(wallet, contentID)
	confirmed, err := c.store.ConfirmPurchase(ctx, wallet, contentID, verified)
	unlock()
	if err != nil {
		return false, err
	}
	if !confirmed {
		// a concurrent merge grew the record past the balance just read
		return false, nil
	}

	c.cache.Invalidate(wallet, contentID)

	event := messaging.NewEvent(messaging.EventTypePurchaseReconciled, c.gateway.Chain(), contentID, tokenID, c.clock.Now())
	event.Wallet = wallet
	event.Quantity = record.Quantity
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish purchase event", zap.Error(err), zap.String("eventType", string(event.Type)))
	}

	logger.InfoCtx(ctx, "Purchase reconciled",
		zap.String("wallet", wallet),
		zap.String("contentID", contentID.String()),
		zap.Uint64("quantity", record.Quantity))

	return true, nil
}

// ScheduleReverification submits a best effort re-verification to the worker pool
func (c *coordinator) ScheduleReverification(wallet string, contentID domain.ContentID) {
	ctx := logger.WithFields(c.ctx,
		zap.String("wallet", wallet),
		zap.String("contentID", contentID.String()))

	c.pool.Submit(func() {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = c.config.Reverification.InitialInterval

		// the transfer is not visible yet right after the purchase
		if !c.sleep(ctx, b.InitialInterval) {
			return
		}
		if c.config.Reverification.MaxInterval > 0 {
			b.MaxInterval = c.config.Reverification.MaxInterval
		}
		b.MaxElapsedTime = c.config.Reverification.MaxElapsedTime

		operation := func() error {
			confirmed, err := c.Reverify(ctx, wallet, contentID)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidParameters) {
					return backoff.Permanent(err)
				}
				return err
			}
			if !confirmed {
				return errNotYetVerified
			}
			return nil
		}

		var attempts int
		notify := func(err error, d time.Duration) {
			attempts++
			logger.DebugCtx(ctx, "Re-verification pending, retrying",
				zap.Error(err),
				zap.Int("attempt", attempts),
				zap.Duration("next_retry_in", d))
		}

		if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.WarnCtx(ctx, "Re-verification gave up, record stays paid but unverified",
				zap.Error(err),
				zap.Int("attempts", attempts+1))
		}
	})
}

// Record returns the ledger record of a wallet for a content item
func (c *coordinator) Record(ctx context.Context, wallet string, contentID domain.ContentID) (*domain.PurchaseRecord, error) {
	if !domain.ValidAddress(wallet) {
		return nil, fmt.Errorf("%w: invalid wallet address %q", domain.ErrInvalidParameters, wallet)
	}
	return c.store.GetPurchase(ctx, domain.NormalizeAddress(wallet), contentID)
}

// Close stops background re-verification
func (c *coordinator) Close() {
	c.cancel()
	c.pool.StopAndWait()
}

func failed(result Result, err error) (Result, error) {
	result.State = StateFailed
	return result, err
}
