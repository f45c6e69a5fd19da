package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

const (
	DEFAULT_SWEEP_INTERVAL = time.Minute
	DEFAULT_PENDING_GRACE  = 10 * time.Minute
	DEFAULT_BATCH_SIZE     = 100
)

// LedgerSweeperConfig holds configuration for the ledger sweeper
type LedgerSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	PendingGrace   time.Duration // Only recover tokenizations pending for longer than this
	BatchSize      int           // Records per kind per cycle
	WorkerPoolSize int           // Concurrent workers
}

// ledgerSweeper re-verifies unverified purchases and recovers stale pending tokenizations
type ledgerSweeper struct {
	config       LedgerSweeperConfig
	store        store.Store
	purchases    purchase.Coordinator
	tokenization tokenization.Coordinator
	clock        adapter.Clock
	pool         pond.Pool
	running      atomic.Bool
	stopChan     chan struct{}
	stoppedCh    chan struct{}
}

// NewLedgerSweeper creates a new ledger sweeper
func NewLedgerSweeper(
	config LedgerSweeperConfig,
	st store.Store,
	purchases purchase.Coordinator,
	tokenization tokenization.Coordinator,
	clock adapter.Clock,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if config.PendingGrace <= 0 {
		config.PendingGrace = DEFAULT_PENDING_GRACE
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_BATCH_SIZE
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 1
	}

	return &ledgerSweeper{
		config:       config,
		store:        st,
		purchases:    purchases,
		tokenization: tokenization,
		clock:        clock,
		stopChan:     make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *ledgerSweeper) Name() string {
	return "ledger-sweeper"
}

// Start runs sweep cycles every interval until stopped
func (s *ledgerSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting ledger sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("pending_grace", s.config.PendingGrace),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = s.newPool(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Ledger sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Ledger sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

func (s *ledgerSweeper) newPool(ctx context.Context) pond.Pool {
	return pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(2*s.config.BatchSize),
		pond.WithContext(ctx),
	)
}

func (s *ledgerSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *ledgerSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping ledger sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Ledger sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Ledger sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs one reconciliation pass over both ledgers and sleeps for the interval
func (s *ledgerSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	unverified, err := s.store.ListPurchasesByStatus(ctx, domain.ReconciliationStatusPaidButUnverified, s.config.BatchSize)
	if err != nil {
		err = fmt.Errorf("failed to list unverified purchases: %w", err)
	}

	var pending []domain.TokenizationRecord
	if err == nil {
		pending, err = s.store.ListTokenizationsByState(ctx, domain.TokenizationStatePending, startTime.Add(-s.config.PendingGrace), s.config.BatchSize)
		if err != nil {
			err = fmt.Errorf("failed to list pending tokenizations: %w", err)
		}
	}

	if err == nil && (len(unverified) > 0 || len(pending) > 0) {
		s.reconcile(ctx, unverified, pending, startTime)
	}

	if !s.sleep(ctx, s.config.Interval) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	return err
}

func (s *ledgerSweeper) reconcile(ctx context.Context, unverified []domain.PurchaseRecord, pending []domain.TokenizationRecord, startTime time.Time) {
	logger.InfoCtx(ctx, "Found records to reconcile",
		zap.Int("unverified_purchases", len(unverified)),
		zap.Int("pending_tokenizations", len(pending)))

	var confirmed, stillUnverified, recovered, failed atomic.Int32

	for _, record := range unverified {
		s.pool.Submit(func() {
			ok, err := s.purchases.Reverify(ctx, record.Wallet, record.ContentID)
			if err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "Failed to re-verify purchase",
					zap.Error(err),
					zap.String("wallet", record.Wallet),
					zap.String("contentID", record.ContentID.String()))
				return
			}
			if ok {
				confirmed.Add(1)
			} else {
				stillUnverified.Add(1)
			}
		})
	}

	for _, record := range pending {
		s.pool.Submit(func() {
			result, err := s.tokenization.Recover(ctx, record.ContentID)
			if err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "Failed to recover pending tokenization",
					zap.Error(err),
					zap.String("contentID", record.ContentID.String()),
					zap.String("state", string(result.State)))
				return
			}
			recovered.Add(1)
		})
	}

	// Wait for all tasks, then recreate the pool for the next cycle
	s.pool.StopAndWait()
	s.pool = s.newPool(ctx)

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("purchases_confirmed", confirmed.Load()),
		zap.Int32("purchases_unverified", stillUnverified.Load()),
		zap.Int32("tokenizations_recovered", recovered.Load()),
		zap.Int32("failed", failed.Load()),
	)
}

// sleep sleeps for the given duration but can be interrupted by context cancellation or Stop
func (s *ledgerSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
