package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/catalog"
	"github.com/feral-file/ff-rights-ledger/internal/config"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/ownership"
	"github.com/feral-file/ff-rights-ledger/internal/providers/ethereum"
	"github.com/feral-file/ff-rights-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/ratelimit"
	"github.com/feral-file/ff-rights-ledger/internal/reconcile"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
	"github.com/feral-file/ff-rights-ledger/internal/store"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "rights-reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Reconciler")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)
	contentCatalog := catalog.NewPGCatalog(db)
	clock := adapter.NewClock()

	// The reconciler only reads the chain, so the gateway is created without a wallet
	rpcClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	ethClient := ratelimit.NewEthClient(rpcClient, ratelimit.Config{
		RequestsPerSecond: cfg.Chain.RPCRateLimit.RequestsPerSecond,
		Burst:             cfg.Chain.RPCRateLimit.Burst,
		MaxQueueTime:      cfg.Chain.RPCRateLimit.MaxQueueTime,
	})
	defer ethClient.Close()

	if err := ethereum.VerifyNetwork(ctx, ethClient, cfg.Chain.ChainID); err != nil {
		logger.FatalCtx(ctx, "Failed to verify RPC network", zap.Error(err))
	}

	gateway, err := ethereum.NewClient(ethereum.Config{
		ChainID:         cfg.Chain.ChainID,
		ContractAddress: cfg.Chain.ContractAddress,
	}, ethClient, nil)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create registry client", zap.Error(err))
	}

	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
	} else {
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	tokenIdentity := identity.New(identity.Config{HashKeyedRegistry: cfg.Chain.HashKeyedRegistry}, gateway, dataStore)
	resolver := rights.NewResolver(tokenIdentity, gateway, contentCatalog)
	ownershipCache := ownership.NewCache(ownership.Config{TTL: cfg.Ownership.TTL}, tokenIdentity, gateway, dataStore, clock)

	purchases := purchase.NewCoordinator(purchase.Config{
		ConfirmationTimeout:    cfg.Chain.ConfirmationTimeout,
		VerificationRetryDelay: cfg.Chain.VerificationRetryDelay,
		Reverification: purchase.ReverificationConfig{
			PoolSize:        cfg.Reverification.Worker.WorkerPoolSize,
			QueueSize:       cfg.Reverification.Worker.WorkerQueueSize,
			InitialInterval: cfg.Reverification.InitialInterval,
			MaxInterval:     cfg.Reverification.MaxInterval,
			MaxElapsedTime:  cfg.Reverification.MaxElapsedTime,
		},
	}, tokenIdentity, gateway, dataStore, ownershipCache, resolver, publisher, clock)
	defer purchases.Close()

	tokenizer := tokenization.NewCoordinator(tokenization.Config{
		ConfirmationTimeout:    cfg.Chain.ConfirmationTimeout,
		VerificationRetryDelay: cfg.Chain.VerificationRetryDelay,
	}, tokenIdentity, gateway, dataStore, contentCatalog, publisher, clock)

	ledgerSweeper := reconcile.NewLedgerSweeper(reconcile.LedgerSweeperConfig{
		Interval:       cfg.Reconcile.Interval,
		PendingGrace:   cfg.Reconcile.PendingGrace,
		BatchSize:      cfg.Reconcile.BatchSize,
		WorkerPoolSize: cfg.Reconcile.Worker.WorkerPoolSize,
	}, dataStore, purchases, tokenizer, clock)

	logger.InfoCtx(ctx, "Initialized ledger sweeper",
		zap.Duration("interval", cfg.Reconcile.Interval),
		zap.Duration("pending_grace", cfg.Reconcile.PendingGrace),
		zap.Int("batch_size", cfg.Reconcile.BatchSize),
		zap.Int("worker_pool_size", cfg.Reconcile.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := ledgerSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := ledgerSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Reconciler stopped")
}
