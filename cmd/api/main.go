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
	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
	"github.com/feral-file/ff-rights-ledger/internal/api/server"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-rights-ledger/internal/catalog"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/config"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/messaging"
	"github.com/feral-file/ff-rights-ledger/internal/ownership"
	"github.com/feral-file/ff-rights-ledger/internal/providers/ethereum"
	"github.com/feral-file/ff-rights-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/ratelimit"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "rights-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Rights Ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	contentCatalog := catalog.NewPGCatalog(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to the chain
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

	var wallet chain.Wallet
	if cfg.Chain.SignerPrivateKey != "" {
		wallet, err = ethereum.NewKeyedWallet(cfg.Chain.SignerPrivateKey, cfg.Chain.ChainID)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load signer wallet", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Signer private key not configured, purchases and tokenization are disabled")
	}

	gateway, err := ethereum.NewClient(ethereum.Config{
		ChainID:         cfg.Chain.ChainID,
		ContractAddress: cfg.Chain.ContractAddress,
	}, ethClient, wallet)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create registry client", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to chain",
		zap.String("chain", string(cfg.Chain.ChainID)),
		zap.String("contract", cfg.Chain.ContractAddress),
	)

	// Connect to NATS, events are dropped when no broker is configured
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS not configured, ledger events will not be published")
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Ledger core
	tokenIdentity := identity.New(identity.Config{HashKeyedRegistry: cfg.Chain.HashKeyedRegistry}, gateway, dataStore)
	resolver := rights.NewResolver(tokenIdentity, gateway, contentCatalog)
	ownershipCache := ownership.NewCache(ownership.Config{TTL: cfg.Ownership.TTL}, tokenIdentity, gateway, dataStore, clock)
	if wallet != nil {
		go ownershipCache.WatchWallet(ctx, wallet.Subscribe(ctx))
	}

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
		Royalty: tokenization.RoyaltyPolicy{
			PlatformRecipient:   cfg.Royalty.PlatformRecipient,
			PlatformBasisPoints: cfg.Royalty.PlatformBasisPoints,
		},
	}, tokenIdentity, gateway, dataStore, contentCatalog, publisher, clock)

	exec := executor.NewExecutor(tokenIdentity, resolver, ownershipCache, purchases, tokenizer)

	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
