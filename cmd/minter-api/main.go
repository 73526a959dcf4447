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

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/api/server"
	"github.com/feral-file/ff-minter/internal/config"
	"github.com/feral-file/ff-minter/internal/executor"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/messaging"
	"github.com/feral-file/ff-minter/internal/minter"
	"github.com/feral-file/ff-minter/internal/providers/jetstream"
	"github.com/feral-file/ff-minter/internal/registry"
	"github.com/feral-file/ff-minter/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMinterAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "minter-api",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":    "minter-api",
			"collection": cfg.Collection.TokenSymbol,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Minter API")

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

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Build the whitelist
	addrs, err := cfg.Collection.WhitelistAddresses(registry.NewWhitelistLoader(fs, jsonAdapter))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load whitelist", zap.Error(err))
	}
	whitelist, err := cfg.Collection.NewWhitelist(addrs)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build whitelist", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded whitelist",
		zap.String("mode", string(whitelist.Mode())),
		zap.Int("addresses", len(addrs)),
	)

	// Create the contract
	contractCfg, err := cfg.Collection.ContractConfig()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid collection config", zap.Error(err))
	}
	contract, err := minter.NewContract(contractCfg, whitelist, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create contract", zap.Error(err))
	}

	// Connect to NATS
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:             cfg.NATS.URL,
			SubjectPrefix:   cfg.NATS.SubjectPrefix,
			StreamName:      cfg.NATS.StreamName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			PublishTimeout:  cfg.NATS.PublishTimeout,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, mint events will not be published")
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	exec := executor.NewExecutor(executor.Config{
		WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Worker.WorkerQueueSize,
		MaxElapsedTime:  cfg.Worker.MaxElapsedTime,
	}, contract, dataStore, publisher, clock, jsonAdapter)

	// Rebuild token ownership and allocation counters from earlier runs
	if _, err := exec.Restore(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to restore contract from stored receipts", zap.Error(err))
	}

	// Publish events left over from a previous run
	if _, err := exec.RepublishPending(ctx); err != nil {
		logger.ErrorCtx(ctx, err)
	}

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
		},
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, contract, exec)

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
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	// Drain pending publishes, the rest is republished on the next start
	exec.Close(shutdownCtx)

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Minter API stopped")
}
