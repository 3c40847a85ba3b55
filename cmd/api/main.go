package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tvoe/grabber/internal/api"
	"github.com/tvoe/grabber/internal/config"
	"github.com/tvoe/grabber/internal/metrics"
	"github.com/tvoe/grabber/internal/storage/local"
	"github.com/tvoe/grabber/internal/worker"
	"github.com/tvoe/grabber/internal/ytdlp"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize serving directory
	store, err := local.New(cfg.Storage.DownloadsDir)
	if err != nil {
		logger.Fatal("failed to prepare downloads directory", zap.Error(err))
	}

	// Initialize extraction engine
	engine := ytdlp.New(cfg.YTDLP, logger)

	// Initialize download workers
	pool := worker.New(cfg.Worker.MaxParallelDownloads, logger)
	pool.Start()
	defer pool.Stop()

	// Initialize metrics
	m := metrics.New()

	// Initialize handler
	handler := api.NewHandler(cfg, engine, store, pool, logger, m)

	// Create router
	router := api.NewRouter(handler, logger)

	// Create server
	server := api.NewServer(cfg.API, router, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("API server started",
		zap.Int("port", cfg.API.Port),
		zap.String("downloadsDir", cfg.Storage.DownloadsDir),
		zap.Int("maxParallelDownloads", cfg.Worker.MaxParallelDownloads),
	)

	// Wait for shutdown signal
	select {
	case <-sigChan:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	if err := server.Stop(context.Background()); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
