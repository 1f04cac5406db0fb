package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/logging"
	"github.com/jacksmith/lmdb/internal/storage"
)

// app holds what a command needs: the resolved configuration, the logger
// and the open catalog.
type app struct {
	cfg    *storage.Config
	logger *zap.Logger
	store  *storage.Store
}

// openApp loads configuration for the working directory, applies --data,
// and opens the catalog. A catalog file that fails to load is logged by the
// store and the command continues with an empty catalog.
func openApp() (*app, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := storage.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	if err := cli.SetColorMode(cfg.Color, os.Stdout); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	store := storage.Open(cfg.ResolveDataPath(dir), logger)
	logger.Debug("catalog ready",
		zap.String("path", store.Path()),
		zap.Int("next_id", store.NextID()))

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

// Close flushes the logger.
func (a *app) Close() {
	// stderr cannot be synced on some platforms
	_ = a.logger.Sync()
}
