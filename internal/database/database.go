package database

import (
	"context"

	"go-fraud-console/internal/config"
	"go-fraud-console/internal/storage"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLocalStorage opens the durable local store with lifecycle management.
// An empty STORAGE_PATH keeps the snapshot in memory only.
func NewLocalStorage(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (storage.LocalStorage, error) {
	if cfg.StoragePath == "" {
		logger.Warn("STORAGE_PATH is empty, session will not survive restarts")
		return storage.NewMemory(), nil
	}

	store, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	logger.Info("Opened local storage", zap.String("path", cfg.StoragePath))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing local storage")
			return store.Close()
		},
	})

	return store, nil
}
