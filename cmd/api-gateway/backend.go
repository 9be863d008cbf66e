package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/pkg/cache"
	"github.com/noah-isme/lms-ai-api/pkg/config"
	"github.com/noah-isme/lms-ai-api/pkg/database"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

const redisKeyPrefix = "lms:"

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openBackend selects the key-value backend named by STORE_BACKEND. The returned closer
// releases the underlying connection.
func openBackend(ctx context.Context, cfg *config.Config, logr *zap.Logger) (kvstore.Backend, io.Closer, error) {
	noop := closerFunc(func() error { return nil })

	switch cfg.Store.Backend {
	case "", config.StoreMemory:
		return kvstore.NewMemoryBackend(), noop, nil
	case config.StoreFile:
		backend, err := kvstore.NewFileBackend(cfg.Store.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, noop, nil
	case config.StoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRedisBackend(client, redisKeyPrefix), client, nil
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		backend, err := kvstore.NewPostgresBackend(db, cfg.Store.Table)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure store schema: %w", err)
		}
		return backend, db, nil
	case config.StoreSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backend, err := kvstore.NewSQLiteBackend(db, cfg.Store.Table)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backend, noop, nil
		}
		return backend, sqlDB, nil
	default:
		logr.Warn("unknown store backend, falling back to memory", zap.String("backend", cfg.Store.Backend))
		return kvstore.NewMemoryBackend(), noop, nil
	}
}
