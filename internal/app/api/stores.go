package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartfile "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/file"
	cartpostgres "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/redis"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-storefront/internal/platform/redis"
)

// redisKeyPrefix namespaces cart slots inside a shared Redis database.
const redisKeyPrefix = "storefront:"

// ErrVolatileBackend is returned by OpenConfiguredSlot for the memory
// backend, which holds nothing outside the API process.
var ErrVolatileBackend = errors.New("memory cart backend is process-local")

// OpenSlot selects the cart slot backend named by cfg. A postgres or redis
// backend that cannot be reached falls back to the file backend, and an
// unusable directory falls back to memory, so the storefront always boots.
func OpenSlot(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Slot, func()) {
	if cfg.StoreBackend == BackendMemory {
		logger.Info("cart slot configured in memory")
		return cartmemory.NewSlot(), func() {}
	}
	slot, cleanup, err := OpenConfiguredSlot(ctx, cfg, logger)
	if err == nil {
		return slot, cleanup
	}
	if cfg.StoreBackend != BackendFile {
		logger.Warn("cart slot backend unavailable, falling back to file",
			slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
		if slot, err = openFileSlot(cfg, logger); err == nil {
			return slot, func() {}
		}
	}
	logger.Warn("cart store directory unusable, falling back to memory",
		slog.String("dir", cfg.StoreDir), slog.String("error", err.Error()))
	return cartmemory.NewSlot(), func() {}
}

// OpenConfiguredSlot opens exactly the backend named by cfg and fails when
// it cannot be reached. Maintenance tools use it so they never act on a
// fallback slot.
func OpenConfiguredSlot(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Slot, func(), error) {
	switch cfg.StoreBackend {
	case BackendPostgres:
		return openPostgresSlot(ctx, cfg, logger)
	case BackendRedis:
		return openRedisSlot(ctx, cfg, logger)
	case BackendFile:
		slot, err := openFileSlot(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() {}, nil
	case BackendMemory:
		return nil, nil, ErrVolatileBackend
	default:
		return nil, nil, fmt.Errorf("unknown cart backend %q", cfg.StoreBackend)
	}
}

func openPostgresSlot(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Slot, func(), error) {
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("migrate cart schema: %w", err)
	}
	logger.Info("cart slot configured with postgres")
	return cartpostgres.NewSlot(db), cleanup, nil
}

func openRedisSlot(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Slot, func(), error) {
	client, err := platformredis.Connect(ctx, platformredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("cart slot configured with redis", slog.String("addr", cfg.RedisAddr))
	return cartredis.NewSlot(client, redisKeyPrefix), func() { _ = client.Close() }, nil
}

func openFileSlot(cfg Config, logger *slog.Logger) (cartports.Slot, error) {
	slot := cartfile.NewSlot(cfg.StoreDir)
	if err := slot.Prepare(); err != nil {
		return nil, err
	}
	logger.Info("cart slot configured on disk", slog.String("dir", cfg.StoreDir))
	return slot, nil
}
