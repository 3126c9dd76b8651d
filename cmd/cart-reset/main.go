package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

// cart-reset deletes the configured cart slot so the next API boot starts
// with an empty cart. It only ever touches the configured backend.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
	}))
	if err := run(logger); err != nil {
		log.Fatalf("cart reset: %v", err)
	}
}

func run(logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slot, cleanup, err := api.OpenConfiguredSlot(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s cart backend: %w", cfg.StoreBackend, err)
	}
	defer cleanup()

	store := persistence.NewStore(slot, persistence.WithLogger(logger), persistence.WithKey(cfg.SlotKey))
	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("reset cart slot %q: %w", store.Key(), err)
	}
	logger.Info("cart slot reset", slog.String("slot.key", store.Key()), slog.String("backend", cfg.StoreBackend))
	return nil
}
