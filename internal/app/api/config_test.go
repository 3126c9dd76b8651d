package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartfile "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/file"
)

var configKeys = []string{
	"PORT", "CART_STORE_BACKEND", "CART_STORE_DIR", "CART_SLOT_KEY", "POSTGRES_DSN",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "NATS_URL", "NATS_SUBJECT",
	"ORDER_WHATSAPP_NUMBER", "ORDER_LINK_BASE_URL", "NOTIFICATION_TTL_MS",
	"SUPPORT_WHATSAPP_NUMBER", "SUPPORT_PHONE", "SUPPORT_EMAIL", "INFO_EMAIL",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "cart_v1", cfg.SlotKey)
	assert.Equal(t, "923703148097", cfg.OrderDestination)
	assert.Equal(t, "https://wa.me/", cfg.OrderBaseURL)
	assert.Equal(t, 2600*time.Millisecond, cfg.NotificationTTL)
	assert.Equal(t, "1234567", cfg.SupportWhatsApp)
	assert.Equal(t, "+923323486324", cfg.SupportPhone)
	assert.Equal(t, "storefront.notifications", cfg.NatsSubject)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CART_STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NOTIFICATION_TTL_MS", "500")
	t.Setenv("ORDER_WHATSAPP_NUMBER", "92-370-3148097")
	t.Setenv("TEMPORAL_DISABLED", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 500*time.Millisecond, cfg.NotificationTTL)
	assert.Equal(t, "92-370-3148097", cfg.OrderDestination)
	assert.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":      {"CART_STORE_BACKEND": "sqlite"},
		"postgres without dsn": {"CART_STORE_BACKEND": "postgres"},
		"bad redis db":         {"REDIS_DB": "-1"},
		"bad ttl":              {"NOTIFICATION_TTL_MS": "soon"},
		"plus in destination":  {"ORDER_WHATSAPP_NUMBER": "+923703148097"},
		"space in destination": {"ORDER_WHATSAPP_NUMBER": "92 370"},
		"relative base url":    {"ORDER_LINK_BASE_URL": "wa.me/"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestOpenSlot_Backends(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	slot, cleanup := OpenSlot(ctx, Config{StoreBackend: BackendMemory}, logger)
	defer cleanup()
	assert.IsType(t, &cartmemory.Slot{}, slot)

	slot, cleanup = OpenSlot(ctx, Config{StoreBackend: BackendFile, StoreDir: t.TempDir()}, logger)
	defer cleanup()
	assert.IsType(t, &cartfile.Slot{}, slot)
}

func TestOpenSlot_RedisFallsBackToFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slot, cleanup := OpenSlot(ctx, Config{StoreBackend: BackendRedis, RedisAddr: "127.0.0.1:1", StoreDir: t.TempDir()}, logger)
	defer cleanup()
	assert.IsType(t, &cartfile.Slot{}, slot)
}

func TestOpenConfiguredSlot_DoesNotFallBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := OpenConfiguredSlot(ctx, Config{StoreBackend: BackendRedis, RedisAddr: "127.0.0.1:1", StoreDir: t.TempDir()}, logger)
	require.Error(t, err)

	_, _, err = OpenConfiguredSlot(ctx, Config{StoreBackend: BackendMemory}, logger)
	require.ErrorIs(t, err, ErrVolatileBackend)

	slot, cleanup, err := OpenConfiguredSlot(ctx, Config{StoreBackend: BackendFile, StoreDir: t.TempDir()}, logger)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &cartfile.Slot{}, slot)
}
