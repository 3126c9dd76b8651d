package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence"
	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
	notifnats "github.com/Apurer/go-gin-storefront/internal/domains/notifications/adapters/nats"
	notifdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

// Cart slot backends accepted by CART_STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port string

	StoreBackend string
	StoreDir     string
	SlotKey      string
	PostgresDSN  string
	RedisAddr    string
	RedisPass    string
	RedisDB      int

	NatsURL     string
	NatsSubject string

	OrderDestination string
	OrderBaseURL     string
	NotificationTTL  time.Duration

	SupportWhatsApp string
	SupportPhone    string
	SupportEmail    string
	InfoEmail       string

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		StoreBackend:      strings.ToLower(envDefault("CART_STORE_BACKEND", BackendFile)),
		StoreDir:          envDefault("CART_STORE_DIR", "data"),
		SlotKey:           envDefault("CART_SLOT_KEY", persistence.DefaultSlotKey),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		NatsURL:           strings.TrimSpace(os.Getenv("NATS_URL")),
		NatsSubject:       envDefault("NATS_SUBJECT", notifnats.DefaultSubject),
		OrderDestination:  envDefault("ORDER_WHATSAPP_NUMBER", "923703148097"),
		OrderBaseURL:      envDefault("ORDER_LINK_BASE_URL", checkoutdomain.DefaultBaseURL),
		NotificationTTL:   notifdomain.DefaultTTL,
		SupportWhatsApp:   envDefault("SUPPORT_WHATSAPP_NUMBER", "1234567"),
		SupportPhone:      envDefault("SUPPORT_PHONE", "+923323486324"),
		SupportEmail:      envDefault("SUPPORT_EMAIL", "support@brainybytes.com"),
		InfoEmail:         envDefault("INFO_EMAIL", "info@brainybytes.com"),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendFile, BackendPostgres, BackendRedis:
	default:
		return Config{}, fmt.Errorf("CART_STORE_BACKEND must be one of memory, file, postgres, redis; got %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendPostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required for the postgres cart backend")
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
		}
		cfg.RedisDB = db
	}
	if raw := strings.TrimSpace(os.Getenv("NOTIFICATION_TTL_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("NOTIFICATION_TTL_MS must be a positive integer")
		}
		cfg.NotificationTTL = time.Duration(ms) * time.Millisecond
	}
	if err := checkoutdomain.ValidateDestination(cfg.OrderDestination); err != nil {
		return Config{}, fmt.Errorf("ORDER_WHATSAPP_NUMBER: %w", err)
	}
	if err := checkoutdomain.ValidateBaseURL(cfg.OrderBaseURL); err != nil {
		return Config{}, fmt.Errorf("ORDER_LINK_BASE_URL: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
