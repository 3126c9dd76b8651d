package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/Apurer/go-gin-storefront/internal/domains/checkout/application"
	checkoutports "github.com/Apurer/go-gin-storefront/internal/domains/checkout/ports"
	notifnats "github.com/Apurer/go-gin-storefront/internal/domains/notifications/adapters/nats"
	notifapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	platformnats "github.com/Apurer/go-gin-storefront/internal/platform/nats"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const shutdownTimeout = 10 * time.Second

// Run boots the storefront HTTP API with observability, the cart slot, and
// the checkout orchestrator wired. It returns when ctx is cancelled and the
// server has drained.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slot, cleanupSlot := OpenSlot(ctx, cfg, logger)
	defer cleanupSlot()
	store := persistence.NewStore(slot, persistence.WithLogger(logger), persistence.WithKey(cfg.SlotKey))

	emitter := notifapp.NewEmitter(notifapp.WithTTL(cfg.NotificationTTL), notifapp.WithLogger(logger))
	if stopRelay := startNotificationRelay(cfg, emitter, logger); stopRelay != nil {
		defer stopRelay()
	}

	coreCart := cartapp.NewService(ctx, store, cartapp.WithNotifier(emitter))
	cartService := cartobs.New(
		coreCart,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	catalog := catalogmemory.NewRepository()

	var links checkoutports.LinkBuilder = checkoutworkflows.NewInlineCheckout()
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, rendering order links inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		links = checkoutworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	checkoutService, err := checkoutapp.NewService(
		checkoutapp.Config{BaseURL: cfg.OrderBaseURL, Destination: cfg.OrderDestination},
		cartService, links, emitter,
	)
	if err != nil {
		return err
	}

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:       storefrontserver.NewCatalogAPI(catalog),
		CartAPI:          storefrontserver.NewCartAPI(cartService, catalog),
		CheckoutAPI:      storefrontserver.NewCheckoutAPI(checkoutService),
		NotificationsAPI: storefrontserver.NewNotificationsAPI(emitter),
		ContactAPI: storefrontserver.NewContactAPI(storefrontserver.Contact{
			SupportWhatsApp: cfg.SupportWhatsApp,
			SupportPhone:    cfg.SupportPhone,
			SupportEmail:    cfg.SupportEmail,
			InfoEmail:       cfg.InfoEmail,
		}),
	}

	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := storefrontserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Storefront API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Storefront API shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// startNotificationRelay mirrors the active notification set onto NATS when
// NATS_URL is configured. It returns nil when the relay is not running.
func startNotificationRelay(cfg Config, emitter *notifapp.Emitter, logger *slog.Logger) func() {
	if cfg.NatsURL == "" {
		return nil
	}
	conn, err := platformnats.Connect(cfg.NatsURL, "storefront-api", logger)
	if err != nil {
		logger.Warn("failed to connect to nats, notification relay disabled", slog.String("error", err.Error()))
		return nil
	}
	relay := notifnats.NewRelay(conn, cfg.NatsSubject, logger)
	unsubscribe := emitter.Subscribe(relay.Handle)
	logger.Info("notification relay enabled", slog.String("subject", cfg.NatsSubject))
	return func() {
		unsubscribe()
		if err := conn.Drain(); err != nil {
			logger.Warn("failed to drain nats connection", slog.String("error", err.Error()))
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
