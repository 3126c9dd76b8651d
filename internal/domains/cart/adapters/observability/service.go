package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart store with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart store.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Add(ctx context.Context, item cartdomain.CartItem) []cartdomain.CartItem {
	ctx, span := s.tracer.Start(ctx, "CartService.Add",
		trace.WithAttributes(attribute.Int64("cart.item.id", item.ID), attribute.Int64("cart.item.price", item.Price)))
	defer span.End()

	items := s.inner.Add(ctx, item)
	span.SetAttributes(attribute.Int("cart.size", len(items)))
	s.metrics.recordAdded(ctx, item)
	s.logInfo(ctx, "item added to cart",
		slog.Int64("cart.item.id", item.ID), slog.String("cart.item.name", item.Name), slog.Int("cart.size", len(items)))
	return items
}

func (s *Service) Remove(ctx context.Context, index int) ([]cartdomain.CartItem, bool) {
	ctx, span := s.tracer.Start(ctx, "CartService.Remove", trace.WithAttributes(attribute.Int("cart.index", index)))
	defer span.End()

	items, removed := s.inner.Remove(ctx, index)
	span.SetAttributes(attribute.Bool("cart.removed", removed), attribute.Int("cart.size", len(items)))
	if !removed {
		s.logInfo(ctx, "remove ignored, index out of range", slog.Int("cart.index", index), slog.Int("cart.size", len(items)))
		return items, false
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "item removed from cart", slog.Int("cart.index", index), slog.Int("cart.size", len(items)))
	return items, true
}

func (s *Service) Clear(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	s.inner.Clear(ctx)
	s.metrics.recordCleared(ctx)
	s.logInfo(ctx, "cart cleared")
}

func (s *Service) Snapshot(ctx context.Context) []cartdomain.CartItem {
	ctx, span := s.tracer.Start(ctx, "CartService.Snapshot")
	defer span.End()

	items := s.inner.Snapshot(ctx)
	span.SetAttributes(attribute.Int("cart.size", len(items)))
	return items
}

func (s *Service) Total(ctx context.Context) int64 {
	ctx, span := s.tracer.Start(ctx, "CartService.Total")
	defer span.End()

	total := s.inner.Total(ctx)
	span.SetAttributes(attribute.Int64("cart.total", total))
	return total
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
	cleared      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.items_added", metric.WithDescription("Number of items added to the cart"))
	itemsRemoved, _ := m.Int64Counter("cart.items_removed", metric.WithDescription("Number of items removed from the cart"))
	cleared, _ := m.Int64Counter("cart.cleared", metric.WithDescription("Number of times the cart was cleared"))
	return serviceMetrics{itemsAdded: itemsAdded, itemsRemoved: itemsRemoved, cleared: cleared}
}

func (m serviceMetrics) recordAdded(ctx context.Context, item cartdomain.CartItem) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, 1, metric.WithAttributes(attribute.Int64("cart.item.id", item.ID)))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.itemsRemoved != nil {
		m.itemsRemoved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.cleared != nil {
		m.cleared.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
