package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

func TestService_RecordsSpansAndCounters(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	core := cartapp.NewService(ctx, persistence.NewStore(cartmemory.NewSlot()))
	svc := New(core,
		WithTracer(tracerProvider.Tracer("test")),
		WithMeter(meterProvider.Meter("test")),
	)

	svc.Add(ctx, cartdomain.CartItem{ID: 1, Name: "Pencil Set", Price: 50})
	svc.Add(ctx, cartdomain.CartItem{ID: 5, Name: "Eraser", Price: 20})
	_, removed := svc.Remove(ctx, 7)
	assert.False(t, removed)
	_, removed = svc.Remove(ctx, 0)
	assert.True(t, removed)
	svc.Clear(ctx)
	assert.Empty(t, svc.Snapshot(ctx))
	assert.Zero(t, svc.Total(ctx))

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"CartService.Add",
		"CartService.Add",
		"CartService.Remove",
		"CartService.Remove",
		"CartService.Clear",
		"CartService.Snapshot",
		"CartService.Total",
	}, names)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, m.Name)
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), totals["cart.items_added"])
	assert.Equal(t, int64(1), totals["cart.items_removed"])
	assert.Equal(t, int64(1), totals["cart.cleared"])
}
