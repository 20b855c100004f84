package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// NewMeterProvider installs a global OpenTelemetry meter provider whose
// instruments are exported through this collector's registry
func (m *MetricsCollector) NewMeterProvider() (*sdkmetric.MeterProvider, error) {
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(m.registry),
		otelprom.WithoutScopeInfo(),
		otelprom.WithNamespace(namespace),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	return provider, nil
}

// InstrumentedCache counts cache lookups and times cache calls
type InstrumentedCache struct {
	next     outbound.CacheRepository
	backend  attribute.KeyValue
	lookups  metric.Int64Counter
	duration metric.Float64Histogram
}

var _ outbound.CacheRepository = (*InstrumentedCache)(nil)

// InstrumentCache wraps cache with lookup counters labelled by backend
func InstrumentCache(cache outbound.CacheRepository, meter metric.Meter, backend string) (*InstrumentedCache, error) {
	lookups, err := meter.Int64Counter("cache_lookups",
		metric.WithDescription("Cache lookups by result"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("cache_operation_duration",
		metric.WithDescription("Cache call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedCache{
		next:     cache,
		backend:  attribute.String("backend", backend),
		lookups:  lookups,
		duration: duration,
	}, nil
}

func (c *InstrumentedCache) observe(ctx context.Context, op string, start time.Time) {
	c.duration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(c.backend, attribute.String("operation", op)))
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	defer c.observe(ctx, "get", time.Now())

	data, err := c.next.Get(ctx, key)
	result := "hit"
	switch {
	case errors.Is(err, outbound.ErrCacheMiss):
		result = "miss"
	case err != nil:
		result = "error"
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(c.backend, attribute.String("result", result)))
	return data, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	defer c.observe(ctx, "set", time.Now())
	return c.next.Set(ctx, key, value, ttl)
}

func (c *InstrumentedCache) Delete(ctx context.Context, key string) error {
	defer c.observe(ctx, "delete", time.Now())
	return c.next.Delete(ctx, key)
}

func (c *InstrumentedCache) Exists(ctx context.Context, key string) (bool, error) {
	defer c.observe(ctx, "exists", time.Now())
	return c.next.Exists(ctx, key)
}
