package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OtelClient records counters through an OpenTelemetry meter. Instruments are
// registered on first use from Descriptors; unknown keys and non-integer values
// are dropped.
type OtelClient struct {
	meter    metric.Meter
	shutdown func(ctx context.Context) error

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

func NewOtelClient(meter metric.Meter, shutdown func(ctx context.Context) error) *OtelClient {
	return &OtelClient{
		meter:    meter,
		shutdown: shutdown,
		counters: make(map[string]metric.Int64Counter),
	}
}

func (c *OtelClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	delta, ok := toInt64(value)
	if !ok {
		return
	}

	counter, err := c.counter(key)
	if err != nil {
		return
	}

	counter.Add(ctx, delta, metric.WithAttributes(attributes...))
}

func (c *OtelClient) Shutdown(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}

	return c.shutdown(ctx)
}

func (c *OtelClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	descriptor, ok := Descriptors[key]
	if !ok {
		return nil, errUnknownMetric
	}

	counter, err := RegisterInt64Counter(c.meter, descriptor, key)
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}
