// Package noop provides a metrics client that records nothing, for tests and
// for deployments with metrics disabled.
package noop

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type (
	MetricsClient struct{}
)

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

func (c MetricsClient) Inc(_ context.Context, _ string, _ any, _ ...attribute.KeyValue) {}

func (c MetricsClient) Shutdown(_ context.Context) error {
	return nil
}
