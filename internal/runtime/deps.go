package runtime

import (
	"context"
	"fmt"

	"github.com/architeacher/pedalpal/internal/adapters/repos"
	"github.com/architeacher/pedalpal/internal/config"
	"github.com/architeacher/pedalpal/internal/ports"
	"github.com/architeacher/pedalpal/pkg/logger"
	"github.com/architeacher/pedalpal/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	cleanup struct {
		resource string
		fn       func(ctx context.Context) error
	}

	infrastructureDep struct {
		tracerProvider otelTrace.TracerProvider
		metricsClient  metrics.Client
		logger         logger.Logger
		pool           repos.PoolOps
	}

	dependencies struct {
		config      *config.ServiceConfig
		infra       infrastructureDep
		secretsRepo ports.SecretsRepository
		dal         *repos.DataAccessLayer
		cleanups    []cleanup
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{}

	for _, opt := range opts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	if deps.dal == nil {
		return nil, fmt.Errorf("no data access layer configured")
	}

	return deps, nil
}

func (d *dependencies) onShutdown(resource string, fn func(ctx context.Context) error) {
	d.cleanups = append(d.cleanups, cleanup{resource: resource, fn: fn})
}
