package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/architeacher/pedalpal/internal/adapters/repos"
	"github.com/architeacher/pedalpal/internal/config"
)

// Service owns the data access layer and the resources behind it.
type Service struct {
	deps *dependencies
}

// New wires the service. Without options it reads the environment, connects
// to PostgreSQL and sets up telemetry.
func New(ctx context.Context, opts ...DependencyOption) (*Service, error) {
	if len(opts) == 0 {
		opts = defaultOptions(ctx)
	}

	deps, err := initializeDependencies(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing dependencies: %w", err)
	}

	return &Service{deps: deps}, nil
}

func (s *Service) DAL() *repos.DataAccessLayer {
	return s.deps.dal
}

func (s *Service) Config() *config.ServiceConfig {
	return s.deps.config
}

// Shutdown releases resources in reverse order of acquisition.
func (s *Service) Shutdown(ctx context.Context) error {
	log := s.deps.infra.logger
	log.Info().Msg("shutting down service...")

	var errs []error

	for i := len(s.deps.cleanups) - 1; i >= 0; i-- {
		c := s.deps.cleanups[i]

		if err := c.fn(ctx); err != nil {
			log.Error().
				Err(err).
				Str("resource", c.resource).
				Msg("failed to shutdown the resource gracefully")

			errs = append(errs, fmt.Errorf("%s: %w", c.resource, err))
		}
	}

	log.Info().Msg("service shutdown complete")

	return errors.Join(errs...)
}
