package runtime

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/architeacher/pedalpal/internal/adapters/repos"
	"github.com/architeacher/pedalpal/internal/config"
	"github.com/architeacher/pedalpal/internal/infrastructure"
	"github.com/architeacher/pedalpal/internal/infrastructure/postgres"
	"github.com/architeacher/pedalpal/migrations"
	"github.com/architeacher/pedalpal/pkg/circuitbreaker"
	"github.com/architeacher/pedalpal/pkg/logger"
	"github.com/architeacher/pedalpal/pkg/metrics"
	"github.com/architeacher/pedalpal/pkg/metrics/noop"
	"github.com/hashicorp/vault/api"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const meterName = "github.com/architeacher/pedalpal"

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(ctx),
		WithMetrics(ctx),
		WithSecrets(ctx),
		WithDatabase(ctx),
		WithMigrations(ctx),
		WithDataAccessLayer(),
	}
}

// WithConfig reads the configuration from the environment.
func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

// WithServiceConfig uses cfg as is.
func WithServiceConfig(cfg *config.ServiceConfig) DependencyOption {
	return func(d *dependencies) error {
		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.ExportsTraces() {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(ctx, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.onShutdown("tracer", shutdown)

		return nil
	}
}

func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.ExportsMetrics() {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		mp, shutdown, err := infrastructure.NewMeterProvider(ctx, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}

		client := metrics.NewOtelClient(mp.Meter(meterName), shutdown)

		d.infra.metricsClient = client
		d.onShutdown("metrics", client.Shutdown)

		return nil
	}
}

// WithSecrets overlays the database credentials stored in Vault when the
// secrets storage is enabled. It must run before WithDatabase.
func WithSecrets(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		storage := d.config.SecretsStorage
		if !storage.Enabled {
			return nil
		}

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = storage.Address
		vaultConfig.Timeout = storage.Timeout

		if storage.TLSSkipVerify {
			vaultConfig.HttpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}

		if d.infra.tracerProvider != nil {
			vaultConfig.HttpClient.Transport = otelhttp.NewTransport(
				vaultConfig.HttpClient.Transport,
				otelhttp.WithTracerProvider(d.infra.tracerProvider),
			)
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("creating Vault client: %w", err)
		}

		if storage.Namespace != "" {
			client.SetNamespace(storage.Namespace)
		}

		d.secretsRepo = repos.NewVaultRepository(client)

		version, err := config.NewLoader(d.secretsRepo).Load(ctx, d.config)
		if err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		d.infra.logger.Info().
			Uint("version", version).
			Msg("applied database credentials from Vault")

		return nil
	}
}

// WithDatabase connects to PostgreSQL and bounds the pool per the acquire policy.
func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := postgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		d.infra.pool = postgres.NewBoundedPool(pool, d.config.Database)
		d.onShutdown("database", func(context.Context) error {
			pool.Close()

			return nil
		})

		return nil
	}
}

// WithMigrations applies the embedded schema when Database.AutoMigrate is set.
// It must follow WithDatabase or WithPool.
func WithMigrations(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Database.AutoMigrate {
			return nil
		}

		if d.infra.pool == nil {
			return fmt.Errorf("migrations need a database pool")
		}

		applied, err := migrations.Up(ctx, d.infra.pool)
		if err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		d.infra.logger.Info().Int("migrations", applied).Msg("database schema is up to date")

		return nil
	}
}

// WithPool uses pool instead of connecting. The caller keeps ownership of it.
func WithPool(pool repos.PoolOps) DependencyOption {
	return func(d *dependencies) error {
		d.infra.pool = pool

		return nil
	}
}

func WithDataAccessLayer() DependencyOption {
	return func(d *dependencies) error {
		if d.infra.pool == nil {
			return fmt.Errorf("data access layer needs a database pool")
		}

		log := d.infra.logger

		breaker := repos.NewCircuitBreaker(circuitbreaker.Config{
			Name:             "postgres",
			Enabled:          d.config.CircuitBreaker.Enabled,
			MaxRequests:      d.config.CircuitBreaker.MaxRequests,
			Interval:         d.config.CircuitBreaker.Interval,
			Timeout:          d.config.CircuitBreaker.Timeout,
			FailureThreshold: d.config.CircuitBreaker.FailureThreshold,
			OnStateChange: func(name, from, to string) {
				log.Warn().
					Str("breaker", name).
					Str("from", from).
					Str("to", to).
					Msg("circuit breaker state changed")
			},
		})

		if d.infra.tracerProvider == nil {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()
		}

		if d.infra.metricsClient == nil {
			d.infra.metricsClient = noop.NewMetricsClient()
		}

		d.dal = repos.NewDataAccessLayer(
			d.infra.pool,
			repos.WithLogger(d.infra.logger),
			repos.WithMetrics(d.infra.metricsClient),
			repos.WithTracerProvider(d.infra.tracerProvider),
			repos.WithCircuitBreaker(breaker),
		)

		return nil
	}
}
