package repos

import (
	"github.com/architeacher/pedalpal/pkg/circuitbreaker"
	"github.com/architeacher/pedalpal/pkg/logger"
	"github.com/architeacher/pedalpal/pkg/metrics"
	"github.com/architeacher/pedalpal/pkg/metrics/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/architeacher/pedalpal/internal/adapters/repos"

type (
	Option func(*settings)

	settings struct {
		scanner        Scanner
		logger         logger.Logger
		metrics        metrics.Client
		tracerProvider trace.TracerProvider
		breaker        *circuitbreaker.CircuitBreaker[struct{}]
	}
)

func newSettings(opts []Option) settings {
	s := settings{
		scanner:        NewPgxScanner(),
		logger:         logger.New(logger.LogLevelInfo, logger.JSONLoggingFormat),
		metrics:        noop.NewMetricsClient(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

func WithScanner(scanner Scanner) Option {
	return func(s *settings) {
		s.scanner = scanner
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		s.logger = log
	}
}

// WithMetrics records store operations on client. A nil client keeps the no-op default.
func WithMetrics(client metrics.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.metrics = client
		}
	}
}

// WithTracerProvider traces store operations with provider. A nil provider keeps the no-op default.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *settings) {
		if provider != nil {
			s.tracerProvider = provider
		}
	}
}

// WithCircuitBreaker guards every store call with cb. A nil cb disables the guard.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker[struct{}]) Option {
	return func(s *settings) {
		s.breaker = cb
	}
}

// NewCircuitBreaker builds a breaker that only counts failures of the database
// itself. Missing records and rejected writes leave it closed.
func NewCircuitBreaker(cfg circuitbreaker.Config) *circuitbreaker.CircuitBreaker[struct{}] {
	cfg.IsSuccessful = breakerIgnores

	return circuitbreaker.New[struct{}](cfg)
}
