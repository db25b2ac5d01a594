package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/architeacher/pedalpal/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type ShutdownFunc func(ctx context.Context) error

var ErrMissingEndpoint = errors.New("OTLP endpoint is not set")

func newResource(ctx context.Context, cfg config.Telemetry) (*resource.Resource, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return res, nil
}

// NewTracerProvider exports spans through the exporter cfg.ExporterType names.
func NewTracerProvider(ctx context.Context, cfg config.Telemetry) (trace.TracerProvider, ShutdownFunc, error) {
	exporter, closeConn, err := createSpanExporter(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		_ = closeConn()

		return nil, nil, err
	}

	sampler := sdktrace.TraceIDRatioBased(cfg.Traces.SamplerRatio)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sampler,
			sdktrace.WithRemoteParentSampled(sampler),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), closeConn())
	}, nil
}

func NewNoopTracerProvider() trace.TracerProvider {
	return tracenoop.NewTracerProvider()
}

// NewMeterProvider pushes metrics over OTLP/gRPC to cfg.OTLPEndpoint.
func NewMeterProvider(ctx context.Context, cfg config.Telemetry) (metric.MeterProvider, ShutdownFunc, error) {
	conn, err := newCollectorConn(cfg)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()

		return nil, nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		_ = conn.Close()

		return nil, nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, func(ctx context.Context) error {
		return errors.Join(mp.Shutdown(ctx), conn.Close())
	}, nil
}

func NewNoopMeterProvider() metric.MeterProvider {
	return metricnoop.NewMeterProvider()
}

func createSpanExporter(ctx context.Context, cfg config.Telemetry) (sdktrace.SpanExporter, func() error, error) {
	switch strings.ToLower(cfg.ExporterType) {
	case config.ExporterTypeGRPC, "":
		conn, err := newCollectorConn(cfg)
		if err != nil {
			return nil, nil, err
		}

		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			_ = conn.Close()

			return nil, nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
		}

		return exporter, conn.Close, nil
	case config.ExporterTypeStdOut:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("creating stdout trace exporter: %w", err)
		}

		return exporter, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported exporter type %q", cfg.ExporterType)
	}
}

// newCollectorConn dials the collector lazily; nothing is sent until the first export.
func newCollectorConn(cfg config.Telemetry) (*grpc.ClientConn, error) {
	if cfg.OTLPEndpoint == "" {
		return nil, ErrMissingEndpoint
	}

	conn, err := grpc.NewClient(cfg.OTLPEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("creating gRPC client connection to collector: %w", err)
	}

	return conn, nil
}
