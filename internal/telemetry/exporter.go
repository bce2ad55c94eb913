// Package telemetry exports use-case metrics to an OpenTelemetry collector.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "focuslog"
	serviceVersion = "1.0.0"
)

// Config holds OTLP exporter configuration.
type Config struct {
	Endpoint string
	Insecure bool
}

func (c Config) Enabled() bool {
	return c.Endpoint != ""
}

// Exporter owns the meter provider and the recorder fed by the services.
type Exporter struct {
	provider *sdkmetric.MeterProvider
	recorder *Recorder
}

// NewExporter dials the collector at cfg.Endpoint.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("OTEL exporter endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	rec, err := NewRecorder(provider.Meter(serviceName))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	return &Exporter{provider: provider, recorder: rec}, nil
}

func (e *Exporter) Recorder() *Recorder {
	return e.recorder
}

// Close flushes pending metrics and shuts the provider down.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
