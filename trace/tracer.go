// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

const exportTimeout = 10 * time.Second

type Config struct {
	// Used to flag if tracing should be performed
	Enabled bool `json:"enabled"`
	// host:port of the OTLP HTTP collector
	Endpoint string `json:"endpoint"`
	// Headers sent along every export
	Headers map[string]string `json:"headers"`
	// Disables TLS towards the collector
	Insecure bool `json:"insecure"`
	// The fraction of traces to sample.
	// If >= 1 always samples.
	// If <= 0 never samples.
	TraceSampleRate float64 `json:"traceSampleRate"`
}

// Tracer is installed as the global tracer provider. Close flushes pending
// spans.
type Tracer interface {
	trace.TracerProvider
	Close() error
}

type tracer struct {
	trace.TracerProvider
	close func() error
}

func (t *tracer) Close() error {
	return t.close()
}

// New installs a tracer provider exporting to the configured collector. When
// tracing is disabled a no-op provider is returned and nothing is installed.
func New(serviceName, version string, config Config) (Tracer, error) {
	if !config.Enabled {
		return &tracer{
			TracerProvider: trace.NewNoopTracerProvider(),
			close:          func() error { return nil },
		}, nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(config.Endpoint),
		otlptracehttp.WithHeaders(config.Headers),
		otlptracehttp.WithTimeout(exportTimeout),
	}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.TraceSampleRate)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &tracer{
		TracerProvider: provider,
		close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
			defer cancel()
			return provider.Shutdown(ctx)
		},
	}, nil
}
