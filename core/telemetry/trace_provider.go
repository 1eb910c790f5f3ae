package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer every gateway span is started with.
const InstrumentationName = "github.com/anoideaopen/market"

// CollectorEndpoint locates the OTLP HTTP collector.
type CollectorEndpoint struct {
	Endpoint string `yaml:"endpoint"`
	// CACerts is a base64 encoded PEM bundle; empty means plain HTTP.
	CACerts string `yaml:"caCerts"`
}

// InstallTraceProvider sets the global trace provider based on http otlp exporter.
// Without an endpoint a noop provider is installed.
func InstallTraceProvider(
	ctx context.Context,
	settings *CollectorEndpoint,
	serviceName string,
) (trace.TracerProvider, error) {
	var tracerProvider trace.TracerProvider = trace.NewNoopTracerProvider()

	defer func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if settings == nil || len(settings.Endpoint) == 0 {
		return tracerProvider, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if settings.CACerts == "" {
		opts = append(opts, otlptracehttp.WithInsecure())
	} else {
		cfg, err := tlsConfig(settings.CACerts)
		if err != nil {
			return tracerProvider, err
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(cfg))
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	if err != nil {
		return tracerProvider, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		return tracerProvider, fmt.Errorf("creating resource: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))

	return tracerProvider, nil
}

// Tracer returns the sdk tracer of tp, or of the global provider when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}
