package support

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func HoneycombExporter(ctx context.Context, team string, dataset string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint("api.honeycomb.io:443"),
		otlptracegrpc.WithHeaders(map[string]string{
			"x-honeycomb-team":    team,
			"x-honeycomb-dataset": dataset,
		}),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter() (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint("http://localhost:14268/api/traces")))
}

func exporter(ctx context.Context, settings Settings) (trace.SpanExporter, error) {
	switch settings.TraceExporter {
	case TraceExporterNone, "":
		return nil, nil
	case TraceExporterConsole:
		return ConsoleExporter()
	case TraceExporterHoneycomb:
		return HoneycombExporter(ctx, settings.HoneycombTeam, settings.HoneycombDataset)
	case TraceExporterJaeger:
		return JaegerExporter()
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", settings.TraceExporter)
	}
}

// TracerProvider installs the global tracer provider for the configured exporter. The returned function flushes
// and shuts it down.
func TracerProvider(ctx context.Context, settings Settings) (*trace.TracerProvider, func(), error) {
	exp, err := exporter(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	options := []trace.TracerProviderOption{
		trace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
	}
	if exp != nil {
		options = append(options, trace.WithBatcher(exp))
	}

	provider := trace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider, func() {
		_ = provider.Shutdown(context.Background())
	}, nil
}
