package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
	"liyu1981.xyz/liftright-data-server/pkg/common"
)

const (
	TracingNone   = "none"
	TracingStdout = "stdout"
	TracingOtlp   = "otlp"
)

type TracingOptions struct {
	Mode        string
	ServiceName string
	Version     string
	// Writer receives spans in stdout mode; defaults to os.Stdout.
	Writer io.Writer
}

// InitTracing installs the global tracer provider for opts.Mode and returns
// its shutdown func. Mode none leaves the otel no-op provider in place. The
// otlp exporter reads the standard OTEL_EXPORTER_OTLP_* variables.
func InitTracing(ctx context.Context, opts TracingOptions) (func(context.Context) error, error) {
	logger := common.GetLogger()

	var exporter sdktrace.SpanExporter
	var err error

	switch strings.TrimSpace(opts.Mode) {
	case "", TracingNone:
		return func(context.Context) error { return nil }, nil
	case TracingStdout:
		w := opts.Writer
		if w == nil {
			w = os.Stdout
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case TracingOtlp:
		exporter, err = otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unknown tracing mode %q", opts.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s trace exporter: %w", opts.Mode, err)
	}

	tp := NewTracerProvider(ctx, exporter, opts.ServiceName, opts.Version)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("Tracing initialized", zap.String("mode", opts.Mode), zap.String("service", opts.ServiceName))

	return tp.Shutdown, nil
}

func NewTracerProvider(ctx context.Context, exporter sdktrace.SpanExporter, serviceName, version string) *sdktrace.TracerProvider {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
			attribute.String("deployment.environment", os.Getenv(common.EnvKeyGoEnv)),
		),
	)
	if err != nil {
		common.GetLogger().Warn("Tracing resource init failed, continuing", zap.Error(err))
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
}
