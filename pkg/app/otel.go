package app

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/jorge/userclient/pkg/app/logging"
)

func (a *App) initTracer() {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(a.container.GetAppName()),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(a.traceRatio()))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetErrorHandler(&otelErrorHandler{logger: a.container.Logger})

	a.tracerProvider = tp

	exporter, err := a.getExporter(a.Config.Get("TRACE_EXPORTER"), a.Config.Get("TRACER_URL"),
		a.Config.Get("TRACER_AUTH_KEY"))
	if err != nil {
		a.container.Error(err)

		return
	}

	if exporter != nil {
		tp.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	}
}

func (a *App) traceRatio() float64 {
	ratio, err := strconv.ParseFloat(a.Config.GetOrDefault("TRACER_RATIO", "1"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		a.container.Errorf("invalid value of config TRACER_RATIO, sampling every trace")

		return 1
	}

	return ratio
}

// getExporter returns a nil exporter, and no error, when tracing is not configured. Spans are then still
// created, so that trace ids can be propagated and logged, but never exported.
func (a *App) getExporter(name, url, authHeader string) (sdktrace.SpanExporter, error) {
	if name == "" {
		a.container.Debug("TRACE_EXPORTER is not set, traces will not be exported")

		return nil, nil
	}

	if url == "" {
		a.container.Errorf("missing TRACER_URL config, should be provided with TRACE_EXPORTER to enable tracing")

		return nil, nil
	}

	var headers map[string]string

	if authHeader != "" {
		headers = map[string]string{"Authorization": authHeader}
	}

	switch strings.ToLower(name) {
	case "otlp", "jaeger":
		// jaeger accepts OpenTelemetry Protocol (OTLP) over gRPC.
		a.container.Logf("Exporting traces to %s at %s", strings.ToLower(name), url)

		opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(url)}
		if headers != nil {
			opts = append(opts, otlptracegrpc.WithHeaders(headers))
		}

		return otlptracegrpc.New(context.Background(), opts...)
	case "zipkin":
		a.container.Logf("Exporting traces to zipkin at %s", url)

		var opts []zipkin.Option
		if headers != nil {
			opts = append(opts, zipkin.WithHeaders(headers))
		}

		return zipkin.New(url, opts...)
	default:
		a.container.Errorf("unsupported TRACE_EXPORTER: %s", name)

		return nil, nil
	}
}

type otelErrorHandler struct {
	logger logging.Logger
}

func (o *otelErrorHandler) Handle(e error) {
	o.logger.Error(e.Error())
}
