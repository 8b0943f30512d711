// Package service provides the client used to talk to other HTTP services. Every call is traced, logged and
// measured; retries, timeouts and circuit breaking are layered on through Options.
package service

import (
	"context"
	"net/http"
	"net/http/httptrace"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

//go:generate go run go.uber.org/mock/mockgen -source=new.go -destination=mock_http.go -package=service

const defaultHealthEndpoint = ".well-known/alive"

type httpService struct {
	*http.Client
	trace.Tracer
	url            string
	healthEndpoint string
	Logger
	Metrics
}

// HTTP is the client of a single remote service. Paths are relative to the address the service was created with.
type HTTP interface {
	// Get performs a GET on path. Only the trace context header is attached to the request.
	Get(ctx context.Context, path string) (*http.Response, error)

	// HealthCheck reports whether the health endpoint of the remote service answers with a 2xx.
	HealthCheck(ctx context.Context) *Health
}

// NewHTTPService creates the client for the service at serviceAddress and applies options in order, each one
// wrapping the result of the previous.
func NewHTTPService(serviceAddress string, logger Logger, metrics Metrics, options ...Options) HTTP {
	h := &httpService{
		Client:         &http.Client{},
		url:            strings.TrimRight(serviceAddress, "/"),
		healthEndpoint: defaultHealthEndpoint,
		Tracer:         otel.Tracer("userclient-http-client"),
		Logger:         logger,
		Metrics:        metrics,
	}

	var svc HTTP = h

	for _, o := range options {
		svc = o.AddOption(svc)
	}

	return svc
}

func (h *httpService) Get(ctx context.Context, path string) (*http.Response, error) {
	uri := h.resolve(path)

	spanCtx, span := h.Tracer.Start(ctx, uri, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	spanCtx = httptrace.WithClientTrace(spanCtx, otelhttptrace.NewClientTrace(spanCtx))

	req, err := http.NewRequestWithContext(spanCtx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, err
	}

	otel.GetTextMapPropagator().Inject(spanCtx, propagation.HeaderCarrier(req.Header))

	start := time.Now()

	resp, err := h.Do(req)

	l := &Log{
		Timestamp:     start,
		ResponseTime:  time.Since(start).Microseconds(),
		CorrelationID: trace.SpanFromContext(ctx).SpanContext().TraceID().String(),
		HTTPMethod:    http.MethodGet,
		URI:           uri,
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")

		l.ResponseCode = http.StatusInternalServerError

		if h.Logger != nil {
			h.Logger.Error(&ErrorLog{Log: l, ErrorMessage: err.Error()})
		}

		h.recordMetrics(ctx, l)

		return nil, err
	}

	l.ResponseCode = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if h.Logger != nil {
		h.Logger.Log(l)
	}

	h.recordMetrics(ctx, l)

	return resp, nil
}

// resolve joins path onto the service address: "users/1", "/users/1" and "users/1/" all name the same resource.
func (h *httpService) resolve(path string) string {
	return strings.TrimRight(h.url+"/"+strings.TrimLeft(path, "/"), "/")
}

func (h *httpService) recordMetrics(ctx context.Context, l *Log) {
	if h.Metrics == nil {
		return
	}

	h.Metrics.RecordHistogram(ctx, "app_http_service_response", (time.Duration(l.ResponseTime) * time.Microsecond).Seconds(),
		"service", h.url, "method", l.HTTPMethod, "status", strconv.Itoa(l.ResponseCode))
}
