package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type mockLogger struct {
	mu     sync.Mutex
	logs   []any
	errors []any
}

func (m *mockLogger) Log(args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append(m.logs, args...)
}

func (m *mockLogger) Error(args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors = append(m.errors, args...)
}

type recorded struct {
	name   string
	value  float64
	labels []string
}

type mockMetrics struct {
	mu         sync.Mutex
	histograms []recorded
	gauges     []recorded
}

func (m *mockMetrics) RecordHistogram(_ context.Context, name string, value float64, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.histograms = append(m.histograms, recorded{name: name, value: value, labels: labels})
}

func (m *mockMetrics) SetGauge(name string, value float64, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gauges = append(m.gauges, recorded{name: name, value: value, labels: labels})
}

func TestNewHTTPService(t *testing.T) {
	tests := []struct {
		desc           string
		serviceAddress string
	}{
		{"Valid Address", "http://example.com"},
		{"Address with trailing slash", "http://example.com/"},
		{"Empty Address", ""},
	}

	for i, tc := range tests {
		svc := NewHTTPService(tc.serviceAddress, nil, nil)

		require.NotNil(t, svc, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.False(t, strings.HasSuffix(svc.(*httpService).url, "/"), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestHTTPService_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/spring13_RESTserver/users/1", r.URL.Path)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &mockLogger{}
	metrics := &mockMetrics{}

	svc := NewHTTPService(server.URL+"/spring13_RESTserver", logger, metrics)

	tests := []struct {
		desc string
		path string
	}{
		{"relative path", "users/1"},
		{"leading slash", "/users/1"},
		{"trailing slash", "users/1/"},
	}

	for i, tc := range tests {
		resp, err := svc.Get(context.Background(), tc.path)

		require.NoError(t, err, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "TEST[%d], Failed.\n%s", i, tc.desc)

		resp.Body.Close()
	}

	require.Len(t, logger.logs, len(tests))

	l, ok := logger.logs[0].(*Log)
	require.True(t, ok)

	assert.Equal(t, http.StatusOK, l.ResponseCode)
	assert.Equal(t, http.MethodGet, l.HTTPMethod)
	assert.Equal(t, server.URL+"/spring13_RESTserver/users/1", l.URI)

	require.Len(t, metrics.histograms, len(tests))
	assert.Equal(t, "app_http_service_response", metrics.histograms[0].name)
	assert.Equal(t, []string{"service", server.URL + "/spring13_RESTserver", "method", "GET", "status", "200"},
		metrics.histograms[0].labels)
}

func TestHTTPService_GetSendsNoQueryOrCustomHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	requests := make(chan *http.Request, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r.Clone(context.Background())

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewHTTPService(server.URL, nil, nil).Get(context.Background(), "users/7")
	require.NoError(t, err)

	resp.Body.Close()

	r := <-requests

	assert.Equal(t, "/users/7", r.URL.Path)
	assert.Empty(t, r.URL.RawQuery)
	assert.Empty(t, r.Header.Get("Authorization"))
}

func TestHTTPService_PropagatesTraceContext(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})

	headers := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Get("traceparent")

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, span := otel.Tracer("test").Start(context.Background(), "inbound")
	defer span.End()

	svc := NewHTTPService(server.URL, nil, nil)

	resp, err := svc.Get(ctx, "users")
	require.NoError(t, err)

	resp.Body.Close()

	assert.Contains(t, <-headers, span.SpanContext().TraceID().String())
}

func TestHTTPService_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	logger := &mockLogger{}
	metrics := &mockMetrics{}

	svc := NewHTTPService(server.URL, logger, metrics)

	resp, err := svc.Get(context.Background(), "users")

	require.Error(t, err)
	assert.Nil(t, resp)

	require.Len(t, logger.errors, 1)

	errLog, ok := logger.errors[0].(*ErrorLog)
	require.True(t, ok)

	assert.Equal(t, http.StatusInternalServerError, errLog.ResponseCode)
	assert.NotEmpty(t, errLog.ErrorMessage)

	require.Len(t, metrics.histograms, 1)
	assert.Equal(t, "500", metrics.histograms[0].labels[5])
}

func TestLog_PrettyPrint(t *testing.T) {
	var b strings.Builder

	l := &Log{CorrelationID: "abc", ResponseCode: 404, ResponseTime: 10, HTTPMethod: "GET", URI: "http://host/users/9"}
	l.PrettyPrint(&b)

	(&ErrorLog{Log: l, ErrorMessage: "connection refused"}).PrettyPrint(&b)

	assert.Contains(t, b.String(), "http://host/users/9")
	assert.Contains(t, b.String(), "connection refused")
}
