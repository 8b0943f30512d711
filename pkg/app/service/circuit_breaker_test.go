package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// switchableServer serves /users and /users/{id} only, answering 200 while healthy and 500 otherwise. Calls to
// /users/{id} are counted; /users doubles as the health endpoint.
func switchableServer(healthy *atomic.Bool, calls *int32) *httptest.Server {
	mux := http.NewServeMux()

	answer := func(w http.ResponseWriter) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)

			return
		}

		w.WriteHeader(http.StatusInternalServerError)
	}

	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) { answer(w) })
	mux.HandleFunc("/users/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(calls, 1)
		answer(w)
	})

	return httptest.NewServer(mux)
}

func newBreaker(address string, metrics Metrics, threshold int) (HTTP, *circuitBreaker) {
	h := NewHTTPService(address, nil, metrics,
		&HealthConfig{HealthEndpoint: "users"},
		&CircuitBreakerConfig{Threshold: threshold, Interval: time.Minute})

	return h, h.(*circuitBreaker)
}

func TestCircuitBreakerConfig_AddOption(t *testing.T) {
	metrics := &mockMetrics{}
	base := NewHTTPService("http://example.com", nil, metrics)

	h := (&CircuitBreakerConfig{Threshold: 0}).AddOption(base)
	assert.Equal(t, base, h)

	h = (&CircuitBreakerConfig{Threshold: 2, Interval: time.Second}).AddOption(base)

	cb, ok := h.(*circuitBreaker)
	require.True(t, ok)

	assert.Equal(t, ClosedState, cb.state)
	require.Len(t, metrics.gauges, 1)
	assert.Equal(t, circuitBreakerGauge, metrics.gauges[0].name)
	assert.Equal(t, []string{"service", "http://example.com"}, metrics.gauges[0].labels)
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	var (
		healthy atomic.Bool
		calls   int32
	)

	server := switchableServer(&healthy, &calls)
	defer server.Close()

	metrics := &mockMetrics{}

	h, cb := newBreaker(server.URL, metrics, 2)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := h.Get(ctx, "users/1")

		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		resp.Body.Close()
	}

	assert.Equal(t, OpenState, cb.state)

	// open and inside the interval: no call reaches the server
	resp, err := h.Get(ctx, "users/1")

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Nil(t, resp)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	// interval elapsed but the health check fails
	now = now.Add(2 * time.Minute)

	_, err = h.Get(ctx, "users/1")

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	// interval elapsed and the service is back
	healthy.Store(true)

	now = now.Add(2 * time.Minute)

	resp, err = h.Get(ctx, "users/1")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ClosedState, cb.state)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	resp.Body.Close()

	last := metrics.gauges[len(metrics.gauges)-1]
	assert.Equal(t, float64(ClosedState), last.value)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	var (
		healthy atomic.Bool
		calls   int32
	)

	server := switchableServer(&healthy, &calls)
	defer server.Close()

	h, cb := newBreaker(server.URL, nil, 2)

	ctx := context.Background()

	sequence := []bool{false, true, false, true, false}

	for _, up := range sequence {
		healthy.Store(up)

		resp, err := h.Get(ctx, "users/1")
		require.NoError(t, err)

		resp.Body.Close()
	}

	assert.Equal(t, ClosedState, cb.state)
	assert.Equal(t, 1, cb.failureCount)
}

func TestCircuitBreaker_TransportErrorsCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	h := NewHTTPService(server.URL, nil, nil, &CircuitBreakerConfig{Threshold: 1, Interval: time.Hour})

	_, err := h.Get(context.Background(), "users")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCircuitOpen)

	_, err = h.Get(context.Background(), "users")
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_ClosesWithoutDedicatedHealthRoute(t *testing.T) {
	var (
		healthy atomic.Bool
		calls   int32
	)

	server := switchableServer(&healthy, &calls)
	defer server.Close()

	h, cb := newBreaker(server.URL, nil, 1)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	ctx := context.Background()

	resp, err := h.Get(ctx, "users/1")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, OpenState, cb.state)

	healthy.Store(true)

	now = now.Add(2 * time.Minute)

	for i := 0; i < 3; i++ {
		resp, err := h.Get(ctx, "users/1")

		require.NoError(t, err, "TEST[%d], Failed.\ncall after recovery", i)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "TEST[%d], Failed.\ncall after recovery", i)

		resp.Body.Close()
	}

	assert.Equal(t, ClosedState, cb.state)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}
