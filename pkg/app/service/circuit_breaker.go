package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// circuitBreaker states.
const (
	ClosedState = iota
	OpenState
)

const circuitBreakerGauge = "app_http_circuit_breaker_state"

// ErrCircuitOpen is returned without calling the remote service while the circuit is open.
var ErrCircuitOpen = errors.New("unable to connect to server at host")

// CircuitBreakerConfig holds the configuration for the circuitBreaker.
type CircuitBreakerConfig struct {
	Threshold int           // consecutive failures after which the circuit opens
	Interval  time.Duration // minimum time between two health checks of an open circuit
}

func (cb *CircuitBreakerConfig) AddOption(h HTTP) HTTP {
	if cb.Threshold <= 0 {
		return h
	}

	breaker := &circuitBreaker{
		state:     ClosedState,
		threshold: cb.Threshold,
		interval:  cb.Interval,
		now:       time.Now,
		HTTP:      h,
	}

	if svc := extractHTTPService(h); svc != nil && svc.Metrics != nil {
		breaker.metrics = svc.Metrics
		breaker.serviceName = svc.url

		breaker.metrics.SetGauge(circuitBreakerGauge, ClosedState, "service", breaker.serviceName)
	}

	return breaker
}

type circuitBreaker struct {
	mu           sync.Mutex
	state        int
	failureCount int
	threshold    int
	interval     time.Duration
	lastChecked  time.Time
	now          func() time.Time

	metrics     Metrics
	serviceName string

	HTTP
}

func (cb *circuitBreaker) Get(ctx context.Context, path string) (*http.Response, error) {
	return cb.execute(ctx, func() (*http.Response, error) {
		return cb.HTTP.Get(ctx, path)
	})
}

func (cb *circuitBreaker) execute(ctx context.Context, f func() (*http.Response, error)) (*http.Response, error) {
	if !cb.allow(ctx) {
		return nil, ErrCircuitOpen
	}

	resp, err := f()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil || resp.StatusCode >= http.StatusInternalServerError {
		cb.failureCount++

		if cb.failureCount >= cb.threshold {
			cb.setState(OpenState)
		}
	} else {
		cb.failureCount = 0
	}

	return resp, err
}

// allow reports whether a call may go through. An open circuit is retested through HealthCheck at most once
// per interval and closes again when that check succeeds, so the health endpoint must be one the remote
// service actually serves.
func (cb *circuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()

	if cb.state == ClosedState {
		cb.mu.Unlock()

		return true
	}

	if cb.now().Sub(cb.lastChecked) < cb.interval {
		cb.mu.Unlock()

		return false
	}

	cb.lastChecked = cb.now()
	cb.mu.Unlock()

	if cb.HTTP.HealthCheck(ctx).Status != serviceUp {
		return false
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.setState(ClosedState)

	return true
}

func (cb *circuitBreaker) setState(state int) {
	cb.state = state

	if state == OpenState {
		cb.lastChecked = cb.now()
	}

	if cb.metrics != nil {
		cb.metrics.SetGauge(circuitBreakerGauge, float64(state), "service", cb.serviceName)
	}
}
