package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// restServer only serves the users collection, the way the user REST server does.
func restServer(status int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	})

	return httptest.NewServer(mux)
}

func TestHTTPService_HealthCheck(t *testing.T) {
	up := restServer(http.StatusOK)
	defer up.Close()

	broken := restServer(http.StatusServiceUnavailable)
	defer broken.Close()

	upHost, _ := url.Parse(up.URL)
	brokenHost, _ := url.Parse(broken.URL)

	tests := []struct {
		desc    string
		address string
		options []Options
		status  string
		details map[string]any
	}{
		{"users collection as health endpoint", up.URL, []Options{&HealthConfig{HealthEndpoint: "users"}}, serviceUp,
			map[string]any{"host": upHost.Host, "endpoint": "users"}},
		{"default endpoint is not served", up.URL, nil, serviceDown,
			map[string]any{"host": upHost.Host, "endpoint": defaultHealthEndpoint, "error": "health endpoint answered 404"}},
		{"users collection failing", broken.URL, []Options{&HealthConfig{HealthEndpoint: "users"}}, serviceDown,
			map[string]any{"host": brokenHost.Host, "endpoint": "users", "error": "health endpoint answered 503"}},
	}

	for i, tc := range tests {
		svc := NewHTTPService(tc.address, nil, nil, tc.options...)

		health := svc.HealthCheck(context.Background())

		assert.Equal(t, tc.status, health.Status, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.details, health.Details, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestHTTPService_HealthCheckUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	health := NewHTTPService(server.URL, nil, nil, &HealthConfig{HealthEndpoint: "users"}).HealthCheck(context.Background())

	assert.Equal(t, serviceDown, health.Status)
	assert.Contains(t, health.Details, "error")
}
