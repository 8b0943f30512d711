package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedHistogram struct {
	name   string
	labels []string
}

type mockMetrics struct {
	recorded []recordedHistogram
}

func (m *mockMetrics) RecordHistogram(_ context.Context, name string, _ float64, labels ...string) {
	m.recorded = append(m.recorded, recordedHistogram{name: name, labels: labels})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &mockMetrics{}

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/user/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/user/42", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Len(t, m.recorded, 1)
	assert.Equal(t, "app_http_response", m.recorded[0].name)
	assert.Equal(t, []string{"path", "/user/{id}", "method", "GET", "status", "404"}, m.recorded[0].labels)
}

func TestMetrics_WithoutRoute(t *testing.T) {
	m := &mockMetrics{}

	handler := Metrics(m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/userList/", http.NoBody)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, m.recorded, 1)
	assert.Equal(t, []string{"path", "/userList", "method", "GET", "status", "200"}, m.recorded[0].labels)
}
