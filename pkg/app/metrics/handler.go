package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GetHandler returns the handler of the metrics server: GET /metrics in the prometheus text format. Any
// other path answers 404.
func GetHandler(m Manager) http.Handler {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer

	if mm, ok := m.(*metricsManager); ok {
		gatherer = mm.registry
	}

	router := mux.NewRouter()
	router.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return router
}
