package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type metrics interface {
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}

// Metrics records the app_http_response histogram, labelled with the route template rather than the raw
// path so that ids do not explode the label cardinality.
func Metrics(metrics metrics) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			path := routeTemplate(r)

			defer func(res *statusRecorder, req *http.Request) {
				metrics.RecordHistogram(context.Background(), "app_http_response", time.Since(start).Seconds(),
					"path", path, "method", req.Method, "status", strconv.Itoa(res.code))
			}(srw, r)

			inner.ServeHTTP(srw, r)
		})
	}
}
