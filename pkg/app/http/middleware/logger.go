// Package middleware contains the HTTP middlewares installed on every route of the server.
package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	apphttp "github.com/jorge/userclient/pkg/app/http"
)

// statusRecorder keeps the status code the inner handler answered with. 200 unless WriteHeader says otherwise.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog is the entry written once per inbound request. Route is the matched pattern, so all lookups of
// single users share "/user/{id}" and UserID carries the id that was asked for.
type RequestLog struct {
	TraceID      string `json:"trace_id,omitempty"`
	Method       string `json:"method"`
	Route        string `json:"route,omitempty"`
	URI          string `json:"uri"`
	UserID       string `json:"user_id,omitempty"`
	Status       int    `json:"status"`
	ResponseTime int64  `json:"response_time_us"`
}

func (rl *RequestLog) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%-6d\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s %s",
		rl.TraceID, colorForStatusCode(rl.Status), rl.Status, rl.ResponseTime, rl.Method, rl.URI)

	if rl.UserID != "" {
		fmt.Fprintf(writer, " \u001B[38;5;8muser=%s\u001B[0m", rl.UserID)
	}

	fmt.Fprintln(writer)
}

// statusColors maps a status class (2 for 2xx and so on) to a terminal colour.
var statusColors = map[int]int{2: 34, 4: 220, 5: 202}

func colorForStatusCode(status int) int {
	return statusColors[status/100]
}

type logger interface {
	Log(...any)
	Error(...any)
}

// Logging logs one RequestLog per request and sets the X-Correlation-ID response header to the trace id.
// A panic in the inner handler is logged and answered with the usual error envelope and a 500.
func Logging(logger logger) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			spanContext := trace.SpanFromContext(r.Context()).SpanContext()

			if spanContext.HasTraceID() {
				srw.Header().Set("X-Correlation-ID", spanContext.TraceID().String())
			}

			defer func(res *statusRecorder, req *http.Request) {
				l := &RequestLog{
					Method:       req.Method,
					Route:        routeTemplate(req),
					URI:          req.RequestURI,
					UserID:       mux.Vars(req)["id"],
					Status:       res.code,
					ResponseTime: time.Since(start).Microseconds(),
				}

				if spanContext.HasTraceID() {
					l.TraceID = spanContext.TraceID().String()
				}

				if res.code >= http.StatusInternalServerError {
					logger.Error(l)
				} else {
					logger.Log(l)
				}
			}(srw, r)

			defer func() {
				if re := recover(); re != nil {
					logger.Error(panicLog{URI: r.RequestURI, Panic: fmt.Sprint(re), StackTrace: string(debug.Stack())})

					apphttp.NewResponder(srw).Respond(nil, apphttp.ErrorPanicRecovery{})
				}
			}()

			inner.ServeHTTP(srw, r)
		})
	}
}

// routeTemplate returns the pattern of the matched route without a trailing slash, or the raw path when
// no route matched.
func routeTemplate(r *http.Request) string {
	path := r.URL.Path

	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			path = tmpl
		}
	}

	if path == "/" {
		return path
	}

	return strings.TrimSuffix(path, "/")
}

type panicLog struct {
	URI        string `json:"uri"`
	Panic      string `json:"panic"`
	StackTrace string `json:"stack_trace,omitempty"`
}
