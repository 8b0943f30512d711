package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Router dispatches requests to the handlers registered by route pattern.
type Router struct {
	mux *mux.Router
}

type Middleware func(handler http.Handler) http.Handler

func NewRouter() *Router {
	return &Router{mux: mux.NewRouter()}
}

// Add registers handler for method and pattern. The handler runs inside an otelhttp span named after the
// pattern, so "/user/{id}" yields one span name whatever the id.
func (r *Router) Add(method, pattern string, handler http.Handler) {
	r.mux.Methods(method).Path(pattern).Handler(otelhttp.NewHandler(handler, method+" "+pattern))
}

// CatchAll answers every request not matched by a route added before it.
func (r *Router) CatchAll(handler http.Handler) {
	r.mux.PathPrefix("/").Handler(handler)
}

// UseMiddleware wraps every matched route with mws, the first one outermost.
func (r *Router) UseMiddleware(mws ...Middleware) {
	for _, m := range mws {
		r.mux.Use(mux.MiddlewareFunc(m))
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
