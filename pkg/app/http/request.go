package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Request exposes what the handlers of this application read from an inbound request: its context and the
// path variables of the matched route.
type Request struct {
	ctx  context.Context
	vars map[string]string
}

func NewRequest(r *http.Request) *Request {
	return &Request{ctx: r.Context(), vars: mux.Vars(r)}
}

func (r *Request) Context() context.Context {
	return r.ctx
}

// PathParam returns the path variable key, "" when the route has none.
func (r *Request) PathParam(key string) string {
	return r.vars[key]
}
