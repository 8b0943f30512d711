package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jorge/userclient/pkg/app/container"
	"github.com/jorge/userclient/pkg/app/logging"
)

// Request is what a handler can read from the incoming request.
type Request interface {
	Context() context.Context
	PathParam(string) string
}

// Responder writes the result of a handler.
type Responder interface {
	Respond(data any, err error)
}

type Context struct {
	context.Context

	// Request needs to be public because handlers need to access request details.
	Request

	// Same logic as above.
	*container.Container

	// responder is private as Handlers do not need to worry about how to respond.
	responder Responder

	*logging.RequestLogger
}

/*
Trace returns an open telemetry span. We have to always close the span after corresponding work is done. Usages:

	span := c.Trace("Some Work")
	// Do some work here.
	defer span.End()

If an entire function has to traced as span, we can use a simpler format:

	defer c.Trace("fetch-user").End()
*/
func (c *Context) Trace(name string) trace.Span {
	tr := otel.GetTracerProvider().Tracer("userclient-context")
	ctx, span := tr.Start(c.Context, name)

	c.Context = ctx

	return span
}

// GetCorrelationID returns the trace id of the request, the same value logged with every line it produces.
func (c *Context) GetCorrelationID() string {
	return trace.SpanFromContext(c).SpanContext().TraceID().String()
}

// NewContext creates the Context a Handler is called with.
func NewContext(w Responder, r Request, c *container.Container) *Context {
	return &Context{
		Context:       r.Context(),
		Request:       r,
		responder:     w,
		Container:     c,
		RequestLogger: logging.NewRequestLogger(r.Context(), c.Logger),
	}
}
