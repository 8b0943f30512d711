package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/jorge/userclient/pkg/app/container"
	apphttp "github.com/jorge/userclient/pkg/app/http"
	"github.com/jorge/userclient/pkg/app/logging"
)

type Handler func(c *Context) (any, error)

type handler struct {
	function       Handler
	container      *container.Container
	requestTimeout string
}

type result struct {
	data any
	err  error
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := NewContext(apphttp.NewResponder(w), apphttp.NewRequest(r), h.container)
	correlationID := c.GetCorrelationID()

	if h.requestTimeout != "" {
		if reqTimeout := h.setContextTimeout(h.requestTimeout); reqTimeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), time.Duration(reqTimeout)*time.Second)
			defer cancel()

			c.Context = ctx
		}
	}

	done := make(chan result, 1)
	panicked := make(chan struct{})

	go func() {
		defer panicRecoveryHandler(h.container, panicked)

		data, err := h.function(c)

		done <- result{data: data, err: err}
	}()

	var res result

	select {
	case <-c.Context.Done():
		res.err = c.Context.Err()

		// If the context's deadline has been exceeded, return a timeout error response
		if errors.Is(res.err, context.DeadlineExceeded) {
			res.err = apphttp.ErrorRequestTimeout{After: h.timeout()}
		}
	case res = <-done:
	case <-panicked:
		res.err = apphttp.ErrorPanicRecovery{}
	}

	if res.err != nil {
		logFailure(c.RequestLogger, correlationID, res.err)
	}

	c.responder.Respond(res.data, res.err)
}

// logFailure records the full error of a failed request. Server side failures only reach the client as a
// status text, so this line is the one place their cause shows up.
func logFailure(l *logging.RequestLogger, correlationID string, err error) {
	var sc interface{ StatusCode() int }

	if errors.As(err, &sc) && sc.StatusCode() < http.StatusInternalServerError {
		l.Debugf("request %s rejected: %v", correlationID, err)

		return
	}

	l.Errorf("request %s failed: %v", correlationID, err)
}

func healthHandler(c *Context) (any, error) {
	return c.Health(c), nil
}

func liveHandler(*Context) (any, error) {
	return struct {
		Status string `json:"status"`
	}{Status: "UP"}, nil
}

func catchAllHandler(*Context) (any, error) {
	return nil, apphttp.ErrorInvalidRoute{}
}

func (h handler) timeout() time.Duration {
	reqTimeout, err := strconv.Atoi(h.requestTimeout)
	if err != nil {
		return 0
	}

	return time.Duration(reqTimeout) * time.Second
}

// Helper function to parse and validate request timeout.
func (h handler) setContextTimeout(timeout string) int {
	reqTimeout, err := strconv.Atoi(timeout)
	if err != nil || reqTimeout < 0 {
		h.container.Error("invalid value of config REQUEST_TIMEOUT. requests will not time out.")

		return 0
	}

	return reqTimeout
}

type panicLog struct {
	Error      string `json:"error,omitempty"`
	StackTrace string `json:"stack_trace,omitempty"`
}

func panicRecoveryHandler(log logging.Logger, panicked chan struct{}) {
	re := recover()
	if re != nil {
		close(panicked)
		log.Error(panicLog{
			Error:      fmt.Sprint(re),
			StackTrace: string(debug.Stack()),
		})
	}
}
