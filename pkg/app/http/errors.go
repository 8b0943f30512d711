// Package http provides the router, request abstraction and responder used by the application's HTTP server.
package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorInvalidParam is returned when a path parameter is present but cannot be used, such as a user id that
// is not a base-10 integer.
type ErrorInvalidParam struct {
	Params []string `json:"param,omitempty"`
}

func (e ErrorInvalidParam) Error() string {
	return describeParams("invalid value for", e.Params)
}

func (ErrorInvalidParam) StatusCode() int {
	return http.StatusBadRequest
}

// ErrorMissingParam is returned when a required path parameter is empty.
type ErrorMissingParam struct {
	Params []string `json:"param,omitempty"`
}

func (e ErrorMissingParam) Error() string {
	return describeParams("missing value for", e.Params)
}

func (ErrorMissingParam) StatusCode() int {
	return http.StatusBadRequest
}

func describeParams(problem string, params []string) string {
	noun := "parameter"
	if len(params) > 1 {
		noun = "parameters"
	}

	return fmt.Sprintf("%s %s %s", problem, noun, strings.Join(params, ", "))
}

// ErrorInvalidRoute answers requests matching no registered route.
type ErrorInvalidRoute struct{}

func (ErrorInvalidRoute) Error() string { return "route not registered" }

func (ErrorInvalidRoute) StatusCode() int { return http.StatusNotFound }

// ErrorRequestTimeout is returned when a handler did not finish within REQUEST_TIMEOUT.
type ErrorRequestTimeout struct {
	After time.Duration
}

func (e ErrorRequestTimeout) Error() string {
	if e.After <= 0 {
		return "request timed out"
	}

	return fmt.Sprintf("request timed out after %v", e.After)
}

func (ErrorRequestTimeout) StatusCode() int { return http.StatusRequestTimeout }

// ErrorPanicRecovery is returned in place of the result of a handler that panicked.
type ErrorPanicRecovery struct{}

func (ErrorPanicRecovery) Error() string { return "handler panicked" }

func (ErrorPanicRecovery) StatusCode() int { return http.StatusInternalServerError }
