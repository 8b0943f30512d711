package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	resTypes "github.com/jorge/userclient/pkg/app/http/response"
)

// NewResponder creates a Responder writing to w.
func NewResponder(w http.ResponseWriter) *Responder {
	return &Responder{w: w}
}

// Responder writes the outcome of a handler: an HTML fragment as is, any other value in a {"data": ...}
// envelope, and an error in an {"errors": [...]} envelope.
type Responder struct {
	w http.ResponseWriter
}

type response struct {
	Data   any           `json:"data,omitempty"`
	Errors []errResponse `json:"errors,omitempty"`
}

type errResponse struct {
	Reason   string    `json:"reason"`
	DateTime time.Time `json:"datetime"`
}

type statusCodeResponder interface {
	StatusCode() int
	Error() string
}

// Respond writes data, or err when it is non-nil. An error always wins over data, so a failed handler never
// leaks a partially built fragment.
func (r Responder) Respond(data any, err error) {
	if err != nil {
		statusCode := getStatusCode(err)

		r.writeJSON(statusCode, response{Errors: []errResponse{{Reason: reason(statusCode, err), DateTime: time.Now()}}})

		return
	}

	if html, ok := data.(resTypes.HTML); ok {
		r.w.Header().Set("Content-Type", resTypes.HTMLContentType)
		r.w.WriteHeader(http.StatusOK)

		_, _ = r.w.Write([]byte(html))

		return
	}

	r.writeJSON(http.StatusOK, response{Data: data})
}

func (r Responder) writeJSON(statusCode int, body any) {
	r.w.Header().Set("Content-Type", "application/json")
	r.w.WriteHeader(statusCode)

	_ = json.NewEncoder(r.w).Encode(body)
}

// getStatusCode maps err to its StatusCode, 500 when it has none.
func getStatusCode(err error) int {
	var e statusCodeResponder
	if errors.As(err, &e) && e.StatusCode() != 0 {
		return e.StatusCode()
	}

	return http.StatusInternalServerError
}

// reason is the text sent to the client. Server side failures only get the status text; their error, which
// may name the upstream and quote its body, is for the logs.
func reason(statusCode int, err error) string {
	if statusCode >= http.StatusInternalServerError {
		return http.StatusText(statusCode)
	}

	return err.Error()
}
