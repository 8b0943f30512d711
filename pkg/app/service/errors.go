package service

import (
	"fmt"
	"unicode/utf8"
)

const maxErrorBodyLength = 256

// ErrUnexpectedStatus is returned by GetJSON when the remote service answers with a non-2xx status. URL and
// Body are meant for logs; they are not sent back to the caller of the application.
type ErrUnexpectedStatus struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *ErrUnexpectedStatus) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
	}

	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// ErrDecode is returned by GetJSON when the response body does not decode into the requested shape.
type ErrDecode struct {
	URL string
	Err error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decoding response of %s: %v", e.URL, e.Err)
}

func (e *ErrDecode) Unwrap() error {
	return e.Err
}

// truncate keeps at most maxErrorBodyLength bytes of body for logging, cutting on a rune boundary.
func truncate(body []byte) string {
	if len(body) <= maxErrorBodyLength {
		return string(body)
	}

	cut := maxErrorBodyLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}

	return string(body[:cut]) + "..."
}
