package service

import (
	"context"
	"net/http"
)

// RetryConfig retries calls failing at the transport level or answered with a 5xx. MaxRetries is the number of
// attempts made after the first one.
type RetryConfig struct {
	MaxRetries int
}

func (r *RetryConfig) AddOption(h HTTP) HTTP {
	if r.MaxRetries <= 0 {
		return h
	}

	return &retryProvider{
		maxRetries: r.MaxRetries,
		HTTP:       h,
	}
}

type retryProvider struct {
	maxRetries int

	HTTP
}

// Get gives up early once ctx is done; the last response or error is returned.
func (rp *retryProvider) Get(ctx context.Context, path string) (*http.Response, error) {
	var (
		resp *http.Response
		err  error
	)

	for attempt := 0; attempt <= rp.maxRetries; attempt++ {
		if resp != nil {
			resp.Body.Close()
		}

		resp, err = rp.HTTP.Get(ctx, path)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		if ctx.Err() != nil {
			break
		}
	}

	return resp, err
}
