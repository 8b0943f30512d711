package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// ErrNullBody is wrapped in an ErrDecode when a 2xx response carries the JSON literal null instead of a value.
var ErrNullBody = errors.New("response body is null")

// GetJSON performs a GET on path and decodes the JSON body into out, which must be a pointer to the
// expected shape: a struct for a single record, a slice for a sequence. Transport failures, non-2xx statuses,
// a null body and bodies that do not decode into out are all returned as errors; out must not be used then.
func GetJSON(ctx context.Context, svc HTTP, path string, out any) error {
	resp, err := svc.Get(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading response of %s", path)
	}

	target := requestURL(resp, path)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ErrUnexpectedStatus{StatusCode: resp.StatusCode, URL: target, Body: truncate(body)}
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return &ErrDecode{URL: target, Err: ErrNullBody}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ErrDecode{URL: target, Err: err}
	}

	return nil
}

func requestURL(resp *http.Response, path string) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}

	return path
}

func hostOf(address string) string {
	u, err := url.Parse(address)
	if err != nil || u.Host == "" {
		return address
	}

	return u.Host
}
