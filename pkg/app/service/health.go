package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const (
	serviceUp   = "UP"
	serviceDown = "DOWN"
)

// Health is the outcome of one call to the health endpoint of a service.
type Health struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details"`
}

// HealthCheck GETs the health endpoint and reports UP for any 2xx. A REST server without a dedicated
// health route is checked through one of its resources instead, see HealthConfig.
func (h *httpService) HealthCheck(ctx context.Context) *Health {
	details := map[string]any{
		"host":     hostOf(h.url),
		"endpoint": h.healthEndpoint,
	}

	resp, err := h.Get(ctx, h.healthEndpoint)
	if err != nil {
		details["error"] = err.Error()

		return &Health{Status: serviceDown, Details: details}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		details["error"] = fmt.Sprintf("health endpoint answered %d", resp.StatusCode)

		return &Health{Status: serviceDown, Details: details}
	}

	return &Health{Status: serviceUp, Details: details}
}
