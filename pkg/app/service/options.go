package service

import "time"

// Options decorate an HTTP service. They are applied in the order given to NewHTTPService.
type Options interface {
	AddOption(h HTTP) HTTP
}

// TimeoutConfig bounds every call of the service, connection setup and body read included.
type TimeoutConfig struct {
	Timeout time.Duration
}

func (t *TimeoutConfig) AddOption(h HTTP) HTTP {
	if svc := extractHTTPService(h); svc != nil && t.Timeout > 0 {
		svc.Client.Timeout = t.Timeout
	}

	return h
}

// HealthConfig sets the endpoint called by HealthCheck, relative to the service address.
type HealthConfig struct {
	HealthEndpoint string
}

func (hc *HealthConfig) AddOption(h HTTP) HTTP {
	if svc := extractHTTPService(h); svc != nil && hc.HealthEndpoint != "" {
		svc.healthEndpoint = hc.HealthEndpoint
	}

	return h
}

// extractHTTPService walks down the option wrappers to the base client.
func extractHTTPService(h HTTP) *httpService {
	switch v := h.(type) {
	case *httpService:
		return v
	case *retryProvider:
		return extractHTTPService(v.HTTP)
	case *circuitBreaker:
		return extractHTTPService(v.HTTP)
	default:
		return nil
	}
}
