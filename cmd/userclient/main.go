package main

import (
	"time"

	"github.com/spf13/cast"

	userHandler "github.com/jorge/userclient/internal/handlers/user"
	userService "github.com/jorge/userclient/internal/services/user"
	"github.com/jorge/userclient/pkg/app"
	"github.com/jorge/userclient/pkg/app/config"
	"github.com/jorge/userclient/pkg/app/logging"
	"github.com/jorge/userclient/pkg/app/service"
)

const (
	userServiceName       = "user-service"
	defaultUserServiceURL = "http://localhost:8080/spring13_RESTserver"

	// The REST server has no health route; listing users is the cheapest call it answers.
	defaultUserServiceHealthEndpoint = "users"
)

func main() {
	a := app.New()

	a.AddHTTPService(userServiceName, a.Config.GetOrDefault("USER_SERVICE_URL", defaultUserServiceURL),
		userServiceOptions(a.Config, a.Logger())...)

	h := userHandler.New(userService.New(a.GetHTTPService(userServiceName)))

	a.GET("/user/{id}", h.Get)
	a.GET("/userList", h.GetAll)

	a.Run()
}

// userServiceOptions builds the outbound policy of the user service: a deadline on every call, the endpoint
// called by health checks and by an open circuit breaker, retries and circuit breaking only when configured.
func userServiceOptions(cfg config.Config, logger logging.Logger) []service.Options {
	timeout := durationOrDefault(cfg, logger, "USER_SERVICE_TIMEOUT", 10*time.Second)
	healthEndpoint := cfg.GetOrDefault("USER_SERVICE_HEALTH_ENDPOINT", defaultUserServiceHealthEndpoint)
	retries := intOrDefault(cfg, logger, "USER_SERVICE_RETRIES", 0)
	threshold := intOrDefault(cfg, logger, "USER_SERVICE_CB_THRESHOLD", 0)
	interval := durationOrDefault(cfg, logger, "USER_SERVICE_CB_INTERVAL", 10*time.Second)

	return []service.Options{
		&service.TimeoutConfig{Timeout: timeout},
		&service.HealthConfig{HealthEndpoint: healthEndpoint},
		&service.RetryConfig{MaxRetries: retries},
		&service.CircuitBreakerConfig{Threshold: threshold, Interval: interval},
	}
}

func durationOrDefault(cfg config.Config, logger logging.Logger, key string, def time.Duration) time.Duration {
	value := cfg.Get(key)
	if value == "" {
		return def
	}

	d, err := cast.ToDurationE(value)
	if err != nil || d < 0 {
		logger.Errorf("invalid value %q of config %s, using %v", value, key, def)

		return def
	}

	return d
}

func intOrDefault(cfg config.Config, logger logging.Logger, key string, def int) int {
	value := cfg.Get(key)
	if value == "" {
		return def
	}

	i, err := cast.ToIntE(value)
	if err != nil || i < 0 {
		logger.Errorf("invalid value %q of config %s, using %d", value, key, def)

		return def
	}

	return i
}
