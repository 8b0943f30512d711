/*
Package container holds the application level concerns shared by every handler: the logger, the metrics
manager and the clients of the remote HTTP services the application depends on.
*/
package container

import (
	"github.com/jorge/userclient/pkg/app/config"
	"github.com/jorge/userclient/pkg/app/logging"
	"github.com/jorge/userclient/pkg/app/metrics"
	"github.com/jorge/userclient/pkg/app/service"
)

// Container is a collection of all common application level concerns. Things like the Logger and the
// clients of remote services, which are shared across requests, are placed here.
type Container struct {
	logging.Logger

	appName    string
	appVersion string

	Services       map[string]service.HTTP
	metricsManager metrics.Manager
}

func NewContainer(conf config.Config) *Container {
	if conf == nil {
		return &Container{}
	}

	c := &Container{
		appName:    conf.GetOrDefault("APP_NAME", "userclient"),
		appVersion: conf.GetOrDefault("APP_VERSION", "dev"),
	}

	c.Create(conf)

	return c
}

func (c *Container) Create(conf config.Config) {
	if c.appName == "" {
		c.appName = conf.GetOrDefault("APP_NAME", "userclient")
	}

	if c.appVersion == "" {
		c.appVersion = conf.GetOrDefault("APP_VERSION", "dev")
	}

	if c.Logger == nil {
		c.Logger = logging.NewLogger(logging.GetLevelFromString(conf.Get("LOG_LEVEL")))
	}

	c.Logger.Debug("Container is being created")

	c.metricsManager = metrics.NewMetricsManager(c.Logger)

	c.registerFrameworkMetrics()

	c.Metrics().SetGauge("app_info", 1, "app_name", c.GetAppName(), "app_version", c.GetAppVersion())
}

// GetHTTPService returns registered HTTP services.
// HTTP services are registered from AddHTTPService method of the App.
func (c *Container) GetHTTPService(serviceName string) service.HTTP {
	return c.Services[serviceName]
}

func (c *Container) Metrics() metrics.Manager {
	return c.metricsManager
}

func (c *Container) GetAppName() string {
	return c.appName
}

func (c *Container) GetAppVersion() string {
	return c.appVersion
}

func (c *Container) registerFrameworkMetrics() {
	c.Metrics().NewGauge("app_info", "Info for app_name and app_version.")

	httpBuckets := []float64{.001, .003, .005, .01, .02, .03, .05, .1, .2, .3, .5, .75, 1, 2, 3, 5, 10, 30}
	c.Metrics().NewHistogram("app_http_response", "Response time of HTTP requests in seconds.", httpBuckets...)
	c.Metrics().NewHistogram("app_http_service_response", "Response time of HTTP service requests in seconds.",
		httpBuckets...)
	c.Metrics().NewGauge("app_http_circuit_breaker_state",
		"Current state of the circuit breaker (0 for Closed, 1 for Open)")
}
