// Package app is a small HTTP application framework: configuration, logging, metrics and tracing are set up
// by New, handlers are plain functions of a *Context, and remote services are registered once and shared.
package app

import (
	"net/http"
	"os"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/jorge/userclient/pkg/app/config"
	"github.com/jorge/userclient/pkg/app/container"
	"github.com/jorge/userclient/pkg/app/logging"
	"github.com/jorge/userclient/pkg/app/metrics"
	"github.com/jorge/userclient/pkg/app/service"
)

// App is the main application.
type App struct {
	// Config can be used by applications to fetch custom configurations from environment or file.
	Config config.Config // If we directly embed, unnecessary confusion between app.Get and app.GET will happen.

	httpServer   *httpServer
	metricServer *metricServer

	// container is unexported because applications are provided access to it via Context
	container *container.Container

	tracerProvider *trace.TracerProvider

	httpRegistered bool

	shutdownMu sync.Mutex
	shutdown   bool
}

// New creates an HTTP Server Application reading its configuration from ./configs and the environment.
func New() *App {
	return NewWithConfig(readConfig())
}

// NewWithConfig creates an HTTP Server Application from an already loaded configuration.
func NewWithConfig(cfg config.Config) *App {
	app := &App{Config: cfg}
	app.container = container.NewContainer(app.Config)

	app.initTracer()

	// Metrics Server
	port, err := strconv.Atoi(app.Config.Get("METRICS_PORT"))
	if err != nil || port <= 0 {
		port = defaultMetricPort
	}

	app.metricServer = newMetricServer(app.container, port)

	// HTTP Server
	port, err = strconv.Atoi(app.Config.Get("HTTP_PORT"))
	if err != nil || port <= 0 {
		port = defaultHTTPPort
	}

	app.httpServer = newHTTPServer(app.container, port)

	return app
}

// readConfig reads the configuration from the default location.
func readConfig() config.Config {
	var configLocation string
	if _, err := os.Stat("./configs"); err == nil {
		configLocation = "./configs"
	}

	return config.NewEnvFile(configLocation, logging.NewLogger(logging.INFO))
}

// AddHTTPService registers HTTP service in container.
func (a *App) AddHTTPService(serviceName, serviceAddress string, options ...service.Options) {
	if a.container.Services == nil {
		a.container.Services = make(map[string]service.HTTP)
	}

	if _, ok := a.container.Services[serviceName]; ok {
		a.container.Debugf("Service already registered Name: %v", serviceName)
	}

	a.container.Services[serviceName] = service.NewHTTPService(serviceAddress, a.container.Logger,
		a.container.Metrics(), options...)
}

// GetHTTPService returns the service registered under serviceName, nil when there is none.
func (a *App) GetHTTPService(serviceName string) service.HTTP {
	return a.container.GetHTTPService(serviceName)
}

// GET adds a Handler for HTTP GET method for a route pattern.
func (a *App) GET(pattern string, handler Handler) {
	a.add(http.MethodGet, pattern, handler)
}

func (a *App) add(method, pattern string, h Handler) {
	a.httpRegistered = true

	a.httpServer.router.Add(method, pattern, handler{
		function:       h,
		container:      a.container,
		requestTimeout: a.Config.Get("REQUEST_TIMEOUT"),
	})
}

func (a *App) Metrics() metrics.Manager {
	return a.container.Metrics()
}

func (a *App) Logger() logging.Logger {
	return a.container.Logger
}
