package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jorge/userclient/pkg/app/container"
	"github.com/jorge/userclient/pkg/app/metrics"
)

type metricServer struct {
	port int
	srv  *http.Server
}

func newMetricServer(c *container.Container, port int) *metricServer {
	return &metricServer{
		port: port,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           metrics.GetHandler(c.Metrics()),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *metricServer) Run(c *container.Container) {
	c.Logf("Starting metrics server on port: %d", m.port)

	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to metrics server, err: %v", err)
	}
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	return shutdownWithContext(ctx, m.srv.Shutdown, nil)
}
