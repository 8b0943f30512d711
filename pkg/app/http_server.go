package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jorge/userclient/pkg/app/container"
	apphttp "github.com/jorge/userclient/pkg/app/http"
	"github.com/jorge/userclient/pkg/app/http/middleware"
)

type httpServer struct {
	router *apphttp.Router
	port   int
	srv    *http.Server
}

func newHTTPServer(c *container.Container, port int) *httpServer {
	r := apphttp.NewRouter()

	r.UseMiddleware(
		middleware.Tracer,
		middleware.Logging(c.Logger),
		middleware.Metrics(c.Metrics()),
	)

	return &httpServer{
		router: r,
		port:   port,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *httpServer) Run(c *container.Container) {
	c.Logf("Starting server on port: %d", s.port)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to http server, err: %v", err)
	}
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	return shutdownWithContext(ctx, s.srv.Shutdown, s.srv.Close)
}
