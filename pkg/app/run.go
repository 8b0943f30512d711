package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Run starts the metrics server and, when routes are registered, the HTTP server. It blocks until both have
// stopped, which happens on SIGINT/SIGTERM or when Shutdown is called.
func (a *App) Run() {
	// Create a context that is canceled on receiving termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		if a.isShutDown() {
			return
		}

		shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout())
		defer done()

		_ = a.Shutdown(shutdownCtx)
	}()

	wg := sync.WaitGroup{}

	// running metrics server before HTTP server
	wg.Add(1)

	go func(m *metricServer) {
		defer wg.Done()
		m.Run(a.container)
	}(a.metricServer)

	if a.httpRegistered {
		wg.Add(1)

		a.httpServerSetup()

		go func(s *httpServer) {
			defer wg.Done()
			s.Run(a.container)
		}(a.httpServer)
	}

	wg.Wait()
}

// httpServerSetup registers the default routes. The catch-all is added last so that it only matches
// what no other route does.
func (a *App) httpServerSetup() {
	a.add(http.MethodGet, "/.well-known/health", healthHandler)
	a.add(http.MethodGet, "/.well-known/alive", liveHandler)

	a.httpServer.router.CatchAll(handler{
		function:  catchAllHandler,
		container: a.container,
	})
}
