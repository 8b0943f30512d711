package app

import (
	"context"
	"errors"
	"time"

	"github.com/jorge/userclient/pkg/app/config"
)

// Shutdown stops the HTTP and metrics servers, waiting for in-flight requests until ctx is done, and flushes
// the pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	a.shutdown = true
	a.shutdownMu.Unlock()

	var err error

	if a.httpServer != nil {
		err = errors.Join(err, a.httpServer.Shutdown(ctx))
	}

	if a.metricServer != nil {
		err = errors.Join(err, a.metricServer.Shutdown(ctx))
	}

	if a.tracerProvider != nil {
		err = errors.Join(err, a.tracerProvider.Shutdown(ctx))
	}

	if err != nil {
		a.container.Errorf("error while shutting down: %v", err)

		return err
	}

	a.container.Info("Application shutdown complete")

	return nil
}

func (a *App) isShutDown() bool {
	a.shutdownMu.Lock()
	defer a.shutdownMu.Unlock()

	return a.shutdown
}

func (a *App) shutdownTimeout() time.Duration {
	timeout, err := getShutdownTimeoutFromConfig(a.Config)
	if err != nil {
		a.container.Errorf("invalid value of config SHUTDOWN_GRACE_PERIOD, using %v: %v", timeout, err)
	}

	return timeout
}

// shutdownWithContext runs shutdownFunc and, if ctx is done first, forceCloseFunc.
func shutdownWithContext(ctx context.Context, shutdownFunc func(ctx context.Context) error, forceCloseFunc func() error) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- shutdownFunc(ctx)
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()

		if forceCloseFunc != nil {
			err = errors.Join(err, forceCloseFunc())
		}

		return err
	case err := <-errCh:
		return err
	}
}

func getShutdownTimeoutFromConfig(cfg config.Config) (time.Duration, error) {
	value := cfg.GetOrDefault("SHUTDOWN_GRACE_PERIOD", "30s")

	timeout, err := time.ParseDuration(value)
	if err != nil {
		return shutDownTimeout, err
	}

	return timeout, nil
}
