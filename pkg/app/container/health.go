package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jorge/userclient/pkg/app/service"
)

const (
	statusUp       = "UP"
	statusDown     = "DOWN"
	statusDegraded = "DEGRADED"

	healthCheckTimeout = 5 * time.Second
)

// Health checks every registered service concurrently. The application is reported DEGRADED as soon as one
// of them is not UP. Checks still running after healthCheckTimeout, or once ctx is done, are abandoned and
// their service reported DOWN.
func (c *Container) Health(ctx context.Context) any {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		details = make(map[string]any, len(c.Services)+3)
		status  = statusUp
	)

	g, gctx := errgroup.WithContext(ctx)

	for name, svc := range c.Services {
		g.Go(func() error {
			h, err := checkService(gctx, svc)

			mu.Lock()
			defer mu.Unlock()

			details[name] = h

			if h.Status != statusUp {
				status = statusDegraded
			}

			if err != nil {
				return fmt.Errorf("health check of %s: %w", name, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		status = statusDegraded
		details["error"] = err.Error()
	}

	details["name"] = c.GetAppName()
	details["version"] = c.GetAppVersion()

	return map[string]any{
		"status":  status,
		"details": details,
	}
}

// checkService returns the health of svc, or a DOWN health when ctx ends first. The error is ctx.Err().
func checkService(ctx context.Context, svc service.HTTP) (*service.Health, error) {
	done := make(chan *service.Health, 1)

	go func() {
		done <- svc.HealthCheck(ctx)
	}()

	select {
	case h := <-done:
		return h, ctx.Err()
	case <-ctx.Done():
		return &service.Health{
			Status:  statusDown,
			Details: map[string]any{"error": "health check abandoned: " + ctx.Err().Error()},
		}, ctx.Err()
	}
}
