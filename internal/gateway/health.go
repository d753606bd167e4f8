package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// WaitUntilReady polls the service's health endpoint on a fixed interval
// until it answers 200, up to the configured attempt budget. Probes bypass
// the rate limiter and circuit breaker: an unhealthy service must not
// poison the breaker before the run starts. Exhausting the budget returns
// ErrServiceUnavailable, which aborts the run with no entities submitted.
func (c *Client) WaitUntilReady(ctx context.Context) error {
	attempts := c.cfg.ProbeAttempts
	if attempts <= 0 {
		attempts = 30
	}
	interval := c.cfg.ProbeInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	path := c.cfg.HealthPath
	if path == "" {
		path = "/actuator/health"
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.probe(ctx, path); err == nil {
			c.logger.WithField("attempt", attempt).Info("Service is ready")
			return nil
		} else if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.WithFields(logrus.Fields{
			"attempt":  attempt,
			"attempts": attempts,
		}).Debug("Service not ready yet")

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: health check failed after %d attempts", ErrServiceUnavailable, attempts)
}

func (c *Client) probe(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
