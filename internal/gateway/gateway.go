// Package gateway wraps every interaction with the remote oncology service
// as a single network operation: readiness probing before a run, one-shot
// submissions with a finite timeout, and response classification into
// structured records, bare successes, and item-level failures.
//
// Failed submissions are never retried here and the payload encoding is
// never switched on failure; both are caller decisions. The circuit breaker
// only makes failures cheap once the service is clearly down — a tripped
// breaker surfaces as ordinary item-level failures.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/oncoseed/internal/domain"
)

// ErrServiceUnavailable reports that the remote service never became ready
// within the probe budget. It is fatal to the whole run.
var ErrServiceUnavailable = errors.New("service unavailable")

// SubmitError is an item-level submission failure: a network error, a
// non-2xx response, or a fast-failure from an open circuit breaker. It is
// counted by the caller and never aborts a stage.
type SubmitError struct {
	Method     string
	Path       string
	StatusCode int // 0 for network-level failures
	Err        error
}

func (e *SubmitError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Config carries the gateway's construction-time settings. The base URL is
// threaded in explicitly; there is no process-wide default.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	HealthPath    string
	ProbeInterval time.Duration
	ProbeAttempts int
	RateLimit     int // submissions per second; 0 disables limiting
}

const getCacheSize = 256

// Client is the resilient gateway to the remote service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	getCache   *lru.Cache[string, domain.Record]
	logger     *logrus.Logger
}

// New constructs a gateway client from explicit configuration.
func New(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway: base URL is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	cache, err := lru.New[string, domain.Record](getCacheSize)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to create record cache: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "oncology-service",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:  limiter,
		breaker:  breaker,
		getCache: cache,
		logger:   logger,
	}, nil
}

// CreateJSON submits a JSON-encoded entity creation and returns the record
// the service assigned.
func (c *Client) CreateJSON(ctx context.Context, path string, payload any) (domain.Record, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SubmitError{Method: http.MethodPost, Path: path, Err: fmt.Errorf("encode payload: %w", err)}
	}
	return c.submit(ctx, path, "application/json", bytes.NewReader(body))
}

// CreateForm submits an entity creation whose endpoint expects query-style
// parameters rather than a structured body. The encoding is fixed per
// endpoint; a failure is never retried with the other mode.
func (c *Client) CreateForm(ctx context.Context, path string, values url.Values) (domain.Record, error) {
	return c.submit(ctx, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (c *Client) submit(ctx context.Context, path, contentType string, body io.Reader) (domain.Record, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &SubmitError{Method: http.MethodPost, Path: path, Err: err}
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doOnce(ctx, http.MethodPost, path, contentType, body)
	})
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			return nil, se
		}
		// Open or half-open breaker: fail the item fast.
		return nil, &SubmitError{Method: http.MethodPost, Path: path, Err: err}
	}
	return result.(domain.Record), nil
}

// Get fetches an entity record, memoizing successful responses. It is used
// to verify that checkpointed parents still exist when resuming a run.
func (c *Client) Get(ctx context.Context, path string) (domain.Record, error) {
	if rec, ok := c.getCache.Get(path); ok {
		return rec, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doOnce(ctx, http.MethodGet, path, "", nil)
	})
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &SubmitError{Method: http.MethodGet, Path: path, Err: err}
	}

	rec := result.(domain.Record)
	c.getCache.Add(path, rec)
	return rec, nil
}

// doOnce performs exactly one network call and classifies the response.
func (c *Client) doOnce(ctx context.Context, method, path, contentType string, body io.Reader) (domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, &SubmitError{Method: method, Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmitError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Submission rejected")
		return nil, &SubmitError{Method: method, Path: path, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
		// 2xx with an unparseable or empty body is a bare success marker.
		return domain.Record{}, nil
	}
	return rec, nil
}
