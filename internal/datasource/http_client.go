package datasource

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourusername/hot-streak/internal/metrics"
)

// HTTPClientConfig tunes the outbound stats-API client.
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the breaker opens
	BreakerCooldown   time.Duration
}

// DefaultHTTPClientConfig matches the free-tier limits of the stats API.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           10 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      500 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         5.0,
		CircuitBreakerMax: 5,
		BreakerCooldown:   30 * time.Second,
	}
}

// RateLimitedHTTPClient is a retryablehttp client behind a token-bucket
// rate limiter and a consecutive-failure circuit breaker. Once open,
// the breaker rejects requests until the cooldown elapses, then lets a
// single probe request through.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *log.Logger

	mu        sync.Mutex
	failures  int
	threshold int
	cooldown  time.Duration
	openedAt  time.Time
	open      bool
	lastErr   error
}

// NewRateLimitedHTTPClient builds the client. A nil logger discards
// retry chatter.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *log.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.CheckRetry = retryOnThrottleOrServerError
	rc.Logger = logger

	return &RateLimitedHTTPClient{
		client:    rc,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:    logger,
		threshold: cfg.CircuitBreakerMax,
		cooldown:  cooldown,
	}
}

// Do executes the request, honoring the rate limit and breaker state.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.gate(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("wrap request: %w", err)
	}

	resp, err := c.client.Do(retryReq.WithContext(ctx))
	c.record(resp, err)
	return resp, err
}

// gate rejects while the breaker is open, allowing one probe through
// after the cooldown.
func (c *RateLimitedHTTPClient) gate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return nil
	}
	if time.Since(c.openedAt) >= c.cooldown {
		// Half-open: the next request decides whether the breaker
		// closes again.
		c.open = false
		c.failures = c.threshold - 1
		return nil
	}
	return fmt.Errorf("circuit breaker open: %v", c.lastErr)
}

func (c *RateLimitedHTTPClient) record(resp *http.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil && resp.StatusCode < 500 {
		c.failures = 0
		c.open = false
		return
	}

	c.failures++
	if err != nil {
		c.lastErr = err
	} else {
		c.lastErr = fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	if c.failures >= c.threshold && !c.open {
		c.open = true
		c.openedAt = time.Now()
		metrics.RecordCircuitBreakerTrip()
		c.logger.Printf("Circuit breaker opened after %d consecutive failures: %v", c.failures, c.lastErr)
	}
}

// Get issues a GET with the given headers.
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return c.Do(ctx, req)
}

// Close releases idle connections.
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryOnThrottleOrServerError retries network errors, 429s and 5xx
// gateway errors; other client errors surface immediately.
func retryOnThrottleOrServerError(_ context.Context, resp *http.Response, err error) (bool, error) {
	if err != nil {
		return true, err
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}
