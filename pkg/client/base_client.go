package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseClient issues single-attempt GET requests behind a circuit breaker.
// There is no retry policy: a failed request surfaces immediately. The
// breaker only keeps long-lived deployments from hammering a provider that
// keeps failing.
type BaseClient struct {
	client         HTTPClient
	logger         *zap.Logger
	circuitBreaker *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Timeout        time.Duration
	Threshold      int
	BreakerTimeout time.Duration
}

func NewBaseClient(name string, config ClientConfig, logger *zap.Logger) *BaseClient {
	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	threshold := config.Threshold
	if threshold <= 0 {
		threshold = 3
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BaseClient{
		client:         httpClient,
		logger:         logger,
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
	}
}

// WithHTTPClient swaps the underlying HTTP transport. Tests use this to
// substitute canned responses without a live credential.
func (c *BaseClient) WithHTTPClient(hc HTTPClient) *BaseClient {
	c.client = hc
	return c
}

// Get issues one GET request and returns the response body. Non-2xx status
// codes are errors; nothing is retried.
func (c *BaseClient) Get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doGet(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *BaseClient) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("HTTP request failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body failed: %w", err)
	}

	c.logger.Debug("Request successful",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(body)))

	return body, nil
}
