// Package openweather adapts the OpenWeatherMap geocoding and One Call 3.0
// endpoints to the domain contracts in internal/weather.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/cityweather/cityweather/internal/observability"
)

// RetryConfig controls the session's bounded retry for transient errors.
type RetryConfig struct {
	MaxRetries     int           // additional attempts after the first
	InitialBackoff time.Duration // doubled on each subsequent retry
}

// retryableStatus lists the server errors worth retrying. Client errors
// (400/401/404/429) are terminal and go straight to classification.
var retryableStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Session is the shared outbound GET transport: one connection-reusing
// http.Client wrapped with exponential-backoff retry for 5xx responses and a
// circuit breaker. Constructed once at startup and read-only afterwards, so
// it is safe for concurrent request handlers.
type Session struct {
	client  *http.Client
	retry   RetryConfig
	circuit *gobreaker.CircuitBreaker
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewSession(client *http.Client, retry RetryConfig, metrics *observability.Metrics, logger *slog.Logger) *Session {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Session{
		client:  client,
		retry:   retry,
		circuit: cb,
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
		logger:  logger,
	}
}

// Get executes a GET request, retrying up to MaxRetries times on 500/502/503
// or 504 with exponential backoff. Any other status is returned immediately;
// when retries are exhausted the final 5xx response is returned so the caller
// can classify the provider's error body. Transport errors are not retried.
func (s *Session) Get(ctx context.Context, url string) (*http.Response, error) {
	var attempt int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		result, err := s.circuit.Execute(func() (interface{}, error) {
			return s.client.Do(req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fmt.Errorf("circuit breaker open: %w", err)
			}
			return nil, err
		}

		resp, ok := result.(*http.Response)
		if !ok {
			return nil, errors.New("unexpected result type from circuit breaker")
		}

		if !retryableStatus[resp.StatusCode] || attempt >= s.retry.MaxRetries {
			return resp, nil
		}

		// Drain so the connection can be reused for the retry.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		delay := s.retry.InitialBackoff << attempt
		s.logger.Warn("retrying after server error",
			"status", resp.StatusCode,
			"attempt", attempt+1,
			"delay", delay,
		)
		s.metrics.UpstreamRetries.Inc()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(delay):
		}
		attempt++
	}
}
