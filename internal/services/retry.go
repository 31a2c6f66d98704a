package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"go.uber.org/zap"
)

// RetryConfig defines retry behavior for idempotent outbound reads
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns the retry policy used for backend and CEP reads
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    2,
		BaseDelay:     200 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}
}

// NoRetry performs a single attempt
func NoRetry() RetryConfig {
	return RetryConfig{}
}

// APIError is a non 2xx answer from an upstream service
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// Temporary reports whether the status is worth retrying
func (e *APIError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return e.StatusCode >= http.StatusInternalServerError
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// withRetry executes fn with exponential backoff while its error is retryable
func withRetry(ctx context.Context, cfg RetryConfig, logger *logging.SafeLogger, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(cfg.BaseDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1)))
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			logger.Debug("retrying operation",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = fn()
		if lastErr == nil {
			if attempt > 0 {
				logger.Info("operation succeeded after retry",
					zap.String("operation", operation),
					zap.Int("attempts", attempt+1))
			}
			return nil
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}

		logger.Warn("operation failed, will retry",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", cfg.MaxRetries),
			zap.Error(lastErr))
	}

	if cfg.MaxRetries == 0 {
		return lastErr
	}

	logger.Error("operation failed after all retries",
		zap.String("operation", operation),
		zap.Int("total_attempts", cfg.MaxRetries+1),
		zap.Error(lastErr))

	return fmt.Errorf("operation %s failed after %d attempts: %w", operation, cfg.MaxRetries+1, lastErr)
}
