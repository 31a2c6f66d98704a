package services

import (
	"sync"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	now        func() time.Time
	mutex      sync.Mutex
	logger     *logging.SafeLogger
}

// NewRateLimiter creates a new token bucket rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
		logger:     logger,
	}
}

// NewPerMinuteLimiter allows perMinute requests per minute, refilled evenly.
// A non-positive limit disables limiting.
func NewPerMinuteLimiter(perMinute int, logger *logging.SafeLogger) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return NewRateLimiter(perMinute, time.Minute/time.Duration(perMinute), logger)
}

// Allow takes one token when available. A nil limiter allows everything.
func (rl *RateLimiter) Allow(operation string) bool {
	if rl == nil {
		return true
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	if tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate); tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.String("operation", operation),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

// Status returns the current and maximum token counts
func (rl *RateLimiter) Status() (int, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.tokens, rl.maxTokens
}
