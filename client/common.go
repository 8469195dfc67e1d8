package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// withRetries runs fn until it succeeds, fails with something other than a
// rate limit, or maxAttempts is reached. Rate limited attempts sleep for the
// server's Retry-After first.
func withRetries[R any](ctx context.Context, logger *slog.Logger, maxAttempts int, fn func() (R, error)) (R, error) {
	var zero R
	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil // Success
		}

		var rateLimitErr *ErrRateLimited
		if !errors.As(err, &rateLimitErr) || attempt >= maxAttempts {
			return zero, err
		}

		logger.Warn("Request rate limited, sleeping", "duration", rateLimitErr.RetryAfter, "attempt", attempt)
		timer := time.NewTimer(rateLimitErr.RetryAfter)
		select {
		case <-timer.C:
			logger.Debug("Finished rate limit sleep, retrying operation.")
		case <-ctx.Done():
			timer.Stop()
			logger.Error("Context cancelled during rate limit sleep", "error", ctx.Err())
			return zero, fmt.Errorf("operation cancelled during rate limit sleep: %w", ctx.Err())
		}
	}
}
