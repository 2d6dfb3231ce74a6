package audit

import (
	"context"
	"errors"
	"time"

	"contractScope/internal/explorer"
)

func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || !isRetryable(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

// isRetryable reports whether another attempt can change the outcome.
// Definitive explorer answers and caller cancellation are not retried;
// per-call deadline expiry is, since the next attempt gets a fresh deadline.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, explorer.ErrNotFound) || errors.Is(err, explorer.ErrABIParse) {
		return false
	}
	return true
}
