package resilience

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, maxAttempts is reached or ctx ends.
// It returns the last error from fn, or ctx.Err() if ctx ended while waiting.
func Retry(ctx context.Context, strategy BackoffStrategy, maxAttempts int, fn func(ctx context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}

		timer := time.NewTimer(strategy.NextDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
