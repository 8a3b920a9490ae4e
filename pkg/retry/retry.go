// Package retry probes startup dependencies with exponential backoff.
// It is never used for user-triggered API calls, which run exactly once.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config holds backoff configuration
type Config struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// StartupConfig is used when waiting for backing services at boot.
func StartupConfig() Config {
	return Config{
		MaxAttempts:   5,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      3 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Do runs fn until it succeeds, attempts are exhausted or ctx is done.
// onRetry, if set, is called before each wait.
func Do(ctx context.Context, cfg Config, name string, fn func(context.Context) error, onRetry func(attempt int, err error, wait time.Duration)) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		if onRetry != nil {
			onRetry(attempt, lastErr, delay)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: aborted after %d attempts: %w (last error: %v)", name, attempt, ctx.Err(), lastErr)
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s: max attempts (%d) exceeded: %w", name, cfg.MaxAttempts, lastErr)
}
