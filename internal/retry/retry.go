// Package retry provides a bounded-attempts retry wrapper with exponential
// backoff and jitter, shared by everything that talks to the stats feed.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Policy configures a retry loop. One Policy is built from config at startup
// and passed explicitly; there is no package-level state.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Jitter is the fraction of the current delay added at random on top of
	// it, e.g. 0.5 sleeps between delay and 1.5*delay.
	Jitter float64
}

// Do runs op until it succeeds, the attempt budget is exhausted, or ctx is
// canceled. The delay doubles after each failed attempt. The returned error
// wraps the last failure with the attempt count.
func Do(ctx context.Context, p Policy, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt == attempts {
			break
		}

		sleep := delay
		if p.Jitter > 0 && delay > 0 {
			sleep += time.Duration(rand.Float64() * p.Jitter * float64(delay))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		delay *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
