package planning

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy controls exponential backoff between attempts. It is
// generalized down to a domain-agnostic core: a function, not a node
// execution, is what this package retries.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool
}

// DefaultRetryPolicy returns sensible defaults for LLM transport calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

func (p RetryPolicy) delay(attempt int, rng *rand.Rand) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter {
		jitter := d * 0.1
		d += (2*rng.Float64() - 1) * jitter
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// Do runs fn up to policy.MaxAttempts+1 times with exponential
// backoff, stopping early on success or on ctx cancellation.
// onRetry, if non-nil, is called before each retry sleep (used by the
// LLM planner to increment the retries telemetry counter).
func Do[T any](ctx context.Context, policy RetryPolicy, onRetry func(), fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry()
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(policy.delay(attempt, rng)):
			}
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}

	return zero, fmt.Errorf("max retry attempts (%d) exhausted: %w", policy.MaxAttempts, lastErr)
}
