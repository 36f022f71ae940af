package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_ShouldReturnImmediately_OnFirstSuccess(t *testing.T) {
	calls := 0
	policy := DefaultRetryPolicy()

	out, err := Do(context.Background(), policy, nil, func(_ context.Context) (int, error) {
		calls++
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 1, calls)
}

func TestDo_ShouldRetryUpToMaxAttempts_ThenReturnError(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1, Jitter: false}

	_, err := Do(context.Background(), policy, nil, func(_ context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls) // 1 initial + 2 retries
}

func TestDo_ShouldInvokeOnRetry_BeforeEachRetryAttempt(t *testing.T) {
	retries := 0
	policy := RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1, Jitter: false}

	_, _ = Do(context.Background(), policy, func() { retries++ }, func(_ context.Context) (int, error) {
		return 0, errors.New("boom")
	})

	assert.Equal(t, 2, retries)
}

func TestDo_ShouldStopEarly_WhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Second, MaxDelay: time.Second, Multiplier: 1, Jitter: false}

	_, err := Do(ctx, policy, nil, func(_ context.Context) (int, error) {
		return 0, errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_ShouldSucceed_AfterTransientFailures(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1, Jitter: false}

	out, err := Do(context.Background(), policy, nil, func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("not yet")
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
}
