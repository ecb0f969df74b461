package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noSleep makes retry tests instant.
func noSleep(context.Context, time.Duration) error { return nil }

func TestDoVal_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	val, err := DoVal(context.Background(), RetryConfig{Sleep: noSleep}, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesTransient(t *testing.T) {
	t.Parallel()

	calls := 0
	val, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Sleep: noSleep}, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", NewTransientError(errors.New("flaky"), 503)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestDoVal_DoesNotRetryBlocked(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3, Sleep: noSleep}, func(context.Context) (int, error) {
		calls++
		return 0, NewBlockedError(errors.New("denied"), 403)
	})
	require.Error(t, err)
	assert.True(t, IsBlocked(err))
	assert.Equal(t, 1, calls, "blocked errors must escalate, not retry")
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 2, Sleep: noSleep}, func(context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("still down"), 500)
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoVal_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, RetryConfig{MaxAttempts: 5, Sleep: noSleep}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("flaky"), 500)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestBackoff_FixedMultiplier(t *testing.T) {
	t.Parallel()

	cfg := RetryConfig{InitialBackoff: time.Second, Multiplier: 1.0}
	assert.Equal(t, time.Second, Backoff(0, cfg))
	assert.Equal(t, time.Second, Backoff(3, cfg))
}

func TestBackoff_ExponentialCapped(t *testing.T) {
	t.Parallel()

	cfg := RetryConfig{InitialBackoff: time.Second, Multiplier: 2.0, MaxBackoff: 5 * time.Second}
	assert.Equal(t, time.Second, Backoff(0, cfg))
	assert.Equal(t, 2*time.Second, Backoff(1, cfg))
	assert.Equal(t, 4*time.Second, Backoff(2, cfg))
	assert.Equal(t, 5*time.Second, Backoff(3, cfg))
	assert.Equal(t, 5*time.Second, Backoff(10, cfg))
}
