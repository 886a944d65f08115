package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: Discard()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	r := RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: Discard()}
	boom := errors.New("boom")

	calls := 0
	err := r.Do(context.Background(), "always failing", func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	r := RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, Logger: Discard()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, "cancelled", func() error {
		calls++
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryRunsAtLeastOnce(t *testing.T) {
	r := RetryConfig{Logger: Discard()}

	calls := 0
	assert.NoError(t, r.Do(context.Background(), "once", func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}
