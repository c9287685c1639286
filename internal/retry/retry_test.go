package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       false,
	}
}

func TestDoSucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(context.Context) error {
		calls++
		return errors.New("persistent")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "must make exactly MaxAttempts total attempts, not MaxAttempts+1")
}

func TestDoStopsImmediatelyOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, testConfig(), func(context.Context) error {
		calls++
		return errors.New("should not matter")
	})
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}

func TestBackoffDelayGrowsExponentiallyAndCaps(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2.0}

	assert.Equal(t, 100*time.Millisecond, backoffDelay(1, cfg))
	assert.Equal(t, 200*time.Millisecond, backoffDelay(2, cfg))
	assert.Equal(t, 400*time.Millisecond, backoffDelay(3, cfg))
	assert.Equal(t, time.Second, backoffDelay(5, cfg), "must cap at MaxDelay rather than keep growing")
}
