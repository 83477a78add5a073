package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(slept *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delays:      []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		Sleep:       func(d time.Duration) { *slept = append(*slept, d) },
	}
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	var slept []time.Duration
	calls := 0

	err := testPolicy(&slept).Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
}

func TestRetryBackoffSchedule(t *testing.T) {
	var slept []time.Duration
	calls := 0

	err := testPolicy(&slept).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("indisponible")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
}

func TestRetryExhausted(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("toujours en panne")

	err := testPolicy(&slept).Do(context.Background(), func() error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	// Pas de délai après la dernière tentative
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DefaultRetryPolicy().Do(ctx, func() error {
		calls++
		return errors.New("ne devrait pas être appelé")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
