package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_PollPendingThenDone(t *testing.T) {
	p, release := blocking("ls -la")
	c := Begin(context.Background(), p, "list files")

	// Non-blocking while the worker runs.
	_, done := c.Poll()
	assert.False(t, done)

	close(release)
	require.Eventually(t, func() bool {
		r, done := c.Poll()
		if !done {
			return false
		}
		assert.NoError(t, r.Err)
		assert.Equal(t, "ls -la", r.Text)
		return true
	}, 2*time.Second, time.Millisecond)
}

func TestCall_Failure(t *testing.T) {
	p := &fakeProvider{complete: func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}}
	c := Begin(context.Background(), p, "x")

	require.Eventually(t, func() bool {
		r, done := c.Poll()
		if !done {
			return false
		}
		assert.EqualError(t, r.Err, "boom")
		return true
	}, 2*time.Second, time.Millisecond)
}

func TestCall_NoOutputNormalizedToFailure(t *testing.T) {
	c := Begin(context.Background(), fixed("  \n "), "x")

	require.Eventually(t, func() bool {
		r, done := c.Poll()
		if !done {
			return false
		}
		assert.ErrorIs(t, r.Err, ErrNoSuggestion)
		return true
	}, 2*time.Second, time.Millisecond)
}

func TestCall_CancelTerminatesWorker(t *testing.T) {
	p, release := blocking("never delivered")
	defer close(release)

	c := Begin(context.Background(), p, "x")
	c.Cancel()

	// The worker observes cancellation and reports the context error; the
	// caller discards whatever arrives after Cancel.
	require.Eventually(t, func() bool {
		r, done := c.Poll()
		if !done {
			return false
		}
		assert.Error(t, r.Err)
		return true
	}, 2*time.Second, time.Millisecond)
}

func TestCall_ResultDeliveredExactlyOnce(t *testing.T) {
	c := Begin(context.Background(), fixed("ls"), "x")

	require.Eventually(t, func() bool {
		_, done := c.Poll()
		return done
	}, 2*time.Second, time.Millisecond)

	_, done := c.Poll()
	assert.False(t, done)
}
