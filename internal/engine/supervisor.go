// Package engine implements the suggestion lifecycle: the session state
// machine and the supervisor that runs provider calls off the foreground
// loop.
package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/runger/ghostline/internal/provider"
)

// ErrNoSuggestion is the normalized failure for a call that produced no
// output and no error.
var ErrNoSuggestion = errors.New("no suggestion")

// Result is the outcome of one background call, delivered whole (never
// streamed).
type Result struct {
	Text string
	Err  error
}

// Call is one in-flight background operation. Exactly zero or one exists per
// session. The result travels through a one-shot buffered channel with one
// writer and one reader, consumed exactly once by Poll.
type Call struct {
	done   chan Result
	cancel context.CancelFunc
}

// Begin starts the provider call on a background goroutine so the
// interactive loop stays responsive. The foreground observes it via Poll at
// a bounded interval rather than awaiting it.
func Begin(ctx context.Context, p provider.Provider, input string) *Call {
	ctx, cancel := context.WithCancel(ctx)
	c := &Call{
		done:   make(chan Result, 1),
		cancel: cancel,
	}

	go func() {
		text, err := p.Complete(ctx, input)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrNoSuggestion
		}
		c.done <- Result{Text: text, Err: err}
	}()

	return c
}

// Poll performs a non-blocking receive. It returns the result and true once
// the call has completed; the result is delivered at most once.
func (c *Call) Poll() (Result, bool) {
	select {
	case r := <-c.done:
		return r, true
	default:
		return Result{}, false
	}
}

// Cancel terminates the background call. Any output it produces afterwards
// is discarded unconditionally; there is no cancel-but-keep-result path.
func (c *Call) Cancel() {
	c.cancel()
}
