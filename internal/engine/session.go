package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/runger/ghostline/internal/overlay"
	"github.com/runger/ghostline/internal/provider"
	"github.com/runger/ghostline/internal/sanitize"
)

// PollInterval is how often the foreground checks an in-flight call. The
// foreground suspends only for this bound, never for the call's full
// duration, so the cancellation key is observed promptly.
const PollInterval = 100 * time.Millisecond

// State is the session controller's current phase.
type State int

const (
	// StateIdle: no suggestion, no pending call.
	StateIdle State = iota
	// StateRequesting: the supervisor is running a call.
	StateRequesting
	// StateDisplaying: a suggestion is active and overlaid.
	StateDisplaying
)

// Suggestion is immutable once created: the raw provider text, the
// display-ready sanitized text, and a snapshot of the buffer it was
// requested against.
type Suggestion struct {
	Raw      string
	Text     string
	Snapshot string
	Risk     sanitize.RiskLevel
}

// Session owns the suggestion lifecycle for one interactive session. It is
// an explicit object owned by the event loop, accessed only from that loop;
// no locks are needed. The visible buffer is mutated only by Accept — never
// implicitly by an in-flight or completed request.
type Session struct {
	state      State
	buffer     string
	cursor     int
	suggestion *Suggestion
	call       *Call
	status     string

	prov      provider.Provider
	logger    *slog.Logger
	requestID string

	// snapshot taken at trigger time, for the cancellation guarantee.
	preBuffer string
	preCursor int
}

// NewSession creates a session bound to the given provider.
func NewSession(p provider.Provider, logger *slog.Logger) *Session {
	return &Session{prov: p, logger: logger}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Buffer returns the current input buffer.
func (s *Session) Buffer() string { return s.buffer }

// Cursor returns the current cursor position.
func (s *Session) Cursor() int { return s.cursor }

// Status returns the latest user-visible status message.
func (s *Session) Status() string { return s.status }

// Suggestion returns the active suggestion, or nil.
func (s *Session) Suggestion() *Suggestion { return s.suggestion }

// Overlay computes the current overlay value for the display layer.
func (s *Session) Overlay(maxWidth int) overlay.Overlay {
	if s.suggestion == nil {
		return overlay.Overlay{Mode: overlay.ModeNone}
	}
	return overlay.Compute(s.buffer, s.suggestion.Text, maxWidth)
}

// Trigger requests a suggestion for the current buffer. From Idle (or
// Displaying, where it replaces the active suggestion) it starts a
// background call and moves to Requesting. An empty buffer is a no-op, and
// so is a trigger while a call is already in flight: at most one call exists
// per session, enforced here.
func (s *Session) Trigger(ctx context.Context) bool {
	if s.state == StateRequesting {
		return false
	}
	if s.buffer == "" {
		return false
	}

	s.suggestion = nil
	s.status = ""
	s.preBuffer = s.buffer
	s.preCursor = s.cursor
	s.requestID = uuid.NewString()

	s.logger.Debug("suggestion requested",
		slog.String("request_id", s.requestID),
		slog.String("provider", s.prov.Name()),
		slog.Int("buffer_len", len(s.buffer)))

	s.call = Begin(ctx, s.prov, s.buffer)
	s.state = StateRequesting
	return true
}

// PollCall checks the pending call. It returns true when the state changed
// (completion or failure); the caller re-renders then.
func (s *Session) PollCall() bool {
	if s.state != StateRequesting || s.call == nil {
		return false
	}

	res, done := s.call.Poll()
	if !done {
		return false
	}
	s.call = nil

	if res.Err != nil {
		s.logger.Debug("suggestion failed",
			slog.String("request_id", s.requestID),
			slog.String("error", res.Err.Error()))
		s.status = statusFor(res.Err)
		s.state = StateIdle
		return true
	}

	text := sanitize.Sanitize(res.Text)
	if text == "" {
		s.status = "no suggestion"
		s.state = StateIdle
		return true
	}

	s.suggestion = &Suggestion{
		Raw:      res.Text,
		Text:     text,
		Snapshot: s.preBuffer,
		Risk:     sanitize.Risk(text),
	}
	s.logger.Debug("suggestion received",
		slog.String("request_id", s.requestID),
		slog.Int("len", len(text)),
		slog.String("risk", string(s.suggestion.Risk)))
	s.state = StateDisplaying
	return true
}

// CancelRequest aborts a pending call. The session returns to exactly its
// pre-trigger state: the buffer was never touched, the partial result is
// discarded, no overlay remains. Cancellation is not an error.
func (s *Session) CancelRequest() bool {
	if s.state != StateRequesting {
		return false
	}
	s.call.Cancel()
	s.call = nil
	s.suggestion = nil
	s.status = ""
	s.state = StateIdle
	s.logger.Debug("suggestion cancelled", slog.String("request_id", s.requestID))
	return true
}

// Edit records a buffer mutation from the user's own input. While a
// suggestion is active the edit synchronizer runs: if the new buffer is
// still a literal prefix of the suggestion the overlay narrows in place;
// otherwise the suggestion is discarded and the overlay cleared, with no new
// network call.
func (s *Session) Edit(buffer string, cursor int) {
	s.buffer = buffer
	s.cursor = cursor
	s.status = ""

	if s.state != StateDisplaying || s.suggestion == nil {
		return
	}
	if !overlay.Sync(buffer, s.suggestion.Text) {
		s.suggestion = nil
		s.state = StateIdle
	}
}

// Accept resolves the active suggestion: the sanitized text becomes the
// buffer with the cursor at its end, and the overlay clears. In replacement
// mode this is a full buffer replace, not an append. Returns false when no
// suggestion is active.
func (s *Session) Accept() bool {
	if s.state != StateDisplaying || s.suggestion == nil {
		return false
	}
	s.buffer = s.suggestion.Text
	s.cursor = len(s.buffer)
	s.suggestion = nil
	s.state = StateIdle
	return true
}

// LineEnd handles line submission: any overlay and suggestion are cleared
// unconditionally, a pending call is cancelled, and the buffer is left
// untouched.
func (s *Session) LineEnd() {
	if s.call != nil {
		s.call.Cancel()
		s.call = nil
	}
	s.suggestion = nil
	s.status = ""
	s.state = StateIdle
}

// statusFor maps a call failure to a short user-visible message.
func statusFor(err error) string {
	if errors.Is(err, ErrNoSuggestion) || errors.Is(err, provider.ErrEmptyResponse) {
		return "no suggestion"
	}
	return fmt.Sprintf("suggestion failed: %v", err)
}
