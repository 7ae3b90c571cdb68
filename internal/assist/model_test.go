package assist

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/ghostline/internal/config"
	"github.com/runger/ghostline/internal/engine"
	"github.com/runger/ghostline/internal/logx"
)

type scriptedProvider struct {
	complete func(ctx context.Context, input string) (string, error)
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(ctx context.Context, input string) (string, error) {
	return s.complete(ctx, input)
}

func fixedProvider(text string) *scriptedProvider {
	return &scriptedProvider{complete: func(context.Context, string) (string, error) {
		return text, nil
	}}
}

func newTestModel(t *testing.T, p *scriptedProvider, seed string, opts ...Option) Model {
	t.Helper()
	return NewModel(config.Default(), p, logx.Discard(), seed, opts...)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runUntilDisplaying triggers a request and pumps poll messages until the
// suggestion arrives.
func runUntilDisplaying(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, engine.StateRequesting, m.session.State())

	require.Eventually(t, func() bool {
		m, _ = update(t, m, pollMsg{})
		return m.session.State() != engine.StateRequesting
	}, 2*time.Second, time.Millisecond)
	require.Equal(t, engine.StateDisplaying, m.session.State())
	return m
}

func TestTypingUpdatesBufferAndSession(t *testing.T) {
	m := newTestModel(t, fixedProvider("ls"), "")
	m, _ = update(t, m, keyRunes("l"))
	m, _ = update(t, m, keyRunes("s"))

	assert.Equal(t, "ls", m.input.Value())
	assert.Equal(t, "ls", m.session.Buffer())
}

func TestTrigger_EmptyBufferIsNoOp(t *testing.T) {
	m := newTestModel(t, fixedProvider("ls"), "")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Equal(t, engine.StateIdle, m.session.State())
	assert.Nil(t, cmd)
}

func TestTriggerThenTabAccepts(t *testing.T) {
	m := newTestModel(t, fixedProvider("find . -name *.py"), "find ")
	m = runUntilDisplaying(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, "find . -name *.py", m.input.Value())
	assert.Equal(t, engine.StateIdle, m.session.State())
}

func TestRightAcceptsWhenActive(t *testing.T) {
	m := newTestModel(t, fixedProvider("git log --oneline"), "git ")
	m = runUntilDisplaying(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "git log --oneline", m.input.Value())
}

func TestRightChainsToNextHandlerWhenInactive(t *testing.T) {
	chained := false
	m := newTestModel(t, fixedProvider("ls"), "abc",
		WithRightHandler(func(in textinput.Model, msg tea.KeyMsg) (textinput.Model, tea.Cmd) {
			chained = true
			return in.Update(msg)
		}))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, chained)
	assert.Equal(t, "abc", m.input.Value())
}

func TestTabFallsThroughWhenInactive(t *testing.T) {
	m := newTestModel(t, fixedProvider("ls"), "abc")
	before := m.input.Value()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	// No suggestion active: tab chains to normal input behavior and never
	// fabricates an accept.
	assert.Equal(t, engine.StateIdle, m.session.State())
	assert.Contains(t, m.input.Value(), before)
}

func TestEnterSubmitsAndClearsOverlay(t *testing.T) {
	m := newTestModel(t, fixedProvider("docker ps -a"), "ls")
	m = runUntilDisplaying(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Submitted())
	// Submission never alters buffer content; the suggestion was not
	// accepted, so the original line comes back.
	assert.Equal(t, "ls", m.Result())
	assert.Equal(t, engine.StateIdle, m.session.State())
	assert.Nil(t, m.session.Suggestion())
}

func TestEscDuringRequestCancelsWithoutQuitting(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	p := &scriptedProvider{complete: func(ctx context.Context, _ string) (string, error) {
		select {
		case <-release:
			return "ls", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}}

	m := newTestModel(t, p, "list files")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, engine.StateRequesting, m.session.State())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// Cancellation returns to editing, it does not quit the editor.
	assert.Nil(t, cmd)
	assert.Equal(t, engine.StateIdle, m.session.State())
	assert.Equal(t, "list files", m.input.Value())
}

func TestEscWhenIdleQuitsCancelled(t *testing.T) {
	m := newTestModel(t, fixedProvider("ls"), "abc")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Submitted())
	assert.Empty(t, m.Result())
	require.NotNil(t, cmd)
}

func TestDivergentEditClearsGhostFromView(t *testing.T) {
	m := newTestModel(t, fixedProvider("find . -name *.py"), "find ")
	m = runUntilDisplaying(t, m)
	assert.Contains(t, m.View(), ". -name *.py")

	m, _ = update(t, m, keyRunes("x"))
	assert.Equal(t, engine.StateIdle, m.session.State())
	assert.NotContains(t, m.View(), ". -name *.py")
}

func TestViewShowsGhostSuffixAfterCursor(t *testing.T) {
	m := newTestModel(t, fixedProvider("find . -name *.py"), "find ")
	m = runUntilDisplaying(t, m)

	view := m.View()
	assert.Contains(t, view, "find ")
	assert.Contains(t, view, ". -name *.py")
}
