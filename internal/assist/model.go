// Package assist implements the interactive suggestion editor: a single
// input line the shell widget seeds with the current buffer, overlaid with
// AI ghost text while the user keeps editing.
package assist

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/ghostline/internal/config"
	"github.com/runger/ghostline/internal/engine"
	"github.com/runger/ghostline/internal/provider"
)

// pollMsg fires on the bounded polling interval while a call is in flight.
type pollMsg struct{}

// rightHandler is the action Right falls through to when no suggestion is
// active. It is captured once at initialization (delegation, not a runtime
// lookup), so a host embedding the model can chain its own binding.
type rightHandler func(textinput.Model, tea.KeyMsg) (textinput.Model, tea.Cmd)

// defaultRightHandler is plain cursor movement via the text input.
func defaultRightHandler(in textinput.Model, msg tea.KeyMsg) (textinput.Model, tea.Cmd) {
	return in.Update(msg)
}

// Model is the Bubble Tea model driving the suggestion lifecycle.
type Model struct {
	session *engine.Session
	input   textinput.Model
	spin    spinner.Model

	triggerKey string
	nextRight  rightHandler

	width     int
	submitted bool
	result    string
}

// Option adjusts the model at construction time.
type Option func(*Model)

// WithRightHandler replaces the fall-through action for the right-arrow key.
func WithRightHandler(h rightHandler) Option {
	return func(m *Model) { m.nextRight = h }
}

// NewModel builds the editor seeded with the shell's current buffer.
func NewModel(cfg *config.Config, p provider.Provider, logger *slog.Logger, seed string, opts ...Option) Model {
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(seed)
	in.SetCursor(len([]rune(seed)))
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle

	m := Model{
		session:    engine.NewSession(p, logger),
		input:      in,
		spin:       sp,
		triggerKey: cfg.TriggerKey,
		nextRight:  defaultRightHandler,
	}
	m.session.Edit(seed, len([]rune(seed)))

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Result returns the final line after Enter, or "" when cancelled.
func (m Model) Result() string { return m.result }

// Submitted reports whether the user submitted the line (as opposed to
// quitting the editor).
func (m Model) Submitted() bool { return m.submitted }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case pollMsg:
		return m.handlePoll()

	case spinner.TickMsg:
		if m.session.State() != engine.StateRequesting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The configurable trigger key requests a suggestion.
	if msg.String() == m.triggerKey {
		return m.trigger()
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		// During a request this is the cancellation keystroke: abort the
		// call and stay in the editor with the buffer unchanged.
		if m.session.CancelRequest() {
			return m, nil
		}
		m.session.LineEnd()
		m.submitted = false
		return m, tea.Quit

	case tea.KeyEnter:
		// Line submission clears any active overlay first and never
		// alters buffer content.
		m.session.LineEnd()
		m.result = m.input.Value()
		m.submitted = true
		return m, tea.Quit

	case tea.KeyTab:
		// The accept key: falls through to normal input behavior when no
		// suggestion is active.
		if m.acceptSuggestion() {
			return m, nil
		}
		return m.forwardToInput(msg)

	case tea.KeyRight:
		// Accept if active, otherwise chain to the handler captured at
		// initialization.
		if m.acceptSuggestion() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.nextRight(m.input, msg)
		m.syncEdit()
		return m, cmd
	}

	return m.forwardToInput(msg)
}

// trigger starts a supervised background call if the session allows it.
func (m Model) trigger() (tea.Model, tea.Cmd) {
	if !m.session.Trigger(context.Background()) {
		return m, nil
	}
	return m, tea.Batch(m.spin.Tick, pollTick())
}

// handlePoll checks the pending call and keeps ticking while it is pending.
func (m Model) handlePoll() (tea.Model, tea.Cmd) {
	m.session.PollCall()
	if m.session.State() == engine.StateRequesting {
		return m, pollTick()
	}
	return m, nil
}

// acceptSuggestion resolves the active suggestion into the buffer.
func (m *Model) acceptSuggestion() bool {
	if !m.session.Accept() {
		return false
	}
	m.input.SetValue(m.session.Buffer())
	m.input.SetCursor(m.session.Cursor())
	return true
}

// forwardToInput lets the text input process the keystroke, then routes the
// resulting buffer mutation through the edit synchronizer.
func (m Model) forwardToInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncEdit()
	return m, cmd
}

// syncEdit mirrors the input state into the session.
func (m *Model) syncEdit() {
	m.session.Edit(m.input.Value(), m.input.Position())
}

// pollTick schedules the next poll at the bounded interval.
func pollTick() tea.Cmd {
	return tea.Tick(engine.PollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// --- View rendering ---

var (
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
)

const prompt = "ghost> "

// View implements tea.Model. The line is drawn from the buffer directly so
// the ghost overlay can sit immediately after the cursor; the computed
// overlay value is applied atomically here and nowhere else.
func (m Model) View() string {
	runes := []rune(m.input.Value())
	pos := m.input.Position()
	if pos > len(runes) {
		pos = len(runes)
	}

	ghost := m.session.Overlay(m.overlayWidth(pos)).Render()

	var line string
	switch {
	case pos == len(runes):
		line = string(runes) + cursorStyle.Render(" ") + ghost
	default:
		line = string(runes[:pos]) + cursorStyle.Render(string(runes[pos])) + ghost + string(runes[pos+1:])
	}

	return promptStyle.Render(prompt) + line + "\n" + m.statusLine()
}

// statusLine renders the progress indicator, status message, or key help.
func (m Model) statusLine() string {
	switch m.session.State() {
	case engine.StateRequesting:
		return m.spin.View() + statusStyle.Render("thinking… ("+m.triggerKey+" again is ignored, esc cancels)")
	case engine.StateDisplaying:
		return statusStyle.Render("tab/→ accept · keep typing to edit · enter to run")
	default:
		if s := m.session.Status(); s != "" {
			return statusStyle.Render(s)
		}
		return statusStyle.Render(m.triggerKey + " to suggest · enter to run")
	}
}

// overlayWidth bounds the ghost text to what fits on the line.
func (m Model) overlayWidth(pos int) int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - len(prompt) - pos - 2
	if w < 8 {
		w = 8
	}
	return w
}
