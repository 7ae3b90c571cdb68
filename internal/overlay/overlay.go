// Package overlay computes the non-destructive suggestion overlay (ghost
// text) shown after the input line. The overlay is a value: callers compute
// it from the current buffer and suggestion and apply it atomically to the
// display; nothing here mutates shared state.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/ghostline/internal/sanitize"
)

// Mode selects how the overlay relates to the typed buffer.
type Mode int

const (
	// ModeNone means no overlay is shown.
	ModeNone Mode = iota
	// ModeCompletion shows the suggestion's remaining suffix after the
	// cursor: the suggestion starts with the buffer as a literal prefix.
	ModeCompletion
	// ModeReplacement shows a separator plus the full suggestion: the
	// suggestion is not a continuation of what the user typed.
	ModeReplacement
)

// Style identifies the visual treatment of a span.
type Style int

const (
	// StyleGhost is dimmed secondary text.
	StyleGhost Style = iota
	// StyleSeparator marks the divider before a replacement suggestion.
	StyleSeparator
	// StyleWarning marks a destructive suggestion.
	StyleWarning
)

// Span is one highlight range (byte offsets into Overlay.Text).
type Span struct {
	Start int
	End   int
	Style Style
}

// Overlay is the computed ghost text plus its ordered highlight spans.
type Overlay struct {
	Mode  Mode
	Text  string
	Spans []Span
}

// Separator divides the typed buffer from a replacement-mode suggestion.
const Separator = " ▸ "

// Compute derives the overlay for the current buffer and suggestion.
// maxWidth bounds the rendered width; 0 means unbounded.
func Compute(buffer, suggestion string, maxWidth int) Overlay {
	if suggestion == "" || suggestion == buffer {
		return Overlay{Mode: ModeNone}
	}

	ghostStyle := StyleGhost
	if sanitize.Risk(suggestion) == sanitize.RiskDestructive {
		ghostStyle = StyleWarning
	}

	if strings.HasPrefix(suggestion, buffer) {
		text := truncate(suggestion[len(buffer):], maxWidth)
		return Overlay{
			Mode:  ModeCompletion,
			Text:  text,
			Spans: []Span{{Start: 0, End: len(text), Style: ghostStyle}},
		}
	}

	text := Separator + truncate(suggestion, maxWidth)
	return Overlay{
		Mode: ModeReplacement,
		Text: text,
		Spans: []Span{
			{Start: 0, End: len(Separator), Style: StyleSeparator},
			{Start: len(Separator), End: len(text), Style: ghostStyle},
		},
	}
}

// Sync reports whether the suggestion survives an edit that produced the new
// buffer. It survives only while the buffer remains a literal prefix of the
// suggestion; any divergence discards it with no new network call.
func Sync(buffer, suggestion string) bool {
	if suggestion == "" {
		return false
	}
	return strings.HasPrefix(suggestion, buffer)
}

var (
	ghostRender     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	separatorRender = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	warningRender   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Render applies the highlight spans and returns the styled overlay string,
// ready to be placed immediately after the cursor.
func (o Overlay) Render() string {
	if o.Mode == ModeNone || o.Text == "" {
		return ""
	}

	var b strings.Builder
	for _, s := range o.Spans {
		if s.Start < 0 || s.End > len(o.Text) || s.Start >= s.End {
			continue
		}
		seg := o.Text[s.Start:s.End]
		switch s.Style {
		case StyleSeparator:
			b.WriteString(separatorRender.Render(seg))
		case StyleWarning:
			b.WriteString(warningRender.Render(seg))
		default:
			b.WriteString(ghostRender.Render(seg))
		}
	}
	return b.String()
}

// truncate returns the longest prefix of s whose display width fits
// maxWidth, with a trailing ellipsis when anything was cut.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "…"
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth-1 {
			return s[:i] + ellipsis
		}
		w += rw
	}
	return s
}
