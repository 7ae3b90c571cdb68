package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/ghostline/internal/assist"
	"github.com/runger/ghostline/internal/config"
	"github.com/runger/ghostline/internal/logx"
	"github.com/runger/ghostline/internal/provider"
)

var assistQuery string

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Run the interactive suggestion editor",
	Long: `Run the interactive suggestion editor over the current input line.

The shell widget invokes this with the current buffer; the resulting line is
printed on stdout for the widget to put back. The UI is drawn on stderr so
stdout stays clean.`,
	RunE: runAssist,
}

func init() {
	assistCmd.Flags().StringVar(&assistQuery, "query", "", "initial input line (the shell buffer)")
}

func runAssist(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logx.New(cfg)

	// An unknown provider name is a configuration error surfaced here,
	// before any editor state or network activity exists.
	p, err := provider.New(cfg)
	if err != nil {
		return err
	}

	if err := assist.CheckTTY(); err != nil {
		// Fall back: echo the buffer unchanged so the widget is a no-op.
		fmt.Print(assistQuery)
		return err
	}

	// Styling targets stderr; stdout is captured by the shell widget.
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stderr).ColorProfile())

	m := assist.NewModel(cfg, p, logger, assistQuery)
	prog := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		fmt.Print(assistQuery)
		return fmt.Errorf("editor failed: %w", err)
	}

	result := final.(assist.Model)
	if result.Submitted() {
		fmt.Print(result.Result())
	} else {
		// Cancelled: the original buffer comes back unchanged.
		fmt.Print(assistQuery)
	}
	return nil
}
