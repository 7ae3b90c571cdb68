package cmd

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed shell/ghostline.zsh
//go:embed shell/ghostline.bash
var shellScripts embed.FS

// defaultWidgetKey is the shell-side binding that opens the editor.
const defaultWidgetKey = `^G`

var initCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output the shell integration script for your shell.

Add this to your shell configuration file:

  # For Zsh (~/.zshrc):
  eval "$(ghostline init zsh)"

  # For Bash (~/.bashrc):
  eval "$(ghostline init bash)"

Set GHOSTLINE_WIDGET_KEY before sourcing to change the binding.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"zsh", "bash"},
	RunE:      runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var filename string
	switch args[0] {
	case "zsh":
		filename = "shell/ghostline.zsh"
	case "bash":
		filename = "shell/ghostline.bash"
	default:
		return fmt.Errorf("unsupported shell: %s (supported: zsh, bash)", args[0])
	}

	content, err := shellScripts.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read shell script: %w", err)
	}

	key := os.Getenv("GHOSTLINE_WIDGET_KEY")
	if key == "" {
		key = defaultWidgetKey
	}

	script := strings.ReplaceAll(string(content), "{{GHOSTLINE_WIDGET_KEY}}", key)
	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
