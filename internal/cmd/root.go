// Package cmd implements the ghostline command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghostline",
	Short: "AI command suggestions on your shell input line",
	Long: `ghostline - AI command suggestions on your shell input line
  - describe a task in plain language, press the trigger key
  - an editable suggestion appears as ghost text; accept, edit or ignore it`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(assistCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
