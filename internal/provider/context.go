package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// buildSystemPrompt constructs the fixed instructions plus environment
// context (operating system, shell name, working directory) sent with every
// request.
func buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a command-line assistant. ")
	sb.WriteString("Convert the user's request into a single shell command. ")
	sb.WriteString("Respond with only the command, on one line, with no explanation and no markdown.\n\n")

	sb.WriteString("Context:\n")
	fmt.Fprintf(&sb, "- OS: %s\n", runtime.GOOS)
	fmt.Fprintf(&sb, "- Shell: %s\n", shellName())
	if cwd, err := os.Getwd(); err == nil {
		fmt.Fprintf(&sb, "- Working Directory: %s\n", cwd)
	}

	return sb.String()
}

// shellName returns the basename of $SHELL, or "sh" when unset.
func shellName() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return filepath.Base(sh)
	}
	return "sh"
}
