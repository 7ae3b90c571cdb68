//go:build !windows

package assist

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckTTY verifies the editor can run: /dev/tty is openable, TERM is not
// "dumb", and the terminal is wide enough to draw an overlay.
func CheckTTY() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}

	f, err := os.Open("/dev/tty")
	if err != nil {
		return fmt.Errorf("no TTY available: %w", err)
	}
	defer f.Close()

	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	if ws.Col < 20 {
		return fmt.Errorf("terminal too narrow (%d columns, need at least 20)", ws.Col)
	}
	return nil
}
