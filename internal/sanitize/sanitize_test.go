package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "ls -la", "ls -la"},
		{"empty", "", ""},
		{"sgr color", "\x1b[31mls -la\x1b[0m", "ls -la"},
		{"multiple sgr", "\x1b[1;31;42mfind . -name '*.go'\x1b[0m", "find . -name '*.go'"},
		{"cursor movement", "\x1b[2Als\x1b[10C -la", "ls -la"},
		{"stray esc byte", "ls\x1b -la", "ls -la"},
		{"esc at end", "ls -la\x1b", "ls -la"},
		{"newline stripped", "ls\n-la", "ls-la"},
		{"crlf stripped", "ls\r\n-la", "ls-la"},
		{"tab preserved", "ls\t-la", "ls\t-la"},
		{"null byte", "ls\x00 -la", "ls -la"},
		{"bell byte", "ls\x07 -la", "ls -la"},
		{"del byte", "ls\x7f -la", "ls -la"},
		{"leading whitespace", "   ls -la", "ls -la"},
		{"trailing whitespace", "ls -la  \t ", "ls -la"},
		{"only whitespace", "  \t  ", ""},
		{"only escapes", "\x1b[31m\x1b[0m", ""},
		{"unicode intact", "echo 'héllo 世界'", "echo 'héllo 世界'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

// Adjacent or truncated sequences must not survive a single-pass assumption.
func TestSanitize_MalformedSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Removing the inner sequence exposes a new complete sequence,
		// which the looped pass also removes.
		{"nested escape", "\x1b[3\x1b[31m1mred", "red"},
		{"adjacent sequences", "\x1b[31m\x1b[1mbold red\x1b[0m\x1b[0m", "bold red"},
		{"unterminated csi", "\x1b[31", "[31"},
		{"bare bracket after strip", "\x1b\x1b[31mx", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"ls -la",
		"\x1b[31mred\x1b[0m",
		"\x1b[3\x1b[31m1m",
		"a\nb\rc\td\x7fe",
		"  padded  ",
		"\x1b\x1b\x1b",
		strings.Repeat("\x1b[", 50) + "m",
		"echo \x1b]0;title\x07done",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "not idempotent for %q", in)
	}
}

func TestSanitize_Safety(t *testing.T) {
	inputs := []string{
		"\x1b[31m\x1b[1m\x1b[0m rm -rf / \x1b",
		"\x00\x01\x02\x03\x04\x05\x06\x07\x08\x0b\x0c\x0e\x1f\x7f",
		"line one\nline two\r\nline three",
		"\x1b[9999999999999999999Atext",
	}
	for _, in := range inputs {
		out := Sanitize(in)
		assert.NotContains(t, out, "\x1b", "escape marker survived %q", in)
		for _, r := range out {
			if r < 0x20 && r != '\t' {
				t.Errorf("control byte %q survived in %q", r, out)
			}
			assert.NotEqual(t, rune(0x7f), r)
		}
		assert.Equal(t, strings.TrimSpace(out), out, "untrimmed output for %q", in)
	}
}

func TestRisk(t *testing.T) {
	tests := []struct {
		command string
		want    RiskLevel
	}{
		{"ls -la", RiskSafe},
		{"git status", RiskSafe},
		{"rm -rf /tmp/build", RiskDestructive},
		{"rm -f stale.lock", RiskDestructive},
		{"git push --force origin main", RiskDestructive},
		{"git reset --hard HEAD~3", RiskDestructive},
		{"docker system prune -a", RiskDestructive},
		{"kubectl delete pod web-0", RiskDestructive},
		{"dd if=image.iso of=/dev/sdb", RiskDestructive},
		{"echo rmdir is a word", RiskDestructive},
		{"grep -rf patterns.txt .", RiskSafe},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, Risk(tt.command))
		})
	}
}
