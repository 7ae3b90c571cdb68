// Package sanitize turns raw provider output into a string that is safe to
// place on a shell input line. The pipeline is total: any input degrades to
// an empty or truncated safe string, never an error.
package sanitize

import (
	"regexp"
	"strings"
)

// csiRE matches ANSI CSI sequences: an ESC byte, an opening bracket, zero or
// more parameter characters, and one terminating letter. This covers SGR
// color codes as well as cursor-movement sequences.
var csiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// Sanitize runs the full cleanup pipeline, in order:
//
//  1. Remove ANSI escape sequences, repeating until none remain. A single
//     pass is not assumed sufficient: adjacent or malformed sequences can
//     reveal a new match once their neighbor is removed.
//  2. Remove any stray ESC bytes left over from malformed sequences.
//  3. Remove control bytes below 0x20 except horizontal tab, and the DEL
//     byte. Newlines are included: the response channel must not be able to
//     inject extra lines into the edit buffer.
//  4. Trim leading and trailing whitespace.
//
// Each pass is idempotent on its own output, so
// Sanitize(Sanitize(x)) == Sanitize(x) for all x.
func Sanitize(raw string) string {
	s := stripANSI(raw)
	s = strings.ReplaceAll(s, "\x1b", "")
	s = stripControl(s)
	return strings.TrimSpace(s)
}

// stripANSI removes CSI sequences until a pass makes no progress.
func stripANSI(s string) string {
	for {
		cleaned := csiRE.ReplaceAllString(s, "")
		if cleaned == s {
			return cleaned
		}
		s = cleaned
	}
}

// stripControl removes control bytes in the low range (keeping tab) and DEL.
func stripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\t' {
			continue
		}
		if r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
