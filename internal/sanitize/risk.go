package sanitize

import "regexp"

// RiskLevel classifies how dangerous a suggested command looks.
type RiskLevel string

const (
	// RiskSafe indicates a command is considered safe.
	RiskSafe RiskLevel = "safe"
	// RiskDestructive indicates a command may destroy data or state.
	RiskDestructive RiskLevel = "destructive"
)

// destructivePatterns detect commands that should be rendered as a warning
// before the user accepts them. The list is deliberately conservative; a
// false "safe" only means the suggestion renders without the warning style.
var destructivePatterns = []*regexp.Regexp{
	// File deletion
	regexp.MustCompile(`\brm\s+-[a-zA-Z]*[rf]`),
	regexp.MustCompile(`\brmdir\b`),

	// SQL
	regexp.MustCompile(`(?i)\bDROP\s+(TABLE|DATABASE)\b`),
	regexp.MustCompile(`(?i)\bTRUNCATE\b`),
	regexp.MustCompile(`(?i)\bDELETE\s+FROM\b`),

	// Git history rewriting
	regexp.MustCompile(`\bgit\s+(push\s+)?(-[a-zA-Z]*f|--force)\b`),
	regexp.MustCompile(`\bgit\s+reset\s+--hard\b`),
	regexp.MustCompile(`\bgit\s+clean\s+-[a-zA-Z]*[fd]`),

	// Disk and system
	regexp.MustCompile(`\bdd\s+.*of=/dev/`),
	regexp.MustCompile(`\bmkfs\b`),
	regexp.MustCompile(`\b(shutdown|reboot)\b`),
	regexp.MustCompile(`\bchmod\s+(-[a-zA-Z]*R\b|777\b)`),

	// Process and container teardown
	regexp.MustCompile(`\bkill\s+-9\b`),
	regexp.MustCompile(`\b(killall|pkill)\b`),
	regexp.MustCompile(`\bdocker\s+system\s+prune\b`),
	regexp.MustCompile(`\bkubectl\s+delete\b`),
}

// Risk returns the risk level for a command string.
func Risk(command string) RiskLevel {
	for _, p := range destructivePatterns {
		if p.MatchString(command) {
			return RiskDestructive
		}
	}
	return RiskSafe
}
