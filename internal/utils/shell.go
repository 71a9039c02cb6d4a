package utils

import (
	"regexp"
	"strings"
)

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// ShellQuote quotes s for a POSIX shell. Words made only of safe characters
// are returned as is so composed commands stay readable in a rebase todo.
func ShellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return ForceShellQuote(s)
}

// ForceShellQuote always wraps s in single quotes.
func ForceShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// ShellJoin quotes every word and joins them with spaces.
func ShellJoin(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = ShellQuote(w)
	}
	return strings.Join(quoted, " ")
}
