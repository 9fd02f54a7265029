// Package termtext prepares user-entered text for a terminal.
package termtext

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes user-entered text safe to print: escape sequences are
// removed and remaining control characters, newlines included, dropped.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}

// Truncate shortens s to at most width cells, marking the cut with "…".
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
