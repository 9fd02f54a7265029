package components

import "github.com/abhisek/scorebook/internal/termtext"

// Sanitize strips escape sequences and control characters from user text.
func Sanitize(s string) string {
	return termtext.Sanitize(s)
}

// Truncate shortens s to at most width cells, marking the cut with "…".
func Truncate(s string, width int) string {
	return termtext.Truncate(s, width)
}
