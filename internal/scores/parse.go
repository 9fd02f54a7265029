package scores

import (
	"strconv"
	"strings"
)

// Score field hints. Values outside the range are accepted; the form only
// advertises it.
const (
	ScoreMin = 0
	ScoreMax = 100
)

// ParseScore reads a score the way a lenient numeric field does: leading
// whitespace is skipped, an optional sign and the leading run of digits
// are taken, and anything else is ignored. Text without leading digits
// (including the empty string) is 0. It never fails.
func ParseScore(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// FormatScore renders a stored score for a form field.
func FormatScore(n int) string {
	return strconv.Itoa(n)
}
