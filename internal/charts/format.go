package charts

import (
	"fmt"
	"math"
	"strconv"
)

// PercentLabel is the pie value formatter. A zero value has no label; if
// the values sum to zero every other value reads "0%"; otherwise the share
// of the sum is printed with one decimal.
func PercentLabel(value float64, data []float64) string {
	if value == 0 {
		return ""
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	if sum == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", value*100/sum)
}

// AggregateLabel labels a pie as a whole: "0%" when its values sum to
// zero, so a test with no points still reads as a share, and "" otherwise.
func AggregateLabel(data []float64) string {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	if sum == 0 {
		return "0%"
	}
	return ""
}

// ScoreLabel prints the value as a whole number of points.
func ScoreLabel(value float64, _ []float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
