package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/ui/theme"
)

// ScoreBar displays a value against a maximum as a horizontal bar.
type ScoreBar struct {
	Label      string
	LabelWidth int
	Value      float64
	Max        float64
	Width      int
}

// NewScoreBar creates a bar for value out of maxValue.
func NewScoreBar(label string, value, maxValue float64, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Value: value,
		Max:   maxValue,
		Width: width,
	}
}

// Fraction is Value/Max clamped to 0..1.
func (p ScoreBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(p.Value/p.Max, 0), 1)
}

// View renders the bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		label := Sanitize(p.Label)
		if p.LabelWidth > 0 {
			label = fmt.Sprintf("%-*s", p.LabelWidth, Truncate(label, p.LabelWidth))
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	const valueWidth = 8
	barWidth := max(p.Width-lipgloss.Width(result)-valueWidth, 4)

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", empty))

	return result + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %5.1f", p.Value))
}
