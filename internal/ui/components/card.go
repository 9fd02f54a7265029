package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards so sections align.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-4, 20), 100)
}

// Card wraps content in a rounded border at the given content width.
func Card(content string, cw int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	return style.Width(cw).Render(content)
}

// Center places content in the middle of a width x height box.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
