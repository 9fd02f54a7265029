package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗╔═╗╦═╗╔═╗╔╗ ╔═╗╔═╗╦╔═
╚═╗║  ║ ║╠╦╝║╣ ╠╩╗║ ║║ ║╠╩╗
╚═╝╚═╝╚═╝╩╚═╚═╝╚═╝╚═╝╚═╝╩ ╩`

const titleCompact = "S C O R E B O O K"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStats summarises the tracker in one bordered line.
func renderStats(s scores.Snapshot, cw int) string {
	strong := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := []string{
		strong.Render(fmt.Sprintf("%d", len(s.Subjects))) + dim.Render(" subjects"),
		strong.Render(fmt.Sprintf("%d", len(s.Attempts))) + dim.Render(" tests"),
	}
	if n := len(s.Attempts); n > 0 {
		last := s.Attempts[n-1]
		parts = append(parts, dim.Render("latest ")+
			strong.Render(components.Truncate(components.Sanitize(last.Name), 20))+
			dim.Render(fmt.Sprintf(" · total %d", last.Total)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(parts, dim.Render("   ")))
}
