package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/router"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/screens/chartview"
	"github.com/abhisek/scorebook/internal/screens/entry"
	"github.com/abhisek/scorebook/internal/screens/insights"
	"github.com/abhisek/scorebook/internal/screens/subjects"
	"github.com/abhisek/scorebook/internal/screens/table"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

func push(s func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
	}
}

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Subjects", Hint: "add or remove subjects", Action: push(func() screen.Screen { return subjects.New(env) })},
		{Label: "Enter scores", Hint: "record a test", Action: push(func() screen.Screen { return entry.New(env) })},
		{Label: "Data table", Hint: "edit or delete tests", Action: push(func() screen.Screen { return table.New(env) })},
		{Label: "Line charts", Hint: "trend per subject", Action: push(func() screen.Screen { return chartview.NewLines(env) })},
		{Label: "Pie charts", Hint: "composition per test", Action: push(func() screen.Screen { return chartview.NewPies(env) })},
		{Label: "Overview", Hint: "all subjects and totals", Action: push(func() screen.Screen { return chartview.NewOverview(env) })},
		{Label: "Insights", Hint: "averages, spread, distribution", Action: push(func() screen.Screen { return insights.New(env) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+6) || layout.IsCompactWidth(width)
	cw := min(components.ContentWidth(width), 64)

	sections := []string{
		renderTitle(cw, compact),
		renderStats(h.env.Tracker.Snapshot(), cw),
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
	}
	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Center(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/1-8", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}
