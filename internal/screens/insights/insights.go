package insights

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/screen"
	"github.com/abhisek/scorebook/internal/ui/components"
	"github.com/abhisek/scorebook/internal/ui/layout"
	"github.com/abhisek/scorebook/internal/ui/theme"
)

// InsightsScreen shows derived statistics: subject averages from weakest
// to strongest, score spread, the latest test and the score distribution.
type InsightsScreen struct {
	env    *screen.Env
	panel  *charts.Panel
	offset int
}

var _ screen.Screen = (*InsightsScreen)(nil)

// New creates the insights screen.
func New(env *screen.Env) *InsightsScreen {
	return &InsightsScreen{env: env, panel: charts.NewPanel(env.Charts)}
}

func (s *InsightsScreen) Init() tea.Cmd {
	return nil
}

func (s *InsightsScreen) Close() {
	s.panel.Close()
}

func (s *InsightsScreen) Title() string {
	return "Insights"
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *InsightsScreen) View(width, height int) string {
	snap := s.env.Tracker.Snapshot()
	if len(snap.Attempts) == 0 {
		return theme.Hint.Render("No tests recorded yet. Insights appear after the first test.")
	}
	in := scores.Analyze(snap)
	cw := components.ContentWidth(width)

	sections := []string{
		components.Card(averages(in, cw-4), cw, false),
	}
	if err := s.panel.Rebuild([]charts.Spec{charts.Spread(in)}); err != nil {
		sections = append(sections, components.NoticeView(scores.ErrorNotice(err)))
	} else {
		spread := charts.RenderText(s.panel.Specs()[0], cw-4, 0)
		sections = append(sections, components.Card(spread, cw, false))
	}
	sections = append(sections,
		components.Card(latest(in, snap.Subjects), cw, false),
		components.Card(distribution(in), cw, false),
	)

	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	lines := strings.Count(out, "\n") + 1
	s.offset = min(s.offset, max(lines-height, 0))
	return layout.Clip(out, s.offset, height)
}

func averages(in scores.Insights, width int) string {
	labelW := 0
	for _, st := range in.Subjects {
		labelW = max(labelW, lipgloss.Width(components.Sanitize(st.Subject)))
	}
	labelW = min(labelW, 20)

	var b strings.Builder
	b.WriteString(theme.Label.Render("Average by subject (lowest first)"))
	if len(in.Subjects) == 0 {
		b.WriteString("\n" + theme.Hint.Render("No subjects."))
	}
	for _, st := range in.Subjects {
		bar := components.NewScoreBar(st.Subject, st.Mean, scores.ScoreMax, width)
		bar.LabelWidth = labelW
		b.WriteString("\n" + bar.View())
	}
	return b.String()
}

func latest(in scores.Insights, subjects []string) string {
	a := in.Latest
	date := a.Date
	if date == "" {
		date = scores.DatePlaceholder
	}
	head := fmt.Sprintf("Latest test: %s (%s), total %d",
		components.Sanitize(a.Name), components.Sanitize(date), a.Total)

	var b strings.Builder
	b.WriteString(theme.Label.Render(head))
	for _, sub := range subjects {
		fmt.Fprintf(&b, "\n  %s  %d", components.Sanitize(sub), a.Score(sub))
	}
	return b.String()
}

func distribution(in scores.Insights) string {
	d := in.Distribution
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	item := func(name string, v float64) string {
		return dim.Render(name+" ") + value.Render(charts.ScoreLabel(v, nil))
	}
	return theme.Label.Render(fmt.Sprintf("Score distribution (%d scores)", in.Count)) + "\n" +
		strings.Join([]string{
			item("min", d.Min),
			item("q1", d.Q1),
			item("median", d.Median),
			item("q3", d.Q3),
			item("max", d.Max),
		}, dim.Render("  ·  ")) + "\n" +
		dim.Render(fmt.Sprintf("Mean total %.1f of %d", in.TotalMean, in.TotalMax))
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}
