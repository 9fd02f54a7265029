// Package chartview shows chart specs as a scrollable grid of terminal
// charts. Each screen owns a charts.Panel and rebuilds it whenever the
// tracker has changed.
package chartview

import (
	"errors"
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

// Builder turns tracker state into the specs one screen shows.
type Builder func(s scores.Snapshot, colors charts.ColorFunc) []charts.Spec

// ChartScreen renders the specs produced by a Builder.
type ChartScreen struct {
	env   *screen.Env
	title string
	empty string
	build Builder
	// cellWidth is the preferred width of one chart; the grid fits as
	// many columns as the terminal allows, up to maxCols.
	cellWidth int
	maxCols   int
	height    func(spec charts.Spec) int

	panel    *charts.Panel
	revision uint64
	built    bool
	err      error
	row      int
}

var _ screen.Screen = (*ChartScreen)(nil)

// NewLines shows one trend chart per subject.
func NewLines(env *screen.Env) *ChartScreen {
	return newScreen(env, "Line charts", "No subjects yet. Add some on the Subjects screen.",
		charts.SubjectLines, 60, 2, func(charts.Spec) int { return 14 })
}

// NewPies shows one composition chart per test.
func NewPies(env *screen.Env) *ChartScreen {
	return newScreen(env, "Pie charts", "No tests recorded yet.",
		func(s scores.Snapshot, _ charts.ColorFunc) []charts.Spec { return charts.Pies(s) },
		40, 3, func(spec charts.Spec) int { return len(spec.Labels) + 3 })
}

// NewOverview shows every subject on one chart, then the total trend.
func NewOverview(env *screen.Env) *ChartScreen {
	return newScreen(env, "Overview", "No subjects yet. Add some on the Subjects screen.",
		func(s scores.Snapshot, colors charts.ColorFunc) []charts.Spec {
			if len(s.Subjects) == 0 {
				return nil
			}
			return []charts.Spec{charts.Combined(s, colors), charts.Totals(s)}
		},
		100, 1, func(charts.Spec) int { return 16 })
}

func newScreen(env *screen.Env, title, empty string, build Builder, cellWidth, maxCols int, height func(charts.Spec) int) *ChartScreen {
	return &ChartScreen{
		env:       env,
		title:     title,
		empty:     empty,
		build:     build,
		cellWidth: cellWidth,
		maxCols:   maxCols,
		height:    height,
		panel:     charts.NewPanel(env.Charts),
	}
}

func (c *ChartScreen) Init() tea.Cmd {
	c.refresh(false)
	return nil
}

// Resume rebuilds when the tracker changed while the screen was covered.
func (c *ChartScreen) Resume() tea.Cmd {
	c.refresh(false)
	return nil
}

// Close releases every chart surface the screen holds.
func (c *ChartScreen) Close() {
	c.panel.Close()
	c.built = false
}

func (c *ChartScreen) Title() string {
	return c.title
}

// Specs returns the specs currently on screen.
func (c *ChartScreen) Specs() []charts.Spec {
	return c.panel.Specs()
}

// Err returns the last rebuild error.
func (c *ChartScreen) Err() error {
	return c.err
}

func (c *ChartScreen) refresh(force bool) {
	rev := c.env.Tracker.Revision()
	if c.built && rev == c.revision && !force {
		return
	}
	specs := c.build(c.env.Tracker.Snapshot(), c.env.LineColors())
	c.err = c.panel.Rebuild(specs)
	if c.err != nil && c.env.Log != nil {
		c.env.Log.Error("chart rebuild failed", "screen", c.title, "error", c.err)
	}
	c.revision = rev
	c.built = true
}

func (c *ChartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k", "pgup":
		if c.row > 0 {
			c.row--
		}
	case "down", "j", "pgdown":
		c.row++
	case "r":
		c.refresh(true)
	}
	return c, nil
}

func (c *ChartScreen) cols(width int) int {
	return min(max(width/c.cellWidth, 1), c.maxCols)
}

func (c *ChartScreen) View(width, height int) string {
	c.refresh(false)

	if c.err != nil {
		msg := c.err.Error()
		if errors.Is(c.err, charts.ErrSurfaceInUse) {
			msg = "Charts are already open elsewhere: " + msg
		}
		return components.NoticeView(scores.Notice{Kind: scores.NoticeError, Message: msg})
	}

	specs := c.panel.Specs()
	if len(specs) == 0 {
		return theme.Hint.Render(c.empty)
	}

	cols := c.cols(width)
	cellW := width / cols
	var grid [][]charts.Spec
	for i := 0; i < len(specs); i += cols {
		grid = append(grid, specs[i:min(i+cols, len(specs))])
	}
	c.row = min(c.row, len(grid)-1)

	var rows []string
	used := 0
	for r := c.row; r < len(grid); r++ {
		cells := make([]string, 0, cols)
		for _, spec := range grid[r] {
			chart := charts.RenderText(spec, cellW-4, c.height(spec))
			cells = append(cells, components.Card(chart, cellW-2, false))
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		h := lipgloss.Height(block)
		if used > 0 && used+h > height-1 {
			break
		}
		rows = append(rows, block)
		used += h
	}

	out := strings.Join(rows, "\n")
	if len(grid) > 1 {
		out += "\n" + theme.Hint.Render(fmt.Sprintf("row %d of %d", c.row+1, len(grid)))
	}
	return layout.Clip(out, 0, height)
}

func (c *ChartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Redraw"},
		{Key: "Esc", Description: "Back"},
	}
}
