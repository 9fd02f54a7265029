package charts

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/scorebook/internal/termtext"
)

var markers = []rune{'●', '◆', '▲', '■', '★', '✚', '✖', '◉'}

var (
	textTitle = lipgloss.NewStyle().Bold(true)
	textDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// RenderText draws spec for a terminal in roughly width x height cells.
func RenderText(spec Spec, width, height int) string {
	width = max(width, 20)
	height = max(height, 6)

	var b strings.Builder
	b.WriteString(textTitle.Render(termtext.Sanitize(spec.Title)))
	if spec.Subtitle != "" {
		b.WriteString("  " + textDim.Render(termtext.Sanitize(spec.Subtitle)))
	}
	b.WriteString("\n")

	if spec.Empty() {
		b.WriteString(textDim.Render("No data yet."))
		return b.String()
	}

	switch spec.Kind {
	case KindLine:
		b.WriteString(textLine(spec, width, height))
	case KindPie:
		b.WriteString(textPie(spec, width))
	case KindBar:
		b.WriteString(textBar(spec, width))
	}
	return b.String()
}

type cell struct {
	r     rune
	color string
}

func textLine(spec Spec, width, height int) string {
	const axisW = 5
	plotW := width - axisW - 1
	rows := height - 3

	n := 0
	for _, d := range spec.Datasets {
		n = max(n, len(d.Data))
	}
	col := func(i int) int {
		if n <= 1 {
			return plotW / 2
		}
		return int(math.Round(float64(i) * float64(plotW-1) / float64(n-1)))
	}
	span := spec.Scale.Max - spec.Scale.Min
	if span <= 0 {
		span = 1
	}
	row := func(v float64) int {
		frac := (v - spec.Scale.Min) / span
		frac = math.Max(0, math.Min(1, frac))
		return rows - 1 - int(math.Round(frac*float64(rows-1)))
	}

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, plotW)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
		}
	}

	for j, d := range spec.Datasets {
		if len(d.Data) == 0 {
			continue
		}
		// Connecting segments first so points stay visible on top.
		for i := 0; i+1 < len(d.Data); i++ {
			c0, c1 := col(i), col(i+1)
			for c := c0 + 1; c < c1; c++ {
				if d.Dashed && (c-c0)%2 == 0 {
					continue
				}
				t := float64(c-c0) / float64(c1-c0)
				v := d.Data[i] + (d.Data[i+1]-d.Data[i])*t
				grid[row(v)][c] = cell{r: '·', color: d.Color}
			}
		}
		mark := markers[j%len(markers)]
		if d.Dashed {
			mark = '-'
		}
		for i, v := range d.Data {
			grid[row(v)][col(i)] = cell{r: mark, color: d.Color}
		}
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		label := ""
		switch r {
		case 0:
			label = ScoreLabel(round1(spec.Scale.Max), nil)
		case rows / 2:
			label = ScoreLabel(round1(spec.Scale.Min+span/2), nil)
		case rows - 1:
			label = ScoreLabel(round1(spec.Scale.Min), nil)
		}
		b.WriteString(textDim.Render(fmt.Sprintf("%*s", axisW-1, label)) + " │")
		for _, c := range grid[r] {
			b.WriteString(paint(string(c.r), c.color))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", axisW) + "└" + strings.Repeat("─", plotW) + "\n")
	b.WriteString(strings.Repeat(" ", axisW+1) + xLabels(spec.Labels, n, plotW, col) + "\n")
	b.WriteString(legend(spec.Datasets))
	return b.String()
}

// xLabels places each label at its column, skipping labels that would
// overlap the previous one.
func xLabels(labels []string, n, plotW int, col func(int) int) string {
	line := []rune(strings.Repeat(" ", plotW))
	next := 0
	for i := 0; i < n && i < len(labels); i++ {
		text := []rune(termtext.Sanitize(labels[i]))
		start := col(i) - len(text)/2
		start = max(start, next)
		if start >= plotW {
			break
		}
		if end := start + len(text); end > plotW {
			text = text[:plotW-start]
		}
		copy(line[start:], text)
		next = start + len(text) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func legend(datasets []Dataset) string {
	parts := make([]string, 0, len(datasets))
	for j, d := range datasets {
		mark := string(markers[j%len(markers)])
		if d.Dashed {
			mark = "--"
		}
		parts = append(parts, paint(mark, d.Color)+" "+termtext.Sanitize(d.Label))
	}
	return strings.Join(parts, "   ")
}

func textPie(spec Spec, width int) string {
	d := spec.Datasets[0]
	barW := width - 2
	sum := 0.0
	for _, v := range d.Data {
		if v > 0 {
			sum += v
		}
	}

	var b strings.Builder
	if sum <= 0 {
		label := AggregateLabel(d.Data)
		bar := strings.Repeat("░", max(barW-lipgloss.Width(label)-1, 1))
		b.WriteString(textDim.Render(bar) + " " + label + "\n")
	} else {
		used := 0
		for i, v := range d.Data {
			if v <= 0 {
				continue
			}
			w := int(math.Round(v / sum * float64(barW)))
			w = min(w, barW-used)
			b.WriteString(paint(strings.Repeat("█", w), colorAt(d, i)))
			used += w
		}
		b.WriteString("\n")
	}

	nameW := 0
	for _, l := range spec.Labels {
		nameW = max(nameW, lipgloss.Width(termtext.Sanitize(l)))
	}
	for i, v := range d.Data {
		pct := spec.ValueLabel(i)
		fmt.Fprintf(&b, "%s %-*s %5s  %s\n",
			paint("■", colorAt(d, i)), nameW, termtext.Sanitize(labelAt(spec.Labels, i)), ScoreLabel(v, nil), pct)
	}
	return strings.TrimRight(b.String(), "\n")
}

func textBar(spec Spec, width int) string {
	d := spec.Datasets[0]
	nameW := 0
	for _, l := range spec.Labels {
		nameW = max(nameW, lipgloss.Width(termtext.Sanitize(l)))
	}
	barW := max(width-nameW-10, 5)
	top := spec.Scale.Max
	if top <= 0 {
		top = 1
	}

	lines := make([]string, 0, len(d.Data))
	for i, v := range d.Data {
		w := int(math.Round(math.Max(0, v) / top * float64(barW)))
		w = min(w, barW)
		value := ScoreLabel(v, nil)
		if text := spec.ValueLabel(i); text != "" {
			value = text
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			nameW, termtext.Sanitize(labelAt(spec.Labels, i)), paint(strings.Repeat("█", w), colorAt(d, i)), value))
	}
	return strings.Join(lines, "\n")
}

func paint(s, color string) string {
	if color == "" || strings.TrimSpace(s) == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}
