package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned when a spec has no data to draw.
var ErrEmptyChart = errors.New("chart has no data")

// Format is an image output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown chart format %q (want png or svg)", s)
	}
}

// Ext is the file extension, with the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// RenderPNG draws spec as a PNG image.
func RenderPNG(w io.Writer, spec Spec, size Size) error {
	return Render(w, spec, size, FormatPNG)
}

// RenderSVG draws spec as an SVG document.
func RenderSVG(w io.Writer, spec Spec, size Size) error {
	return Render(w, spec, size, FormatSVG)
}

// Render draws spec in the given format.
func Render(w io.Writer, spec Spec, size Size, format Format) error {
	var rp chart.RendererProvider
	switch format {
	case FormatPNG:
		rp = chart.PNG
	case FormatSVG:
		rp = chart.SVG
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}
	if spec.Empty() {
		return fmt.Errorf("%s: %w", spec.Title, ErrEmptyChart)
	}

	var err error
	switch spec.Kind {
	case KindLine:
		ch := lineChart(spec, size)
		err = ch.Render(rp, w)
	case KindPie:
		ch := pieChart(spec, size)
		err = ch.Render(rp, w)
	case KindBar:
		ch := barChart(spec, size)
		err = ch.Render(rp, w)
	default:
		return fmt.Errorf("unsupported chart kind %s", spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s chart %q: %w", spec.Kind, spec.Title, err)
	}
	return nil
}

func lineChart(spec Spec, size Size) chart.Chart {
	n := len(spec.Labels)
	for _, d := range spec.Datasets {
		n = max(n, len(d.Data))
	}

	ticks := make([]chart.Tick, 0, n)
	for i := 0; i < n; i++ {
		label := ""
		if i < len(spec.Labels) {
			label = spec.Labels[i]
		}
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	// A single attempt has no x extent; pad so the range is never zero.
	xr := &chart.ContinuousRange{Min: 0, Max: float64(n - 1)}
	if n <= 1 {
		xr = &chart.ContinuousRange{Min: -1, Max: 1}
	}

	series := make([]chart.Series, 0, len(spec.Datasets))
	for _, d := range spec.Datasets {
		if len(d.Data) == 0 {
			continue
		}
		xs, ys := linePoints(d.Data)
		series = append(series, chart.ContinuousSeries{
			Name:    d.Label,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(d),
		})
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: ticks, Range: xr},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: spec.Scale.Min, Max: spec.Scale.Max},
			Ticks: scaleTicks(spec.Scale, 5),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// linePoints places value i at x = i. go-chart needs two values per series,
// so a lone value is drawn as a short flat segment around x = 0.
func linePoints(data []float64) (xs, ys []float64) {
	if len(data) == 1 {
		return []float64{-0.5, 0.5}, []float64{data[0], data[0]}
	}
	xs = make([]float64, len(data))
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs, data
}

func lineStyle(d Dataset) chart.Style {
	col := hexColor(d.Color)
	if d.Dashed {
		return chart.Style{
			StrokeColor:     col,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5, 5},
		}
	}
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

func pieChart(spec Spec, size Size) chart.PieChart {
	d := spec.Datasets[0]
	values := make([]chart.Value, 0, len(d.Data))
	for i, v := range d.Data {
		// go-chart drops non-positive slices and fails if none remain.
		if v <= 0 {
			continue
		}
		label := labelAt(spec.Labels, i)
		if pct := spec.ValueLabel(i); pct != "" {
			label += " " + pct
		}
		values = append(values, chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{
				FillColor:   hexColor(colorAt(d, i)),
				StrokeColor: drawing.ColorWhite,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		label := "No scores"
		if agg := AggregateLabel(d.Data); agg != "" {
			label = agg
		}
		values = append(values, chart.Value{
			Value: 1,
			Label: label,
			Style: chart.Style{FillColor: hexColor(AverageColor), FontColor: drawing.ColorWhite},
		})
	}
	title := spec.Title
	if spec.Subtitle != "" {
		title += " (" + spec.Subtitle + ")"
	}
	return chart.PieChart{
		Title:  title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
}

func barChart(spec Spec, size Size) chart.BarChart {
	d := spec.Datasets[0]
	bars := make([]chart.Value, len(d.Data))
	for i, v := range d.Data {
		label := labelAt(spec.Labels, i)
		if text := spec.ValueLabel(i); text != "" {
			label += " (" + text + ")"
		}
		bars[i] = chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: hexColor(colorAt(d, i)), StrokeColor: hexColor(colorAt(d, i))},
		}
	}
	barWidth := 40
	if n := len(bars); n > 0 {
		barWidth = max(8, min(80, (size.Width-120)/(2*n)))
	}
	return chart.BarChart{
		Title:      spec.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: spec.Scale.Min, Max: spec.Scale.Max},
			Ticks: scaleTicks(spec.Scale, 5),
		},
		Bars: bars,
	}
}

// scaleTicks splits the scale into n equal steps.
func scaleTicks(s Scale, n int) []chart.Tick {
	if s.Max <= s.Min || n <= 0 {
		return nil
	}
	step := (s.Max - s.Min) / float64(n)
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := s.Min + step*float64(i)
		ticks = append(ticks, chart.Tick{Value: v, Label: ScoreLabel(round1(v), nil)})
	}
	return ticks
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(hex)
}

func colorAt(d Dataset, i int) string {
	if i < len(d.Colors) && d.Colors[i] != "" {
		return d.Colors[i]
	}
	if d.Color != "" {
		return d.Color
	}
	return PaletteColor(i)
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
