// Package charts turns tracker state into declarative chart specs and
// renders them, either to PNG/SVG through go-chart or to text for the
// terminal. Rendering surfaces are owned through handles; see Registry.
package charts

import "fmt"

// Kind selects the chart type.
type Kind int

const (
	KindLine Kind = iota
	KindPie
	KindBar
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindPie:
		return "pie"
	case KindBar:
		return "bar"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scale is the fixed value axis range.
type Scale struct {
	Min float64
	Max float64
}

// Dataset is one series. For pie and bar charts only the first dataset is
// drawn and Colors, when set, colours each value.
type Dataset struct {
	Label  string
	Data   []float64
	Color  string
	Colors []string
	Dashed bool
}

// LabelFunc formats the value label for data[i].
type LabelFunc func(value float64, data []float64) string

// Spec describes one chart independently of how it will be drawn.
type Spec struct {
	// Surface identifies the drawing surface the chart is bound to, such
	// as "line-Math" or "pie-1714000000000". At most one live handle may
	// hold a surface.
	Surface  string
	Kind     Kind
	Title    string
	Subtitle string
	Labels   []string
	Datasets []Dataset
	Scale    Scale
	Format   LabelFunc
}

// ValueLabel returns the formatted label of value i of the first dataset,
// or "" when the spec has no formatter.
func (s Spec) ValueLabel(i int) string {
	if s.Format == nil || len(s.Datasets) == 0 {
		return ""
	}
	data := s.Datasets[0].Data
	if i < 0 || i >= len(data) {
		return ""
	}
	return s.Format(data[i], data)
}

// Empty reports whether the spec has nothing to plot.
func (s Spec) Empty() bool {
	for _, d := range s.Datasets {
		if len(d.Data) > 0 {
			return false
		}
	}
	return true
}
