package charts

import (
	"fmt"
	"math/rand/v2"
)

// Palette colours pie slices, reused cyclically.
var Palette = []string{
	"#FF6384",
	"#36A2EB",
	"#FFCE56",
	"#4BC0C0",
	"#9966FF",
	"#FF9F40",
	"#8D6E63",
	"#78909C",
}

// AverageColor is the colour of reference "Average" lines.
const AverageColor = "#999999"

// PaletteColor returns the i-th palette colour.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// ColorFunc yields a colour for the next series.
type ColorFunc func() string

// RandomColors returns a ColorFunc drawing each channel uniformly from
// 0-255. A nil r uses the global source.
func RandomColors(r *rand.Rand) ColorFunc {
	next := rand.IntN
	if r != nil {
		next = r.IntN
	}
	return func() string {
		return fmt.Sprintf("#%02X%02X%02X", next(256), next(256), next(256))
	}
}

// FixedColors cycles through colors. Useful where output must be stable.
func FixedColors(colors ...string) ColorFunc {
	if len(colors) == 0 {
		colors = Palette
	}
	i := 0
	return func() string {
		c := colors[i%len(colors)]
		i++
		return c
	}
}
