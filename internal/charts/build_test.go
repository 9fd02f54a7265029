package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/scorebook/internal/scores"
)

func testSnapshot() scores.Snapshot {
	return scores.Snapshot{
		Subjects: []string{"Math", "English"},
		Attempts: []scores.Attempt{
			{ID: 11, Name: "T1", Scores: map[string]int{"Math": 80, "English": 70}, Total: 150},
			{ID: 12, Name: "T2", Scores: map[string]int{"Math": 60}, Total: 60},
			{ID: 13, Name: "T3", Scores: map[string]int{"Math": 100, "English": 60}, Total: 160},
		},
	}
}

func TestSubjectLines(t *testing.T) {
	specs := SubjectLines(testSnapshot(), FixedColors("#112233"))
	require.Len(t, specs, 2)

	math := specs[0]
	assert.Equal(t, "line-Math", math.Surface)
	assert.Equal(t, KindLine, math.Kind)
	assert.Equal(t, "Math", math.Title)
	assert.Equal(t, []string{"T1", "T2", "T3"}, math.Labels)
	assert.Equal(t, Scale{Min: 0, Max: 100}, math.Scale)
	require.Len(t, math.Datasets, 2)
	assert.Equal(t, []float64{80, 60, 100}, math.Datasets[0].Data)
	assert.Equal(t, "#112233", math.Datasets[0].Color)
	assert.Equal(t, "Average", math.Datasets[1].Label)
	assert.Equal(t, []float64{80, 80, 80}, math.Datasets[1].Data)
	assert.True(t, math.Datasets[1].Dashed)

	english := specs[1]
	assert.Equal(t, []float64{70, 0, 60}, english.Datasets[0].Data, "missing scores plot as 0")
}

func TestSubjectLinesNoAttempts(t *testing.T) {
	specs := SubjectLines(scores.Snapshot{Subjects: []string{"Math"}}, FixedColors())
	require.Len(t, specs, 1)
	assert.Empty(t, specs[0].Datasets[0].Data)
	assert.Empty(t, specs[0].Datasets[1].Data)
	assert.True(t, specs[0].Empty())
}

func TestCombined(t *testing.T) {
	spec := Combined(testSnapshot(), FixedColors())
	assert.Equal(t, SurfaceCombined, spec.Surface)
	require.Len(t, spec.Datasets, 3)
	assert.Equal(t, "Math", spec.Datasets[0].Label)
	avg := spec.Datasets[2]
	assert.Equal(t, "Average", avg.Label)
	assert.Equal(t, []float64{75, 30, 80}, avg.Data)
}

func TestCombinedRoundsToOneDecimal(t *testing.T) {
	s := scores.Snapshot{
		Subjects: []string{"A", "B", "C"},
		Attempts: []scores.Attempt{{ID: 1, Name: "x", Scores: map[string]int{"A": 100, "B": 30, "C": 30}}},
	}
	spec := Combined(s, FixedColors())
	assert.Equal(t, []float64{53.3}, spec.Datasets[3].Data)
}

func TestTotals(t *testing.T) {
	spec := Totals(testSnapshot())
	assert.Equal(t, SurfaceTotals, spec.Surface)
	assert.Equal(t, []float64{150, 60, 160}, spec.Datasets[0].Data)
	assert.Equal(t, Scale{Min: 0, Max: 200}, spec.Scale)
	assert.InDelta(t, 123.33, spec.Datasets[1].Data[0], 0.01)
}

func TestTotalsWidensForDriftedTotals(t *testing.T) {
	s := testSnapshot()
	s.Subjects = []string{"Math"}
	spec := Totals(s)
	assert.Equal(t, 160.0, spec.Scale.Max)
}

func TestPies(t *testing.T) {
	specs := Pies(testSnapshot())
	require.Len(t, specs, 3)

	p := specs[1]
	assert.Equal(t, "pie-12", p.Surface)
	assert.Equal(t, KindPie, p.Kind)
	assert.Equal(t, "T2", p.Title)
	assert.Equal(t, "Total: 60", p.Subtitle)
	assert.Equal(t, []string{"Math", "English"}, p.Labels)
	assert.Equal(t, []float64{60, 0}, p.Datasets[0].Data)
	assert.Equal(t, []string{"#FF6384", "#36A2EB"}, p.Datasets[0].Colors)
	assert.Equal(t, "100.0%", p.ValueLabel(0))
	assert.Equal(t, "", p.ValueLabel(1))
}

func TestPiesPaletteWrapsPastEightSubjects(t *testing.T) {
	s := scores.Snapshot{
		Subjects: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
		Attempts: []scores.Attempt{{ID: 1, Name: "x", Scores: map[string]int{}}},
	}
	colors := Pies(s)[0].Datasets[0].Colors
	assert.Equal(t, colors[0], colors[8])
}

func TestAveragesAndSpread(t *testing.T) {
	in := scores.Analyze(testSnapshot())

	avg := Averages(in)
	assert.Equal(t, KindBar, avg.Kind)
	assert.Equal(t, []string{"English", "Math"}, avg.Labels)
	assert.Equal(t, []float64{43.3, 80}, avg.Datasets[0].Data)

	spread := Spread(in)
	assert.Equal(t, []string{"English", "Math"}, spread.Labels)
	assert.Equal(t, []float64{70, 40}, spread.Datasets[0].Data)
	assert.Equal(t, 100.0, spread.Scale.Max)
}
