package charts

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/abhisek/scorebook/internal/scores"
)

// Surface ids for charts that are not tied to a subject or an attempt.
const (
	SurfaceCombined = "overview-combined"
	SurfaceTotals   = "overview-totals"
	SurfaceAverages = "insights-averages"
	SurfaceSpread   = "insights-spread"
)

// LineSurface is the surface of a subject's trend chart.
func LineSurface(subject string) string {
	return "line-" + subject
}

// PieSurface is the surface of an attempt's composition chart.
func PieSurface(id int64) string {
	return "pie-" + strconv.FormatInt(id, 10)
}

// SubjectLines builds one trend chart per current subject: the subject's
// score in each attempt, and a dashed "Average" line at the subject's mean
// over all attempts. The value axis is fixed to 0-100.
func SubjectLines(s scores.Snapshot, color ColorFunc) []Spec {
	labels := scores.Labels(s.Attempts)
	specs := make([]Spec, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		series := scores.SubjectSeries(s.Attempts, sub)
		specs = append(specs, Spec{
			Surface: LineSurface(sub),
			Kind:    KindLine,
			Title:   sub,
			Labels:  slices.Clone(labels),
			Datasets: []Dataset{
				{Label: "Score", Data: floats(series), Color: color()},
				averageLine(scores.Mean(series), len(series)),
			},
			Scale: Scale{Min: 0, Max: scores.ScoreMax},
		})
	}
	return specs
}

// Combined builds a single trend chart with one series per subject plus an
// "Average" series holding each attempt's mean over the current subjects,
// rounded to one decimal.
func Combined(s scores.Snapshot, color ColorFunc) Spec {
	spec := Spec{
		Surface: SurfaceCombined,
		Kind:    KindLine,
		Title:   "All subjects",
		Labels:  scores.Labels(s.Attempts),
		Scale:   Scale{Min: 0, Max: scores.ScoreMax},
	}
	for _, sub := range s.Subjects {
		spec.Datasets = append(spec.Datasets, Dataset{
			Label: sub,
			Data:  floats(scores.SubjectSeries(s.Attempts, sub)),
			Color: color(),
		})
	}
	avg := make([]float64, len(s.Attempts))
	for i, a := range s.Attempts {
		avg[i] = round1(scores.AttemptMean(a, s.Subjects))
	}
	spec.Datasets = append(spec.Datasets, Dataset{
		Label:  "Average",
		Data:   avg,
		Color:  AverageColor,
		Dashed: true,
	})
	return spec
}

// Totals builds the stored-total trend with a mean reference line. The
// value axis spans the largest possible total, widened when a stored total
// exceeds it.
func Totals(s scores.Snapshot) Spec {
	in := scores.Analyze(s)
	maxY := float64(in.TotalMax)
	for _, t := range in.Totals {
		maxY = max(maxY, float64(t))
	}
	if maxY <= 0 {
		maxY = scores.ScoreMax
	}
	return Spec{
		Surface: SurfaceTotals,
		Kind:    KindLine,
		Title:   "Total",
		Labels:  scores.Labels(s.Attempts),
		Datasets: []Dataset{
			{Label: "Total", Data: floats(in.Totals), Color: PaletteColor(1)},
			averageLine(in.TotalMean, len(in.Totals)),
		},
		Scale: Scale{Min: 0, Max: maxY},
	}
}

// Pies builds one composition chart per attempt with a slice per current
// subject, coloured from Palette and labelled with PercentLabel.
func Pies(s scores.Snapshot) []Spec {
	specs := make([]Spec, 0, len(s.Attempts))
	for _, a := range s.Attempts {
		data := make([]float64, len(s.Subjects))
		colors := make([]string, len(s.Subjects))
		for i, sub := range s.Subjects {
			data[i] = float64(a.Score(sub))
			colors[i] = PaletteColor(i)
		}
		specs = append(specs, Spec{
			Surface:  PieSurface(a.ID),
			Kind:     KindPie,
			Title:    a.Name,
			Subtitle: fmt.Sprintf("Total: %d", a.Total),
			Labels:   slices.Clone(s.Subjects),
			Datasets: []Dataset{{Label: a.Name, Data: data, Colors: colors}},
			Format:   PercentLabel,
		})
	}
	return specs
}

// Averages charts the subject means in ascending order.
func Averages(in scores.Insights) Spec {
	spec := barSpec(SurfaceAverages, "Average by subject", in.Subjects, func(st scores.SubjectStat) float64 {
		return round1(st.Mean)
	})
	spec.Scale = Scale{Min: 0, Max: scores.ScoreMax}
	return spec
}

// Spread charts max - min per subject, in the same order as Averages.
func Spread(in scores.Insights) Spec {
	spec := barSpec(SurfaceSpread, "Score spread", in.Subjects, func(st scores.SubjectStat) float64 {
		return float64(st.Spread())
	})
	top := float64(scores.ScoreMax)
	for _, v := range spec.Datasets[0].Data {
		top = max(top, v)
	}
	spec.Scale = Scale{Min: 0, Max: top}
	return spec
}

func barSpec(surface, title string, stats []scores.SubjectStat, value func(scores.SubjectStat) float64) Spec {
	labels := make([]string, len(stats))
	data := make([]float64, len(stats))
	colors := make([]string, len(stats))
	for i, st := range stats {
		labels[i] = st.Subject
		data[i] = value(st)
		colors[i] = PaletteColor(i)
	}
	return Spec{
		Surface:  surface,
		Kind:     KindBar,
		Title:    title,
		Labels:   labels,
		Datasets: []Dataset{{Label: title, Data: data, Colors: colors}},
		Format:   ScoreLabel,
	}
}

func averageLine(mean float64, n int) Dataset {
	data := make([]float64, n)
	for i := range data {
		data[i] = mean
	}
	return Dataset{Label: "Average", Data: data, Color: AverageColor, Dashed: true}
}

func floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
