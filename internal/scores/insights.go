package scores

import (
	"math"
	"slices"
	"sort"
)

// SubjectStat summarises one subject across all attempts.
type SubjectStat struct {
	Subject string
	Mean    float64
	Min     int
	Max     int
}

// Spread is Max - Min: how much the subject's score moves between tests.
func (s SubjectStat) Spread() int {
	return s.Max - s.Min
}

// FiveNumber is a box-plot summary.
type FiveNumber struct {
	Min, Q1, Median, Q3, Max float64
}

// Insights are the derived statistics of the dashboard view.
type Insights struct {
	// Subjects is ordered by ascending mean; ties keep subject order.
	Subjects []SubjectStat
	// Latest holds the most recent attempt, if any.
	Latest *Attempt
	// Totals are the stored totals in attempt order.
	Totals []int
	// TotalMean is the mean of Totals.
	TotalMean float64
	// TotalMax is the largest possible total for the current subjects.
	TotalMax int
	// Distribution summarises every score of every current subject.
	Distribution FiveNumber
	// Count is the number of scores in Distribution.
	Count int
}

// Analyze computes Insights over the snapshot. Missing scores count as 0.
func Analyze(s Snapshot) Insights {
	in := Insights{
		Totals:   make([]int, len(s.Attempts)),
		TotalMax: ScoreMax * len(s.Subjects),
	}

	for i, a := range s.Attempts {
		in.Totals[i] = a.Total
	}
	in.TotalMean = Mean(in.Totals)

	if n := len(s.Attempts); n > 0 {
		latest := s.Attempts[n-1].clone()
		in.Latest = &latest
	}

	var all []int
	for _, sub := range s.Subjects {
		series := SubjectSeries(s.Attempts, sub)
		stat := SubjectStat{Subject: sub, Mean: Mean(series)}
		if len(series) > 0 {
			stat.Min = slices.Min(series)
			stat.Max = slices.Max(series)
		}
		in.Subjects = append(in.Subjects, stat)
		all = append(all, series...)
	}
	sort.SliceStable(in.Subjects, func(i, j int) bool {
		return in.Subjects[i].Mean < in.Subjects[j].Mean
	})

	in.Count = len(all)
	in.Distribution = fiveNumber(all)
	return in
}

func fiveNumber(values []int) FiveNumber {
	if len(values) == 0 {
		return FiveNumber{}
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	slices.Sort(sorted)
	return FiveNumber{
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.5),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// percentile interpolates linearly between closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
