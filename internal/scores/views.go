package scores

import (
	"fmt"
	"strings"
)

// DatePlaceholder is shown for attempts without a date.
const DatePlaceholder = "-"

// Row is one line of the data table.
type Row struct {
	ID      int64
	Name    string
	Date    string
	Total   int
	Summary string
}

// Rows builds the data table in stored order. Total is the stored total;
// Summary lists "subject:score" for the current subjects, 0 when missing.
func Rows(s Snapshot) []Row {
	rows := make([]Row, 0, len(s.Attempts))
	for _, a := range s.Attempts {
		date := a.Date
		if date == "" {
			date = DatePlaceholder
		}
		rows = append(rows, Row{
			ID:      a.ID,
			Name:    a.Name,
			Date:    date,
			Total:   a.Total,
			Summary: Summary(a, s.Subjects),
		})
	}
	return rows
}

// Summary joins "subject:score" pairs for subjects with ", ".
func Summary(a Attempt, subjects []string) string {
	parts := make([]string, len(subjects))
	for i, sub := range subjects {
		parts[i] = fmt.Sprintf("%s:%d", sub, a.Score(sub))
	}
	return strings.Join(parts, ", ")
}

// SubjectSeries returns the subject's score in every attempt, 0 when missing.
func SubjectSeries(attempts []Attempt, subject string) []int {
	out := make([]int, len(attempts))
	for i, a := range attempts {
		out[i] = a.Score(subject)
	}
	return out
}

// Mean returns the arithmetic mean of values, 0 for none.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// AttemptMean is the attempt's score summed over subjects and divided by
// the number of subjects, 0 when there are none.
func AttemptMean(a Attempt, subjects []string) float64 {
	if len(subjects) == 0 {
		return 0
	}
	total := 0
	for _, sub := range subjects {
		total += a.Score(sub)
	}
	return float64(total) / float64(len(subjects))
}

// Labels returns the attempt names in stored order.
func Labels(attempts []Attempt) []string {
	out := make([]string, len(attempts))
	for i, a := range attempts {
		out[i] = a.Name
	}
	return out
}
