package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/termtext"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show score statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		snap := d.tracker.Snapshot()
		out := cmd.OutOrStdout()
		if len(snap.Attempts) == 0 {
			fmt.Fprintln(out, "No tests recorded yet.")
			return nil
		}
		in := scores.Analyze(snap)
		label := func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

		printHeading(out, "Subjects (lowest average first)")
		table := newTable(out, "Subject", "Average", "Min", "Max", "Spread")
		for _, st := range in.Subjects {
			appendRow(table,
				st.Subject,
				label(st.Mean),
				strconv.Itoa(st.Min),
				strconv.Itoa(st.Max),
				strconv.Itoa(st.Spread()),
			)
		}
		table.Render()

		d5 := in.Distribution
		printHeading(out, fmt.Sprintf("\nScore distribution (%d scores)", in.Count))
		table = newTable(out, "Min", "Q1", "Median", "Q3", "Max")
		appendRow(table, label(d5.Min), label(d5.Q1), label(d5.Median), label(d5.Q3), label(d5.Max))
		table.Render()

		printHeading(out, "\nTotals")
		fmt.Fprintf(out, "Tests: %d\nMean total: %s of %d\n", len(in.Totals), label(in.TotalMean), in.TotalMax)
		if l := in.Latest; l != nil {
			fmt.Fprintf(out, "Latest: %s, total %d\n", termtext.Sanitize(l.Name), l.Total)
		}
		return nil
	},
}
