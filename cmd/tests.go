package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/scores"
)

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List and edit recorded tests",
	RunE:  listTests,
}

var testsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tests",
	RunE:  listTests,
}

var testsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a test",
	Example: `  scorebook tests add --name "Midterm" --date 2026-05-12 -s Math=82 -s English=74`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name, _ := cmd.Flags().GetString("name")
		date, _ := cmd.Flags().GetString("date")
		raw, _ := cmd.Flags().GetStringArray("score")
		fields, err := parseScoreFlags(raw, d.tracker.Subjects())
		if err != nil {
			return err
		}

		notice, err := d.tracker.Submit(cmd.Context(), scores.Entry{Name: name, Date: date, Scores: fields})
		if err != nil {
			return err
		}
		printNotice(cmd.OutOrStdout(), notice)
		return nil
	},
}

var testsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded test",
	Long: "Change a recorded test. Only the given flags are changed; scores for\n" +
		"subjects not named keep their stored value and the total is recomputed.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		entry, err := d.tracker.BeginEdit(id)
		if err != nil {
			return err
		}
		defer d.tracker.CancelEdit()

		if cmd.Flags().Changed("name") {
			entry.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("date") {
			entry.Date, _ = cmd.Flags().GetString("date")
		}
		raw, _ := cmd.Flags().GetStringArray("score")
		fields, err := parseScoreFlags(raw, d.tracker.Subjects())
		if err != nil {
			return err
		}
		for sub, text := range fields {
			entry.Scores[sub] = text
		}
		// Fields left empty by the prefill would be written as 0.
		for sub, text := range entry.Scores {
			if text == "" {
				delete(entry.Scores, sub)
			}
		}

		notice, err := d.tracker.Submit(cmd.Context(), entry)
		if err != nil {
			return err
		}
		printNotice(cmd.OutOrStdout(), notice)
		return nil
	},
}

var testsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a recorded test",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		a, ok := d.tracker.Attempt(id)
		if !ok {
			return fmt.Errorf("%w: %d", scores.ErrUnknownAttempt, id)
		}
		ok, err = confirm(cmd, scores.RemoveAttemptPrompt(a))
		if err != nil || !ok {
			return err
		}
		if err := d.tracker.RemoveAttempt(cmd.Context(), id); err != nil {
			return err
		}
		printNotice(cmd.OutOrStdout(), scores.Notice{Kind: scores.NoticeSuccess, Message: fmt.Sprintf("Deleted %s.", a.Name)})
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{testsAddCmd, testsEditCmd} {
		c.Flags().StringP("name", "n", "", "Test name")
		c.Flags().StringP("date", "d", "", "Test date, free text")
		c.Flags().StringArrayP("score", "s", nil, "Score as subject=value; repeat per subject")
	}
	testsRmCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	testsCmd.AddCommand(testsListCmd)
	testsCmd.AddCommand(testsAddCmd)
	testsCmd.AddCommand(testsEditCmd)
	testsCmd.AddCommand(testsRmCmd)
}

func listTests(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	rows := scores.Rows(d.tracker.Snapshot())
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tests recorded yet.")
		return nil
	}
	table := newTable(cmd.OutOrStdout(), "ID", "Test", "Date", "Total", "Scores")
	for _, r := range rows {
		appendRow(table,
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Date,
			strconv.Itoa(r.Total),
			r.Summary,
		)
	}
	table.Render()
	return nil
}

// parseScoreFlags turns "subject=value" pairs into form field text. The
// value is kept as typed; the tracker parses it leniently.
func parseScoreFlags(raw []string, subjects []string) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	for _, kv := range raw {
		sub, value, ok := strings.Cut(kv, "=")
		sub = strings.TrimSpace(sub)
		if !ok || sub == "" {
			return nil, fmt.Errorf("score %q: want subject=value", kv)
		}
		if !slices.Contains(subjects, sub) {
			return nil, fmt.Errorf("score %q: %w: %q", kv, scores.ErrUnknownSubject, sub)
		}
		fields[sub] = value
	}
	return fields, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid test id %q", s)
	}
	return id, nil
}
