package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/scores"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List and edit subjects",
	RunE:  listSubjects,
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects in display order",
	RunE:  listSubjects,
}

var subjectsAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add one or more subjects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		for _, name := range args {
			notice, err := d.tracker.AddSubject(cmd.Context(), name)
			if err != nil {
				return err
			}
			printNotice(cmd.OutOrStdout(), notice)
		}
		return nil
	},
}

var subjectsRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a subject; recorded scores are kept",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name := args[0]
		if _, err := subjectIndex(d.tracker, name); err != nil {
			return err
		}
		ok, err := confirm(cmd, scores.RemoveSubjectPrompt(name))
		if err != nil || !ok {
			return err
		}
		if err := d.tracker.RemoveSubject(cmd.Context(), name); err != nil {
			return err
		}
		printNotice(cmd.OutOrStdout(), scores.Notice{Kind: scores.NoticeSuccess, Message: fmt.Sprintf("Removed %s.", name)})
		return nil
	},
}

func init() {
	subjectsRmCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	subjectsCmd.AddCommand(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsAddCmd)
	subjectsCmd.AddCommand(subjectsRmCmd)
}

func listSubjects(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	subjects := d.tracker.Subjects()
	if len(subjects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No subjects.")
		return nil
	}
	table := newTable(cmd.OutOrStdout(), "#", "Subject")
	for i, s := range subjects {
		appendRow(table, strconv.Itoa(i+1), s)
	}
	table.Render()
	return nil
}

func subjectIndex(t *scores.Tracker, name string) (int, error) {
	for i, s := range t.Subjects() {
		if s == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", scores.ErrUnknownSubject, name)
}
