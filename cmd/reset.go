package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/scores"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every test and restore the default subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		purge, _ := cmd.Flags().GetBool("purge")
		question := "Reset everything? All tests are deleted and the default subjects restored."
		if purge {
			question = "Erase the stored state? The next start uses the configured defaults."
		}
		ok, err := confirm(cmd, question)
		if err != nil || !ok {
			return err
		}

		if purge {
			if err := d.repo.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear state: %w", err)
			}
			d.log.Info("stored state cleared")
			printNotice(cmd.OutOrStdout(), scores.Notice{Kind: scores.NoticeSuccess, Message: "Stored state erased."})
			return nil
		}
		if err := d.tracker.Reset(cmd.Context()); err != nil {
			return err
		}
		d.log.Info("state reset")
		printNotice(cmd.OutOrStdout(), scores.Notice{Kind: scores.NoticeSuccess, Message: "All data reset."})
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().Bool("purge", false, "Remove the stored state instead of writing the defaults")
}
