package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/app"
	"github.com/abhisek/scorebook/internal/charts"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive score tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	d.log.Info("starting tui", "subjects", len(d.tracker.Subjects()), "tests", len(d.tracker.Attempts()))
	return app.Run(cmd.Context(), app.Options{
		Tracker: d.tracker,
		Charts:  charts.NewRegistry(),
		Logger:  d.log,
	})
}
