package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/scores"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every chart as an image file",
	Long: "Write the per-subject line charts, the per-test pie charts, the overview\n" +
		"and the insight bar charts to a directory, one file per chart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		dir := d.cfg.ExportDir
		if cmd.Flags().Changed("dir") {
			dir, _ = cmd.Flags().GetString("dir")
		}
		name, _ := cmd.Flags().GetString("format")
		format, err := charts.ParseFormat(name)
		if err != nil {
			return err
		}
		size := charts.Size{Width: d.cfg.Charts.Width, Height: d.cfg.Charts.Height}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}

		reg := charts.NewRegistry()
		written, skipped := 0, 0
		for _, spec := range exportSpecs(d.tracker.Snapshot()) {
			path := filepath.Join(dir, exportFileName(spec.Surface, format))
			err := charts.With(reg, spec, func(h *charts.Handle) error {
				return writeChart(path, h.Spec, size, format)
			})
			switch {
			case errors.Is(err, charts.ErrEmptyChart):
				d.log.Debug("skipped empty chart", "surface", spec.Surface)
				skipped++
				continue
			case err != nil:
				return fmt.Errorf("export %s: %w", spec.Surface, err)
			}
			d.log.Debug("chart exported", "path", path)
			written++
		}

		printNotice(cmd.OutOrStdout(), scores.Notice{
			Kind:    scores.NoticeSuccess,
			Message: fmt.Sprintf("Wrote %d charts to %s (%d empty skipped).", written, dir, skipped),
		})
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "", "Output directory (default from config, \"charts\")")
	exportCmd.Flags().String("format", string(charts.FormatPNG), "Image format: png or svg")
}

// exportSpecs lists every chart the TUI can show. Line colours come from
// the palette so repeated exports match.
func exportSpecs(s scores.Snapshot) []charts.Spec {
	colors := charts.FixedColors()
	specs := charts.SubjectLines(s, colors)
	if len(s.Subjects) > 0 {
		specs = append(specs, charts.Combined(s, colors), charts.Totals(s))
	}
	specs = append(specs, charts.Pies(s)...)
	if len(s.Attempts) > 0 {
		in := scores.Analyze(s)
		specs = append(specs, charts.Averages(in), charts.Spread(in))
	}
	return specs
}

// exportFileName escapes the surface id, which can carry a subject name,
// into a single path segment.
func exportFileName(surface string, format charts.Format) string {
	return url.PathEscape(surface) + format.Ext()
}

// writeChart renders into path, removing the file again if rendering fails.
func writeChart(path string, spec charts.Spec, size charts.Size, format charts.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	var renderErr error
	switch format {
	case charts.FormatSVG:
		renderErr = charts.RenderSVG(f, spec, size)
	default:
		renderErr = charts.RenderPNG(f, spec, size)
	}
	closeErr := f.Close()
	if renderErr != nil {
		os.Remove(path)
		return renderErr
	}
	return closeErr
}
