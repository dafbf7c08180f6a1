package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/irsstat/internal/aggregate"
	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/internal/plot"
)

var (
	plotKind string
	plotOut  string
)

// plotFlagBindings maps plot config keys to the shared rendering flags
var plotFlagBindings = map[string]string{
	"plot.format":    "plot-format",
	"plot.font_size": "font-size",
	"plot.width":     "width",
	"plot.height":    "height",
	"plot.color_map": "color-map",
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render comparison charts",
	Long:  `Render charts from simulation results. Chart styling comes from the plot section of the config file and may be overridden with flags.`,
}

var plotValidationCmd = &cobra.Command{
	Use:   "validation <log>",
	Short: "Chart throughput per scenario from a validation log",
	Long: `Chart the validation log. The line chart draws the raw throughput of each
configured scenario per run; the bar chart draws the mean throughput of every
scenario in the log.

Examples:
  irsstat plot validation irs-validation-sim-100.txt
  irsstat plot validation run.txt --kind bar --plot-format svg --out means`,
	Args: cobra.ExactArgs(1),
	RunE: runPlotValidation,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(plotValidationCmd)

	addPlotFlags(plotValidationCmd)
	plotValidationCmd.Flags().StringVar(&plotKind, "kind", "line", "chart kind: line or bar")
	plotValidationCmd.Flags().StringVar(&plotOut, "out", "irs-validation", "output file; the plot format is appended when there is no extension")
	plotValidationCmd.Flags().StringSlice("scenarios", nil, "scenario lines, in order")
}

func addPlotFlags(cmd *cobra.Command) {
	d := config.Default().Plot
	cmd.Flags().String("plot-format", d.Format, "image format: "+fmt.Sprint(plot.Formats))
	cmd.Flags().Float64("font-size", d.FontSize, "font size in points")
	cmd.Flags().Float64("width", d.Width, "figure width in inches")
	cmd.Flags().Float64("height", d.Height, "figure height in inches")
	cmd.Flags().String("color-map", d.ColorMap, "color map: "+fmt.Sprint(plot.ColorMaps))
}

func withBindings(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func runPlotValidation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, withBindings(plotFlagBindings, map[string]string{"scenarios": "scenarios"}))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pc := plot.FromConfig(cfg.Plot)
	path := pc.OutputPath(plotOut)

	opener, err := newOpener(ctx, cfg, args[0], path)
	if err != nil {
		return err
	}
	pc.Store = storeWith(ctx, opener)

	b, err := loadBuckets(ctx, opener, args[0], cfg.Format)
	if err != nil {
		return err
	}

	switch plotKind {
	case "line":
		rows, err := aggregate.ExportColumns(b, cfg.Scenarios)
		if err != nil {
			return err
		}
		if err := plot.RenderValidation(pc, cfg.Scenarios, rows, path); err != nil {
			return err
		}
	case "bar":
		sums, err := aggregate.Summarize(b)
		if err != nil {
			return err
		}
		if err := plot.RenderMeans(pc, sums, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown chart kind %q (want line or bar)", plotKind)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
