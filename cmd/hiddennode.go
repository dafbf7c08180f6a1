package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/internal/hiddennode"
	"github.com/vietdv277/irsstat/internal/plot"
	"github.com/vietdv277/irsstat/internal/source"
)

var (
	hiddenNodeCSV    string
	hiddenNodeNoPlot bool
)

var hiddenNodeCmd = &cobra.Command{
	Use:     "hidden-node <dir>",
	Aliases: []string{"hn"},
	Short:   "Average the hidden-node runs and chart throughput over time",
	Long: `Read the per-run CSVs of the hidden-node experiment, average the throughput
of both transmitters per (Time, Scenario) across runs, write the averaged table
and chart Node A (solid) and Node C (dashed) per scenario.

Examples:
  irsstat hidden-node hidden-node-problem/
  irsstat hidden-node results/ --first 1 --last 10 --plot-format png
  irsstat hidden-node s3://sim-results/hidden-node/ --csv averaged.csv --no-plot`,
	Args: cobra.ExactArgs(1),
	RunE: runHiddenNode,
}

func init() {
	rootCmd.AddCommand(hiddenNodeCmd)

	addPlotFlags(hiddenNodeCmd)
	hiddenNodeCmd.Flags().Int("first", 0, "first run number")
	hiddenNodeCmd.Flags().Int("last", 0, "last run number")
	hiddenNodeCmd.Flags().String("pattern", "", "run file name pattern, e.g. hidden-node-problem_%d.csv")
	hiddenNodeCmd.Flags().String("out", "", "chart output; the plot format is appended when there is no extension")
	hiddenNodeCmd.Flags().StringVar(&hiddenNodeCSV, "csv", "", "write the averaged table to this file or s3:// location")
	hiddenNodeCmd.Flags().BoolVar(&hiddenNodeNoPlot, "no-plot", false, "skip the chart")
}

func runHiddenNode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, withBindings(plotFlagBindings, map[string]string{
		"hidden_node.first_run": "first",
		"hidden_node.last_run":  "last",
		"hidden_node.pattern":   "pattern",
		"hidden_node.out":       "out",
	}))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	rs := hiddennode.RunSet{
		Dir:     args[0],
		Pattern: cfg.HiddenNode.Pattern,
		First:   cfg.HiddenNode.FirstRun,
		Last:    cfg.HiddenNode.LastRun,
	}

	var chartPath string
	if !hiddenNodeNoPlot {
		chartPath = plot.FromConfig(cfg.Plot).OutputPath(cfg.HiddenNode.Out)
	}

	opener, err := newOpener(ctx, cfg, args[0], hiddenNodeCSV, chartPath)
	if err != nil {
		return err
	}

	n, err := processHiddenNode(ctx, opener, rs, cfg, hiddenNodeCSV, chartPath)
	if err != nil {
		return err
	}

	fmt.Printf("Averaged %d points over runs %d..%d\n", n, rs.First, rs.Last)
	if hiddenNodeCSV != "" {
		fmt.Printf("Wrote %s\n", hiddenNodeCSV)
	}
	if chartPath != "" {
		fmt.Printf("Wrote %s\n", chartPath)
	}
	return nil
}

// processHiddenNode loads and averages the runs, then writes the table to
// csvOut and the chart to chartPath when they are set
func processHiddenNode(ctx context.Context, o *source.Opener, rs hiddennode.RunSet, cfg *config.Config, csvOut, chartPath string) (int, error) {
	rows, err := hiddennode.LoadRuns(ctx, o, rs)
	if err != nil {
		return 0, err
	}
	points := hiddennode.Average(rows)

	if csvOut != "" {
		err := o.Write(ctx, csvOut, func(w io.Writer) error {
			return hiddennode.WriteCSV(w, points)
		})
		if err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", csvOut, err)
		}
	}

	if chartPath == "" {
		return len(points), nil
	}

	chart := plot.LineChart{
		Title:  "Hidden node problem",
		XLabel: "Time (s)",
		YLabel: "Throughput (Mbps)",
		XMin:   cfg.HiddenNode.XMin,
		XMax:   cfg.HiddenNode.XMax,
	}
	for _, s := range hiddennode.Split(points, cfg.HiddenNode.Rename) {
		chart.Series = append(chart.Series,
			plot.Series{Label: "Node A - " + s.Scenario, Scenario: s.Scenario, X: s.Time, Y: s.Tx1},
			plot.Series{Label: "Node C - " + s.Scenario, Scenario: s.Scenario, X: s.Time, Y: s.Tx2, Dashed: true},
		)
	}
	pc := plot.FromConfig(cfg.Plot)
	pc.Store = storeWith(ctx, o)
	if err := plot.RenderLines(pc, chart, chartPath); err != nil {
		return 0, err
	}
	return len(points), nil
}
