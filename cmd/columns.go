package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vietdv277/irsstat/internal/aggregate"
	"github.com/vietdv277/irsstat/internal/source"
	"github.com/vietdv277/irsstat/internal/ui"
)

var columnsPick bool

var columnsCmd = &cobra.Command{
	Use:   "columns <log>",
	Short: "Export aligned raw throughput columns for external plotting",
	Long: `Write the raw throughput of each scenario as one column, one row per run.
Every selected scenario must have the same number of measurements; otherwise
nothing is written.

Examples:
  irsstat columns irs-validation-sim-100.txt                       # default columns and file
  irsstat columns run.txt --scenarios LOS,IRS,MultiIRS --out a.dat # custom layout
  irsstat columns run.txt --pick                                   # interactive column order
  irsstat columns run.txt --out s3://sim-results/irs/validation.dat`,
	Args: cobra.ExactArgs(1),
	RunE: runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)

	columnsCmd.Flags().StringSlice("scenarios", nil, "scenario columns, in order")
	columnsCmd.Flags().String("out", "", "output file or s3:// location")
	columnsCmd.Flags().BoolVar(&columnsPick, "pick", false, "choose the columns interactively")
}

func runColumns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"scenarios":   "scenarios",
		"columns_out": "out",
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opener, err := newOpener(ctx, cfg, args[0], cfg.ColumnsOut)
	if err != nil {
		return err
	}

	b, err := loadBuckets(ctx, opener, args[0], cfg.Format)
	if err != nil {
		return err
	}

	order := cfg.Scenarios
	if columnsPick {
		if order, err = ui.SelectScenarioOrder(b.Scenarios()); err != nil {
			return err
		}
	}

	n, err := exportColumns(ctx, opener, b, order, cfg.ColumnsOut)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows x %d columns to %s\n", n, len(order), cfg.ColumnsOut)
	return nil
}

// exportColumns lines up the scenario columns and writes them to out. The
// output is only created once the export succeeded.
func exportColumns(ctx context.Context, o *source.Opener, b *aggregate.Buckets, order []string, out string) (int, error) {
	rows, err := aggregate.ExportColumns(b, order)
	if err != nil {
		return 0, err
	}

	err = o.Write(ctx, out, func(w io.Writer) error {
		return aggregate.WriteColumns(w, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return len(rows), nil
}
