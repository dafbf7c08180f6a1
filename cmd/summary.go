package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/irsstat/internal/aggregate"
	"github.com/vietdv277/irsstat/internal/ui"
	pkgtypes "github.com/vietdv277/irsstat/pkg/types"
)

var summaryScenarios []string

var summaryCmd = &cobra.Command{
	Use:   "summary <log>",
	Short: "Print mean throughput, SNR, data rate and success rate per scenario",
	Long: `Parse a simulation log and print the mean of every measurement per scenario.
Scenarios are listed in the order they first appear in the log unless
--scenarios selects and orders them.

Examples:
  irsstat summary irs-validation-sim-100.txt
  irsstat summary irs-validation-sim-100.txt -o table
  irsstat summary s3://sim-results/irs/validation.txt.zst -o yaml
  irsstat summary run.txt --scenarios LOS,IRS`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringP("output", "o", "", "output style: text, table or yaml")
	summaryCmd.Flags().StringSliceVar(&summaryScenarios, "scenarios", nil, "only these scenarios, in this order")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{"output": "output"})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opener, err := newOpener(ctx, cfg, args[0])
	if err != nil {
		return err
	}

	b, err := loadBuckets(ctx, opener, args[0], cfg.Format)
	if err != nil {
		return err
	}
	if len(summaryScenarios) > 0 {
		b = b.Select(summaryScenarios)
	}

	sums, err := aggregate.Summarize(b)
	if err != nil {
		return err
	}

	return writeSummary(os.Stdout, sums, cfg.Output)
}

func writeSummary(w io.Writer, sums []pkgtypes.Summary, style string) error {
	switch style {
	case "", "text":
		for _, s := range sums {
			fmt.Fprintln(w, aggregate.FormatSummary(s))
		}
	case "table":
		ui.PrintSummaryTable(w, sums)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sums); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output style %q (want text, table or yaml)", style)
	}
	return nil
}
