package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vietdv277/irsstat/internal/config"
)

var (
	// Global flags
	cfgFile   string
	verbosity int
	profile   string
	region    string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "irsstat",
	Short: "irsstat - post-processing for IRS wireless simulation results",
	Long: `irsstat turns the raw output of IRS/RIS simulation runs into summaries,
plot-ready column files and comparison charts.

Validation log:
  irsstat summary irs-validation-sim-100.txt          # Mean values per scenario
  irsstat summary run.txt.gz -o table                 # Styled table, compressed input
  irsstat columns irs-validation-sim-100.txt          # Write irs-validation.dat
  irsstat columns run.txt --pick                      # Choose column order interactively
  irsstat plot validation run.txt --kind bar          # Mean throughput bar chart

Hidden-node experiment:
  irsstat hidden-node hidden-node-problem/            # Average runs 1..49 and plot

Logs may be local paths, "-" for stdin, or s3://bucket/key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbosity)
		return config.Init(viper.GetViper(), cfgFile)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.GetConfigPath()+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log progress to stderr (-vv for debug)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile for s3:// locations")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region for s3:// locations")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "format", "f", "", "log line format: legacy, kv or jsonl")

	// Bind flags to viper
	_ = viper.BindPFlag("aws.profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("aws.region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func setupLogging(v int) {
	level := slog.LevelWarn
	switch {
	case v >= 2:
		level = slog.LevelDebug
	case v == 1:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig binds the command's own flags to their config keys and
// returns the effective configuration
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	for key, name := range bindings {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return config.Load(viper.GetViper())
}
