package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/irsstat/internal/aws"
	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective configuration and AWS authentication status",
	Long: `Display the configuration irsstat will use and, when an AWS profile or
region is configured for s3:// locations, verify the credentials.

Examples:
  irsstat status
  irsstat status -p research`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("Config:   %s\n", used)
	} else {
		fmt.Printf("Config:   %s\n", ui.MutedStyle.Render("(defaults, no file at "+config.GetConfigPath()+")"))
	}
	fmt.Printf("Format:   %s\n", cfg.Format)
	fmt.Printf("Output:   %s\n", cfg.Output)
	fmt.Printf("Columns:  %s -> %s\n", ui.ScenarioStyle.Render(strings.Join(cfg.Scenarios, " ")), cfg.ColumnsOut)
	fmt.Printf("Plot:     %s, %.1fin x %.1fin, %gpt, %s colours\n",
		cfg.Plot.Format, cfg.Plot.Width, cfg.Plot.Height, cfg.Plot.FontSize, cfg.Plot.ColorMap)
	fmt.Printf("Runs:     %d..%d (%s)\n", cfg.HiddenNode.FirstRun, cfg.HiddenNode.LastRun, cfg.HiddenNode.Pattern)
	fmt.Println()

	if cfg.AWS.Profile == "" && cfg.AWS.Region == "" && cfg.AWS.Endpoint == "" {
		fmt.Println("AWS:      " + ui.MutedStyle.Render("(not configured, s3:// locations use the default chain)"))
		return nil
	}
	displayAWSStatus(cmd, cfg.AWS)
	return nil
}

func displayAWSStatus(cmd *cobra.Command, ac config.AWSConfig) {
	if ac.Profile != "" {
		fmt.Printf("Profile:  %s\n", ac.Profile)
	}
	if ac.Region != "" {
		fmt.Printf("Region:   %s\n", ac.Region)
	}
	if ac.Endpoint != "" {
		fmt.Printf("Endpoint: %s\n", ac.Endpoint)
	}

	fmt.Print("Auth:     ")
	client, err := aws.NewClient(cmd.Context(), aws.WithProfile(ac.Profile), aws.WithRegion(ac.Region), aws.WithEndpoint(ac.Endpoint))
	if err == nil {
		var identity *aws.CallerIdentity
		if identity, err = client.GetCallerIdentity(cmd.Context()); err == nil {
			fmt.Println(ui.GoodStyle.Render("✓ Authenticated"))
			fmt.Printf("Account:  %s\n", identity.Account)
			fmt.Printf("User:     %s\n", identity.UserID)
			if identity.Arn != "" {
				fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
			}
			return
		}
	}

	fmt.Println(ui.BadStyle.Render("✗ Not authenticated"))
	fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
	if ac.Profile != "" {
		fmt.Println()
		fmt.Println("To authenticate:")
		fmt.Printf("  aws sso login --profile %s\n", ac.Profile)
	}
}
