package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		writeVersion(os.Stdout, info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// writeVersion prints the release stamp, falling back to the VCS revision
// recorded by the Go toolchain when Commit was not set at link time
func writeVersion(w io.Writer, info *debug.BuildInfo) {
	commit := Commit
	goVersion := "unknown"
	if info != nil {
		goVersion = info.GoVersion
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && commit == "none" {
				commit = s.Value
			}
		}
	}

	fmt.Fprintln(w, "irsstat")
	fmt.Fprintf(w, "  Version:    %s\n", Version)
	fmt.Fprintf(w, "  Commit:     %s\n", commit)
	fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", goVersion)
}
