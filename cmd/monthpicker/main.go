// Package main is the entry point for the monthpicker CLI.
//
// monthpicker can be used as a library (SDK) or through this CLI, which
// serves a demo picker page from a YAML configuration and exposes the
// format engine and positioner for scripting.
//
// Usage:
//
//	monthpicker serve -c config.yaml           # Start the demo host
//	monthpicker validate -c config.yaml        # Validate configuration
//	monthpicker render -c config.yaml          # Print the picker grid
//	monthpicker convert --from MM/YYYY --to "MMMM YYYY" 01/2024
//	monthpicker place --anchor 500,10,100,20 --popup 200,150 --viewport 800,600
//	monthpicker version                        # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "monthpicker",
	Short: "A month/year picker engine and demo host",
	Long: `monthpicker formats, parses and selects months and years, and places a
picker popup next to its anchor element.

Quick start:
  1. Create a config file (monthpicker.yaml)
  2. Run: monthpicker serve -c monthpicker.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  mode: month-year
  multi_select: true
  display_format: MMM YYYY
  disabled:
    - before: Jan 2020`,
	SilenceUsage: true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this monthpicker binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "monthpicker %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
