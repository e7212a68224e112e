package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a monthpicker configuration file without starting the server.

This command parses the YAML, expands environment variables, checks the
display formats and parses the initial value and rule bounds with them.
It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  monthpicker validate -c config.yaml
  monthpicker validate --config /etc/monthpicker/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadPicker(cmd, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}
	defer p.Dispose()

	value := p.Value()
	if value == "" {
		value = "(empty)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:           %d\n", cfg.Port)
	fmt.Fprintf(out, "  Mode:           %s\n", p.Mode())
	fmt.Fprintf(out, "  Multi-select:   %t\n", p.MultiSelect())
	fmt.Fprintf(out, "  Display format: %s\n", p.DisplayFormat())
	fmt.Fprintf(out, "  Month base:     %d\n", p.MonthBase())
	fmt.Fprintf(out, "  Disabled rules: %d\n", len(cfg.Disabled))
	fmt.Fprintf(out, "  Initial value:  %s\n", value)

	return nil
}
