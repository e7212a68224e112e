package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/monthpicker"
	"github.com/jpalmerr/monthpicker/config"
	"github.com/jpalmerr/monthpicker/dashboard"
	"github.com/jpalmerr/monthpicker/internal/server"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// loadOptions loads the config named by the --config flag and converts it
// into picker options.
func loadOptions(cmd *cobra.Command) (*config.Config, []monthpicker.Option, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, opts, nil
}

// loadPicker builds a picker from the config named by the --config flag.
func loadPicker(cmd *cobra.Command, logger *slog.Logger) (*config.Config, *monthpicker.Picker, error) {
	cfg, opts, err := loadOptions(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts,
		monthpicker.WithLogger(logger),
		monthpicker.WithVisibilityChanged(func(visible bool) {
			logger.Debug("popup visibility changed", "visible", visible)
		}),
		monthpicker.WithPositionChanged(func(p monthpicker.Placement) {
			logger.Debug("popup repositioned", "top", p.Top, "left", p.Left, "above", p.Above)
		}),
	)
	p, err := monthpicker.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create picker: %w", err)
	}
	return cfg, p, nil
}

// serveCmd starts the demo host.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo server",
	Long: `Start the monthpicker demo server.

The server will:
  - Load configuration from the specified YAML file
  - Create one picker instance from it
  - Serve the demo page and JSON API on the configured port

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  monthpicker serve -c config.yaml
  monthpicker serve --config /etc/monthpicker/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, p, err := loadPicker(cmd, logger)
	if err != nil {
		return err
	}
	defer p.Dispose()

	logger.Info("config loaded",
		"mode", p.Mode(),
		"display_format", p.DisplayFormat(),
		"multi_select", p.MultiSelect(),
		"disabled_rules", len(cfg.Disabled),
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(p, cfg.Port, dashboard.Assets, cfg.Title, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	<-ctx.Done()

	// signal received, wait for graceful shutdown with timeout
	select {
	case <-srv.Done():
		logger.Info("shutdown complete")
	case <-time.After(shutdownTimeout):
		logger.Warn("shutdown timed out",
			"timeout", shutdownTimeout.String(),
			"action", "forcing exit",
		)
	}
	return nil
}
