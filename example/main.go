package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/monthpicker"
	"github.com/jpalmerr/monthpicker/dashboard"
	"github.com/jpalmerr/monthpicker/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	now := time.Now()

	// reporting periods: nothing in the future, nothing before 2020, no Decembers
	picker, err := monthpicker.New(
		monthpicker.WithMultiSelect(true),
		monthpicker.WithDisplayFormat("MMM YYYY"),
		monthpicker.WithGridMonthFormat("MMM"),
		monthpicker.WithDisabledRule(monthpicker.AnyRule(
			monthpicker.DisableBefore(monthpicker.MonthYear(0, 2020)),
			monthpicker.DisableAfter(monthpicker.MonthYear(int(now.Month())-1, now.Year())),
			monthpicker.DisableMonths(11),
		)),
		monthpicker.WithValue(fmt.Sprintf("Jan %d", now.Year())),
		monthpicker.WithOnSelect(func(s monthpicker.Selection) {
			logger.Info("picked", "month", s.Month+1, "year", s.Year)
		}),
		monthpicker.WithVisibilityChanged(func(visible bool) {
			logger.Info("popup visibility changed", "visible", visible)
		}),
		monthpicker.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create picker", "error", err)
		os.Exit(1)
	}
	defer picker.Dispose()

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   monthpicker Demo                                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Multi-select, \"MMM YYYY\", Jan 2020 to this month,   ║")
	fmt.Println("  ║   Decembers disabled                                  ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(picker, 8080, dashboard.Assets, "Reporting periods", logger)
	if err := srv.Start(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	<-srv.Done()
}
