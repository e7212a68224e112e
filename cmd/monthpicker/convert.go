package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/monthpicker"
)

// convertCmd rewrites selections from one display format to another.
var convertCmd = &cobra.Command{
	Use:   "convert [value...]",
	Short: "Convert selections between display formats",
	Long: `Parse selections written in one display format and print them in another.

Arguments are joined with ", " and split into individual selections on
commas. Every selection must parse; the first failure is reported.

Example:
  monthpicker convert --from MM/YYYY --to "MMMM YYYY" "01/2024, 03/2024"
  monthpicker convert --from "MMM YY" --to YYYY-MM --month-base 1 "Jan 24"
  monthpicker convert --mode month --from MM --to MMMM 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("from", "MM/YYYY", "display format of the input")
	convertCmd.Flags().String("to", "MMMM YYYY", "display format of the output")
	convertCmd.Flags().String("mode", "month-year", "picker mode: month-year, month or year")
	convertCmd.Flags().Int("month-base", 1, "external month numbering origin")
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	modeFlag, _ := cmd.Flags().GetString("mode")
	base, _ := cmd.Flags().GetInt("month-base")

	mode, err := monthpicker.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	newPicker := func(layout string) (*monthpicker.Picker, error) {
		return monthpicker.New(
			monthpicker.WithMode(mode),
			monthpicker.WithDisplayFormat(layout),
			monthpicker.WithMonthBase(base),
			monthpicker.WithLogger(logger),
		)
	}

	in, err := newPicker(from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	defer in.Dispose()

	out, err := newPicker(to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	defer out.Dispose()

	var selections []monthpicker.Selection
	for _, part := range strings.Split(strings.Join(args, ", "), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s, err := in.Parse(part)
		if err != nil {
			return fmt.Errorf("cannot parse %q as %q: %w", part, in.DisplayFormat(), err)
		}
		selections = append(selections, s)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.FormatAll(selections))
	return nil
}
