package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/monthpicker"
)

// renderCmd prints the picker grid to the terminal.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the picker grid",
	Long: `Print the picker grid for a configuration, the way the popup would show it.

Selected cells are shown in [brackets] and highlighted; disabled cells are
shown in (parentheses) and dimmed. Without --config the default picker is
used.

Example:
  monthpicker render -c config.yaml
  monthpicker render -c config.yaml --year 2025 --value "03/2025"`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("config", "c", "", "path to config file")
	renderCmd.Flags().Int("year", 0, "year to display (overrides config)")
	renderCmd.Flags().String("value", "", "selection in the display format (overrides config)")
	renderCmd.Flags().Bool("no-color", false, "disable colored output")
}

func runRender(cmd *cobra.Command, args []string) error {
	var opts []monthpicker.Option
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		_, loaded, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		opts = loaded
	}

	// later options override the config
	if cmd.Flags().Changed("year") {
		year, _ := cmd.Flags().GetInt("year")
		opts = append(opts, monthpicker.WithYear(year))
	}
	if cmd.Flags().Changed("value") {
		value, _ := cmd.Flags().GetString("value")
		opts = append(opts, monthpicker.WithValue(value))
	}
	opts = append(opts, monthpicker.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	p, err := monthpicker.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create picker: %w", err)
	}
	defer p.Dispose()

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	renderGrid(cmd.OutOrStdout(), p)
	return nil
}

// renderGrid writes the grid as fixed-width columns.
func renderGrid(w io.Writer, p *monthpicker.Picker) {
	selected := color.New(color.FgCyan, color.Bold)
	disabled := color.New(color.Faint)

	cells := p.Grid()
	labels := make([]string, len(cells))
	width := 0
	for i, c := range cells {
		switch {
		case c.Selected:
			labels[i] = "[" + c.Label + "]"
		case c.Disabled:
			labels[i] = "(" + c.Label + ")"
		default:
			labels[i] = " " + c.Label + " "
		}
		width = max(width, runewidth.StringWidth(labels[i]))
	}

	columns := p.GridColumns()
	total := columns*(width+1) - 1

	switch p.Mode() {
	case monthpicker.ModeMonthYear:
		fmt.Fprintln(w, center(fmt.Sprintf("< %d >", p.CurrentYear()), total))
	case monthpicker.ModeYear:
		first := p.CurrentYear()
		fmt.Fprintln(w, center(fmt.Sprintf("< %d-%d >", first, first+len(cells)-1), total))
	}

	for row := 0; row*columns < len(cells); row++ {
		var line strings.Builder
		for col := 0; col < columns; col++ {
			i := row*columns + col
			if i >= len(cells) {
				break
			}
			if col > 0 {
				line.WriteByte(' ')
			}
			text := runewidth.FillRight(labels[i], width)
			switch {
			case cells[i].Selected:
				text = selected.Sprint(text)
			case cells[i].Disabled:
				text = disabled.Sprint(text)
			}
			line.WriteString(text)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	value := p.Value()
	if value == "" {
		value = "(empty)"
	}
	fmt.Fprintf(w, "\nValue: %s\n", value)
}

// center pads s on the left so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
