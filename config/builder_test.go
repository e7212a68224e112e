package config

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jpalmerr/monthpicker"
)

// buildPicker parses yaml, builds options and constructs a picker.
func buildPicker(t *testing.T, yaml string) *monthpicker.Picker {
	t.Helper()

	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := monthpicker.New(append(opts, monthpicker.WithLogger(logger))...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(p.Dispose)
	return p
}

func TestBuildOptions_Defaults(t *testing.T) {
	p := buildPicker(t, `{}`)

	if p.Mode() != monthpicker.ModeMonthYear {
		t.Errorf("Mode() = %v, want %v", p.Mode(), monthpicker.ModeMonthYear)
	}
	if p.DisplayFormat() != "MM/YYYY" {
		t.Errorf("DisplayFormat() = %q, want %q", p.DisplayFormat(), "MM/YYYY")
	}
	if p.MonthBase() != 1 {
		t.Errorf("MonthBase() = %d, want 1", p.MonthBase())
	}
	if p.MultiSelect() {
		t.Error("MultiSelect() = true, want false")
	}
}

func TestBuildOptions_AllFields(t *testing.T) {
	p := buildPicker(t, `
mode: month-year
multi_select: true
display_format: MMM YYYY
grid_month_format: MMM
month_base: 0
year: 2024
value: Jan 2024, Mar 2024
refresh_delay: 5ms
`)

	if !p.MultiSelect() {
		t.Error("MultiSelect() = false, want true")
	}
	if p.MonthBase() != 0 {
		t.Errorf("MonthBase() = %d, want 0", p.MonthBase())
	}
	if p.CurrentYear() != 2024 {
		t.Errorf("CurrentYear() = %d, want 2024", p.CurrentYear())
	}
	if p.Value() != "Jan 2024, Mar 2024" {
		t.Errorf("Value() = %q, want %q", p.Value(), "Jan 2024, Mar 2024")
	}
	if got := p.Grid()[0].Label; got != "Jan" {
		t.Errorf("Grid()[0].Label = %q, want %q", got, "Jan")
	}
}

func TestBuildOptions_DisabledRules(t *testing.T) {
	p := buildPicker(t, `
year: 2020
disabled:
  - before: 03/2020
  - months: [12]
  - years: [2021]
`)

	var disabled []string
	for _, c := range p.Grid() {
		if c.Disabled {
			disabled = append(disabled, c.Label)
		}
	}
	want := []string{"January", "February", "December"}
	if diff := cmp.Diff(want, disabled); diff != "" {
		t.Errorf("disabled cells mismatch (-want +got):\n%s", diff)
	}

	if p.Toggle(5, 2021) {
		t.Error("Toggle(5, 2021) = true, want false for a disabled year")
	}
}

func TestBuildOptions_MonthsUseMonthBase(t *testing.T) {
	p := buildPicker(t, `
month_base: 0
year: 2024
disabled:
  - months: [0]
`)

	cells := p.Grid()
	if !cells[0].Disabled {
		t.Error("January should be disabled with month_base 0 and months [0]")
	}
	if cells[1].Disabled {
		t.Error("February should not be disabled")
	}
}

func TestBuildOptions_AfterInYearMode(t *testing.T) {
	p := buildPicker(t, `
mode: year
year: 2024
disabled:
  - after: "2025"
`)

	var disabled []string
	for _, c := range p.Grid() {
		if c.Disabled {
			disabled = append(disabled, c.Label)
		}
	}
	want := []string{"2026", "2027", "2028"}
	if diff := cmp.Diff(want, disabled); diff != "" {
		t.Errorf("disabled cells mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "display format without year in month-year mode",
			yaml:    `display_format: MMMM`,
			wantErr: "needs month and year tokens",
		},
		{
			name:    "display format without tokens",
			yaml:    `display_format: "--"`,
			wantErr: "invalid display format",
		},
		{
			name:    "grid format without month",
			yaml:    `grid_month_format: YYYY`,
			wantErr: "grid month format",
		},
		{
			name: "before bound does not match format",
			yaml: `
disabled:
  - before: January 2020
`,
			wantErr: `disabled[0]: before "January 2020" does not match display format "MM/YYYY"`,
		},
		{
			name: "after bound month out of range",
			yaml: `
disabled:
  - after: 13/2020
`,
			wantErr: "disabled[0]: after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			_, err = BuildOptions(cfg)
			if err == nil {
				t.Fatal("BuildOptions() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
