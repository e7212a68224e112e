package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_MinimalConfig(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Title != "Month Picker" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Month Picker")
	}
	if cfg.Mode != "month-year" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "month-year")
	}
	if cfg.EffectiveMonthBase() != 1 {
		t.Errorf("EffectiveMonthBase() = %d, want 1", cfg.EffectiveMonthBase())
	}
	if cfg.RefreshDelay != 0 {
		t.Errorf("RefreshDelay = %v, want 0", cfg.RefreshDelay.Duration())
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Billing period
port: 9090
mode: month
multi_select: true
display_format: MMMM YYYY
grid_month_format: MMM
month_base: 0
year: 2024
value: January, March
refresh_delay: 32ms
disabled:
  - months: [0, 11]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Billing period" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Billing period")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Mode != "month" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "month")
	}
	if !cfg.MultiSelect {
		t.Error("MultiSelect = false, want true")
	}
	if cfg.DisplayFormat != "MMMM YYYY" {
		t.Errorf("DisplayFormat = %q, want %q", cfg.DisplayFormat, "MMMM YYYY")
	}
	if cfg.GridMonthFormat != "MMM" {
		t.Errorf("GridMonthFormat = %q, want %q", cfg.GridMonthFormat, "MMM")
	}
	if cfg.EffectiveMonthBase() != 0 {
		t.Errorf("EffectiveMonthBase() = %d, want 0", cfg.EffectiveMonthBase())
	}
	if cfg.Year != 2024 {
		t.Errorf("Year = %d, want 2024", cfg.Year)
	}
	if cfg.Value != "January, March" {
		t.Errorf("Value = %q, want %q", cfg.Value, "January, March")
	}
	if cfg.RefreshDelay.Duration() != 32*time.Millisecond {
		t.Errorf("RefreshDelay = %v, want 32ms", cfg.RefreshDelay.Duration())
	}
	if len(cfg.Disabled) != 1 || len(cfg.Disabled[0].Months) != 2 {
		t.Errorf("Disabled = %+v, want one months rule", cfg.Disabled)
	}
}

func TestParse_DisabledRules(t *testing.T) {
	yaml := `
disabled:
  - before: 01/2020
  - after: 12/2030
  - months: [1, 12]
  - years: [2025]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cfg.Disabled) != 4 {
		t.Fatalf("len(Disabled) = %d, want 4", len(cfg.Disabled))
	}
	if cfg.Disabled[0].Before != "01/2020" {
		t.Errorf("Disabled[0].Before = %q, want %q", cfg.Disabled[0].Before, "01/2020")
	}
	if cfg.Disabled[1].After != "12/2030" {
		t.Errorf("Disabled[1].After = %q, want %q", cfg.Disabled[1].After, "12/2030")
	}
	if cfg.Disabled[3].Years[0] != 2025 {
		t.Errorf("Disabled[3].Years = %v, want [2025]", cfg.Disabled[3].Years)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	t.Setenv("TEST_PICKER_VALUE", "03/2024")
	t.Setenv("TEST_PICKER_TITLE", "Reporting")

	yaml := `
title: ${TEST_PICKER_TITLE}
value: ${TEST_PICKER_VALUE}
disabled:
  - before: ${TEST_PICKER_VALUE}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Reporting" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Reporting")
	}
	if cfg.Value != "03/2024" {
		t.Errorf("Value = %q, want %q", cfg.Value, "03/2024")
	}
	if cfg.Disabled[0].Before != "03/2024" {
		t.Errorf("Disabled[0].Before = %q, want %q", cfg.Disabled[0].Before, "03/2024")
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	yaml := `
value: ${TEST_PICKER_UNSET_VAR:-01/2024}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Value != "01/2024" {
		t.Errorf("Value = %q, want %q", cfg.Value, "01/2024")
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	yaml := `
value: ${TEST_PICKER_DEFINITELY_UNSET}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "TEST_PICKER_DEFINITELY_UNSET") {
		t.Errorf("error = %q, want it to name the variable", err.Error())
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown mode",
			yaml:    `mode: decade`,
			wantErr: "mode",
		},
		{
			name:    "negative port",
			yaml:    `port: -1`,
			wantErr: "port must be between",
		},
		{
			name:    "port too large",
			yaml:    `port: 70000`,
			wantErr: "port must be between",
		},
		{
			name:    "negative month base",
			yaml:    `month_base: -1`,
			wantErr: "month_base",
		},
		{
			name:    "month base too large",
			yaml:    `month_base: 100`,
			wantErr: "month_base",
		},
		{
			name:    "year beyond four digits",
			yaml:    `year: 10000`,
			wantErr: "year must be between 0 and 9999",
		},
		{
			name:    "negative year",
			yaml:    `year: -5`,
			wantErr: "year must be between 0 and 9999",
		},
		{
			name:    "negative refresh delay",
			yaml:    `refresh_delay: -5ms`,
			wantErr: "refresh_delay cannot be negative",
		},
		{
			name:    "refresh delay too long",
			yaml:    `refresh_delay: 2s`,
			wantErr: "refresh_delay must not exceed",
		},
		{
			name: "empty rule",
			yaml: `
disabled:
  - {}
`,
			wantErr: "disabled[0]: exactly one of",
		},
		{
			name: "rule with two kinds",
			yaml: `
disabled:
  - before: 01/2020
    years: [2024]
`,
			wantErr: "disabled[0]: exactly one of",
		},
		{
			name: "month out of range for base",
			yaml: `
disabled:
  - months: [0]
`,
			wantErr: "disabled[0]: month 0 out of range 1-12",
		},
		{
			name: "month out of range for zero base",
			yaml: `
month_base: 0
disabled:
  - months: [12]
`,
			wantErr: "disabled[0]: month 12 out of range 0-11",
		},
		{
			name: "months rule in year mode",
			yaml: `
mode: year
disabled:
  - months: [1]
`,
			wantErr: "months rules do not apply",
		},
		{
			name: "years rule in month mode",
			yaml: `
mode: month
disabled:
  - years: [2024]
`,
			wantErr: "years rules do not apply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("mode: [unclosed"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "failed to parse YAML")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("refresh_delay: soon"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "invalid duration")
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"16ms", 16 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"0s", 0, false},
		{"fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg, err := Parse([]byte("refresh_delay: " + tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.RefreshDelay.Duration() != tt.want {
				t.Errorf("RefreshDelay = %v, want %v", cfg.RefreshDelay.Duration(), tt.want)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_PICKER_SET", "value")
	t.Setenv("TEST_PICKER_EMPTY", "")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "plain", false},
		{"${TEST_PICKER_SET}", "value", false},
		{"a-${TEST_PICKER_SET}-b", "a-value-b", false},
		{"${TEST_PICKER_EMPTY}", "", false},
		{"${TEST_PICKER_EMPTY:-fallback}", "", false},
		{"${TEST_PICKER_NOPE:-fallback}", "fallback", false},
		{"${TEST_PICKER_NOPE:-}", "", false},
		{"${TEST_PICKER_NOPE}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := expandEnvVars(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandEnvVars(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.yaml")
	if err := os.WriteFile(path, []byte("title: From File\nport: 9191\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Title != "From File" || cfg.Port != 9191 {
		t.Errorf("Load() = {Title: %q, Port: %d}, want {From File, 9191}", cfg.Title, cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "failed to read config file")
	}
}
