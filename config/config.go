// Package config provides YAML configuration parsing for monthpicker.
//
// This package enables running the picker demo host as a standalone binary
// with a configuration file, as an alternative to the programmatic SDK
// approach.
//
// Example configuration:
//
//	title: Billing period
//	port: 8080
//	mode: month-year
//	multi_select: true
//	display_format: MMM YYYY
//	month_base: 1
//	year: 2024
//	value: ${BILLING_MONTHS:-Jan 2024}
//
//	disabled:
//	  - before: Jan 2020
//	  - months: [12]
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/monthpicker"
)

const (
	defaultTitle     = "Month Picker"
	defaultPort      = 8080
	defaultMonthBase = 1

	// maxRefreshDelay mirrors the SDK's upper bound for WithRefreshDelay.
	maxRefreshDelay = time.Second
)

// Config is the root configuration structure for monthpicker.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Month Picker" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// Mode is "month-year" (default), "month" or "year".
	Mode string `yaml:"mode"`

	// MultiSelect enables multi-select mode.
	MultiSelect bool `yaml:"multi_select"`

	// DisplayFormat is the layout of the host's text value, e.g. "MM/YYYY".
	// Empty uses the SDK default.
	DisplayFormat string `yaml:"display_format"`

	// GridMonthFormat is the layout of month cell labels. Empty uses "MMMM".
	GridMonthFormat string `yaml:"grid_month_format"`

	// MonthBase is the external month numbering origin. Defaults to 1.
	// A pointer so that an explicit 0 is distinguishable from unset.
	MonthBase *int `yaml:"month_base"`

	// Year is the initially displayed year. Zero uses the current year.
	Year int `yaml:"year"`

	// Value is the initial selection in the display format, comma separated.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Value string `yaml:"value"`

	// RefreshDelay is how long after showing the popup its position is
	// recomputed. Accepts duration strings like "16ms". Must not exceed 1s.
	RefreshDelay Duration `yaml:"refresh_delay"`

	// Disabled lists rules vetoing selections. A selection is disabled if
	// any rule matches it.
	Disabled []RuleConfig `yaml:"disabled"`
}

// RuleConfig defines one disabled-value rule. Exactly one field must be set.
//
//	disabled:
//	  - before: 01/2020   # display format text
//	  - after: 12/2030
//	  - months: [1, 12]   # external numbering, see month_base
//	  - years: [2025]
type RuleConfig struct {
	// Before disables every selection ordered before this value.
	// Written in the display format.
	Before string `yaml:"before"`

	// After disables every selection ordered after this value.
	// Written in the display format.
	After string `yaml:"after"`

	// Months disables these months in every year, in external numbering.
	Months []int `yaml:"months"`

	// Years disables every selection in these years.
	Years []int `yaml:"years"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// EffectiveMonthBase returns the configured month base or the default of 1.
func (c *Config) EffectiveMonthBase() int {
	if c.MonthBase == nil {
		return defaultMonthBase
	}
	return *c.MonthBase
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Title, Value, and the before/after
// bounds of disabled rules. Defaults are applied for Title, Port and Mode.
// Display formats and rule bounds are checked later by [BuildOptions],
// which needs the SDK to interpret them.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	mode, err := monthpicker.ParseMode(c.Mode)
	if err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	c.Mode = mode.String()

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	base := c.EffectiveMonthBase()
	if base < 0 || base > 88 {
		return fmt.Errorf("month_base must be between 0 and 88, got %d", base)
	}

	if c.Year < monthpicker.MinYear || c.Year > monthpicker.MaxYear {
		return fmt.Errorf("year must be between %d and %d, got %d", monthpicker.MinYear, monthpicker.MaxYear, c.Year)
	}

	if c.RefreshDelay.Duration() < 0 {
		return fmt.Errorf("refresh_delay cannot be negative, got %s", c.RefreshDelay.Duration())
	}
	if c.RefreshDelay.Duration() > maxRefreshDelay {
		return fmt.Errorf("refresh_delay must not exceed %s, got %s", maxRefreshDelay, c.RefreshDelay.Duration())
	}

	if c.Title, err = expandEnvVars(c.Title); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if c.Value, err = expandEnvVars(c.Value); err != nil {
		return fmt.Errorf("value: %w", err)
	}

	for i := range c.Disabled {
		r := &c.Disabled[i]

		set := 0
		for _, present := range []bool{r.Before != "", r.After != "", len(r.Months) > 0, len(r.Years) > 0} {
			if present {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("disabled[%d]: exactly one of before, after, months or years is required", i)
		}

		if r.Before, err = expandEnvVars(r.Before); err != nil {
			return fmt.Errorf("disabled[%d]: before: %w", i, err)
		}
		if r.After, err = expandEnvVars(r.After); err != nil {
			return fmt.Errorf("disabled[%d]: after: %w", i, err)
		}

		for _, m := range r.Months {
			if m < base || m > base+11 {
				return fmt.Errorf("disabled[%d]: month %d out of range %d-%d", i, m, base, base+11)
			}
		}
		if len(r.Months) > 0 && mode == monthpicker.ModeYear {
			return fmt.Errorf("disabled[%d]: months rules do not apply in %s mode", i, mode)
		}
		if len(r.Years) > 0 && mode == monthpicker.ModeMonth {
			return fmt.Errorf("disabled[%d]: years rules do not apply in %s mode", i, mode)
		}
	}

	return nil
}
