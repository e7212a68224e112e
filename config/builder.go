package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jpalmerr/monthpicker"
)

// BuildOptions converts parsed configuration into SDK options.
//
// Before/after bounds of disabled rules are parsed with the configured
// display format, so a bound that does not match it is reported here.
// The returned options do not include a logger; callers add
// [monthpicker.WithLogger] themselves.
func BuildOptions(cfg *Config) ([]monthpicker.Option, error) {
	opts := baseOptions(cfg)

	rule, err := buildRule(cfg, opts)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		opts = append(opts, monthpicker.WithDisabledRule(rule))
	}

	if cfg.Value != "" {
		opts = append(opts, monthpicker.WithValue(cfg.Value))
	}

	return opts, nil
}

// baseOptions converts the fields that need no interpretation.
func baseOptions(cfg *Config) []monthpicker.Option {
	opts := []monthpicker.Option{
		monthpicker.WithMode(monthpicker.Mode(cfg.Mode)),
		monthpicker.WithMultiSelect(cfg.MultiSelect),
		monthpicker.WithMonthBase(cfg.EffectiveMonthBase()),
	}

	if cfg.DisplayFormat != "" {
		opts = append(opts, monthpicker.WithDisplayFormat(cfg.DisplayFormat))
	}
	if cfg.GridMonthFormat != "" {
		opts = append(opts, monthpicker.WithGridMonthFormat(cfg.GridMonthFormat))
	}
	if cfg.Year != 0 {
		opts = append(opts, monthpicker.WithYear(cfg.Year))
	}
	if cfg.RefreshDelay != 0 {
		opts = append(opts, monthpicker.WithRefreshDelay(cfg.RefreshDelay.Duration()))
	}

	return opts
}

// buildRule combines the configured disabled rules. It returns nil when no
// rules are configured.
func buildRule(cfg *Config, base []monthpicker.Option) (monthpicker.DisabledRule, error) {
	// the probe validates formats and parses bounds exactly as the real
	// picker will
	probe, err := monthpicker.New(append(base, monthpicker.WithLogger(discardLogger()))...)
	if err != nil {
		return nil, err
	}
	defer probe.Dispose()

	if len(cfg.Disabled) == 0 {
		return nil, nil
	}

	monthBase := cfg.EffectiveMonthBase()
	rules := make([]monthpicker.DisabledRule, 0, len(cfg.Disabled))
	for i, rc := range cfg.Disabled {
		switch {
		case rc.Before != "":
			bound, err := probe.Parse(rc.Before)
			if err != nil {
				return nil, fmt.Errorf("disabled[%d]: before %q does not match display format %q: %w",
					i, rc.Before, probe.DisplayFormat(), err)
			}
			rules = append(rules, monthpicker.DisableBefore(bound))
		case rc.After != "":
			bound, err := probe.Parse(rc.After)
			if err != nil {
				return nil, fmt.Errorf("disabled[%d]: after %q does not match display format %q: %w",
					i, rc.After, probe.DisplayFormat(), err)
			}
			rules = append(rules, monthpicker.DisableAfter(bound))
		case len(rc.Months) > 0:
			months := make([]int, len(rc.Months))
			for j, m := range rc.Months {
				months[j] = m - monthBase
			}
			rules = append(rules, monthpicker.DisableMonths(months...))
		case len(rc.Years) > 0:
			rules = append(rules, monthpicker.DisableYears(rc.Years...))
		}
	}

	return monthpicker.AnyRule(rules...), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
