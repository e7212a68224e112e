package monthpicker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// pickerConfig holds mutable state during Picker construction.
type pickerConfig struct {
	mode            Mode
	multiSelect     bool
	displayFormat   string
	gridMonthFormat string
	monthBase       int
	year            int
	disabledRule    DisabledRule
	refreshDelay    time.Duration
	logger          *slog.Logger

	selections    []Selection
	hasSelections bool
	value         string
	hasValue      bool
	elementText   string

	onSelect           []func(Selection)
	onSelectionChanged []func([]Selection)
	onGridRefresh      []func()
	onPositionChanged  []func(Placement)

	onVisibilityChanged []func(bool)
}

// Option is a function that configures a [Picker] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*pickerConfig) error

// WithMode sets which components the picker tracks. Defaults to
// [ModeMonthYear].
//
// Returns an error for an unknown mode.
func WithMode(mode Mode) Option {
	return func(cfg *pickerConfig) error {
		m, err := ParseMode(string(mode))
		if err != nil {
			return err
		}
		cfg.mode = m
		return nil
	}
}

// WithMultiSelect enables multi-select mode, where each toggle adds or
// removes one value. In single-select mode (the default) a toggle replaces
// the selection.
func WithMultiSelect(multi bool) Option {
	return func(cfg *pickerConfig) error {
		cfg.multiSelect = multi
		return nil
	}
}

// WithDisplayFormat sets the layout used to format and parse the host's
// text value, for example "MM/YYYY" or "MMMM YY".
//
// Defaults to "MM/YYYY" ("YYYY" in [ModeYear]). In [ModeMonth] year tokens
// are stripped; in [ModeYear] month tokens are stripped.
//
// Returns an error if the layout is empty.
func WithDisplayFormat(layout string) Option {
	return func(cfg *pickerConfig) error {
		if layout == "" {
			return errors.New("display format cannot be empty")
		}
		cfg.displayFormat = layout
		return nil
	}
}

// WithGridMonthFormat sets the layout for month cell labels in the grid.
// Defaults to "MMMM".
//
// Returns an error if the layout is empty.
func WithGridMonthFormat(layout string) Option {
	return func(cfg *pickerConfig) error {
		if layout == "" {
			return errors.New("grid month format cannot be empty")
		}
		cfg.gridMonthFormat = layout
		return nil
	}
}

// WithMonthBase sets the external month numbering origin. With the default
// of 1, January is written "01"; with 0 it is written "00". Stored
// selections are always 0-indexed.
//
// Returns an error if base is outside 0-88 (month numbers must fit in two
// digits).
func WithMonthBase(base int) Option {
	return func(cfg *pickerConfig) error {
		if base < 0 || base > 88 {
			return fmt.Errorf("month base must be between 0 and 88, got %d", base)
		}
		cfg.monthBase = base
		return nil
	}
}

// WithYear sets the initially displayed year. Defaults to the current year.
// In [ModeYear] the first page is centred on this year.
//
// Returns an error if year is outside [MinYear]-[MaxYear].
func WithYear(year int) Option {
	return func(cfg *pickerConfig) error {
		if year < MinYear || year > MaxYear {
			return fmt.Errorf("year must be between %d and %d, got %d", MinYear, MaxYear, year)
		}
		cfg.year = year
		return nil
	}
}

// WithDisabledRule sets the predicate that vetoes selections.
// Nil rules are silently ignored. Use [AnyRule] to combine several.
func WithDisabledRule(rule DisabledRule) Option {
	return func(cfg *pickerConfig) error {
		if rule == nil {
			return nil
		}
		cfg.disabledRule = rule
		return nil
	}
}

// WithSelections seeds the picker with structured selections. It takes
// priority over [WithValue] and [WithElementText].
func WithSelections(selections ...Selection) Option {
	return func(cfg *pickerConfig) error {
		cfg.selections = append([]Selection(nil), selections...)
		cfg.hasSelections = true
		return nil
	}
}

// WithValue seeds the picker from text in the display format, for example
// "01/2024, 03/2024". Unparseable parts are dropped. It takes priority over
// [WithElementText].
func WithValue(text string) Option {
	return func(cfg *pickerConfig) error {
		cfg.value = text
		cfg.hasValue = true
		return nil
	}
}

// WithElementText passes the host element's current text. It seeds the
// picker only when neither [WithSelections] nor [WithValue] is given.
func WithElementText(text string) Option {
	return func(cfg *pickerConfig) error {
		cfg.elementText = text
		return nil
	}
}

// WithRefreshDelay sets how long after [Picker.Show] the position is
// recomputed, giving the host time to lay out the popup. Defaults to 16ms.
//
// Returns an error if the delay is negative or exceeds one second.
func WithRefreshDelay(d time.Duration) Option {
	return func(cfg *pickerConfig) error {
		if d < 0 {
			return errors.New("refresh delay cannot be negative")
		}
		if d > time.Second {
			return errors.New("refresh delay must not exceed 1s")
		}
		cfg.refreshDelay = d
		return nil
	}
}

// WithVisibilityChanged registers a callback that receives true when the
// popup is shown and false when it is hidden, whether by [Picker.Hide], a
// single-select [Picker.Pick], or [Picker.Dispose]. It fires only when the
// visibility actually changes. Nil callbacks are silently ignored.
func WithVisibilityChanged(cb func(visible bool)) Option {
	return func(cfg *pickerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.onVisibilityChanged = append(cfg.onVisibilityChanged, cb)
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the picker.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pickerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOnSelect registers a function called once per accepted toggle, after
// the store has changed and before any rendering callback.
//
// Multiple callbacks run in registration order. Callbacks are invoked
// synchronously; panics are recovered and logged. Nil callbacks are
// silently ignored.
//
// Example:
//
//	p, err := monthpicker.New(
//	    monthpicker.WithOnSelect(func(s monthpicker.Selection) {
//	        log.Printf("picked %d/%d", s.Month+1, s.Year)
//	    }),
//	)
func WithOnSelect(cb func(Selection)) Option {
	return func(cfg *pickerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.onSelect = append(cfg.onSelect, cb)
		return nil
	}
}

// WithSelectionChanged registers a rendering callback that receives the new
// selection snapshot after every mutation (toggle, SetValue, Clear).
// Nil callbacks are silently ignored.
func WithSelectionChanged(cb func([]Selection)) Option {
	return func(cfg *pickerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.onSelectionChanged = append(cfg.onSelectionChanged, cb)
		return nil
	}
}

// WithGridRefresh registers a rendering callback fired whenever the grid
// should be redrawn: after mutations, navigation, and the deferred refresh
// following [Picker.Show]. Nil callbacks are silently ignored.
func WithGridRefresh(cb func()) Option {
	return func(cfg *pickerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.onGridRefresh = append(cfg.onGridRefresh, cb)
		return nil
	}
}

// WithPositionChanged registers a callback that receives the recomputed
// placement from the deferred refresh after [Picker.Show].
// Nil callbacks are silently ignored.
func WithPositionChanged(cb func(Placement)) Option {
	return func(cfg *pickerConfig) error {
		if cb == nil {
			return nil
		}
		cfg.onPositionChanged = append(cfg.onPositionChanged, cb)
		return nil
	}
}
