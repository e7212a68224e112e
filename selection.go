package monthpicker

import (
	"fmt"

	"github.com/jpalmerr/monthpicker/internal/format"
)

// Mode selects which calendar components a [Picker] tracks.
//
// Mode is a string type so it reads naturally in YAML configuration and log
// output while keeping type safety through the defined constants.
type Mode string

const (
	// ModeMonthYear tracks a month within a navigable year. This is the default.
	ModeMonthYear Mode = "month-year"

	// ModeMonth tracks months only. Selections carry no year.
	ModeMonth Mode = "month"

	// ModeYear tracks years only, shown as pages of nine years.
	ModeYear Mode = "year"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a configuration string into a [Mode].
// An empty string yields [ModeMonthYear].
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeMonthYear, nil
	case ModeMonthYear, ModeMonth, ModeYear:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected %q, %q or %q)", s, ModeMonthYear, ModeMonth, ModeYear)
	}
}

// MinYear and MaxYear bound the years a picker tracks, so that "YYYY"
// always renders exactly four digits.
const (
	MinYear = 0
	MaxYear = 9999
)

// Selection is one chosen time period.
//
// Month is 0-indexed (0 is January) regardless of the picker's month base.
// HasYear is false for month-only selections. Year-only selections keep
// Month at 0. Selections compare with ==: two values with the same month and
// year are the same logical choice.
type Selection struct {
	Month   int
	Year    int
	HasYear bool
}

// MonthYear returns a selection of month within year.
func MonthYear(month, year int) Selection {
	return Selection{Month: month, Year: year, HasYear: true}
}

// MonthOnly returns a year-less selection of month.
func MonthOnly(month int) Selection {
	return Selection{Month: month}
}

// YearOnly returns a selection of a whole year.
func YearOnly(year int) Selection {
	return Selection{Year: year, HasYear: true}
}

// ExternalSelection is the structured form of a selection handed to hosts,
// for example as a data attribute or JSON payload.
//
// Month is shifted by the picker's month base and omitted in year mode.
// Year is omitted for month-only selections.
type ExternalSelection struct {
	Month *int `json:"month,omitempty"`
	Year  *int `json:"year,omitempty"`
}

// compareSelections orders selections by year (when both carry one) and
// then by month.
func compareSelections(a, b Selection) int {
	if a.HasYear && b.HasYear && a.Year != b.Year {
		if a.Year < b.Year {
			return -1
		}
		return 1
	}
	switch {
	case a.Month < b.Month:
		return -1
	case a.Month > b.Month:
		return 1
	}
	return 0
}

// toValue converts a selection into the format engine's representation for
// the given mode.
func toValue(s Selection, mode Mode) format.Value {
	return format.Value{
		Month:    s.Month,
		Year:     s.Year,
		HasMonth: mode != ModeYear,
		HasYear:  s.HasYear && mode != ModeMonth,
	}
}
