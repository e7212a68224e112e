package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrFormatMismatch indicates the text does not match the layout's pattern.
	ErrFormatMismatch = errors.New("text does not match display format")

	// ErrIncompleteSelection indicates the pattern matched but a required
	// component could not be resolved.
	ErrIncompleteSelection = errors.New("selection is missing a required component")
)

// shortYearPivot splits two-digit years between centuries.
const shortYearPivot = 50

// Need is a bit set of components a parse result must contain.
type Need int

const (
	// NeedMonth requires a resolved month.
	NeedMonth Need = 1 << iota
	// NeedYear requires a resolved year.
	NeedYear
)

// Parse matches text against the Spec and decodes the captured tokens.
//
// Surrounding whitespace is ignored and matching is case-insensitive.
// Numeric months are shifted back by monthBase and must land in 0-11.
// Returns [ErrFormatMismatch] if the text does not match and
// [ErrIncompleteSelection] if a component named in need is unresolved.
func (s *Spec) Parse(text string, monthBase int, need Need) (Value, error) {
	match := s.pattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return Value{}, ErrFormatMismatch
	}

	var v Value
	for i, kind := range s.groups {
		raw := match[i+1]
		switch kind {
		case YearFull:
			if year, err := strconv.Atoi(raw); err == nil {
				v.Year, v.HasYear = year, true
			}
		case YearShort:
			if year, err := strconv.Atoi(raw); err == nil {
				v.Year, v.HasYear = expandShortYear(year), true
			}
		case MonthFull, MonthShort:
			if month, ok := LookupMonth(raw); ok {
				v.Month, v.HasMonth = month, true
			}
		case MonthPadded, MonthBare:
			if month, ok := monthFromNumber(raw, monthBase); ok {
				v.Month, v.HasMonth = month, true
			}
		}
	}

	if need&NeedMonth != 0 && !v.HasMonth {
		return Value{}, fmt.Errorf("%w: month in %q", ErrIncompleteSelection, text)
	}
	if need&NeedYear != 0 && !v.HasYear {
		return Value{}, fmt.Errorf("%w: year in %q", ErrIncompleteSelection, text)
	}
	return v, nil
}

// ParseMonthLoose resolves text as either a bare month number (shifted by
// monthBase) or a full or abbreviated month name, independent of any layout.
func ParseMonthLoose(text string, monthBase int) (int, bool) {
	text = strings.TrimSpace(text)
	if month, ok := monthFromNumber(text, monthBase); ok {
		return month, true
	}
	return LookupMonth(text)
}

// ParseYearLoose resolves text as a bare integer year.
func ParseYearLoose(text string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return year, true
}

// SplitList splits comma-separated text into trimmed, non-empty parts.
func SplitList(text string) []string {
	raw := strings.Split(text, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func monthFromNumber(raw string, monthBase int) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	month := n - monthBase
	if month < 0 || month > 11 {
		return 0, false
	}
	return month, true
}

func expandShortYear(yy int) int {
	if yy < shortYearPivot {
		return 2000 + yy
	}
	return 1900 + yy
}
