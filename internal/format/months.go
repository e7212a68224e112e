package format

import (
	"strings"

	"golang.org/x/text/cases"
)

// monthNames is the fixed English month table, indexed from 0.
var monthNames = [12]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// monthIndex maps case-folded full names and abbreviations to month indices.
var monthIndex = buildMonthIndex()

func buildMonthIndex() map[string]int {
	fold := cases.Fold()
	index := make(map[string]int, len(monthNames)*2)
	for i, name := range monthNames {
		index[fold.String(name)] = i
		index[fold.String(name[:3])] = i
	}
	return index
}

// MonthName returns the full English name for a 0-indexed month, or "" if
// month is out of range.
func MonthName(month int) string {
	if month < 0 || month >= len(monthNames) {
		return ""
	}
	return monthNames[month]
}

// MonthAbbrev returns the three-letter abbreviation for a 0-indexed month,
// or "" if month is out of range.
func MonthAbbrev(month int) string {
	name := MonthName(month)
	if name == "" {
		return ""
	}
	return name[:3]
}

// LookupMonth resolves a full or abbreviated month name, ignoring case and
// surrounding whitespace.
func LookupMonth(name string) (int, bool) {
	// Caser values are stateful, so each lookup gets its own.
	idx, ok := monthIndex[cases.Fold().String(strings.TrimSpace(name))]
	return idx, ok
}

// monthAlternation returns a regex alternation group over the given names.
func monthAlternation(abbrev bool) string {
	parts := make([]string, len(monthNames))
	for i, name := range monthNames {
		if abbrev {
			name = name[:3]
		}
		parts[i] = name
	}
	return "(" + strings.Join(parts, "|") + ")"
}
