package monthpicker

// DisabledRule reports whether a selection must not be chosen.
//
// DisabledRule is a pure predicate: the same input always yields the same
// result, and the picker consults it without storing or mutating anything.
// A toggle of a disabled value is silently ignored and the matching grid
// cell is marked [Cell.Disabled].
//
// Rules can be combined with [AnyRule]. Built-in rules: [DisableBefore],
// [DisableAfter], [DisableMonths], [DisableYears].
type DisabledRule func(Selection) bool

// DisableBefore returns a rule that disables every selection ordered before
// bound. Selections are ordered by year, then month; a year-less side
// compares by month alone.
//
// Example:
//
//	rule := monthpicker.DisableBefore(monthpicker.MonthYear(0, 2020))
func DisableBefore(bound Selection) DisabledRule {
	return func(s Selection) bool {
		return compareSelections(s, bound) < 0
	}
}

// DisableAfter returns a rule that disables every selection ordered after
// bound. See [DisableBefore] for the ordering.
func DisableAfter(bound Selection) DisabledRule {
	return func(s Selection) bool {
		return compareSelections(s, bound) > 0
	}
}

// DisableMonths returns a rule that disables the given 0-indexed months in
// every year. Year-only selections carry month 0, so this rule is not
// meaningful in [ModeYear].
func DisableMonths(months ...int) DisabledRule {
	set := make(map[int]struct{}, len(months))
	for _, m := range months {
		set[m] = struct{}{}
	}
	return func(s Selection) bool {
		_, ok := set[s.Month]
		return ok
	}
}

// DisableYears returns a rule that disables every selection in the given
// years. Year-less selections are never disabled by this rule.
func DisableYears(years ...int) DisabledRule {
	set := make(map[int]struct{}, len(years))
	for _, y := range years {
		set[y] = struct{}{}
	}
	return func(s Selection) bool {
		if !s.HasYear {
			return false
		}
		_, ok := set[s.Year]
		return ok
	}
}

// AnyRule combines rules, disabling a selection if any of them does.
// Nil rules are skipped.
//
// Example:
//
//	rule := monthpicker.AnyRule(
//	    monthpicker.DisableBefore(monthpicker.MonthYear(0, 2020)),
//	    monthpicker.DisableMonths(11),
//	)
func AnyRule(rules ...DisabledRule) DisabledRule {
	return func(s Selection) bool {
		for _, rule := range rules {
			if rule != nil && rule(s) {
				return true
			}
		}
		return false
	}
}
