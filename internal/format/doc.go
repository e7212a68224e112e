// Package format implements the display-format engine for month/year
// selections.
//
// A layout such as "MM/YYYY" is tokenised into a [Spec]: an ordered list of
// literal and token segments. Tokens are matched longest-first, so "YYYY"
// never splits into two "YY" tokens and "MMMM" never splits into "MMM" plus
// a stray "M". A Spec formats a [Value] into text and parses text back into
// a Value through an anchored, case-insensitive regular expression compiled
// from the same segments.
//
// Recognised tokens:
//
//   - YYYY, yyyy: four-digit year
//   - YY: two-digit year, pivot 50 (00-49 is 20xx, 50-99 is 19xx)
//   - MMMM: full English month name
//   - MMM: three-letter month abbreviation
//   - MM: zero-padded month number, offset by the month base
//   - M: bare month number, offset by the month base
//
// This package is internal to monthpicker. Users interact with it through
// the root package's Picker.
package format
