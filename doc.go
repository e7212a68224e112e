// Package monthpicker provides the engine behind a floating month/year
// picker widget: formatting and parsing selections, selection state, and
// popup positioning.
//
// monthpicker is designed as an SDK-first library. The host (a web page, a
// terminal UI, or the bundled demo server) owns the DOM and event wiring and
// calls into a [Picker] when the user types, clicks a grid cell, or opens
// the popup. The picker owns everything with real logic in it.
//
// # Quick Start
//
//	p, _ := monthpicker.New(
//	    monthpicker.WithDisplayFormat("MM/YYYY"),
//	    monthpicker.WithYear(2024),
//	    monthpicker.WithValue("01/2024"),
//	)
//	defer p.Dispose()
//
//	p.ToggleMonth(2)       // March of the displayed year
//	fmt.Println(p.Value()) // "03/2024" in single-select mode
//
// # Configuration
//
// A Picker uses the functional options pattern for configuration:
//
//	p, err := monthpicker.New(
//	    monthpicker.WithMode(monthpicker.ModeMonthYear),
//	    monthpicker.WithMultiSelect(true),
//	    monthpicker.WithDisplayFormat("MMM YY"),
//	    monthpicker.WithMonthBase(1),
//	    monthpicker.WithDisabledRule(monthpicker.DisableBefore(monthpicker.MonthYear(0, 2020))),
//	    monthpicker.WithOnSelect(func(s monthpicker.Selection) { ... }),
//	)
//
// # Display Formats
//
// Display layouts combine literal text with tokens, matched longest-first:
//
//   - YYYY, yyyy: four-digit year
//   - YY: two-digit year (00-49 is 2000-2049, 50-99 is 1950-1999)
//   - MMMM: full month name ("January")
//   - MMM: abbreviated month name ("Jan")
//   - MM: zero-padded month number, offset by the month base
//   - M: bare month number, offset by the month base
//
// Years are kept within [MinYear]-[MaxYear]. Within that range, formatting a
// selection and parsing the result yields the same selection, except that a
// layout using YY can only round-trip years 1950-2049. Parsing is case-insensitive and forgiving of surrounding
// whitespace, so parse-then-format need not reproduce the user's text.
//
// In [ModeMonth] year tokens are stripped from the layout together with the
// separators they leave behind ("MM/YYYY" shows "01"), and bare numbers or
// month names are accepted as input. In [ModeYear] month tokens are
// stripped and bare years are accepted.
//
// # Errors
//
// Nothing in this package treats partially typed input as fatal.
// [Picker.Parse] reports [ErrFormatMismatch] or [ErrIncompleteSelection];
// [Picker.ParseOne] and [Picker.ParseList] absorb them. Toggling a value
// vetoed by the [DisabledRule] is silently ignored.
//
// # Architecture
//
// The engine is split into internal packages (under internal/):
//
//   - internal/format: Token grammar, formatter, and parser
//   - internal/store: Selection state with pub/sub for rendering collaborators
//   - internal/server: Demo HTTP host with a JSON API and Server-Sent Events
//   - dashboard: Embedded web UI for the demo host
//
// The internal packages are not part of the public API and may change
// without notice.
package monthpicker
