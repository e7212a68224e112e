package format

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies what a segment of a layout stands for.
type Kind int

const (
	// Literal is text copied verbatim.
	Literal Kind = iota
	// YearFull is the four-digit year (YYYY or yyyy).
	YearFull
	// YearShort is the two-digit year (YY).
	YearShort
	// MonthFull is the full month name (MMMM).
	MonthFull
	// MonthShort is the three-letter month abbreviation (MMM).
	MonthShort
	// MonthPadded is the zero-padded month number (MM).
	MonthPadded
	// MonthBare is the unpadded month number (M).
	MonthBare
)

// IsYear reports whether k is a year token.
func (k Kind) IsYear() bool {
	return k == YearFull || k == YearShort
}

// IsMonth reports whether k is a month token.
func (k Kind) IsMonth() bool {
	return k == MonthFull || k == MonthShort || k == MonthPadded || k == MonthBare
}

// tokenDef pairs token text with its kind.
type tokenDef struct {
	text string
	kind Kind
}

// tokenDefs lists tokens in match order. Longer tokens must precede their
// prefixes.
var tokenDefs = []tokenDef{
	{"YYYY", YearFull},
	{"yyyy", YearFull},
	{"YY", YearShort},
	{"MMMM", MonthFull},
	{"MMM", MonthShort},
	{"MM", MonthPadded},
	{"M", MonthBare},
}

// separators are trimmed from literals left dangling by a stripped token.
const separators = " \t/-.,"

// Segment is one literal run or token in a layout.
type Segment struct {
	Kind Kind
	Text string
}

// Spec is a compiled display format.
//
// A Spec is immutable after construction and safe for concurrent use.
type Spec struct {
	layout   string
	segments []Segment
	pattern  *regexp.Regexp
	groups   []Kind
}

// Compile tokenises layout and compiles its parse pattern.
//
// Returns an error if layout is empty or contains no tokens.
func Compile(layout string) (*Spec, error) {
	if layout == "" {
		return nil, errors.New("format layout cannot be empty")
	}
	spec, err := newSpec(tokenize(layout))
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", layout, err)
	}
	return spec, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(layout string) *Spec {
	spec, err := Compile(layout)
	if err != nil {
		panic(err)
	}
	return spec
}

func newSpec(segments []Segment) (*Spec, error) {
	var layout strings.Builder
	var pattern strings.Builder
	groups := make([]Kind, 0, len(segments))

	pattern.WriteString(`(?i)^`)
	for _, seg := range segments {
		layout.WriteString(seg.Text)
		switch seg.Kind {
		case Literal:
			pattern.WriteString(regexp.QuoteMeta(seg.Text))
			continue
		case YearFull:
			pattern.WriteString(`(\d{4})`)
		case YearShort:
			pattern.WriteString(`(\d{2})`)
		case MonthFull:
			pattern.WriteString(monthAlternation(false))
		case MonthShort:
			pattern.WriteString(monthAlternation(true))
		case MonthPadded:
			pattern.WriteString(`(\d{2})`)
		case MonthBare:
			pattern.WriteString(`(\d{1,2})`)
		}
		groups = append(groups, seg.Kind)
	}
	pattern.WriteString(`$`)

	if len(groups) == 0 {
		return nil, errors.New("layout contains no year or month token")
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("invalid parse pattern: %w", err)
	}

	return &Spec{
		layout:   layout.String(),
		segments: segments,
		pattern:  re,
		groups:   groups,
	}, nil
}

// tokenize splits layout into segments, matching tokens longest-first.
func tokenize(layout string) []Segment {
	var segments []Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, Segment{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(layout); {
		if def, ok := matchToken(layout[i:]); ok {
			flush()
			segments = append(segments, Segment{Kind: def.kind, Text: def.text})
			i += len(def.text)
			continue
		}
		lit.WriteByte(layout[i])
		i++
	}
	flush()

	return segments
}

func matchToken(s string) (tokenDef, bool) {
	for _, def := range tokenDefs {
		if strings.HasPrefix(s, def.text) {
			return def, true
		}
	}
	return tokenDef{}, false
}

// Layout returns the layout string the Spec was built from.
func (s *Spec) Layout() string {
	return s.layout
}

// Segments returns a copy of the Spec's segments.
func (s *Spec) Segments() []Segment {
	cp := make([]Segment, len(s.segments))
	copy(cp, s.segments)
	return cp
}

// HasYear reports whether the Spec contains a year token.
func (s *Spec) HasYear() bool {
	return s.has(Kind.IsYear)
}

// HasMonth reports whether the Spec contains a month token.
func (s *Spec) HasMonth() bool {
	return s.has(Kind.IsMonth)
}

func (s *Spec) has(match func(Kind) bool) bool {
	for _, k := range s.groups {
		if match(k) {
			return true
		}
	}
	return false
}

// WithoutYear returns a Spec with year tokens removed, along with the
// separators they leave dangling. "MM/YYYY" becomes "MM".
func (s *Spec) WithoutYear() (*Spec, error) {
	return s.strip(Kind.IsYear)
}

// WithoutMonth returns a Spec with month tokens removed, along with the
// separators they leave dangling. "MM/YYYY" becomes "YYYY".
func (s *Spec) WithoutMonth() (*Spec, error) {
	return s.strip(Kind.IsMonth)
}

func (s *Spec) strip(drop func(Kind) bool) (*Spec, error) {
	if !s.has(drop) {
		return s, nil
	}

	out := make([]Segment, 0, len(s.segments))
	trimNext := false
	for _, seg := range s.segments {
		if seg.Kind != Literal && drop(seg.Kind) {
			if n := len(out); n > 0 && out[n-1].Kind == Literal {
				out[n-1].Text = strings.TrimRight(out[n-1].Text, separators)
				if out[n-1].Text == "" {
					out = out[:n-1]
				}
			}
			// nothing kept yet, so the following literal leads the layout
			trimNext = len(out) == 0
			continue
		}
		if seg.Kind == Literal && trimNext {
			seg.Text = strings.TrimLeft(seg.Text, separators)
			if seg.Text == "" {
				continue
			}
		}
		trimNext = false
		out = append(out, seg)
	}

	spec, err := newSpec(out)
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", s.layout, err)
	}
	return spec, nil
}
