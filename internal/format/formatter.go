package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the engine-level view of a selection. Month is 0-indexed.
type Value struct {
	Month    int
	Year     int
	HasMonth bool
	HasYear  bool
}

// Format renders v using the Spec's layout.
//
// Month numbers are shifted by monthBase. Tokens whose component is absent
// from v render as the empty string. Format never fails; out-of-range months
// render an empty name.
func (s *Spec) Format(v Value, monthBase int) string {
	var b strings.Builder
	for _, seg := range s.segments {
		switch seg.Kind {
		case Literal:
			b.WriteString(seg.Text)
		case YearFull:
			if v.HasYear {
				fmt.Fprintf(&b, "%04d", v.Year)
			}
		case YearShort:
			if v.HasYear {
				fmt.Fprintf(&b, "%02d", ((v.Year%100)+100)%100)
			}
		case MonthFull:
			if v.HasMonth {
				b.WriteString(MonthName(v.Month))
			}
		case MonthShort:
			if v.HasMonth {
				b.WriteString(MonthAbbrev(v.Month))
			}
		case MonthPadded:
			if v.HasMonth {
				fmt.Fprintf(&b, "%02d", v.Month+monthBase)
			}
		case MonthBare:
			if v.HasMonth {
				b.WriteString(strconv.Itoa(v.Month + monthBase))
			}
		}
	}
	return b.String()
}
