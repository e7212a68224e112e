package monthpicker

import "github.com/jpalmerr/monthpicker/internal/format"

const (
	// yearPageSize is the number of years shown per page in ModeYear.
	yearPageSize = 9

	monthColumns = 4
	yearColumns  = 3
)

// Cell is one button in the picker grid.
type Cell struct {
	// Label is the text to show, from the grid month format in month modes
	// or the display format in year mode.
	Label string

	// Selection is the value the cell toggles.
	Selection Selection

	// Selected reports whether Selection is currently chosen.
	Selected bool

	// Disabled reports whether the disabled rule vetoes Selection.
	// Picking a disabled cell does nothing.
	Disabled bool
}

// Grid returns the cells for the current page: the twelve months of the
// displayed year, or a page of nine years in [ModeYear].
func (p *Picker) Grid() []Cell {
	year := p.CurrentYear()

	if p.mode == ModeYear {
		cells := make([]Cell, yearPageSize)
		for i := range cells {
			cells[i] = p.cell(YearOnly(year+i), p.display)
		}
		return cells
	}

	cells := make([]Cell, 12)
	for month := range cells {
		s := MonthYear(month, year)
		if p.mode == ModeMonth {
			s = MonthOnly(month)
		}
		cells[month] = p.cell(s, p.gridMonth)
	}
	return cells
}

func (p *Picker) cell(s Selection, spec *format.Spec) Cell {
	return Cell{
		Label:     spec.Format(toValue(s, p.mode), p.monthBase),
		Selection: s,
		Selected:  p.store.Contains(s),
		Disabled:  p.rule != nil && p.rule(s),
	}
}

// GridColumns returns the number of columns the grid is laid out in.
func (p *Picker) GridColumns() int {
	if p.mode == ModeYear {
		return yearColumns
	}
	return monthColumns
}

// CurrentYear returns the displayed year, or the first year of the
// displayed page in [ModeYear]. It is meaningless in [ModeMonth].
func (p *Picker) CurrentYear() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.year
}

// Navigate moves the grid by delta pages: years in month-year mode, pages of
// nine years in year mode. It does nothing in month mode. The displayed
// years stay within [MinYear]-[MaxYear].
func (p *Picker) Navigate(delta int) {
	if p.mode == ModeMonth || delta == 0 {
		return
	}

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	if p.mode == ModeYear {
		p.year = clampPageStart(p.year + delta*yearPageSize)
	} else {
		p.year = min(max(p.year+delta, MinYear), MaxYear)
	}
	year := p.year
	p.mu.Unlock()

	p.logger.Debug("picker navigated", "year", year)
	p.refreshGrid()
}

// clampPageStart keeps a nine-year page inside [MinYear, MaxYear].
func clampPageStart(start int) int {
	return min(max(start, MinYear), MaxYear-yearPageSize+1)
}
