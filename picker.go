package monthpicker

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/monthpicker/internal/format"
	"github.com/jpalmerr/monthpicker/internal/store"
)

const (
	defaultDisplayFormat     = "MM/YYYY"
	defaultYearDisplayFormat = "YYYY"
	defaultGridMonthFormat   = "MMMM"
	defaultMonthBase         = 1
	defaultRefreshDelay      = 16 * time.Millisecond
)

var (
	// ErrFormatMismatch indicates text does not match the display format.
	ErrFormatMismatch = format.ErrFormatMismatch

	// ErrIncompleteSelection indicates text matched the display format but a
	// required month or year could not be resolved.
	ErrIncompleteSelection = format.ErrIncompleteSelection

	// ErrRejectedByPolicy indicates a value vetoed by the disabled rule.
	// Toggles absorb it; it surfaces only through [Picker.Check].
	ErrRejectedByPolicy = errors.New("selection is disabled")
)

// Picker is one month/year picker instance bound to a host element.
//
// Picker owns its selection state, formats it into the host's display text,
// parses host text back into selections, and positions its popup. It is
// created with [New] and released with [Picker.Dispose].
//
// The typical lifecycle is:
//
//	p, err := monthpicker.New(
//	    monthpicker.WithMultiSelect(true),
//	    monthpicker.WithDisplayFormat("MMM YYYY"),
//	    monthpicker.WithElementText(input.Value()),
//	)
//	if err != nil {
//	    return err
//	}
//	defer p.Dispose()
//
//	placement := p.Show(host) // host implements GeometrySource
//	...
//	p.Pick(cell)              // user clicked a grid cell
//	input.SetValue(p.Value())
//
// All methods are safe for concurrent use. Callbacks run synchronously on
// the calling goroutine, outside the picker's lock.
type Picker struct {
	id        string
	mode      Mode
	display   *format.Spec
	gridMonth *format.Spec
	monthBase int
	need      format.Need
	rule      DisabledRule
	store     *store.MemoryStore[Selection]
	logger    *slog.Logger

	onSelect           []func(Selection)
	onSelectionChanged []func([]Selection)
	onGridRefresh      []func()
	onPositionChanged  []func(Placement)

	onVisibilityChanged []func(bool)

	mu           sync.Mutex
	year         int // navigation year; first year of the page in ModeYear
	visible      bool
	generation   uint64
	timer        *time.Timer
	refreshDelay time.Duration
	disposed     bool
}

// New creates a [Picker] with the given options.
//
// Defaults:
//   - Mode: month-year, single-select
//   - Display format: "MM/YYYY" ("YYYY" in year mode)
//   - Grid month format: "MMMM"
//   - Month base: 1
//   - Year: the current year
//   - Refresh delay: 16ms
//
// The initial selection comes from [WithSelections], else [WithValue], else
// [WithElementText], else it is empty.
//
// Returns an error if any option is invalid or the display format lacks the
// tokens the mode needs.
func New(opts ...Option) (*Picker, error) {
	cfg := &pickerConfig{
		mode:            ModeMonthYear,
		gridMonthFormat: defaultGridMonthFormat,
		monthBase:       defaultMonthBase,
		year:            time.Now().Year(),
		refreshDelay:    defaultRefreshDelay,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.displayFormat == "" {
		cfg.displayFormat = defaultDisplayFormat
		if cfg.mode == ModeYear {
			cfg.displayFormat = defaultYearDisplayFormat
		}
	}

	display, need, err := compileDisplay(cfg.displayFormat, cfg.mode)
	if err != nil {
		return nil, err
	}

	gridMonth, err := format.Compile(cfg.gridMonthFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid grid month format: %w", err)
	}
	if gridMonth, err = gridMonth.WithoutYear(); err != nil {
		return nil, fmt.Errorf("grid month format %q needs a month token: %w", cfg.gridMonthFormat, err)
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	p := &Picker{
		id:                  id,
		mode:                cfg.mode,
		display:             display,
		gridMonth:           gridMonth,
		monthBase:           cfg.monthBase,
		need:                need,
		rule:                cfg.disabledRule,
		store:               store.NewMemoryStore[Selection](cfg.multiSelect, cfg.disabledRule),
		logger:              logger.With("picker_id", id),
		onSelect:            cfg.onSelect,
		onSelectionChanged:  cfg.onSelectionChanged,
		onGridRefresh:       cfg.onGridRefresh,
		onPositionChanged:   cfg.onPositionChanged,
		onVisibilityChanged: cfg.onVisibilityChanged,
		year:                cfg.year,
		refreshDelay:        cfg.refreshDelay,
	}
	if p.mode == ModeYear {
		p.year = clampPageStart(cfg.year - yearPageSize/2)
	}

	switch {
	case cfg.hasSelections:
		p.store.ReplaceAll(p.normalizeAll(cfg.selections))
	case cfg.hasValue:
		p.store.ReplaceAll(p.ParseList(cfg.value))
	case cfg.elementText != "":
		p.store.ReplaceAll(p.ParseList(cfg.elementText))
	}

	p.logger.Debug("picker created",
		"mode", p.mode,
		"multi_select", cfg.multiSelect,
		"display_format", display.Layout(),
		"selections", len(p.store.Snapshot()),
	)
	return p, nil
}

// compileDisplay compiles layout and strips the tokens mode does not track.
func compileDisplay(layout string, mode Mode) (*format.Spec, format.Need, error) {
	spec, err := format.Compile(layout)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid display format: %w", err)
	}

	switch mode {
	case ModeMonth:
		if spec, err = spec.WithoutYear(); err != nil {
			return nil, 0, fmt.Errorf("display format %q needs a month token in %s mode", layout, mode)
		}
		return spec, format.NeedMonth, nil
	case ModeYear:
		if spec, err = spec.WithoutMonth(); err != nil {
			return nil, 0, fmt.Errorf("display format %q needs a year token in %s mode", layout, mode)
		}
		return spec, format.NeedYear, nil
	default:
		if !spec.HasMonth() || !spec.HasYear() {
			return nil, 0, fmt.Errorf("display format %q needs month and year tokens in %s mode", layout, mode)
		}
		return spec, format.NeedMonth | format.NeedYear, nil
	}
}

// ID returns the picker's unique instance identifier.
func (p *Picker) ID() string {
	return p.id
}

// Mode returns the configured mode.
func (p *Picker) Mode() Mode {
	return p.mode
}

// MultiSelect reports whether the picker is in multi-select mode.
func (p *Picker) MultiSelect() bool {
	return p.store.Multi()
}

// MonthBase returns the external month numbering origin.
func (p *Picker) MonthBase() int {
	return p.monthBase
}

// DisplayFormat returns the effective display layout after mode stripping.
func (p *Picker) DisplayFormat() string {
	return p.display.Layout()
}

// Format renders one selection in the display format.
func (p *Picker) Format(s Selection) string {
	return p.display.Format(toValue(s, p.mode), p.monthBase)
}

// FormatAll renders selections in the display format, joined with ", ".
func (p *Picker) FormatAll(selections []Selection) string {
	parts := make([]string, len(selections))
	for i, s := range selections {
		parts[i] = p.Format(s)
	}
	return strings.Join(parts, ", ")
}

// Parse converts one piece of display text into a selection.
//
// Returns [ErrFormatMismatch] when the text does not match the display
// format and [ErrIncompleteSelection] when a required component is missing.
// In month mode a bare month number or month name is also accepted; in year
// mode a bare year is also accepted.
func (p *Picker) Parse(text string) (Selection, error) {
	v, err := p.display.Parse(text, p.monthBase, p.need)

	switch p.mode {
	case ModeMonth:
		if err == nil {
			return MonthOnly(v.Month), nil
		}
		if month, ok := format.ParseMonthLoose(text, p.monthBase); ok {
			return MonthOnly(month), nil
		}
	case ModeYear:
		if err == nil {
			return YearOnly(v.Year), nil
		}
		if year, ok := format.ParseYearLoose(text); ok {
			return YearOnly(year), nil
		}
	default:
		if err == nil {
			return MonthYear(v.Month, v.Year), nil
		}
	}
	return Selection{}, err
}

// ParseOne is like [Picker.Parse] but reports failure as ok=false, which
// suits keystroke-by-keystroke input where failures are expected.
func (p *Picker) ParseOne(text string) (Selection, bool) {
	s, err := p.Parse(text)
	return s, err == nil
}

// ParseList splits text on commas and parses each trimmed part. Parts that
// fail to parse are dropped. The result is never nil.
func (p *Picker) ParseList(text string) []Selection {
	parts := format.SplitList(text)
	out := make([]Selection, 0, len(parts))
	for _, part := range parts {
		s, err := p.Parse(part)
		if err != nil {
			p.logger.Debug("dropping unparseable value", "text", part, "error", err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Check reports whether s could be toggled: it returns
// [ErrRejectedByPolicy] if the disabled rule vetoes it and nil otherwise.
func (p *Picker) Check(s Selection) error {
	if p.rule != nil && p.rule(p.normalize(s)) {
		return ErrRejectedByPolicy
	}
	return nil
}

// Toggle flips the selection of month within year. In month mode year is
// ignored; in year mode month is ignored. Month is 0-indexed.
//
// Returns false, changing nothing, if the value is disabled, the month is
// out of range, or the picker is disposed.
func (p *Picker) Toggle(month, year int) bool {
	var s Selection
	switch p.mode {
	case ModeMonth:
		s = MonthOnly(month)
	case ModeYear:
		s = YearOnly(year)
	default:
		s = MonthYear(month, year)
	}
	return p.toggle(s)
}

// ToggleMonth flips month within the currently displayed year. This is the
// path a grid click takes in month and month-year modes.
func (p *Picker) ToggleMonth(month int) bool {
	return p.Toggle(month, p.CurrentYear())
}

// Snapshot returns the current selections in insertion order.
// The returned slice is a copy; modifying it does not affect the picker.
func (p *Picker) Snapshot() []Selection {
	return p.store.Snapshot()
}

// Value returns the current selections rendered for the host element.
func (p *Picker) Value() string {
	return p.FormatAll(p.store.Snapshot())
}

// Export returns the current selections in their external, month-base
// shifted form for a host's structured side-channel attribute.
func (p *Picker) Export() []ExternalSelection {
	snap := p.store.Snapshot()
	out := make([]ExternalSelection, len(snap))
	for i, s := range snap {
		if p.mode != ModeYear {
			month := s.Month + p.monthBase
			out[i].Month = &month
		}
		if s.HasYear {
			year := s.Year
			out[i].Year = &year
		}
	}
	return out
}

// SetValue replaces the selection with the parsed contents of text, as when
// the host element's value is edited directly. Unparseable parts are
// dropped; the disabled rule is not consulted.
func (p *Picker) SetValue(text string) {
	if p.isDisposed() {
		return
	}
	p.store.ReplaceAll(p.ParseList(text))
	p.selectionChanged()
}

// SetSelections replaces the selection with selections.
func (p *Picker) SetSelections(selections ...Selection) {
	if p.isDisposed() {
		return
	}
	p.store.ReplaceAll(p.normalizeAll(selections))
	p.selectionChanged()
}

// Clear removes every selection.
func (p *Picker) Clear() {
	if p.isDisposed() {
		return
	}
	p.store.Clear()
	p.selectionChanged()
}

// Subscribe returns a channel receiving a selection snapshot after every
// mutation. Caller must call [Picker.Unsubscribe] when done. The channel is
// closed by [Picker.Dispose].
func (p *Picker) Subscribe() <-chan []Selection {
	return p.store.Subscribe()
}

// Unsubscribe removes a subscription and closes its channel.
func (p *Picker) Unsubscribe(ch <-chan []Selection) {
	p.store.Unsubscribe(ch)
}

// Dispose releases the picker: it hides the popup, cancels any pending
// position refresh, and closes subscriptions. Later mutations are no-ops.
// Safe to call multiple times.
func (p *Picker) Dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	wasVisible := p.visible
	p.visible = false
	p.cancelRefreshLocked()
	p.mu.Unlock()

	if wasVisible {
		p.visibilityChanged(false)
	}
	p.store.Close()
	p.logger.Debug("picker disposed")
}

func (p *Picker) isDisposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

// toggle applies a normalised selection and fires callbacks.
func (p *Picker) toggle(s Selection) bool {
	if p.isDisposed() {
		return false
	}
	if p.mode != ModeYear && (s.Month < 0 || s.Month > 11) {
		p.logger.Debug("toggle ignored: month out of range", "month", s.Month)
		return false
	}
	if s.HasYear && (s.Year < MinYear || s.Year > MaxYear) {
		p.logger.Debug("toggle ignored: year out of range", "year", s.Year)
		return false
	}
	if !p.store.Toggle(s) {
		p.logger.Debug("toggle rejected by disabled rule", "month", s.Month, "year", s.Year)
		return false
	}

	for _, cb := range p.onSelect {
		p.invokeSafe("on_select", func() { cb(s) })
	}
	p.selectionChanged()
	return true
}

// selectionChanged notifies rendering collaborators of a new snapshot.
func (p *Picker) selectionChanged() {
	if len(p.onSelectionChanged) > 0 {
		snap := p.store.Snapshot()
		for _, cb := range p.onSelectionChanged {
			p.invokeSafe("on_selection_changed", func() { cb(snap) })
		}
	}
	p.refreshGrid()
}

func (p *Picker) refreshGrid() {
	for _, cb := range p.onGridRefresh {
		p.invokeSafe("on_grid_refresh", cb)
	}
}

func (p *Picker) visibilityChanged(visible bool) {
	for _, cb := range p.onVisibilityChanged {
		p.invokeSafe("on_visibility_changed", func() { cb(visible) })
	}
}

// normalize coerces s into the shape the picker's mode stores.
func (p *Picker) normalize(s Selection) Selection {
	switch p.mode {
	case ModeMonth:
		return MonthOnly(s.Month)
	case ModeYear:
		return YearOnly(s.Year)
	default:
		return s
	}
}

func (p *Picker) normalizeAll(selections []Selection) []Selection {
	out := make([]Selection, 0, len(selections))
	for _, s := range selections {
		if p.mode == ModeMonthYear && !s.HasYear {
			p.logger.Debug("dropping year-less selection in month-year mode", "month", s.Month)
			continue
		}
		if p.mode != ModeYear && (s.Month < 0 || s.Month > 11) {
			p.logger.Debug("dropping selection with month out of range", "month", s.Month)
			continue
		}
		if p.mode != ModeMonth && (s.Year < MinYear || s.Year > MaxYear) {
			p.logger.Debug("dropping selection with year out of range", "year", s.Year)
			continue
		}
		out = append(out, p.normalize(s))
	}
	return out
}

// invokeSafe calls a collaborator callback with panic recovery.
// Panics are logged with a correlation id but do not propagate.
func (p *Picker) invokeSafe(callback string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("picker callback panicked",
				"callback", callback,
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
