package monthpicker

import "math"

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a document scroll offset.
type Point struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Geometry is everything the positioner needs to know about the page.
type Geometry struct {
	// Anchor is the bound element's box, relative to the viewport.
	Anchor Rect `json:"anchor"`

	// Popup is the measured popup size. Zero before the first layout.
	Popup Size `json:"popup"`

	// Viewport is the visible window size.
	Viewport Size `json:"viewport"`

	// Scroll is the document scroll offset.
	Scroll Point `json:"scroll"`
}

// Placement is the computed popup position in document coordinates.
type Placement struct {
	Top          float64 `json:"top"`
	Left         float64 `json:"left"`
	Above        bool    `json:"above"`
	RightAligned bool    `json:"right_aligned"`
}

// GeometrySource supplies the current page geometry. Hosts implement it
// to let the picker re-measure after the popup has been laid out.
type GeometrySource interface {
	Geometry() Geometry
}

// GeometryFunc adapts a function to [GeometrySource].
type GeometryFunc func() Geometry

// Geometry implements [GeometrySource].
func (f GeometryFunc) Geometry() Geometry {
	return f()
}

// ComputePosition places a popup next to its anchor.
//
// The popup opens below the anchor, left-aligned with it. It flips above
// when the space below is smaller than the popup and the space above is
// larger. It right-aligns with the anchor when the space right of the
// anchor's left edge is smaller than the popup width. Each coordinate is
// then clamped into [scroll, scroll+viewport-popup]; a popup larger than
// the viewport ends up with a negative margin.
//
// ComputePosition is a pure function and never fails.
func ComputePosition(g Geometry) Placement {
	var p Placement

	top := g.Anchor.Bottom()
	spaceBelow := g.Viewport.Height - g.Anchor.Bottom()
	spaceAbove := g.Anchor.Top
	if spaceBelow < g.Popup.Height && spaceAbove > g.Popup.Height {
		top = g.Anchor.Top - g.Popup.Height
		p.Above = true
	}

	left := g.Anchor.Left
	if g.Viewport.Width-g.Anchor.Left < g.Popup.Width {
		left = g.Anchor.Right() - g.Popup.Width
		p.RightAligned = true
	}

	p.Top = clamp(top+g.Scroll.Top, g.Scroll.Top, g.Scroll.Top+g.Viewport.Height-g.Popup.Height)
	p.Left = clamp(left+g.Scroll.Left, g.Scroll.Left, g.Scroll.Left+g.Viewport.Width-g.Popup.Width)
	return p
}

// clamp applies the lower bound first so that an inverted range resolves
// to hi.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
