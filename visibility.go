package monthpicker

import "time"

// Show marks the popup visible and returns its placement for the geometry
// src reports now.
//
// Popup dimensions are usually unknown until the host has laid the popup
// out, so Show also schedules one deferred refresh after the configured
// refresh delay. The refresh re-reads src, recomputes the placement, and
// hands it to the [WithPositionChanged] callbacks before asking for a grid
// refresh. A later [Picker.Hide], [Picker.Show] or [Picker.Dispose]
// cancels a pending refresh. Showing a hidden popup notifies the
// [WithVisibilityChanged] callbacks.
func (p *Picker) Show(src GeometrySource) Placement {
	placement := ComputePosition(src.Geometry())

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return placement
	}
	wasVisible := p.visible
	p.visible = true
	p.cancelRefreshLocked()
	generation := p.generation
	p.timer = time.AfterFunc(p.refreshDelay, func() {
		p.refreshPosition(generation, src)
	})
	p.mu.Unlock()

	p.logger.Debug("picker shown", "top", placement.Top, "left", placement.Left)
	if !wasVisible {
		p.visibilityChanged(true)
	}
	return placement
}

// Hide marks the popup hidden and cancels any pending position refresh.
// Hiding a visible popup notifies the [WithVisibilityChanged] callbacks.
func (p *Picker) Hide() {
	p.mu.Lock()
	if !p.visible {
		p.mu.Unlock()
		return
	}
	p.visible = false
	p.cancelRefreshLocked()
	p.mu.Unlock()

	p.logger.Debug("picker hidden")
	p.visibilityChanged(false)
}

// Visible reports whether the popup is currently shown.
func (p *Picker) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Pick toggles the selection a grid cell stands for. In single-select mode
// an accepted pick also hides the popup.
func (p *Picker) Pick(c Cell) bool {
	if c.Disabled {
		return false
	}
	applied := p.toggle(p.normalize(c.Selection))
	if applied && !p.MultiSelect() {
		p.Hide()
	}
	return applied
}

// cancelRefreshLocked stops the pending refresh timer. Bumping the
// generation also turns a refresh that already fired into a no-op.
// Caller must hold p.mu.
func (p *Picker) cancelRefreshLocked() {
	p.generation++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// refreshPosition runs on the refresh timer's goroutine.
func (p *Picker) refreshPosition(generation uint64, src GeometrySource) {
	p.mu.Lock()
	if p.disposed || !p.visible || p.generation != generation {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.mu.Unlock()

	placement := ComputePosition(src.Geometry())
	for _, cb := range p.onPositionChanged {
		p.invokeSafe("on_position_changed", func() { cb(placement) })
	}
	p.refreshGrid()
}
