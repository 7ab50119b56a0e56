package scrollwork

// PinState is the lifecycle state of a PinSession.
type PinState uint8

const (
	PinIdle      PinState = iota // target in normal flow
	PinLocked                    // target held at its viewport position
	PinReleasing                 // target returned to flow this frame
)

func (s PinState) String() string {
	switch s {
	case PinIdle:
		return "idle"
	case PinLocked:
		return "locked"
	case PinReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// PinTimeline is the inner timeline a pin binding drives while its target is
// held.
type PinTimeline struct {
	// Timeline runs against the pin's progress.
	Timeline Timeline
	// Measure is the container whose extent sizes Extent edges, usually the
	// horizontal content strip. Defaults to the pinned element.
	Measure *Element
	// Target receives the inner timeline's writes. Defaults to the pinned
	// element.
	Target *Element
	// Rail translates Target horizontally by -progress times the measured
	// horizontal scroll extent.
	Rail bool
	// Smoothing lags the inner timeline and rail behind the scroll position
	// by about this many seconds. Locking follows the scroll exactly.
	Smoothing float32

	OnProgress func(progress float64)
	OnToggle   func(active bool, direction int)
}

// RailTimeline is the horizontal rail: content slides left across exactly its
// overflow while the section is pinned. Pair it with PinRange.
func RailTimeline(content *Element) PinTimeline {
	return PinTimeline{Measure: content, Target: content, Rail: true}
}

// PinSession holds one pin binding's runtime state.
//
// While locked, a placeholder of the target's size sits at the target's flow
// index and the target is drawn at a fixed viewport position. A spacer the
// length of the range follows the target for the binding's lifetime, so the
// page scrolls through the pin without the following content moving under
// it. Past the end the target stays offset by the range length; before the
// start the offset is zero, so scrolling back restores the pre-pin layout.
type PinSession struct {
	b     *Binding
	state PinState

	lockedRect  Rect
	viewX       float64
	viewY       float64
	placeholder *Element
	spacer      *Element

	scroll   float64
	progress float64 // raw, from the scroll position
	shown    float64 // applied, after smoothing
	values   Values
	inside   bool

	// Re-anchoring after an invalidation while locked.
	reanchor     bool
	anchor       float64
	anchorRange  ResolvedRange
	correction   float64
	pendingFixup bool
}

func newPinSession(b *Binding) *PinSession {
	return &PinSession{b: b}
}

// Pin returns the binding's pin session, or nil for other modes.
func (b *Binding) Pin() *PinSession {
	return b.pin
}

// State returns the session's state.
func (ps *PinSession) State() PinState {
	return ps.state
}

// LockedRect returns the target's document rect captured when it locked.
func (ps *PinSession) LockedRect() Rect {
	return ps.lockedRect
}

// Placeholder returns the element holding the target's flow slot while
// locked, or nil.
func (ps *PinSession) Placeholder() *Element {
	return ps.placeholder
}

// Progress returns the pin's progress as of the last frame.
func (ps *PinSession) Progress() float64 {
	return ps.progress
}

// AppliedProgress returns the progress the inner timeline ran at last frame.
// It trails Progress when the binding has Smoothing.
func (ps *PinSession) AppliedProgress() float64 {
	return ps.shown
}

// homeRect is where the target sits in flow, ignoring pin offsets.
func (ps *PinSession) homeRect() Rect {
	if ps.placeholder != nil && ps.placeholder.Parent != nil {
		return ps.placeholder.DocumentRect()
	}
	r := ps.b.Target.DocumentRect()
	r.Y -= ps.b.Target.flowOffsetY
	return r
}

// read resolves the range and computes this frame's progress. No writes.
func (ps *PinSession) read(vs ViewportState, token InvalidationToken, dt float32, dir int) {
	b := ps.b
	home := ps.homeRect()
	b.resolveRange(home, vs, token)
	r := b.resolved

	scroll := vs.ScrollY
	if ps.reanchor {
		ps.reanchor = false
		if r.Start != ps.anchorRange.Start || r.End != ps.anchorRange.End {
			scroll = r.Start + ps.anchor*r.Length()
			ps.correction = scroll
			ps.pendingFixup = true
			debugf("pin %q re-anchored to %.1f (progress %.3f)", b.Name, scroll, ps.anchor)
		}
	}

	ps.scroll = scroll
	ps.progress = r.Progress(scroll)
	ps.inside = !r.Degenerate() && r.Contains(scroll)
	ps.viewX = home.X - vs.ScrollX
	ps.viewY = home.Y - r.Start
	ps.shown = b.smooth.step(ps.progress, dt, b.Smoothing, b.c.reducedMotion)
	ps.values = b.Timeline.Evaluate(ps.shown)
	b.progress = ps.shown
	b.readToggle(ps.inside, dir)
}

// write applies the state transition, the pin spacing and the inner
// timeline. Returns the number of style writes.
func (ps *PinSession) write() int {
	b := ps.b
	target := b.Target
	r := b.resolved
	ps.ensureSpacer(r.Length())

	switch {
	case ps.inside && ps.state != PinLocked:
		ps.lock()
	case ps.inside:
		ps.hold()
	case ps.state == PinLocked:
		ps.release()
	case ps.state == PinReleasing:
		ps.state = PinIdle
	}

	if ps.state != PinLocked {
		off := 0.0
		if !r.Degenerate() && ps.scroll > r.End {
			off = r.Length()
		}
		if target.flowOffsetY != off {
			target.flowOffsetY = off
			markSubtreeDirty(target)
		}
	}

	inner := b.innerTarget()
	writes := ps.values.apply(inner)
	if b.Rail && b.measurement != nil {
		write(inner, PropTranslateX, -ps.shown*b.measurement.Current().ScrollWidth)
		writes++
	}
	b.fireToggle()
	b.fireReached(ps.shown)
	if b.OnProgress != nil {
		b.OnProgress(ps.shown)
	}

	if ps.pendingFixup {
		ps.pendingFixup = false
		b.c.signal.Correct(ps.correction)
	}
	return writes
}

func (ps *PinSession) lock() {
	b := ps.b
	target := b.Target
	ps.lockedRect = ps.homeRect()
	ps.state = PinLocked

	if parent := target.Parent; parent != nil && ps.placeholder == nil {
		ph := NewElement(target.Name+"-pin-placeholder", target.Width, target.Height)
		ph.X, ph.Y = target.X, target.Y
		ph.Visible = false
		parent.AddChildAt(ph, parent.IndexOf(target))
		ps.placeholder = ph
	}
	target.position = positionFixed
	target.flowOffsetY = 0
	target.fixedX, target.fixedY = ps.viewX, ps.viewY
	markSubtreeDirty(target)

	debugf("pin %q locked at %.1f", b.Name, ps.scroll)
	b.c.emit(ChoreoEvent{Type: ChoreoPinLocked, BindingID: b.ID, ElementID: target.ID, Progress: ps.progress})
}

// hold keeps a locked target in place, following resizes.
func (ps *PinSession) hold() {
	target := ps.b.Target
	if ps.placeholder != nil {
		ps.placeholder.SetSize(target.Width, target.Height)
		ps.lockedRect = ps.placeholder.DocumentRect()
	}
	if target.fixedX != ps.viewX || target.fixedY != ps.viewY {
		target.fixedX, target.fixedY = ps.viewX, ps.viewY
		markSubtreeDirty(target)
	}
}

func (ps *PinSession) release() {
	b := ps.b
	ps.state = PinReleasing
	ps.removePlaceholder()
	b.Target.position = positionFlow
	markSubtreeDirty(b.Target)

	debugf("pin %q released at %.1f", b.Name, ps.scroll)
	b.c.emit(ChoreoEvent{Type: ChoreoPinReleased, BindingID: b.ID, ElementID: b.Target.ID, Progress: ps.progress})
}

// ensureSpacer keeps a spacer of height length right after the target (or
// its placeholder) in a column parent.
func (ps *PinSession) ensureSpacer(length float64) {
	target := ps.b.Target
	parent := target.Parent
	if parent == nil || parent.Flow != FlowColumn {
		return
	}
	if ps.spacer == nil {
		ps.spacer = NewElement(target.Name+"-pin-spacer", 0, 0)
		ps.spacer.Visible = false
		parent.AddChildAt(ps.spacer, parent.IndexOf(target)+1)
	}
	ps.spacer.SetSize(target.Width, length)
}

func (ps *PinSession) removePlaceholder() {
	if ps.placeholder != nil {
		ps.placeholder.Dispose()
		ps.placeholder = nil
	}
}

// invalidated records the current progress so the next read can re-anchor
// the scroll position against the recomputed range.
func (ps *PinSession) invalidated() {
	if ps.state != PinLocked {
		return
	}
	ps.reanchor = true
	ps.anchor = ps.progress
	ps.anchorRange = ps.b.resolved
}

// teardown returns the target to flow and removes the placeholder and
// spacer.
func (ps *PinSession) teardown() {
	ps.removePlaceholder()
	if ps.spacer != nil {
		ps.spacer.Dispose()
		ps.spacer = nil
	}
	t := ps.b.Target
	if !t.disposed {
		t.position = positionFlow
		t.flowOffsetY = 0
		markSubtreeDirty(t)
	}
	ps.state = PinIdle
}
