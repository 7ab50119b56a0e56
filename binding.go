package scrollwork

// Binding is a declarative animation registered by a page component: what
// element, what properties, what scroll range, what mode. The component owns
// it; the Choreographer refers to it by ID and drops it when its Handle is
// disposed or its target leaves the document.
type Binding struct {
	ID     uint32
	Name   string
	Target *Element
	Mode   Mode

	// Range is the scroll range for scrub and pin bindings.
	Range ScrollRange
	// Timeline holds the scrub properties or a pin's inner timeline.
	Timeline Timeline
	// Measure is the container whose extent feeds Extent edges. Defaults to
	// Target.
	Measure *Element
	// Inner is the element a pin's inner timeline writes to. Defaults to
	// Target.
	Inner *Element
	// Rail makes a pin translate Inner across the measured horizontal extent.
	Rail bool

	// Smoothing lags the applied progress of scrub and pin bindings behind
	// the scroll position by about this many seconds. Range entry, locking
	// and OnToggle still follow the scroll exactly.
	Smoothing float32

	OnProgress func(progress float64)
	OnEnter    func()
	OnLeave    func()
	// OnToggle runs when the scroll position enters or leaves the range of
	// a scrub or pin binding. direction is 1 scrolling down, -1 scrolling up.
	OnToggle func(active bool, direction int)

	// Trigger holds trigger mode options.
	Trigger TriggerOptions

	c           *Choreographer
	measurement *Measurement
	resolved    ResolvedRange
	hasRange    bool
	progress    float64
	values      Values
	trigger     *triggerState
	pin         *PinSession
	stopObserve Disposer
	removed     bool
	warnedZero  bool

	smooth    progressSmoother
	active    bool
	toggled   bool
	toggleDir int
	reached   []bool
}

// Handle identifies a registered binding.
type Handle struct {
	id uint32
	c  *Choreographer
}

// Dispose unregisters the binding. Safe to call more than once.
func (h Handle) Dispose() {
	if h.c != nil {
		h.c.Unregister(h)
	}
}

// ID returns the binding's ID.
func (h Handle) ID() uint32 {
	return h.id
}

// Progress returns the binding's progress as of the last frame.
func (b *Binding) Progress() float64 {
	return b.progress
}

// Resolved returns the binding's scroll range as of the last frame.
func (b *Binding) Resolved() ResolvedRange {
	return b.resolved
}

// measureTarget is the element whose extent Extent edges use.
func (b *Binding) measureTarget() *Element {
	if b.Measure != nil {
		return b.Measure
	}
	return b.Target
}

// innerTarget is the element a pin's inner timeline writes to.
func (b *Binding) innerTarget() *Element {
	if b.Inner != nil {
		return b.Inner
	}
	return b.Target
}

// attached reports whether every element the binding writes to or measures
// is still part of the document.
func (b *Binding) attached() bool {
	for _, e := range [...]*Element{b.Target, b.Inner, b.Measure} {
		if e != nil && !e.IsAttached() {
			return false
		}
	}
	return true
}

// resolveRange recomputes the range when it was computed against an older
// token. homeRect is where the target sits in normal flow.
func (b *Binding) resolveRange(homeRect Rect, vs ViewportState, token InvalidationToken) {
	if b.hasRange && b.resolved.Token == token {
		return
	}
	if b.hasRange {
		debugf("%v", &BindingError{ID: b.ID, Name: b.Name, Mode: b.Mode, Err: ErrStaleMeasurement})
	}
	var ext Extent
	if b.measurement != nil {
		ext = b.measurement.Current()
	}
	ext.Token = token
	b.resolved = b.Range.resolve(homeRect, vs, ext)
	b.hasRange = true
	if b.resolved.Degenerate() && !b.warnedZero {
		b.warnedZero = true
		debugf("%v", &BindingError{ID: b.ID, Name: b.Name, Mode: b.Mode, Err: ErrDegenerateRange})
	}
}

// readToggle records a range entry or exit for the write phase.
func (b *Binding) readToggle(active bool, dir int) {
	if active == b.active {
		return
	}
	b.active = active
	b.toggled = true
	b.toggleDir = dir
}

func (b *Binding) fireToggle() {
	if !b.toggled {
		return
	}
	b.toggled = false
	if b.OnToggle != nil {
		b.OnToggle(b.active, b.toggleDir)
	}
}

// fireReached runs Step.OnReach for every step start the applied progress
// crossed since the last frame: 1 going forward, -1 going back. A step at 0
// counts as reached once progress leaves 0.
func (b *Binding) fireReached(p float64) {
	if len(b.reached) != len(b.Timeline) {
		b.reached = make([]bool, len(b.Timeline))
	}
	for i, st := range b.Timeline {
		now := p > 0 && p >= st.Start
		if now == b.reached[i] {
			continue
		}
		b.reached[i] = now
		if st.OnReach == nil {
			continue
		}
		if now {
			st.OnReach(1)
		} else {
			st.OnReach(-1)
		}
	}
}
