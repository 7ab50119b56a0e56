package scrollwork

// Crossing is a visibility edge reported by the ViewportObserver.
type Crossing uint8

const (
	CrossingEntered Crossing = iota // element became at least threshold visible
	CrossingLeft                    // element dropped below threshold
)

func (c Crossing) String() string {
	if c == CrossingEntered {
		return "entered"
	}
	return "left"
}

// ObserveOptions configures one observation.
type ObserveOptions struct {
	// Threshold is the visible fraction of the element's area at which it
	// counts as in view. Zero means any visible pixel.
	Threshold float64
	// Margin grows (positive) or shrinks (negative) the viewport rect on
	// every side before intersecting.
	Margin float64
}

type observation struct {
	id   uint32
	el   *Element
	opts ObserveOptions
	fn   func(Crossing)

	visible      bool // last reported state
	candidate    bool // state seen last frame that differs from visible
	hasCandidate bool
	disposed     bool
}

type pendingCrossing struct {
	obs *observation
	c   Crossing
}

// ViewportObserver reports threshold crossings of observed elements,
// measured against each element's placed box (see Element.PlacedRect). A
// crossing is reported only after the new state has held for one more frame,
// so an element whose visible fraction flickers around the threshold does
// not produce a double edge.
type ViewportObserver struct {
	obs     []*observation
	nextID  uint32
	pending []pendingCrossing
}

// NewViewportObserver creates an empty observer.
func NewViewportObserver() *ViewportObserver {
	return &ViewportObserver{}
}

// Observe starts reporting crossings of el at threshold to fn.
func (o *ViewportObserver) Observe(el *Element, threshold float64, fn func(Crossing)) Disposer {
	return o.ObserveWith(el, ObserveOptions{Threshold: threshold}, fn)
}

// ObserveWith is Observe with full options.
func (o *ViewportObserver) ObserveWith(el *Element, opts ObserveOptions, fn func(Crossing)) Disposer {
	o.nextID++
	ob := &observation{id: o.nextID, el: el, opts: opts, fn: fn}
	o.obs = append(o.obs, ob)
	return once(func() { o.remove(ob) })
}

// Len returns the number of live observations.
func (o *ViewportObserver) Len() int {
	return len(o.obs)
}

func (o *ViewportObserver) remove(ob *observation) {
	ob.disposed = true
	for i, x := range o.obs {
		if x == ob {
			copy(o.obs[i:], o.obs[i+1:])
			o.obs[len(o.obs)-1] = nil
			o.obs = o.obs[:len(o.obs)-1]
			return
		}
	}
}

// Evaluate measures and dispatches in one call. The Choreographer uses the
// split measure/dispatch pair instead so that no callback runs during its
// read phase.
func (o *ViewportObserver) Evaluate(vs ViewportState) {
	o.measure(vs)
	o.dispatch()
}

// measure reads element geometry and queues crossings. No callbacks run.
func (o *ViewportObserver) measure(vs ViewportState) {
	o.pending = o.pending[:0]
	for i := 0; i < len(o.obs); i++ {
		ob := o.obs[i]
		if !ob.el.IsAttached() {
			warnf("observed element %q detached; observation dropped", ob.el.Name)
			o.remove(ob)
			i--
			continue
		}
		now := isVisible(ob.el.PlacedRect(vs), vs, ob.opts)
		if now == ob.visible {
			ob.hasCandidate = false
			continue
		}
		if ob.hasCandidate && ob.candidate == now {
			ob.visible = now
			ob.hasCandidate = false
			c := CrossingLeft
			if now {
				c = CrossingEntered
			}
			o.pending = append(o.pending, pendingCrossing{obs: ob, c: c})
			continue
		}
		ob.candidate = now
		ob.hasCandidate = true
	}
}

// dispatch runs the callbacks queued by measure, skipping observations
// disposed by an earlier callback in the same frame.
func (o *ViewportObserver) dispatch() {
	for _, p := range o.pending {
		if p.obs.disposed {
			continue
		}
		p.obs.fn(p.c)
	}
	o.pending = o.pending[:0]
}

// VisibleFraction returns the fraction of r's area inside the viewport,
// grown by margin on every side. A zero-area rect counts as fully visible
// when its origin is inside.
func VisibleFraction(r Rect, vs ViewportState, margin float64) float64 {
	view := Rect{
		X:      vs.ScrollX - margin,
		Y:      vs.ScrollY - margin,
		Width:  vs.Width + 2*margin,
		Height: vs.Height + 2*margin,
	}
	area := r.Area()
	if area <= 0 {
		if view.Contains(r.X, r.Y) {
			return 1
		}
		return 0
	}
	return r.Intersection(view).Area() / area
}

func isVisible(r Rect, vs ViewportState, opts ObserveOptions) bool {
	f := VisibleFraction(r, vs, opts.Margin)
	if opts.Threshold <= 0 {
		return f > 0
	}
	return f >= opts.Threshold
}
