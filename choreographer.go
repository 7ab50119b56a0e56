package scrollwork

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Choreographer owns a document and drives every registered binding from
// the scroll position once per frame. It is single-threaded: call Update
// from the host's frame callback only.
type Choreographer struct {
	root     *Element
	viewport *Viewport
	signal   *ScrollSignal
	measurer *Measurer
	observer *ViewportObserver
	ambient  *AmbientRunner
	theme    *ThemeController
	sink     EventSink

	bindings []*Binding
	byID     map[uint32]*Binding
	nextID   uint32

	docMeasure    *Measurement
	reducedMotion bool
	defaults      TriggerDefaults
	lastScroll    float64
	firstFrame    bool
	updating      bool
	frame         uint64
}

// NewChoreographer creates a Choreographer with an empty document sized to
// cfg's viewport.
func NewChoreographer(cfg Config) *Choreographer {
	w, h := cfg.Viewport.Width, cfg.Viewport.Height
	root := newDocumentRoot()
	root.Width = w

	var src ScrollSource
	if cfg.SmoothScroll.Enabled {
		src = NewSpringScroll(cfg.SmoothScroll.SpringConfig)
	} else {
		src = NewWheelScroll()
	}

	c := &Choreographer{
		root:          root,
		viewport:      newViewport(w, h),
		signal:        NewScrollSignal(src),
		measurer:      NewMeasurer(w, h),
		observer:      NewViewportObserver(),
		byID:          make(map[uint32]*Binding),
		reducedMotion: cfg.ReducedMotion,
		defaults:      cfg.Trigger,
		firstFrame:    true,
	}
	c.ambient = newAmbientRunner(c)
	c.theme = newThemeController(c, cfg.Theme)
	c.docMeasure = c.measurer.Register(root)
	c.measurer.OnInvalidate(c.onInvalidate)
	return c
}

// Document returns the document root. Page components add their elements
// under it.
func (c *Choreographer) Document() *Element {
	return c.root
}

// Viewport returns the viewport.
func (c *Choreographer) Viewport() *Viewport {
	return c.viewport
}

// Signal returns the scroll signal.
func (c *Choreographer) Signal() *ScrollSignal {
	return c.signal
}

// Measurer returns the measurer.
func (c *Choreographer) Measurer() *Measurer {
	return c.measurer
}

// Observer returns the viewport observer.
func (c *Choreographer) Observer() *ViewportObserver {
	return c.observer
}

// Ambient returns the ambient loop runner.
func (c *Choreographer) Ambient() *AmbientRunner {
	return c.ambient
}

// Theme returns the theme controller.
func (c *Choreographer) Theme() *ThemeController {
	return c.theme
}

// SetEventSink sets the optional receiver of choreography events.
func (c *Choreographer) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetReducedMotion sets the reduced-motion preference. While set, new
// reveals and loops settle to their end state immediately and theme changes
// skip the reveal.
func (c *Choreographer) SetReducedMotion(enabled bool) {
	c.reducedMotion = enabled
}

// ReducedMotion reports the reduced-motion preference.
func (c *Choreographer) ReducedMotion() bool {
	return c.reducedMotion
}

// Resize sets the viewport size. The change is picked up by the measurer on
// the next frame.
func (c *Choreographer) Resize(width, height float64) {
	c.viewport.Width = width
	c.viewport.Height = height
	c.root.Width = width
}

// ScrollTo moves the page to y. A zero duration jumps immediately.
func (c *Choreographer) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	c.viewport.scrollTo(c.signal.Offset(), y, duration, easeFn)
	if duration <= 0 {
		c.signal.Correct(y)
	}
}

// Len returns the number of registered bindings.
func (c *Choreographer) Len() int {
	return len(c.byID)
}

// Binding returns the registered binding with the given ID, or nil.
func (c *Choreographer) Binding(id uint32) *Binding {
	return c.byID[id]
}

// --- Registration ---

// Register adds b and returns its handle. Bindings are evaluated in
// registration order.
func (c *Choreographer) Register(b *Binding) Handle {
	if b.Target == nil && b.Mode != ModeAmbient {
		panic("scrollwork: binding has no target")
	}
	c.nextID++
	b.ID = c.nextID
	b.c = c
	if b.Name == "" && b.Target != nil {
		b.Name = b.Target.Name
	}

	switch b.Mode {
	case ModeScrub:
		b.measurement = c.measurer.Register(b.measureTarget())
	case ModePin:
		b.measurement = c.measurer.Register(b.measureTarget())
		b.pin = newPinSession(b)
	case ModeTrigger:
		c.setupTrigger(b)
	}

	c.bindings = append(c.bindings, b)
	c.byID[b.ID] = b
	return Handle{id: b.ID, c: c}
}

// Unregister removes the binding. No further writes reach its target.
func (c *Choreographer) Unregister(h Handle) {
	b, ok := c.byID[h.id]
	if !ok {
		return
	}
	c.release(b)
}

// release tears down a binding's runtime state and marks it for removal.
// The bindings slice is compacted at the end of the frame.
func (c *Choreographer) release(b *Binding) {
	if b.removed {
		return
	}
	b.removed = true
	delete(c.byID, b.ID)
	if b.measurement != nil {
		b.measurement.Dispose()
	}
	if b.stopObserve != nil {
		b.stopObserve()
	}
	if b.trigger != nil {
		b.trigger.reveals = nil
	}
	if b.pin != nil {
		b.pin.teardown()
	}
	if !c.updating {
		c.compact()
	}
}

// compact drops removed bindings, preserving order.
func (c *Choreographer) compact() {
	n := 0
	for _, b := range c.bindings {
		if !b.removed {
			c.bindings[n] = b
			n++
		}
	}
	for i := n; i < len(c.bindings); i++ {
		c.bindings[i] = nil
	}
	c.bindings = c.bindings[:n]
}

// ScrubOptions tunes a scrub binding.
type ScrubOptions struct {
	// Smoothing lags the applied progress behind the scroll position by
	// about this many seconds. Zero follows the scroll exactly.
	Smoothing  float32
	OnProgress func(progress float64)
	// OnToggle runs when the scroll position enters or leaves the range.
	// direction is 1 scrolling down, -1 scrolling up.
	OnToggle func(active bool, direction int)
}

// RegisterScrub binds props to the scroll progress through rng.
func (c *Choreographer) RegisterScrub(el *Element, rng ScrollRange, props []Property, onProgress func(float64)) Disposer {
	return c.RegisterScrubTimeline(el, rng, Tween(props...), ScrubOptions{OnProgress: onProgress})
}

// RegisterTimeline binds a multi-step keyframe timeline to the scroll
// progress through rng.
func (c *Choreographer) RegisterTimeline(el *Element, rng ScrollRange, tl Timeline, onProgress func(float64)) Disposer {
	return c.RegisterScrubTimeline(el, rng, tl, ScrubOptions{OnProgress: onProgress})
}

// RegisterScrubTimeline is RegisterTimeline with smoothing and range toggle
// callbacks.
func (c *Choreographer) RegisterScrubTimeline(el *Element, rng ScrollRange, tl Timeline, opts ScrubOptions) Disposer {
	h := c.Register(&Binding{
		Target:     el,
		Mode:       ModeScrub,
		Range:      rng,
		Timeline:   tl,
		Smoothing:  opts.Smoothing,
		OnProgress: opts.OnProgress,
		OnToggle:   opts.OnToggle,
	})
	return once(h.Dispose)
}

// RegisterTrigger runs a one-shot reveal when el crosses opts.Threshold.
func (c *Choreographer) RegisterTrigger(el *Element, opts TriggerOptions, onEnter func()) Disposer {
	h := c.Register(&Binding{
		Target:  el,
		Mode:    ModeTrigger,
		Trigger: opts,
		OnEnter: onEnter,
		OnLeave: opts.OnLeave,
	})
	return once(h.Dispose)
}

// RegisterPin holds el in the viewport across rng while inner runs.
func (c *Choreographer) RegisterPin(el *Element, rng ScrollRange, inner PinTimeline) Disposer {
	h := c.Register(&Binding{
		Target:     el,
		Mode:       ModePin,
		Range:      rng,
		Timeline:   inner.Timeline,
		Measure:    inner.Measure,
		Inner:      inner.Target,
		Rail:       inner.Rail,
		Smoothing:  inner.Smoothing,
		OnProgress: inner.OnProgress,
		OnToggle:   inner.OnToggle,
	})
	return once(h.Dispose)
}

// RegisterAmbient starts a time-based loop.
func (c *Choreographer) RegisterAmbient(spec LoopSpec) *Loop {
	return c.ambient.Start(spec)
}

// InvalidateMeasurements forces every extent and range to be recomputed on
// the next frame. Pages call it after async content (images, fonts) loads.
func (c *Choreographer) InvalidateMeasurements() {
	c.measurer.ForceInvalidate()
}

// RunThemeTransition applies a theme change behind a circular reveal
// centered on (x, y).
func (c *Choreographer) RunThemeTransition(x, y float64, applyTheme func()) *Transition {
	return c.theme.Run(x, y, applyTheme)
}

// --- Frame ---

// Update advances one frame of dt seconds.
func (c *Choreographer) Update(dt float32) {
	c.frame++
	c.updating = true
	defer func() {
		c.updating = false
		c.compact()
	}()
	var stats frameStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	// Read phase: layout, scroll sample, measurement, range math. No style
	// writes and no page callbacks.
	layoutTree(c.root)
	c.viewport.setDocumentHeight(c.root.Height)
	if src := c.signal.Source(); src != nil {
		src.SetBounds(c.viewport.MaxScrollY())
	}
	if y, ok := c.viewport.stepScrollTween(dt); ok {
		c.signal.Correct(y)
	}
	c.viewport.setScroll(c.signal.Flush(dt))
	vs := c.viewport.State()
	c.measurer.Check(vs)
	token := c.measurer.Token()

	dir := 1
	if !c.firstFrame && vs.ScrollY < c.lastScroll {
		dir = -1
	}
	var detached []*Binding
	for _, b := range c.bindings {
		if b.removed {
			continue
		}
		if !b.attached() {
			detached = append(detached, b)
			continue
		}
		switch b.Mode {
		case ModeScrub:
			b.resolveRange(b.Target.DocumentRect(), vs, token)
			raw := b.resolved.Progress(vs.ScrollY)
			b.progress = b.smooth.step(raw, dt, b.Smoothing, c.reducedMotion)
			b.values = b.Timeline.Evaluate(b.progress)
			b.readToggle(!b.resolved.Degenerate() && b.resolved.Contains(vs.ScrollY), dir)
		case ModePin:
			b.pin.read(vs, token, dt, dir)
		}
	}
	c.observer.measure(vs)

	if globalDebug {
		stats.readTime = time.Since(t0)
		t0 = time.Now()
	}

	// Write phase.
	for _, b := range detached {
		warnf("%v", &BindingError{ID: b.ID, Name: b.Name, Mode: b.Mode, Err: ErrDetachedTarget})
		c.release(b)
	}
	writes := 0
	for i := 0; i < len(c.bindings); i++ {
		b := c.bindings[i]
		if b.removed {
			continue
		}
		switch b.Mode {
		case ModeScrub:
			writes += b.values.apply(b.Target)
			b.fireToggle()
			b.fireReached(b.progress)
			if b.OnProgress != nil {
				b.OnProgress(b.progress)
			}
		case ModePin:
			writes += b.pin.write()
		}
	}
	c.observer.dispatch()
	for _, b := range c.bindings {
		if b.trigger != nil && !b.removed {
			writes += b.trigger.update(dt)
		}
	}
	writes += c.ambient.update(dt)
	c.theme.update(dt)

	scrolled := c.firstFrame || vs.ScrollY != c.lastScroll
	c.lastScroll = vs.ScrollY
	c.firstFrame = false
	updateWorldTransform(c.root, scrollTransform(vs.ScrollX, vs.ScrollY), 1, scrolled)

	if globalDebug {
		stats.writeTime = time.Since(t0)
		stats.bindings = len(c.bindings)
		stats.writes = writes
		stats.token = token
		c.debugLog(stats)
	}
}

// onInvalidate runs after every measurement recompute.
func (c *Choreographer) onInvalidate(token InvalidationToken) {
	for _, b := range c.bindings {
		if b.pin != nil && !b.removed {
			b.pin.invalidated()
		}
	}
}

// emit forwards an event to the sink, if any.
func (c *Choreographer) emit(ev ChoreoEvent) {
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}
