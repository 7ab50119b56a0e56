package scrollwork

import (
	"math"
	"strconv"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LoopSpec describes a time-based animation independent of scroll: floating
// badges, marquee tickers, number counters.
type LoopSpec struct {
	Target *Element
	// Properties are written every frame at the loop's progress. Each
	// property's Ease shapes its value; nil means linear.
	Properties []Property
	// Duration is one iteration in seconds.
	Duration float32
	// Delay is the time before the first iteration starts, in seconds.
	Delay float32
	// Repeat is the number of extra iterations; -1 repeats forever.
	Repeat int
	// Yoyo reverses direction on every other iteration.
	Yoyo bool
	// PauseOnHover pauses the loop while the pointer is over Target.
	PauseOnHover bool

	OnUpdate   func(progress float64)
	OnComplete func()
}

// Loop is a running ambient animation.
type Loop struct {
	r    *AmbientRunner
	spec LoopSpec

	clock     *gween.Tween
	delay     float32
	iteration int
	reversed  bool

	paused      bool
	hoverPaused bool
	finished    bool
	disposed    bool
	done        chan struct{}

	prevEnter func(PointerContext)
	prevLeave func(PointerContext)
}

// Pause stops the loop on its current frame.
func (l *Loop) Pause() {
	l.paused = true
}

// Resume continues a paused loop.
func (l *Loop) Resume() {
	l.paused = false
}

// Paused reports whether the loop is paused by Pause or by hover.
func (l *Loop) Paused() bool {
	return l.paused || l.hoverPaused
}

// Dispose stops the loop without completing it. No further writes reach the
// target. Safe to call more than once.
func (l *Loop) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.unhookHover()
	l.finish()
	l.r.compact = true
}

// Done is closed when the loop completes or is disposed.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Finished reports whether the loop ran to completion or was disposed.
func (l *Loop) Finished() bool {
	return l.finished
}

func (l *Loop) finish() {
	if l.finished {
		return
	}
	l.finished = true
	close(l.done)
}

// update advances the loop by dt seconds. Returns the number of style
// writes.
func (l *Loop) update(dt float32) int {
	if l.finished || l.paused || l.hoverPaused {
		return 0
	}
	if l.spec.Target != nil && !l.spec.Target.IsAttached() {
		warnf("ambient loop target %q detached; loop stopped", l.spec.Target.Name)
		l.Dispose()
		return 0
	}
	if l.delay > 0 {
		l.delay -= dt
		if l.delay > 0 {
			return 0
		}
		dt = -l.delay
		l.delay = 0
	}

	val, iterDone := l.clock.Update(dt)
	p := float64(val)
	if l.reversed {
		p = 1 - p
	}
	writes := l.apply(p)

	if iterDone {
		l.iteration++
		if l.spec.Repeat >= 0 && l.iteration > l.spec.Repeat {
			l.complete()
			return writes
		}
		if l.spec.Yoyo {
			l.reversed = !l.reversed
		}
		l.clock = newLoopClock(l.spec.Duration)
	}
	return writes
}

func (l *Loop) apply(p float64) int {
	n := 0
	if t := l.spec.Target; t != nil {
		for _, prop := range l.spec.Properties {
			write(t, prop.Name, prop.At(p))
			n++
		}
	}
	if l.spec.OnUpdate != nil {
		l.spec.OnUpdate(p)
	}
	return n
}

func (l *Loop) complete() {
	l.unhookHover()
	l.finish()
	l.r.compact = true
	if l.spec.OnComplete != nil {
		l.spec.OnComplete()
	}
}

// hookHover chains the target's pointer callbacks so hovering pauses the loop.
func (l *Loop) hookHover() {
	t := l.spec.Target
	if t == nil {
		return
	}
	t.Interactable = true
	l.prevEnter, l.prevLeave = t.OnPointerEnter, t.OnPointerLeave
	t.OnPointerEnter = func(ctx PointerContext) {
		l.hoverPaused = true
		if l.prevEnter != nil {
			l.prevEnter(ctx)
		}
	}
	t.OnPointerLeave = func(ctx PointerContext) {
		l.hoverPaused = false
		if l.prevLeave != nil {
			l.prevLeave(ctx)
		}
	}
}

func (l *Loop) unhookHover() {
	if !l.spec.PauseOnHover || l.spec.Target == nil || l.spec.Target.disposed {
		return
	}
	l.spec.Target.OnPointerEnter = l.prevEnter
	l.spec.Target.OnPointerLeave = l.prevLeave
	l.hoverPaused = false
}

// newLoopClock is the linear 0..1 clock for one iteration.
func newLoopClock(duration float32) *gween.Tween {
	if duration <= 0 {
		duration = 1e-6
	}
	return gween.New(0, 1, duration, ease.Linear)
}

// AmbientRunner drives every ambient loop once per frame.
type AmbientRunner struct {
	c       *Choreographer
	loops   []*Loop
	compact bool
}

func newAmbientRunner(c *Choreographer) *AmbientRunner {
	return &AmbientRunner{c: c}
}

// Start begins a loop. Under reduced motion the loop writes its end state
// once and completes immediately.
func (r *AmbientRunner) Start(spec LoopSpec) *Loop {
	l := &Loop{
		r:     r,
		spec:  spec,
		clock: newLoopClock(spec.Duration),
		delay: spec.Delay,
		done:  make(chan struct{}),
	}
	if r.c.reducedMotion {
		l.apply(1)
		l.complete()
		return l
	}
	if spec.PauseOnHover {
		l.hookHover()
	}
	r.loops = append(r.loops, l)
	return l
}

// Len returns the number of running loops.
func (r *AmbientRunner) Len() int {
	n := 0
	for _, l := range r.loops {
		if !l.finished {
			n++
		}
	}
	return n
}

func (r *AmbientRunner) update(dt float32) int {
	writes := 0
	for i := 0; i < len(r.loops); i++ {
		writes += r.loops[i].update(dt)
	}
	if r.compact {
		r.compact = false
		n := 0
		for _, l := range r.loops {
			if !l.finished {
				r.loops[n] = l
				n++
			}
		}
		for i := n; i < len(r.loops); i++ {
			r.loops[i] = nil
		}
		r.loops = r.loops[:n]
	}
	return writes
}

// --- Counters ---

// CounterSpec describes a number that counts up from zero the first time its
// element enters the viewport.
type CounterSpec struct {
	Value    int
	Duration float32
	// Ease shapes the count; nil means ease.OutCubic.
	Ease   ease.TweenFunc
	Prefix string
	Suffix string
	// Threshold is the visible fraction that starts the count, as in
	// TriggerOptions.
	Threshold float64
}

// FormatCount renders n with its prefix and suffix.
func (s CounterSpec) FormatCount(n int) string {
	return s.Prefix + strconv.Itoa(n) + s.Suffix
}

// RegisterCounter binds a counter to el's first entry into view. Once the
// count has run it never restarts for the life of the registration, however
// often el re-enters. The element shows zero until then.
func (c *Choreographer) RegisterCounter(el *Element, spec CounterSpec) Disposer {
	fn := spec.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	writeText(el, spec.FormatCount(0))

	var loop *Loop
	stop := c.RegisterTrigger(el, TriggerOptions{Threshold: spec.Threshold}, func() {
		if loop != nil {
			return
		}
		loop = c.ambient.Start(LoopSpec{
			Target:   el,
			Duration: spec.Duration,
			OnUpdate: func(p float64) {
				v := float64(fn(float32(p), 0, 1, 1)) * float64(spec.Value)
				writeText(el, spec.FormatCount(int(math.Round(v))))
			},
		})
	})
	return once(func() {
		stop()
		if loop != nil {
			loop.Dispose()
		}
	})
}

// --- Tickers ---

// TickerSpec describes an endless horizontal marquee. Strip holds the items
// twice in a row so that sliding it left by half its width loops seamlessly.
type TickerSpec struct {
	Strip *Element
	// Speed is the scroll speed in pixels per second.
	Speed float64
	// Reverse scrolls right instead of left.
	Reverse      bool
	PauseOnHover bool
}

// RegisterTicker starts a marquee loop over spec.Strip.
func (c *Choreographer) RegisterTicker(spec TickerSpec) *Loop {
	strip := spec.Strip
	layoutTree(strip)
	half := strip.Width / 2
	speed := spec.Speed
	if speed <= 0 {
		speed = 50
	}
	from, to := 0.0, -half
	if spec.Reverse {
		from, to = -half, 0
	}
	return c.ambient.Start(LoopSpec{
		Target:       strip,
		Properties:   []Property{{Name: PropTranslateX, From: from, To: to}},
		Duration:     float32(half / speed),
		Repeat:       -1,
		PauseOnHover: spec.PauseOnHover,
	})
}
