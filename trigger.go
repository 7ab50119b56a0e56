package scrollwork

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultThreshold asks a trigger for the configured default threshold.
const DefaultThreshold = -1.0

// TriggerOptions configures a trigger binding.
type TriggerOptions struct {
	// Threshold is the visible fraction at which the target counts as
	// entered. Zero means any visible pixel; negative (DefaultThreshold)
	// uses the configured default.
	Threshold float64
	// Margin grows or shrinks the viewport rect before intersecting.
	Margin float64
	// Repeatable fires OnEnter on every distinct enter instead of once.
	Repeatable bool
	// ReverseOnLeave plays the reveal backwards when the target leaves.
	// Implies Repeatable.
	ReverseOnLeave bool

	// Reveal lists the properties animated from From to To when the target
	// enters. Empty means OnEnter only.
	Reveal []Property
	// Children is the batch to reveal. Empty means the target itself.
	Children []*Element
	// Duration is the per-element reveal time in seconds. Zero uses the
	// configured default.
	Duration float32
	// Delay is the time before the first element starts, in seconds.
	Delay float32
	// Stagger is the extra delay added per element in the batch, in seconds.
	// Negative uses the configured default; zero reveals all at once.
	Stagger float32

	OnLeave func()
}

// TriggerDefaults are the fallbacks for unset TriggerOptions fields.
type TriggerDefaults struct {
	Threshold float64 `yaml:"threshold"`
	Duration  float32 `yaml:"duration"`
	Stagger   float32 `yaml:"stagger"`
}

type triggerState struct {
	b       *Binding
	opts    TriggerOptions
	targets []*Element
	fired   int
	inside  bool
	reveals []*revealTween
}

// setupTrigger fills option defaults, renders the pre-reveal state and
// starts observing the target.
func (c *Choreographer) setupTrigger(b *Binding) {
	opts := b.Trigger
	if opts.Threshold < 0 {
		opts.Threshold = c.defaults.Threshold
	}
	if opts.Duration == 0 {
		opts.Duration = c.defaults.Duration
	}
	if opts.Stagger < 0 {
		opts.Stagger = c.defaults.Stagger
	}
	if opts.ReverseOnLeave {
		opts.Repeatable = true
	}
	ts := &triggerState{b: b, opts: opts, targets: opts.Children}
	if len(ts.targets) == 0 {
		ts.targets = []*Element{b.Target}
	}
	b.trigger = ts

	// The from-state is written up front so content does not flash before
	// its reveal.
	if len(opts.Reveal) > 0 && !c.reducedMotion {
		for _, el := range ts.targets {
			for _, p := range opts.Reveal {
				write(el, p.Name, p.From)
			}
		}
	}

	b.stopObserve = c.observer.ObserveWith(b.Target, ObserveOptions{
		Threshold: opts.Threshold,
		Margin:    opts.Margin,
	}, ts.onCrossing)
}

// Fired returns how many times the binding's enter action has run.
func (b *Binding) Fired() int {
	if b.trigger == nil {
		return 0
	}
	return b.trigger.fired
}

func (ts *triggerState) onCrossing(cr Crossing) {
	b := ts.b
	if b.removed {
		return
	}
	c := b.c
	switch cr {
	case CrossingEntered:
		ts.inside = true
		c.emit(ChoreoEvent{Type: ChoreoEntered, BindingID: b.ID, ElementID: b.Target.ID})
		if ts.fired > 0 && !ts.opts.Repeatable {
			return
		}
		ts.fired++
		ts.play(false)
		if b.OnEnter != nil {
			b.OnEnter()
		}
	case CrossingLeft:
		ts.inside = false
		c.emit(ChoreoEvent{Type: ChoreoLeft, BindingID: b.ID, ElementID: b.Target.ID})
		if ts.opts.ReverseOnLeave && ts.fired > 0 {
			ts.play(true)
		}
		if b.OnLeave != nil {
			b.OnLeave()
		}
	}
}

// play starts a staggered reveal across the batch, or its reverse.
func (ts *triggerState) play(reverse bool) {
	if len(ts.opts.Reveal) == 0 {
		return
	}
	ts.reveals = ts.reveals[:0]
	if ts.b.c.reducedMotion {
		for _, el := range ts.targets {
			for _, p := range ts.opts.Reveal {
				v := p.To
				if reverse {
					v = p.From
				}
				write(el, p.Name, v)
			}
		}
		return
	}
	for i, el := range ts.targets {
		delay := ts.opts.Delay + float32(i)*ts.opts.Stagger
		ts.reveals = append(ts.reveals, newRevealTween(el, ts.opts.Reveal, ts.opts.Duration, delay, reverse))
	}
}

// update advances running reveals. Returns the number of writes made.
func (ts *triggerState) update(dt float32) int {
	writes := 0
	running := ts.reveals[:0]
	for _, r := range ts.reveals {
		writes += r.update(dt)
		if !r.done {
			running = append(running, r)
		}
	}
	for i := len(running); i < len(ts.reveals); i++ {
		ts.reveals[i] = nil
	}
	ts.reveals = running
	return writes
}

// revealTween animates up to numProps properties on one element with a start
// delay. If the element leaves the document it stops without writing.
type revealTween struct {
	el     *Element
	names  []PropertyName
	tweens []*gween.Tween
	delay  float32
	done   bool
}

func newRevealTween(el *Element, props []Property, duration, delay float32, reverse bool) *revealTween {
	r := &revealTween{el: el, delay: delay}
	for _, p := range props {
		from, to := p.From, p.To
		if reverse {
			from, to = read(el, p.Name), p.From
		}
		fn := p.Ease
		if fn == nil {
			fn = ease.OutCubic
		}
		r.names = append(r.names, p.Name)
		r.tweens = append(r.tweens, gween.New(float32(from), float32(to), duration, fn))
	}
	return r
}

func (r *revealTween) update(dt float32) int {
	if r.done {
		return 0
	}
	if !r.el.IsAttached() {
		r.done = true
		return 0
	}
	if r.delay > 0 {
		r.delay -= dt
		if r.delay > 0 {
			return 0
		}
		dt = -r.delay
		r.delay = 0
	}
	allDone := true
	for i, tw := range r.tweens {
		val, finished := tw.Update(dt)
		write(r.el, r.names[i], float64(val))
		if !finished {
			allDone = false
		}
	}
	r.done = allDone
	return len(r.tweens)
}
