package scrollwork

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Theme is a light or dark palette. Elements with a Role take their color
// from Palette.
type Theme struct {
	Dark    bool
	Palette map[string]Color
}

// Color returns the palette color for role.
func (t Theme) Color(role string) (Color, bool) {
	c, ok := t.Palette[role]
	return c, ok
}

// Background returns the "background" role color, or white/near-black.
func (t Theme) Background() Color {
	if c, ok := t.Palette["background"]; ok {
		return c
	}
	if t.Dark {
		return Color{0.07, 0.07, 0.08, 1}
	}
	return ColorWhite
}

// LightTheme and DarkTheme are the default palettes.
var (
	LightTheme = Theme{Palette: map[string]Color{
		"background": {0.98, 0.98, 0.97, 1},
		"surface":    {1, 1, 1, 1},
		"text":       {0.09, 0.09, 0.11, 1},
		"muted":      {0.42, 0.42, 0.46, 1},
		"accent":     {0.93, 0.27, 0.2, 1},
	}}
	DarkTheme = Theme{Dark: true, Palette: map[string]Color{
		"background": {0.06, 0.06, 0.07, 1},
		"surface":    {0.12, 0.12, 0.14, 1},
		"text":       {0.95, 0.95, 0.93, 1},
		"muted":      {0.6, 0.6, 0.64, 1},
		"accent":     {1, 0.4, 0.3, 1},
	}}
)

// ThemeConfig configures the theme controller.
type ThemeConfig struct {
	// Dark starts the page in the dark theme.
	Dark bool `yaml:"dark"`
	// Duration is the circle reveal time in seconds.
	Duration float32 `yaml:"duration"`
	// Transitions enables the circle reveal. When false theme changes apply
	// instantly.
	Transitions bool `yaml:"transitions"`
}

// Transition is one theme change. Done is closed once the new theme is
// fully shown.
type Transition struct {
	// X and Y are the reveal center in viewport coordinates.
	X, Y float64
	// Radius is the final circle radius: the distance from the center to
	// the farthest viewport corner.
	Radius float64

	current  float64
	tween    *gween.Tween
	animated bool
	finished bool
	done     chan struct{}
}

// Done is closed when the transition finishes.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether the transition has finished.
func (t *Transition) Finished() bool {
	return t.finished
}

// Animated reports whether the transition uses the circle reveal.
func (t *Transition) Animated() bool {
	return t.animated
}

// CurrentRadius returns the reveal radius as of the last frame.
func (t *Transition) CurrentRadius() float64 {
	return t.current
}

func (t *Transition) finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.current = t.Radius
	close(t.done)
}

// RevealRadius returns the distance from (x, y) to the farthest corner of a
// width x height viewport.
func RevealRadius(x, y, width, height float64) float64 {
	r := 0.0
	for _, cx := range [2]float64{0, width} {
		for _, cy := range [2]float64{0, height} {
			r = max(r, math.Hypot(cx-x, cy-y))
		}
	}
	return r
}

type themeSub struct {
	id uint32
	fn func(Theme)
}

// ThemeController owns the page theme and runs circular reveal transitions
// between themes.
type ThemeController struct {
	c      *Choreographer
	cfg    ThemeConfig
	light  Theme
	dark   Theme
	isDark bool
	subs   []themeSub
	nextID uint32
	active *Transition
	// generation increments with every animated transition so renderers
	// know when to capture a fresh snapshot of the outgoing theme.
	generation uint64
}

func newThemeController(c *Choreographer, cfg ThemeConfig) *ThemeController {
	if cfg.Duration <= 0 {
		cfg.Duration = 0.6
	}
	return &ThemeController{c: c, cfg: cfg, light: LightTheme, dark: DarkTheme, isDark: cfg.Dark}
}

// SetPalettes replaces the light and dark palettes.
func (tc *ThemeController) SetPalettes(light, dark Theme) {
	light.Dark, dark.Dark = false, true
	tc.light, tc.dark = light, dark
	tc.notify()
}

// SetTransitionsEnabled turns the circle reveal on or off.
func (tc *ThemeController) SetTransitionsEnabled(enabled bool) {
	tc.cfg.Transitions = enabled
}

// Current returns the applied theme.
func (tc *ThemeController) Current() Theme {
	if tc.isDark {
		return tc.dark
	}
	return tc.light
}

// Dark reports whether the dark theme is applied.
func (tc *ThemeController) Dark() bool {
	return tc.isDark
}

// SetDark applies the theme immediately, without a transition.
func (tc *ThemeController) SetDark(dark bool) {
	if tc.isDark == dark {
		return
	}
	tc.isDark = dark
	tc.notify()
}

// Toggle flips between light and dark behind a reveal centered on (x, y).
func (tc *ThemeController) Toggle(x, y float64) *Transition {
	return tc.Run(x, y, func() { tc.SetDark(!tc.isDark) })
}

// Subscribe registers fn to receive the theme whenever it changes.
func (tc *ThemeController) Subscribe(fn func(Theme)) Disposer {
	tc.nextID++
	id := tc.nextID
	tc.subs = append(tc.subs, themeSub{id: id, fn: fn})
	return once(func() {
		for i := range tc.subs {
			if tc.subs[i].id == id {
				copy(tc.subs[i:], tc.subs[i+1:])
				tc.subs[len(tc.subs)-1] = themeSub{}
				tc.subs = tc.subs[:len(tc.subs)-1]
				return
			}
		}
	})
}

func (tc *ThemeController) notify() {
	th := tc.Current()
	for _, s := range append([]themeSub(nil), tc.subs...) {
		s.fn(th)
	}
}

// Active returns the running animated transition, or nil.
func (tc *ThemeController) Active() *Transition {
	return tc.active
}

// Generation returns a counter that changes whenever an animated transition
// starts.
func (tc *ThemeController) Generation() uint64 {
	return tc.generation
}

// Run applies a theme change behind a circle growing from (x, y) to the
// farthest viewport corner. When transitions are disabled or reduced motion
// is on, apply runs synchronously and the returned Transition is already
// done. A transition started while another runs finishes the running one
// first.
func (tc *ThemeController) Run(x, y float64, apply func()) *Transition {
	if tc.active != nil {
		tc.active.finish()
		tc.active = nil
	}
	vp := tc.c.viewport
	t := &Transition{
		X:      x,
		Y:      y,
		Radius: RevealRadius(x, y, vp.Width, vp.Height),
		done:   make(chan struct{}),
	}

	if !tc.cfg.Transitions || tc.c.reducedMotion {
		debugf("theme change: %v", ErrUnsupportedTransition)
		tc.apply(apply)
		t.finish()
		return t
	}

	t.animated = true
	t.tween = gween.New(0, float32(t.Radius), tc.cfg.Duration, ease.InOutCubic)
	tc.generation++
	tc.active = t
	tc.apply(apply)
	return t
}

func (tc *ThemeController) apply(apply func()) {
	if apply != nil {
		apply()
	}
	tc.c.emit(ChoreoEvent{Type: ChoreoThemeChanged, Dark: tc.isDark})
}

// update advances the running reveal.
func (tc *ThemeController) update(dt float32) {
	t := tc.active
	if t == nil {
		return
	}
	val, done := t.tween.Update(dt)
	t.current = float64(val)
	if done {
		t.finish()
		tc.active = nil
	}
}
