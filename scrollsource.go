package scrollwork

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// ScrollSource produces the continuous scroll offset the ScrollSignal
// samples once per frame. Raw wheel input is fed in with Wheel; the source
// decides how it turns into an offset.
type ScrollSource interface {
	// Step advances the source by dt seconds and returns the current offset.
	// ok is false once the source has been destroyed.
	Step(dt float32) (offset float64, ok bool)
	// Wheel adds a raw wheel delta in pixels. Positive scrolls down.
	Wheel(dy float64)
	// SetOffset jumps to y without animation.
	SetOffset(y float64)
	// SetBounds sets the largest reachable offset.
	SetBounds(maxY float64)
}

// --- WheelScroll ---

// WheelScroll applies wheel deltas immediately, like native page scrolling.
type WheelScroll struct {
	// Multiplier scales raw wheel deltas. Zero means 1.
	Multiplier float64

	offset float64
	maxY   float64
}

// NewWheelScroll creates a native-style scroll source.
func NewWheelScroll() *WheelScroll {
	return &WheelScroll{Multiplier: 1}
}

// Step returns the current offset. A WheelScroll never ends.
func (w *WheelScroll) Step(dt float32) (float64, bool) {
	return w.offset, true
}

// Wheel adds dy (scaled by Multiplier) to the offset, clamped to bounds.
func (w *WheelScroll) Wheel(dy float64) {
	m := w.Multiplier
	if m == 0 {
		m = 1
	}
	w.offset = clampScroll(w.offset+dy*m, w.maxY)
}

// SetOffset jumps to y, clamped to bounds.
func (w *WheelScroll) SetOffset(y float64) {
	w.offset = clampScroll(y, w.maxY)
}

// SetBounds sets the largest reachable offset.
func (w *WheelScroll) SetBounds(maxY float64) {
	w.maxY = maxY
	w.offset = clampScroll(w.offset, maxY)
}

// --- SpringScroll ---

// SpringScroll is the smooth-scroll proxy: wheel deltas move a target and a
// damped spring carries the offset toward it every frame.
type SpringScroll struct {
	// Multiplier scales raw wheel deltas. Zero means 1.
	Multiplier float64

	spring    harmonica.Spring
	freq      float64
	damp      float64
	stepDt    float32
	pos, vel  float64
	target    float64
	maxY      float64
	destroyed bool
}

// SpringConfig tunes a SpringScroll.
type SpringConfig struct {
	FPS        int     `yaml:"fps"`
	Frequency  float64 `yaml:"frequency"`
	Damping    float64 `yaml:"damping"`
	Multiplier float64 `yaml:"multiplier"`
}

// NewSpringScroll creates a smooth scroll source stepping at cfg.FPS.
func NewSpringScroll(cfg SpringConfig) *SpringScroll {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	freq := cfg.Frequency
	if freq <= 0 {
		freq = 6
	}
	damp := cfg.Damping
	if damp <= 0 {
		damp = 1
	}
	return &SpringScroll{
		Multiplier: cfg.Multiplier,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), freq, damp),
		freq:       freq,
		damp:       damp,
	}
}

// Step advances the spring by dt seconds toward the target. A non-positive
// dt steps at the configured FPS. Returns ok=false after Destroy.
func (s *SpringScroll) Step(dt float32) (float64, bool) {
	if s.destroyed {
		return s.pos, false
	}
	if dt > 0 && dt != s.stepDt {
		s.stepDt = dt
		s.spring = harmonica.NewSpring(float64(dt), s.freq, s.damp)
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.01 && math.Abs(s.vel) < 0.01 {
		s.pos, s.vel = s.target, 0
	}
	return s.pos, true
}

// Wheel moves the spring target by dy (scaled by Multiplier).
func (s *SpringScroll) Wheel(dy float64) {
	m := s.Multiplier
	if m == 0 {
		m = 1
	}
	s.target = clampScroll(s.target+dy*m, s.maxY)
}

// SetOffset jumps both the offset and the target to y and stops the spring.
func (s *SpringScroll) SetOffset(y float64) {
	y = clampScroll(y, s.maxY)
	s.pos, s.target, s.vel = y, y, 0
}

// SetBounds sets the largest reachable offset.
func (s *SpringScroll) SetBounds(maxY float64) {
	s.maxY = maxY
	s.target = clampScroll(s.target, maxY)
}

// Target returns the offset the spring is moving toward.
func (s *SpringScroll) Target() float64 {
	return s.target
}

// Destroy tears the proxy down. Subscribers of the signal reading it receive
// a terminal Complete event on the next frame.
func (s *SpringScroll) Destroy() {
	s.destroyed = true
}

// --- ManualScroll ---

// ManualScroll is driven entirely by SetOffset and Wheel. Scripted scenes and
// tests use it to place the page at exact offsets.
type ManualScroll struct {
	offset    float64
	maxY      float64
	bounded   bool
	destroyed bool
}

// NewManualScroll creates a manual scroll source. It is unbounded until
// SetBounds is called with a positive value.
func NewManualScroll() *ManualScroll {
	return &ManualScroll{}
}

// Step returns the current offset.
func (m *ManualScroll) Step(dt float32) (float64, bool) {
	return m.offset, !m.destroyed
}

// Wheel adds dy to the offset.
func (m *ManualScroll) Wheel(dy float64) {
	m.SetOffset(m.offset + dy)
}

// SetOffset sets the offset.
func (m *ManualScroll) SetOffset(y float64) {
	if m.bounded {
		y = clampScroll(y, m.maxY)
	}
	m.offset = y
}

// SetBounds clamps future offsets to [0, maxY].
func (m *ManualScroll) SetBounds(maxY float64) {
	m.maxY = maxY
	m.bounded = maxY > 0
	if m.bounded {
		m.offset = clampScroll(m.offset, maxY)
	}
}

// Destroy ends the stream.
func (m *ManualScroll) Destroy() {
	m.destroyed = true
}

func clampScroll(y, maxY float64) float64 {
	if y < 0 {
		return 0
	}
	if y > maxY {
		return maxY
	}
	return y
}
