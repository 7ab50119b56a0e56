package scrollwork

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ViewportState is the per-frame sample of the viewport. It is read once at
// the start of a frame and passed to every evaluation so that all bindings
// see the same scroll position.
type ViewportState struct {
	ScrollX, ScrollY float64
	Width, Height    float64
	DevicePixelRatio float64
}

// Rect returns the visible document-space rectangle.
func (vs ViewportState) Rect() Rect {
	return Rect{X: vs.ScrollX, Y: vs.ScrollY, Width: vs.Width, Height: vs.Height}
}

// Viewport is the window onto the document. Its vertical scroll offset comes
// from the ScrollSignal; its size comes from the host's layout callback.
type Viewport struct {
	// Width and Height are the viewport size in document pixels.
	Width, Height float64
	// DevicePixelRatio is the device scale factor reported by the host.
	DevicePixelRatio float64

	scrollX, scrollY float64
	maxScrollY       float64

	scrollTween *gween.Tween
}

func newViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, DevicePixelRatio: 1}
}

// State samples the viewport. Never cache the result across frames.
func (v *Viewport) State() ViewportState {
	return ViewportState{
		ScrollX:          v.scrollX,
		ScrollY:          v.scrollY,
		Width:            v.Width,
		Height:           v.Height,
		DevicePixelRatio: v.DevicePixelRatio,
	}
}

// ScrollY returns the current vertical scroll offset.
func (v *Viewport) ScrollY() float64 {
	return v.scrollY
}

// MaxScrollY returns the largest reachable scroll offset.
func (v *Viewport) MaxScrollY() float64 {
	return v.maxScrollY
}

// setDocumentHeight updates the scroll bounds from the laid-out document.
func (v *Viewport) setDocumentHeight(h float64) {
	v.maxScrollY = max(0, h-v.Height)
}

// setScroll stores a sample delivered by the scroll signal.
func (v *Viewport) setScroll(y float64) {
	v.scrollY = y
}

// scrollTo starts a tween from one offset to another over duration seconds.
// A zero duration clears any running tween; the caller jumps directly.
func (v *Viewport) scrollTo(from, to float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.scrollTween = nil
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	v.scrollTween = gween.New(float32(from), float32(to), duration, easeFn)
}

// stepScrollTween advances an active ScrollTo. Returns the new target and
// true while a tween is running.
func (v *Viewport) stepScrollTween(dt float32) (float64, bool) {
	if v.scrollTween == nil {
		return 0, false
	}
	val, done := v.scrollTween.Update(dt)
	if done {
		v.scrollTween = nil
	}
	return float64(val), true
}
