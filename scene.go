package scrollwork

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that connects a Choreographer to
// Ebitengine: it feeds wheel and pointer input in, steps the frame, and
// draws the document.
type Scene struct {
	c     *Choreographer
	debug bool
	font  *Font

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	updateFunc func() error

	// Render state
	lastFrame   *ebiten.Image
	snapshot    *ebiten.Image
	snapshotGen uint64
	revealVerts []ebiten.Vertex
	revealInds  []uint16

	// Input state
	liveInput   bool
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Element
	injectQueue []syntheticEvent

	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScene creates a scene around a new Choreographer built from cfg.
func NewScene(cfg Config) *Scene {
	s := &Scene{
		c:             NewChoreographer(cfg),
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if s.ScreenshotDir == "" {
		s.ScreenshotDir = "screenshots"
	}
	s.SetDebugMode(cfg.Debug)
	return s
}

// Choreographer returns the scene's Choreographer.
func (s *Scene) Choreographer() *Choreographer {
	return s.c
}

// Document returns the document root.
func (s *Scene) Document() *Element {
	return s.c.Document()
}

// SetUpdateFunc sets a callback run every frame after input and before the
// Choreographer steps.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes input and advances the choreography one tick.
func (s *Scene) Update() error {
	return s.step(float32(1.0 / float64(ebiten.TPS())))
}

func (s *Scene) step(dt float32) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.c.Update(dt)
	return nil
}

// Layout reports the logical screen size. Ebitengine calls it whenever the
// window changes; a size change reaches the Choreographer as a resize.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	vp := s.c.Viewport()
	if w != vp.Width || h != vp.Height {
		s.c.Resize(w, h)
	}
	if s.liveInput {
		if m := ebiten.Monitor(); m != nil {
			vp.DevicePixelRatio = m.DeviceScaleFactor()
		}
	}
	return outsideWidth, outsideHeight
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-element
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
