package scrollwork

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering of element Text.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType or OpenType font from raw data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("scrollwork: font size must be positive, got %v", size)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("scrollwork: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// SetFont sets the face used for element Text. With no font the scene falls
// back to Ebitengine's debug glyphs.
func (s *Scene) SetFont(f *Font) {
	s.font = f
}

// drawText paints e.Text at the element's origin in the theme's text color.
func (s *Scene) drawText(screen *ebiten.Image, e *Element, theme Theme) {
	if s.font == nil {
		x, y := e.LocalToScreen(0, 0)
		ebitenutil.DebugPrintAt(screen, e.Text, int(x), int(y))
		return
	}
	col := ColorWhite
	if c, ok := theme.Color("text"); ok {
		col = c
	}
	a := float32(col.A * e.worldAlpha)

	op := &text.DrawOptions{}
	m := e.worldTransform
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	op.ColorScale.Scale(float32(col.R)*a, float32(col.G)*a, float32(col.B)*a, a)
	op.LineSpacing = s.font.lh
	text.Draw(screen, e.Text, s.font.face, op)
}
