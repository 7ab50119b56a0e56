package scrollwork

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled and tinted to draw element boxes.
// Created on first Draw.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// revealSegments is the number of segments approximating the reveal circle.
const revealSegments = 96

// Draw renders the document to screen with the current theme. While a theme
// transition runs, the previous frame is drawn outside the growing circle so
// the new theme appears to spread from the click point.
func (s *Scene) Draw(screen *ebiten.Image) {
	tc := s.c.theme
	theme := tc.Current()
	screen.Fill(theme.Background().toRGBA())

	view := Rect{Width: s.c.viewport.Width, Height: s.c.viewport.Height}
	op := &ebiten.DrawImageOptions{}
	s.drawElement(screen, s.c.root, theme, view, op)

	if t := tc.Active(); t != nil {
		if s.snapshotGen != tc.Generation() && s.lastFrame != nil {
			s.snapshot = copyImage(s.snapshot, s.lastFrame)
			s.snapshotGen = tc.Generation()
		}
		if s.snapshot != nil {
			s.drawReveal(screen, t)
		}
	}

	// The last frame feeds both the next theme reveal and screenshots.
	if tc.cfg.Transitions || len(s.screenshotQueue) > 0 {
		s.lastFrame = copyImage(s.lastFrame, screen)
	}
	s.saveShots()
}

// drawElement paints e and its subtree. Containers paint a box only when
// they have a theme role; leaves always do.
func (s *Scene) drawElement(screen *ebiten.Image, e *Element, theme Theme, view Rect, op *ebiten.DrawImageOptions) {
	if !e.Visible || e.worldAlpha <= 0 {
		return
	}
	paint := (len(e.children) == 0 || e.Role != "") && !e.documentRoot
	if paint && e.Width > 0 && e.Height > 0 && screenBounds(e).Intersects(view) {
		col := e.Color
		if c, ok := theme.Color(e.Role); ok {
			col = c
		}
		a := float32(col.A * e.worldAlpha)
		op.GeoM.Reset()
		op.GeoM.Scale(e.Width, e.Height)
		m := e.worldTransform
		var g ebiten.GeoM
		g.SetElement(0, 0, m[0])
		g.SetElement(1, 0, m[1])
		g.SetElement(0, 1, m[2])
		g.SetElement(1, 1, m[3])
		g.SetElement(0, 2, m[4])
		g.SetElement(1, 2, m[5])
		op.GeoM.Concat(g)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(col.R)*a, float32(col.G)*a, float32(col.B)*a, a)
		screen.DrawImage(ensureWhitePixel(), op)
	}
	if e.Text != "" && e.worldAlpha > 0.01 {
		s.drawText(screen, e, theme)
	}
	for _, child := range e.children {
		s.drawElement(screen, child, theme, view, op)
	}
}

// screenBounds returns the screen-space AABB of the element's box.
func screenBounds(e *Element) Rect {
	m := e.worldTransform
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {e.Width, 0}, {0, e.Height}, {e.Width, e.Height}} {
		x, y := transformPoint(m, p[0], p[1])
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// drawReveal draws the outgoing theme snapshot everywhere outside the
// transition circle, as a ring of quads between the circle and a radius
// that covers the whole viewport.
func (s *Scene) drawReveal(screen *ebiten.Image, t *Transition) {
	inner := float32(t.CurrentRadius())
	outer := float32(t.Radius) + 2
	if inner >= outer {
		return
	}
	s.revealVerts, s.revealInds = appendRevealRing(s.revealVerts[:0], s.revealInds[:0], float32(t.X), float32(t.Y), inner, outer)
	screen.DrawTriangles(s.revealVerts, s.revealInds, s.snapshot, &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressClampToZero,
	})
}

// appendRevealRing appends a triangle strip covering the annulus between
// inner and outer around (cx, cy). Source coordinates equal destination
// coordinates so the snapshot lines up with the screen.
func appendRevealRing(verts []ebiten.Vertex, inds []uint16, cx, cy, inner, outer float32) ([]ebiten.Vertex, []uint16) {
	for i := 0; i <= revealSegments; i++ {
		a := 2 * math.Pi * float64(i) / revealSegments
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		ix, iy := cx+inner*cos, cy+inner*sin
		ox, oy := cx+outer*cos, cy+outer*sin
		verts = append(verts,
			ebiten.Vertex{DstX: ix, DstY: iy, SrcX: ix, SrcY: iy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			ebiten.Vertex{DstX: ox, DstY: oy, SrcX: ox, SrcY: oy, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		)
		if i > 0 {
			b := uint16(2 * (i - 1))
			inds = append(inds, b, b+1, b+2, b+1, b+3, b+2)
		}
	}
	return verts, inds
}

// copyImage copies src into dst, reallocating dst when the size changed.
func copyImage(dst, src *ebiten.Image) *ebiten.Image {
	b := src.Bounds()
	if dst == nil || dst.Bounds().Dx() != b.Dx() || dst.Bounds().Dy() != b.Dy() {
		if dst != nil {
			dst.Deallocate()
		}
		dst = ebiten.NewImage(b.Dx(), b.Dy())
	}
	dst.Clear()
	dst.DrawImage(src, nil)
	return dst
}
