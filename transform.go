package scrollwork

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the element's
// layout position and style outputs. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(pos + translate)
//
// pos is the layout position, or the viewport position while pinned.
func computeLocalTransform(e *Element) [6]float64 {
	sx := e.ScaleX
	sy := e.ScaleY
	sin, cos := math.Sincos(e.Rotation)

	preTx := -e.PivotX * sx
	preTy := -e.PivotY * sy

	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	px, py := e.X, e.Y+e.flowOffsetY
	if e.position == positionFixed {
		px, py = e.fixedX, e.fixedY
	}
	return [6]float64{ra, rb, rc, rd, rtx + px + e.PivotX + e.TranslateX, rty + py + e.PivotY + e.TranslateY}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// scrollTransform is the view matrix for a viewport scrolled to (sx, sy).
func scrollTransform(sx, sy float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, -sx, -sy}
}

// updateWorldTransform recomputes screen-space transforms and alpha.
// parentRecomputed forces recomputation of this element even if it is not
// dirty. Pinned elements are positioned against the screen, not their parent.
func updateWorldTransform(e *Element, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := e.transformDirty || parentRecomputed
	if recompute {
		base := parentTransform
		if e.position == positionFixed {
			base = identityTransform
		}
		e.worldTransform = multiplyAffine(base, computeLocalTransform(e))
		e.worldAlpha = parentAlpha * e.Opacity
		e.transformDirty = false
	}

	for _, child := range e.children {
		updateWorldTransform(child, e.worldTransform, e.worldAlpha, recompute)
	}
}

// MarkDirty marks the element's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (e *Element) MarkDirty() {
	e.transformDirty = true
}

// ScreenToLocal converts a screen-space point to this element's local space.
func (e *Element) ScreenToLocal(sx, sy float64) (lx, ly float64) {
	return transformPoint(invertAffine(e.worldTransform), sx, sy)
}

// LocalToScreen converts a local-space point to screen space.
func (e *Element) LocalToScreen(lx, ly float64) (sx, sy float64) {
	return transformPoint(e.worldTransform, lx, ly)
}
