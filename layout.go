package scrollwork

// layoutTree positions the children of every flowing container and sizes the
// container to its content. Pinned elements take no flow space; their
// placeholder does.
func layoutTree(e *Element) {
	for _, child := range e.children {
		layoutTree(child)
	}
	if e.Flow == FlowNone {
		return
	}

	var cursor, cross float64
	placed := 0
	for _, child := range e.children {
		if child.position == positionFixed {
			continue
		}
		if placed > 0 {
			cursor += e.Gap
		}
		switch e.Flow {
		case FlowColumn:
			if child.Y != cursor {
				child.Y = cursor
				markSubtreeDirty(child)
			}
			cursor += child.Height
			cross = max(cross, child.X+child.Width)
		case FlowRow:
			if child.X != cursor {
				child.X = cursor
				markSubtreeDirty(child)
			}
			cursor += child.Width
			cross = max(cross, child.Height)
		}
		placed++
	}

	switch e.Flow {
	case FlowColumn:
		w := cross
		if e.documentRoot {
			w = e.Width
		}
		e.SetSize(w, cursor)
	case FlowRow:
		e.SetSize(cursor, cross)
	}
}

// DocumentRect returns the element's layout box in document coordinates.
// Style translation is not included, so animating an element never moves
// the box its visibility is measured against.
func (e *Element) DocumentRect() Rect {
	x, y := 0.0, 0.0
	for p := e; p != nil; p = p.Parent {
		x += p.X
		y += p.Y + p.flowOffsetY
	}
	return Rect{X: x, Y: y, Width: e.Width, Height: e.Height}
}

// ContentSize returns the extent of the element's content: its own box or
// the far edge of its children, whichever is larger.
func (e *Element) ContentSize() (w, h float64) {
	w, h = e.Width, e.Height
	for _, child := range e.children {
		if child.position == positionFixed {
			continue
		}
		w = max(w, child.X+child.Width)
		h = max(h, child.Y+child.flowOffsetY+child.Height)
	}
	return w, h
}

// PlacedRect returns the element's box in document coordinates where it is
// currently drawn. Unlike DocumentRect it follows pinned ancestors to their
// viewport position and adds ancestor translation, so content riding a
// pinned section or a sliding rail is seen where it appears. The element's
// own translation and any scale or rotation are ignored.
func (e *Element) PlacedRect(vs ViewportState) Rect {
	x, y := 0.0, 0.0
	for p := e; p != nil; p = p.Parent {
		if p != e {
			x += p.TranslateX
			y += p.TranslateY
		}
		if p.position == positionFixed {
			x += p.fixedX + vs.ScrollX
			y += p.fixedY + vs.ScrollY
			break
		}
		x += p.X
		y += p.Y + p.flowOffsetY
	}
	return Rect{X: x, Y: y, Width: e.Width, Height: e.Height}
}
