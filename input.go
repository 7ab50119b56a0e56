package scrollwork

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	down     bool
	x, y     float64
	hitEl    *Element
	hoverEl  *Element // last element under the pointer, for enter/leave
	button   MouseButton
	hasMoved bool
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []pointerHandler
	nextID       uint32
}

func (r *handlerRegistry) list(event EventType) *[]pointerHandler {
	switch event {
	case EventPointerDown:
		return &r.pointerDown
	case EventPointerUp:
		return &r.pointerUp
	case EventPointerMove:
		return &r.pointerMove
	case EventPointerEnter:
		return &r.pointerEnter
	case EventPointerLeave:
		return &r.pointerLeave
	case EventClick:
		return &r.click
	}
	return nil
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	l := h.reg.list(h.event)
	if l == nil {
		return
	}
	*l = removePointerHandler(*l, h.id)
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (s *Scene) addHandler(event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	l := s.handlers.list(event)
	*l = append(*l, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves over a new element.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves an element.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events. The context's
// Element is nil for clicks on empty space.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.addHandler(EventClick, fn)
}

// PointerPosition returns the last known pointer position in viewport
// coordinates. Theme toggles use it as the reveal center.
func (s *Scene) PointerPosition() (x, y float64) {
	return s.pointer.x, s.pointer.y
}

// --- Hit testing ---

// elementContainsLocal tests whether (lx, ly) falls inside an element's hit
// region: its HitShape if set, otherwise its layout box.
func elementContainsLocal(e *Element, lx, ly float64) bool {
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width == 0 && e.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}

// collectInteractable walks the tree in paint order, appending interactable
// elements to buf. Invisible subtrees are skipped.
func collectInteractable(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.Interactable {
		buf = append(buf, e)
	}
	for _, child := range e.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable element at viewport point (x, y).
func (s *Scene) hitTest(x, y float64) *Element {
	s.hitBuf = collectInteractable(s.c.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		e := s.hitBuf[i]
		lx, ly := e.ScreenToLocal(x, y)
		if elementContainsLocal(e, lx, ly) {
			return e
		}
	}
	return nil
}

// --- Input processing ---

// processInput feeds one frame of input: an injected event if one is queued,
// otherwise the live mouse and wheel.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.liveInput {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		s.wheel(-dy)
	}
	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// wheel forwards a wheel delta (positive scrolls down) to the scroll source.
func (s *Scene) wheel(dy float64) {
	if src := s.c.signal.Source(); src != nil {
		src.Wheel(dy)
	}
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(x, y)
	moved := !ps.hasMoved || x != ps.x || y != ps.y
	ps.x, ps.y, ps.hasMoved = x, y, true

	if target != ps.hoverEl {
		if ps.hoverEl != nil {
			s.fire(EventPointerLeave, ps.hoverEl, x, y, button)
		}
		if target != nil {
			s.fire(EventPointerEnter, target, x, y, button)
		}
		ps.hoverEl = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitEl = target
		s.fire(EventPointerDown, target, x, y, button)
	case !pressed && ps.down:
		if ps.hitEl == target {
			s.fire(EventClick, target, x, y, ps.button)
		}
		s.fire(EventPointerUp, target, x, y, ps.button)
		ps.down = false
		ps.hitEl = nil
	case moved:
		s.fire(EventPointerMove, target, x, y, button)
	}
}

// fire runs the element's own callback, if any, then the scene handlers.
func (s *Scene) fire(event EventType, e *Element, x, y float64, button MouseButton) {
	ctx := PointerContext{Element: e, GlobalX: x, GlobalY: y, Button: button}
	if e != nil {
		ctx.LocalX, ctx.LocalY = e.ScreenToLocal(x, y)
		var fn func(PointerContext)
		switch event {
		case EventPointerEnter:
			fn = e.OnPointerEnter
		case EventPointerLeave:
			fn = e.OnPointerLeave
		case EventClick:
			fn = e.OnClick
		}
		if fn != nil {
			fn(ctx)
		}
	}
	for _, h := range append([]pointerHandler(nil), *s.handlers.list(event)...) {
		h.fn(ctx)
	}
}
