package scrollwork

import "testing"

// clickable adds an interactable w x h element to the scene's document and
// lays the frame out so hit testing sees it.
func clickable(s *Scene, name string, w, h float64) *Element {
	el := NewElement(name, w, h)
	el.Interactable = true
	s.Document().AddChild(el)
	return el
}

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{30, 30, true},
		{20, 20, true},
		{9, 20, false},
		{20, 31, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 10}
	if !c.Contains(50, 60) {
		t.Error("point on the circle should be inside")
	}
	if c.Contains(58, 58) {
		t.Error("point outside the radius reported inside")
	}
}

func TestClickElement(t *testing.T) {
	s := newTestScene(t)
	btn := clickable(s, "btn", 200, 100)
	s.c.Update(frameDT)

	var elementClicks int
	btn.OnClick = func(ctx PointerContext) {
		elementClicks++
		if ctx.LocalX != 50 || ctx.LocalY != 40 {
			t.Errorf("local = (%v, %v), want (50, 40)", ctx.LocalX, ctx.LocalY)
		}
	}
	var sceneTarget *Element
	s.OnClick(func(ctx PointerContext) { sceneTarget = ctx.Element })

	s.InjectClick(50, 40)
	s.processInput()
	if elementClicks != 0 {
		t.Error("click fired on press")
	}
	s.processInput()
	if elementClicks != 1 {
		t.Errorf("element clicks = %d, want 1", elementClicks)
	}
	if sceneTarget != btn {
		t.Errorf("scene handler target = %v, want btn", sceneTarget)
	}
}

func TestClickEmptySpace(t *testing.T) {
	s := newTestScene(t)
	clickable(s, "btn", 200, 100)
	s.c.Update(frameDT)

	calls := 0
	var target *Element
	s.OnClick(func(ctx PointerContext) {
		calls++
		target = ctx.Element
	})
	s.InjectClick(600, 600)
	s.processInput()
	s.processInput()
	if calls != 1 || target != nil {
		t.Errorf("calls=%d target=%v, want one click on empty space", calls, target)
	}
}

func TestPressReleaseOnDifferentElementsNoClick(t *testing.T) {
	s := newTestScene(t)
	a := clickable(s, "a", 200, 100)
	b := clickable(s, "b", 200, 100)
	s.c.Update(frameDT)

	clicks := 0
	a.OnClick = func(PointerContext) { clicks++ }
	b.OnClick = func(PointerContext) { clicks++ }
	ups := 0
	s.OnPointerUp(func(PointerContext) { ups++ })

	s.InjectPress(10, 10)
	s.InjectRelease(10, 150)
	s.processInput()
	s.processInput()
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if ups != 1 {
		t.Errorf("pointer ups = %d, want 1", ups)
	}
}

func TestHoverEnterLeave(t *testing.T) {
	s := newTestScene(t)
	card := clickable(s, "card", 200, 100)
	s.c.Update(frameDT)

	var events []string
	card.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	card.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }
	moves := 0
	s.OnPointerMove(func(PointerContext) { moves++ })

	s.InjectMove(50, 50)
	s.InjectMove(60, 50)
	s.InjectMove(500, 500)
	for i := 0; i < 3; i++ {
		s.processInput()
	}
	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
	if moves != 3 {
		t.Errorf("moves = %d, want 3", moves)
	}
}

func TestHitTestFollowsScroll(t *testing.T) {
	s := newTestScene(t)
	s.Document().AddChild(block("lead", 1000))
	btn := clickable(s, "btn", 200, 100)
	s.Document().AddChild(block("tail", 2000))
	s.c.Update(frameDT)

	if got := s.hitTest(50, 50); got != nil {
		t.Errorf("hit %v at scroll 0, want nothing", got.Name)
	}
	s.c.Signal().Correct(1000)
	s.c.Update(frameDT)
	if got := s.hitTest(50, 50); got != btn {
		t.Errorf("hit %v at scroll 1000, want btn", got)
	}
}

func TestHitTestTopmostAndShape(t *testing.T) {
	s := newTestScene(t)
	parent := clickable(s, "parent", 200, 200)
	child := NewElement("child", 100, 100)
	child.Interactable = true
	child.HitShape = HitCircle{CenterX: 50, CenterY: 50, Radius: 50}
	parent.AddChild(child)
	s.c.Update(frameDT)

	if got := s.hitTest(50, 50); got != child {
		t.Errorf("center hit = %v, want child", got)
	}
	// Inside the child's box but outside its circle.
	if got := s.hitTest(2, 2); got != parent {
		t.Errorf("corner hit = %v, want parent", got)
	}

	child.Visible = false
	if got := s.hitTest(50, 50); got != parent {
		t.Errorf("hit on invisible child = %v, want parent", got)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := newTestScene(t)
	s.c.Update(frameDT)
	calls := 0
	h := s.OnPointerDown(func(PointerContext) { calls++ })
	s.InjectPress(10, 10)
	s.processInput()
	h.Remove()
	h.Remove()
	s.InjectRelease(10, 10)
	s.InjectPress(10, 10)
	s.processInput()
	s.processInput()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(s.handlers.pointerDown) != 0 {
		t.Errorf("handlers left = %d, want 0", len(s.handlers.pointerDown))
	}
}

func TestPointerPosition(t *testing.T) {
	s := newTestScene(t)
	s.InjectMove(120, 340)
	s.processInput()
	if x, y := s.PointerPosition(); x != 120 || y != 340 {
		t.Errorf("PointerPosition = (%v, %v), want (120, 340)", x, y)
	}
}
