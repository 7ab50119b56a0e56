package scrollwork

import (
	"strings"
	"testing"
)

// railPage builds [lead, section, trailing] where section holds a row of
// three viewport-sized panels. lead may be zero.
func railPage(c *Choreographer, lead float64) (section, content *Element) {
	doc := c.Document()
	if lead > 0 {
		doc.AddChild(block("lead", lead))
	}
	section = NewContainer("rail", FlowNone)
	section.Width, section.Height = 1024, 768
	content = NewContainer("strip", FlowRow)
	for i := 0; i < 3; i++ {
		content.AddChild(NewElement("panel", 1024, 768))
	}
	section.AddChild(content)
	doc.AddChild(section)
	doc.AddChild(block("trailing", 1000))
	return section, content
}

func TestPinRailTravelsScrollWidth(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 0)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)

	b := c.Binding(1)
	if got := b.Resolved().Length(); got != 2048 {
		t.Fatalf("range length = %v, want 2048", got)
	}

	scrollAndSettle(c, 1024)
	ps := b.Pin()
	if ps.State() != PinLocked {
		t.Fatalf("state = %v, want locked", ps.State())
	}
	if content.TranslateX != -1024 {
		t.Errorf("TranslateX = %v, want -1024", content.TranslateX)
	}
	if x, y := section.LocalToScreen(0, 0); x != 0 || y != 0 {
		t.Errorf("pinned section on screen at (%v, %v), want (0, 0)", x, y)
	}

	scrollAndSettle(c, 2048)
	if content.TranslateX != -2048 {
		t.Errorf("TranslateX at end = %v, want -2048", content.TranslateX)
	}
}

func TestPinReleaseAndSymmetry(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 500)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)
	ps := c.Binding(1).Pin()

	if ps.State() != PinIdle {
		t.Fatalf("state at 0 = %v, want idle", ps.State())
	}
	if r := c.Binding(1).Resolved(); r.Start != 500 || r.End != 2548 {
		t.Fatalf("range = [%v, %v], want [500, 2548]", r.Start, r.End)
	}

	scrollAndSettle(c, 1524)
	if ps.State() != PinLocked {
		t.Fatalf("state = %v, want locked", ps.State())
	}
	if ps.Placeholder() == nil || ps.Placeholder().Parent != c.Document() {
		t.Fatal("no placeholder holding the section's slot")
	}
	if got := ps.LockedRect().Y; got != 500 {
		t.Errorf("LockedRect.Y = %v, want 500", got)
	}
	if content.TranslateX != -1024 {
		t.Errorf("TranslateX = %v, want -1024", content.TranslateX)
	}

	scrollAndSettle(c, 3000)
	if ps.State() != PinIdle {
		t.Errorf("state after passing the end = %v, want idle", ps.State())
	}
	if ps.Placeholder() != nil {
		t.Error("placeholder kept after release")
	}
	if section.IsPinned() {
		t.Error("section still fixed after release")
	}
	if got := section.DocumentRect().Y; got != 2548 {
		t.Errorf("released section at %v, want 2548 (end of the pinned run)", got)
	}
	if content.TranslateX != -2048 {
		t.Errorf("TranslateX = %v, want -2048", content.TranslateX)
	}

	scrollAndSettle(c, 0)
	if ps.State() != PinIdle {
		t.Errorf("state = %v, want idle", ps.State())
	}
	if got := section.DocumentRect().Y; got != 500 {
		t.Errorf("section at %v after scrolling back, want 500", got)
	}
	if content.TranslateX != 0 {
		t.Errorf("TranslateX = %v, want 0", content.TranslateX)
	}
}

func TestPinReleasingLastsOneFrame(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 500)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)
	ps := c.Binding(1).Pin()

	scrollAndSettle(c, 1524)
	c.Signal().Correct(3000)
	c.Update(frameDT)
	if ps.State() != PinReleasing {
		t.Errorf("state = %v, want releasing", ps.State())
	}
	c.Update(frameDT)
	if ps.State() != PinIdle {
		t.Errorf("state = %v, want idle", ps.State())
	}
}

func TestPinReanchorsOnResize(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 500)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)
	ps := c.Binding(1).Pin()

	scrollAndSettle(c, 1524)
	if ps.Progress() != 0.5 {
		t.Fatalf("progress = %v, want 0.5", ps.Progress())
	}

	c.Resize(1280, 768)
	runFrames(c, 2)
	// The strip now overflows by 3072 - 1280 = 1792.
	if got := c.Signal().Offset(); got != 500+0.5*1792 {
		t.Errorf("scroll after re-anchor = %v, want %v", got, 500+0.5*1792)
	}
	if ps.Progress() != 0.5 {
		t.Errorf("progress = %v, want 0.5 preserved", ps.Progress())
	}
	if content.TranslateX != -896 {
		t.Errorf("TranslateX = %v, want -896", content.TranslateX)
	}
	if ps.State() != PinLocked {
		t.Errorf("state = %v, want locked", ps.State())
	}
}

func TestPinSpacerAndTeardown(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 500)
	doc := c.Document()
	before := doc.NumChildren()
	stop := c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)

	if doc.NumChildren() != before+1 {
		t.Fatalf("children = %d, want %d (spacer added)", doc.NumChildren(), before+1)
	}
	spacer := doc.ChildAt(doc.IndexOf(section) + 1)
	if spacer.Height != 2048 || spacer.Visible {
		t.Errorf("spacer = %vpx visible=%v, want 2048px hidden", spacer.Height, spacer.Visible)
	}

	scrollAndSettle(c, 1524)
	stop()
	if doc.NumChildren() != before {
		t.Errorf("children after dispose = %d, want %d", doc.NumChildren(), before)
	}
	if section.IsPinned() {
		t.Error("section still fixed after dispose")
	}
	if !spacer.IsDisposed() {
		t.Error("spacer not disposed")
	}
	writes := content.Writes()
	scrollAndSettle(c, 1000)
	if content.Writes() != writes {
		t.Error("disposed pin still writing")
	}
}

func TestPinEvents(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	var got []ChoreoEventType
	c.SetEventSink(EventSinkFunc(func(ev ChoreoEvent) { got = append(got, ev.Type) }))
	section, content := railPage(c, 500)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)

	scrollAndSettle(c, 1000)
	scrollAndSettle(c, 3000)
	scrollAndSettle(c, 1000)
	want := []ChoreoEventType{ChoreoPinLocked, ChoreoPinReleased, ChoreoPinLocked}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPinInnerTimeline(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	doc := c.Document()
	doc.AddChild(block("lead", 500))
	hero := block("hero", 768)
	doc.AddChild(hero)
	doc.AddChild(block("tail", 2000))
	title := NewElement("title", 100, 100)
	hero.AddChild(title)

	var progress float64
	c.RegisterPin(hero, ScrollRange{
		Start: Edge{},
		End:   Edge{AfterStart: true, Offset: 1000},
	}, PinTimeline{
		Target:     title,
		Timeline:   Tween(Property{Name: PropScale, From: 1, To: 3}),
		OnProgress: func(p float64) { progress = p },
	})
	runFrames(c, 2)

	scrollAndSettle(c, 1000)
	if progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", progress)
	}
	if title.ScaleX != 2 {
		t.Errorf("title scale = %v, want 2", title.ScaleX)
	}
	if !hero.IsPinned() {
		t.Error("hero not pinned")
	}
}

func TestPinnedSectionChildTriggers(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	doc := c.Document()
	doc.AddChild(block("lead", 1000))
	section := NewContainer("showcase", FlowNone)
	section.Width, section.Height = 1024, 768
	heading := NewElement("heading", 1024, 200)
	heading.Y = 100
	section.AddChild(heading)
	content := NewContainer("cards", FlowRow)
	content.Y = 300
	var cards []*Element
	for i := 0; i < 3; i++ {
		card := NewElement("card", 1024, 400)
		content.AddChild(card)
		cards = append(cards, card)
	}
	section.AddChild(content)
	doc.AddChild(section)
	doc.AddChild(block("trailing", 1000))

	c.RegisterPin(section, PinRange, RailTimeline(content))
	headingEnters, headingLeaves, lastCardEnters := 0, 0, 0
	c.RegisterTrigger(heading, TriggerOptions{
		Threshold:  0.5,
		Repeatable: true,
		OnLeave:    func() { headingLeaves++ },
	}, func() { headingEnters++ })
	c.RegisterTrigger(cards[2], TriggerOptions{Threshold: 0.5}, func() { lastCardEnters++ })
	runFrames(c, 2)

	scrollAndSettle(c, 1000)
	if headingEnters != 1 {
		t.Fatalf("heading enters = %d, want 1", headingEnters)
	}

	// Held on screen for the whole range.
	scrollAndSettle(c, 2000)
	if headingLeaves != 0 {
		t.Errorf("heading left while its section was pinned")
	}

	// The rail has slid the last card to x = 48.
	scrollAndSettle(c, 3000)
	runFrames(c, 1)
	if !section.IsPinned() {
		t.Fatal("section should still be pinned at 3000")
	}
	if lastCardEnters != 1 {
		t.Errorf("last card enters = %d, want 1", lastCardEnters)
	}
	if headingLeaves != 0 {
		t.Errorf("heading leaves = %d, want 0", headingLeaves)
	}

	scrollAndSettle(c, 0)
	runFrames(c, 1)
	if headingLeaves != 1 {
		t.Errorf("heading leaves after scrolling back = %d, want 1", headingLeaves)
	}
}

func TestPinDisposedRailContentReleases(t *testing.T) {
	buf := captureLog(t)
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 0)
	c.RegisterPin(section, PinRange, RailTimeline(content))
	runFrames(c, 2)
	scrollAndSettle(c, 1200)
	if c.Binding(1).Pin().State() != PinLocked {
		t.Fatal("pin should be locked at 1200")
	}

	before := content.Writes()
	content.Dispose()
	runFrames(c, 5)

	if got := content.Writes(); got != before {
		t.Errorf("disposed rail content received %d writes", got-before)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	if section.IsPinned() {
		t.Error("section should return to flow once its content is gone")
	}
	if !strings.Contains(buf.String(), "detached") {
		t.Errorf("expected a detached warning, got %q", buf.String())
	}
}

func TestPinRailWithoutOverflow(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	doc := c.Document()
	section := NewContainer("rail", FlowNone)
	section.Width, section.Height = 1024, 768
	content := NewContainer("strip", FlowRow)
	content.AddChild(NewElement("panel", 1024, 768))
	section.AddChild(content)
	doc.AddChild(section)
	doc.AddChild(block("trailing", 1000))

	inner := RailTimeline(content)
	progress := -1.0
	inner.OnProgress = func(p float64) { progress = p }
	c.RegisterPin(section, PinRange, inner)

	ps := c.Binding(1).Pin()
	for _, y := range []float64{0, 500} {
		scrollAndSettle(c, y)
		if progress != 1 {
			t.Errorf("scroll %v: progress = %v, want 1", y, progress)
		}
		if ps.State() != PinIdle {
			t.Errorf("scroll %v: state = %v, want idle", y, ps.State())
		}
		if ps.Placeholder() != nil {
			t.Errorf("scroll %v: placeholder inserted for an empty range", y)
		}
		if content.TranslateX != 0 {
			t.Errorf("scroll %v: TranslateX = %v, want 0", y, content.TranslateX)
		}
	}
}

func TestPinSmoothing(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	section, content := railPage(c, 0)
	inner := RailTimeline(content)
	inner.Smoothing = 0.25
	c.RegisterPin(section, PinRange, inner)
	runFrames(c, 2)
	ps := c.Binding(1).Pin()

	scrollAndSettle(c, 1024)
	if ps.Progress() != 0.5 {
		t.Errorf("raw progress = %v, want 0.5", ps.Progress())
	}
	if ps.State() != PinLocked {
		t.Errorf("state = %v, want locked without waiting for smoothing", ps.State())
	}
	if a := ps.AppliedProgress(); a <= 0 || a >= 0.5 {
		t.Errorf("applied progress = %v, want between 0 and 0.5", a)
	}
	if content.TranslateX <= -1024 {
		t.Errorf("TranslateX = %v, want short of -1024 while easing", content.TranslateX)
	}

	runFrames(c, 120)
	if content.TranslateX != -1024 {
		t.Errorf("TranslateX after settling = %v, want -1024", content.TranslateX)
	}
}
