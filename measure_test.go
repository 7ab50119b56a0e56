package scrollwork

import "testing"

// railStrip returns a row of n viewport-wide panels, laid out.
func railStrip(n int, w, h float64) *Element {
	strip := NewContainer("strip", FlowRow)
	for i := 0; i < n; i++ {
		strip.AddChild(NewElement("panel", w, h))
	}
	layoutTree(strip)
	return strip
}

func TestMeasurementScrollWidth(t *testing.T) {
	m := NewMeasurer(1024, 768)
	ms := m.Register(railStrip(3, 1024, 768))
	ext := ms.Current()
	if ext.ContentWidth != 3072 {
		t.Errorf("ContentWidth = %v, want 3072", ext.ContentWidth)
	}
	if ext.ScrollWidth != 2048 {
		t.Errorf("ScrollWidth = %v, want 2048", ext.ScrollWidth)
	}
	if ext.ScrollHeight != 0 {
		t.Errorf("ScrollHeight = %v, want 0", ext.ScrollHeight)
	}

	narrow := m.Register(railStrip(1, 500, 100))
	if got := narrow.Current().ScrollWidth; got != 0 {
		t.Errorf("content narrower than viewport: ScrollWidth = %v, want 0", got)
	}
}

func TestMeasurerCheck(t *testing.T) {
	m := NewMeasurer(1024, 768)
	strip := railStrip(3, 1024, 768)
	ms := m.Register(strip)
	var tokens []InvalidationToken
	m.OnInvalidate(func(tok InvalidationToken) { tokens = append(tokens, tok) })

	vs := ViewportState{Width: 1024, Height: 768}
	if m.Check(vs) {
		t.Fatal("Check recomputed with nothing changed")
	}

	vs.Width = 1280
	if !m.Check(vs) {
		t.Fatal("resize not detected")
	}
	if got := ms.Current(); got.Token != 1 || got.ScrollWidth != 1792 {
		t.Errorf("after resize: token %d ScrollWidth %v, want 1 and 1792", got.Token, got.ScrollWidth)
	}

	strip.ChildAt(0).SetSize(2048, 768)
	layoutTree(strip)
	if !m.Check(vs) {
		t.Fatal("box change not detected")
	}
	if got := ms.Current().ScrollWidth; got != 4096-1280 {
		t.Errorf("after box change ScrollWidth = %v, want %v", got, 4096-1280)
	}

	m.ForceInvalidate()
	if !m.Check(vs) {
		t.Fatal("forced invalidation ignored")
	}
	if m.Check(vs) {
		t.Error("forced invalidation recomputed twice")
	}

	want := []InvalidationToken{1, 2, 3}
	if len(tokens) != len(want) {
		t.Fatalf("listener tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %d, want %d", i, tokens[i], want[i])
		}
	}
}

func TestMeasurementDispose(t *testing.T) {
	m := NewMeasurer(1024, 768)
	strip := railStrip(2, 1024, 768)
	ms := m.Register(strip)
	ms.Dispose()
	ms.Dispose()

	strip.ChildAt(0).SetSize(10, 10)
	if m.Check(ViewportState{Width: 1024, Height: 768}) {
		t.Error("disposed measurement still marks the measurer dirty")
	}
	if len(m.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(m.entries))
	}
}

func TestOnInvalidateDispose(t *testing.T) {
	m := NewMeasurer(100, 100)
	calls := 0
	stop := m.OnInvalidate(func(InvalidationToken) { calls++ })
	m.ForceInvalidate()
	m.Check(ViewportState{Width: 100, Height: 100})
	stop()
	m.ForceInvalidate()
	m.Check(ViewportState{Width: 100, Height: 100})
	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
	if m.Token() != 2 {
		t.Errorf("Token = %d, want 2", m.Token())
	}
}
