package scrollwork

import (
	"fmt"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedElementPanics(t *testing.T) {
	s := newTestScene(t)
	s.SetDebugMode(true)

	parent := NewContainer("parent", FlowColumn)
	s.Document().AddChild(parent)

	child := NewElement("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed element, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedElementNoPanicWhenOff(t *testing.T) {
	parent := NewContainer("parent", FlowColumn)
	child := NewElement("child", 10, 10)
	child.Dispose()
	parent.AddChild(child)
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := newTestScene(t)
	s.SetDebugMode(true)
	buf := captureLog(t)

	cur := s.Document()
	for i := 0; i < debugMaxTreeDepth+1; i++ {
		child := NewContainer(fmt.Sprintf("level%d", i), FlowNone)
		cur.AddChild(child)
		cur = child
	}
	if !strings.Contains(buf.String(), "tree depth") {
		t.Errorf("expected tree depth warning, got %q", buf.String())
	}
}

func TestDebugMode_FrameStats(t *testing.T) {
	s := newTestScene(t)
	s.SetDebugMode(true)
	buf := captureLog(t)
	c := s.Choreographer()
	target := scrubPage(c)
	c.RegisterScrub(target, ViewportRange, []Property{{Name: PropOpacity, From: 0, To: 1}}, nil)
	s.step(frameDT)

	out := buf.String()
	for _, want := range []string{"read:", "write:", "bindings: 1", "writes: 1", "token:"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats line missing %q: %q", want, out)
		}
	}
}

func TestDebugfSilentWhenOff(t *testing.T) {
	buf := captureLog(t)
	globalDebug = false
	debugf("hidden %d", 1)
	warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line printed with debug mode off")
	}
	if !strings.Contains(out, "[scrollwork] warning: shown 2") {
		t.Errorf("warning missing, got %q", out)
	}
}

func TestStaleRangeLoggedInDebug(t *testing.T) {
	s := newTestScene(t)
	s.SetDebugMode(true)
	buf := captureLog(t)
	c := s.Choreographer()
	target := scrubPage(c)
	c.RegisterScrub(target, ViewportRange, []Property{{Name: PropOpacity, From: 0, To: 1}}, nil)
	s.step(frameDT)
	c.InvalidateMeasurements()
	s.step(frameDT)
	if !strings.Contains(buf.String(), ErrStaleMeasurement.Error()) {
		t.Errorf("stale range not logged: %q", buf.String())
	}
}
