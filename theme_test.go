package scrollwork

import "testing"

func TestRevealRadius(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"corner", 0, 0, 1280},
		{"center", 512, 384, 640},
		{"far corner", 1024, 768, 1280},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RevealRadius(tt.x, tt.y, 1024, 768); got != tt.want {
				t.Errorf("RevealRadius = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThemeFallbackWhenDisabled(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	var events []ChoreoEvent
	c.SetEventSink(EventSinkFunc(func(ev ChoreoEvent) { events = append(events, ev) }))
	tc := c.Theme()

	tr := tc.Toggle(100, 100)
	if tr.Animated() {
		t.Error("animated with transitions disabled")
	}
	if !tr.Finished() || !isClosed(tr.Done()) {
		t.Error("fallback transition not finished synchronously")
	}
	if !tc.Dark() || !tc.Current().Dark {
		t.Error("theme not applied")
	}
	if tc.Active() != nil {
		t.Error("fallback left an active transition")
	}
	if len(events) != 1 || events[0].Type != ChoreoThemeChanged || !events[0].Dark {
		t.Errorf("events = %+v, want one dark theme-changed", events)
	}
}

func TestThemeFallbackUnderReducedMotion(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	c.Theme().SetTransitionsEnabled(true)
	c.SetReducedMotion(true)
	applied := false
	tr := c.RunThemeTransition(10, 10, func() { applied = true })
	if !applied || tr.Animated() || !tr.Finished() {
		t.Errorf("applied=%v animated=%v finished=%v, want true false true", applied, tr.Animated(), tr.Finished())
	}
}

func TestThemeAnimatedTransition(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	tc := c.Theme()
	tc.SetTransitionsEnabled(true)
	gen := tc.Generation()

	tr := tc.Toggle(512, 384)
	if !tr.Animated() {
		t.Fatal("not animated")
	}
	if tr.Radius != 640 {
		t.Errorf("Radius = %v, want 640", tr.Radius)
	}
	if !tc.Dark() {
		t.Error("theme not applied at transition start")
	}
	if tc.Active() != tr || tc.Generation() != gen+1 {
		t.Error("transition not active")
	}

	runFrames(c, 10)
	if r := tr.CurrentRadius(); r <= 0 || r >= 640 {
		t.Errorf("radius mid-transition = %v", r)
	}
	if isClosed(tr.Done()) {
		t.Error("Done closed mid-transition")
	}

	runFrames(c, 40)
	if !tr.Finished() || !isClosed(tr.Done()) {
		t.Fatal("transition not finished after its duration")
	}
	if tr.CurrentRadius() != 640 {
		t.Errorf("final radius = %v, want 640", tr.CurrentRadius())
	}
	if tc.Active() != nil {
		t.Error("finished transition still active")
	}
}

func TestThemeRunFinishesRunning(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	tc := c.Theme()
	tc.SetTransitionsEnabled(true)
	first := tc.Toggle(0, 0)
	runFrames(c, 3)
	second := tc.Toggle(0, 0)
	if !first.Finished() {
		t.Error("first transition not finished by the second")
	}
	if tc.Active() != second {
		t.Error("second transition not active")
	}
	if tc.Dark() {
		t.Error("two toggles left the dark theme applied")
	}
}

func TestThemeSubscribe(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	tc := c.Theme()
	var got []bool
	stop := tc.Subscribe(func(th Theme) { got = append(got, th.Dark) })

	tc.SetDark(true)
	tc.SetDark(true)
	tc.SetDark(false)
	stop()
	tc.SetDark(true)

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("notifications = %v, want [true false]", got)
	}
}

func TestThemeSetPalettes(t *testing.T) {
	c, _ := newTestChoreographer(t, 1024, 768)
	tc := c.Theme()
	light := Theme{Palette: map[string]Color{"background": {1, 0, 0, 1}}}
	dark := Theme{Palette: map[string]Color{"background": {0, 0, 1, 1}}}
	tc.SetPalettes(light, dark)

	if bg := tc.Current().Background(); bg != (Color{1, 0, 0, 1}) {
		t.Errorf("light background = %v", bg)
	}
	tc.SetDark(true)
	if bg := tc.Current().Background(); bg != (Color{0, 0, 1, 1}) {
		t.Errorf("dark background = %v", bg)
	}
	if !tc.Current().Dark {
		t.Error("dark palette not flagged dark")
	}
	if _, ok := tc.Current().Color("accent"); ok {
		t.Error("missing role reported present")
	}
}
