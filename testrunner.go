package scrollwork

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `yaml:"action" json:"action"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	X        float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty" json:"y,omitempty"`
	DY       float64 `yaml:"dy,omitempty" json:"dy,omitempty"`
	Width    float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Duration float32 `yaml:"duration,omitempty" json:"duration,omitempty"`
	Path     string  `yaml:"path,omitempty" json:"path,omitempty"`
	Frames   int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps" json:"steps"`
}

var validActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"move":       true,
	"scroll":     true,
	"scrollTo":   true,
	"resize":     true,
	"invalidate": true,
	"theme":      true,
	"navigate":   true,
	"wait":       true,
}

// TestRunner sequences injected input, scroll and screenshots across frames
// for automated visual testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error

	// Router, if set, serves "navigate" steps.
	Router *Router
}

// LoadTestScript parses a YAML test script (JSON is accepted too, being a
// subset of YAML) and returns a TestRunner ready to be attached to a Scene.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !validActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	c := s.c
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "scroll":
		s.InjectScroll(st.DY)
	case "scrollTo":
		c.ScrollTo(st.Y, st.Duration, nil)
	case "resize":
		s.InjectResize(st.Width, st.Height)
	case "invalidate":
		c.InvalidateMeasurements()
	case "theme":
		c.Theme().Toggle(st.X, st.Y)
	case "navigate":
		if r.Router == nil {
			r.fail(fmt.Errorf("step %d: navigate without a router", r.cursor-1))
			break
		}
		if err := r.Router.Navigate(st.Path); err != nil {
			r.fail(fmt.Errorf("step %d: %w", r.cursor-1, err))
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) fail(err error) {
	warnf("test runner: %v", err)
	if r.err == nil {
		r.err = err
	}
}
