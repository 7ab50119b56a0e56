package scrollwork

import "github.com/tanema/gween/ease"

// PropertyName identifies an element style output the Choreographer writes.
type PropertyName uint8

const (
	PropTranslateX PropertyName = iota
	PropTranslateY
	PropScale // ScaleX and ScaleY together
	PropScaleX
	PropScaleY
	PropRotation
	PropOpacity
	numProps
)

var propNames = [numProps]string{"translateX", "translateY", "scale", "scaleX", "scaleY", "rotation", "opacity"}

func (p PropertyName) String() string {
	if p < numProps {
		return propNames[p]
	}
	return "unknown"
}

// ParsePropertyName maps a name such as "translateX" to its PropertyName.
func ParsePropertyName(s string) (PropertyName, bool) {
	for i, n := range propNames {
		if n == s {
			return PropertyName(i), true
		}
	}
	return 0, false
}

// Property interpolates one style output from From to To. Ease is any gween
// easing function; nil means linear.
type Property struct {
	Name     PropertyName
	From, To float64
	Ease     ease.TweenFunc
}

// At returns the eased value at progress p in [0, 1]. Pure: the same p
// always gives the same value.
func (p Property) At(progress float64) float64 {
	progress = clamp01(progress)
	t := progress
	if p.Ease != nil {
		t = float64(p.Ease(float32(progress), 0, 1, 1))
	}
	return p.From + (p.To-p.From)*t
}

// read returns the element's current value for name.
func read(e *Element, name PropertyName) float64 {
	switch name {
	case PropTranslateX:
		return e.TranslateX
	case PropTranslateY:
		return e.TranslateY
	case PropScale, PropScaleX:
		return e.ScaleX
	case PropScaleY:
		return e.ScaleY
	case PropRotation:
		return e.Rotation
	case PropOpacity:
		return e.Opacity
	}
	return 0
}

// write stores v into the element's style output and counts the write.
func write(e *Element, name PropertyName, v float64) {
	switch name {
	case PropTranslateX:
		e.TranslateX = v
	case PropTranslateY:
		e.TranslateY = v
	case PropScale:
		e.ScaleX, e.ScaleY = v, v
	case PropScaleX:
		e.ScaleX = v
	case PropScaleY:
		e.ScaleY = v
	case PropRotation:
		e.Rotation = v
	case PropOpacity:
		e.Opacity = v
	}
	e.writes++
	e.transformDirty = true
}

// writeText stores a text output and counts the write.
func writeText(e *Element, s string) {
	e.Text = s
	e.writes++
}

// Step is one keyframe segment of a Timeline: its properties run from Start
// to End, both fractions of the owning range.
//
// OnReach, if set, runs when the applied progress passes Start: direction 1
// going forward, -1 going back.
type Step struct {
	Start, End float64
	Properties []Property
	OnReach    func(direction int)
}

// Timeline is an ordered list of steps evaluated as a pure function of
// progress. Before a step starts its properties hold their From value (unless
// an earlier step already animates them); after it ends they hold To.
type Timeline []Step

// Tween is a one-step timeline covering the whole range.
func Tween(props ...Property) Timeline {
	return Timeline{{Start: 0, End: 1, Properties: props}}
}

// Values is the output of one Timeline evaluation.
type Values struct {
	v   [numProps]float64
	set [numProps]bool
}

// Evaluate computes every animated property at progress p.
func (t Timeline) Evaluate(p float64) Values {
	var out Values
	var owner [numProps]int
	for i := range owner {
		owner[i] = -1
	}
	for si, st := range t {
		for _, prop := range st.Properties {
			n := prop.Name
			switch {
			case owner[n] == -1:
				owner[n] = si
			case p >= st.Start:
				owner[n] = si
			}
		}
	}
	for si, st := range t {
		local := stepProgress(st, p)
		for _, prop := range st.Properties {
			if owner[prop.Name] != si {
				continue
			}
			out.v[prop.Name] = prop.At(local)
			out.set[prop.Name] = true
		}
	}
	return out
}

// apply writes every set value to e.
func (pv *Values) apply(e *Element) int {
	n := 0
	for i := range pv.v {
		if pv.set[i] {
			write(e, PropertyName(i), pv.v[i])
			n++
		}
	}
	return n
}

// Get returns the value for name and whether the timeline animates it.
func (pv Values) Get(name PropertyName) (float64, bool) {
	return pv.v[name], pv.set[name]
}

func stepProgress(st Step, p float64) float64 {
	if st.End <= st.Start {
		if p >= st.Start {
			return 1
		}
		return 0
	}
	return clamp01((p - st.Start) / (st.End - st.Start))
}
