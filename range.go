package scrollwork

// ExtentAxis selects a measured scroll extent to add to an Edge.
type ExtentAxis uint8

const (
	ExtentNone       ExtentAxis = iota
	ExtentHorizontal            // content width minus viewport width
	ExtentVertical              // content height minus viewport height
)

// Edge is one end of a ScrollRange: the scroll offset at which the point
// Element (a fraction of the target's height) meets the point Viewport (a
// fraction of the viewport height), shifted by Offset pixels.
//
// "top of target reaches 80% of the viewport" is Edge{Element: 0, Viewport: 0.8}.
type Edge struct {
	Element  float64
	Viewport float64
	Offset   float64
	// AfterStart makes an end edge relative to the resolved start; Element
	// and Viewport are ignored.
	AfterStart bool
	// Extent adds the binding's measured scroll extent along the axis.
	Extent ExtentAxis
}

// ScrollRange is the pair of edges a scrub or pin binding is active between.
type ScrollRange struct {
	Start, End Edge
}

// ViewportRange is the common "enters at the bottom, leaves at the top" range.
var ViewportRange = ScrollRange{
	Start: Edge{Element: 0, Viewport: 1},
	End:   Edge{Element: 1, Viewport: 0},
}

// PinRange is "target top at viewport top, for the horizontal extent": the
// range a horizontal rail is pinned for.
var PinRange = ScrollRange{
	Start: Edge{Element: 0, Viewport: 0},
	End:   Edge{AfterStart: true, Extent: ExtentHorizontal},
}

// ResolvedRange is a ScrollRange converted to scroll offsets against one
// measurement. It is replaced, never adjusted, when measurements change.
type ResolvedRange struct {
	Start, End float64
	Token      InvalidationToken
}

// Length returns End - Start.
func (r ResolvedRange) Length() float64 {
	return r.End - r.Start
}

// Degenerate reports whether the range has zero length.
func (r ResolvedRange) Degenerate() bool {
	return r.End <= r.Start
}

// Contains reports whether offset lies within [Start, End].
func (r ResolvedRange) Contains(offset float64) bool {
	return offset >= r.Start && offset <= r.End
}

// Progress maps a scroll offset to [0, 1]. Offsets before the range give 0
// and after it give 1. A zero-length range is treated as already revealed
// and always gives 1.
func (r ResolvedRange) Progress(offset float64) float64 {
	if r.Degenerate() {
		return 1
	}
	return clamp01((offset - r.Start) / (r.End - r.Start))
}

// resolve converts the range to scroll offsets for a target occupying
// target in document space.
func (rng ScrollRange) resolve(target Rect, vs ViewportState, ext Extent) ResolvedRange {
	start := rng.Start.resolve(target, vs, ext, 0)
	end := rng.End.resolve(target, vs, ext, start)
	if end < start {
		end = start
	}
	return ResolvedRange{Start: start, End: end, Token: ext.Token}
}

func (e Edge) resolve(target Rect, vs ViewportState, ext Extent, start float64) float64 {
	var v float64
	if e.AfterStart {
		v = start
	} else {
		v = target.Y + e.Element*target.Height - e.Viewport*vs.Height
	}
	v += e.Offset
	switch e.Extent {
	case ExtentHorizontal:
		v += ext.ScrollWidth
	case ExtentVertical:
		v += ext.ScrollHeight
	}
	return v
}
