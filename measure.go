package scrollwork

// InvalidationToken is a version counter for measurements. Every recompute
// increments it; anything computed against an older token is stale.
type InvalidationToken uint64

// Extent is one measurement of a registered container.
type Extent struct {
	Token          InvalidationToken
	ContentWidth   float64
	ContentHeight  float64
	ViewportWidth  float64
	ViewportHeight float64
	// ScrollWidth is how far the content overflows the viewport horizontally:
	// the distance a horizontal rail has to travel. Never negative.
	ScrollWidth float64
	// ScrollHeight is the vertical overflow. Never negative.
	ScrollHeight float64
}

// Measurement tracks the extent of one container.
type Measurement struct {
	m         *Measurer
	container *Element
	extent    Extent
	stopBox   Disposer
	disposed  bool
}

// Current returns the latest extent. Its Token tells consumers whether math
// they derived earlier is still valid.
func (ms *Measurement) Current() Extent {
	return ms.extent
}

// Container returns the measured element.
func (ms *Measurement) Container() *Element {
	return ms.container
}

// Dispose stops tracking the container.
func (ms *Measurement) Dispose() {
	if ms.disposed {
		return
	}
	ms.disposed = true
	ms.stopBox()
	entries := ms.m.entries
	for i, e := range entries {
		if e == ms {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = nil
			ms.m.entries = entries[:len(entries)-1]
			break
		}
	}
}

func (ms *Measurement) recompute(vs ViewportState, token InvalidationToken) {
	w, h := ms.container.ContentSize()
	ms.extent = Extent{
		Token:          token,
		ContentWidth:   w,
		ContentHeight:  h,
		ViewportWidth:  vs.Width,
		ViewportHeight: vs.Height,
		ScrollWidth:    max(0, w-vs.Width),
		ScrollHeight:   max(0, h-vs.Height),
	}
}

type invalidateListener struct {
	id uint32
	fn func(InvalidationToken)
}

// Measurer computes container extents and republishes them when the
// viewport resizes, a registered container's box changes, or a page forces
// it after async content (images, fonts) resolves.
type Measurer struct {
	token     InvalidationToken
	entries   []*Measurement
	listeners []invalidateListener
	nextID    uint32

	vs     ViewportState
	forced bool
	dirty  bool
}

// NewMeasurer creates a Measurer for a viewport of the given size.
func NewMeasurer(width, height float64) *Measurer {
	return &Measurer{vs: ViewportState{Width: width, Height: height}}
}

// Token returns the current invalidation token.
func (m *Measurer) Token() InvalidationToken {
	return m.token
}

// Register starts tracking container. The returned Measurement holds an
// extent computed against the current token.
func (m *Measurer) Register(container *Element) *Measurement {
	ms := &Measurement{m: m, container: container}
	ms.stopBox = container.ObserveBox(func(*Element) {
		m.dirty = true
	})
	ms.recompute(m.vs, m.token)
	m.entries = append(m.entries, ms)
	return ms
}

// OnInvalidate registers fn to run after every recompute.
func (m *Measurer) OnInvalidate(fn func(InvalidationToken)) Disposer {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, invalidateListener{id: id, fn: fn})
	return once(func() {
		for i := range m.listeners {
			if m.listeners[i].id == id {
				copy(m.listeners[i:], m.listeners[i+1:])
				m.listeners[len(m.listeners)-1] = invalidateListener{}
				m.listeners = m.listeners[:len(m.listeners)-1]
				return
			}
		}
	})
}

// ForceInvalidate schedules a recompute on the next Check even if nothing
// observable changed.
func (m *Measurer) ForceInvalidate() {
	m.forced = true
}

// Check recomputes every extent if the viewport size changed, a tracked box
// changed, or an invalidation was forced. Returns true when it recomputed.
// Called once per frame before any binding is evaluated.
func (m *Measurer) Check(vs ViewportState) bool {
	resized := vs.Width != m.vs.Width || vs.Height != m.vs.Height
	m.vs = vs
	if !resized && !m.forced && !m.dirty {
		return false
	}
	m.forced = false
	m.dirty = false
	m.token++
	for _, ms := range m.entries {
		ms.recompute(vs, m.token)
	}
	debugf("measurements invalidated (token %d, resized %v)", m.token, resized)
	for _, l := range append([]invalidateListener(nil), m.listeners...) {
		l.fn(m.token)
	}
	return true
}
