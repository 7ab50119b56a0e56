package scrollwork

// ScrollEvent is one coalesced scroll sample.
type ScrollEvent struct {
	Offset float64
	Delta  float64
	// Direction is 1 when scrolling down, -1 when scrolling up, 0 for the
	// first sample.
	Direction int
	// Complete is set on the single terminal event sent when the source is
	// destroyed. Offset holds the last known position.
	Complete bool
}

type scrollSub struct {
	id uint32
	fn func(ScrollEvent)
}

// ScrollSignal samples a ScrollSource once per frame and fans the result out
// to subscribers. Several wheel events within one frame produce one delivery.
type ScrollSignal struct {
	source ScrollSource
	subs   []scrollSub
	nextID uint32

	offset   float64
	started  bool
	complete bool
}

// NewScrollSignal creates a signal reading from source.
func NewScrollSignal(source ScrollSource) *ScrollSignal {
	return &ScrollSignal{source: source}
}

// Subscribe registers fn for coalesced scroll events. The returned Disposer
// unsubscribes.
func (s *ScrollSignal) Subscribe(fn func(ScrollEvent)) Disposer {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, scrollSub{id: id, fn: fn})
	return once(func() {
		for i := range s.subs {
			if s.subs[i].id == id {
				copy(s.subs[i:], s.subs[i+1:])
				s.subs[len(s.subs)-1] = scrollSub{}
				s.subs = s.subs[:len(s.subs)-1]
				return
			}
		}
	})
}

// Source returns the current scroll source.
func (s *ScrollSignal) Source() ScrollSource {
	return s.source
}

// SetSource replaces the scroll source, for example when a smooth-scroll
// proxy is created or torn down. The new source starts at the last offset.
func (s *ScrollSignal) SetSource(source ScrollSource) {
	s.source = source
	s.complete = false
	if source != nil {
		source.SetOffset(s.offset)
	}
}

// Offset returns the most recent sample.
func (s *ScrollSignal) Offset() float64 {
	return s.offset
}

// Complete reports whether the source has ended the stream.
func (s *ScrollSignal) Complete() bool {
	return s.complete
}

// Correct moves the source to offset without animation. The next Flush
// delivers it like any other sample.
func (s *ScrollSignal) Correct(offset float64) {
	if s.source != nil && !s.complete {
		s.source.SetOffset(offset)
	}
}

// Flush samples the source once and delivers the sample when it differs
// from the last one. Call exactly once per frame. Returns the current offset.
func (s *ScrollSignal) Flush(dt float32) float64 {
	if s.complete || s.source == nil {
		return s.offset
	}
	off, ok := s.source.Step(dt)
	if !ok {
		s.complete = true
		s.deliver(ScrollEvent{Offset: s.offset, Complete: true})
		return s.offset
	}
	if s.started && off == s.offset {
		return s.offset
	}

	ev := ScrollEvent{Offset: off, Delta: off - s.offset}
	if s.started {
		if ev.Delta > 0 {
			ev.Direction = 1
		} else {
			ev.Direction = -1
		}
	}
	s.offset = off
	s.started = true
	s.deliver(ev)
	return off
}

func (s *ScrollSignal) deliver(ev ScrollEvent) {
	// Snapshot: a subscriber may unsubscribe itself or others during delivery.
	snapshot := append([]scrollSub(nil), s.subs...)
	for _, sub := range snapshot {
		if s.subscribed(sub.id) {
			sub.fn(ev)
		}
	}
}

func (s *ScrollSignal) subscribed(id uint32) bool {
	for i := range s.subs {
		if s.subs[i].id == id {
			return true
		}
	}
	return false
}
