package scrollwork

// Scope collects the disposers of one page component so they can be
// released together when the component unmounts.
type Scope struct {
	disposers []Disposer
	loops     []*Loop
	closed    bool
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Add records d. Adding to a closed scope runs d immediately.
func (s *Scope) Add(d Disposer) {
	if d == nil {
		return
	}
	if s.closed {
		d()
		return
	}
	s.disposers = append(s.disposers, d)
}

// AddLoop records an ambient loop to dispose with the scope.
func (s *Scope) AddLoop(l *Loop) *Loop {
	if l == nil {
		return nil
	}
	if s.closed {
		l.Dispose()
		return l
	}
	s.loops = append(s.loops, l)
	return l
}

// Len returns the number of held disposers and loops.
func (s *Scope) Len() int {
	return len(s.disposers) + len(s.loops)
}

// Closed reports whether Dispose has run.
func (s *Scope) Closed() bool {
	return s.closed
}

// Dispose runs every disposer in reverse order of registration and disposes
// every loop. Safe to call more than once.
func (s *Scope) Dispose() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.disposers) - 1; i >= 0; i-- {
		s.disposers[i]()
		s.disposers[i] = nil
	}
	for i, l := range s.loops {
		l.Dispose()
		s.loops[i] = nil
	}
	s.disposers = nil
	s.loops = nil
}
