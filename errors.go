package scrollwork

import (
	"errors"
	"fmt"
)

// Recoverable conditions. None of them reaches page code as a failure: each
// is handled locally and, where useful, logged.
var (
	// ErrStaleMeasurement marks range math computed against an outdated
	// invalidation token. The result is discarded and recomputed.
	ErrStaleMeasurement = errors.New("stale measurement")
	// ErrDetachedTarget marks a binding whose element left the document.
	// The binding is unregistered.
	ErrDetachedTarget = errors.New("target detached from document")
	// ErrUnsupportedTransition marks a theme change performed without the
	// circular reveal.
	ErrUnsupportedTransition = errors.New("theme transition unsupported")
	// ErrDegenerateRange marks a zero-length scroll range. Progress is 1.
	ErrDegenerateRange = errors.New("degenerate scroll range")
)

// BindingError attaches a binding's identity to one of the sentinel errors.
type BindingError struct {
	ID   uint32
	Name string
	Mode Mode
	Err  error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s binding %d (%q): %v", e.Mode, e.ID, e.Name, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
