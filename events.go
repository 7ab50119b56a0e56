package scrollwork

// ChoreoEventType identifies a choreography event.
type ChoreoEventType uint8

const (
	ChoreoEntered      ChoreoEventType = iota // trigger target crossed into view
	ChoreoLeft                                // trigger target crossed out of view
	ChoreoPinLocked                           // pin target locked
	ChoreoPinReleased                         // pin target released
	ChoreoThemeChanged                        // theme applied
)

var choreoEventNames = [...]string{"entered", "left", "pin-locked", "pin-released", "theme-changed"}

func (t ChoreoEventType) String() string {
	if int(t) < len(choreoEventNames) {
		return choreoEventNames[t]
	}
	return "unknown"
}

// ChoreoEvent describes something the Choreographer did this frame.
type ChoreoEvent struct {
	Type      ChoreoEventType
	BindingID uint32
	ElementID uint32
	Progress  float64
	// Dark is the theme after a ChoreoThemeChanged event.
	Dark bool
}

// EventSink receives choreography events as they happen, during the
// Choreographer's write phase.
type EventSink interface {
	EmitEvent(ev ChoreoEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev ChoreoEvent)

// EmitEvent calls f(ev).
func (f EventSinkFunc) EmitEvent(ev ChoreoEvent) {
	f(ev)
}
