package ecs

import (
	"github.com/phanxgames/scrollwork"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChoreoEventType is the Donburi event type for scrollwork choreography events.
var ChoreoEventType = events.NewEventType[scrollwork.ChoreoEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to ChoreoEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) scrollwork.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event scrollwork.ChoreoEvent) {
	ChoreoEventType.Publish(s.world, event)
}
