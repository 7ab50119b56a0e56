// Package ecs provides ECS adapters for scrollwork's choreography events.
//
// The primary adapter is [NewDonburiSink], which bridges choreography events
// (trigger enter/leave, pin lock/release, theme changes) into a [Donburi]
// world as typed events. Subscribe to [ChoreoEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	choreographer.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
