// Package ecs bridges thicket's per-frame encoding reports into a [Donburi]
// world as typed events.
//
// Usage:
//
//	sys.SetReporter(ecs.NewDonburiReporter(world))
//	ecs.EncoderFailedEventType.Subscribe(world, func(w donburi.World, r thicket.EncoderReport) {
//		// r.Name produced no data this frame
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
