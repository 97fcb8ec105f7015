package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ReportEventType is the Donburi event type carrying thicket frame reports.
// Subscribe to it in your ECS systems to react to encoders that produced no
// data.
var ReportEventType = events.NewEventType[thicket.Report]()

// EncoderFailedEventType carries one event per encoder that failed a frame.
var EncoderFailedEventType = events.NewEventType[thicket.EncoderReport]()

type donburiReporter struct {
	world donburi.World
}

// NewDonburiReporter creates a Reporter backed by a Donburi world.
// Reports are published to ReportEventType, failures additionally to
// EncoderFailedEventType; consume them with events.Subscribe and
// ProcessEvents.
func NewDonburiReporter(world donburi.World) thicket.Reporter {
	return &donburiReporter{world: world}
}

func (r *donburiReporter) Report(report thicket.Report) {
	ReportEventType.Publish(r.world, report)
	for _, failed := range report.Failed() {
		EncoderFailedEventType.Publish(r.world, failed)
	}
}
