package eventfeed

import (
	"context"
	"time"

	"github.com/aisimcore/simcore/internal/planning"
	"github.com/aisimcore/simcore/internal/spatial"
)

// StreamingObserver relays spatial.Manager events onto TopicStreaming,
// bridging the cell lifecycle's upstream event channel into the debug
// feed.
type StreamingObserver struct {
	broadcaster Broadcaster
}

// NewStreamingObserver creates a StreamingObserver.
func NewStreamingObserver(b Broadcaster) *StreamingObserver {
	return &StreamingObserver{broadcaster: b}
}

// Run drains manager's event channel until ctx is done, publishing
// each as a FeedEvent.
func (o *StreamingObserver) Run(ctx context.Context, manager *spatial.Manager) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-manager.Events():
			if !ok {
				return
			}
			o.broadcaster.Broadcast(streamingFeedEvent(event))
		}
	}
}

func streamingFeedEvent(e spatial.Event) *FeedEvent {
	var eventType string
	switch e.Kind {
	case spatial.CellLoadStarted:
		eventType = EventCellLoadStarted
	case spatial.CellLoaded:
		eventType = EventCellLoaded
	case spatial.CellUnloadStarted:
		eventType = EventCellUnloadStarted
	case spatial.CellUnloaded:
		eventType = EventCellUnloaded
	case spatial.CellLoadFailed:
		eventType = EventCellLoadFailed
	}

	feedEvent := NewFeedEvent(TopicStreaming, eventType)
	feedEvent.Coord = &GridCoordDTO{X: e.Coord.X, Y: e.Coord.Y, Z: e.Coord.Z}
	if e.Err != nil {
		feedEvent.Error = e.Err.Error()
	}
	return feedEvent
}

// TelemetryObserver periodically publishes a Telemetry snapshot onto
// TopicTelemetry.
type TelemetryObserver struct {
	broadcaster Broadcaster
}

// NewTelemetryObserver creates a TelemetryObserver.
func NewTelemetryObserver(b Broadcaster) *TelemetryObserver {
	return &TelemetryObserver{broadcaster: b}
}

// Run publishes telemetry.Snapshot() at the given interval until ctx
// is done. The snapshot fields are carried through verbatim in
// FeedEvent.Data.
func (o *TelemetryObserver) Run(ctx context.Context, telemetry *planning.Telemetry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			feedEvent := NewFeedEvent(TopicTelemetry, EventTelemetrySnapshot)
			feedEvent.Data = telemetry.Snapshot()
			o.broadcaster.Broadcast(feedEvent)
		}
	}
}
