package notify

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/eventbus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// topicPattern matches every court event topic.
const topicPattern = "courts.*"

// Broadcaster fans events out to all attached observers. Events are
// marshaled once at publish time, so every observer sees the state as it
// was when the event was produced. Delivery is best-effort: observers that
// cannot keep up miss events, and a disconnected observer never blocks
// delivery to others.
type Broadcaster struct {
	bus        *eventbus.EventBus
	bufferSize int
}

// NewBroadcaster creates a broadcaster. bufferSize is the per-observer
// event buffer capacity.
func NewBroadcaster(bufferSize int) *Broadcaster {
	return &Broadcaster{
		bus:        eventbus.New(),
		bufferSize: bufferSize,
	}
}

// Broadcast marshals the event and publishes it to every attached
// observer. Safe to call while holding the producer's lock: publishing
// never blocks.
func (b *Broadcaster) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(ev.Type)).Msg("unable to marshal event")
		return
	}
	b.bus.Publish("courts."+string(ev.Type), data)
}

// Attach registers a new observer and returns its event channel and a
// detach function. Event data is the marshaled JSON of the event. The
// caller is expected to send the observer a current snapshot before
// draining the channel.
func (b *Broadcaster) Attach() (<-chan eventbus.Event, func()) {
	return b.bus.Subscribe(topicPattern, b.bufferSize)
}

// Marshal serializes an event the same way Broadcast does. Used to frame
// the connect-time snapshot for a single observer.
func (b *Broadcaster) Marshal(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Shutdown detaches all observers.
func (b *Broadcaster) Shutdown() {
	b.bus.Shutdown()
}
