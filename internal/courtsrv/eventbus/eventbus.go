// Package eventbus provides an in-memory publish/subscribe event bus used
// to fan state-change notifications out to connected observers. Delivery is
// non-blocking per subscriber: a subscriber whose buffer is full misses the
// event rather than stalling the publisher.
package eventbus

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// Event represents a single event on the bus.
type Event struct {
	Topic string // event topic for routing
	Data  any    // event data payload
}

// Subscriber represents an event subscription with a buffered channel and
// lifecycle management.
type Subscriber struct {
	ID         string             // unique subscriber identifier
	Topic      string             // subscribed topic pattern
	BufferSize int                // channel buffer size
	Channel    chan Event         // event delivery channel
	Context    context.Context    // cancellation context
	Cancel     context.CancelFunc // context cancellation function

	mu     sync.Mutex // protects closed flag
	closed bool       // indicates if subscriber is closed
}

// SafeSend attempts to send an event to the subscriber's channel.
// Returns true if the event was sent, false if the subscriber is closed or
// its channel is full.
func (s *Subscriber) SafeSend(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.Channel <- event:
		return true
	default:
		return false
	}
}

// Close shuts down the subscriber. Cancels the context and closes the
// event channel. Safe to call more than once.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		s.Cancel()
		close(s.Channel)
	}
}

// EventBus is the bus implementation with topic-based routing. The
// subscriber set may be mutated concurrently with publishes.
type EventBus struct {
	sync.RWMutex
	subscribers map[string]map[string]*Subscriber // topic -> subscriberID -> Subscriber
	counter     uint64                            // atomic counter for subscriber ID generation
}

// New creates a new EventBus instance.
func New() *EventBus {
	return &EventBus{
		subscribers: make(map[string]map[string]*Subscriber),
	}
}

// Subscribe creates a new subscriber for the given topic pattern and
// returns the event channel and an unsubscribe function. The bufferSize
// parameter controls the channel buffer capacity for event delivery.
func (bus *EventBus) Subscribe(topic string, bufferSize int) (<-chan Event, func()) {
	id := fmt.Sprintf("sub-%d", atomic.AddUint64(&bus.counter, 1))

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan Event, bufferSize)

	sub := &Subscriber{
		ID:         id,
		Topic:      topic,
		BufferSize: bufferSize,
		Channel:    ch,
		Context:    ctx,
		Cancel:     cancel,
	}

	bus.Lock()
	defer bus.Unlock()

	if _, ok := bus.subscribers[topic]; !ok {
		bus.subscribers[topic] = make(map[string]*Subscriber)
	}
	bus.subscribers[topic][id] = sub

	unsubscribe := func() {
		bus.Lock()
		defer bus.Unlock()

		if subMap, ok := bus.subscribers[topic]; ok {
			if s, ok := subMap[id]; ok {
				s.Close()
				delete(subMap, id)
				if len(subMap) == 0 {
					delete(bus.subscribers, topic)
				}
			}
		}
	}

	return ch, unsubscribe
}

// Publish sends an event to all subscribers whose pattern matches the
// topic. Never blocks; events are dropped for subscribers with a full
// buffer. Events published sequentially are delivered to each surviving
// subscriber in publish order.
func (bus *EventBus) Publish(topic string, data any) {
	event := Event{Topic: topic, Data: data}

	bus.RLock()
	defer bus.RUnlock()

	for pattern, subMap := range bus.subscribers {
		if matchTopic(pattern, topic) {
			for _, sub := range subMap {
				select {
				case <-sub.Context.Done():
					continue
				default:
					sub.SafeSend(event)
				}
			}
		}
	}
}

// Shutdown closes all subscribers and clears the bus.
func (bus *EventBus) Shutdown() {
	bus.Lock()
	defer bus.Unlock()

	for _, subs := range bus.subscribers {
		for _, sub := range subs {
			sub.Close()
		}
	}
	bus.subscribers = make(map[string]map[string]*Subscriber)
}

// matchTopic determines if a topic matches a pattern. Supports exact
// matches and wildcard patterns with dot-separated components.
func matchTopic(pattern, topic string) bool {
	if pattern == "" || topic == "" {
		return false
	}
	if pattern == "*" || pattern == topic {
		return true
	}
	patternParts := strings.Split(pattern, ".")
	topicParts := strings.Split(topic, ".")

	if len(patternParts) != len(topicParts) {
		return false
	}

	for i := 0; i < len(patternParts); i++ {
		if patternParts[i] == "*" {
			continue
		}
		if patternParts[i] != topicParts[i] {
			return false
		}
	}
	return true
}
