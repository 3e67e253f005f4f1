package eventbus

import (
	"fmt"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	bus := New()
	if bus == nil || bus.subscribers == nil {
		t.Error("New() returned nil or subscribers map is nil")
	}
}

func TestSubscribeAndPublish(t *testing.T) {
	bus := New()
	topic := "courts.check_in"

	ch, unsubscribe := bus.Subscribe(topic, 1)
	defer unsubscribe()

	testData := "test-data"
	bus.Publish(topic, testData)

	select {
	case event := <-ch:
		if event.Topic != topic {
			t.Errorf("expected topic %s, got %s", topic, event.Topic)
		}
		if event.Data != testData {
			t.Errorf("expected data %v, got %v", testData, event.Data)
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestPatternMatching(t *testing.T) {
	bus := New()

	ch, unsubscribe := bus.Subscribe("courts.*", 4)
	defer unsubscribe()

	bus.Publish("courts.check_in", "a")
	bus.Publish("courts.session_expired", "b")
	bus.Publish("users.updated", "c") // should not match

	for i, want := range []string{"a", "b"} {
		select {
		case event := <-ch:
			if event.Data != want {
				t.Errorf("event %d: expected data %v, got %v", i, want, event.Data)
			}
		case <-time.After(200 * time.Millisecond):
			t.Errorf("event %d: timeout waiting for event", i)
		}
	}

	select {
	case event := <-ch:
		t.Errorf("unexpected event %v for non-matching topic", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMultipleSubscribers(t *testing.T) {
	bus := New()
	topic := "courts.check_out"

	ch1, unsub1 := bus.Subscribe(topic, 1)
	defer unsub1()
	ch2, unsub2 := bus.Subscribe(topic, 1)
	defer unsub2()

	testData := "test-data"
	bus.Publish(topic, testData)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Data != testData {
				t.Errorf("subscriber %d: expected data %v, got %v", i, testData, event.Data)
			}
		case <-time.After(200 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestOrderingPerSubscriber(t *testing.T) {
	bus := New()
	topic := "courts.check_in"

	ch, unsubscribe := bus.Subscribe(topic, 10)
	defer unsubscribe()

	for i := 0; i < 10; i++ {
		bus.Publish(topic, fmt.Sprintf("event-%d", i))
	}

	for i := 0; i < 10; i++ {
		select {
		case event := <-ch:
			want := fmt.Sprintf("event-%d", i)
			if event.Data != want {
				t.Fatalf("expected %s, got %v", want, event.Data)
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("timeout waiting for event %d", i)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	topic := "courts.check_in"

	ch, unsubscribe := bus.Subscribe(topic, 1)
	unsubscribe()

	bus.Publish(topic, "test-data")

	// channel is closed after unsubscribe
	_, ok := <-ch
	if ok {
		t.Errorf("channel is still open after unsubscribe")
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	bus := New()
	topic := "courts.check_in"

	ch, unsubscribe := bus.Subscribe(topic, 1)
	defer unsubscribe()

	bus.Publish(topic, "first")
	bus.Publish(topic, "second") // buffer full, dropped

	select {
	case event := <-ch:
		if event.Data != "first" {
			t.Errorf("expected first event, got %v", event.Data)
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("timeout waiting for event")
	}

	select {
	case event := <-ch:
		t.Errorf("unexpected second event %v", event.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShutdown(t *testing.T) {
	bus := New()

	ch1, unsub1 := bus.Subscribe("courts.check_in", 1)
	defer unsub1()
	ch2, unsub2 := bus.Subscribe("courts.check_out", 1)
	defer unsub2()

	bus.Shutdown()

	bus.Publish("courts.check_in", "test-data")

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case _, ok := <-ch:
			if ok {
				t.Errorf("subscriber %d: channel should be closed after shutdown", i)
			}
		case <-time.After(200 * time.Millisecond):
			t.Errorf("subscriber %d: did not close channel after shutdown", i)
		}
	}
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"courts.check_in", "courts.check_in", true},
		{"courts.*", "courts.check_in", true},
		{"courts.*", "courts.session_expired", true},
		{"courts.*", "users.updated", false},
		{"*", "anything", true},
		{"courts.*", "courts.a.b", false},
		{"", "courts.check_in", false},
		{"courts.check_in", "", false},
	}
	for _, tt := range tests {
		if got := matchTopic(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("matchTopic(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}
