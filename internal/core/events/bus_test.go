package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestPublishFansOutToClientSubscribers(t *testing.T) {
	bus := NewBus()
	clientID := uuid.New()
	other := uuid.New()

	ch1, cancel1 := bus.Subscribe(clientID)
	defer cancel1()
	ch2, cancel2 := bus.Subscribe(clientID)
	defer cancel2()
	chOther, cancelOther := bus.Subscribe(other)
	defer cancelOther()

	bus.Publish(Event{Type: TypeNotification, ClientID: clientID, Payload: "hello"})

	for i, ch := range []chan []byte{ch1, ch2} {
		select {
		case data := <-ch:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("subscriber %d: bad payload: %v", i, err)
			}
			if ev.Type != TypeNotification {
				t.Fatalf("subscriber %d: type = %s, want %s", i, ev.Type, TypeNotification)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}

	select {
	case <-chOther:
		t.Fatal("other client's subscriber received a foreign event")
	default:
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	bus := NewBus()
	clientID := uuid.New()

	_, cancel := bus.Subscribe(clientID)
	if bus.SubscriberCount(clientID) != 1 {
		t.Fatalf("count = %d, want 1", bus.SubscriberCount(clientID))
	}

	cancel()
	if bus.SubscriberCount(clientID) != 0 {
		t.Fatalf("count after cancel = %d, want 0", bus.SubscriberCount(clientID))
	}

	// Publishing after cancel must not panic on the closed channel
	bus.Publish(Event{Type: TypeNotification, ClientID: clientID})
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	clientID := uuid.New()

	_, cancel := bus.Subscribe(clientID)
	defer cancel()

	// Fill the buffer past capacity, Publish must never block
	for i := 0; i < 50; i++ {
		bus.Publish(Event{Type: TypeNotification, ClientID: clientID, Payload: i})
	}
}
