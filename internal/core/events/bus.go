package events

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Event is one realtime message pushed to a client's dashboard
type Event struct {
	Type     string    `json:"type"`
	ClientID uuid.UUID `json:"client_id"`
	Payload  any       `json:"payload,omitempty"`
}

// Event types
const (
	TypeNotification = "notification"
	TypeAppointment  = "appointment"
	TypeReservation  = "reservation"
	TypeConversation = "conversation"
)

// Bus fans events out to SSE subscribers keyed by client ID
type Bus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan []byte]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uuid.UUID]map[chan []byte]struct{})}
}

// Subscribe registers a listener for one client's events. The cancel
// function must be called on disconnect.
func (b *Bus) Subscribe(clientID uuid.UUID) (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[clientID] == nil {
		b.subs[clientID] = make(map[chan []byte]struct{})
	}
	b.subs[clientID][ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		if subs, ok := b.subs[clientID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, clientID)
			}
		}
		b.mu.Unlock()
		close(ch)
	}
}

// Publish delivers an event to every subscriber of its client. Slow
// subscribers are skipped rather than blocking the publisher.
func (b *Bus) Publish(ev Event) {
	data, _ := json.Marshal(ev)
	b.mu.RLock()
	subs := b.subs[ev.ClientID]
	for ch := range subs {
		select {
		case ch <- data:
		default: // drop if slow
		}
	}
	b.mu.RUnlock()
}

// SubscriberCount reports the number of open streams for a client
func (b *Bus) SubscriberCount(clientID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[clientID])
}
