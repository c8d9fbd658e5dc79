package realtime

import (
	"log"
	"sync"
	"time"
)

const DefaultQueueSize = 16

// Event is what subscribers and websocket clients receive.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Subscription receives events in publish order. C is closed when the
// subscriber is dropped or the hub shuts down.
type Subscription struct {
	C  <-chan Event
	ch chan Event
}

// SettingsHub fans settings events out to in-process subscribers and websocket clients.
type SettingsHub struct {
	mu        sync.Mutex
	subs      map[*Subscription]struct{}
	closed    bool
	queueSize int
	now       func() time.Time
}

func NewSettingsHub(queueSize int) *SettingsHub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &SettingsHub{
		subs:      make(map[*Subscription]struct{}),
		queueSize: queueSize,
		now:       time.Now,
	}
}

// Subscribe registers a new subscriber. On a closed hub the returned channel is already closed.
func (h *SettingsHub) Subscribe() *Subscription {
	ch := make(chan Event, h.queueSize)
	sub := &Subscription{C: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

func (h *SettingsHub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(sub)
}

// drop must be called with h.mu held.
func (h *SettingsHub) drop(sub *Subscription) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Publish never blocks: a subscriber whose queue is full is dropped.
func (h *SettingsHub) Publish(topic string, payload any) {
	ev := Event{Type: topic, Payload: payload, At: h.now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			log.Printf("[realtime][publish][warn] dropping slow subscriber on %s", topic)
			h.drop(sub)
		}
	}
}

func (h *SettingsHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber; later publishes are ignored.
func (h *SettingsHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		h.drop(sub)
	}
}
