package service

import (
	"context"
	"sync"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
)

const defaultSubscriberBuffer = 1024

var _ i.EventPublisher = &hub{}

// hub fans run events out to in-process subscribers. A subscriber that falls
// a full buffer behind is dropped and its channel closed, so a subscriber never
// sees a gap in the event order.
type hub struct {
	buffer      int
	subscribers map[chan dmn.RunEvent]struct{}
	sync.Mutex
}

func newHub(buffer int) *hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &hub{
		buffer:      buffer,
		subscribers: make(map[chan dmn.RunEvent]struct{}),
	}
}

// subscribe registers a subscriber and returns its channel and an unsubscribe function.
func (h *hub) subscribe() (<-chan dmn.RunEvent, func()) {
	ch := make(chan dmn.RunEvent, h.buffer)

	h.Lock()
	h.subscribers[ch] = struct{}{}
	h.Unlock()

	return ch, func() { h.drop(ch) }
}

// Publish implements i.EventPublisher.
func (h *hub) Publish(_ context.Context, e dmn.RunEvent) error {
	h.Lock()
	defer h.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return nil
}

func (h *hub) drop(ch chan dmn.RunEvent) {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

func (h *hub) count() int {
	h.Lock()
	defer h.Unlock()
	return len(h.subscribers)
}
