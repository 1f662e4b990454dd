package events

import (
	"context"
	"errors"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

var ErrNoSubscribers = errors.New("no subscribers")

// Hub fans events out to in-process subscribers such as websocket observers.
// A subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan entity.Event
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan entity.Event),
	}
}

// Subscribe - returns a channel of events and a function that unsubscribes and closes it.
func (that *Hub) Subscribe(buffer int) (<-chan entity.Event, func()) {
	ch := make(chan entity.Event, buffer)

	that.mu.Lock()
	id := that.nextID
	that.nextID++
	that.subs[id] = ch
	that.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			that.mu.Lock()
			delete(that.subs, id)
			that.mu.Unlock()
			close(ch)
		})
	}
}

func (that *Hub) Deliver(_ context.Context, event entity.Event) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if len(that.subs) == 0 {
		return ErrNoSubscribers
	}

	for _, ch := range that.subs {
		select {
		case ch <- event:
		default:
		}
	}

	return nil
}
