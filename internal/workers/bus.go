package workers

import (
	"sync"
	"time"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// Update is published after each poll cycle with the refreshed
// market-wide aggregate.
type Update struct {
	Cycle  string
	Market models.AggregateResult
	At     time.Time
}

// Bus fans poll-cycle updates out to subscribers. Publishing never
// blocks: a subscriber that falls behind misses updates rather than
// stalling the poller.
type Bus struct {
	mu   sync.Mutex
	subs []chan Update
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel receiving future updates. The channel
// is buffered; slow consumers drop, they do not backpressure.
func (b *Bus) Subscribe() <-chan Update {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Update, 8)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers an update to every subscriber able to receive it.
func (b *Bus) Publish(update Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- update:
		default:
		}
	}
}
