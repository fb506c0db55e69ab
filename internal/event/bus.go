package event

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/curialabs/curia/internal/logging"
)

// DefaultMaxHistory is the history capacity used when NewBus is given a
// non-positive value.
const DefaultMaxHistory = 100

// Handler is a function that handles an event.
type Handler func(Event)

// subscription represents a registered event handler.
type subscription struct {
	id       string
	kind     Kind
	owner    string
	priority int
	handler  Handler
}

// Bus is a synchronous pub-sub event dispatcher. It keeps a bounded FIFO
// history of published events and delivers each event to subscribers in
// descending priority order.
//
// Subscription bookkeeping is guarded by a mutex, but a single Bus is not
// intended for concurrent Publish calls; run independent debates on
// separate Bus instances.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[Kind][]subscription
	history       []Event
	maxHistory    int
	nextID        atomic.Uint64
	logger        *logging.Logger
}

// NewBus creates an event bus with the given history capacity. A nil
// logger falls back to a no-op logger.
func NewBus(maxHistory int, logger *logging.Logger) *Bus {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Bus{
		subscriptions: make(map[Kind][]subscription),
		maxHistory:    maxHistory,
		logger:        logger.WithComponent("event_bus"),
	}
}

// Subscribe registers a handler for a specific event kind on behalf of an
// owner (typically a senator name). Subscribing the same owner to the same
// kind twice is a no-op that returns the existing subscription ID.
//
// Handlers for a kind are invoked in descending priority order; ties keep
// registration order.
func (b *Bus) Subscribe(kind Kind, owner string, priority int, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscriptions[kind] {
		if sub.owner == owner {
			return sub.id
		}
	}

	sub := subscription{
		id:       fmt.Sprintf("sub-%d", b.nextID.Add(1)),
		kind:     kind,
		owner:    owner,
		priority: priority,
		handler:  handler,
	}
	b.subscriptions[kind] = append(b.subscriptions[kind], sub)
	return sub.id
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				b.subscriptions[kind] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish records the event in history and dispatches it to all handlers
// registered for its kind, highest priority first. A panicking handler is
// recovered and logged with the event and subscription identity, and
// dispatch continues: delivery is at-most-once per handler with no retry.
// Publish returns only after every handler has been invoked.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	b.history = append(b.history, event)
	if len(b.history) > b.maxHistory {
		// FIFO eviction: drop the oldest entry.
		b.history = b.history[1:]
	}

	subs := make([]subscription, len(b.subscriptions[event.Kind()]))
	copy(subs, b.subscriptions[event.Kind()])
	b.mu.Unlock()

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].priority > subs[j].priority
	})

	for _, sub := range subs {
		b.safeCall(sub, event)
	}
}

// safeCall invokes a handler and recovers from any panics so one
// misbehaving subscriber cannot block delivery to the others.
func (b *Bus) safeCall(sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event_id", event.ID().String(),
				"event_kind", event.Kind().String(),
				"subscription", sub.id,
				"owner", sub.owner,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	sub.handler(event)
}

// RecentEvents returns the most recent count events from history, oldest
// first. If count exceeds the history length the whole history is returned.
func (b *Bus) RecentEvents(count int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if count <= 0 {
		return nil
	}
	if count > len(b.history) {
		count = len(b.history)
	}
	out := make([]Event, count)
	copy(out, b.history[len(b.history)-count:])
	return out
}

// HistoryContains reports whether an event with the given ID is still in
// the bounded history. Used to flag reactions and interjections that
// reference an unknown or evicted speech.
func (b *Bus) HistoryContains(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, e := range b.history {
		if e.ID() == id {
			return true
		}
	}
	return false
}

// HistoryLen returns the number of events currently retained.
func (b *Bus) HistoryLen() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history)
}

// ClearHistory empties the history without affecting subscriptions.
func (b *Bus) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}
