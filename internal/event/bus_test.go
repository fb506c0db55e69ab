package event

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/curialabs/curia/internal/senator"
)

func testSpeech(name string, rank int) SpeechEvent {
	s := senator.New(name, "Optimates", rank)
	return NewSpeechEvent(s, "Land Reform", "content", senator.StanceSupport, nil)
}

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus(10, nil)

	called := false
	id := bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_SubscribeIdempotent(t *testing.T) {
	bus := NewBus(10, nil)

	first := bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {})
	second := bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {})

	if first != second {
		t.Errorf("duplicate Subscribe returned %q, want existing ID %q", second, first)
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription after duplicate Subscribe, got %d", bus.SubscriptionCount())
	}

	// Same owner on a different kind is a distinct subscription.
	bus.Subscribe(KindDebate, "Cato", 4, func(e Event) {})
	if bus.SubscriptionCount() != 2 {
		t.Errorf("Expected 2 subscriptions, got %d", bus.SubscriptionCount())
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus(10, nil)

	var received Event
	bus.Subscribe(KindSpeech, "Brutus", 2, func(e Event) {
		received = e
	})

	speech := testSpeech("Cato", 4)
	bus.Publish(speech)

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	if received.Kind() != KindSpeech {
		t.Errorf("Expected kind %v, got %v", KindSpeech, received.Kind())
	}
	if received.ID() != speech.ID() {
		t.Errorf("Expected event %s, got %s", speech.ID(), received.ID())
	}
}

func TestBus_PublishPriorityOrder(t *testing.T) {
	bus := NewBus(10, nil)

	var order []string
	// Registered lowest rank first to prove ordering is by priority,
	// not registration order.
	bus.Subscribe(KindSpeech, "Brutus", 2, func(e Event) {
		order = append(order, "Brutus")
	})
	bus.Subscribe(KindSpeech, "Cicero", 3, func(e Event) {
		order = append(order, "Cicero")
	})
	bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {
		order = append(order, "Cato")
	})

	bus.Publish(testSpeech("Caesar", 5))

	want := []string{"Cato", "Cicero", "Brutus"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d handler calls, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d = %q, want %q (full order: %v)", i, order[i], want[i], order)
		}
	}
}

func TestBus_PublishEqualPriorityKeepsRegistrationOrder(t *testing.T) {
	bus := NewBus(10, nil)

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		bus.Subscribe(KindSpeech, name, 2, func(e Event) {
			order = append(order, name)
		})
	}

	bus.Publish(testSpeech("Caesar", 5))

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_PublishPanicIsolation(t *testing.T) {
	bus := NewBus(10, nil)

	var delivered []string
	bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {
		delivered = append(delivered, "Cato")
		panic("rhetorical overload")
	})
	bus.Subscribe(KindSpeech, "Brutus", 2, func(e Event) {
		delivered = append(delivered, "Brutus")
	})

	bus.Publish(testSpeech("Caesar", 5))

	if len(delivered) != 2 {
		t.Fatalf("Expected delivery to both handlers despite panic, got %v", delivered)
	}
	if delivered[1] != "Brutus" {
		t.Errorf("Expected Brutus to receive the event after Cato panicked, got %v", delivered)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus(10, nil)

	bus.Subscribe(KindReaction, "Cato", 4, func(e Event) {
		t.Error("Handler should not be called for a non-matching kind")
	})

	bus.Publish(testSpeech("Caesar", 5))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(10, nil)

	called := false
	id := bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {
		called = true
	})

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true for an existing subscription")
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return false for a removed subscription")
	}

	bus.Publish(testSpeech("Caesar", 5))
	if called {
		t.Error("Handler should not be called after Unsubscribe")
	}
}

func TestBus_HistoryFIFOEviction(t *testing.T) {
	bus := NewBus(3, nil)

	events := make([]SpeechEvent, 5)
	for i := range events {
		events[i] = testSpeech(fmt.Sprintf("senator-%d", i), i)
		bus.Publish(events[i])
	}

	if bus.HistoryLen() != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", bus.HistoryLen())
	}

	recent := bus.RecentEvents(3)
	// Oldest two must have been evicted; the newest three remain in order.
	for i, want := range events[2:] {
		if recent[i].ID() != want.ID() {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID(), want.ID())
		}
	}
	if bus.HistoryContains(events[0].ID()) {
		t.Error("oldest event should have been evicted")
	}
	if !bus.HistoryContains(events[4].ID()) {
		t.Error("newest event should be retained")
	}
}

func TestBus_RecentEvents(t *testing.T) {
	bus := NewBus(10, nil)

	first := testSpeech("Cato", 4)
	second := testSpeech("Brutus", 2)
	bus.Publish(first)
	bus.Publish(second)

	recent := bus.RecentEvents(1)
	if len(recent) != 1 {
		t.Fatalf("RecentEvents(1) returned %d events", len(recent))
	}
	if recent[0].ID() != second.ID() {
		t.Errorf("RecentEvents(1) = %s, want newest %s", recent[0].ID(), second.ID())
	}

	if got := bus.RecentEvents(10); len(got) != 2 {
		t.Errorf("RecentEvents(10) returned %d events, want 2", len(got))
	}
	if got := bus.RecentEvents(0); got != nil {
		t.Errorf("RecentEvents(0) = %v, want nil", got)
	}
}

func TestBus_ClearHistory(t *testing.T) {
	bus := NewBus(10, nil)
	bus.Subscribe(KindSpeech, "Cato", 4, func(e Event) {})

	bus.Publish(testSpeech("Caesar", 5))
	bus.ClearHistory()

	if bus.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d after ClearHistory, want 0", bus.HistoryLen())
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("ClearHistory should not affect subscriptions, got %d", bus.SubscriptionCount())
	}
}

func TestBus_HistoryContainsUnknownID(t *testing.T) {
	bus := NewBus(10, nil)
	if bus.HistoryContains(uuid.New()) {
		t.Error("HistoryContains should be false for an unknown ID")
	}
}
