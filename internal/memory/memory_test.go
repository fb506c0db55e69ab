package memory

import (
	"testing"

	"github.com/google/uuid"

	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/senator"
)

func TestMemory_RecordEventAndQuery(t *testing.T) {
	m := New()

	cato := senator.New("Cato", "Optimates", 4)
	brutus := senator.New("Brutus", "Populares", 2)

	first := event.NewSpeechEvent(cato, "Land Reform", "a", senator.StanceOppose, nil)
	second := event.NewSpeechEvent(brutus, "Land Reform", "b", senator.StanceSupport, nil)
	lifecycle := event.NewDebateEvent(event.DebateStart, "Land Reform", []string{"Cato", "Brutus"}, "")

	m.RecordEvent(first)
	m.RecordEvent(lifecycle)
	m.RecordEvent(second)

	if m.EventCount() != 3 {
		t.Fatalf("EventCount() = %d, want 3", m.EventCount())
	}

	speeches := m.EventsByKind(event.KindSpeech)
	if len(speeches) != 2 {
		t.Fatalf("EventsByKind(speech) returned %d records, want 2", len(speeches))
	}
	if speeches[0].ID != first.ID() || speeches[1].ID != second.ID() {
		t.Error("EventsByKind should return records oldest first")
	}

	fromCato := m.EventsBySource("Cato")
	if len(fromCato) != 1 || fromCato[0].ID != first.ID() {
		t.Errorf("EventsBySource(Cato) = %v", fromCato)
	}

	// Lifecycle events have no source and must not pollute the source index.
	if got := m.EventsBySource(""); got != nil {
		t.Errorf("EventsBySource(\"\") = %v, want nil", got)
	}
}

func TestMemory_RecentEvents(t *testing.T) {
	m := New()
	cato := senator.New("Cato", "Optimates", 4)

	events := make([]event.SpeechEvent, 4)
	for i := range events {
		events[i] = event.NewSpeechEvent(cato, "Land Reform", "x", senator.StanceNeutral, nil)
		m.RecordEvent(events[i])
	}

	recent := m.RecentEvents(2)
	if len(recent) != 2 {
		t.Fatalf("RecentEvents(2) returned %d records", len(recent))
	}
	if recent[0].ID != events[2].ID() || recent[1].ID != events[3].ID() {
		t.Error("RecentEvents should return the newest records, oldest first")
	}

	if got := m.RecentEvents(100); len(got) != 4 {
		t.Errorf("RecentEvents(100) returned %d records, want 4", len(got))
	}
}

func TestMemory_ReactionsTo(t *testing.T) {
	m := New()
	target := uuid.New()

	m.RecordReaction(target, event.ReactionAgreement, "hear hear")
	m.RecordReaction(target, event.ReactionInterest, "go on")
	m.RecordReaction(uuid.New(), event.ReactionBoredom, "yawn")

	got := m.ReactionsTo(target)
	if len(got) != 2 {
		t.Fatalf("ReactionsTo returned %d records, want 2", len(got))
	}
	if got[0].Type != event.ReactionAgreement || got[1].Type != event.ReactionInterest {
		t.Errorf("ReactionsTo order wrong: %v, %v", got[0].Type, got[1].Type)
	}
}

func TestMemory_StanceChangeTrace(t *testing.T) {
	m := New()

	m.RecordStanceChange("Land Reform", senator.StanceNeutral, senator.StanceSupport, "persuaded", uuid.New())
	m.RecordStanceChange("Land Reform", senator.StanceSupport, senator.StanceNeutral, "doubt", uuid.New())
	m.RecordStanceChange("Grain Dole", senator.StanceOppose, senator.StanceNeutral, "pressure", uuid.New())

	trace := m.StanceChangesFor("Land Reform")
	if len(trace) != 2 {
		t.Fatalf("StanceChangesFor returned %d records, want 2", len(trace))
	}

	// Each record's old stance chains from the previous record's new stance.
	if trace[1].OldStance != trace[0].NewStance {
		t.Errorf("trace broken: record 1 old stance %q, want %q",
			trace[1].OldStance, trace[0].NewStance)
	}

	if got := m.StanceChangesFor("Unknown Topic"); len(got) != 0 {
		t.Errorf("StanceChangesFor(unknown) = %v, want empty", got)
	}
}

func TestMemory_RelationshipScoreClamping(t *testing.T) {
	m := New()

	m.RecordRelationshipImpact("Brutus", uuid.New(), 0.7, "supported my motion")
	if got := m.RelationshipScore("Brutus"); got != 0.7 {
		t.Errorf("RelationshipScore = %v, want 0.7", got)
	}

	m.RecordRelationshipImpact("Brutus", uuid.New(), 0.9, "supported again")
	if got := m.RelationshipScore("Brutus"); got != 1.0 {
		t.Errorf("RelationshipScore = %v, want clamped 1.0", got)
	}

	m.RecordRelationshipImpact("Brutus", uuid.New(), -3.5, "betrayal")
	if got := m.RelationshipScore("Brutus"); got != -1.0 {
		t.Errorf("RelationshipScore = %v, want clamped -1.0", got)
	}

	impacts := m.RelationshipImpactsBy("Brutus")
	if len(impacts) != 3 {
		t.Errorf("RelationshipImpactsBy returned %d records, want 3", len(impacts))
	}

	if got := m.RelationshipScore("Stranger"); got != 0 {
		t.Errorf("RelationshipScore(unknown) = %v, want 0", got)
	}
}

func TestMemory_SetRelationshipScore(t *testing.T) {
	m := New()

	m.SetRelationshipScore("Cicero", 0.9)
	if got := m.RelationshipScore("Cicero"); got != 0.9 {
		t.Errorf("RelationshipScore = %v, want 0.9", got)
	}

	m.SetRelationshipScore("Cicero", 2.0)
	if got := m.RelationshipScore("Cicero"); got != 1.0 {
		t.Errorf("RelationshipScore = %v, want clamped 1.0", got)
	}
}
