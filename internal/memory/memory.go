// Package memory gives each senator agent a private, queryable record of
// what it has observed and decided during debates.
//
// All logs are append-only. Index maps are maintained on write so queries
// are map lookups rather than rescans of the full history. A Memory is
// owned by exactly one agent and is mutated only through that agent's
// handlers; it is not synchronized for concurrent use.
package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/senator"
)

// Relationship scores are clamped to this range.
const (
	MinRelationship = -1.0
	MaxRelationship = 1.0
)

// EventRecord is the compact projection of an observed event.
type EventRecord struct {
	ID        uuid.UUID
	Kind      event.Kind
	Timestamp time.Time
	Source    string // Source senator name, empty for lifecycle events
	Metadata  map[string]any
}

// ReactionRecord stores one of the agent's own reactions, keyed to the
// event that triggered it.
type ReactionRecord struct {
	EventID   uuid.UUID
	Type      event.ReactionType
	Content   string
	Timestamp time.Time
}

// StanceChange records a single stance transition on a topic.
type StanceChange struct {
	Topic     string
	OldStance senator.Stance
	NewStance senator.Stance
	Reason    string
	EventID   uuid.UUID
	Timestamp time.Time
}

// RelationshipImpact records one event's effect on the agent's view of
// another senator.
type RelationshipImpact struct {
	Senator   string
	EventID   uuid.UUID
	Delta     float64
	Reason    string
	Timestamp time.Time
}

// Memory is the per-senator store of observed events, reactions, stance
// changes and relationship impacts.
type Memory struct {
	events   []EventRecord
	byKind   map[event.Kind][]int // indices into events
	bySource map[string][]int

	reactions        []ReactionRecord
	reactionsByEvent map[uuid.UUID][]int

	stanceChanges map[string][]StanceChange
	impacts       map[string][]RelationshipImpact
	scores        map[string]float64 // cached, clamped
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{
		byKind:           make(map[event.Kind][]int),
		bySource:         make(map[string][]int),
		reactionsByEvent: make(map[uuid.UUID][]int),
		stanceChanges:    make(map[string][]StanceChange),
		impacts:          make(map[string][]RelationshipImpact),
		scores:           make(map[string]float64),
	}
}

// RecordEvent stores a compact projection of the event and updates the
// kind and source indices.
func (m *Memory) RecordEvent(e event.Event) {
	rec := EventRecord{
		ID:        e.ID(),
		Kind:      e.Kind(),
		Timestamp: e.Timestamp(),
		Metadata:  e.Metadata(),
	}
	if src := e.Source(); src != nil {
		rec.Source = src.Name
	}

	idx := len(m.events)
	m.events = append(m.events, rec)
	m.byKind[rec.Kind] = append(m.byKind[rec.Kind], idx)
	if rec.Source != "" {
		m.bySource[rec.Source] = append(m.bySource[rec.Source], idx)
	}
}

// RecordReaction appends one of the agent's own reactions.
func (m *Memory) RecordReaction(eventID uuid.UUID, typ event.ReactionType, content string) {
	idx := len(m.reactions)
	m.reactions = append(m.reactions, ReactionRecord{
		EventID:   eventID,
		Type:      typ,
		Content:   content,
		Timestamp: time.Now(),
	})
	m.reactionsByEvent[eventID] = append(m.reactionsByEvent[eventID], idx)
}

// RecordStanceChange appends a stance transition for a topic. Prior records
// are never overwritten; the per-topic list forms a trace from the agent's
// initial stance.
func (m *Memory) RecordStanceChange(topic string, oldStance, newStance senator.Stance, reason string, eventID uuid.UUID) {
	m.stanceChanges[topic] = append(m.stanceChanges[topic], StanceChange{
		Topic:     topic,
		OldStance: oldStance,
		NewStance: newStance,
		Reason:    reason,
		EventID:   eventID,
		Timestamp: time.Now(),
	})
}

// RecordRelationshipImpact appends an impact record for another senator
// and updates the cached relationship score, clamped to [-1, 1].
func (m *Memory) RecordRelationshipImpact(name string, eventID uuid.UUID, delta float64, reason string) {
	m.impacts[name] = append(m.impacts[name], RelationshipImpact{
		Senator:   name,
		EventID:   eventID,
		Delta:     delta,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	m.scores[name] = clamp(m.scores[name]+delta, MinRelationship, MaxRelationship)
}

// RelationshipScore returns the cached accumulated score for another
// senator, zero if no impacts were recorded.
func (m *Memory) RelationshipScore(name string) float64 {
	return m.scores[name]
}

// SetRelationshipScore seeds the cached score directly, clamped to [-1, 1].
// Used when a debate starts with pre-existing alliances and rivalries.
func (m *Memory) SetRelationshipScore(name string, score float64) {
	m.scores[name] = clamp(score, MinRelationship, MaxRelationship)
}

// EventsByKind returns all recorded events of the given kind, oldest first.
func (m *Memory) EventsByKind(kind event.Kind) []EventRecord {
	return m.collect(m.byKind[kind])
}

// EventsBySource returns all recorded events from the named senator,
// oldest first.
func (m *Memory) EventsBySource(name string) []EventRecord {
	return m.collect(m.bySource[name])
}

// ReactionsTo returns the agent's reactions to the given event.
func (m *Memory) ReactionsTo(eventID uuid.UUID) []ReactionRecord {
	idxs := m.reactionsByEvent[eventID]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]ReactionRecord, len(idxs))
	for i, idx := range idxs {
		out[i] = m.reactions[idx]
	}
	return out
}

// StanceChangesFor returns the stance-change trace for a topic, oldest
// first.
func (m *Memory) StanceChangesFor(topic string) []StanceChange {
	changes := m.stanceChanges[topic]
	out := make([]StanceChange, len(changes))
	copy(out, changes)
	return out
}

// RelationshipImpactsBy returns all recorded impacts attributed to the
// named senator, oldest first.
func (m *Memory) RelationshipImpactsBy(name string) []RelationshipImpact {
	impacts := m.impacts[name]
	out := make([]RelationshipImpact, len(impacts))
	copy(out, impacts)
	return out
}

// RecentEvents returns the most recent count event records, oldest first.
func (m *Memory) RecentEvents(count int) []EventRecord {
	if count <= 0 {
		return nil
	}
	if count > len(m.events) {
		count = len(m.events)
	}
	out := make([]EventRecord, count)
	copy(out, m.events[len(m.events)-count:])
	return out
}

// EventCount returns the total number of recorded events.
func (m *Memory) EventCount() int {
	return len(m.events)
}

func (m *Memory) collect(idxs []int) []EventRecord {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]EventRecord, len(idxs))
	for i, idx := range idxs {
		out[i] = m.events[idx]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
