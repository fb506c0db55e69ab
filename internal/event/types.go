package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/curialabs/curia/internal/senator"
)

// Kind identifies the type of an event. It is a closed enum so dispatch
// code and agent handlers can switch over it exhaustively.
type Kind int

const (
	KindDebate Kind = iota
	KindSpeech
	KindReaction
	KindInterjection
)

// String returns a human-readable name for an event kind.
func (k Kind) String() string {
	switch k {
	case KindDebate:
		return "debate"
	case KindSpeech:
		return "speech"
	case KindReaction:
		return "reaction"
	case KindInterjection:
		return "interjection"
	default:
		return "unknown"
	}
}

// Kinds returns all event kinds, in dispatch-routing order.
func Kinds() []Kind {
	return []Kind{KindDebate, KindSpeech, KindReaction, KindInterjection}
}

// Event is the interface that all events implement. Events are immutable
// once constructed: handlers receive them by value and must not mutate
// shared payloads.
type Event interface {
	// ID returns the unique identifier assigned at construction.
	ID() uuid.UUID

	// Kind returns the event kind used for routing.
	Kind() Kind

	// Timestamp returns when the event was created.
	Timestamp() time.Time

	// Source returns the senator that produced the event, or nil for
	// lifecycle events produced by the debate manager.
	Source() *senator.Senator

	// Priority returns the dispatch priority. Defaults to the source
	// senator's rank when a source is present.
	Priority() int

	// Metadata returns the opaque metadata attached at construction.
	// The returned map must be treated as read-only.
	Metadata() map[string]any
}

// Envelope provides the common fields for all events. Embed it in concrete
// event types to satisfy the Event interface.
type Envelope struct {
	id        uuid.UUID
	kind      Kind
	timestamp time.Time
	source    *senator.Senator
	priority  int
	metadata  map[string]any
}

func (e Envelope) ID() uuid.UUID            { return e.id }
func (e Envelope) Kind() Kind               { return e.kind }
func (e Envelope) Timestamp() time.Time     { return e.timestamp }
func (e Envelope) Source() *senator.Senator { return e.source }
func (e Envelope) Priority() int            { return e.priority }
func (e Envelope) Metadata() map[string]any { return e.metadata }

// newEnvelope creates an Envelope with a fresh UUID and the current time.
// Priority defaults to the source senator's rank when source is non-nil.
func newEnvelope(kind Kind, source *senator.Senator, metadata map[string]any) Envelope {
	priority := 0
	if source != nil {
		priority = source.Rank
	}
	var md map[string]any
	if len(metadata) > 0 {
		md = make(map[string]any, len(metadata))
		for k, v := range metadata {
			md[k] = v
		}
	}
	return Envelope{
		id:        uuid.New(),
		kind:      kind,
		timestamp: time.Now(),
		source:    source,
		priority:  priority,
		metadata:  md,
	}
}

// -----------------------------------------------------------------------------
// Debate Lifecycle Events
// -----------------------------------------------------------------------------

// DebateSubtype distinguishes the lifecycle transitions a DebateEvent can carry.
type DebateSubtype int

const (
	DebateStart DebateSubtype = iota
	DebateEnd
	SpeakerChange
	TopicChange
)

// String returns a human-readable name for a debate subtype.
func (s DebateSubtype) String() string {
	switch s {
	case DebateStart:
		return "debate_start"
	case DebateEnd:
		return "debate_end"
	case SpeakerChange:
		return "speaker_change"
	case TopicChange:
		return "topic_change"
	default:
		return "unknown"
	}
}

// DebateEvent is emitted by the debate manager on lifecycle transitions.
type DebateEvent struct {
	Envelope
	Subtype      DebateSubtype
	Topic        string
	Participants []string // Participant names at the time of the transition
	Speaker      string   // Current speaker name (SpeakerChange only)
}

// NewDebateEvent creates a DebateEvent. The participant slice is copied.
func NewDebateEvent(subtype DebateSubtype, topic string, participants []string, speaker string) DebateEvent {
	return DebateEvent{
		Envelope:     newEnvelope(KindDebate, nil, nil),
		Subtype:      subtype,
		Topic:        topic,
		Participants: copyStrings(participants),
		Speaker:      speaker,
	}
}

// -----------------------------------------------------------------------------
// Speech Events
// -----------------------------------------------------------------------------

// SpeechEvent carries one senator's speech. Content is opaque to the
// engine: it is produced by the external content generator.
type SpeechEvent struct {
	Envelope
	Speaker   *senator.Senator
	Topic     string
	Content   string
	Stance    senator.Stance
	KeyPoints []string
}

// NewSpeechEvent creates a SpeechEvent with priority derived from the
// speaker's rank. The key point slice is copied.
func NewSpeechEvent(speaker *senator.Senator, topic, content string, stance senator.Stance, keyPoints []string) SpeechEvent {
	return SpeechEvent{
		Envelope:  newEnvelope(KindSpeech, speaker, nil),
		Speaker:   speaker,
		Topic:     topic,
		Content:   content,
		Stance:    stance,
		KeyPoints: copyStrings(keyPoints),
	}
}

// -----------------------------------------------------------------------------
// Reaction Events
// -----------------------------------------------------------------------------

// ReactionType classifies how a senator reacted to a speech.
type ReactionType int

const (
	ReactionAgreement ReactionType = iota
	ReactionDisagreement
	ReactionInterest
	ReactionBoredom
	ReactionSkepticism
	ReactionNeutral
)

// String returns a human-readable name for a reaction type.
func (r ReactionType) String() string {
	switch r {
	case ReactionAgreement:
		return "agreement"
	case ReactionDisagreement:
		return "disagreement"
	case ReactionInterest:
		return "interest"
	case ReactionBoredom:
		return "boredom"
	case ReactionSkepticism:
		return "skepticism"
	case ReactionNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// ReactionTypes returns all reaction types.
func ReactionTypes() []ReactionType {
	return []ReactionType{
		ReactionAgreement,
		ReactionDisagreement,
		ReactionInterest,
		ReactionBoredom,
		ReactionSkepticism,
		ReactionNeutral,
	}
}

// ReactionEvent is emitted when a senator visibly reacts to a prior event,
// normally a speech.
type ReactionEvent struct {
	Envelope
	Reactor    *senator.Senator
	TargetID   uuid.UUID // ID of the event being reacted to
	TargetKind Kind
	Type       ReactionType
	Content    string
}

// NewReactionEvent creates a ReactionEvent with priority derived from the
// reactor's rank.
func NewReactionEvent(reactor *senator.Senator, targetID uuid.UUID, targetKind Kind, typ ReactionType, content string) ReactionEvent {
	return ReactionEvent{
		Envelope:   newEnvelope(KindReaction, reactor, nil),
		Reactor:    reactor,
		TargetID:   targetID,
		TargetKind: targetKind,
		Type:       typ,
		Content:    content,
	}
}

// -----------------------------------------------------------------------------
// Interjection Events
// -----------------------------------------------------------------------------

// InterjectionType classifies an interruption attempt. Procedural and
// Emotional interjections disrupt the current speech when allowed.
type InterjectionType int

const (
	InterjectionSupport InterjectionType = iota
	InterjectionChallenge
	InterjectionProcedural
	InterjectionEmotional
	InterjectionInformational
)

// String returns a human-readable name for an interjection type.
func (t InterjectionType) String() string {
	switch t {
	case InterjectionSupport:
		return "support"
	case InterjectionChallenge:
		return "challenge"
	case InterjectionProcedural:
		return "procedural"
	case InterjectionEmotional:
		return "emotional"
	case InterjectionInformational:
		return "informational"
	default:
		return "unknown"
	}
}

// Disrupts reports whether an allowed interjection of this type interrupts
// the current speech.
func (t InterjectionType) Disrupts() bool {
	return t == InterjectionProcedural || t == InterjectionEmotional
}

// InterjectionEvent is emitted when a senator attempts to interrupt the
// current speaker. Content is bilingual: a Latin line and its English
// rendering.
type InterjectionEvent struct {
	Envelope
	Interjector   *senator.Senator
	TargetSpeaker *senator.Senator
	Type          InterjectionType
	Latin         string
	English       string
	SpeechID      uuid.UUID // ID of the speech being interrupted
}

// NewInterjectionEvent creates an InterjectionEvent with priority derived
// from the interjector's rank.
func NewInterjectionEvent(interjector, targetSpeaker *senator.Senator, typ InterjectionType, latin, english string, speechID uuid.UUID) InterjectionEvent {
	return InterjectionEvent{
		Envelope:      newEnvelope(KindInterjection, interjector, nil),
		Interjector:   interjector,
		TargetSpeaker: targetSpeaker,
		Type:          typ,
		Latin:         latin,
		English:       english,
		SpeechID:      speechID,
	}
}

// CausesDisruption reports whether this interjection interrupts the speech
// when allowed by arbitration.
func (e InterjectionEvent) CausesDisruption() bool {
	return e.Type.Disrupts()
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
