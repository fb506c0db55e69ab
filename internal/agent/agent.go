package agent

import (
	"math/rand"
	"time"

	"github.com/curialabs/curia/internal/config"
	"github.com/curialabs/curia/internal/display"
	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/logging"
	"github.com/curialabs/curia/internal/memory"
	"github.com/curialabs/curia/internal/senator"
)

// State represents the agent's position in its lifecycle.
type State string

const (
	// StateIdle indicates no active debate.
	StateIdle State = "idle"

	// StateObserving indicates the agent is following a debate and may
	// react, interject, or change stance.
	StateObserving State = "observing"

	// StateSpeaking indicates the agent currently holds the floor.
	StateSpeaking State = "speaking"
)

// Agent is the reactive decision component for one senator. It subscribes
// to speech and lifecycle events, records what it observes in its private
// memory, and publishes reactions and interjections according to the
// weighted-probability decision model.
//
// All randomness flows through the injected random source, so a fixed seed
// reproduces every decision. Decision failures are downgraded to "no
// action this turn"; they never halt the debate.
type Agent struct {
	sen    *senator.Senator
	bus    *event.Bus
	mem    *memory.Memory
	rng    *rand.Rand
	logger *logging.Logger
	sink   display.Sink
	params config.DecisionConfig

	state            State
	stance           senator.Stance
	activeTopic      string
	currentSpeaker   string
	debateInProgress bool
	subIDs           []string
}

// Option configures an Agent.
type Option func(*Agent)

// WithRand injects the random source used for all probability draws.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) { a.rng = rng }
}

// WithLogger sets the structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// WithSink sets the display sink for stance-change notifications.
func WithSink(sink display.Sink) Option {
	return func(a *Agent) { a.sink = sink }
}

// WithParams overrides the decision-model constants.
func WithParams(params config.DecisionConfig) Option {
	return func(a *Agent) { a.params = params }
}

// WithStance assigns the senator's initial stance.
func WithStance(stance senator.Stance) Option {
	return func(a *Agent) { a.stance = stance }
}

// New creates an Agent for a senator. Without options it uses a
// time-seeded random source, a no-op logger, a no-op sink, the default
// decision constants, and a neutral stance.
func New(s *senator.Senator, bus *event.Bus, opts ...Option) *Agent {
	a := &Agent{
		sen:    s,
		bus:    bus,
		mem:    memory.New(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logging.NopLogger(),
		sink:   display.Nop{},
		params: config.Default().Decision,
		state:  StateIdle,
		stance: senator.StanceNeutral,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("senator_agent").WithSenator(s.Name)
	return a
}

// Subscribe registers the agent's handlers on the bus. Dispatch priority
// is the senator's rank.
func (a *Agent) Subscribe() {
	a.subIDs = append(a.subIDs,
		a.bus.Subscribe(event.KindSpeech, a.sen.Name, a.sen.Rank, a.handle),
		a.bus.Subscribe(event.KindDebate, a.sen.Name, a.sen.Rank, a.handle),
	)
}

// Unsubscribe removes the agent's subscriptions from the bus.
func (a *Agent) Unsubscribe() {
	for _, id := range a.subIDs {
		a.bus.Unsubscribe(id)
	}
	a.subIDs = nil
}

// Senator returns the senator this agent acts for.
func (a *Agent) Senator() *senator.Senator { return a.sen }

// Memory returns the agent's private memory.
func (a *Agent) Memory() *memory.Memory { return a.mem }

// State returns the agent's lifecycle state.
func (a *Agent) State() State { return a.state }

// Stance returns the agent's current stance on the active topic.
func (a *Agent) Stance() senator.Stance { return a.stance }

// ActiveTopic returns the topic the agent is currently tracking.
func (a *Agent) ActiveTopic() string { return a.activeTopic }

func (a *Agent) handle(e event.Event) {
	switch ev := e.(type) {
	case event.SpeechEvent:
		a.handleSpeech(ev)
	case event.DebateEvent:
		a.handleDebate(ev)
	}
}

func (a *Agent) handleDebate(ev event.DebateEvent) {
	a.mem.RecordEvent(ev)

	switch ev.Subtype {
	case event.DebateStart:
		a.state = StateObserving
		a.activeTopic = ev.Topic
		a.currentSpeaker = ""
		a.debateInProgress = true
	case event.SpeakerChange:
		a.currentSpeaker = ev.Speaker
		if ev.Speaker == a.sen.Name {
			a.state = StateSpeaking
		} else if a.state == StateSpeaking {
			a.state = StateObserving
		}
	case event.TopicChange:
		a.activeTopic = ev.Topic
	case event.DebateEnd:
		a.state = StateIdle
		a.activeTopic = ""
		a.currentSpeaker = ""
		a.debateInProgress = false
	}
}

func (a *Agent) handleSpeech(ev event.SpeechEvent) {
	if ev.Speaker == nil {
		return
	}
	if ev.Speaker.Name == a.sen.Name {
		// Own speech delivered; the floor moves on.
		if a.state == StateSpeaking {
			a.state = StateObserving
		}
		return
	}
	if a.state != StateObserving {
		return
	}

	a.mem.RecordEvent(ev)
	a.updateRelationship(ev)

	rel := a.mem.RelationshipScore(ev.Speaker.Name)
	sameFaction := a.sen.SameFaction(ev.Speaker)
	agrees := a.stance == ev.Stance

	a.maybeReact(ev, rel, sameFaction, agrees)
	a.maybeInterject(ev, rel, agrees)
	a.maybeChangeStance(ev, rel, sameFaction)
}

// updateRelationship nudges the cached relationship with the speaker
// according to stance alignment: hearing agreement warms the relationship,
// hearing opposition cools it. Neutral positions move nothing.
func (a *Agent) updateRelationship(ev event.SpeechEvent) {
	if a.stance == senator.StanceNeutral || ev.Stance == senator.StanceNeutral {
		return
	}
	if a.stance == ev.Stance {
		a.mem.RecordRelationshipImpact(ev.Speaker.Name, ev.ID(), 0.05, "spoke in agreement")
	} else {
		a.mem.RecordRelationshipImpact(ev.Speaker.Name, ev.ID(), -0.05, "spoke in opposition")
	}
}

func (a *Agent) maybeReact(ev event.SpeechEvent, rel float64, sameFaction, agrees bool) {
	topicInterest := a.rng.Float64() * a.params.TopicInterestMax
	p := reactProbability(a.params, rel, sameFaction, topicInterest)

	if a.rng.Float64() >= p {
		return
	}

	typ := a.chooseReactionType(rel, agrees)
	line := reactionLine(a.rng, typ, ev.Speaker.Name)

	reaction := event.NewReactionEvent(a.sen, ev.ID(), ev.Kind(), typ, line)
	a.bus.Publish(reaction)
	a.mem.RecordReaction(ev.ID(), typ, line)

	a.logger.Debug("reacted to speech",
		"speech_id", ev.ID().String(),
		"speaker", ev.Speaker.Name,
		"reaction", typ.String(),
		"probability", p)
}

func (a *Agent) maybeInterject(ev event.SpeechEvent, rel float64, agrees bool) {
	stanceDiffers := !agrees
	p := interjectProbability(a.params, rel, a.sen.Rank, stanceDiffers)

	if a.rng.Float64() >= p {
		return
	}

	// A speech from anyone but the tracked current speaker is an order
	// violation and draws a procedural objection.
	orderViolation := a.currentSpeaker != "" && ev.Speaker.Name != a.currentSpeaker
	typ := a.chooseInterjectionType(rel, stanceDiffers, orderViolation)
	latin, english := interjectionLines(a.rng, typ)

	interjection := event.NewInterjectionEvent(a.sen, ev.Speaker, typ, latin, english, ev.ID())
	a.bus.Publish(interjection)

	a.logger.Debug("interjected",
		"speech_id", ev.ID().String(),
		"speaker", ev.Speaker.Name,
		"type", typ.String(),
		"probability", p)
}

func (a *Agent) maybeChangeStance(ev event.SpeechEvent, rel float64, sameFaction bool) {
	if ev.Topic != a.activeTopic || a.activeTopic == "" {
		return
	}
	if !a.stance.Valid() {
		return
	}

	p := changeProbability(a.params, rel, sameFaction, ev.Speaker.Rank)
	if a.rng.Float64() >= p {
		return
	}

	oldStance := a.stance
	var newStance senator.Stance
	switch {
	case a.stance == senator.StanceNeutral:
		newStance = ev.Stance
	case a.stance != ev.Stance:
		newStance = senator.StanceNeutral
	default:
		// Already agrees with the speaker; nothing to reconsider.
		return
	}
	if newStance == oldStance {
		return
	}

	reason := "persuaded by " + ev.Speaker.Name
	a.stance = newStance
	a.mem.RecordStanceChange(ev.Topic, oldStance, newStance, reason, ev.ID())
	a.sink.StanceChange(a.sen.Name, ev.Topic, oldStance, newStance, reason)

	a.logger.Info("stance changed",
		"topic", ev.Topic,
		"old_stance", string(oldStance),
		"new_stance", string(newStance),
		"speech_id", ev.ID().String(),
		"probability", p)
}
