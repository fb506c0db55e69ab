package debate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/curialabs/curia/internal/cerr"
	"github.com/curialabs/curia/internal/content"
	"github.com/curialabs/curia/internal/display"
	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/logging"
	"github.com/curialabs/curia/internal/senator"
)

// managerPriority orders the manager's own handlers ahead of every agent,
// so arbitration happens before agents see the outcome of an interjection.
const managerPriority = 1 << 16

// managerOwner is the subscription owner key for the manager's handlers.
const managerOwner = "debate-manager"

// Manager orchestrates a debate's lifecycle: start and end, speaker
// rotation, speech publication, and interruption arbitration. It owns the
// current topic, the ordered speaker queue and the current speaker, and
// mutates them only through its own methods.
//
// Invalid lifecycle transitions are rejected with sentinel errors from the
// cerr package and a warning log; they never panic and leave state
// unchanged.
type Manager struct {
	mu     sync.Mutex
	bus    *event.Bus
	logger *logging.Logger
	dlog   *logging.Logger // debate-scoped child logger, set while in progress
	sink   display.Sink
	gen    content.Generator

	topic        string
	queue        []*senator.Senator
	participants map[string]struct{}
	current      *senator.Senator
	inProgress   bool
	ended        bool

	settlePause time.Duration
	genTimeout  time.Duration
	subIDs      []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithSink sets the display sink for surfaced notifications.
func WithSink(sink display.Sink) Option {
	return func(m *Manager) { m.sink = sink }
}

// WithGenerator sets the content generator used by ConductDebate.
func WithGenerator(gen content.Generator) Option {
	return func(m *Manager) { m.gen = gen }
}

// WithSettlePause sets how long ConductDebate waits after each speech so
// reactions and interjections can land.
func WithSettlePause(d time.Duration) Option {
	return func(m *Manager) { m.settlePause = d }
}

// WithGeneratorTimeout bounds each content-generation call.
func WithGeneratorTimeout(d time.Duration) Option {
	return func(m *Manager) { m.genTimeout = d }
}

// NewManager creates a Manager on the given bus and subscribes its
// reaction and interjection handlers.
func NewManager(bus *event.Bus, opts ...Option) *Manager {
	m := &Manager{
		bus:         bus,
		logger:      logging.NopLogger(),
		sink:        display.Nop{},
		settlePause: 500 * time.Millisecond,
		genTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent("debate_manager")

	m.subIDs = append(m.subIDs,
		bus.Subscribe(event.KindReaction, managerOwner, managerPriority, m.handle),
		bus.Subscribe(event.KindInterjection, managerOwner, managerPriority, m.handle),
	)
	return m
}

// Close removes the manager's bus subscriptions.
func (m *Manager) Close() {
	for _, id := range m.subIDs {
		m.bus.Unsubscribe(id)
	}
	m.subIDs = nil
}

// Status returns the debate status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inProgress {
		return StatusInProgress
	}
	if m.ended {
		return StatusEnded
	}
	return StatusNotStarted
}

// InProgress reports whether a debate is running.
func (m *Manager) InProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inProgress
}

// Topic returns the active topic, empty when no debate is in progress.
func (m *Manager) Topic() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topic
}

// CurrentSpeaker returns the senator holding the floor, nil if none.
func (m *Manager) CurrentSpeaker() *senator.Senator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// StartDebate begins a debate on a topic with the given participants as
// the speaker queue, and publishes a DebateStart event. Rejected with
// ErrDebateInProgress if a debate is already running, and with
// ErrEmptyRoster if there are no participants.
func (m *Manager) StartDebate(topic string, senators []*senator.Senator) error {
	m.mu.Lock()
	if m.inProgress {
		m.mu.Unlock()
		m.logger.Warn("start rejected: debate already in progress", "topic", topic)
		return cerr.NewRejected("start debate", cerr.ErrDebateInProgress)
	}
	if len(senators) == 0 {
		m.mu.Unlock()
		m.logger.Warn("start rejected: empty roster", "topic", topic)
		return cerr.NewRejected("start debate", cerr.ErrEmptyRoster)
	}

	m.topic = topic
	m.queue = make([]*senator.Senator, len(senators))
	copy(m.queue, senators)
	m.participants = make(map[string]struct{}, len(senators))
	for _, s := range senators {
		m.participants[s.Name] = struct{}{}
	}
	m.current = nil
	m.inProgress = true
	m.ended = false
	m.dlog = m.logger.WithDebate(topic)
	dlog := m.dlog
	names := m.participantNamesLocked()
	m.mu.Unlock()

	ev := event.NewDebateEvent(event.DebateStart, topic, names, "")
	m.bus.Publish(ev)
	m.sink.Lifecycle(ev)

	dlog.Info("debate started", "participants", names)
	return nil
}

// RegisterSpeaker appends a senator to the speaker queue if not already
// present. Requires a debate in progress.
func (m *Manager) RegisterSpeaker(s *senator.Senator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inProgress {
		m.logger.Warn("register rejected: no debate in progress", "senator", s.Name)
		return cerr.ErrDebateNotInProgress
	}
	if _, ok := m.participants[s.Name]; ok {
		return nil
	}
	m.queue = append(m.queue, s)
	m.participants[s.Name] = struct{}{}
	return nil
}

// NextSpeaker pops the queue head, makes it the current speaker, and
// publishes a SpeakerChange event. Returns nil when the queue is empty.
func (m *Manager) NextSpeaker() *senator.Senator {
	m.mu.Lock()
	if !m.inProgress || len(m.queue) == 0 {
		m.current = nil
		m.mu.Unlock()
		return nil
	}

	next := m.queue[0]
	m.queue = m.queue[1:]
	m.current = next
	topic := m.topic
	m.mu.Unlock()

	ev := event.NewDebateEvent(event.SpeakerChange, topic, nil, next.Name)
	m.bus.Publish(ev)
	m.sink.Lifecycle(ev)
	return next
}

// PublishSpeech constructs a SpeechEvent and publishes it. The event is
// returned so callers can correlate subsequent reactions and
// interjections with its id.
func (m *Manager) PublishSpeech(speaker *senator.Senator, topic, speechText string, stance senator.Stance, keyPoints []string) (event.SpeechEvent, error) {
	m.mu.Lock()
	if !m.inProgress {
		m.mu.Unlock()
		m.logger.Warn("speech rejected: no debate in progress", "speaker", speaker.Name)
		return event.SpeechEvent{}, cerr.ErrDebateNotInProgress
	}
	if _, ok := m.participants[speaker.Name]; !ok {
		m.mu.Unlock()
		m.logger.Warn("speech rejected: not a participant", "speaker", speaker.Name)
		return event.SpeechEvent{}, cerr.ErrNotParticipant
	}
	dlog := m.dlog
	m.mu.Unlock()

	ev := event.NewSpeechEvent(speaker, topic, speechText, stance, keyPoints)
	m.sink.Speech(ev)
	m.bus.Publish(ev)

	dlog.Info("speech published",
		"speech_id", ev.ID().String(),
		"speaker", speaker.Name,
		"stance", string(stance))
	return ev, nil
}

// EndDebate publishes a DebateEnd event and clears the topic, speaker and
// queue. Rejected with ErrDebateNotInProgress if no debate is running.
func (m *Manager) EndDebate() error {
	m.mu.Lock()
	if !m.inProgress {
		m.mu.Unlock()
		m.logger.Warn("end rejected: no debate in progress")
		return cerr.NewRejected("end debate", cerr.ErrDebateNotInProgress)
	}

	topic := m.topic
	names := make([]string, 0, len(m.participants))
	for name := range m.participants {
		names = append(names, name)
	}
	sort.Strings(names)
	dlog := m.dlog
	m.topic = ""
	m.queue = nil
	m.participants = nil
	m.current = nil
	m.inProgress = false
	m.ended = true
	m.dlog = nil
	m.mu.Unlock()

	ev := event.NewDebateEvent(event.DebateEnd, topic, names, "")
	m.bus.Publish(ev)
	m.sink.Lifecycle(ev)

	dlog.Info("debate ended")
	return nil
}

// ConductDebate runs a complete debate: start, one speech per senator in
// order with generated content, then end. Generation failures skip the
// speaker and the debate continues. A canceled context ends the debate
// early.
func (m *Manager) ConductDebate(ctx context.Context, topic string, senators []*senator.Senator) error {
	if m.gen == nil {
		return fmt.Errorf("conduct debate: no content generator configured")
	}
	if err := m.StartDebate(topic, senators); err != nil {
		return err
	}

	var prior []string
	for {
		if err := ctx.Err(); err != nil {
			if endErr := m.EndDebate(); endErr != nil && !cerr.IsRejectedTransition(endErr) {
				return cerr.Join(err, endErr)
			}
			return fmt.Errorf("debate interrupted: %w", err)
		}

		speaker := m.NextSpeaker()
		if speaker == nil {
			break
		}

		genCtx, cancel := context.WithTimeout(ctx, m.genTimeout)
		// No stance hint: the generator decides each speaker's position.
		speech, err := m.gen.GenerateSpeech(genCtx, speaker, topic, "", prior)
		cancel()
		if err != nil {
			m.logger.Error("speech generation failed, skipping speaker",
				"speaker", speaker.Name, "error", err.Error())
			continue
		}

		if _, err := m.PublishSpeech(speaker, topic, speech.Text, speech.Stance, speech.KeyPoints); err != nil {
			return err
		}
		prior = append(prior, fmt.Sprintf("%s: %s", speaker.Name, speech.Text))

		// Let reactions and interjections land before the next speaker.
		select {
		case <-time.After(m.settlePause):
		case <-ctx.Done():
		}
	}

	return m.EndDebate()
}

// handle routes bus events to the manager's observers.
func (m *Manager) handle(e event.Event) {
	switch ev := e.(type) {
	case event.ReactionEvent:
		m.HandleReaction(ev)
	case event.InterjectionEvent:
		m.HandleInterjection(ev)
	}
}

// HandleReaction records a reaction for observability. Reactions never
// affect arbitration.
func (m *Manager) HandleReaction(ev event.ReactionEvent) {
	if !m.bus.HistoryContains(ev.TargetID) {
		m.logger.Warn("reaction references unknown event",
			"reaction_id", ev.ID().String(),
			"target_id", ev.TargetID.String())
	}

	m.sink.Reaction(ev)
	m.logger.Debug("reaction observed",
		"reactor", sourceName(ev.Reactor),
		"type", ev.Type.String(),
		"target_id", ev.TargetID.String())
}

// HandleInterjection arbitrates an interruption attempt by senatorial
// rank. It returns true when the interruption is allowed and surfaced.
// With no debate in progress or no current speaker the interjection is
// discarded with a warning.
func (m *Manager) HandleInterjection(ev event.InterjectionEvent) bool {
	m.mu.Lock()
	inProgress := m.inProgress
	current := m.current
	m.mu.Unlock()

	if !inProgress {
		m.logger.Warn("interjection discarded: no debate in progress",
			"interjector", sourceName(ev.Interjector))
		return false
	}
	if current == nil {
		m.logger.Warn("interjection discarded: no current speaker",
			"interjector", sourceName(ev.Interjector))
		return false
	}
	if ev.Interjector == nil {
		m.logger.Warn("interjection discarded: no interjector",
			"interjection_id", ev.ID().String())
		return false
	}
	if !m.bus.HistoryContains(ev.SpeechID) {
		m.logger.Warn("interjection references unknown speech",
			"interjection_id", ev.ID().String(),
			"speech_id", ev.SpeechID.String())
	}

	allowed := Allowed(ev.Interjector.Rank, current.Rank, ev.Type)
	if !allowed {
		m.logger.Debug("interjection denied",
			"interjector", ev.Interjector.Name,
			"interjector_rank", ev.Interjector.Rank,
			"speaker", current.Name,
			"speaker_rank", current.Rank,
			"type", ev.Type.String())
		return false
	}

	m.sink.Interjection(ev)
	m.logger.Info("interjection allowed",
		"interjector", ev.Interjector.Name,
		"speaker", current.Name,
		"type", ev.Type.String(),
		"disrupting", ev.CausesDisruption())
	return true
}

// Allowed is the arbitration rule: an interruption is allowed when the
// interjector outranks the speaker, or when ranks are equal and the
// interjection is procedural.
func Allowed(interjectorRank, speakerRank int, typ event.InterjectionType) bool {
	if interjectorRank > speakerRank {
		return true
	}
	return interjectorRank == speakerRank && typ == event.InterjectionProcedural
}

func (m *Manager) participantNamesLocked() []string {
	names := make([]string, len(m.queue))
	for i, s := range m.queue {
		names[i] = s.Name
	}
	return names
}

func sourceName(s *senator.Senator) string {
	if s == nil {
		return "unknown"
	}
	return s.Name
}
