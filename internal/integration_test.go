// Package internal contains integration tests that verify the packages work
// together: the event bus routing speeches to agents, agents publishing
// reactions and interjections back, and the manager arbitrating the result.
package internal

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/curialabs/curia/internal/agent"
	"github.com/curialabs/curia/internal/config"
	"github.com/curialabs/curia/internal/content"
	"github.com/curialabs/curia/internal/debate"
	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/logging"
	"github.com/curialabs/curia/internal/senator"
)

// forcedParams makes every reaction and interjection draw succeed and every
// stance-change draw fail, so event counts are exact.
func forcedParams() config.DecisionConfig {
	p := config.Default().Decision
	p.ReactBase, p.ReactCap = 1.0, 1.0
	p.InterjectBase, p.InterjectCap = 1.0, 1.0
	p.ChangeBase, p.ChangeCap = 0, 0
	return p
}

// TestFullDebateIntegration runs a complete debate through the real bus,
// agents and manager and checks the event record end to end.
func TestFullDebateIntegration(t *testing.T) {
	bus := event.NewBus(event.DefaultMaxHistory, logging.NopLogger())

	roster := []*senator.Senator{
		senator.New("Cato", "Optimates", 4),
		senator.New("Cicero", "Optimates", 3),
		senator.New("Gracchus", "Populares", 2),
	}

	agents := make([]*agent.Agent, 0, len(roster))
	for i, s := range roster {
		a := agent.New(s, bus,
			agent.WithRand(rand.New(rand.NewSource(int64(i)+1))),
			agent.WithParams(forcedParams()),
		)
		a.Subscribe()
		defer a.Unsubscribe()
		agents = append(agents, a)
	}

	mgr := debate.NewManager(bus,
		debate.WithGenerator(content.NewCanned(rand.New(rand.NewSource(1)))),
		debate.WithSettlePause(time.Millisecond),
	)
	defer mgr.Close()

	if err := mgr.ConductDebate(context.Background(), "Land Reform", roster); err != nil {
		t.Fatalf("ConductDebate: %v", err)
	}
	if mgr.InProgress() {
		t.Error("debate still in progress after ConductDebate")
	}

	var speeches, reactions, interjections int
	var started, ended bool
	history := bus.RecentEvents(bus.HistoryLen())
	for _, e := range history {
		switch ev := e.(type) {
		case event.DebateEvent:
			switch ev.Subtype {
			case event.DebateStart:
				started = true
			case event.DebateEnd:
				ended = true
			}
		case event.SpeechEvent:
			speeches++
		case event.ReactionEvent:
			reactions++
		case event.InterjectionEvent:
			interjections++
		}
	}

	if !started || !ended {
		t.Errorf("lifecycle incomplete: started=%v ended=%v", started, ended)
	}
	if speeches != len(roster) {
		t.Errorf("got %d speeches, want %d", speeches, len(roster))
	}
	// Every non-speaker reacts and interjects on every speech.
	wantPerSpeech := len(roster) - 1
	if want := len(roster) * wantPerSpeech; reactions != want {
		t.Errorf("got %d reactions, want %d", reactions, want)
	}
	if want := len(roster) * wantPerSpeech; interjections != want {
		t.Errorf("got %d interjections, want %d", interjections, want)
	}

	// Each agent heard every speech but its own.
	for _, a := range agents {
		if got := len(a.Memory().EventsByKind(event.KindSpeech)); got != wantPerSpeech {
			t.Errorf("%s recorded %d speeches, want %d", a.Senator().Name, got, wantPerSpeech)
		}
		if a.ActiveTopic() != "" {
			t.Errorf("%s still tracking topic %q after debate end", a.Senator().Name, a.ActiveTopic())
		}
	}
}

// TestAgentsReturnIdleAfterDebate checks lifecycle propagation through the
// bus without the manager's generator loop.
func TestAgentsReturnIdleAfterDebate(t *testing.T) {
	bus := event.NewBus(event.DefaultMaxHistory, logging.NopLogger())
	cato := senator.New("Cato", "Optimates", 4)
	a := agent.New(cato, bus, agent.WithRand(rand.New(rand.NewSource(1))))
	a.Subscribe()
	defer a.Unsubscribe()

	mgr := debate.NewManager(bus)
	defer mgr.Close()

	if err := mgr.StartDebate("Grain Dole", []*senator.Senator{cato}); err != nil {
		t.Fatalf("StartDebate: %v", err)
	}
	if got := a.State(); got != agent.StateObserving {
		t.Errorf("State() = %q during debate, want %q", got, agent.StateObserving)
	}
	if mgr.NextSpeaker() == nil {
		t.Fatal("NextSpeaker returned nil with a queued senator")
	}
	if got := a.State(); got != agent.StateSpeaking {
		t.Errorf("State() = %q while holding the floor, want %q", got, agent.StateSpeaking)
	}

	if err := mgr.EndDebate(); err != nil {
		t.Fatalf("EndDebate: %v", err)
	}
	if got := a.State(); got != agent.StateIdle {
		t.Errorf("State() = %q after debate end, want %q", got, agent.StateIdle)
	}
}
