// Package display renders debate notifications to a console. It is the
// engine's display sink: the debate manager and agents call it with
// well-formed data and make no assumptions about how it is rendered.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/senator"
)

// Sink receives structured debate notifications. Implementations must not
// retain or mutate event payloads.
type Sink interface {
	Lifecycle(ev event.DebateEvent)
	Speech(ev event.SpeechEvent)
	Reaction(ev event.ReactionEvent)
	// Interjection is called only for interjections that arbitration allowed.
	Interjection(ev event.InterjectionEvent)
	StanceChange(name, topic string, oldStance, newStance senator.Stance, reason string)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	speakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA"))

	speechStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB"))

	reactionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)

	interjectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F59E0B"))

	disruptionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F87171"))

	stanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	latinStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#FBBF24"))
)

// Console writes styled notifications to a writer.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console sink. A nil writer defaults to stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Lifecycle renders debate lifecycle transitions.
func (c *Console) Lifecycle(ev event.DebateEvent) {
	switch ev.Subtype {
	case event.DebateStart:
		fmt.Fprintln(c.w, headerStyle.Render(fmt.Sprintf("── Debate begins: %s ──", ev.Topic)))
		fmt.Fprintln(c.w, reactionStyle.Render("participants: "+strings.Join(ev.Participants, ", ")))
	case event.DebateEnd:
		fmt.Fprintln(c.w, headerStyle.Render(fmt.Sprintf("── Debate ends: %s ──", ev.Topic)))
	case event.SpeakerChange:
		fmt.Fprintln(c.w, speakerStyle.Render(fmt.Sprintf("%s takes the floor", ev.Speaker)))
	case event.TopicChange:
		fmt.Fprintln(c.w, headerStyle.Render(fmt.Sprintf("── Topic changes to: %s ──", ev.Topic)))
	}
}

// Speech renders a speech with speaker, faction, stance and key points.
func (c *Console) Speech(ev event.SpeechEvent) {
	name := "unknown"
	faction := ""
	if ev.Speaker != nil {
		name = ev.Speaker.Name
		faction = ev.Speaker.Faction
	}
	fmt.Fprintln(c.w, speakerStyle.Render(fmt.Sprintf("%s (%s, %s):", name, faction, ev.Stance)))
	fmt.Fprintln(c.w, speechStyle.Render("  "+ev.Content))
	for _, point := range ev.KeyPoints {
		fmt.Fprintln(c.w, reactionStyle.Render("  • "+point))
	}
}

// Reaction renders a reaction line.
func (c *Console) Reaction(ev event.ReactionEvent) {
	name := "unknown"
	if ev.Reactor != nil {
		name = ev.Reactor.Name
	}
	fmt.Fprintln(c.w, reactionStyle.Render(fmt.Sprintf("  [%s: %s] %s", name, ev.Type, ev.Content)))
}

// Interjection renders an allowed interjection, marking disruptive ones.
func (c *Console) Interjection(ev event.InterjectionEvent) {
	name := "unknown"
	if ev.Interjector != nil {
		name = ev.Interjector.Name
	}

	style := interjectionStyle
	label := ev.Type.String()
	if ev.CausesDisruption() {
		style = disruptionStyle
		label += ", disrupting"
	}
	fmt.Fprintln(c.w, style.Render(fmt.Sprintf("  ⚡ %s interjects (%s):", name, label)))
	fmt.Fprintln(c.w, latinStyle.Render("    "+ev.Latin))
	fmt.Fprintln(c.w, speechStyle.Render("    "+ev.English))
}

// StanceChange renders a stance transition.
func (c *Console) StanceChange(name, topic string, oldStance, newStance senator.Stance, reason string) {
	fmt.Fprintln(c.w, stanceStyle.Render(
		fmt.Sprintf("  ↻ %s shifts on %s: %s → %s (%s)", name, topic, oldStance, newStance, reason)))
}

// Nop is a Sink that discards everything. Used when the engine runs
// headless and in tests.
type Nop struct{}

func (Nop) Lifecycle(event.DebateEvent)                                         {}
func (Nop) Speech(event.SpeechEvent)                                            {}
func (Nop) Reaction(event.ReactionEvent)                                        {}
func (Nop) Interjection(event.InterjectionEvent)                                {}
func (Nop) StanceChange(string, string, senator.Stance, senator.Stance, string) {}
