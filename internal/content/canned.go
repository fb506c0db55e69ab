package content

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/curialabs/curia/internal/senator"
)

// Canned is a deterministic template-based Generator. It needs no network
// and, given a fixed seed, always produces the same speeches. It is the
// default CLI backend and the generator used in tests.
type Canned struct {
	rng *rand.Rand
}

// NewCanned creates a Canned generator drawing from the given random
// source. A nil rng falls back to a fixed seed.
func NewCanned(rng *rand.Rand) *Canned {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Canned{rng: rng}
}

var cannedOpenings = []string{
	"Conscript fathers, hear me on the matter of %s.",
	"Senators of Rome, the question of %s can wait no longer.",
	"I rise, as my ancestors rose, to speak on %s.",
	"Let no one leave this chamber before we settle %s.",
}

var cannedArguments = map[senator.Stance][]string{
	senator.StanceSupport: {
		"The measure serves both the people and the treasury.",
		"Our allies watch us; to falter now is to invite contempt.",
		"Precedent and prudence alike demand that we act.",
	},
	senator.StanceOppose: {
		"This proposal would squander what our fathers built.",
		"The cost falls on those least able to bear it.",
		"Haste in this matter is the counsel of ambition, not wisdom.",
	},
	senator.StanceNeutral: {
		"Both sides speak with conviction, and both overstate their case.",
		"Before we divide the house, let us weigh what we actually know.",
		"I ask only that we proceed with deliberation, not fervor.",
	},
}

// GenerateSpeech assembles a templated speech. The stance hint is honored
// when valid; otherwise a stance is drawn at random.
func (c *Canned) GenerateSpeech(ctx context.Context, s *senator.Senator, topic string, stanceHint senator.Stance, prior []string) (Speech, error) {
	if err := ctx.Err(); err != nil {
		return Speech{}, fmt.Errorf("canned generation canceled: %w", err)
	}
	if s == nil {
		return Speech{}, fmt.Errorf("canned generation: nil senator")
	}

	stance := stanceHint
	if !stance.Valid() {
		stances := []senator.Stance{senator.StanceSupport, senator.StanceOppose, senator.StanceNeutral}
		stance = stances[c.rng.Intn(len(stances))]
	}

	opening := fmt.Sprintf(cannedOpenings[c.rng.Intn(len(cannedOpenings))], topic)
	args := cannedArguments[stance]
	argument := args[c.rng.Intn(len(args))]

	text := fmt.Sprintf("%s %s So says %s of the %s.", opening, argument, s.Name, s.Faction)
	keyPoints := []string{
		fmt.Sprintf("%s position: %s", s.Name, stance),
		argument,
	}

	return Speech{Text: text, Stance: stance, KeyPoints: keyPoints}, nil
}
