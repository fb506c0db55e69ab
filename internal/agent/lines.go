package agent

import (
	"fmt"
	"math/rand"

	"github.com/curialabs/curia/internal/event"
)

// Reaction and interjection lines are synthesized locally; only full
// speeches go through the external content generator.

var reactionLines = map[event.ReactionType][]string{
	event.ReactionAgreement: {
		"nods vigorously at %s",
		"murmurs approval of %s's words",
	},
	event.ReactionDisagreement: {
		"shakes his head at %s",
		"mutters darkly as %s speaks",
	},
	event.ReactionInterest: {
		"leans forward to hear %s better",
		"listens intently to %s",
	},
	event.ReactionBoredom: {
		"stifles a yawn during %s's speech",
		"studies the ceiling while %s drones on",
	},
	event.ReactionSkepticism: {
		"raises an eyebrow at %s's claim",
		"exchanges doubtful glances as %s speaks",
	},
	event.ReactionNeutral: {
		"watches %s impassively",
		"gives %s no visible response",
	},
}

func reactionLine(rng *rand.Rand, typ event.ReactionType, speaker string) string {
	lines := reactionLines[typ]
	if len(lines) == 0 {
		return fmt.Sprintf("regards %s in silence", speaker)
	}
	return fmt.Sprintf(lines[rng.Intn(len(lines))], speaker)
}

// interjectionPhrases pairs a Latin exclamation with its English rendering.
var interjectionPhrases = map[event.InterjectionType][][2]string{
	event.InterjectionSupport: {
		{"Bene dictum!", "Well said!"},
		{"Recte loqueris!", "You speak rightly!"},
	},
	event.InterjectionChallenge: {
		{"Absurdum est!", "This is absurd!"},
		{"Quis hoc credat?", "Who would believe this?"},
	},
	event.InterjectionProcedural: {
		{"Ad ordinem!", "To order!"},
		{"Contra morem maiorum!", "Against the custom of our ancestors!"},
	},
	event.InterjectionEmotional: {
		{"Pro di immortales!", "By the immortal gods!"},
		{"O tempora, o mores!", "Oh the times, oh the customs!"},
	},
	event.InterjectionInformational: {
		{"Rem acu tetigisti, sed audi...", "You have touched the point, but hear this..."},
		{"Notandum est...", "It must be noted..."},
	},
}

func interjectionLines(rng *rand.Rand, typ event.InterjectionType) (latin, english string) {
	phrases := interjectionPhrases[typ]
	if len(phrases) == 0 {
		return "Audite!", "Hear me!"
	}
	pick := phrases[rng.Intn(len(phrases))]
	return pick[0], pick[1]
}
