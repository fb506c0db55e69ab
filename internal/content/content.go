// Package content defines the external content-generator collaborator.
// The engine treats speech generation as an opaque call: a Generator takes
// a senator, a topic and a stance hint and returns speech text, a stance
// and key points. Latency is unspecified, so callers bound each call with
// a context deadline. Failures surface as errors, never as silent empty
// speeches.
package content

import (
	"context"

	"github.com/curialabs/curia/internal/senator"
)

// Speech is the result of one generation call.
type Speech struct {
	Text      string
	Stance    senator.Stance
	KeyPoints []string
}

// Generator produces speech content for a senator on a topic. The prior
// slice carries earlier speeches of the same debate for conversational
// context, oldest first.
type Generator interface {
	GenerateSpeech(ctx context.Context, s *senator.Senator, topic string, stanceHint senator.Stance, prior []string) (Speech, error)
}
