// Package senator defines the senator entity shared by the debate engine.
package senator

import "github.com/google/uuid"

// Stance represents a senator's position on a debate topic.
type Stance string

const (
	// StanceSupport indicates the senator supports the motion.
	StanceSupport Stance = "support"

	// StanceOppose indicates the senator opposes the motion.
	StanceOppose Stance = "oppose"

	// StanceNeutral indicates the senator has not committed either way.
	StanceNeutral Stance = "neutral"
)

// Valid reports whether s is one of the three recognized stances.
func (s Stance) Valid() bool {
	switch s {
	case StanceSupport, StanceOppose, StanceNeutral:
		return true
	}
	return false
}

// Senator is a participant in a debate. Rank drives both event dispatch
// priority and interruption arbitration; higher outranks lower.
type Senator struct {
	ID      string
	Name    string
	Faction string
	Rank    int
}

// New creates a Senator with a generated ID. Negative ranks are clamped
// to zero.
func New(name, faction string, rank int) *Senator {
	if rank < 0 {
		rank = 0
	}
	return &Senator{
		ID:      uuid.NewString(),
		Name:    name,
		Faction: faction,
		Rank:    rank,
	}
}

// SameFaction reports whether both senators belong to the same faction.
func (s *Senator) SameFaction(other *Senator) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Faction == other.Faction
}
