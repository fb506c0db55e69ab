package agent

import (
	"math"

	"github.com/curialabs/curia/internal/config"
	"github.com/curialabs/curia/internal/event"
)

// The decision model composes weighted factors and clamps the sum at a
// configured cap. The caps and factor structure are fixed; the constants
// live in config.DecisionConfig.

// reactProbability computes the chance of reacting to a speech.
// Faction alignment (same faction with a non-negative relationship, or a
// rival faction with a negative one) adds the faction bonus.
func reactProbability(p config.DecisionConfig, rel float64, sameFaction bool, topicInterest float64) float64 {
	prob := p.ReactBase + math.Abs(rel)*p.RelationshipWeight + topicInterest
	if (sameFaction && rel >= 0) || (!sameFaction && rel < 0) {
		prob += p.FactionBonus
	}
	return clampProbability(prob, p.ReactCap)
}

// interjectProbability computes the chance of interrupting the speaker.
// Rank emboldens up to a capped factor; a stance disagreement adds the
// stance bonus.
func interjectProbability(p config.DecisionConfig, rel float64, ownRank int, stanceDiffers bool) float64 {
	rankFactor := math.Min(p.RankFactorCap, float64(ownRank)*p.RankWeight)
	prob := p.InterjectBase + math.Abs(rel)*p.InterjectRelationshipWeight + rankFactor
	if stanceDiffers {
		prob += p.StanceBonus
	}
	return clampProbability(prob, p.InterjectCap)
}

// changeProbability computes the chance of reconsidering the agent's
// stance after a speech. Only positive relationships persuade; speaker
// rank contributes up to a capped factor.
func changeProbability(p config.DecisionConfig, rel float64, sameFaction bool, speakerRank int) float64 {
	rankFactor := math.Min(p.ChangeRankCap, float64(speakerRank)*p.ChangeRankWeight)
	prob := p.ChangeBase + math.Max(0, rel)*p.ChangeRelationshipWeight + rankFactor
	if sameFaction {
		prob += p.ChangeFactionBonus
	}
	return clampProbability(prob, p.ChangeCap)
}

func clampProbability(prob, limit float64) float64 {
	if prob < 0 {
		return 0
	}
	return math.Min(limit, prob)
}

// chooseReactionType selects a reaction type. Strong relationships narrow
// the draw: a strongly liked speaker the agent agrees with draws warm
// reactions, a strongly disliked one it disagrees with draws hostile ones.
// Everything else is a uniform draw over all six types.
func (a *Agent) chooseReactionType(rel float64, agrees bool) event.ReactionType {
	strong := a.params.StrongRelationship
	switch {
	case rel > strong && agrees:
		warm := []event.ReactionType{event.ReactionAgreement, event.ReactionInterest}
		return warm[a.rng.Intn(len(warm))]
	case rel < -strong && !agrees:
		hostile := []event.ReactionType{event.ReactionDisagreement, event.ReactionSkepticism}
		return hostile[a.rng.Intn(len(hostile))]
	default:
		all := event.ReactionTypes()
		return all[a.rng.Intn(len(all))]
	}
}

// chooseInterjectionType selects an interjection type. An inferred order
// violation always draws a procedural objection; otherwise disagreement
// and negative relationships pull toward challenge or emotional outbursts,
// and the rest toward support or information.
func (a *Agent) chooseInterjectionType(rel float64, stanceDiffers, orderViolation bool) event.InterjectionType {
	if orderViolation {
		return event.InterjectionProcedural
	}
	if stanceDiffers || rel < 0 {
		if a.rng.Float64() < 0.7 {
			return event.InterjectionChallenge
		}
		return event.InterjectionEmotional
	}
	if a.rng.Float64() < 0.7 {
		return event.InterjectionSupport
	}
	return event.InterjectionInformational
}
