// Package agent implements the per-senator reactive decision logic.
//
// One Agent is created per senator. It subscribes to speech and lifecycle
// events, maintains a private [memory.Memory] of what it observed, and
// decides probabilistically whether to react to a speech, interrupt the
// speaker, or reconsider its own stance.
//
// # Lifecycle
//
// An agent is Idle until a debate starts, Observing while the debate runs,
// and briefly Speaking while it holds the floor. DebateEnd returns it to
// Idle and clears all debate tracking.
//
// # Decision Model
//
// Each decision sums a base rate with weighted factors (relationship with
// the speaker, faction alignment, rank, stance disagreement, a bounded
// random topic interest) and clamps the result at a configured cap. The
// constants live in [config.DecisionConfig]; the caps and the factor
// composition are structural.
//
// Every random draw comes from the injected *rand.Rand, so a fixed seed
// reproduces a debate decision-for-decision.
package agent
