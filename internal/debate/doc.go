// Package debate implements the orchestration state machine for a senate
// debate.
//
// The Manager owns the debate lifecycle. It publishes lifecycle and speech
// events to the bus, rotates speakers through an ordered queue, and
// arbitrates interruption attempts by senatorial rank.
//
// # Lifecycle
//
// A debate progresses NotStarted -> InProgress -> Ended; Ended is
// equivalent to NotStarted for reuse. Starting while in progress and
// ending while not in progress are rejected: the call returns a sentinel
// error, logs a warning, and changes nothing.
//
// # Arbitration
//
// An interjection is allowed when the interjector outranks the current
// speaker, or when ranks are equal and the interjection is procedural.
// Allowed interjections are surfaced through the display sink; denied
// ones are only logged.
//
// # Usage
//
//	bus := event.NewBus(100, logger)
//	mgr := debate.NewManager(bus,
//	    debate.WithLogger(logger),
//	    debate.WithGenerator(content.NewCanned(rng)),
//	)
//	err := mgr.ConductDebate(ctx, "Land Reform", senators)
package debate
