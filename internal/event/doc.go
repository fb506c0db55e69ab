// Package event provides the typed event model and the pub-sub event bus
// for the debate engine.
//
// Components communicate through events rather than direct method calls:
// the debate manager publishes lifecycle and speech events, senator agents
// publish reactions and interjections, and nobody holds a reference to
// anybody else.
//
// # Main Types
//
//   - [Event]: interface implemented by all events ([Envelope] carries the
//     common id/kind/timestamp/source/priority fields)
//   - [Bus]: synchronous dispatcher with priority ordering and a bounded
//     FIFO history
//   - [Handler]: function type for event handlers (func(Event))
//
// # Event Kinds
//
//   - [DebateEvent]: lifecycle transitions (start, end, speaker change,
//     topic change)
//   - [SpeechEvent]: one senator's speech with stance and key points
//   - [ReactionEvent]: a visible reaction to a prior speech
//   - [InterjectionEvent]: an interruption attempt, subject to rank
//     arbitration by the debate manager
//
// # Dispatch Semantics
//
// Publish is synchronous: it returns after every handler has run. Handlers
// for one event are never invoked concurrently with each other; they run
// strictly in descending priority order (priority defaults to the source
// senator's rank). A panicking handler is recovered and logged so it cannot
// block delivery to the rest.
//
// Events are immutable after construction and are shared read-only with
// every handler once dispatched. They survive only in the bounded bus
// history and in whatever agent memories chose to record them.
//
// # Basic Usage
//
//	bus := event.NewBus(100, logger)
//
//	bus.Subscribe(event.KindSpeech, "Cato", 4, func(e event.Event) {
//	    speech := e.(event.SpeechEvent)
//	    // react, interject, reconsider stance ...
//	    _ = speech
//	})
//
//	bus.Publish(event.NewSpeechEvent(speaker, "Land Reform", text, stance, points))
package event
