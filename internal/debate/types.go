package debate

// Status represents the current state of a debate.
type Status string

const (
	// StatusNotStarted indicates no debate has begun.
	StatusNotStarted Status = "not_started"

	// StatusInProgress indicates a debate is running.
	StatusInProgress Status = "in_progress"

	// StatusEnded indicates the debate concluded. Equivalent to
	// StatusNotStarted for reuse: a new debate may be started.
	StatusEnded Status = "ended"
)
