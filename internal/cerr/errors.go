// Package cerr provides centralized error definitions and classification
// helpers for the Curia debate engine. It defines sentinel errors for
// rejected state transitions, a DebateError wrapping type with severity,
// and helpers used to decide how an error is surfaced.
//
// Rejected lifecycle transitions (starting a debate twice, ending a debate
// that never started) are expected misuse, not programming errors. They are
// reported as sentinel errors so callers can treat them as a "rejected"
// result rather than a failure that halts the debate.
package cerr

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Debate lifecycle sentinel errors. These mark rejected transitions: the
// operation was a no-op and the debate state is unchanged.
var (
	// ErrDebateInProgress indicates a start was attempted while a debate is running.
	ErrDebateInProgress = New("debate already in progress")
	// ErrDebateNotInProgress indicates an operation that requires a running debate.
	ErrDebateNotInProgress = New("no debate in progress")
	// ErrNoCurrentSpeaker indicates arbitration was attempted with no one speaking.
	ErrNoCurrentSpeaker = New("no current speaker")
	// ErrEmptyRoster indicates a debate was started with no participants.
	ErrEmptyRoster = New("speaker roster is empty")
)

// Agent and content sentinel errors.
var (
	// ErrNotParticipant indicates a senator that is not part of the debate.
	ErrNotParticipant = New("senator is not a debate participant")
	// ErrGenerationFailed indicates the content generator returned no usable speech.
	ErrGenerationFailed = New("speech generation failed")
)

// DebateError wraps an error with debate context and a severity used when
// logging it.
type DebateError struct {
	message  string
	cause    error
	severity Severity
}

// NewDebateError creates a DebateError with SeverityError.
func NewDebateError(message string, cause error) *DebateError {
	return &DebateError{message: message, cause: cause, severity: SeverityError}
}

// NewRejected creates a DebateError marking a rejected transition. It wraps
// one of the lifecycle sentinels and carries SeverityWarning.
func NewRejected(message string, sentinel error) *DebateError {
	return &DebateError{message: message, cause: sentinel, severity: SeverityWarning}
}

// Error returns the error message.
func (e *DebateError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *DebateError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *DebateError) Severity() Severity {
	return e.severity
}

// IsRejectedTransition reports whether err represents a rejected debate
// lifecycle transition rather than a real failure.
func IsRejectedTransition(err error) bool {
	return Is(err, ErrDebateInProgress) ||
		Is(err, ErrDebateNotInProgress) ||
		Is(err, ErrNoCurrentSpeaker) ||
		Is(err, ErrEmptyRoster)
}
