package cerr

import (
	"testing"
)

func TestDebateErrorUnwrap(t *testing.T) {
	err := NewRejected("start debate", ErrDebateInProgress)

	if !Is(err, ErrDebateInProgress) {
		t.Error("NewRejected error does not match its sentinel")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}

	var derr *DebateError
	if !As(err, &derr) {
		t.Fatal("As failed to extract *DebateError")
	}
	if derr.Error() != "start debate: debate already in progress" {
		t.Errorf("Error() = %q", derr.Error())
	}
}

func TestNewDebateErrorSeverity(t *testing.T) {
	err := NewDebateError("generation", ErrGenerationFailed)
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !Is(err, ErrGenerationFailed) {
		t.Error("DebateError does not match its cause")
	}

	bare := NewDebateError("no cause", nil)
	if bare.Error() != "no cause" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "no cause")
	}
}

func TestIsRejectedTransition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"in progress", ErrDebateInProgress, true},
		{"not in progress", ErrDebateNotInProgress, true},
		{"no speaker", ErrNoCurrentSpeaker, true},
		{"empty roster", ErrEmptyRoster, true},
		{"wrapped", NewRejected("end debate", ErrDebateNotInProgress), true},
		{"generation failure", ErrGenerationFailed, false},
		{"not participant", ErrNotParticipant, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRejectedTransition(tt.err); got != tt.want {
				t.Errorf("IsRejectedTransition(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
