package config

import (
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() config should validate, got errors: %v", ValidationErrors(errs))
	}
}

func TestValidate_EngineHistorySize(t *testing.T) {
	cfg := Default()
	cfg.Engine.HistorySize = 0

	errs := cfg.Validate()
	if !hasField(errs, "engine.history_size") {
		t.Errorf("expected engine.history_size error, got %v", errs)
	}
}

func TestValidate_ProbabilityRanges(t *testing.T) {
	cfg := Default()
	cfg.Decision.ReactCap = 1.5

	errs := cfg.Validate()
	if !hasField(errs, "decision.react_cap") {
		t.Errorf("expected decision.react_cap error, got %v", errs)
	}
}

func TestValidate_CapBelowBase(t *testing.T) {
	cfg := Default()
	cfg.Decision.InterjectBase = 0.4
	cfg.Decision.InterjectCap = 0.2

	errs := cfg.Validate()
	if !hasField(errs, "decision.interject_cap") {
		t.Errorf("expected decision.interject_cap error, got %v", errs)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if !hasField(errs, "logging.level") {
		t.Errorf("expected logging.level error, got %v", errs)
	}

	// Lowercase variants of valid levels are accepted.
	cfg.Logging.Level = "debug"
	if errs := cfg.Validate(); hasField(errs, "logging.level") {
		t.Errorf("lowercase level should be accepted, got %v", errs)
	}
}

func TestValidate_GeneratorBackend(t *testing.T) {
	cfg := Default()
	cfg.Generator.Backend = "oracle"

	errs := cfg.Validate()
	if !hasField(errs, "generator.backend") {
		t.Errorf("expected generator.backend error, got %v", errs)
	}
}

func TestValidate_Senators(t *testing.T) {
	cfg := Default()
	cfg.Senators = []SenatorConfig{
		{Name: "Cato", Faction: "Optimates", Rank: 4, Stance: "oppose"},
		{Name: "Cato", Faction: "Optimates", Rank: 3, Stance: "bellicose"},
		{Name: "", Rank: -1},
	}

	errs := cfg.Validate()
	for _, field := range []string{"senators[1].name", "senators[1].stance", "senators[2].name", "senators[2].rank"} {
		if !hasField(errs, field) {
			t.Errorf("expected %s error, got %v", field, errs)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q, want count prefix", msg)
	}
	if !strings.Contains(msg, "a: bad") || !strings.Contains(msg, "b: worse") {
		t.Errorf("Error() = %q, want both messages", msg)
	}
}

func hasField(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
