package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "decision.react_cap")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"DEBUG", "INFO", "WARN", "ERROR"}
}

// ValidStances returns the list of valid initial stances
func ValidStances() []string {
	return []string{"support", "oppose", "neutral"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEngine()...)
	errors = append(errors, c.validateDecision()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateGenerator()...)
	errors = append(errors, c.validateSenators()...)

	return errors
}

func (c *Config) validateEngine() []ValidationError {
	var errors []ValidationError

	if c.Engine.HistorySize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "engine.history_size",
			Value:   c.Engine.HistorySize,
			Message: "must be positive",
		})
	}
	if c.Engine.SettlePauseMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "engine.settle_pause_ms",
			Value:   c.Engine.SettlePauseMs,
			Message: "must not be negative",
		})
	}

	return errors
}

func (c *Config) validateDecision() []ValidationError {
	var errors []ValidationError

	probabilities := []struct {
		field string
		value float64
	}{
		{"decision.react_base", c.Decision.ReactBase},
		{"decision.react_cap", c.Decision.ReactCap},
		{"decision.interject_base", c.Decision.InterjectBase},
		{"decision.interject_cap", c.Decision.InterjectCap},
		{"decision.change_base", c.Decision.ChangeBase},
		{"decision.change_cap", c.Decision.ChangeCap},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be a probability in [0, 1]",
			})
		}
	}

	caps := []struct {
		field      string
		base, caps float64
	}{
		{"decision.react_cap", c.Decision.ReactBase, c.Decision.ReactCap},
		{"decision.interject_cap", c.Decision.InterjectBase, c.Decision.InterjectCap},
		{"decision.change_cap", c.Decision.ChangeBase, c.Decision.ChangeCap},
	}
	for _, p := range caps {
		if p.caps < p.base {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.caps,
				Message: "cap must not be below its base rate",
			})
		}
	}

	weights := []struct {
		field string
		value float64
	}{
		{"decision.relationship_weight", c.Decision.RelationshipWeight},
		{"decision.faction_bonus", c.Decision.FactionBonus},
		{"decision.topic_interest_max", c.Decision.TopicInterestMax},
		{"decision.interject_relationship_weight", c.Decision.InterjectRelationshipWeight},
		{"decision.rank_weight", c.Decision.RankWeight},
		{"decision.rank_factor_cap", c.Decision.RankFactorCap},
		{"decision.stance_bonus", c.Decision.StanceBonus},
		{"decision.change_relationship_weight", c.Decision.ChangeRelationshipWeight},
		{"decision.change_faction_bonus", c.Decision.ChangeFactionBonus},
		{"decision.change_rank_weight", c.Decision.ChangeRankWeight},
		{"decision.change_rank_cap", c.Decision.ChangeRankCap},
	}
	for _, w := range weights {
		if w.value < 0 {
			errors = append(errors, ValidationError{
				Field:   w.field,
				Value:   w.value,
				Message: "must not be negative",
			})
		}
	}

	if c.Decision.StrongRelationship < 0 || c.Decision.StrongRelationship > 1 {
		errors = append(errors, ValidationError{
			Field:   "decision.strong_relationship",
			Value:   c.Decision.StrongRelationship,
			Message: "must be in [0, 1]",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateGenerator() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidGeneratorBackends(), c.Generator.Backend) {
		errors = append(errors, ValidationError{
			Field:   "generator.backend",
			Value:   c.Generator.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidGeneratorBackends(), ", ")),
		})
	}
	if c.Generator.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "generator.timeout_seconds",
			Value:   c.Generator.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateSenators() []ValidationError {
	var errors []ValidationError

	seen := make(map[string]bool)
	for i, s := range c.Senators {
		field := fmt.Sprintf("senators[%d]", i)

		if s.Name == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   s.Name,
				Message: "must not be empty",
			})
		} else if seen[s.Name] {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   s.Name,
				Message: "duplicate senator name",
			})
		}
		seen[s.Name] = true

		if s.Rank < 0 {
			errors = append(errors, ValidationError{
				Field:   field + ".rank",
				Value:   s.Rank,
				Message: "must not be negative",
			})
		}
		if s.Stance != "" && !slices.Contains(ValidStances(), s.Stance) {
			errors = append(errors, ValidationError{
				Field:   field + ".stance",
				Value:   s.Stance,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidStances(), ", ")),
			})
		}
	}

	return errors
}
