package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Curia configuration
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Decision  DecisionConfig  `mapstructure:"decision"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Senators  []SenatorConfig `mapstructure:"senators"`
}

// EngineConfig controls the event bus and debate pacing
type EngineConfig struct {
	// HistorySize is the maximum number of events retained by the bus (FIFO eviction)
	HistorySize int `mapstructure:"history_size"`
	// SettlePauseMs is how long the manager pauses after each speech so
	// reactions and interjections can land before the next speaker
	SettlePauseMs int `mapstructure:"settle_pause_ms"`
}

// SettlePause returns the settle pause as a duration
func (c *EngineConfig) SettlePause() time.Duration {
	return time.Duration(c.SettlePauseMs) * time.Millisecond
}

// DecisionConfig holds the weighted-probability constants of the agent
// decision model. The caps and factor composition are fixed in code; the
// numeric values here are configuration, not invariants.
type DecisionConfig struct {
	// Reaction decision: p = min(react_cap, react_base + |rel|*relationship_weight + factionFactor + topicInterest)
	ReactBase          float64 `mapstructure:"react_base"`
	ReactCap           float64 `mapstructure:"react_cap"`
	RelationshipWeight float64 `mapstructure:"relationship_weight"`
	FactionBonus       float64 `mapstructure:"faction_bonus"`
	// TopicInterestMax bounds the random topic-interest draw [0, max)
	TopicInterestMax float64 `mapstructure:"topic_interest_max"`

	// Interjection decision: p = min(interject_cap, interject_base + |rel|*interject_relationship_weight + rankFactor + stanceFactor)
	InterjectBase               float64 `mapstructure:"interject_base"`
	InterjectCap                float64 `mapstructure:"interject_cap"`
	InterjectRelationshipWeight float64 `mapstructure:"interject_relationship_weight"`
	// rankFactor = min(rank_factor_cap, ownRank * rank_weight)
	RankWeight    float64 `mapstructure:"rank_weight"`
	RankFactorCap float64 `mapstructure:"rank_factor_cap"`
	// StanceBonus is added when the agent's stance differs from the speech's
	StanceBonus float64 `mapstructure:"stance_bonus"`

	// Stance change: p = min(change_cap, change_base + max(0,rel)*change_relationship_weight + factionBonus + rankFactor)
	ChangeBase               float64 `mapstructure:"change_base"`
	ChangeCap                float64 `mapstructure:"change_cap"`
	ChangeRelationshipWeight float64 `mapstructure:"change_relationship_weight"`
	ChangeFactionBonus       float64 `mapstructure:"change_faction_bonus"`
	// rankFactor = min(change_rank_cap, speakerRank * change_rank_weight)
	ChangeRankWeight float64 `mapstructure:"change_rank_weight"`
	ChangeRankCap    float64 `mapstructure:"change_rank_cap"`

	// StrongRelationship is the |score| threshold above which reaction
	// types are restricted by relationship polarity
	StrongRelationship float64 `mapstructure:"strong_relationship"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on logging to {dir}/debate.log
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Dir is the log directory; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// GeneratorConfig controls the external content generator
type GeneratorConfig struct {
	// Backend selects the generator: "canned" (deterministic templates) or "gemini"
	Backend string `mapstructure:"backend"`
	// Model is the model name used by the gemini backend
	Model string `mapstructure:"model"`
	// TimeoutSeconds bounds each generation call
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the generation timeout as a duration
func (c *GeneratorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SenatorConfig describes one roster entry for the CLI
type SenatorConfig struct {
	Name    string `mapstructure:"name"`
	Faction string `mapstructure:"faction"`
	Rank    int    `mapstructure:"rank"`
	// Stance is the senator's initial stance: support, oppose, or neutral
	Stance string `mapstructure:"stance"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			HistorySize:   100,
			SettlePauseMs: 500,
		},
		Decision: DecisionConfig{
			ReactBase:          0.3,
			ReactCap:           0.8,
			RelationshipWeight: 0.2,
			FactionBonus:       0.1,
			TopicInterestMax:   0.3,

			InterjectBase:               0.1,
			InterjectCap:                0.5,
			InterjectRelationshipWeight: 0.15,
			RankWeight:                  0.05,
			RankFactorCap:               0.2,
			StanceBonus:                 0.15,

			ChangeBase:               0.05,
			ChangeCap:                0.3,
			ChangeRelationshipWeight: 0.1,
			ChangeFactionBonus:       0.05,
			ChangeRankWeight:         0.025,
			ChangeRankCap:            0.1,

			StrongRelationship: 0.5,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "INFO",
			Dir:     "",
		},
		Generator: GeneratorConfig{
			Backend:        "canned",
			Model:          "gemini-2.5-flash",
			TimeoutSeconds: 30,
		},
		Senators: []SenatorConfig{
			{Name: "Cato", Faction: "Optimates", Rank: 4, Stance: "oppose"},
			{Name: "Cicero", Faction: "Optimates", Rank: 3, Stance: "neutral"},
			{Name: "Gracchus", Faction: "Populares", Rank: 2, Stance: "support"},
		},
	}
}

// SetDefaults registers all defaults with viper
func SetDefaults() {
	defaults := Default()

	// Engine defaults
	viper.SetDefault("engine.history_size", defaults.Engine.HistorySize)
	viper.SetDefault("engine.settle_pause_ms", defaults.Engine.SettlePauseMs)

	// Decision defaults
	viper.SetDefault("decision.react_base", defaults.Decision.ReactBase)
	viper.SetDefault("decision.react_cap", defaults.Decision.ReactCap)
	viper.SetDefault("decision.relationship_weight", defaults.Decision.RelationshipWeight)
	viper.SetDefault("decision.faction_bonus", defaults.Decision.FactionBonus)
	viper.SetDefault("decision.topic_interest_max", defaults.Decision.TopicInterestMax)
	viper.SetDefault("decision.interject_base", defaults.Decision.InterjectBase)
	viper.SetDefault("decision.interject_cap", defaults.Decision.InterjectCap)
	viper.SetDefault("decision.interject_relationship_weight", defaults.Decision.InterjectRelationshipWeight)
	viper.SetDefault("decision.rank_weight", defaults.Decision.RankWeight)
	viper.SetDefault("decision.rank_factor_cap", defaults.Decision.RankFactorCap)
	viper.SetDefault("decision.stance_bonus", defaults.Decision.StanceBonus)
	viper.SetDefault("decision.change_base", defaults.Decision.ChangeBase)
	viper.SetDefault("decision.change_cap", defaults.Decision.ChangeCap)
	viper.SetDefault("decision.change_relationship_weight", defaults.Decision.ChangeRelationshipWeight)
	viper.SetDefault("decision.change_faction_bonus", defaults.Decision.ChangeFactionBonus)
	viper.SetDefault("decision.change_rank_weight", defaults.Decision.ChangeRankWeight)
	viper.SetDefault("decision.change_rank_cap", defaults.Decision.ChangeRankCap)
	viper.SetDefault("decision.strong_relationship", defaults.Decision.StrongRelationship)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Generator defaults
	viper.SetDefault("generator.backend", defaults.Generator.Backend)
	viper.SetDefault("generator.model", defaults.Generator.Model)
	viper.SetDefault("generator.timeout_seconds", defaults.Generator.TimeoutSeconds)

	viper.SetDefault("senators", defaults.Senators)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "curia")
	}
	// Fall back to ~/.config/curia
	home, err := os.UserHomeDir()
	if err != nil {
		return ".curia"
	}
	return filepath.Join(home, ".config", "curia")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidGeneratorBackends returns the list of valid generator backend values
func ValidGeneratorBackends() []string {
	return []string{"canned", "gemini"}
}
