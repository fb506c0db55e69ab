package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/curialabs/curia/internal/config"
	"github.com/curialabs/curia/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify Curia configuration",
	Long: `View or modify Curia configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  curia config set generator.backend gemini
  curia config set engine.settle_pause_ms 250
  curia config set logging.level DEBUG

Valid keys:
  engine.history_size        - Events retained by the bus before FIFO eviction
  engine.settle_pause_ms     - Pause after each speech in milliseconds
  logging.enabled            - Write a structured debate log (true/false)
  logging.level              - Minimum log level: DEBUG, INFO, WARN, ERROR
  logging.dir                - Log directory (empty logs to stderr)
  generator.backend          - Speech generator: canned, gemini
  generator.model            - Model name for the gemini backend
  generator.timeout_seconds  - Per-speech generation timeout`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/curia/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	// Engine settings
	fmt.Println("engine:")
	fmt.Printf("  history_size: %d\n", cfg.Engine.HistorySize)
	fmt.Printf("  settle_pause_ms: %d\n", cfg.Engine.SettlePauseMs)

	// Logging settings
	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)

	// Generator settings
	fmt.Println("generator:")
	fmt.Printf("  backend: %s\n", cfg.Generator.Backend)
	fmt.Printf("  model: %s\n", cfg.Generator.Model)
	fmt.Printf("  timeout_seconds: %d\n", cfg.Generator.TimeoutSeconds)

	// Roster
	fmt.Println("senators:")
	for _, s := range cfg.Senators {
		fmt.Printf("  - %s (%s, rank %d, %s)\n", s.Name, s.Faction, s.Rank, s.Stance)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"engine.history_size":       "int",
		"engine.settle_pause_ms":    "int",
		"logging.enabled":           "bool",
		"logging.level":             "string",
		"logging.dir":               "string",
		"generator.backend":         "string",
		"generator.model":           "string",
		"generator.timeout_seconds": "int",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'curia config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		switch key {
		case "generator.backend":
			if !validBackend(value) {
				return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
					key, value, strings.Join(config.ValidGeneratorBackends(), ", "))
			}
		case "logging.level":
			if !validLevel(value) {
				return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
					key, value, strings.Join(logging.ValidLevels(), ", "))
			}
			value = strings.ToUpper(value)
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'curia config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Curia Configuration

# Event bus and debate pacing
engine:
  # Events retained by the bus before the oldest is evicted
  history_size: 100
  # Pause after each speech so reactions and interjections land
  settle_pause_ms: 500

# Structured debate log
logging:
  enabled: true
  # DEBUG, INFO, WARN, ERROR
  level: INFO
  # Log directory; empty logs to stderr
  dir: ""

# Speech generation
generator:
  # canned (deterministic templates) or gemini (needs GEMINI_API_KEY)
  backend: canned
  model: gemini-2.5-flash
  timeout_seconds: 30

# Debate roster. Rank orders interruption rights; stance is the
# senator's initial position: support, oppose or neutral.
senators:
  - name: Cato
    faction: Optimates
    rank: 4
    stance: oppose
  - name: Cicero
    faction: Optimates
    rank: 3
    stance: neutral
  - name: Gracchus
    faction: Populares
    rank: 2
    stance: support
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize the debate.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/curia/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: CURIA_* (e.g., CURIA_GENERATOR_BACKEND)")

	return nil
}

func validBackend(v string) bool {
	for _, b := range config.ValidGeneratorBackends() {
		if v == b {
			return true
		}
	}
	return false
}

func validLevel(v string) bool {
	upper := strings.ToUpper(v)
	for _, l := range logging.ValidLevels() {
		if upper == l {
			return true
		}
	}
	return false
}
