package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/curialabs/curia/internal/agent"
	"github.com/curialabs/curia/internal/config"
	"github.com/curialabs/curia/internal/content"
	"github.com/curialabs/curia/internal/debate"
	"github.com/curialabs/curia/internal/display"
	"github.com/curialabs/curia/internal/event"
	"github.com/curialabs/curia/internal/logging"
	"github.com/curialabs/curia/internal/senator"
	"github.com/spf13/cobra"
)

var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Run a full debate on a topic",
	Long: `Run a full debate: every configured senator speaks once in roster
order, and the other senators react, interject and shift stances as
the debate unfolds.

The roster comes from the config file (or from the built-in default
roster of Cato, Cicero and Gracchus). Speech content is produced by
the configured generator backend: deterministic canned templates, or
Gemini when generator.backend is set to "gemini" and GEMINI_API_KEY
is present in the environment.`,
	RunE: runDebate,
}

func init() {
	rootCmd.AddCommand(debateCmd)

	debateCmd.Flags().StringP("topic", "t", "Land Reform", "debate topic")
	debateCmd.Flags().Int64("seed", 0, "random seed for agent decisions (0 = time-based)")
}

func runDebate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		l, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		defer l.Close()
		logger = l
	}

	bus := event.NewBus(cfg.Engine.HistorySize, logger)
	sink := display.NewConsole(os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen content.Generator
	switch cfg.Generator.Backend {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("generator backend is gemini but GEMINI_API_KEY is not set")
		}
		g, err := content.NewGemini(ctx, apiKey, cfg.Generator.Model)
		if err != nil {
			return fmt.Errorf("failed to create gemini generator: %w", err)
		}
		gen = g
	default:
		gen = content.NewCanned(rand.New(rand.NewSource(seed)))
	}

	senators := make([]*senator.Senator, 0, len(cfg.Senators))
	for i, sc := range cfg.Senators {
		s := senator.New(sc.Name, sc.Faction, sc.Rank)
		senators = append(senators, s)

		stance := senator.Stance(strings.ToLower(sc.Stance))
		if !stance.Valid() {
			stance = senator.StanceNeutral
		}

		// Per-agent derived seed keeps runs reproducible for a fixed --seed.
		a := agent.New(s, bus,
			agent.WithRand(rand.New(rand.NewSource(seed+int64(i)+1))),
			agent.WithParams(cfg.Decision),
			agent.WithLogger(logger),
			agent.WithSink(sink),
			agent.WithStance(stance),
		)
		a.Subscribe()
		defer a.Unsubscribe()
	}

	mgr := debate.NewManager(bus,
		debate.WithLogger(logger),
		debate.WithSink(sink),
		debate.WithGenerator(gen),
		debate.WithSettlePause(cfg.Engine.SettlePause()),
		debate.WithGeneratorTimeout(cfg.Generator.Timeout()),
	)
	defer mgr.Close()

	return mgr.ConductDebate(ctx, topic, senators)
}
