package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/storage"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
)

// Default display names
const (
	DefaultHumanName    = "You"
	DefaultOpponentName = "Computer"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Players
	Human    *model.Player
	Opponent *model.Player

	// Services
	BotService      *bot.Service
	Strategy        bot.Strategy
	MatchController *match.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Strategy names the opponent's strategy
	// If empty, defaults to "heuristic"
	Strategy string
	// Seed makes the opponent's choices reproducible (optional)
	// If nil, crypto/rand is used. Zero is a valid seed.
	Seed *uint64
	// Match holds the win target and first mover
	// Zero fields fall back to model.DefaultMatchConfig()
	Match model.MatchConfig
	// HumanName and OpponentName are display names (optional)
	HumanName    string
	OpponentName string
	// Sink receives match events (optional)
	Sink match.EventSink
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
		logger.Debug("using seeded random source", slog.Uint64("seed", *cfg.Seed))
	}

	return newWithDependencies(memory.New(), clk, rnd, cfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) (*App, error) {
	botService := bot.NewService(bot.DefaultStrategies(rnd), logger)

	strategyName := cfg.Strategy
	if strategyName == "" {
		strategyName = model.BotStrategyHeuristic
	}
	strategy, err := botService.Strategy(strategyName)
	if err != nil {
		return nil, err
	}

	humanName := cfg.HumanName
	if humanName == "" {
		humanName = DefaultHumanName
	}
	opponentName := cfg.OpponentName
	if opponentName == "" {
		opponentName = DefaultOpponentName
	}
	human := model.NewPlayer(humanName, model.RoleHuman, model.HumanMarker)
	opponent := model.NewPlayer(opponentName, model.RoleOpponent, model.OpponentMarker)

	matchController := match.NewController(human, opponent, strategy, store, cfg.Sink, clk, rnd, cfg.Match, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Human:           human,
		Opponent:        opponent,
		BotService:      botService,
		Strategy:        strategy,
		MatchController: matchController,
	}, nil
}
