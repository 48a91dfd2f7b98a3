package bot

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyHeuristic: NewHeuristicStrategy(rnd),
		model.BotStrategyRandom:    NewRandomStrategy(rnd),
	}
}

// Service resolves bot strategies by name
type Service struct {
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Strategy returns the strategy registered under name
func (s *Service) Strategy(name string) (Strategy, error) {
	strategy, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	s.logger.Debug("strategy selected",
		slog.String("strategy", name),
	)
	return strategy, nil
}

// Names returns the registered strategy names, sorted
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
