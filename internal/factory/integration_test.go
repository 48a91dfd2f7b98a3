package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/match"
)

// Against the heuristic with every random pick at index 0, these human moves
// win: the opponent answers 1, 2, 6 and X completes 3-5-7.
var forkingWin = []model.Location{5, 9, 3, 7}

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a complete match against the heuristic opponent, human to three
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	s.app.MockRandom.QueueString("MATCH1")
	prompter := mocks.NewScriptedPrompter()
	for range 3 {
		prompter.QueueMoves(forkingWin...)
	}
	prompter.QueueContinue(true, true)

	err := s.app.MatchController.Run(s.ctx, prompter)
	s.Require().NoError(err)

	// Match over with the human as grand winner
	s.Equal(match.StateMatchOver, s.app.MatchController.State())
	s.Equal(3, s.app.Human.Score())
	s.Equal(0, s.app.Opponent.Score())

	// Final round board: X completed the 3-5-7 diagonal
	board := s.app.MatchController.Board()
	s.Equal(model.OpponentMarker, board.At(1))
	s.Equal(model.OpponentMarker, board.At(2))
	s.Equal(model.OpponentMarker, board.At(6))
	for _, loc := range []model.Location{3, 5, 7} {
		s.Equal(model.HumanMarker, board.At(loc))
	}

	// The human was asked once per round about continuing, and once about a new match
	s.Equal(2, prompter.ContinueRequests)
	s.Equal(1, prompter.NewMatchRequests)

	summary, err := s.app.Storage.GetMatchSummary(s.ctx, "MATCH1")
	s.Require().NoError(err)
	s.Equal(model.HumanMarker, summary.GrandWinner)
	s.Equal(3, summary.RoundsPlayed)
	s.Equal(s.app.MockClock.CurrentTime, summary.CompletedAt)

	concluded := s.app.Sink.OfType(model.EventRoundConcluded)
	s.Require().Len(concluded, 3)
	for i, event := range concluded {
		payload := event.Payload.(model.RoundConcludedPayload)
		s.Equal(model.HumanMarker, payload.Outcome.Winner)
		s.Equal(i+1, payload.Scores.Human)
		s.Equal(i+1, event.Round)
	}
}

// Test: the opponent blocks and forces a tie when the human does not fork
func (s *IntegrationSuite) TestHeuristicForcesTie() {
	prompter := mocks.NewScriptedPrompter(1, 9, 8, 3, 4)
	prompter.QueueContinue(false)

	summary, err := s.app.MatchController.PlayMatch(s.ctx, prompter)
	s.Require().NoError(err)

	s.Equal(model.NoMarker, summary.GrandWinner)
	s.Equal(0, summary.HumanScore)
	s.Equal(0, summary.OpponentScore)

	concluded := s.app.Sink.OfType(model.EventRoundConcluded)
	s.Require().Len(concluded, 1)
	s.True(concluded[0].Payload.(model.RoundConcludedPayload).Outcome.IsTie())
}

// Test: a second match starts from a clean slate
func (s *IntegrationSuite) TestNewMatchResetsScores() {
	s.app = NewTestAppWithConfig(Config{Match: model.MatchConfig{WinTarget: 1}})
	s.app.MockRandom.QueueString("MATCH1", "MATCH2")
	prompter := mocks.NewScriptedPrompter(forkingWin...)
	prompter.QueueMoves(forkingWin...)
	prompter.QueueNewMatch(true, false)

	s.Require().NoError(s.app.MatchController.Run(s.ctx, prompter))

	summaries, err := s.app.MatchController.Summaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	for _, summary := range summaries {
		s.Equal(1, summary.HumanScore)
		s.Equal(1, summary.RoundsPlayed)
	}
	s.Equal(model.MatchID("MATCH2"), s.app.MatchController.MatchID())
	s.Equal(2, prompter.NewMatchRequests)
}

// Test: configuration flows through to the wired components
func (s *IntegrationSuite) TestConfigApplied() {
	s.app = NewTestAppWithConfig(Config{
		Strategy:     model.BotStrategyRandom,
		Match:        model.MatchConfig{WinTarget: 5, FirstMover: model.OpponentMarker},
		HumanName:    "Ada",
		OpponentName: "HAL",
	})

	s.IsType(&bot.RandomStrategy{}, s.app.Strategy)
	s.Equal("Ada", s.app.Human.DisplayName)
	s.Equal("HAL", s.app.Opponent.DisplayName)
	s.Equal(5, s.app.MatchController.Config().WinTarget)
	s.Equal(model.OpponentMarker, s.app.MatchController.Config().FirstMover)
}

func (s *IntegrationSuite) TestDefaults() {
	s.IsType(&bot.HeuristicStrategy{}, s.app.Strategy)
	s.Equal(DefaultHumanName, s.app.Human.DisplayName)
	s.Equal(DefaultOpponentName, s.app.Opponent.DisplayName)
	s.Equal(model.DefaultMatchConfig(), s.app.MatchController.Config())
}

func (s *IntegrationSuite) TestUnknownStrategy() {
	_, err := New(Config{Strategy: "minimax"})
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

// Test: a seeded app replays the same opponent moves
func (s *IntegrationSuite) TestSeededAppIsReproducible() {
	seed := uint64(42)
	play := func() model.Snapshot {
		app, err := New(Config{Seed: &seed, Strategy: model.BotStrategyRandom})
		s.Require().NoError(err)
		prompter := mocks.NewScriptedPrompter()
		prompter.AutoPlay = true

		_, err = app.MatchController.PlayMatch(s.ctx, prompter)
		s.Require().NoError(err)
		return app.MatchController.Board()
	}

	s.Equal(play(), play())
}

// Test: zero is an ordinary seed, only a nil seed falls back to crypto/rand
func (s *IntegrationSuite) TestZeroSeedIsSeeded() {
	zero := uint64(0)
	app, err := New(Config{Seed: &zero})
	s.Require().NoError(err)
	s.IsType(&random.SeededRandom{}, app.Random)

	app, err = New(Config{})
	s.Require().NoError(err)
	s.IsType(&random.CryptoRandom{}, app.Random)
}
