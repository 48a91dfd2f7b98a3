package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/round"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// State represents the current phase of a match
type State string

const (
	StateNotStarted       State = "not_started"
	StateRoundInProgress  State = "round_in_progress"
	StateAwaitingContinue State = "awaiting_continue"
	StateMatchOver        State = "match_over"
)

const matchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Prompter is everything the match needs from whoever is sitting at the keyboard
type Prompter interface {
	round.HumanInput
	RequestContinueRound(ctx context.Context) (bool, error)
	RequestNewMatch(ctx context.Context) (bool, error)
}

// EventSink receives match lifecycle events
type EventSink interface {
	Publish(ctx context.Context, event model.Event) error
}

// Controller manages the match state machine: rounds, scores and the grand winner
type Controller struct {
	human    *model.Player
	opponent *model.Player
	strategy bot.Strategy
	storage  storage.Storage
	sink     EventSink
	clock    clock.Clock
	random   random.Random
	config   model.MatchConfig
	logger   *slog.Logger

	// roundLogger is handed to each round engine unscoped
	roundLogger *slog.Logger

	board       *model.Board
	state       State
	round       int
	matchID     model.MatchID
	grandWinner model.Marker
	startedAt   time.Time
}

// NewController creates a new match Controller
func NewController(
	human *model.Player,
	opponent *model.Player,
	strategy bot.Strategy,
	storage storage.Storage,
	sink EventSink,
	clock clock.Clock,
	random random.Random,
	config model.MatchConfig,
	logger *slog.Logger,
) *Controller {
	if config.WinTarget <= 0 {
		config.WinTarget = model.DefaultWinTarget
	}
	if !config.FirstMover.IsPlayer() {
		config.FirstMover = human.Marker()
	}
	return &Controller{
		human:    human,
		opponent: opponent,
		strategy: strategy,
		storage:  storage,
		sink:     sink,
		clock:    clock,
		random:   random,
		config:   config,
		logger:   logger.With(slog.String("component", "match-controller")),
		board:    model.NewBoard(),
		state:    StateNotStarted,

		roundLogger: logger,
	}
}

// State returns the current phase
func (c *Controller) State() State {
	return c.state
}

// Round returns the 1-indexed number of the current (or last) round
func (c *Controller) Round() int {
	return c.round
}

// MatchID returns the ID of the current match
func (c *Controller) MatchID() model.MatchID {
	return c.matchID
}

// GrandWinner returns the match winner, if the match ended with one
func (c *Controller) GrandWinner() (model.Marker, bool) {
	return c.grandWinner, c.grandWinner.IsPlayer()
}

// Human returns the human player
func (c *Controller) Human() *model.Player {
	return c.human
}

// Opponent returns the scripted opponent
func (c *Controller) Opponent() *model.Player {
	return c.opponent
}

// Config returns the match settings in effect
func (c *Controller) Config() model.MatchConfig {
	return c.config
}

// Board returns a snapshot of the current board
func (c *Controller) Board() model.Snapshot {
	return c.board.Snapshot()
}

// StartMatch resets scores and the board and begins round 1
func (c *Controller) StartMatch(ctx context.Context) error {
	c.matchID = model.MatchID(c.random.String(8, matchIDAlphabet))
	c.human.ResetScore()
	c.opponent.ResetScore()
	c.board.Reset()
	c.round = 1
	c.grandWinner = model.NoMarker
	c.state = StateRoundInProgress
	c.startedAt = c.clock.Now()

	c.logger.Info("match started",
		slog.String("match_id", string(c.matchID)),
		slog.Int("win_target", c.config.WinTarget),
		slog.String("first_mover", string(c.config.FirstMover)),
	)

	if err := c.publish(ctx, model.EventMatchStarted, model.MatchStartedPayload{
		WinTarget:  c.config.WinTarget,
		FirstMover: c.config.FirstMover,
	}); err != nil {
		return err
	}
	return c.publish(ctx, model.EventRoundStarted, model.RoundStartedPayload{Scores: c.scores()})
}

// NewRound returns an engine for the round in progress, playing on the match's board
func (c *Controller) NewRound() (*round.Engine, error) {
	if c.state != StateRoundInProgress {
		return nil, model.ErrRoundNotInProgress
	}
	return round.NewEngine(
		c.board,
		c.human.Marker(),
		c.opponent.Marker(),
		c.config.FirstMover,
		c.strategy,
		c.roundLogger,
	), nil
}

// CompleteRound records a finished round and decides whether the match is over
func (c *Controller) CompleteRound(ctx context.Context, outcome model.RoundOutcome) error {
	switch c.state {
	case StateMatchOver:
		return model.ErrMatchOver
	case StateRoundInProgress:
	default:
		return model.ErrRoundNotInProgress
	}

	switch outcome.Winner {
	case c.human.Marker():
		c.human.AwardRound()
	case c.opponent.Marker():
		c.opponent.AwardRound()
	}

	c.logger.Info("round concluded",
		slog.String("match_id", string(c.matchID)),
		slog.Int("round", c.round),
		slog.String("winner", string(outcome.Winner)),
		slog.Int("human_score", c.human.Score()),
		slog.Int("opponent_score", c.opponent.Score()),
	)

	if err := c.publish(ctx, model.EventRoundConcluded, model.RoundConcludedPayload{
		Outcome: outcome,
		Board:   c.board.Snapshot(),
		Scores:  c.scores(),
	}); err != nil {
		return err
	}

	switch {
	case c.human.Score() >= c.config.WinTarget:
		return c.finish(ctx, c.human.Marker())
	case c.opponent.Score() >= c.config.WinTarget:
		return c.finish(ctx, c.opponent.Marker())
	}

	c.state = StateAwaitingContinue
	return nil
}

// Continue answers the "play next round?" question
func (c *Controller) Continue(ctx context.Context, yes bool) error {
	switch c.state {
	case StateMatchOver:
		return model.ErrMatchOver
	case StateAwaitingContinue:
	default:
		return model.ErrNotAwaitingContinue
	}

	if !yes {
		return c.finish(ctx, model.NoMarker)
	}

	c.board.Reset()
	c.round++
	c.state = StateRoundInProgress
	return c.publish(ctx, model.EventRoundStarted, model.RoundStartedPayload{Scores: c.scores()})
}

// PlayMatch drives a fresh match to the end and returns its summary
func (c *Controller) PlayMatch(ctx context.Context, prompter Prompter) (*model.MatchSummary, error) {
	if err := c.StartMatch(ctx); err != nil {
		return nil, err
	}

	for c.state != StateMatchOver {
		engine, err := c.NewRound()
		if err != nil {
			return nil, err
		}
		outcome, err := engine.Play(ctx, prompter)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", c.round, err)
		}
		if err := c.CompleteRound(ctx, outcome); err != nil {
			return nil, err
		}
		if c.state == StateMatchOver {
			break
		}

		yes, err := prompter.RequestContinueRound(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Continue(ctx, yes); err != nil {
			return nil, err
		}
	}

	return c.storage.GetMatchSummary(ctx, c.matchID)
}

// Run plays matches until the human stops. A new match is only offered after
// a match that produced a grand winner.
func (c *Controller) Run(ctx context.Context, prompter Prompter) error {
	for {
		summary, err := c.PlayMatch(ctx, prompter)
		if err != nil {
			return err
		}
		if !summary.GrandWinner.IsPlayer() {
			return nil
		}

		again, err := prompter.RequestNewMatch(ctx)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// Summaries returns every match finished in this session
func (c *Controller) Summaries(ctx context.Context) ([]*model.MatchSummary, error) {
	return c.storage.ListMatchSummaries(ctx)
}

// finish ends the match, stores its summary and announces it
func (c *Controller) finish(ctx context.Context, winner model.Marker) error {
	c.grandWinner = winner
	c.state = StateMatchOver

	summary := &model.MatchSummary{
		ID:            c.matchID,
		RoundsPlayed:  c.round,
		HumanScore:    c.human.Score(),
		OpponentScore: c.opponent.Score(),
		GrandWinner:   winner,
		CompletedAt:   c.clock.Now(),
	}
	if err := c.storage.SaveMatchSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save match summary",
			slog.String("match_id", string(c.matchID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("match concluded",
		slog.String("match_id", string(c.matchID)),
		slog.String("grand_winner", string(winner)),
		slog.Int("rounds", c.round),
		slog.Duration("duration", clock.Since(c.clock, c.startedAt)),
	)

	return c.publish(ctx, model.EventMatchConcluded, model.MatchConcludedPayload{
		GrandWinner:  winner,
		Scores:       c.scores(),
		RoundsPlayed: c.round,
	})
}

func (c *Controller) scores() model.Scoreline {
	return model.Scoreline{
		Human:    c.human.Score(),
		Opponent: c.opponent.Score(),
	}
}

func (c *Controller) publish(ctx context.Context, eventType model.EventType, payload any) error {
	if c.sink == nil {
		return nil
	}
	event := model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		MatchID:   c.matchID,
		Round:     c.round,
		Payload:   payload,
	}
	if err := c.sink.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}
