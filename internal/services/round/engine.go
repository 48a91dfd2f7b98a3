package round

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
)

// State represents the current phase of a round
type State string

const (
	StateAwaitingHumanMove    State = "awaiting_human_move"
	StateAwaitingOpponentMove State = "awaiting_opponent_move"
	StateRoundOver            State = "round_over"
)

// HumanTurn is what the input layer needs to ask the human for a move
type HumanTurn struct {
	Board   model.Snapshot
	Choices []model.Location // Empty locations, ascending
}

// HumanInput supplies the human's moves. The returned location must be one of
// turn.Choices; re-prompting on bad input is the implementation's job.
type HumanInput interface {
	RequestHumanMove(ctx context.Context, turn HumanTurn) (model.Location, error)
}

// Engine drives alternating turns on one board until it is terminal
type Engine struct {
	board    *model.Board
	human    model.Marker
	opponent model.Marker
	strategy bot.Strategy
	state    State
	moves    int
	logger   *slog.Logger
}

// NewEngine creates an Engine for a round on board. The board is used as-is;
// callers reset it before the round starts.
func NewEngine(
	board *model.Board,
	human model.Marker,
	opponent model.Marker,
	firstMover model.Marker,
	strategy bot.Strategy,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		board:    board,
		human:    human,
		opponent: opponent,
		strategy: strategy,
		logger:   logger.With(slog.String("component", "round-engine")),
	}

	switch {
	case board.IsTerminal():
		e.state = StateRoundOver
	case firstMover == opponent:
		e.state = StateAwaitingOpponentMove
	default:
		e.state = StateAwaitingHumanMove
	}
	return e
}

// State returns the current phase
func (e *Engine) State() State {
	return e.state
}

// Moves returns the number of moves applied so far
func (e *Engine) Moves() int {
	return e.moves
}

// Snapshot returns the current board for rendering
func (e *Engine) Snapshot() model.Snapshot {
	return e.board.Snapshot()
}

// HumanTurn returns the prompt data for the human's move
func (e *Engine) HumanTurn() HumanTurn {
	return HumanTurn{
		Board:   e.board.Snapshot(),
		Choices: e.board.EmptyLocationList(),
	}
}

// ApplyHumanMove places the human's marker at loc
func (e *Engine) ApplyHumanMove(loc model.Location) error {
	switch e.state {
	case StateRoundOver:
		return model.ErrRoundOver
	case StateAwaitingOpponentMove:
		return model.ErrNotHumanTurn
	}

	if err := e.board.Place(loc, e.human); err != nil {
		return fmt.Errorf("human move %d: %w", loc, err)
	}
	e.advance(e.human, loc, StateAwaitingOpponentMove)
	return nil
}

// ApplyOpponentMove asks the strategy for a location and plays it
func (e *Engine) ApplyOpponentMove() (model.Location, error) {
	switch e.state {
	case StateRoundOver:
		return 0, model.ErrRoundOver
	case StateAwaitingHumanMove:
		return 0, model.ErrNotOpponentTurn
	}

	loc, err := e.strategy.ChooseLocation(e.board, e.opponent, e.human)
	if err != nil {
		return 0, err
	}
	if err := e.board.Place(loc, e.opponent); err != nil {
		return 0, fmt.Errorf("opponent move %d: %w", loc, err)
	}
	e.advance(e.opponent, loc, StateAwaitingHumanMove)
	return loc, nil
}

// advance records a move and moves to next, or ends the round if the board is terminal
func (e *Engine) advance(mover model.Marker, loc model.Location, next State) {
	e.moves++
	e.logger.Debug("move played",
		slog.String("marker", string(mover)),
		slog.Int("location", int(loc)),
		slog.Int("move", e.moves),
	)

	if e.board.IsTerminal() {
		e.state = StateRoundOver
		return
	}
	e.state = next
}

// Outcome returns the winner, or a tie, once the round is over
func (e *Engine) Outcome() (model.RoundOutcome, error) {
	if e.state != StateRoundOver {
		return model.RoundOutcome{}, model.ErrRoundInProgress
	}
	winner, _ := e.board.Winner()
	return model.RoundOutcome{Winner: winner}, nil
}

// Play runs the round to completion, asking input for every human move.
// A location the board rejects is returned as an error; Play does not re-prompt.
func (e *Engine) Play(ctx context.Context, input HumanInput) (model.RoundOutcome, error) {
	for e.state != StateRoundOver {
		if err := ctx.Err(); err != nil {
			return model.RoundOutcome{}, err
		}

		switch e.state {
		case StateAwaitingHumanMove:
			loc, err := input.RequestHumanMove(ctx, e.HumanTurn())
			if err != nil {
				return model.RoundOutcome{}, err
			}
			if err := e.ApplyHumanMove(loc); err != nil {
				return model.RoundOutcome{}, err
			}
		case StateAwaitingOpponentMove:
			if _, err := e.ApplyOpponentMove(); err != nil {
				return model.RoundOutcome{}, err
			}
		}
	}

	outcome, err := e.Outcome()
	if err != nil {
		return model.RoundOutcome{}, err
	}

	e.logger.Debug("round over",
		slog.String("winner", string(outcome.Winner)),
		slog.Bool("tie", outcome.IsTie()),
		slog.Int("moves", e.moves),
	)
	return outcome, nil
}
