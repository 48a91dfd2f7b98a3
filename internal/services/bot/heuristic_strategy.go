package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// HeuristicStrategy looks one move ahead, in priority order:
//  1. complete one of its own lines
//  2. block one of the opponent's lines
//  3. take the center
//  4. anything empty
//
// Ties within a tier are broken uniformly at random. It does not search
// deeper than one move, so forks beat it.
type HeuristicStrategy struct {
	random random.Random
}

// NewHeuristicStrategy creates a new HeuristicStrategy
func NewHeuristicStrategy(rnd random.Random) *HeuristicStrategy {
	return &HeuristicStrategy{random: rnd}
}

// ChooseLocation picks a location by the first matching tier
func (s *HeuristicStrategy) ChooseLocation(board *model.Board, self, opponent model.Marker) (model.Location, error) {
	if wins := board.WinningMovesFor(self); len(wins) > 0 {
		return pick(s.random, wins)
	}
	if blocks := board.WinningMovesFor(opponent); len(blocks) > 0 {
		return pick(s.random, blocks)
	}
	if board.CenterAvailable() {
		return model.CenterLocation, nil
	}
	return pick(s.random, board.EmptyLocationList())
}
