package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// RandomStrategy picks a random empty location
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseLocation picks uniformly among the empty locations
func (s *RandomStrategy) ChooseLocation(board *model.Board, self, opponent model.Marker) (model.Location, error) {
	return pick(s.random, board.EmptyLocationList())
}

// pick returns a uniformly random element of candidates
func pick(rnd random.Random, candidates []model.Location) (model.Location, error) {
	if len(candidates) == 0 {
		return 0, model.ErrBoardFull
	}
	return candidates[rnd.Intn(len(candidates))], nil
}
