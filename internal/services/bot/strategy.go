package bot

import "github.com/mcoot/tictactoe-go/internal/model"

// Strategy defines how a bot chooses where to place its marker
type Strategy interface {
	// ChooseLocation selects an empty location on the board for self to play.
	// It does not modify the board.
	ChooseLocation(board *model.Board, self, opponent model.Marker) (model.Location, error)
}
