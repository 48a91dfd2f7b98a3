package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidLocation = errors.New("location must be between 1 and 9")
	ErrAlreadyOccupied = errors.New("location is already occupied")
	ErrInvalidMarker   = errors.New("invalid marker")
	ErrBoardFull       = errors.New("board has no empty location")

	// Round errors
	ErrNotHumanTurn    = errors.New("not the human player's turn")
	ErrNotOpponentTurn = errors.New("not the opponent's turn")
	ErrRoundOver       = errors.New("round is already over")
	ErrRoundInProgress = errors.New("round is still in progress")

	// Match errors
	ErrRoundNotInProgress  = errors.New("no round in progress")
	ErrNotAwaitingContinue = errors.New("match is not waiting for a continue decision")
	ErrMatchOver           = errors.New("match is already over")
	ErrMatchNotFound       = errors.New("match not found")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
