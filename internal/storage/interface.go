package storage

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Storage defines the interface for the session's match history
type Storage interface {
	// Match summary operations
	SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error
	GetMatchSummary(ctx context.Context, id model.MatchID) (*model.MatchSummary, error)
	// ListMatchSummaries returns summaries in the order they were first saved
	ListMatchSummaries(ctx context.Context) ([]*model.MatchSummary, error)
}
