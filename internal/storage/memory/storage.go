package memory

import (
	"context"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Nothing outlives the process.
type Storage struct {
	mu sync.RWMutex

	summaries map[model.MatchID]*model.MatchSummary
	order     []model.MatchID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		summaries: make(map[model.MatchID]*model.MatchSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match summary operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.summaries[summary.ID]; !ok {
		s.order = append(s.order, summary.ID)
	}
	stored := *summary
	s.summaries[summary.ID] = &stored
	return nil
}

func (s *Storage) GetMatchSummary(ctx context.Context, id model.MatchID) (*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	result := *summary
	return &result, nil
}

func (s *Storage) ListMatchSummaries(ctx context.Context) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.MatchSummary, 0, len(s.order))
	for _, id := range s.order {
		summary := *s.summaries[id]
		result = append(result, &summary)
	}
	return result, nil
}
