package mocks

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// RecordingSink stores every published event
type RecordingSink struct {
	Events []model.Event
}

// NewRecordingSink creates an empty RecordingSink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Publish records the event
func (s *RecordingSink) Publish(ctx context.Context, event model.Event) error {
	s.Events = append(s.Events, event)
	return nil
}

// OfType returns the recorded events of the given type, in order
func (s *RecordingSink) OfType(eventType model.EventType) []model.Event {
	var events []model.Event
	for _, e := range s.Events {
		if e.Type == eventType {
			events = append(events, e)
		}
	}
	return events
}

// Types returns the type of every recorded event, in order
func (s *RecordingSink) Types() []model.EventType {
	types := make([]model.EventType, len(s.Events))
	for i, e := range s.Events {
		types[i] = e.Type
	}
	return types
}
