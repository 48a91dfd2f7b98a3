package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMatchStarted   EventType = "match_started"
	EventRoundStarted   EventType = "round_started"
	EventRoundConcluded EventType = "round_concluded"
	EventMatchConcluded EventType = "match_concluded"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	MatchID   MatchID
	Round     int // 1-indexed round number
	Payload   any // Type-specific data
}

// Scoreline is both players' scores at the time of an event
type Scoreline struct {
	Human    int
	Opponent int
}

// MatchStartedPayload contains data for match started events
type MatchStartedPayload struct {
	WinTarget  int
	FirstMover Marker
}

// RoundStartedPayload contains data for round started events
type RoundStartedPayload struct {
	Scores Scoreline
}

// RoundConcludedPayload contains data for round concluded events
type RoundConcludedPayload struct {
	Outcome RoundOutcome
	Board   Snapshot
	Scores  Scoreline
}

// MatchConcludedPayload contains data for match concluded events
type MatchConcludedPayload struct {
	GrandWinner  Marker // NoMarker if the match ended without one
	Scores       Scoreline
	RoundsPlayed int
}
