package model

import "time"

// MatchID uniquely identifies a match within a session
type MatchID string

// DefaultWinTarget is the number of round wins that takes the match
const DefaultWinTarget = 3

// MatchConfig holds the settings for a match
type MatchConfig struct {
	WinTarget  int    // Round wins needed to take the match
	FirstMover Marker // Who opens every round
}

// DefaultMatchConfig returns the default match configuration
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		WinTarget:  DefaultWinTarget,
		FirstMover: HumanMarker,
	}
}

// RoundOutcome is the result of a finished round
type RoundOutcome struct {
	Winner Marker // NoMarker on a tie
}

// IsTie returns true if nobody completed a line
func (o RoundOutcome) IsTie() bool {
	return o.Winner == NoMarker
}

// MatchSummary is a lightweight record of a finished match
type MatchSummary struct {
	ID            MatchID
	RoundsPlayed  int
	HumanScore    int
	OpponentScore int
	GrandWinner   Marker // NoMarker if the match was abandoned before the target
	CompletedAt   time.Time
}

// SessionTally aggregates the matches played in one session
type SessionTally struct {
	Matches   int
	Won       int
	Lost      int
	Undecided int
}

// TallySummaries counts match results from the human's point of view
func TallySummaries(summaries []*MatchSummary) SessionTally {
	var tally SessionTally
	for _, s := range summaries {
		tally.Matches++
		switch s.GrandWinner {
		case HumanMarker:
			tally.Won++
		case OpponentMarker:
			tally.Lost++
		default:
			tally.Undecided++
		}
	}
	return tally
}
