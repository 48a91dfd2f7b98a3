package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// IsJSON reports whether output is machine readable
func (o *Output) IsJSON() bool {
	return o.format == OutputJSON
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.IsJSON() {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintRecord outputs data like Print, except JSON is written as a single line
// so it can follow a stream of events
func (o *Output) PrintRecord(data any) {
	if !o.IsJSON() {
		o.printText(data)
		return
	}
	line, err := json.Marshal(data)
	if err != nil {
		o.PrintError(err)
		return
	}
	fmt.Fprintln(o.out, string(line))
}

// PrintEvent writes a match event as a single JSON line
func (o *Output) PrintEvent(event model.Event) {
	data, err := json.Marshal(NewEventView(event))
	if err != nil {
		o.PrintError(err)
		return
	}
	fmt.Fprintln(o.out, string(data))
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case ConfigView:
		o.printConfig(v)
	case SessionReport:
		o.printSessionReport(v)
	case []StrategyInfo:
		o.printStrategies(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// ConfigView is the resolved configuration as printed by the config command
type ConfigView struct {
	Config
	SearchedPath string `json:"searched_path"`
}

// StrategyInfo describes an opponent strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Scoreline response type
type Scoreline struct {
	Human    int `json:"human"`
	Opponent int `json:"opponent"`
}

// EventView is the JSON form of a match event
type EventView struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	MatchID   string    `json:"match_id"`
	Round     int       `json:"round"`

	WinTarget    int        `json:"win_target,omitempty"`
	FirstMover   string     `json:"first_mover,omitempty"`
	Winner       *string    `json:"winner,omitempty"`
	Tie          bool       `json:"tie,omitempty"`
	Board        []string   `json:"board,omitempty"`
	Scores       *Scoreline `json:"scores,omitempty"`
	GrandWinner  *string    `json:"grand_winner,omitempty"`
	RoundsPlayed int        `json:"rounds_played,omitempty"`
}

// NewEventView flattens an event and its payload
func NewEventView(event model.Event) EventView {
	view := EventView{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		MatchID:   string(event.MatchID),
		Round:     event.Round,
	}

	switch p := event.Payload.(type) {
	case model.MatchStartedPayload:
		view.WinTarget = p.WinTarget
		view.FirstMover = string(p.FirstMover)
	case model.RoundStartedPayload:
		view.Scores = newScoreline(p.Scores)
	case model.RoundConcludedPayload:
		view.Tie = p.Outcome.IsTie()
		view.Winner = markerPtr(p.Outcome.Winner)
		view.Board = boardCells(p.Board)
		view.Scores = newScoreline(p.Scores)
	case model.MatchConcludedPayload:
		view.GrandWinner = markerPtr(p.GrandWinner)
		view.Scores = newScoreline(p.Scores)
		view.RoundsPlayed = p.RoundsPlayed
	}
	return view
}

// MatchSummary response type
type MatchSummary struct {
	ID            string    `json:"id"`
	RoundsPlayed  int       `json:"rounds_played"`
	HumanScore    int       `json:"human_score"`
	OpponentScore int       `json:"opponent_score"`
	GrandWinner   *string   `json:"grand_winner"`
	CompletedAt   time.Time `json:"completed_at"`
}

// SessionReport is printed when the session ends
type SessionReport struct {
	Matches   int            `json:"matches"`
	Won       int            `json:"won"`
	Lost      int            `json:"lost"`
	Undecided int            `json:"undecided"`
	History   []MatchSummary `json:"history"`
}

// NewSessionReport tallies the session's match summaries
func NewSessionReport(summaries []*model.MatchSummary) SessionReport {
	tally := model.TallySummaries(summaries)
	report := SessionReport{
		Matches:   tally.Matches,
		Won:       tally.Won,
		Lost:      tally.Lost,
		Undecided: tally.Undecided,
		History:   make([]MatchSummary, 0, len(summaries)),
	}
	for _, s := range summaries {
		report.History = append(report.History, MatchSummary{
			ID:            string(s.ID),
			RoundsPlayed:  s.RoundsPlayed,
			HumanScore:    s.HumanScore,
			OpponentScore: s.OpponentScore,
			GrandWinner:   markerPtr(s.GrandWinner),
			CompletedAt:   s.CompletedAt,
		})
	}
	return report
}

func newScoreline(s model.Scoreline) *Scoreline {
	return &Scoreline{Human: s.Human, Opponent: s.Opponent}
}

// markerPtr returns nil for the empty marker so JSON shows null
func markerPtr(m model.Marker) *string {
	if !m.IsPlayer() {
		return nil
	}
	s := string(m)
	return &s
}

func boardCells(snap model.Snapshot) []string {
	cells := make([]string, len(snap))
	for i, m := range snap {
		cells[i] = string(m)
	}
	return cells
}

func (o *Output) printConfig(c ConfigView) {
	path := c.Path
	if path == "" {
		path = "(none, looked for " + c.SearchedPath + ")"
	}
	fmt.Fprintf(o.out, "Config file: %s\n", path)
	fmt.Fprintf(o.out, "Human name: %s\n", c.HumanName)
	fmt.Fprintf(o.out, "Opponent name: %s\n", c.OpponentName)
	fmt.Fprintf(o.out, "Win target: %d\n", c.WinTarget)
	fmt.Fprintf(o.out, "First mover: %s\n", c.FirstMover)
	fmt.Fprintf(o.out, "Strategy: %s (%s)\n", c.Strategy, model.BotStrategyDisplayName(c.Strategy))
	if c.Seed != 0 {
		fmt.Fprintf(o.out, "Seed: %d\n", c.Seed)
	}
	fmt.Fprintf(o.out, "Clear screen: %t\n", !c.NoClear)
	fmt.Fprintf(o.out, "Output: %s\n", c.Output)
	fmt.Fprintf(o.out, "Log level: %s\n", c.LogLevel)
}

func (o *Output) printSessionReport(r SessionReport) {
	if r.Matches == 0 {
		return
	}
	fmt.Fprintf(o.out, "Matches: %d. Won: %d. Lost: %d. Undecided: %d.\n", r.Matches, r.Won, r.Lost, r.Undecided)
}

func (o *Output) printStrategies(strategies []StrategyInfo) {
	for _, s := range strategies {
		fmt.Fprintf(o.out, "%-10s %s\n", s.Name, s.Description)
	}
}
