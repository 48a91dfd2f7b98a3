package mocks

import (
	"context"
	"errors"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/round"
)

// ErrScriptExhausted is returned when a ScriptedPrompter runs out of queued moves
var ErrScriptExhausted = errors.New("scripted prompter has no more moves")

// ScriptedPrompter answers the match's requests from queues, for testing
type ScriptedPrompter struct {
	// Moves is a queue of human moves
	Moves     []model.Location
	moveIndex int

	// AutoPlay makes the prompter pick the lowest empty location once Moves runs out
	AutoPlay bool

	// ContinueAnswers and NewMatchAnswers are queues of yes/no answers.
	// An exhausted queue answers no.
	ContinueAnswers []bool
	continueIndex   int
	NewMatchAnswers []bool
	newMatchIndex   int

	// Turns records every move request
	Turns []round.HumanTurn
	// ContinueRequests and NewMatchRequests count the yes/no requests
	ContinueRequests int
	NewMatchRequests int
}

// NewScriptedPrompter creates a ScriptedPrompter with the given human moves
func NewScriptedPrompter(moves ...model.Location) *ScriptedPrompter {
	return &ScriptedPrompter{Moves: moves}
}

// RequestHumanMove returns the next queued move
func (p *ScriptedPrompter) RequestHumanMove(ctx context.Context, turn round.HumanTurn) (model.Location, error) {
	p.Turns = append(p.Turns, turn)
	if p.moveIndex < len(p.Moves) {
		loc := p.Moves[p.moveIndex]
		p.moveIndex++
		return loc, nil
	}
	if p.AutoPlay && len(turn.Choices) > 0 {
		return turn.Choices[0], nil
	}
	return 0, ErrScriptExhausted
}

// RequestContinueRound returns the next queued continue answer
func (p *ScriptedPrompter) RequestContinueRound(ctx context.Context) (bool, error) {
	p.ContinueRequests++
	if p.continueIndex >= len(p.ContinueAnswers) {
		return false, nil
	}
	answer := p.ContinueAnswers[p.continueIndex]
	p.continueIndex++
	return answer, nil
}

// RequestNewMatch returns the next queued new match answer
func (p *ScriptedPrompter) RequestNewMatch(ctx context.Context) (bool, error) {
	p.NewMatchRequests++
	if p.newMatchIndex >= len(p.NewMatchAnswers) {
		return false, nil
	}
	answer := p.NewMatchAnswers[p.newMatchIndex]
	p.newMatchIndex++
	return answer, nil
}

// QueueMoves adds human moves to the queue
func (p *ScriptedPrompter) QueueMoves(moves ...model.Location) {
	p.Moves = append(p.Moves, moves...)
}

// QueueContinue adds continue answers to the queue
func (p *ScriptedPrompter) QueueContinue(answers ...bool) {
	p.ContinueAnswers = append(p.ContinueAnswers, answers...)
}

// QueueNewMatch adds new match answers to the queue
func (p *ScriptedPrompter) QueueNewMatch(answers ...bool) {
	p.NewMatchAnswers = append(p.NewMatchAnswers, answers...)
}
