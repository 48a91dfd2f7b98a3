package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/services/round"
)

// ErrInputClosed is returned when input ends while a prompt is waiting
var ErrInputClosed = errors.New("input closed")

const clearScreen = "\033[H\033[2J"

// ConsoleOptions configures a Console
type ConsoleOptions struct {
	HumanName    string
	OpponentName string
	NoClear      bool
}

// Console plays the match over a line-oriented terminal. It answers the
// match's prompts from in and renders its events to out.
type Console struct {
	in      io.Reader
	out     io.Writer
	output  *Output
	options ConsoleOptions
	logger  *slog.Logger

	scores model.Scoreline

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan string
	readErr   error
	done      chan struct{}
	stopped   chan struct{}
}

var (
	_ match.Prompter  = (*Console)(nil)
	_ match.EventSink = (*Console)(nil)
)

// NewConsole creates a Console. Events are rendered as text, or as JSON lines
// when output is in JSON mode. In JSON mode the output's stdout carries
// nothing but JSON, so prompts and banners go to its error stream instead of out.
func NewConsole(in io.Reader, out io.Writer, output *Output, options ConsoleOptions, logger *slog.Logger) *Console {
	if output != nil && output.IsJSON() && output.errOut != nil {
		out = output.errOut
	}
	return &Console{
		in:      in,
		out:     out,
		output:  output,
		options: options,
		logger:  logger.With(slog.String("component", "console")),
		lines:   make(chan string),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Close stops the input reader. A read already blocked on in returns only
// when in yields a line or ends; the line is then dropped.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Welcome prints the opening banner
func (c *Console) Welcome() {
	c.clear()
	c.println("Welcome to Tic Tac Toe!")
	if name := c.options.HumanName; name != "" && name != "You" {
		c.printf("Good luck, %s.\n", name)
	}
	c.println("")
}

// Goodbye prints the closing banner
func (c *Console) Goodbye() {
	c.println("Thanks for playing Tic Tac Toe! Goodbye!")
}

// RequestHumanMove shows the board and reads a square until it is one of turn.Choices
func (c *Console) RequestHumanMove(ctx context.Context, turn round.HumanTurn) (model.Location, error) {
	if !c.jsonMode() {
		c.clear()
		c.displayBoard(turn.Board)
	}

	choices := make([]string, len(turn.Choices))
	for i, loc := range turn.Choices {
		choices[i] = strconv.Itoa(int(loc))
	}
	c.printf("Choose a square (%s):\n", strings.Join(choices, ", "))

	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if loc, ok := parseChoice(line, turn.Choices); ok {
			return loc, nil
		}
		c.logger.Debug("rejected move input", slog.String("input", line))
		c.println("Sorry, that's not a valid choice.")
	}
}

// RequestContinueRound asks whether to play another round
func (c *Console) RequestContinueRound(ctx context.Context) (bool, error) {
	yes, err := c.askYesNo(ctx, "Would you like to play next round? (y/n)")
	if err != nil {
		return false, err
	}
	if yes {
		c.playAgain()
	}
	return yes, nil
}

// RequestNewMatch asks whether to start over after a grand winner
func (c *Console) RequestNewMatch(ctx context.Context) (bool, error) {
	yes, err := c.askYesNo(ctx, "Would you like to start a new game? (y/n)")
	if err != nil {
		return false, err
	}
	if yes {
		c.playAgain()
	}
	return yes, nil
}

// Publish renders a match event
func (c *Console) Publish(ctx context.Context, event model.Event) error {
	if c.jsonMode() {
		c.output.PrintEvent(event)
		return nil
	}

	switch p := event.Payload.(type) {
	case model.MatchStartedPayload:
		c.scores = model.Scoreline{}
		c.printf("First to %d wins the match.\n", p.WinTarget)
		c.println("")
	case model.RoundStartedPayload:
		c.scores = p.Scores
	case model.RoundConcludedPayload:
		c.clear()
		c.displayBoard(p.Board)
		c.println(c.resultLine(p.Outcome))
		c.scores = p.Scores
	case model.MatchConcludedPayload:
		c.scores = p.Scores
		switch p.GrandWinner {
		case model.HumanMarker:
			c.println("The Grand Winner Is You!")
		case model.OpponentMarker:
			c.printf("The Grand Winner Is %s!\n", c.options.OpponentName)
		}
	}
	return nil
}

func (c *Console) resultLine(outcome model.RoundOutcome) string {
	switch outcome.Winner {
	case model.HumanMarker:
		return "You won!"
	case model.OpponentMarker:
		return c.options.OpponentName + " won!"
	default:
		return "It's a tie!"
	}
}

func (c *Console) displayBoard(board model.Snapshot) {
	c.printf("You're a %s. %s is a %s.\n", model.HumanMarker, c.options.OpponentName, model.OpponentMarker)
	c.printf("Your score: %d. %s's score: %d.\n", c.scores.Human, c.options.OpponentName, c.scores.Opponent)
	c.println("")
	c.println(RenderBoard(board))
}

// RenderBoard draws the board as a 3x3 ASCII grid
func RenderBoard(board model.Snapshot) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("-----+-----+-----\n")
		}
		b.WriteString("     |     |\n")
		first := model.Location(row*3 + 1)
		fmt.Fprintf(&b, "  %s  |  %s  |  %s\n", board.At(first), board.At(first+1), board.At(first+2))
		b.WriteString("     |     |\n")
	}
	return b.String()
}

func (c *Console) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		c.println(question)
		line, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.println("Sorry, must be y or n")
	}
}

func (c *Console) playAgain() {
	c.clear()
	c.println("Let's play again!")
	c.println("")
}

// readLine waits for the next line of input. Reading happens on its own
// goroutine so a cancelled context is noticed while a prompt is blocked.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.startOnce.Do(func() {
		go c.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", ErrInputClosed
	case line, ok := <-c.lines:
		if !ok {
			if c.readErr != nil {
				return "", fmt.Errorf("%w: %w", ErrInputClosed, c.readErr)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func (c *Console) scan() {
	defer close(c.stopped)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	c.readErr = scanner.Err()
	close(c.lines)
}

func (c *Console) jsonMode() bool {
	return c.output != nil && c.output.IsJSON()
}

func (c *Console) clear() {
	if !c.options.NoClear && !c.jsonMode() {
		fmt.Fprint(c.out, clearScreen)
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// parseChoice accepts a square number that is still free
func parseChoice(line string, choices []model.Location) (model.Location, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	loc := model.Location(n)
	for _, choice := range choices {
		if choice == loc {
			return loc, true
		}
	}
	return 0, false
}
