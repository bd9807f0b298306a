package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lox/holdem-engine/poker"
)

// Interactive reads decisions typed by a person. Lines are read on a
// background goroutine so a pending prompt can be abandoned when the context
// ends.
type Interactive struct {
	out   io.Writer
	in    io.Reader
	once  sync.Once
	lines chan string
	errs  chan error
}

// NewInteractive creates a prompt reading commands from in and writing
// prompts to out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: in, out: out}
}

func (a *Interactive) start() {
	a.lines = make(chan string)
	a.errs = make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			a.lines <- scanner.Text()
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		a.errs <- err
	}()
}

// Decide prompts until a syntactically valid command is entered. Whether the
// command is legal is left to the betting engine, which hands rejections
// back through View.Rejected.
func (a *Interactive) Decide(ctx context.Context, view View) (Decision, error) {
	a.once.Do(a.start)

	if view.Rejected != nil {
		fmt.Fprintf(a.out, "Rejected: %v\n", view.Rejected)
	}
	a.printView(view)

	for {
		fmt.Fprintf(a.out, "%s> ", view.Seat.Name)
		select {
		case <-ctx.Done():
			return Decision{}, ctx.Err()
		case err := <-a.errs:
			a.errs <- err
			return Decision{}, fmt.Errorf("%w: %v", ErrNoDecision, err)
		case line := <-a.lines:
			if strings.TrimSpace(line) == "" {
				continue
			}
			d, err := ParseDecision(line)
			if err != nil {
				fmt.Fprintf(a.out, "%v (fold, check, call, bet N, raise N, allin)\n", err)
				continue
			}
			return d, nil
		}
	}
}

func (a *Interactive) printView(v View) {
	board := "-"
	if len(v.Board) > 0 {
		board = prettyCards(v.Board)
	}
	fmt.Fprintf(a.out, "\n%s %s | board %s | pot %d\n", v.Round, v.Seat.Position, board, v.Pot)
	fmt.Fprintf(a.out, "hole %s | stack %d | to call %d", prettyCards(v.Hole), v.Seat.Stack, v.ToCall)
	if v.CanRaise() {
		fmt.Fprintf(a.out, " | raise %d-%d", v.MinRaiseTo, v.MaxRaiseTo)
	}
	fmt.Fprintln(a.out)
}

func prettyCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}
