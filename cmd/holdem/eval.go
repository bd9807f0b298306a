package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/poker"
)

type EvalCmd struct {
	Cards   []string `arg:"" help:"Cards to evaluate, e.g. As Kd Qh Jc Ts (1 to 7 cards, fewer than 5 only get a strength)"`
	Against string   `short:"a" help:"Cards to compare against, e.g. 'Ah Ad 2c 7d 9h'"`
	Plain   bool     `help:"Disable colours and suit symbols"`
}

func (c *EvalCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *EvalCmd) run(out io.Writer) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	printer := display.NewPrinter(out, c.Plain)

	switch {
	case len(cards) == 2:
		fmt.Fprintf(out, "%s %s, strength %.2f\n", printer.Cards(cards), poker.CategorizeHole(cards), poker.QuickStrength(cards))
		return nil
	case len(cards) < 5:
		fmt.Fprintf(out, "%s strength %.2f\n", printer.Cards(cards), poker.QuickStrength(cards))
		return nil
	}

	hand, err := poker.Evaluate(cards)
	if err != nil {
		return err
	}
	printer.Evaluation(cards, hand)
	fmt.Fprintf(out, "strength %.2f\n", poker.QuickStrength(cards))

	if c.Against == "" {
		return nil
	}
	other, err := poker.ParseCards(c.Against)
	if err != nil {
		return fmt.Errorf("against: %w", err)
	}
	otherHand, err := poker.Evaluate(other)
	if err != nil {
		return fmt.Errorf("against: %w", err)
	}
	printer.Evaluation(other, otherHand)

	switch hand.Compare(otherHand) {
	case 1:
		fmt.Fprintln(out, "first hand wins")
	case -1:
		fmt.Fprintln(out, "second hand wins")
	default:
		fmt.Fprintln(out, "split")
	}
	return nil
}
