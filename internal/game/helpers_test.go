package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/lox/holdem-engine/poker"
)

// newSeats creates seats with IDs 0..n-1 in table order.
func newSeats(stacks ...int) []*Seat {
	seats := make([]*Seat, len(stacks))
	for i, s := range stacks {
		seats[i] = &Seat{ID: i, Name: fmt.Sprintf("P%d", i), Stack: s}
	}
	return seats
}

func newPlayers(stacks ...int) []Player {
	players := make([]Player, len(stacks))
	for i, s := range stacks {
		players[i] = Player{Seat: i, Name: fmt.Sprintf("P%d", i), Stack: s}
	}
	return players
}

func check() Decision       { return Decision{Kind: Check} }
func call() Decision        { return Decision{Kind: Call} }
func fold() Decision        { return Decision{Kind: Fold} }
func allIn() Decision       { return Decision{Kind: AllInAction} }
func raise(to int) Decision { return Decision{Kind: Raise, Amount: to} }
func betTo(to int) Decision { return Decision{Kind: Bet, Amount: to} }

// passive checks when it can and calls otherwise.
var passive = AgentFunc(func(_ context.Context, v View) (Decision, error) {
	if v.ToCall > 0 {
		return call(), nil
	}
	return check(), nil
})

// stackedDeck arranges a deck so that seat i (table order) receives holes[i]
// when the button is at index button, followed by the five board cards.
// Burn cards are taken from unused cards.
func stackedDeck(t *testing.T, button int, holes []string, board string) *poker.Deck {
	t.Helper()
	n := len(holes)
	hole := make([][]poker.Card, n)
	used := make(map[poker.Card]bool)
	for i, h := range holes {
		hole[i] = poker.MustParseCards(h)
		for _, c := range hole[i] {
			used[c] = true
		}
	}
	boardCards := poker.MustParseCards(board)
	for _, c := range boardCards {
		used[c] = true
	}
	var burns []poker.Card
	for r := poker.Two; r <= poker.Ace && len(burns) < 3; r++ {
		for s := poker.Spades; s <= poker.Clubs && len(burns) < 3; s++ {
			if c := poker.NewCard(r, s); !used[c] {
				burns = append(burns, c)
			}
		}
	}

	var cards []poker.Card
	for pass := 0; pass < 2; pass++ {
		for k := 1; k <= n; k++ {
			cards = append(cards, hole[(button+k)%n][pass])
		}
	}
	cards = append(cards, burns[0])
	cards = append(cards, boardCards[:3]...)
	cards = append(cards, burns[1], boardCards[3], burns[2], boardCards[4])
	return poker.NewStackedDeck(cards)
}

func totalStacks(seats []*Seat) int {
	total := 0
	for _, s := range seats {
		total += s.Stack
	}
	return total
}
