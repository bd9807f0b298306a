package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck represents a standard 52-card deck. Cards are drawn without replacement
// until Reset reshuffles the full deck.
type Deck struct {
	cards   [52]Card
	order   []Card // Non-nil for stacked decks; dealt in this exact order
	next    int
	rng     *rand.Rand
	stacked bool
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{rng: rng}
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order. Reset and
// Shuffle only rewind it, which makes hands fully reproducible in tests.
func NewStackedDeck(cards []Card) *Deck {
	order := make([]Card, len(cards))
	copy(order, cards)
	return &Deck{order: order, stacked: true}
}

// Shuffle shuffles the deck using Fisher-Yates and rewinds it
func (d *Deck) Shuffle() {
	d.next = 0
	if d.stacked {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset reshuffles the full deck. Called once per hand.
func (d *Deck) Reset() {
	d.Shuffle()
}

func (d *Deck) size() int {
	if d.stacked {
		return len(d.order)
	}
	return len(d.cards)
}

func (d *Deck) at(i int) Card {
	if d.stacked {
		return d.order[i]
	}
	return d.cards[i]
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return d.size() - d.next
}

// Deal draws n cards from the top of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > d.size() {
		return nil, fmt.Errorf("cannot deal %d cards, %d remaining", n, d.CardsRemaining())
	}
	out := make([]Card, n)
	for i := range out {
		out[i] = d.at(d.next + i)
	}
	d.next += n
	return out, nil
}

// DealHoleCards draws n private cards
func (d *Deck) DealHoleCards(n int) ([]Card, error) {
	return d.Deal(n)
}

// DealCommunity draws n board cards
func (d *Deck) DealCommunity(n int) ([]Card, error) {
	return d.Deal(n)
}

// Burn discards the top card
func (d *Deck) Burn() error {
	_, err := d.Deal(1)
	return err
}
