package poker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidInput is returned when a card set cannot be evaluated exactly
var ErrInvalidInput = errors.New("invalid input")

// Category is the hand class. Higher values beat lower values.
type Category uint8

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the best five-card hand found in a card set.
//
// Primary holds the cards that define the category ordered by significance:
// the largest rank group first (quads, trips, the higher pair), straights from
// their top card down with the wheel ordered 5-4-3-2-A. Kickers hold the
// remaining tie-break cards in descending rank order, only as many as needed.
type EvaluatedHand struct {
	Category Category
	Primary  []Card
	Kickers  []Card
}

// Cards returns the five cards making up the hand
func (h EvaluatedHand) Cards() []Card {
	out := make([]Card, 0, len(h.Primary)+len(h.Kickers))
	out = append(out, h.Primary...)
	return append(out, h.Kickers...)
}

func (h EvaluatedHand) String() string {
	var b strings.Builder
	b.WriteString(h.Category.String())
	b.WriteString(" [")
	b.WriteString(FormatCards(h.Primary))
	if len(h.Kickers) > 0 {
		b.WriteString(" | ")
		b.WriteString(FormatCards(h.Kickers))
	}
	b.WriteString("]")
	return b.String()
}

// Compare returns 1 if h beats o, -1 if o beats h and 0 when they split.
// Category decides first, then primary ranks, then kickers. Suits never matter.
func (h EvaluatedHand) Compare(o EvaluatedHand) int {
	if h.Category != o.Category {
		if h.Category > o.Category {
			return 1
		}
		return -1
	}
	if c := compareValues(h.primaryValues(), o.primaryValues()); c != 0 {
		return c
	}
	return compareValues(rankValues(h.Kickers), rankValues(o.Kickers))
}

// Beats reports whether h is strictly stronger than o
func (h EvaluatedHand) Beats(o EvaluatedHand) bool {
	return h.Compare(o) > 0
}

// primaryValues maps primary cards to comparable values; in straights the ace
// of a wheel counts as 1.
func (h EvaluatedHand) primaryValues() []int {
	if (h.Category == Straight || h.Category == StraightFlush) && len(h.Primary) > 0 {
		top := int(h.Primary[0].Rank)
		vals := make([]int, len(h.Primary))
		for i := range vals {
			vals[i] = top - i
		}
		return vals
	}
	return rankValues(h.Primary)
}

func rankValues(cards []Card) []int {
	vals := make([]int, len(cards))
	for i, c := range cards {
		vals[i] = int(c.Rank)
	}
	return vals
}

func compareValues(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}

// Evaluate returns the best hand that can be made from 5 to 7 cards.
// Every 5-card subset is classified and the strongest one is kept.
func Evaluate(cards []Card) (EvaluatedHand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return EvaluatedHand{}, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidInput, len(cards))
	}
	var seen [52]bool
	for _, c := range cards {
		if !c.Valid() {
			return EvaluatedHand{}, fmt.Errorf("%w: invalid card %v", ErrInvalidInput, c)
		}
		if seen[c.index()] {
			return EvaluatedHand{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		seen[c.index()] = true
	}

	var best EvaluatedHand
	found := false
	five := make([]Card, 5)
	n := len(cards)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						h := classify(five)
						if !found || h.Beats(best) {
							best = h
							found = true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is Evaluate for known-good input; it panics on error
func MustEvaluate(cards []Card) EvaluatedHand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// CompareCards evaluates two card sets and compares the results
func CompareCards(a, b []Card) (int, error) {
	ha, err := Evaluate(a)
	if err != nil {
		return 0, err
	}
	hb, err := Evaluate(b)
	if err != nil {
		return 0, err
	}
	return ha.Compare(hb), nil
}

type classifier func(sorted []Card) (EvaluatedHand, bool)

// precedence is the fixed order categories are tested in; the first match wins
var precedence = []classifier{
	straightFlush,
	fourOfAKind,
	fullHouse,
	flush,
	straight,
	threeOfAKind,
	twoPair,
	onePair,
}

func classify(cards []Card) EvaluatedHand {
	sorted := sortDesc(cards)
	for _, check := range precedence {
		if h, ok := check(sorted); ok {
			return h
		}
	}
	return highCard(sorted)
}

// sortDesc copies cards ordered by rank descending, suit ascending
func sortDesc(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].Suit < out[j].Suit
	})
	return out
}

type rankGroup struct {
	rank  Rank
	cards []Card
}

// groupByRank groups sorted cards, largest groups first then higher ranks
func groupByRank(sorted []Card) []rankGroup {
	var groups []rankGroup
	for _, c := range sorted {
		if n := len(groups); n > 0 && groups[n-1].rank == c.Rank {
			groups[n-1].cards = append(groups[n-1].cards, c)
			continue
		}
		groups = append(groups, rankGroup{rank: c.Rank, cards: []Card{c}})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// without returns sorted cards whose rank is not in exclude
func without(sorted []Card, exclude ...Rank) []Card {
	out := make([]Card, 0, len(sorted))
	for _, c := range sorted {
		skip := false
		for _, r := range exclude {
			if c.Rank == r {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

func take(cards []Card, n int) []Card {
	if n > len(cards) {
		n = len(cards)
	}
	out := make([]Card, n)
	copy(out, cards[:n])
	return out
}

// straightCards finds the highest run of five consecutive ranks, with the ace
// also playing low. One card per rank is used.
func straightCards(sorted []Card) ([]Card, bool) {
	var byRank [15]*Card
	for i := range sorted {
		c := &sorted[i]
		if byRank[c.Rank] == nil {
			byRank[c.Rank] = c
		}
	}
	byRank[1] = byRank[Ace]

	for top := int(Ace); top >= int(Five); top-- {
		run := true
		for r := top; r > top-5; r-- {
			if byRank[r] == nil {
				run = false
				break
			}
		}
		if !run {
			continue
		}
		out := make([]Card, 0, 5)
		for r := top; r > top-5; r-- {
			out = append(out, *byRank[r])
		}
		return out, true
	}
	return nil, false
}

func suitGroups(sorted []Card) [4][]Card {
	var bySuit [4][]Card
	for _, c := range sorted {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	return bySuit
}

func straightFlush(sorted []Card) (EvaluatedHand, bool) {
	var best EvaluatedHand
	found := false
	for _, suited := range suitGroups(sorted) {
		if len(suited) < 5 {
			continue
		}
		run, ok := straightCards(suited)
		if !ok {
			continue
		}
		h := EvaluatedHand{Category: StraightFlush, Primary: run}
		if !found || h.Beats(best) {
			best, found = h, true
		}
	}
	return best, found
}

func fourOfAKind(sorted []Card) (EvaluatedHand, bool) {
	groups := groupByRank(sorted)
	if len(groups[0].cards) < 4 {
		return EvaluatedHand{}, false
	}
	quad := groups[0]
	return EvaluatedHand{
		Category: FourOfAKind,
		Primary:  take(quad.cards, 4),
		Kickers:  take(without(sorted, quad.rank), 1),
	}, true
}

func fullHouse(sorted []Card) (EvaluatedHand, bool) {
	groups := groupByRank(sorted)
	if len(groups[0].cards) < 3 {
		return EvaluatedHand{}, false
	}
	set := groups[0]
	// Next best group of two or more, whether a second triple or a true pair
	var pair *rankGroup
	for i := 1; i < len(groups); i++ {
		g := &groups[i]
		if len(g.cards) < 2 {
			continue
		}
		if pair == nil || g.rank > pair.rank {
			pair = g
		}
	}
	if pair == nil {
		return EvaluatedHand{}, false
	}
	primary := append(take(set.cards, 3), take(pair.cards, 2)...)
	return EvaluatedHand{Category: FullHouse, Primary: primary}, true
}

func flush(sorted []Card) (EvaluatedHand, bool) {
	var best EvaluatedHand
	found := false
	for _, suited := range suitGroups(sorted) {
		if len(suited) < 5 {
			continue
		}
		h := EvaluatedHand{Category: Flush, Primary: take(suited, 5)}
		if !found || h.Beats(best) {
			best, found = h, true
		}
	}
	return best, found
}

func straight(sorted []Card) (EvaluatedHand, bool) {
	run, ok := straightCards(sorted)
	if !ok {
		return EvaluatedHand{}, false
	}
	return EvaluatedHand{Category: Straight, Primary: run}, true
}

func threeOfAKind(sorted []Card) (EvaluatedHand, bool) {
	groups := groupByRank(sorted)
	if len(groups[0].cards) != 3 {
		return EvaluatedHand{}, false
	}
	set := groups[0]
	return EvaluatedHand{
		Category: ThreeOfAKind,
		Primary:  take(set.cards, 3),
		Kickers:  take(without(sorted, set.rank), 2),
	}, true
}

func twoPair(sorted []Card) (EvaluatedHand, bool) {
	groups := groupByRank(sorted)
	if len(groups) < 2 || len(groups[0].cards) != 2 || len(groups[1].cards) != 2 {
		return EvaluatedHand{}, false
	}
	high, low := groups[0], groups[1]
	primary := append(take(high.cards, 2), take(low.cards, 2)...)
	return EvaluatedHand{
		Category: TwoPair,
		Primary:  primary,
		Kickers:  take(without(sorted, high.rank, low.rank), 1),
	}, true
}

func onePair(sorted []Card) (EvaluatedHand, bool) {
	groups := groupByRank(sorted)
	if len(groups[0].cards) != 2 {
		return EvaluatedHand{}, false
	}
	pair := groups[0]
	return EvaluatedHand{
		Category: Pair,
		Primary:  take(pair.cards, 2),
		Kickers:  take(without(sorted, pair.rank), 3),
	}, true
}

func highCard(sorted []Card) EvaluatedHand {
	return EvaluatedHand{
		Category: HighCard,
		Primary:  take(sorted, 1),
		Kickers:  take(sorted[1:], 4),
	}
}
