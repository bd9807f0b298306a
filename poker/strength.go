package poker

// QuickStrength returns an approximate strength ratio in [0, 1] for a partial
// or complete card set. It is advisory input for decision heuristics only and
// is never used to settle pots.
//
//   - 2 cards: pairs score rank/14; otherwise (sum of ranks)/28, plus 0.10 when
//     suited and 0.05 for connectors, capped at 1.
//   - 5 or more cards: the evaluated category divided by 9.
//   - 1 card: rank/28, half of what the best partner could add.
//   - 3 or 4 cards: the best two-card score among the cards, lifted to the
//     three-of-a-kind floor when trips are already made.
func QuickStrength(cards []Card) float64 {
	switch n := len(cards); {
	case n == 0:
		return 0
	case n == 1:
		return float64(cards[0].Rank) / 28
	case n == 2:
		return holeStrength(cards[0], cards[1])
	case n >= 5:
		h, err := Evaluate(cards)
		if err != nil {
			return 0
		}
		return float64(h.Category) / float64(StraightFlush)
	}

	best := 0.0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if s := holeStrength(cards[i], cards[j]); s > best {
				best = s
			}
		}
	}
	groups := groupByRank(sortDesc(cards))
	if len(groups[0].cards) >= 3 {
		floor := float64(ThreeOfAKind) / float64(StraightFlush)
		if best < floor {
			best = floor
		}
	}
	return best
}

func holeStrength(a, b Card) float64 {
	v1, v2 := float64(a.Rank), float64(b.Rank)
	if a.Rank == b.Rank {
		return v1 / 14
	}
	score := (v1 + v2) / 28
	if a.Suit == b.Suit {
		score += 0.10
	}
	if gap := int(a.Rank) - int(b.Rank); gap == 1 || gap == -1 {
		score += 0.05
	}
	if score > 1 {
		score = 1
	}
	return score
}
