package bot

import (
	"context"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Strength thresholds for the heuristic.
const (
	StrongThreshold   = 0.85
	DecentThreshold   = 0.65
	MediocreThreshold = 0.40
)

// Heuristic plays by the quick strength of its cards: strong hands raise
// big, decent hands mix calls with small raises, mediocre hands check or call
// and weak hands check or fold.
type Heuristic struct {
	rng    *rand.Rand
	logger *log.Logger

	StrongRaise int // chips added over the current bet with a strong hand
	SmallRaise  int // chips added over the current bet with a decent hand
}

// NewHeuristic creates a heuristic bot with the default raise sizes.
func NewHeuristic(rng *rand.Rand, logger *log.Logger) *Heuristic {
	return &Heuristic{rng: rng, logger: logger, StrongRaise: 150, SmallRaise: 50}
}

func (h *Heuristic) Decide(_ context.Context, v game.View) (game.Decision, error) {
	cards := append(slices.Clone(v.Hole), v.Board...)
	strength := poker.QuickStrength(cards)
	d := h.decide(v, strength)

	h.logger.Debug("decision",
		"player", v.Seat.Name,
		"round", v.Round,
		"cards", poker.FormatCards(cards),
		"strength", strength,
		"to_call", v.ToCall,
		"decision", d)
	return d, nil
}

func (h *Heuristic) decide(v game.View, strength float64) game.Decision {
	switch {
	case strength > StrongThreshold:
		return aggress(v, v.HighestBet+h.StrongRaise, "strong hand")
	case strength > DecentThreshold:
		if h.rng.Float64() < 0.5 {
			return callOrCheck(v, "decent hand")
		}
		return aggress(v, v.HighestBet+h.SmallRaise, "decent hand, small raise")
	case strength > MediocreThreshold:
		return callOrCheck(v, "mediocre hand")
	default:
		return checkOrFold(v, "weak hand")
	}
}
