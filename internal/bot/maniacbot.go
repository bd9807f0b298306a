package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	d := m.decide(v)
	m.logger.Debug("decision", "player", v.Seat.Name, "decision", d)
	return d, nil
}

func (m *ManiacBot) decide(v game.View) game.Decision {
	shove := game.Decision{Kind: game.AllInAction, Reason: "maniac shove"}

	if v.CanCheck() {
		// maniacs prefer to bet
		if v.CanRaise() && m.rng.Float64() < 0.85 {
			if v.Seat.Stack <= 20*v.BigBlind || m.rng.Float64() < 0.3 {
				return shove
			}
			size := v.MinRaiseTo + (v.MaxRaiseTo-v.MinRaiseTo)*3/4
			return aggress(v, size, "maniac big raise")
		}
		return game.Decision{Kind: game.Check, Reason: "maniac checking"}
	}

	// facing a bet: 40% shove, 40% call, 20% fold
	roll := m.rng.Float64()
	if roll < 0.4 {
		shove.Reason = "maniac shove over bet"
		return shove
	}
	if roll < 0.8 {
		return game.Decision{Kind: game.Call, Reason: "maniac call"}
	}
	return game.Decision{Kind: game.Fold, Reason: "maniac fold"}
}
