package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, v game.View) (game.Decision, error) {
	options := []game.Decision{{Kind: game.Fold, Reason: "rand-bot random action"}}
	if v.CanCheck() {
		options = append(options, game.Decision{Kind: game.Check, Reason: "rand-bot random action"})
	} else {
		options = append(options, game.Decision{Kind: game.Call, Reason: "rand-bot random action"})
	}
	if v.CanRaise() {
		// pick a random total between the minimum raise and all-in
		amount := v.MinRaiseTo + r.rng.IntN(v.MaxRaiseTo-v.MinRaiseTo+1)
		options = append(options, aggress(v, amount, "rand-bot random raise"))
	}

	d := options[r.rng.IntN(len(options))]
	r.logger.Debug("decision", "player", v.Seat.Name, "decision", d)
	return d, nil
}
