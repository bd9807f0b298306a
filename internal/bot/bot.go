// Package bot provides computer controlled decision sources for seats.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Kinds lists the bot names accepted by New.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

var factories = map[string]func(rng *rand.Rand, logger *log.Logger) game.Agent{
	"heuristic": func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewHeuristic(rng, logger) },
	"call":      func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewCallingStation(logger) },
	"fold":      func(_ *rand.Rand, logger *log.Logger) game.Agent { return NewFoldBot(logger) },
	"random":    func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewRandBot(rng, logger) },
	"maniac":    func(rng *rand.Rand, logger *log.Logger) game.Agent { return NewManiacBot(rng, logger) },
}

// New creates a bot by name. Each bot gets its own prefixed logger.
func New(kind string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", kind, Kinds())
	}
	if rng == nil {
		panic("rng is required for bot creation")
	}
	return factory(rng, logger.WithPrefix(kind)), nil
}

func callOrCheck(v game.View, reason string) game.Decision {
	if v.CanCheck() {
		return game.Decision{Kind: game.Check, Reason: reason}
	}
	return game.Decision{Kind: game.Call, Reason: reason}
}

func checkOrFold(v game.View, reason string) game.Decision {
	if v.CanCheck() {
		return game.Decision{Kind: game.Check, Reason: reason}
	}
	return game.Decision{Kind: game.Fold, Reason: reason}
}

// aggress bets or raises to amount, bounded by the legal range. Amounts that
// reach the stack become an all-in.
func aggress(v game.View, amount int, reason string) game.Decision {
	if !v.CanRaise() {
		return callOrCheck(v, reason)
	}
	amount = max(amount, v.MinRaiseTo)
	if amount >= v.MaxRaiseTo {
		return game.Decision{Kind: game.AllInAction, Reason: reason}
	}
	kind := game.Raise
	if v.HighestBet == 0 {
		kind = game.Bet
	}
	return game.Decision{Kind: kind, Amount: amount, Reason: reason}
}
