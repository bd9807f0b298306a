// Package game implements Texas Hold'em hands: the betting state machine, the
// side pot allocator and the orchestration that ties them to a deck and to
// decision sources.
//
// # Basic Usage
//
// Play a single hand with scripted seats:
//
//	players := []game.Player{{Seat: 0, Name: "Alice", Stack: 1000}, {Seat: 1, Name: "Bob", Stack: 1000}}
//	h := game.NewHand(randutil.New(42), players, 0, game.DefaultRules(5, 10))
//	result, err := h.Play(ctx, map[int]game.Agent{
//	    0: game.NewScripted(game.Decision{Kind: game.Call}),
//	    1: game.NewScripted(game.Decision{Kind: game.Check}),
//	})
//
// A Table plays consecutive hands, moving the button and removing busted
// players between them.
//
// # Architecture
//
// Hand delegates to specialised components:
//   - Street: one betting round, validating and applying decisions and
//     emitting an ordered ActionEvent log
//   - Allocator: layers the seats' cumulative bets into main and side pots
//     and resolves them with the poker evaluator
//   - Agent: the decision source for a seat (Scripted, Interactive, Timeout,
//     or the bots in internal/bot)
//
// Every hand is independent, so many hands can run concurrently as long as
// each has its own RNG.
package game
