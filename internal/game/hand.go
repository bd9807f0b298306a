package game

import (
	"context"
	"fmt"
	"io"
	"maps"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/poker"
)

// HandResult is everything that happened in a finished hand.
type HandResult struct {
	ID       string
	Button   int // seat ID holding the button
	Board    []poker.Card
	Streets  []StreetResult
	Pots     []Pot
	Awards   []Award
	Showdown bool   // two or more seats reached the end
	Seats    []Seat // final seat state, hole cards included

	Positions map[int]string // position name by seat ID
}

// Events flattens the action events of every street.
func (r HandResult) Events() []ActionEvent {
	var out []ActionEvent
	for _, s := range r.Streets {
		out = append(out, s.Events...)
	}
	return out
}

// Won returns the chips each seat collected from the pots.
func (r HandResult) Won() map[int]int {
	won := make(map[int]int)
	for _, a := range r.Awards {
		for _, s := range a.Shares {
			won[s.Seat] += s.Amount
		}
	}
	return won
}

// Hand runs a single hand from the blinds to the payout.
type Hand struct {
	ID string

	rules     Rules
	seats     []*Seat // table order
	button    int     // index into seats
	deck      *poker.Deck
	board     []poker.Card
	positions map[int]string
	allocator *Allocator
	logger    *log.Logger
	played    bool
}

// NewHand seats the players for a new hand. The RNG shuffles the deck unless
// WithDeck supplies one; it is required so every hand can be replayed.
//
//	rng := randutil.New(42)
//	h := game.NewHand(rng, players, 0, game.DefaultRules(5, 10))
//	result, err := h.Play(ctx, agents)
func NewHand(rng *rand.Rand, players []Player, button int, rules Rules, opts ...HandOption) *Hand {
	if rng == nil {
		panic("rng is required for hand creation")
	}
	if len(players) < 2 {
		panic("at least 2 players required")
	}
	if len(players) > MaxSeats {
		panic(fmt.Sprintf("at most %d players supported", MaxSeats))
	}
	if button < 0 || button >= len(players) {
		panic("button position out of range")
	}

	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.deck == nil {
		cfg.deck = poker.NewDeck(rng)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.id == "" {
		cfg.id = handid.New()
	}

	seen := make(map[int]bool, len(players))
	seats := make([]*Seat, len(players))
	for i, p := range players {
		if seen[p.Seat] {
			panic(fmt.Sprintf("duplicate seat %d", p.Seat))
		}
		if p.Stack <= 0 {
			panic(fmt.Sprintf("player %s has no chips", p.Name))
		}
		seen[p.Seat] = true
		seats[i] = NewSeat(p)
	}

	logger := cfg.logger.With("hand", cfg.id)
	return &Hand{
		ID:        cfg.id,
		rules:     rules,
		seats:     seats,
		button:    button,
		deck:      cfg.deck,
		positions: Positions(seats, button),
		allocator: NewAllocator(rules.OrphanPolicy, logger),
		logger:    logger,
	}
}

// Seats returns the hand's seats in table order.
func (h *Hand) Seats() []*Seat { return h.seats }

// Board returns the community cards dealt so far.
func (h *Hand) Board() []poker.Card { return h.board }

// Position returns the position name of a seat.
func (h *Hand) Position(seatID int) string { return h.positions[seatID] }

// Play deals the hand and runs every betting round, then pays the pots.
// A hand can only be played once.
func (h *Hand) Play(ctx context.Context, agents map[int]Agent) (HandResult, error) {
	if h.played {
		return HandResult{}, fmt.Errorf("hand %s already played", h.ID)
	}
	h.played = true

	before := h.chips()
	h.logger.Debug("starting hand", "players", len(h.seats), "button", h.seats[h.button].Name, "chips", before)

	if err := h.dealHoleCards(); err != nil {
		return HandResult{}, err
	}

	result := HandResult{ID: h.ID, Button: h.seats[h.button].ID, Positions: maps.Clone(h.positions)}
	seq := 0
	for round := Preflop; round <= River; round++ {
		if h.inHand() < 2 {
			break
		}
		if err := h.dealBoard(round); err != nil {
			return HandResult{}, err
		}

		street := NewStreet(round, h.seats, h.button, h.rules,
			WithBoard(h.board),
			WithFirstSeq(seq),
			WithPositions(h.positions),
			WithStreetLogger(h.logger))
		if round == Preflop {
			if _, err := street.PostBlinds(h.button); err != nil {
				return HandResult{}, err
			}
		}

		res, err := street.Run(ctx, agents)
		if err != nil {
			return HandResult{}, fmt.Errorf("%s: %w", round, err)
		}
		seq = street.Seq()
		result.Streets = append(result.Streets, res)
	}

	ordered := h.actionOrder()
	result.Board = append([]poker.Card(nil), h.board...)
	result.Showdown = h.inHand() > 1
	result.Pots = h.allocator.BuildPots(ordered)

	awards, err := h.allocator.ResolvePots(result.Pots, ordered, h.board)
	if err != nil {
		return HandResult{}, fmt.Errorf("resolve pots: %w", err)
	}
	if err := h.allocator.Distribute(awards, h.seats); err != nil {
		return HandResult{}, err
	}
	result.Awards = awards

	if after := h.chips(); after != before {
		return HandResult{}, fmt.Errorf("%w: hand %s started with %d chips, ended with %d", ErrChipConservation, h.ID, before, after)
	}

	for _, seat := range h.seats {
		result.Seats = append(result.Seats, seat.snapshot())
	}
	for _, a := range awards {
		h.logger.Info("pot awarded", "amount", a.Amount, "winners", a.Winners(), "hand", handLabel(a))
	}
	return result, nil
}

// dealHoleCards deals one card at a time around the table, twice, starting
// left of the button.
func (h *Hand) dealHoleCards() error {
	n := len(h.seats)
	for round := 0; round < 2; round++ {
		for k := 1; k <= n; k++ {
			seat := h.seats[(h.button+k)%n]
			cards, err := h.deck.DealHoleCards(1)
			if err != nil {
				return fmt.Errorf("deal hole cards: %w", err)
			}
			seat.Hole = append(seat.Hole, cards...)
		}
	}
	return nil
}

// dealBoard brings the board up to the size of the round.
func (h *Hand) dealBoard(round Round) error {
	need := round.BoardSize() - len(h.board)
	if need <= 0 {
		return nil
	}
	if h.rules.BurnCards {
		if err := h.deck.Burn(); err != nil {
			return fmt.Errorf("burn before %s: %w", round, err)
		}
	}
	cards, err := h.deck.DealCommunity(need)
	if err != nil {
		return fmt.Errorf("deal %s: %w", round, err)
	}
	h.board = append(h.board, cards...)
	h.logger.Debug("dealt", "round", round, "board", poker.FormatCards(h.board))
	return nil
}

// actionOrder lists seats starting left of the button.
func (h *Hand) actionOrder() []*Seat {
	n := len(h.seats)
	out := make([]*Seat, n)
	for k := range out {
		out[k] = h.seats[(h.button+1+k)%n]
	}
	return out
}

func (h *Hand) inHand() int {
	count := 0
	for _, seat := range h.seats {
		if seat.InHand() {
			count++
		}
	}
	return count
}

// chips counts the seats' stacks. Before the blinds and after the payout
// this is every chip in the hand.
func (h *Hand) chips() int {
	total := 0
	for _, seat := range h.seats {
		total += seat.Stack
	}
	return total
}

func handLabel(a Award) string {
	switch {
	case a.Refunded:
		return "refund"
	case !a.Contest:
		return "uncontested"
	default:
		return a.Hand.Category.String()
	}
}
