package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
)

// ErrTableFinished is returned when fewer than two players have chips left.
var ErrTableFinished = errors.New("fewer than two players with chips")

// Table plays consecutive hands with the same players, carrying stacks
// between hands, rotating the button and removing busted players.
type Table struct {
	rules   Rules
	rng     *rand.Rand
	logger  *log.Logger
	players []Player // seat order
	busted  []Player
	button  int // seat ID holding the button
	hands   int
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTableLogger sets the table's logger.
func WithTableLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithButton puts the first button on the given seat.
func WithButton(seat int) TableOption {
	return func(t *Table) { t.button = seat }
}

// NewTable seats the players. Seat numbers must be unique.
func NewTable(rng *rand.Rand, players []Player, rules Rules, opts ...TableOption) (*Table, error) {
	if rng == nil {
		panic("rng is required for table creation")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(players) < 2 || len(players) > MaxSeats {
		return nil, fmt.Errorf("table needs 2 to %d players, got %d", MaxSeats, len(players))
	}

	sorted := slices.Clone(players)
	slices.SortFunc(sorted, func(a, b Player) int { return a.Seat - b.Seat })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Seat == sorted[i-1].Seat {
			return nil, fmt.Errorf("seat %d assigned twice", sorted[i].Seat)
		}
	}

	t := &Table{
		rules:   rules,
		rng:     rng,
		logger:  log.New(io.Discard),
		players: sorted,
		button:  sorted[0].Seat,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Players returns the players still seated, in seat order.
func (t *Table) Players() []Player { return slices.Clone(t.players) }

// Busted returns the players removed after losing their stack, in the order
// they went out.
func (t *Table) Busted() []Player { return slices.Clone(t.busted) }

// HandsPlayed returns how many hands the table has completed.
func (t *Table) HandsPlayed() int { return t.hands }

// Button returns the seat holding the button for the next hand.
func (t *Table) Button() int { return t.button }

// Chips returns the total chips at the table.
func (t *Table) Chips() int {
	total := 0
	for _, p := range t.players {
		total += p.Stack
	}
	return total
}

// PlayHand plays one hand and moves the button on.
func (t *Table) PlayHand(ctx context.Context, agents map[int]Agent, opts ...HandOption) (HandResult, error) {
	if len(t.players) < 2 {
		return HandResult{}, ErrTableFinished
	}

	button := t.buttonIndex()
	opts = append([]HandOption{WithLogger(t.logger)}, opts...)
	hand := NewHand(t.rng, t.players, button, t.rules, opts...)

	result, err := hand.Play(ctx, agents)
	if err != nil {
		return HandResult{}, err
	}
	t.hands++

	stacks := make(map[int]int, len(result.Seats))
	for _, s := range result.Seats {
		stacks[s.ID] = s.Stack
	}
	remaining := t.players[:0]
	for _, p := range t.players {
		p.Stack = stacks[p.Seat]
		if p.Stack == 0 {
			t.logger.Info("player busted", "player", p.Name, "seat", p.Seat, "hand", t.hands)
			t.busted = append(t.busted, p)
			continue
		}
		remaining = append(remaining, p)
	}
	t.players = remaining
	t.advanceButton()
	return result, nil
}

// buttonIndex finds the button seat, or the next occupied seat after it.
func (t *Table) buttonIndex() int {
	for i, p := range t.players {
		if p.Seat >= t.button {
			return i
		}
	}
	return 0
}

// advanceButton moves the button to the next occupied seat.
func (t *Table) advanceButton() {
	if len(t.players) == 0 {
		return
	}
	for _, p := range t.players {
		if p.Seat > t.button {
			t.button = p.Seat
			return
		}
	}
	t.button = t.players[0].Seat
}
