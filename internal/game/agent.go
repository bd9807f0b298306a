package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/lox/holdem-engine/poker"
)

// SeatView is the public part of a seat.
type SeatView struct {
	ID        int
	Name      string
	Position  string
	Stack     int
	StreetBet int
	HandBet   int
	Status    Status
}

// View is the read-only table state handed to a decision source. Only the
// acting seat's hole cards are included.
type View struct {
	Seat       SeatView
	Hole       []poker.Card
	Seats      []SeatView
	Board      []poker.Card
	Round      Round
	HighestBet int
	ToCall     int
	MinRaiseTo int // smallest legal raise target, capped at MaxRaiseTo
	MaxRaiseTo int // street bet reached by going all-in
	Pot        int
	BigBlind   int

	// Rejected is the reason the previous decision from this seat was
	// refused, nil on the first attempt.
	Rejected error
}

// CanCheck reports whether checking is legal.
func (v View) CanCheck() bool { return v.ToCall == 0 }

// CanRaise reports whether the seat has chips beyond a call.
func (v View) CanRaise() bool { return v.MaxRaiseTo > v.HighestBet }

// Agent is a decision source for one seat. Implementations must not retain
// or modify the View's slices.
type Agent interface {
	Decide(ctx context.Context, view View) (Decision, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, view View) (Decision, error)

func (f AgentFunc) Decide(ctx context.Context, view View) (Decision, error) {
	return f(ctx, view)
}

// Scripted replays a fixed list of decisions, returning ErrNoDecision once
// the script runs out.
type Scripted struct {
	mu        sync.Mutex
	decisions []Decision
	next      int
}

// NewScripted creates a scripted decision source.
func NewScripted(decisions ...Decision) *Scripted {
	return &Scripted{decisions: decisions}
}

// Decide returns the next scripted decision.
func (s *Scripted) Decide(ctx context.Context, _ View) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.decisions) {
		return Decision{}, fmt.Errorf("%w: script exhausted after %d decisions", ErrNoDecision, len(s.decisions))
	}
	d := s.decisions[s.next]
	s.next++
	return d, nil
}

// Remaining returns the number of unused decisions.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions) - s.next
}
