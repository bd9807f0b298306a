package game

import (
	"fmt"

	"github.com/lox/holdem-engine/poker"
)

// Status is a seat's standing within the current hand
type Status uint8

const (
	Active Status = iota
	Folded
	AllIn
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Folded:
		return "folded"
	case AllIn:
		return "all-in"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Player is a participant as the table knows them between hands.
type Player struct {
	Seat  int
	Name  string
	Stack int
}

// Seat is a player's state during a hand. StreetBet resets every street,
// HandBet accumulates for the whole hand and feeds the pot allocator.
type Seat struct {
	ID        int
	Name      string
	Stack     int
	StreetBet int
	HandBet   int
	Status    Status
	Hole      []poker.Card
}

// NewSeat seats a player for a new hand.
func NewSeat(p Player) *Seat {
	return &Seat{ID: p.Seat, Name: p.Name, Stack: p.Stack}
}

// InHand reports whether the seat can still win chips.
func (s *Seat) InHand() bool { return s.Status != Folded }

// CanAct reports whether the seat may still make decisions.
func (s *Seat) CanAct() bool { return s.Status == Active }

// stake moves up to n chips from the stack into the current bets and returns
// how many moved. A seat that runs out of chips goes all-in.
func (s *Seat) stake(n int) int {
	if n > s.Stack {
		n = s.Stack
	}
	if n < 0 {
		n = 0
	}
	s.Stack -= n
	s.StreetBet += n
	s.HandBet += n
	if s.Stack == 0 && s.Status == Active {
		s.Status = AllIn
	}
	return n
}

func (s *Seat) String() string {
	return fmt.Sprintf("%s (seat %d, %d chips, %s)", s.Name, s.ID, s.Stack, s.Status)
}

// snapshot copies a seat, hole cards included.
func (s *Seat) snapshot() Seat {
	c := *s
	c.Hole = append([]poker.Card(nil), s.Hole...)
	return c
}
