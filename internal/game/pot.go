package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/poker"
)

// Pot represents one layer of the hand's chips, the main pot or a side pot
type Pot struct {
	Amount       int
	Threshold    int   // cumulative hand bet needed to contribute fully
	Contributors []int // seat IDs whose hand bet reached the threshold
	Eligible     []int // contributors that have not folded
}

// Share is one seat's part of an award.
type Share struct {
	Seat   int
	Amount int
}

// Award is the payout of a single pot.
type Award struct {
	Pot      int // index into the pots it was resolved from
	Amount   int
	Shares   []Share
	Hand     poker.EvaluatedHand // winning hand; zero value when uncontested
	Contest  bool                // decided by comparing hands
	Refunded bool                // every contributor had folded
}

// Winners returns the seat IDs receiving chips from the award.
func (a Award) Winners() []int {
	ids := make([]int, len(a.Shares))
	for i, s := range a.Shares {
		ids[i] = s.Seat
	}
	return ids
}

// Allocator splits contributions into pots and pays them out.
type Allocator struct {
	Orphans OrphanPolicy
	Logger  *log.Logger
}

// NewAllocator creates an allocator with the given orphan pot policy.
func NewAllocator(orphans OrphanPolicy, logger *log.Logger) *Allocator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Allocator{Orphans: orphans, Logger: logger}
}

// BuildPots layers the seats' hand bets. Every distinct positive hand bet is a
// level; the layer between two levels is funded by every seat that reached
// the upper one. Pots come back smallest threshold first, so the first pot is
// the main pot.
func (a *Allocator) BuildPots(seats []*Seat) []Pot {
	var levels []int
	for _, seat := range seats {
		if seat.HandBet > 0 {
			levels = append(levels, seat.HandBet)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{Threshold: level}
		for _, seat := range seats {
			if seat.HandBet < level {
				continue
			}
			pot.Contributors = append(pot.Contributors, seat.ID)
			if seat.InHand() {
				pot.Eligible = append(pot.Eligible, seat.ID)
			}
		}
		pot.Amount = (level - prev) * len(pot.Contributors)
		pots = append(pots, pot)
		prev = level
	}
	return pots
}

// MergePots joins adjacent pots contested by the same seats, so an uncalled
// bet or a blind above the last call stays part of the pot it sits on.
// The result has one main pot plus a side pot for every change in the
// eligible seats. BuildPots itself keeps every level.
func MergePots(pots []Pot) []Pot {
	merged := make([]Pot, 0, len(pots))
	for _, group := range potGroups(pots) {
		pot := pots[group[0]]
		pot.Contributors = slices.Clone(pot.Contributors)
		pot.Eligible = slices.Clone(pot.Eligible)
		for _, i := range group[1:] {
			pot.Amount += pots[i].Amount
			pot.Threshold = pots[i].Threshold
		}
		merged = append(merged, pot)
	}
	return merged
}

// MergeAwards joins the awards of pots that MergePots joins. Award.Pot of
// the result indexes into the merged pots.
func MergeAwards(awards []Award, pots []Pot) []Award {
	groupOf := make([]int, len(pots))
	for g, group := range potGroups(pots) {
		for _, i := range group {
			groupOf[i] = g
		}
	}

	var merged []Award
	for _, a := range awards {
		g := a.Pot
		if g >= 0 && g < len(groupOf) {
			g = groupOf[g]
		}
		if n := len(merged); n > 0 && merged[n-1].Pot == g {
			last := &merged[n-1]
			last.Amount += a.Amount
			last.Shares = addShares(last.Shares, a.Shares)
			if a.Contest && !last.Contest {
				last.Contest, last.Hand = true, a.Hand
			}
			last.Refunded = last.Refunded && a.Refunded
			continue
		}
		a.Pot = g
		a.Shares = slices.Clone(a.Shares)
		merged = append(merged, a)
	}
	return merged
}

// potGroups returns runs of adjacent pot indexes with equal eligible seats.
func potGroups(pots []Pot) [][]int {
	var groups [][]int
	for i, pot := range pots {
		if n := len(groups); n > 0 && slices.Equal(pots[groups[n-1][0]].Eligible, pot.Eligible) {
			groups[n-1] = append(groups[n-1], i)
			continue
		}
		groups = append(groups, []int{i})
	}
	return groups
}

func addShares(shares, more []Share) []Share {
	for _, m := range more {
		i := slices.IndexFunc(shares, func(s Share) bool { return s.Seat == m.Seat })
		if i < 0 {
			shares = append(shares, m)
			continue
		}
		shares[i].Amount += m.Amount
	}
	return shares
}

// ResolvePots decides who wins each pot. Ties split evenly; the odd chips go
// to the first winner in the order seats are supplied, so callers pass seats
// in action order starting left of the button.
func (a *Allocator) ResolvePots(pots []Pot, seats []*Seat, board []poker.Card) ([]Award, error) {
	byID := make(map[int]*Seat, len(seats))
	rank := make(map[int]int, len(seats))
	for i, seat := range seats {
		byID[seat.ID] = seat
		rank[seat.ID] = i
	}
	hands := make(map[int]poker.EvaluatedHand)

	awards := make([]Award, 0, len(pots))
	for pi, pot := range pots {
		if pot.Amount == 0 {
			continue
		}
		award := Award{Pot: pi, Amount: pot.Amount}

		eligible := slices.Clone(pot.Eligible)
		slices.SortFunc(eligible, func(x, y int) int { return rank[x] - rank[y] })

		switch len(eligible) {
		case 0:
			if a.Orphans == OrphanError {
				return nil, fmt.Errorf("%w: pot %d of %d chips", ErrNoEligibleWinner, pi, pot.Amount)
			}
			award.Refunded = true
			award.Shares = split(pot.Amount, pot.Contributors)
			a.Logger.Warn("refunding pot with no live contender", "pot", pi, "amount", pot.Amount, "contributors", pot.Contributors)

		case 1:
			award.Shares = []Share{{Seat: eligible[0], Amount: pot.Amount}}

		default:
			var best poker.EvaluatedHand
			var winners []int
			for _, id := range eligible {
				seat, ok := byID[id]
				if !ok {
					return nil, fmt.Errorf("pot %d: unknown seat %d", pi, id)
				}
				h, ok := hands[id]
				if !ok {
					var err error
					h, err = poker.Evaluate(append(slices.Clone(seat.Hole), board...))
					if err != nil {
						return nil, fmt.Errorf("evaluate seat %d: %w", id, err)
					}
					hands[id] = h
				}
				switch cmp := h.Compare(best); {
				case len(winners) == 0 || cmp > 0:
					best, winners = h, []int{id}
				case cmp == 0:
					winners = append(winners, id)
				}
			}
			award.Contest = true
			award.Hand = best
			award.Shares = split(pot.Amount, winners)
		}
		awards = append(awards, award)
	}
	return awards, nil
}

// split divides amount between seats, the remainder going to the first.
func split(amount int, seats []int) []Share {
	each := amount / len(seats)
	shares := make([]Share, len(seats))
	for i, id := range seats {
		shares[i] = Share{Seat: id, Amount: each}
	}
	shares[0].Amount += amount % len(seats)
	return shares
}

// Distribute credits the awards to the seats' stacks.
func (a *Allocator) Distribute(awards []Award, seats []*Seat) error {
	byID := make(map[int]*Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}
	for _, award := range awards {
		paid := 0
		for _, share := range award.Shares {
			seat, ok := byID[share.Seat]
			if !ok {
				return fmt.Errorf("award for pot %d names unknown seat %d", award.Pot, share.Seat)
			}
			seat.Stack += share.Amount
			paid += share.Amount
		}
		if paid != award.Amount {
			return fmt.Errorf("%w: pot %d paid %d of %d", ErrChipConservation, award.Pot, paid, award.Amount)
		}
	}
	return nil
}

// Total sums the pots.
func Total(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}
