// Package statistics accumulates per-seat hand outcomes measured in big
// blinds.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdem-engine/internal/game"
)

// BigPotBB is the pot size, in big blinds, counted as a big pot.
const BigPotBB = 50

// HandResult is one seat's outcome in a single hand.
type HandResult struct {
	Net            int     // chips won minus chips staked
	NetBB          float64 // Net in big blinds
	Position       string  // position name, e.g. "BTN"
	WentToShowdown bool    // seat was still in the hand at the end
	FinalPotSize   int     // every chip staked in the hand
	PotBB          float64 // FinalPotSize in big blinds
}

// Results converts a finished hand into one HandResult per seat.
func Results(hand game.HandResult, bigBlind int) map[int]HandResult {
	won := hand.Won()
	pot := 0
	for _, s := range hand.Seats {
		pot += s.HandBet
	}
	bb := float64(max(bigBlind, 1))

	out := make(map[int]HandResult, len(hand.Seats))
	for _, s := range hand.Seats {
		net := won[s.ID] - s.HandBet
		out[s.ID] = HandResult{
			Net:            net,
			NetBB:          float64(net) / bb,
			Position:       hand.Positions[s.ID],
			WentToShowdown: hand.Showdown && s.InHand(),
			FinalPotSize:   pot,
			PotBB:          float64(pot) / bb,
		}
	}
	return out
}

// PositionStats tracks results from one table position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks results across many hands
type Statistics struct {
	Hands  int
	Net    int       // chips
	SumBB  float64   // big blinds
	SumBB2 float64   // sum of squares for variance
	Values []float64 // every result for median and percentiles

	ShowdownWins    int     // hands won at showdown
	NonShowdownWins int     // hands won without showdown
	ShowdownBB      float64 // wins and losses at showdown
	NonShowdownBB   float64 // wins and losses without showdown
	AllBB           float64 // total for the ledger check

	Positions map[string]*PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int     // pots of at least BigPotBB
	BigPotsBB   float64 // results from big pots
}

// Mean returns the mean result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BB100 returns the win rate in big blinds per hundred hands
func (s *Statistics) BB100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates one hand result
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.Net += result.Net
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.Net > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if result.Position != "" {
		if s.Positions == nil {
			s.Positions = make(map[string]*PositionStats)
		}
		ps := s.Positions[result.Position]
		if ps == nil {
			ps = &PositionStats{}
			s.Positions[result.Position] = ps
		}
		ps.Hands++
		ps.SumBB += netBB
		ps.SumBB2 += netBB * netBB
	}

	if result.FinalPotSize > s.MaxPotChips {
		s.MaxPotChips = result.FinalPotSize
		s.MaxPotBB = result.PotBB
	}
	if result.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds o into s.
func (s *Statistics) Merge(o *Statistics) {
	s.Hands += o.Hands
	s.Net += o.Net
	s.SumBB += o.SumBB
	s.SumBB2 += o.SumBB2
	s.Values = append(s.Values, o.Values...)
	s.ShowdownWins += o.ShowdownWins
	s.NonShowdownWins += o.NonShowdownWins
	s.ShowdownBB += o.ShowdownBB
	s.NonShowdownBB += o.NonShowdownBB
	s.AllBB += o.AllBB

	for name, ps := range o.Positions {
		if s.Positions == nil {
			s.Positions = make(map[string]*PositionStats)
		}
		mine := s.Positions[name]
		if mine == nil {
			mine = &PositionStats{}
			s.Positions[name] = mine
		}
		mine.Hands += ps.Hands
		mine.SumBB += ps.SumBB
		mine.SumBB2 += ps.SumBB2
	}

	if o.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = o.MaxPotChips
		s.MaxPotBB = o.MaxPotBB
	}
	s.BigPots += o.BigPots
	s.BigPotsBB += o.BigPotsBB
}

// Median returns the median of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result from one position
func (s *Statistics) PositionMean(position string) float64 {
	ps := s.Positions[position]
	if ps == nil || ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks showdown and non-showdown results add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated data is consistent
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	if len(s.Positions) > 0 {
		total := 0
		for _, ps := range s.Positions {
			total += ps.Hands
		}
		if total != s.Hands {
			return fmt.Errorf("position hands total (%d) does not match total hands (%d)", total, s.Hands)
		}
	}
	return nil
}
