package phh

import (
	"fmt"
	"time"

	"github.com/lox/holdem-engine/internal/game"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// FromHand builds the history of a finished hand. Players are numbered from
// the seat left of the button round to the button, so p1 posts the small
// blind at a full table.
func FromHand(result game.HandResult, table string, at time.Time) *HandHistory {
	n := len(result.Seats)
	button := 0
	for i, s := range result.Seats {
		if s.ID == result.Button {
			button = i
		}
	}
	order := make([]game.Seat, n)
	index := make(map[int]int, n)
	for i := range order {
		s := result.Seats[(button+1+i)%n]
		order[i] = s
		index[s.ID] = i
	}

	won := result.Won()
	h := &HandHistory{
		Variant:           Variant,
		Table:             table,
		SeatCount:         n,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		HandID:            result.ID,
		Timestamp:         at,
	}
	for i, s := range order {
		h.Seats = append(h.Seats, s.ID+1)
		h.Players = append(h.Players, s.Name)
		h.StartingStacks = append(h.StartingStacks, s.Stack+s.HandBet-won[s.ID])
		h.FinishingStacks = append(h.FinishingStacks, s.Stack)
		h.Winnings = append(h.Winnings, won[s.ID])
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, Cards(s.Hole)))
	}
	for _, c := range result.Board {
		h.Board = append(h.Board, c.String())
	}

	dealt := 0
	for _, street := range result.Streets {
		if size := min(street.Round.BoardSize(), len(result.Board)); size > dealt {
			h.Actions = append(h.Actions, "d db "+Cards(result.Board[dealt:size]))
			dealt = size
		}
		highest := 0
		for _, ev := range street.Events {
			p := index[ev.Seat]
			if ev.Kind == game.SmallBlind || ev.Kind == game.BigBlind {
				h.BlindsOrStraddles[p] = ev.Staked
				h.MinBet = max(h.MinBet, ev.Staked)
			}
			if action, ok := FormatAction(p, ev, ev.StreetBet > highest); ok {
				h.Actions = append(h.Actions, action)
			}
			highest = max(highest, ev.StreetBet)
		}
	}
	for _, street := range []game.Round{game.Flop, game.Turn, game.River} {
		if size := min(street.BoardSize(), len(result.Board)); size > dealt {
			h.Actions = append(h.Actions, "d db "+Cards(result.Board[dealt:size]))
			dealt = size
		}
	}

	if result.Showdown {
		for i, s := range order {
			if s.Status != game.Folded {
				h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", i+1, Cards(s.Hole)))
			}
		}
	}

	if !at.IsZero() {
		utc := at.UTC()
		h.Time = utc.Format(time.TimeOnly)
		h.TimeZone = "UTC"
		h.Day = utc.Day()
		h.Month = int(utc.Month())
		h.Year = utc.Year()
	}
	return h
}
