package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextID(t *testing.T, s *Street) int {
	t.Helper()
	seat, ok := s.Next()
	require.True(t, ok, "expected a seat to act")
	return seat.ID
}

func TestHeadsUpCheckThenBetReopensAction(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000)
	s := NewStreet(Flop, seats, 1, DefaultRules(5, 10))

	require.Equal(t, 0, nextID(t, s), "big blind acts first after the flop")
	_, err := s.Apply(0, check())
	require.NoError(t, err)
	assert.Equal(t, StateMatched, s.State(0))
	assert.False(t, s.Done())

	ev, err := s.Apply(1, betTo(50))
	require.NoError(t, err)
	assert.Equal(t, Bet, ev.Kind)
	assert.Equal(t, 50, ev.Staked)
	assert.Equal(t, 50, s.HighestBet())
	assert.Equal(t, 1, s.LastAggressor())
	assert.Equal(t, StateToAct, s.State(0), "check before the bet does not close the action")

	_, err = s.Apply(0, check())
	require.ErrorIs(t, err, ErrIllegalAction)

	require.Equal(t, 0, nextID(t, s))
	_, err = s.Apply(0, call())
	require.NoError(t, err)
	assert.True(t, s.Done())

	res := s.Result()
	assert.Equal(t, 100, res.Pot)
	require.Len(t, res.Events, 3)
	assert.Equal(t, []ActionKind{Check, Bet, Call}, []ActionKind{res.Events[0].Kind, res.Events[1].Kind, res.Events[2].Kind})
}

func TestPreflopOrderAndBigBlindOption(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000, 1000, 1000)
	s := NewStreet(Preflop, seats, 0, DefaultRules(5, 10))
	events, err := s.PostBlinds(0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, SmallBlind, events[0].Kind)
	assert.Equal(t, 1, events[0].Seat)
	assert.Equal(t, BigBlind, events[1].Kind)
	assert.Equal(t, 2, events[1].Seat)
	assert.Equal(t, 10, s.HighestBet())

	_, err = s.Apply(1, call())
	require.ErrorIs(t, err, ErrIllegalAction, "small blind cannot act before UTG")

	for _, id := range []int{3, 0, 1} {
		require.Equal(t, id, nextID(t, s))
		_, err := s.Apply(id, call())
		require.NoError(t, err)
	}

	require.False(t, s.Done(), "big blind keeps the option")
	require.Equal(t, 2, nextID(t, s))
	_, err = s.Apply(2, check())
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Equal(t, 40, s.Pot())
}

func TestHeadsUpButtonPostsSmallBlindAndActsFirst(t *testing.T) {
	t.Parallel()
	seats := newSeats(500, 500)
	s := NewStreet(Preflop, seats, 0, DefaultRules(5, 10))
	_, err := s.PostBlinds(0)
	require.NoError(t, err)
	assert.Equal(t, 5, seats[0].StreetBet)
	assert.Equal(t, 10, seats[1].StreetBet)

	require.Equal(t, 0, nextID(t, s))
	_, err = s.Apply(0, call())
	require.NoError(t, err)
	require.Equal(t, 1, nextID(t, s))
	_, err = s.Apply(1, check())
	require.NoError(t, err)
	assert.True(t, s.Done())
}

func TestMinimumRaise(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000, 1000, 1000)
	s := NewStreet(Preflop, seats, 0, DefaultRules(5, 10))
	_, err := s.PostBlinds(0)
	require.NoError(t, err)

	_, err = s.Apply(3, raise(15))
	require.ErrorIs(t, err, ErrIllegalAction)
	_, err = s.Apply(3, raise(10))
	require.ErrorIs(t, err, ErrIllegalAction, "raise must exceed the current bet")

	ev, err := s.Apply(3, raise(30))
	require.NoError(t, err)
	assert.Equal(t, Raise, ev.Kind)
	assert.Equal(t, 20, s.MinRaise())

	_, err = s.Apply(0, raise(40))
	require.ErrorIs(t, err, ErrIllegalAction)
	_, err = s.Apply(0, raise(50))
	require.NoError(t, err)
	assert.Equal(t, 50, s.HighestBet())

	loose := DefaultRules(5, 10)
	loose.EnforceMinRaise = false
	s = NewStreet(Preflop, newSeats(1000, 1000, 1000), 0, loose)
	_, err = s.PostBlinds(0)
	require.NoError(t, err)
	_, err = s.Apply(0, raise(11))
	require.NoError(t, err)
}

func TestOverbetClampsToAllIn(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 100)
	s := NewStreet(Flop, seats, 1, DefaultRules(5, 10))
	_, err := s.Apply(0, betTo(50))
	require.NoError(t, err)

	ev, err := s.Apply(1, raise(500))
	require.NoError(t, err)
	assert.Equal(t, AllInAction, ev.Kind)
	assert.True(t, ev.Clamped)
	assert.True(t, ev.AllIn)
	assert.Equal(t, 100, ev.StreetBet)
	assert.Equal(t, AllIn, seats[1].Status)
	assert.Equal(t, 100, s.HighestBet())
	assert.Equal(t, StateToAct, s.State(0))
}

func TestShortRaiseBelowHighestBetRejected(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 50)
	s := NewStreet(Flop, seats, 1, DefaultRules(5, 10))
	_, err := s.Apply(0, betTo(100))
	require.NoError(t, err)

	_, err = s.Apply(1, raise(60))
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Equal(t, 50, seats[1].Stack, "rejected action must not move chips")
	assert.Equal(t, Active, seats[1].Status)

	ev, err := s.Apply(1, raise(50))
	require.NoError(t, err, "raising by the whole stack is a call for less")
	assert.Equal(t, AllInAction, ev.Kind)
	assert.False(t, ev.Clamped)
	assert.Equal(t, 50, ev.Staked)
	assert.Equal(t, 100, s.HighestBet())
}

func TestSeatStateString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "all-in", StateAllIn.String())
	assert.Equal(t, "SeatState(9)", SeatState(9).String())
}

func TestOverbetRejectedWithoutClamping(t *testing.T) {
	t.Parallel()
	rules := DefaultRules(5, 10)
	rules.ClampOverbets = false
	seats := newSeats(1000, 100)
	s := NewStreet(Flop, seats, 1, rules)

	_, err := s.Apply(0, betTo(500))
	require.NoError(t, err)
	_, err = s.Apply(1, raise(1000))
	require.ErrorIs(t, err, ErrInsufficientChips)
	assert.Equal(t, 100, seats[1].Stack, "rejected action must not move chips")
	assert.Equal(t, Active, seats[1].Status)

	ev, err := s.Apply(1, allIn())
	require.NoError(t, err)
	assert.Equal(t, 100, ev.Staked)
	assert.Equal(t, 500, s.HighestBet(), "all-in for less is a call")
	assert.True(t, s.Done())
}

func TestAllInAboveHighestBetReopensAction(t *testing.T) {
	t.Parallel()
	seats := newSeats(300, 1000, 1000)
	s := NewStreet(Flop, seats, 0, DefaultRules(5, 10))

	_, err := s.Apply(1, betTo(100))
	require.NoError(t, err)
	_, err = s.Apply(2, call())
	require.NoError(t, err)
	ev, err := s.Apply(0, allIn())
	require.NoError(t, err)
	assert.Equal(t, 300, ev.StreetBet)
	assert.Equal(t, 0, s.LastAggressor())
	assert.Equal(t, StateToAct, s.State(1))
	assert.Equal(t, StateToAct, s.State(2))

	_, err = s.Apply(1, call())
	require.NoError(t, err)
	_, err = s.Apply(2, fold())
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Equal(t, 700, s.Pot())
	assert.Equal(t, StateAllIn, s.State(0))
	assert.Equal(t, StateFolded, s.State(2))
}

func TestAllInForLessDoesNotReopen(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 60, 1000)
	s := NewStreet(Flop, seats, 2, DefaultRules(5, 10))

	_, err := s.Apply(0, betTo(100))
	require.NoError(t, err)
	_, err = s.Apply(1, allIn())
	require.NoError(t, err)
	assert.Equal(t, 100, s.HighestBet())
	assert.Equal(t, StateMatched, s.State(0), "short all-in leaves the bettor matched")

	_, err = s.Apply(2, call())
	require.NoError(t, err)
	assert.True(t, s.Done())
}

func TestCallWithNothingOwedIsIllegal(t *testing.T) {
	t.Parallel()
	s := NewStreet(Turn, newSeats(100, 100), 1, DefaultRules(5, 10))
	_, err := s.Apply(0, call())
	require.ErrorIs(t, err, ErrIllegalAction)
}

func TestCallShortStackGoesAllIn(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 40)
	s := NewStreet(River, seats, 1, DefaultRules(5, 10))
	_, err := s.Apply(0, betTo(100))
	require.NoError(t, err)
	ev, err := s.Apply(1, call())
	require.NoError(t, err)
	assert.Equal(t, 40, ev.Staked)
	assert.True(t, ev.AllIn)
	assert.True(t, s.Done())
}

func TestFoldToOneEndsStreet(t *testing.T) {
	t.Parallel()
	seats := newSeats(100, 100, 100)
	s := NewStreet(Flop, seats, 0, DefaultRules(5, 10))
	_, err := s.Apply(1, betTo(20))
	require.NoError(t, err)
	_, err = s.Apply(2, fold())
	require.NoError(t, err)
	_, err = s.Apply(0, fold())
	require.NoError(t, err)
	assert.True(t, s.Done())
	_, ok := s.Next()
	assert.False(t, ok)

	_, err = s.Apply(1, check())
	require.ErrorIs(t, err, ErrIllegalAction, "no action after the street ends")
}

func TestStreetWithOneActiveSeatNeedsNoAction(t *testing.T) {
	t.Parallel()
	seats := newSeats(0, 500)
	seats[0].Status = AllIn
	seats[0].HandBet = 100
	s := NewStreet(Turn, seats, 0, DefaultRules(5, 10))
	assert.True(t, s.Done())
}

func TestChipConservationViolationIsFatal(t *testing.T) {
	t.Parallel()
	seats := newSeats(100, 100)
	s := NewStreet(Flop, seats, 1, DefaultRules(5, 10))
	seats[1].Stack += 7

	_, err := s.Apply(0, check())
	require.ErrorIs(t, err, ErrChipConservation)
}

func TestEventSequenceNumbers(t *testing.T) {
	t.Parallel()
	s := NewStreet(Preflop, newSeats(100, 100), 0, DefaultRules(5, 10), WithFirstSeq(10))
	_, err := s.PostBlinds(0)
	require.NoError(t, err)
	_, err = s.Apply(0, fold())
	require.NoError(t, err)

	res := s.Result()
	require.Len(t, res.Events, 3)
	for i, ev := range res.Events {
		assert.Equal(t, 10+i, ev.Seq)
		assert.Equal(t, Preflop, ev.Round)
	}
	assert.Equal(t, 13, s.Seq())
}

func TestViewForActingSeat(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000, 25)
	s := NewStreet(Preflop, seats, 0, DefaultRules(5, 10))
	_, err := s.PostBlinds(0)
	require.NoError(t, err)

	v := s.View(0, nil)
	assert.Equal(t, 10, v.ToCall)
	assert.Equal(t, 15, v.Pot)
	assert.Equal(t, 20, v.MinRaiseTo)
	assert.Equal(t, 1000, v.MaxRaiseTo)
	assert.False(t, v.CanCheck())
	assert.Len(t, v.Seats, 3)

	short := s.View(2, nil)
	assert.Equal(t, 25, short.MaxRaiseTo)
	assert.Equal(t, 20, short.MinRaiseTo)
}

func TestRunRetriesIllegalDecisions(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000)
	s := NewStreet(Flop, seats, 1, DefaultRules(5, 10))

	var rejections []error
	second := NewScripted(check(), call())
	agents := map[int]Agent{
		0: NewScripted(betTo(50)),
		1: AgentFunc(func(ctx context.Context, v View) (Decision, error) {
			rejections = append(rejections, v.Rejected)
			return second.Decide(ctx, v)
		}),
	}

	res, err := s.Run(context.Background(), agents)
	require.NoError(t, err)
	require.Len(t, rejections, 2)
	assert.NoError(t, rejections[0])
	assert.ErrorIs(t, rejections[1], ErrIllegalAction)
	assert.Equal(t, 100, res.Pot)
	assert.Equal(t, Active, seats[1].Status)
}

func TestRunIllegalPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   IllegalPolicy
		script   []Decision
		wantErr  error
		wantFold bool
		unused   int
	}{
		{name: "retry then fold", policy: IllegalRetry, script: []Decision{check(), check(), check(), call()}, wantFold: true, unused: 1},
		{name: "fold at once", policy: IllegalFold, script: []Decision{check(), call()}, wantFold: true, unused: 1},
		{name: "reject", policy: IllegalReject, script: []Decision{check()}, wantErr: ErrIllegalAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules(5, 10)
			rules.IllegalPolicy = tt.policy
			rules.MaxAttempts = 3
			seats := newSeats(1000, 1000)
			s := NewStreet(Flop, seats, 1, rules)
			second := NewScripted(tt.script...)

			res, err := s.Run(context.Background(), map[int]Agent{0: NewScripted(betTo(50)), 1: second})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFold, seats[1].Status == Folded)
			assert.Equal(t, tt.unused, second.Remaining())
			last := res.Events[len(res.Events)-1]
			assert.Equal(t, Fold, last.Kind)
			assert.Contains(t, last.Reason, "cannot check")
		})
	}
}

func TestRunFoldsUnavailableDecisions(t *testing.T) {
	t.Parallel()
	seats := newSeats(1000, 1000, 1000)
	s := NewStreet(Flop, seats, 0, DefaultRules(5, 10))

	res, err := s.Run(context.Background(), map[int]Agent{
		1: NewScripted(betTo(40)),
		2: NewScripted(),
		// seat 0 has no decision source
	})
	require.NoError(t, err)
	assert.Equal(t, Folded, seats[2].Status)
	assert.Equal(t, Folded, seats[0].Status)
	require.Len(t, res.Events, 3)
	assert.Contains(t, res.Events[1].Reason, ErrNoDecision.Error())
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStreet(Flop, newSeats(100, 100), 1, DefaultRules(5, 10))
	_, err := s.Run(ctx, map[int]Agent{0: passive, 1: passive})
	assert.True(t, errors.Is(err, context.Canceled))
}
