package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/poker"
)

// SeatState is a seat's progress through the current street
type SeatState uint8

const (
	StateToAct SeatState = iota
	StateMatched
	StateFolded
	StateAllIn
)

var seatStateNames = [...]string{"to act", "matched", "folded", "all-in"}

func (s SeatState) String() string {
	if int(s) < len(seatStateNames) {
		return seatStateNames[s]
	}
	return fmt.Sprintf("SeatState(%d)", uint8(s))
}

// StreetResult is what a finished street hands back to the hand.
type StreetResult struct {
	Round  Round
	Pot    int // chips staked during this street, blinds included
	Events []ActionEvent
}

// StreetOption configures a Street.
type StreetOption func(*Street)

// WithBoard sets the community cards shown to decision sources.
func WithBoard(board []poker.Card) StreetOption {
	return func(s *Street) { s.board = board }
}

// WithStreetLogger sets the logger for per-action traces.
func WithStreetLogger(logger *log.Logger) StreetOption {
	return func(s *Street) { s.logger = logger }
}

// WithFirstSeq numbers the street's events from seq.
func WithFirstSeq(seq int) StreetOption {
	return func(s *Street) { s.seq = seq }
}

// WithPositions labels seats in views, keyed by seat ID.
func WithPositions(positions map[int]string) StreetOption {
	return func(s *Street) { s.positions = positions }
}

// Street is the betting state machine for a single round. Seats are given in
// table order; the button is an index into that slice.
type Street struct {
	round     Round
	rules     Rules
	seats     []*Seat
	order     []int // indices into seats, in action order
	acted     []bool
	cursor    int // position in order to scan from for the next actor
	index     map[int]int
	board     []poker.Card
	positions map[int]string
	logger    *log.Logger

	highestBet    int
	minRaise      int
	lastAggressor int
	pot           int
	total         int // stacks plus street pot, constant for the street
	seq           int
	events        []ActionEvent
}

// NewStreet starts a betting round. Street bets are reset; hand bets carry
// over from earlier streets.
func NewStreet(round Round, seats []*Seat, button int, rules Rules, opts ...StreetOption) *Street {
	n := len(seats)
	if n < 2 {
		panic("a street needs at least 2 seats")
	}
	if button < 0 || button >= n {
		panic("button position out of range")
	}

	s := &Street{
		round:         round,
		rules:         rules,
		seats:         seats,
		acted:         make([]bool, n),
		index:         make(map[int]int, n),
		minRaise:      rules.minRaise(),
		lastAggressor: -1,
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, seat := range seats {
		if _, dup := s.index[seat.ID]; dup {
			panic(fmt.Sprintf("duplicate seat id %d", seat.ID))
		}
		s.index[seat.ID] = i
		seat.StreetBet = 0
		s.total += seat.Stack
	}

	first := firstToAct(round, n, button)
	s.order = make([]int, n)
	for i := range s.order {
		s.order[i] = (first + i) % n
	}
	return s
}

// firstToAct returns the index of the first seat to act. Preflop action
// starts three seats after the button, after the blinds; heads-up the button
// posts the small blind and acts first preflop, last afterwards.
func firstToAct(round Round, n, button int) int {
	switch {
	case n == 2 && round == Preflop:
		return button
	case round == Preflop:
		return (button + 3) % n
	default:
		return (button + 1) % n
	}
}

// blindSeats returns the indices of the small and big blind.
func blindSeats(n, button int) (sb, bb int) {
	if n == 2 {
		return button, (button + 1) % n
	}
	return (button + 1) % n, (button + 2) % n
}

// Round returns the street being bet.
func (s *Street) Round() Round { return s.round }

// HighestBet is the largest street bet of any seat.
func (s *Street) HighestBet() int { return s.highestBet }

// MinRaise is the current minimum raise increment.
func (s *Street) MinRaise() int { return s.minRaise }

// LastAggressor returns the seat ID of the last bettor or raiser, or -1.
func (s *Street) LastAggressor() int { return s.lastAggressor }

// Pot returns the chips staked so far this street.
func (s *Street) Pot() int { return s.pot }

// State reports a seat's progress through the street.
func (s *Street) State(seatID int) SeatState {
	i, ok := s.index[seatID]
	if !ok {
		return StateFolded
	}
	seat := s.seats[i]
	switch {
	case seat.Status == Folded:
		return StateFolded
	case seat.Status == AllIn:
		return StateAllIn
	case s.acted[i] && seat.StreetBet == s.highestBet:
		return StateMatched
	default:
		return StateToAct
	}
}

// PostBlind stakes a forced bet. Blinds do not count as acting, so the big
// blind keeps its option.
func (s *Street) PostBlind(seatID, amount int, kind ActionKind) (ActionEvent, error) {
	i, ok := s.index[seatID]
	if !ok {
		return ActionEvent{}, fmt.Errorf("%w: unknown seat %d", ErrIllegalAction, seatID)
	}
	seat := s.seats[i]
	if !seat.CanAct() {
		return ActionEvent{}, fmt.Errorf("%w: %s cannot post a blind while %s", ErrIllegalAction, seat.Name, seat.Status)
	}
	staked := seat.stake(amount)
	s.pot += staked
	if seat.StreetBet > s.highestBet {
		s.highestBet = seat.StreetBet
	}
	ev := s.record(seat, ActionEvent{Kind: kind, Staked: staked})
	return ev, s.checkConservation()
}

// PostBlinds posts the small and big blind for a preflop street.
func (s *Street) PostBlinds(button int) ([]ActionEvent, error) {
	sb, bb := blindSeats(len(s.seats), button)
	var events []ActionEvent
	if s.rules.SmallBlind > 0 {
		ev, err := s.PostBlind(s.seats[sb].ID, s.rules.SmallBlind, SmallBlind)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	ev, err := s.PostBlind(s.seats[bb].ID, s.rules.BigBlind, BigBlind)
	if err != nil {
		return nil, err
	}
	return append(events, ev), nil
}

// Next returns the seat whose turn it is, or false when the street is over.
func (s *Street) Next() (*Seat, bool) {
	if s.Done() {
		return nil, false
	}
	for k := range s.order {
		pos := (s.cursor + k) % len(s.order)
		i := s.order[pos]
		if s.needsAction(i) {
			return s.seats[i], true
		}
	}
	return nil, false
}

func (s *Street) needsAction(i int) bool {
	seat := s.seats[i]
	return seat.CanAct() && (!s.acted[i] || seat.StreetBet < s.highestBet)
}

// Done reports whether betting on this street has finished.
func (s *Street) Done() bool {
	inHand, active := 0, -1
	activeCount := 0
	for i, seat := range s.seats {
		if seat.InHand() {
			inHand++
		}
		if seat.CanAct() {
			activeCount++
			active = i
		}
	}
	if inHand <= 1 || activeCount == 0 {
		return true
	}
	if activeCount == 1 && s.seats[active].StreetBet >= s.highestBet {
		return true
	}
	for i := range s.seats {
		if s.needsAction(i) {
			return false
		}
	}
	return true
}

// Apply validates and executes a decision for the seat whose turn it is.
func (s *Street) Apply(seatID int, d Decision) (ActionEvent, error) {
	i, ok := s.index[seatID]
	if !ok {
		return ActionEvent{}, fmt.Errorf("%w: unknown seat %d", ErrIllegalAction, seatID)
	}
	seat := s.seats[i]
	if !seat.CanAct() {
		return ActionEvent{}, fmt.Errorf("%w: %s is %s", ErrIllegalAction, seat.Name, seat.Status)
	}
	next, ok := s.Next()
	if !ok {
		return ActionEvent{}, fmt.Errorf("%w: %s betting is complete", ErrIllegalAction, s.round)
	}
	if next.ID != seatID {
		return ActionEvent{}, fmt.Errorf("%w: %s acted out of turn, waiting on %s", ErrIllegalAction, seat.Name, next.Name)
	}

	toCall := s.highestBet - seat.StreetBet
	ev := ActionEvent{Kind: d.Kind, Reason: d.Reason}

	switch d.Kind {
	case Fold:
		seat.Status = Folded

	case Check:
		if toCall > 0 {
			return ActionEvent{}, fmt.Errorf("%w: %s cannot check facing %d", ErrIllegalAction, seat.Name, toCall)
		}

	case Call:
		if toCall == 0 {
			return ActionEvent{}, fmt.Errorf("%w: %s has nothing to call", ErrIllegalAction, seat.Name)
		}
		ev.Staked = seat.stake(toCall)

	case Bet, Raise:
		need := d.Amount - seat.StreetBet
		switch {
		// only a bet of the exact stack may fall short of the highest bet
		case d.Amount <= s.highestBet && need != seat.Stack:
			return ActionEvent{}, fmt.Errorf("%w: %s must bet more than %d", ErrIllegalAction, seat.Name, s.highestBet)
		case need > seat.Stack && !s.rules.ClampOverbets:
			return ActionEvent{}, fmt.Errorf("%w: %s bet to %d needs %d, has %d", ErrInsufficientChips, seat.Name, d.Amount, need, seat.Stack)
		case need >= seat.Stack:
			ev.Clamped = need > seat.Stack
			ev.Kind = AllInAction
			ev.Staked = s.shove(i)
		case s.rules.EnforceMinRaise && d.Amount < s.highestBet+s.minRaise:
			return ActionEvent{}, fmt.Errorf("%w: %s minimum raise is to %d", ErrIllegalAction, seat.Name, s.highestBet+s.minRaise)
		default:
			ev.Kind = Raise
			if s.highestBet == 0 {
				ev.Kind = Bet
			}
			ev.Staked = seat.stake(need)
			s.raiseTo(i)
		}

	case AllInAction:
		ev.Staked = s.shove(i)

	default:
		return ActionEvent{}, fmt.Errorf("%w: %s is not a betting action", ErrIllegalAction, d.Kind)
	}

	s.pot += ev.Staked
	s.acted[i] = true
	s.cursor = s.positionOf(i) + 1
	ev = s.record(seat, ev)
	return ev, s.checkConservation()
}

// shove puts a seat all-in. Going above the highest bet is a raise and
// reopens the action; otherwise it is a call for less.
func (s *Street) shove(i int) int {
	staked := s.seats[i].stake(s.seats[i].Stack)
	if s.seats[i].StreetBet > s.highestBet {
		s.raiseTo(i)
	}
	return staked
}

// raiseTo makes seat i the aggressor at its current street bet.
func (s *Street) raiseTo(i int) {
	seat := s.seats[i]
	if inc := seat.StreetBet - s.highestBet; inc >= s.minRaise {
		s.minRaise = inc
	}
	s.highestBet = seat.StreetBet
	s.lastAggressor = seat.ID
	for j := range s.acted {
		if j != i && s.seats[j].CanAct() {
			s.acted[j] = false
		}
	}
}

func (s *Street) positionOf(i int) int {
	for pos, idx := range s.order {
		if idx == i {
			return pos
		}
	}
	return 0
}

func (s *Street) record(seat *Seat, ev ActionEvent) ActionEvent {
	ev.Seq = s.seq
	s.seq++
	ev.Round = s.round
	ev.Seat = seat.ID
	ev.Name = seat.Name
	ev.StreetBet = seat.StreetBet
	ev.AllIn = seat.Status == AllIn
	s.events = append(s.events, ev)
	s.logger.Debug("action", "round", s.round, "seat", seat.ID, "player", seat.Name,
		"action", ev.Kind, "staked", ev.Staked, "street_bet", ev.StreetBet, "stack", seat.Stack)
	return ev
}

func (s *Street) checkConservation() error {
	stacks, bets := 0, 0
	for _, seat := range s.seats {
		stacks += seat.Stack
		bets += seat.StreetBet
	}
	if stacks+s.pot != s.total || bets != s.pot {
		return fmt.Errorf("%w: %s stacks %d + pot %d != %d (street bets %d)",
			ErrChipConservation, s.round, stacks, s.pot, s.total, bets)
	}
	return nil
}

// Seq is the sequence number the next event will get.
func (s *Street) Seq() int { return s.seq }

// Result summarises the street so far.
func (s *Street) Result() StreetResult {
	return StreetResult{
		Round:  s.round,
		Pot:    s.pot,
		Events: append([]ActionEvent(nil), s.events...),
	}
}

// View builds the decision view for a seat.
func (s *Street) View(seatID int, rejected error) View {
	v := View{
		Board:      s.board,
		Round:      s.round,
		HighestBet: s.highestBet,
		BigBlind:   s.rules.BigBlind,
		Rejected:   rejected,
	}
	for _, seat := range s.seats {
		sv := s.seatView(seat)
		v.Seats = append(v.Seats, sv)
		v.Pot += seat.HandBet
		if seat.ID == seatID {
			v.Seat = sv
			v.Hole = append([]poker.Card(nil), seat.Hole...)
			v.ToCall = max(s.highestBet-seat.StreetBet, 0)
			v.MaxRaiseTo = seat.StreetBet + seat.Stack
			v.MinRaiseTo = min(s.highestBet+s.minRaise, v.MaxRaiseTo)
		}
	}
	return v
}

func (s *Street) seatView(seat *Seat) SeatView {
	return SeatView{
		ID:        seat.ID,
		Name:      seat.Name,
		Position:  s.positions[seat.ID],
		Stack:     seat.Stack,
		StreetBet: seat.StreetBet,
		HandBet:   seat.HandBet,
		Status:    seat.Status,
	}
}

// Run asks decision sources for actions until the street is complete. Seats
// without an agent fold.
func (s *Street) Run(ctx context.Context, agents map[int]Agent) (StreetResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		seat, ok := s.Next()
		if !ok {
			return s.Result(), nil
		}
		if err := s.act(ctx, seat, agents[seat.ID]); err != nil {
			return s.Result(), err
		}
	}
}

func (s *Street) act(ctx context.Context, seat *Seat, agent Agent) error {
	if agent == nil {
		return s.forceFold(seat, "no decision source")
	}

	var rejected error
	for attempt := 1; ; attempt++ {
		d, err := agent.Decide(ctx, s.View(seat.ID, rejected))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Warn("decision unavailable, folding", "seat", seat.ID, "player", seat.Name, "err", err)
			return s.forceFold(seat, err.Error())
		}

		_, err = s.Apply(seat.ID, d)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrChipConservation) {
			return err
		}

		s.logger.Debug("rejected decision", "seat", seat.ID, "player", seat.Name, "decision", d, "attempt", attempt, "err", err)
		switch s.rules.IllegalPolicy {
		case IllegalReject:
			return err
		case IllegalFold:
			return s.forceFold(seat, err.Error())
		default:
			if attempt >= s.rules.attempts() {
				return s.forceFold(seat, err.Error())
			}
			rejected = err
		}
	}
}

func (s *Street) forceFold(seat *Seat, reason string) error {
	_, err := s.Apply(seat.ID, Decision{Kind: Fold, Reason: reason})
	return err
}
