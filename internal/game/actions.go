package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Round is a betting street
type Round uint8

const (
	Preflop Round = iota
	Flop
	Turn
	River
	Showdown
)

func (r Round) String() string {
	if int(r) < len(roundNames) {
		return roundNames[r]
	}
	return fmt.Sprintf("Round(%d)", uint8(r))
}

var roundNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

// BoardSize is the number of community cards visible during a round.
func (r Round) BoardSize() int {
	switch r {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// ActionKind is what a seat did, or wants to do
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllInAction
	SmallBlind
	BigBlind
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise", "allin", "small blind", "big blind"}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(a))
}

// Decision is the answer of a decision source. For Bet and Raise, Amount is
// the seat's desired total bet for the street, not the increment.
type Decision struct {
	Kind   ActionKind
	Amount int
	Reason string
}

func (d Decision) String() string {
	switch d.Kind {
	case Bet, Raise:
		return fmt.Sprintf("%s %d", d.Kind, d.Amount)
	default:
		return d.Kind.String()
	}
}

// ParseDecision reads the textual commands accepted at an interactive seat:
// fold, check, call, bet N, raise N, allin (single letters f, k, c, b, r, a work too).
func ParseDecision(input string) (Decision, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return Decision{}, fmt.Errorf("empty command")
	}

	var kind ActionKind
	switch fields[0] {
	case "fold", "f":
		kind = Fold
	case "check", "k", "x":
		kind = Check
	case "call", "c":
		kind = Call
	case "bet", "b":
		kind = Bet
	case "raise", "r":
		kind = Raise
	case "allin", "all-in", "a", "shove":
		kind = AllInAction
	default:
		return Decision{}, fmt.Errorf("unknown command %q", fields[0])
	}

	if kind != Bet && kind != Raise {
		if len(fields) > 1 {
			return Decision{}, fmt.Errorf("%s takes no amount", kind)
		}
		return Decision{Kind: kind}, nil
	}
	if len(fields) != 2 {
		return Decision{}, fmt.Errorf("usage: %s <total>", kind)
	}
	amount, err := strconv.Atoi(fields[1])
	if err != nil || amount <= 0 {
		return Decision{}, fmt.Errorf("invalid amount %q", fields[1])
	}
	return Decision{Kind: kind, Amount: amount}, nil
}

// ActionEvent records one blind or action in the order it happened.
type ActionEvent struct {
	Seq       int
	Round     Round
	Seat      int
	Name      string
	Kind      ActionKind
	Staked    int // chips moved from the stack by this action
	StreetBet int // seat's total street bet afterwards
	AllIn     bool
	Clamped   bool // an overbet was reduced to the seat's stack
	Reason    string
}

func (e ActionEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Name, e.Kind)
	switch e.Kind {
	case Call, SmallBlind, BigBlind:
		fmt.Fprintf(&b, " %d", e.Staked)
	case Bet, Raise, AllInAction:
		fmt.Fprintf(&b, " to %d", e.StreetBet)
	}
	if e.AllIn && e.Kind != AllInAction {
		b.WriteString(" (all-in)")
	}
	return b.String()
}
