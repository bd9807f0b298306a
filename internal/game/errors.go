package game

import "errors"

var (
	// ErrIllegalAction is returned when a decision breaks the betting rules:
	// checking while chips are owed, betting below the current bet or the
	// minimum raise, or acting out of turn.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientChips is returned for stakes larger than the seat's stack
	// when overbets are not clamped to all-in.
	ErrInsufficientChips = errors.New("insufficient chips")

	// ErrNoEligibleWinner is returned when every contributor to a pot folded
	// and the orphan policy forbids refunds.
	ErrNoEligibleWinner = errors.New("no eligible winner")

	// ErrChipConservation marks a broken invariant. It is always fatal.
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrNoDecision is returned by a decision source that has nothing to say.
	ErrNoDecision = errors.New("no decision available")

	// ErrDecisionTimeout is returned when a seat fails to decide in time.
	ErrDecisionTimeout = errors.New("decision timed out")
)
