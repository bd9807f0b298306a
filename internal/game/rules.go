package game

import "fmt"

// IllegalPolicy decides what happens when a decision source proposes an
// illegal action.
type IllegalPolicy uint8

const (
	// IllegalRetry hands the rejection back to the source, which may try
	// again up to Rules.MaxAttempts times before the seat is folded.
	IllegalRetry IllegalPolicy = iota
	// IllegalReject aborts the street with the error.
	IllegalReject
	// IllegalFold folds the seat immediately.
	IllegalFold
)

var illegalPolicyNames = [...]string{"retry", "reject", "fold"}

func (p IllegalPolicy) String() string {
	if int(p) < len(illegalPolicyNames) {
		return illegalPolicyNames[p]
	}
	return fmt.Sprintf("IllegalPolicy(%d)", uint8(p))
}

// ParseIllegalPolicy maps a configuration value to a policy.
func ParseIllegalPolicy(s string) (IllegalPolicy, error) {
	for i, name := range illegalPolicyNames {
		if s == name {
			return IllegalPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown illegal action policy %q", s)
}

// OrphanPolicy decides what happens to a pot whose contributors all folded.
type OrphanPolicy uint8

const (
	// OrphanRefund returns each contributor its share of the pot.
	OrphanRefund OrphanPolicy = iota
	// OrphanError fails resolution with ErrNoEligibleWinner.
	OrphanError
)

var orphanPolicyNames = [...]string{"refund", "error"}

func (p OrphanPolicy) String() string {
	if int(p) < len(orphanPolicyNames) {
		return orphanPolicyNames[p]
	}
	return fmt.Sprintf("OrphanPolicy(%d)", uint8(p))
}

// ParseOrphanPolicy maps a configuration value to a policy.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	for i, name := range orphanPolicyNames {
		if s == name {
			return OrphanPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown orphan pot policy %q", s)
}

// Rules are the table's betting rules.
type Rules struct {
	SmallBlind      int
	BigBlind        int
	EnforceMinRaise bool
	ClampOverbets   bool
	BurnCards       bool
	IllegalPolicy   IllegalPolicy
	MaxAttempts     int
	OrphanPolicy    OrphanPolicy
}

// DefaultRules returns no-limit rules for the given blinds.
func DefaultRules(smallBlind, bigBlind int) Rules {
	return Rules{
		SmallBlind:      smallBlind,
		BigBlind:        bigBlind,
		EnforceMinRaise: true,
		ClampOverbets:   true,
		BurnCards:       true,
		IllegalPolicy:   IllegalRetry,
		MaxAttempts:     3,
		OrphanPolicy:    OrphanRefund,
	}
}

// Validate checks the rules are playable.
func (r Rules) Validate() error {
	if r.SmallBlind < 0 || r.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive (small %d, big %d)", r.SmallBlind, r.BigBlind)
	}
	if r.SmallBlind > r.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", r.SmallBlind, r.BigBlind)
	}
	if r.IllegalPolicy == IllegalRetry && r.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1 with the retry policy")
	}
	return nil
}

// minRaise is the opening raise increment for a street.
func (r Rules) minRaise() int {
	if r.BigBlind > 0 {
		return r.BigBlind
	}
	return 1
}

func (r Rules) attempts() int {
	if r.MaxAttempts < 1 {
		return 1
	}
	return r.MaxAttempts
}
