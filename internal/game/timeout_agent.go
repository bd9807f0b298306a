package game

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
)

// Timeout bounds how long a wrapped decision source may think. A missing
// decision becomes ErrDecisionTimeout, which the street treats as a fold.
type Timeout struct {
	agent Agent
	limit time.Duration
	clock quartz.Clock
}

// NewTimeout wraps agent with a decision deadline measured on clock. A nil
// clock uses the real one.
func NewTimeout(agent Agent, limit time.Duration, clock quartz.Clock) *Timeout {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Timeout{agent: agent, limit: limit, clock: clock}
}

type decisionResult struct {
	decision Decision
	err      error
}

// Decide waits for the wrapped agent or the deadline, whichever comes first.
func (t *Timeout) Decide(ctx context.Context, view View) (Decision, error) {
	if t.limit <= 0 {
		return t.agent.Decide(ctx, view)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan struct{})
	timer := t.clock.AfterFunc(t.limit, func() { close(expired) }, "decision")
	defer timer.Stop()

	done := make(chan decisionResult, 1)
	go func() {
		d, err := t.agent.Decide(ctx, view)
		done <- decisionResult{d, err}
	}()

	select {
	case r := <-done:
		return r.decision, r.err
	case <-expired:
		return Decision{}, fmt.Errorf("%w: %s after %s", ErrDecisionTimeout, view.Seat.Name, t.limit)
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}
