package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// CallingStation checks when it can and calls everything else, never folding
// and never raising.
type CallingStation struct {
	logger *log.Logger
}

// NewCallingStation creates a new CallingStation instance
func NewCallingStation(logger *log.Logger) *CallingStation {
	return &CallingStation{logger: logger}
}

func (c *CallingStation) Decide(_ context.Context, v game.View) (game.Decision, error) {
	d := callOrCheck(v, "calling station")
	c.logger.Debug("decision", "player", v.Seat.Name, "decision", d)
	return d, nil
}
