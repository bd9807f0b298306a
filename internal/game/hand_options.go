package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/poker"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	deck   *poker.Deck // overrides the RNG-shuffled deck
	logger *log.Logger
	id     string
}

// WithDeck uses the given deck instead of shuffling a new one. Stacked decks
// make hands fully scripted in tests.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithLogger sets the logger for the hand and its streets.
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}

// WithID sets the hand identifier instead of generating one.
func WithID(id string) HandOption {
	return func(c *handConfig) {
		c.id = id
	}
}
