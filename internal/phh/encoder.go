package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts an action event to a PHH action string for player
// index p (0 based). raises reports whether an all-in put the seat above the
// street's highest bet. The boolean result is false for blind posts, which
// PHH records in blinds_or_straddles instead.
func FormatAction(p int, ev game.ActionEvent, raises bool) (string, bool) {
	player := fmt.Sprintf("p%d", p+1)
	switch ev.Kind {
	case game.Fold:
		return fmt.Sprintf("%s f", player), true
	case game.Check, game.Call:
		return fmt.Sprintf("%s cc", player), true
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s cbr %d", player, ev.StreetBet), true
	case game.AllInAction:
		if raises {
			return fmt.Sprintf("%s cbr %d", player, ev.StreetBet), true
		}
		return fmt.Sprintf("%s cc", player), true
	case game.SmallBlind, game.BigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, ev.Kind, ev.StreetBet), true
	}
}
