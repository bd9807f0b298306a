package phh

import (
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// Cards joins cards without separators, e.g. "AhKh", as PHH deal actions
// expect. Unknown cards are written as "??".
func Cards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		if !c.Valid() {
			b.WriteString("??")
			continue
		}
		b.WriteString(c.String())
	}
	return b.String()
}
