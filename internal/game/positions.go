package game

// MaxSeats is the largest table the position names cover.
const MaxSeats = 10

// Seats between the big blind and the button, filled from the cutoff
// backwards once UTG is taken.
var middlePositions = []string{"UTG1", "EP2", "MP", "MP2", "HJ", "CO"}

// PositionName names the seat offset places after the button at an n-handed
// table. Heads-up the button is also the small blind.
func PositionName(offset, n int) string {
	if n < 2 || n > MaxSeats {
		return ""
	}
	offset = ((offset % n) + n) % n
	if n == 2 {
		if offset == 0 {
			return "BTN"
		}
		return "BB"
	}
	switch offset {
	case 0:
		return "BTN"
	case 1:
		return "SB"
	case 2:
		return "BB"
	case 3:
		return "UTG"
	}
	middle := n - 4 // seats after UTG and before the button
	tail := middlePositions[len(middlePositions)-middle:]
	return tail[offset-4]
}

// Positions maps each seat ID to its position name for a hand.
func Positions(seats []*Seat, button int) map[int]string {
	n := len(seats)
	out := make(map[int]string, n)
	for i, seat := range seats {
		out[seat.ID] = PositionName(i-button, n)
	}
	return out
}
