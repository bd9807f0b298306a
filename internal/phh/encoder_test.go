package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/poker"
)

func TestCards(t *testing.T) {
	if got := phh.Cards(poker.MustParseCards("Ah 10h 2c")); got != "AhTh2c" {
		t.Fatalf("Cards()=%q, want AhTh2c", got)
	}
	if got := phh.Cards([]poker.Card{{}}); got != "??" {
		t.Fatalf("Cards(invalid)=%q, want ??", got)
	}
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name      string
		seat      int
		ev        game.ActionEvent
		raises    bool
		want      string
		shouldUse bool
	}{
		{"fold", 0, game.ActionEvent{Kind: game.Fold}, false, "p1 f", true},
		{"check", 1, game.ActionEvent{Kind: game.Check}, false, "p2 cc", true},
		{"call", 3, game.ActionEvent{Kind: game.Call, StreetBet: 50}, false, "p4 cc", true},
		{"raise", 0, game.ActionEvent{Kind: game.Raise, StreetBet: 120}, true, "p1 cbr 120", true},
		{"bet", 1, game.ActionEvent{Kind: game.Bet, StreetBet: 40}, true, "p2 cbr 40", true},
		{"allin raise", 0, game.ActionEvent{Kind: game.AllInAction, StreetBet: 350}, true, "p1 cbr 350", true},
		{"allin call", 2, game.ActionEvent{Kind: game.AllInAction, StreetBet: 30}, false, "p3 cc", true},
		{"post sb", 0, game.ActionEvent{Kind: game.SmallBlind, StreetBet: 5}, false, "", false},
		{"post bb", 1, game.ActionEvent{Kind: game.BigBlind, StreetBet: 10}, false, "", false},
		{"unknown", 2, game.ActionEvent{Kind: game.ActionKind(99), StreetBet: 10}, false, "# p3 ActionKind(99) 10", true},
	}

	for _, tt := range tests {
		got, ok := phh.FormatAction(tt.seat, tt.ev, tt.raises)
		if ok != tt.shouldUse {
			t.Fatalf("%s: ok=%v want %v", tt.name, ok, tt.shouldUse)
		}
		if got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}

func TestEncodeHandHistory(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:           "NT",
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{200, 200, 200},
		Winnings:          []int{0, 0, 0},
		Actions: []string{
			"d dh p1 AhKh",
			"d dh p2 7c2d",
			"d dh p3 QsJs",
			"p1 cbr 6",
			"p2 f",
			"p3 cc",
		},
		Players:   []string{"alice-bot", "bob-bot", "charlie-bot"},
		HandID:    "hand-00042",
		Time:      "15:22:00",
		TimeZone:  "UTC",
		Day:       14,
		Month:     11,
		Year:      2025,
		Timestamp: time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := phh.Encode(&buf, hand); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	got := buf.String()
	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [200, 200, 200]\n" +
		"winnings = [0, 0, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"d dh p2 7c2d\", \"d dh p3 QsJs\", \"p1 cbr 6\", \"p2 f\", \"p3 cc\"]\n" +
		"players = [\"alice-bot\", \"bob-bot\", \"charlie-bot\"]\n" +
		"hand = \"hand-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"

	if got != want {
		t.Fatalf("Encode output mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func showdownHand() game.HandResult {
	return game.HandResult{
		ID:       "h1",
		Button:   0,
		Board:    poker.MustParseCards("2c 7d 9h Js 4d"),
		Showdown: true,
		Streets: []game.StreetResult{
			{Round: game.Preflop, Events: []game.ActionEvent{
				{Seat: 1, Name: "bob", Kind: game.SmallBlind, Staked: 5, StreetBet: 5},
				{Seat: 2, Name: "carol", Kind: game.BigBlind, Staked: 10, StreetBet: 10},
				{Seat: 0, Name: "alice", Kind: game.AllInAction, Staked: 100, StreetBet: 100, AllIn: true},
				{Seat: 1, Name: "bob", Kind: game.Call, Staked: 95, StreetBet: 100},
				{Seat: 2, Name: "carol", Kind: game.Fold},
			}},
			{Round: game.Flop},
			{Round: game.Turn},
			{Round: game.River},
		},
		Awards: []game.Award{{Amount: 210, Shares: []game.Share{{Seat: 0, Amount: 210}}, Contest: true}},
		Seats: []game.Seat{
			{ID: 0, Name: "alice", Stack: 210, HandBet: 100, Status: game.AllIn, Hole: poker.MustParseCards("As Ah")},
			{ID: 1, Name: "bob", Stack: 400, HandBet: 100, Status: game.Active, Hole: poker.MustParseCards("Ks Kh")},
			{ID: 2, Name: "carol", Stack: 290, HandBet: 10, Status: game.Folded, Hole: poker.MustParseCards("Qs Qh")},
		},
	}
}

func TestFromHand(t *testing.T) {
	at := time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC)
	h := phh.FromHand(showdownHand(), "main", at)

	assert.Equal(t, phh.Variant, h.Variant)
	assert.Equal(t, "main", h.Table)
	assert.Equal(t, 3, h.SeatCount)
	assert.Equal(t, []int{2, 3, 1}, h.Seats)
	assert.Equal(t, []string{"bob", "carol", "alice"}, h.Players)
	assert.Equal(t, []int{0, 0, 0}, h.Antes)
	assert.Equal(t, []int{5, 10, 0}, h.BlindsOrStraddles)
	assert.Equal(t, 10, h.MinBet)
	assert.Equal(t, []int{500, 300, 100}, h.StartingStacks)
	assert.Equal(t, []int{400, 290, 210}, h.FinishingStacks)
	assert.Equal(t, []int{0, 0, 210}, h.Winnings)
	assert.Equal(t, []string{
		"d dh p1 KsKh",
		"d dh p2 QsQh",
		"d dh p3 AsAh",
		"p3 cbr 100",
		"p1 cc",
		"p2 f",
		"d db 2c7d9h",
		"d db Js",
		"d db 4d",
		"p1 sm KsKh",
		"p3 sm AsAh",
	}, h.Actions)
	assert.Equal(t, []string{"2c", "7d", "9h", "Js", "4d"}, h.Board)
	assert.Equal(t, "15:22:00", h.Time)
	assert.Equal(t, 14, h.Day)
	assert.Equal(t, 11, h.Month)
	assert.Equal(t, 2025, h.Year)
}

func TestFromHandWithoutShowdown(t *testing.T) {
	result := game.HandResult{
		ID:     "fold",
		Button: 1,
		Streets: []game.StreetResult{{Round: game.Preflop, Events: []game.ActionEvent{
			{Seat: 1, Kind: game.SmallBlind, Staked: 1, StreetBet: 1},
			{Seat: 0, Kind: game.BigBlind, Staked: 2, StreetBet: 2},
			{Seat: 1, Kind: game.Fold},
		}}},
		Awards: []game.Award{{Amount: 3, Shares: []game.Share{{Seat: 0, Amount: 3}}}},
		Seats: []game.Seat{
			{ID: 0, Name: "bb", Stack: 101, HandBet: 2, Hole: poker.MustParseCards("7c 2d")},
			{ID: 1, Name: "btn", Stack: 99, HandBet: 1, Status: game.Folded, Hole: poker.MustParseCards("8c 3d")},
		},
	}

	h := phh.FromHand(result, "", time.Time{})
	// heads-up the big blind sits left of the button
	assert.Equal(t, []string{"bb", "btn"}, h.Players)
	assert.Equal(t, []int{2, 1}, h.BlindsOrStraddles)
	assert.Equal(t, []int{100, 100}, h.StartingStacks)
	assert.Equal(t, []string{"d dh p1 7c2d", "d dh p2 8c3d", "p2 f"}, h.Actions)
	assert.Empty(t, h.Time)
}

func TestEncodeFromHand(t *testing.T) {
	h := phh.FromHand(showdownHand(), "main", time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, h))
	want, err := phh.EncodeToBytes(h)
	require.NoError(t, err)
	assert.Equal(t, string(want), buf.String())
	assert.Contains(t, buf.String(), `variant = "NT"`)
	assert.Contains(t, buf.String(), `hand = "h1"`)
	assert.Contains(t, buf.String(), `"p3 cbr 100"`)
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, phh.Encode(&bytes.Buffer{}, nil))
}
