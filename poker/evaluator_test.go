package poker

import (
	"errors"
	"testing"
)

func mustEval(t *testing.T, s string) EvaluatedHand {
	t.Helper()
	h, err := Evaluate(MustParseCards(s))
	if err != nil {
		t.Fatalf("Evaluate(%s): %v", s, err)
	}
	return h
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category Category
		primary  string
		kickers  string
	}{
		{"royal flush", "As Ks Qs Js Ts 2d 3c", StraightFlush, "As Ks Qs Js Ts", ""},
		{"steel wheel", "5h 4h 3h 2h Ah Kd Kc", StraightFlush, "5h 4h 3h 2h Ah", ""},
		{"quads take top kicker", "9s 9h 9d 9c Ks 2d Ah", FourOfAKind, "9s 9h 9d 9c", "Ah"},
		{"full house", "Ks Kh Kd 2c 2s 7h 8d", FullHouse, "Ks Kh Kd 2s 2c", ""},
		{"two triples make a full house", "7s 7h 7d 4c 4s 4h Ad", FullHouse, "7s 7h 7d 4s 4c", ""},
		{"flush top five", "As 9s 7s 4s 2s 3s Kd", Flush, "As 9s 7s 4s 3s", ""},
		{"broadway straight", "As Kd Qh Jc Th 2s 3d", Straight, "As Kd Qh Jc Th", ""},
		{"wheel straight", "Ad 2c 3h 4s 5d 9c Jh", Straight, "5d 4s 3h 2c Ad", ""},
		{"six high over wheel", "Ad 2c 3h 4s 5d 6c Jh", Straight, "6c 5d 4s 3h 2c", ""},
		{"trips", "Qs Qh Qd 9c 5s 3h 2d", ThreeOfAKind, "Qs Qh Qd", "9c 5s"},
		{"two pair from three pairs", "Ks Kh 8d 8c 4s 4h 2d", TwoPair, "Ks Kh 8d 8c", "4s"},
		{"pair", "Js Jh As 9d 6c 4h 2s", Pair, "Js Jh", "As 9d 6c"},
		{"high card", "As Jd 9h 7c 5s 3d 2h", HighCard, "As", "Jd 9h 7c 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustEval(t, tt.cards)
			if h.Category != tt.category {
				t.Fatalf("category = %s, want %s (%s)", h.Category, tt.category, h)
			}
			if got := FormatCards(h.Primary); got != tt.primary {
				t.Errorf("primary = %q, want %q", got, tt.primary)
			}
			if got := FormatCards(h.Kickers); got != tt.kickers {
				t.Errorf("kickers = %q, want %q", got, tt.kickers)
			}
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []Card
	}{
		{"no cards", nil},
		{"four cards", MustParseCards("As Ks Qs Js")},
		{"eight cards", MustParseCards("As Ks Qs Js Ts 9s 8s 7s")},
		{"duplicate", MustParseCards("As As Qs Js Ts")},
		{"invalid card", []Card{{Rank: 1, Suit: Spades}, NewCard(Two, Hearts), NewCard(Three, Hearts), NewCard(Four, Hearts), NewCard(Five, Hearts)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(tt.cards); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestStraightOrdering(t *testing.T) {
	t.Parallel()
	wheel := mustEval(t, "Ah 2d 3c 4s 5h")
	sixHigh := mustEval(t, "2h 3d 4c 5s 6h")
	nineHigh := mustEval(t, "5h 6d 7c 8s 9h")
	trips := mustEval(t, "Ah Ad Ac Ks Qh")

	if !nineHigh.Beats(wheel) {
		t.Error("5-9 straight should beat the wheel")
	}
	if !sixHigh.Beats(wheel) {
		t.Error("6-high straight should beat the wheel")
	}
	if !wheel.Beats(trips) {
		t.Error("wheel should beat any non-straight category below it")
	}
	if wheel.Compare(mustEval(t, "As 2h 3d 4c 5c")) != 0 {
		t.Error("two wheels should split")
	}
}

func TestCategoryBoundaries(t *testing.T) {
	t.Parallel()
	fullHouse := mustEval(t, "2s 2h 2d 3c 3s")
	flush := mustEval(t, "As Ks Qs Js 9s")
	quads := mustEval(t, "2s 2h 2d 2c 3s")
	aceFullHouse := mustEval(t, "As Ah Ad Kc Ks")

	if !fullHouse.Beats(flush) {
		t.Error("full house should beat flush")
	}
	if !quads.Beats(aceFullHouse) {
		t.Error("quads should beat full house")
	}
}

func TestKickersBreakTies(t *testing.T) {
	t.Parallel()
	kingsAce := mustEval(t, "Ks Kh As 7d 4c")
	kingsQueen := mustEval(t, "Kd Kc Qs 7h 4s")
	if !kingsAce.Beats(kingsQueen) {
		t.Errorf("%s should beat %s", kingsAce, kingsQueen)
	}
	if kingsQueen.Compare(kingsAce) != -1 {
		t.Error("Compare should be antisymmetric")
	}

	// Full house is decided by the set, not by sorting all five cards
	threesFullOfAces := mustEval(t, "3s 3h 3d As Ah")
	twosFullOfAces := mustEval(t, "2s 2h 2d Ac Ad")
	kingsFull := mustEval(t, "Ks Kh Kd 2c 2s")
	if !kingsFull.Beats(threesFullOfAces) {
		t.Error("kings full should beat threes full of aces")
	}
	if !threesFullOfAces.Beats(twosFullOfAces) {
		t.Error("threes full should beat twos full")
	}

	// Two pair: second pair then kicker
	if !mustEval(t, "Ks Kh 9d 9c 2s").Beats(mustEval(t, "Kd Kc 8d 8c As")) {
		t.Error("second pair should decide before the kicker")
	}
	if !mustEval(t, "Ks Kh 9d 9c 3s").Beats(mustEval(t, "Kd Kc 9h 9s 2s")) {
		t.Error("kicker should decide equal two pair")
	}
}

func TestSuitsNeverBreakTies(t *testing.T) {
	t.Parallel()
	a := mustEval(t, "As Kh Qd Jc 9s 3h 2d")
	b := mustEval(t, "Ah Kd Qc Js 9h 3d 2c")
	if a.Compare(b) != 0 || b.Compare(a) != 0 {
		t.Errorf("hands differing only by suit should tie: %s vs %s", a, b)
	}
}

func TestBoardPlays(t *testing.T) {
	t.Parallel()
	board := MustParseCards("Ts Js Qs Ks As")
	p1 := append(MustParseCards("2h 3d"), board...)
	p2 := append(MustParseCards("9s 8s"), board...)
	cmp, err := CompareCards(p1, p2)
	if err != nil {
		t.Fatal(err)
	}
	if cmp != 0 {
		t.Errorf("royal flush on board should split, got %d", cmp)
	}
}

func TestCompareIsTransitive(t *testing.T) {
	t.Parallel()
	hands := []EvaluatedHand{
		mustEval(t, "As Jd 9h 7c 5s"),
		mustEval(t, "As Jd 9h 7c 4s"),
		mustEval(t, "2s 2d 9h 7c 5s"),
		mustEval(t, "Ks Kh 9d 9c 2s"),
		mustEval(t, "Qs Qh Qd 9c 5s"),
		mustEval(t, "Ah 2d 3c 4s 5h"),
		mustEval(t, "As 9s 7s 4s 2s"),
		mustEval(t, "2s 2h 2d 3c 3s"),
		mustEval(t, "9s 9h 9d 9c 2s"),
		mustEval(t, "5h 4h 3h 2h Ah"),
	}
	for i := range hands {
		if hands[i].Compare(hands[i]) != 0 {
			t.Errorf("hand %s should equal itself", hands[i])
		}
		for j := range hands {
			for k := range hands {
				if hands[i].Beats(hands[j]) && hands[j].Beats(hands[k]) && !hands[i].Beats(hands[k]) {
					t.Errorf("transitivity broken: %s > %s > %s", hands[i], hands[j], hands[k])
				}
			}
		}
	}
	// The list is ordered weakest to strongest, except the first two
	for i := 2; i < len(hands); i++ {
		if !hands[i].Beats(hands[i-1]) {
			t.Errorf("%s should beat %s", hands[i], hands[i-1])
		}
	}
	if !hands[0].Beats(hands[1]) {
		t.Errorf("%s should beat %s on the last kicker", hands[0], hands[1])
	}
}
