package card

import (
	"testing"
)

func TestCardUniverse(t *testing.T) {
	// GIVEN the full card universe
	all := AllCards

	t.Run("it holds thirty cards", func(t *testing.T) {
		if len(all) != 30 {
			t.Fatalf("Expected 30 cards, got %d", len(all))
		}
	})

	t.Run("each category holds five cards", func(t *testing.T) {
		counts := make(map[Category]int)
		for _, c := range all {
			counts[c.Category()]++
		}
		for _, cat := range AllCategories {
			if counts[cat] != 5 {
				t.Errorf("Expected 5 %s cards, got %d", cat, counts[cat])
			}
		}
	})

	t.Run("each color holds one person, one location and one weapon", func(t *testing.T) {
		for _, col := range AllColors {
			people, locations, weapons := 0, 0, 0
			for _, c := range all {
				if c.Color() != col {
					continue
				}
				switch {
				case c.IsPerson():
					people++
				case c.IsLocation():
					locations++
				case c.IsWeapon():
					weapons++
				}
			}
			if people != 1 || locations != 1 || weapons != 1 {
				t.Errorf("Color %s has %d/%d/%d person/location/weapon cards", col, people, locations, weapons)
			}
		}
	})
}

func TestCardSet(t *testing.T) {
	// GIVEN each supported player count
	tests := []struct {
		players       int
		cards         int
		droppedColors []Color
	}{
		{2, 18, []Color{Orange, White, Brown, Gray}},
		{3, 21, []Color{White, Brown, Gray}},
		{4, 24, []Color{Brown, Gray}},
		{5, 27, []Color{Gray}},
		{6, 30, nil},
	}

	for _, tc := range tests {
		// WHEN building the deck for that count
		set := CardSet(tc.players)

		// THEN the size and the dropped colors match the rules
		if len(set) != tc.cards {
			t.Errorf("%d players: expected %d cards, got %d", tc.players, tc.cards, len(set))
		}
		for _, col := range tc.droppedColors {
			if len(set.Intersecting(CardsMatchingColor(col))) != 0 {
				t.Errorf("%d players: expected no %s cards in play", tc.players, col)
			}
		}
	}
}

func TestParse(t *testing.T) {
	// WHEN parsing names in mixed case and with padding
	if c, ok := Parse(" Officer "); !ok || c != Officer {
		t.Errorf("Expected Officer, got %q (ok=%v)", c, ok)
	}
	if c, ok := Parse("CANDLESTICK"); !ok || c != Candlestick {
		t.Errorf("Expected Candlestick, got %q (ok=%v)", c, ok)
	}

	// THEN unknown names are rejected
	if _, ok := Parse("zeppelin"); ok {
		t.Error("Expected 'zeppelin' to be rejected")
	}
}

func TestCardOrdering(t *testing.T) {
	// GIVEN the canonical card order
	all := AllCards

	// THEN adjacent cards never invert (color, category, name)
	for i := 1; i < len(all); i++ {
		if all[i].Less(all[i-1]) {
			t.Errorf("Cards %q and %q are out of order", all[i-1], all[i])
		}
	}

	// AND purple sorts before gray across the board
	if !Parlor.Less(Racecourse) {
		t.Error("Expected the purple location to sort before the gray one")
	}
	// AND within a color, people sort before locations and weapons
	if !Officer.Less(Parlor) || !Parlor.Less(Knife) {
		t.Error("Expected person < location < weapon within purple")
	}
}
