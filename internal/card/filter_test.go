package card

import "testing"

func TestFilterCards(t *testing.T) {
	t.Run("a category filter matches its five cards", func(t *testing.T) {
		cards := CategoryFilter{Category: WeaponMelee}.Cards()
		if len(cards) != 5 {
			t.Fatalf("Expected 5 melee weapons, got %d", len(cards))
		}
		if !cards.Contains(Knife) || cards.Contains(Rifle) {
			t.Error("Melee filter matched the wrong cards")
		}
	})

	t.Run("a color filter matches its three cards", func(t *testing.T) {
		cards := ColorFilter{Color: Purple}.Cards()
		if !cards.Equal(NewSet(Officer, Parlor, Knife)) {
			t.Errorf("Expected the three purple cards, got %v", cards.Sorted())
		}
	})
}

func TestParseFilter(t *testing.T) {
	// WHEN parsing color and category names
	if f, ok := ParseFilter("purple"); !ok || f != (ColorFilter{Color: Purple}) {
		t.Errorf("Expected the purple filter, got %v (ok=%v)", f, ok)
	}
	if f, ok := ParseFilter("melee"); !ok || f != (CategoryFilter{Category: WeaponMelee}) {
		t.Errorf("Expected the melee filter, got %v (ok=%v)", f, ok)
	}

	// THEN anything else is rejected
	if _, ok := ParseFilter("fuchsia"); ok {
		t.Error("Expected 'fuchsia' to be rejected")
	}
}

func TestFilterLess(t *testing.T) {
	// GIVEN one filter of each kind
	purple := ColorFilter{Color: Purple}
	gray := ColorFilter{Color: Gray}
	men := CategoryFilter{Category: PersonMan}

	// THEN colors order canonically and sort before categories
	if !FilterLess(purple, gray) {
		t.Error("Expected purple < gray")
	}
	if !FilterLess(gray, men) {
		t.Error("Expected color filters to sort before category filters")
	}
	if FilterLess(men, men) {
		t.Error("Expected a filter not to sort before itself")
	}
}
