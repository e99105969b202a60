package state

import (
	"testing"

	"mystery-copilot/internal/card"
)

// setupThreePlayerGame builds a solveable three-player game: my hidden pair
// and both opponents' mysteries are known.
func setupThreePlayerGame() GameState {
	gs := NewGameStateWithNames([]string{"Ann", "Ben", "Cat"})

	me := gs.Players[0]
	me.Hidden = me.Hidden.WithCardOnLeft(card.Officer).WithCardOnRight(card.Knife)
	gs = gs.WithPlayer(0, me)

	ben := gs.Players[1]
	ben.Mystery = NewMysteryCardSet(card.Duke, card.Market, card.Crossbow)
	gs = gs.WithPlayer(1, ben)

	cat := gs.Players[2]
	cat.Mystery = NewMysteryCardSet(card.Countess, card.Park, card.Sword)
	gs = gs.WithPlayer(2, cat)

	return gs
}

func TestNewGameState(t *testing.T) {
	// GIVEN each supported player count
	tests := []struct {
		players    int
		informants int
		glasses    int
	}{
		{2, 8, 0},
		{3, 6, 1},
		{4, 4, 1},
		{5, 2, 1},
		{6, 0, 1},
	}

	for _, tc := range tests {
		// WHEN creating a fresh game
		gs := NewGameState(tc.players)

		// THEN the informant and magnifying glass counts follow the rules
		if gs.NumberOfInformants() != tc.informants {
			t.Errorf("%d players: expected %d informants, got %d",
				tc.players, tc.informants, gs.NumberOfInformants())
		}
		for _, p := range gs.Players {
			if p.MagnifyingGlasses != tc.glasses {
				t.Errorf("%d players: expected %d glasses, got %d",
					tc.players, tc.glasses, p.MagnifyingGlasses)
			}
		}
	}

	t.Run("it rejects out-of-range player counts", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected a panic for a 7 player game")
			}
		}()
		NewGameState(7)
	})
}

func TestIsSolveable(t *testing.T) {
	// GIVEN a fresh game with nothing known
	gs := NewGameStateWithNames([]string{"Ann", "Ben", "Cat"})

	// THEN it is not solveable
	if gs.IsSolveable() {
		t.Error("Expected a fresh game not to be solveable")
	}

	// WHEN my hidden pair and every opponent mystery are known
	gs = setupThreePlayerGame()

	// THEN it is solveable
	if !gs.IsSolveable() {
		t.Error("Expected the game to be solveable")
	}
}

func TestAppendingResolvesMagnifyingGlasses(t *testing.T) {
	// GIVEN a three-player game where glasses are tracked
	gs := setupThreePlayerGame()

	// WHEN Ben answers a question
	gs = gs.Appending(Inquisition{
		Ordinal:         0,
		AskingPlayer:    "Ann",
		AnsweringPlayer: "Ben",
		Filter:          card.CategoryFilter{Category: card.PersonMan},
		Count:           1,
	})

	// THEN Ben has earned a glass and nobody else changed
	ben, _ := gs.PlayerNamed("Ben")
	if ben.MagnifyingGlasses != 2 {
		t.Errorf("Expected Ben to hold 2 glasses, got %d", ben.MagnifyingGlasses)
	}
	ann, _ := gs.PlayerNamed("Ann")
	if ann.MagnifyingGlasses != 1 {
		t.Errorf("Expected Ann to hold 1 glass, got %d", ann.MagnifyingGlasses)
	}

	// WHEN Ben spends glasses on examinations, the counter floors at zero
	gs = gs.Appending(Examination{Ordinal: 1, Player: "Ben", Informant: "A"})
	gs = gs.Appending(Examination{Ordinal: 2, Player: "Ben", Informant: "B"})
	gs = gs.Appending(Examination{Ordinal: 3, Player: "Ben", Informant: "C"})
	ben, _ = gs.PlayerNamed("Ben")
	if ben.MagnifyingGlasses != 0 {
		t.Errorf("Expected Ben to hold 0 glasses, got %d", ben.MagnifyingGlasses)
	}
}

func TestRemovingReplaysTheLog(t *testing.T) {
	// GIVEN a game where Ben earned a glass and then spent one
	gs := setupThreePlayerGame()
	inquisition := Inquisition{
		Ordinal:         0,
		AskingPlayer:    "Ann",
		AnsweringPlayer: "Ben",
		Filter:          card.ColorFilter{Color: card.Red},
		Count:           2,
	}
	examination := Examination{Ordinal: 1, Player: "Ben", Informant: "A"}
	gs = gs.Appending(inquisition).Appending(examination)

	// WHEN the inquisition is removed
	gs = gs.Removing(inquisition)

	// THEN the log shrinks and the glass counters are replayed from scratch
	if len(gs.Actions) != 1 || gs.Actions[0] != Action(examination) {
		t.Fatalf("Expected only the examination to remain, got %v", gs.Actions)
	}
	ben, _ := gs.PlayerNamed("Ben")
	if ben.MagnifyingGlasses != 0 {
		t.Errorf("Expected Ben to hold 0 glasses after replay, got %d", ben.MagnifyingGlasses)
	}

	// AND removing an unknown action changes nothing
	unchanged := gs.Removing(Examination{Ordinal: 9, Player: "Cat", Informant: "B"})
	if len(unchanged.Actions) != 1 {
		t.Error("Expected removing an unlogged action to change nothing")
	}
}

func TestIsEarlierStateOf(t *testing.T) {
	// GIVEN a game and a later snapshot with one more action
	earlier := setupThreePlayerGame()
	later := earlier.Appending(Examination{Ordinal: 0, Player: "Ann", Informant: "A"})

	t.Run("a strict prefix qualifies", func(t *testing.T) {
		if !earlier.IsEarlierStateOf(later) {
			t.Error("Expected the shorter log to be an earlier state")
		}
	})

	t.Run("the relation is not reflexive", func(t *testing.T) {
		if earlier.IsEarlierStateOf(earlier) {
			t.Error("Expected a state not to be an earlier state of itself")
		}
	})

	t.Run("a different table disqualifies", func(t *testing.T) {
		other := NewGameStateWithNames([]string{"Ann", "Ben", "Cat"})
		if other.IsEarlierStateOf(later) {
			t.Error("Expected a game with different known cards not to qualify")
		}
	})
}

func TestPlayerHasBeenAsked(t *testing.T) {
	// GIVEN a logged question to Ben about red cards
	gs := setupThreePlayerGame().Appending(Inquisition{
		Ordinal:         0,
		AskingPlayer:    "Ann",
		AnsweringPlayer: "Ben",
		Filter:          card.ColorFilter{Color: card.Red},
		Count:           1,
	})

	// THEN the same question again is recognized
	if !gs.PlayerHasBeenAsked("Ben", card.ColorFilter{Color: card.Red}, card.SideNone) {
		t.Error("Expected the logged question to be recognized")
	}
	// AND other players or filters are not
	if gs.PlayerHasBeenAsked("Cat", card.ColorFilter{Color: card.Red}, card.SideNone) {
		t.Error("Expected a different answerer not to match")
	}
	if gs.PlayerHasBeenAsked("Ben", card.ColorFilter{Color: card.Blue}, card.SideNone) {
		t.Error("Expected a different filter not to match")
	}
}

func TestCardAccounting(t *testing.T) {
	gs := setupThreePlayerGame()

	t.Run("visible cards are my hidden pair plus opponent mysteries", func(t *testing.T) {
		visible := gs.CardsVisible("Ann")
		expected := card.NewSet(
			card.Officer, card.Knife,
			card.Duke, card.Market, card.Crossbow,
			card.Countess, card.Park, card.Sword,
		)
		if !visible.Equal(expected) {
			t.Errorf("Expected %v, got %v", expected.Sorted(), visible.Sorted())
		}
	})

	t.Run("initially unknown cards are the rest of the deck", func(t *testing.T) {
		unknown := gs.InitialUnknownCards()
		if len(unknown) != 21-8 {
			t.Errorf("Expected 13 unknown cards, got %d", len(unknown))
		}
	})

	t.Run("revealing an informant allocates its card", func(t *testing.T) {
		before := len(gs.UnallocatedCards())
		revealed := gs.WithSecretInformant(SecretInformant{Name: "A", Card: card.Maid})
		if len(revealed.UnallocatedCards()) != before-1 {
			t.Error("Expected the revealed card to leave the unallocated pool")
		}
		if !revealed.HasBeenInformed("A") {
			t.Error("Expected informant A to count as revealed")
		}
	})
}
