package state

import (
	"encoding/json"
	"fmt"
	"sort"

	"mystery-copilot/internal/card"
)

// cardSeed is one named card in the serialized seed format.
type cardSeed struct {
	Name string `json:"name"`
}

// NewGameStateFromSeed bootstraps a state from the textual seed format: a
// JSON object mapping player name to a list of named cards. The acting
// player is the entry with two cards (their hidden pair); every other entry
// carries three mystery cards.
func NewGameStateFromSeed(seed []byte) (GameState, error) {
	var entries map[string][]cardSeed
	if err := json.Unmarshal(seed, &entries); err != nil {
		return GameState{}, fmt.Errorf("parsing seed: %w", err)
	}
	if len(entries) < 2 || len(entries) > 6 {
		return GameState{}, fmt.Errorf("seed has %d players, want 2 to 6", len(entries))
	}

	var meName string
	var otherNames []string
	for name, cards := range entries {
		switch len(cards) {
		case 2:
			if meName != "" {
				return GameState{}, fmt.Errorf("seed has two acting players: %q and %q", meName, name)
			}
			meName = name
		case 3:
			otherNames = append(otherNames, name)
		default:
			return GameState{}, fmt.Errorf("seed player %q holds %d cards, want 2 or 3", name, len(cards))
		}
	}
	if meName == "" {
		return GameState{}, fmt.Errorf("seed has no two-card acting player")
	}
	sort.Strings(otherNames)

	glasses := defaultMagnifyingGlasses(len(entries))

	myCards, err := parseSeedCards(meName, entries[meName])
	if err != nil {
		return GameState{}, err
	}
	players := []Player{{
		Name:              meName,
		Hidden:            HiddenCardSet{Left: myCards[0], Right: myCards[1]},
		MagnifyingGlasses: glasses,
	}}

	for _, name := range otherNames {
		cards, err := parseSeedCards(name, entries[name])
		if err != nil {
			return GameState{}, err
		}
		mystery, err := seedMystery(name, cards)
		if err != nil {
			return GameState{}, err
		}
		players = append(players, Player{
			Name:              name,
			Mystery:           mystery,
			MagnifyingGlasses: glasses,
		})
	}

	return newGameState(players, secretInformantsFor(len(entries)), nil, card.CardSet(len(entries))), nil
}

func parseSeedCards(player string, seeds []cardSeed) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(seeds))
	for _, seed := range seeds {
		c, ok := card.Parse(seed.Name)
		if !ok {
			return nil, fmt.Errorf("seed player %q holds unknown card %q", player, seed.Name)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func seedMystery(player string, cards []card.Card) (MysteryCardSet, error) {
	var mystery MysteryCardSet
	for _, c := range cards {
		switch {
		case c.IsPerson():
			mystery.Person = c
		case c.IsLocation():
			mystery.Location = c
		case c.IsWeapon():
			mystery.Weapon = c
		}
	}
	if !mystery.IsComplete() {
		return MysteryCardSet{}, fmt.Errorf("seed player %q needs one person, one location and one weapon", player)
	}
	return mystery, nil
}
