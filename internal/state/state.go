package state

import (
	"fmt"

	"github.com/google/uuid"

	"mystery-copilot/internal/card"
)

// GameState is an immutable snapshot of a game. Player 0 is the acting
// player ("me"). Mutating methods return a new snapshot with a fresh ID; the
// ID keys solver and evaluator tasks.
type GameState struct {
	ID               uuid.UUID
	Players          []Player
	SecretInformants []SecretInformant
	Cards            card.Set
	Actions          []Action
}

// NewGameState creates a fresh game for the given number of players, with no
// cards known yet.
func NewGameState(playerCount int) GameState {
	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{
			Name:              fmt.Sprintf("Player-%d", i+1),
			MagnifyingGlasses: defaultMagnifyingGlasses(playerCount),
		}
	}
	return newGameState(players, secretInformantsFor(playerCount), nil, card.CardSet(playerCount))
}

// NewGameStateWithNames creates a fresh game with named players.
func NewGameStateWithNames(names []string) GameState {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{
			Name:              name,
			MagnifyingGlasses: defaultMagnifyingGlasses(len(names)),
		}
	}
	return newGameState(players, secretInformantsFor(len(names)), nil, card.CardSet(len(names)))
}

func newGameState(players []Player, informants []SecretInformant, actions []Action, cards card.Set) GameState {
	if len(players) < 2 || len(players) > 6 {
		panic(fmt.Sprintf("state: player count %d out of range", len(players)))
	}
	return GameState{
		ID:               uuid.New(),
		Players:          players,
		SecretInformants: informants,
		Cards:            cards,
		Actions:          actions,
	}
}

func defaultMagnifyingGlasses(playerCount int) int {
	if playerCount == 2 {
		return 0
	}
	return 1
}

func secretInformantsFor(playerCount int) []SecretInformant {
	count := 8 - (playerCount-2)*2
	names := "ABCDEFGH"
	informants := make([]SecretInformant, 0, count)
	for i := 0; i < count && i < len(names); i++ {
		informants = append(informants, SecretInformant{Name: string(names[i])})
	}
	return informants
}

// NumberOfPlayers returns the player count.
func (gs GameState) NumberOfPlayers() int {
	return len(gs.Players)
}

// NumberOfInformants returns the informant count.
func (gs GameState) NumberOfInformants() int {
	return len(gs.SecretInformants)
}

// IsTrackingMagnifyingGlasses reports whether the resource counters apply.
// Two-player games do not use them.
func (gs GameState) IsTrackingMagnifyingGlasses() bool {
	return len(gs.Players) > 2
}

// IsSolveable reports whether enough is known to enumerate hypotheses.
func (gs GameState) IsSolveable() bool {
	for i, p := range gs.Players {
		if !p.IsSolveable(i == 0) {
			return false
		}
	}
	return true
}

// WithPlayer returns a snapshot with the player at index replaced.
func (gs GameState) WithPlayer(index int, p Player) GameState {
	players := make([]Player, len(gs.Players))
	copy(players, gs.Players)
	players[index] = p
	return newGameState(players, gs.SecretInformants, gs.Actions, gs.Cards)
}

// WithSecretInformant returns a snapshot with the named informant replaced.
// If no informant matches, the state is returned unchanged.
func (gs GameState) WithSecretInformant(informant SecretInformant) GameState {
	for i, existing := range gs.SecretInformants {
		if existing.Name == informant.Name {
			informants := make([]SecretInformant, len(gs.SecretInformants))
			copy(informants, gs.SecretInformants)
			informants[i] = informant
			return newGameState(gs.Players, informants, gs.Actions, gs.Cards)
		}
	}
	return gs
}

// Appending returns a snapshot with the action appended to the log and the
// players' magnifying glass counters resolved against it.
func (gs GameState) Appending(action Action) GameState {
	players := make([]Player, len(gs.Players))
	for i, p := range gs.Players {
		players[i] = gs.resolveAction(p, action)
	}
	actions := make([]Action, len(gs.Actions)+1)
	copy(actions, gs.Actions)
	actions[len(gs.Actions)] = action
	return newGameState(players, gs.SecretInformants, actions, gs.Cards)
}

// Removing returns a snapshot with the first matching action removed. The
// remaining log is replayed from scratch so derived counters stay correct.
func (gs GameState) Removing(action Action) GameState {
	index := -1
	for i, existing := range gs.Actions {
		if existing == action {
			index = i
			break
		}
	}
	if index < 0 {
		return gs
	}

	remaining := make([]Action, 0, len(gs.Actions)-1)
	remaining = append(remaining, gs.Actions[:index]...)
	remaining = append(remaining, gs.Actions[index+1:]...)

	players := make([]Player, len(gs.Players))
	for i, p := range gs.Players {
		p.MagnifyingGlasses = defaultMagnifyingGlasses(len(gs.Players))
		players[i] = p
	}
	replayed := newGameState(players, gs.SecretInformants, nil, gs.Cards)
	for _, a := range remaining {
		replayed = replayed.Appending(a)
	}
	return replayed
}

// resolveAction applies the magnifying glass bookkeeping of a single action
// to one player: answering a question earns a glass, examining an informant
// spends one.
func (gs GameState) resolveAction(p Player, action Action) Player {
	if !gs.IsTrackingMagnifyingGlasses() {
		return p
	}
	switch a := action.(type) {
	case Inquisition:
		if a.AnsweringPlayer == p.Name {
			p.MagnifyingGlasses++
		}
	case Examination:
		if a.Player == p.Name && p.MagnifyingGlasses > 0 {
			p.MagnifyingGlasses--
		}
	}
	return p
}

// IsEarlierStateOf reports whether this state and next describe the same
// game, with this state's action log an exact, strictly shorter prefix of
// next's. This relation licenses reuse of computed hypothesis sets.
func (gs GameState) IsEarlierStateOf(next GameState) bool {
	if len(gs.Players) != len(next.Players) {
		return false
	}
	for i := range gs.Players {
		if gs.Players[i] != next.Players[i] {
			return false
		}
	}
	if len(gs.SecretInformants) != len(next.SecretInformants) {
		return false
	}
	for i := range gs.SecretInformants {
		if gs.SecretInformants[i] != next.SecretInformants[i] {
			return false
		}
	}
	if !gs.Cards.Equal(next.Cards) {
		return false
	}
	if len(gs.Actions) >= len(next.Actions) {
		return false
	}
	for i := range gs.Actions {
		if gs.Actions[i] != next.Actions[i] {
			return false
		}
	}
	return true
}

// PlayerHasBeenAsked reports whether the same question has already been
// answered by the player.
func (gs GameState) PlayerHasBeenAsked(player string, filter card.Filter, side card.Side) bool {
	for _, action := range gs.Actions {
		inquisition, ok := action.(Inquisition)
		if !ok {
			continue
		}
		if inquisition.AnsweringPlayer == player &&
			inquisition.Filter == filter &&
			inquisition.IncludingCardOnSide == side {
			return true
		}
	}
	return false
}

// HasBeenInformed reports whether the named informant has been revealed.
func (gs GameState) HasBeenInformed(informant string) bool {
	for _, si := range gs.SecretInformants {
		if si.Name == informant && si.Card != "" {
			return true
		}
	}
	return false
}

// PlayerNamed returns the player with the given name.
func (gs GameState) PlayerNamed(name string) (Player, bool) {
	for _, p := range gs.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// CardsVisible returns the cards the given player can see: their own hidden
// cards plus every other player's mystery cards.
func (gs GameState) CardsVisible(toPlayer string) card.Set {
	visible := make(card.Set)
	for _, p := range gs.Players {
		if p.Name == toPlayer {
			visible = visible.Union(p.Hidden.Cards())
		} else {
			visible = visible.Union(p.Mystery.Cards())
		}
	}
	return visible
}

// MysteryCardsVisibleToMe returns the mystery cards the acting player can
// see, excluding one player's. This is the overlap visible to both.
func (gs GameState) MysteryCardsVisibleToMe(excludingPlayer string) card.Set {
	visible := make(card.Set)
	for _, p := range gs.Players[1:] {
		if p.Name == excludingPlayer {
			continue
		}
		visible = visible.Union(p.Mystery.Cards())
	}
	return visible
}

// CardsForFilter returns the in-play cards matching the filter.
func (gs GameState) CardsForFilter(filter card.Filter) card.Set {
	return gs.Cards.Matching(filter)
}

// UnallocatedCards returns the in-play cards not yet tied to any player's
// mystery or hidden set, nor to a revealed informant.
func (gs GameState) UnallocatedCards() card.Set {
	unallocated := gs.Cards
	for _, p := range gs.Players {
		unallocated = unallocated.Subtracting(p.Mystery.Cards())
		unallocated = unallocated.Subtracting(p.Hidden.Cards())
	}
	for _, si := range gs.SecretInformants {
		if si.Card != "" {
			unallocated = unallocated.Subtracting(card.NewSet(si.Card))
		}
	}
	return unallocated
}

// InitialUnknownCards returns the cards not visible to the acting player at
// the start of the game: everything except their own hidden cards and the
// other players' mysteries.
func (gs GameState) InitialUnknownCards() card.Set {
	unknown := gs.Cards.Subtracting(gs.Players[0].Hidden.Cards())
	for _, p := range gs.Players[1:] {
		unknown = unknown.Subtracting(p.Mystery.Cards())
	}
	return unknown
}
