package state

import (
	"fmt"

	"mystery-copilot/internal/card"
)

// PossibleHiddenSet is a HiddenCardSet with both cards decided.
type PossibleHiddenSet struct {
	Left  card.Card
	Right card.Card
}

// NewPossibleHiddenSet builds a concrete hidden pair from two distinct cards.
func NewPossibleHiddenSet(left, right card.Card) PossibleHiddenSet {
	if left == right {
		panic(fmt.Sprintf("state: hidden pair holds %q twice", left))
	}
	return PossibleHiddenSet{Left: left, Right: right}
}

// PossibleHiddenSetFromPair builds a hidden pair from a two-card set.
func PossibleHiddenSetFromPair(pair card.Set) PossibleHiddenSet {
	cards := pair.Sorted()
	if len(cards) != 2 {
		panic(fmt.Sprintf("state: hidden pair of size %d", len(cards)))
	}
	return PossibleHiddenSet{Left: cards[0], Right: cards[1]}
}

// Cards returns both cards of the pair.
func (h PossibleHiddenSet) Cards() card.Set {
	return card.NewSet(h.Left, h.Right)
}

// CardOn returns the card on the given side.
func (h PossibleHiddenSet) CardOn(side card.Side) card.Card {
	if side == card.SideRight {
		return h.Right
	}
	return h.Left
}

// PossibleMysterySet is a MysteryCardSet with all three cards decided.
type PossibleMysterySet struct {
	Person   card.Card
	Location card.Card
	Weapon   card.Card
}

// NewPossibleMysterySet builds a concrete mystery, checking card categories.
func NewPossibleMysterySet(person, location, weapon card.Card) PossibleMysterySet {
	if !person.IsPerson() || !location.IsLocation() || !weapon.IsWeapon() {
		panic(fmt.Sprintf("state: mystery %q/%q/%q has a wrong category", person, location, weapon))
	}
	return PossibleMysterySet{Person: person, Location: location, Weapon: weapon}
}

// PossibleMysteryFromKnown converts a fully-known MysteryCardSet.
func PossibleMysteryFromKnown(m MysteryCardSet) PossibleMysterySet {
	if !m.IsComplete() {
		panic("state: mystery set is incomplete")
	}
	return NewPossibleMysterySet(m.Person, m.Location, m.Weapon)
}

// PossibleMysteryFromSolution converts a candidate solution.
func PossibleMysteryFromSolution(s Solution) PossibleMysterySet {
	return NewPossibleMysterySet(s.Person, s.Location, s.Weapon)
}

// Cards returns the three cards of the mystery.
func (m PossibleMysterySet) Cards() card.Set {
	return card.NewSet(m.Person, m.Location, m.Weapon)
}

// PossiblePlayer is a Player with every card decided.
type PossiblePlayer struct {
	ID      string
	Mystery PossibleMysterySet
	Hidden  PossibleHiddenSet
}

// PossibleState is one fully-concrete hypothesis: a mystery and hidden pair
// for every player, with the leftover cards as informants. Across players and
// informants every in-play card appears exactly once.
type PossibleState struct {
	Players    []PossiblePlayer
	Informants card.Set
}

// Solution interprets the acting player's mystery as the candidate solution.
func (ps PossibleState) Solution() Solution {
	m := ps.Players[0].Mystery
	return Solution{Person: m.Person, Location: m.Location, Weapon: m.Weapon}
}

// CardsVisible returns the cards the given player sees in this hypothesis:
// their own hidden cards and everyone else's mystery. When side is not
// SideNone only that hidden card is included, which is how two-player
// questions are scoped.
func (ps PossibleState) CardsVisible(toPlayer string, side card.Side) card.Set {
	visible := make(card.Set)
	for _, p := range ps.Players {
		if p.ID != toPlayer {
			visible = visible.Union(p.Mystery.Cards())
			continue
		}
		if side == card.SideNone {
			visible = visible.Union(p.Hidden.Cards())
		} else {
			visible[p.Hidden.CardOn(side)] = struct{}{}
		}
	}
	return visible
}

// SolutionsIn collapses hypotheses into their distinct candidate solutions,
// each weighted by the fraction of hypotheses supporting it. The returned
// slice is sorted most probable first.
func SolutionsIn(possibleStates []PossibleState) []Solution {
	if len(possibleStates) == 0 {
		return nil
	}
	counts := make(map[Solution]int)
	for _, ps := range possibleStates {
		counts[ps.Solution()]++
	}
	solutions := make([]Solution, 0, len(counts))
	for solution, count := range counts {
		solution.Probability = float64(count) / float64(len(possibleStates))
		solutions = append(solutions, solution)
	}
	SortSolutions(solutions)
	return solutions
}
