// Package evaluate scores candidate next actions by how much of the
// hypothesis space each is expected to remove, and drives brute-force scans
// of every candidate across a bounded worker pool.
package evaluate

import (
	"fmt"
	"math/rand"

	"mystery-copilot/internal/card"
	"mystery-copilot/internal/state"
)

// PotentialAction is a candidate next move. It is a closed sum: the only
// implementations are Inquiry and Informing, both comparable value types.
type PotentialAction interface {
	fmt.Stringer

	isPotentialAction()
}

// Inquiry is a candidate question: ask a player how many cards of a filter
// they see. In two-player games IncludingCardOnSide names which of the
// answerer's hidden cards the count includes.
type Inquiry struct {
	Player              string
	Filter              card.Filter
	IncludingCardOnSide card.Side
}

func (i Inquiry) isPotentialAction() {}

func (i Inquiry) String() string {
	if i.IncludingCardOnSide != card.SideNone {
		return fmt.Sprintf("Ask %s about %s cards, including their %s card",
			i.Player, i.Filter, i.IncludingCardOnSide)
	}
	return fmt.Sprintf("Ask %s about %s cards", i.Player, i.Filter)
}

// Informing is a candidate examination of a secret informant.
type Informing struct {
	Informant string
}

func (inf Informing) isPotentialAction() {}

func (inf Informing) String() string {
	return fmt.Sprintf("Look at secret informant %s", inf.Informant)
}

// Less orders inquiries by (player, filter, side).
func (i Inquiry) Less(other Inquiry) bool {
	if i.Player != other.Player {
		return i.Player < other.Player
	}
	if i.Filter != other.Filter {
		return card.FilterLess(i.Filter, other.Filter)
	}
	return i.IncludingCardOnSide < other.IncludingCardOnSide
}

// PotentialActionLess orders candidates deterministically: inquiries first,
// then informings by informant name.
func PotentialActionLess(a, b PotentialAction) bool {
	switch left := a.(type) {
	case Inquiry:
		right, ok := b.(Inquiry)
		if !ok {
			return true
		}
		return left.Less(right)
	case Informing:
		right, ok := b.(Informing)
		if !ok {
			return false
		}
		return left.Informant < right.Informant
	}
	return false
}

// AllPossibleInquiries enumerates every askable question in the state: each
// other player crossed with each category and each in-play color. Two-player
// games produce a left and a right variant per question.
func AllPossibleInquiries(gs state.GameState) []Inquiry {
	filters := allInquiryFilters(gs)
	sides := []card.Side{card.SideNone}
	if gs.NumberOfPlayers() == 2 {
		sides = []card.Side{card.SideLeft, card.SideRight}
	}

	inquiries := make([]Inquiry, 0, (gs.NumberOfPlayers()-1)*len(filters)*len(sides))
	for _, p := range gs.Players[1:] {
		for _, filter := range filters {
			for _, side := range sides {
				inquiries = append(inquiries, Inquiry{
					Player:              p.Name,
					Filter:              filter,
					IncludingCardOnSide: side,
				})
			}
		}
	}
	return inquiries
}

func allInquiryFilters(gs state.GameState) []card.Filter {
	filters := make([]card.Filter, 0, len(card.AllCategories)+len(card.AllColors))
	for _, cat := range card.AllCategories {
		filters = append(filters, card.CategoryFilter{Category: cat})
	}
	for _, col := range gs.Cards.Colors() {
		filters = append(filters, card.ColorFilter{Color: col})
	}
	return filters
}

// AllPossibleInformings enumerates one examination per secret informant.
func AllPossibleInformings(gs state.GameState) []Informing {
	informings := make([]Informing, 0, gs.NumberOfInformants())
	for _, si := range gs.SecretInformants {
		informings = append(informings, Informing{Informant: si.Name})
	}
	return informings
}

// AllPossibleActions enumerates every candidate action, shuffled so chunks
// of the candidate list carry comparable amounts of work.
func AllPossibleActions(gs state.GameState, rng *rand.Rand) []PotentialAction {
	inquiries := AllPossibleInquiries(gs)
	informings := AllPossibleInformings(gs)

	actions := make([]PotentialAction, 0, len(inquiries)+len(informings))
	for _, inquiry := range inquiries {
		actions = append(actions, inquiry)
	}
	for _, informing := range informings {
		actions = append(actions, informing)
	}
	rng.Shuffle(len(actions), func(i, j int) { actions[i], actions[j] = actions[j], actions[i] })
	return actions
}

// actionHasBeenTaken reports whether the candidate repeats an action already
// recorded in the state.
func actionHasBeenTaken(gs state.GameState, action PotentialAction) bool {
	switch a := action.(type) {
	case Inquiry:
		return gs.PlayerHasBeenAsked(a.Player, a.Filter, a.IncludingCardOnSide)
	case Informing:
		return gs.HasBeenInformed(a.Informant)
	}
	return false
}
