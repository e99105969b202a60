package solve

import (
	"mystery-copilot/internal/card"
	"mystery-copilot/internal/state"
)

// resolveMyAccusations removes hypotheses whose solution matches an
// accusation already made by the acting player. Had it been correct, the
// game would have ended.
func (s *PossibleStateEliminationSolver) resolveMyAccusations(
	gs state.GameState,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	me := gs.Players[0]
	for _, action := range gs.Actions {
		accusation, ok := action.(state.Accusation)
		if !ok || accusation.AccusingPlayer != me.Name {
			continue
		}
		possibleStates = keepStates(possibleStates, func(ps state.PossibleState) bool {
			return !ps.Solution().Cards().Equal(accusation.Cards())
		})
	}
	return possibleStates
}

// resolveOpponentAccusations removes hypotheses whose solution shares any
// card with an opponent's accusation. Opponents cannot truthfully accuse
// cards they can see themselves.
func (s *PossibleStateEliminationSolver) resolveOpponentAccusations(
	gs state.GameState,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	me := gs.Players[0]
	for _, action := range gs.Actions {
		accusation, ok := action.(state.Accusation)
		if !ok || accusation.AccusingPlayer == me.Name {
			continue
		}
		possibleStates = keepStates(possibleStates, func(ps state.PossibleState) bool {
			return ps.Solution().Cards().IsDisjoint(accusation.Cards())
		})
	}
	return possibleStates
}

// resolveInquisitionsInIsolation applies each recorded question/answer on
// its own, discarding hypotheses where the answer the player gave does not
// match what they would see.
func (s *PossibleStateEliminationSolver) resolveInquisitionsInIsolation(
	gs state.GameState,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	me := gs.Players[0]
	for _, action := range gs.Actions {
		inquisition, ok := action.(state.Inquisition)
		if !ok || inquisition.AnsweringPlayer == me.Name {
			continue
		}
		possibleStates = applyRuleSeesNone(gs, inquisition, possibleStates)
		possibleStates = applyRuleSeesSome(gs, inquisition, possibleStates)
		possibleStates = applyRuleSeesAll(gs, inquisition, possibleStates)
		possibleStates = applyRuleAskerCouldSeeAll(gs, inquisition, possibleStates)
	}
	return possibleStates
}

// resolveInquisitionsInCombination would cross-reference multiple answers
// jointly to find contradictions no single answer reveals. No such rule is
// implemented yet; the pass keeps every state.
func (s *PossibleStateEliminationSolver) resolveInquisitionsInCombination(
	gs state.GameState,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	return possibleStates
}

// applyRuleSeesNone: an answer of zero contradicts any hypothesis where a
// category card would have been visible to the answerer, either in another
// player's mystery or among the answerer's own counted hidden cards.
func applyRuleSeesNone(
	gs state.GameState,
	inquisition state.Inquisition,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	if inquisition.Count != 0 {
		return possibleStates
	}
	categoryCards := inquisition.Cards().Intersecting(gs.Cards)
	return keepStates(possibleStates, func(ps state.PossibleState) bool {
		visible := ps.CardsVisible(inquisition.AnsweringPlayer, inquisition.IncludingCardOnSide)
		return visible.IsDisjoint(categoryCards)
	})
}

// applyRuleSeesSome: a partial count contradicts any hypothesis where the
// cards actually visible to the answerer do not number exactly the answer.
func applyRuleSeesSome(
	gs state.GameState,
	inquisition state.Inquisition,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	categoryCards := inquisition.Cards().Intersecting(gs.Cards)
	if inquisition.Count <= 0 || inquisition.Count >= len(categoryCards) {
		return possibleStates
	}
	return keepStates(possibleStates, func(ps state.PossibleState) bool {
		visible := ps.CardsVisible(inquisition.AnsweringPlayer, inquisition.IncludingCardOnSide)
		return len(visible.Intersecting(categoryCards)) == inquisition.Count
	})
}

// applyRuleSeesAll: a full count contradicts any hypothesis where a category
// card would have been hidden from the answerer, in any other player's
// hidden pair, the answerer's own mystery, or the informants.
func applyRuleSeesAll(
	gs state.GameState,
	inquisition state.Inquisition,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	categoryCards := inquisition.Cards().Intersecting(gs.Cards)
	if inquisition.Count != len(categoryCards) {
		return possibleStates
	}
	return keepStates(possibleStates, func(ps state.PossibleState) bool {
		visible := ps.CardsVisible(inquisition.AnsweringPlayer, inquisition.IncludingCardOnSide)
		return categoryCards.IsSubset(visible)
	})
}

// applyRuleAskerCouldSeeAll: regardless of the answer, nobody asks about a
// category they can already see every card of.
func applyRuleAskerCouldSeeAll(
	gs state.GameState,
	inquisition state.Inquisition,
	possibleStates []state.PossibleState,
) []state.PossibleState {
	categoryCards := inquisition.Cards().Intersecting(gs.Cards)
	return keepStates(possibleStates, func(ps state.PossibleState) bool {
		visible := ps.CardsVisible(inquisition.AskingPlayer, card.SideNone)
		return !categoryCards.IsSubset(visible)
	})
}

func keepStates(
	possibleStates []state.PossibleState,
	keep func(state.PossibleState) bool,
) []state.PossibleState {
	kept := possibleStates[:0:0]
	for _, ps := range possibleStates {
		if keep(ps) {
			kept = append(kept, ps)
		}
	}
	return kept
}
