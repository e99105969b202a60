package evaluate

import (
	"mystery-copilot/internal/state"
)

// An ActionEvaluator ranks a single candidate action against a fixed set of
// possible states. A higher ranking means a more informative action. The
// second return is false when the evaluator cannot rank the action.
type ActionEvaluator interface {
	Evaluate(action PotentialAction) (int, bool)
}

// ExpectedStatesRemovedEvaluator ranks an action by the expected number of
// possible states its outcome eliminates, summed over every outcome weighted
// by that outcome's probability under the current hypothesis set.
type ExpectedStatesRemovedEvaluator struct {
	gs             state.GameState
	possibleStates []state.PossibleState
}

// NewExpectedStatesRemovedEvaluator builds an evaluator over the given
// hypothesis set.
func NewExpectedStatesRemovedEvaluator(gs state.GameState, possibleStates []state.PossibleState) *ExpectedStatesRemovedEvaluator {
	return &ExpectedStatesRemovedEvaluator{gs: gs, possibleStates: possibleStates}
}

// Evaluate dispatches on the candidate's kind.
func (e *ExpectedStatesRemovedEvaluator) Evaluate(action PotentialAction) (int, bool) {
	switch a := action.(type) {
	case Inquiry:
		return e.evaluateInquiry(a)
	case Informing:
		return e.evaluateInforming(a)
	}
	return 0, false
}

// evaluateInquiry weighs every answer the asked player could give. Each
// answer keeps exactly the states in which the player sees that many
// matching cards and removes the rest.
func (e *ExpectedStatesRemovedEvaluator) evaluateInquiry(inquiry Inquiry) (int, bool) {
	total := len(e.possibleStates)
	if total == 0 {
		return 0, false
	}

	cardsInFilter := inquiry.Filter.Cards().Intersecting(e.gs.Cards)
	if len(cardsInFilter) == 0 {
		return 0, false
	}

	expected := 0.0
	for answer := 1; answer <= len(cardsInFilter); answer++ {
		matching := 0
		for _, ps := range e.possibleStates {
			visible := ps.CardsVisible(inquiry.Player, inquiry.IncludingCardOnSide)
			if len(visible.Intersecting(cardsInFilter)) == answer {
				matching++
			}
		}

		removed := total - matching
		probability := float64(matching) / float64(total)
		expected += probability * float64(removed)
	}
	return int(expected), true
}

// evaluateInforming weighs every card the informant could turn out to hold.
// Each outcome keeps exactly the states whose leftover cards include it.
func (e *ExpectedStatesRemovedEvaluator) evaluateInforming(Informing) (int, bool) {
	total := len(e.possibleStates)
	if total == 0 {
		return 0, false
	}

	expected := 0.0
	for c := range e.gs.UnallocatedCards() {
		matching := 0
		for _, ps := range e.possibleStates {
			if ps.Informants.Contains(c) {
				matching++
			}
		}

		removed := total - matching
		probability := float64(matching) / float64(total)
		expected += probability * float64(removed)
	}
	return int(expected), true
}
