package evaluate

import (
	"mystery-copilot/internal/state"
)

// ExpectedSolutionsRemovedEvaluator ranks an inquiry by the expected number
// of distinct solutions its outcome rules out, rather than raw states.
// Informings are out of its scope.
type ExpectedSolutionsRemovedEvaluator struct {
	gs             state.GameState
	possibleStates []state.PossibleState
}

// NewExpectedSolutionsRemovedEvaluator builds an evaluator over the given
// hypothesis set.
func NewExpectedSolutionsRemovedEvaluator(gs state.GameState, possibleStates []state.PossibleState) *ExpectedSolutionsRemovedEvaluator {
	return &ExpectedSolutionsRemovedEvaluator{gs: gs, possibleStates: possibleStates}
}

// Evaluate ranks inquiries only.
func (e *ExpectedSolutionsRemovedEvaluator) Evaluate(action PotentialAction) (int, bool) {
	inquiry, ok := action.(Inquiry)
	if !ok {
		return 0, false
	}
	return e.evaluateInquiry(inquiry)
}

func (e *ExpectedSolutionsRemovedEvaluator) evaluateInquiry(inquiry Inquiry) (int, bool) {
	totalStates := len(e.possibleStates)
	if totalStates == 0 {
		return 0, false
	}

	cardsInFilter := inquiry.Filter.Cards().Intersecting(e.gs.Cards)
	if len(cardsInFilter) == 0 {
		return 0, false
	}
	totalSolutions := len(state.SolutionsIn(e.possibleStates))

	expected := 0.0
	for answer := 1; answer <= len(cardsInFilter); answer++ {
		matchingStates := 0
		matchingSolutions := make(map[state.Solution]struct{})
		for _, ps := range e.possibleStates {
			visible := ps.CardsVisible(inquiry.Player, inquiry.IncludingCardOnSide)
			if len(visible.Intersecting(cardsInFilter)) != answer {
				continue
			}
			matchingStates++
			matchingSolutions[ps.Solution()] = struct{}{}
		}

		removed := totalSolutions - len(matchingSolutions)
		probability := float64(matchingStates) / float64(totalStates)
		expected += probability * float64(removed)
	}
	return int(expected), true
}
