package solve

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mystery-copilot/internal/state"
)

// SolutionEliminationSolver is the cheap sibling of the possible-state
// solver: it filters candidate solution triples directly against the action
// log without enumerating full hypotheses. It cannot weigh probabilities, so
// every surviving solution is reported with equal weight, but it answers in
// milliseconds on spaces the full solver takes minutes over.
type SolutionEliminationSolver struct {
	log      logrus.FieldLogger
	observer Observer

	mu      sync.Mutex
	current uuid.UUID
	live    bool
}

// NewSolutionEliminationSolver creates a solutions-only solver.
func NewSolutionEliminationSolver(logger logrus.FieldLogger, observer Observer) *SolutionEliminationSolver {
	return &SolutionEliminationSolver{log: logger, observer: observer}
}

// Solve filters the candidate solutions for the state and reports the
// survivors, equally weighted, to the observer.
func (s *SolutionEliminationSolver) Solve(gs state.GameState) {
	s.mu.Lock()
	s.current = gs.ID
	s.live = true
	s.mu.Unlock()

	solutions := AllPossibleSolutions(gs)
	solutions = s.removeImpossibleSolutions(gs, solutions)
	solutions = s.resolveAccusations(gs, solutions)
	solutions = s.resolveInquisitions(gs, solutions)

	if !s.isRunning(gs.ID) {
		return
	}
	for i := range solutions {
		solutions[i].Probability = 1 / float64(len(solutions))
	}
	state.SortSolutions(solutions)
	s.log.Debugf("solve: solution elimination kept %d candidates", len(solutions))
	s.observer.HandleSolutions(gs, solutions, nil)
}

// Cancel abandons the current task and reports the cancellation.
func (s *SolutionEliminationSolver) Cancel(gs state.GameState) {
	s.mu.Lock()
	if s.current == gs.ID {
		s.live = false
	}
	s.mu.Unlock()
	s.observer.HandleFailure(gs, ErrCancelled)
}

func (s *SolutionEliminationSolver) isRunning(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live && s.current == id
}

// removeImpossibleSolutions drops triples containing any card the acting
// player can already place: other players' cards, their own hidden pair, or
// revealed informants.
func (s *SolutionEliminationSolver) removeImpossibleSolutions(
	gs state.GameState,
	solutions []state.Solution,
) []state.Solution {
	visible := gs.Players[0].Hidden.Cards()
	for _, p := range gs.Players[1:] {
		visible = visible.Union(p.Cards())
	}
	for _, si := range gs.SecretInformants {
		if si.Card != "" {
			visible[si.Card] = struct{}{}
		}
	}
	return keepSolutions(solutions, func(sol state.Solution) bool {
		return sol.Cards().IsDisjoint(visible)
	})
}

func (s *SolutionEliminationSolver) resolveAccusations(
	gs state.GameState,
	solutions []state.Solution,
) []state.Solution {
	me := gs.Players[0]
	for _, action := range gs.Actions {
		accusation, ok := action.(state.Accusation)
		if !ok {
			continue
		}
		if accusation.AccusingPlayer == me.Name {
			solutions = keepSolutions(solutions, func(sol state.Solution) bool {
				return !sol.Cards().Equal(accusation.Cards())
			})
		} else {
			solutions = keepSolutions(solutions, func(sol state.Solution) bool {
				return sol.Cards().IsDisjoint(accusation.Cards())
			})
		}
	}
	return solutions
}

// resolveInquisitions applies the one inquisition rule expressible without
// full hypotheses: an answer of zero clears the whole category from the
// solution, since the solution cards sit in the acting player's mystery and
// would have been visible to any other answerer.
func (s *SolutionEliminationSolver) resolveInquisitions(
	gs state.GameState,
	solutions []state.Solution,
) []state.Solution {
	me := gs.Players[0]
	for _, action := range gs.Actions {
		inquisition, ok := action.(state.Inquisition)
		if !ok || inquisition.AnsweringPlayer == me.Name || inquisition.Count != 0 {
			continue
		}
		categoryCards := inquisition.Cards().Intersecting(gs.Cards)
		solutions = keepSolutions(solutions, func(sol state.Solution) bool {
			return sol.Cards().IsDisjoint(categoryCards)
		})
	}
	return solutions
}

func keepSolutions(solutions []state.Solution, keep func(state.Solution) bool) []state.Solution {
	kept := solutions[:0:0]
	for _, sol := range solutions {
		if keep(sol) {
			kept = append(kept, sol)
		}
	}
	return kept
}
