// Package solve turns a game state into the set of hypotheses consistent
// with the acting player's knowledge, and prunes that set against the action
// log to surface probable solutions.
package solve

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"mystery-copilot/internal/card"
	"mystery-copilot/internal/state"
)

// Liveness reports whether the surrounding task should keep running. It is
// checked at every expansion point so abandoned work stops early.
type Liveness func() bool

// Step is called once per fully-expanded candidate solution, letting callers
// track generation progress at candidate granularity. Parallel generation
// calls it from worker goroutines. Nil is ignored.
type Step func()

// AllPossibleSolutions enumerates every candidate solution triple for the
// acting player: known mystery components are fixed, unknown ones range over
// the unallocated cards of the matching category.
func AllPossibleSolutions(gs state.GameState) []state.Solution {
	me := gs.Players[0]
	pool := gs.UnallocatedCards()

	people := candidateCards(me.Mystery.Person, pool.People())
	locations := candidateCards(me.Mystery.Location, pool.Locations())
	weapons := candidateCards(me.Mystery.Weapon, pool.Weapons())

	solutions := make([]state.Solution, 0, len(people)*len(locations)*len(weapons))
	for _, person := range people {
		for _, location := range locations {
			for _, weapon := range weapons {
				solutions = append(solutions, state.NewSolution(person, location, weapon, 0))
			}
		}
	}
	return solutions
}

func candidateCards(known card.Card, pool card.Set) []card.Card {
	if known != "" {
		return []card.Card{known}
	}
	return pool.Sorted()
}

// AllPossibleStates expands the state into every hypothesis consistent with
// the acting player's knowledge. The state must be solveable; see
// GameState.IsSolveable. Enumeration is exhaustive: for each candidate
// solution the unknown cards are split into disjoint pairs assigned to the
// other players in order, and the leftovers become that hypothesis's
// informants. A dead Liveness abandons the remaining branches and discards
// the partial result.
func AllPossibleStates(gs state.GameState, isRunning Liveness, step Step) []state.PossibleState {
	var possibleStates []state.PossibleState
	for _, solution := range AllPossibleSolutions(gs) {
		if !isRunning() {
			return nil
		}
		possibleStates = expandSolution(gs, solution, possibleStates, isRunning)
		if step != nil {
			step()
		}
	}
	if !isRunning() {
		return nil
	}
	return possibleStates
}

// AllPossibleStatesParallel is AllPossibleStates with the top-level candidate
// solutions fanned out across a bounded worker pool. Results are appended
// through a single mutex; ordering across workers is not guaranteed.
func AllPossibleStatesParallel(gs state.GameState, workers int, isRunning Liveness, step Step) []state.PossibleState {
	if workers <= 1 {
		return AllPossibleStates(gs, isRunning, step)
	}

	solutions := AllPossibleSolutions(gs)
	chunks := chunkSolutions(solutions, workers)

	var mu sync.Mutex
	var possibleStates []state.PossibleState

	var g errgroup.Group
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			var local []state.PossibleState
			for _, solution := range chunk {
				if !isRunning() {
					return nil
				}
				local = expandSolution(gs, solution, local, isRunning)
				if step != nil {
					step()
				}
			}
			mu.Lock()
			possibleStates = append(possibleStates, local...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if !isRunning() {
		return nil
	}
	return possibleStates
}

// expandSolution fixes one candidate solution for the acting player and
// recursively assigns disjoint hidden pairs to the remaining players.
func expandSolution(
	gs state.GameState,
	solution state.Solution,
	into []state.PossibleState,
	isRunning Liveness,
) []state.PossibleState {
	me := gs.Players[0]
	first := state.PossiblePlayer{
		ID:      me.Name,
		Mystery: state.PossibleMysteryFromSolution(solution),
		Hidden:  state.PossibleHiddenSetFromPair(me.Hidden.Cards()),
	}

	remaining := gs.InitialUnknownCards().Subtracting(solution.Cards())
	pairs := pairCombinations(remaining)

	return assignHiddenPairs(gs, []state.PossiblePlayer{first}, pairs, into, isRunning)
}

func assignHiddenPairs(
	gs state.GameState,
	players []state.PossiblePlayer,
	pairs []card.Set,
	into []state.PossibleState,
	isRunning Liveness,
) []state.PossibleState {
	if !isRunning() {
		return into
	}

	if len(players) == gs.NumberOfPlayers() {
		informants := make(card.Set)
		for _, pair := range pairs {
			informants = informants.Union(pair)
		}
		return append(into, state.PossibleState{Players: players, Informants: informants})
	}

	next := gs.Players[len(players)]
	for _, pair := range pairs {
		assigned := make([]state.PossiblePlayer, len(players), len(players)+1)
		copy(assigned, players)
		assigned = append(assigned, state.PossiblePlayer{
			ID:      next.Name,
			Mystery: state.PossibleMysteryFromKnown(next.Mystery),
			Hidden:  state.PossibleHiddenSetFromPair(pair),
		})

		disjoint := make([]card.Set, 0, len(pairs))
		for _, candidate := range pairs {
			if candidate.IsDisjoint(pair) {
				disjoint = append(disjoint, candidate)
			}
		}

		into = assignHiddenPairs(gs, assigned, disjoint, into, isRunning)
	}
	return into
}

// pairCombinations returns every unordered two-card subset, in a
// deterministic order.
func pairCombinations(cards card.Set) []card.Set {
	sorted := cards.Sorted()
	pairs := make([]card.Set, 0, len(sorted)*(len(sorted)-1)/2)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			pairs = append(pairs, card.NewSet(sorted[i], sorted[j]))
		}
	}
	return pairs
}

// chunkSolutions splits candidates into at most n contiguous chunks.
func chunkSolutions(solutions []state.Solution, n int) [][]state.Solution {
	if len(solutions) == 0 {
		return nil
	}
	size := (len(solutions) + n - 1) / n
	chunks := make([][]state.Solution, 0, n)
	for start := 0; start < len(solutions); start += size {
		end := start + size
		if end > len(solutions) {
			end = len(solutions)
		}
		chunks = append(chunks, solutions[start:end])
	}
	return chunks
}
