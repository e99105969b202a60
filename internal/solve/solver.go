package solve

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mystery-copilot/internal/state"
)

// ErrCancelled reports that a task was cancelled before completing.
var ErrCancelled = errors.New("solve: cancelled")

// Observer receives the terminal outcome of a solve task. Exactly one of the
// two callbacks fires per task.
type Observer interface {
	// HandleSolutions delivers the ranked solutions and the surviving
	// hypotheses for the given state.
	HandleSolutions(gs state.GameState, solutions []state.Solution, possibleStates []state.PossibleState)
	// HandleFailure delivers a terminal error (ErrCancelled) for the state.
	HandleFailure(gs state.GameState, err error)
}

// solveTask tracks the progress of one in-flight solve: one unit per
// candidate solution generated, then one per elimination pass.
type solveTask struct {
	total int64
	done  int64
}

func (t *solveTask) step() {
	t.advance(1)
}

func (t *solveTask) advance(n int64) {
	atomic.AddInt64(&t.done, n)
}

func (t *solveTask) progress() float64 {
	total := atomic.LoadInt64(&t.total)
	if total == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&t.done)) / float64(total)
}

// completedSolve caches the outcome of the most recent finished task, so a
// strictly-later state can skip regeneration.
type completedSolve struct {
	gs             state.GameState
	possibleStates []state.PossibleState
}

// PossibleStateEliminationSolver finds probable solutions by enumerating
// every internally-consistent hypothesis and discarding the ones the action
// log contradicts. Tasks are keyed by state identity; solving a second state
// while the first is live abandons the first.
type PossibleStateEliminationSolver struct {
	log      logrus.FieldLogger
	observer Observer
	workers  int

	mu            sync.Mutex
	tasks         map[uuid.UUID]*solveTask
	completed     map[uuid.UUID]struct{}
	lastCompleted *completedSolve
}

// NewPossibleStateEliminationSolver creates a solver running generation on a
// pool of the given size, minimum 1.
func NewPossibleStateEliminationSolver(logger logrus.FieldLogger, observer Observer, workers int) *PossibleStateEliminationSolver {
	if workers < 1 {
		workers = 1
	}
	return &PossibleStateEliminationSolver{
		log:       logger,
		observer:  observer,
		workers:   workers,
		tasks:     make(map[uuid.UUID]*solveTask),
		completed: make(map[uuid.UUID]struct{}),
	}
}

// Solve runs generation and elimination for the state, blocking until the
// task completes or is cancelled. The outcome is delivered to the observer.
// The state must be solveable.
func (s *PossibleStateEliminationSolver) Solve(gs state.GameState) {
	// Four elimination passes plus the collapse to solutions; generation
	// counts one unit per candidate solution.
	const tailSteps = 5

	genUnits := int64(len(AllPossibleSolutions(gs)))
	task := &solveTask{total: genUnits + tailSteps}
	s.mu.Lock()
	delete(s.completed, gs.ID)
	s.tasks[gs.ID] = task
	s.mu.Unlock()

	isRunning := func() bool { return s.isRunning(gs.ID) }
	started := time.Now()

	possibleStates := s.cachedStatesFor(gs)
	if possibleStates == nil {
		possibleStates = AllPossibleStatesParallel(gs, s.workers, isRunning, task.step)
		s.log.Debugf("solve: generated %d possible states in %s", len(possibleStates), time.Since(started))
	} else {
		task.advance(genUnits)
		s.log.Debugf("solve: reusing %d cached possible states", len(possibleStates))
	}

	passes := []struct {
		name  string
		apply func(state.GameState, []state.PossibleState) []state.PossibleState
	}{
		{"my accusations", s.resolveMyAccusations},
		{"opponent accusations", s.resolveOpponentAccusations},
		{"inquisitions in isolation", s.resolveInquisitionsInIsolation},
		{"inquisitions in combination", s.resolveInquisitionsInCombination},
	}
	for _, pass := range passes {
		if !isRunning() {
			return
		}
		before := len(possibleStates)
		possibleStates = pass.apply(gs, possibleStates)
		task.step()
		s.log.Debugf("solve: pass %q kept %d of %d states", pass.name, len(possibleStates), before)
	}

	if !isRunning() {
		return
	}
	solutions := state.SolutionsIn(possibleStates)
	task.step()

	s.mu.Lock()
	if _, live := s.tasks[gs.ID]; !live {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, gs.ID)
	s.completed[gs.ID] = struct{}{}
	s.lastCompleted = &completedSolve{gs: gs, possibleStates: possibleStates}
	s.mu.Unlock()

	s.log.Infof("solve: finished with %d states and %d solutions in %s",
		len(possibleStates), len(solutions), time.Since(started))
	s.observer.HandleSolutions(gs, solutions, possibleStates)
}

// Cancel abandons any live task for the state and reports the cancellation.
// Cancelling a state with no registered task still emits the signal.
func (s *PossibleStateEliminationSolver) Cancel(gs state.GameState) {
	s.mu.Lock()
	delete(s.tasks, gs.ID)
	s.mu.Unlock()
	s.observer.HandleFailure(gs, ErrCancelled)
}

// Progress returns the completed fraction of the task for the state. A
// finished task reports 1.0 until a new task for the same state evicts it.
// The second return is false when no task is known for the state.
func (s *PossibleStateEliminationSolver) Progress(gs state.GameState) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[gs.ID]; ok {
		return task.progress(), true
	}
	if _, ok := s.completed[gs.ID]; ok {
		return 1.0, true
	}
	return 0, false
}

func (s *PossibleStateEliminationSolver) isRunning(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// cachedStatesFor returns the last completed task's hypothesis set when the
// new state strictly extends the state it was computed for.
func (s *PossibleStateEliminationSolver) cachedStatesFor(gs state.GameState) []state.PossibleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCompleted == nil || !s.lastCompleted.gs.IsEarlierStateOf(gs) {
		return nil
	}
	return s.lastCompleted.possibleStates
}
