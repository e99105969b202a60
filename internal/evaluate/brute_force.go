package evaluate

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"mystery-copilot/internal/state"
)

// ErrCancelled reports that an evaluation was abandoned before finishing.
var ErrCancelled = errors.New("evaluate: cancelled")

// ErrCompleted reports that an evaluation finished; it follows the final
// HandleOptimalActions call so the observer can tell a live leaderboard
// update from the terminal one.
var ErrCompleted = errors.New("evaluate: completed")

// Observer receives the outcome of an evaluation task.
type Observer interface {
	// HandleOptimalActions delivers the best-ranked candidate actions found
	// so far, sorted deterministically. With streaming on it fires on every
	// leaderboard change, then once more on completion.
	HandleOptimalActions(gs state.GameState, actions []PotentialAction)
	// HandleEvaluationError delivers a terminal signal for the state:
	// ErrCompleted on success, ErrCancelled on abandonment.
	HandleEvaluationError(gs state.GameState, err error)
}

// EvaluatorFactory builds the per-task ranking function. The brute-force
// driver calls it once per evaluation with the task's hypothesis set.
type EvaluatorFactory func(gs state.GameState, possibleStates []state.PossibleState) ActionEvaluator

// ActionFinder searches for the most informative next action.
type ActionFinder interface {
	FindOptimalAction(gs state.GameState, possibleStates []state.PossibleState)
	Cancel(gs state.GameState)
	Progress(gs state.GameState) (float64, bool)
}

// evalTask tracks one in-flight evaluation: atomic progress counters plus a
// mutex-guarded leaderboard that all workers merge into.
type evalTask struct {
	total int64
	done  int64

	mu             sync.Mutex
	highestRanking int
	bestActions    []PotentialAction
}

func (t *evalTask) step() {
	atomic.AddInt64(&t.done, 1)
}

func (t *evalTask) progress() float64 {
	total := atomic.LoadInt64(&t.total)
	if total == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&t.done)) / float64(total)
}

// merge folds a worker's result into the leaderboard. It returns the new
// leaderboard when the result improved or tied it, nil otherwise.
func (t *evalTask) merge(ranking int, actions ...PotentialAction) []PotentialAction {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case ranking > t.highestRanking:
		t.highestRanking = ranking
		t.bestActions = append(t.bestActions[:0], actions...)
	case ranking == t.highestRanking:
		t.bestActions = append(t.bestActions, actions...)
	default:
		return nil
	}
	best := make([]PotentialAction, len(t.bestActions))
	copy(best, t.bestActions)
	sort.Slice(best, func(i, j int) bool { return PotentialActionLess(best[i], best[j]) })
	return best
}

// BruteForceActionEvaluator ranks every candidate action for a state across
// a bounded worker pool and reports the best-ranked ones. Tasks are keyed by
// state identity, so evaluating one state does not disturb another's
// progress, and cancelling abandons only the named state's scan.
type BruteForceActionEvaluator struct {
	log       logrus.FieldLogger
	observer  Observer
	workers   int
	streaming bool
	rng       *rand.Rand
	factory   EvaluatorFactory

	mu        sync.Mutex
	tasks     map[uuid.UUID]*evalTask
	completed map[uuid.UUID]struct{}
}

// NewBruteForceActionEvaluator creates a driver running candidate scans on a
// pool of the given size, minimum 1. With streaming on, leaderboard changes
// are delivered to the observer as they happen.
func NewBruteForceActionEvaluator(logger logrus.FieldLogger, observer Observer, workers int, streaming bool, rng *rand.Rand, factory EvaluatorFactory) *BruteForceActionEvaluator {
	if workers < 1 {
		workers = 1
	}
	return &BruteForceActionEvaluator{
		log:       logger,
		observer:  observer,
		workers:   workers,
		streaming: streaming,
		rng:       rng,
		factory:   factory,
		tasks:     make(map[uuid.UUID]*evalTask),
		completed: make(map[uuid.UUID]struct{}),
	}
}

// FindOptimalAction ranks every candidate for the state against the
// hypothesis set, blocking until the scan completes or is cancelled. The
// outcome is delivered to the observer.
func (e *BruteForceActionEvaluator) FindOptimalAction(gs state.GameState, possibleStates []state.PossibleState) {
	candidates := AllPossibleActions(gs, e.taskRng())

	task := &evalTask{total: int64(len(candidates))}
	e.mu.Lock()
	delete(e.completed, gs.ID)
	e.tasks[gs.ID] = task
	e.mu.Unlock()

	started := time.Now()
	evaluator := e.factory(gs, possibleStates)

	var group errgroup.Group
	for _, chunk := range chunkActions(candidates, e.workers) {
		chunk := chunk
		group.Go(func() error {
			e.evaluateChunk(gs, task, evaluator, chunk)
			return nil
		})
	}
	group.Wait()

	e.mu.Lock()
	if _, live := e.tasks[gs.ID]; !live {
		e.mu.Unlock()
		return
	}
	delete(e.tasks, gs.ID)
	e.completed[gs.ID] = struct{}{}
	e.mu.Unlock()

	task.mu.Lock()
	best := make([]PotentialAction, len(task.bestActions))
	copy(best, task.bestActions)
	ranking := task.highestRanking
	task.mu.Unlock()
	sort.Slice(best, func(i, j int) bool { return PotentialActionLess(best[i], best[j]) })

	e.log.Infof("evaluate: ranked %d candidates in %s, best ranking %d held by %d",
		len(candidates), time.Since(started), ranking, len(best))
	e.observer.HandleOptimalActions(gs, best)
	e.observer.HandleEvaluationError(gs, ErrCompleted)
}

// evaluateChunk ranks one contiguous slice of the candidate list. Without
// streaming, results are held locally and merged once at the end of the
// chunk; with streaming, every result merges immediately so the observer
// sees the leaderboard move.
func (e *BruteForceActionEvaluator) evaluateChunk(gs state.GameState, task *evalTask, evaluator ActionEvaluator, chunk []PotentialAction) {
	localRanking := 0
	var localActions []PotentialAction

	for _, action := range chunk {
		if !e.isEvaluating(gs.ID) {
			return
		}
		if actionHasBeenTaken(gs, action) {
			task.step()
			continue
		}
		ranking, ok := evaluator.Evaluate(action)
		task.step()
		if !ok {
			continue
		}

		if e.streaming {
			if best := task.merge(ranking, action); best != nil {
				e.observer.HandleOptimalActions(gs, best)
			}
			continue
		}

		switch {
		case ranking > localRanking:
			localRanking = ranking
			localActions = append(localActions[:0], action)
		case ranking == localRanking:
			localActions = append(localActions, action)
		}
	}

	if !e.streaming && len(localActions) > 0 {
		task.merge(localRanking, localActions...)
	}
}

// Cancel abandons any live scan for the state and reports the cancellation.
// Cancelling a state with no registered task still emits the signal.
func (e *BruteForceActionEvaluator) Cancel(gs state.GameState) {
	e.mu.Lock()
	delete(e.tasks, gs.ID)
	e.mu.Unlock()
	e.observer.HandleEvaluationError(gs, ErrCancelled)
}

// Progress returns the fraction of candidates ranked for the state. A
// finished scan reports 1.0 until a new scan for the same state evicts it.
// The second return is false when no scan is known for the state.
func (e *BruteForceActionEvaluator) Progress(gs state.GameState) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if task, ok := e.tasks[gs.ID]; ok {
		return task.progress(), true
	}
	if _, ok := e.completed[gs.ID]; ok {
		return 1.0, true
	}
	return 0, false
}

// taskRng derives an independent generator for one scan. Concurrent scans
// share the seed source, which is only touched under the registry mutex.
func (e *BruteForceActionEvaluator) taskRng() *rand.Rand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return rand.New(rand.NewSource(e.rng.Int63()))
}

func (e *BruteForceActionEvaluator) isEvaluating(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.tasks[id]
	return ok
}

// chunkActions splits the candidate list into at most workers contiguous
// chunks of near-equal length.
func chunkActions(actions []PotentialAction, workers int) [][]PotentialAction {
	if len(actions) == 0 {
		return nil
	}
	if workers > len(actions) {
		workers = len(actions)
	}
	chunks := make([][]PotentialAction, 0, workers)
	size := (len(actions) + workers - 1) / workers
	for start := 0; start < len(actions); start += size {
		end := start + size
		if end > len(actions) {
			end = len(actions)
		}
		chunks = append(chunks, actions[start:end])
	}
	return chunks
}
