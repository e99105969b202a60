package evaluate

import (
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"mystery-copilot/internal/card"
	"mystery-copilot/internal/state"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// threePlayerGame builds a three-player game where everything the acting
// player can see is known.
func threePlayerGame() state.GameState {
	gs := state.NewGameStateWithNames([]string{"Ann", "Ben", "Cat"})

	ann := gs.Players[0]
	ann.Hidden = ann.Hidden.WithCardOnLeft(card.Officer).WithCardOnRight(card.Knife)
	gs = gs.WithPlayer(0, ann)

	ben := gs.Players[1]
	ben.Mystery = state.NewMysteryCardSet(card.Duke, card.Market, card.Crossbow)
	gs = gs.WithPlayer(1, ben)

	cat := gs.Players[2]
	cat.Mystery = state.NewMysteryCardSet(card.Countess, card.Park, card.Sword)
	return gs.WithPlayer(2, cat)
}

// hypothesis builds one three-player hypothesis with the given solution and
// hidden pairs. Consistency with the deck is not enforced; these are inputs
// for visibility math only.
func hypothesis(solution state.PossibleMysterySet, benHidden, catHidden state.PossibleHiddenSet, informants card.Set) state.PossibleState {
	return state.PossibleState{
		Players: []state.PossiblePlayer{
			{ID: "Ann", Mystery: solution, Hidden: state.NewPossibleHiddenSet(card.Officer, card.Knife)},
			{ID: "Ben", Mystery: state.NewPossibleMysterySet(card.Duke, card.Market, card.Crossbow), Hidden: benHidden},
			{ID: "Cat", Mystery: state.NewPossibleMysterySet(card.Countess, card.Park, card.Sword), Hidden: catHidden},
		},
		Informants: informants,
	}
}

func TestExpectedStatesRemovedByInquiry(t *testing.T) {
	gs := threePlayerGame()

	t.Run("an empty hypothesis set cannot be ranked", func(t *testing.T) {
		evaluator := NewExpectedStatesRemovedEvaluator(gs, nil)
		_, ok := evaluator.Evaluate(Inquiry{Player: "Ben", Filter: card.CategoryFilter{Category: card.PersonMan}})
		require.False(t, ok)
	})

	t.Run("the ranking is the probability-weighted removal count", func(t *testing.T) {
		// GIVEN two hypotheses differing in what Ben hides. The red cards in
		// play are the butcher, the library and the poison; Ben hides two of
		// them in the first hypothesis and one in the second.
		possibleStates := []state.PossibleState{
			hypothesis(
				state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
				state.NewPossibleHiddenSet(card.Butcher, card.Library),
				state.NewPossibleHiddenSet(card.Nurse, card.Museum),
				card.NewSet(card.Dancer, card.Parlor, card.Theater, card.Poison, card.Blowgun, card.Gun),
			),
			hypothesis(
				state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
				state.NewPossibleHiddenSet(card.Library, card.Blowgun),
				state.NewPossibleHiddenSet(card.Nurse, card.Museum),
				card.NewSet(card.Butcher, card.Dancer, card.Parlor, card.Theater, card.Poison, card.Gun),
			),
		}
		evaluator := NewExpectedStatesRemovedEvaluator(gs, possibleStates)

		// WHEN ranking a question to Ben about red cards
		// Answers split 2 and 1, each matching one of two hypotheses:
		// 0.5*1 + 0.5*1 = 1.
		ranking, ok := evaluator.Evaluate(Inquiry{Player: "Ben", Filter: card.ColorFilter{Color: card.Red}})
		require.True(t, ok)
		require.Equal(t, 1, ranking)

		// AND a question splitting nothing ranks zero: Cat always sees the
		// same two yellow cards in her own hidden pair
		ranking, ok = evaluator.Evaluate(Inquiry{Player: "Cat", Filter: card.ColorFilter{Color: card.Yellow}})
		require.True(t, ok)
		require.Equal(t, 0, ranking)
	})
}

func TestExpectedStatesRemovedByInforming(t *testing.T) {
	gs := threePlayerGame()

	// GIVEN two hypotheses whose informant pools differ in two cards
	possibleStates := []state.PossibleState{
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Butcher, card.Library),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Dancer, card.Parlor, card.Theater, card.Poison, card.Blowgun, card.Gun),
		),
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Library, card.Blowgun),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Butcher, card.Dancer, card.Parlor, card.Theater, card.Poison, card.Gun),
		),
	}
	evaluator := NewExpectedStatesRemovedEvaluator(gs, possibleStates)

	// WHEN ranking an examination
	// Five shared informant cards remove nothing; the blowgun and the
	// butcher each remove one state with probability one half:
	// 0.5*1 + 0.5*1 = 1.
	ranking, ok := evaluator.Evaluate(Informing{Informant: "A"})
	require.True(t, ok)
	require.Equal(t, 1, ranking)
}

func TestExpectedSolutionsRemovedByInquiry(t *testing.T) {
	gs := threePlayerGame()

	t.Run("informings are out of scope", func(t *testing.T) {
		evaluator := NewExpectedSolutionsRemovedEvaluator(gs, []state.PossibleState{
			hypothesis(
				state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
				state.NewPossibleHiddenSet(card.Butcher, card.Library),
				state.NewPossibleHiddenSet(card.Nurse, card.Museum),
				nil,
			),
		})
		_, ok := evaluator.Evaluate(Informing{Informant: "A"})
		require.False(t, ok)
	})

	t.Run("it counts distinct solutions, not states", func(t *testing.T) {
		// GIVEN three hypotheses over two distinct solutions, where the
		// answer splits off exactly the nurse solution
		maid := state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle)
		nurse := state.NewPossibleMysterySet(card.Nurse, card.Harbor, card.Rifle)
		possibleStates := []state.PossibleState{
			hypothesis(maid, state.NewPossibleHiddenSet(card.Butcher, card.Library), state.NewPossibleHiddenSet(card.Nurse, card.Museum), nil),
			hypothesis(maid, state.NewPossibleHiddenSet(card.Butcher, card.Poison), state.NewPossibleHiddenSet(card.Nurse, card.Museum), nil),
			hypothesis(nurse, state.NewPossibleHiddenSet(card.Butcher, card.Library), state.NewPossibleHiddenSet(card.Dancer, card.Museum), nil),
			hypothesis(nurse, state.NewPossibleHiddenSet(card.Butcher, card.Poison), state.NewPossibleHiddenSet(card.Dancer, card.Museum), nil),
		}
		evaluator := NewExpectedSolutionsRemovedEvaluator(gs, possibleStates)

		// WHEN ranking a question to Cat about blue cards
		// Cat sees Ann's solution triple: all three blue cards under the
		// maid solution, two under the nurse solution. Each answer removes
		// one of two solutions: 0.5*1 + 0.5*1 = 1.
		ranking, ok := evaluator.Evaluate(Inquiry{Player: "Cat", Filter: card.ColorFilter{Color: card.Blue}})
		require.True(t, ok)
		require.Equal(t, 1, ranking)
	})
}

// captureActionObserver records evaluation outcomes.
type captureActionObserver struct {
	mu      sync.Mutex
	actions []PotentialAction
	updates int
	errs    []error
}

func (o *captureActionObserver) HandleOptimalActions(gs state.GameState, actions []PotentialAction) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.actions = actions
	o.updates++
}

func (o *captureActionObserver) HandleEvaluationError(gs state.GameState, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs = append(o.errs, err)
}

func TestAllPossibleActions(t *testing.T) {
	// GIVEN the three-player game
	gs := threePlayerGame()
	rng := rand.New(rand.NewSource(1))

	// WHEN enumerating candidates
	actions := AllPossibleActions(gs, rng)

	// THEN each opponent pairs with 6 categories and 7 in-play colors, plus
	// one informing per informant
	inquiries, informings := 0, 0
	for _, a := range actions {
		switch a.(type) {
		case Inquiry:
			inquiries++
		case Informing:
			informings++
		}
	}
	require.Equal(t, 2*(6+7), inquiries)
	require.Equal(t, 6, informings)
}

func TestBruteForceFindOptimalAction(t *testing.T) {
	// GIVEN a small hypothesis set where only one question is informative
	gs := threePlayerGame()
	possibleStates := []state.PossibleState{
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Butcher, card.Library),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Poison, card.Blowgun, card.Theater),
		),
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Library, card.Poison),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Butcher, card.Blowgun, card.Theater),
		),
	}
	observer := &captureActionObserver{}
	factory := func(gs state.GameState, possibleStates []state.PossibleState) ActionEvaluator {
		return NewExpectedStatesRemovedEvaluator(gs, possibleStates)
	}
	driver := NewBruteForceActionEvaluator(testLogger(), observer, 4, false, rand.New(rand.NewSource(1)), factory)

	// WHEN scanning every candidate
	driver.FindOptimalAction(gs, possibleStates)

	// THEN the scan terminates with the completion signal after the results
	require.Len(t, observer.errs, 1)
	require.ErrorIs(t, observer.errs[0], ErrCompleted)
	require.NotEmpty(t, observer.actions)

	// AND the leaderboard is sorted deterministically
	for i := 1; i < len(observer.actions); i++ {
		require.False(t, PotentialActionLess(observer.actions[i], observer.actions[i-1]),
			"actions %v and %v are out of order", observer.actions[i-1], observer.actions[i])
	}

	// AND the finished scan reports full progress
	fraction, known := driver.Progress(gs)
	require.True(t, known)
	require.Equal(t, 1.0, fraction)
}

func TestBruteForceSkipsTakenActions(t *testing.T) {
	// GIVEN a game where Ben was already asked about men and informant A
	// was already revealed
	takenFilter := card.CategoryFilter{Category: card.PersonMan}
	gs := threePlayerGame().
		Appending(state.Inquisition{
			Ordinal:         0,
			AskingPlayer:    "Ann",
			AnsweringPlayer: "Ben",
			Filter:          takenFilter,
			Count:           2,
		})
	gs = gs.WithSecretInformant(state.SecretInformant{Name: "A", Card: card.Poison})

	possibleStates := []state.PossibleState{
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Butcher, card.Library),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Poison),
		),
	}
	observer := &captureActionObserver{}
	factory := func(gs state.GameState, possibleStates []state.PossibleState) ActionEvaluator {
		return NewExpectedStatesRemovedEvaluator(gs, possibleStates)
	}
	driver := NewBruteForceActionEvaluator(testLogger(), observer, 2, false, rand.New(rand.NewSource(1)), factory)

	// WHEN scanning
	driver.FindOptimalAction(gs, possibleStates)

	// THEN neither repeated action appears on the leaderboard
	for _, a := range observer.actions {
		switch action := a.(type) {
		case Inquiry:
			require.False(t, action.Player == "Ben" && action.Filter == card.Filter(takenFilter),
				"the answered question was ranked again")
		case Informing:
			require.NotEqual(t, "A", action.Informant, "the revealed informant was ranked again")
		}
	}
}

func TestBruteForceCancelIsIdempotent(t *testing.T) {
	// GIVEN a driver with no live scan for the state
	gs := threePlayerGame()
	observer := &captureActionObserver{}
	factory := func(gs state.GameState, possibleStates []state.PossibleState) ActionEvaluator {
		return NewExpectedStatesRemovedEvaluator(gs, possibleStates)
	}
	driver := NewBruteForceActionEvaluator(testLogger(), observer, 2, false, rand.New(rand.NewSource(1)), factory)

	// WHEN cancelling twice
	driver.Cancel(gs)
	driver.Cancel(gs)

	// THEN the cancellation signal is emitted each time
	require.Len(t, observer.errs, 2)
	for _, err := range observer.errs {
		require.ErrorIs(t, err, ErrCancelled)
	}
	_, known := driver.Progress(gs)
	require.False(t, known)
}

// recordingFinder captures the hypothesis set a sampler hands through.
type recordingFinder struct {
	received  int
	cancelled bool
}

func (f *recordingFinder) FindOptimalAction(gs state.GameState, possibleStates []state.PossibleState) {
	f.received = len(possibleStates)
}
func (f *recordingFinder) Cancel(gs state.GameState) { f.cancelled = true }
func (f *recordingFinder) Progress(gs state.GameState) (float64, bool) {
	return 0.25, true
}

func TestSamplingActionEvaluator(t *testing.T) {
	gs := threePlayerGame()
	base := &recordingFinder{}
	sampler := NewSamplingActionEvaluator(base, 0.5, rand.New(rand.NewSource(1)))

	// GIVEN forty hypotheses
	possibleStates := make([]state.PossibleState, 40)
	for i := range possibleStates {
		possibleStates[i] = hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Butcher, card.Library),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			nil,
		)
	}

	// WHEN finding the optimal action through the sampler
	sampler.FindOptimalAction(gs, possibleStates)

	// THEN the wrapped finder sees half of them
	require.Equal(t, 20, base.received)

	// AND cancel and progress pass straight through
	sampler.Cancel(gs)
	require.True(t, base.cancelled)
	fraction, known := sampler.Progress(gs)
	require.True(t, known)
	require.Equal(t, 0.25, fraction)

	t.Run("an out-of-range rate falls back to the default", func(t *testing.T) {
		fallback := NewSamplingActionEvaluator(base, 1.5, rand.New(rand.NewSource(1)))
		fallback.FindOptimalAction(gs, possibleStates)
		require.Equal(t, 4, base.received)
	})
}

func TestBruteForceConcurrentScans(t *testing.T) {
	// GIVEN two states scanned through one sampled driver at the same time
	first := threePlayerGame()
	second := threePlayerGame()
	possibleStates := []state.PossibleState{
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Butcher, card.Library),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Poison, card.Blowgun, card.Theater),
		),
		hypothesis(
			state.NewPossibleMysterySet(card.Maid, card.Harbor, card.Rifle),
			state.NewPossibleHiddenSet(card.Library, card.Poison),
			state.NewPossibleHiddenSet(card.Nurse, card.Museum),
			card.NewSet(card.Butcher, card.Blowgun, card.Theater),
		),
	}
	observer := &captureActionObserver{}
	factory := func(gs state.GameState, possibleStates []state.PossibleState) ActionEvaluator {
		return NewExpectedStatesRemovedEvaluator(gs, possibleStates)
	}
	driver := NewBruteForceActionEvaluator(testLogger(), observer, 2, false, rand.New(rand.NewSource(1)), factory)
	sampler := NewSamplingActionEvaluator(driver, 0.5, rand.New(rand.NewSource(2)))

	// WHEN both scans run concurrently
	var wg sync.WaitGroup
	for _, gs := range []state.GameState{first, second} {
		gs := gs
		wg.Add(1)
		go func() {
			defer wg.Done()
			sampler.FindOptimalAction(gs, possibleStates)
		}()
	}
	wg.Wait()

	// THEN each scan terminates independently with the completion signal
	require.Len(t, observer.errs, 2)
	for _, err := range observer.errs {
		require.ErrorIs(t, err, ErrCompleted)
	}
	for _, gs := range []state.GameState{first, second} {
		fraction, known := sampler.Progress(gs)
		require.True(t, known)
		require.Equal(t, 1.0, fraction)
	}
}
