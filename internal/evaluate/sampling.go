package evaluate

import (
	"math/rand"
	"sync"

	"mystery-copilot/internal/state"
)

// DefaultSampleRate is the fraction of hypotheses a sampling evaluator keeps.
const DefaultSampleRate = 0.1

// SamplingActionEvaluator wraps another finder and hands it a uniform random
// sample of the hypothesis set instead of the whole thing. Expected-removal
// rankings scale with the sample, so the orderings stay comparable while the
// scan touches a tenth of the states.
type SamplingActionEvaluator struct {
	base ActionFinder
	rate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSamplingActionEvaluator wraps the finder with the given sample rate.
// Rates outside (0, 1] fall back to DefaultSampleRate.
func NewSamplingActionEvaluator(base ActionFinder, rate float64, rng *rand.Rand) *SamplingActionEvaluator {
	if rate <= 0 || rate > 1 {
		rate = DefaultSampleRate
	}
	return &SamplingActionEvaluator{base: base, rate: rate, rng: rng}
}

// FindOptimalAction samples the hypothesis set and delegates.
func (s *SamplingActionEvaluator) FindOptimalAction(gs state.GameState, possibleStates []state.PossibleState) {
	s.base.FindOptimalAction(gs, s.sample(possibleStates))
}

// Cancel delegates to the wrapped finder.
func (s *SamplingActionEvaluator) Cancel(gs state.GameState) {
	s.base.Cancel(gs)
}

// Progress delegates to the wrapped finder.
func (s *SamplingActionEvaluator) Progress(gs state.GameState) (float64, bool) {
	return s.base.Progress(gs)
}

func (s *SamplingActionEvaluator) sample(possibleStates []state.PossibleState) []state.PossibleState {
	keep := int(float64(len(possibleStates)) * s.rate)
	if keep >= len(possibleStates) {
		return possibleStates
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(possibleStates))
	s.mu.Unlock()

	sampled := make([]state.PossibleState, 0, keep)
	for _, i := range perm[:keep] {
		sampled = append(sampled, possibleStates[i])
	}
	return sampled
}
