package session

import (
	"math/rand/v2"
	"sync"

	"github.com/abhisek/tourpref/internal/questionbank"
)

// Sampler builds the question set for one session.
type Sampler interface {
	// Sample picks min(count, len(corpus)) distinct questions and, for each,
	// min(optionsPerQuestion, len(options)) distinct options. The corpus is
	// never modified.
	Sample(corpus []questionbank.Question, count, optionsPerQuestion int) QuestionSet
}

// RandomSampler samples uniformly without replacement from an injected
// random source.
type RandomSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampler creates a sampler drawing from r.
func NewRandomSampler(r *rand.Rand) *RandomSampler {
	return &RandomSampler{rng: r}
}

// NewSeededSampler creates a reproducible sampler.
func NewSeededSampler(seed uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// DefaultSampler creates a sampler seeded from the runtime's random source.
func DefaultSampler() *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// Sample implements Sampler. A non-positive optionsPerQuestion keeps every
// option (still shuffled); a non-positive count yields an empty set.
func (s *RandomSampler) Sample(corpus []questionbank.Question, count, optionsPerQuestion int) QuestionSet {
	if count <= 0 || len(corpus) == 0 {
		return QuestionSet{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := min(count, len(corpus))
	picked := make([]questionbank.Question, 0, n)
	for _, qi := range s.rng.Perm(len(corpus))[:n] {
		src := corpus[qi]

		k := len(src.Options)
		if optionsPerQuestion > 0 {
			k = min(optionsPerQuestion, k)
		}
		opts := make([]questionbank.Option, 0, k)
		for _, oi := range s.rng.Perm(len(src.Options))[:k] {
			opts = append(opts, src.Options[oi])
		}
		picked = append(picked, questionbank.Question{Text: src.Text, Options: opts})
	}
	return QuestionSet{questions: picked}
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(corpus []questionbank.Question, count, optionsPerQuestion int) QuestionSet

func (f SamplerFunc) Sample(corpus []questionbank.Question, count, optionsPerQuestion int) QuestionSet {
	return f(corpus, count, optionsPerQuestion)
}
