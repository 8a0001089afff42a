package dataset

import (
	"fmt"
	"math/rand"
	"strings"
)

// Sampler yields an endless stream of training samples.
type Sampler interface {
	Next() Sample
}

// UniformSampler draws every sample independently and uniformly at random,
// with replacement.
type UniformSampler struct {
	data *Dataset
	rng  *rand.Rand
}

// NewUniformSampler returns a sampler over d seeded with seed.
func NewUniformSampler(d *Dataset, seed int64) *UniformSampler {
	return &UniformSampler{data: d, rng: rand.New(rand.NewSource(seed))}
}

// Next returns a random sample.
func (s *UniformSampler) Next() Sample {
	return s.data.Samples[s.rng.Intn(len(s.data.Samples))]
}

// ShuffleSampler visits every sample once per epoch in a fresh random order.
type ShuffleSampler struct {
	data  *Dataset
	rng   *rand.Rand
	order []int
	pos   int
	epoch int
}

// NewShuffleSampler returns a sampler over d seeded with seed.
func NewShuffleSampler(d *Dataset, seed int64) *ShuffleSampler {
	order := make([]int, len(d.Samples))
	for i := range order {
		order[i] = i
	}
	s := &ShuffleSampler{data: d, rng: rand.New(rand.NewSource(seed)), order: order}
	s.shuffle()
	return s
}

func (s *ShuffleSampler) shuffle() {
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	s.pos = 0
}

// Next returns the next sample of the current epoch, starting a new epoch
// when the current one is exhausted.
func (s *ShuffleSampler) Next() Sample {
	if s.pos == len(s.order) {
		s.epoch++
		s.shuffle()
	}
	sample := s.data.Samples[s.order[s.pos]]
	s.pos++
	return sample
}

// Epoch returns the number of completed epochs.
func (s *ShuffleSampler) Epoch() int {
	return s.epoch
}

// Policy selects how samples are drawn.
type Policy string

const (
	PolicyUniform Policy = "uniform"
	PolicyShuffle Policy = "shuffle"
)

// ParsePolicy returns the policy named by s. An empty string selects PolicyUniform.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyUniform, nil
	case PolicyUniform, PolicyShuffle:
		return p, nil
	default:
		return "", fmt.Errorf("unknown sampling policy %q", s)
	}
}

// NewSampler returns a sampler over d following p.
func NewSampler(d *Dataset, p Policy, seed int64) (Sampler, error) {
	if d == nil || len(d.Samples) == 0 {
		return nil, ErrEmpty
	}
	switch p {
	case PolicyUniform, "":
		return NewUniformSampler(d, seed), nil
	case PolicyShuffle:
		return NewShuffleSampler(d, seed), nil
	default:
		return nil, fmt.Errorf("unknown sampling policy %q", p)
	}
}
