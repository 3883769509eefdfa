package services

import (
	"math/rand"
	"sync"

	"stakemax/domain/interfaces"
)

// seededSource is a RandSource backed by math/rand with an explicit seed.
// The seed is supplied by the caller and can be published alongside results,
// which makes every resolution reproducible.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a random source from an explicit seed
func NewSeededSource(seed int64) interfaces.RandSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// sequenceSource replays a fixed sequence of values. Used in tests to force
// specific outcomes.
type sequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequenceSource creates a random source that replays the given values,
// wrapping around when exhausted
func NewSequenceSource(values ...float64) interfaces.RandSource {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
