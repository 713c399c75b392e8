package simulation

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// RandomSource yields uniform draws in [0,1). A source must not be shared
// between goroutines.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewEntropySource returns a source seeded from system entropy.
func NewEntropySource() *rand.Rand {
	return NewSeededSource(EntropySeed())
}

// EntropySeed reads a seed from the OS entropy pool, falling back to the clock.
func EntropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// SeedSequence hands out per-task seeds derived from one base seed, so a fixed
// base seed reproduces the same task seeds regardless of scheduling.
type SeedSequence struct {
	rng *rand.Rand
}

// NewSeedSequence creates a sequence. A zero base seed draws from entropy.
func NewSeedSequence(base int64) *SeedSequence {
	if base == 0 {
		base = EntropySeed()
	}
	return &SeedSequence{rng: NewSeededSource(base)}
}

// Next returns the next task seed.
func (s *SeedSequence) Next() int64 {
	return s.rng.Int63()
}
