// Package rng provides the random source every battle draws from.
//
// A battle consumes draws in a fixed order, so one Source must never be shared
// between battles running concurrently.
package rng

import (
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// Source is a stream of uniform draws.
type Source interface {
	// Float64 returns a number in [0,1).
	Float64() float64
	// Range returns a number in [min,max).
	Range(min, max float64) float64
	// IntN returns an integer in [0,n). It panics if n <= 0.
	IntN(n int) int
}

// Rand is a Source backed by ChaCha8.
type Rand struct {
	r *rand.Rand
}

// New returns a ChaCha8 Source seeded with seed.
func New(seed [32]byte) *Rand {
	return &Rand{r: rand.New(rand.NewChaCha8(seed))}
}

// NewStream returns the Source of battle index within a run seeded with base.
func NewStream(base uint64, index int) *Rand {
	return New(DeriveSeed(base, index))
}

// DeriveSeed hashes (base, index) into an independent ChaCha8 seed.
func DeriveSeed(base uint64, index int) [32]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], base)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return blake2b.Sum256(buf[:])
}

func (s *Rand) Float64() float64 { return s.r.Float64() }

func (s *Rand) Range(min, max float64) float64 {
	return s.r.Float64()*(max-min) + min
}

func (s *Rand) IntN(n int) int { return s.r.IntN(n) }

// Pick returns a uniformly drawn element of items. items must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Shuffle permutes items in place, drawing from the last index down.
func Shuffle[T any](src Source, items []T) {
	for n := len(items) - 1; n > 0; n-- {
		k := src.IntN(n + 1)
		items[k], items[n] = items[n], items[k]
	}
}
