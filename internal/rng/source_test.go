package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intSeq replays IntN results and records the bounds it was asked for.
type intSeq struct {
	vals   []int
	bounds []int
}

func (s *intSeq) Float64() float64           { return 0 }
func (s *intSeq) Range(min, _ float64) float64 { return min }
func (s *intSeq) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func TestStreamDeterministic(t *testing.T) {
	a := NewStream(42, 7)
	b := NewStream(42, 7)
	for range 100 {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStreamsIndependent(t *testing.T) {
	assert.NotEqual(t, DeriveSeed(42, 0), DeriveSeed(42, 1))
	assert.NotEqual(t, DeriveSeed(42, 0), DeriveSeed(43, 0))
}

func TestRange(t *testing.T) {
	src := NewStream(1, 0)
	for range 1000 {
		v := src.Range(0.9, 1.1)
		require.GreaterOrEqual(t, v, 0.9)
		require.Less(t, v, 1.1)
	}
}

func TestShuffleDrawOrder(t *testing.T) {
	src := &intSeq{vals: []int{0, 0, 1}}
	items := []string{"a", "b", "c", "d"}

	Shuffle(src, items)

	// n=3: swap(0,3) -> d b c a; n=2: swap(0,2) -> c b d a; n=1: swap(1,1)
	assert.Equal(t, []string{"c", "b", "d", "a"}, items)
	assert.Equal(t, []int{4, 3, 2}, src.bounds)
}

func TestShuffleShortSlices(t *testing.T) {
	src := &intSeq{}
	one := []int{5}
	Shuffle(src, one)
	Shuffle(src, []int(nil))
	assert.Equal(t, []int{5}, one)
	assert.Empty(t, src.bounds, "no draws for fewer than two items")
}

func TestPick(t *testing.T) {
	src := &intSeq{vals: []int{2}}
	assert.Equal(t, "z", Pick(src, []string{"x", "y", "z"}))
	assert.Equal(t, []int{3}, src.bounds)
}
