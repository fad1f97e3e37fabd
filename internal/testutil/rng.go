package testutil

// ScriptedRand — rng.Source для тестов: отдаёт заранее заданные значения по порядку,
// после исчерпания возвращает Fallback.
type ScriptedRand struct {
	draws    []float64
	Fallback float64
	// Used counts draws taken so far, scripted or not.
	Used int
}

// NewScriptedRand returns a source that replays draws, then fallback forever.
func NewScriptedRand(fallback float64, draws ...float64) *ScriptedRand {
	return &ScriptedRand{draws: draws, Fallback: fallback}
}

// Push appends draws to the script.
func (s *ScriptedRand) Push(draws ...float64) {
	s.draws = append(s.draws, draws...)
}

// Remaining returns the number of scripted draws not yet consumed.
func (s *ScriptedRand) Remaining() int {
	return max(len(s.draws)-s.Used, 0)
}

func (s *ScriptedRand) Float64() float64 {
	v := s.Fallback
	if s.Used < len(s.draws) {
		v = s.draws[s.Used]
	}
	s.Used++
	return v
}

func (s *ScriptedRand) Range(min, max float64) float64 {
	return s.Float64()*(max-min) + min
}

// IntN maps the next draw onto [0,n).
func (s *ScriptedRand) IntN(n int) int {
	if n <= 0 {
		panic("testutil: IntN with non-positive n")
	}
	v := int(s.Float64() * float64(n))
	return min(v, n-1)
}
