// Package affliction implements the per-card status ailments: poison, paralysis,
// frozen, disable, silence and blind. A card holds at most one at a time.
package affliction

import (
	"fmt"
	"math"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/rng"
)

// Rules holds the poison tunables.
type Rules struct {
	DefaultPoisonPercent float64 // 5
	PoisonStackFactor    float64 // 2
	PoisonMaxDamage      float64 // 99999 per tick
}

// DefaultRules returns the stock poison tunables.
func DefaultRules() Rules {
	return Rules{DefaultPoisonPercent: 5, PoisonStackFactor: 2, PoisonMaxDamage: 99999}
}

// Options are the per-application parameters taken from the inflicting skill.
type Options struct {
	Percent  float64 // poison: percent of base hp per tick, 0 means the default
	Turns    int     // silence, blind
	MissProb float64 // blind
}

// State is one active affliction. The zero value is not usable; use Apply.
// A nil *State means "no affliction" and every query on it is a no-op.
type State struct {
	kind     data.AfflictionKind
	finished bool

	percent  float64 // poison
	turns    int     // silence, blind
	missProb float64 // blind
}

// Apply merges an application of kind into cur and returns the card's new affliction.
// The same kind stacks onto cur; a different kind replaces it outright.
func Apply(cur *State, kind data.AfflictionKind, opt Options, rules Rules) (*State, error) {
	switch kind {
	case data.AfflictionPoison, data.AfflictionParalysis, data.AfflictionFrozen,
		data.AfflictionDisable, data.AfflictionSilence, data.AfflictionBlind:
	default:
		return cur, fmt.Errorf("affliction %d: %w", kind, data.ErrInvalidEnum)
	}

	if cur != nil && cur.kind == kind {
		cur.add(opt, rules)
		return cur, nil
	}

	s := &State{kind: kind}
	s.add(opt, rules)
	return s, nil
}

func (s *State) add(opt Options, rules Rules) {
	switch s.kind {
	case data.AfflictionPoison:
		toAdd := opt.Percent
		if toAdd == 0 {
			toAdd = rules.DefaultPoisonPercent
		}
		s.percent += toAdd

		// The ceiling comes from the raised value and never binds. This matches the game.
		ceiling := s.percent * rules.PoisonStackFactor
		if s.percent > ceiling {
			s.percent = ceiling
		}
	case data.AfflictionSilence:
		s.turns = opt.Turns
	case data.AfflictionBlind:
		s.turns = opt.Turns
		s.missProb = opt.MissProb
	case data.AfflictionParalysis, data.AfflictionFrozen, data.AfflictionDisable:
	}
}

// Kind returns the affliction kind, or AfflictionNone for nil.
func (s *State) Kind() data.AfflictionKind {
	if s == nil {
		return data.AfflictionNone
	}
	return s.kind
}

// Percent returns the accumulated poison percent.
func (s *State) Percent() float64 {
	if s == nil {
		return 0
	}
	return s.percent
}

// Turns returns the remaining turns of silence or blind.
func (s *State) Turns() int {
	if s == nil {
		return 0
	}
	return s.turns
}

// Finished reports whether the affliction has run its course.
func (s *State) Finished() bool {
	return s == nil || s.finished
}

// CanAttack reports whether the card may act at all (auto attack or skill).
func (s *State) CanAttack() bool {
	if s == nil {
		return true
	}
	switch s.kind {
	case data.AfflictionParalysis, data.AfflictionFrozen, data.AfflictionDisable:
		return s.finished
	}
	return true
}

// CanUseSkill reports whether the card may trigger skills.
func (s *State) CanUseSkill() bool {
	if s == nil {
		return true
	}
	switch s.kind {
	case data.AfflictionSilence:
		return s.finished
	case data.AfflictionParalysis, data.AfflictionFrozen, data.AfflictionDisable:
		return s.finished
	}
	return true
}

// WillMiss rolls the blind miss chance. Only blind consumes a draw.
func (s *State) WillMiss(src rng.Source) bool {
	if s == nil || s.kind != data.AfflictionBlind {
		return false
	}
	return src.Float64() <= s.missProb
}

// Update advances the affliction by one of the owner's turns and returns the
// poison damage to deal (0 for every other kind).
func (s *State) Update(baseHP float64, rules Rules) float64 {
	if s == nil {
		return 0
	}
	switch s.kind {
	case data.AfflictionPoison:
		return min(math.Floor(baseHP*s.percent/100), rules.PoisonMaxDamage)
	case data.AfflictionParalysis, data.AfflictionFrozen, data.AfflictionDisable:
		s.finished = true
	case data.AfflictionSilence, data.AfflictionBlind:
		s.turns--
		if s.turns <= 0 {
			s.finished = true
		}
	}
	return 0
}
