package battle

import "github.com/udisondev/famsim/internal/data"

// Status — бафы и дебафы карты. Reset to the zero value on death and revive.
type Status struct {
	// additive deltas
	ATK float64
	DEF float64
	WIS float64
	AGI float64

	// resistances do not stack, the highest applied value wins
	AttackResistance float64
	MagicResistance  float64
	BreathResistance float64

	SkillProbability float64 // fraction, added ×100 to the trigger roll
	ActionOnDeath    int     // id of a granted on-death skill
	HPShield         float64
	WillAttackAgain  int

	// newLogic marks stats whose value is floor-clamped at a fraction of the base.
	newLogic [data.StatusAGI + 1]bool
}

// NewLogic reports whether the floor clamp applies to stat t.
func (s *Status) NewLogic(t data.StatusType) bool {
	return t.IsStat() && s.newLogic[t]
}

func (s *Status) resistance(w data.Ward) float64 {
	switch w {
	case data.WardPhysical:
		return s.AttackResistance
	case data.WardMagical:
		return s.MagicResistance
	case data.WardBreath:
		return s.BreathResistance
	}
	invariantf("resistance for ward %s", w)
	return 0
}

// any reports whether some field satisfies cond.
func (s *Status) any(cond func(float64) bool) bool {
	return cond(s.ATK) ||
		cond(s.DEF) ||
		cond(s.WIS) ||
		cond(s.AGI) ||
		cond(s.AttackResistance) ||
		cond(s.MagicResistance) ||
		cond(s.BreathResistance) ||
		cond(s.SkillProbability) ||
		cond(float64(s.ActionOnDeath)) ||
		cond(s.HPShield) ||
		cond(float64(s.WillAttackAgain))
}

// clear zeroes every field that satisfies cond.
func (s *Status) clear(cond func(float64) bool) {
	for _, f := range []*float64{
		&s.ATK, &s.DEF, &s.WIS, &s.AGI,
		&s.AttackResistance, &s.MagicResistance, &s.BreathResistance,
		&s.SkillProbability, &s.HPShield,
	} {
		if cond(*f) {
			*f = 0
		}
	}
	if cond(float64(s.ActionOnDeath)) {
		s.ActionOnDeath = 0
	}
	if cond(float64(s.WillAttackAgain)) {
		s.WillAttackAgain = 0
	}
}

func isPositive(v float64) bool { return v > 0 }
func isNegative(v float64) bool { return v < 0 }
