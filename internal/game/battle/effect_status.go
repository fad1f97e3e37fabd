package battle

import (
	"math"

	"github.com/udisondev/famsim/internal/data"
)

// executeBuff raises one or two statuses (Arg2, Arg3) of every target by Arg1.
// Stats and the shield scale with the executor's calc stat, the rest take Arg1 as is.
func (b *Battle) executeBuff(a *action) {
	ex, s := a.executor, a.skill
	statuses := s.buffStatuses()
	baseStat := ex.stat(s.Calc)

	for _, t := range b.targets(s, ex) {
		for _, st := range statuses {
			var amount, maxAmount float64
			switch {
			case st.IsStat():
				if s.Range == data.RangeSelfBothSides {
					// the executor may have just buffed itself
					baseStat = ex.stat(s.Calc)
				}
				amount = math.RoundToEven(s.Arg1 * baseStat)
			case st == data.StatusHPShield:
				amount = math.RoundToEven(s.Arg1 * baseStat)
				maxAmount = math.RoundToEven(t.base.hp * s.Arg3)
			default:
				amount = s.Arg1
			}
			b.applyStatus(t, st, amount, false, maxAmount)
		}
	}
}

// onHitDebuffEligible also spends one of the skill's charges (Arg5) on success.
func (b *Battle) onHitDebuffEligible(a *action) bool {
	s := a.skill
	targets := b.targets(s, a.executor)
	if !s.chargesLoaded {
		s.charges = int(s.Arg5)
		s.chargesLoaded = true
	}
	if s.charges == 0 {
		return false
	}
	ok := b.eligible(a) && len(targets) > 0
	if ok {
		s.charges--
	}
	return ok
}

// clearCond returns the status filter of a dispel (buffs) or a debuff clear.
func clearCond(s *Skill) func(float64) bool {
	if s.Func == data.FuncDispel {
		return isPositive
	}
	return isNegative
}

func (b *Battle) clearTargets(a *action) []*Card {
	cond := clearCond(a.skill)
	return filter(b.targets(a.skill, a.executor), func(c *Card) bool {
		return c.hasStatus(cond)
	})
}

func (b *Battle) executeClear(a *action) {
	cond := clearCond(a.skill)
	for _, t := range b.clearTargets(a) {
		t.clearStatus(cond)
	}
}

func (b *Battle) executeTurnOrderChange(a *action) {
	b.turnOrderChanged = true
	b.basis = data.TurnOrderBasis(a.skill.Arg1)
	b.basisTurns = int(a.skill.Arg2)
}
