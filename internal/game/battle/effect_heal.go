package battle

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/game/combat"
	"github.com/udisondev/famsim/internal/rng"
)

func notFull(c *Card) bool { return !c.fullHealth() }

func floor(v float64) float64 { return math.Floor(v) }

func (b *Battle) healCandidates(a *action) []*Card {
	return filter(b.allPossible(a.skill.area, false, a.executor), notFull)
}

// executeHeal restores Arg1 × the WIS heal amount to the wounded targets.
// With Arg2 = 1 the heal is Arg1 × the target's base hp instead.
func (b *Battle) executeHeal(a *action) {
	ex, s := a.executor, a.skill
	targets := b.resolve(s.area, false, ex, notFull)
	amount := floor(s.Arg1 * combat.CalcHealAmount(b.src, b.params, ex.WIS()))
	for _, t := range targets {
		heal := amount
		if s.Arg2 == 1 {
			heal = s.Arg1 * t.base.hp
		}
		b.damageDirect(t, -heal)
	}
}

func (b *Battle) drainTargets(a *action) []*Card {
	return filter(b.targets(a.skill, a.executor), notFull)
}

// executeDrain shares the damage the executor just took among the wounded targets.
func (b *Battle) executeDrain(a *action) {
	targets := b.drainTargets(a)
	if len(targets) == 0 {
		return
	}
	amount := floor(a.executor.lastDamageTaken / float64(len(targets)))
	for _, t := range targets {
		b.damageDirect(t, -amount)
	}
}

// executeRevive brings the dead targets back at Arg1 of their base hp.
func (b *Battle) executeRevive(a *action) {
	for _, t := range b.targets(a.skill, a.executor) {
		t.revive(a.skill.Arg1)
		b.log.Debug("card revived", zap.Int("card", t.ID), zap.Float64("hp", t.hp))
	}
}

// surviveEligible: the hit would be lethal and the card is above the Arg1 hp ratio.
func (b *Battle) surviveEligible(a *action) bool {
	ex := a.executor
	return b.eligible(a) && ex.HPRatio() > a.skill.Arg1 && a.wouldBeDamage >= ex.hp
}

// executeRandom runs the first sub-skill, in shuffled order, that would fire.
// Sub-skills skip the trigger roll: the random skill already rolled it.
func (b *Battle) executeRandom(a *action) {
	ids := slices.Clone(a.skill.RandomSkills)
	rng.Shuffle(b.src, ids)

	for _, id := range ids {
		sub := *a
		sub.skill = b.mustBind(id)
		sub.noProbCheck = true
		if b.willBeExecuted(&sub) {
			b.execute(&sub)
			return
		}
	}
}
