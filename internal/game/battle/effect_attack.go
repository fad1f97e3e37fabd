package battle

import (
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/rng"
)

func (b *Battle) executeAttack(a *action) {
	ex, s := a.executor, a.skill
	if s.area.Kind == data.KindEnemyRandom {
		b.randomAttack(ex, s)
		return
	}

	targets := b.targets(s, ex)
	if len(targets) == 0 {
		return
	}
	ratio := scaleRatio(s, len(targets))

	if s.Func.IsIndirect() {
		b.aoeAttack(ex, s, targets, ratio)
		return
	}
	// contact hits stop once the executor falls; a target may have died protecting another
	aliveAtStart := !ex.dead
	for _, t := range targets {
		if aliveAtStart && ex.dead {
			break
		}
		if t.dead {
			continue
		}
		b.singleAttack(ex, t, s, ratio)
	}
}

// randomAttack hits Count times, each time a fresh random live enemy.
// It stops early when the executor dies mid-way.
func (b *Battle) randomAttack(ex *Card, s *Skill) {
	aliveAtStart := !ex.dead
	for range s.area.Count {
		if aliveAtStart && ex.dead {
			return
		}
		live := filter(b.enemyOf(ex.Player).main[:], isAlive)
		if len(live) == 0 {
			return
		}
		b.singleAttack(ex, rng.Pick(b.src, live), s, 1)
	}
}

// singleAttack resolves a contact hit on one target: protect, damage,
// secondary effect, then the target's defense skill.
func (b *Battle) singleAttack(ex, target *Card, s *Skill, ratio float64) {
	if !b.processProtect(ex, target, s, nil, ratio) {
		def := target.randomDefense(b.src)
		b.damagePhase(ex, target, s, ratio)
		b.afterHit(ex, target, s)
		if def != nil {
			da := &action{executor: target, skill: def, attacker: ex}
			if b.willBeExecuted(da) {
				b.execute(da)
			}
		}
	}
	if s.Func.IsDrainAttack() {
		b.drainPhase(ex, s)
	}
	b.clearDamagePhaseData()
}

// aoeAttack hits targets in random order. At most one reaction (protect or
// defense skill) happens per AoE, and no card is hit twice.
func (b *Battle) aoeAttack(ex *Card, s *Skill, targets []*Card, ratio float64) {
	rng.Shuffle(b.src, targets)
	reacted := false
	attacked := make(map[int]bool, len(targets))

	for _, t := range targets {
		if t.dead {
			continue
		}
		protected := false
		if !reacted && !attacked[t.ID] {
			protected = b.processProtect(ex, t, s, attacked, ratio)
			reacted = protected
		}
		if !protected && !attacked[t.ID] {
			def := t.randomDefense(b.src)
			b.damagePhase(ex, t, s, ratio)
			attacked[t.ID] = true
			b.afterHit(ex, t, s)
			if def != nil {
				da := &action{executor: t, skill: def, attacker: ex}
				if b.willBeExecuted(da) && !reacted {
					b.execute(da)
					reacted = true
				}
			}
		}
		if s.Func.IsDrainAttack() {
			b.drainPhase(ex, s)
		}
		b.clearDamagePhaseData()
	}
}

// drainPhase spreads Arg2 of the damage just dealt over the wounded cards of the heal range.
func (b *Battle) drainPhase(ex *Card, s *Skill) {
	targets := b.resolve(s.healArea, false, ex, notFull)
	if len(targets) == 0 {
		return
	}
	amount := floor(ex.lastDamageDealt * s.Arg2 / float64(len(targets)))
	for _, t := range targets {
		b.damageDirect(t, -amount)
	}
}
