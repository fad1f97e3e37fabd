package battle

import "github.com/udisondev/famsim/internal/data"

// protectEligible checks a protect-type skill against the hit on a.target.
// A card only covers itself with a Myself range.
func (b *Battle) protectEligible(a *action) bool {
	targets := b.targets(a.skill, a.executor)
	if a.target == a.executor && a.skill.Range != data.RangeMyself {
		return false
	}
	return b.eligible(a) && contains(targets, a.target)
}

func (b *Battle) evadeEligible(a *action) bool {
	targets := b.targets(a.skill, a.executor)
	if a.target == a.executor && a.skill.Range != data.RangeMyself {
		return false
	}
	return b.eligible(a) && contains(targets, a.target) && canEvade(a.skill, a.attackSkill)
}

// canEvade reports whether evade (keyed on the calc in Arg2) applies to the attack.
// Counters and auto attacks cannot be evaded.
func canEvade(evade, attack *Skill) bool {
	if attack.Func == data.FuncCounter || attack.Func == data.FuncProtectCounter || attack.AutoAttack {
		return false
	}
	return data.CalcType(evade.Arg2).Covers(attack.Calc)
}

// executeProtect takes the hit in place of a.target, with its secondary effect.
func (b *Battle) executeProtect(a *action) {
	protector, attacker, s := a.executor, a.attacker, a.attackSkill
	b.damagePhase(attacker, protector, s, a.scaledRatio)

	if !attacker.justMissed && !protector.dead {
		switch {
		case s.Func == data.FuncAttack || s.Func == data.FuncMagic:
			b.processAffliction(attacker, protector, s)
		case s.Func.IsDebuffAttack():
			if b.src.Float64() <= s.Arg3 {
				b.processDebuff(attacker, protector, s)
			}
		}
	}
	if a.attacked != nil {
		a.attacked[protector.ID] = true
	}
	b.clearDamagePhaseData()
}

// executeEvade takes the hit in place of a.target and nullifies it.
func (b *Battle) executeEvade(a *action) {
	a.executor.justEvaded = true
	b.damagePhase(a.attacker, a.executor, a.attackSkill, a.scaledRatio)
	if a.attacked != nil {
		a.attacked[a.executor.ID] = true
	}
	b.clearDamagePhaseData()
}

// executeProtectCounter protects, then strikes back with the protector's own skill
// if both sides survived and the protector can still act.
func (b *Battle) executeProtectCounter(a *action) {
	b.executeProtect(a)
	protector, attacker := a.executor, a.attacker
	if !protector.dead && protector.CanAttack() && !attacker.dead {
		b.damagePhase(protector, attacker, a.skill, 1)
	}
}

// counterDispelTargets returns the buffed cards of the dispel range (Arg3).
func (b *Battle) counterDispelTargets(a *action) []*Card {
	return b.resolve(a.skill.dispelArea, false, a.executor, func(c *Card) bool {
		return c.hasStatus(isPositive)
	})
}

// executeCounterDispel protects, then strips the buffs of the dispel range.
// The range is resolved again once the hit has landed.
func (b *Battle) executeCounterDispel(a *action) {
	b.executeProtect(a)
	if a.executor.dead || !a.executor.CanUseSkill() {
		return
	}
	for _, t := range b.counterDispelTargets(a) {
		t.clearStatus(isPositive)
	}
}
