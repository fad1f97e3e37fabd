package battle

import (
	"math"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/affliction"
	"github.com/udisondev/famsim/internal/game/combat"
)

// wouldBeDamage computes the damage of one hit before miss, evade, kill, shield and survive.
func (b *Battle) wouldBeDamage(attacker, target *Card, s *Skill, ratio float64) float64 {
	var dmg float64
	switch s.Calc {
	case data.CalcDefault, data.CalcWIS:
		dmg = combat.CalcMagicalDamage(b.src, b.params, attacker.WIS(), target.WIS(), target.DEF())
	case data.CalcATK:
		dmg = combat.CalcPhysicalDamage(b.src, b.params, attacker.ATK(), target.DEF(),
			attacker.Row, target.Row, s.Func.IsPositionIndependent())
	case data.CalcAGI:
		dmg = combat.CalcPhysicalDamage(b.src, b.params, attacker.AGI(), target.DEF(),
			attacker.Row, target.Row, s.Func.IsPositionIndependent())
	default:
		fail(configf("skill %d: damage with calc %s", s.ID, s.Calc))
	}
	dmg *= s.Arg1 * ratio
	return combat.ApplyWard(dmg, target.status.resistance(s.Ward))
}

// damagePhase resolves one hit of s from attacker on target.
func (b *Battle) damagePhase(attacker, target *Card, s *Skill, ratio float64) {
	damage := b.wouldBeDamage(attacker, target, s, ratio)

	missed := attacker.willMiss(b.src)
	attacker.justMissed = missed
	if missed {
		damage = 0
	}
	evaded := target.justEvaded
	if evaded {
		damage = 0
	}

	killed := false
	if s.Func == data.FuncKill && !missed && !evaded && b.src.Float64() <= s.Arg2 {
		killed = true
		damage = target.hp + target.status.HPShield
	}
	if !missed && !evaded && !killed {
		damage = target.absorb(damage)
	}

	if sv := target.survive; sv != nil {
		a := &action{executor: target, skill: sv, attacker: attacker, wouldBeDamage: damage}
		if b.willBeExecuted(a) && !killed && !missed && !evaded {
			b.execute(a)
			damage = target.hp - 1
		}
	}

	died := target.changeHP(-damage)
	target.lastDamageTaken = damage
	attacker.lastDamageDealt = damage

	if ce := b.log.Check(zap.DebugLevel, "hit"); ce != nil {
		ce.Write(
			zap.Int("attacker", attacker.ID),
			zap.Int("target", target.ID),
			zap.Stringer("skill", s),
			zap.Float64("damage", damage),
			zap.Float64("target_hp", target.hp),
			zap.Bool("missed", missed),
			zap.Bool("evaded", evaded),
			zap.Bool("killed", killed),
		)
	}
	if died {
		b.cardDied(target)
	}
}

// damageDirect changes hp outside a hit: poison, heal (negative amount), drain.
func (b *Battle) damageDirect(target *Card, amount float64) {
	if target.changeHP(-amount) {
		b.cardDied(target)
	}
}

func (b *Battle) cardDied(c *Card) {
	b.log.Debug("card died", zap.Int("card", c.ID), zap.String("name", c.Name()), zap.Int("player", c.Player))
	if c.hasOnDeathSkill() {
		b.onDeath = append(b.onDeath, c)
	}
}

// processAffliction rolls the affliction carried by s (Arg2 kind, Arg3 chance).
// Arg4 is the poison percent or the duration in turns; Arg5 the blind miss chance.
func (b *Battle) processAffliction(ex, target *Card, s *Skill) {
	kind := data.AfflictionKind(s.Arg2)
	if kind == data.AfflictionNone {
		return
	}
	var opt affliction.Options
	if kind == data.AfflictionPoison {
		opt.Percent = s.Arg4
	} else {
		opt.Turns = int(s.Arg4)
	}
	opt.MissProb = s.Arg5

	if b.src.Float64() <= s.Arg3 {
		target.setAffliction(kind, opt, b.afflRules)
		b.log.Debug("affliction applied",
			zap.Int("executor", ex.ID),
			zap.Int("target", target.ID),
			zap.Stringer("kind", kind),
		)
	}
}

// processDebuff lowers one status of target. The base amount depends on the
// debuff family; caster-based and on-hit debuffs also arm the floor clamp.
func (b *Battle) processDebuff(ex, target *Card, s *Skill) {
	status := data.StatusType(s.Arg2)
	multi := s.Arg1
	newLogic := false
	flat := false

	switch s.Func {
	case data.FuncDebuffAttack, data.FuncDebuffIndirect:
		multi = s.Arg4
	case data.FuncDebuff:
	case data.FuncCasterBasedDebuff:
		newLogic = true
	case data.FuncCasterBasedDebuffAttack, data.FuncCasterBasedDebuffMagic:
		multi = s.Arg4
		newLogic = true
	case data.FuncOnHitDebuff:
		newLogic = true
		if s.Arg4 != 0 {
			multi = s.Arg4
			flat = true
		}
	default:
		invariantf("skill %d: debuff from func %s", s.ID, s.Func)
	}

	var base float64
	switch {
	case flat:
		base = combat.FlatDebuffBase
	case newLogic:
		base = combat.CalcCasterBasedDebuffAmount(ex.WIS())
	default:
		base = combat.CalcDebuffAmount(ex.WIS(), target.WIS())
	}
	amount := math.Floor(base * multi)
	b.applyStatus(target, status, amount, newLogic, 0)

	b.log.Debug("debuff applied",
		zap.Int("executor", ex.ID),
		zap.Int("target", target.ID),
		zap.Stringer("status", status),
		zap.Float64("amount", amount),
	)
}

// applyStatus changes one status and binds the granted skill of an action-on-death buff.
func (b *Battle) applyStatus(c *Card, t data.StatusType, amount float64, newLogic bool, maxAmount float64) {
	if t == data.StatusActionOnDeath {
		c.grantedOnDeath = b.mustBind(int(amount))
	}
	c.changeStatus(t, amount, newLogic, maxAmount)
}

// processProtect offers the hit on target to the enemies of attacker, in column order.
// The first protector whose skill fires takes the hit. attacked, when not nil,
// holds the cards already hit by the current AoE; they cannot protect again.
func (b *Battle) processProtect(attacker, target *Card, s *Skill, attacked map[int]bool, ratio float64) bool {
	for _, c := range b.enemyOf(attacker.Player).main {
		if c.dead {
			continue
		}
		ps := c.randomProtect(b.src)
		if ps == nil || attacked != nil && attacked[c.ID] {
			continue
		}
		a := &action{
			executor:    c,
			skill:       ps,
			attacker:    attacker,
			attackSkill: s,
			target:      target,
			attacked:    attacked,
			scaledRatio: ratio,
		}
		if b.willBeExecuted(a) {
			b.execute(a)
			return true
		}
	}
	return false
}

// afterHit rolls the secondary effect of an attack that connected.
func (b *Battle) afterHit(ex, target *Card, s *Skill) {
	if ex.justMissed || target.justEvaded || target.dead {
		return
	}
	switch {
	case s.Func.IsDebuffAttack():
		if b.src.Float64() <= s.Arg3 {
			b.processDebuff(ex, target, s)
		}
	case s.Func == data.FuncAttack || s.Func == data.FuncMagic:
		b.processAffliction(ex, target, s)
	}
}

func (b *Battle) clearDamagePhaseData() {
	for _, c := range b.mains() {
		c.clearDamagePhaseData()
	}
}
