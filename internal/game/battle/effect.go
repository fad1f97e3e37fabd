package battle

import (
	"slices"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/data"
)

// action is the context a skill is checked and executed in.
// Only the fields the trigger needs are set: attacker and attackSkill for
// protect, evade and defense skills, wouldBeDamage for survive.
type action struct {
	executor *Card
	skill    *Skill

	attacker      *Card
	attackSkill   *Skill
	target        *Card        // the card a protect skill would cover
	attacked      map[int]bool // cards already hit by the current AoE
	scaledRatio   float64
	wouldBeDamage float64

	// set when a random skill dispatches to a sub-skill
	noProbCheck bool
}

// eligible is the check every skill shares. The trigger roll is drawn even when
// the executor is dead; only on-death skills may fire from a dead card.
func (b *Battle) eligible(a *action) bool {
	ex, s := a.executor, a.skill
	rolled := true
	if !a.noProbCheck {
		chance := float64(s.Prob) + ex.status.SkillProbability*100 + ex.bcAddedProb
		rolled = b.src.Float64()*100 <= chance
	}
	alive := !ex.dead || s.Type == data.SkillTypeOnDeath
	return alive && rolled && ex.CanAttack() && ex.CanUseSkill()
}

// willBeExecuted checks whether the skill fires in context a.
// Target lists are resolved before the trigger roll, matching the draw order of the game.
func (b *Battle) willBeExecuted(a *action) bool {
	s := a.skill
	switch s.Func {
	case data.FuncBuff,
		data.FuncAttack, data.FuncMagic, data.FuncDebuffAttack, data.FuncDebuffIndirect,
		data.FuncDrainAttack, data.FuncDrainMagic,
		data.FuncCasterBasedDebuffAttack, data.FuncCasterBasedDebuffMagic, data.FuncKill:
		targets := b.targets(s, a.executor)
		return b.eligible(a) && len(targets) > 0
	case data.FuncDebuff, data.FuncCasterBasedDebuff, data.FuncAffliction,
		data.FuncCounter, data.FuncRandom:
		return b.eligible(a)
	case data.FuncOnHitDebuff:
		return b.onHitDebuffEligible(a)
	case data.FuncDispel, data.FuncClearDebuff:
		targets := b.clearTargets(a)
		return b.eligible(a) && len(targets) > 0
	case data.FuncProtect, data.FuncProtectCounter:
		return b.protectEligible(a)
	case data.FuncEvade:
		return b.evadeEligible(a)
	case data.FuncCounterDispel:
		targets := b.counterDispelTargets(a)
		return b.protectEligible(a) && len(targets) > 0
	case data.FuncDrain:
		targets := b.drainTargets(a)
		return b.eligible(a) && len(targets) > 0
	case data.FuncSurvive:
		return b.surviveEligible(a)
	case data.FuncHeal:
		targets := b.healCandidates(a)
		return b.eligible(a) && len(targets) > 0
	case data.FuncRevive:
		targets := b.allPossible(s.area, s.selectDead, a.executor)
		return b.eligible(a) && len(targets) > 0
	case data.FuncTurnOrderChange:
		return b.eligible(a) && !b.turnOrderChanged
	}
	invariantf("skill %d: func %s", s.ID, s.Func)
	return false
}

// execute applies the skill. Callers check willBeExecuted first,
// except for the auto attack which always runs.
func (b *Battle) execute(a *action) {
	if ce := b.log.Check(zap.DebugLevel, "skill"); ce != nil {
		ce.Write(
			zap.Int("card", a.executor.ID),
			zap.Stringer("skill", a.skill),
			zap.Stringer("func", a.skill.Func),
		)
	}

	s := a.skill
	switch s.Func {
	case data.FuncBuff:
		b.executeBuff(a)
	case data.FuncDebuff, data.FuncCasterBasedDebuff, data.FuncOnHitDebuff:
		for _, t := range b.targets(s, a.executor) {
			b.processDebuff(a.executor, t, s)
		}
	case data.FuncDispel, data.FuncClearDebuff:
		b.executeClear(a)
	case data.FuncAffliction:
		for _, t := range b.targets(s, a.executor) {
			b.processAffliction(a.executor, t, s)
		}
	case data.FuncAttack, data.FuncMagic, data.FuncDebuffAttack, data.FuncDebuffIndirect,
		data.FuncDrainAttack, data.FuncDrainMagic,
		data.FuncCasterBasedDebuffAttack, data.FuncCasterBasedDebuffMagic, data.FuncKill:
		b.executeAttack(a)
	case data.FuncProtect:
		b.executeProtect(a)
	case data.FuncEvade:
		b.executeEvade(a)
	case data.FuncProtectCounter:
		b.executeProtectCounter(a)
	case data.FuncCounter:
		b.damagePhase(a.executor, a.attacker, s, 1)
	case data.FuncCounterDispel:
		b.executeCounterDispel(a)
	case data.FuncDrain:
		b.executeDrain(a)
	case data.FuncSurvive:
		// hp is pinned by the damage phase
	case data.FuncHeal:
		b.executeHeal(a)
	case data.FuncRevive:
		b.executeRevive(a)
	case data.FuncTurnOrderChange:
		b.executeTurnOrderChange(a)
	case data.FuncRandom:
		b.executeRandom(a)
	default:
		invariantf("skill %d: func %s", s.ID, s.Func)
	}
}

// mustBind instantiates a skill referenced by id at dispatch time.
func (b *Battle) mustBind(id int) *Skill {
	t, err := b.cat.Skill(id)
	if err != nil {
		fail(configf("%v", err))
	}
	s, err := bindSkill(t, b.cat)
	if err != nil {
		fail(err)
	}
	return s
}

func contains(cards []*Card, c *Card) bool {
	return slices.Contains(cards, c)
}
