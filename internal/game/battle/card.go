package battle

import (
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/affliction"
	"github.com/udisondev/famsim/internal/game/combat"
	"github.com/udisondev/famsim/internal/rng"
)

type stats struct {
	hp, atk, def, wis, agi float64
}

// Card — боевой экземпляр фамилиара. Создаётся на каждый бой из CardTemplate.
type Card struct {
	ID        int // unique within the battle, 1-based
	Template  *data.CardTemplate
	Player    int
	Column    int
	Row       data.Row
	ProcIndex int
	Mounted   bool

	base        stats
	hp          float64
	status      Status
	affl        *affliction.State
	dead        bool
	bcAddedProb float64
	floorFactor float64

	// damage-phase scratch, cleared after every hit resolution
	lastDamageTaken float64
	lastDamageDealt float64
	justMissed      bool
	justEvaded      bool

	autoAttack      *Skill
	opening         []*Skill
	active          []*Skill
	protect         []*Skill // protect and evade
	defense         []*Skill
	survive         *Skill
	inherentOnDeath *Skill
	grantedOnDeath  *Skill
}

// Name returns the template name.
func (c *Card) Name() string { return c.Template.Name }

func (c *Card) HP() float64     { return c.hp }
func (c *Card) BaseHP() float64 { return c.base.hp }
func (c *Card) Dead() bool      { return c.dead }

// Status returns a copy of the card's buffs and debuffs.
func (c *Card) Status() Status { return c.status }

// Affliction returns the kind of the active affliction.
func (c *Card) Affliction() data.AfflictionKind { return c.affl.Kind() }

func (c *Card) ATK() float64 { return c.statValue(data.StatusATK, c.base.atk, c.status.ATK) }
func (c *Card) DEF() float64 { return c.statValue(data.StatusDEF, c.base.def, c.status.DEF) }
func (c *Card) WIS() float64 { return c.statValue(data.StatusWIS, c.base.wis, c.status.WIS) }
func (c *Card) AGI() float64 { return c.statValue(data.StatusAGI, c.base.agi, c.status.AGI) }

func (c *Card) statValue(t data.StatusType, base, delta float64) float64 {
	v := max(base+delta, 0)
	if c.status.newLogic[t] {
		v = max(v, base*c.floorFactor)
	}
	return v
}

// stat returns the stat a skill computes with. DEFAULT reads as WIS.
func (c *Card) stat(calc data.CalcType) float64 {
	switch calc {
	case data.CalcDefault, data.CalcWIS:
		return c.WIS()
	case data.CalcATK:
		return c.ATK()
	case data.CalcAGI:
		return c.AGI()
	}
	invariantf("card %d: stat for calc %s", c.ID, calc)
	return 0
}

func (c *Card) orderStat(basis data.TurnOrderBasis) float64 {
	switch basis {
	case data.TurnOrderATK:
		return c.ATK()
	case data.TurnOrderDEF:
		return c.DEF()
	case data.TurnOrderWIS:
		return c.WIS()
	case data.TurnOrderAGI:
		return c.AGI()
	}
	invariantf("card %d: turn order basis %s", c.ID, basis)
	return 0
}

func (c *Card) HPRatio() float64 { return c.hp / c.base.hp }

func (c *Card) fullHealth() bool { return c.hp >= c.base.hp }

func (c *Card) CanAttack() bool   { return c.affl.CanAttack() }
func (c *Card) CanUseSkill() bool { return c.affl.CanUseSkill() }

func (c *Card) willMiss(src rng.Source) bool { return c.affl.WillMiss(src) }

// changeHP adds amount (negative for damage) and clamps to [0, base].
// Reports whether the card died from this change.
func (c *Card) changeHP(amount float64) bool {
	if c.dead {
		return false
	}
	c.hp = min(c.hp+amount, c.base.hp)
	if c.hp <= 0 {
		c.hp = 0
		c.setDead()
		return true
	}
	return false
}

// setDead keeps a granted on-death skill: it still fires in the cascade.
func (c *Card) setDead() {
	c.dead = true
	c.affl = nil
	c.status = Status{}
}

func (c *Card) revive(ratio float64) {
	if !c.dead {
		invariantf("card %d: revive while alive", c.ID)
	}
	c.dead = false
	c.hp = c.base.hp * ratio
	c.status = Status{}
}

func (c *Card) setAffliction(kind data.AfflictionKind, opt affliction.Options, rules affliction.Rules) {
	s, err := affliction.Apply(c.affl, kind, opt, rules)
	if err != nil {
		fail(configf("card %d: %v", c.ID, err))
	}
	c.affl = s
}

// changeStatus applies one status change.
// Stats accumulate; resistances keep the highest value; the shield accumulates up to maxAmount (0 = unbounded).
func (c *Card) changeStatus(t data.StatusType, amount float64, newLogic bool, maxAmount float64) {
	s := &c.status
	switch t {
	case data.StatusATK:
		s.ATK += amount
	case data.StatusDEF:
		s.DEF += amount
	case data.StatusWIS:
		s.WIS += amount
	case data.StatusAGI:
		s.AGI += amount
	case data.StatusAttackResistance:
		s.AttackResistance = max(s.AttackResistance, amount)
	case data.StatusMagicResistance:
		s.MagicResistance = max(s.MagicResistance, amount)
	case data.StatusBreathResistance:
		s.BreathResistance = max(s.BreathResistance, amount)
	case data.StatusSkillProbability:
		s.SkillProbability += amount
	case data.StatusWillAttackAgain:
		s.WillAttackAgain = int(amount)
	case data.StatusActionOnDeath:
		s.ActionOnDeath = int(amount)
	case data.StatusHPShield:
		s.HPShield += amount
		if maxAmount != 0 && s.HPShield > maxAmount {
			s.HPShield = maxAmount
		}
	default:
		invariantf("card %d: status %s", c.ID, t)
	}
	if newLogic && t.IsStat() {
		s.newLogic[t] = true
	}
}

// clearStatus zeroes every status field matching cond.
// A granted on-death skill goes away with its status.
func (c *Card) clearStatus(cond func(float64) bool) {
	c.status.clear(cond)
	if c.status.ActionOnDeath == 0 {
		c.grantedOnDeath = nil
	}
}

func (c *Card) hasStatus(cond func(float64) bool) bool {
	return c.status.any(cond)
}

func (c *Card) hasOnDeathSkill() bool {
	return c.inherentOnDeath != nil || c.grantedOnDeath != nil
}

func (c *Card) clearDamagePhaseData() {
	c.lastDamageTaken = 0
	c.lastDamageDealt = 0
	c.justMissed = false
	c.justEvaded = false
}

// absorb runs incoming damage through the hp shield.
func (c *Card) absorb(damage float64) float64 {
	passed, left := combat.AbsorbShield(damage, c.status.HPShield)
	c.status.HPShield = left
	return passed
}

func pickSkill(src rng.Source, skills []*Skill) *Skill {
	if len(skills) == 0 {
		return nil
	}
	return rng.Pick(src, skills)
}

func (c *Card) randomOpening(src rng.Source) *Skill { return pickSkill(src, c.opening) }
func (c *Card) randomActive(src rng.Source) *Skill  { return pickSkill(src, c.active) }
func (c *Card) randomProtect(src rng.Source) *Skill { return pickSkill(src, c.protect) }
func (c *Card) randomDefense(src rng.Source) *Skill { return pickSkill(src, c.defense) }

// addSkill files s under its trigger type.
func (c *Card) addSkill(s *Skill) error {
	switch s.Type {
	case data.SkillTypeOpening:
		c.opening = append(c.opening, s)
	case data.SkillTypeActive:
		c.active = append(c.active, s)
	case data.SkillTypeProtect, data.SkillTypeEvade:
		c.protect = append(c.protect, s)
	case data.SkillTypeDefense:
		if s.Func != data.FuncSurvive {
			c.defense = append(c.defense, s)
			return nil
		}
		if c.survive != nil {
			return configf("card %d: second survive skill %d", c.Template.ID, s.ID)
		}
		c.survive = s
	case data.SkillTypeOnDeath:
		if c.inherentOnDeath != nil {
			return configf("card %d: second on-death skill %d", c.Template.ID, s.ID)
		}
		c.inherentOnDeath = s
	default:
		return configf("card %d: skill %d type %s", c.Template.ID, s.ID, s.Type)
	}
	return nil
}
