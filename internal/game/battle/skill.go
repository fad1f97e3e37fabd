package battle

import (
	"fmt"

	"github.com/udisondev/famsim/internal/data"
)

// Skill is a per-card instance of a skill template.
// Templates are shared and immutable; the instance carries the resolved
// ranges and the charges of on-hit debuffs.
type Skill struct {
	*data.SkillTemplate

	area       data.RangeSpec
	selectDead bool

	// on-hit debuff charges, loaded from Arg5 on first eligibility check
	charges       int
	chargesLoaded bool

	healArea   data.RangeSpec // drain attacks: who receives the drained hp (Arg4)
	dispelArea data.RangeSpec // counter dispel: whose buffs are cleared (Arg3)
}

func (s *Skill) String() string {
	return fmt.Sprintf("%s(%d)", s.Name, s.ID)
}

// bindSkill validates the arguments of t against its function and returns a fresh instance.
// Sub-skills of random skills are validated here; they are instantiated on every dispatch.
func bindSkill(t *data.SkillTemplate, cat *data.Catalog) (*Skill, error) {
	area, err := t.Range.Spec()
	if err != nil {
		return nil, configf("skill %d: %v", t.ID, err)
	}
	s := &Skill{
		SkillTemplate: t,
		area:          area,
		selectDead:    t.Func == data.FuncRevive,
	}
	if err := s.validate(cat); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Skill) validate(cat *data.Catalog) error {
	switch s.Func {
	case data.FuncAttack, data.FuncMagic:
		if err := s.validateAttack(); err != nil {
			return err
		}
		if kind := data.AfflictionKind(s.Arg2); !kind.Valid() {
			return configf("skill %d: affliction %v", s.ID, s.Arg2)
		}
	case data.FuncDebuffAttack, data.FuncDebuffIndirect,
		data.FuncCasterBasedDebuffAttack, data.FuncCasterBasedDebuffMagic:
		if err := s.validateAttack(); err != nil {
			return err
		}
		if err := validDebuffStatus(s.ID, s.Arg2); err != nil {
			return err
		}
	case data.FuncDrainAttack, data.FuncDrainMagic:
		if err := s.validateAttack(); err != nil {
			return err
		}
		area, err := data.RangeID(s.Arg4).Spec()
		if err != nil {
			return configf("skill %d: drain heal range: %v", s.ID, err)
		}
		s.healArea = area
	case data.FuncKill, data.FuncCounter, data.FuncProtectCounter:
		return s.validateAttack()
	case data.FuncBuff:
		return s.validateBuff(cat)
	case data.FuncDebuff, data.FuncCasterBasedDebuff, data.FuncOnHitDebuff:
		return validDebuffStatus(s.ID, s.Arg2)
	case data.FuncAffliction:
		if kind := data.AfflictionKind(s.Arg2); !kind.Valid() || kind == data.AfflictionNone {
			return configf("skill %d: affliction %v", s.ID, s.Arg2)
		}
	case data.FuncEvade:
		if calc := data.CalcType(s.Arg2); !calc.Valid() {
			return configf("skill %d: evade calc %v", s.ID, s.Arg2)
		}
	case data.FuncCounterDispel:
		area, err := data.RangeID(s.Arg3).Spec()
		if err != nil {
			return configf("skill %d: dispel range: %v", s.ID, err)
		}
		s.dispelArea = area
	case data.FuncTurnOrderChange:
		if basis := data.TurnOrderBasis(s.Arg1); !basis.Valid() {
			return configf("skill %d: turn order basis %v", s.ID, s.Arg1)
		}
		if s.Arg2 < 0 {
			return configf("skill %d: turn order duration %v", s.ID, s.Arg2)
		}
	case data.FuncRevive:
		switch {
		case s.area.Kind == data.KindMyself,
			s.area.Kind == data.KindEitherSide,
			s.area.Kind == data.KindBothSides,
			s.area.Kind == data.KindFriendRandom && s.area.Unique:
		default:
			return configf("skill %d: revive over range %d", s.ID, s.Range)
		}
	case data.FuncRandom:
		for _, id := range s.RandomSkills {
			sub, err := cat.Skill(id)
			if err != nil {
				return configf("skill %d: %v", s.ID, err)
			}
			if sub.Func == data.FuncRandom {
				return configf("skill %d: nested random skill %d", s.ID, id)
			}
			if _, err := bindSkill(sub, cat); err != nil {
				return err
			}
		}
	case data.FuncProtect, data.FuncDispel, data.FuncClearDebuff,
		data.FuncDrain, data.FuncSurvive, data.FuncHeal:
	default:
		return configf("skill %d: func %d", s.ID, s.Func)
	}
	return nil
}

func (s *Skill) validateAttack() error {
	if !s.Calc.IsSingleStat() {
		return configf("skill %d: attack with calc %s", s.ID, s.Calc)
	}
	if !s.Ward.Valid() {
		return configf("skill %d: attack with ward %s", s.ID, s.Ward)
	}
	return nil
}

func (s *Skill) validateBuff(cat *data.Catalog) error {
	if !s.Calc.IsSingleStat() {
		return configf("skill %d: buff with calc %s", s.ID, s.Calc)
	}
	st := data.StatusType(s.Arg2)
	if !st.Valid() && st != data.StatusAll {
		return configf("skill %d: buff status %v", s.ID, s.Arg2)
	}
	if s.Arg3 != 0 && st != data.StatusHPShield {
		if extra := data.StatusType(s.Arg3); !extra.Valid() {
			return configf("skill %d: buff second status %v", s.ID, s.Arg3)
		}
	}
	for _, st := range s.buffStatuses() {
		if st != data.StatusActionOnDeath {
			continue
		}
		if _, err := cat.Skill(int(s.Arg1)); err != nil {
			return configf("skill %d: granted on-death skill: %v", s.ID, err)
		}
	}
	return nil
}

func validDebuffStatus(id int, arg float64) error {
	st := data.StatusType(arg)
	if !st.Valid() || st == data.StatusActionOnDeath {
		return configf("skill %d: debuff status %v", id, arg)
	}
	return nil
}

// buffStatuses returns the status fields a buff writes, in application order.
func (s *Skill) buffStatuses() []data.StatusType {
	st := data.StatusType(s.Arg2)
	if st == data.StatusAll {
		return []data.StatusType{data.StatusATK, data.StatusDEF, data.StatusWIS, data.StatusAGI}
	}
	out := []data.StatusType{st}
	if s.Arg3 != 0 && st != data.StatusHPShield {
		out = append(out, data.StatusType(s.Arg3))
	}
	return out
}
