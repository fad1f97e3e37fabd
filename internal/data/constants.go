package data

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCard is returned when a card template id is not in the catalog.
	ErrUnknownCard = errors.New("unknown card template")
	// ErrUnknownSkill is returned when a skill template id is not in the catalog.
	ErrUnknownSkill = errors.New("unknown skill template")
	// ErrInvalidEnum is returned when a numeric or named enum value has no matching variant.
	ErrInvalidEnum = errors.New("invalid enum value")
)

// SkillType is the trigger kind of a skill.
type SkillType int8

const (
	SkillTypeOpening  SkillType = 1 // rolled once at battle start (and on reserve switch-in)
	SkillTypeActive   SkillType = 2 // rolled on the card's own action
	SkillTypeProtect  SkillType = 3 // redirects a hit aimed at an ally
	SkillTypeEvade    SkillType = 4 // redirects and nullifies a hit aimed at an ally
	SkillTypeDefense  SkillType = 5 // fires after being hit (survive is kept apart)
	SkillTypeOnDeath  SkillType = 6 // fires in the on-death cascade
)

func (t SkillType) Valid() bool {
	return t >= SkillTypeOpening && t <= SkillTypeOnDeath
}

func (t SkillType) String() string {
	switch t {
	case SkillTypeOpening:
		return "opening"
	case SkillTypeActive:
		return "active"
	case SkillTypeProtect:
		return "protect"
	case SkillTypeEvade:
		return "evade"
	case SkillTypeDefense:
		return "defense"
	case SkillTypeOnDeath:
		return "on_death"
	}
	return fmt.Sprintf("SkillType(%d)", int8(t))
}

// SkillFunc selects the effect handler of a skill.
type SkillFunc int8

const (
	FuncBuff                    SkillFunc = 1
	FuncDebuff                  SkillFunc = 2
	FuncCasterBasedDebuff       SkillFunc = 3
	FuncOnHitDebuff             SkillFunc = 4
	FuncDispel                  SkillFunc = 5
	FuncClearDebuff             SkillFunc = 6
	FuncAffliction              SkillFunc = 7
	FuncAttack                  SkillFunc = 8
	FuncMagic                   SkillFunc = 9
	FuncDebuffAttack            SkillFunc = 10
	FuncDebuffIndirect          SkillFunc = 11
	FuncDrainAttack             SkillFunc = 12
	FuncDrainMagic              SkillFunc = 13
	FuncCasterBasedDebuffAttack SkillFunc = 14
	FuncCasterBasedDebuffMagic  SkillFunc = 15
	FuncKill                    SkillFunc = 16
	FuncProtect                 SkillFunc = 17
	FuncEvade                   SkillFunc = 18
	FuncProtectCounter          SkillFunc = 19
	FuncCounter                 SkillFunc = 20
	FuncCounterDispel           SkillFunc = 21
	FuncDrain                   SkillFunc = 22
	FuncSurvive                 SkillFunc = 23
	FuncHeal                    SkillFunc = 24
	FuncRevive                  SkillFunc = 25
	FuncTurnOrderChange         SkillFunc = 26
	FuncRandom                  SkillFunc = 27
)

var skillFuncNames = map[SkillFunc]string{
	FuncBuff:                    "buff",
	FuncDebuff:                  "debuff",
	FuncCasterBasedDebuff:       "caster_based_debuff",
	FuncOnHitDebuff:             "onhit_debuff",
	FuncDispel:                  "dispel",
	FuncClearDebuff:             "clear_debuff",
	FuncAffliction:              "affliction",
	FuncAttack:                  "attack",
	FuncMagic:                   "magic",
	FuncDebuffAttack:            "debuff_attack",
	FuncDebuffIndirect:          "debuff_indirect",
	FuncDrainAttack:             "drain_attack",
	FuncDrainMagic:              "drain_magic",
	FuncCasterBasedDebuffAttack: "caster_based_debuff_attack",
	FuncCasterBasedDebuffMagic:  "caster_based_debuff_magic",
	FuncKill:                    "kill",
	FuncProtect:                 "protect",
	FuncEvade:                   "evade",
	FuncProtectCounter:          "protect_counter",
	FuncCounter:                 "counter",
	FuncCounterDispel:           "counter_dispel",
	FuncDrain:                   "drain",
	FuncSurvive:                 "survive",
	FuncHeal:                    "heal",
	FuncRevive:                  "revive",
	FuncTurnOrderChange:         "turn_order_change",
	FuncRandom:                  "random",
}

func (f SkillFunc) Valid() bool {
	_, ok := skillFuncNames[f]
	return ok
}

func (f SkillFunc) String() string {
	if name, ok := skillFuncNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SkillFunc(%d)", int8(f))
}

// IsAttack reports whether the function deals damage on its own action.
func (f SkillFunc) IsAttack() bool {
	switch f {
	case FuncAttack, FuncMagic, FuncCounter, FuncProtectCounter,
		FuncDebuffAttack, FuncDebuffIndirect,
		FuncCasterBasedDebuffAttack, FuncCasterBasedDebuffMagic,
		FuncDrainAttack, FuncDrainMagic, FuncKill:
		return true
	}
	return false
}

// IsIndirect reports whether the function does not make contact.
// Indirect attacks over a multi-target range are resolved as AoE.
func (f SkillFunc) IsIndirect() bool {
	switch f {
	case FuncAttack, FuncCounter, FuncProtectCounter, FuncDebuffAttack,
		FuncCasterBasedDebuffAttack, FuncDrainAttack:
		return false
	}
	return true
}

// IsPositionIndependent reports whether formation rows are ignored for damage.
// Kill skills do not make contact but still honor position.
func (f SkillFunc) IsPositionIndependent() bool {
	return f.IsIndirect() && f != FuncKill
}

// IsDebuffAttack reports whether a successful hit may also debuff the target.
func (f SkillFunc) IsDebuffAttack() bool {
	switch f {
	case FuncDebuffAttack, FuncDebuffIndirect,
		FuncCasterBasedDebuffAttack, FuncCasterBasedDebuffMagic:
		return true
	}
	return false
}

// IsDrainAttack reports whether damage dealt is partially returned as healing.
func (f SkillFunc) IsDrainAttack() bool {
	return f == FuncDrainAttack || f == FuncDrainMagic
}

// CalcType is the stat a skill scales from.
type CalcType int8

const (
	CalcDefault CalcType = 0
	CalcATK     CalcType = 1
	CalcWIS     CalcType = 2
	CalcAGI     CalcType = 3
	CalcATKWIS  CalcType = 4
	CalcATKAGI  CalcType = 5
	CalcWISAGI  CalcType = 6
)

func (c CalcType) Valid() bool {
	return c >= CalcDefault && c <= CalcWISAGI
}

// IsSingleStat reports whether c names exactly one stat (DEFAULT reads as WIS).
func (c CalcType) IsSingleStat() bool {
	return c >= CalcDefault && c <= CalcAGI
}

// Covers reports whether an evade keyed on c can evade an attack computed with attack.
func (c CalcType) Covers(attack CalcType) bool {
	switch c {
	case CalcATK, CalcWIS, CalcAGI:
		return attack == c
	case CalcATKWIS:
		return attack == CalcATK || attack == CalcWIS
	case CalcATKAGI:
		return attack == CalcATK || attack == CalcAGI
	case CalcWISAGI:
		return attack == CalcWIS || attack == CalcAGI
	}
	return false
}

func (c CalcType) String() string {
	switch c {
	case CalcDefault:
		return "default"
	case CalcATK:
		return "atk"
	case CalcWIS:
		return "wis"
	case CalcAGI:
		return "agi"
	case CalcATKWIS:
		return "atk_wis"
	case CalcATKAGI:
		return "atk_agi"
	case CalcWISAGI:
		return "wis_agi"
	}
	return fmt.Sprintf("CalcType(%d)", int8(c))
}

// Ward is the damage category matched against a resistance stat.
type Ward int8

const (
	WardNone     Ward = 0
	WardPhysical Ward = 1
	WardMagical  Ward = 2
	WardBreath   Ward = 3
)

func (w Ward) Valid() bool {
	return w >= WardPhysical && w <= WardBreath
}

func (w Ward) String() string {
	switch w {
	case WardNone:
		return "none"
	case WardPhysical:
		return "physical"
	case WardMagical:
		return "magical"
	case WardBreath:
		return "breath"
	}
	return fmt.Sprintf("Ward(%d)", int8(w))
}

// StatusType selects one field of a card's status bundle.
type StatusType int8

const (
	StatusATK              StatusType = 1
	StatusDEF              StatusType = 2
	StatusWIS              StatusType = 3
	StatusAGI              StatusType = 4
	StatusAttackResistance StatusType = 5
	StatusMagicResistance  StatusType = 6
	StatusBreathResistance StatusType = 7
	StatusSkillProbability StatusType = 8
	StatusWillAttackAgain  StatusType = 9
	StatusActionOnDeath    StatusType = 10
	StatusHPShield         StatusType = 11
	StatusAll              StatusType = 12 // buff only: ATK, DEF, WIS and AGI at once
)

func (s StatusType) Valid() bool {
	return s >= StatusATK && s <= StatusHPShield
}

// IsStat reports whether s is one of the four floor-clampable combat stats.
func (s StatusType) IsStat() bool {
	return s >= StatusATK && s <= StatusAGI
}

func (s StatusType) String() string {
	switch s {
	case StatusATK:
		return "atk"
	case StatusDEF:
		return "def"
	case StatusWIS:
		return "wis"
	case StatusAGI:
		return "agi"
	case StatusAttackResistance:
		return "attack_resistance"
	case StatusMagicResistance:
		return "magic_resistance"
	case StatusBreathResistance:
		return "breath_resistance"
	case StatusSkillProbability:
		return "skill_probability"
	case StatusWillAttackAgain:
		return "will_attack_again"
	case StatusActionOnDeath:
		return "action_on_death"
	case StatusHPShield:
		return "hp_shield"
	case StatusAll:
		return "all"
	}
	return fmt.Sprintf("StatusType(%d)", int8(s))
}

// AfflictionKind is the numeric affliction tag stored in skill arguments.
type AfflictionKind int8

const (
	AfflictionNone      AfflictionKind = 0
	AfflictionPoison    AfflictionKind = 1
	AfflictionParalysis AfflictionKind = 2
	AfflictionFrozen    AfflictionKind = 3
	AfflictionDisable   AfflictionKind = 4
	AfflictionSilence   AfflictionKind = 5
	AfflictionBlind     AfflictionKind = 6
)

func (k AfflictionKind) Valid() bool {
	return k >= AfflictionNone && k <= AfflictionBlind
}

func (k AfflictionKind) String() string {
	switch k {
	case AfflictionNone:
		return "none"
	case AfflictionPoison:
		return "poison"
	case AfflictionParalysis:
		return "paralysis"
	case AfflictionFrozen:
		return "frozen"
	case AfflictionDisable:
		return "disable"
	case AfflictionSilence:
		return "silence"
	case AfflictionBlind:
		return "blind"
	}
	return fmt.Sprintf("AfflictionKind(%d)", int8(k))
}

// TurnOrderBasis is the stat used to sort the turn order.
type TurnOrderBasis int8

const (
	TurnOrderATK TurnOrderBasis = 1
	TurnOrderDEF TurnOrderBasis = 2
	TurnOrderWIS TurnOrderBasis = 3
	TurnOrderAGI TurnOrderBasis = 4
)

func (b TurnOrderBasis) Valid() bool {
	return b >= TurnOrderATK && b <= TurnOrderAGI
}

func (b TurnOrderBasis) String() string {
	switch b {
	case TurnOrderATK:
		return "atk"
	case TurnOrderDEF:
		return "def"
	case TurnOrderWIS:
		return "wis"
	case TurnOrderAGI:
		return "agi"
	}
	return fmt.Sprintf("TurnOrderBasis(%d)", int8(b))
}

// BattleMode selects standard 5v5 or blood clash 10v10 with reserves.
type BattleMode int8

const (
	ModeStandard   BattleMode = 0
	ModeBloodClash BattleMode = 1
)

// TeamSize returns the number of card ids a team needs in this mode.
func (m BattleMode) TeamSize() int {
	if m == ModeBloodClash {
		return 2 * Columns
	}
	return Columns
}

func (m BattleMode) String() string {
	if m == ModeBloodClash {
		return "blood_clash"
	}
	return "standard"
}

// ParseBattleMode parses "standard" or "blood_clash".
func ParseBattleMode(s string) (BattleMode, error) {
	switch s {
	case "", "standard":
		return ModeStandard, nil
	case "blood_clash", "bloodclash":
		return ModeBloodClash, nil
	}
	return 0, fmt.Errorf("battle mode %q: %w", s, ErrInvalidEnum)
}

const (
	// DefaultAutoAttackID is used when a card template names no auto attack.
	DefaultAutoAttackID = 10000

	// Player identifiers. Player 1 wins ties.
	Player1 = 1
	Player2 = 2
)
