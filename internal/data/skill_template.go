package data

// SkillTemplate — immutable skill definition, shared by every card that owns the skill.
// Meaning of Arg1..Arg5 depends on Func (multiplier, status type, probability, range id, charges...).
type SkillTemplate struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	Type        SkillType `yaml:"type"`
	Func        SkillFunc `yaml:"func"`
	Calc        CalcType  `yaml:"calc"`
	Arg1        float64   `yaml:"arg1"`
	Arg2        float64   `yaml:"arg2"`
	Arg3        float64   `yaml:"arg3"`
	Arg4        float64   `yaml:"arg4"`
	Arg5        float64   `yaml:"arg5"`
	Range       RangeID   `yaml:"range"`
	Prob        int       `yaml:"prob"` // percent, 0..100
	Ward        Ward      `yaml:"ward"`
	AutoAttack  bool      `yaml:"auto_attack"`
	Description string    `yaml:"description"`

	// RandomSkills lists the sub-skills of a FuncRandom skill.
	RandomSkills []int `yaml:"random_skills"`
}

// AvailableForSelect reports whether the skill can be picked for a warlord.
func (s *SkillTemplate) AvailableForSelect() bool {
	return !s.AutoAttack && s.ID != 355 && s.ID != 452
}

// defaultAutoAttack is used by cards that do not name their own auto attack.
func defaultAutoAttack() SkillTemplate {
	return SkillTemplate{
		ID:          DefaultAutoAttackID,
		Name:        "Standard Action",
		Type:        SkillTypeActive,
		Func:        FuncAttack,
		Calc:        CalcATK,
		Arg1:        1,
		Range:       RangeEnemyNear1,
		Prob:        100,
		Ward:        WardPhysical,
		AutoAttack:  true,
		Description: "Attack the nearest enemy",
	}
}
