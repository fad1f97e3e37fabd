package data

// CardTemplate — immutable familiar definition from the catalog.
type CardTemplate struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	FullName string `yaml:"full_name"`

	HP  int `yaml:"hp"`
	ATK int `yaml:"atk"`
	DEF int `yaml:"def"`
	WIS int `yaml:"wis"`
	AGI int `yaml:"agi"`

	// AutoAttack is the skill used when no active skill fires. 0 means DefaultAutoAttackID.
	AutoAttack int   `yaml:"auto_attack"`
	Skills     []int `yaml:"skills"`

	Mounted bool `yaml:"mounted"` // acts twice per turn with its first two active skills
	Warlord bool `yaml:"warlord"` // skills come from the team's warlord skill list
}

// AutoAttackID returns the resolved auto attack skill id.
func (c *CardTemplate) AutoAttackID() int {
	if c.AutoAttack == 0 {
		return DefaultAutoAttackID
	}
	return c.AutoAttack
}
