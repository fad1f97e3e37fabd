package data

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is the id-keyed lookup of card and skill templates.
// It is immutable after NewCatalog and safe for concurrent readers.
type Catalog struct {
	cards  map[int]*CardTemplate
	skills map[int]*SkillTemplate
}

// NewCatalog validates the templates and builds a Catalog.
// The default auto attack (DefaultAutoAttackID) is added unless skills already define it.
func NewCatalog(cards []CardTemplate, skills []SkillTemplate) (*Catalog, error) {
	c := &Catalog{
		cards:  make(map[int]*CardTemplate, len(cards)),
		skills: make(map[int]*SkillTemplate, len(skills)+1),
	}

	for i := range skills {
		s := skills[i]
		if _, dup := c.skills[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill template %d", s.ID)
		}
		c.skills[s.ID] = &s
	}
	if _, ok := c.skills[DefaultAutoAttackID]; !ok {
		aa := defaultAutoAttack()
		c.skills[aa.ID] = &aa
	}

	for i := range cards {
		card := cards[i]
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card template %d", card.ID)
		}
		c.cards[card.ID] = &card
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	for _, id := range sortedKeys(c.skills) {
		if err := validateSkill(c, c.skills[id]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range sortedKeys(c.cards) {
		if err := validateCard(c, c.cards[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateSkill(c *Catalog, s *SkillTemplate) error {
	if !s.Type.Valid() {
		return fmt.Errorf("skill %d: type %d: %w", s.ID, s.Type, ErrInvalidEnum)
	}
	if !s.Func.Valid() {
		return fmt.Errorf("skill %d: func %d: %w", s.ID, s.Func, ErrInvalidEnum)
	}
	if !s.Calc.Valid() {
		return fmt.Errorf("skill %d: calc %d: %w", s.ID, s.Calc, ErrInvalidEnum)
	}
	if s.Ward != WardNone && !s.Ward.Valid() {
		return fmt.Errorf("skill %d: ward %d: %w", s.ID, s.Ward, ErrInvalidEnum)
	}
	if _, err := s.Range.Spec(); err != nil {
		return fmt.Errorf("skill %d: %w", s.ID, err)
	}
	if s.Prob < 0 || s.Prob > 100 {
		return fmt.Errorf("skill %d: probability %d out of [0,100]", s.ID, s.Prob)
	}
	for _, sub := range s.RandomSkills {
		if _, ok := c.skills[sub]; !ok {
			return fmt.Errorf("skill %d: random sub-skill %d: %w", s.ID, sub, ErrUnknownSkill)
		}
	}
	if s.Func == FuncRandom && len(s.RandomSkills) == 0 {
		return fmt.Errorf("skill %d: random skill without sub-skills", s.ID)
	}
	return nil
}

func validateCard(c *Catalog, card *CardTemplate) error {
	if card.HP <= 0 {
		return fmt.Errorf("card %d: hp must be positive, got %d", card.ID, card.HP)
	}
	if _, ok := c.skills[card.AutoAttackID()]; !ok {
		return fmt.Errorf("card %d: auto attack %d: %w", card.ID, card.AutoAttackID(), ErrUnknownSkill)
	}
	for _, id := range card.Skills {
		if _, ok := c.skills[id]; !ok {
			return fmt.Errorf("card %d: skill %d: %w", card.ID, id, ErrUnknownSkill)
		}
	}
	return nil
}

// Card returns the card template with the given id.
func (c *Catalog) Card(id int) (*CardTemplate, error) {
	t, ok := c.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %d: %w", id, ErrUnknownCard)
	}
	return t, nil
}

// Skill returns the skill template with the given id.
func (c *Catalog) Skill(id int) (*SkillTemplate, error) {
	t, ok := c.skills[id]
	if !ok {
		return nil, fmt.Errorf("skill %d: %w", id, ErrUnknownSkill)
	}
	return t, nil
}

// CardCount returns the number of card templates.
func (c *Catalog) CardCount() int { return len(c.cards) }

// SkillCount returns the number of skill templates, including the default auto attack.
func (c *Catalog) SkillCount() int { return len(c.skills) }

// Cards returns all card templates ordered by id.
func (c *Catalog) Cards() []*CardTemplate {
	out := make([]*CardTemplate, 0, len(c.cards))
	for _, id := range sortedKeys(c.cards) {
		out = append(out, c.cards[id])
	}
	return out
}

// Skills returns all skill templates ordered by id.
func (c *Catalog) Skills() []*SkillTemplate {
	out := make([]*SkillTemplate, 0, len(c.skills))
	for _, id := range sortedKeys(c.skills) {
		out = append(out, c.skills[id])
	}
	return out
}

// AvailableSkillsForSelect returns ids of skills a warlord may be given, ordered by id.
func (c *Catalog) AvailableSkillsForSelect() []int {
	var ids []int
	for _, id := range sortedKeys(c.skills) {
		if c.skills[id].AvailableForSelect() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Warlords returns ids of warlord card templates, ordered by id.
func (c *Catalog) Warlords() []int {
	var ids []int
	for _, id := range sortedKeys(c.cards) {
		if c.cards[id].Warlord {
			ids = append(ids, id)
		}
	}
	return ids
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
