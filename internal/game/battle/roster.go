package battle

import (
	"cmp"
	"slices"

	"github.com/udisondev/famsim/internal/data"
)

// side is one player's lineup. Column c of main is the card on the field,
// column c of reserve waits to replace it in blood clash.
type side struct {
	player    int
	formation data.FormationType
	main      [data.Columns]*Card
	reserve   [data.Columns]*Card
}

// slot is a turn-order position. It names a column, not a card:
// a reserve switched in acts from the slot of the card it replaced.
type slot struct {
	player int
	column int
}

func (b *Battle) side(player int) *side {
	return b.sides[player-1]
}

func (b *Battle) enemyOf(player int) *side {
	if player == data.Player1 {
		return b.sides[1]
	}
	return b.sides[0]
}

func (b *Battle) occupant(s slot) *Card {
	return b.side(s.player).main[s.column]
}

// mains returns the cards on the field, player 1 first, each side in column order.
func (b *Battle) mains() []*Card {
	out := make([]*Card, 0, 2*data.Columns)
	for _, sd := range b.sides {
		out = append(out, sd.main[:]...)
	}
	return out
}

// turnOrder sorts every slot by the current basis stat of its occupant, highest first.
// Ties keep player 1 before player 2 and lower columns first.
func (b *Battle) turnOrder() []slot {
	order := make([]slot, 0, 2*data.Columns)
	for _, sd := range b.sides {
		for col := range data.Columns {
			order = append(order, slot{player: sd.player, column: col})
		}
	}
	slices.SortStableFunc(order, func(x, y slot) int {
		return cmp.Compare(b.occupant(y).orderStat(b.basis), b.occupant(x).orderStat(b.basis))
	})
	return order
}

// byProcIndex returns the field cards ordered for the opening phase.
func (s *side) byProcIndex() []*Card {
	cards := slices.Clone(s.main[:])
	slices.SortStableFunc(cards, func(x, y *Card) int {
		return cmp.Compare(x.ProcIndex, y.ProcIndex)
	})
	return cards
}

// allDead reports whether the side has no card left to fight.
// In blood clash a dead field card with a reserve behind it still counts.
func (s *side) allDead(bloodClash bool) bool {
	for col, c := range s.main {
		if !c.dead {
			return false
		}
		if bloodClash && s.reserve[col] != nil {
			return false
		}
	}
	return true
}

// hpRatio returns remaining hp over base hp across the field and the unused reserves.
func (s *side) hpRatio() float64 {
	var hp, base float64
	for _, cards := range [][data.Columns]*Card{s.main, s.reserve} {
		for _, c := range cards {
			if c == nil {
				continue
			}
			base += c.base.hp
			if !c.dead {
				hp += c.hp
			}
		}
	}
	if base == 0 {
		return 0
	}
	return hp / base
}

// switchIn moves the reserve of column onto the field. Returns nil when there is none.
func (s *side) switchIn(column int) *Card {
	r := s.reserve[column]
	if r == nil {
		return nil
	}
	s.main[column] = r
	s.reserve[column] = nil
	return r
}

// cards returns every card of the side still in play, field first.
func (s *side) cards() []*Card {
	out := make([]*Card, 0, 2*data.Columns)
	out = append(out, s.main[:]...)
	for _, c := range s.reserve {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (b *Battle) leftOf(c *Card) *Card {
	if c.Column == 0 {
		return nil
	}
	return b.side(c.Player).main[c.Column-1]
}

func (b *Battle) rightOf(c *Card) *Card {
	if c.Column == data.Columns-1 {
		return nil
	}
	return b.side(c.Player).main[c.Column+1]
}
