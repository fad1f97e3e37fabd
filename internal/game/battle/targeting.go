package battle

import (
	"slices"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/rng"
)

var (
	// column offsets probed, in order, when looking for the enemy facing the executor
	nearestOffsets = []int{0, -1, 1, -2, 2, -3, 3, -4, 4}
	// column offsets around that enemy that an enemy_near range spreads to
	spreadOffsets = []int{0, -1, 1, -2, 2}
)

func isAlive(c *Card) bool { return !c.dead }

// targets resolves the skill's own range.
func (b *Battle) targets(s *Skill, ex *Card) []*Card {
	return b.resolve(s.area, s.selectDead, ex, nil)
}

// resolve returns the cards a range selects for ex.
// selectDead flips the liveness filter for revive. pred, when not nil,
// filters the candidates; either-side and friend-random ranges apply it before drawing.
func (b *Battle) resolve(spec data.RangeSpec, selectDead bool, ex *Card, pred func(*Card) bool) []*Card {
	var out []*Card
	switch spec.Kind {
	case data.KindEitherSide:
		both := b.bothSides(ex, selectDead)
		if pred != nil {
			both = filter(both, pred)
		}
		if len(both) > 0 {
			return []*Card{rng.Pick(b.src, both)}
		}
		return nil
	case data.KindBothSides:
		out = b.bothSides(ex, selectDead)
	case data.KindSelfBothSides:
		for _, c := range []*Card{b.leftOf(ex), ex, b.rightOf(ex)} {
			if c != nil && !c.dead {
				out = append(out, c)
			}
		}
	case data.KindMyself:
		if ex.dead == selectDead {
			out = []*Card{ex}
		}
	case data.KindAll:
		out = filter(b.side(ex.Player).main[:], isAlive)
	case data.KindRight:
		out = filter(b.side(ex.Player).main[:], func(c *Card) bool {
			return !c.dead && c.Column > ex.Column
		})
	case data.KindEnemyAll:
		out = filter(b.enemyOf(ex.Player).main[:], isAlive)
	case data.KindEnemyRandom:
		// the picks are drawn per hit by randomAttack
		out = filter(b.enemyOf(ex.Player).main[:], isAlive)
	case data.KindEnemyFrontAll:
		out = rowSearch(b.enemyOf(ex.Player).main[:], data.RowFront, true)
	case data.KindEnemyRearAll:
		out = rowSearch(b.enemyOf(ex.Player).main[:], data.RowRear, false)
	case data.KindEnemyFrontMidAll:
		out = b.frontMid(ex)
	case data.KindEnemyNear:
		out = b.near(ex, spec)
	case data.KindFriendRandom:
		return b.pickN(b.friendPool(spec, selectDead, ex, pred), spec.Count, spec.Unique)
	default:
		invariantf("range %d: kind %s", spec.ID, spec.Kind)
	}
	if pred != nil {
		out = filter(out, pred)
	}
	return out
}

// allPossible returns every card the range could ever select, before random picks.
func (b *Battle) allPossible(spec data.RangeSpec, selectDead bool, ex *Card) []*Card {
	switch spec.Kind {
	case data.KindEitherSide:
		return b.bothSides(ex, selectDead)
	case data.KindFriendRandom:
		return b.friendPool(spec, selectDead, ex, nil)
	}
	return b.resolve(spec, selectDead, ex, nil)
}

func (b *Battle) bothSides(ex *Card, selectDead bool) []*Card {
	var out []*Card
	for _, c := range []*Card{b.leftOf(ex), b.rightOf(ex)} {
		if c != nil && c.dead == selectDead {
			out = append(out, c)
		}
	}
	return out
}

func (b *Battle) friendPool(spec data.RangeSpec, selectDead bool, ex *Card, pred func(*Card) bool) []*Card {
	return filter(b.side(ex.Player).main[:], func(c *Card) bool {
		if c == ex && !spec.IncludeSelf {
			return false
		}
		return c.dead == selectDead && (pred == nil || pred(c))
	})
}

// pickN draws n cards from pool. Unique picks shuffle a copy and take a prefix;
// otherwise each of the n picks is independent.
func (b *Battle) pickN(pool []*Card, n int, unique bool) []*Card {
	if len(pool) == 0 {
		return nil
	}
	if unique {
		pool = slices.Clone(pool)
		rng.Shuffle(b.src, pool)
		return pool[:min(n, len(pool))]
	}
	out := make([]*Card, 0, n)
	for range n {
		out = append(out, rng.Pick(b.src, pool))
	}
	return out
}

// rowSearch returns the live cards of the first non-empty row,
// stepping front→mid→rear when ascending and rear→mid→front otherwise.
func rowSearch(cards []*Card, start data.Row, ascending bool) []*Card {
	row := start
	for {
		out := filter(cards, func(c *Card) bool { return !c.dead && c.Row == row })
		if len(out) > 0 {
			return out
		}
		if ascending {
			row = row%data.RowRear + 1
		} else if row--; row < data.RowFront {
			row = data.RowRear
		}
		if row == start {
			return nil
		}
	}
}

func (b *Battle) frontMid(ex *Card) []*Card {
	enemy := b.enemyOf(ex.Player).main[:]
	out := filter(enemy, func(c *Card) bool {
		return !c.dead && (c.Row == data.RowFront || c.Row == data.RowMid)
	})
	if len(out) == 0 {
		out = filter(enemy, func(c *Card) bool { return !c.dead && c.Row == data.RowRear })
	}
	return out
}

func (b *Battle) near(ex *Card, spec data.RangeSpec) []*Card {
	enemy := b.enemyOf(ex.Player).main
	centre := -1
	for _, off := range nearestOffsets {
		col := ex.Column + off
		if col >= 0 && col < data.Columns && !enemy[col].dead {
			centre = col
			break
		}
	}
	if centre < 0 {
		return nil
	}

	var out []*Card
	for _, off := range spreadOffsets {
		if len(out) >= spec.Count || abs(off) > spec.MaxDistance {
			break
		}
		col := centre + off
		if col >= 0 && col < data.Columns && !enemy[col].dead {
			out = append(out, enemy[col])
		}
	}
	return out
}

// scaleRatio returns the multiplier of a scaled range hitting n cards, 1 for plain ranges.
func scaleRatio(s *Skill, n int) float64 {
	if !s.area.Scaled {
		return 1
	}
	r, err := data.ScaleRatio(s.Range, n)
	if err != nil {
		fail(configf("skill %d: %v", s.ID, err))
	}
	return r
}

func filter(cards []*Card, keep func(*Card) bool) []*Card {
	var out []*Card
	for _, c := range cards {
		if c != nil && keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
