package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/testutil"
)

func ids(cards []*Card) []int {
	out := make([]int, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func spec(t *testing.T, id data.RangeID) data.RangeSpec {
	t.Helper()
	s, err := id.Spec()
	require.NoError(t, err)
	return s
}

func targetingBattle(t *testing.T, setup Setup) *Battle {
	t.Helper()
	cat := newCatalog(t, []data.CardTemplate{cardTmpl(p1Card, 100, 0, 0, 0, 10)})
	return newBattle(t, cat, setup, testutil.NewScriptedRand(0))
}

func TestResolveDeterministicRanges(t *testing.T) {
	tests := []struct {
		name string
		rng  data.RangeID
		ex   int
		dead []int
		want []int
	}{
		{"both sides at the edge", data.RangeBothSides, 1, nil, []int{2}},
		{"both sides skips the dead", data.RangeBothSides, 3, []int{2}, []int{4}},
		{"self and both sides", data.RangeSelfBothSides, 3, nil, []int{2, 3, 4}},
		{"myself", data.RangeMyself, 4, nil, []int{4}},
		{"all alive allies", data.RangeAll, 1, []int{3}, []int{1, 2, 4, 5}},
		{"right of executor", data.RangeRight, 3, []int{5}, []int{4}},
		{"enemy all", data.RangeEnemyAll, 1, []int{7}, []int{6, 8, 9, 10}},
		{"near 1 faces the executor", data.RangeEnemyNear1, 3, nil, []int{8}},
		{"near 1 slides left first", data.RangeEnemyNear1, 3, []int{8}, []int{7}},
		{"near 3 spreads one column", data.RangeEnemyNear3, 3, nil, []int{8, 7, 9}},
		{"near 3 around a moved centre", data.RangeEnemyNear3, 3, []int{8}, []int{7, 6}},
		{"near 5 spreads two columns", data.RangeEnemyNear5, 1, nil, []int{6, 7, 8}},
		{"near 5 from the middle", data.RangeEnemyNear5, 3, nil, []int{8, 7, 9, 6, 10}},
		{"enemy random is every live enemy", data.RangeEnemyRandom3, 2, []int{9}, []int{6, 7, 8, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := targetingBattle(t, standard(p1Card, p1Card))
			for _, id := range tt.dead {
				b.damageDirect(b.Card(id), 1000)
			}
			got := b.resolve(spec(t, tt.rng), false, b.Card(tt.ex), nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestEnemyRandomResolvesWithoutDraws(t *testing.T) {
	cat := newCatalog(t, []data.CardTemplate{cardTmpl(p1Card, 100, 0, 0, 0, 10)})
	src := testutil.NewScriptedRand(0)
	b := newBattle(t, cat, standard(p1Card, p1Card), src)

	before := src.Used
	got := b.resolve(spec(t, data.RangeEnemyRandom6), false, b.Card(1), nil)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, ids(got))
	assert.Zero(t, src.Used-before)
}

func TestRowSearch(t *testing.T) {
	// skein: rear, mid, front, mid, rear
	setup := standard(p1Card, p1Card)
	setup.P2.Formation = data.FormationSkein
	b := targetingBattle(t, setup)
	ex := b.Card(1)

	assert.Equal(t, []int{8}, ids(b.resolve(spec(t, data.RangeEnemyFrontAll), false, ex, nil)))
	assert.Equal(t, []int{6, 10}, ids(b.resolve(spec(t, data.RangeEnemyRearAll), false, ex, nil)))
	assert.Equal(t, []int{7, 8, 9}, ids(b.resolve(spec(t, data.RangeEnemyFrontMidAll), false, ex, nil)))

	b.damageDirect(b.Card(8), 1000)
	assert.Equal(t, []int{7, 9}, ids(b.resolve(spec(t, data.RangeEnemyFrontAll), false, ex, nil)), "front falls back to mid")

	b.damageDirect(b.Card(6), 1000)
	b.damageDirect(b.Card(10), 1000)
	assert.Equal(t, []int{7, 9}, ids(b.resolve(spec(t, data.RangeEnemyRearAll), false, ex, nil)), "rear falls back to mid")

	b.damageDirect(b.Card(7), 1000)
	b.damageDirect(b.Card(9), 1000)
	assert.Empty(t, b.resolve(spec(t, data.RangeEnemyFrontAll), false, ex, nil))
}

func TestFrontMidFallsBackToRear(t *testing.T) {
	setup := standard(p1Card, p1Card)
	setup.P2.Formation = data.FormationSkein
	b := targetingBattle(t, setup)
	for _, id := range []int{7, 8, 9} {
		b.damageDirect(b.Card(id), 1000)
	}
	assert.Equal(t, []int{6, 10}, ids(b.resolve(spec(t, data.RangeEnemyFrontMidAll), false, b.Card(1), nil)))
}

func TestFriendRandom(t *testing.T) {
	b := targetingBattle(t, standard(p1Card, p1Card))
	ex := b.Card(3)

	unique := b.resolve(spec(t, 123), false, ex, nil)
	require.Len(t, unique, 3)
	seen := map[int]bool{}
	for _, c := range unique {
		assert.NotEqual(t, ex.ID, c.ID, "self excluded")
		assert.Equal(t, data.Player1, c.Player)
		assert.False(t, seen[c.ID], "drawn twice")
		seen[c.ID] = true
	}

	// with every draw at 0 independent picks repeat the first candidate
	assert.Equal(t, []int{1, 1, 1}, ids(b.resolve(spec(t, 103), false, ex, nil)))
	assert.Equal(t, []int{1, 1}, ids(b.resolve(spec(t, 112), false, b.Card(1), nil)), "self included")

	wounded := b.Card(5)
	wounded.hp = 10
	assert.Equal(t, []int{5}, ids(b.resolve(spec(t, 101), false, ex, notFull)), "predicate applied before the draw")
}

func TestEitherSidePicksOne(t *testing.T) {
	b := targetingBattle(t, standard(p1Card, p1Card))
	got := b.resolve(spec(t, data.RangeEitherSide), false, b.Card(3), nil)
	assert.Equal(t, []int{2}, ids(got))

	assert.Equal(t, []int{2, 4}, ids(b.allPossible(spec(t, data.RangeEitherSide), false, b.Card(3))))
}

func TestSelectDead(t *testing.T) {
	b := targetingBattle(t, standard(p1Card, p1Card))
	b.damageDirect(b.Card(2), 1000)

	assert.Equal(t, []int{2}, ids(b.resolve(spec(t, data.RangeBothSides), true, b.Card(3), nil)))
	assert.Empty(t, b.resolve(spec(t, data.RangeMyself), true, b.Card(3), nil))
	assert.Equal(t, []int{2}, ids(b.resolve(spec(t, data.RangeMyself), true, b.Card(2), nil)))
}

func TestScaleRatio(t *testing.T) {
	plain := &Skill{SkillTemplate: &data.SkillTemplate{Range: data.RangeEnemyAll}, area: spec(t, data.RangeEnemyAll)}
	assert.Equal(t, 1.0, scaleRatio(plain, 3))

	scaled := &Skill{SkillTemplate: &data.SkillTemplate{Range: data.RangeEnemyAllScaled}, area: spec(t, data.RangeEnemyAllScaled)}
	assert.Equal(t, 1.9375, scaleRatio(scaled, 1))
	assert.Equal(t, 1.0, scaleRatio(scaled, 5))
}

func TestTurnOrderStableTies(t *testing.T) {
	b := targetingBattle(t, standard(p1Card, p1Card))
	order := b.turnOrder()
	require.Len(t, order, 10)
	assert.Equal(t, slot{player: data.Player1, column: 0}, order[0])
	assert.Equal(t, slot{player: data.Player2, column: 4}, order[9])
}
