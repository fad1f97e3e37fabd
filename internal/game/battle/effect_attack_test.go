package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/testutil"
)

func sweepSkill(id int) data.SkillTemplate {
	s := attackSkill(id)
	s.Name = "Sweep"
	s.Range = data.RangeEnemyNear2
	return s
}

func TestSweepStopsWhenAttackerFalls(t *testing.T) {
	cat := newCatalog(t,
		[]data.CardTemplate{
			cardTmpl(p1Card, 1, 100, 0, 0, 10, 1),
			cardTmpl(p2Card, 1000, 100, 0, 0, 1, 2),
		},
		sweepSkill(1), counterSkill(2),
	)
	b, logs := observedBattle(t, cat, standard(p1Card, p2Card), testutil.NewScriptedRand(0.75))
	att := b.Card(1)

	b.execute(&action{executor: att, skill: att.active[0]})

	assert.True(t, att.Dead(), "killed by the first counter")
	assert.Equal(t, 1000-hit, b.Card(6).HP())
	assert.Equal(t, 1000.0, b.Card(7).HP(), "the second target is never reached")
	assert.Equal(t, 2, logs.FilterMessage("hit").Len(), "one sweep hit and one counter")
}

func TestSweepSkipsFallenProtector(t *testing.T) {
	protect := data.SkillTemplate{ID: 2, Name: "Guard", Type: data.SkillTypeProtect, Func: data.FuncProtect, Range: data.RangeBothSides, Prob: 100}
	cat := newCatalog(t,
		[]data.CardTemplate{
			cardTmpl(p1Card, 100, 100, 0, 0, 10, 1),
			cardTmpl(p2Card, 1000, 0, 0, 0, 1),
			cardTmpl(3, 10, 0, 0, 0, 1, 2),
		},
		sweepSkill(1), protect,
	)
	setup := standard(p1Card, p2Card)
	setup.P2.Cards = []int{p2Card, 3, p2Card, p2Card, p2Card}
	b, logs := observedBattle(t, cat, setup, testutil.NewScriptedRand(0.75))
	att, guard := b.Card(1), b.Card(7)

	b.execute(&action{executor: att, skill: att.active[0]})

	assert.True(t, guard.Dead(), "died covering card 6")
	assert.Equal(t, 1000.0, b.Card(6).HP())
	assert.Equal(t, 1, logs.FilterMessage("hit").Len(), "the fallen guard is not hit again")
}

func TestRandomAttack(t *testing.T) {
	tests := []struct {
		name         string
		attackerHP   int
		enemySkills  []int
		wantHits     int
		wantTargetHP float64
		wantDead     bool
	}{
		{
			name:         "every draw lands on a live enemy",
			attackerHP:   100,
			wantHits:     3,
			wantTargetHP: 1000 - 3*hit,
		},
		{
			name:         "stops when the executor dies mid-sequence",
			attackerHP:   1,
			enemySkills:  []int{2},
			wantHits:     2,
			wantTargetHP: 1000 - hit,
			wantDead:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			volley := attackSkill(1)
			volley.Name = "Volley"
			volley.Range = data.RangeEnemyRandom3
			cat := newCatalog(t,
				[]data.CardTemplate{
					cardTmpl(p1Card, tt.attackerHP, 100, 0, 0, 10, 1),
					cardTmpl(p2Card, 1000, 100, 0, 0, 1, tt.enemySkills...),
				},
				volley, counterSkill(2),
			)
			b, logs := observedBattle(t, cat, standard(p1Card, p2Card), testutil.NewScriptedRand(0.75))
			att := b.Card(1)

			b.execute(&action{executor: att, skill: att.active[0]})

			// 0.75 picks index 3 of the five live enemies every time
			assert.Equal(t, tt.wantTargetHP, b.Card(9).HP())
			for _, id := range []int{6, 7, 8, 10} {
				assert.Equal(t, 1000.0, b.Card(id).HP(), "card %d", id)
			}
			assert.Equal(t, tt.wantDead, att.Dead())
			assert.Equal(t, tt.wantHits, logs.FilterMessage("hit").Len())
		})
	}
}

func TestDrainSharesDamageTaken(t *testing.T) {
	siphon := data.SkillTemplate{ID: 1, Name: "Siphon", Type: data.SkillTypeDefense, Func: data.FuncDrain, Range: data.RangeBothSides, Prob: 100}
	cat := newCatalog(t,
		[]data.CardTemplate{
			cardTmpl(p1Card, 100, 100, 0, 0, 10),
			cardTmpl(p2Card, 1000, 0, 0, 0, 1),
			cardTmpl(3, 1000, 0, 0, 0, 1, 1),
		},
		siphon,
	)
	setup := standard(p1Card, p2Card)
	setup.P2.Cards = []int{3, p2Card, p2Card, p2Card, p2Card}
	b := newBattle(t, cat, setup, testutil.NewScriptedRand(0.75))
	att, drainer, wounded := b.Card(1), b.Card(6), b.Card(7)
	wounded.hp = 900

	b.singleAttack(att, drainer, att.autoAttack, 1)

	assert.Equal(t, 1000-hit, drainer.HP())
	assert.Equal(t, 900+hit, wounded.HP())
}

func TestDrainAttackHealsWoundedAllies(t *testing.T) {
	leech := attackSkill(1)
	leech.Name = "Leech"
	leech.Func = data.FuncDrainAttack
	leech.Arg2 = 0.5
	leech.Arg4 = float64(data.RangeAll)
	cat := newCatalog(t,
		[]data.CardTemplate{
			cardTmpl(p1Card, 100, 100, 0, 0, 10, 1),
			cardTmpl(p2Card, 1000, 0, 0, 0, 1),
		},
		leech,
	)
	b := newBattle(t, cat, standard(p1Card, p2Card), testutil.NewScriptedRand(0.75))
	att, ally := b.Card(1), b.Card(2)
	ally.hp = 40

	a := &action{executor: att, skill: att.active[0]}
	require.True(t, b.willBeExecuted(a))
	b.execute(a)

	assert.Equal(t, 1000-hit, b.Card(6).HP())
	// half of 52 goes to the only wounded ally
	assert.Equal(t, 66.0, ally.HP())
	assert.Equal(t, 100.0, att.HP())
}
