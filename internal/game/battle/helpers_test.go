package battle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/udisondev/famsim/internal/config"
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/rng"
)

const (
	p1Card = 1
	p2Card = 2
)

func cardTmpl(id, hp, atk, def, wis, agi int, skills ...int) data.CardTemplate {
	return data.CardTemplate{
		ID:     id,
		Name:   fmt.Sprintf("card-%d", id),
		HP:     hp,
		ATK:    atk,
		DEF:    def,
		WIS:    wis,
		AGI:    agi,
		Skills: skills,
	}
}

func newCatalog(t *testing.T, cards []data.CardTemplate, skills ...data.SkillTemplate) *data.Catalog {
	t.Helper()
	cat, err := data.NewCatalog(cards, skills)
	require.NoError(t, err)
	return cat
}

// lineup returns a mid-row team of n copies of one card. Mid rows keep physical damage unscaled.
func lineup(id, n int) Team {
	cards := make([]int, n)
	for i := range cards {
		cards[i] = id
	}
	return Team{Formation: data.FormationMid, Cards: cards}
}

func newBattle(t *testing.T, cat *data.Catalog, setup Setup, src rng.Source) *Battle {
	t.Helper()
	b, err := New(setup, cat, config.DefaultRules(), src, zaptest.NewLogger(t))
	require.NoError(t, err)
	return b
}

// observedBattle records the combat trace so tests can count hits.
func observedBattle(t *testing.T, cat *data.Catalog, setup Setup, src rng.Source) (*Battle, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	b, err := New(setup, cat, config.DefaultRules(), src, zap.New(core))
	require.NoError(t, err)
	return b, logs
}

func standard(p1, p2 int) Setup {
	return Setup{P1: lineup(p1, data.Columns), P2: lineup(p2, data.Columns), Mode: data.ModeStandard}
}

// guarded runs fn and returns the error of a battle abort raised inside it.
func guarded(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(abort).err
		}
	}()
	fn()
	return nil
}

func attackSkill(id int) data.SkillTemplate {
	return data.SkillTemplate{
		ID:    id,
		Name:  "Strike",
		Type:  data.SkillTypeActive,
		Func:  data.FuncAttack,
		Calc:  data.CalcATK,
		Arg1:  1,
		Range: data.RangeEnemyNear1,
		Prob:  100,
		Ward:  data.WardPhysical,
	}
}

// counterSkill strikes back at the attacker after being hit.
func counterSkill(id int) data.SkillTemplate {
	return data.SkillTemplate{
		ID:    id,
		Name:  "Riposte",
		Type:  data.SkillTypeDefense,
		Func:  data.FuncCounter,
		Calc:  data.CalcATK,
		Arg1:  1,
		Range: data.RangeEnemyNear1,
		Prob:  100,
		Ward:  data.WardPhysical,
	}
}
