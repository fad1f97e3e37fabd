package db_test

import (
	"time"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/db"
	"github.com/udisondev/famsim/internal/testutil"
)

func testCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	skills := []data.SkillTemplate{
		{ID: 1, Name: "Strike", Type: data.SkillTypeActive, Func: data.FuncAttack, Calc: data.CalcATK, Arg1: 1.5, Range: data.RangeEnemyNear1, Prob: 40, Ward: data.WardPhysical},
		{ID: 2, Name: "Rally", Type: data.SkillTypeOpening, Func: data.FuncBuff, Calc: data.CalcWIS, Arg1: 0.2, Arg2: float64(data.StatusATK), Range: data.RangeAll, Prob: 70, Description: "raise ATK"},
		{ID: 3, Name: "Whim", Type: data.SkillTypeActive, Func: data.FuncRandom, Range: data.RangeMyself, Prob: 30, RandomSkills: []int{2, 1}},
	}
	cards := []data.CardTemplate{
		{ID: 100, Name: "Knight", FullName: "Knight of Dawn", HP: 12000, ATK: 9000, DEF: 11000, WIS: 7000, AGI: 8000, Skills: []int{2, 1}},
		{ID: 200, Name: "Rider", HP: 10000, ATK: 12000, Mounted: true, Skills: []int{1, 3}},
		{ID: 300, Name: "Warlord", HP: 15000, Warlord: true, AutoAttack: 1},
	}
	cat, err := data.NewCatalog(cards, skills)
	require.NoError(t, err)
	return cat
}

func TestCatalogRoundTrip(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewCatalogRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	want := testCatalog(t)

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Cards(), got.Cards())
	assert.Equal(t, want.Skills(), got.Skills())
}

func TestCatalogSaveReplaces(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewCatalogRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	require.NoError(t, repo.Save(ctx, testCatalog(t)))

	small, err := data.NewCatalog([]data.CardTemplate{{ID: 1, Name: "Solo", HP: 100}}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, small))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CardCount())
	assert.Equal(t, 1, got.SkillCount(), "only the default auto attack")
}

func TestCatalogLoadEmpty(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	got, err := db.NewCatalogRepository(pool).Load(testutil.ContextWithTimeout(t, 30*time.Second))
	require.NoError(t, err)
	assert.Zero(t, got.CardCount())
}
