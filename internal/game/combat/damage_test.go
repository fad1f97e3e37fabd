package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/testutil"
)

// midpoint yields variance exactly 1.0 for the stock 0.9–1.1 band.
func midpoint() *testutil.ScriptedRand { return testutil.NewScriptedRand(0.5) }

func TestCalcPhysicalDamage(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name           string
		stat, def      float64
		atkRow, defRow data.Row
		ignorePosition bool
		want           float64
	}{
		{"same mid row", 100, 50, data.RowMid, data.RowMid, false, 40},
		{"front attacker", 100, 50, data.RowFront, data.RowMid, false, 48},
		{"rear vs rear", 100, 50, data.RowRear, data.RowRear, false, 25},
		{"position ignored", 100, 50, data.RowFront, data.RowRear, true, 40},
		{"floored at 10% of base", 100, 1000, data.RowMid, data.RowMid, false, 3},
		{"zero stat", 0, 500, data.RowMid, data.RowMid, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := midpoint()
			got := CalcPhysicalDamage(src, p, tt.stat, tt.def, tt.atkRow, tt.defRow, tt.ignorePosition)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, src.Used, "one variance draw")
		})
	}
}

func TestCalcPhysicalDamageLowerBound(t *testing.T) {
	// Lowest variance, worst rows, huge defence: never below floor(base × 0.1 × 0.9).
	p := DefaultParams()
	for _, stat := range []float64{0, 1, 10, 1000, 25000} {
		src := testutil.NewScriptedRand(0)
		got := CalcPhysicalDamage(src, p, stat, 1e9, data.RowRear, data.RowRear, false)
		assert.GreaterOrEqual(t, got, math.Floor(stat*0.03*0.9)-1, "stat %v", stat)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestCalcMagicalDamage(t *testing.T) {
	p := DefaultParams()

	// base 300, counter (500+500)/2 = 500, diff (1000-500)*0.2 = 100
	assert.Equal(t, 400.0, CalcMagicalDamage(midpoint(), p, 1000, 500, 500))

	// floored: base 300 × 0.1
	assert.Equal(t, 30.0, CalcMagicalDamage(midpoint(), p, 1000, 10000, 10000))
}

func TestCalcVarianceBand(t *testing.T) {
	p := DefaultParams()
	low := CalcMagicalDamage(testutil.NewScriptedRand(0), p, 1000, 0, 0)
	high := CalcMagicalDamage(testutil.NewScriptedRand(0.999999), p, 1000, 0, 0)

	// raw 500: [450, 550)
	assert.Equal(t, 450.0, low)
	assert.Equal(t, 549.0, high)
}

func TestCalcHealAmount(t *testing.T) {
	assert.Equal(t, 300.0, CalcHealAmount(midpoint(), DefaultParams(), 1000))
}

func TestCalcDebuffAmount(t *testing.T) {
	tests := []struct {
		name                string
		execWis, targetWis  float64
		want                float64
	}{
		{"difference", 1000, 400, -600},
		{"minimum 10% of caster", 1000, 950, -100},
		{"weaker caster", 1000, 2000, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalcDebuffAmount(tt.execWis, tt.targetWis), 1e-9)
		})
	}

	assert.InDelta(t, -1200, CalcCasterBasedDebuffAmount(1000), 1e-9)
}

func TestApplyWard(t *testing.T) {
	assert.Equal(t, 40.0, ApplyWard(40, 0))
	assert.Equal(t, 20.0, ApplyWard(40, 0.5))
	assert.Equal(t, 2.0, ApplyWard(5, 0.5), "2.5 rounds half to even")
	assert.Equal(t, 4.0, ApplyWard(7, 0.5), "3.5 rounds half to even")
	assert.Equal(t, 0.0, ApplyWard(40, 1))
}

func TestAbsorbShield(t *testing.T) {
	tests := []struct {
		name              string
		damage, shield    float64
		passed, remaining float64
	}{
		{"no shield", 100, 0, 100, 0},
		{"shield breaks", 100, 30, 70, 0},
		{"exact", 100, 100, 0, 0},
		{"shield holds", 30, 100, 0, 70},
		{"zero damage", 0, 50, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, remaining := AbsorbShield(tt.damage, tt.shield)
			assert.Equal(t, tt.passed, passed)
			assert.Equal(t, tt.remaining, remaining)
			assert.GreaterOrEqual(t, remaining, 0.0)
		})
	}
}
