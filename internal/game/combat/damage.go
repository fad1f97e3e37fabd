package combat

import (
	"math"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/rng"
)

// Damage formula constants.
const (
	attackFactor    = 0.3 // base damage = stat × attackFactor
	diffFactor      = 0.2 // (attacker stat − defender stat) × diffFactor is added to base
	wisDefFactor    = 0.5 // magic counter-stat = (wis + def) × wisDefFactor
	healFactor      = 0.3
	debuffMinFactor = 0.1
	casterFactor    = 1.2

	// FlatDebuffBase is the base amount of an on-hit debuff with a flat multiplier.
	FlatDebuffBase = -100.0
)

// Params holds the tunable parts of the damage formulas.
type Params struct {
	VarianceMin float64 // 0.9
	VarianceMax float64 // 1.1
	FloorFactor float64 // damage never drops below base × FloorFactor
}

// DefaultParams returns the stock tunables.
func DefaultParams() Params {
	return Params{VarianceMin: 0.9, VarianceMax: 1.1, FloorFactor: 0.1}
}

// RowFactor returns the formation row multiplier, applied to both sides of a positional hit.
func RowFactor(r data.Row) float64 {
	switch r {
	case data.RowRear:
		return 0.8
	case data.RowFront:
		return 1.2
	}
	return 1
}

// CalcPhysicalDamage calculates ATK- or AGI-based damage before skill multiplier and ward.
//
// Parameters:
//   - stat: attacker ATK (or AGI)
//   - def: defender DEF
//   - atkRow, defRow: formation rows, ignored when ignorePosition is set
//
// Consumes one draw for variance.
func CalcPhysicalDamage(src rng.Source, p Params, stat, def float64, atkRow, defRow data.Row, ignorePosition bool) float64 {
	base := stat * attackFactor
	damage := (stat-def)*diffFactor + base

	if !ignorePosition {
		damage *= RowFactor(atkRow)
		damage *= RowFactor(defRow)
	}

	return applyVariance(src, p, damage, base)
}

// CalcMagicalDamage calculates WIS-based damage. Position never matters for magic.
// Consumes one draw for variance.
func CalcMagicalDamage(src rng.Source, p Params, wis, targetWis, targetDef float64) float64 {
	base := wis * attackFactor
	counter := (targetWis + targetDef) * wisDefFactor
	damage := (wis-counter)*diffFactor + base

	return applyVariance(src, p, damage, base)
}

func applyVariance(src rng.Source, p Params, damage, base float64) float64 {
	if floor := base * p.FloorFactor; damage < floor {
		damage = floor
	}
	return math.Floor(damage * src.Range(p.VarianceMin, p.VarianceMax))
}

// CalcHealAmount returns the WIS-based heal amount. Consumes one draw for variance.
func CalcHealAmount(src rng.Source, p Params, wis float64) float64 {
	return math.Floor(wis * healFactor * src.Range(p.VarianceMin, p.VarianceMax))
}

// CalcDebuffAmount returns the (negative) stat debuff base against a target.
// The caster always takes off at least 10% of its own WIS.
func CalcDebuffAmount(execWis, targetWis float64) float64 {
	value := execWis - targetWis
	if minimum := execWis * debuffMinFactor; value < minimum {
		value = minimum
	}
	return -value
}

// CalcCasterBasedDebuffAmount returns the (negative) debuff base that ignores the target.
func CalcCasterBasedDebuffAmount(execWis float64) float64 {
	return -execWis * casterFactor
}

// ApplyWard reduces damage by the matching resistance, rounding half to even.
func ApplyWard(damage, resistance float64) float64 {
	return math.RoundToEven(damage * (1 - resistance))
}

// AbsorbShield runs damage through an hp shield.
// Returns the damage that passes through and the shield left over.
func AbsorbShield(damage, shield float64) (passed, remaining float64) {
	if shield <= 0 {
		return damage, shield
	}
	if damage >= shield {
		return damage - shield, 0
	}
	return 0, shield - damage
}
