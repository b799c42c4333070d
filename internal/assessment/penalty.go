package assessment

import (
	"math"
	"time"

	"gearcheck-backend/internal/domain"
)

// PenaltyRates holds the tunable constants of the penalty formulas. The
// defaults match the published policy; deployments can adjust them through
// configuration.
type PenaltyRates struct {
	OverduePointsPerDay float64 `yaml:"overdue_points_per_day"`
	OverdueCap          float64 `yaml:"overdue_cap"`
	DegradationStep     float64 `yaml:"degradation_step"`
	ValueWeightRate     float64 `yaml:"value_weight_rate"`
	ValueWeightCap      float64 `yaml:"value_weight_cap"`
	PotentialCap        float64 `yaml:"potential_cap"`
}

// DefaultPenaltyRates returns the standard policy constants.
func DefaultPenaltyRates() PenaltyRates {
	return PenaltyRates{
		OverduePointsPerDay: 2,
		OverdueCap:          20,
		DegradationStep:     5,
		ValueWeightRate:     0.001,
		ValueWeightCap:      10,
		PotentialCap:        30,
	}
}

// DaysOverdue computes how many days past due a return is, rounding any
// partial day up. Returns on or before the due date count as zero.
func DaysOverdue(returnDate, dueDate time.Time) int {
	if !returnDate.After(dueDate) {
		return 0
	}
	return int(math.Ceil(returnDate.Sub(dueDate).Hours() / 24))
}

// OverduePenalty is the return-time overdue component, capped.
func (r PenaltyRates) OverduePenalty(daysOverdue int) float64 {
	if daysOverdue <= 0 {
		return 0
	}
	return math.Min(float64(daysOverdue)*r.OverduePointsPerDay, r.OverdueCap)
}

// DegradationPenalty charges for rank distance when the item's condition
// worsened. It never goes negative: an item that came back better than it
// left earns no credit.
func (r PenaltyRates) DegradationPenalty(original, final domain.ConditionGrade) float64 {
	drop := original.Rank() - final.Rank()
	if drop <= 0 {
		return 0
	}
	return float64(drop) * r.DegradationStep
}

// ApplyDamageFloor lowers cond to the worst floor implied by the usable
// damage reports, so damage severity is folded into the condition before the
// degradation penalty is computed rather than charged separately. Reports
// that do not affect usability, and MINOR damage, leave the condition alone.
func ApplyDamageFloor(cond domain.ConditionGrade, reports []domain.DamageReport) domain.ConditionGrade {
	floored := cond
	for _, rep := range reports {
		if !rep.AffectsUsability {
			continue
		}
		floor, ok := rep.Severity.ConditionFloor()
		if !ok {
			continue
		}
		if floor.Rank() < floored.Rank() {
			floored = floor
		}
	}
	return floored
}

// AssessmentPenalty combines the overdue and condition-degradation
// components for a completed return. Damage severity is applied as a
// condition floor first so it is not double-counted against degradation.
// The result is always >= 0.
func (r PenaltyRates) AssessmentPenalty(original, final domain.ConditionGrade, daysOverdue int, reports []domain.DamageReport) float64 {
	effective := ApplyDamageFloor(final, reports)
	return r.OverduePenalty(daysOverdue) + r.DegradationPenalty(original, effective)
}

// PotentialPenalty is the prospective penalty shown for a still-outstanding
// overdue loan: the capped overdue component plus a value-weighted addition,
// with the total capped. It is display-only and never feeds a final
// assessment penalty.
func (r PenaltyRates) PotentialPenalty(daysOverdue int, itemValue float64) float64 {
	if itemValue < 0 {
		itemValue = 0
	}
	total := r.OverduePenalty(daysOverdue) + math.Min(itemValue*r.ValueWeightRate, r.ValueWeightCap)
	return math.Min(total, r.PotentialCap)
}
