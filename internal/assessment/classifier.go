package assessment

import "gearcheck-backend/internal/domain"

// Classify maps an overall score to a condition grade using the template's
// thresholds. The scan runs from EXCELLENT downward and a score exactly on a
// threshold takes that grade (score >= threshold). Every real number gets
// exactly one grade; anything below the Poor threshold is DAMAGED.
func Classify(score float64, th domain.ConditionThresholds) domain.ConditionGrade {
	switch {
	case score >= th.Excellent:
		return domain.ConditionExcellent
	case score >= th.Good:
		return domain.ConditionGood
	case score >= th.Fair:
		return domain.ConditionFair
	case score >= th.Poor:
		return domain.ConditionPoor
	default:
		return domain.ConditionDamaged
	}
}
