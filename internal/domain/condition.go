package domain

// ConditionGrade is the ordinal grade assigned to an item's physical
// condition. Grades are ordered EXCELLENT > GOOD > FAIR > POOR > DAMAGED.
type ConditionGrade string

const (
	ConditionExcellent ConditionGrade = "EXCELLENT"
	ConditionGood      ConditionGrade = "GOOD"
	ConditionFair      ConditionGrade = "FAIR"
	ConditionPoor      ConditionGrade = "POOR"
	ConditionDamaged   ConditionGrade = "DAMAGED"
)

var conditionRanks = map[ConditionGrade]int{
	ConditionExcellent: 5,
	ConditionGood:      4,
	ConditionFair:      3,
	ConditionPoor:      2,
	ConditionDamaged:   1,
}

// Rank returns the numeric quality rank (5..1), or 0 for an unknown grade.
func (g ConditionGrade) Rank() int {
	return conditionRanks[g]
}

// Valid reports whether g is one of the five defined grades.
func (g ConditionGrade) Valid() bool {
	_, ok := conditionRanks[g]
	return ok
}

// ConditionFromRank maps a rank 5..1 back to its grade.
// Ranks outside that range return DAMAGED.
func ConditionFromRank(rank int) ConditionGrade {
	switch rank {
	case 5:
		return ConditionExcellent
	case 4:
		return ConditionGood
	case 3:
		return ConditionFair
	case 2:
		return ConditionPoor
	default:
		return ConditionDamaged
	}
}

// AllConditionGrades lists every grade in descending quality order.
func AllConditionGrades() []ConditionGrade {
	return []ConditionGrade{
		ConditionExcellent,
		ConditionGood,
		ConditionFair,
		ConditionPoor,
		ConditionDamaged,
	}
}
