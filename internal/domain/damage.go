package domain

import "time"

// DamageSeverity grades how badly an item was damaged on return.
type DamageSeverity string

const (
	DamageSeverityMinor     DamageSeverity = "MINOR"
	DamageSeverityModerate  DamageSeverity = "MODERATE"
	DamageSeverityMajor     DamageSeverity = "MAJOR"
	DamageSeverityTotalLoss DamageSeverity = "TOTAL_LOSS"
)

// Valid reports whether s is a defined severity.
func (s DamageSeverity) Valid() bool {
	switch s {
	case DamageSeverityMinor, DamageSeverityModerate, DamageSeverityMajor, DamageSeverityTotalLoss:
		return true
	}
	return false
}

// ConditionFloor returns the worst condition the damage forces the item
// into. MINOR damage does not cap the condition; ok is false in that case.
func (s DamageSeverity) ConditionFloor() (ConditionGrade, bool) {
	switch s {
	case DamageSeverityTotalLoss:
		return ConditionDamaged, true
	case DamageSeverityMajor:
		return ConditionPoor, true
	case DamageSeverityModerate:
		return ConditionFair, true
	default:
		return "", false
	}
}

// DamageStatus is the review state machine for a damage report.
type DamageStatus string

const (
	DamageStatusReported    DamageStatus = "REPORTED"
	DamageStatusUnderReview DamageStatus = "UNDER_REVIEW"
	DamageStatusApproved    DamageStatus = "APPROVED"
	DamageStatusRejected    DamageStatus = "REJECTED"
)

var damageTransitions = map[DamageStatus][]DamageStatus{
	DamageStatusReported:    {DamageStatusUnderReview, DamageStatusApproved, DamageStatusRejected},
	DamageStatusUnderReview: {DamageStatusApproved, DamageStatusRejected},
}

// CanTransition reports whether moving from s to next is a legal step.
// APPROVED and REJECTED are terminal.
func (s DamageStatus) CanTransition(next DamageStatus) bool {
	for _, allowed := range damageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DamageReport is one staff-filed damage claim against a return. A return
// may carry zero or more reports.
type DamageReport struct {
	ID                  int32          `json:"id"`
	ReturnID            int32          `json:"return_id"`
	ItemID              int32          `json:"item_id"`
	UserID              int32          `json:"user_id"`
	DamageType          string         `json:"damage_type"`
	Severity            DamageSeverity `json:"severity"`
	AffectsUsability    bool           `json:"affects_usability"`
	EstimatedRepairCost *float64       `json:"estimated_repair_cost,omitempty"`
	PenaltyPoints       float64        `json:"penalty_points"`
	Status              DamageStatus   `json:"status"`
	ReviewedBy          *int32         `json:"reviewed_by,omitempty"`
	ReviewNote          string         `json:"review_note,omitempty"`
	CreatedOn           time.Time      `json:"created_on"`
	UpdatedOn           time.Time      `json:"updated_on"`
}
