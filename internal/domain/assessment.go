package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentResponse is one staff answer to a template criterion.
type AssessmentResponse struct {
	CriterionID string `json:"criterion_id"`
	Value       int    `json:"value"`
	Notes       string `json:"notes,omitempty"`
}

// DetailedScore is the per-criterion breakdown of a computed assessment.
type DetailedScore struct {
	CriterionID     string  `json:"criterion_id"`
	Value           int     `json:"value"`
	Label           string  `json:"label"`
	Weight          float64 `json:"weight"`
	WeightedScore   float64 `json:"weighted_score"`
	ConditionImpact string  `json:"condition_impact"`
	Notes           string  `json:"notes,omitempty"`
}

// AssessmentRecord is the computed, persisted result of inspecting a return.
// It is written exactly once per return event and never mutated. Staff
// overrides are recorded alongside the computed values so audits can tell
// algorithmic output from human judgment.
type AssessmentRecord struct {
	ID                     uuid.UUID       `json:"id"`
	ReturnID               int32           `json:"return_id"`
	ItemID                 int32           `json:"item_id"`
	TemplateID             int32           `json:"template_id"`
	TemplateVersion        int32           `json:"template_version"`
	OriginalCondition      ConditionGrade  `json:"original_condition"`
	DeterminedCondition    ConditionGrade  `json:"determined_condition"`
	StaffOverrideCondition *ConditionGrade `json:"staff_override_condition,omitempty"`
	FinalCondition         ConditionGrade  `json:"final_condition"`
	OverallScore           float64         `json:"overall_score"`
	DetailedScores         []DetailedScore `json:"detailed_scores"`
	CalculatedPenalty      float64         `json:"calculated_penalty"`
	StaffPenaltyOverride   *float64        `json:"staff_penalty_override,omitempty"`
	OverrideReason         string          `json:"override_reason,omitempty"`
	FinalPenalty           float64         `json:"final_penalty"`
	AssessedBy             int32           `json:"assessed_by"`
	AssessedAt             time.Time       `json:"assessed_at"`
}

// AssessmentOverrides carries the optional staff corrections supplied with a
// submission. A nil field means no override.
type AssessmentOverrides struct {
	Condition *ConditionGrade `json:"condition,omitempty"`
	Penalty   *float64        `json:"penalty,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// AssessmentFilter narrows assessment queries. Zero values mean "no filter".
type AssessmentFilter struct {
	ReturnID   int32
	ItemID     int32
	UserID     int32
	TemplateID int32
	Condition  ConditionGrade
	From       time.Time
	To         time.Time
}

// Page is the pagination request shared by list operations.
type Page struct {
	Number int32
	Size   int32
}

// Offset converts the page request into a SQL offset.
func (p Page) Offset() int32 {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
