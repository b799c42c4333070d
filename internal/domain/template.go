package domain

import "time"

// CriterionOption is one of the discrete answers a staff inspector can pick
// for a criterion. Value is always in 1..5.
type CriterionOption struct {
	Value           int    `json:"value"`
	Label           string `json:"label"`
	ConditionImpact string `json:"condition_impact"`
}

// Criterion is a single weighted inspection question within a template.
type Criterion struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Weight  float64           `json:"weight"`
	Options []CriterionOption `json:"options"`
}

// Option returns the option with the given value, if defined.
func (c Criterion) Option(value int) (CriterionOption, bool) {
	for _, opt := range c.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return CriterionOption{}, false
}

// ConditionThresholds maps an overall score to a grade. Values are on the
// 0-100 scale and must be strictly decreasing; anything below Poor is DAMAGED.
type ConditionThresholds struct {
	Excellent float64 `json:"excellent"`
	Good      float64 `json:"good"`
	Fair      float64 `json:"fair"`
	Poor      float64 `json:"poor"`
}

// Descending reports whether the thresholds are strictly decreasing.
func (t ConditionThresholds) Descending() bool {
	return t.Excellent > t.Good && t.Good > t.Fair && t.Fair > t.Poor
}

// AssessmentTemplate is a versioned inspection checklist. A template row is
// immutable once an assessment references it; edits create a new version so
// historical records stay reproducible.
type AssessmentTemplate struct {
	ID         int32               `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Version    int32               `json:"version"`
	Criteria   []Criterion         `json:"criteria"`
	Thresholds ConditionThresholds `json:"condition_thresholds"`
	CreatedBy  int32               `json:"created_by"`
	Superseded bool                `json:"superseded"`
	CreatedOn  time.Time           `json:"created_on"`
}

// Criterion returns the criterion with the given ID, if present.
func (t *AssessmentTemplate) Criterion(id string) (Criterion, bool) {
	for _, c := range t.Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// TotalWeight sums the weights of all criteria.
func (t *AssessmentTemplate) TotalWeight() float64 {
	var total float64
	for _, c := range t.Criteria {
		total += c.Weight
	}
	return total
}
