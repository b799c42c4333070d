package assessment

import (
	"fmt"
	"sort"

	"gearcheck-backend/internal/domain"
)

// ScoreResult is the output of scoring one response set against a template.
type ScoreResult struct {
	OverallScore   float64
	DetailedScores []domain.DetailedScore
}

// Score converts weighted per-criterion responses into a single 0-100
// overall score. It is a pure function of the template snapshot and the
// responses: same inputs, same output, no clock access.
//
// Every template criterion must have exactly one response and every response
// value must be one of the criterion's defined option values; violations
// return a ValidationError listing the offending criterion IDs. A template
// whose criteria weights sum to zero is rejected outright.
func Score(tpl *domain.AssessmentTemplate, responses []domain.AssessmentResponse) (*ScoreResult, error) {
	if tpl.TotalWeight() <= 0 {
		return nil, domain.NewValidationError("template %d has zero total weight", tpl.ID)
	}

	byID := make(map[string]domain.AssessmentResponse, len(responses))
	for _, resp := range responses {
		if _, dup := byID[resp.CriterionID]; dup {
			return nil, domain.NewValidationError("duplicate response for criterion %s", resp.CriterionID)
		}
		byID[resp.CriterionID] = resp
	}

	var missing, invalid []string
	var totalScore, totalWeight float64
	details := make([]domain.DetailedScore, 0, len(tpl.Criteria))

	for _, crit := range tpl.Criteria {
		resp, ok := byID[crit.ID]
		if !ok {
			missing = append(missing, crit.ID)
			continue
		}
		delete(byID, crit.ID)

		opt, ok := crit.Option(resp.Value)
		if !ok {
			invalid = append(invalid, fmt.Sprintf("%s=%d", crit.ID, resp.Value))
			continue
		}

		weighted := float64(resp.Value) / 5.0 * crit.Weight
		totalScore += weighted
		totalWeight += crit.Weight

		details = append(details, domain.DetailedScore{
			CriterionID:     crit.ID,
			Value:           resp.Value,
			Label:           opt.Label,
			Weight:          crit.Weight,
			WeightedScore:   weighted,
			ConditionImpact: opt.ConditionImpact,
			Notes:           resp.Notes,
		})
	}

	// Responses for criteria the template does not define.
	for id := range byID {
		invalid = append(invalid, fmt.Sprintf("%s=unknown criterion", id))
	}
	sort.Strings(invalid)

	if len(missing) > 0 || len(invalid) > 0 {
		return nil, &domain.ValidationError{
			Msg:             "incomplete or invalid assessment responses",
			MissingCriteria: missing,
			InvalidValues:   invalid,
		}
	}

	return &ScoreResult{
		OverallScore:   totalScore / totalWeight * 100,
		DetailedScores: details,
	}, nil
}
