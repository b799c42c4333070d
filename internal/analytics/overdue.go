package analytics

import (
	"sort"

	"gearcheck-backend/internal/assessment"
	"gearcheck-backend/internal/domain"
)

// OverdueSeverity buckets how late a still-outstanding loan is.
type OverdueSeverity string

const (
	SeverityModerate OverdueSeverity = "MODERATE"
	SeverityHigh     OverdueSeverity = "HIGH"
	SeverityCritical OverdueSeverity = "CRITICAL"
)

// SeverityFor maps days overdue to a severity bucket: up to 3 days MODERATE,
// up to 7 HIGH, beyond that CRITICAL.
func SeverityFor(daysOverdue int) OverdueSeverity {
	switch {
	case daysOverdue <= 3:
		return SeverityModerate
	case daysOverdue <= 7:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// OverdueReport aggregates the feed of active, not-yet-returned overdue
// loans.
type OverdueReport struct {
	TotalCount            int                     `json:"total_count"`
	SeverityCounts        map[OverdueSeverity]int `json:"severity_counts"`
	MeanDaysOverdue       float64                 `json:"mean_days_overdue"`
	TotalPotentialPenalty float64                 `json:"total_potential_penalty"`
	AffectedUsers         int                     `json:"affected_users"`
	TopOverdue            []domain.OverdueLoan    `json:"top_overdue"`
}

// topOverdueLimit bounds the most-overdue list in the report.
const topOverdueLimit = 5

// BuildOverdueReport reduces the overdue feed into severity counts, the mean
// days overdue, the total prospective penalty (value-weighted formula), the
// distinct affected borrower count, and the five most-overdue loans. All
// fields are zero-valued for an empty feed.
func BuildOverdueReport(loans []domain.OverdueLoan, rates assessment.PenaltyRates) *OverdueReport {
	report := &OverdueReport{
		TotalCount:     len(loans),
		SeverityCounts: make(map[OverdueSeverity]int),
	}
	if len(loans) == 0 {
		return report
	}

	users := make(map[int32]bool)
	var daysSum int
	for _, loan := range loans {
		report.SeverityCounts[SeverityFor(loan.DaysOverdue)]++
		report.TotalPotentialPenalty += rates.PotentialPenalty(loan.DaysOverdue, loan.ItemValue)
		users[loan.UserID] = true
		daysSum += loan.DaysOverdue
	}
	report.MeanDaysOverdue = float64(daysSum) / float64(len(loans))
	report.AffectedUsers = len(users)

	ranked := make([]domain.OverdueLoan, len(loans))
	copy(ranked, loans)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].DaysOverdue > ranked[j].DaysOverdue })
	if len(ranked) > topOverdueLimit {
		ranked = ranked[:topOverdueLimit]
	}
	report.TopOverdue = ranked

	return report
}
