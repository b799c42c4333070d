package analytics

import (
	"testing"
	"time"

	"gearcheck-backend/internal/assessment"
	"gearcheck-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, SeverityModerate, SeverityFor(1))
	assert.Equal(t, SeverityModerate, SeverityFor(2))
	assert.Equal(t, SeverityModerate, SeverityFor(3))
	assert.Equal(t, SeverityHigh, SeverityFor(4))
	assert.Equal(t, SeverityHigh, SeverityFor(5))
	assert.Equal(t, SeverityHigh, SeverityFor(7))
	assert.Equal(t, SeverityCritical, SeverityFor(8))
	assert.Equal(t, SeverityCritical, SeverityFor(9))
}

func TestBuildOverdueReport(t *testing.T) {
	rates := assessment.DefaultPenaltyRates()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Empty feed", func(t *testing.T) {
		report := BuildOverdueReport(nil, rates)
		assert.Equal(t, 0, report.TotalCount)
		assert.Equal(t, 0.0, report.MeanDaysOverdue)
		assert.Equal(t, 0, report.AffectedUsers)
		assert.Empty(t, report.TopOverdue)
	})

	t.Run("Aggregates", func(t *testing.T) {
		loans := []domain.OverdueLoan{
			{ReservationID: 1, UserID: 10, DaysOverdue: 2, ItemValue: 100, DueDate: due},
			{ReservationID: 2, UserID: 10, DaysOverdue: 5, ItemValue: 200, DueDate: due},
			{ReservationID: 3, UserID: 11, DaysOverdue: 9, ItemValue: 500, DueDate: due},
		}

		report := BuildOverdueReport(loans, rates)
		assert.Equal(t, 3, report.TotalCount)
		assert.Equal(t, 1, report.SeverityCounts[SeverityModerate])
		assert.Equal(t, 1, report.SeverityCounts[SeverityHigh])
		assert.Equal(t, 1, report.SeverityCounts[SeverityCritical])
		assert.InDelta(t, 16.0/3.0, report.MeanDaysOverdue, 0.001)
		assert.Equal(t, 2, report.AffectedUsers, "distinct borrowers")
		// 4+0.1, 10+0.2, 18+0.5
		assert.InDelta(t, 32.8, report.TotalPotentialPenalty, 0.001)

		assert.Equal(t, int32(3), report.TopOverdue[0].ReservationID, "most overdue first")
	})

	t.Run("Top list capped at five", func(t *testing.T) {
		var loans []domain.OverdueLoan
		for i := 1; i <= 8; i++ {
			loans = append(loans, domain.OverdueLoan{
				ReservationID: int32(i), UserID: int32(i), DaysOverdue: i, DueDate: due,
			})
		}
		report := BuildOverdueReport(loans, rates)
		assert.Len(t, report.TopOverdue, 5)
		assert.Equal(t, 8, report.TopOverdue[0].DaysOverdue)
		assert.Equal(t, 4, report.TopOverdue[4].DaysOverdue)
	})
}
