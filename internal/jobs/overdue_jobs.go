package jobs

import (
	"context"
	"time"

	"gearcheck-backend/internal/logger"
)

// MarkOverdueLoans flips active loans past their due date to OVERDUE so the
// overdue feed and the potential-penalty report pick them up.
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()
		count, err := jr.loanRepo.MarkOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue loans", "error", err)
			return
		}
		logger.Info("Marked loans as overdue", "count", count)
	})
}

// OverdueSeverityReport aggregates the outstanding overdue feed and logs the
// headline numbers for the operations channel.
func (jr *JobRunner) OverdueSeverityReport() {
	jr.runWithRecovery("OverdueSeverityReport", func() {
		ctx := context.Background()
		report, err := jr.analytics.OverdueReport(ctx)
		if err != nil {
			logger.Error("Failed to build overdue severity report", "error", err)
			return
		}
		logger.Info("Overdue severity report",
			"total", report.TotalCount,
			"moderate", report.SeverityCounts["MODERATE"],
			"high", report.SeverityCounts["HIGH"],
			"critical", report.SeverityCounts["CRITICAL"],
			"affected_users", report.AffectedUsers,
			"total_potential_penalty", report.TotalPotentialPenalty)
	})
}
