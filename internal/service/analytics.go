package service

import (
	"context"
	"time"

	"gearcheck-backend/internal/analytics"
	"gearcheck-backend/internal/assessment"
	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"
)

type analyticsService struct {
	eventRepo repository.EventLogRepository
	loanRepo  repository.LoanRepository
	rates     assessment.PenaltyRates
}

func NewAnalyticsService(eventRepo repository.EventLogRepository, loanRepo repository.LoanRepository, rates assessment.PenaltyRates) AnalyticsService {
	return &analyticsService{eventRepo: eventRepo, loanRepo: loanRepo, rates: rates}
}

// ConditionReport reduces the assessment history matching the filter into a
// distribution, trend, and summary. The report is a pure function of the
// event log: re-running the same query over the same history always yields
// the same report.
func (s *analyticsService) ConditionReport(ctx context.Context, filter domain.AssessmentFilter, g analytics.Granularity) (*analytics.Report, error) {
	entries, err := s.eventRepo.List(ctx, domain.EventLogFilter{
		EntityType: domain.EntityAssessment,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, err
	}
	rows := analytics.FilterRows(analytics.RowsFromEventLog(entries), filter)
	return analytics.BuildReport(rows, g), nil
}

func (s *analyticsService) OverdueReport(ctx context.Context) (*analytics.OverdueReport, error) {
	loans, err := s.loanRepo.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return analytics.BuildOverdueReport(loans, s.rates), nil
}
