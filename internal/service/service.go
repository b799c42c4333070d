package service

import (
	"context"

	"gearcheck-backend/internal/analytics"
	"gearcheck-backend/internal/domain"

	"github.com/google/uuid"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, tpl *domain.AssessmentTemplate) error
	// UpdateTemplate edits an unreferenced template in place. Once any
	// assessment references the template the edit lands as a new version and
	// the old one is superseded.
	UpdateTemplate(ctx context.Context, id int32, tpl *domain.AssessmentTemplate) (*domain.AssessmentTemplate, error)
	GetTemplate(ctx context.Context, id int32) (*domain.AssessmentTemplate, error)
	ListTemplates(ctx context.Context, category string) ([]domain.AssessmentTemplate, error)
}

type ReturnService interface {
	RecordReturn(ctx context.Context, req *RecordReturnRequest) (*domain.ReturnEvent, error)
	GetReturn(ctx context.Context, id int32) (*domain.ReturnEvent, error)
}

type AssessmentService interface {
	SubmitAssessment(ctx context.Context, req *SubmitAssessmentRequest) (*domain.AssessmentRecord, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*domain.AssessmentRecord, error)
	GetAssessmentForReturn(ctx context.Context, returnID int32) (*domain.AssessmentRecord, error)
	// QueryAssessments returns one page of records plus the unpaginated total.
	// When withReport is set the matching event log history is reduced into an
	// analytics report computed over the whole filtered set, not just the page.
	QueryAssessments(ctx context.Context, filter domain.AssessmentFilter, page domain.Page, g analytics.Granularity, withReport bool) ([]domain.AssessmentRecord, int32, *analytics.Report, error)
}

type DamageService interface {
	ReportDamage(ctx context.Context, rep *domain.DamageReport, reportedBy int32) error
	ReviewDamage(ctx context.Context, req *ReviewDamageRequest) (*domain.DamageReport, error)
	GetDamageReport(ctx context.Context, id int32) (*domain.DamageReport, error)
	ListDamageForReturn(ctx context.Context, returnID int32) ([]domain.DamageReport, error)
}

type ReputationService interface {
	GetScore(ctx context.Context, userID int32) (float64, error)
	GetHistory(ctx context.Context, userID int32, page domain.Page) ([]domain.ReputationEntry, int32, error)
}

type AnalyticsService interface {
	ConditionReport(ctx context.Context, filter domain.AssessmentFilter, g analytics.Granularity) (*analytics.Report, error)
	OverdueReport(ctx context.Context) (*analytics.OverdueReport, error)
}
