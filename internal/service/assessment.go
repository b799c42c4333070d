package service

import (
	"context"
	"time"

	"gearcheck-backend/internal/analytics"
	"gearcheck-backend/internal/assessment"
	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/repository"

	"github.com/google/uuid"
)

// SubmitAssessmentRequest carries one staff condition assessment of a return.
type SubmitAssessmentRequest struct {
	ReturnID   int32
	TemplateID int32
	Responses  []domain.AssessmentResponse
	Overrides  domain.AssessmentOverrides
	AssessedBy int32
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	returnRepo     repository.ReturnRepository
	loanRepo       repository.LoanRepository
	templateRepo   repository.TemplateRepository
	damageRepo     repository.DamageRepository
	eventRepo      repository.EventLogRepository
	rates          assessment.PenaltyRates
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	returnRepo repository.ReturnRepository,
	loanRepo repository.LoanRepository,
	templateRepo repository.TemplateRepository,
	damageRepo repository.DamageRepository,
	eventRepo repository.EventLogRepository,
	rates assessment.PenaltyRates,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		returnRepo:     returnRepo,
		loanRepo:       loanRepo,
		templateRepo:   templateRepo,
		damageRepo:     damageRepo,
		eventRepo:      eventRepo,
		rates:          rates,
	}
}

// SubmitAssessment scores the responses against the template snapshot,
// classifies the result, computes the penalty, applies any staff overrides,
// and persists the record with its log entry in one transaction. A return can
// be assessed exactly once.
func (s *assessmentService) SubmitAssessment(ctx context.Context, req *SubmitAssessmentRequest) (*domain.AssessmentRecord, error) {
	if err := validateOverrides(req.Overrides); err != nil {
		return nil, err
	}

	ret, err := s.returnRepo.GetByID(ctx, req.ReturnID)
	if err != nil {
		return nil, err
	}
	if ret.Assessed {
		return nil, domain.NewConflictError("return %d already has an assessment record", req.ReturnID)
	}

	tpl, err := s.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.GetByID(ctx, ret.ReservationID)
	if err != nil {
		return nil, err
	}
	reports, err := s.damageRepo.ListByReturn(ctx, req.ReturnID)
	if err != nil {
		return nil, err
	}

	result, err := assessment.Score(tpl, req.Responses)
	if err != nil {
		return nil, err
	}
	determined := assessment.Classify(result.OverallScore, tpl.Thresholds)

	final := determined
	if req.Overrides.Condition != nil {
		final = *req.Overrides.Condition
	}

	calculated := s.rates.AssessmentPenalty(loan.Condition, final, ret.DaysOverdue, reports)
	finalPenalty := calculated
	if req.Overrides.Penalty != nil {
		finalPenalty = *req.Overrides.Penalty
	}

	rec := &domain.AssessmentRecord{
		ReturnID:               req.ReturnID,
		ItemID:                 ret.ItemID,
		TemplateID:             tpl.ID,
		TemplateVersion:        tpl.Version,
		OriginalCondition:      loan.Condition,
		DeterminedCondition:    determined,
		StaffOverrideCondition: req.Overrides.Condition,
		FinalCondition:         final,
		OverallScore:           result.OverallScore,
		DetailedScores:         result.DetailedScores,
		CalculatedPenalty:      calculated,
		StaffPenaltyOverride:   req.Overrides.Penalty,
		OverrideReason:         req.Overrides.Reason,
		FinalPenalty:           finalPenalty,
		AssessedBy:             req.AssessedBy,
		AssessedAt:             time.Now().UTC(),
	}

	payload, err := domain.EncodePayload(&domain.AssessmentPayload{
		SchemaVersion:     domain.CurrentPayloadSchema,
		ReturnID:          rec.ReturnID,
		ItemID:            rec.ItemID,
		UserID:            ret.UserID,
		TemplateID:        rec.TemplateID,
		OriginalCondition: rec.OriginalCondition,
		FinalCondition:    rec.FinalCondition,
		OverallScore:      rec.OverallScore,
		FinalPenalty:      rec.FinalPenalty,
		Overridden:        req.Overrides.Condition != nil || req.Overrides.Penalty != nil,
	})
	if err != nil {
		return nil, err
	}
	entry := &domain.EventLogEntry{
		Action:     domain.ActionAssessmentSubmitted,
		EntityType: domain.EntityAssessment,
		UserID:     req.AssessedBy,
		Payload:    payload,
	}

	if err := s.assessmentRepo.CreateRecord(ctx, rec, entry); err != nil {
		return nil, err
	}
	logger.Info("Assessment submitted",
		"assessment_id", rec.ID, "return_id", rec.ReturnID,
		"score", rec.OverallScore, "condition", string(rec.FinalCondition),
		"penalty", rec.FinalPenalty)
	return rec, nil
}

func validateOverrides(o domain.AssessmentOverrides) error {
	if o.Condition == nil && o.Penalty == nil {
		return nil
	}
	if o.Reason == "" {
		return domain.NewValidationError("override reason is required when overriding the computed result")
	}
	if o.Condition != nil && !o.Condition.Valid() {
		return domain.NewValidationError("unknown condition grade %q", string(*o.Condition))
	}
	if o.Penalty != nil && *o.Penalty < 0 {
		return domain.NewValidationError("penalty override must not be negative")
	}
	return nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.AssessmentRecord, error) {
	return s.assessmentRepo.GetByID(ctx, id)
}

func (s *assessmentService) GetAssessmentForReturn(ctx context.Context, returnID int32) (*domain.AssessmentRecord, error) {
	return s.assessmentRepo.GetByReturnID(ctx, returnID)
}

func (s *assessmentService) QueryAssessments(ctx context.Context, filter domain.AssessmentFilter, page domain.Page, g analytics.Granularity, withReport bool) ([]domain.AssessmentRecord, int32, *analytics.Report, error) {
	records, total, err := s.assessmentRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, nil, err
	}
	if !withReport {
		return records, total, nil, nil
	}

	entries, err := s.eventRepo.List(ctx, domain.EventLogFilter{
		EntityType: domain.EntityAssessment,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, 0, nil, err
	}
	rows := analytics.FilterRows(analytics.RowsFromEventLog(entries), filter)
	return records, total, analytics.BuildReport(rows, g), nil
}
