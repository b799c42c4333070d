package service

import (
	"context"
	"errors"
	"fmt"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/repository"
)

// ReviewDamageRequest carries a reviewer's decision on a damage report.
type ReviewDamageRequest struct {
	ReportID      int32
	NextStatus    domain.DamageStatus
	ReviewerID    int32
	ReviewNote    string
	PenaltyPoints float64
}

type damageService struct {
	damageRepo     repository.DamageRepository
	returnRepo     repository.ReturnRepository
	reputationRepo repository.ReputationRepository
}

func NewDamageService(
	damageRepo repository.DamageRepository,
	returnRepo repository.ReturnRepository,
	reputationRepo repository.ReputationRepository,
) DamageService {
	return &damageService{damageRepo: damageRepo, returnRepo: returnRepo, reputationRepo: reputationRepo}
}

func (s *damageService) ReportDamage(ctx context.Context, rep *domain.DamageReport, reportedBy int32) error {
	if !rep.Severity.Valid() {
		return domain.NewValidationError("unknown damage severity %q", string(rep.Severity))
	}
	if rep.DamageType == "" {
		return domain.NewValidationError("damage type is required")
	}
	if rep.EstimatedRepairCost != nil && *rep.EstimatedRepairCost < 0 {
		return domain.NewValidationError("estimated repair cost must not be negative")
	}

	ret, err := s.returnRepo.GetByID(ctx, rep.ReturnID)
	if err != nil {
		return err
	}
	rep.ItemID = ret.ItemID
	rep.UserID = ret.UserID
	rep.Status = domain.DamageStatusReported
	rep.PenaltyPoints = 0

	entry, err := damageLogEntry(domain.ActionDamageReported, rep, reportedBy)
	if err != nil {
		return err
	}
	return s.damageRepo.Create(ctx, rep, entry)
}

// ReviewDamage advances a report through its review state machine. Approving
// with penalty points also debits the borrower's trust score; the unique
// source reference on the reputation ledger makes a replayed approval a no-op
// on the score, so the penalty lands at most once even across retries.
func (s *damageService) ReviewDamage(ctx context.Context, req *ReviewDamageRequest) (*domain.DamageReport, error) {
	rep, err := s.damageRepo.GetByID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	if !rep.Status.CanTransition(req.NextStatus) {
		return nil, domain.NewConflictError("damage report %d cannot move from %s to %s",
			rep.ID, string(rep.Status), string(req.NextStatus))
	}
	if req.NextStatus == domain.DamageStatusApproved && req.PenaltyPoints < 0 {
		return nil, domain.NewValidationError("penalty points must not be negative")
	}

	if req.NextStatus == domain.DamageStatusApproved && req.PenaltyPoints > 0 {
		if err := s.applyPenalty(ctx, rep, req); err != nil {
			return nil, err
		}
	}

	rep.Status = req.NextStatus
	rep.ReviewedBy = &req.ReviewerID
	rep.ReviewNote = req.ReviewNote
	if req.NextStatus == domain.DamageStatusApproved {
		rep.PenaltyPoints = req.PenaltyPoints
	}

	entry, err := damageLogEntry(domain.ActionDamageStatusChanged, rep, req.ReviewerID)
	if err != nil {
		return nil, err
	}
	if err := s.damageRepo.UpdateStatus(ctx, rep, entry); err != nil {
		return nil, err
	}
	logger.Info("Damage report reviewed",
		"report_id", rep.ID, "status", string(rep.Status), "penalty_points", rep.PenaltyPoints)
	return rep, nil
}

// applyPenalty runs before the status update so a crash between the two steps
// converges on retry: the duplicate ledger entry is reported as a conflict
// and treated as already applied.
func (s *damageService) applyPenalty(ctx context.Context, rep *domain.DamageReport, req *ReviewDamageRequest) error {
	e := &domain.ReputationEntry{
		UserID:     rep.UserID,
		Change:     -req.PenaltyPoints,
		Reason:     fmt.Sprintf("approved damage report #%d", rep.ID),
		SourceType: domain.ReputationSourceDamageReport,
		SourceID:   rep.ID,
	}
	// The repository fills the log payload once the scores are known; the
	// entry here is only the envelope.
	err := s.reputationRepo.ApplyPenalty(ctx, e, &domain.EventLogEntry{
		Action:     domain.ActionPenaltyApplied,
		EntityType: domain.EntityReputation,
		UserID:     req.ReviewerID,
	})
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		logger.Warn("Reputation penalty already applied for damage report", "report_id", rep.ID)
		return nil
	}
	return err
}

func (s *damageService) GetDamageReport(ctx context.Context, id int32) (*domain.DamageReport, error) {
	return s.damageRepo.GetByID(ctx, id)
}

func (s *damageService) ListDamageForReturn(ctx context.Context, returnID int32) ([]domain.DamageReport, error) {
	return s.damageRepo.ListByReturn(ctx, returnID)
}

func damageLogEntry(action domain.LogAction, rep *domain.DamageReport, actorID int32) (*domain.EventLogEntry, error) {
	payload, err := domain.EncodePayload(&domain.DamagePayload{
		SchemaVersion:    domain.CurrentPayloadSchema,
		ReturnID:         rep.ReturnID,
		ItemID:           rep.ItemID,
		UserID:           rep.UserID,
		Severity:         rep.Severity,
		AffectsUsability: rep.AffectsUsability,
		Status:           rep.Status,
		PenaltyPoints:    rep.PenaltyPoints,
	})
	if err != nil {
		return nil, err
	}
	return &domain.EventLogEntry{
		Action:     action,
		EntityType: domain.EntityDamageReport,
		UserID:     actorID,
		Payload:    payload,
	}, nil
}
