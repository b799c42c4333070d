package service

import (
	"context"
	"errors"
	"testing"

	"gearcheck-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newDamageFixture() (*MockDamageRepo, *MockReturnRepo, *MockReputationRepo, DamageService) {
	damageRepo := new(MockDamageRepo)
	returnRepo := new(MockReturnRepo)
	reputationRepo := new(MockReputationRepo)
	svc := NewDamageService(damageRepo, returnRepo, reputationRepo)
	return damageRepo, returnRepo, reputationRepo, svc
}

func TestReportDamage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success fills borrower and status from the return", func(t *testing.T) {
		damageRepo, returnRepo, _, svc := newDamageFixture()
		returnRepo.On("GetByID", ctx, int32(12)).Return(&domain.ReturnEvent{
			ID: 12, ItemID: 3, UserID: 42,
		}, nil)
		damageRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

		rep := &domain.DamageReport{
			ReturnID:   12,
			DamageType: "cracked housing",
			Severity:   domain.DamageSeverityModerate,
		}
		err := svc.ReportDamage(ctx, rep, 2)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), rep.UserID)
		assert.Equal(t, int32(3), rep.ItemID)
		assert.Equal(t, domain.DamageStatusReported, rep.Status)
	})

	t.Run("Unknown severity", func(t *testing.T) {
		_, _, _, svc := newDamageFixture()
		err := svc.ReportDamage(ctx, &domain.DamageReport{
			ReturnID: 12, DamageType: "dent", Severity: domain.DamageSeverity("CATASTROPHIC"),
		}, 2)
		var validation *domain.ValidationError
		assert.True(t, errors.As(err, &validation))
	})
}

func TestReviewDamage(t *testing.T) {
	ctx := context.Background()

	reported := func() *domain.DamageReport {
		return &domain.DamageReport{
			ID: 9, ReturnID: 12, ItemID: 3, UserID: 42,
			DamageType: "cracked housing",
			Severity:   domain.DamageSeverityModerate,
			Status:     domain.DamageStatusReported,
		}
	}

	t.Run("Approval debits the borrower's trust score", func(t *testing.T) {
		damageRepo, _, reputationRepo, svc := newDamageFixture()
		damageRepo.On("GetByID", ctx, int32(9)).Return(reported(), nil)
		reputationRepo.On("ApplyPenalty", ctx, mock.MatchedBy(func(e *domain.ReputationEntry) bool {
			return e.UserID == 42 && e.Change == -8 &&
				e.SourceType == domain.ReputationSourceDamageReport && e.SourceID == 9
		}), mock.MatchedBy(func(entry *domain.EventLogEntry) bool {
			// The repository owns the payload; the service hands it a bare
			// envelope so the logged scores are the applied ones.
			return entry.Action == domain.ActionPenaltyApplied && entry.Payload == nil
		})).Return(nil)
		damageRepo.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil)

		rep, err := svc.ReviewDamage(ctx, &ReviewDamageRequest{
			ReportID:      9,
			NextStatus:    domain.DamageStatusApproved,
			ReviewerID:    5,
			PenaltyPoints: 8,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.DamageStatusApproved, rep.Status)
		assert.Equal(t, 8.0, rep.PenaltyPoints)
		reputationRepo.AssertExpectations(t)
	})

	t.Run("Replayed approval tolerates the duplicate ledger entry", func(t *testing.T) {
		damageRepo, _, reputationRepo, svc := newDamageFixture()
		damageRepo.On("GetByID", ctx, int32(9)).Return(reported(), nil)
		reputationRepo.On("ApplyPenalty", ctx, mock.Anything, mock.Anything).
			Return(domain.NewConflictError("duplicate source"))
		damageRepo.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ReviewDamage(ctx, &ReviewDamageRequest{
			ReportID:      9,
			NextStatus:    domain.DamageStatusApproved,
			ReviewerID:    5,
			PenaltyPoints: 8,
		})
		assert.NoError(t, err)
	})

	t.Run("Rejection applies no penalty", func(t *testing.T) {
		damageRepo, _, reputationRepo, svc := newDamageFixture()
		damageRepo.On("GetByID", ctx, int32(9)).Return(reported(), nil)
		damageRepo.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil)

		rep, err := svc.ReviewDamage(ctx, &ReviewDamageRequest{
			ReportID:   9,
			NextStatus: domain.DamageStatusRejected,
			ReviewerID: 5,
			ReviewNote: "normal wear",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.DamageStatusRejected, rep.Status)
		reputationRepo.AssertNotCalled(t, "ApplyPenalty", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Terminal states reject further transitions", func(t *testing.T) {
		damageRepo, _, _, svc := newDamageFixture()
		approved := reported()
		approved.Status = domain.DamageStatusApproved
		damageRepo.On("GetByID", ctx, int32(9)).Return(approved, nil)

		_, err := svc.ReviewDamage(ctx, &ReviewDamageRequest{
			ReportID:   9,
			NextStatus: domain.DamageStatusRejected,
			ReviewerID: 5,
		})
		var conflict *domain.ConflictError
		assert.True(t, errors.As(err, &conflict))
	})
}
