package service

import (
	"context"
	"fmt"
	"time"

	"gearcheck-backend/internal/assessment"
	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/repository"
)

// RecordReturnRequest carries one staff-recorded item return.
type RecordReturnRequest struct {
	ReservationID     int32
	ReturnDate        time.Time
	ConditionOnReturn domain.ConditionGrade
	RecordedBy        int32
}

type returnService struct {
	returnRepo repository.ReturnRepository
	loanRepo   repository.LoanRepository
	rates      assessment.PenaltyRates
}

func NewReturnService(returnRepo repository.ReturnRepository, loanRepo repository.LoanRepository, rates assessment.PenaltyRates) ReturnService {
	return &returnService{returnRepo: returnRepo, loanRepo: loanRepo, rates: rates}
}

// RecordReturn closes the loan and writes the return event with the overdue
// state computed against the loan's due date. The overdue penalty recorded
// here is the return-time component only; condition degradation is charged
// later by the assessment.
func (s *returnService) RecordReturn(ctx context.Context, req *RecordReturnRequest) (*domain.ReturnEvent, error) {
	if !req.ConditionOnReturn.Valid() {
		return nil, domain.NewValidationError("unknown condition grade %q", string(req.ConditionOnReturn))
	}
	if req.ReturnDate.IsZero() {
		req.ReturnDate = time.Now().UTC()
	}

	loan, err := s.loanRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusReturned {
		return nil, domain.NewConflictError("reservation %d is already returned", req.ReservationID)
	}

	days := assessment.DaysOverdue(req.ReturnDate, loan.DueDate)
	ret := &domain.ReturnEvent{
		ReservationID:     req.ReservationID,
		ItemID:            loan.ItemID,
		UserID:            loan.UserID,
		ReturnDate:        req.ReturnDate,
		ConditionOnReturn: req.ConditionOnReturn,
		IsOverdue:         days > 0,
		DaysOverdue:       days,
		PenaltyAmount:     s.rates.OverduePenalty(days),
	}
	if ret.IsOverdue {
		ret.PenaltyReason = fmt.Sprintf("returned %d day(s) late", days)
	}

	payload, err := domain.EncodePayload(&domain.ReturnPayload{
		SchemaVersion:     domain.CurrentPayloadSchema,
		ReservationID:     ret.ReservationID,
		ItemID:            ret.ItemID,
		UserID:            ret.UserID,
		ConditionOnReturn: ret.ConditionOnReturn,
		IsOverdue:         ret.IsOverdue,
		DaysOverdue:       ret.DaysOverdue,
		PenaltyAmount:     ret.PenaltyAmount,
	})
	if err != nil {
		return nil, err
	}
	entry := &domain.EventLogEntry{
		Action:     domain.ActionReturnRecorded,
		EntityType: domain.EntityReturn,
		UserID:     req.RecordedBy,
		Payload:    payload,
	}

	if err := s.returnRepo.CreateReturn(ctx, ret, entry); err != nil {
		return nil, err
	}
	logger.Info("Return recorded",
		"return_id", ret.ID, "reservation_id", ret.ReservationID,
		"days_overdue", ret.DaysOverdue, "penalty", ret.PenaltyAmount)
	return ret, nil
}

func (s *returnService) GetReturn(ctx context.Context, id int32) (*domain.ReturnEvent, error) {
	return s.returnRepo.GetByID(ctx, id)
}

func formatID(id int32) string {
	return fmt.Sprintf("%d", id)
}
