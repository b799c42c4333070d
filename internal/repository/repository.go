package repository

import (
	"context"
	"time"

	"gearcheck-backend/internal/domain"

	"github.com/google/uuid"
)

type TemplateRepository interface {
	// Create inserts a new template at version 1.
	Create(ctx context.Context, tpl *domain.AssessmentTemplate) error
	// CreateVersion supersedes base and inserts tpl as the next version in
	// one transaction. Templates are never edited in place once referenced.
	CreateVersion(ctx context.Context, baseID int32, tpl *domain.AssessmentTemplate) error
	// Update edits a template row in place. Only legal while no assessment
	// references the template.
	Update(ctx context.Context, tpl *domain.AssessmentTemplate) error
	GetByID(ctx context.Context, id int32) (*domain.AssessmentTemplate, error)
	ListByCategory(ctx context.Context, category string) ([]domain.AssessmentTemplate, error)
	// HasAssessments reports whether any assessment record references the
	// template, which freezes it against in-place edits.
	HasAssessments(ctx context.Context, id int32) (bool, error)
}

type LoanRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	// ListOverdue returns the still-outstanding overdue feed as of the given
	// instant, days-overdue already computed.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error)
	// MarkOverdue flips active loans past their due date to OVERDUE and
	// returns how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type ReturnRepository interface {
	// CreateReturn atomically inserts the return event, closes the loan, and
	// appends the log entry. A second return for the same reservation is a
	// ConflictError.
	CreateReturn(ctx context.Context, ret *domain.ReturnEvent, entry *domain.EventLogEntry) error
	GetByID(ctx context.Context, id int32) (*domain.ReturnEvent, error)
}

type AssessmentRepository interface {
	// CreateRecord atomically inserts the assessment record, marks the
	// parent return assessed, and appends the log entry. A second record for
	// the same return is a ConflictError.
	CreateRecord(ctx context.Context, rec *domain.AssessmentRecord, entry *domain.EventLogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentRecord, error)
	GetByReturnID(ctx context.Context, returnID int32) (*domain.AssessmentRecord, error)
	List(ctx context.Context, filter domain.AssessmentFilter, page domain.Page) ([]domain.AssessmentRecord, int32, error)
}

type DamageRepository interface {
	Create(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error
	GetByID(ctx context.Context, id int32) (*domain.DamageReport, error)
	UpdateStatus(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error
	ListByReturn(ctx context.Context, returnID int32) ([]domain.DamageReport, error)
}

type ReputationRepository interface {
	// ApplyPenalty performs the read-modify-write of the borrower's trust
	// score and the ledger append as one transaction, locking the user row
	// so concurrent applications serialize. Entry.PreviousScore and NewScore
	// are filled in by the repository, and the log payload is built from the
	// finished entry so the recorded scores are the ones actually applied.
	// A duplicate source reference is a ConflictError.
	ApplyPenalty(ctx context.Context, e *domain.ReputationEntry, entry *domain.EventLogEntry) error
	GetScore(ctx context.Context, userID int32) (float64, error)
	ListEntries(ctx context.Context, userID int32, page domain.Page) ([]domain.ReputationEntry, int32, error)
}

type EventLogRepository interface {
	Append(ctx context.Context, e *domain.EventLogEntry) error
	List(ctx context.Context, filter domain.EventLogFilter) ([]domain.EventLogEntry, error)
}
