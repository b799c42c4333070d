package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.TemplateRepository
	repository.LoanRepository
	repository.ReturnRepository
	repository.AssessmentRepository
	repository.DamageRepository
	repository.ReputationRepository
	repository.EventLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		TemplateRepository:   NewTemplateRepository(db),
		LoanRepository:       NewLoanRepository(db),
		ReturnRepository:     NewReturnRepository(db),
		AssessmentRepository: NewAssessmentRepository(db),
		DamageRepository:     NewDamageRepository(db),
		ReputationRepository: NewReputationRepository(db),
		EventLogRepository:   NewEventLogRepository(db),
	}
}

// execTx runs fn inside one transaction. On any failure every write in the
// unit is rolled back; typed domain errors from fn pass through unchanged,
// and commit failures surface as ConsistencyError since the caller cannot
// know which writes landed.
func execTx(ctx context.Context, db *sql.DB, op string, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return &domain.ConsistencyError{Op: op, Err: fmt.Errorf("%v; rollback also failed: %v", err, rbErr)}
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &domain.ConsistencyError{Op: op, Err: err}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
