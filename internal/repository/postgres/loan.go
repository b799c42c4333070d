package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT id, item_id, user_id, item_value, condition, due_date, status, created_on
	          FROM loans WHERE id = $1`
	var loan domain.Loan
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID, &loan.ItemID, &loan.UserID, &loan.ItemValue, &loan.Condition,
		&loan.DueDate, &loan.Status, &loan.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("loan", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query loan: %w", err)
	}
	return &loan, nil
}

func (r *loanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error) {
	// Days overdue are computed in SQL with a ceiling so a partial day
	// counts as a full one, matching the penalty formula.
	query := `SELECT id, item_id, user_id, item_value, due_date,
	                 CEIL(EXTRACT(EPOCH FROM ($1::timestamptz - due_date)) / 86400)::int AS days_overdue
	          FROM loans
	          WHERE status IN ('ACTIVE', 'OVERDUE') AND due_date < $1
	          ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("query overdue loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.OverdueLoan
	for rows.Next() {
		var loan domain.OverdueLoan
		if err := rows.Scan(&loan.ReservationID, &loan.ItemID, &loan.UserID,
			&loan.ItemValue, &loan.DueDate, &loan.DaysOverdue); err != nil {
			return nil, fmt.Errorf("scan overdue loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *loanRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE loans SET status = 'OVERDUE' WHERE status = 'ACTIVE' AND due_date < $1`, asOf)
	if err != nil {
		return 0, fmt.Errorf("mark overdue loans: %w", err)
	}
	return result.RowsAffected()
}
