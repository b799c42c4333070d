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

type returnRepository struct {
	db *sql.DB
}

func NewReturnRepository(db *sql.DB) repository.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) CreateReturn(ctx context.Context, ret *domain.ReturnEvent, entry *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "return create", func(tx *sql.Tx) error {
		if ret.CreatedOn.IsZero() {
			ret.CreatedOn = time.Now().UTC()
		}
		// reservation_id carries a unique constraint: one return per loan.
		query := `INSERT INTO return_events (reservation_id, item_id, user_id, return_date, condition_on_return,
		                                     is_overdue, days_overdue, penalty_amount, penalty_reason, assessed, created_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10) RETURNING id`
		err := tx.QueryRowContext(ctx, query,
			ret.ReservationID, ret.ItemID, ret.UserID, ret.ReturnDate, ret.ConditionOnReturn,
			ret.IsOverdue, ret.DaysOverdue, ret.PenaltyAmount, ret.PenaltyReason, ret.CreatedOn,
		).Scan(&ret.ID)
		if isUniqueViolation(err) {
			return domain.NewConflictError("reservation %d already has a return event", ret.ReservationID)
		}
		if err != nil {
			return fmt.Errorf("insert return event: %w", err)
		}

		// The loan keeps its checkout-time condition snapshot; the
		// assessment compares against it later.
		if _, err := tx.ExecContext(ctx,
			`UPDATE loans SET status = 'RETURNED' WHERE id = $1`, ret.ReservationID,
		); err != nil {
			return fmt.Errorf("close loan %d: %w", ret.ReservationID, err)
		}

		entry.EntityID = fmt.Sprintf("%d", ret.ID)
		return appendEntryTx(ctx, tx, entry)
	})
}

func (r *returnRepository) GetByID(ctx context.Context, id int32) (*domain.ReturnEvent, error) {
	query := `SELECT id, reservation_id, item_id, user_id, return_date, condition_on_return,
	                 is_overdue, days_overdue, penalty_amount, COALESCE(penalty_reason, ''), assessed, created_on
	          FROM return_events WHERE id = $1`
	var ret domain.ReturnEvent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ret.ID, &ret.ReservationID, &ret.ItemID, &ret.UserID, &ret.ReturnDate, &ret.ConditionOnReturn,
		&ret.IsOverdue, &ret.DaysOverdue, &ret.PenaltyAmount, &ret.PenaltyReason, &ret.Assessed, &ret.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("return", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query return event: %w", err)
	}
	return &ret, nil
}
