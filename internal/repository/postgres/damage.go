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

type damageRepository struct {
	db *sql.DB
}

func NewDamageRepository(db *sql.DB) repository.DamageRepository {
	return &damageRepository{db: db}
}

const damageColumns = `id, return_id, item_id, user_id, damage_type, severity, affects_usability,
	estimated_repair_cost, penalty_points, status, reviewed_by, COALESCE(review_note, ''), created_on, updated_on`

func (r *damageRepository) Create(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "damage report create", func(tx *sql.Tx) error {
		now := time.Now().UTC()
		rep.CreatedOn = now
		rep.UpdatedOn = now
		query := `INSERT INTO damage_reports
		          (return_id, item_id, user_id, damage_type, severity, affects_usability,
		           estimated_repair_cost, penalty_points, status, created_on, updated_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
		err := tx.QueryRowContext(ctx, query,
			rep.ReturnID, rep.ItemID, rep.UserID, rep.DamageType, rep.Severity, rep.AffectsUsability,
			rep.EstimatedRepairCost, rep.PenaltyPoints, rep.Status, rep.CreatedOn, rep.UpdatedOn,
		).Scan(&rep.ID)
		if err != nil {
			return fmt.Errorf("insert damage report: %w", err)
		}

		entry.EntityID = fmt.Sprintf("%d", rep.ID)
		return appendEntryTx(ctx, tx, entry)
	})
}

func (r *damageRepository) GetByID(ctx context.Context, id int32) (*domain.DamageReport, error) {
	query := `SELECT ` + damageColumns + ` FROM damage_reports WHERE id = $1`
	rep, err := scanDamage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("damage report", id)
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *damageRepository) UpdateStatus(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "damage status update", func(tx *sql.Tx) error {
		rep.UpdatedOn = time.Now().UTC()
		result, err := tx.ExecContext(ctx,
			`UPDATE damage_reports
			 SET status = $1, reviewed_by = $2, review_note = $3, penalty_points = $4, updated_on = $5
			 WHERE id = $6`,
			rep.Status, rep.ReviewedBy, rep.ReviewNote, rep.PenaltyPoints, rep.UpdatedOn, rep.ID,
		)
		if err != nil {
			return fmt.Errorf("update damage report %d: %w", rep.ID, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return domain.NewNotFoundError("damage report", rep.ID)
		}

		entry.EntityID = fmt.Sprintf("%d", rep.ID)
		return appendEntryTx(ctx, tx, entry)
	})
}

func (r *damageRepository) ListByReturn(ctx context.Context, returnID int32) ([]domain.DamageReport, error) {
	query := `SELECT ` + damageColumns + ` FROM damage_reports WHERE return_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("query damage reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.DamageReport
	for rows.Next() {
		rep, err := scanDamage(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func scanDamage(row rowScanner) (*domain.DamageReport, error) {
	var rep domain.DamageReport
	var cost sql.NullFloat64
	var reviewer sql.NullInt32
	err := row.Scan(
		&rep.ID, &rep.ReturnID, &rep.ItemID, &rep.UserID, &rep.DamageType, &rep.Severity,
		&rep.AffectsUsability, &cost, &rep.PenaltyPoints, &rep.Status, &reviewer,
		&rep.ReviewNote, &rep.CreatedOn, &rep.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if cost.Valid {
		rep.EstimatedRepairCost = &cost.Float64
	}
	if reviewer.Valid {
		rep.ReviewedBy = &reviewer.Int32
	}
	return &rep, nil
}
