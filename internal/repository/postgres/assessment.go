package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"

	"github.com/google/uuid"
)

type assessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) repository.AssessmentRepository {
	return &assessmentRepository{db: db}
}

const assessmentColumns = `id, return_id, item_id, template_id, template_version,
	original_condition, determined_condition, staff_override_condition, final_condition,
	overall_score, detailed_scores, calculated_penalty, staff_penalty_override,
	COALESCE(override_reason, ''), final_penalty, assessed_by, assessed_at`

func (r *assessmentRepository) CreateRecord(ctx context.Context, rec *domain.AssessmentRecord, entry *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "assessment submit", func(tx *sql.Tx) error {
		details, err := json.Marshal(rec.DetailedScores)
		if err != nil {
			return fmt.Errorf("marshal detailed scores: %w", err)
		}
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}

		// return_id carries a unique constraint: one assessment per return.
		query := `INSERT INTO assessment_records
		          (id, return_id, item_id, template_id, template_version,
		           original_condition, determined_condition, staff_override_condition, final_condition,
		           overall_score, detailed_scores, calculated_penalty, staff_penalty_override,
		           override_reason, final_penalty, assessed_by, assessed_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
		_, err = tx.ExecContext(ctx, query,
			rec.ID, rec.ReturnID, rec.ItemID, rec.TemplateID, rec.TemplateVersion,
			rec.OriginalCondition, rec.DeterminedCondition, rec.StaffOverrideCondition, rec.FinalCondition,
			rec.OverallScore, details, rec.CalculatedPenalty, rec.StaffPenaltyOverride,
			rec.OverrideReason, rec.FinalPenalty, rec.AssessedBy, rec.AssessedAt,
		)
		if isUniqueViolation(err) {
			return domain.NewConflictError("return %d already has an assessment record", rec.ReturnID)
		}
		if err != nil {
			return fmt.Errorf("insert assessment record: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE return_events SET assessed = true, penalty_amount = $1 WHERE id = $2`,
			rec.FinalPenalty, rec.ReturnID,
		)
		if err != nil {
			return fmt.Errorf("update return %d: %w", rec.ReturnID, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return domain.NewNotFoundError("return", rec.ReturnID)
		}

		entry.EntityID = rec.ID.String()
		return appendEntryTx(ctx, tx, entry)
	})
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentRecord, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessment_records WHERE id = $1`
	rec, err := scanAssessment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("assessment", id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *assessmentRepository) GetByReturnID(ctx context.Context, returnID int32) (*domain.AssessmentRecord, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessment_records WHERE return_id = $1`
	rec, err := scanAssessment(r.db.QueryRowContext(ctx, query, returnID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("assessment for return", returnID)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns one page of matching records plus the unpaginated total.
// Records are ordered by assessment time so identical filters always return
// identical pages.
func (r *assessmentRepository) List(ctx context.Context, filter domain.AssessmentFilter, page domain.Page) ([]domain.AssessmentRecord, int32, error) {
	where := ` FROM assessment_records a
	           JOIN return_events re ON re.id = a.return_id
	           WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ReturnID != 0 {
		where += " AND a.return_id = " + arg(filter.ReturnID)
	}
	if filter.ItemID != 0 {
		where += " AND a.item_id = " + arg(filter.ItemID)
	}
	if filter.UserID != 0 {
		where += " AND re.user_id = " + arg(filter.UserID)
	}
	if filter.TemplateID != 0 {
		where += " AND a.template_id = " + arg(filter.TemplateID)
	}
	if filter.Condition != "" {
		where += " AND a.final_condition = " + arg(filter.Condition)
	}
	if !filter.From.IsZero() {
		where += " AND a.assessed_at >= " + arg(filter.From)
	}
	if !filter.To.IsZero() {
		where += " AND a.assessed_at <= " + arg(filter.To)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assessments: %w", err)
	}

	query := `SELECT ` + prefixedAssessmentColumns() + where +
		" ORDER BY a.assessed_at ASC, a.id ASC LIMIT " + arg(page.Size) + " OFFSET " + arg(page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var records []domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, total, rows.Err()
}

func prefixedAssessmentColumns() string {
	return `a.id, a.return_id, a.item_id, a.template_id, a.template_version,
	a.original_condition, a.determined_condition, a.staff_override_condition, a.final_condition,
	a.overall_score, a.detailed_scores, a.calculated_penalty, a.staff_penalty_override,
	COALESCE(a.override_reason, ''), a.final_penalty, a.assessed_by, a.assessed_at`
}

func scanAssessment(row rowScanner) (*domain.AssessmentRecord, error) {
	var rec domain.AssessmentRecord
	var details []byte
	var override sql.NullString
	var penaltyOverride sql.NullFloat64
	err := row.Scan(
		&rec.ID, &rec.ReturnID, &rec.ItemID, &rec.TemplateID, &rec.TemplateVersion,
		&rec.OriginalCondition, &rec.DeterminedCondition, &override, &rec.FinalCondition,
		&rec.OverallScore, &details, &rec.CalculatedPenalty, &penaltyOverride,
		&rec.OverrideReason, &rec.FinalPenalty, &rec.AssessedBy, &rec.AssessedAt,
	)
	if err != nil {
		return nil, err
	}
	if override.Valid {
		grade := domain.ConditionGrade(override.String)
		rec.StaffOverrideCondition = &grade
	}
	if penaltyOverride.Valid {
		rec.StaffPenaltyOverride = &penaltyOverride.Float64
	}
	if err := json.Unmarshal(details, &rec.DetailedScores); err != nil {
		return nil, fmt.Errorf("unmarshal detailed scores for assessment %s: %w", rec.ID, err)
	}
	return &rec, nil
}
