package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"
)

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

const templateColumns = `id, name, category, version, criteria, thresholds, created_by, superseded, created_on`

func insertTemplateTx(ctx context.Context, tx *sql.Tx, tpl *domain.AssessmentTemplate) error {
	criteria, err := json.Marshal(tpl.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	thresholds, err := json.Marshal(tpl.Thresholds)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}
	if tpl.CreatedOn.IsZero() {
		tpl.CreatedOn = time.Now().UTC()
	}
	query := `INSERT INTO assessment_templates (name, category, version, criteria, thresholds, created_by, superseded, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, false, $7) RETURNING id`
	return tx.QueryRowContext(ctx, query,
		tpl.Name, tpl.Category, tpl.Version, criteria, thresholds, tpl.CreatedBy, tpl.CreatedOn,
	).Scan(&tpl.ID)
}

func (r *templateRepository) Create(ctx context.Context, tpl *domain.AssessmentTemplate) error {
	tpl.Version = 1
	return execTx(ctx, r.db, "template create", func(tx *sql.Tx) error {
		return insertTemplateTx(ctx, tx, tpl)
	})
}

func (r *templateRepository) CreateVersion(ctx context.Context, baseID int32, tpl *domain.AssessmentTemplate) error {
	return execTx(ctx, r.db, "template version", func(tx *sql.Tx) error {
		var baseVersion int32
		err := tx.QueryRowContext(ctx,
			`SELECT version FROM assessment_templates WHERE id = $1 AND superseded = false FOR UPDATE`,
			baseID,
		).Scan(&baseVersion)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("template", baseID)
		}
		if err != nil {
			return fmt.Errorf("lock base template: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE assessment_templates SET superseded = true WHERE id = $1`, baseID,
		); err != nil {
			return fmt.Errorf("supersede template: %w", err)
		}

		tpl.Version = baseVersion + 1
		return insertTemplateTx(ctx, tx, tpl)
	})
}

func (r *templateRepository) Update(ctx context.Context, tpl *domain.AssessmentTemplate) error {
	criteria, err := json.Marshal(tpl.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	thresholds, err := json.Marshal(tpl.Thresholds)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE assessment_templates SET name = $1, category = $2, criteria = $3, thresholds = $4
		 WHERE id = $5 AND superseded = false`,
		tpl.Name, tpl.Category, criteria, thresholds, tpl.ID,
	)
	if err != nil {
		return fmt.Errorf("update template %d: %w", tpl.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("template", tpl.ID)
	}
	return nil
}

func (r *templateRepository) GetByID(ctx context.Context, id int32) (*domain.AssessmentTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM assessment_templates WHERE id = $1`
	tpl, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("template", id)
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func (r *templateRepository) ListByCategory(ctx context.Context, category string) ([]domain.AssessmentTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM assessment_templates WHERE superseded = false`
	var args []any
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.AssessmentTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

func (r *templateRepository) HasAssessments(ctx context.Context, id int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM assessment_records WHERE template_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check template references: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.AssessmentTemplate, error) {
	var tpl domain.AssessmentTemplate
	var criteria, thresholds []byte
	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Category, &tpl.Version, &criteria, &thresholds,
		&tpl.CreatedBy, &tpl.Superseded, &tpl.CreatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(criteria, &tpl.Criteria); err != nil {
		return nil, fmt.Errorf("unmarshal criteria for template %d: %w", tpl.ID, err)
	}
	if err := json.Unmarshal(thresholds, &tpl.Thresholds); err != nil {
		return nil, fmt.Errorf("unmarshal thresholds for template %d: %w", tpl.ID, err)
	}
	return &tpl, nil
}
