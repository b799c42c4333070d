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

type reputationRepository struct {
	db *sql.DB
}

func NewReputationRepository(db *sql.DB) repository.ReputationRepository {
	return &reputationRepository{db: db}
}

// ApplyPenalty is the one read-modify-write hazard in the system: two
// concurrent penalties against the same borrower must not race on a stale
// score. The user row is locked FOR UPDATE for the duration of the
// transaction so applications against the same user serialize, and the
// unique (source_type, source_id) index makes re-applying the same trigger a
// ConflictError instead of a duplicate ledger entry.
func (r *reputationRepository) ApplyPenalty(ctx context.Context, e *domain.ReputationEntry, entry *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "reputation apply", func(tx *sql.Tx) error {
		var current float64
		err := tx.QueryRowContext(ctx,
			`SELECT trust_score FROM users WHERE id = $1 FOR UPDATE`, e.UserID,
		).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("user", e.UserID)
		}
		if err != nil {
			return fmt.Errorf("lock user %d: %w", e.UserID, err)
		}

		e.PreviousScore = current
		e.NewScore = current + e.Change
		if e.NewScore < 0 {
			e.NewScore = 0
		}
		if e.CreatedOn.IsZero() {
			e.CreatedOn = time.Now().UTC()
		}

		// The log payload is built here, not by the caller, because the
		// scores only exist once the row is locked. The log is append-only,
		// so a payload written with stale scores could never be corrected.
		payload, err := domain.EncodePayload(&domain.ReputationPayload{
			SchemaVersion: domain.CurrentPayloadSchema,
			UserID:        e.UserID,
			Change:        e.Change,
			PreviousScore: e.PreviousScore,
			NewScore:      e.NewScore,
			Reason:        e.Reason,
		})
		if err != nil {
			return err
		}
		entry.Payload = payload

		query := `INSERT INTO reputation_entries
		          (user_id, change, reason, previous_score, new_score, source_type, source_id, created_on)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
		err = tx.QueryRowContext(ctx, query,
			e.UserID, e.Change, e.Reason, e.PreviousScore, e.NewScore,
			e.SourceType, e.SourceID, e.CreatedOn,
		).Scan(&e.ID)
		if isUniqueViolation(err) {
			return domain.NewConflictError("%s %d already produced a reputation entry", e.SourceType, e.SourceID)
		}
		if err != nil {
			return fmt.Errorf("insert reputation entry: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET trust_score = $1 WHERE id = $2`, e.NewScore, e.UserID,
		); err != nil {
			return fmt.Errorf("update trust score for user %d: %w", e.UserID, err)
		}

		entry.EntityID = fmt.Sprintf("%d", e.ID)
		return appendEntryTx(ctx, tx, entry)
	})
}

func (r *reputationRepository) GetScore(ctx context.Context, userID int32) (float64, error) {
	var score float64
	err := r.db.QueryRowContext(ctx,
		`SELECT trust_score FROM users WHERE id = $1`, userID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NewNotFoundError("user", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("query trust score: %w", err)
	}
	return score, nil
}

func (r *reputationRepository) ListEntries(ctx context.Context, userID int32, page domain.Page) ([]domain.ReputationEntry, int32, error) {
	var total int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM reputation_entries WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count reputation entries: %w", err)
	}

	query := `SELECT id, user_id, change, reason, previous_score, new_score, source_type, source_id, created_on
	          FROM reputation_entries WHERE user_id = $1
	          ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("query reputation entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ReputationEntry
	for rows.Next() {
		var e domain.ReputationEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Change, &e.Reason, &e.PreviousScore,
			&e.NewScore, &e.SourceType, &e.SourceID, &e.CreatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan reputation entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
