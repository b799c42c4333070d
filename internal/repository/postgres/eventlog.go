package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/repository"

	"github.com/google/uuid"
)

type eventLogRepository struct {
	db *sql.DB
}

func NewEventLogRepository(db *sql.DB) repository.EventLogRepository {
	return &eventLogRepository{db: db}
}

// appendEntryTx inserts a log entry within an enclosing transaction. The
// table is append-only: rows are never updated or deleted, so concurrent
// writers need no coordination beyond the INSERT itself.
func appendEntryTx(ctx context.Context, tx *sql.Tx, e *domain.EventLogEntry) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO event_log (entry_id, action, entity_type, entity_id, user_id, payload, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := tx.QueryRowContext(ctx, query,
		e.EntryID, e.Action, e.EntityType, e.EntityID, e.UserID, []byte(e.Payload), e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("append event log entry: %w", err)
	}
	return nil
}

func (r *eventLogRepository) Append(ctx context.Context, e *domain.EventLogEntry) error {
	return execTx(ctx, r.db, "event log append", func(tx *sql.Tx) error {
		return appendEntryTx(ctx, tx, e)
	})
}

func (r *eventLogRepository) List(ctx context.Context, filter domain.EventLogFilter) ([]domain.EventLogEntry, error) {
	query := `SELECT id, entry_id, action, entity_type, entity_id, user_id, payload, created_at
	          FROM event_log WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EntityType != "" {
		query += " AND entity_type = " + arg(filter.EntityType)
	}
	if filter.EntityID != "" {
		query += " AND entity_id = " + arg(filter.EntityID)
	}
	if filter.UserID != 0 {
		query += " AND user_id = " + arg(filter.UserID)
	}
	if !filter.From.IsZero() {
		query += " AND created_at >= " + arg(filter.From)
	}
	if !filter.To.IsZero() {
		query += " AND created_at <= " + arg(filter.To)
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event log: %w", err)
	}
	defer rows.Close()

	var entries []domain.EventLogEntry
	for rows.Next() {
		var e domain.EventLogEntry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.EntryID, &e.Action, &e.EntityType, &e.EntityID, &e.UserID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event log entry: %w", err)
		}
		e.Payload = payload
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event log: %w", err)
	}
	return entries, nil
}
