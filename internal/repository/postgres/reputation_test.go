package postgres

import (
	"context"
	"errors"
	"testing"

	"gearcheck-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestReputationRepository_ApplyPenalty(t *testing.T) {
	ctx := context.Background()

	entry := func() *domain.EventLogEntry {
		return &domain.EventLogEntry{
			Action:     domain.ActionPenaltyApplied,
			EntityType: domain.EntityReputation,
			UserID:     42,
		}
	}

	t.Run("Success clamps at zero and fills both scores", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReputationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT trust_score FROM users").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"trust_score"}).AddRow(8.0))
		mock.ExpectQuery("INSERT INTO reputation_entries").
			WithArgs(int32(42), -15.0, "Approved damage report #7", 8.0, 0.0,
				domain.ReputationSourceDamageReport, int32(7), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectExec("UPDATE users SET trust_score").
			WithArgs(0.0, int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO event_log").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectCommit()

		e := &domain.ReputationEntry{
			UserID:     42,
			Change:     -15,
			Reason:     "Approved damage report #7",
			SourceType: domain.ReputationSourceDamageReport,
			SourceID:   7,
		}
		logEntry := entry()
		err = repo.ApplyPenalty(ctx, e, logEntry)
		assert.NoError(t, err)
		assert.Equal(t, 8.0, e.PreviousScore)
		assert.Equal(t, 0.0, e.NewScore, "clamped at zero")
		assert.Equal(t, int32(3), e.ID)

		// The appended payload must carry the scores the transaction actually
		// applied; the log is append-only, so there is no fixing them later.
		decoded, err := logEntry.DecodePayload()
		assert.NoError(t, err)
		payload := decoded.(*domain.ReputationPayload)
		assert.Equal(t, 8.0, payload.PreviousScore)
		assert.Equal(t, 0.0, payload.NewScore)
		assert.Equal(t, -15.0, payload.Change)
		assert.Equal(t, "Approved damage report #7", payload.Reason)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Sequential applications chain previous scores", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReputationRepository(db)

		steps := []struct {
			change   float64
			previous float64
			next     float64
		}{
			{change: -8, previous: 50, next: 42},
			{change: -12, previous: 42, next: 30},
			{change: -35, previous: 30, next: 0},
		}
		for i, step := range steps {
			mock.ExpectBegin()
			mock.ExpectQuery("SELECT trust_score FROM users").
				WithArgs(int32(42)).
				WillReturnRows(sqlmock.NewRows([]string{"trust_score"}).AddRow(step.previous))
			mock.ExpectQuery("INSERT INTO reputation_entries").
				WithArgs(int32(42), step.change, "", step.previous, step.next,
					domain.ReputationSourceDamageReport, int32(i+1), sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
			mock.ExpectExec("UPDATE users SET trust_score").
				WithArgs(step.next, int32(42)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery("INSERT INTO event_log").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100 + i))
			mock.ExpectCommit()
		}

		total := 0.0
		for i, step := range steps {
			e := &domain.ReputationEntry{
				UserID:     42,
				Change:     step.change,
				SourceType: domain.ReputationSourceDamageReport,
				SourceID:   int32(i + 1),
			}
			err = repo.ApplyPenalty(ctx, e, entry())
			assert.NoError(t, err)
			assert.Equal(t, step.previous, e.PreviousScore)
			assert.Equal(t, step.next, e.NewScore)
			assert.Equal(t, int32(i+1), e.ID, "one ledger entry per application")
			total += step.change
		}
		// Final score is the initial score less the sum of changes, floored
		// at zero.
		final := 50.0 + total
		if final < 0 {
			final = 0
		}
		assert.Equal(t, final, steps[len(steps)-1].next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate source is a conflict and rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReputationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT trust_score FROM users").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"trust_score"}).AddRow(50.0))
		mock.ExpectQuery("INSERT INTO reputation_entries").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		e := &domain.ReputationEntry{
			UserID:     42,
			Change:     -5,
			SourceType: domain.ReputationSourceDamageReport,
			SourceID:   7,
		}
		err = repo.ApplyPenalty(ctx, e, entry())
		var conflict *domain.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewReputationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT trust_score FROM users").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"trust_score"}))
		mock.ExpectRollback()

		e := &domain.ReputationEntry{UserID: 99, Change: -5}
		err = repo.ApplyPenalty(ctx, e, entry())
		var notFound *domain.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}
