package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearcheck-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func sampleRecord() *domain.AssessmentRecord {
	return &domain.AssessmentRecord{
		ReturnID:            12,
		ItemID:              3,
		TemplateID:          1,
		TemplateVersion:     1,
		OriginalCondition:   domain.ConditionExcellent,
		DeterminedCondition: domain.ConditionGood,
		FinalCondition:      domain.ConditionGood,
		OverallScore:        86.67,
		DetailedScores: []domain.DetailedScore{
			{CriterionID: "body", Value: 5, Weight: 5, WeightedScore: 5},
		},
		CalculatedPenalty: 5,
		FinalPenalty:      5,
		AssessedBy:        2,
		AssessedAt:        time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func logEntry() *domain.EventLogEntry {
	return &domain.EventLogEntry{
		Action:     domain.ActionAssessmentSubmitted,
		EntityType: domain.EntityAssessment,
		UserID:     2,
		Payload:    []byte(`{}`),
	}
}

func TestAssessmentRepository_CreateRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Success writes record, return flag, and log entry atomically", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewAssessmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO assessment_records").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE return_events SET assessed").
			WithArgs(5.0, int32(12)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO event_log").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(55))
		mock.ExpectCommit()

		rec := sampleRecord()
		err = repo.CreateRecord(ctx, rec, logEntry())
		assert.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", rec.ID.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate return is a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewAssessmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO assessment_records").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = repo.CreateRecord(ctx, sampleRecord(), logEntry())
		var conflict *domain.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing return rolls the record back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewAssessmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO assessment_records").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE return_events SET assessed").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.CreateRecord(ctx, sampleRecord(), logEntry())
		var notFound *domain.NotFoundError
		assert.True(t, errors.As(err, &notFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReturnRepository_CreateReturn_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := NewReturnRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO return_events").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	ret := &domain.ReturnEvent{ReservationID: 8, ItemID: 3, UserID: 42,
		ReturnDate: time.Now(), ConditionOnReturn: domain.ConditionGood}
	err = repo.CreateReturn(context.Background(), ret, &domain.EventLogEntry{
		Action:     domain.ActionReturnRecorded,
		EntityType: domain.EntityReturn,
		Payload:    []byte(`{}`),
	})
	var conflict *domain.ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
