package service

import (
	"context"
	"time"

	"gearcheck-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTemplateRepo
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tpl *domain.AssessmentTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}
func (m *MockTemplateRepo) CreateVersion(ctx context.Context, baseID int32, tpl *domain.AssessmentTemplate) error {
	args := m.Called(ctx, baseID, tpl)
	return args.Error(0)
}
func (m *MockTemplateRepo) Update(ctx context.Context, tpl *domain.AssessmentTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}
func (m *MockTemplateRepo) GetByID(ctx context.Context, id int32) (*domain.AssessmentTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentTemplate), args.Error(1)
}
func (m *MockTemplateRepo) ListByCategory(ctx context.Context, category string) ([]domain.AssessmentTemplate, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.AssessmentTemplate), args.Error(1)
}
func (m *MockTemplateRepo) HasAssessments(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.OverdueLoan, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.OverdueLoan), args.Error(1)
}
func (m *MockLoanRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockReturnRepo
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) CreateReturn(ctx context.Context, ret *domain.ReturnEvent, entry *domain.EventLogEntry) error {
	args := m.Called(ctx, ret, entry)
	return args.Error(0)
}
func (m *MockReturnRepo) GetByID(ctx context.Context, id int32) (*domain.ReturnEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnEvent), args.Error(1)
}

// MockAssessmentRepo
type MockAssessmentRepo struct {
	mock.Mock
}

func (m *MockAssessmentRepo) CreateRecord(ctx context.Context, rec *domain.AssessmentRecord, entry *domain.EventLogEntry) error {
	args := m.Called(ctx, rec, entry)
	return args.Error(0)
}
func (m *MockAssessmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssessmentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentRecord), args.Error(1)
}
func (m *MockAssessmentRepo) GetByReturnID(ctx context.Context, returnID int32) (*domain.AssessmentRecord, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentRecord), args.Error(1)
}
func (m *MockAssessmentRepo) List(ctx context.Context, filter domain.AssessmentFilter, page domain.Page) ([]domain.AssessmentRecord, int32, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.AssessmentRecord), args.Get(1).(int32), args.Error(2)
}

// MockDamageRepo
type MockDamageRepo struct {
	mock.Mock
}

func (m *MockDamageRepo) Create(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error {
	args := m.Called(ctx, rep, entry)
	return args.Error(0)
}
func (m *MockDamageRepo) GetByID(ctx context.Context, id int32) (*domain.DamageReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DamageReport), args.Error(1)
}
func (m *MockDamageRepo) UpdateStatus(ctx context.Context, rep *domain.DamageReport, entry *domain.EventLogEntry) error {
	args := m.Called(ctx, rep, entry)
	return args.Error(0)
}
func (m *MockDamageRepo) ListByReturn(ctx context.Context, returnID int32) ([]domain.DamageReport, error) {
	args := m.Called(ctx, returnID)
	return args.Get(0).([]domain.DamageReport), args.Error(1)
}

// MockReputationRepo
type MockReputationRepo struct {
	mock.Mock
}

func (m *MockReputationRepo) ApplyPenalty(ctx context.Context, e *domain.ReputationEntry, entry *domain.EventLogEntry) error {
	args := m.Called(ctx, e, entry)
	return args.Error(0)
}
func (m *MockReputationRepo) GetScore(ctx context.Context, userID int32) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockReputationRepo) ListEntries(ctx context.Context, userID int32, page domain.Page) ([]domain.ReputationEntry, int32, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]domain.ReputationEntry), args.Get(1).(int32), args.Error(2)
}

// MockEventLogRepo
type MockEventLogRepo struct {
	mock.Mock
}

func (m *MockEventLogRepo) Append(ctx context.Context, e *domain.EventLogEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEventLogRepo) List(ctx context.Context, filter domain.EventLogFilter) ([]domain.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.EventLogEntry), args.Error(1)
}
