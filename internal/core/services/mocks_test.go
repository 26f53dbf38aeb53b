package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
)

// Shared repository mocks for the service test suites.

// MockObligationRepository is a mock type for the ObligationRepository interface
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ApplyPaymentUpdate(ctx context.Context, obligationID string, newPaid decimal.Decimal, newStatus domain.ObligationStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, obligationID, newPaid, newStatus, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation, expectedVersion int64) error {
	args := m.Called(ctx, obligation, expectedVersion)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByObligation(ctx context.Context, obligationRef string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, obligationRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockClassRepository is a mock type for the ClassRepository interface
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) FindByGradeSection(ctx context.Context, grade, section string) (*domain.ClassSection, error) {
	args := m.Called(ctx, grade, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassSection), args.Error(1)
}

func (m *MockClassRepository) IncrementEnrollment(ctx context.Context, classID string) error {
	args := m.Called(ctx, classID)
	return args.Error(0)
}

// MockFeeScheduleRepository is a mock type for the FeeScheduleRepository interface
type MockFeeScheduleRepository struct {
	mock.Mock
}

func (m *MockFeeScheduleRepository) FindByGrade(ctx context.Context, grade string) (*domain.FeeSchedule, error) {
	args := m.Called(ctx, grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeSchedule), args.Error(1)
}

// MockStudentRepository is a mock type for the StudentRepository interface
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
