package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/core/services"
	"github.com/schoolops/school_finance_app/internal/dto"
)

// --- Test Suite Setup ---

type EnrollmentServiceTestSuite struct {
	suite.Suite
	mockClassRepo       *MockClassRepository
	mockFeeScheduleRepo *MockFeeScheduleRepository
	mockStudentRepo     *MockStudentRepository
	mockUserRepo        *MockUserRepository
	mockObligationRepo  *MockObligationRepository
	mockLedgerRepo      *MockLedgerRepository
	service             portssvc.EnrollmentService
}

func (suite *EnrollmentServiceTestSuite) SetupTest() {
	suite.mockClassRepo = new(MockClassRepository)
	suite.mockFeeScheduleRepo = new(MockFeeScheduleRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewEnrollmentService(
		suite.mockClassRepo,
		suite.mockFeeScheduleRepo,
		suite.mockStudentRepo,
		suite.mockUserRepo,
		suite.mockObligationRepo,
		suite.mockLedgerRepo,
	)
}

func admissionReq() dto.ApproveAdmissionRequest {
	return dto.ApproveAdmissionRequest{
		ApplicantName:  "Asha Verma",
		ApplicantEmail: "asha.verma@example.com",
		Grade:          "5",
		Section:        "A",
	}
}

func (suite *EnrollmentServiceTestSuite) classWithSeats() *domain.ClassSection {
	return &domain.ClassSection{
		ClassID:  uuid.NewString(),
		Grade:    "5",
		Section:  "A",
		Capacity: 30,
		Enrolled: 12,
	}
}

// --- Test Cases ---

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_FullSuccess() {
	ctx := context.Background()
	approverID := uuid.NewString()
	class := suite.classWithSeats()
	schedule := &domain.FeeSchedule{Grade: "5", AdmissionFee: dec("6000"), TuitionFee: dec("3500")}

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleStudent && u.Email == "asha.verma@example.com" && u.PasswordHash != ""
	})).Return(nil).Once()
	suite.mockStudentRepo.On("SaveStudent", ctx, mock.MatchedBy(func(s domain.Student) bool {
		return s.ClassID == class.ClassID && s.Grade == "5" && s.Section == "A"
	})).Return(nil).Once()
	suite.mockClassRepo.On("IncrementEnrollment", ctx, class.ClassID).Return(nil).Once()
	suite.mockFeeScheduleRepo.On("FindByGrade", ctx, "5").Return(schedule, nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Kind == domain.KindFeeCollection && o.Category == "Admission" && o.TotalAmount.Equal(dec("6000")) && o.Status == domain.StatusUnpaid
	})).Return(nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Kind == domain.KindFeeCollection && o.Category == "Tuition" && o.TotalAmount.Equal(dec("3500")) && o.Status == domain.StatusUnpaid
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Type == domain.EntryIncome && e.Status == domain.EntryPending
	})).Return(nil).Twice()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), approverID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.NotEmpty(result.UserID)
	suite.NotEmpty(result.StudentID)
	suite.Equal(class.ClassID, result.ClassID)
	suite.Contains(result.Username, "asha.verma")
	suite.NotEmpty(result.AdmissionFeeID)
	suite.NotEmpty(result.TuitionFeeID)
	suite.Empty(result.Warnings)

	suite.mockClassRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockStudentRepo.AssertExpectations(suite.T())
	suite.mockFeeScheduleRepo.AssertExpectations(suite.T())
	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_NoFeeScheduleUsesDefaultsWithWarning() {
	ctx := context.Background()
	class := suite.classWithSeats()

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockStudentRepo.On("SaveStudent", ctx, mock.AnythingOfType("domain.Student")).Return(nil).Once()
	suite.mockClassRepo.On("IncrementEnrollment", ctx, class.ClassID).Return(nil).Once()
	suite.mockFeeScheduleRepo.On("FindByGrade", ctx, "5").Return(nil, apperrors.ErrNotFound).Once()
	// Defaults: 5000 admission, 3000 tuition
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Category == "Admission" && o.TotalAmount.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Category == "Tuition" && o.TotalAmount.Equal(decimal.NewFromInt(3000))
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Twice()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "no fee schedule")

	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_MissingAssignmentAborts() {
	ctx := context.Background()

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrMissingAssignment)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_FullClassAborts() {
	ctx := context.Background()
	class := suite.classWithSeats()
	class.Enrolled = class.Capacity

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrCapacityExceeded)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_UserCreationFailureAborts() {
	ctx := context.Background()
	class := suite.classWithSeats()

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockStudentRepo.AssertNotCalled(suite.T(), "SaveStudent", mock.Anything, mock.Anything)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_CounterFailureIsWarning() {
	ctx := context.Background()
	class := suite.classWithSeats()
	schedule := &domain.FeeSchedule{Grade: "5", AdmissionFee: dec("6000"), TuitionFee: dec("3500")}

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockStudentRepo.On("SaveStudent", ctx, mock.AnythingOfType("domain.Student")).Return(nil).Once()
	suite.mockClassRepo.On("IncrementEnrollment", ctx, class.ClassID).Return(assert.AnError).Once()
	suite.mockFeeScheduleRepo.On("FindByGrade", ctx, "5").Return(schedule, nil).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Twice()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Twice()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	// The student is enrolled despite the counter failure
	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "enrollment counter")
}

func (suite *EnrollmentServiceTestSuite) TestApproveAdmission_ObligationFailureSkipsItsLedgerEntry() {
	ctx := context.Background()
	class := suite.classWithSeats()
	schedule := &domain.FeeSchedule{Grade: "5", AdmissionFee: dec("6000"), TuitionFee: dec("3500")}

	suite.mockClassRepo.On("FindByGradeSection", ctx, "5", "A").Return(class, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockStudentRepo.On("SaveStudent", ctx, mock.AnythingOfType("domain.Student")).Return(nil).Once()
	suite.mockClassRepo.On("IncrementEnrollment", ctx, class.ClassID).Return(nil).Once()
	suite.mockFeeScheduleRepo.On("FindByGrade", ctx, "5").Return(schedule, nil).Once()
	// Admission obligation fails; tuition succeeds
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Category == "Admission"
	})).Return(assert.AnError).Once()
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Category == "Tuition"
	})).Return(nil).Once()
	// Only the tuition fee gets its pending ledger entry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Category == "Tuition"
	})).Return(nil).Once()

	result, err := suite.service.ApproveAdmission(ctx, admissionReq(), uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(result.AdmissionFeeID)
	suite.NotEmpty(result.TuitionFeeID)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "Admission fee obligation")

	var skipped bool
	for _, step := range result.Steps {
		if step.Status == domain.StepSkipped {
			skipped = true
		}
	}
	suite.True(skipped, "ledger step for the failed obligation should be skipped")

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestEnrollmentService(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceTestSuite))
}
