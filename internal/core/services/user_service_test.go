package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/core/services"
	"github.com/schoolops/school_finance_app/internal/utils"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "accountant1",
		PasswordHash: hash,
		Role:         domain.RoleAccountant,
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "accountant1").Return(user, nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, "accountant1", "s3cret")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
	suite.Equal(domain.RoleAccountant, authenticated.Role)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	suite.Require().NoError(err)

	user := &domain.User{Username: "accountant1", PasswordHash: hash}

	suite.mockRepo.On("FindUserByUsername", ctx, "accountant1").Return(user, nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, "accountant1", "wrong")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUser() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.Authenticate(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	// Unknown user and wrong password are indistinguishable
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticate_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindUserByUsername", ctx, "accountant1").Return(nil, expectedErr).Once()

	authenticated, err := suite.service.Authenticate(ctx, "accountant1", "s3cret")

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, expectedErr)
	suite.NotErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, testID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	user := domain.User{UserID: uuid.NewString(), Username: "teacher1", Role: domain.RoleTeacher}

	suite.mockRepo.On("SaveUser", ctx, user).Return(nil).Once()

	err := suite.service.CreateUser(ctx, user)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
