package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolops/school_finance_app/internal/apperrors"
	"github.com/schoolops/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolops/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolops/school_finance_app/internal/core/ports/services"
	"github.com/schoolops/school_finance_app/internal/dto"
	"github.com/schoolops/school_finance_app/internal/handlers"
	"github.com/schoolops/school_finance_app/pkg/config"
)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

func (m *MockObligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) ListObligations(ctx context.Context, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

var _ portssvc.ObligationService = (*MockObligationService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, obligationID string, req dto.ApplyPaymentRequest, actorRole domain.Role) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, obligationID, req, actorRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

var _ portssvc.PaymentService = (*MockPaymentService)(nil)

// --- Mock UserService (needed by route registration) ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserService = (*MockUserService)(nil)

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockObligationService *MockObligationService
	mockPaymentService    *MockPaymentService
	jwtSecret             string
}

// generateTestToken creates a signed JWT carrying the user ID and role claims
// the auth middleware requires.
func (suite *ObligationHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := jwt.MapClaims{
		"iss":  "sfa-test",
		"sub":  userID,
		"role": string(role),
		"exp":  jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockObligationService = new(MockObligationService)
	suite.mockPaymentService = new(MockPaymentService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{
		Obligation: suite.mockObligationService,
		Payment:    suite.mockPaymentService,
		User:       new(MockUserService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ObligationHandlerTestSuite) doJSON(method, url string, body any, role domain.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), role))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Success() {
	req := dto.CreateObligationRequest{
		Kind:            domain.KindExpense,
		Category:        "Utilities",
		TotalAmount:     decimal.NewFromInt(1200),
		CounterpartyRef: "City Power Co",
		IssueDate:       time.Now().UTC(),
	}
	created := &domain.Obligation{
		ObligationID: uuid.NewString(),
		Kind:         domain.KindExpense,
		Category:     "Utilities",
		TotalAmount:  decimal.NewFromInt(1200),
		PaidAmount:   decimal.Zero,
		Status:       domain.StatusUnpaid,
		Version:      1,
	}

	suite.mockObligationService.On("CreateObligation", mock.Anything, mock.AnythingOfType("dto.CreateObligationRequest"), mock.AnythingOfType("string")).
		Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/obligations", req, domain.RoleAccountant)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ObligationID, resp.ObligationID)
	suite.Equal(domain.StatusUnpaid, resp.Status)

	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_ForbiddenForStudent() {
	req := dto.CreateObligationRequest{
		Kind:            domain.KindExpense,
		Category:        "Utilities",
		TotalAmount:     decimal.NewFromInt(100),
		CounterpartyRef: "City Power Co",
		IssueDate:       time.Now().UTC(),
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/obligations", req, domain.RoleStudent)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockObligationService.AssertNotCalled(suite.T(), "CreateObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_NotFound() {
	testID := uuid.NewString()

	suite.mockObligationService.On("GetObligationByID", mock.Anything, testID).
		Return(nil, fmt.Errorf("failed to find obligation %s: %w", testID, apperrors.ErrNotFound)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/obligations/"+testID, nil, domain.RoleAccountant)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestApplyPayment_Success() {
	testID := uuid.NewString()
	entryID := uuid.NewString()
	receipt := &domain.PaymentReceipt{
		Obligation: domain.Obligation{
			ObligationID: testID,
			Kind:         domain.KindExpense,
			TotalAmount:  decimal.NewFromInt(100),
			PaidAmount:   decimal.NewFromInt(40),
			Status:       domain.StatusPartialPaid,
			Version:      2,
		},
		EntryID: &entryID,
	}
	req := dto.ApplyPaymentRequest{
		Amount:        decimal.NewFromInt(40),
		PaymentMethod: "Bank Transfer",
		Date:          time.Now().UTC(),
	}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, testID, mock.AnythingOfType("dto.ApplyPaymentRequest"), domain.RoleAccountant).
		Return(receipt, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/obligations/"+testID+"/payments", req, domain.RoleAccountant)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPartialPaid, resp.Obligation.Status)
	suite.Require().NotNil(resp.EntryID)
	suite.Equal(entryID, *resp.EntryID)
	suite.Empty(resp.Warning)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestApplyPayment_ConflictMapsTo409() {
	testID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		Amount:        decimal.NewFromInt(40),
		PaymentMethod: "Cash",
		Date:          time.Now().UTC(),
	}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, testID, mock.AnythingOfType("dto.ApplyPaymentRequest"), domain.RoleAdmin).
		Return(nil, fmt.Errorf("%w: obligation was modified concurrently", apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/obligations/"+testID+"/payments", req, domain.RoleAdmin)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestApplyPayment_ValidationMapsTo400() {
	testID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		Amount:        decimal.NewFromInt(9999),
		PaymentMethod: "Cash",
		Date:          time.Now().UTC(),
	}

	suite.mockPaymentService.On("ApplyPayment", mock.Anything, testID, mock.AnythingOfType("dto.ApplyPaymentRequest"), domain.RoleAdmin).
		Return(nil, fmt.Errorf("%w: amount exceeds remaining balance", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/obligations/"+testID+"/payments", req, domain.RoleAdmin)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestRoutes_RequireAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/obligations", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestObligationHandler(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
