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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
	"github.com/edusuite/school_finance_app/internal/handlers"
	"github.com/edusuite/school_finance_app/internal/platform/config"
)

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) CreateStudentFee(ctx context.Context, organizationID string, req dto.CreateFeeRequest, userID string) (*domain.StudentFee, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}
func (m *MockFeeService) GetFee(ctx context.Context, organizationID, feeID string) (*domain.StudentFee, error) {
	args := m.Called(ctx, organizationID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}
func (m *MockFeeService) ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error) {
	args := m.Called(ctx, organizationID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}
func (m *MockFeeService) CancelFee(ctx context.Context, organizationID, feeID, userID string) error {
	args := m.Called(ctx, organizationID, feeID, userID)
	return args.Error(0)
}

var _ portssvc.FeeSvcFacade = (*MockFeeService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, organizationID, feeID string, req dto.ApplyPaymentRequest, userID string) (*dto.ApplyPaymentResponse, error) {
	args := m.Called(ctx, organizationID, feeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApplyPaymentResponse), args.Error(1)
}
func (m *MockPaymentService) ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error) {
	args := m.Called(ctx, organizationID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type FeeHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockFeeService     *MockFeeService
	mockPaymentService *MockPaymentService
	jwtSecret          string
	organizationID     string
	userID             string
}

func (suite *FeeHandlerTestSuite) generateTestToken() string {
	claims := jwt.MapClaims{
		"iss":    "sfa-test",
		"sub":    suite.userID,
		"org_id": suite.organizationID,
		"exp":    jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat":    jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *FeeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockFeeService = new(MockFeeService)
	suite.mockPaymentService = new(MockPaymentService)

	// IsProduction keeps the swagger routes out of the test router.
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Fee:     suite.mockFeeService,
		Payment: suite.mockPaymentService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *FeeHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FeeHandlerTestSuite) TestGetFee_Success() {
	feeID := uuid.NewString()
	fee := &domain.StudentFee{
		FeeID:            feeID,
		OrganizationID:   suite.organizationID,
		StudentID:        uuid.NewString(),
		ClassID:          uuid.NewString(),
		TotalAmountMinor: 300000,
		InstallmentCount: 3,
		AcademicPeriod:   "Term 1",
		Status:           domain.FeeActive,
	}
	suite.mockFeeService.On("GetFee", mock.Anything, suite.organizationID, feeID).
		Return(fee, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/fees/"+feeID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FeeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(feeID, resp.FeeID)
	suite.Equal(int64(300000), resp.TotalAmountMinor)
	suite.mockFeeService.AssertExpectations(suite.T())
}

func (suite *FeeHandlerTestSuite) TestGetFee_NotFound() {
	feeID := uuid.NewString()
	suite.mockFeeService.On("GetFee", mock.Anything, suite.organizationID, feeID).
		Return(nil, apperrors.NewNotFoundError("fee not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/fees/"+feeID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FeeHandlerTestSuite) TestGetFee_Unauthorized() {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/fees/"+uuid.NewString(), nil)
	suite.Require().NoError(err)
	// No Authorization header.
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockFeeService.AssertNotCalled(suite.T(), "GetFee")
}

func (suite *FeeHandlerTestSuite) TestCreateFee_InvalidPayloadRejected() {
	body := map[string]any{
		"studentID": "not-a-uuid",
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/fees", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFeeService.AssertNotCalled(suite.T(), "CreateStudentFee")
}

func (suite *FeeHandlerTestSuite) TestCancelFee_CompletedFeeConflicts() {
	feeID := uuid.NewString()
	suite.mockFeeService.On("CancelFee", mock.Anything, suite.organizationID, feeID, suite.userID).
		Return(fmt.Errorf("completed fee cannot be cancelled: %w", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fees/"+feeID+"/cancel", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *FeeHandlerTestSuite) TestApplyPayment_Created() {
	feeID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		AccountID:      uuid.NewString(),
		AmountMinor:    50000,
		PaidOn:         time.Now().UTC().Truncate(time.Second),
		Method:         "CASH",
		IdempotencyKey: uuid.NewString(),
	}
	result := &dto.ApplyPaymentResponse{
		Payment:  dto.PaymentResponse{PaymentID: uuid.NewString(), FeeID: feeID, AmountMinor: 50000},
		Replayed: false,
	}
	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.organizationID, feeID,
		mock.MatchedBy(func(r dto.ApplyPaymentRequest) bool {
			return r.IdempotencyKey == req.IdempotencyKey && r.AmountMinor == req.AmountMinor
		}), suite.userID).
		Return(result, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fees/"+feeID+"/payments", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *FeeHandlerTestSuite) TestApplyPayment_ReplayReturnsOK() {
	feeID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		AccountID:      uuid.NewString(),
		AmountMinor:    50000,
		PaidOn:         time.Now().UTC(),
		Method:         "MOBILE",
		IdempotencyKey: uuid.NewString(),
	}
	result := &dto.ApplyPaymentResponse{
		Payment:  dto.PaymentResponse{PaymentID: uuid.NewString(), FeeID: feeID, AmountMinor: 50000},
		Replayed: true,
	}
	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.organizationID, feeID, mock.Anything, suite.userID).
		Return(result, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fees/"+feeID+"/payments", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApplyPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Replayed)
}

func (suite *FeeHandlerTestSuite) TestApplyPayment_OverpaymentConflicts() {
	feeID := uuid.NewString()
	req := dto.ApplyPaymentRequest{
		AccountID:      uuid.NewString(),
		AmountMinor:    999999,
		PaidOn:         time.Now().UTC(),
		Method:         "BANK",
		IdempotencyKey: uuid.NewString(),
	}
	suite.mockPaymentService.On("ApplyPayment", mock.Anything, suite.organizationID, feeID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("payment exceeds outstanding balance: %w", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fees/"+feeID+"/payments", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestFeeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FeeHandlerTestSuite))
}
