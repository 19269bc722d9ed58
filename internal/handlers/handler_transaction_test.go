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

	"github.com/dianadimla/walo_backend/internal/core/domain"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/core/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/handlers"
	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, userID string, podID string, amount decimal.Decimal, direction domain.Direction, note string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, podID, amount, direction, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "walo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockLedgerService)
}

func (suite *TransactionHandlerTestSuite) postJSON(url string, body any, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestRecordExpense_Success() {
	userID := uuid.NewString()
	podID := uuid.NewString()
	amount := decimal.NewFromInt(30)

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		PodID:         podID,
		PodName:       "Groceries",
		Amount:        amount,
		Direction:     domain.Expense,
		Note:          "weekly shop",
		Timestamp:     time.Now().UTC(),
	}

	suite.mockLedgerService.On("RecordTransaction",
		mock.Anything,
		userID,
		podID,
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(amount) }),
		domain.Expense,
		"weekly shop",
	).Return(expected, nil).Once()

	body := dto.RecordTransactionRequest{PodID: podID, Amount: amount, Note: "weekly shop"}
	w := suite.postJSON("/api/v1/transactions/expense", body, suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal("Groceries", resp.Category)
	suite.True(resp.Expense)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordExpense_InsufficientFunds() {
	userID := uuid.NewString()
	podID := uuid.NewString()

	suite.mockLedgerService.On("RecordTransaction",
		mock.Anything, userID, podID, mock.Anything, domain.Expense, "",
	).Return(nil, fmt.Errorf("%w: pod Groceries has 100, requested 150", services.ErrInsufficientFunds)).Once()

	body := dto.RecordTransactionRequest{PodID: podID, Amount: decimal.NewFromInt(150)}
	w := suite.postJSON("/api/v1/transactions/expense", body, suite.generateTestToken(userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordIncome_DefaultsNote() {
	userID := uuid.NewString()
	podID := uuid.NewString()
	amount := decimal.NewFromInt(50)

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		PodID:         podID,
		PodName:       "Groceries",
		Amount:        amount,
		Direction:     domain.Income,
		Note:          "Income",
		Timestamp:     time.Now().UTC(),
	}

	// An income request without a note must reach the service with "Income".
	suite.mockLedgerService.On("RecordTransaction",
		mock.Anything, userID, podID, mock.Anything, domain.Income, "Income",
	).Return(expected, nil).Once()

	body := dto.RecordTransactionRequest{PodID: podID, Amount: amount}
	w := suite.postJSON("/api/v1/transactions/income", body, suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordExpense_NonPositiveAmountRejectedAtEdge() {
	userID := uuid.NewString()

	body := dto.RecordTransactionRequest{PodID: uuid.NewString(), Amount: decimal.NewFromInt(-5)}
	w := suite.postJSON("/api/v1/transactions/expense", body, suite.generateTestToken(userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "RecordTransaction")
}

func (suite *TransactionHandlerTestSuite) TestRecordExpense_MissingTokenUnauthorized() {
	body := dto.RecordTransactionRequest{PodID: uuid.NewString(), Amount: decimal.NewFromInt(10)}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/expense", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "RecordTransaction")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	podID := uuid.NewString()

	expectedResponse := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				PodID:         podID,
				Category:      "Groceries",
				Amount:        decimal.NewFromInt(30),
				Expense:       true,
				Timestamp:     time.Now().UTC(),
			},
		},
		NextToken: nil,
	}

	suite.mockLedgerService.On("ListTransactions",
		mock.Anything,
		userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.PodID == podID && p.Limit == 10
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/transactions?podID=%s&limit=%d", podID, 10)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(expectedResponse.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
