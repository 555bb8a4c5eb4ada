package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/handlers"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ScopeService ---
type MockScopeService struct {
	mock.Mock
}

var _ portssvc.ScopeSvcFacade = (*MockScopeService)(nil)

func (m *MockScopeService) ResolveActor(ctx context.Context, userID string) (domain.Actor, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func (m *MockScopeService) ComputeAccessScope(ctx context.Context, actor domain.Actor) (domain.AccessScope, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.AccessScope), args.Error(1)
}

func (m *MockScopeService) AuthorizeBuilding(ctx context.Context, actor domain.Actor, buildingID string) error {
	args := m.Called(ctx, actor, buildingID)
	return args.Error(0)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, actor domain.Actor, filter portsrepo.TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, actor, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionService) ListPaymentHistory(ctx context.Context, actor domain.Actor, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error) {
	args := m.Called(ctx, actor, tenantID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantPaymentHistory), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, patch domain.TransactionPatch) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, actor, transactionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) (bool, error) {
	args := m.Called(ctx, actor, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionService) RefundTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.RefundTransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, actor, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	mockScope     *MockScopeService
	mockTxService *MockTransactionService
	owner         domain.Actor
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "property-ledger-test",
		IsProduction: true,
	}
	suite.mockScope = new(MockScopeService)
	suite.mockTxService = new(MockTransactionService)
	suite.owner = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Scope:       suite.mockScope,
		Transaction: suite.mockTxService,
	})
}

func (suite *TransactionHandlerTestSuite) do(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		suite.Require().NoError(json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) expectOwner() {
	suite.mockScope.On("ResolveActor", mock.Anything, "owner-1").Return(suite.owner, nil).Once()
}

func (suite *TransactionHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/transactions", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTxService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestUnknownUserIsForbidden() {
	suite.mockScope.On("ResolveActor", mock.Anything, "ghost").
		Return(domain.Actor{}, apperrors.NewForbiddenError("unknown or deleted user")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions", nil, "ghost")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesFilterAndPage() {
	suite.expectOwner()
	rows := []domain.TransactionRecord{{FinancialTransaction: domain.FinancialTransaction{TransactionID: "tx-1"}}}
	suite.mockTxService.On("ListTransactions", mock.Anything, suite.owner,
		portsrepo.TransactionFilter{TenantID: "t-1", Status: domain.TransactionCompleted},
		pagination.Page{Limit: 50, Offset: 100},
	).Return(rows, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?tenantID=t-1&status=Completed&limit=50&offset=100", nil, "owner-1")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(50, resp.Limit)
	suite.mockTxService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidPage() {
	suite.expectOwner()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=-1", nil, "owner-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Created() {
	suite.expectOwner()
	suite.mockTxService.On("CreateTransaction", mock.Anything, suite.owner, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.TenantID == "t-1" && req.Amount.Equal(decimal.NewFromInt(1000))
	})).Return(&domain.TransactionRecord{FinancialTransaction: domain.FinancialTransaction{TransactionID: "tx-1"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"tenantID": "t-1", "apartmentID": "a-1", "type": "Rent Payment", "amount": "1000",
	}, "owner-1")

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockTxService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestServiceErrorsMapToStatus() {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.NewNotFoundError("transaction tx-1"), http.StatusNotFound},
		{apperrors.NewForbiddenError("outside scope"), http.StatusForbidden},
		{apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{apperrors.NewAppError(http.StatusConflict, "duplicate", apperrors.ErrDuplicate), http.StatusConflict},
		{apperrors.ErrTransient, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.expectOwner()
		suite.mockTxService.On("GetTransaction", mock.Anything, suite.owner, "tx-1").Return(nil, tc.err).Once()

		w := suite.do(http.MethodGet, "/api/v1/transactions/tx-1", nil, "owner-1")

		suite.Equal(tc.want, w.Code, "error %v", tc.err)
	}
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_UnknownFieldRejected() {
	suite.expectOwner()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/tx-1", `{"amount": "5"}`, "owner-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxService.AssertNotCalled(suite.T(), "UpdateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_InvalidStatusRejected() {
	suite.expectOwner()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/tx-1", `{"status": "Lost"}`, "owner-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxService.AssertNotCalled(suite.T(), "UpdateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_PassesPatch() {
	suite.expectOwner()
	failed := domain.TransactionFailed
	suite.mockTxService.On("UpdateTransaction", mock.Anything, suite.owner, "tx-1", domain.TransactionPatch{Status: &failed}).
		Return(&domain.TransactionRecord{FinancialTransaction: domain.FinancialTransaction{TransactionID: "tx-1", Status: failed}}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/tx-1", `{"status": "Failed"}`, "owner-1")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction() {
	suite.expectOwner()
	suite.mockTxService.On("DeleteTransaction", mock.Anything, suite.owner, "tx-1").Return(true, nil).Once()
	w := suite.do(http.MethodDelete, "/api/v1/transactions/tx-1", nil, "owner-1")
	suite.Equal(http.StatusNoContent, w.Code)

	suite.expectOwner()
	suite.mockTxService.On("DeleteTransaction", mock.Anything, suite.owner, "tx-2").Return(false, nil).Once()
	w = suite.do(http.MethodDelete, "/api/v1/transactions/tx-2", nil, "owner-1")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListPaymentHistory() {
	suite.expectOwner()
	suite.mockTxService.On("ListPaymentHistory", mock.Anything, suite.owner, "t-1", pagination.DefaultPage()).
		Return([]domain.TenantPaymentHistory{{TransactionID: "tx-1"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/tenants/t-1/payment-history", nil, "owner-1")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListPaymentHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.History, 1)
}
