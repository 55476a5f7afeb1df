package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

func testAccount(id int, code, name string, t domain.AccountType) *domain.Account {
	return &domain.Account{AccountID: id, Code: code, Name: name, AccountType: t}
}

func (suite *HandlerTestSuite) actorIsCaller() any {
	return mock.MatchedBy(func(a domain.Actor) bool {
		return a.UserID == suite.userID && a.Username == "alice" && a.IPAddress != ""
	})
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockAccounts.On("CreateAccount", mock.Anything, req, suite.actorIsCaller()).
		Return(testAccount(1, "1000", "Cash", domain.Asset), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.EqualValues(1, body["accountID"])
	suite.Equal("ASSET", body["accountType"])
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"code":`},
		{"missing name", map[string]any{"code": "1000", "accountType": "ASSET"}},
		{"unknown type", map[string]any{"code": "1000", "name": "Cash", "accountType": "INCOME"}},
		{"non alphanumeric code", map[string]any{"code": "10-00", "name": "Cash", "accountType": "ASSET"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockAccounts.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockAccounts.On("CreateAccount", mock.Anything, req, mock.Anything).
		Return(nil, fmt.Errorf("%w: account code 1000", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.decode(w)["error"], "1000")
}

func (suite *HandlerTestSuite) TestGetAccount() {
	suite.Run("invalid id", func() {
		w := suite.do(http.MethodGet, "/api/v1/accounts/abc", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})
	suite.Run("not found", func() {
		suite.mockAccounts.On("GetAccountByID", mock.Anything, 99).
			Return(nil, fmt.Errorf("account 99: %w", apperrors.ErrNotFound)).Once()
		w := suite.do(http.MethodGet, "/api/v1/accounts/99", nil)
		suite.Equal(http.StatusNotFound, w.Code)
	})
	suite.Run("found", func() {
		suite.mockAccounts.On("GetAccountByID", mock.Anything, 1).
			Return(testAccount(1, "1000", "Cash", domain.Asset), nil).Once()
		w := suite.do(http.MethodGet, "/api/v1/accounts/1", nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.Equal("Cash", suite.decode(w)["name"])
	})
}

func (suite *HandlerTestSuite) TestGetAccountByCode() {
	suite.mockAccounts.On("GetAccountByCode", mock.Anything, "cash01").
		Return(testAccount(3, "CASH01", "Petty cash", domain.Asset), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/code/cash01", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("CASH01", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestListAccounts_PassesTypeFilter() {
	suite.mockAccounts.On("ListAccounts", mock.Anything, dto.ListAccountsParams{AccountType: "expense"}).
		Return([]domain.Account{*testAccount(6, "5000", "Rent", domain.Expense)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?type=expense", nil)

	suite.Equal(http.StatusOK, w.Code)
	accounts := suite.decode(w)["accounts"].([]any)
	suite.Len(accounts, 1)
}

func (suite *HandlerTestSuite) TestUpdateAccount_Success() {
	name := "Cash at bank"
	req := dto.UpdateAccountRequest{Name: &name}
	suite.mockAccounts.On("UpdateAccount", mock.Anything, 1, req, suite.actorIsCaller()).
		Return(testAccount(1, "1000", name, domain.Asset), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/1", req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(name, suite.decode(w)["name"])
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	suite.Run("in use", func() {
		suite.mockAccounts.On("DeleteAccount", mock.Anything, 4, mock.Anything).
			Return(fmt.Errorf("%w: account 4000 has journal lines", apperrors.ErrConflict)).Once()
		w := suite.do(http.MethodDelete, "/api/v1/accounts/4", nil)
		suite.Equal(http.StatusConflict, w.Code)
	})
	suite.Run("deleted", func() {
		suite.mockAccounts.On("DeleteAccount", mock.Anything, 5, suite.actorIsCaller()).Return(nil).Once()
		w := suite.do(http.MethodDelete, "/api/v1/accounts/5", nil)
		suite.Equal(http.StatusNoContent, w.Code)
	})
}

func (suite *HandlerTestSuite) TestGetAccountBalance_AsOf() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockAccounts.On("GetAccountByID", mock.Anything, 1).
		Return(testAccount(1, "1000", "Cash", domain.Asset), nil).Once()
	suite.mockAccounts.On("CalculateAccountBalance", mock.Anything, 1, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil && t.Equal(asOf)
	})).Return(decimal.RequireFromString("1250.50"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1/balance?asOf=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("1250.5", body["balance"])
	suite.Equal("2024-03-31", body["asOf"])
	suite.Equal("ASSET", body["accountType"])
}

func (suite *HandlerTestSuite) TestGetAccountBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/1/balance?asOf=31/03/2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccounts.AssertNotCalled(suite.T(), "CalculateAccountBalance")
}
