package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

func (suite *HandlerTestSuite) TestTrialBalance_AsOfAndHideZero() {
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.TrialBalanceReport{
		AsOf: asOf,
		Rows: []domain.TrialBalanceRow{
			{AccountID: 1, AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, DebitBalance: decimal.NewFromInt(500), CreditBalance: decimal.Zero},
			{AccountID: 4, AccountCode: "3000", AccountName: "Capital", AccountType: domain.Equity, DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(500)},
		},
		TotalDebits:  decimal.NewFromInt(500),
		TotalCredits: decimal.NewFromInt(500),
		Balanced:     true,
	}
	suite.mockReports.On("TrialBalance", mock.Anything, asOf, true).Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2024-12-31&hideZero=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("2024-12-31", body["asOf"])
	suite.Equal(true, body["balanced"])
	suite.Len(body["rows"], 2)
	totals := body["totals"].(map[string]any)
	suite.Equal("500", totals["debit"])
	suite.Equal("500", totals["credit"])
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToToday() {
	suite.mockReports.On("TrialBalance", mock.Anything, mock.MatchedBy(func(asOf time.Time) bool {
		return !asOf.IsZero() && asOf.Equal(asOf.Truncate(24*time.Hour)) && time.Since(asOf) < 48*time.Hour
	}), false).Return(&domain.TrialBalanceReport{Balanced: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReports.AssertNotCalled(suite.T(), "TrialBalance")
}

func (suite *HandlerTestSuite) TestProfitAndLoss() {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	suite.Run("success", func() {
		suite.mockReports.On("ProfitAndLoss", mock.Anything, from, to).Return(&domain.PAndLReport{
			From:          from,
			To:            to,
			Revenue:       []domain.AccountAmount{{AccountID: 5, Code: "4000", Name: "Sales", NetAmount: decimal.NewFromInt(300)}},
			Expenses:      []domain.AccountAmount{{AccountID: 6, Code: "5000", Name: "Rent", NetAmount: decimal.NewFromInt(120)}},
			TotalRevenue:  decimal.NewFromInt(300),
			TotalExpenses: decimal.NewFromInt(120),
			NetProfit:     decimal.NewFromInt(180),
		}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-02-01&to=2024-02-29", nil)

		suite.Equal(http.StatusOK, w.Code)
		summary := suite.decode(w)["summary"].(map[string]any)
		suite.Equal("180", summary["netProfit"])
	})

	suite.Run("missing bound", func() {
		w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-02-01", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})

	suite.Run("inverted period", func() {
		suite.mockReports.On("ProfitAndLoss", mock.Anything, to, from).
			Return(nil, fmt.Errorf("%w: from is after to", apperrors.ErrValidation)).Once()

		w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-02-29&to=2024-02-01", nil)

		suite.Equal(http.StatusBadRequest, w.Code)
	})
}

func (suite *HandlerTestSuite) TestBalanceSheet() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockReports.On("BalanceSheet", mock.Anything, asOf).Return(&domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{{AccountID: 1, Code: "1000", Name: "Cash", NetAmount: decimal.NewFromInt(1680)}},
		Liabilities:      []domain.AccountAmount{{AccountID: 3, Code: "2000", Name: "Loan", NetAmount: decimal.NewFromInt(500)}},
		Equity:           []domain.AccountAmount{{AccountID: 4, Code: "3000", Name: "Capital", NetAmount: decimal.NewFromInt(1000)}},
		RetainedEarnings: decimal.NewFromInt(180),
		TotalAssets:      decimal.NewFromInt(1680),
		TotalLiabilities: decimal.NewFromInt(500),
		TotalEquity:      decimal.NewFromInt(1180),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=2024-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)
	summary := suite.decode(w)["summary"].(map[string]any)
	suite.Equal("180", summary["retainedEarnings"])
	suite.Equal("1180", summary["totalEquity"])
	suite.Equal("1680", summary["totalAssets"])
}

func (suite *HandlerTestSuite) TestReports_ServiceFailure() {
	suite.mockReports.On("BalanceSheet", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pool closed")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
}
