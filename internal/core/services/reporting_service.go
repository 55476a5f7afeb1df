package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

// reportingService implements the ReportingService interface. All figures are
// derived from posted lines through the accounting package.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	lineReader  portsrepo.LineReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, lineReader portsrepo.LineReader, options ...Option) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo: accountRepo,
		lineReader:  lineReader,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// trialBalanceRows loads the chart of accounts (sorted by code) and nets the lines in range.
func (s *reportingService) trialBalanceRows(ctx context.Context, filter domain.LineFilter) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	lines, err := s.lineReader.ListLines(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal lines: %w", err)
	}
	return accounting.ComputeTrialBalance(accounts, lines), nil
}

// naturalAmount returns a row's balance signed relative to its natural side.
func naturalAmount(row domain.TrialBalanceRow) decimal.Decimal {
	return accounting.NaturalBalance(row.AccountType, row.DebitBalance, row.CreditBalance)
}

func toAccountAmount(row domain.TrialBalanceRow) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID: row.AccountID,
		Code:      row.AccountCode,
		Name:      row.AccountName,
		NetAmount: naturalAmount(row),
	}
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, hideZero bool) (*domain.TrialBalanceReport, error) {
	rows, err := s.trialBalanceRows(ctx, domain.LineFilter{To: &asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance",
			slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, err
	}

	totalDebits, totalCredits := accounting.SumTrialBalance(rows)
	report := &domain.TrialBalanceReport{
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     accounting.WithinTolerance(totalDebits, totalCredits),
	}
	for _, row := range rows {
		if hideZero && row.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, row)
	}

	if !report.Balanced {
		s.GetLogger(ctx).Warn("Trial balance does not tie out",
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()))
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: from date %s is after to date %s", apperrors.ErrValidation,
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	rows, err := s.trialBalanceRows(ctx, domain.LineFilter{From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss report")
		return nil, err
	}

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range rows {
		if row.IsZero() {
			continue
		}
		switch row.AccountType {
		case domain.Revenue:
			amount := toAccountAmount(row)
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(amount.NetAmount)
		case domain.Expense:
			amount := toAccountAmount(row)
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.NetAmount)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("to", to.Format(time.DateOnly)),
		slog.String("net_profit", report.NetProfit.String()))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date.
// Cumulative revenue less expenses is reported as retained earnings within equity.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	rows, err := s.trialBalanceRows(ctx, domain.LineFilter{To: &asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet")
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		RetainedEarnings: decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range rows {
		if row.IsZero() {
			continue
		}
		amount := toAccountAmount(row)
		switch row.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(amount.NetAmount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount.NetAmount)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(amount.NetAmount)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(amount.NetAmount)
		case domain.Expense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(amount.NetAmount)
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.RetainedEarnings)

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.String("total_assets", report.TotalAssets.String()))
	return report, nil
}
