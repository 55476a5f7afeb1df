package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

type sums struct {
	debit, credit decimal.Decimal
}

// ComputeTrialBalance nets every account's lines onto its natural side.
// Rows follow the input account order; accounts without lines get a zero row.
// Lines for accounts not in the list are ignored.
func ComputeTrialBalance(accounts []domain.Account, lines []domain.JournalLine) []domain.TrialBalanceRow {
	totals := make(map[int]*sums, len(accounts))
	for _, acc := range accounts {
		totals[acc.AccountID] = &sums{debit: decimal.Zero, credit: decimal.Zero}
	}
	for _, l := range lines {
		s, ok := totals[l.AccountID]
		if !ok {
			continue
		}
		s.debit = s.debit.Add(l.Debit)
		s.credit = s.credit.Add(l.Credit)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, acc := range accounts {
		s := totals[acc.AccountID]
		row := domain.TrialBalanceRow{
			AccountID:     acc.AccountID,
			AccountCode:   acc.Code,
			AccountName:   acc.Name,
			AccountType:   acc.AccountType,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		net := NaturalBalance(acc.AccountType, s.debit, s.credit)
		natural := acc.AccountType.NormalSide()
		if net.IsNegative() {
			net = net.Neg()
			if natural == domain.DebitSide {
				natural = domain.CreditSide
			} else {
				natural = domain.DebitSide
			}
		}
		if natural == domain.DebitSide {
			row.DebitBalance = net
		} else {
			row.CreditBalance = net
		}
		rows = append(rows, row)
	}
	return rows
}

// SumTrialBalance totals both columns of a trial balance.
func SumTrialBalance(rows []domain.TrialBalanceRow) (totalDebits, totalCredits decimal.Decimal) {
	totalDebits, totalCredits = decimal.Zero, decimal.Zero
	for _, r := range rows {
		totalDebits = totalDebits.Add(r.DebitBalance)
		totalCredits = totalCredits.Add(r.CreditBalance)
	}
	return totalDebits, totalCredits
}
