package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.New(1, -2)

// CalculateSignedAmount applies the correct sign to a line based on the account type.
// A posting on the account's natural side is positive, the opposite side negative.
//
// DEBIT to ASSET/EXPENSE -> +, CREDIT to ASSET/EXPENSE -> -
// DEBIT to LIABILITY/EQUITY/REVENUE -> -, CREDIT to LIABILITY/EQUITY/REVENUE -> +
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %d", accountType, line.AccountID)
	}
}

// NaturalBalance nets debits and credits on the account type's natural side.
func NaturalBalance(accountType domain.AccountType, sumDebit, sumCredit decimal.Decimal) decimal.Decimal {
	if accountType.NormalSide() == domain.DebitSide {
		return sumDebit.Sub(sumCredit)
	}
	return sumCredit.Sub(sumDebit)
}

// AccountBalance returns the natural-side balance of one account over the given lines.
func AccountBalance(account domain.Account, lines []domain.JournalLine) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range lines {
		if l.AccountID != account.AccountID {
			continue
		}
		signed, err := CalculateSignedAmount(l, account.AccountType)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(signed)
	}
	return sum, nil
}

// WithinTolerance reports whether two totals differ by no more than BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}
