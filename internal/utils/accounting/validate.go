package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ErrorKind classifies why a proposed entry was rejected.
type ErrorKind string

const (
	InsufficientLines         ErrorKind = "InsufficientLines"
	NegativeAmount            ErrorKind = "NegativeAmount"
	AmountTooPrecise          ErrorKind = "AmountTooPrecise"
	LineHasBothDebitAndCredit ErrorKind = "LineHasBothDebitAndCredit"
	Unbalanced                ErrorKind = "Unbalanced"
)

// AmountDecimalPlaces is the precision of stored amounts.
const AmountDecimalPlaces = 2

// ValidationError describes a rejected journal entry.
// LineIndex refers to the position among the substantive lines, or -1.
type ValidationError struct {
	Kind         ErrorKind
	LineIndex    int
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InsufficientLines:
		return "journal entry must have at least two lines with an account and an amount"
	case NegativeAmount:
		return fmt.Sprintf("line %d: debit and credit must not be negative", e.LineIndex+1)
	case AmountTooPrecise:
		return fmt.Sprintf("line %d: amounts allow at most %d decimal places", e.LineIndex+1, AmountDecimalPlaces)
	case LineHasBothDebitAndCredit:
		return fmt.Sprintf("line %d: a line cannot have both a debit and a credit", e.LineIndex+1)
	case Unbalanced:
		return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s",
			e.TotalDebits.StringFixed(2), e.TotalCredits.StringFixed(2))
	}
	return string(e.Kind)
}

// Unwrap makes every ValidationError match apperrors.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// ValidatedEntry is the accepted form of a proposed entry.
type ValidatedEntry struct {
	Lines        []domain.JournalLine
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balanced     bool
}

// IsSubstantive reports whether a line names an account and carries an amount.
// Blank rows from an entry form are dropped before any other check.
func IsSubstantive(l domain.JournalLine) bool {
	return l.AccountID != 0 && (!l.Debit.IsZero() || !l.Credit.IsZero())
}

// ValidateEntry applies the double-entry rules to a proposed set of lines.
func ValidateEntry(lines []domain.JournalLine) (ValidatedEntry, error) {
	kept := make([]domain.JournalLine, 0, len(lines))
	for _, l := range lines {
		if IsSubstantive(l) {
			kept = append(kept, l)
		}
	}
	if len(kept) < 2 {
		return ValidatedEntry{}, &ValidationError{Kind: InsufficientLines, LineIndex: -1}
	}

	totalDebits, totalCredits := decimal.Zero, decimal.Zero
	for i, l := range kept {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return ValidatedEntry{}, &ValidationError{Kind: NegativeAmount, LineIndex: i}
		}
		if !hasCurrencyPrecision(l.Debit) || !hasCurrencyPrecision(l.Credit) {
			return ValidatedEntry{}, &ValidationError{Kind: AmountTooPrecise, LineIndex: i}
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return ValidatedEntry{}, &ValidationError{Kind: LineHasBothDebitAndCredit, LineIndex: i}
		}
		totalDebits = totalDebits.Add(l.Debit)
		totalCredits = totalCredits.Add(l.Credit)
	}

	if !WithinTolerance(totalDebits, totalCredits) {
		return ValidatedEntry{}, &ValidationError{
			Kind:         Unbalanced,
			LineIndex:    -1,
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
		}
	}

	return ValidatedEntry{
		Lines:        kept,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     true,
	}, nil
}

// hasCurrencyPrecision accepts trailing zeros, so "10.500" passes.
func hasCurrencyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(AmountDecimalPlaces))
}
