package domain

import (
	"slices"
	"strings"
	"time"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in reporting order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// Side is the debit or credit side of the ledger.
type Side string

const (
	DebitSide  Side = "DEBIT"
	CreditSide Side = "CREDIT"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	return slices.Contains(AccountTypes, t)
}

// NormalSide returns the side on which the account type accumulates value.
func (t AccountType) NormalSide() Side {
	if t == Asset || t == Expense {
		return DebitSide
	}
	return CreditSide
}

// ParseAccountType accepts the canonical upper-case names as well as "Asset", "asset", etc.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// Account is a chart-of-accounts entry.
type Account struct {
	AccountID   int         `json:"accountID"`
	Code        string      `json:"code" validate:"required,max=20,alphanum"`
	Name        string      `json:"name" validate:"required,max=255"`
	AccountType AccountType `json:"accountType" validate:"required,accounttype"`
	AuditFields
}

// NewAccount builds a validated account. The ID is assigned by the store.
func NewAccount(code, name string, accountType AccountType, createdBy string, at time.Time) (*Account, error) {
	acc := &Account{
		Code:        strings.TrimSpace(code),
		Name:        strings.TrimSpace(name),
		AccountType: accountType,
		AuditFields: NewAuditFields(at, createdBy),
	}
	if err := acc.Validate(); err != nil {
		return nil, err
	}
	return acc, nil
}

// Validate checks the required fields.
func (a *Account) Validate() error {
	return validateStruct("account", a)
}
