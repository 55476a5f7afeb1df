// Package seed loads a YAML chart of accounts, users and opening entries into
// a fresh ledger. Every record goes through the regular services, so seeded
// journal entries are validated exactly like entries posted over HTTP.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/middleware"
)

// File is the top-level seed document.
type File struct {
	Accounts []Account `yaml:"accounts"`
	Users    []User    `yaml:"users,omitempty"`
	Entries  []Entry   `yaml:"entries,omitempty"`
}

// Account is one chart-of-accounts row.
type Account struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// User is a login to create. Passwords are hashed on registration.
type User struct {
	Username string `yaml:"username"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// Entry is an opening journal entry. Lines refer to accounts by code.
type Entry struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Lines       []Line `yaml:"lines"`
}

// Line is one debit or credit. Amounts are decimal strings; blank means zero.
type Line struct {
	Account string `yaml:"account"`
	Debit   string `yaml:"debit,omitempty"`
	Credit  string `yaml:"credit,omitempty"`
}

// Result counts what Apply created.
type Result struct {
	Accounts int
	Users    int
	Entries  int
}

// Load reads a seed file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &f, nil
}

// Apply creates the seeded records. Accounts and users that already exist are
// skipped; entries are only posted while the journal is still empty, so a
// restart against a persistent store does not duplicate them.
func Apply(ctx context.Context, services *portssvc.ServiceContainer, f *File) (Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var res Result

	for _, a := range f.Accounts {
		created, err := applyAccount(ctx, services.Account, a)
		if err != nil {
			return res, err
		}
		if created {
			res.Accounts++
		}
	}

	for _, u := range f.Users {
		_, err := services.User.RegisterUser(ctx, dto.RegisterRequest{Username: u.Username, Name: u.Name, Password: u.Password})
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Debug("Seed user already exists", slog.String("username", u.Username))
		case err != nil:
			return res, fmt.Errorf("seeding user %q: %w", u.Username, err)
		default:
			res.Users++
		}
	}

	if len(f.Entries) == 0 {
		return res, nil
	}
	existing, err := services.Journal.ListJournalEntries(ctx, dto.ListJournalEntriesParams{Limit: 1})
	if err != nil {
		return res, fmt.Errorf("checking existing journal entries: %w", err)
	}
	if len(existing.Entries) > 0 {
		logger.Info("Journal already has entries, skipping seeded entries")
		return res, nil
	}

	for i, e := range f.Entries {
		req, err := entryRequest(ctx, services.Account, e)
		if err != nil {
			return res, fmt.Errorf("seed entry %d (%s): %w", i+1, e.Description, err)
		}
		entry, err := services.Journal.CreateJournalEntry(ctx, req, domain.SystemActor)
		if err != nil {
			return res, fmt.Errorf("seed entry %d (%s): %w", i+1, e.Description, err)
		}
		logger.Debug("Seeded journal entry", slog.String("number", entry.Number))
		res.Entries++
	}
	return res, nil
}

func applyAccount(ctx context.Context, accounts portssvc.AccountSvcFacade, a Account) (bool, error) {
	if _, err := accounts.GetAccountByCode(ctx, a.Code); err == nil {
		return false, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("looking up account %q: %w", a.Code, err)
	}

	accountType, ok := domain.ParseAccountType(a.Type)
	if !ok {
		return false, fmt.Errorf("%w: account %q has unknown type %q", apperrors.ErrValidation, a.Code, a.Type)
	}
	req := dto.CreateAccountRequest{Code: a.Code, Name: a.Name, AccountType: accountType}
	if _, err := accounts.CreateAccount(ctx, req, domain.SystemActor); err != nil {
		return false, fmt.Errorf("seeding account %q: %w", a.Code, err)
	}
	return true, nil
}

// entryRequest resolves account codes to IDs and parses the amounts.
func entryRequest(ctx context.Context, accounts portssvc.AccountReaderSvc, e Entry) (dto.CreateJournalEntryRequest, error) {
	req := dto.CreateJournalEntryRequest{
		Date:        e.Date,
		Description: e.Description,
		Lines:       make([]dto.JournalLineRequest, 0, len(e.Lines)),
	}
	for _, l := range e.Lines {
		account, err := accounts.GetAccountByCode(ctx, l.Account)
		if err != nil {
			return req, fmt.Errorf("%w: account code %q: %w", apperrors.ErrValidation, l.Account, err)
		}
		debit, err := parseAmount(l.Debit)
		if err != nil {
			return req, err
		}
		credit, err := parseAmount(l.Credit)
		if err != nil {
			return req, err
		}
		req.Lines = append(req.Lines, dto.JournalLineRequest{AccountID: account.AccountID, Debit: debit, Credit: credit})
	}
	return req, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, s)
	}
	return d, nil
}
