package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/core/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
	"github.com/SscSPs/erp_ledger/internal/repositories/memory"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

func newServices() *portssvc.ServiceContainer {
	cfg := &config.Config{JWTSecret: "seed-test", JWTExpiryDuration: time.Hour}
	return services.NewServiceContainer(cfg, memory.NewStore().Repositories())
}

func TestLoad(t *testing.T) {
	f, err := Load("testdata/opening.yaml")
	require.NoError(t, err)

	assert.Len(t, f.Accounts, 6)
	assert.Equal(t, "asset", f.Accounts[1].Type)
	require.Len(t, f.Entries, 3)
	assert.Equal(t, "2000", f.Entries[1].Lines[0].Debit, "bare numbers decode as strings")
	assert.Empty(t, f.Entries[0].Lines[0].Credit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestApply_PostsOpeningLedger(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	f, err := Load("testdata/opening.yaml")
	require.NoError(t, err)

	res, err := Apply(ctx, svc, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Accounts: 6, Users: 1, Entries: 3}, res)

	list, err := svc.Journal.ListJournalEntries(ctx, dto.ListJournalEntriesParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Entries, 3)
	assert.Equal(t, "JE003", list.Entries[0].Number)

	cash, err := svc.Account.GetAccountByCode(ctx, "1000")
	require.NoError(t, err)
	balance, err := svc.Account.CalculateAccountBalance(ctx, cash.AccountID, nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6250).Equal(balance), "got %s", balance)

	tb, err := svc.Reporting.TrialBalance(ctx, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	assert.True(t, tb.Balanced)
	assert.True(t, decimal.NewFromInt(7000).Equal(tb.TotalDebits), "got %s", tb.TotalDebits)

	_, err = svc.User.AuthenticateUser(ctx, "admin", "change-me-please")
	assert.NoError(t, err)
}

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	f, err := Load("testdata/opening.yaml")
	require.NoError(t, err)

	_, err = Apply(ctx, svc, f)
	require.NoError(t, err)
	res, err := Apply(ctx, svc, f)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	list, err := svc.Journal.ListJournalEntries(ctx, dto.ListJournalEntriesParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Entries, 3)
}

func TestApply_RejectsUnbalancedEntry(t *testing.T) {
	f, err := Load("testdata/unbalanced.yaml")
	require.NoError(t, err)

	_, err = Apply(context.Background(), newServices(), f)

	var verr *accounting.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, accounting.Unbalanced, verr.Kind)
}

func TestApply_UnknownAccountCode(t *testing.T) {
	f, err := Load("testdata/unknown_code.yaml")
	require.NoError(t, err)

	_, err = Apply(context.Background(), newServices(), f)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "9999")
}

func TestApply_UnknownAccountType(t *testing.T) {
	f := &File{Accounts: []Account{{Code: "1000", Name: "Cash", Type: "MONEY"}}}

	_, err := Apply(context.Background(), newServices(), f)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
