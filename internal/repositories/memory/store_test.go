package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

type StoreTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *Store
	accounts *AccountRepository
	journals *JournalRepository
	cash     domain.Account
	revenue  domain.Account
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewStore()
	s.accounts = NewAccountRepository(s.store)
	s.journals = NewJournalRepository(s.store)

	s.cash = s.saveAccount("1000", "Cash", domain.Asset)
	s.revenue = s.saveAccount("4000", "Sales", domain.Revenue)
}

func (s *StoreTestSuite) saveAccount(code, name string, t domain.AccountType) domain.Account {
	acc, err := domain.NewAccount(code, name, t, "tester", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.accounts.SaveAccount(s.ctx, acc))
	return *acc
}

func (s *StoreTestSuite) saveEntry(date time.Time, description string, amount int64) *domain.JournalEntry {
	lines := []domain.JournalLine{
		{AccountID: s.cash.AccountID, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
		{AccountID: s.revenue.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
	}
	entry, err := domain.NewJournalEntry(date, description, lines, "tester", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.journals.SaveJournalEntry(s.ctx, entry))
	return entry
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) TestSaveAccount_AssignsIDsAndRejectsDuplicateCode() {
	s.Equal(1, s.cash.AccountID)
	s.Equal(2, s.revenue.AccountID)

	dup, err := domain.NewAccount("1000", "Petty cash", domain.Asset, "tester", time.Now())
	s.Require().NoError(err)
	err = s.accounts.SaveAccount(s.ctx, dup)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestListAccounts_SortedByCodeWithTypeFilter() {
	s.saveAccount("2000", "Payables", domain.Liability)
	s.saveAccount("0500", "Bank", domain.Asset)

	all, err := s.accounts.ListAccounts(s.ctx, domain.AccountFilter{})
	s.Require().NoError(err)
	codes := make([]string, len(all))
	for i, a := range all {
		codes[i] = a.Code
	}
	s.Equal([]string{"0500", "1000", "2000", "4000"}, codes)

	assetType := domain.Asset
	assets, err := s.accounts.ListAccounts(s.ctx, domain.AccountFilter{AccountType: &assetType})
	s.Require().NoError(err)
	s.Len(assets, 2)
}

func (s *StoreTestSuite) TestUpdateAccount() {
	acc := s.cash
	acc.Name = "Cash on hand"
	s.Require().NoError(s.accounts.UpdateAccount(s.ctx, acc))

	got, err := s.accounts.FindAccountByID(s.ctx, s.cash.AccountID)
	s.Require().NoError(err)
	s.Equal("Cash on hand", got.Name)

	acc.Code = "4000"
	s.ErrorIs(s.accounts.UpdateAccount(s.ctx, acc), apperrors.ErrDuplicate)

	acc.AccountID = 99
	s.ErrorIs(s.accounts.UpdateAccount(s.ctx, acc), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestDeleteAccount_ConflictWhileReferenced() {
	entry := s.saveEntry(day(1), "Cash sale", 100)

	err := s.accounts.DeleteAccount(s.ctx, s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrConflict)

	s.Require().NoError(s.journals.DeleteJournalEntry(s.ctx, entry.EntryID))
	s.NoError(s.accounts.DeleteAccount(s.ctx, s.cash.AccountID))

	_, err = s.accounts.FindAccountByID(s.ctx, s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveJournalEntry_SequentialNumbers() {
	first := s.saveEntry(day(1), "First", 10)
	second := s.saveEntry(day(2), "Second", 20)

	s.Equal("JE001", first.Number)
	s.Equal("JE002", second.Number)
	for _, l := range second.Lines {
		s.Equal(second.EntryID, l.EntryID)
		s.NotZero(l.LineID)
	}
}

func (s *StoreTestSuite) TestSaveJournalEntry_UnknownAccount() {
	lines := []domain.JournalLine{
		{AccountID: s.cash.AccountID, Debit: decimal.NewFromInt(5)},
		{AccountID: 42, Credit: decimal.NewFromInt(5)},
	}
	entry, err := domain.NewJournalEntry(day(1), "Bad", lines, "tester", time.Now())
	s.Require().NoError(err)

	err = s.journals.SaveJournalEntry(s.ctx, entry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, apperrors.ErrNotFound)

	count, err := s.journals.CountLinesByAccount(s.ctx, s.cash.AccountID)
	s.Require().NoError(err)
	s.Zero(count, "nothing is written when any line is rejected")
}

func (s *StoreTestSuite) TestFindJournalEntry_ReturnsCopies() {
	entry := s.saveEntry(day(1), "Original", 10)

	got, err := s.journals.FindJournalEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	got.Description = "mutated"
	got.Lines[0].Debit = decimal.NewFromInt(999)

	again, err := s.journals.FindJournalEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal("Original", again.Description)
	s.True(decimal.NewFromInt(10).Equal(again.Lines[0].Debit))

	entry.Lines[0].AccountID = 77 // the caller's copy is not the stored one
	again, err = s.journals.FindJournalEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(s.cash.AccountID, again.Lines[0].AccountID)
}

func (s *StoreTestSuite) TestReplaceJournalEntry_ReplacesLines() {
	entry := s.saveEntry(day(1), "Original", 10)
	oldLineIDs := []int{entry.Lines[0].LineID, entry.Lines[1].LineID}

	entry.Description = "Corrected"
	entry.Lines = []domain.JournalLine{
		{AccountID: s.cash.AccountID, Debit: decimal.NewFromInt(12)},
		{AccountID: s.revenue.AccountID, Credit: decimal.NewFromInt(12)},
	}
	s.Require().NoError(s.journals.ReplaceJournalEntry(s.ctx, entry))

	got, err := s.journals.FindJournalEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal("Corrected", got.Description)
	s.Equal("JE001", got.Number)
	s.Len(got.Lines, 2)
	s.NotContains(oldLineIDs, got.Lines[0].LineID)
	s.True(decimal.NewFromInt(12).Equal(got.Lines[0].Debit))

	missing := *entry
	missing.EntryID = 99
	s.ErrorIs(s.journals.ReplaceJournalEntry(s.ctx, &missing), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestDeleteJournalEntry_RemovesLines() {
	keep := s.saveEntry(day(1), "Keep", 10)
	drop := s.saveEntry(day(2), "Drop", 20)

	s.Require().NoError(s.journals.DeleteJournalEntry(s.ctx, drop.EntryID))
	s.ErrorIs(s.journals.DeleteJournalEntry(s.ctx, drop.EntryID), apperrors.ErrNotFound)

	lines, err := s.journals.ListLines(s.ctx, domain.LineFilter{})
	s.Require().NoError(err)
	s.Len(lines, 2)
	for _, l := range lines {
		s.Equal(keep.EntryID, l.EntryID)
	}

	next := s.saveEntry(day(3), "Next", 5)
	s.Equal("JE002", next.Number)
}

func (s *StoreTestSuite) TestListJournalEntries_FiltersAndPaging() {
	s.saveEntry(day(1), "Opening balance", 100)
	s.saveEntry(day(5), "Cash sale", 20)
	s.saveEntry(day(9), "Another sale", 30)

	all, err := s.journals.ListJournalEntries(s.ctx, domain.JournalFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("JE003", all[0].Number, "newest entry date first")

	sales, err := s.journals.ListJournalEntries(s.ctx, domain.JournalFilter{Search: "SALE"})
	s.Require().NoError(err)
	s.Len(sales, 2)

	byNumber, err := s.journals.ListJournalEntries(s.ctx, domain.JournalFilter{Search: "je001"})
	s.Require().NoError(err)
	s.Len(byNumber, 1)

	from, to := day(2), day(9)
	ranged, err := s.journals.ListJournalEntries(s.ctx, domain.JournalFilter{From: &from, To: &to})
	s.Require().NoError(err)
	s.Len(ranged, 2)

	page, err := s.journals.ListJournalEntries(s.ctx, domain.JournalFilter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("JE001", page[0].Number)
}

func (s *StoreTestSuite) TestListLines_AsOf() {
	s.saveEntry(day(1), "Early", 10)
	s.saveEntry(day(10), "Late", 20)

	asOf := day(5)
	lines, err := s.journals.ListLines(s.ctx, domain.LineFilter{To: &asOf})
	s.Require().NoError(err)
	s.Len(lines, 2)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	user, err := domain.NewUser("u-1", "Alice", "Alice Smith", "hash", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.SaveUser(ctx, *user))

	dup, err := domain.NewUser("u-2", "alice", "Other Alice", "hash", time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SaveUser(ctx, *dup), apperrors.ErrDuplicate)

	found, err := repo.FindUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.UserID)

	require.NoError(t, repo.MarkUserDeleted(ctx, "u-1", time.Now(), "u-1"))
	users, err := repo.FindUsers(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.ErrorIs(t, repo.MarkUserDeleted(ctx, "u-1", time.Now(), "u-1"), apperrors.ErrNotFound)
}

func TestActivityRepository_FiltersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(NewStore())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.ActivityLog{
		{Timestamp: base, UserID: "u-1", Username: "alice", Action: "CREATE", EntityType: "Account", EntityName: "1000 Cash", Description: "Created account"},
		{Timestamp: base.Add(time.Hour), UserID: "u-2", Username: "bob", Action: "CREATE", EntityType: "JournalEntry", EntityName: "JE001", Description: "Posted journal entry"},
		{Timestamp: base.Add(2 * time.Hour), UserID: "u-1", Username: "alice", Action: "DELETE", EntityType: "JournalEntry", EntityName: "JE001", Description: "Deleted journal entry", Details: map[string]any{"k": "v"}},
	}
	for i := range records {
		require.NoError(t, repo.SaveActivity(ctx, &records[i]))
	}

	all, err := repo.ListActivities(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "DELETE", all[0].Action)

	byType, err := repo.ListActivities(ctx, domain.ActivityFilter{EntityType: "journalentry"})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byAction, err := repo.ListActivities(ctx, domain.ActivityFilter{Action: "create", UserID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, byAction, 1)

	from := base.Add(30 * time.Minute)
	ranged, err := repo.ListActivities(ctx, domain.ActivityFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	searched, err := repo.ListActivities(ctx, domain.ActivityFilter{Search: "BOB"})
	require.NoError(t, err)
	assert.Len(t, searched, 1)

	found, err := repo.FindActivityByID(ctx, records[2].ActivityID)
	require.NoError(t, err)
	found.Details["k"] = "changed"
	again, err := repo.FindActivityByID(ctx, records[2].ActivityID)
	require.NoError(t, err)
	assert.Equal(t, "v", again.Details["k"])

	_, err = repo.FindActivityByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestActivityRepository_SearchMatchesEntityTypeAndAction(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(NewStore())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.ActivityLog{
		{Timestamp: base, Username: "alice", Action: "CREATE", EntityType: "Account", Description: "Created 1000"},
		{Timestamp: base.Add(time.Minute), Username: "alice", Action: "LOGIN", EntityType: "User", Description: "Signed in"},
	}
	for i := range records {
		require.NoError(t, repo.SaveActivity(ctx, &records[i]))
	}

	byType, err := repo.ListActivities(ctx, domain.ActivityFilter{Search: "accou"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "CREATE", byType[0].Action)

	byAction, err := repo.ListActivities(ctx, domain.ActivityFilter{Search: "login"})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "User", byAction[0].EntityType)
}

func TestActivityRepository_SummarizeActivities(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(NewStore())

	empty, err := repo.SummarizeActivities(ctx, time.Now(), domain.RecentActivityCount)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalActivities)
	assert.Nil(t, empty.MostActiveUser)
	assert.Empty(t, empty.RecentActivity)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)
	users := []string{"bob", "alice", "bob", "alice", "carol", "alice", "bob"}
	for i, u := range users {
		a := domain.ActivityLog{
			Timestamp:  now.Add(-time.Duration(len(users)-i) * 6 * time.Hour),
			Username:   u,
			Action:     "CREATE",
			EntityType: "JournalEntry",
		}
		if u == "carol" {
			a.Action, a.EntityType = "LOGIN", "User"
		}
		require.NoError(t, repo.SaveActivity(ctx, &a))
	}

	summary, err := repo.SummarizeActivities(ctx, since, domain.RecentActivityCount)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.TotalActivities)
	assert.Equal(t, 4, summary.Last24Hours, "records at -24h, -18h, -12h and -6h")
	assert.Equal(t, map[string]int{"CREATE": 6, "LOGIN": 1}, summary.ActionCounts)
	assert.Equal(t, map[string]int{"JournalEntry": 6, "User": 1}, summary.EntityTypeCounts)
	require.NotNil(t, summary.MostActiveUser)
	assert.Equal(t, domain.UserActivityCount{Username: "alice", Count: 3}, *summary.MostActiveUser, "ties go to the lowest username")
	require.Len(t, summary.RecentActivity, 5)
	assert.Equal(t, "bob", summary.RecentActivity[0].Username)
	assert.True(t, summary.RecentActivity[0].Timestamp.After(summary.RecentActivity[4].Timestamp))
}
