package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
)

// JournalRepository stores journal entries together with their lines.
type JournalRepository struct {
	store *Store
}

// NewJournalRepository creates a journal repository over the store.
func NewJournalRepository(store *Store) *JournalRepository {
	return &JournalRepository{store: store}
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

// countLines counts lines posted to an account. Callers hold the lock.
func (s *Store) countLines(accountID int) int {
	n := 0
	for _, e := range s.entries {
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				n++
			}
		}
	}
	return n
}

// nextEntryNumber returns one past the highest existing entry number. Callers hold the lock.
func (s *Store) nextEntryNumber() string {
	highest := 0
	for _, e := range s.entries {
		if seq, err := domain.ParseEntryNumber(e.Number); err == nil && seq > highest {
			highest = seq
		}
	}
	return domain.FormatEntryNumber(highest + 1)
}

// checkAccounts mirrors the foreign key from lines to accounts. Callers hold the lock.
func (s *Store) checkAccounts(lines []domain.JournalLine) error {
	for _, l := range lines {
		if _, ok := s.accounts[l.AccountID]; !ok {
			return fmt.Errorf("%w: account %d: %w", apperrors.ErrValidation, l.AccountID, apperrors.ErrNotFound)
		}
	}
	return nil
}

// stampLines assigns line IDs and the back-reference. Callers hold the lock.
func (s *Store) stampLines(entryID int, lines []domain.JournalLine) []domain.JournalLine {
	out := domain.CloneLines(lines)
	for i := range out {
		s.nextLineID++
		out[i].LineID = s.nextLineID
		out[i].EntryID = entryID
	}
	return out
}

func (r *JournalRepository) SaveJournalEntry(_ context.Context, entry *domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkAccounts(entry.Lines); err != nil {
		return err
	}

	r.store.nextEntryID++
	entry.EntryID = r.store.nextEntryID
	entry.Number = r.store.nextEntryNumber()
	entry.Lines = r.store.stampLines(entry.EntryID, entry.Lines)

	r.store.entries[entry.EntryID] = entry.Clone()
	return nil
}

func (r *JournalRepository) FindJournalEntryByID(_ context.Context, entryID int) (*domain.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
	}
	found := e.Clone()
	return &found, nil
}

func (r *JournalRepository) ListJournalEntries(_ context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lineFilter := domain.LineFilter{From: filter.From, To: filter.To}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := make([]domain.JournalEntry, 0)
	for _, e := range r.store.entries {
		if !lineFilter.Matches(e.EntryDate) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Number), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].EntryDate.Equal(matched[j].EntryDate) {
			return matched[i].EntryDate.After(matched[j].EntryDate)
		}
		return matched[i].EntryID > matched[j].EntryID
	})

	if filter.Offset >= len(matched) {
		return []domain.JournalEntry{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	out := make([]domain.JournalEntry, len(matched))
	for i, e := range matched {
		out[i] = e.Clone()
	}
	return out, nil
}

func (r *JournalRepository) ReplaceJournalEntry(_ context.Context, entry *domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.entries[entry.EntryID]
	if !ok {
		return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entry.EntryID)
	}
	if err := r.store.checkAccounts(entry.Lines); err != nil {
		return err
	}

	entry.Number = existing.Number
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy
	entry.Lines = r.store.stampLines(entry.EntryID, entry.Lines)

	r.store.entries[entry.EntryID] = entry.Clone()
	return nil
}

func (r *JournalRepository) DeleteJournalEntry(_ context.Context, entryID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.entries[entryID]; !ok {
		return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
	}
	delete(r.store.entries, entryID)
	return nil
}

func (r *JournalRepository) ListLines(_ context.Context, filter domain.LineFilter) ([]domain.JournalLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]int, 0, len(r.store.entries))
	for id, e := range r.store.entries {
		if filter.Matches(e.EntryDate) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	lines := make([]domain.JournalLine, 0)
	for _, id := range ids {
		lines = append(lines, r.store.entries[id].Lines...)
	}
	return lines, nil
}

func (r *JournalRepository) CountLinesByAccount(_ context.Context, accountID int) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.countLines(accountID), nil
}
