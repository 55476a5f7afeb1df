// Package memory is the default storage driver. Records never leave the store
// by reference: every read and write copies.
package memory

import (
	"sync"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
)

// Store holds all ledger state behind a single lock so that entry and line
// writes, and the in-use check on account deletion, are atomic.
type Store struct {
	mu sync.RWMutex

	accounts      map[int]domain.Account
	nextAccountID int

	entries     map[int]domain.JournalEntry
	nextEntryID int
	nextLineID  int

	users map[string]domain.User

	activities     []domain.ActivityLog
	nextActivityID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[int]domain.Account),
		entries:  make(map[int]domain.JournalEntry),
		users:    make(map[string]domain.User),
	}
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  NewAccountRepository(s),
		JournalRepo:  NewJournalRepository(s),
		UserRepo:     NewUserRepository(s),
		ActivityRepo: NewActivityRepository(s),
	}
}
