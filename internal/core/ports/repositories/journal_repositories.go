package repositories

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry together with its lines.
	FindJournalEntryByID(ctx context.Context, entryID int) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves entries with their lines, newest entry date first.
	ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data.
// Every method writes the entry and its lines atomically.
type JournalWriter interface {
	// SaveJournalEntry persists a new entry with its lines. It assigns the entry ID,
	// the next sequential entry number and the line IDs.
	SaveJournalEntry(ctx context.Context, entry *domain.JournalEntry) error

	// ReplaceJournalEntry updates the header and replaces the full line set.
	ReplaceJournalEntry(ctx context.Context, entry *domain.JournalEntry) error

	// DeleteJournalEntry removes an entry and all its lines.
	DeleteJournalEntry(ctx context.Context, entryID int) error
}

// LineReader defines read operations over posted journal lines
type LineReader interface {
	// ListLines returns the lines of every entry whose date falls within the filter.
	ListLines(ctx context.Context, filter domain.LineFilter) ([]domain.JournalLine, error)

	// CountLinesByAccount counts the lines posted to an account.
	CountLinesByAccount(ctx context.Context, accountID int) (int, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
