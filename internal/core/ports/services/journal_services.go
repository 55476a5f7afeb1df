package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves an entry with its lines.
	GetJournalEntryByID(ctx context.Context, entryID int) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries using token-based pagination.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data.
// Nothing is persisted unless the lines pass double-entry validation.
type JournalWriterSvc interface {
	// CreateJournalEntry validates and posts a new entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// UpdateJournalEntry edits the header and, when lines are supplied, replaces the full line set.
	UpdateJournalEntry(ctx context.Context, entryID int, req dto.UpdateJournalEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes an entry and its lines.
	DeleteJournalEntry(ctx context.Context, entryID int, actor domain.Actor) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
