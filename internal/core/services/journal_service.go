package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
	"github.com/SscSPs/erp_ledger/internal/utils/pagination"
)

const defaultJournalPageSize = 20

// journalService provides journal entry operations. Every write passes through
// accounting.ValidateEntry before anything is persisted.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...Option) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines runs the double-entry rules and then checks that every
// referenced account exists.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) (accounting.ValidatedEntry, error) {
	accepted, err := accounting.ValidateEntry(lines)
	if err != nil {
		s.LogDebug(ctx, "Journal entry rejected", slog.String("reason", err.Error()))
		return accounting.ValidatedEntry{}, err
	}

	ids := domain.DistinctAccountIDs(accepted.Lines)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal entry")
		return accounting.ValidatedEntry{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	var missing []int
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return accounting.ValidatedEntry{}, fmt.Errorf("%w: accounts %v: %w", apperrors.ErrValidation, missing, apperrors.ErrNotFound)
	}
	return accepted, nil
}

// CreateJournalEntry validates and posts a new journal entry.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	accepted, err := s.validateLines(ctx, dto.ToDomainLines(req.Lines))
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewJournalEntry(date, req.Description, accepted.Lines, actor.UserID, s.CurrentTime())
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.Int("entry_id", entry.EntryID),
		slog.String("number", entry.Number),
		slog.String("total", accepted.TotalDebits.StringFixed(2)))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionCreate,
		EntityType:  domain.EntityJournalEntry,
		EntityID:    strconv.Itoa(entry.EntryID),
		EntityName:  entry.Number,
		Description: fmt.Sprintf("Posted journal entry %s: %s", entry.Number, entry.Description),
		Details: map[string]any{
			"totalDebits":  accepted.TotalDebits.StringFixed(2),
			"totalCredits": accepted.TotalCredits.StringFixed(2),
			"lines":        len(entry.Lines),
		},
	})
	return entry, nil
}

// GetJournalEntryByID retrieves a specific entry with its lines.
func (s *journalService) GetJournalEntryByID(ctx context.Context, entryID int) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.Int("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries retrieves a page of entries. The next token is opaque to clients.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		return nil, err
	}

	offset := 0
	if params.NextToken != nil && *params.NextToken != "" {
		offset, err = pagination.DecodeOffsetToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, domain.JournalFilter{
		Search: params.Search,
		From:   from,
		To:     to,
		Limit:  limit + 1, // one extra row tells us whether another page exists
		Offset: offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeOffsetToken(offset + limit)
		nextToken = &token
	}

	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}

// UpdateJournalEntry edits the header and, when lines are supplied, replaces the full line set.
func (s *journalService) UpdateJournalEntry(ctx context.Context, entryID int, req dto.UpdateJournalEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	entry, err := s.GetJournalEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		entry.EntryDate = date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	linesReplaced := req.Lines != nil
	if linesReplaced {
		accepted, err := s.validateLines(ctx, dto.ToDomainLines(req.Lines))
		if err != nil {
			return nil, err
		}
		entry.Lines = accepted.Lines
	}

	entry.Touch(s.CurrentTime(), actor.UserID)
	if err := s.journalRepo.ReplaceJournalEntry(ctx, entry); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update journal entry", slog.Int("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated successfully",
		slog.Int("entry_id", entry.EntryID),
		slog.Bool("lines_replaced", linesReplaced))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionUpdate,
		EntityType:  domain.EntityJournalEntry,
		EntityID:    strconv.Itoa(entry.EntryID),
		EntityName:  entry.Number,
		Description: fmt.Sprintf("Updated journal entry %s", entry.Number),
		Details:     map[string]any{"linesReplaced": linesReplaced},
	})
	return entry, nil
}

// DeleteJournalEntry removes an entry and all its lines.
func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID int, actor domain.Actor) error {
	entry, err := s.GetJournalEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if err := s.journalRepo.DeleteJournalEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete journal entry", slog.Int("entry_id", entryID))
		}
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully", slog.Int("entry_id", entryID))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionDelete,
		EntityType:  domain.EntityJournalEntry,
		EntityID:    strconv.Itoa(entry.EntryID),
		EntityName:  entry.Number,
		Description: fmt.Sprintf("Deleted journal entry %s", entry.Number),
	})
	return nil
}
