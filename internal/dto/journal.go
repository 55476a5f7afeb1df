package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// JournalLineRequest is one proposed debit or credit. Rows without an account
// or an amount are ignored by validation.
type JournalLineRequest struct {
	AccountID int             `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
type CreateJournalEntryRequest struct {
	Date        string               `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required,max=500"`
	Lines       []JournalLineRequest `json:"lines" binding:"required"`
}

// UpdateJournalEntryRequest defines the editable parts of an entry.
// When Lines is present it replaces the full line set.
type UpdateJournalEntryRequest struct {
	Date        *string              `json:"date"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	Lines       []JournalLineRequest `json:"lines"`
}

// ToDomainLines converts request lines into domain lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalLine {
	if lines == nil {
		return nil
	}
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return out
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    int             `json:"lineID"`
	AccountID int             `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      int                   `json:"entryID"`
	Number       string                `json:"number"`
	Date         string                `json:"date"`
	Description  string                `json:"description"`
	Lines        []JournalLineResponse `json:"lines"`
	TotalDebits  decimal.Decimal       `json:"totalDebits"`
	TotalCredits decimal.Decimal       `json:"totalCredits"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
	UpdatedAt    time.Time             `json:"lastUpdatedAt"`
	UpdatedBy    string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		Number:       e.Number,
		Date:         e.EntryDate.Format(DateLayout),
		Description:  e.Description,
		Lines:        make([]JournalLineResponse, len(e.Lines)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		UpdatedAt:    e.LastUpdatedAt,
		UpdatedBy:    e.LastUpdatedBy,
	}
	for i, l := range e.Lines {
		resp.Lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
		resp.TotalDebits = resp.TotalDebits.Add(l.Debit)
		resp.TotalCredits = resp.TotalCredits.Add(l.Credit)
	}
	return resp
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Search    string  `form:"search"`
	From      string  `form:"from"`
	To        string  `form:"to"`
	Limit     int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListJournalEntriesResponse converts a page of entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}
