package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID     int       `db:"entry_id"`
	EntryNumber string    `db:"entry_number"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. Exactly one of Debit and
// Credit is nonzero.
type JournalLine struct {
	LineID    int             `db:"line_id"`
	EntryID   int             `db:"entry_id"`
	AccountID int             `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
}
