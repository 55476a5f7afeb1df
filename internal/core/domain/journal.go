package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryNumberPrefix prefixes every journal entry number.
const EntryNumberPrefix = "JE"

// JournalLine is a single debit or credit posting to one account.
type JournalLine struct {
	LineID    int             `json:"lineID"`
	EntryID   int             `json:"entryID"` // back-reference, set by the store
	AccountID int             `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntry is one balanced business transaction. It owns its lines.
type JournalEntry struct {
	EntryID     int           `json:"entryID"`
	Number      string        `json:"number"`
	EntryDate   time.Time     `json:"entryDate" validate:"required"`
	Description string        `json:"description" validate:"required,max=500"`
	Lines       []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// NewJournalEntry builds a validated entry header. Lines are expected to have
// been accepted by the ledger validator already; the store assigns IDs and the number.
func NewJournalEntry(date time.Time, description string, lines []JournalLine, createdBy string, at time.Time) (*JournalEntry, error) {
	entry := &JournalEntry{
		EntryDate:   date,
		Description: strings.TrimSpace(description),
		Lines:       CloneLines(lines),
		AuditFields: NewAuditFields(at, createdBy),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks the header fields.
func (e *JournalEntry) Validate() error {
	return validateStruct("journal entry", e)
}

// Clone returns a deep copy; the line slice is never shared.
func (e JournalEntry) Clone() JournalEntry {
	e.Lines = CloneLines(e.Lines)
	return e
}

// CloneLines copies a line slice. A nil input yields nil.
func CloneLines(lines []JournalLine) []JournalLine {
	if lines == nil {
		return nil
	}
	out := make([]JournalLine, len(lines))
	copy(out, lines)
	return out
}

// DistinctAccountIDs returns the unique account IDs in first-seen order.
func DistinctAccountIDs(lines []JournalLine) []int {
	seen := make(map[int]struct{}, len(lines))
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// FormatEntryNumber renders a sequence as JE001, JE002, ... JE1000.
func FormatEntryNumber(seq int) string {
	return fmt.Sprintf("%s%03d", EntryNumberPrefix, seq)
}

// ParseEntryNumber extracts the sequence from an entry number.
func ParseEntryNumber(number string) (int, error) {
	if !strings.HasPrefix(number, EntryNumberPrefix) {
		return 0, fmt.Errorf("entry number %q lacks prefix %s", number, EntryNumberPrefix)
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(number, EntryNumberPrefix))
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("entry number %q has invalid sequence", number)
	}
	return seq, nil
}
