package domain

import "time"

// AccountFilter narrows an account listing.
type AccountFilter struct {
	AccountType *AccountType
}

// JournalFilter narrows a journal entry listing. Search matches the entry
// number or description, case-insensitively.
type JournalFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// LineFilter selects posted lines by the date of their owning entry (inclusive).
type LineFilter struct {
	From *time.Time
	To   *time.Time
}

// Matches reports whether an entry dated t falls within the filter.
func (f LineFilter) Matches(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}
