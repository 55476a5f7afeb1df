// Package ledgerio reads charts of accounts and journal lines from CSV files
// for offline validation and reporting.
package ledgerio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// Column headers, matched case-insensitively.
const (
	colID        = "id"
	colCode      = "code"
	colName      = "name"
	colType      = "type"
	colEntryID   = "entry_id"
	colAccountID = "account_id"
	colDebit     = "debit"
	colCredit    = "credit"
)

// Entry is the group of lines that share an entry_id.
type Entry struct {
	EntryID string
	Lines   []domain.JournalLine
}

// header maps column names to their positions.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	record, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("empty file, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h := make(header, len(record))
	for i, col := range record {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return h, nil
}

func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr
}

// ReadAccounts parses an id,code,name,type file.
func ReadAccounts(r io.Reader) ([]domain.Account, error) {
	cr := newReader(r)
	h, err := readHeader(cr, colID, colCode, colName, colType)
	if err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}

	var accounts []domain.Account
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("accounts row %d: %w", row, err)
		}

		id, err := strconv.Atoi(h.get(record, colID))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("accounts row %d: invalid id %q", row, h.get(record, colID))
		}
		accountType, ok := domain.ParseAccountType(h.get(record, colType))
		if !ok {
			return nil, fmt.Errorf("accounts row %d: unknown account type %q", row, h.get(record, colType))
		}
		accounts = append(accounts, domain.Account{
			AccountID:   id,
			Code:        h.get(record, colCode),
			Name:        h.get(record, colName),
			AccountType: accountType,
		})
	}
	return accounts, nil
}

// ReadLines parses an entry_id,account_id,debit,credit file and groups the
// lines by entry in first-seen order. Blank account ids and amounts read as
// zero, which the ledger validator treats as filler rows.
func ReadLines(r io.Reader) ([]Entry, error) {
	cr := newReader(r)
	h, err := readHeader(cr, colEntryID, colAccountID, colDebit, colCredit)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}

	var entries []Entry
	index := make(map[string]int)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lines row %d: %w", row, err)
		}

		entryID := h.get(record, colEntryID)
		if entryID == "" {
			return nil, fmt.Errorf("lines row %d: missing entry_id", row)
		}
		line, err := parseLine(h, record)
		if err != nil {
			return nil, fmt.Errorf("lines row %d: %w", row, err)
		}

		i, ok := index[entryID]
		if !ok {
			i = len(entries)
			index[entryID] = i
			entries = append(entries, Entry{EntryID: entryID})
		}
		entries[i].Lines = append(entries[i].Lines, line)
	}
	return entries, nil
}

func parseLine(h header, record []string) (domain.JournalLine, error) {
	var line domain.JournalLine
	if raw := h.get(record, colAccountID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return line, fmt.Errorf("invalid account_id %q", raw)
		}
		line.AccountID = id
	}
	var err error
	if line.Debit, err = parseAmount(h.get(record, colDebit)); err != nil {
		return line, err
	}
	if line.Credit, err = parseAmount(h.get(record, colCredit)); err != nil {
		return line, err
	}
	return line, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

// AllLines flattens grouped entries back into one slice.
func AllLines(entries []Entry) []domain.JournalLine {
	var n int
	for _, e := range entries {
		n += len(e.Lines)
	}
	lines := make([]domain.JournalLine, 0, n)
	for _, e := range entries {
		lines = append(lines, e.Lines...)
	}
	return lines
}

// ReadAccountsFile opens path and parses it with ReadAccounts.
func ReadAccountsFile(path string) ([]domain.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts file %s: %w", path, err)
	}
	defer f.Close()
	return ReadAccounts(f)
}

// ReadLinesFile opens path and parses it with ReadLines.
func ReadLinesFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lines file %s: %w", path, err)
	}
	defer f.Close()
	return ReadLines(f)
}
