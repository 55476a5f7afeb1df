package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/erp_ledger/internal/models"
	"github.com/SscSPs/erp_ledger/internal/utils/mapping"
)

const (
	entryColumns = `e.entry_id, e.entry_number, e.entry_date, e.description, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`
	lineColumns  = `l.line_id, l.entry_id, l.account_id, l.debit, l.credit`
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// nextEntryNumber locks the entries table against concurrent inserts and
// returns one past the highest existing number.
func nextEntryNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	if _, err := tx.Exec(ctx, `LOCK TABLE journal_entries IN SHARE ROW EXCLUSIVE MODE;`); err != nil {
		return "", fmt.Errorf("failed to lock journal entries: %w", err)
	}
	var highest int
	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(entry_number FROM $1) AS INTEGER)), 0) FROM journal_entries;`
	if err := tx.QueryRow(ctx, query, len(domain.EntryNumberPrefix)+1).Scan(&highest); err != nil {
		return "", fmt.Errorf("failed to read highest entry number: %w", err)
	}
	return domain.FormatEntryNumber(highest + 1), nil
}

// insertLines writes the lines of an entry in one batch and stamps their IDs.
func insertLines(ctx context.Context, tx pgx.Tx, entryID int, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `INSERT INTO journal_lines (entry_id, account_id, debit, credit) VALUES ($1, $2, $3, $4) RETURNING line_id;`
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(query, entryID, m.AccountID, m.Debit, m.Credit)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range lines {
		if err := br.QueryRow().Scan(&lines[i].LineID); err != nil {
			_ = br.Close()
			if pgErrorCode(err) == pgForeignKeyViolation {
				return fmt.Errorf("%w: account %d: %w", apperrors.ErrValidation, lines[i].AccountID, apperrors.ErrNotFound)
			}
			return translateError(err, "journal line")
		}
		lines[i].EntryID = entryID
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute journal line batch: %w", err)
	}
	return nil
}

// SaveJournalEntry inserts the entry and all its lines in one transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	lines := domain.CloneLines(entry.Lines)
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		number, err := nextEntryNumber(ctx, tx)
		if err != nil {
			return err
		}

		m := mapping.ToModelJournalEntry(*entry)
		query := `
			INSERT INTO journal_entries (entry_number, entry_date, description, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING entry_id;
		`
		var entryID int
		if err := tx.QueryRow(ctx, query,
			number, m.EntryDate, m.Description,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&entryID); err != nil {
			return translateError(err, "journal entry "+number)
		}

		if err := insertLines(ctx, tx, entryID, lines); err != nil {
			return err
		}
		entry.EntryID = entryID
		entry.Number = number
		return nil
	})
	if err != nil {
		return err
	}
	entry.Lines = lines
	return nil
}

// linesByEntry loads the lines of the given entries keyed by entry ID.
func (r *PgxJournalRepository) linesByEntry(ctx context.Context, entryIDs []int) (map[int][]models.JournalLine, error) {
	byEntry := make(map[int][]models.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return byEntry, nil
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT `+lineColumns+` FROM journal_lines l WHERE l.entry_id = ANY($1) ORDER BY l.entry_id, l.line_id;`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal lines: %w", err)
	}
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	return byEntry, nil
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	ids := make([]int, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.linesByEntry(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nil
}

func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID int) (*domain.JournalEntry, error) {
	entries, err := r.queryEntries(ctx, `SELECT `+entryColumns+` FROM journal_entries e WHERE e.entry_id = $1;`, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
	}
	return &entries[0], nil
}

// ListJournalEntries returns entries newest first, with their lines.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	var where whereClause
	if filter.From != nil {
		where.add("e.entry_date >= ?::date", *filter.From)
	}
	if filter.To != nil {
		where.add("e.entry_date <= ?::date", *filter.To)
	}
	if filter.Search != "" {
		where.add("(e.entry_number ILIKE ? OR e.description ILIKE ?)", likePattern(filter.Search))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries e` + where.String() +
		` ORDER BY e.entry_date DESC, e.entry_id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + where.next(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + where.next(filter.Offset)
	}
	return r.queryEntries(ctx, query+`;`, where.args...)
}

// ReplaceJournalEntry updates the header and swaps in the new line set atomically.
// The entry number and creation stamp are preserved.
func (r *PgxJournalRepository) ReplaceJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	lines := domain.CloneLines(entry.Lines)
	m := mapping.ToModelJournalEntry(*entry)
	var kept models.JournalEntry

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE journal_entries
			SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1
			RETURNING entry_number, created_at, created_by;
		`
		err := tx.QueryRow(ctx, query, m.EntryID, m.EntryDate, m.Description, m.LastUpdatedAt, m.LastUpdatedBy).
			Scan(&kept.EntryNumber, &kept.CreatedAt, &kept.CreatedBy)
		if err != nil {
			return translateError(err, "journal entry "+strconv.Itoa(m.EntryID))
		}

		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
			return fmt.Errorf("failed to clear lines of journal entry %d: %w", m.EntryID, err)
		}
		return insertLines(ctx, tx, m.EntryID, lines)
	})
	if err != nil {
		return err
	}

	entry.Number = kept.EntryNumber
	entry.CreatedAt = kept.CreatedAt
	entry.CreatedBy = kept.CreatedBy
	entry.Lines = lines
	return nil
}

// DeleteJournalEntry removes an entry; its lines go with it via ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, entryID int) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return translateError(err, "journal entry "+strconv.Itoa(entryID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
	}
	return nil
}

// ListLines returns posted lines whose entry date falls in the filter range.
func (r *PgxJournalRepository) ListLines(ctx context.Context, filter domain.LineFilter) ([]domain.JournalLine, error) {
	var where whereClause
	if filter.From != nil {
		where.add("e.entry_date >= ?::date", *filter.From)
	}
	if filter.To != nil {
		where.add("e.entry_date <= ?::date", *filter.To)
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines l JOIN journal_entries e ON e.entry_id = l.entry_id` +
		where.String() + ` ORDER BY l.entry_id, l.line_id;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal lines: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

func (r *PgxJournalRepository) CountLinesByAccount(ctx context.Context, accountID int) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_id = $1;`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count lines for account %d: %w", accountID, err)
	}
	return n, nil
}
