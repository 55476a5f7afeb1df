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

const accountColumns = `account_id, code, name, account_type, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *PgxAccountRepository) queryAccount(ctx context.Context, subject, query string, args ...any) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", subject, err)
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(err, subject)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

// SaveAccount inserts a new account and assigns its ID.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		INSERT INTO accounts (code, name, account_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Code, m.Name, m.AccountType,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err != nil {
		return translateError(err, "account code "+m.Code)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int) (*domain.Account, error) {
	return r.queryAccount(ctx, "account "+strconv.Itoa(accountID),
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID)
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.queryAccount(ctx, "account code "+code,
		`SELECT `+accountColumns+` FROM accounts WHERE LOWER(code) = LOWER($1);`, code)
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int) (map[int]domain.Account, error) {
	found := make(map[int]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return found, nil
	}
	accounts, err := r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		found[acc.AccountID] = acc
	}
	return found, nil
}

// ListAccounts returns the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var where whereClause
	if filter.AccountType != nil {
		where.add("account_type = ?", string(*filter.AccountType))
	}
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts`+where.String()+` ORDER BY code;`, where.args...)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $2, name = $3, account_type = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Code, m.Name, m.AccountType, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "account code "+m.Code)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// DeleteAccount removes an account. The journal_lines foreign key rejects the
// delete while lines still reference it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return translateError(err, "account "+strconv.Itoa(accountID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}
