package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
)

// AccountRepository is the in-memory chart of accounts.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over the store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// codeTaken reports whether another account already uses code. Callers hold the lock.
func (r *AccountRepository) codeTaken(code string, exceptID int) bool {
	for id, acc := range r.store.accounts {
		if id != exceptID && strings.EqualFold(acc.Code, code) {
			return true
		}
	}
	return false
}

func (r *AccountRepository) SaveAccount(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.codeTaken(account.Code, 0) {
		return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
	}
	r.store.nextAccountID++
	account.AccountID = r.store.nextAccountID
	r.store.accounts[account.AccountID] = *account
	return nil
}

func (r *AccountRepository) FindAccountByID(_ context.Context, accountID int) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (r *AccountRepository) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, acc := range r.store.accounts {
		if strings.EqualFold(acc.Code, code) {
			found := acc
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
}

func (r *AccountRepository) FindAccountsByIDs(_ context.Context, accountIDs []int) (map[int]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[int]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.store.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (r *AccountRepository) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		if filter.AccountType != nil && acc.AccountType != *filter.AccountType {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (r *AccountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.accounts[account.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.AccountID)
	}
	if r.codeTaken(account.Code, account.AccountID) {
		return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
	}
	account.CreatedAt = existing.CreatedAt
	account.CreatedBy = existing.CreatedBy
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) DeleteAccount(_ context.Context, accountID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	if n := r.store.countLines(accountID); n > 0 {
		return fmt.Errorf("%w: account %d has %d posted journal lines", apperrors.ErrConflict, accountID, n)
	}
	delete(r.store.accounts, accountID)
	return nil
}
