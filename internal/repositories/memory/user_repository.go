package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
)

// UserRepository keeps users in the store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository over the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func cloneUser(u domain.User) *domain.User {
	if u.DeletedAt != nil {
		deletedAt := *u.DeletedAt
		u.DeletedAt = &deletedAt
	}
	return &u
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.UserID]; ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
		}
	}
	r.store.users[user.UserID] = *cloneUser(user)
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("%w: username %s", apperrors.ErrNotFound, username)
}

func (r *UserRepository) FindUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	active := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		if u.DeletedAt == nil {
			active = append(active, *cloneUser(u))
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Username < active[j].Username })

	if offset >= len(active) {
		return []domain.User{}, nil
	}
	active = active[offset:]
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (r *UserRepository) UpdateUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.UserID]; !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.UserID)
	}
	r.store.users[user.UserID] = *cloneUser(user)
	return nil
}

func (r *UserRepository) MarkUserDeleted(_ context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok || u.DeletedAt != nil {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	u.DeletedAt = &deletedAt
	u.Touch(deletedAt, deletedBy)
	r.store.users[userID] = u
	return nil
}
