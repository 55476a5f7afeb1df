package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineReader  portsrepo.LineReader
}

// NewAccountService creates a new account service. The line reader backs balance
// queries and the in-use check on delete.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, lines portsrepo.LineReader, options ...Option) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		lineReader:  lines,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	accountType, ok := domain.ParseAccountType(string(req.AccountType))
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account, err := domain.NewAccount(req.Code, req.Name, accountType, actor.UserID, s.CurrentTime())
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int("account_id", account.AccountID),
		slog.String("code", account.Code))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionCreate,
		EntityType:  domain.EntityAccount,
		EntityID:    strconv.Itoa(account.AccountID),
		EntityName:  account.Code + " " + account.Name,
		Description: fmt.Sprintf("Created %s account %s", account.AccountType, account.Code),
	})
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.Int("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	var filter domain.AccountFilter
	if params.AccountType != "" {
		accountType, ok := domain.ParseAccountType(params.AccountType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.AccountType)
		}
		filter.AccountType = &accountType
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Code != nil {
		account.Code = *req.Code
		updated = true
	}
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AccountType != nil {
		accountType, ok := domain.ParseAccountType(string(*req.AccountType))
		if !ok {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = accountType
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.Int("account_id", accountID))
		return account, nil
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	account.Touch(s.CurrentTime(), actor.UserID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update account", slog.Int("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.Int("account_id", accountID))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionUpdate,
		EntityType:  domain.EntityAccount,
		EntityID:    strconv.Itoa(account.AccountID),
		EntityName:  account.Code + " " + account.Name,
		Description: fmt.Sprintf("Updated account %s", account.Code),
	})
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int, actor domain.Actor) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	inUse, err := s.lineReader.CountLinesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count lines for account", slog.Int("account_id", accountID))
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: account %s has %d posted journal lines", apperrors.ErrConflict, account.Code, inUse)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete account", slog.Int("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.Int("account_id", accountID))
	s.RecordActivity(ctx, actor, domain.ActivityLog{
		Action:      domain.ActionDelete,
		EntityType:  domain.EntityAccount,
		EntityID:    strconv.Itoa(account.AccountID),
		EntityName:  account.Code + " " + account.Name,
		Description: fmt.Sprintf("Deleted account %s", account.Code),
	})
	return nil
}

func (s *accountService) CalculateAccountBalance(ctx context.Context, accountID int, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	lines, err := s.lineReader.ListLines(ctx, domain.LineFilter{To: asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines for balance calculation", slog.Int("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to calculate balance for account %d: %w", accountID, err)
	}

	balance, err := accounting.AccountBalance(*account, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to net account lines", slog.Int("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to calculate balance for account %d: %w", accountID, err)
	}
	return balance, nil
}
