package services

import (
	"context"
	"fmt"

	"stakemax/config"
	"stakemax/domain/entities"
	"stakemax/domain/events"
	"stakemax/domain/interfaces"
)

type accountService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory interfaces.UnitOfWorkFactory) interfaces.AccountService {
	return &accountService{uowFactory: uowFactory}
}

// CreateAccount creates a new account with the configured starting balance
// and records the opening ledger entry
func (s *accountService) CreateAccount(ctx context.Context, name string) (*entities.Account, error) {
	if name == "" {
		return nil, fmt.Errorf("account name is required")
	}

	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.AccountRepository().GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account %q already exists", name)
	}

	account, err := uow.AccountRepository().Create(ctx, name, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	entry := &entities.LedgerEntry{
		AccountID:     account.ID,
		BalanceBefore: 0,
		BalanceAfter:  cfg.StartingBalance,
		ChangeAmount:  cfg.StartingBalance,
		Reason:        entities.EntryReasonInitial,
	}
	if err := uow.LedgerEntryRepository().Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record opening ledger entry: %w", err)
	}

	if err := uow.EventBus().Publish(events.AccountCreatedEvent{
		AccountID:      account.ID,
		Name:           account.Name,
		InitialBalance: account.Balance,
	}); err != nil {
		return nil, fmt.Errorf("failed to queue account created event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	return account, nil
}

// GetBalance returns the current balance for an account
func (s *accountService) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := uow.AccountRepository().GetBalance(ctx, accountID)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit balance read: %w", err)
	}

	return balance, nil
}

// GetLedger returns the account's most recent ledger entries, newest first
func (s *accountService) GetLedger(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrUnknownAccount
	}

	entries, err := uow.LedgerEntryRepository().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger read: %w", err)
	}

	return entries, nil
}
