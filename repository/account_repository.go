package repository

import (
	"context"
	"fmt"

	"stakemax/database"
	"stakemax/domain/entities"
	"stakemax/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type accountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository on the pool
func NewAccountRepository(db *database.DB) interfaces.AccountRepository {
	return &accountRepository{q: db.Pool}
}

// newAccountRepository creates a new account repository bound to a transaction
func newAccountRepository(tx Queryable) interfaces.AccountRepository {
	return &accountRepository{q: tx}
}

func (r *accountRepository) GetByID(ctx context.Context, accountID int64) (*entities.Account, error) {
	query := `
		SELECT id, name, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, accountID).Scan(
		&account.ID,
		&account.Name,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}

	return &account, nil
}

func (r *accountRepository) GetByName(ctx context.Context, name string) (*entities.Account, error) {
	query := `
		SELECT id, name, balance, created_at, updated_at
		FROM accounts
		WHERE name = $1`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, name).Scan(
		&account.ID,
		&account.Name,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", name, err)
	}

	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, name string, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (name, balance)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	account := &entities.Account{
		Name:    name,
		Balance: initialBalance,
	}
	err := r.q.QueryRow(ctx, query, name, initialBalance).Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}

	return account, nil
}

// ApplyDelta applies a signed balance change as a single conditional update.
// The overdraft check happens in the same statement as the write, so
// concurrent deltas on one account serialize on the row lock and lost
// updates are impossible.
func (r *accountRepository) ApplyDelta(ctx context.Context, accountID int64, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING balance`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, accountID, delta).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Either the account is missing or the delta would overdraw it
		exists, existsErr := r.exists(ctx, accountID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, entities.ErrUnknownAccount
		}
		return 0, entities.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply delta %d to account %d: %w", delta, accountID, err)
	}

	return newBalance, nil
}

func (r *accountRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	query := `SELECT balance FROM accounts WHERE id = $1`

	var balance int64
	err := r.q.QueryRow(ctx, query, accountID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, entities.ErrUnknownAccount
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for account %d: %w", accountID, err)
	}

	return balance, nil
}

func (r *accountRepository) exists(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %d existence: %w", accountID, err)
	}
	return exists, nil
}
