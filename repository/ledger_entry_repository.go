package repository

import (
	"context"
	"fmt"

	"stakemax/database"
	"stakemax/domain/entities"
	"stakemax/domain/interfaces"
)

type ledgerEntryRepository struct {
	q Queryable
}

// NewLedgerEntryRepository creates a new ledger entry repository on the pool
func NewLedgerEntryRepository(db *database.DB) interfaces.LedgerEntryRepository {
	return &ledgerEntryRepository{q: db.Pool}
}

// newLedgerEntryRepository creates a new ledger entry repository bound to a transaction
func newLedgerEntryRepository(tx Queryable) interfaces.LedgerEntryRepository {
	return &ledgerEntryRepository{q: tx}
}

func (r *ledgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid ledger entry: %w", err)
	}

	query := `
		INSERT INTO ledger_entries (account_id, balance_before, balance_after, change_amount, reason, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		entry.AccountID,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.ChangeAmount,
		entry.Reason,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

func (r *ledgerEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, account_id, balance_before, balance_after, change_amount, reason, metadata, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.ChangeAmount,
			&entry.Reason,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
