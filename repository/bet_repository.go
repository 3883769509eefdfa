package repository

import (
	"context"
	"fmt"
	"time"

	"stakemax/database"
	"stakemax/domain/entities"
	"stakemax/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type betRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository on the pool
func NewBetRepository(db *database.DB) interfaces.BetRepository {
	return &betRepository{q: db.Pool}
}

// newBetRepository creates a new bet repository bound to a transaction
func newBetRepository(tx Queryable) interfaces.BetRepository {
	return &betRepository{q: tx}
}

func (r *betRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (account_id, game, amount, result, win_amount, change_amount, ledger_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		bet.AccountID,
		bet.Game,
		bet.Amount,
		bet.Result,
		bet.WinAmount,
		bet.ChangeAmount,
		bet.LedgerEntryID,
	).Scan(&bet.ID, &bet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

func (r *betRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	query := `
		SELECT id, account_id, game, amount, result, win_amount, change_amount, ledger_entry_id, created_at
		FROM bets
		WHERE id = $1`

	var bet entities.Bet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bet.ID,
		&bet.AccountID,
		&bet.Game,
		&bet.Amount,
		&bet.Result,
		&bet.WinAmount,
		&bet.ChangeAmount,
		&bet.LedgerEntryID,
		&bet.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}

	return &bet, nil
}

func (r *betRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
	query := `
		SELECT id, account_id, game, amount, result, win_amount, change_amount, ledger_entry_id, created_at
		FROM bets
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	return scanBets(rows)
}

func (r *betRepository) GetByAccountSince(ctx context.Context, accountID int64, since time.Time) ([]*entities.Bet, error) {
	query := `
		SELECT id, account_id, game, amount, result, win_amount, change_amount, ledger_entry_id, created_at
		FROM bets
		WHERE account_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets since %v: %w", since, err)
	}
	defer rows.Close()

	return scanBets(rows)
}

// GetLeaderboard returns the top accounts ordered by best single win payout
// descending. Ties are broken by whichever account achieved its best win
// first.
func (r *betRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	query := `
		SELECT best.account_id, a.name, best.win_amount, best.created_at
		FROM (
			SELECT DISTINCT ON (account_id) account_id, win_amount, created_at
			FROM bets
			WHERE result = 'win' AND win_amount > 0
			ORDER BY account_id, win_amount DESC, created_at ASC
		) best
		JOIN accounts a ON a.id = best.account_id
		ORDER BY best.win_amount DESC, best.created_at ASC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		var entry entities.LeaderboardEntry
		err := rows.Scan(
			&entry.AccountID,
			&entry.Name,
			&entry.BestWin,
			&entry.AchievedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return entries, nil
}

func scanBets(rows pgx.Rows) ([]*entities.Bet, error) {
	var bets []*entities.Bet
	for rows.Next() {
		var bet entities.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.AccountID,
			&bet.Game,
			&bet.Amount,
			&bet.Result,
			&bet.WinAmount,
			&bet.ChangeAmount,
			&bet.LedgerEntryID,
			&bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}
