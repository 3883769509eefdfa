package interfaces

import (
	"context"

	"stakemax/domain/entities"
)

// RandSource supplies uniform random values in [0,1). Sources are injected
// rather than read from an ambient global so bet resolution is deterministic
// under test and auditable after the fact.
type RandSource interface {
	Float64() float64
}

// OutcomeGenerator resolves a game outcome from a configuration and a stake
type OutcomeGenerator interface {
	// Resolve draws from the random source and returns the outcome. The
	// payout for a win is floor(stake * multiplier); the change amount is
	// payout-stake on a win and -stake on a loss.
	Resolve(game entities.GameConfig, stake int64) (entities.Outcome, error)
}

// BettingService orchestrates a single bet end to end
type BettingService interface {
	// PlaceBet validates the stake and account, resolves the outcome,
	// applies the balance delta exactly once, appends the bet record and
	// ledger entry, and updates the aggregate stats. Not idempotent: each
	// call consumes a fresh random draw.
	PlaceBet(ctx context.Context, accountID int64, game string, stake int64) (*entities.BetResult, error)

	// GetHistory returns the account's most recent bets, newest first
	GetHistory(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error)
}

// AccountService exposes account lifecycle and balance reads
type AccountService interface {
	// CreateAccount creates an account with the configured starting balance
	CreateAccount(ctx context.Context, name string) (*entities.Account, error)

	// GetBalance returns the current balance for an account
	GetBalance(ctx context.Context, accountID int64) (int64, error)

	// GetLedger returns the account's most recent ledger entries, newest first
	GetLedger(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error)
}

// StatsService exposes aggregate stats and the leaderboard
type StatsService interface {
	// GetStats returns the current aggregate stats snapshot
	GetStats(ctx context.Context) (entities.StatsSnapshot, error)

	// GetLeaderboard returns the top accounts by best single win
	GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// UnitOfWork represents a transactional scope over the repositories.
// Repositories obtained from a unit of work share one database transaction;
// events published to its EventBus are flushed only after a successful commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	BetRepository() BetRepository
	LedgerEntryRepository() LedgerEntryRepository
	StatsRepository() StatsRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
