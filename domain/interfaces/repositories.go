package interfaces

import (
	"context"
	"time"

	"stakemax/domain/entities"
	"stakemax/domain/events"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, accountID int64) (*entities.Account, error)

	// GetByName retrieves an account by its unique name
	GetByName(ctx context.Context, name string) (*entities.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, name string, initialBalance int64) (*entities.Account, error)

	// ApplyDelta applies a signed balance change atomically and returns the
	// new balance. The overdraft check and the write are a single atomic
	// unit: concurrent applications on the same account never observe the
	// same pre-delta balance. Returns entities.ErrInsufficientFunds when the
	// delta would take the balance negative, entities.ErrUnknownAccount when
	// the account does not exist.
	ApplyDelta(ctx context.Context, accountID int64, delta int64) (int64, error)

	// GetBalance returns the current balance as a point-in-time read
	GetBalance(ctx context.Context, accountID int64) (int64, error)
}

// BetRepository defines the interface for bet record data access
type BetRepository interface {
	// Create appends a new bet record
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by its ID
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)

	// GetByAccount returns the most recent bets for an account
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error)

	// GetByAccountSince returns all bets for an account since a specific time
	GetByAccountSince(ctx context.Context, accountID int64, since time.Time) ([]*entities.Bet, error)

	// GetLeaderboard returns accounts ordered by best single win payout
	// descending, ties broken by the earliest achieving bet
	GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// LedgerEntryRepository defines the interface for the balance audit trail
type LedgerEntryRepository interface {
	// Record appends a new ledger entry
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByAccount returns the most recent entries for an account
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error)
}

// StatsRepository defines the interface for the aggregate stats store.
// Each mutation is a single-statement upsert so concurrent bets never lose
// an increment.
type StatsRepository interface {
	// Increment adds delta to the named stat and returns the new value
	Increment(ctx context.Context, key string, delta int64) (int64, error)

	// RaiseToAtLeast raises the named stat to value if it is currently lower
	// and returns the resulting value. The stat never decreases.
	RaiseToAtLeast(ctx context.Context, key string, value int64) (int64, error)

	// Snapshot returns the current value of every persisted stat
	Snapshot(ctx context.Context) (entities.StatsSnapshot, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding
// transaction resolves
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all pending events; called after a successful commit
	Flush(ctx context.Context) error

	// Discard drops all pending events; called on rollback
	Discard()
}
