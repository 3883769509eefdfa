package repository

import (
	"context"
	"fmt"

	"stakemax/database"
	"stakemax/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface over a single pgx transaction
type unitOfWork struct {
	db              *database.DB
	tx              pgx.Tx
	ctx             context.Context
	publisher       interfaces.TransactionalEventPublisher
	accountRepo     interfaces.AccountRepository
	betRepo         interfaces.BetRepository
	ledgerEntryRepo interfaces.LedgerEntryRepository
	statsRepo       interfaces.StatsRepository
}

type unitOfWorkFactory struct {
	db               *database.DB
	publisherFactory func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Each unit of work
// gets a fresh transactional publisher from publisherFactory so pending
// events never leak between transactions.
func NewUnitOfWorkFactory(db *database.DB, publisherFactory func() interfaces.TransactionalEventPublisher) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:               db,
		publisherFactory: publisherFactory,
	}
}

func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:        f.db,
		publisher: f.publisherFactory(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.accountRepo = newAccountRepository(tx)
	u.betRepo = newBetRepository(tx)
	u.ledgerEntryRepo = newLedgerEntryRepository(tx)
	u.statsRepo = newStatsRepository(tx)

	return nil
}

// Commit commits the transaction and flushes pending events on success
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Events are best-effort after commit; the database transaction has
	// already succeeded
	if u.publisher != nil {
		_ = u.publisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil

	if u.publisher != nil {
		u.publisher.Discard()
	}

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// BetRepository returns the bet repository for this unit of work
func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

// LedgerEntryRepository returns the ledger entry repository for this unit of work
func (u *unitOfWork) LedgerEntryRepository() interfaces.LedgerEntryRepository {
	if u.ledgerEntryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerEntryRepo
}

// StatsRepository returns the stats repository for this unit of work
func (u *unitOfWork) StatsRepository() interfaces.StatsRepository {
	if u.statsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.statsRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.publisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.publisher
}
