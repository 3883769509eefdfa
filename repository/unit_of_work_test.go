package repository

import (
	"context"
	"sync"
	"testing"

	"stakemax/domain/entities"
	"stakemax/domain/events"
	"stakemax/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures events that survive a commit
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event{}, p.events...)
}

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	account, err := NewAccountRepository(testDB.DB).Create(ctx, "alice", 1000)
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	factory := NewTestUnitOfWorkFactoryWithPublisher(testDB.DB, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	balance, err := uow.AccountRepository().ApplyDelta(ctx, account.ID, -400)
	require.NoError(t, err)
	assert.Equal(t, int64(600), balance)

	require.NoError(t, uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    account.ID,
		OldBalance:   1000,
		NewBalance:   600,
		ChangeAmount: -400,
		Reason:       entities.EntryReasonBetLoss,
	}))

	// Nothing is flushed before commit
	assert.Empty(t, publisher.Events())

	require.NoError(t, uow.Commit())

	persisted, err := NewAccountRepository(testDB.DB).GetBalance(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), persisted)

	require.Len(t, publisher.Events(), 1)
	assert.Equal(t, events.EventTypeBalanceChange, publisher.Events()[0].Type())
}

func TestUnitOfWork_RollbackDiscardsChangesAndEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	account, err := NewAccountRepository(testDB.DB).Create(ctx, "bob", 1000)
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	factory := NewTestUnitOfWorkFactoryWithPublisher(testDB.DB, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err = uow.AccountRepository().ApplyDelta(ctx, account.ID, -400)
	require.NoError(t, err)

	require.NoError(t, uow.EventBus().Publish(events.StatsUpdatedEvent{TotalBets: 1}))

	require.NoError(t, uow.Rollback())

	// The delta never happened and no event escaped
	persisted, err := NewAccountRepository(testDB.DB).GetBalance(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), persisted)
	assert.Empty(t, publisher.Events())
}

func TestUnitOfWork_RepositoriesShareOneTransaction(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	account, err := NewAccountRepository(testDB.DB).Create(ctx, "carol", 1000)
	require.NoError(t, err)

	factory := NewTestUnitOfWorkFactory(testDB.DB)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	balance, err := uow.AccountRepository().ApplyDelta(ctx, account.ID, -250)
	require.NoError(t, err)

	entry := &entities.LedgerEntry{
		AccountID:     account.ID,
		BalanceBefore: balance + 250,
		BalanceAfter:  balance,
		ChangeAmount:  -250,
		Reason:        entities.EntryReasonBetLoss,
	}
	require.NoError(t, uow.LedgerEntryRepository().Record(ctx, entry))

	bet := &entities.Bet{
		AccountID:     account.ID,
		Game:          "Dice",
		Amount:        250,
		Result:        entities.BetResultLose,
		WinAmount:     0,
		ChangeAmount:  -250,
		LedgerEntryID: &entry.ID,
	}
	require.NoError(t, uow.BetRepository().Create(ctx, bet))

	_, err = uow.StatsRepository().Increment(ctx, entities.StatTotalBets, 1)
	require.NoError(t, err)

	require.NoError(t, uow.Commit())

	// Everything is visible after commit, including the FK link
	fetched, err := NewBetRepository(testDB.DB).GetByID(ctx, bet.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.NotNil(t, fetched.LedgerEntryID)
	assert.Equal(t, entry.ID, *fetched.LedgerEntryID)

	snapshot, err := NewStatsRepository(testDB.DB).Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot[entities.StatTotalBets])
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewTestUnitOfWorkFactory(testDB.DB)
	uow := factory.Create()

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}
