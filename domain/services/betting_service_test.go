package services

import (
	"context"
	"errors"
	"testing"

	"stakemax/domain/entities"
	"stakemax/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBettingService_PlaceBet_Win(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	factory := &testhelpers.FakeUnitOfWorkFactory{UoW: uow}

	// Slots: draw 0.1 < 0.35 wins, multiplier 1 + 0.5*(6-1) = 3.5,
	// payout floor(500 * 3.5) = 1750, net change +1250
	resolver := NewOutcomeGenerator(NewSequenceSource(0.1, 0.5))
	// Jackpot increment floor(0.5 * 1000) = 500
	service := NewBettingService(factory, resolver, NewSequenceSource(0.5))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 10000}

	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.AccountRepo.On("ApplyDelta", ctx, int64(7), int64(1250)).Return(int64(11250), nil)

	uow.LedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
		return e.AccountID == 7 &&
			e.BalanceBefore == 10000 &&
			e.BalanceAfter == 11250 &&
			e.ChangeAmount == 1250 &&
			e.Reason == entities.EntryReasonBetWin
	})).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*entities.LedgerEntry)
		entry.ID = 42
	})

	uow.BetRepo.On("Create", ctx, mock.MatchedBy(func(b *entities.Bet) bool {
		return b.AccountID == 7 &&
			b.Game == "Slots" &&
			b.Amount == 500 &&
			b.Result == entities.BetResultWin &&
			b.WinAmount == 1750 &&
			b.ChangeAmount == 1250 &&
			b.LedgerEntryID != nil && *b.LedgerEntryID == 42
	})).Return(nil)

	uow.StatsRepo.On("Increment", ctx, entities.StatTotalBets, int64(1)).Return(int64(1), nil)
	uow.StatsRepo.On("RaiseToAtLeast", ctx, entities.StatBiggestWin, int64(1750)).Return(int64(1750), nil)
	uow.StatsRepo.On("Increment", ctx, entities.StatJackpot, int64(500)).Return(int64(2848092), nil)

	uow.Events.On("Publish", mock.AnythingOfType("events.StatsUpdatedEvent")).Return(nil)
	uow.Events.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
	uow.Events.On("Publish", mock.AnythingOfType("events.BetPlacedEvent")).Return(nil)

	result, err := service.PlaceBet(ctx, 7, "Slots", 500)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, entities.BetResultWin, result.Result)
	assert.Equal(t, int64(500), result.BetAmount)
	assert.Equal(t, int64(1750), result.WinAmount)
	assert.Equal(t, int64(1250), result.ChangeAmount)
	assert.Equal(t, int64(11250), result.NewBalance)

	assert.True(t, uow.Committed)
	assert.False(t, uow.RolledBack)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_Loss(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	factory := &testhelpers.FakeUnitOfWorkFactory{UoW: uow}

	// Dice: draw 0.75 >= 0.5 loses
	resolver := NewOutcomeGenerator(NewSequenceSource(0.75))
	service := NewBettingService(factory, resolver, NewSequenceSource(0.999))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 10000}

	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.AccountRepo.On("ApplyDelta", ctx, int64(7), int64(-500)).Return(int64(9500), nil)

	uow.LedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
		return e.AccountID == 7 &&
			e.BalanceBefore == 10000 &&
			e.BalanceAfter == 9500 &&
			e.ChangeAmount == -500 &&
			e.Reason == entities.EntryReasonBetLoss
	})).Return(nil)

	uow.BetRepo.On("Create", ctx, mock.MatchedBy(func(b *entities.Bet) bool {
		return b.Game == "Dice" &&
			b.Result == entities.BetResultLose &&
			b.WinAmount == 0 &&
			b.ChangeAmount == -500
	})).Return(nil)

	uow.StatsRepo.On("Increment", ctx, entities.StatTotalBets, int64(1)).Return(int64(2), nil)
	uow.StatsRepo.On("Increment", ctx, entities.StatJackpot, int64(999)).Return(int64(2848591), nil)

	uow.Events.On("Publish", mock.AnythingOfType("events.StatsUpdatedEvent")).Return(nil)
	uow.Events.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
	uow.Events.On("Publish", mock.AnythingOfType("events.BetPlacedEvent")).Return(nil)

	result, err := service.PlaceBet(ctx, 7, "Dice", 500)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, entities.BetResultLose, result.Result)
	assert.Equal(t, int64(0), result.WinAmount)
	assert.Equal(t, int64(-500), result.ChangeAmount)
	assert.Equal(t, int64(9500), result.NewBalance)

	assert.True(t, uow.Committed)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_UnknownGameFallsBack(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	factory := &testhelpers.FakeUnitOfWorkFactory{UoW: uow}

	// Default game: 0.45 win chance, draw 0.9 loses
	resolver := NewOutcomeGenerator(NewSequenceSource(0.9))
	service := NewBettingService(factory, resolver, NewSequenceSource(0.0))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 1000}

	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.AccountRepo.On("ApplyDelta", ctx, int64(7), int64(-100)).Return(int64(900), nil)
	uow.LedgerRepo.On("Record", ctx, mock.Anything).Return(nil)
	uow.BetRepo.On("Create", ctx, mock.MatchedBy(func(b *entities.Bet) bool {
		return b.Game == "Default"
	})).Return(nil)
	uow.StatsRepo.On("Increment", ctx, entities.StatTotalBets, int64(1)).Return(int64(1), nil)
	uow.StatsRepo.On("Increment", ctx, entities.StatJackpot, int64(0)).Return(int64(2847592), nil)
	uow.Events.On("Publish", mock.Anything).Return(nil)

	result, err := service.PlaceBet(ctx, 7, "no-such-game", 100)

	require.NoError(t, err)
	assert.Equal(t, entities.BetResultLose, result.Result)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_InvalidStake(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	result, err := service.PlaceBet(ctx, 7, "Dice", 0)
	assert.ErrorIs(t, err, entities.ErrInvalidStake)
	assert.Nil(t, result)

	result, err = service.PlaceBet(ctx, 7, "Dice", -50)
	assert.ErrorIs(t, err, entities.ErrInvalidStake)
	assert.Nil(t, result)

	// Nothing reached the transaction
	assert.False(t, uow.Began)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_UnknownAccount(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	uow.AccountRepo.On("GetByID", ctx, int64(999)).Return(nil, nil)

	result, err := service.PlaceBet(ctx, 999, "Dice", 100)

	assert.ErrorIs(t, err, entities.ErrUnknownAccount)
	assert.Nil(t, result)
	assert.False(t, uow.Committed)
	assert.True(t, uow.RolledBack)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_InsufficientFundsPreCheck(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 100}
	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)

	result, err := service.PlaceBet(ctx, 7, "Dice", 500)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	assert.Nil(t, result)
	assert.False(t, uow.Committed)
	// No delta was attempted and no draw was consumed against the account
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_InsufficientFundsAtLedger(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.9)), NewSequenceSource(0.1))

	// The pre-check passes against a stale read, but the conditional update
	// sees a drained balance and rejects the debit
	account := &entities.Account{ID: 7, Name: "alice", Balance: 60}
	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.AccountRepo.On("ApplyDelta", ctx, int64(7), int64(-50)).
		Return(int64(0), entities.ErrInsufficientFunds)

	result, err := service.PlaceBet(ctx, 7, "Dice", 50)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	assert.Nil(t, result)
	assert.False(t, uow.Committed)
	assert.True(t, uow.RolledBack)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_LedgerAppendFailure(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.9)), NewSequenceSource(0.1))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 1000}
	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.AccountRepo.On("ApplyDelta", ctx, int64(7), int64(-100)).Return(int64(900), nil)
	uow.LedgerRepo.On("Record", ctx, mock.Anything).Return(errors.New("disk full"))

	result, err := service.PlaceBet(ctx, 7, "Dice", 100)

	assert.ErrorIs(t, err, entities.ErrInternalInconsistency)
	assert.Nil(t, result)
	assert.False(t, uow.Committed)
	assert.True(t, uow.RolledBack)
	uow.AssertExpectations(t)
}

func TestBettingService_GetHistory(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 1000}
	bets := []*entities.Bet{
		{ID: 2, AccountID: 7, Game: "Dice", Amount: 100, Result: entities.BetResultWin},
		{ID: 1, AccountID: 7, Game: "Slots", Amount: 100, Result: entities.BetResultLose},
	}

	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.BetRepo.On("GetByAccount", ctx, int64(7), 2).Return(bets, nil)

	got, err := service.GetHistory(ctx, 7, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	uow.AssertExpectations(t)
}

func TestBettingService_GetHistory_DefaultLimit(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	account := &entities.Account{ID: 7, Name: "alice", Balance: 1000}
	uow.AccountRepo.On("GetByID", ctx, int64(7)).Return(account, nil)
	uow.BetRepo.On("GetByAccount", ctx, int64(7), 20).Return([]*entities.Bet{}, nil)

	_, err := service.GetHistory(ctx, 7, 0)

	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestBettingService_GetHistory_UnknownAccount(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	uow.AccountRepo.On("GetByID", ctx, int64(999)).Return(nil, nil)

	_, err := service.GetHistory(ctx, 999, 10)

	assert.ErrorIs(t, err, entities.ErrUnknownAccount)
	uow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_BeginFailure(t *testing.T) {
	ctx := context.Background()

	uow := testhelpers.NewFakeUnitOfWork()
	uow.BeginErr = errors.New("pool exhausted")
	service := NewBettingService(&testhelpers.FakeUnitOfWorkFactory{UoW: uow},
		NewOutcomeGenerator(NewSequenceSource(0.1)), NewSequenceSource(0.1))

	result, err := service.PlaceBet(ctx, 7, "Dice", 100)

	assert.Error(t, err)
	assert.Nil(t, result)
	uow.AssertExpectations(t)
}
