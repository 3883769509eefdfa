package testhelpers

import (
	"context"
	"time"

	"stakemax/domain/entities"
	"stakemax/domain/events"
	"stakemax/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, accountID int64) (*entities.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByName(ctx context.Context, name string) (*entities.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, name string, initialBalance int64) (*entities.Account, error) {
	args := m.Called(ctx, name, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, accountID int64, delta int64) (int64, error) {
	args := m.Called(ctx, accountID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByAccountSince(ctx context.Context, accountID int64, since time.Time) ([]*entities.Bet, error) {
	args := m.Called(ctx, accountID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	args := m.Called(ctx, key, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) RaiseToAtLeast(ctx context.Context, key string, value int64) (int64, error) {
	args := m.Called(ctx, key, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) Snapshot(ctx context.Context) (entities.StatsSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.StatsSnapshot), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// FakeUnitOfWork is a unit of work backed by the repository mocks above.
// Begin, Commit and Rollback are recorded rather than mocked so tests can
// assert transaction outcomes directly.
type FakeUnitOfWork struct {
	AccountRepo *MockAccountRepository
	BetRepo     *MockBetRepository
	LedgerRepo  *MockLedgerEntryRepository
	StatsRepo   *MockStatsRepository
	Events      *MockEventPublisher

	BeginErr  error
	CommitErr error

	Began      bool
	Committed  bool
	RolledBack bool
}

var _ interfaces.UnitOfWork = (*FakeUnitOfWork)(nil)

// NewFakeUnitOfWork creates a fake unit of work with fresh mocks
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		AccountRepo: new(MockAccountRepository),
		BetRepo:     new(MockBetRepository),
		LedgerRepo:  new(MockLedgerEntryRepository),
		StatsRepo:   new(MockStatsRepository),
		Events:      new(MockEventPublisher),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) error {
	if u.BeginErr != nil {
		return u.BeginErr
	}
	u.Began = true
	return nil
}

func (u *FakeUnitOfWork) Commit() error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.Committed = true
	return nil
}

func (u *FakeUnitOfWork) Rollback() error {
	if !u.Committed {
		u.RolledBack = true
	}
	return nil
}

func (u *FakeUnitOfWork) AccountRepository() interfaces.AccountRepository {
	return u.AccountRepo
}

func (u *FakeUnitOfWork) BetRepository() interfaces.BetRepository {
	return u.BetRepo
}

func (u *FakeUnitOfWork) LedgerEntryRepository() interfaces.LedgerEntryRepository {
	return u.LedgerRepo
}

func (u *FakeUnitOfWork) StatsRepository() interfaces.StatsRepository {
	return u.StatsRepo
}

func (u *FakeUnitOfWork) EventBus() interfaces.EventPublisher {
	return u.Events
}

// AssertExpectations asserts all repository mock expectations
func (u *FakeUnitOfWork) AssertExpectations(t mock.TestingT) {
	u.AccountRepo.AssertExpectations(t)
	u.BetRepo.AssertExpectations(t)
	u.LedgerRepo.AssertExpectations(t)
	u.StatsRepo.AssertExpectations(t)
	u.Events.AssertExpectations(t)
}

// FakeUnitOfWorkFactory returns the same fake unit of work on every Create
type FakeUnitOfWorkFactory struct {
	UoW *FakeUnitOfWork
}

var _ interfaces.UnitOfWorkFactory = (*FakeUnitOfWorkFactory)(nil)

func (f *FakeUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UoW
}
