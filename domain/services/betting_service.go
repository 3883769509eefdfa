package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"stakemax/domain/entities"
	"stakemax/domain/events"
	"stakemax/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// jackpotIncrementBound caps the pseudo-random jackpot increment per bet.
// The jackpot is a display-only accumulator, not tied to any payout.
const jackpotIncrementBound = 1000

type bettingService struct {
	uowFactory interfaces.UnitOfWorkFactory
	resolver   interfaces.OutcomeGenerator
	rng        interfaces.RandSource
}

// NewBettingService creates a new betting service. The random source is used
// only for the jackpot increment; outcome resolution draws from the resolver's
// own injected source.
func NewBettingService(uowFactory interfaces.UnitOfWorkFactory, resolver interfaces.OutcomeGenerator, rng interfaces.RandSource) interfaces.BettingService {
	return &bettingService{
		uowFactory: uowFactory,
		resolver:   resolver,
		rng:        rng,
	}
}

// PlaceBet orchestrates one bet. The ledger delta, ledger entry, bet record,
// and stats updates share one transaction, so a failed balance mutation can
// never leave stats or audit records behind.
func (s *bettingService) PlaceBet(ctx context.Context, accountID int64, gameName string, stake int64) (*entities.BetResult, error) {
	if stake <= 0 {
		return nil, entities.ErrInvalidStake
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := uow.Rollback(); err != nil {
			log.WithError(err).Error("Failed to rollback bet transaction")
		}
	}()

	account, err := uow.AccountRepository().GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, entities.ErrUnknownAccount
	}

	// Pre-check only. The ledger's conditional update is the authority;
	// this avoids consuming a random draw for a bet that cannot be funded.
	if !account.CanAfford(stake) {
		return nil, entities.ErrInsufficientFunds
	}

	game := entities.LookupGame(gameName)
	outcome, err := s.resolver.Resolve(game, stake)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outcome: %w", err)
	}

	newBalance, err := uow.AccountRepository().ApplyDelta(ctx, accountID, outcome.Change)
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) || errors.Is(err, entities.ErrUnknownAccount) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	reason := entities.EntryReasonBetLoss
	if outcome.Result == entities.BetResultWin {
		reason = entities.EntryReasonBetWin
	}

	entry := &entities.LedgerEntry{
		AccountID:     accountID,
		BalanceBefore: newBalance - outcome.Change,
		BalanceAfter:  newBalance,
		ChangeAmount:  outcome.Change,
		Reason:        reason,
		Metadata: map[string]any{
			"game":       game.Name,
			"stake":      stake,
			"multiplier": outcome.Multiplier,
		},
	}
	if err := uow.LedgerEntryRepository().Record(ctx, entry); err != nil {
		s.logInconsistency(accountID, stake, outcome.Change, "ledger entry append failed after delta", err)
		return nil, fmt.Errorf("%w: failed to record ledger entry: %v", entities.ErrInternalInconsistency, err)
	}

	bet := &entities.Bet{
		AccountID:     accountID,
		Game:          game.Name,
		Amount:        stake,
		Result:        outcome.Result,
		WinAmount:     outcome.Payout,
		ChangeAmount:  outcome.Change,
		LedgerEntryID: &entry.ID,
	}
	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		s.logInconsistency(accountID, stake, outcome.Change, "bet record append failed after delta", err)
		return nil, fmt.Errorf("%w: failed to create bet record: %v", entities.ErrInternalInconsistency, err)
	}

	if err := s.recordStats(ctx, uow, outcome); err != nil {
		return nil, err
	}

	if err := uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    accountID,
		OldBalance:   entry.BalanceBefore,
		NewBalance:   newBalance,
		ChangeAmount: outcome.Change,
		Reason:       reason,
	}); err != nil {
		log.WithError(err).Warn("Failed to queue balance change event")
	}
	if err := uow.EventBus().Publish(events.BetPlacedEvent{
		AccountID: accountID,
		BetID:     bet.ID,
		Game:      game.Name,
		Amount:    stake,
		Result:    outcome.Result,
		Payout:    outcome.Payout,
	}); err != nil {
		log.WithError(err).Warn("Failed to queue bet placed event")
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bet: %w", err)
	}

	return &entities.BetResult{
		Result:       outcome.Result,
		BetAmount:    stake,
		WinAmount:    outcome.Payout,
		ChangeAmount: outcome.Change,
		NewBalance:   newBalance,
	}, nil
}

// GetHistory returns the account's most recent bets, newest first
func (s *bettingService) GetHistory(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
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

	bets, err := uow.BetRepository().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit history read: %w", err)
	}

	return bets, nil
}

// recordStats applies the aggregate stat updates for a resolved bet inside the
// bet's transaction. total_bets increases by exactly 1, biggest_win never
// decreases, and the jackpot accumulates a bounded pseudo-random increment
// regardless of outcome.
func (s *bettingService) recordStats(ctx context.Context, uow interfaces.UnitOfWork, outcome entities.Outcome) error {
	stats := uow.StatsRepository()

	totalBets, err := stats.Increment(ctx, entities.StatTotalBets, 1)
	if err != nil {
		return fmt.Errorf("failed to increment total bets: %w", err)
	}

	biggestWin := int64(0)
	if outcome.Result == entities.BetResultWin {
		biggestWin, err = stats.RaiseToAtLeast(ctx, entities.StatBiggestWin, outcome.Payout)
		if err != nil {
			return fmt.Errorf("failed to update biggest win: %w", err)
		}
	}

	jackpotIncr := int64(math.Floor(s.rng.Float64() * jackpotIncrementBound))
	jackpot, err := stats.Increment(ctx, entities.StatJackpot, jackpotIncr)
	if err != nil {
		return fmt.Errorf("failed to increment jackpot: %w", err)
	}

	if err := uow.EventBus().Publish(events.StatsUpdatedEvent{
		TotalBets:  totalBets,
		BiggestWin: biggestWin,
		Jackpot:    jackpot,
	}); err != nil {
		log.WithError(err).Warn("Failed to queue stats updated event")
	}

	return nil
}

// logInconsistency records an audit-trail gap with full context for
// reconciliation before the transaction is rolled back
func (s *bettingService) logInconsistency(accountID, stake, delta int64, msg string, err error) {
	log.WithFields(log.Fields{
		"accountID": accountID,
		"stake":     stake,
		"delta":     delta,
		"timestamp": time.Now().UTC(),
	}).WithError(err).Error(msg)
}
