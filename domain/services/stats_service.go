package services

import (
	"context"
	"fmt"

	"stakemax/domain/entities"
	"stakemax/domain/interfaces"
)

type statsService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory interfaces.UnitOfWorkFactory) interfaces.StatsService {
	return &statsService{uowFactory: uowFactory}
}

// GetStats returns the current aggregate stats snapshot
func (s *statsService) GetStats(ctx context.Context) (entities.StatsSnapshot, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	snapshot, err := uow.StatsRepository().Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats read: %w", err)
	}

	return snapshot, nil
}

// GetLeaderboard returns the top accounts by best single win payout,
// ties broken by the earliest achieving bet
func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.BetRepository().GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit leaderboard read: %w", err)
	}

	for i, entry := range entries {
		entry.Rank = i + 1
	}

	return entries, nil
}
