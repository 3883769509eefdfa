package repository

import (
	"context"
	"fmt"

	"stakemax/database"
	"stakemax/domain/entities"
	"stakemax/domain/interfaces"
)

type statsRepository struct {
	q Queryable
}

// NewStatsRepository creates a new stats repository on the pool
func NewStatsRepository(db *database.DB) interfaces.StatsRepository {
	return &statsRepository{q: db.Pool}
}

// newStatsRepository creates a new stats repository bound to a transaction
func newStatsRepository(tx Queryable) interfaces.StatsRepository {
	return &statsRepository{q: tx}
}

// Increment adds delta to the named stat in a single upsert statement, so
// concurrent increments serialize on the row and none are lost.
func (r *statsRepository) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	query := `
		INSERT INTO stats (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = stats.value + EXCLUDED.value
		RETURNING value`

	var value int64
	err := r.q.QueryRow(ctx, query, key, delta).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to increment stat %q: %w", key, err)
	}

	return value, nil
}

// RaiseToAtLeast raises the named stat to value if it is currently lower.
// The stat never decreases.
func (r *statsRepository) RaiseToAtLeast(ctx context.Context, key string, value int64) (int64, error) {
	query := `
		INSERT INTO stats (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = GREATEST(stats.value, EXCLUDED.value)
		RETURNING value`

	var result int64
	err := r.q.QueryRow(ctx, query, key, value).Scan(&result)
	if err != nil {
		return 0, fmt.Errorf("failed to raise stat %q: %w", key, err)
	}

	return result, nil
}

func (r *statsRepository) Snapshot(ctx context.Context) (entities.StatsSnapshot, error) {
	rows, err := r.q.Query(ctx, `SELECT key, value FROM stats`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	snapshot := make(entities.StatsSnapshot)
	for rows.Next() {
		var key string
		var value int64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan stat: %w", err)
		}
		snapshot[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats: %w", err)
	}

	return snapshot, nil
}
