package entities

import "time"

// Stat keys maintained by the stats aggregator. Values are integers in a
// key/value stats table; total_bets and biggest_win are monotonic.
const (
	StatTotalBets   = "total_bets"
	StatBiggestWin  = "biggest_win"
	StatJackpot     = "jackpot"
	StatActiveUsers = "active_users" // ephemeral, filled in by the notifier
)

// StatsSnapshot is a point-in-time view of the aggregate stats
type StatsSnapshot map[string]int64

// Clone returns a copy of the snapshot so observers cannot mutate shared state
func (s StatsSnapshot) Clone() StatsSnapshot {
	out := make(StatsSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// LeaderboardEntry represents an account's entry in the best-win leaderboard
type LeaderboardEntry struct {
	Rank       int
	AccountID  int64
	Name       string
	BestWin    int64
	AchievedAt time.Time
}
