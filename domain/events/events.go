package events

import "stakemax/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated EventType = "account_created"
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypeStatsUpdated   EventType = "stats_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	AccountID      int64
	Name           string
	InitialBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	AccountID    int64
	OldBalance   int64
	NewBalance   int64
	ChangeAmount int64
	Reason       entities.EntryReason
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// BetPlacedEvent represents a bet that was resolved and committed
type BetPlacedEvent struct {
	AccountID int64
	BetID     int64
	Game      string
	Amount    int64
	Result    entities.BetResultType
	Payout    int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// StatsUpdatedEvent signals that the aggregate stats changed after a commit
type StatsUpdatedEvent struct {
	TotalBets  int64
	BiggestWin int64
	Jackpot    int64
}

func (e StatsUpdatedEvent) Type() EventType {
	return EventTypeStatsUpdated
}
