package entities

import (
	"errors"
	"time"
)

// EntryReason represents why a balance changed
type EntryReason string

const (
	EntryReasonBetWin  EntryReason = "bet_win"
	EntryReasonBetLoss EntryReason = "bet_loss"
	EntryReasonInitial EntryReason = "initial"
)

// LedgerEntry represents a single balance change applied by the ledger.
// Entries are append-only; every committed bet corresponds to exactly one.
type LedgerEntry struct {
	ID            int64          `db:"id"`
	AccountID     int64          `db:"account_id"`
	BalanceBefore int64          `db:"balance_before"`
	BalanceAfter  int64          `db:"balance_after"`
	ChangeAmount  int64          `db:"change_amount"`
	Reason        EntryReason    `db:"reason"`
	Metadata      map[string]any `db:"metadata"`
	CreatedAt     time.Time      `db:"created_at"`
}

// IsCredit returns true if the change amount is positive
func (e *LedgerEntry) IsCredit() bool {
	return e.ChangeAmount > 0
}

// IsDebit returns true if the change amount is negative
func (e *LedgerEntry) IsDebit() bool {
	return e.ChangeAmount < 0
}

// Validate checks the internal consistency of the entry
func (e *LedgerEntry) Validate() error {
	if e.BalanceAfter != e.BalanceBefore+e.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if e.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}
