package entities

import (
	"errors"
	"time"
)

// BetResultType represents the outcome of a resolved bet
type BetResultType string

const (
	BetResultWin  BetResultType = "win"
	BetResultLose BetResultType = "lose"
)

// Bet represents a resolved bet. Bet records are append-only: created once per
// resolved bet, never mutated or deleted. They form the audit trail and the
// leaderboard source.
type Bet struct {
	ID            int64         `db:"id"`
	AccountID     int64         `db:"account_id"`
	Game          string        `db:"game"`
	Amount        int64         `db:"amount"`
	Result        BetResultType `db:"result"`
	WinAmount     int64         `db:"win_amount"`
	ChangeAmount  int64         `db:"change_amount"`
	LedgerEntryID *int64        `db:"ledger_entry_id"`
	CreatedAt     time.Time     `db:"created_at"`
}

// BetResult represents the outcome of a bet as returned to the caller
type BetResult struct {
	Result       BetResultType
	BetAmount    int64
	WinAmount    int64
	ChangeAmount int64
	NewBalance   int64
}

// Won reports whether the bet was a win
func (b *Bet) Won() bool {
	return b.Result == BetResultWin
}

// GetNetProfit returns the net profit/loss from this bet
func (b *Bet) GetNetProfit() int64 {
	return b.ChangeAmount
}

// Validate performs basic validation on the bet record
func (b *Bet) Validate() error {
	if b.Amount <= 0 {
		return errors.New("bet amount must be positive")
	}
	if b.Result != BetResultWin && b.Result != BetResultLose {
		return errors.New("bet result must be win or lose")
	}
	if b.Won() {
		if b.WinAmount < 0 {
			return errors.New("winning bet cannot have negative payout")
		}
		if b.ChangeAmount != b.WinAmount-b.Amount {
			return errors.New("winning bet change must equal payout minus stake")
		}
	} else {
		if b.WinAmount != 0 {
			return errors.New("losing bet must have zero payout")
		}
		if b.ChangeAmount != -b.Amount {
			return errors.New("losing bet change must equal negative stake")
		}
	}
	return nil
}

// Outcome represents a resolved game outcome before it is committed
type Outcome struct {
	Result     BetResultType
	Multiplier float64
	Payout     int64
	Change     int64
}
