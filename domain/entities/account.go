package entities

import (
	"errors"
	"time"
)

// Account represents a player account holding a balance in minor currency units
type Account struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}

// HasPositiveBalance checks if the account has a positive balance
func (a *Account) HasPositiveBalance() bool {
	return a.Balance > 0
}

// ValidateStake checks if a stake is valid for this account (positive and affordable)
func (a *Account) ValidateStake(stake int64) error {
	if stake <= 0 {
		return ErrInvalidStake
	}
	if !a.CanAfford(stake) {
		return ErrInsufficientFunds
	}
	return nil
}

// CalculateNewBalance calculates what the balance would be after a delta
func (a *Account) CalculateNewBalance(delta int64) int64 {
	return a.Balance + delta
}

// ValidateName checks that an account name is usable as an identifier
func (a *Account) ValidateName() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}
	return nil
}
