package entities

import "errors"

// Sentinel errors for the betting core. The first three are expected
// user-input conditions and are surfaced verbatim to callers; the last two
// indicate collaborator or invariant failures.
var (
	// ErrInvalidStake indicates a non-positive stake
	ErrInvalidStake = errors.New("stake must be positive")

	// ErrUnknownAccount indicates the referenced account does not exist
	ErrUnknownAccount = errors.New("account not found")

	// ErrInsufficientFunds indicates the stake exceeds the current balance
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrStorageUnavailable indicates the storage collaborator failed
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternalInconsistency indicates an applied ledger delta without a
	// matching audit record
	ErrInternalInconsistency = errors.New("internal inconsistency")
)
