// Package account implements the per-client balance ledger entry.
package account

import (
	"errors"

	"github.com/txproc/engine/amount"
)

// Errors returned by Account's mutators.
var (
	// ErrOverflow is returned when a checked arithmetic operation would fall
	// outside the representable range of an Amount.
	ErrOverflow = errors.New("account balance overflow")
	// ErrLocked is returned when a mutator is attempted on a locked account.
	ErrLocked = errors.New("account is locked")
	// ErrInsufficientFunds is returned when an operation would make a
	// non-negative balance field negative.
	ErrInsufficientFunds = errors.New("account has insufficient funds")
	// ErrInvalidInput is returned when an operation is given a non-positive
	// amount.
	ErrInvalidInput = errors.New("account operation has invalid input")
)

// ID identifies a client account.
type ID = uint16

// Account holds a single client's balances.
//
// Invariants maintained by every successful mutator: Available+Held == Total;
// Available, Held, Total are all >= 0; once Locked is true no further mutator
// succeeds.
type Account struct {
	id        ID
	Available amount.Amount
	Held      amount.Amount
	Total     amount.Amount
	Locked    bool
}

// New returns a zero-balance, unlocked account for id.
func New(id ID) Account {
	return Account{id: id}
}

// ID returns the account's client id.
func (a Account) ID() ID {
	return a.id
}

// Deposit credits amt to Available and Total.
func (a *Account) Deposit(amt amount.Amount) error {
	if amt.Cmp(amount.Zero) <= 0 {
		return ErrInvalidInput
	}
	if a.Locked {
		return ErrLocked
	}

	available, ok := a.Available.CheckedAdd(amt)
	if !ok {
		return ErrOverflow
	}
	total, ok := a.Total.CheckedAdd(amt)
	if !ok {
		return ErrOverflow
	}

	a.Available = available
	a.Total = total
	return nil
}

// Withdraw debits amt from Available and Total.
func (a *Account) Withdraw(amt amount.Amount) error {
	if amt.Cmp(amount.Zero) <= 0 {
		return ErrInvalidInput
	}
	if a.Locked {
		return ErrLocked
	}

	available, ok := a.Available.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if available.IsNegative() {
		return ErrInsufficientFunds
	}
	total, ok := a.Total.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if total.IsNegative() {
		return ErrInsufficientFunds
	}

	a.Available = available
	a.Total = total
	return nil
}

// Dispute moves amt from Available to Held. Total is unchanged.
func (a *Account) Dispute(amt amount.Amount) error {
	if amt.Cmp(amount.Zero) <= 0 {
		return ErrInvalidInput
	}
	if a.Locked {
		return ErrLocked
	}

	available, ok := a.Available.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if available.IsNegative() {
		return ErrInsufficientFunds
	}
	held, ok := a.Held.CheckedAdd(amt)
	if !ok {
		return ErrOverflow
	}

	a.Held = held
	a.Available = available
	return nil
}

// Resolve reverses a prior Dispute, moving amt from Held back to Available.
// Total is unchanged.
func (a *Account) Resolve(amt amount.Amount) error {
	if amt.Cmp(amount.Zero) <= 0 {
		return ErrInvalidInput
	}
	if a.Locked {
		return ErrLocked
	}

	held, ok := a.Held.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if held.IsNegative() {
		return ErrInsufficientFunds
	}
	available, ok := a.Available.CheckedAdd(amt)
	if !ok {
		return ErrOverflow
	}

	a.Available = available
	a.Held = held
	return nil
}

// ChargeBack finalizes a dispute against the account: it debits amt from Held
// and Total and locks the account. Locking is permanent; there is no unlock
// path.
func (a *Account) ChargeBack(amt amount.Amount) error {
	if amt.Cmp(amount.Zero) <= 0 {
		return ErrInvalidInput
	}
	if a.Locked {
		return ErrLocked
	}

	held, ok := a.Held.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if held.IsNegative() {
		return ErrInsufficientFunds
	}
	total, ok := a.Total.CheckedSub(amt)
	if !ok {
		return ErrOverflow
	}
	if total.IsNegative() {
		return ErrInsufficientFunds
	}

	a.Held = held
	a.Total = total
	a.Locked = true
	return nil
}
