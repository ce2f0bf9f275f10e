// Package txn implements the transaction variants applied against a client's
// AccountState, and the per-account state they mutate.
package txn

import (
	"errors"
	"fmt"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/amount"
)

// Errors returned while applying a Transaction to an AccountState. Each names
// the transaction kind that was invalid in context: a missing referenced id,
// a reference to the wrong kind of history entry, or a dispute-state
// conflict. Errors produced by the underlying Account mutator are wrapped,
// not replaced, so callers can still errors.Is against account.ErrLocked and
// friends.
var (
	ErrDeposit                = errors.New("invalid deposit")
	ErrWithdrawal             = errors.New("invalid withdrawal")
	ErrDispute                = errors.New("invalid dispute")
	ErrResolve                = errors.New("invalid resolve")
	ErrChargeBack             = errors.New("invalid charge back")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrInvalidAccountID       = errors.New("transaction addressed to another account")
)

// ID identifies a transaction. IDs must be globally unique across the input
// stream for deposits and withdrawals.
type ID = uint32

// Kind identifies which of the five supported transaction variants a
// Transaction carries.
type Kind uint8

const (
	KindDeposit Kind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeBack
)

// String renders the kind's wire-format name.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeBack:
		return "chargeback"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Metadata identifies the transaction id and the account it is addressed to.
type Metadata struct {
	TxID      ID
	AccountID account.ID
}

// Transaction is a closed, tagged variant over the five kinds of
// transactions the engine understands. Amount is meaningful only for Deposit
// and Withdrawal; Disputed is meaningful only for a Deposit stored in an
// AccountState's history.
type Transaction struct {
	Kind     Kind
	Meta     Metadata
	Amount   amount.Amount
	Disputed bool
}

// NewDeposit constructs an undisputed deposit transaction.
func NewDeposit(meta Metadata, amt amount.Amount) Transaction {
	return Transaction{Kind: KindDeposit, Meta: meta, Amount: amt}
}

// NewWithdrawal constructs a withdrawal transaction.
func NewWithdrawal(meta Metadata, amt amount.Amount) Transaction {
	return Transaction{Kind: KindWithdrawal, Meta: meta, Amount: amt}
}

// NewDispute constructs a dispute transaction referencing meta.TxID.
func NewDispute(meta Metadata) Transaction {
	return Transaction{Kind: KindDispute, Meta: meta}
}

// NewResolve constructs a resolve transaction referencing meta.TxID.
func NewResolve(meta Metadata) Transaction {
	return Transaction{Kind: KindResolve, Meta: meta}
}

// NewChargeBack constructs a charge back transaction referencing meta.TxID.
func NewChargeBack(meta Metadata) Transaction {
	return Transaction{Kind: KindChargeBack, Meta: meta}
}

// Apply mutates state according to t's kind. It dispatches on the closed
// Kind enum via a plain switch rather than open-ended interface dispatch.
func (t Transaction) Apply(state *State) error {
	switch t.Kind {
	case KindDeposit:
		return t.deposit(state)
	case KindWithdrawal:
		return t.withdrawal(state)
	case KindDispute:
		return t.dispute(state)
	case KindResolve:
		return t.resolve(state)
	case KindChargeBack:
		return t.chargeBack(state)
	default:
		return fmt.Errorf("txn: unknown kind %v", t.Kind)
	}
}

func (t Transaction) deposit(state *State) error {
	if t.Kind != KindDeposit {
		return ErrDeposit
	}
	if state.Account.ID() != t.Meta.AccountID {
		return ErrInvalidAccountID
	}
	if _, exists := state.History[t.Meta.TxID]; exists {
		return ErrDuplicateTransactionID
	}
	if err := state.Account.Deposit(t.Amount); err != nil {
		return fmt.Errorf("%w", err)
	}
	state.History[t.Meta.TxID] = t
	return nil
}

func (t Transaction) withdrawal(state *State) error {
	if t.Kind != KindWithdrawal {
		return ErrWithdrawal
	}
	if state.Account.ID() != t.Meta.AccountID {
		return ErrInvalidAccountID
	}
	if _, exists := state.History[t.Meta.TxID]; exists {
		return ErrDuplicateTransactionID
	}
	if err := state.Account.Withdraw(t.Amount); err != nil {
		return fmt.Errorf("%w", err)
	}
	state.History[t.Meta.TxID] = t
	return nil
}

func (t Transaction) dispute(state *State) error {
	if t.Kind != KindDispute {
		return ErrDispute
	}
	if state.Account.ID() != t.Meta.AccountID {
		return ErrInvalidAccountID
	}

	disputed, ok := state.History[t.Meta.TxID]
	if !ok || disputed.Kind != KindDeposit || disputed.Disputed {
		return ErrDispute
	}

	if err := state.Account.Dispute(disputed.Amount); err != nil {
		return fmt.Errorf("%w", err)
	}
	disputed.Disputed = true
	state.History[t.Meta.TxID] = disputed
	return nil
}

func (t Transaction) resolve(state *State) error {
	if t.Kind != KindResolve {
		return ErrResolve
	}
	if state.Account.ID() != t.Meta.AccountID {
		return ErrInvalidAccountID
	}

	disputed, ok := state.History[t.Meta.TxID]
	if !ok || disputed.Kind != KindDeposit || !disputed.Disputed {
		return ErrResolve
	}

	if err := state.Account.Resolve(disputed.Amount); err != nil {
		return fmt.Errorf("%w", err)
	}
	disputed.Disputed = false
	state.History[t.Meta.TxID] = disputed
	return nil
}

func (t Transaction) chargeBack(state *State) error {
	if t.Kind != KindChargeBack {
		return ErrChargeBack
	}
	if state.Account.ID() != t.Meta.AccountID {
		return ErrInvalidAccountID
	}

	disputed, ok := state.History[t.Meta.TxID]
	if !ok || disputed.Kind != KindDeposit || !disputed.Disputed {
		return ErrChargeBack
	}

	if err := state.Account.ChargeBack(disputed.Amount); err != nil {
		return fmt.Errorf("%w", err)
	}
	disputed.Disputed = false
	state.History[t.Meta.TxID] = disputed
	return nil
}

// String renders t for logging.
func (t Transaction) String() string {
	switch t.Kind {
	case KindDeposit:
		return fmt.Sprintf("deposit id=%d client=%d amount=%s disputed=%t", t.Meta.TxID, t.Meta.AccountID, t.Amount, t.Disputed)
	case KindWithdrawal:
		return fmt.Sprintf("withdrawal id=%d client=%d amount=%s", t.Meta.TxID, t.Meta.AccountID, t.Amount)
	default:
		return fmt.Sprintf("%s id=%d client=%d", t.Kind, t.Meta.TxID, t.Meta.AccountID)
	}
}
