package engine

import (
	"errors"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/record"
	"github.com/txproc/engine/txn"
)

// ErrInvalidState is logged when a Handler cannot find the store entry for
// its own account id. The Handler drops that command and keeps serving its
// inbox, the same as for every other transaction error; it does not stop.
var ErrInvalidState = errors.New("engine: missing state entry for handler's own account")

// errorReason maps err to a short, low-cardinality label suitable for a
// metrics dimension.
func errorReason(err error) string {
	switch {
	case errors.Is(err, account.ErrOverflow):
		return "overflow"
	case errors.Is(err, account.ErrLocked):
		return "locked"
	case errors.Is(err, account.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, account.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, txn.ErrDuplicateTransactionID):
		return "duplicate_transaction_id"
	case errors.Is(err, txn.ErrInvalidAccountID):
		return "invalid_account_id"
	case errors.Is(err, txn.ErrDeposit):
		return "invalid_deposit"
	case errors.Is(err, txn.ErrWithdrawal):
		return "invalid_withdrawal"
	case errors.Is(err, txn.ErrDispute):
		return "invalid_dispute"
	case errors.Is(err, txn.ErrResolve):
		return "invalid_resolve"
	case errors.Is(err, txn.ErrChargeBack):
		return "invalid_chargeback"
	case errors.Is(err, record.ErrUnknownType):
		return "unknown_type"
	default:
		return "other"
	}
}
