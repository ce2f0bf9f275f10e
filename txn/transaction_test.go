package txn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/amount"
	"github.com/txproc/engine/txn"
)

func meta(id txn.ID, acct account.ID) txn.Metadata {
	return txn.Metadata{TxID: id, AccountID: acct}
}

func one(t *testing.T) amount.Amount {
	t.Helper()
	a, ok := amount.FromFloat64(1.0)
	require.True(t, ok)
	return a
}

func TestDuplicateTransactionID(t *testing.T) {
	state := txn.NewState(1)

	deposit := txn.NewDeposit(meta(1, 1), amount.MaxAmount)
	require.NoError(t, deposit.Apply(state))
	require.ErrorIs(t, deposit.Apply(state), txn.ErrDuplicateTransactionID)
}

func TestDepositOverflow(t *testing.T) {
	state := txn.NewState(1)
	require.NoError(t, txn.NewDeposit(meta(1, 1), amount.MaxAmount).Apply(state))

	err := txn.NewDeposit(meta(2, 1), amount.MaxAmount).Apply(state)
	require.ErrorIs(t, err, account.ErrOverflow)
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	state := txn.NewState(1)
	require.NoError(t, txn.NewDeposit(meta(1, 1), amount.MaxAmount).Apply(state))
	require.NoError(t, txn.NewWithdrawal(meta(2, 1), amount.MaxAmount).Apply(state))

	err := txn.NewWithdrawal(meta(3, 1), amount.MaxAmount).Apply(state)
	require.ErrorIs(t, err, account.ErrInsufficientFunds)
}

func TestDisputeTwiceRejected(t *testing.T) {
	state := txn.NewState(1)
	amt := one(t)

	require.NoError(t, txn.NewDeposit(meta(5, 1), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(5, 1)).Apply(state))
	require.ErrorIs(t, txn.NewDispute(meta(5, 1)).Apply(state), txn.ErrDispute)
}

func TestResolveTwiceRejected(t *testing.T) {
	state := txn.NewState(1)
	amt := one(t)

	require.NoError(t, txn.NewDeposit(meta(5, 1), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(5, 1)).Apply(state))
	require.NoError(t, txn.NewResolve(meta(5, 1)).Apply(state))
	require.ErrorIs(t, txn.NewResolve(meta(5, 1)).Apply(state), txn.ErrResolve)
}

func TestChargeBackTwiceRejected(t *testing.T) {
	state := txn.NewState(1)
	amt := one(t)

	require.NoError(t, txn.NewDeposit(meta(6, 1), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(6, 1)).Apply(state))
	require.NoError(t, txn.NewChargeBack(meta(6, 1)).Apply(state))
	require.ErrorIs(t, txn.NewChargeBack(meta(6, 1)).Apply(state), txn.ErrChargeBack)
}

func TestDisputeResolveChargeBackOnUnknownID(t *testing.T) {
	state := txn.NewState(2)
	amt := one(t)
	require.NoError(t, txn.NewDeposit(meta(7, 2), amt).Apply(state))

	require.ErrorIs(t, txn.NewDispute(meta(1234, 2)).Apply(state), txn.ErrDispute)
	require.ErrorIs(t, txn.NewResolve(meta(1234, 2)).Apply(state), txn.ErrResolve)
	require.ErrorIs(t, txn.NewChargeBack(meta(1234, 2)).Apply(state), txn.ErrChargeBack)
}

func TestResolveChargeBackOnUndisputed(t *testing.T) {
	state := txn.NewState(2)
	amt := one(t)
	require.NoError(t, txn.NewDeposit(meta(7, 2), amt).Apply(state))

	require.ErrorIs(t, txn.NewResolve(meta(7, 2)).Apply(state), txn.ErrResolve)
	require.ErrorIs(t, txn.NewChargeBack(meta(7, 2)).Apply(state), txn.ErrChargeBack)
}

// TestLockedAccountRejectsEverything mirrors the reference implementation's
// scenario: several deposits and disputes are outstanding when one of them is
// charged back, locking the account; every subsequent mutator - even on
// transactions untouched by the chargeback - must now fail with ErrLocked.
func TestLockedAccountRejectsEverything(t *testing.T) {
	state := txn.NewState(2)
	amt := one(t)

	require.NoError(t, txn.NewDeposit(meta(8, 2), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(8, 2)).Apply(state))

	require.NoError(t, txn.NewDeposit(meta(9, 2), amt).Apply(state))

	require.NoError(t, txn.NewDeposit(meta(10, 2), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(10, 2)).Apply(state))

	require.NoError(t, txn.NewDeposit(meta(11, 2), amt).Apply(state))
	require.NoError(t, txn.NewDispute(meta(11, 2)).Apply(state))

	require.NoError(t, txn.NewChargeBack(meta(8, 2)).Apply(state))
	require.True(t, state.Account.Locked)

	require.ErrorIs(t, txn.NewDeposit(meta(13, 2), amt).Apply(state), account.ErrLocked)
	require.ErrorIs(t, txn.NewDispute(meta(9, 2)).Apply(state), account.ErrLocked)
	require.ErrorIs(t, txn.NewResolve(meta(10, 2)).Apply(state), account.ErrLocked)
	require.ErrorIs(t, txn.NewWithdrawal(meta(12, 2), amt).Apply(state), account.ErrLocked)
	require.ErrorIs(t, txn.NewChargeBack(meta(11, 2)).Apply(state), account.ErrLocked)
}

func TestDisputeOnWithdrawalRejected(t *testing.T) {
	state := txn.NewState(3)
	amt := one(t)

	require.NoError(t, txn.NewDeposit(meta(1, 3), amt).Apply(state))
	require.NoError(t, txn.NewWithdrawal(meta(2, 3), amt).Apply(state))

	require.ErrorIs(t, txn.NewDispute(meta(2, 3)).Apply(state), txn.ErrDispute)
	require.ErrorIs(t, txn.NewResolve(meta(2, 3)).Apply(state), txn.ErrResolve)
	require.ErrorIs(t, txn.NewChargeBack(meta(2, 3)).Apply(state), txn.ErrChargeBack)
}

func TestInvalidAmountOnDepositWithdrawal(t *testing.T) {
	state := txn.NewState(4)
	negative, ok := amount.FromFloat64(-1.0)
	require.True(t, ok)

	require.ErrorIs(t, txn.NewDeposit(meta(1, 4), negative).Apply(state), account.ErrInvalidInput)
	require.ErrorIs(t, txn.NewWithdrawal(meta(2, 4), negative).Apply(state), account.ErrInvalidInput)
}

func TestTransactionForAnotherAccountID(t *testing.T) {
	state := txn.NewState(5)
	negative, ok := amount.FromFloat64(-1.0)
	require.True(t, ok)

	require.ErrorIs(t, txn.NewDeposit(meta(1, 1234), negative).Apply(state), txn.ErrInvalidAccountID)
	require.ErrorIs(t, txn.NewWithdrawal(meta(2, 1234), negative).Apply(state), txn.ErrInvalidAccountID)
	require.ErrorIs(t, txn.NewDispute(meta(1, 1234)).Apply(state), txn.ErrInvalidAccountID)
	require.ErrorIs(t, txn.NewResolve(meta(1, 1234)).Apply(state), txn.ErrInvalidAccountID)
	require.ErrorIs(t, txn.NewChargeBack(meta(1, 1234)).Apply(state), txn.ErrInvalidAccountID)
}

// TestDisputeResolveRoundTrip is the round-trip law from the specification:
// dispute then resolve on an untouched deposit must restore the account to
// its pre-dispute balances and clear the disputed flag.
func TestDisputeResolveRoundTrip(t *testing.T) {
	state := txn.NewState(1)
	amt, ok := amount.FromFloat64(5.0)
	require.True(t, ok)

	require.NoError(t, txn.NewDeposit(meta(1, 1), amt).Apply(state))
	before := state.Account

	require.NoError(t, txn.NewDispute(meta(1, 1)).Apply(state))
	require.NoError(t, txn.NewResolve(meta(1, 1)).Apply(state))

	require.True(t, state.Account.Available.Equal(before.Available))
	require.True(t, state.Account.Held.Equal(before.Held))
	require.True(t, state.Account.Total.Equal(before.Total))
	require.False(t, state.History[1].Disputed)
}
