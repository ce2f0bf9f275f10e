package txn

import (
	"github.com/txproc/engine/account"
)

// State is the full state tracked for a single client account: its current
// balances plus the history of deposits and withdrawals needed to adjudicate
// future disputes. State is created lazily on first observation of a
// transaction addressed to its account id, and is never deleted.
type State struct {
	Account account.Account
	History map[ID]Transaction
}

// NewState returns an empty State for id: a zero-balance, unlocked account
// and no transaction history.
func NewState(id account.ID) *State {
	return &State{
		Account: account.New(id),
		History: make(map[ID]Transaction),
	}
}
