// Package record implements the wire-format conversion shared by every
// front-end adapter: parsing an incoming {type, client, tx, amount} record
// into a txn.Transaction, and formatting an account.Account for output.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/amount"
	"github.com/txproc/engine/txn"
)

// ErrUnknownType is returned when a record's Type does not match any known
// transaction kind.
var ErrUnknownType = errors.New("record: unknown transaction type")

// WireRecord is the serialization-facing shape of an incoming transaction:
// the JSON/CSV column names are exactly as written here.
type WireRecord struct {
	Type   string     `json:"type" csv:"type"`
	Client account.ID `json:"client" csv:"client"`
	TxID   txn.ID     `json:"tx" csv:"tx"`
	Amount *float64   `json:"amount,omitempty" csv:"amount"`
}

// WireAccount is the serialization-facing shape of an outgoing account
// record.
type WireAccount struct {
	Client    account.ID `json:"client" csv:"client"`
	Available string     `json:"available" csv:"available"`
	Held      string     `json:"held" csv:"held"`
	Total     string     `json:"total" csv:"total"`
	Locked    bool       `json:"locked" csv:"locked"`
}

// ParseRecord converts a WireRecord into a Transaction. It fails if the
// type is unrecognized, or if a deposit/withdrawal is missing an amount or
// carries one that cannot be represented as an Amount.
func ParseRecord(rec WireRecord) (txn.Transaction, error) {
	meta := txn.Metadata{TxID: rec.TxID, AccountID: rec.Client}

	switch strings.ToLower(strings.TrimSpace(rec.Type)) {
	case "deposit":
		amt, err := requireAmount(rec, txn.ErrDeposit)
		if err != nil {
			return txn.Transaction{}, err
		}
		return txn.NewDeposit(meta, amt), nil
	case "withdrawal":
		amt, err := requireAmount(rec, txn.ErrWithdrawal)
		if err != nil {
			return txn.Transaction{}, err
		}
		return txn.NewWithdrawal(meta, amt), nil
	case "dispute":
		return txn.NewDispute(meta), nil
	case "resolve":
		return txn.NewResolve(meta), nil
	case "chargeback":
		return txn.NewChargeBack(meta), nil
	default:
		return txn.Transaction{}, fmt.Errorf("%w: %q", ErrUnknownType, rec.Type)
	}
}

func requireAmount(rec WireRecord, missing error) (amount.Amount, error) {
	if rec.Amount == nil {
		return amount.Amount{}, missing
	}
	amt, ok := amount.FromFloat64(*rec.Amount)
	if !ok {
		return amount.Amount{}, missing
	}
	return amt, nil
}

// FormatAccount converts a into its wire representation, rounding monetary
// fields to 4 fractional digits.
func FormatAccount(a account.Account) WireAccount {
	return WireAccount{
		Client:    a.ID(),
		Available: a.Available.Round4().String(),
		Held:      a.Held.Round4().String(),
		Total:     a.Total.Round4().String(),
		Locked:    a.Locked,
	}
}
