// Command txproc is a thin CSV-in, CSV-out shell around the engine package:
// it reads transaction records from a file, drives a Ledger to completion,
// and writes the resulting account snapshot to stdout.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/engine"
	"github.com/txproc/engine/record"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "txproc <input.csv>",
		Short:         "Replay a CSV transaction file against the ledger engine and print account balances",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func run(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("txproc: opening input: %w", err)
	}
	defer f.Close()

	logger := zap.NewNop()
	ledger := engine.NewLedger(engine.WithLogger(logger))
	defer ledger.Close()

	ctx := context.Background()
	if err := submitAll(ctx, ledger, f); err != nil {
		return err
	}

	accounts, err := ledger.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("txproc: snapshot: %w", err)
	}
	return writeAccounts(out, accounts)
}

// submitAll streams every data row of the CSV at r through ledger.Submit, in
// file order. A row with a malformed client/tx/amount column is skipped; it
// never reaches the ledger, mirroring the reference implementation's
// tolerant CSV reader.
func submitAll(ctx context.Context, ledger *engine.Ledger, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("txproc: reading header: %w", err)
	}
	cols := columnIndex(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("txproc: reading row: %w", err)
		}

		rec, ok := parseRow(cols, row)
		if !ok {
			continue
		}
		if err := ledger.Submit(ctx, rec); err != nil {
			return fmt.Errorf("txproc: submit: %w", err)
		}
	}
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func parseRow(cols map[string]int, row []string) (record.WireRecord, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	client, err := strconv.ParseUint(field("client"), 10, 16)
	if err != nil {
		return record.WireRecord{}, false
	}
	tx, err := strconv.ParseUint(field("tx"), 10, 32)
	if err != nil {
		return record.WireRecord{}, false
	}

	rec := record.WireRecord{
		Type:   field("type"),
		Client: account.ID(client),
		TxID:   uint32(tx),
	}

	if amt := field("amount"); amt != "" {
		f, err := strconv.ParseFloat(amt, 64)
		if err != nil {
			return record.WireRecord{}, false
		}
		rec.Amount = &f
	}
	return rec, true
}

func writeAccounts(out io.Writer, accounts []account.Account) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, a := range accounts {
		wa := record.FormatAccount(a)
		if err := w.Write([]string{
			strconv.FormatUint(uint64(wa.Client), 10),
			wa.Available,
			wa.Held,
			wa.Total,
			strconv.FormatBool(wa.Locked),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
