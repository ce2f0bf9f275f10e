// Package engine wires the Amount/Account/Transaction domain types into a
// running, concurrent dispatch pipeline: a Listener that owns a dynamically
// growing fleet of per-account Handler goroutines, reachable through the
// Ledger facade's Submit/Snapshot/Close API.
package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/record"
)

// Ledger is the package's public entry point. It owns a running Listener
// goroutine and exposes the core API surface: Submit, Snapshot, Close.
type Ledger struct {
	cfg       Config
	logger    *zap.Logger
	listener  *listener
	closeOnce sync.Once
}

// NewLedger builds and starts a Ledger. With no Options, it uses
// DefaultConfig.
func NewLedger(opts ...Option) *Ledger {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	l := newListener(cfg)
	go l.run()

	return &Ledger{cfg: cfg, logger: cfg.Logger, listener: l}
}

// Submit enqueues rec for processing. It returns ctx.Err() if ctx is
// cancelled while waiting for inbox capacity; it does not return business-
// rule errors, which are adjudicated asynchronously once a record reaches
// its Handler (see Config for the logging/metrics path).
func (l *Ledger) Submit(ctx context.Context, rec record.WireRecord) error {
	select {
	case l.listener.rx <- executeTransactionListenerCmd{rec: rec}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot drains every in-flight transaction from every account worker and
// returns a globally consistent view of every account observed so far.
func (l *Ledger) Snapshot(ctx context.Context) ([]account.Account, error) {
	reply := make(chan []account.Account, 1)

	select {
	case l.listener.rx <- getAccountsStateCmd{reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case accounts := <-reply:
		return accounts, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting new commands. The Listener's run loop exits once its
// inbound channel drains, which drops every worker inbox and lets each
// Handler finish draining and exit. Close is idempotent.
func (l *Ledger) Close() {
	l.closeOnce.Do(func() {
		close(l.listener.rx)
	})
}
