package engine

import (
	"go.uber.org/zap"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/record"
	"github.com/txproc/engine/store"
)

// listener is the dispatcher: it owns the shared account store and the map
// from account id to worker inbox, spawning Handlers lazily and orchestrating
// the commit/snapshot protocol. It processes its own inbound channel
// strictly sequentially, which is what gives GetAccountsState its
// read-your-writes guarantee: every ExecuteTransaction enqueued before a
// snapshot request has already been forwarded to its Handler by the time the
// snapshot request is dequeued.
type listener struct {
	cfg     Config
	store   *store.Store
	workers map[account.ID]chan handlerCommand
	rx      chan listenerCommand
	logger  *zap.Logger
	metrics *Metrics
}

func newListener(cfg Config) *listener {
	return &listener{
		cfg:     cfg,
		store:   store.New(cfg.ShardCount),
		workers: make(map[account.ID]chan handlerCommand),
		rx:      make(chan listenerCommand, cfg.InboxCapacity),
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

func (l *listener) run() {
	for cmd := range l.rx {
		switch c := cmd.(type) {
		case executeTransactionListenerCmd:
			l.handleExecute(c.rec)
		case getAccountsStateCmd:
			l.handleSnapshot(c.reply)
		}
	}

	// The inbound channel is closed: close every remaining worker inbox so
	// each Handler drains what it already holds and exits.
	for _, inbox := range l.workers {
		close(inbox)
	}
}

func (l *listener) handleExecute(rec record.WireRecord) {
	inbox, ok := l.workers[rec.Client]
	if !ok {
		l.spawnHandler(rec.Client)
		inbox = l.workers[rec.Client]
	}

	// A direct, unbuffered-beyond-capacity send: this is the engine's
	// backpressure mechanism. If the worker's inbox is full, the Listener
	// blocks here until it drains, naturally throttling the producer.
	inbox <- executeTransactionCmd{rec: rec}
}

func (l *listener) spawnHandler(id account.ID) {
	_, created := l.store.GetOrCreate(id)
	if created {
		l.metrics.observeAccountCreated()
	}

	h := newHandler(l.store, id, l.cfg.InboxCapacity, l.logger, l.metrics)
	l.workers[id] = h.inbox

	l.logger.Debug("spawning handler", zap.Uint16("account_id", id))
	l.metrics.observeWorkerSpawned()
	go func() {
		h.run()
		l.metrics.observeWorkerExited()
	}()
}

func (l *listener) handleSnapshot(reply chan<- []account.Account) {
	l.logger.Debug("snapshot requested", zap.Int("workers", len(l.workers)))

	for id, inbox := range l.workers {
		commitReply := make(chan error, 1)
		inbox <- commitCmd{reply: commitReply}
		if err := <-commitReply; err != nil {
			l.logger.Error("handler did not commit cleanly", zap.Uint16("account_id", id), zap.Error(err))
		}
	}

	l.workers = make(map[account.ID]chan handlerCommand)
	reply <- l.store.Snapshot()
}
