package engine

import (
	"go.uber.org/zap"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/record"
	"github.com/txproc/engine/store"
)

// handler serially applies every transaction addressed to a single account.
// It is granted access to the shared store, but only ever reads or writes
// the single entry belonging to accountID; concurrent handlers touch
// disjoint entries, so no cross-account lock is required.
type handler struct {
	store     *store.Store
	accountID account.ID
	inbox     chan handlerCommand
	logger    *zap.Logger
	metrics   *Metrics
}

func newHandler(st *store.Store, id account.ID, capacity int, logger *zap.Logger, metrics *Metrics) *handler {
	return &handler{
		store:     st,
		accountID: id,
		inbox:     make(chan handlerCommand, capacity),
		logger:    logger.With(zap.Uint16("account_id", id)),
		metrics:   metrics,
	}
}

// run drains h.inbox until a commit is processed or the inbox is closed by
// the Listener. It never returns an error to its caller: a missing state
// entry for its own account id is logged and treated the same as any other
// dropped command. The Listener creates that entry before spawning the
// Handler, so the case does not arise in the engine's own use.
func (h *handler) run() {
	for cmd := range h.inbox {
		switch c := cmd.(type) {
		case executeTransactionCmd:
			h.execute(c.rec)
		case commitCmd:
			c.reply <- nil
			close(h.inbox)
		}
	}
}

func (h *handler) execute(rec record.WireRecord) {
	if rec.Client != h.accountID {
		h.logger.Error("received transaction for another account",
			zap.Uint16("record_client", rec.Client))
		return
	}

	tx, err := record.ParseRecord(rec)
	if err != nil {
		h.logger.Warn("invalid transaction record", zap.Error(err))
		return
	}

	state, ok := h.store.Get(h.accountID)
	if !ok {
		h.logger.Error("missing state entry for own account", zap.Error(ErrInvalidState))
		return
	}

	err = tx.Apply(state)
	h.metrics.observeApplied(err)
	if err != nil {
		h.logger.Warn("transaction rejected", zap.Stringer("transaction", tx), zap.Error(err))
		return
	}
	h.logger.Debug("transaction applied", zap.Stringer("transaction", tx))
}
