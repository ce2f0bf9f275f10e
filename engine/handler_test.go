package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/txproc/engine/record"
	"github.com/txproc/engine/store"
)

func newTestHandler(t *testing.T, st *store.Store, id uint16) *handler {
	t.Helper()
	return newHandler(st, id, 8, zap.NewNop(), nil)
}

func ptr(f float64) *float64 { return &f }

func TestHandlerDepositThenWithdraw(t *testing.T) {
	st := store.New(1)
	st.GetOrCreate(1)
	h := newTestHandler(t, st, 1)

	h.execute(record.WireRecord{Type: "deposit", Client: 1, TxID: 1, Amount: ptr(5.0)})
	h.execute(record.WireRecord{Type: "withdrawal", Client: 1, TxID: 2, Amount: ptr(3.0)})

	state, ok := st.Get(1)
	require.True(t, ok)
	assert.Equal(t, "2", state.Account.Available.String())
	assert.Equal(t, "2", state.Account.Total.String())
}

func TestHandlerRejectsForeignAccount(t *testing.T) {
	st := store.New(1)
	st.GetOrCreate(1)
	h := newTestHandler(t, st, 1)

	h.execute(record.WireRecord{Type: "deposit", Client: 2, TxID: 1, Amount: ptr(5.0)})

	state, ok := st.Get(1)
	require.True(t, ok)
	assert.Equal(t, "0", state.Account.Available.String())
}

func TestHandlerRejectsInvalidRecord(t *testing.T) {
	st := store.New(1)
	st.GetOrCreate(1)
	h := newTestHandler(t, st, 1)

	h.execute(record.WireRecord{Type: "deposit", Client: 1, TxID: 1})

	state, ok := st.Get(1)
	require.True(t, ok)
	assert.Len(t, state.History, 0)
}

func TestHandlerMissingOwnState(t *testing.T) {
	st := store.New(1)
	h := newTestHandler(t, st, 1)

	h.execute(record.WireRecord{Type: "deposit", Client: 1, TxID: 1, Amount: ptr(5.0)})

	_, ok := st.Get(1)
	assert.False(t, ok)
}

func TestHandlerRunDrainsUntilCommit(t *testing.T) {
	st := store.New(1)
	st.GetOrCreate(7)
	h := newTestHandler(t, st, 7)

	done := make(chan struct{})
	go func() {
		h.run()
		close(done)
	}()

	h.inbox <- executeTransactionCmd{rec: record.WireRecord{Type: "deposit", Client: 7, TxID: 1, Amount: ptr(10.0)}}
	reply := make(chan error, 1)
	h.inbox <- commitCmd{reply: reply}
	require.NoError(t, <-reply)
	<-done

	state, ok := st.Get(7)
	require.True(t, ok)
	assert.Equal(t, "10", state.Account.Available.String())
}
