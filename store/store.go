// Package store implements a lock-striped concurrent map from account id to
// account state, standing in for the reference implementation's DashMap.
//
// The Listener inserts new entries (locking only the owning shard); each
// Handler looks up its own entry with Get for every transaction, taking a
// brief read lock on that entry's shard only, and then mutates the returned
// *txn.State without holding any store lock. The full-table Snapshot, used
// only by the snapshot protocol, walks shards in order under a brief read
// lock each.
package store

import (
	"sync"

	"github.com/txproc/engine/account"
	"github.com/txproc/engine/txn"
)

// DefaultShardCount is used when a Store is built with New(0).
const DefaultShardCount = 32

type shard struct {
	mu       sync.RWMutex
	accounts map[account.ID]*txn.State
}

// Store is a fixed-shard concurrent map of account.ID to *txn.State.
type Store struct {
	shards []*shard
}

// New returns a Store with shardCount shards. shardCount <= 0 selects
// DefaultShardCount.
func New(shardCount int) *Store {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{accounts: make(map[account.ID]*txn.State)}
	}
	return &Store{shards: shards}
}

func (s *Store) shardFor(id account.ID) *shard {
	return s.shards[int(id)%len(s.shards)]
}

// GetOrCreate returns the existing state for id, or lazily creates a
// zero-balance one. The second return value reports whether an entry was
// created by this call.
func (s *Store) GetOrCreate(id account.ID) (state *txn.State, created bool) {
	sh := s.shardFor(id)

	sh.mu.RLock()
	if st, ok := sh.accounts[id]; ok {
		sh.mu.RUnlock()
		return st, false
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if st, ok := sh.accounts[id]; ok {
		return st, false
	}
	st := txn.NewState(id)
	sh.accounts[id] = st
	return st, true
}

// Get returns the state for id, if it exists.
func (s *Store) Get(id account.ID) (*txn.State, bool) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	st, ok := sh.accounts[id]
	return st, ok
}

// Snapshot returns a copy of every tracked Account, in no particular order.
func (s *Store) Snapshot() []account.Account {
	accounts := make([]account.Account, 0)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, st := range sh.accounts {
			accounts = append(accounts, st.Account)
		}
		sh.mu.RUnlock()
	}
	return accounts
}
