package engine

import (
	"go.uber.org/zap"

	"github.com/txproc/engine/store"
)

// Config governs the shape of a Ledger: how many shards its account store is
// split into, how deep each per-account worker's inbox is, and where it
// sends its logs and metrics.
type Config struct {
	// ShardCount is the number of lock stripes in the account store. Zero
	// selects store.DefaultShardCount.
	ShardCount int
	// InboxCapacity bounds every channel in the engine: the Listener's own
	// inbound command channel, and each Handler's per-account inbox. This is
	// the engine's flow-control mechanism, not an incidental buffer size -
	// keep it bounded.
	InboxCapacity int
	// Logger receives structured log output. A no-op logger is used if nil.
	Logger *zap.Logger
	// Metrics receives counters/gauges describing engine activity. Metrics
	// are skipped entirely if nil.
	Metrics *Metrics
}

// DefaultConfig returns the Config used when NewLedger is called with no
// Options: a 32-shard store and inboxes of capacity 32, matching the
// reference implementation's bounded mpsc channels.
func DefaultConfig() Config {
	return Config{
		ShardCount:    store.DefaultShardCount,
		InboxCapacity: 32,
	}
}

// Option overrides a field of Config when passed to NewLedger.
type Option func(*Config)

// WithShardCount overrides the account store's shard count.
func WithShardCount(n int) Option {
	return func(c *Config) { c.ShardCount = n }
}

// WithInboxCapacity overrides every channel's buffer capacity.
func WithInboxCapacity(n int) Option {
	return func(c *Config) { c.InboxCapacity = n }
}

// WithLogger overrides the logger used by the Listener and its Handlers.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMetrics attaches a Metrics instance to the ledger.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}
