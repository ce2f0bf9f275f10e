package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instrumentation optionally attached to a
// Ledger. A nil *Metrics is safe to call methods on - every method is a
// no-op when the receiver is nil, so callers that don't want metrics never
// need to special-case it.
type Metrics struct {
	transactionsProcessed prometheus.Counter
	transactionsRejected  *prometheus.CounterVec
	accountsTracked       prometheus.Gauge
	workersActive         prometheus.Gauge
}

// NewMetrics registers the ledger's counters and gauges with reg and returns
// a Metrics ready to pass to WithMetrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transactionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "txproc",
			Name:      "transactions_processed_total",
			Help:      "Transactions successfully applied to an account.",
		}),
		transactionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "txproc",
			Name:      "transactions_rejected_total",
			Help:      "Transactions rejected, labeled by error kind.",
		}, []string{"reason"}),
		accountsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "txproc",
			Name:      "accounts_tracked",
			Help:      "Distinct accounts observed so far in this run.",
		}),
		workersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "txproc",
			Name:      "workers_active",
			Help:      "Per-account worker goroutines currently running.",
		}),
	}
	reg.MustRegister(m.transactionsProcessed, m.transactionsRejected, m.accountsTracked, m.workersActive)
	return m
}

func (m *Metrics) observeApplied(err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.transactionsProcessed.Inc()
		return
	}
	m.transactionsRejected.WithLabelValues(errorReason(err)).Inc()
}

func (m *Metrics) observeAccountCreated() {
	if m == nil {
		return
	}
	m.accountsTracked.Inc()
}

func (m *Metrics) observeWorkerSpawned() {
	if m == nil {
		return
	}
	m.workersActive.Inc()
}

func (m *Metrics) observeWorkerExited() {
	if m == nil {
		return
	}
	m.workersActive.Dec()
}
