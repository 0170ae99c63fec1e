package usecase

import "github.com/prometheus/client_golang/prometheus"

const (
	resultApplied  = "applied"
	resultNoop     = "noop"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transitions_total",
			Help: "Ledger transitions by operation and result",
		},
		[]string{"operation", "result"},
	)

	LockWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledger_lock_wait_seconds",
			Help:    "Time spent acquiring the ledger writer lock",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(TransitionsTotal, LockWaitSeconds)
}
