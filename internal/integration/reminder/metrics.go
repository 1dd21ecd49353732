package reminder

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sweep outcomes.
const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeSkipped   = "skipped"
)

// Dispatch results.
const (
	dispatchSent      = "sent"
	dispatchFailed    = "failed"
	dispatchNoAddress = "no_address"
)

// Metrics holds the scheduler's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	sweeps   *prometheus.CounterVec
	dispatch *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		sweeps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_sweeps_total",
			Help: "Reminder sweeps by outcome.",
		}, []string{"outcome"}),
		dispatch: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_dispatch_total",
			Help: "Per-resident reminder dispatches by result.",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_sweep_duration_seconds",
			Help:    "Wall time of completed reminder sweeps.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
}

func (m *Metrics) sweep(outcome string) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues(outcome).Inc()
}

func (m *Metrics) dispatched(result string) {
	if m == nil {
		return
	}
	m.dispatch.WithLabelValues(result).Inc()
}

func (m *Metrics) observe(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
