package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the notifier.
type Metrics struct {
	// Events handled by type: "deposit", "withdrawal"
	EventsHandled *prometheus.CounterVec

	// Redelivered events acknowledged without a notification
	EventsDuplicate prometheus.Counter

	// Amount moved by type, in currency units
	AmountMoved *prometheus.CounterVec

	// Accounts reported in the last summary
	SummaryAccounts prometheus.Gauge
}

// New registers the notifier metrics on reg. Pass prometheus.DefaultRegisterer
// to expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsHandled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "valterbank_notifier_events_total",
			Help: "Transaction events turned into notifications by type",
		}, []string{"type"}),

		EventsDuplicate: f.NewCounter(prometheus.CounterOpts{
			Name: "valterbank_notifier_duplicate_events_total",
			Help: "Redelivered transaction events skipped",
		}),

		AmountMoved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "valterbank_notifier_amount_total",
			Help: "Sum of notified transaction amounts by type",
		}, []string{"type"}),

		SummaryAccounts: f.NewGauge(prometheus.GaugeOpts{
			Name: "valterbank_notifier_summary_accounts",
			Help: "Accounts with activity in the last summary window",
		}),
	}
}

// IncrementEvent records a handled event and its amount.
func (m *Metrics) IncrementEvent(typ string, amount float64) {
	if m != nil {
		m.EventsHandled.WithLabelValues(typ).Inc()
		m.AmountMoved.WithLabelValues(typ).Add(amount)
	}
}

// IncrementDuplicate records a skipped redelivery.
func (m *Metrics) IncrementDuplicate() {
	if m != nil {
		m.EventsDuplicate.Inc()
	}
}

// SetSummaryAccounts records the size of the last summary.
func (m *Metrics) SetSummaryAccounts(n int) {
	if m != nil {
		m.SummaryAccounts.Set(float64(n))
	}
}
