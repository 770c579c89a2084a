package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementEvent("deposit", 100)
	m.IncrementEvent("deposit", 0.5)
	m.IncrementEvent("withdrawal", 40)
	m.IncrementDuplicate()
	m.SetSummaryAccounts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsHandled.WithLabelValues("deposit")))
	assert.Equal(t, 100.5, testutil.ToFloat64(m.AmountMoved.WithLabelValues("deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsHandled.WithLabelValues("withdrawal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDuplicate))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SummaryAccounts))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementEvent("deposit", 1)
		m.IncrementDuplicate()
		m.SetSummaryAccounts(1)
	})
}
