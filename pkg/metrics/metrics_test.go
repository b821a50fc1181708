package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "court-booking")

	m.IncReservationCreated("DEPOSIT")
	m.IncReservationCreated("DEPOSIT")
	m.AddHoldsExpired("HOLD", 3)
	m.AddHoldsExpired("HOLD", 0)
	m.IncCacheResult("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreated.WithLabelValues("DEPOSIT")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HoldsExpired.WithLabelValues("HOLD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservationCreated("FULL")
		m.AddHoldsExpired("PENDING", 1)
		m.IncCacheResult("miss")
	})
}
