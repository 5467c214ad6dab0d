package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAppointmentCommit(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "barber-test")

	m.RecordAppointmentCommit("created")
	m.RecordAppointmentCommit("created")
	m.RecordAppointmentCommit("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentCommits.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.appointmentCommits.WithLabelValues("conflict")))
}

func TestObserveDBQueryCountsErrors(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "barber-test")

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("insert")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.IncInFlight()
		m.DecInFlight()
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0, 0)
		m.RecordAppointmentCommit("created")
		m.RecordSlotCacheLookup(true)
	})
}
