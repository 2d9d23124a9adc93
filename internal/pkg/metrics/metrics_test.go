package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceDecision(t *testing.T) {
	m := New()

	m.AttendanceDecision("mark", "accepted", "")
	m.AttendanceDecision("mark", "rejected", "DUPLICATE_FOR_DATE")
	m.AttendanceDecision("mark", "rejected", "DUPLICATE_FOR_DATE")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attendanceDecisions.WithLabelValues("mark", "accepted", "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attendanceDecisions.WithLabelValues("mark", "rejected", "DUPLICATE_FOR_DATE")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AttendanceDecision("delete", "forbidden", "")
		m.SettingsCache("hit")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.SettingsCache("miss")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `interntrack_settings_cache_requests_total{result="miss"} 1`)
}
