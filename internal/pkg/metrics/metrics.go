package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interntrack"

// Metrics owns the process registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	attendanceDecisions *prometheus.CounterVec
	settingsCache       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attendanceDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_decisions_total",
			Help:      "Attendance mutations by operation and outcome; reason is set for validation rejections.",
		}, []string{"operation", "outcome", "reason"}),
		settingsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_cache_requests_total",
			Help:      "Settings cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.attendanceDecisions,
		m.settingsCache,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AttendanceDecision counts one attendance mutation outcome.
func (m *Metrics) AttendanceDecision(operation, outcome, reason string) {
	if m == nil {
		return
	}
	m.attendanceDecisions.WithLabelValues(operation, outcome, reason).Inc()
}

// SettingsCache counts one cache lookup.
func (m *Metrics) SettingsCache(result string) {
	if m == nil {
		return
	}
	m.settingsCache.WithLabelValues(result).Inc()
}
