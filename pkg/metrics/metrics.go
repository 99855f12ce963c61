// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	ScheduleConflicts         *prometheus.CounterVec
	ScheduleIntegrityWarnings prometheus.Counter
	StaleDraftsReleased       prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := namespace(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency by operation.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_query_errors_total",
			Help:      "Database query errors by operation.",
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open database connections.",
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Database connections currently in use.",
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Idle database connections.",
		}),
		ScheduleConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "schedule_conflicts_total",
			Help:      "Booking conflicts detected, by the operation that detected them.",
		}, []string{"source"}),
		ScheduleIntegrityWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "schedule_integrity_warnings_total",
			Help:      "Slots claimed by two active bookings of the same resource.",
		}),
		StaleDraftsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "stale_drafts_released_total",
			Help:      "Draft bookings cancelled by the cleanup job.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.ScheduleConflicts,
		m.ScheduleIntegrityWarnings,
		m.StaleDraftsReleased,
	)

	return m
}

// RecordConflicts учитывает найденные конфликты бронирования
func (m *Metrics) RecordConflicts(source string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.ScheduleConflicts.WithLabelValues(source).Add(float64(count))
}

// RecordIntegrityWarnings учитывает слоты, занятые двумя бронированиями одного ресурса
func (m *Metrics) RecordIntegrityWarnings(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.ScheduleIntegrityWarnings.Add(float64(count))
}

// RecordStaleDrafts учитывает черновики, отмененные фоновой задачей
func (m *Metrics) RecordStaleDrafts(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.StaleDraftsReleased.Add(float64(count))
}

func namespace(serviceName string) string {
	ns := strings.ToLower(serviceName)
	return strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(ns)
}
