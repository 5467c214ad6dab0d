package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	appointmentCommits *prometheus.CounterVec
	slotCacheLookups   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: labels,
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		appointmentCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointment_commits_total",
			Help:        "Appointment commit attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		slotCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "slot_cache_lookups_total",
			Help:        "Slot cache lookups by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.appointmentCommits,
		m.slotCacheLookups,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncInFlight увеличивает счетчик запросов в обработке
func (m *Metrics) IncInFlight() {
	if m == nil {
		return
	}
	m.httpRequestsInFlight.Inc()
}

// DecInFlight уменьшает счетчик запросов в обработке
func (m *Metrics) DecInFlight() {
	if m == nil {
		return
	}
	m.httpRequestsInFlight.Dec()
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// RecordAppointmentCommit фиксирует результат попытки записи (created, conflict, rejected, error)
func (m *Metrics) RecordAppointmentCommit(outcome string) {
	if m == nil {
		return
	}
	m.appointmentCommits.WithLabelValues(outcome).Inc()
}

// RecordSlotCacheLookup фиксирует попадание или промах кэша слотов
func (m *Metrics) RecordSlotCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.slotCacheLookups.WithLabelValues(result).Inc()
}
