// Package metrics Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер всех Prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Метрики базы данных
	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     *prometheus.GaugeVec
	DBConnsInUse    *prometheus.GaugeVec
	DBConnsIdle     *prometheus.GaugeVec

	// Бизнес-метрики жизненного цикла бронирований
	BookingTransitions *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		DBConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		DBConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		DBConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Total number of booking status transitions",
		}, []string{"service", "from", "to"}),
	}
}

// ObserveDBQuery записывает длительность выполнения запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
}

// ObserveHTTPRequest записывает метрики обработанного HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// SetDBConnStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBConnStats(open, inUse, idle int) {
	m.DBConnsOpen.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBConnsInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBConnsIdle.WithLabelValues(m.serviceName).Set(float64(idle))
}

// IncBookingTransition увеличивает счётчик переходов статуса бронирования.
// Nil-receiver безопасен: при выключенных метриках коллектор не создаётся
func (m *Metrics) IncBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(m.serviceName, from, to).Inc()
}
