package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	SessionSteps      *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
	BookingsCompleted *prometheus.CounterVec
	ExternalFailures  *prometheus.CounterVec
	RemindersSent     *prometheus.CounterVec
}

// New регистрирует коллекторы в отдельном реестре
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность HTTP запросов",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Длительность запросов к БД",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Открытые соединения пула",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Занятые соединения пула",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Свободные соединения пула",
		}, []string{"service"}),
		SessionSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_session_steps_total",
			Help:        "Обработанные шаги диалога записи",
			ConstLabels: labels,
		}, []string{"step", "result"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_sessions_active",
			Help:        "Количество незавершённых диалогов",
			ConstLabels: labels,
		}),
		BookingsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_completed_total",
			Help:        "Завершённые заявки по типу услуги",
			ConstLabels: labels,
		}, []string{"service_type"}),
		ExternalFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_call_failures_total",
			Help:        "Ошибки внешних вызовов",
			ConstLabels: labels,
		}, []string{"operation"}),
		RemindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_sent_total",
			Help:        "Отправленные напоминания",
			ConstLabels: labels,
		}, []string{"kind"}),
	}

	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.SessionSteps,
		m.ActiveSessions,
		m.BookingsCompleted,
		m.ExternalFailures,
		m.RemindersSent,
	)

	return m
}

// Handler отдаёт метрики реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Recorder обёртка, безопасная для nil *Metrics (метрики выключены)
type Recorder struct {
	m *Metrics
}

func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

func (r *Recorder) SessionStep(step, result string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.SessionSteps.WithLabelValues(step, result).Inc()
}

func (r *Recorder) ActiveSessions(n int) {
	if r == nil || r.m == nil {
		return
	}
	r.m.ActiveSessions.Set(float64(n))
}

func (r *Recorder) BookingCompleted(serviceType string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingsCompleted.WithLabelValues(serviceType).Inc()
}

func (r *Recorder) ExternalFailure(operation string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.ExternalFailures.WithLabelValues(operation).Inc()
}

func (r *Recorder) ReminderSent(kind string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.RemindersSent.WithLabelValues(kind).Inc()
}
