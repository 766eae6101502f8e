package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Бизнес-метрики
	BookingsTotal             *prometheus.CounterVec
	RemindersSentTotal        *prometheus.CounterVec
	NotificationFailuresTotal *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by result (booked, slot_conflict, duplicate_active, rejected, error).",
			ConstLabels: constLabels,
		}, []string{"result"}),

		RemindersSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_sent_total",
			Help:        "Reminder dispatches by window (24h, 1h, 15m).",
			ConstLabels: constLabels,
		}, []string{"window"}),

		NotificationFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Failed notification deliveries by channel (email, sms).",
			ConstLabels: constLabels,
		}, []string{"channel"}),
	}
}
