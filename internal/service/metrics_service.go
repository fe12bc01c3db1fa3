package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	bookingsCreated prometheus.Counter
	submissions     prometheus.Counter
	payments        *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	remindersSent   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total bookings created",
	})

	submissions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submissions_created_total",
		Help: "Total replay submissions received",
	})

	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_total",
		Help: "Payment state transitions by outcome",
	}, []string{"status"})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Outbound chat notifications by result",
	}, []string{"result"})

	remindersSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Total session reminders dispatched",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookingsCreated, submissions, payments, notifications, remindersSent, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		bookingsCreated: bookingsCreated,
		submissions:     submissions,
		payments:        payments,
		notifications:   notifications,
		remindersSent:   remindersSent,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveBookingCreated increments the booking counter.
func (m *MetricsService) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

// ObserveSubmissionCreated increments the submission counter.
func (m *MetricsService) ObserveSubmissionCreated() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

// ObservePayment records a payment state transition.
func (m *MetricsService) ObservePayment(status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status).Inc()
}

// ObserveNotification records the outcome of an outbound notification.
func (m *MetricsService) ObserveNotification(sent bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !sent {
		result = "failed"
	}
	m.notifications.WithLabelValues(result).Inc()
}

// ObserveReminderSent increments the reminder counter.
func (m *MetricsService) ObserveReminderSent() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}
