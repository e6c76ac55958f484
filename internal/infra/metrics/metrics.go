package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "cardshop"

// Recorder holds the checkout core's collectors. Each instance registers on
// its own registry so tests can build as many as they like.
type Recorder struct {
	registry *prometheus.Registry

	checkouts     *prometheus.CounterVec
	paymentEvents *prometheus.CounterVec
	orderChanges  *prometheus.CounterVec
	sweeps        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		paymentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_events_total",
			Help:      "Payment provider events by type and outcome.",
		}, []string{"type", "outcome"}),
		orderChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status.",
		}, []string{"to"}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_rows_total",
			Help:      "Rows touched by background maintenance tasks.",
		}, []string{"task"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_relayed_total",
			Help:      "Outbox notifications by topic and result.",
		}, []string{"topic", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.checkouts,
		r.paymentEvents,
		r.orderChanges,
		r.sweeps,
		r.notifications,
		r.httpDuration,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) CheckoutFinished(outcome string) {
	r.checkouts.WithLabelValues(outcome).Inc()
}

func (r *Recorder) PaymentEventHandled(eventType, outcome string) {
	r.paymentEvents.WithLabelValues(eventType, outcome).Inc()
}

func (r *Recorder) OrderTransitioned(to string) {
	r.orderChanges.WithLabelValues(to).Inc()
}

func (r *Recorder) MaintenanceRows(task string, n int64) {
	if n <= 0 {
		return
	}
	r.sweeps.WithLabelValues(task).Add(float64(n))
}

func (r *Recorder) NotificationRelayed(topic string, ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	r.notifications.WithLabelValues(topic, result).Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, seconds float64) {
	r.httpDuration.WithLabelValues(method, route, statusClass(status)).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
