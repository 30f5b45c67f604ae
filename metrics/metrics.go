package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ciba",
			Name:      "booking_created_total",
			Help:      "Count of clinic bookings created.",
		},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ciba",
			Name:      "booking_rejected_total",
			Help:      "Count of rejected booking attempts by reason.",
		},
		[]string{"reason"},
	)

	notifyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ciba",
			Name:      "notify_failures_total",
			Help:      "Count of failed booking notifications by channel.",
		},
		[]string{"channel"},
	)

	newsletterSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ciba",
			Name:      "newsletter_sent_total",
			Help:      "Count of newsletter deliveries by status.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingRejected, notifyFailures, newsletterSent)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingRejected(reason string) {
	bookingRejected.WithLabelValues(reason).Inc()
}

func IncNotifyFailure(channel string) {
	notifyFailures.WithLabelValues(channel).Inc()
}

func IncNewsletterSent(status string) {
	newsletterSent.WithLabelValues(status).Inc()
}
