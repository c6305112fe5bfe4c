package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results.
const (
	ResultInvalid = "invalid"
	ResultStored  = "stored"
)

// Notification results.
const (
	ResultSent   = "sent"
	ResultFailed = "failed"
)

var (
	// Contact form metrics
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Total number of contact form submissions by result",
		},
		[]string{"result"},
	)

	// Notification metrics
	ContactNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_notifications_total",
			Help: "Total number of contact notification emails by result",
		},
		[]string{"result"},
	)

	ContactNotificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_contact_notification_duration_seconds",
			Help:    "Duration of contact notification delivery in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
