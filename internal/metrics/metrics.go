package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UpdatesTotal       *prometheus.CounterVec
	HandlerDuration    *prometheus.HistogramVec
	HandlerErrors      *prometheus.CounterVec
	FilesDelivered     prometheus.Counter
	SubscriptionDenied prometheus.Counter
	BroadcastSends     *prometheus.CounterVec
	RateLimited        prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		UpdatesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "faylbot_updates_total",
			Help: "Incoming updates by type.",
		}, []string{"type"}),
		HandlerDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "faylbot_handler_duration_seconds",
			Help:    "Update handling duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		HandlerErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "faylbot_handler_errors_total",
			Help: "Handler errors by type.",
		}, []string{"type"}),
		FilesDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "faylbot_files_delivered_total",
			Help: "Files successfully delivered by code.",
		}),
		SubscriptionDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "faylbot_subscription_denied_total",
			Help: "Requests denied by the subscription gate.",
		}),
		BroadcastSends: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "faylbot_broadcast_sends_total",
			Help: "Broadcast send outcomes.",
		}, []string{"outcome"}),
		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "faylbot_rate_limited_total",
			Help: "Messages dropped by the per-user rate limit.",
		}),
	}
}
