package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Checkouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tourism_checkouts_total",
			Help: "Number of checkout notifications by payment method.",
		},
		[]string{"payment_method"},
	)
	CheckoutRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourism_checkout_revenue_total",
		Help: "Sum of checked out cart totals including tax.",
	})
	RejectedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourism_rejected_events_total",
		Help: "Number of broker messages that could not be decoded.",
	})
)
