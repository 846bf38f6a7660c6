package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SafetyChecks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tourism_safety_checks_total",
		Help: "Number of location safety checks by assessed risk level.",
	},
	[]string{"risk_level"},
)
