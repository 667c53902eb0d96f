package guard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_guard_decisions_total",
		Help: "Total number of route guard decisions",
	},
	[]string{"route", "decision"},
)

func recordDecision(route string, d Decision) {
	decisionsTotal.WithLabelValues(route, d.String()).Inc()
}
