package converter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	conversions *prometheus.CounterVec
}

var workflowMetrics = newMetrics()

func newMetrics() *metrics {
	return &metrics{
		conversions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "currency_converter",
				Subsystem: "",
				Name:      "conversions_total",
				Help:      "total quantity of conversions by outcome",
			}, []string{"provider", "outcome"}),
	}
}
