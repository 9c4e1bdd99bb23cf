package relay

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func NewMetricsRegistry() *MetricsRegistry {
	registry := &MetricsRegistry{
		Registry: prometheus.NewRegistry(),
		eventsCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_relay_events_total",
				Help: "Number of received webhook events.",
			},
			[]string{"event", "outcome"},
		),
		deliveriesCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_relay_deliveries_total",
				Help: "Number of outbound deliveries.",
			},
			[]string{"target", "succeeded"},
		),
	}
	registry.MustRegister(registry.eventsCounter)
	registry.MustRegister(registry.deliveriesCounter)
	return registry
}

type MetricsRegistry struct {
	*prometheus.Registry
	eventsCounter     *prometheus.CounterVec
	deliveriesCounter *prometheus.CounterVec
}

// IncEventsCounter counts a received event. Unknown kinds share a single label value to keep cardinality bounded.
func (r *MetricsRegistry) IncEventsCounter(event string, outcome string) {
	r.eventsCounter.WithLabelValues(event, outcome).Inc()
}

func (r *MetricsRegistry) IncDeliveriesCounter(target string, succeeded bool) {
	r.deliveriesCounter.WithLabelValues(target, strconv.FormatBool(succeeded)).Inc()
}
