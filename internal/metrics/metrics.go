package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewTxRetriesTotal returns a Prometheus counter for transactions rerun after a deadlock or serialization failure
func NewTxRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tx_retries_total",
		Help: "Total number of transactions retried after a deadlock or serialization failure",
	})
}

// NewOpenAssignments returns a gauge for assignments still looking for a rider
func NewOpenAssignments() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_open_assignments",
		Help: "Number of delivery assignments still looking for a rider",
	})
}

// NewNotificationsDroppedTotal returns a counter of notifications a sink could not deliver
func NewNotificationsDroppedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dropped_total",
		Help: "Total number of notifications dropped by a sink",
	}, []string{"sink"})
}
