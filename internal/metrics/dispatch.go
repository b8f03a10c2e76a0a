package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch groups the assignment lifecycle metrics.
type Dispatch struct {
	created prometheus.Counter
	offered prometheus.Histogram
	accepts *prometheus.CounterVec
}

// NewDispatch creates the dispatch metrics. Call Register to expose them.
func NewDispatch() *Dispatch {
	return &Dispatch{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_assignments_created_total",
			Help: "Total number of delivery assignments created",
		}),
		offered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_candidates_offered",
			Help:    "Number of couriers offered a new assignment",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_accept_total",
			Help: "Accept attempts by result",
		}, []string{"result"}),
	}
}

// Register adds the collectors to reg.
func (d *Dispatch) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{d.created, d.offered, d.accepts} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// AssignmentCreated records a new assignment and the size of its candidate set.
func (d *Dispatch) AssignmentCreated(candidates int) {
	d.created.Inc()
	d.offered.Observe(float64(candidates))
}

// AcceptOutcome counts an accept attempt by result.
func (d *Dispatch) AcceptOutcome(outcome string) {
	d.accepts.WithLabelValues(outcome).Inc()
}
