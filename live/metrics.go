package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts overlay recomputes.
type Metrics struct {
	Recomputes       prometheus.Counter
	Regions          prometheus.Counter
	DecorationErrors prometheus.Counter
	RecomputeSeconds prometheus.Histogram
}

// NewMetrics creates the overlay metrics and registers them on reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Recomputes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "statblock",
			Name:      "recomputes_total",
			Help:      "Total full recomputes of the decoration overlay",
		}),
		Regions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "statblock",
			Name:      "regions_total",
			Help:      "Total stat block regions extracted across recomputes",
		}),
		DecorationErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "statblock",
			Name:      "decoration_errors_total",
			Help:      "Total decorations skipped because their range was invalid",
		}),
		RecomputeSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statblock",
			Name:      "recompute_seconds",
			Help:      "Time to extract and decorate every region of a document",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}
