package treesearch

import "github.com/prometheus/client_golang/prometheus"

// PrometheusReporter mirrors a plain in-memory Reporter but additionally
// pushes counters/gauges to a prometheus.Registerer, so a long-running
// driver can expose search progress to a scrape endpoint. It is opt-in:
// the core algorithms only ever depend on the Reporter interface, never on
// this type directly.
type PrometheusReporter[N any] struct {
	// Inner, if set, also receives every event (composing with another
	// reporter, e.g. a LogReporter).
	Inner Reporter[N]

	nodesGenerated prometheus.Counter
	nodesProcessed prometheus.Counter
	newBestTotal   prometheus.Counter
	queueSize      prometheus.Gauge

	// lastGenerated/lastProcessed are the cumulative totals already
	// folded into the prometheus counters, since prometheus.Counter only
	// supports Add/Inc (no "set to absolute value"), while Output.Counters
	// is always an absolute snapshot.
	lastGenerated int64
	lastProcessed int64
}

// NewPrometheusReporter registers its metrics against reg (commonly
// prometheus.DefaultRegisterer) under the "treesearch" namespace and the
// given algorithm label, which is included in each metric's constant label
// set so multiple algorithm runs in the same process stay distinguishable.
func NewPrometheusReporter[N any](reg prometheus.Registerer, algorithm string) *PrometheusReporter[N] {
	labels := prometheus.Labels{"algorithm": algorithm}
	r := &PrometheusReporter[N]{
		nodesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "treesearch",
			Name:        "nodes_generated_total",
			Help:        "Total number of candidate nodes generated by a search run.",
			ConstLabels: labels,
		}),
		nodesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "treesearch",
			Name:        "nodes_processed_total",
			Help:        "Total number of nodes popped from an open set and examined.",
			ConstLabels: labels,
		}),
		newBestTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "treesearch",
			Name:        "new_best_total",
			Help:        "Total number of strict improvements to the solution pool's best.",
			ConstLabels: labels,
		}),
		queueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "treesearch",
			Name:        "max_queue_size",
			Help:        "Largest open-set size observed so far this run.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(r.nodesGenerated, r.nodesProcessed, r.newBestTotal, r.queueSize)
	return r
}

// NewBest implements Reporter.
func (r *PrometheusReporter[N]) NewBest(out Output[N]) {
	r.newBestTotal.Inc()
	r.sync(out)
	if r.Inner != nil {
		r.Inner.NewBest(out)
	}
}

// Finished implements Reporter.
func (r *PrometheusReporter[N]) Finished(out Output[N]) {
	r.sync(out)
	if r.Inner != nil {
		r.Inner.Finished(out)
	}
}

func (r *PrometheusReporter[N]) sync(out Output[N]) {
	if delta := out.Counters.NodesGenerated - r.lastGenerated; delta > 0 {
		r.nodesGenerated.Add(float64(delta))
		r.lastGenerated = out.Counters.NodesGenerated
	}
	if delta := out.Counters.NodesProcessed - r.lastProcessed; delta > 0 {
		r.nodesProcessed.Add(float64(delta))
		r.lastProcessed = out.Counters.NodesProcessed
	}
	r.queueSize.Set(float64(out.Counters.MaxQueueSize))
}
