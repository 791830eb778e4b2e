// Package metrics exposes Prometheus metrics for an ontology: mutations by
// axiom kind, cache loads and the object factory hit rate. All methods are
// safe on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one ontology.
type Metrics struct {
	axiomsAdded       *prometheus.CounterVec
	axiomsRemoved     *prometheus.CounterVec
	axiomsRejected    *prometheus.CounterVec
	statementsSkipped *prometheus.CounterVec
	cacheLoads        prometheus.Counter
	cacheClears       prometheus.Counter
	cachedAxioms      prometheus.Gauge
	loadLatency       prometheus.Histogram
	factoryLookups    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. The ontology
// label distinguishes several ontologies on one registry. A nil reg returns
// nil.
func New(reg prometheus.Registerer, ontology string) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	labels := prometheus.Labels{"ontology": ontology}

	m := &Metrics{
		axiomsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "owl_axioms_added_total",
			Help:        "Axioms committed to the graph, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		axiomsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "owl_axioms_removed_total",
			Help:        "Axioms removed from the graph, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		axiomsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "owl_axioms_rejected_total",
			Help:        "Axiom additions rejected and rolled back, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		statementsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "owl_statements_skipped_total",
			Help:        "Statements that did not decode to an axiom, by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		cacheLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "owl_cache_loads_total",
			Help:        "Full axiom cache loads from the graph",
			ConstLabels: labels,
		}),
		cacheClears: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "owl_cache_clears_total",
			Help:        "Cache generation bumps",
			ConstLabels: labels,
		}),
		cachedAxioms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "owl_cached_axioms",
			Help:        "Axioms currently held by the cache",
			ConstLabels: labels,
		}),
		loadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "owl_cache_load_seconds",
			Help:        "Latency of full axiom cache loads",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}),
		factoryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "owl_factory_lookups_total",
			Help:        "Object factory cache lookups, by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		m.axiomsAdded, m.axiomsRemoved, m.axiomsRejected, m.statementsSkipped,
		m.cacheLoads, m.cacheClears, m.cachedAxioms, m.loadLatency, m.factoryLookups,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) AxiomAdded(kind string) {
	if m != nil {
		m.axiomsAdded.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) AxiomRemoved(kind string) {
	if m != nil {
		m.axiomsRemoved.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) AxiomRejected(kind string) {
	if m != nil {
		m.axiomsRejected.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) StatementSkipped(kind string) {
	if m != nil {
		m.statementsSkipped.WithLabelValues(kind).Inc()
	}
}

// CacheLoaded records a full load of n axioms taking seconds.
func (m *Metrics) CacheLoaded(n int, seconds float64) {
	if m != nil {
		m.cacheLoads.Inc()
		m.cachedAxioms.Set(float64(n))
		m.loadLatency.Observe(seconds)
	}
}

func (m *Metrics) CacheCleared() {
	if m != nil {
		m.cacheClears.Inc()
	}
}

// CachedAxioms sets the cache size gauge.
func (m *Metrics) CachedAxioms(n int) {
	if m != nil {
		m.cachedAxioms.Set(float64(n))
	}
}

// FactoryLookup counts an object factory cache hit or miss. It matches the
// factory observer signature.
func (m *Metrics) FactoryLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.factoryLookups.WithLabelValues("hit").Inc()
	} else {
		m.factoryLookups.WithLabelValues("miss").Inc()
	}
}
