package model

import (
	"log/slog"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/annotations"
	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/metrics"
)

type options struct {
	id       string
	cfg      ontology.Config
	handler  annotations.Handler
	metrics  *metrics.Metrics
	logger   *slog.Logger
	registry *axioms.Registry
}

// Option configures an Ontology.
type Option func(*options)

// WithID names the ontology. New writes the owl:Ontology header for it.
func WithID(iri string) Option {
	return func(o *options) { o.id = iri }
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg ontology.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithHandler receives every event the ontology emits.
func WithHandler(h annotations.Handler) Option {
	return func(o *options) { o.handler = h }
}

// WithMetrics records mutations and cache activity in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger forwards events to logger through annotations.SlogHandler.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry replaces the default translator registry.
func WithRegistry(r *axioms.Registry) Option {
	return func(o *options) { o.registry = r }
}
