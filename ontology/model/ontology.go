// Package model is the mutation coordinator over an RDF graph: it keeps the
// decoded axioms of the graph in a per-generation cache, writes new axioms
// through an undo log so a rejected addition leaves the graph untouched, and
// deletes only the triples no other axiom depends on.
package model

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/annotations"
	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/metrics"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// Ontology is the axiom view of a graph. It is not safe for concurrent use;
// see Concurrent.
type Ontology struct {
	g        graph.Graph
	id       string
	cfg      ontology.Config
	registry *axioms.Registry
	gen      *ontology.Generation
	factory  *objects.Factory
	events   *annotations.Collector
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cache    *axiomCache
}

// Stats summarises the ontology for reporting.
type Stats struct {
	ID            string
	Generation    uint64
	Axioms        int
	Triples       int
	ByKind        map[axioms.Kind]int
	Skipped       int
	FactoryHits   uint64
	FactoryMisses uint64
}

// New opens an ontology over g. With WithID the owl:Ontology header triple
// is written if missing; otherwise the ID is taken from an existing header.
func New(g graph.Graph, opts ...Option) (*Ontology, error) {
	o := options{cfg: ontology.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if o.registry == nil {
		o.registry = axioms.Default()
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	gen := ontology.NewGeneration()
	ont := &Ontology{
		g:        g,
		id:       o.id,
		cfg:      o.cfg,
		registry: o.registry,
		gen:      gen,
		events:   annotations.NewCollector(annotations.Multi(o.handler, annotations.SlogHandler(o.logger))),
		metrics:  o.metrics,
		logger:   logger,
	}
	ont.factory = objects.NewFactory(g, gen, o.cfg, objects.WithObserver(o.metrics.FactoryLookup))

	if err := ont.header(); err != nil {
		return nil, ontology.Wrap(err, "model", "New", "write header")
	}
	return ont, nil
}

func (o *Ontology) header() error {
	if o.id != "" {
		_, err := o.g.Add(ontology.T(ontology.IRI(o.id), vocab.Type, vocab.Ontology))
		return err
	}
	for t, err := range o.g.Find(ontology.Wildcard, vocab.Type, vocab.Ontology) {
		if err != nil {
			return err
		}
		if t.S.IsIRI() {
			o.id = t.S.Value
			return nil
		}
	}
	return nil
}

// ID returns the ontology IRI, or "" for an anonymous ontology.
func (o *Ontology) ID() string { return o.id }

// Graph returns the underlying graph.
func (o *Ontology) Graph() graph.Graph { return o.g }

// Config returns the active configuration.
func (o *Ontology) Config() ontology.Config { return o.cfg }

// Factory returns the object factory reading the graph.
func (o *Ontology) Factory() *objects.Factory { return o.factory }

// Generation returns the current cache generation.
func (o *Ontology) Generation() uint64 { return o.gen.Current() }

// loaded reports whether the cache is valid for the current generation.
func (o *Ontology) loaded() bool {
	return o.cache != nil && o.cache.gen == o.gen.Current()
}

func (o *Ontology) ensureLoaded() error {
	if o.loaded() {
		return nil
	}
	return o.load()
}

// load decodes every statement of every registered kind. Equal axioms from
// distinct statements merge into one entry.
func (o *Ontology) load() error {
	start := time.Now()
	c := newAxiomCache(o.gen.Current())
	for _, k := range o.registry.Kinds() {
		tr, _ := o.registry.Lookup(k)
		for st, err := range tr.Statements(o.g) {
			if err != nil {
				o.backendError("load", err)
				return ontology.Wrap(err, "model", "load", "scan "+k.String())
			}
			d, err := tr.ToAxiom(st, o.factory, o.cfg)
			if err != nil {
				if o.cfg.IgnoreReadErrors && ontology.IsRecoverable(err) {
					o.skip(c, k, st, err)
					continue
				}
				return ontology.Wrap(err, "model", "load", "decode "+st.String())
			}
			c.put(d.Axiom, st, d.Triples)
		}
	}
	o.cache = c

	o.metrics.CacheLoaded(len(c.entries), time.Since(start).Seconds())
	if o.events.Enabled() {
		o.events.AddTiming(annotations.CacheLoaded, start, map[string]any{
			"axioms.count":       len(c.entries),
			"generation":         c.gen,
			"statements.skipped": len(c.skipped),
		})
	}
	return nil
}

func (o *Ontology) skip(c *axiomCache, k axioms.Kind, st ontology.Triple, err error) {
	c.skipped = append(c.skipped, Skipped{Kind: k, Statement: st, Err: err})
	o.metrics.StatementSkipped(k.String())
	if o.events.Enabled() {
		o.events.Add(annotations.Event{Name: annotations.StatementSkipped, Start: time.Now(), Data: map[string]any{
			"kind":      k.String(),
			"statement": st.String(),
			"error":     err.Error(),
		}})
	}
}

func (o *Ontology) backendError(op string, err error) {
	o.logger.Error("graph backend failure", "op", op, "error", err)
	if o.events.Enabled() {
		o.events.Add(annotations.Event{Name: annotations.ErrorBackend, Start: time.Now(), Data: map[string]any{
			"op":    op,
			"error": err.Error(),
		}})
	}
}

// ClearCache invalidates every cached axiom, object and content value.
// The next access reloads from the graph.
func (o *Ontology) ClearCache() {
	gen := o.gen.Bump()
	o.cache = nil
	o.metrics.CacheCleared()
	if o.events.Enabled() {
		o.events.Add(annotations.Event{Name: annotations.CacheCleared, Start: time.Now(), Data: map[string]any{
			"generation": gen,
		}})
	}
}

// AddAxiom writes a into the graph. Assertions on inverse properties are
// stored simplified. It returns false if an equal axiom is already present.
// A punning violation rolls back every write and returns an error matching
// ontology.ErrSignatureConflict.
func (o *Ontology) AddAxiom(a *axioms.Axiom) (bool, error) {
	a = a.Simplified()
	if err := o.ensureLoaded(); err != nil {
		return false, err
	}
	if _, ok := o.cache.get(a); ok {
		return false, nil
	}
	m := o.begin(a)
	if err := m.validate(); err != nil {
		return false, m.reject(err)
	}
	if err := m.write(); err != nil {
		return false, m.reject(err)
	}
	if err := m.checkPunning(); err != nil {
		return false, m.reject(err)
	}
	m.commit()
	return true, nil
}

// RemoveAxiom deletes the triples of a that no other cached axiom uses. It
// returns false if a is not in the ontology.
func (o *Ontology) RemoveAxiom(a *axioms.Axiom) (bool, error) {
	start := time.Now()
	a = a.Simplified()
	if err := o.ensureLoaded(); err != nil {
		return false, err
	}
	e, ok := o.cache.get(a)
	if !ok {
		return false, nil
	}
	free := o.cache.release(e)
	rec := graph.NewRecorder(o.g)
	for _, t := range free {
		if _, err := rec.Delete(t); err != nil {
			if rbErr := rec.Rollback(); rbErr != nil {
				o.backendError("RemoveAxiom", rbErr)
			}
			o.cache.restore(e)
			o.backendError("RemoveAxiom", err)
			return false, ontology.Wrap(err, "model", "RemoveAxiom", "delete "+t.String())
		}
	}
	deleted := len(rec.Log())
	rec.Commit()

	o.metrics.AxiomRemoved(a.Kind().String())
	o.metrics.CachedAxioms(len(o.cache.entries))
	if o.events.Enabled() {
		o.events.AddTiming(annotations.AxiomRemoved, start, map[string]any{
			"kind":            a.Kind().String(),
			"axiom":           a.String(),
			"triples.deleted": deleted,
		})
	}
	return true, nil
}

// ContainsAxiom reports whether an axiom equal to a, annotations included,
// is in the ontology.
func (o *Ontology) ContainsAxiom(a *axioms.Axiom) (bool, error) {
	if err := o.ensureLoaded(); err != nil {
		return false, err
	}
	_, ok := o.cache.get(a.Simplified())
	return ok, nil
}

// Axioms yields the axioms of the given kinds, or all axioms if none are
// given, in load order followed by additions.
func (o *Ontology) Axioms(kinds ...axioms.Kind) iter.Seq2[*axioms.Axiom, error] {
	return func(yield func(*axioms.Axiom, error) bool) {
		if err := o.ensureLoaded(); err != nil {
			yield(nil, err)
			return
		}
		for _, a := range o.cache.snapshot(kinds...) {
			if !yield(a, nil) {
				return
			}
		}
	}
}

// AxiomList collects Axioms.
func (o *Ontology) AxiomList(kinds ...axioms.Kind) ([]*axioms.Axiom, error) {
	if err := o.ensureLoaded(); err != nil {
		return nil, err
	}
	return o.cache.snapshot(kinds...), nil
}

func (o *Ontology) AxiomCount() (int, error) {
	if err := o.ensureLoaded(); err != nil {
		return 0, err
	}
	return len(o.cache.entries), nil
}

func (o *Ontology) AxiomCountOf(k axioms.Kind) (int, error) {
	if err := o.ensureLoaded(); err != nil {
		return 0, err
	}
	return o.cache.counts[k], nil
}

// Triples returns the triples the cached axiom equal to a depends on.
func (o *Ontology) Triples(a *axioms.Axiom) ([]ontology.Triple, error) {
	if err := o.ensureLoaded(); err != nil {
		return nil, err
	}
	e, ok := o.cache.get(a.Simplified())
	if !ok {
		return nil, ontology.NotFoundf("axiom %s", a)
	}
	return append([]ontology.Triple(nil), e.triples...), nil
}

// Anchors returns the statements the axiom equal to a was decoded from.
// Axioms added since the last load have none.
func (o *Ontology) Anchors(a *axioms.Axiom) ([]ontology.Triple, error) {
	if err := o.ensureLoaded(); err != nil {
		return nil, err
	}
	e, ok := o.cache.get(a.Simplified())
	if !ok {
		return nil, ontology.NotFoundf("axiom %s", a)
	}
	return append([]ontology.Triple(nil), e.anchors...), nil
}

// Skipped returns the statements the last load could not decode.
func (o *Ontology) Skipped() ([]Skipped, error) {
	if err := o.ensureLoaded(); err != nil {
		return nil, err
	}
	return append([]Skipped(nil), o.cache.skipped...), nil
}

// Stats loads the cache if needed and summarises it.
func (o *Ontology) Stats() (Stats, error) {
	if err := o.ensureLoaded(); err != nil {
		return Stats{}, err
	}
	size, err := o.g.Size()
	if err != nil {
		return Stats{}, ontology.Wrap(err, "model", "Stats", "size")
	}
	byKind := make(map[axioms.Kind]int, len(o.cache.counts))
	for k, n := range o.cache.counts {
		byKind[k] = n
	}
	hits, misses := o.factory.Stats()
	return Stats{
		ID:            o.id,
		Generation:    o.cache.gen,
		Axioms:        len(o.cache.entries),
		Triples:       size,
		ByKind:        byKind,
		Skipped:       len(o.cache.skipped),
		FactoryHits:   hits,
		FactoryMisses: misses,
	}, nil
}
