package model

import (
	"fmt"
	"time"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/annotations"
	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
)

// MutationState tracks an axiom addition.
type MutationState int

const (
	Requested MutationState = iota
	Validating
	Writing
	Committed
	Rejected
)

func (s MutationState) String() string {
	switch s {
	case Requested:
		return "requested"
	case Validating:
		return "validating"
	case Writing:
		return "writing"
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("MutationState(%d)", int(s))
	}
}

// mutation is one AddAxiom call. Every write goes through rec so a
// rejection can restore the graph exactly.
type mutation struct {
	o     *Ontology
	axiom *axioms.Axiom
	tr    axioms.Translator
	rec   *graph.Recorder
	w     *objects.Writer
	state MutationState
	start time.Time
}

func (o *Ontology) begin(a *axioms.Axiom) *mutation {
	rec := graph.NewRecorder(o.g)
	return &mutation{
		o:     o,
		axiom: a,
		rec:   rec,
		w:     objects.NewWriter(rec),
		state: Requested,
		start: time.Now(),
	}
}

func (m *mutation) validate() error {
	m.state = Validating
	tr, ok := m.o.registry.Lookup(m.axiom.Kind())
	if !ok {
		return fmt.Errorf("%w: no translator for %s", ontology.ErrUnsupported, m.axiom.Kind())
	}
	m.tr = tr
	if _, err := m.axiom.Content(); err != nil {
		return err
	}
	return nil
}

func (m *mutation) write() error {
	m.state = Writing
	return m.tr.Write(m.w, m.axiom)
}

// checkPunning reads back the kinds of every entity in the signature,
// including declarations written by this mutation.
func (m *mutation) checkPunning() error {
	mode := m.o.cfg.Punning
	if mode == ontology.PunningLax {
		return nil
	}
	seen := make(map[string]bool)
	for _, e := range m.axiom.Signature() {
		if seen[e.IRI] {
			continue
		}
		seen[e.IRI] = true
		kinds, err := m.o.factory.Kinds(e.Node())
		if err != nil {
			return err
		}
		kinds = appendKind(kinds, e.Kind)
		for i := range kinds {
			for j := i + 1; j < len(kinds); j++ {
				if !mode.Allows(kinds[i], kinds[j]) {
					return ontology.Conflict(e.IRI, kinds...)
				}
			}
		}
	}
	return nil
}

func appendKind(kinds []ontology.EntityKind, k ontology.EntityKind) []ontology.EntityKind {
	for _, have := range kinds {
		if have == k {
			return kinds
		}
	}
	return append(kinds, k)
}

// commit keeps the writes and caches the axiom. The axiom claims the triples
// it created plus touched triples other cached axioms already depend on;
// pre-existing triples nothing owns stay unclaimed so removing the axiom
// leaves them in place.
func (m *mutation) commit() {
	c := m.o.cache
	created := make(map[ontology.Triple]bool, len(m.rec.Log()))
	for _, op := range m.rec.Log() {
		if op.Added {
			created[op.Triple] = true
		}
	}
	var claimed []ontology.Triple
	for _, t := range m.w.Touched() {
		if created[t] || c.referenced(t) {
			claimed = append(claimed, t)
		}
	}
	written := len(created)
	m.rec.Commit()
	c.put(m.axiom, ontology.Triple{}, claimed)
	m.state = Committed

	m.o.metrics.AxiomAdded(m.axiom.Kind().String())
	m.o.metrics.CachedAxioms(len(c.entries))
	if m.o.events.Enabled() {
		m.o.events.AddTiming(annotations.AxiomAdded, m.start, map[string]any{
			"kind":            m.axiom.Kind().String(),
			"axiom":           m.axiom.String(),
			"triples.written": written,
		})
	}
}

// reject undoes every write and returns cause with the mutation context.
func (m *mutation) reject(cause error) error {
	ops := len(m.rec.Log())
	failed := m.state
	rbErr := m.rec.Rollback()
	m.state = Rejected

	kind := m.axiom.Kind().String()
	m.o.metrics.AxiomRejected(kind)
	if m.o.events.Enabled() {
		m.o.events.AddTiming(annotations.AxiomRejected, m.start, map[string]any{
			"kind":  kind,
			"axiom": m.axiom.String(),
			"error": cause.Error(),
			"state": failed.String(),
		})
		if ops > 0 {
			m.o.events.AddTiming(annotations.TxRollback, m.start, map[string]any{
				"kind":      kind,
				"ops.count": ops,
			})
		}
	}
	if rbErr != nil {
		m.o.backendError("AddAxiom", rbErr)
		return ontology.Wrap(fmt.Errorf("%w (rollback: %v)", cause, rbErr), "model", "AddAxiom", "add "+kind)
	}
	return ontology.Wrap(cause, "model", "AddAxiom", "add "+kind)
}
