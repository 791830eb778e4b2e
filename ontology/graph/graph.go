// Package graph provides the triple store the translation engine reads and
// writes: an in-memory and a Badger-backed implementation, ordered list
// encoding, annotation-block views over statements, an undo-log recorder for
// rollback, and N-Quads import/export.
package graph

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// Adder accepts triple writes. Add reports whether the graph changed.
type Adder interface {
	Add(t ontology.Triple) (bool, error)
}

// Graph is a mutable set of triples.
//
// Find yields a snapshot: matches are collected before the first yield, so
// callers may mutate the graph while iterating. Order is stable for an
// unmodified graph.
type Graph interface {
	Adder
	Delete(t ontology.Triple) (bool, error)
	Contains(t ontology.Triple) (bool, error)
	Find(s, p, o ontology.Node) iter.Seq2[ontology.Triple, error]
	Size() (int, error)
}

// Collect drains a Find sequence into a slice.
func Collect(seq iter.Seq2[ontology.Triple, error]) ([]ontology.Triple, error) {
	var out []ontology.Triple
	for t, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FindAll returns every triple matching the pattern.
func FindAll(g Graph, s, p, o ontology.Node) ([]ontology.Triple, error) {
	return Collect(g.Find(s, p, o))
}

// Objects returns the objects of (s, p, *).
func Objects(g Graph, s, p ontology.Node) ([]ontology.Node, error) {
	var out []ontology.Node
	for t, err := range g.Find(s, p, ontology.Wildcard) {
		if err != nil {
			return nil, err
		}
		out = append(out, t.O)
	}
	return out, nil
}

// Object returns the single object of (s, p, *). ok is false when there is
// none; more than one is a malformed pattern.
func Object(g Graph, s, p ontology.Node) (o ontology.Node, ok bool, err error) {
	objs, err := Objects(g, s, p)
	if err != nil {
		return ontology.Wildcard, false, err
	}
	switch len(objs) {
	case 0:
		return ontology.Wildcard, false, nil
	case 1:
		return objs[0], true, nil
	default:
		return ontology.Wildcard, false, ontology.Malformed("%s has %d values for %s", s, len(objs), p)
	}
}

// HasType reports whether (n, rdf:type, typ) is in the graph.
func HasType(g Graph, n, typ ontology.Node) (bool, error) {
	return g.Contains(ontology.T(n, vocab.Type, typ))
}

// Types returns the rdf:type objects of n.
func Types(g Graph, n ontology.Node) ([]ontology.Node, error) {
	return Objects(g, n, vocab.Type)
}

// AddAll writes every triple, stopping at the first error.
func AddAll(a Adder, ts ...ontology.Triple) error {
	for _, t := range ts {
		if _, err := a.Add(t); err != nil {
			return err
		}
	}
	return nil
}
