package graph

import (
	"errors"
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/wbrown/janus-owl/ontology"
)

// ImportNQuads reads N-Quads (or N-Triples) from r into g, ignoring graph
// labels. Returns the number of triples that were new to g.
func ImportNQuads(g Adder, r io.Reader) (int, error) {
	reader := nquads.NewReader(r, true)
	added := 0
	for {
		q, err := reader.ReadQuad()
		if errors.Is(err, io.EOF) {
			return added, nil
		}
		if err != nil {
			return added, fmt.Errorf("read n-quads: %w", err)
		}
		t, err := tripleFromQuad(q)
		if err != nil {
			return added, err
		}
		ok, err := g.Add(t)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
}

// ExportNQuads writes every triple of g to w. Returns the number written.
func ExportNQuads(g Graph, w io.Writer) (int, error) {
	writer := nquads.NewWriter(w)
	n := 0
	for t, err := range g.Find(ontology.Wildcard, ontology.Wildcard, ontology.Wildcard) {
		if err != nil {
			return n, err
		}
		q := quad.Quad{Subject: t.S.Quad(), Predicate: t.P.Quad(), Object: t.O.Quad()}
		if err := writer.WriteQuad(q); err != nil {
			return n, fmt.Errorf("write n-quads: %w", err)
		}
		n++
	}
	return n, writer.Close()
}

func tripleFromQuad(q quad.Quad) (ontology.Triple, error) {
	var nodes [3]ontology.Node
	for i, v := range []quad.Value{q.Subject, q.Predicate, q.Object} {
		n, err := ontology.FromQuad(v)
		if err != nil {
			return ontology.Triple{}, err
		}
		nodes[i] = n
	}
	t := ontology.T(nodes[0], nodes[1], nodes[2])
	if !t.IsGround() || !t.S.IsResource() || !t.P.IsIRI() {
		return ontology.Triple{}, ontology.Malformed("invalid triple %s", t)
	}
	return t, nil
}
