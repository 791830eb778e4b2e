package graph

import (
	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// maxListLength bounds list walks so a cyclic rdf:rest chain cannot spin.
const maxListLength = 1 << 16

// WriteList encodes items as a fresh rdf:first/rdf:rest chain and returns
// its head. An empty list is rdf:nil. Items may repeat.
func WriteList(a Adder, items []ontology.Node) (ontology.Node, error) {
	if len(items) == 0 {
		return vocab.Nil, nil
	}
	cells := make([]ontology.Node, len(items))
	for i := range cells {
		cells[i] = ontology.NewBlank()
	}
	for i, item := range items {
		next := vocab.Nil
		if i+1 < len(cells) {
			next = cells[i+1]
		}
		if err := AddAll(a,
			ontology.T(cells[i], vocab.First, item),
			ontology.T(cells[i], vocab.Rest, next),
		); err != nil {
			return ontology.Wildcard, err
		}
	}
	return cells[0], nil
}

// ReadList returns the members of the list starting at head, in order.
func ReadList(g Graph, head ontology.Node) ([]ontology.Node, error) {
	items, _, err := walkList(g, head)
	return items, err
}

// ListTriples returns the triples forming the list starting at head.
func ListTriples(g Graph, head ontology.Node) ([]ontology.Triple, error) {
	_, triples, err := walkList(g, head)
	return triples, err
}

func walkList(g Graph, head ontology.Node) ([]ontology.Node, []ontology.Triple, error) {
	var items []ontology.Node
	var triples []ontology.Triple
	seen := make(map[ontology.Node]bool)
	for cell := head; cell != vocab.Nil; {
		if !cell.IsBlank() {
			return nil, nil, ontology.Malformed("list cell %s is not a blank node", cell)
		}
		if seen[cell] || len(items) >= maxListLength {
			return nil, nil, ontology.Malformed("list at %s is cyclic", head)
		}
		seen[cell] = true

		first, ok, err := Object(g, cell, vocab.First)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, ontology.Malformed("list cell %s has no rdf:first", cell)
		}
		rest, ok, err := Object(g, cell, vocab.Rest)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, ontology.Malformed("list cell %s has no rdf:rest", cell)
		}
		items = append(items, first)
		triples = append(triples, ontology.T(cell, vocab.First, first), ontology.T(cell, vocab.Rest, rest))
		cell = rest
	}
	return items, triples, nil
}
