package graph

import (
	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

const maxBlockDepth = 16

// Block is a reified annotation sub-graph attached to one triple: a node
// typed owl:Axiom (or owl:Annotation when nested) whose annotatedSource,
// annotatedProperty and annotatedTarget name the triple.
type Block struct {
	Node ontology.Node
	// Assertions are the payload triples (Node, annotationProperty, value).
	Assertions []ontology.Triple
	// Nested holds blocks annotating individual payload assertions.
	Nested map[ontology.Triple][]Block
	// Triples is the full closure of the block, nested blocks included.
	Triples []ontology.Triple
}

// Statement is a triple together with the annotation blocks attached to it.
// It is recomputed from the graph on every lookup.
type Statement struct {
	ontology.Triple
	Blocks []Block
}

// Annotate looks up the owl:Axiom blocks attached to t.
func Annotate(g Graph, t ontology.Triple) (Statement, error) {
	blocks, err := FindBlocks(g, t, vocab.Axiom)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Triple: t, Blocks: blocks}, nil
}

// Triples returns the statement triple followed by every block triple.
func (s Statement) Triples() []ontology.Triple {
	out := []ontology.Triple{s.Triple}
	for _, b := range s.Blocks {
		out = append(out, b.Triples...)
	}
	return out
}

// FindBlocks returns the blocks of type typ attached to t.
func FindBlocks(g Graph, t ontology.Triple, typ ontology.Node) ([]Block, error) {
	return findBlocks(g, t, typ, 0)
}

func findBlocks(g Graph, t ontology.Triple, typ ontology.Node, depth int) ([]Block, error) {
	if depth > maxBlockDepth {
		return nil, ontology.Malformed("annotation blocks on %s nest too deeply", t)
	}
	sources, err := FindAll(g, ontology.Wildcard, vocab.AnnotatedSource, t.S)
	if err != nil {
		return nil, err
	}
	var blocks []Block
	for _, src := range sources {
		x := src.S
		ok, err := isBlockFor(g, x, t, typ)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		b := Block{Node: x}
		b.Triples = []ontology.Triple{
			ontology.T(x, vocab.Type, typ),
			ontology.T(x, vocab.AnnotatedSource, t.S),
			ontology.T(x, vocab.AnnotatedProperty, t.P),
			ontology.T(x, vocab.AnnotatedTarget, t.O),
		}
		assertions, nested, closure, err := payload(g, x, isBlockSkeleton, depth)
		if err != nil {
			return nil, err
		}
		b.Assertions = assertions
		b.Nested = nested
		b.Triples = append(b.Triples, closure...)
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func isBlockFor(g Graph, x ontology.Node, t ontology.Triple, typ ontology.Node) (bool, error) {
	for _, want := range []ontology.Triple{
		ontology.T(x, vocab.Type, typ),
		ontology.T(x, vocab.AnnotatedProperty, t.P),
		ontology.T(x, vocab.AnnotatedTarget, t.O),
	} {
		ok, err := g.Contains(want)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func isBlockSkeleton(p ontology.Node) bool {
	return p == vocab.Type || p == vocab.AnnotatedSource ||
		p == vocab.AnnotatedProperty || p == vocab.AnnotatedTarget
}

// DirectAnnotations reads annotations written straight onto a blank axiom
// anchor. skeleton reports the predicates that belong to the axiom itself.
func DirectAnnotations(g Graph, anchor ontology.Node, skeleton func(p ontology.Node) bool) (Block, error) {
	assertions, nested, closure, err := payload(g, anchor, skeleton, 0)
	if err != nil {
		return Block{}, err
	}
	return Block{Node: anchor, Assertions: assertions, Nested: nested, Triples: closure}, nil
}

// payload collects the annotation assertions hanging off node x, their
// nested owl:Annotation blocks and all triples involved.
func payload(g Graph, x ontology.Node, skip func(ontology.Node) bool, depth int) (
	assertions []ontology.Triple, nested map[ontology.Triple][]Block, closure []ontology.Triple, err error) {
	all, err := FindAll(g, x, ontology.Wildcard, ontology.Wildcard)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, a := range all {
		if skip(a.P) {
			continue
		}
		assertions = append(assertions, a)
		closure = append(closure, a)
		inner, err := findBlocks(g, a, vocab.Annotation, depth+1)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(inner) > 0 {
			if nested == nil {
				nested = make(map[ontology.Triple][]Block)
			}
			nested[a] = inner
			for _, b := range inner {
				closure = append(closure, b.Triples...)
			}
		}
	}
	return assertions, nested, closure, nil
}

// IsBlockNode reports whether n reifies some triple.
func IsBlockNode(g Graph, n ontology.Node) (bool, error) {
	if n.IsLiteral() {
		return false, nil
	}
	for _, err := range g.Find(n, vocab.AnnotatedSource, ontology.Wildcard) {
		return err == nil, err
	}
	return false, nil
}

// WriteBlock reifies t with a fresh blank node of type typ and returns it.
// The caller adds the payload assertions.
func WriteBlock(a Adder, t ontology.Triple, typ ontology.Node) (ontology.Node, error) {
	x := ontology.NewBlank()
	err := AddAll(a,
		ontology.T(x, vocab.Type, typ),
		ontology.T(x, vocab.AnnotatedSource, t.S),
		ontology.T(x, vocab.AnnotatedProperty, t.P),
		ontology.T(x, vocab.AnnotatedTarget, t.O),
	)
	return x, err
}
