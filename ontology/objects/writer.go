package objects

import (
	"fmt"
	"strconv"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// Writer encodes objects into a graph. It remembers every triple it was
// asked to assert, including ones that already existed, so the caller knows
// which triples the written axiom depends on.
type Writer struct {
	g       graph.Graph
	touched []ontology.Triple
	seen    map[ontology.Triple]bool
}

// NewWriter writes through g, typically a *graph.Recorder.
func NewWriter(g graph.Graph) *Writer {
	return &Writer{g: g, seen: make(map[ontology.Triple]bool)}
}

// Graph returns the underlying graph.
func (w *Writer) Graph() graph.Graph { return w.g }

// Add asserts t and records it as touched.
func (w *Writer) Add(t ontology.Triple) (bool, error) {
	if !w.seen[t] {
		w.seen[t] = true
		w.touched = append(w.touched, t)
	}
	return w.g.Add(t)
}

// Triple is Add without the changed flag.
func (w *Writer) Triple(s, p, o ontology.Node) error {
	_, err := w.Add(ontology.T(s, p, o))
	return err
}

// Touched returns the triples asserted so far, in first-write order.
func (w *Writer) Touched() []ontology.Triple {
	return w.touched
}

// List writes a fresh rdf list holding items.
func (w *Writer) List(items []ontology.Node) (ontology.Node, error) {
	return graph.WriteList(w, items)
}

// Declare writes the declaration of a non-builtin entity.
func (w *Writer) Declare(e Entity) (ontology.Node, error) {
	n := e.Node()
	if e.IsBuiltin() {
		return n, nil
	}
	return n, w.Triple(n, vocab.Type, vocab.DeclarationType(e.Kind))
}

// Node encodes o and returns the node standing for it. Entities are
// declared; expressions get a fresh blank sub-graph.
func (w *Writer) Node(o Object) (ontology.Node, error) {
	switch x := o.(type) {
	case Entity:
		return w.Declare(x)
	case AnonymousIndividual:
		return x.Node(), nil
	case Literal:
		return x.Node(), nil
	case IRIValue:
		return x.Node(), nil
	case *Expression:
		return w.expression(x)
	default:
		return ontology.Wildcard, fmt.Errorf("%w: cannot encode %T", ontology.ErrUnsupported, o)
	}
}

// Nodes encodes each object in order.
func (w *Writer) Nodes(objs []Object) ([]ontology.Node, error) {
	out := make([]ontology.Node, len(objs))
	for i, o := range objs {
		n, err := w.Node(o)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (w *Writer) expression(e *Expression) (ontology.Node, error) {
	args, err := w.Nodes(e.Args)
	if err != nil {
		return ontology.Wildcard, err
	}
	x := ontology.NewBlank()

	typed := func(typ ontology.Node, p ontology.Node, o ontology.Node) (ontology.Node, error) {
		if err := w.Triple(x, vocab.Type, typ); err != nil {
			return ontology.Wildcard, err
		}
		return x, w.Triple(x, p, o)
	}
	listed := func(typ, p ontology.Node) (ontology.Node, error) {
		head, err := w.List(args)
		if err != nil {
			return ontology.Wildcard, err
		}
		return typed(typ, p, head)
	}
	restriction := func(p ontology.Node, o ontology.Node) (ontology.Node, error) {
		if err := w.Triple(x, vocab.Type, vocab.Restriction); err != nil {
			return ontology.Wildcard, err
		}
		if err := w.Triple(x, vocab.OnProperty, args[0]); err != nil {
			return ontology.Wildcard, err
		}
		return x, w.Triple(x, p, o)
	}

	switch e.Op {
	case OpObjectInverseOf:
		return x, w.Triple(x, vocab.InverseOf, args[0])
	case OpObjectUnionOf:
		return listed(vocab.Class, vocab.UnionOf)
	case OpObjectIntersectionOf:
		return listed(vocab.Class, vocab.IntersectionOf)
	case OpObjectOneOf:
		return listed(vocab.Class, vocab.OneOf)
	case OpObjectComplementOf:
		return typed(vocab.Class, vocab.ComplementOf, args[0])
	case OpDataUnionOf:
		return listed(vocab.RDFSDatatype, vocab.UnionOf)
	case OpDataIntersectionOf:
		return listed(vocab.RDFSDatatype, vocab.IntersectionOf)
	case OpDataOneOf:
		return listed(vocab.RDFSDatatype, vocab.OneOf)
	case OpDataComplementOf:
		return typed(vocab.RDFSDatatype, vocab.DatatypeComplementOf, args[0])
	case OpObjectSomeValuesFrom, OpDataSomeValuesFrom:
		return restriction(vocab.SomeValuesFrom, args[1])
	case OpObjectAllValuesFrom, OpDataAllValuesFrom:
		return restriction(vocab.AllValuesFrom, args[1])
	case OpObjectHasValue, OpDataHasValue:
		return restriction(vocab.HasValue, args[1])
	case OpObjectHasSelf:
		return restriction(vocab.HasSelf, ontology.Literal("true", vocab.XSDBoolean.Value))
	}

	if e.Op.IsCardinality() {
		card := ontology.Literal(strconv.Itoa(e.Cardinality), vocab.XSDNonNegativeInteger.Value)
		qualified := !Equal(e.Filler(), Thing) && !Equal(e.Filler(), RDFSLiteral)
		pred := cardinalityPredicate(e.Op, qualified)
		if _, err := restriction(pred, card); err != nil {
			return ontology.Wildcard, err
		}
		if qualified {
			on := vocab.OnClass
			if e.Op >= OpDataMinCardinality {
				on = vocab.OnDataRange
			}
			return x, w.Triple(x, on, args[1])
		}
		return x, nil
	}
	return ontology.Wildcard, fmt.Errorf("%w: expression %s", ontology.ErrUnsupported, e.Op)
}

func cardinalityPredicate(op ExprOp, qualified bool) ontology.Node {
	for _, form := range cardinalityForms {
		if form.qualified == qualified && (form.object == op || form.data == op) {
			return form.predicate
		}
	}
	return vocab.Cardinality
}

// Annotate writes anns as a new owl:Axiom block on t. Nothing is written
// when anns is empty.
func (w *Writer) Annotate(t ontology.Triple, anns []Annotation) error {
	return w.annotateTriple(t, anns, vocab.Axiom)
}

func (w *Writer) annotateTriple(t ontology.Triple, anns []Annotation, typ ontology.Node) error {
	if len(anns) == 0 {
		return nil
	}
	x, err := graph.WriteBlock(w, t, typ)
	if err != nil {
		return err
	}
	return w.AnnotateNode(x, anns)
}

// AnnotateNode writes anns directly onto subject. Nested annotations become
// owl:Annotation blocks on the written assertion.
func (w *Writer) AnnotateNode(subject ontology.Node, anns []Annotation) error {
	for _, a := range anns {
		p, err := w.Declare(a.Property)
		if err != nil {
			return err
		}
		v, err := w.Node(a.Value)
		if err != nil {
			return err
		}
		t := ontology.T(subject, p, v)
		if _, err := w.Add(t); err != nil {
			return err
		}
		if err := w.annotateTriple(t, a.Annotations, vocab.Annotation); err != nil {
			return err
		}
	}
	return nil
}
