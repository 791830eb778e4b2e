package axioms

import (
	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// role resolves an operand position. Blank operands in owning roles are
// anonymous expressions written for the axiom, so their sub-graph belongs
// to the statement.
type role struct {
	read func(f *objects.Factory, n ontology.Node) (objects.Object, error)
	owns bool
}

func dataProperty(f *objects.Factory, n ontology.Node) (objects.Object, error) {
	return f.DataProperty(n)
}

func annotationProperty(f *objects.Factory, n ontology.Node) (objects.Object, error) {
	return f.AnnotationProperty(n)
}

func literal(f *objects.Factory, n ontology.Node) (objects.Object, error) {
	return f.Literal(n)
}

func iriValue(_ *objects.Factory, n ontology.Node) (objects.Object, error) {
	if !n.IsIRI() {
		return nil, ontology.Malformed("%s is not an IRI", n)
	}
	return objects.IRIValue{IRI: n.Value}, nil
}

var (
	classRole      = role{read: (*objects.Factory).ClassExpression, owns: true}
	objectPropRole = role{read: (*objects.Factory).ObjectPropertyExpression, owns: true}
	dataPropRole   = role{read: dataProperty}
	annPropRole    = role{read: annotationProperty}
	dataRangeRole  = role{read: (*objects.Factory).DataRange, owns: true}
	individualRole = role{read: (*objects.Factory).Individual}
	literalRole    = role{read: literal}
	annValueRole   = role{read: (*objects.Factory).AnnotationValue}
	iriRole        = role{read: iriValue}
)

func (r role) resolve(f *objects.Factory, n ontology.Node, owned *[]ontology.Triple) (objects.Object, error) {
	o, err := r.read(f, n)
	if err != nil {
		return nil, err
	}
	if r.owns && n.IsBlank() {
		ts, err := graph.Closure(f.Graph(), n)
		if err != nil {
			return nil, err
		}
		*owned = append(*owned, ts...)
	}
	return o, nil
}

func (r role) resolveAll(f *objects.Factory, ns []ontology.Node, owned *[]ontology.Triple) ([]objects.Object, error) {
	out := make([]objects.Object, 0, len(ns))
	for _, n := range ns {
		o, err := r.resolve(f, n, owned)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// propertyRole picks the role for a property node from its declaration.
func propertyRole(g graph.Graph, n ontology.Node) (role, error) {
	k, err := propertyKind(g, n)
	if err != nil {
		return role{}, err
	}
	switch k {
	case ontology.DataProperty:
		return dataPropRole, nil
	case ontology.AnnotationProperty:
		return annPropRole, nil
	}
	return objectPropRole, nil
}

// propertyKind classifies a property node. Blank nodes are inverse object
// property expressions; undeclared IRIs count as object properties.
func propertyKind(g graph.Graph, n ontology.Node) (ontology.EntityKind, error) {
	if !n.IsIRI() {
		return ontology.ObjectProperty, nil
	}
	for _, k := range []ontology.EntityKind{ontology.DataProperty, ontology.AnnotationProperty} {
		ok, err := declaredAs(g, n, k)
		if err != nil {
			return 0, err
		}
		if ok {
			return k, nil
		}
	}
	return ontology.ObjectProperty, nil
}

func subjectIs(k ontology.EntityKind) func(graph.Graph, ontology.Triple) (bool, error) {
	return func(g graph.Graph, t ontology.Triple) (bool, error) {
		pk, err := propertyKind(g, t.S)
		return pk == k, err
	}
}

func declaredAs(g graph.Graph, n ontology.Node, k ontology.EntityKind) (bool, error) {
	if !n.IsIRI() {
		return false, nil
	}
	if vocab.IsBuiltin(n.Value, k) {
		return true, nil
	}
	return graph.HasType(g, n, vocab.DeclarationType(k))
}

// isAxiomNode reports whether n is a blank node that is part of some
// axiom's encoding: an annotation block, an axiom anchor or an expression.
func isAxiomNode(g graph.Graph, n ontology.Node) (bool, error) {
	if !n.IsBlank() {
		return false, nil
	}
	block, err := graph.IsBlockNode(g, n)
	if err != nil || block {
		return block, err
	}
	types, err := graph.Types(g, n)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t.IsIRI() && vocab.IsReserved(t.Value) && t != vocab.NamedIndividual && t != vocab.Thing {
			return true, nil
		}
	}
	return false, nil
}

// isIndividualNode accepts IRIs and blank nodes that are not part of an
// axiom encoding.
func isIndividualNode(g graph.Graph, n ontology.Node) (bool, error) {
	switch {
	case n.IsIRI():
		return true, nil
	case n.IsBlank():
		axiomNode, err := isAxiomNode(g, n)
		return !axiomNode, err
	}
	return false, nil
}

// tripleAnnotations reads the owl:Axiom blocks on t.
func tripleAnnotations(f *objects.Factory, cfg ontology.Config, t ontology.Triple) ([]objects.Annotation, []ontology.Triple, error) {
	if !cfg.LoadAnnotations {
		return nil, nil, nil
	}
	st, err := graph.Annotate(f.Graph(), t)
	if err != nil {
		return nil, nil, err
	}
	anns, err := f.Annotations(st.Blocks...)
	if err != nil {
		return nil, nil, err
	}
	return anns, st.Triples()[1:], nil
}

// anchorAnnotations reads annotations written directly on a blank anchor.
func anchorAnnotations(f *objects.Factory, cfg ontology.Config, anchor ontology.Node, skeleton ...ontology.Node) ([]objects.Annotation, []ontology.Triple, error) {
	if !cfg.LoadAnnotations {
		return nil, nil, nil
	}
	skip := func(p ontology.Node) bool {
		for _, s := range skeleton {
			if p == s {
				return true
			}
		}
		return false
	}
	b, err := graph.DirectAnnotations(f.Graph(), anchor, skip)
	if err != nil {
		return nil, nil, err
	}
	anns, err := f.Annotations(b)
	if err != nil {
		return nil, nil, err
	}
	return anns, b.Triples, nil
}

// writeStatement asserts (s p o) and annotates it with a new block.
func writeStatement(w *objects.Writer, s, p, o ontology.Node, anns []objects.Annotation) error {
	t := ontology.T(s, p, o)
	if _, err := w.Add(t); err != nil {
		return err
	}
	return w.Annotate(t, anns)
}
