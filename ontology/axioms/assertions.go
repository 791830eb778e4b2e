package axioms

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

var builtinAnnotationProperties = []ontology.Node{
	vocab.Label, vocab.Comment, vocab.SeeAlso, vocab.IsDefinedBy, vocab.Deprecated,
	vocab.VersionInfo, vocab.PriorVersion, vocab.BackwardCompatible, vocab.IncompatibleWith,
}

// usesOf yields every triple whose predicate is one of the properties
// declared with typ, plus the given builtins.
func usesOf(g graph.Graph, typ ontology.Node, builtins []ontology.Node) iter.Seq2[ontology.Triple, error] {
	return func(yield func(ontology.Triple, error) bool) {
		props := append([]ontology.Node(nil), builtins...)
		seen := make(map[ontology.Node]bool, len(props))
		for _, p := range props {
			seen[p] = true
		}
		decls, err := graph.FindAll(g, ontology.Wildcard, vocab.Type, typ)
		if err != nil {
			yield(ontology.Triple{}, err)
			return
		}
		for _, d := range decls {
			if d.S.IsIRI() && !seen[d.S] {
				seen[d.S] = true
				props = append(props, d.S)
			}
		}
		for _, p := range props {
			for t, err := range g.Find(ontology.Wildcard, p, ontology.Wildcard) {
				if !yield(t, err) || err != nil {
					return
				}
			}
		}
	}
}

// propertyAssertionTranslator reads (subject property object) for declared
// object or data properties. The axiom operands are (property, subject,
// object).
type propertyAssertionTranslator struct {
	kind     Kind
	declType ontology.Node
	property role
	object   role
}

func (tr *propertyAssertionTranslator) Kind() Kind { return tr.kind }

func (tr *propertyAssertionTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	data := tr.kind == DataPropertyAssertion
	return filter(usesOf(g, tr.declType, nil), func(t ontology.Triple) (bool, error) {
		if t.O.IsLiteral() != data {
			return false, nil
		}
		ok, err := isIndividualNode(g, t.S)
		if err != nil || !ok || data {
			return ok, err
		}
		return isIndividualNode(g, t.O)
	})
}

func (tr *propertyAssertionTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	return finish(tr.kind, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		p, err := tr.property.resolve(f, t.P, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		s, err := individualRole.resolve(f, t.S, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		o, err := tr.object.resolve(f, t.O, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: []objects.Object{p, s, o},
			anns:     anns,
			triples:  append(owned, blocks...),
		}, nil
	})
}

func (tr *propertyAssertionTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a.Simplified(), 3, 3)
	if err != nil {
		return err
	}
	if _, named := ops[0].(objects.Entity); !named {
		return ontology.Malformed("%s needs a named property, got %s", tr.kind, ops[0].Key())
	}
	nodes, err := w.Nodes(ops)
	if err != nil {
		return err
	}
	return writeStatement(w, nodes[1], nodes[0], nodes[2], a.Annotations())
}

// annotationAssertionTranslator reads (subject annotationProperty value).
// Annotation blocks, axiom anchors and the ontology header are not subjects
// of annotation assertions.
type annotationAssertionTranslator struct{}

func (annotationAssertionTranslator) Kind() Kind { return AnnotationAssertion }

func (annotationAssertionTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	return filter(usesOf(g, vocab.AnnotationProperty, builtinAnnotationProperties), func(t ontology.Triple) (bool, error) {
		if t.S.IsIRI() {
			header, err := graph.HasType(g, t.S, vocab.Ontology)
			return !header, err
		}
		return isIndividualNode(g, t.S)
	})
}

func (annotationAssertionTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	return finish(AnnotationAssertion, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		p, err := annPropRole.resolve(f, t.P, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		s, err := annValueRole.resolve(f, t.S, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		v, err := annValueRole.resolve(f, t.O, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: []objects.Object{p, s, v},
			anns:     anns,
			triples:  append(owned, blocks...),
		}, nil
	})
}

func (annotationAssertionTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 3, 3)
	if err != nil {
		return err
	}
	if _, lit := ops[1].(objects.Literal); lit {
		return ontology.Malformed("annotation subject %s is a literal", ops[1].Key())
	}
	nodes, err := w.Nodes(ops)
	if err != nil {
		return err
	}
	return writeStatement(w, nodes[1], nodes[0], nodes[2], a.Annotations())
}

func assertionTranslators() []Translator {
	return []Translator{
		&propertyAssertionTranslator{
			kind:     ObjectPropertyAssertion,
			declType: vocab.ObjectProperty,
			property: objectPropRole,
			object:   individualRole,
		},
		&propertyAssertionTranslator{
			kind:     DataPropertyAssertion,
			declType: vocab.DatatypeProperty,
			property: dataPropRole,
			object:   literalRole,
		},
		annotationAssertionTranslator{},
	}
}
