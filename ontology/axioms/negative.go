package axioms

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// negativeTranslator reads owl:NegativePropertyAssertion anchors:
//
//	_:x rdf:type owl:NegativePropertyAssertion
//	_:x owl:sourceIndividual a
//	_:x owl:assertionProperty P
//	_:x owl:targetIndividual b   (or owl:targetValue "v")
//
// Annotations are written directly on the anchor.
type negativeTranslator struct {
	kind     Kind
	target   ontology.Node
	property role
	value    role
}

func (tr *negativeTranslator) Kind() Kind { return tr.kind }

func (tr *negativeTranslator) skeleton() []ontology.Node {
	return []ontology.Node{vocab.Type, vocab.SourceIndividual, vocab.AssertionProperty, vocab.TargetIndividual, vocab.TargetValue}
}

func (tr *negativeTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	return filter(g.Find(ontology.Wildcard, vocab.Type, vocab.NegativePropertyAssertion), func(t ontology.Triple) (bool, error) {
		_, ok, err := graph.Object(g, t.S, tr.target)
		return ok, err
	})
}

func (tr *negativeTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P != vocab.Type || t.O != vocab.NegativePropertyAssertion {
		return Decoded{}, ontology.Malformed("%s is not a negative property assertion", t)
	}
	g := f.Graph()
	x := t.S
	return finish(tr.kind, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		part := func(p ontology.Node, r role) (objects.Object, error) {
			n, ok, err := graph.Object(g, x, p)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ontology.Malformed("negative assertion %s has no %s", x, p)
			}
			owned = append(owned, ontology.T(x, p, n))
			return r.resolve(f, n, &owned)
		}
		p, err := part(vocab.AssertionProperty, tr.property)
		if err != nil {
			return decodedParts{}, err
		}
		s, err := part(vocab.SourceIndividual, individualRole)
		if err != nil {
			return decodedParts{}, err
		}
		o, err := part(tr.target, tr.value)
		if err != nil {
			return decodedParts{}, err
		}
		anns, direct, err := anchorAnnotations(f, cfg, x, tr.skeleton()...)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: []objects.Object{p, s, o},
			anns:     anns,
			triples:  append(owned, direct...),
		}, nil
	})
}

func (tr *negativeTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 3, 3)
	if err != nil {
		return err
	}
	nodes, err := w.Nodes(ops)
	if err != nil {
		return err
	}
	x := ontology.NewBlank()
	for _, t := range []ontology.Triple{
		ontology.T(x, vocab.Type, vocab.NegativePropertyAssertion),
		ontology.T(x, vocab.SourceIndividual, nodes[1]),
		ontology.T(x, vocab.AssertionProperty, nodes[0]),
		ontology.T(x, tr.target, nodes[2]),
	} {
		if _, err := w.Add(t); err != nil {
			return err
		}
	}
	return w.AnnotateNode(x, a.Annotations())
}

func negativeTranslators() []Translator {
	return []Translator{
		&negativeTranslator{
			kind:     NegativeObjectPropertyAssertion,
			target:   vocab.TargetIndividual,
			property: objectPropRole,
			value:    individualRole,
		},
		&negativeTranslator{
			kind:     NegativeDataPropertyAssertion,
			target:   vocab.TargetValue,
			property: dataPropRole,
			value:    literalRole,
		},
	}
}
