package axioms

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// declarationTranslator reads (iri rdf:type <declaration type>).
type declarationTranslator struct{}

func (declarationTranslator) Kind() Kind { return Declaration }

func (declarationTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	seqs := make([]iter.Seq2[ontology.Triple, error], 0, len(ontology.EntityKinds))
	for _, k := range ontology.EntityKinds {
		seqs = append(seqs, filter(g.Find(ontology.Wildcard, vocab.Type, vocab.DeclarationType(k)),
			func(t ontology.Triple) (bool, error) { return t.S.IsIRI(), nil }))
	}
	return concat(seqs...)
}

func (declarationTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	k, ok := vocab.KindOfType(t.O)
	if t.P != vocab.Type || !ok || !t.S.IsIRI() {
		return Decoded{}, ontology.Malformed("%s is not a declaration", t)
	}
	return finish(Declaration, f, cfg, func() (decodedParts, error) {
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: []objects.Object{objects.NewEntity(k, t.S.Value)},
			anns:     anns,
			triples:  append([]ontology.Triple{t}, blocks...),
		}, nil
	})
}

func (declarationTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 1, 1)
	if err != nil {
		return err
	}
	e, ok := ops[0].(objects.Entity)
	if !ok {
		return ontology.Malformed("declaration of non-entity %s", ops[0].Key())
	}
	return writeStatement(w, e.Node(), vocab.Type, vocab.DeclarationType(e.Kind), a.Annotations())
}

// classAssertionTranslator reads (individual rdf:type class). Types from the
// reserved vocabulary other than the builtin classes are not class
// assertions.
type classAssertionTranslator struct{}

func (classAssertionTranslator) Kind() Kind { return ClassAssertion }

func (classAssertionTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	return filter(g.Find(ontology.Wildcard, vocab.Type, ontology.Wildcard), func(t ontology.Triple) (bool, error) {
		switch {
		case t.O.IsLiteral():
			return false, nil
		case t.O.IsIRI() && vocab.IsReserved(t.O.Value) && !vocab.IsBuiltin(t.O.Value, ontology.Class):
			return false, nil
		}
		return isIndividualNode(g, t.S)
	})
}

func (classAssertionTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P != vocab.Type {
		return Decoded{}, ontology.Malformed("%s is not a class assertion", t)
	}
	return finish(ClassAssertion, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		c, err := classRole.resolve(f, t.O, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		ind, err := individualRole.resolve(f, t.S, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: []objects.Object{c, ind},
			anns:     anns,
			triples:  append(owned, blocks...),
		}, nil
	})
}

func (classAssertionTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 2, 2)
	if err != nil {
		return err
	}
	c, err := w.Node(ops[0])
	if err != nil {
		return err
	}
	ind, err := w.Node(ops[1])
	if err != nil {
		return err
	}
	return writeStatement(w, ind, vocab.Type, c, a.Annotations())
}

// characteristicTranslator reads (property rdf:type <characteristic>).
type characteristicTranslator struct {
	kind    Kind
	typ     ontology.Node
	subject role
	accept  func(graph.Graph, ontology.Triple) (bool, error)
}

func (tr *characteristicTranslator) Kind() Kind { return tr.kind }

func (tr *characteristicTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	return filter(g.Find(ontology.Wildcard, vocab.Type, tr.typ), func(t ontology.Triple) (bool, error) {
		return tr.accept(g, t)
	})
}

func (tr *characteristicTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P != vocab.Type || t.O != tr.typ {
		return Decoded{}, ontology.Malformed("%s is not a %s statement", t, tr.kind)
	}
	return finish(tr.kind, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		p, err := tr.subject.resolve(f, t.S, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{operands: []objects.Object{p}, anns: anns, triples: append(owned, blocks...)}, nil
	})
}

func (tr *characteristicTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 1, 1)
	if err != nil {
		return err
	}
	p, err := w.Node(ops[0])
	if err != nil {
		return err
	}
	return writeStatement(w, p, vocab.Type, tr.typ, a.Annotations())
}

func typeTranslators() []Translator {
	objectSubject := subjectIs(ontology.ObjectProperty)
	characteristic := func(k Kind, typ ontology.Node) Translator {
		return &characteristicTranslator{kind: k, typ: typ, subject: objectPropRole, accept: objectSubject}
	}
	return []Translator{
		declarationTranslator{},
		classAssertionTranslator{},
		characteristic(FunctionalObjectProperty, vocab.FunctionalProperty),
		characteristic(InverseFunctionalObjectProperty, vocab.InverseFunctionalProperty),
		characteristic(TransitiveObjectProperty, vocab.TransitiveProperty),
		characteristic(SymmetricObjectProperty, vocab.SymmetricProperty),
		characteristic(AsymmetricObjectProperty, vocab.AsymmetricProperty),
		characteristic(ReflexiveObjectProperty, vocab.ReflexiveProperty),
		characteristic(IrreflexiveObjectProperty, vocab.IrreflexiveProperty),
		&characteristicTranslator{
			kind:    FunctionalDataProperty,
			typ:     vocab.FunctionalProperty,
			subject: dataPropRole,
			accept:  subjectIs(ontology.DataProperty),
		},
	}
}
