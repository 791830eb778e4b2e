package axioms

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// tripleTranslator handles kinds encoded as a single (subject, predicate,
// object) triple with a fixed predicate.
type tripleTranslator struct {
	kind      Kind
	predicate ontology.Node
	subject   role
	object    role
	// accept filters candidate triples; nil accepts all of them.
	accept func(g graph.Graph, t ontology.Triple) (bool, error)
}

func (tr *tripleTranslator) Kind() Kind { return tr.kind }

func (tr *tripleTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	seq := g.Find(ontology.Wildcard, tr.predicate, ontology.Wildcard)
	if tr.accept == nil {
		return seq
	}
	return filter(seq, func(t ontology.Triple) (bool, error) { return tr.accept(g, t) })
}

func (tr *tripleTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P != tr.predicate {
		return Decoded{}, ontology.Malformed("%s is not a %s statement", t, tr.kind)
	}
	return finish(tr.kind, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		s, err := tr.subject.resolve(f, t.S, &owned)
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
			operands: []objects.Object{s, o},
			anns:     anns,
			triples:  append(owned, blocks...),
		}, nil
	})
}

func (tr *tripleTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 2, 2)
	if err != nil {
		return err
	}
	return tr.writePair(w, ops[0], ops[1], a.Annotations())
}

func (tr *tripleTranslator) writePair(w *objects.Writer, s, o objects.Object, anns []objects.Annotation) error {
	sn, err := w.Node(s)
	if err != nil {
		return err
	}
	on, err := w.Node(o)
	if err != nil {
		return err
	}
	return writeStatement(w, sn, tr.predicate, on, anns)
}

// setTranslator writes an n-ary equivalence as one annotated triple per
// operand pair with the first operand. A singleton set is written as a
// reflexive triple. Each triple decodes back as a two-operand axiom.
type setTranslator struct {
	*tripleTranslator
}

func (tr setTranslator) Write(w *objects.Writer, a *Axiom) error {
	upper := -1
	if tr.kind == InverseObjectProperties {
		upper = 2
	}
	ops, err := arity(a, 1, upper)
	if err != nil {
		return err
	}
	anns := a.Annotations()
	if len(ops) == 1 {
		return tr.writePair(w, ops[0], ops[0], anns)
	}
	for _, o := range ops[1:] {
		if err := tr.writePair(w, ops[0], o, anns); err != nil {
			return err
		}
	}
	return nil
}

func namedEnds(_ graph.Graph, t ontology.Triple) (bool, error) {
	return t.S.IsIRI() && t.O.IsIRI(), nil
}

func individualsOnly(g graph.Graph, t ontology.Triple) (bool, error) {
	ok, err := isIndividualNode(g, t.S)
	if err != nil || !ok {
		return false, err
	}
	return isIndividualNode(g, t.O)
}

func tripleTranslators() []Translator {
	objectSubject := subjectIs(ontology.ObjectProperty)
	dataSubject := subjectIs(ontology.DataProperty)
	annSubject := subjectIs(ontology.AnnotationProperty)

	return []Translator{
		&tripleTranslator{kind: SubClassOf, predicate: vocab.SubClassOf, subject: classRole, object: classRole},
		setTranslator{&tripleTranslator{kind: EquivalentClasses, predicate: vocab.EquivalentClass, subject: classRole, object: classRole}},

		&tripleTranslator{kind: SubObjectPropertyOf, predicate: vocab.SubPropertyOf, subject: objectPropRole, object: objectPropRole, accept: objectSubject},
		&tripleTranslator{kind: SubDataPropertyOf, predicate: vocab.SubPropertyOf, subject: dataPropRole, object: dataPropRole, accept: dataSubject},
		&tripleTranslator{kind: SubAnnotationPropertyOf, predicate: vocab.SubPropertyOf, subject: annPropRole, object: annPropRole, accept: annSubject},

		&tripleTranslator{kind: ObjectPropertyDomain, predicate: vocab.Domain, subject: objectPropRole, object: classRole, accept: objectSubject},
		&tripleTranslator{kind: ObjectPropertyRange, predicate: vocab.Range, subject: objectPropRole, object: classRole, accept: objectSubject},
		&tripleTranslator{kind: DataPropertyDomain, predicate: vocab.Domain, subject: dataPropRole, object: classRole, accept: dataSubject},
		&tripleTranslator{kind: DataPropertyRange, predicate: vocab.Range, subject: dataPropRole, object: dataRangeRole, accept: dataSubject},
		&tripleTranslator{kind: AnnotationPropertyDomain, predicate: vocab.Domain, subject: annPropRole, object: iriRole, accept: annSubject},
		&tripleTranslator{kind: AnnotationPropertyRange, predicate: vocab.Range, subject: annPropRole, object: iriRole, accept: annSubject},

		setTranslator{&tripleTranslator{kind: InverseObjectProperties, predicate: vocab.InverseOf, subject: objectPropRole, object: objectPropRole, accept: namedEnds}},
		setTranslator{&tripleTranslator{kind: EquivalentObjectProperties, predicate: vocab.EquivalentProperty, subject: objectPropRole, object: objectPropRole, accept: objectSubject}},
		setTranslator{&tripleTranslator{kind: EquivalentDataProperties, predicate: vocab.EquivalentProperty, subject: dataPropRole, object: dataPropRole, accept: dataSubject}},

		setTranslator{&tripleTranslator{kind: SameIndividual, predicate: vocab.SameAs, subject: individualRole, object: individualRole, accept: individualsOnly}},
	}
}
