package axioms

import (
	"iter"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// readMembers decodes the rdf list at head. memberRole picks the role per
// member node. The list cells are owned by the statement.
func readMembers(f *objects.Factory, head ontology.Node, memberRole func(ontology.Node) (role, error), owned *[]ontology.Triple) ([]objects.Object, error) {
	g := f.Graph()
	nodes, err := graph.ReadList(g, head)
	if err != nil {
		return nil, err
	}
	cells, err := graph.ListTriples(g, head)
	if err != nil {
		return nil, err
	}
	*owned = append(*owned, cells...)
	out := make([]objects.Object, 0, len(nodes))
	for _, n := range nodes {
		r, err := memberRole(n)
		if err != nil {
			return nil, err
		}
		o, err := r.resolve(f, n, owned)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func fixed(r role) func(ontology.Node) (role, error) {
	return func(ontology.Node) (role, error) { return r, nil }
}

// listTranslator reads (subject predicate list) where every statement owns
// a fresh list: disjoint unions and keys. Equal member lists on distinct
// list nodes stay separate statements.
type listTranslator struct {
	kind      Kind
	predicate ontology.Node
	subject   role
	member    func(g graph.Graph) func(ontology.Node) (role, error)
}

func (tr *listTranslator) Kind() Kind { return tr.kind }

func (tr *listTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	return g.Find(ontology.Wildcard, tr.predicate, ontology.Wildcard)
}

func (tr *listTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P != tr.predicate {
		return Decoded{}, ontology.Malformed("%s is not a %s statement", t, tr.kind)
	}
	return finish(tr.kind, f, cfg, func() (decodedParts, error) {
		owned := []ontology.Triple{t}
		s, err := tr.subject.resolve(f, t.S, &owned)
		if err != nil {
			return decodedParts{}, err
		}
		members, err := readMembers(f, t.O, tr.member(f.Graph()), &owned)
		if err != nil {
			return decodedParts{}, err
		}
		anns, blocks, err := tripleAnnotations(f, cfg, t)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{
			operands: append([]objects.Object{s}, members...),
			anns:     anns,
			triples:  append(owned, blocks...),
		}, nil
	})
}

func (tr *listTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 2, -1)
	if err != nil {
		return err
	}
	nodes, err := w.Nodes(ops)
	if err != nil {
		return err
	}
	head, err := w.List(nodes[1:])
	if err != nil {
		return err
	}
	return writeStatement(w, nodes[0], tr.predicate, head, a.Annotations())
}

// disjointTranslator handles n-ary disjointness and difference: two
// operands are a single pairwise triple, more are a blank anchor typed
// anchorType whose members list holds the operands in order.
type disjointTranslator struct {
	pair       *tripleTranslator
	anchorType ontology.Node
	members    []ontology.Node
	member     role
	// acceptAnchor filters anchors shared between kinds; nil accepts all.
	acceptAnchor func(g graph.Graph, members []ontology.Node) (bool, error)
}

func (tr *disjointTranslator) Kind() Kind { return tr.pair.kind }

func (tr *disjointTranslator) memberList(g graph.Graph, x ontology.Node) (ontology.Node, ontology.Node, bool, error) {
	for _, p := range tr.members {
		head, ok, err := graph.Object(g, x, p)
		if err != nil || ok {
			return p, head, ok, err
		}
	}
	return ontology.Wildcard, ontology.Wildcard, false, nil
}

func (tr *disjointTranslator) Statements(g graph.Graph) iter.Seq2[ontology.Triple, error] {
	anchors := filter(g.Find(ontology.Wildcard, vocab.Type, tr.anchorType), func(t ontology.Triple) (bool, error) {
		if tr.acceptAnchor == nil {
			return true, nil
		}
		_, head, ok, err := tr.memberList(g, t.S)
		if err != nil || !ok {
			return false, err
		}
		nodes, err := graph.ReadList(g, head)
		if err != nil {
			// let ToAxiom report the malformed list
			return true, nil
		}
		return tr.acceptAnchor(g, nodes)
	})
	return concat(tr.pair.Statements(g), anchors)
}

func (tr *disjointTranslator) ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error) {
	if t.P == tr.pair.predicate {
		return tr.pair.ToAxiom(t, f, cfg)
	}
	if t.P != vocab.Type || t.O != tr.anchorType {
		return Decoded{}, ontology.Malformed("%s is not a %s statement", t, tr.Kind())
	}
	g := f.Graph()
	x := t.S
	return finish(tr.Kind(), f, cfg, func() (decodedParts, error) {
		p, head, ok, err := tr.memberList(g, x)
		if err != nil {
			return decodedParts{}, err
		}
		if !ok {
			return decodedParts{}, ontology.Malformed("%s anchor %s has no members", tr.Kind(), x)
		}
		owned := []ontology.Triple{t, ontology.T(x, p, head)}
		members, err := readMembers(f, head, fixed(tr.member), &owned)
		if err != nil {
			return decodedParts{}, err
		}
		if len(members) < 2 {
			return decodedParts{}, ontology.Malformed("%s anchor %s has %d members", tr.Kind(), x, len(members))
		}
		skeleton := append([]ontology.Node{vocab.Type}, tr.members...)
		anns, direct, err := anchorAnnotations(f, cfg, x, skeleton...)
		if err != nil {
			return decodedParts{}, err
		}
		return decodedParts{operands: members, anns: anns, triples: append(owned, direct...)}, nil
	})
}

func (tr *disjointTranslator) Write(w *objects.Writer, a *Axiom) error {
	ops, err := arity(a, 2, -1)
	if err != nil {
		return err
	}
	if len(ops) == 2 {
		return tr.pair.writePair(w, ops[0], ops[1], a.Annotations())
	}
	nodes, err := w.Nodes(ops)
	if err != nil {
		return err
	}
	head, err := w.List(nodes)
	if err != nil {
		return err
	}
	x := ontology.NewBlank()
	if err := w.Triple(x, vocab.Type, tr.anchorType); err != nil {
		return err
	}
	if err := w.Triple(x, tr.members[0], head); err != nil {
		return err
	}
	return w.AnnotateNode(x, a.Annotations())
}

func firstMemberIs(k ontology.EntityKind) func(graph.Graph, []ontology.Node) (bool, error) {
	return func(g graph.Graph, members []ontology.Node) (bool, error) {
		if len(members) == 0 {
			return false, nil
		}
		pk, err := propertyKind(g, members[0])
		return pk == k, err
	}
}

func listTranslators() []Translator {
	keyMember := func(g graph.Graph) func(ontology.Node) (role, error) {
		return func(n ontology.Node) (role, error) {
			k, err := propertyKind(g, n)
			if err != nil {
				return role{}, err
			}
			if k == ontology.DataProperty {
				return dataPropRole, nil
			}
			return objectPropRole, nil
		}
	}
	classMember := func(graph.Graph) func(ontology.Node) (role, error) { return fixed(classRole) }
	namedClass := role{read: func(f *objects.Factory, n ontology.Node) (objects.Object, error) {
		return f.Entity(n, ontology.Class)
	}}

	return []Translator{
		&listTranslator{kind: DisjointUnion, predicate: vocab.DisjointUnionOf, subject: namedClass, member: classMember},
		&listTranslator{kind: HasKey, predicate: vocab.HasKey, subject: classRole, member: keyMember},

		&disjointTranslator{
			pair:       &tripleTranslator{kind: DisjointClasses, predicate: vocab.DisjointWith, subject: classRole, object: classRole},
			anchorType: vocab.AllDisjointClasses,
			members:    []ontology.Node{vocab.Members},
			member:     classRole,
		},
		&disjointTranslator{
			pair: &tripleTranslator{kind: DisjointObjectProperties, predicate: vocab.PropertyDisjointWith,
				subject: objectPropRole, object: objectPropRole, accept: subjectIs(ontology.ObjectProperty)},
			anchorType:   vocab.AllDisjointProperties,
			members:      []ontology.Node{vocab.Members},
			member:       objectPropRole,
			acceptAnchor: firstMemberIs(ontology.ObjectProperty),
		},
		&disjointTranslator{
			pair: &tripleTranslator{kind: DisjointDataProperties, predicate: vocab.PropertyDisjointWith,
				subject: dataPropRole, object: dataPropRole, accept: subjectIs(ontology.DataProperty)},
			anchorType:   vocab.AllDisjointProperties,
			members:      []ontology.Node{vocab.Members},
			member:       dataPropRole,
			acceptAnchor: firstMemberIs(ontology.DataProperty),
		},
		&disjointTranslator{
			pair: &tripleTranslator{kind: DifferentIndividuals, predicate: vocab.DifferentFrom,
				subject: individualRole, object: individualRole, accept: individualsOnly},
			anchorType: vocab.AllDifferent,
			members:    []ontology.Node{vocab.Members, vocab.DistinctMembers},
			member:     individualRole,
		},
	}
}

func builtinTranslators() []Translator {
	var out []Translator
	out = append(out, typeTranslators()...)
	out = append(out, tripleTranslators()...)
	out = append(out, assertionTranslators()...)
	out = append(out, negativeTranslators()...)
	out = append(out, listTranslators()...)
	return out
}
