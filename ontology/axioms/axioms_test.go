package axioms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

const ex = "http://example.com/"

var (
	clsA = objects.Class(ex + "A")
	clsB = objects.Class(ex + "B")
	clsC = objects.Class(ex + "C")
	opP  = objects.ObjectProperty(ex + "p")
	opQ  = objects.ObjectProperty(ex + "q")
	opR  = objects.ObjectProperty(ex + "r")
	dpD  = objects.DataProperty(ex + "d")
	dpE  = objects.DataProperty(ex + "e")
	apN  = objects.AnnotationProperty(ex + "note")
	indI = objects.NamedIndividual(ex + "i")
	indJ = objects.NamedIndividual(ex + "j")
	indK = objects.NamedIndividual(ex + "k")
	lit5 = objects.TypedLiteral("5", vocab.XSDInteger.Value)
)

func annotations() []objects.Annotation {
	return []objects.Annotation{
		objects.NewAnnotation(objects.Comment, objects.PlainLiteral("why"),
			objects.NewAnnotation(objects.Label, objects.PlainLiteral("nested"))),
		objects.NewAnnotation(apN, objects.IRIValue{IRI: ex + "doc"}),
	}
}

func write(t *testing.T, g graph.Graph, a *Axiom) *objects.Writer {
	t.Helper()
	tr, ok := Default().Lookup(a.Kind())
	require.True(t, ok, a.Kind())
	w := objects.NewWriter(g)
	require.NoError(t, tr.Write(w, a), a.Key())
	return w
}

// decodeAll runs every translator over g and requires every candidate
// statement to decode cleanly.
func decodeAll(t *testing.T, g graph.Graph, cfg ontology.Config) []Decoded {
	t.Helper()
	f := objects.NewFactory(g, nil, cfg)
	var out []Decoded
	for _, k := range Default().Kinds() {
		tr, _ := Default().Lookup(k)
		for st, err := range tr.Statements(g) {
			require.NoError(t, err)
			d, err := tr.ToAxiom(st, f, cfg)
			require.NoError(t, err, "%s from %s", k, st)
			out = append(out, d)
		}
	}
	return out
}

func ofKind(ds []Decoded, k Kind) []*Axiom {
	var out []*Axiom
	for _, d := range ds {
		if d.Axiom.Kind() == k {
			out = append(out, d.Axiom)
		}
	}
	return out
}

func TestRoundTripEveryKind(t *testing.T) {
	cases := []*Axiom{
		New(Declaration, clsA),
		New(SubClassOf, clsA, objects.SomeValuesFrom(opP, clsB)),
		New(EquivalentClasses, clsB, clsA),
		New(DisjointClasses, clsB, clsA),
		New(DisjointClasses, clsC, clsA, clsB),
		New(DisjointUnion, clsA, clsC, clsB),
		New(HasKey, clsA, opP, dpD),
		New(ClassAssertion, objects.ComplementOf(clsA), indI),
		New(ObjectPropertyAssertion, opP, indI, indJ),
		New(DataPropertyAssertion, dpD, indI, lit5),
		New(AnnotationAssertion, apN, objects.IRIValue{IRI: ex + "A"}, objects.PlainLiteral("text")),
		New(NegativeObjectPropertyAssertion, opP, indI, indJ),
		New(NegativeDataPropertyAssertion, dpD, indI, lit5),
		New(SubObjectPropertyOf, opP, objects.InverseOf(opQ)),
		New(SubDataPropertyOf, dpD, dpE),
		New(SubAnnotationPropertyOf, apN, objects.Comment),
		New(ObjectPropertyDomain, opP, clsA),
		New(ObjectPropertyRange, opP, objects.UnionOf(clsA, clsB)),
		New(DataPropertyDomain, dpD, clsA),
		New(DataPropertyRange, dpD, objects.Datatype(vocab.XSDInteger.Value)),
		New(AnnotationPropertyDomain, apN, objects.IRIValue{IRI: ex + "A"}),
		New(AnnotationPropertyRange, apN, objects.IRIValue{IRI: ex + "B"}),
		New(InverseObjectProperties, opQ, opP),
		New(EquivalentObjectProperties, opP, opQ),
		New(EquivalentDataProperties, dpE, dpD),
		New(DisjointObjectProperties, opP, opQ),
		New(DisjointObjectProperties, opR, opP, opQ),
		New(DisjointDataProperties, dpD, dpE),
		New(FunctionalObjectProperty, opP),
		New(InverseFunctionalObjectProperty, opP),
		New(TransitiveObjectProperty, opP),
		New(SymmetricObjectProperty, opP),
		New(AsymmetricObjectProperty, opP),
		New(ReflexiveObjectProperty, opP),
		New(IrreflexiveObjectProperty, objects.InverseOf(opP)),
		New(FunctionalDataProperty, dpD),
		New(SameIndividual, indJ, indI),
		New(DifferentIndividuals, indI, indJ),
		New(DifferentIndividuals, indK, indI, indJ),
	}

	covered := map[Kind]bool{}
	for _, plain := range cases {
		covered[plain.Kind()] = true
		for _, want := range []*Axiom{plain, plain.Annotated(annotations()...)} {
			g := graph.NewMemGraph()
			write(t, g, want)

			got := ofKind(decodeAll(t, g, ontology.DefaultConfig()), want.Kind())
			if want.Kind() != Declaration {
				// declarations of the other entities decode alongside
				require.Len(t, got, 1, want.Key())
			}
			var match *Axiom
			for _, a := range got {
				if want.Equal(a) {
					match = a
				}
			}
			require.NotNil(t, match, "want %s\n got %v", want, got)
			assert.Equal(t, want.Hash(), match.Hash())
		}
	}
	assert.Len(t, covered, len(AllKinds()), "every kind has a round trip case")
}

func TestKeyNormalization(t *testing.T) {
	assert.True(t, New(EquivalentClasses, clsB, clsA, clsA).Equal(New(EquivalentClasses, clsA, clsB)))
	assert.True(t, New(DisjointClasses, clsB, clsA).Equal(New(DisjointClasses, clsA, clsB)))
	assert.False(t, New(DisjointClasses, clsA, clsB, clsC).Equal(New(DisjointClasses, clsC, clsB, clsA)),
		"member lists keep their order")
	assert.False(t, New(DisjointUnion, clsA, clsB, clsC).Equal(New(DisjointUnion, clsA, clsC, clsB)))
	assert.Len(t, New(HasKey, clsA, opP, opP).Operands(), 3, "key lists keep duplicates")

	c := objects.NewAnnotation(objects.Comment, objects.PlainLiteral("XY"))
	twice := NewAnnotated(SubClassOf, []objects.Object{clsA, clsB}, []objects.Annotation{c, c})
	once := New(SubClassOf, clsA, clsB).Annotated(c)
	assert.True(t, twice.Equal(once))
	assert.False(t, once.Equal(New(SubClassOf, clsA, clsB)))
	assert.True(t, once.WithoutAnnotations().Equal(New(SubClassOf, clsA, clsB)))
	assert.True(t, once.IsAnnotated())
	assert.Nil(t, New(SubClassOf, clsA, clsB).Annotations())
}

func TestSignature(t *testing.T) {
	a := New(SubClassOf, clsA, objects.SomeValuesFrom(opP, clsB)).
		Annotated(objects.NewAnnotation(apN, objects.PlainLiteral("x")))
	assert.ElementsMatch(t, []objects.Entity{clsA, opP, clsB, apN}, a.Signature())
}

func TestSimplified(t *testing.T) {
	inv := New(ObjectPropertyAssertion, objects.InverseOf(opP), indI, indJ)
	assert.True(t, inv.Simplified().Equal(New(ObjectPropertyAssertion, opP, indJ, indI)))

	plain := New(ObjectPropertyAssertion, opP, indI, indJ)
	assert.Same(t, plain, plain.Simplified())

	g := graph.NewMemGraph()
	write(t, g, inv)
	ok, err := g.Contains(ontology.T(indJ.Node(), opP.Node(), indI.Node()))
	require.NoError(t, err)
	assert.True(t, ok, "inverse assertions are written in simplified form")
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, AllKinds(), Default().Kinds())

	tr, ok := Default().Lookup(SubClassOf)
	require.True(t, ok)
	assert.Equal(t, SubClassOf, tr.Kind())

	r, err := NewRegistry(tr)
	require.NoError(t, err)
	assert.Error(t, r.Register(tr))
	_, ok = r.Lookup(HasKey)
	assert.False(t, ok)

	k, err := ParseKind("disjointunion")
	require.NoError(t, err)
	assert.Equal(t, DisjointUnion, k)
	_, err = ParseKind("nope")
	assert.Error(t, err)
}

func TestDuplicateAnnotationBlocks(t *testing.T) {
	x, y := ontology.IRI(ex+"X"), ontology.IRI(ex+"Y")
	base := ontology.T(x, vocab.SubClassOf, y)

	build := func(comments ...string) graph.Graph {
		g := graph.NewMemGraph()
		require.NoError(t, graph.AddAll(g,
			ontology.T(x, vocab.Type, vocab.Class),
			ontology.T(y, vocab.Type, vocab.Class),
			base,
		))
		w := objects.NewWriter(g)
		for _, c := range comments {
			require.NoError(t, w.Annotate(base, []objects.Annotation{
				objects.NewAnnotation(objects.Comment, objects.PlainLiteral(c)),
			}))
		}
		return g
	}

	ds := decodeAll(t, build("XY", "XY"), ontology.DefaultConfig())
	require.Len(t, ds, 3)
	var sub Decoded
	for _, d := range ds {
		if d.Axiom.Kind() == SubClassOf {
			sub = d
		}
	}
	require.NotNil(t, sub.Axiom)
	assert.Len(t, sub.Axiom.Annotations(), 1, "identical blocks merge")
	assert.Len(t, sub.Triples, 11, "the statement owns both blocks")

	subs := ofKind(decodeAll(t, build("one", "two"), ontology.DefaultConfig()), SubClassOf)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Annotations(), 2, "distinct blocks are all kept")
}

func TestListStatementsStaySeparate(t *testing.T) {
	g := graph.NewMemGraph()
	c := make([]ontology.Node, 5)
	for i := range c {
		c[i] = ontology.IRI(ex + "c" + string(rune('0'+i)))
		_, err := g.Add(ontology.T(c[i], vocab.Type, vocab.Class))
		require.NoError(t, err)
	}
	for _, members := range [][]ontology.Node{{c[4], c[3]}, {c[2], c[1], c[1]}} {
		head, err := graph.WriteList(g, members)
		require.NoError(t, err)
		_, err = g.Add(ontology.T(c[0], vocab.DisjointUnionOf, head))
		require.NoError(t, err)
	}

	ds := decodeAll(t, g, ontology.DefaultConfig())
	assert.Len(t, ds, 7)
	unions := ofKind(ds, DisjointUnion)
	require.Len(t, unions, 2)
	assert.Len(t, unions[1].Operands(), 4, "repeated members are kept")
}

func TestContentLifecycle(t *testing.T) {
	g := graph.NewMemGraph()
	want := New(DisjointUnion, clsA, clsB, clsC).Annotated(annotations()...)
	write(t, g, want)

	cfg := ontology.DefaultConfig()
	cfg.ContentCache = false
	gen := ontology.NewGeneration()
	f := objects.NewFactory(g, gen, cfg)
	tr, _ := Default().Lookup(DisjointUnion)

	var got *Axiom
	for st, err := range tr.Statements(g) {
		require.NoError(t, err)
		d, err := tr.ToAxiom(st, f, cfg)
		require.NoError(t, err)
		got = d.Axiom
	}
	require.NotNil(t, got)
	assert.Equal(t, Uninitialized, got.State(), "content is dropped when caching is off")
	assert.Equal(t, want.Key(), got.Key())

	assert.Len(t, got.Operands(), 3)
	assert.Equal(t, Cached, got.State())

	gen.Bump()
	assert.Equal(t, Uninitialized, got.State(), "a new generation makes content stale")
	c, err := got.Content()
	require.NoError(t, err)
	assert.Len(t, c.Annotations, 2)
	assert.Equal(t, Cached, got.State())

	assert.Equal(t, Cached, New(SubClassOf, clsA, clsB).State())
}

func TestContentMustMatchHash(t *testing.T) {
	g := graph.NewMemGraph()
	write(t, g, New(DisjointUnion, clsA, clsB, clsC))

	gen := ontology.NewGeneration()
	cfg := ontology.DefaultConfig()
	f := objects.NewFactory(g, gen, cfg)
	tr, _ := Default().Lookup(DisjointUnion)

	var got *Axiom
	var anchor ontology.Triple
	for st, err := range tr.Statements(g) {
		require.NoError(t, err)
		d, err := tr.ToAxiom(st, f, cfg)
		require.NoError(t, err)
		got, anchor = d.Axiom, st
	}
	require.NotNil(t, got)

	// swap the first member behind the cache's back
	d := ontology.IRI(ex + "D")
	require.NoError(t, graph.AddAll(g, ontology.T(d, vocab.Type, vocab.Class)))
	_, err := g.Delete(ontology.T(anchor.O, vocab.First, clsB.Node()))
	require.NoError(t, err)
	_, err = g.Add(ontology.T(anchor.O, vocab.First, d))
	require.NoError(t, err)

	assert.Len(t, got.Operands(), 3, "cached content is served until the generation moves")

	gen.Bump()
	_, err = got.Content()
	assert.ErrorIs(t, err, ontology.ErrInvariantViolation)
	assert.True(t, ontology.IsFatal(err))
	assert.Panics(t, func() { got.Operands() })
}

func TestMalformedStatements(t *testing.T) {
	g := graph.NewMemGraph()
	x := ontology.Blank("npa")
	require.NoError(t, graph.AddAll(g,
		ontology.T(opP.Node(), vocab.Type, vocab.ObjectProperty),
		ontology.T(x, vocab.Type, vocab.NegativePropertyAssertion),
		ontology.T(x, vocab.AssertionProperty, opP.Node()),
		ontology.T(x, vocab.TargetIndividual, indJ.Node()),
	))

	f := objects.NewFactory(g, nil, ontology.DefaultConfig())
	tr, _ := Default().Lookup(NegativeObjectPropertyAssertion)
	n := 0
	for st, err := range tr.Statements(g) {
		require.NoError(t, err)
		_, err = tr.ToAxiom(st, f, ontology.DefaultConfig())
		assert.ErrorIs(t, err, ontology.ErrMalformedPattern)
		assert.True(t, ontology.IsRecoverable(err))
		n++
	}
	assert.Equal(t, 1, n)

	_, err := tr.ToAxiom(ontology.T(x, vocab.Type, vocab.Class), f, ontology.DefaultConfig())
	assert.ErrorIs(t, err, ontology.ErrMalformedPattern)

	tr, _ = Default().Lookup(SubClassOf)
	assert.ErrorIs(t, tr.Write(objects.NewWriter(g), New(SubClassOf, clsA)), ontology.ErrMalformedPattern)
}
