package graph

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

const ex = "http://example.com/"

func iri(local string) ontology.Node { return ontology.IRI(ex + local) }

// stores returns one of each Graph implementation.
func stores(t *testing.T) map[string]Graph {
	t.Helper()

	dir, err := os.MkdirTemp("", "badger-graph-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	disk, err := NewBadgerStore(dir, NewKeyEncoder(BinaryStrategy))
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	mem, err := NewInMemoryBadgerStore(NewKeyEncoder(L85Strategy))
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	return map[string]Graph{
		"memory":     NewMemGraph(),
		"badger":     disk,
		"badger-l85": mem,
	}
}

func TestGraphBasics(t *testing.T) {
	for name, g := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := ontology.T(iri("A"), vocab.Type, vocab.Class)
			b := ontology.T(iri("B"), vocab.Type, vocab.Class)
			sub := ontology.T(iri("A"), vocab.SubClassOf, iri("B"))
			lit := ontology.T(iri("A"), vocab.Label, ontology.LangLiteral("a", "en"))

			for _, tr := range []ontology.Triple{a, b, sub, lit} {
				added, err := g.Add(tr)
				require.NoError(t, err)
				assert.True(t, added)
			}
			added, err := g.Add(a)
			require.NoError(t, err)
			assert.False(t, added, "duplicate add must not change the graph")

			size, err := g.Size()
			require.NoError(t, err)
			assert.Equal(t, 4, size)

			ok, err := g.Contains(lit)
			require.NoError(t, err)
			assert.True(t, ok)

			bySubject, err := FindAll(g, iri("A"), ontology.Wildcard, ontology.Wildcard)
			require.NoError(t, err)
			assert.ElementsMatch(t, []ontology.Triple{a, sub, lit}, bySubject)

			byPredObj, err := FindAll(g, ontology.Wildcard, vocab.Type, vocab.Class)
			require.NoError(t, err)
			assert.ElementsMatch(t, []ontology.Triple{a, b}, byPredObj)

			bySubjObj, err := FindAll(g, iri("A"), ontology.Wildcard, iri("B"))
			require.NoError(t, err)
			assert.Equal(t, []ontology.Triple{sub}, bySubjObj)

			byObject, err := FindAll(g, ontology.Wildcard, ontology.Wildcard, iri("B"))
			require.NoError(t, err)
			assert.Equal(t, []ontology.Triple{sub}, byObject)

			exact, err := FindAll(g, sub.S, sub.P, sub.O)
			require.NoError(t, err)
			assert.Equal(t, []ontology.Triple{sub}, exact)

			deleted, err := g.Delete(sub)
			require.NoError(t, err)
			assert.True(t, deleted)
			deleted, err = g.Delete(sub)
			require.NoError(t, err)
			assert.False(t, deleted)

			size, err = g.Size()
			require.NoError(t, err)
			assert.Equal(t, 3, size)
		})
	}
}

func TestGraphRejectsPatterns(t *testing.T) {
	for name, g := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := g.Add(ontology.T(iri("A"), ontology.Wildcard, iri("B")))
			assert.ErrorIs(t, err, ontology.ErrMalformedPattern)
		})
	}
}

func TestFindSnapshotAllowsMutation(t *testing.T) {
	for name, g := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, c := range []string{"A", "B", "C"} {
				_, err := g.Add(ontology.T(iri(c), vocab.Type, vocab.Class))
				require.NoError(t, err)
			}
			for tr, err := range g.Find(ontology.Wildcard, vocab.Type, ontology.Wildcard) {
				require.NoError(t, err)
				_, err = g.Delete(tr)
				require.NoError(t, err)
			}
			size, err := g.Size()
			require.NoError(t, err)
			assert.Zero(t, size)
		})
	}
}

func TestMemGraphInsertionOrder(t *testing.T) {
	g := NewMemGraph()
	var want []ontology.Triple
	for _, c := range []string{"Z", "A", "M"} {
		tr := ontology.T(iri(c), vocab.Type, vocab.Class)
		want = append(want, tr)
		_, err := g.Add(tr)
		require.NoError(t, err)
	}
	got, err := FindAll(g, ontology.Wildcard, vocab.Type, vocab.Class)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLists(t *testing.T) {
	for name, g := range stores(t) {
		t.Run(name, func(t *testing.T) {
			items := []ontology.Node{iri("c2"), iri("c1"), iri("c1")}
			head, err := WriteList(g, items)
			require.NoError(t, err)

			got, err := ReadList(g, head)
			require.NoError(t, err)
			assert.Equal(t, items, got, "order and duplicates are kept")

			triples, err := ListTriples(g, head)
			require.NoError(t, err)
			assert.Len(t, triples, 6)

			empty, err := WriteList(g, nil)
			require.NoError(t, err)
			assert.Equal(t, vocab.Nil, empty)
			got, err = ReadList(g, empty)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMalformedLists(t *testing.T) {
	g := NewMemGraph()

	broken := ontology.Blank("l1")
	_, err := g.Add(ontology.T(broken, vocab.First, iri("A")))
	require.NoError(t, err)
	_, err = ReadList(g, broken)
	assert.ErrorIs(t, err, ontology.ErrMalformedPattern)

	cyclic := ontology.Blank("l2")
	require.NoError(t, AddAll(g,
		ontology.T(cyclic, vocab.First, iri("A")),
		ontology.T(cyclic, vocab.Rest, cyclic),
	))
	_, err = ReadList(g, cyclic)
	assert.ErrorIs(t, err, ontology.ErrMalformedPattern)

	_, err = ReadList(g, iri("notAList"))
	assert.ErrorIs(t, err, ontology.ErrMalformedPattern)
}

func TestAnnotationBlocks(t *testing.T) {
	g := NewMemGraph()
	base := ontology.T(iri("X"), vocab.SubClassOf, iri("Y"))
	_, err := g.Add(base)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		x, err := WriteBlock(g, base, vocab.Axiom)
		require.NoError(t, err)
		_, err = g.Add(ontology.T(x, vocab.Comment, ontology.PlainLiteral("XY")))
		require.NoError(t, err)
	}

	st, err := Annotate(g, base)
	require.NoError(t, err)
	require.Len(t, st.Blocks, 2)
	for _, b := range st.Blocks {
		assert.Len(t, b.Triples, 5)
		require.Len(t, b.Assertions, 1)
		assert.Equal(t, vocab.Comment, b.Assertions[0].P)

		isBlock, err := IsBlockNode(g, b.Node)
		require.NoError(t, err)
		assert.True(t, isBlock)
	}
	assert.Len(t, st.Triples(), 11)

	other, err := Annotate(g, ontology.T(iri("X"), vocab.SubClassOf, iri("Z")))
	require.NoError(t, err)
	assert.Empty(t, other.Blocks)
}

func TestNestedAnnotationBlocks(t *testing.T) {
	g := NewMemGraph()
	base := ontology.T(iri("X"), vocab.SubClassOf, iri("Y"))
	_, err := g.Add(base)
	require.NoError(t, err)

	x, err := WriteBlock(g, base, vocab.Axiom)
	require.NoError(t, err)
	payloadTriple := ontology.T(x, vocab.Comment, ontology.PlainLiteral("outer"))
	_, err = g.Add(payloadTriple)
	require.NoError(t, err)
	y, err := WriteBlock(g, payloadTriple, vocab.Annotation)
	require.NoError(t, err)
	_, err = g.Add(ontology.T(y, vocab.Label, ontology.PlainLiteral("inner")))
	require.NoError(t, err)

	st, err := Annotate(g, base)
	require.NoError(t, err)
	require.Len(t, st.Blocks, 1)
	b := st.Blocks[0]
	require.Len(t, b.Nested[payloadTriple], 1)
	assert.Len(t, b.Triples, 10)
}

func TestDirectAnnotations(t *testing.T) {
	g := NewMemGraph()
	anchor := ontology.Blank("npa")
	require.NoError(t, AddAll(g,
		ontology.T(anchor, vocab.Type, vocab.NegativePropertyAssertion),
		ontology.T(anchor, vocab.SourceIndividual, iri("a")),
		ontology.T(anchor, vocab.Comment, ontology.PlainLiteral("note")),
	))
	b, err := DirectAnnotations(g, anchor, func(p ontology.Node) bool {
		return p == vocab.Type || p == vocab.SourceIndividual
	})
	require.NoError(t, err)
	require.Len(t, b.Assertions, 1)
	assert.Equal(t, vocab.Comment, b.Assertions[0].P)
}

func TestRecorderRollback(t *testing.T) {
	for name, g := range stores(t) {
		t.Run(name, func(t *testing.T) {
			keep := ontology.T(iri("P"), vocab.Type, vocab.ObjectProperty)
			gone := ontology.T(iri("Q"), vocab.Type, vocab.ObjectProperty)
			require.NoError(t, AddAll(g, keep, gone))

			rec := NewRecorder(g)
			_, err := rec.Add(ontology.T(iri("P"), vocab.Type, vocab.DatatypeProperty))
			require.NoError(t, err)
			_, err = rec.Add(keep) // already present: not logged
			require.NoError(t, err)
			_, err = rec.Delete(gone)
			require.NoError(t, err)
			assert.Len(t, rec.Log(), 2)

			require.NoError(t, rec.Rollback())
			assert.Empty(t, rec.Log())

			all, err := FindAll(g, ontology.Wildcard, ontology.Wildcard, ontology.Wildcard)
			require.NoError(t, err)
			assert.ElementsMatch(t, []ontology.Triple{keep, gone}, all)
		})
	}
}

func TestClosure(t *testing.T) {
	g := NewMemGraph()
	u := ontology.Blank("u")
	head, err := WriteList(g, []ontology.Node{vocab.Thing, vocab.Nothing})
	require.NoError(t, err)
	require.NoError(t, AddAll(g,
		ontology.T(u, vocab.Type, vocab.Class),
		ontology.T(u, vocab.UnionOf, head),
		ontology.T(iri("X"), vocab.SubClassOf, u),
	))

	closure, err := Closure(g, u)
	require.NoError(t, err)
	assert.Len(t, closure, 6)

	none, err := Closure(g, iri("X"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNQuadsRoundTrip(t *testing.T) {
	src := NewMemGraph()
	require.NoError(t, AddAll(src,
		ontology.T(iri("A"), vocab.Type, vocab.Class),
		ontology.T(iri("A"), vocab.Label, ontology.LangLiteral("Alpha", "en")),
		ontology.T(iri("A"), vocab.Comment, ontology.Literal("1", vocab.XSDInteger.Value)),
		ontology.T(ontology.Blank("b0"), vocab.Type, vocab.Axiom),
	))

	var buf bytes.Buffer
	n, err := ExportNQuads(src, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	dst := NewMemGraph()
	added, err := ImportNQuads(dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	want, err := FindAll(src, ontology.Wildcard, ontology.Wildcard, ontology.Wildcard)
	require.NoError(t, err)
	got, err := FindAll(dst, ontology.Wildcard, ontology.Wildcard, ontology.Wildcard)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func TestImportNQuadsErrors(t *testing.T) {
	g := NewMemGraph()
	_, err := ImportNQuads(g, strings.NewReader("<http://example.com/a> this is not n-quads\n"))
	assert.Error(t, err)
}

func TestKeyEncoders(t *testing.T) {
	tr := ontology.T(iri("s"), iri("p"), iri("o"))
	for _, enc := range []KeyEncoder{NewKeyEncoder(BinaryStrategy), NewKeyEncoder(L85Strategy)} {
		for _, idx := range allIndices {
			key := enc.EncodeKey(idx, tr)
			a, b, _ := idx.order(tr)
			assert.True(t, bytes.HasPrefix(key, enc.EncodePrefix(idx, a)))
			assert.True(t, bytes.HasPrefix(key, enc.EncodePrefix(idx, a, b)))
			assert.Equal(t, byte(idx), key[0])
		}
	}

	idx, bound := chooseIndex(iri("s"), ontology.Wildcard, iri("o"))
	assert.Equal(t, OSP, idx)
	assert.Equal(t, []ontology.Node{iri("o"), iri("s")}, bound)
}

func TestTripleCodec(t *testing.T) {
	tr := ontology.T(ontology.Blank("x"), vocab.Label, ontology.LangLiteral("héllo \"q\"", "de"))
	back, err := decodeTriple(encodeTriple(tr))
	require.NoError(t, err)
	assert.Equal(t, tr, back)

	_, err = decodeTriple([]byte{byte(ontology.IRINode), 9})
	assert.True(t, errors.Is(err, ontology.ErrInvariantViolation))
}
