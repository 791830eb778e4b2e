package ontology

import (
	"errors"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeQuadConversion(t *testing.T) {
	nodes := []Node{
		IRI("http://example.com/a"),
		Blank("b1"),
		PlainLiteral("hello"),
		LangLiteral("bonjour", "FR"),
		Literal("42", "http://www.w3.org/2001/XMLSchema#integer"),
	}
	for _, n := range nodes {
		back, err := FromQuad(n.Quad())
		require.NoError(t, err)
		assert.Equal(t, n, back, n.String())
	}

	assert.Equal(t, "fr", nodes[3].Lang)
	assert.Equal(t, PlainLiteral("x"), Literal("x", XSDString))
}

func TestFromQuadNativeValues(t *testing.T) {
	n, err := FromQuad(quad.Int(7))
	require.NoError(t, err)
	assert.True(t, n.IsLiteral())
	assert.Equal(t, "7", n.Value)
}

func TestNodeMatchesAndCompare(t *testing.T) {
	a := IRI("http://example.com/a")
	b := IRI("http://example.com/b")

	assert.True(t, a.Matches(Wildcard))
	assert.True(t, a.Matches(a))
	assert.False(t, a.Matches(b))

	assert.Equal(t, -1, CompareNodes(a, b))
	assert.Equal(t, 1, CompareNodes(PlainLiteral("a"), b))
	assert.Equal(t, 0, CompareNodes(a, IRI("http://example.com/a")))

	ts := []Triple{T(b, a, a), T(a, b, a), T(a, a, b)}
	SortTriples(ts)
	assert.Equal(t, T(a, a, b), ts[0])
	assert.Equal(t, T(b, a, a), ts[2])
}

func TestNewBlankIsUnique(t *testing.T) {
	seen := map[Node]bool{}
	for i := 0; i < 100; i++ {
		n := NewBlank()
		require.True(t, n.IsBlank())
		require.False(t, seen[n])
		seen[n] = true
	}
}

func TestGeneration(t *testing.T) {
	g := NewGeneration()
	assert.Equal(t, uint64(1), g.Current())
	assert.Equal(t, uint64(2), g.Bump())
	assert.Equal(t, uint64(2), g.Current())
}

func TestErrorClassification(t *testing.T) {
	err := Malformed("list %s is broken", "_:l")
	assert.True(t, errors.Is(err, ErrMalformedPattern))
	assert.True(t, IsRecoverable(err))

	conflict := Conflict("http://example.com/p", ObjectProperty, DataProperty)
	assert.True(t, errors.Is(conflict, ErrSignatureConflict))
	assert.Equal(t, ErrorRejected, Classify(conflict))

	wrapped := Wrap(Invariant("hash mismatch"), "axioms", "Content", "reload")
	assert.True(t, errors.Is(wrapped, ErrInvariantViolation))
	assert.True(t, IsFatal(wrapped))
	assert.Contains(t, wrapped.Error(), "axioms.Content: reload failed")

	assert.Nil(t, Wrap(nil, "a", "b", "c"))
	assert.True(t, IsFatal(errors.New("disk on fire")))
}

func TestPunningModes(t *testing.T) {
	assert.False(t, PunningMedium.Allows(ObjectProperty, DataProperty))
	assert.False(t, PunningMedium.Allows(Class, Datatype))
	assert.True(t, PunningMedium.Allows(Class, NamedIndividual))
	assert.True(t, PunningMedium.Allows(Class, ObjectProperty))

	assert.False(t, PunningStrict.Allows(Class, NamedIndividual))
	assert.True(t, PunningStrict.Allows(Class, Class))

	assert.True(t, PunningLax.Allows(ObjectProperty, DataProperty))
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("punning: strict\ncontent_cache: false\n"))
	require.NoError(t, err)
	assert.Equal(t, PunningStrict, cfg.Punning)
	assert.False(t, cfg.ContentCache)
	// untouched fields keep their defaults
	assert.True(t, cfg.IgnoreReadErrors)
	assert.True(t, cfg.LoadAnnotations)

	_, err = ParseConfig([]byte("punning: sometimes\n"))
	assert.Error(t, err)

	_, err = LoadConfig("/nonexistent/ontology.yaml")
	assert.Error(t, err)
}
