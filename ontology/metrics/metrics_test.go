package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilSafe(t *testing.T) {
	m, err := New(nil, "x")
	require.NoError(t, err)
	assert.Nil(t, m)

	assert.NotPanics(t, func() {
		m.AxiomAdded("SubClassOf")
		m.AxiomRemoved("SubClassOf")
		m.AxiomRejected("Declaration")
		m.StatementSkipped("ClassAssertion")
		m.CacheLoaded(3, 0.01)
		m.CacheCleared()
		m.CachedAxioms(2)
		m.FactoryLookup(true)
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "test")
	require.NoError(t, err)

	m.AxiomAdded("SubClassOf")
	m.AxiomAdded("SubClassOf")
	m.AxiomRejected("Declaration")
	m.CacheLoaded(7, 0.002)
	m.CachedAxioms(6)
	m.FactoryLookup(true)
	m.FactoryLookup(false)
	m.FactoryLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.axiomsAdded.WithLabelValues("SubClassOf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.axiomsRejected.WithLabelValues("Declaration")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLoads))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.cachedAxioms))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.factoryLookups.WithLabelValues("miss")))

	_, err = New(reg, "test")
	assert.Error(t, err, "collectors register once per ontology label")

	other, err := New(reg, "other")
	require.NoError(t, err)
	other.CacheCleared()
	assert.Equal(t, 1.0, testutil.ToFloat64(other.cacheClears))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.cacheClears))
}
