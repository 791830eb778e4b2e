package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/model"
	"github.com/wbrown/janus-owl/ontology/objects"
)

const sample = `<http://example.com/A> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.com/B> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.com/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.com/B> .
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.nq"), sample)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.nq"), sample)
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), "ignored")

	files, err := expandPatterns([]string{
		filepath.Join(dir, "**", "*.nq"),
		filepath.Join(dir, "a.nq"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.nq"),
		filepath.Join(dir, "nested", "deep", "b.nq"),
	}, files)

	_, err = expandPatterns([]string{"[broken"})
	assert.Error(t, err)
}

func TestWatcherMatching(t *testing.T) {
	w := &fileWatcher{patterns: []string{"onto/**/*.nq"}}
	assert.True(t, w.matches("onto/x/y.nq"))
	assert.True(t, w.matches("onto/y.nq"))
	assert.False(t, w.matches("onto/y.ttl"))
	assert.Equal(t, []string{"onto"}, w.roots())
}

func TestAxiomTable(t *testing.T) {
	g := graph.NewMemGraph()
	n, err := importReader(g, bytes.NewBufferString(sample), "sample")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	ont, err := model.New(g)
	require.NoError(t, err)
	list, err := ont.AxiomList(axioms.SubClassOf)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeAxiomTable(&out, ont, list))
	assert.Contains(t, out.String(), "SubClassOf")
	assert.Contains(t, out.String(), "_1 axioms_")

	out.Reset()
	require.NoError(t, writeAxiomTable(&out, ont, nil))
	assert.Contains(t, out.String(), "_No axioms_")

	_, err = ont.AddAxiom(axioms.New(axioms.Declaration, objects.ObjectProperty("http://example.com/p")))
	require.NoError(t, err)
	st, err := ont.Stats()
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, writeStats(&out, st))
	assert.Contains(t, out.String(), "4 axioms over 4 triples")
	assert.Contains(t, out.String(), "Declaration")
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"subclassof", "HasKey"})
	require.NoError(t, err)
	assert.Equal(t, []axioms.Kind{axioms.SubClassOf, axioms.HasKey}, kinds)
	_, err = parseKinds([]string{"NoSuchKind"})
	assert.Error(t, err)
}

func TestLoadAndStatsCommands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "sample.nq"), sample)

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append([]string{"--db", filepath.Join(dir, "db")}, args...))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Contains(t, run("load", filepath.Join(dir, "data", "*.nq")), "Imported 3 triples from 1 files; 3 axioms")
	assert.Contains(t, run("axioms", "--kind", "SubClassOf"), "SubClassOf")
	assert.Contains(t, run("stats", "--metrics"), "owl_cache_loads_total")

	exported := filepath.Join(dir, "out.nq")
	run("export", "--out", exported)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")))
}
