package annotations

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorDisabledWithoutHandler(t *testing.T) {
	c := NewCollector(nil)
	assert.False(t, c.Enabled())
	c.Add(Event{Name: AxiomAdded})
	assert.Empty(t, c.Events())

	var nilCollector *Collector
	assert.False(t, nilCollector.Enabled())
}

func TestCollectorRecordsAndForwards(t *testing.T) {
	var seen []string
	c := NewCollector(func(e Event) { seen = append(seen, e.Name) })

	c.AddTiming(AxiomAdded, time.Now(), map[string]any{"kind": "SubClassOf"})
	c.Add(Event{Name: CacheCleared})
	c.AddTiming(AxiomAdded, time.Now(), nil)

	assert.Equal(t, []string{AxiomAdded, CacheCleared, AxiomAdded}, seen)
	assert.Len(t, c.Named(AxiomAdded), 2)
	assert.GreaterOrEqual(t, c.Events()[0].Latency, time.Duration(0))

	c.Reset()
	assert.Empty(t, c.Events())
}

func TestCollectorLimit(t *testing.T) {
	c := NewCollector(func(Event) {})
	c.limit = 4
	for i := 0; i < 10; i++ {
		c.Add(Event{Name: AxiomAdded, Data: map[string]any{"i": i}})
	}
	events := c.Events()
	assert.LessOrEqual(t, len(events), 4)
	assert.Equal(t, 9, events[len(events)-1].Data["i"])
}

func TestFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter(&buf)

	f.Handle(Event{Name: AxiomAdded, Data: map[string]any{
		"kind": "SubClassOf", "axiom": "SubClassOf(Class(<x>) Class(<y>))", "triples.written": 3,
	}})
	f.Handle(Event{Name: AxiomRejected, Data: map[string]any{
		"axiom": "Declaration(DataProperty(<p>))", "error": "signature conflict",
	}})
	f.Handle(Event{Name: CacheLoaded, Data: map[string]any{
		"axioms.count": 5, "generation": uint64(2), "statements.skipped": 1,
	}})

	out := buf.String()
	assert.Contains(t, out, "+ SubClassOf SubClassOf(Class(<x>) Class(<y>)) (3 triples)")
	assert.Contains(t, out, "rejected: signature conflict")
	assert.Contains(t, out, "cache loaded with 5 axioms at generation 2 (1 skipped)")
	assert.Equal(t, 3, strings.Count(out, "\n"))

	long := strings.Repeat("x", 300)
	assert.Len(t, truncate(long), 100)
	assert.Contains(t, f.Format(Event{Name: "custom/event"}), "custom/event")
}

func TestSlogHandler(t *testing.T) {
	assert.Nil(t, SlogHandler(nil))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := SlogHandler(logger)
	require.NotNil(t, h)

	h(Event{Name: AxiomAdded, Data: map[string]any{"kind": "SubClassOf"}})
	assert.Empty(t, buf.String(), "added events log at debug")

	h(Event{Name: AxiomRejected, Data: map[string]any{"kind": "Declaration", "error": "conflict"}})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "msg=axiom/rejected")
	assert.Contains(t, buf.String(), "kind=Declaration")
}

func TestMulti(t *testing.T) {
	assert.Nil(t, Multi(nil, nil))
	n := 0
	h := Multi(func(Event) { n++ }, nil, func(Event) { n += 10 })
	h(Event{})
	assert.Equal(t, 11, n)
}
