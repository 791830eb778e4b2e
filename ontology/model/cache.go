package model

import (
	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/axioms"
)

// entry is one cached axiom. Several statements may decode to the same
// axiom; each contributes an anchor and its owned triples.
type entry struct {
	axiom   *axioms.Axiom
	anchors []ontology.Triple
	triples []ontology.Triple
	owns    map[ontology.Triple]bool
}

// Skipped records a statement that did not decode to an axiom.
type Skipped struct {
	Kind      axioms.Kind
	Statement ontology.Triple
	Err       error
}

// axiomCache holds every axiom of one generation. refs counts how many
// entries depend on each triple; a triple is deleted from the graph only
// when its count drops to zero.
type axiomCache struct {
	gen     uint64
	entries map[string]*entry
	order   []string
	counts  map[axioms.Kind]int
	refs    map[ontology.Triple]int
	skipped []Skipped
}

func newAxiomCache(gen uint64) *axiomCache {
	return &axiomCache{
		gen:     gen,
		entries: make(map[string]*entry),
		counts:  make(map[axioms.Kind]int),
		refs:    make(map[ontology.Triple]int),
	}
}

func (c *axiomCache) get(a *axioms.Axiom) (*entry, bool) {
	e, ok := c.entries[a.Key()]
	return e, ok
}

// put adds a to the cache, merging it into an equal entry if one exists.
// anchor may be the zero triple for axioms written through the facade.
func (c *axiomCache) put(a *axioms.Axiom, anchor ontology.Triple, triples []ontology.Triple) *entry {
	e, ok := c.entries[a.Key()]
	if !ok {
		e = &entry{axiom: a, owns: make(map[ontology.Triple]bool, len(triples))}
		c.entries[a.Key()] = e
		c.order = append(c.order, a.Key())
		c.counts[a.Kind()]++
	}
	if anchor != (ontology.Triple{}) {
		e.anchors = append(e.anchors, anchor)
	}
	for _, t := range triples {
		if e.owns[t] {
			continue
		}
		e.owns[t] = true
		e.triples = append(e.triples, t)
		c.refs[t]++
	}
	return e
}

// release drops e and returns the triples no other entry depends on.
func (c *axiomCache) release(e *entry) []ontology.Triple {
	key := e.axiom.Key()
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if c.counts[e.axiom.Kind()]--; c.counts[e.axiom.Kind()] <= 0 {
		delete(c.counts, e.axiom.Kind())
	}
	var free []ontology.Triple
	for _, t := range e.triples {
		if c.refs[t]--; c.refs[t] <= 0 {
			delete(c.refs, t)
			free = append(free, t)
		}
	}
	return free
}

// restore reinstates an entry removed by release.
func (c *axiomCache) restore(e *entry) {
	key := e.axiom.Key()
	c.entries[key] = e
	c.order = append(c.order, key)
	c.counts[e.axiom.Kind()]++
	for _, t := range e.triples {
		c.refs[t]++
	}
}

func (c *axiomCache) referenced(t ontology.Triple) bool {
	return c.refs[t] > 0
}

// snapshot returns the cached axioms of the given kinds in insertion order.
// No kinds means all kinds.
func (c *axiomCache) snapshot(kinds ...axioms.Kind) []*axioms.Axiom {
	want := make(map[axioms.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	out := make([]*axioms.Axiom, 0, len(c.order))
	for _, key := range c.order {
		a := c.entries[key].axiom
		if len(want) == 0 || want[a.Kind()] {
			out = append(out, a)
		}
	}
	return out
}
