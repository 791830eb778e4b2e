package graph

import (
	"iter"
	"sort"
	"sync"

	"github.com/wbrown/janus-owl/ontology"
)

type tripleSet map[ontology.Triple]struct{}

// MemGraph is an in-memory Graph indexed by subject, predicate and object.
// Results come back in insertion order.
type MemGraph struct {
	mu      sync.RWMutex
	seq     uint64
	triples map[ontology.Triple]uint64
	bySubj  map[ontology.Node]tripleSet
	byPred  map[ontology.Node]tripleSet
	byObj   map[ontology.Node]tripleSet
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		triples: make(map[ontology.Triple]uint64),
		bySubj:  make(map[ontology.Node]tripleSet),
		byPred:  make(map[ontology.Node]tripleSet),
		byObj:   make(map[ontology.Node]tripleSet),
	}
}

func (g *MemGraph) Add(t ontology.Triple) (bool, error) {
	if !t.IsGround() {
		return false, ontology.Malformed("cannot add pattern %s", t)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.triples[t]; ok {
		return false, nil
	}
	g.seq++
	g.triples[t] = g.seq
	index(g.bySubj, t.S, t)
	index(g.byPred, t.P, t)
	index(g.byObj, t.O, t)
	return true, nil
}

func (g *MemGraph) Delete(t ontology.Triple) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.triples[t]; !ok {
		return false, nil
	}
	delete(g.triples, t)
	unindex(g.bySubj, t.S, t)
	unindex(g.byPred, t.P, t)
	unindex(g.byObj, t.O, t)
	return true, nil
}

func (g *MemGraph) Contains(t ontology.Triple) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.triples[t]
	return ok, nil
}

func (g *MemGraph) Size() (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples), nil
}

func (g *MemGraph) Find(s, p, o ontology.Node) iter.Seq2[ontology.Triple, error] {
	matches := g.match(s, p, o)
	return func(yield func(ontology.Triple, error) bool) {
		for _, t := range matches {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (g *MemGraph) match(s, p, o ontology.Node) []ontology.Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	pattern := ontology.T(s, p, o)
	if pattern.IsGround() {
		if _, ok := g.triples[pattern]; ok {
			return []ontology.Triple{pattern}
		}
		return nil
	}

	// Scan the smallest bound index, or everything when unbound.
	var candidates tripleSet
	pick := func(idx map[ontology.Node]tripleSet, n ontology.Node) {
		if n.IsAny() {
			return
		}
		set := idx[n]
		if candidates == nil || len(set) < len(candidates) {
			candidates = set
			if candidates == nil {
				candidates = tripleSet{}
			}
		}
	}
	pick(g.bySubj, s)
	pick(g.byPred, p)
	pick(g.byObj, o)

	var out []ontology.Triple
	if candidates == nil {
		out = make([]ontology.Triple, 0, len(g.triples))
		for t := range g.triples {
			out = append(out, t)
		}
	} else {
		for t := range candidates {
			if t.Matches(s, p, o) {
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return g.triples[out[i]] < g.triples[out[j]]
	})
	return out
}

func index(idx map[ontology.Node]tripleSet, n ontology.Node, t ontology.Triple) {
	set, ok := idx[n]
	if !ok {
		set = make(tripleSet)
		idx[n] = set
	}
	set[t] = struct{}{}
}

func unindex(idx map[ontology.Node]tripleSet, n ontology.Node, t ontology.Triple) {
	set := idx[n]
	delete(set, t)
	if len(set) == 0 {
		delete(idx, n)
	}
}
