package model

import (
	"iter"
	"sync"

	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/graph"
)

// Concurrent serialises writers and lets readers share an Ontology. Reads
// that find the cache stale take the write lock once to reload it.
type Concurrent struct {
	mu  sync.RWMutex
	ont *Ontology
}

// NewConcurrent opens an ontology over g for concurrent use.
func NewConcurrent(g graph.Graph, opts ...Option) (*Concurrent, error) {
	ont, err := New(g, opts...)
	if err != nil {
		return nil, err
	}
	return &Concurrent{ont: ont}, nil
}

// Guard guards an existing ontology. The caller must stop using o directly.
func Guard(o *Ontology) *Concurrent {
	return &Concurrent{ont: o}
}

// read runs fn under the read lock with a loaded cache.
func (c *Concurrent) read(fn func(o *Ontology) error) error {
	c.mu.RLock()
	if c.ont.loaded() {
		defer c.mu.RUnlock()
		return fn(c.ont)
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ont.ensureLoaded(); err != nil {
		return err
	}
	return fn(c.ont)
}

func (c *Concurrent) write(fn func(o *Ontology) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.ont)
}

func (c *Concurrent) ID() string { return c.ont.ID() }

func (c *Concurrent) AddAxiom(a *axioms.Axiom) (added bool, err error) {
	err = c.write(func(o *Ontology) error {
		added, err = o.AddAxiom(a)
		return err
	})
	return added, err
}

func (c *Concurrent) RemoveAxiom(a *axioms.Axiom) (removed bool, err error) {
	err = c.write(func(o *Ontology) error {
		removed, err = o.RemoveAxiom(a)
		return err
	})
	return removed, err
}

func (c *Concurrent) ClearCache() {
	_ = c.write(func(o *Ontology) error {
		o.ClearCache()
		return nil
	})
}

func (c *Concurrent) ContainsAxiom(a *axioms.Axiom) (ok bool, err error) {
	err = c.read(func(o *Ontology) error {
		ok, err = o.ContainsAxiom(a)
		return err
	})
	return ok, err
}

func (c *Concurrent) AxiomCount() (n int, err error) {
	err = c.read(func(o *Ontology) error {
		n, err = o.AxiomCount()
		return err
	})
	return n, err
}

func (c *Concurrent) AxiomCountOf(k axioms.Kind) (n int, err error) {
	err = c.read(func(o *Ontology) error {
		n, err = o.AxiomCountOf(k)
		return err
	})
	return n, err
}

func (c *Concurrent) AxiomList(kinds ...axioms.Kind) (list []*axioms.Axiom, err error) {
	err = c.read(func(o *Ontology) error {
		list, err = o.AxiomList(kinds...)
		return err
	})
	return list, err
}

// Axioms iterates a snapshot taken under the read lock, so the caller may
// mutate the ontology while ranging.
func (c *Concurrent) Axioms(kinds ...axioms.Kind) iter.Seq2[*axioms.Axiom, error] {
	return func(yield func(*axioms.Axiom, error) bool) {
		list, err := c.AxiomList(kinds...)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, a := range list {
			if !yield(a, nil) {
				return
			}
		}
	}
}

func (c *Concurrent) Stats() (s Stats, err error) {
	err = c.read(func(o *Ontology) error {
		s, err = o.Stats()
		return err
	})
	return s, err
}
