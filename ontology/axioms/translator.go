package axioms

import (
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/objects"
)

// Decoded is an axiom read from the graph together with the triples its
// statement owns. Erasing the statement deletes exactly these triples.
type Decoded struct {
	Axiom   *Axiom
	Triples []ontology.Triple
}

// Translator converts between one axiom kind and its RDF encoding.
type Translator interface {
	Kind() Kind
	// Statements yields the anchor triples that may encode an axiom of this
	// kind. Every yielded triple is handed to ToAxiom.
	Statements(g graph.Graph) iter.Seq2[ontology.Triple, error]
	// ToAxiom decodes the statement anchored at t. Recoverable errors mean
	// the statement does not form a valid axiom.
	ToAxiom(t ontology.Triple, f *objects.Factory, cfg ontology.Config) (Decoded, error)
	// Write encodes a into w.
	Write(w *objects.Writer, a *Axiom) error
}

// Registry maps kinds to translators.
type Registry struct {
	mu     sync.RWMutex
	byKind map[Kind]Translator
}

// NewRegistry returns a registry holding ts.
func NewRegistry(ts ...Translator) (*Registry, error) {
	r := &Registry{byKind: make(map[Kind]Translator, len(ts))}
	for _, t := range ts {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t. Registering a kind twice is an error.
func (r *Registry) Register(t Translator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byKind[t.Kind()]; dup {
		return fmt.Errorf("translator for %s already registered", t.Kind())
	}
	r.byKind[t.Kind()] = t
	return nil
}

// Lookup returns the translator for k.
func (r *Registry) Lookup(k Kind) (Translator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byKind[k]
	return t, ok
}

// Kinds returns the registered kinds in declaration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.byKind))
	for k := range r.byKind {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry with a translator for every kind.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtinTranslators()...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// decodedParts is the full read of one statement.
type decodedParts struct {
	operands []objects.Object
	anns     []objects.Annotation
	triples  []ontology.Triple
}

// finish turns a statement reader into a Decoded axiom. The reader runs once
// now; axioms with content keep it as their loader so the content can be
// re-read after a cache generation change.
func finish(k Kind, f *objects.Factory, cfg ontology.Config, read func() (decodedParts, error)) (Decoded, error) {
	p, err := read()
	if err != nil {
		return Decoded{}, err
	}
	a := build(k, p.operands, p.anns)
	if a.content != nil {
		a.content.gen = f.Generation()
		a.content.load = func() (Content, error) {
			q, err := read()
			if err != nil {
				return Content{}, err
			}
			ops := normalize(k, q.operands)
			_, tail, _ := split(k, ops)
			return Content{Operands: tail, Annotations: objects.SortAnnotations(q.anns)}, nil
		}
		if cfg.ContentCache {
			// re-tag the decoded content with the live generation
			v := a.content.snap.Load().value
			a.content.store(v)
		} else {
			a.content.drop()
		}
	}
	return Decoded{Axiom: a, Triples: dedupe(p.triples)}, nil
}

func dedupe(ts []ontology.Triple) []ontology.Triple {
	seen := make(map[ontology.Triple]bool, len(ts))
	out := ts[:0:0]
	for _, t := range ts {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// arity checks the operand count of a before writing. A negative hi means
// no upper bound.
func arity(a *Axiom, lo, hi int) ([]objects.Object, error) {
	ops := a.Operands()
	if len(ops) < lo || (hi >= 0 && len(ops) > hi) {
		return nil, ontology.Malformed("%s takes %s operands, got %d", a.kind, arityText(lo, hi), len(ops))
	}
	return ops, nil
}

func arityText(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("at least %d", lo)
	case lo == hi:
		return fmt.Sprintf("%d", lo)
	default:
		return fmt.Sprintf("%d to %d", lo, hi)
	}
}

// filter yields the triples of seq accepted by keep.
func filter(seq iter.Seq2[ontology.Triple, error], keep func(ontology.Triple) (bool, error)) iter.Seq2[ontology.Triple, error] {
	return func(yield func(ontology.Triple, error) bool) {
		for t, err := range seq {
			if err != nil {
				yield(ontology.Triple{}, err)
				return
			}
			ok, err := keep(t)
			if err != nil {
				yield(ontology.Triple{}, err)
				return
			}
			if ok && !yield(t, nil) {
				return
			}
		}
	}
}

// concat chains statement sequences.
func concat(seqs ...iter.Seq2[ontology.Triple, error]) iter.Seq2[ontology.Triple, error] {
	return func(yield func(ontology.Triple, error) bool) {
		for _, seq := range seqs {
			for t, err := range seq {
				if !yield(t, err) || err != nil {
					return
				}
			}
		}
	}
}
