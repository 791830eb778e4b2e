package objects

import (
	"sync"
	"sync/atomic"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// Role is the position a node is resolved for. The same blank node may be
// read as a class expression in one axiom and an individual in another, so
// the cache is keyed by (node, role).
type Role uint8

const (
	RoleAny Role = iota
	RoleClassExpression
	RoleObjectPropertyExpression
	RoleDataProperty
	RoleAnnotationProperty
	RoleDataRange
	RoleIndividual
	RoleAnnotationValue
)

// maxExpressionDepth bounds nested expression reads so a cyclic blank
// structure fails instead of recursing forever.
const maxExpressionDepth = 64

type cacheKey struct {
	node ontology.Node
	role Role
}

type cacheEntry struct {
	gen uint64
	obj Object
}

// Factory resolves graph nodes into Objects. Results are cached per
// generation: after the shared Generation is bumped every entry is
// recomputed on next use. Within one generation repeated calls return
// equal objects.
type Factory struct {
	g       graph.Graph
	gen     *ontology.Generation
	cfg     ontology.Config
	cache   sync.Map // map[cacheKey]cacheEntry
	hits    atomic.Uint64
	misses  atomic.Uint64
	observe func(hit bool)
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithObserver registers a callback invoked on every cache lookup.
func WithObserver(fn func(hit bool)) FactoryOption {
	return func(f *Factory) { f.observe = fn }
}

// NewFactory creates a factory over g. A nil gen gets a private counter.
func NewFactory(g graph.Graph, gen *ontology.Generation, cfg ontology.Config, opts ...FactoryOption) *Factory {
	if gen == nil {
		gen = ontology.NewGeneration()
	}
	f := &Factory{g: g, gen: gen, cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Graph returns the graph the factory reads.
func (f *Factory) Graph() graph.Graph { return f.g }

// Generation returns the shared generation counter.
func (f *Factory) Generation() *ontology.Generation { return f.gen }

// Stats returns cache hit and miss counts.
func (f *Factory) Stats() (hits, misses uint64) {
	return f.hits.Load(), f.misses.Load()
}

func (f *Factory) cached(n ontology.Node, role Role, load func() (Object, error)) (Object, error) {
	key := cacheKey{node: n, role: role}
	gen := f.gen.Current()
	if v, ok := f.cache.Load(key); ok {
		if e := v.(cacheEntry); e.gen == gen {
			f.hits.Add(1)
			if f.observe != nil {
				f.observe(true)
			}
			return e.obj, nil
		}
	}
	f.misses.Add(1)
	if f.observe != nil {
		f.observe(false)
	}
	obj, err := load()
	if err != nil {
		return nil, err
	}
	f.cache.Store(key, cacheEntry{gen: gen, obj: obj})
	return obj, nil
}

// Kinds returns the entity kinds n is declared as, builtin kinds included.
// It always reads the graph.
func (f *Factory) Kinds(n ontology.Node) ([]ontology.EntityKind, error) {
	if !n.IsIRI() {
		return nil, nil
	}
	var kinds []ontology.EntityKind
	seen := map[ontology.EntityKind]bool{}
	if k, ok := vocab.Builtin(n.Value); ok {
		kinds = append(kinds, k)
		seen[k] = true
	}
	types, err := graph.Types(f.g, n)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if k, ok := vocab.KindOfType(t); ok && !seen[k] {
			kinds = append(kinds, k)
			seen[k] = true
		}
	}
	return kinds, nil
}

// IsDeclared reports whether n is a builtin of kind k or declared as one.
func (f *Factory) IsDeclared(n ontology.Node, k ontology.EntityKind) (bool, error) {
	if !n.IsIRI() {
		return false, nil
	}
	if vocab.IsBuiltin(n.Value, k) {
		return true, nil
	}
	return graph.HasType(f.g, n, vocab.DeclarationType(k))
}

// Entity resolves n as a named entity of kind k.
func (f *Factory) Entity(n ontology.Node, k ontology.EntityKind) (Entity, error) {
	if !n.IsIRI() {
		return Entity{}, ontology.Malformed("%s cannot name a %s", n, k)
	}
	// Individuals are commonly used without a declaration.
	if f.cfg.ReadDeclarations && k != ontology.NamedIndividual {
		ok, err := f.IsDeclared(n, k)
		if err != nil {
			return Entity{}, err
		}
		if !ok {
			return Entity{}, ontology.NotFoundf("no %s declaration for %s", k, n)
		}
	}
	return NewEntity(k, n.Value), nil
}

// Get resolves n by its shape and declarations: literals become Literals,
// IRIs the first declared entity kind, blank nodes an expression or an
// anonymous individual.
func (f *Factory) Get(n ontology.Node) (Object, error) {
	return f.cached(n, RoleAny, func() (Object, error) {
		switch n.Kind {
		case ontology.LiteralNode:
			return LiteralOf(n), nil
		case ontology.IRINode:
			kinds, err := f.Kinds(n)
			if err != nil {
				return nil, err
			}
			if len(kinds) == 0 {
				return nil, ontology.NotFoundf("no declaration for %s", n)
			}
			return NewEntity(kinds[0], n.Value), nil
		case ontology.BlankNode:
			for _, read := range []func(ontology.Node) (Object, error){
				f.ClassExpression, f.ObjectPropertyExpression, f.DataRange,
			} {
				if obj, err := read(n); err == nil {
					return obj, nil
				}
			}
			return AnonymousIndividual{ID: n.Value}, nil
		default:
			return nil, ontology.Malformed("cannot resolve pattern node")
		}
	})
}

// ClassExpression resolves a named class or an anonymous class expression.
func (f *Factory) ClassExpression(n ontology.Node) (Object, error) {
	return f.classExpression(n, 0)
}

func (f *Factory) classExpression(n ontology.Node, depth int) (Object, error) {
	if depth > maxExpressionDepth {
		return nil, ontology.Malformed("class expression at %s nests too deeply", n)
	}
	return f.cached(n, RoleClassExpression, func() (Object, error) {
		switch n.Kind {
		case ontology.IRINode:
			return f.Entity(n, ontology.Class)
		case ontology.BlankNode:
			return f.readClassExpression(n, depth)
		default:
			return nil, ontology.Malformed("%s is not a class expression", n)
		}
	})
}

// ObjectPropertyExpression resolves a named object property or an
// anonymous inverse.
func (f *Factory) ObjectPropertyExpression(n ontology.Node) (Object, error) {
	return f.cached(n, RoleObjectPropertyExpression, func() (Object, error) {
		switch n.Kind {
		case ontology.IRINode:
			return f.Entity(n, ontology.ObjectProperty)
		case ontology.BlankNode:
			inner, ok, err := graph.Object(f.g, n, vocab.InverseOf)
			if err != nil {
				return nil, err
			}
			if !ok || !inner.IsIRI() {
				return nil, ontology.Malformed("%s is not an inverse property expression", n)
			}
			p, err := f.Entity(inner, ontology.ObjectProperty)
			if err != nil {
				return nil, err
			}
			return InverseOf(p), nil
		default:
			return nil, ontology.Malformed("%s is not a property", n)
		}
	})
}

// DataProperty resolves a named data property.
func (f *Factory) DataProperty(n ontology.Node) (Entity, error) {
	obj, err := f.cached(n, RoleDataProperty, func() (Object, error) {
		return f.Entity(n, ontology.DataProperty)
	})
	if err != nil {
		return Entity{}, err
	}
	return obj.(Entity), nil
}

// AnnotationProperty resolves an annotation property.
func (f *Factory) AnnotationProperty(n ontology.Node) (Entity, error) {
	obj, err := f.cached(n, RoleAnnotationProperty, func() (Object, error) {
		return f.Entity(n, ontology.AnnotationProperty)
	})
	if err != nil {
		return Entity{}, err
	}
	return obj.(Entity), nil
}

// DataRange resolves a datatype or an anonymous data range.
func (f *Factory) DataRange(n ontology.Node) (Object, error) {
	return f.dataRange(n, 0)
}

func (f *Factory) dataRange(n ontology.Node, depth int) (Object, error) {
	if depth > maxExpressionDepth {
		return nil, ontology.Malformed("data range at %s nests too deeply", n)
	}
	return f.cached(n, RoleDataRange, func() (Object, error) {
		switch n.Kind {
		case ontology.IRINode:
			return f.Entity(n, ontology.Datatype)
		case ontology.BlankNode:
			return f.readDataRange(n, depth)
		default:
			return nil, ontology.Malformed("%s is not a data range", n)
		}
	})
}

// Individual resolves a named or anonymous individual.
func (f *Factory) Individual(n ontology.Node) (Object, error) {
	return f.cached(n, RoleIndividual, func() (Object, error) {
		switch n.Kind {
		case ontology.IRINode:
			return f.Entity(n, ontology.NamedIndividual)
		case ontology.BlankNode:
			return AnonymousIndividual{ID: n.Value}, nil
		default:
			return nil, ontology.Malformed("%s is not an individual", n)
		}
	})
}

// Literal resolves a literal node.
func (f *Factory) Literal(n ontology.Node) (Literal, error) {
	if !n.IsLiteral() {
		return Literal{}, ontology.Malformed("%s is not a literal", n)
	}
	return LiteralOf(n), nil
}

// AnnotationValue resolves an annotation value or subject: an IRI, an
// anonymous individual or a literal.
func (f *Factory) AnnotationValue(n ontology.Node) (Object, error) {
	return f.cached(n, RoleAnnotationValue, func() (Object, error) {
		switch n.Kind {
		case ontology.IRINode:
			return IRIValue{IRI: n.Value}, nil
		case ontology.BlankNode:
			return AnonymousIndividual{ID: n.Value}, nil
		case ontology.LiteralNode:
			return LiteralOf(n), nil
		default:
			return nil, ontology.Malformed("cannot resolve pattern node")
		}
	})
}

// Annotations decodes the payload of annotation blocks, nested blocks
// included. Every payload predicate is read as an annotation property.
func (f *Factory) Annotations(blocks ...graph.Block) ([]Annotation, error) {
	var out []Annotation
	for _, b := range blocks {
		for _, a := range b.Assertions {
			ann, err := f.annotation(a, b.Nested[a])
			if err != nil {
				return nil, err
			}
			out = append(out, ann)
		}
	}
	return SortAnnotations(out), nil
}

func (f *Factory) annotation(a ontology.Triple, nested []graph.Block) (Annotation, error) {
	if !a.P.IsIRI() {
		return Annotation{}, ontology.Malformed("annotation predicate %s is not an IRI", a.P)
	}
	prop := AnnotationProperty(a.P.Value)
	value, err := f.AnnotationValue(a.O)
	if err != nil {
		return Annotation{}, err
	}
	inner, err := f.Annotations(nested...)
	if err != nil {
		return Annotation{}, err
	}
	return NewAnnotation(prop, value, inner...), nil
}
