// Package axioms defines OWL axioms and the per-kind translators between
// axioms and the RDF statements that encode them.
//
// An axiom is identified by its kind, its operands and its annotation set.
// Operands that are cheap to resolve (the head) are held eagerly; the rest
// of the content (tail operands and annotations) may be dropped and
// re-materialised from the graph on demand. A re-materialised content must
// hash to the value computed when the axiom was first decoded.
package axioms

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/objects"
)

type shape uint8

const (
	// shapeSimple axioms have only head operands and no annotations.
	shapeSimple shape = iota
	// shapeAnnotated axioms keep their annotations as content.
	shapeAnnotated
	// shapeComplex axioms keep tail operands as content.
	shapeComplex
)

// Content is the lazily materialised part of an axiom.
type Content struct {
	Operands    []objects.Object
	Annotations []objects.Annotation
}

// ContentState is the lifecycle state of an axiom's content.
type ContentState int32

const (
	Uninitialized ContentState = iota
	Initializing
	Cached
)

func (s ContentState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Cached:
		return "cached"
	default:
		return fmt.Sprintf("ContentState(%d)", int32(s))
	}
}

type snapshot struct {
	gen   uint64
	value Content
}

// content holds the materialised tail of an axiom. A snapshot without a
// loader is authoritative and never goes stale.
type content struct {
	mu    sync.Mutex
	state atomic.Int32
	snap  atomic.Pointer[snapshot]
	gen   *ontology.Generation
	load  func() (Content, error)
}

func (c *content) current() uint64 {
	if c.gen == nil {
		return 0
	}
	return c.gen.Current()
}

func (c *content) fresh(s *snapshot) bool {
	return s != nil && (c.load == nil || s.gen == c.current())
}

func (c *content) store(v Content) {
	c.snap.Store(&snapshot{gen: c.current(), value: v})
	c.state.Store(int32(Cached))
}

func (c *content) drop() {
	c.snap.Store(nil)
	c.state.Store(int32(Uninitialized))
}

func (c *content) get(verify func(Content) error) (Content, error) {
	if s := c.snap.Load(); c.fresh(s) {
		return s.value, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.snap.Load(); c.fresh(s) {
		return s.value, nil
	}
	if c.load == nil {
		return Content{}, ontology.Invariant("axiom content lost without a loader")
	}
	c.state.Store(int32(Initializing))
	gen := c.current()
	v, err := c.load()
	if err == nil {
		err = verify(v)
	}
	if err != nil {
		c.drop()
		return Content{}, err
	}
	c.snap.Store(&snapshot{gen: gen, value: v})
	c.state.Store(int32(Cached))
	return v, nil
}

func (c *content) stateOf() ContentState {
	st := ContentState(c.state.Load())
	if st == Cached && !c.fresh(c.snap.Load()) {
		return Uninitialized
	}
	return st
}

// Axiom is an immutable OWL axiom. Equality is by Key.
type Axiom struct {
	kind      Kind
	head      []objects.Object
	shape     shape
	annotated bool
	key       string
	hash      uint64
	content   *content
}

// New builds an axiom of kind k over operands. Set-valued kinds sort and
// de-duplicate their operands; pairwise disjointness sorts its two operands.
func New(k Kind, operands ...objects.Object) *Axiom {
	return build(k, operands, nil)
}

// NewAnnotated builds an annotated axiom.
func NewAnnotated(k Kind, operands []objects.Object, anns []objects.Annotation) *Axiom {
	return build(k, operands, anns)
}

func normalize(k Kind, ops []objects.Object) []objects.Object {
	switch {
	case k.isSetKind():
		return objects.SortDistinct(ops)
	case k.isDisjointness() && len(ops) == 2:
		if ops[1].Key() < ops[0].Key() {
			return []objects.Object{ops[1], ops[0]}
		}
	}
	return append([]objects.Object(nil), ops...)
}

// split divides normalised operands into eager head and lazy tail.
func split(k Kind, ops []objects.Object) (head, tail []objects.Object, sh shape) {
	switch {
	case k.isListKind() && len(ops) > 0:
		return ops[:1], ops[1:], shapeComplex
	case k.isNegative():
		return nil, ops, shapeComplex
	case k.isDisjointness() && len(ops) > 2:
		return nil, ops, shapeComplex
	}
	return ops, nil, shapeSimple
}

func build(k Kind, operands []objects.Object, anns []objects.Annotation) *Axiom {
	ops := normalize(k, operands)
	anns = objects.SortAnnotations(anns)
	head, tail, sh := split(k, ops)
	if sh == shapeSimple && len(anns) > 0 {
		sh = shapeAnnotated
	}
	a := &Axiom{kind: k, head: head, shape: sh, annotated: len(anns) > 0}
	a.key = composeKey(k, ops, anns)
	a.hash = xxhash.Sum64String(a.key)
	if sh != shapeSimple {
		a.content = &content{}
		a.content.store(Content{Operands: tail, Annotations: anns})
	}
	return a
}

func composeKey(k Kind, ops []objects.Object, anns []objects.Annotation) string {
	var b strings.Builder
	b.WriteString(k.String())
	b.WriteByte('(')
	sep := false
	for _, a := range anns {
		if sep {
			b.WriteByte(' ')
		}
		b.WriteString(a.Key())
		sep = true
	}
	for _, o := range ops {
		if sep {
			b.WriteByte(' ')
		}
		b.WriteString(o.Key())
		sep = true
	}
	b.WriteByte(')')
	return b.String()
}

// Kind returns the axiom kind.
func (a *Axiom) Kind() Kind { return a.kind }

// Key is the structural identity of the axiom.
func (a *Axiom) Key() string { return a.key }

// Hash returns the precomputed content hash.
func (a *Axiom) Hash() uint64 { return a.hash }

func (a *Axiom) String() string { return a.key }

// Equal reports structural equality.
func (a *Axiom) Equal(b *Axiom) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.hash == b.hash && a.key == b.key
}

// IsAnnotated reports whether the axiom carries annotations.
func (a *Axiom) IsAnnotated() bool { return a.annotated }

// Head returns the eagerly held operands. The slice must not be modified.
func (a *Axiom) Head() []objects.Object { return a.head }

// State reports the lifecycle state of the content. Axioms without content
// are always Cached.
func (a *Axiom) State() ContentState {
	if a.content == nil {
		return Cached
	}
	return a.content.stateOf()
}

// Content materialises the tail operands and annotations, reloading them
// from the graph if the cached copy is absent or stale.
func (a *Axiom) Content() (Content, error) {
	if a.content == nil {
		return Content{}, nil
	}
	return a.content.get(a.verify)
}

func (a *Axiom) verify(c Content) error {
	ops := append(append([]objects.Object(nil), a.head...), c.Operands...)
	if xxhash.Sum64String(composeKey(a.kind, ops, c.Annotations)) != a.hash {
		return ontology.Invariant("%s: content read back from the graph does not match %s", a.kind, a.key)
	}
	return nil
}

// Operands returns all operands in canonical order. It panics if the
// content cannot be materialised; use Content to handle the error.
func (a *Axiom) Operands() []objects.Object {
	c, err := a.Content()
	if err != nil {
		panic(err)
	}
	if len(c.Operands) == 0 {
		return a.head
	}
	return append(append([]objects.Object(nil), a.head...), c.Operands...)
}

// Annotations returns the sorted annotation set. It panics if the content
// cannot be materialised.
func (a *Axiom) Annotations() []objects.Annotation {
	if !a.annotated {
		return nil
	}
	c, err := a.Content()
	if err != nil {
		panic(err)
	}
	return c.Annotations
}

// Annotated returns a copy of a carrying anns instead of its annotations.
func (a *Axiom) Annotated(anns ...objects.Annotation) *Axiom {
	return build(a.kind, a.Operands(), anns)
}

// WithoutAnnotations returns a with its annotations stripped.
func (a *Axiom) WithoutAnnotations() *Axiom {
	if !a.annotated {
		return a
	}
	return build(a.kind, a.Operands(), nil)
}

// Signature returns the named entities the axiom mentions, annotations
// included.
func (a *Axiom) Signature() []objects.Entity {
	objs := a.Operands()
	for _, ann := range a.Annotations() {
		objs = append(objs, ann)
	}
	return objects.Signature(objs...)
}

// Simplified rewrites an object property assertion on an inverse property
// into the equivalent assertion on the named property with subject and
// object swapped. Other axioms are returned unchanged.
func (a *Axiom) Simplified() *Axiom {
	if a.kind != ObjectPropertyAssertion || len(a.head) != 3 {
		return a
	}
	inv, ok := a.head[0].(*objects.Expression)
	if !ok || inv.Op != objects.OpObjectInverseOf {
		return a
	}
	return build(a.kind, []objects.Object{inv.Property(), a.head[2], a.head[1]}, a.Annotations())
}
