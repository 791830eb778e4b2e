// Package objects defines the typed domain objects axioms are built from
// (entities, class expressions, data ranges, individuals, literals and
// annotations), the Factory that resolves graph nodes into them, and the
// Writer that encodes them back into triples.
//
// Objects are immutable and identified by Key: two objects are equal iff
// their keys are equal. Keys are the surrogate form used for axiom hashing
// and never refer to live graph state.
package objects

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

// Object is any value that can appear inside an axiom.
type Object interface {
	Key() string
}

// Hash returns the 64-bit content hash of o.
func Hash(o Object) uint64 {
	return xxhash.Sum64String(o.Key())
}

// Equal compares two objects structurally.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}

// Entity is a named class, datatype, property or individual.
type Entity struct {
	Kind ontology.EntityKind
	IRI  string
}

func NewEntity(kind ontology.EntityKind, iri string) Entity {
	return Entity{Kind: kind, IRI: ontology.InternString(iri)}
}

func Class(iri string) Entity              { return NewEntity(ontology.Class, iri) }
func Datatype(iri string) Entity           { return NewEntity(ontology.Datatype, iri) }
func ObjectProperty(iri string) Entity     { return NewEntity(ontology.ObjectProperty, iri) }
func DataProperty(iri string) Entity       { return NewEntity(ontology.DataProperty, iri) }
func AnnotationProperty(iri string) Entity { return NewEntity(ontology.AnnotationProperty, iri) }
func NamedIndividual(iri string) Entity    { return NewEntity(ontology.NamedIndividual, iri) }

// Common builtins.
var (
	Thing       = Class(vocab.Thing.Value)
	Nothing     = Class(vocab.Nothing.Value)
	RDFSLiteral = Datatype(vocab.RDFSLiteral.Value)
	Label       = AnnotationProperty(vocab.Label.Value)
	Comment     = AnnotationProperty(vocab.Comment.Value)
)

func (e Entity) Key() string {
	return e.Kind.String() + "(<" + e.IRI + ">)"
}

func (e Entity) String() string { return e.Key() }

// Node returns the IRI node naming the entity.
func (e Entity) Node() ontology.Node { return ontology.IRI(e.IRI) }

// IsBuiltin reports whether the entity is part of the reserved vocabulary
// and therefore never declared.
func (e Entity) IsBuiltin() bool { return vocab.IsBuiltin(e.IRI, e.Kind) }

// AnonymousIndividual is an individual identified by a blank node.
type AnonymousIndividual struct {
	ID string
}

func (a AnonymousIndividual) Key() string        { return "_:" + a.ID }
func (a AnonymousIndividual) Node() ontology.Node { return ontology.Blank(a.ID) }

// Literal is a data value.
type Literal struct {
	Lexical  string
	Datatype string
	Lang     string
}

// LiteralOf wraps a literal node.
func LiteralOf(n ontology.Node) Literal {
	return Literal{Lexical: n.Value, Datatype: n.Datatype, Lang: n.Lang}
}

// PlainLiteral returns a simple string literal.
func PlainLiteral(s string) Literal { return LiteralOf(ontology.PlainLiteral(s)) }

// TypedLiteral returns a literal of the given datatype.
func TypedLiteral(lexical, datatype string) Literal {
	return LiteralOf(ontology.Literal(lexical, datatype))
}

func (l Literal) Node() ontology.Node {
	if l.Lang != "" {
		return ontology.LangLiteral(l.Lexical, l.Lang)
	}
	return ontology.Literal(l.Lexical, l.Datatype)
}

func (l Literal) Key() string { return l.Node().String() }

// IRIValue is a bare IRI used as an annotation subject or value.
type IRIValue struct {
	IRI string
}

func (v IRIValue) Key() string        { return "<" + v.IRI + ">" }
func (v IRIValue) Node() ontology.Node { return ontology.IRI(v.IRI) }

// Annotation is a property-value pair, itself optionally annotated.
type Annotation struct {
	Property    Entity
	Value       Object
	Annotations []Annotation
	key         string
}

// NewAnnotation builds an annotation. Nested annotations are sorted and
// structural duplicates dropped.
func NewAnnotation(property Entity, value Object, nested ...Annotation) Annotation {
	a := Annotation{Property: property, Value: value, Annotations: SortAnnotations(nested)}
	var b strings.Builder
	b.WriteString("Annotation(")
	for _, n := range a.Annotations {
		b.WriteString(n.Key())
		b.WriteByte(' ')
	}
	b.WriteString(property.Key())
	b.WriteByte(' ')
	b.WriteString(value.Key())
	b.WriteByte(')')
	a.key = b.String()
	return a
}

func (a Annotation) Key() string { return a.key }

// SortAnnotations returns anns ordered by key with identical ones merged.
func SortAnnotations(anns []Annotation) []Annotation {
	if len(anns) == 0 {
		return nil
	}
	out := make([]Annotation, len(anns))
	copy(out, anns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i].Key() != out[n-1].Key() {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// SortDistinct returns objs ordered by key with duplicates removed.
func SortDistinct(objs []Object) []Object {
	out := make([]Object, len(objs))
	copy(out, objs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	if len(out) < 2 {
		return out
	}
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i].Key() != out[n-1].Key() {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// Signature collects the named entities used by objs, in first-use order.
func Signature(objs ...Object) []Entity {
	var out []Entity
	seen := map[Entity]bool{}
	var walk func(o Object)
	walk = func(o Object) {
		switch x := o.(type) {
		case Entity:
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		case *Expression:
			for _, a := range x.Args {
				walk(a)
			}
		case Annotation:
			walk(x.Property)
			walk(x.Value)
			for _, n := range x.Annotations {
				walk(n)
			}
		}
	}
	for _, o := range objs {
		walk(o)
	}
	return out
}
