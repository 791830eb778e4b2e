package ontology

import (
	"fmt"
	"sync/atomic"
)

// EntityKind is the primary type of a named entity.
type EntityKind uint8

const (
	Class EntityKind = iota + 1
	Datatype
	ObjectProperty
	DataProperty
	AnnotationProperty
	NamedIndividual
)

// EntityKinds lists every kind in declaration order.
var EntityKinds = []EntityKind{Class, Datatype, ObjectProperty, DataProperty, AnnotationProperty, NamedIndividual}

func (k EntityKind) String() string {
	switch k {
	case Class:
		return "Class"
	case Datatype:
		return "Datatype"
	case ObjectProperty:
		return "ObjectProperty"
	case DataProperty:
		return "DataProperty"
	case AnnotationProperty:
		return "AnnotationProperty"
	case NamedIndividual:
		return "NamedIndividual"
	default:
		return fmt.Sprintf("EntityKind(%d)", uint8(k))
	}
}

// IsProperty reports whether the kind is one of the three property kinds.
func (k EntityKind) IsProperty() bool {
	return k == ObjectProperty || k == DataProperty || k == AnnotationProperty
}

// Generation is the shared cache generation counter. Every cached value
// records the generation it was computed under and is recomputed once the
// counter moves on.
type Generation struct {
	v atomic.Uint64
}

// NewGeneration returns a counter starting at generation 1.
func NewGeneration() *Generation {
	g := &Generation{}
	g.v.Store(1)
	return g
}

// Current returns the live generation.
func (g *Generation) Current() uint64 {
	return g.v.Load()
}

// Bump invalidates everything cached under earlier generations.
func (g *Generation) Bump() uint64 {
	return g.v.Add(1)
}
