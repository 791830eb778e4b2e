package axioms

import (
	"fmt"
	"strings"
)

// Kind identifies an axiom type.
type Kind uint8

const (
	Declaration Kind = iota + 1
	SubClassOf
	EquivalentClasses
	DisjointClasses
	DisjointUnion
	HasKey
	ClassAssertion
	ObjectPropertyAssertion
	DataPropertyAssertion
	AnnotationAssertion
	NegativeObjectPropertyAssertion
	NegativeDataPropertyAssertion
	SubObjectPropertyOf
	SubDataPropertyOf
	SubAnnotationPropertyOf
	ObjectPropertyDomain
	ObjectPropertyRange
	DataPropertyDomain
	DataPropertyRange
	AnnotationPropertyDomain
	AnnotationPropertyRange
	InverseObjectProperties
	EquivalentObjectProperties
	EquivalentDataProperties
	DisjointObjectProperties
	DisjointDataProperties
	FunctionalObjectProperty
	InverseFunctionalObjectProperty
	TransitiveObjectProperty
	SymmetricObjectProperty
	AsymmetricObjectProperty
	ReflexiveObjectProperty
	IrreflexiveObjectProperty
	FunctionalDataProperty
	SameIndividual
	DifferentIndividuals

	kindCount = iota
)

var kindNames = [...]string{
	Declaration:                     "Declaration",
	SubClassOf:                      "SubClassOf",
	EquivalentClasses:               "EquivalentClasses",
	DisjointClasses:                 "DisjointClasses",
	DisjointUnion:                   "DisjointUnion",
	HasKey:                          "HasKey",
	ClassAssertion:                  "ClassAssertion",
	ObjectPropertyAssertion:         "ObjectPropertyAssertion",
	DataPropertyAssertion:           "DataPropertyAssertion",
	AnnotationAssertion:             "AnnotationAssertion",
	NegativeObjectPropertyAssertion: "NegativeObjectPropertyAssertion",
	NegativeDataPropertyAssertion:   "NegativeDataPropertyAssertion",
	SubObjectPropertyOf:             "SubObjectPropertyOf",
	SubDataPropertyOf:               "SubDataPropertyOf",
	SubAnnotationPropertyOf:         "SubAnnotationPropertyOf",
	ObjectPropertyDomain:            "ObjectPropertyDomain",
	ObjectPropertyRange:             "ObjectPropertyRange",
	DataPropertyDomain:              "DataPropertyDomain",
	DataPropertyRange:               "DataPropertyRange",
	AnnotationPropertyDomain:        "AnnotationPropertyDomain",
	AnnotationPropertyRange:         "AnnotationPropertyRange",
	InverseObjectProperties:         "InverseObjectProperties",
	EquivalentObjectProperties:      "EquivalentObjectProperties",
	EquivalentDataProperties:        "EquivalentDataProperties",
	DisjointObjectProperties:        "DisjointObjectProperties",
	DisjointDataProperties:          "DisjointDataProperties",
	FunctionalObjectProperty:        "FunctionalObjectProperty",
	InverseFunctionalObjectProperty: "InverseFunctionalObjectProperty",
	TransitiveObjectProperty:        "TransitiveObjectProperty",
	SymmetricObjectProperty:         "SymmetricObjectProperty",
	AsymmetricObjectProperty:        "AsymmetricObjectProperty",
	ReflexiveObjectProperty:         "ReflexiveObjectProperty",
	IrreflexiveObjectProperty:       "IrreflexiveObjectProperty",
	FunctionalDataProperty:          "FunctionalDataProperty",
	SameIndividual:                  "SameIndividual",
	DifferentIndividuals:            "DifferentIndividuals",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Declaration; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind by name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k := Declaration; k < kindCount; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown axiom kind %q", s)
}

// isSetKind: operands are an unordered set and written pairwise.
func (k Kind) isSetKind() bool {
	switch k {
	case EquivalentClasses, EquivalentObjectProperties, EquivalentDataProperties,
		SameIndividual, InverseObjectProperties:
		return true
	}
	return false
}

// isDisjointness: two operands are written as a single triple, more as an
// ordered member list on a blank anchor.
func (k Kind) isDisjointness() bool {
	switch k {
	case DisjointClasses, DisjointObjectProperties, DisjointDataProperties, DifferentIndividuals:
		return true
	}
	return false
}

// isListKind: the tail operands come from an rdf list that is never shared.
func (k Kind) isListKind() bool {
	return k == DisjointUnion || k == HasKey
}

func (k Kind) isNegative() bool {
	return k == NegativeObjectPropertyAssertion || k == NegativeDataPropertyAssertion
}
