// Package vocab names the RDF, RDFS, OWL 2 and XSD terms used by the
// axiom mapping and classifies IRIs into builtin and reserved vocabulary.
package vocab

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/wbrown/janus-owl/ontology"
)

const (
	RDFNS  = rdf.NS
	RDFSNS = rdfs.NS
	OWLNS  = "http://www.w3.org/2002/07/owl#"
	XSDNS  = "http://www.w3.org/2001/XMLSchema#"
)

func rdfTerm(local string) ontology.Node  { return ontology.IRI(RDFNS + local) }
func rdfsTerm(local string) ontology.Node { return ontology.IRI(RDFSNS + local) }
func owlTerm(local string) ontology.Node  { return ontology.IRI(OWLNS + local) }
func xsdTerm(local string) ontology.Node  { return ontology.IRI(XSDNS + local) }

// RDF
var (
	Type        = ontology.IRI(string(quad.IRI(rdf.Type).Full()))
	First       = rdfTerm("first")
	Rest        = rdfTerm("rest")
	Nil         = rdfTerm("nil")
	PlainLit    = rdfTerm("PlainLiteral")
	LangString  = rdfTerm("langString")
	XMLLiteral  = rdfTerm("XMLLiteral")
	RDFProperty = rdfTerm("Property")
)

// RDFS
var (
	SubClassOf    = rdfsTerm("subClassOf")
	SubPropertyOf = rdfsTerm("subPropertyOf")
	Domain        = rdfsTerm("domain")
	Range         = rdfsTerm("range")
	Label         = rdfsTerm("label")
	Comment       = rdfsTerm("comment")
	SeeAlso       = rdfsTerm("seeAlso")
	IsDefinedBy   = rdfsTerm("isDefinedBy")
	RDFSLiteral   = rdfsTerm("Literal")
	RDFSDatatype  = rdfsTerm("Datatype")
	RDFSClass     = rdfsTerm("Class")
)

// OWL declarations and builtins
var (
	Ontology             = owlTerm("Ontology")
	Class                = owlTerm("Class")
	ObjectProperty       = owlTerm("ObjectProperty")
	DatatypeProperty     = owlTerm("DatatypeProperty")
	AnnotationProperty   = owlTerm("AnnotationProperty")
	NamedIndividual      = owlTerm("NamedIndividual")
	Thing                = owlTerm("Thing")
	Nothing              = owlTerm("Nothing")
	TopObjectProperty    = owlTerm("topObjectProperty")
	BottomObjectProperty = owlTerm("bottomObjectProperty")
	TopDataProperty      = owlTerm("topDataProperty")
	BottomDataProperty   = owlTerm("bottomDataProperty")
	Deprecated           = owlTerm("deprecated")
	VersionInfo          = owlTerm("versionInfo")
	PriorVersion         = owlTerm("priorVersion")
	BackwardCompatible   = owlTerm("backwardCompatibleWith")
	IncompatibleWith     = owlTerm("incompatibleWith")
	Imports              = owlTerm("imports")
	VersionIRI           = owlTerm("versionIRI")
)

// OWL axiom vocabulary
var (
	EquivalentClass           = owlTerm("equivalentClass")
	DisjointWith              = owlTerm("disjointWith")
	DisjointUnionOf           = owlTerm("disjointUnionOf")
	HasKey                    = owlTerm("hasKey")
	AllDisjointClasses        = owlTerm("AllDisjointClasses")
	AllDisjointProperties     = owlTerm("AllDisjointProperties")
	AllDifferent              = owlTerm("AllDifferent")
	Members                   = owlTerm("members")
	DistinctMembers           = owlTerm("distinctMembers")
	EquivalentProperty        = owlTerm("equivalentProperty")
	PropertyDisjointWith      = owlTerm("propertyDisjointWith")
	InverseOf                 = owlTerm("inverseOf")
	SameAs                    = owlTerm("sameAs")
	DifferentFrom             = owlTerm("differentFrom")
	NegativePropertyAssertion = owlTerm("NegativePropertyAssertion")
	SourceIndividual          = owlTerm("sourceIndividual")
	AssertionProperty         = owlTerm("assertionProperty")
	TargetIndividual          = owlTerm("targetIndividual")
	TargetValue               = owlTerm("targetValue")
	Axiom                     = owlTerm("Axiom")
	Annotation                = owlTerm("Annotation")
	AnnotatedSource           = owlTerm("annotatedSource")
	AnnotatedProperty         = owlTerm("annotatedProperty")
	AnnotatedTarget           = owlTerm("annotatedTarget")
	FunctionalProperty        = owlTerm("FunctionalProperty")
	InverseFunctionalProperty = owlTerm("InverseFunctionalProperty")
	TransitiveProperty        = owlTerm("TransitiveProperty")
	SymmetricProperty         = owlTerm("SymmetricProperty")
	AsymmetricProperty        = owlTerm("AsymmetricProperty")
	ReflexiveProperty         = owlTerm("ReflexiveProperty")
	IrreflexiveProperty       = owlTerm("IrreflexiveProperty")
)

// OWL class expression and data range vocabulary
var (
	Restriction             = owlTerm("Restriction")
	OnProperty              = owlTerm("onProperty")
	SomeValuesFrom          = owlTerm("someValuesFrom")
	AllValuesFrom           = owlTerm("allValuesFrom")
	HasValue                = owlTerm("hasValue")
	HasSelf                 = owlTerm("hasSelf")
	MinCardinality          = owlTerm("minCardinality")
	MaxCardinality          = owlTerm("maxCardinality")
	Cardinality             = owlTerm("cardinality")
	MinQualifiedCardinality = owlTerm("minQualifiedCardinality")
	MaxQualifiedCardinality = owlTerm("maxQualifiedCardinality")
	QualifiedCardinality    = owlTerm("qualifiedCardinality")
	OnClass                 = owlTerm("onClass")
	OnDataRange             = owlTerm("onDataRange")
	UnionOf                 = owlTerm("unionOf")
	IntersectionOf          = owlTerm("intersectionOf")
	ComplementOf            = owlTerm("complementOf")
	OneOf                   = owlTerm("oneOf")
	DatatypeComplementOf    = owlTerm("datatypeComplementOf")
)

// XSD
var (
	XSDString             = xsdTerm("string")
	XSDBoolean            = xsdTerm("boolean")
	XSDInteger            = xsdTerm("integer")
	XSDNonNegativeInteger = xsdTerm("nonNegativeInteger")
	XSDDecimal            = xsdTerm("decimal")
	XSDDouble             = xsdTerm("double")
	XSDFloat              = xsdTerm("float")
	XSDDateTime           = xsdTerm("dateTime")
)

var xsdDatatypes = []string{
	"anyURI", "base64Binary", "boolean", "byte", "dateTime", "dateTimeStamp",
	"decimal", "double", "float", "hexBinary", "int", "integer", "language",
	"long", "Name", "NCName", "negativeInteger", "NMTOKEN", "nonNegativeInteger",
	"nonPositiveInteger", "normalizedString", "positiveInteger", "short",
	"string", "token", "unsignedByte", "unsignedInt", "unsignedLong",
	"unsignedShort",
}

var declarationTypes = map[ontology.EntityKind]ontology.Node{
	ontology.Class:              Class,
	ontology.Datatype:           RDFSDatatype,
	ontology.ObjectProperty:     ObjectProperty,
	ontology.DataProperty:       DatatypeProperty,
	ontology.AnnotationProperty: AnnotationProperty,
	ontology.NamedIndividual:    NamedIndividual,
}

var kindsByType = map[ontology.Node]ontology.EntityKind{}

var builtins = map[string]ontology.EntityKind{}

func init() {
	for k, n := range declarationTypes {
		kindsByType[n] = k
	}
	for _, n := range []ontology.Node{Thing, Nothing} {
		builtins[n.Value] = ontology.Class
	}
	for _, n := range []ontology.Node{TopObjectProperty, BottomObjectProperty} {
		builtins[n.Value] = ontology.ObjectProperty
	}
	for _, n := range []ontology.Node{TopDataProperty, BottomDataProperty} {
		builtins[n.Value] = ontology.DataProperty
	}
	for _, n := range []ontology.Node{Label, Comment, SeeAlso, IsDefinedBy, Deprecated,
		VersionInfo, PriorVersion, BackwardCompatible, IncompatibleWith} {
		builtins[n.Value] = ontology.AnnotationProperty
	}
	for _, n := range []ontology.Node{RDFSLiteral, PlainLit, LangString, XMLLiteral} {
		builtins[n.Value] = ontology.Datatype
	}
	for _, local := range xsdDatatypes {
		builtins[XSDNS+local] = ontology.Datatype
	}
}

// DeclarationType returns the rdf:type object declaring an entity of kind k.
func DeclarationType(k ontology.EntityKind) ontology.Node {
	return declarationTypes[k]
}

// KindOfType maps a declaration type back to its entity kind.
func KindOfType(typ ontology.Node) (ontology.EntityKind, bool) {
	k, ok := kindsByType[typ]
	return k, ok
}

// Builtin reports the kind of a builtin entity that needs no declaration.
func Builtin(iri string) (ontology.EntityKind, bool) {
	k, ok := builtins[iri]
	return k, ok
}

// IsBuiltin reports whether iri is a builtin entity of kind k.
func IsBuiltin(iri string, k ontology.EntityKind) bool {
	b, ok := builtins[iri]
	return ok && b == k
}

// IsReserved reports whether iri belongs to the RDF, RDFS, OWL or XSD
// namespaces. Reserved IRIs never denote user classes.
func IsReserved(iri string) bool {
	return strings.HasPrefix(iri, RDFNS) || strings.HasPrefix(iri, RDFSNS) ||
		strings.HasPrefix(iri, OWLNS) || strings.HasPrefix(iri, XSDNS)
}
