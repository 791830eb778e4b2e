// Package ontology holds the value types shared by every layer of the
// axiom/triple translation engine: graph nodes and triples, entity kinds,
// the cache generation counter, configuration and the error taxonomy.
package ontology

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// NodeKind discriminates the three shapes a graph node can take.
type NodeKind uint8

const (
	// Any is the wildcard kind used in triple patterns.
	Any NodeKind = iota
	IRINode
	BlankNode
	LiteralNode
)

func (k NodeKind) String() string {
	switch k {
	case IRINode:
		return "iri"
	case BlankNode:
		return "blank"
	case LiteralNode:
		return "literal"
	default:
		return "any"
	}
}

// XSDString is the implicit datatype of simple literals. Literals typed with
// it are stored with an empty Datatype so both spellings compare equal.
const XSDString = "http://www.w3.org/2001/XMLSchema#string"

// Node is a term of the graph. It is a comparable value so it can key maps
// directly. The zero Node is the wildcard.
type Node struct {
	Kind     NodeKind
	Value    string // IRI, blank label or lexical form
	Datatype string // literals only; empty for simple strings
	Lang     string // literals only
}

// Wildcard matches any node in a pattern.
var Wildcard = Node{}

// IRI returns a URI node.
func IRI(v string) Node {
	return Node{Kind: IRINode, Value: InternString(v)}
}

// Blank returns a blank node with the given label.
func Blank(label string) Node {
	return Node{Kind: BlankNode, Value: label}
}

// NewBlank allocates a blank node with a fresh, globally unique label.
func NewBlank() Node {
	return Blank("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Literal returns a typed literal.
func Literal(lexical, datatype string) Node {
	if datatype == XSDString {
		datatype = ""
	}
	return Node{Kind: LiteralNode, Value: lexical, Datatype: InternString(datatype)}
}

// PlainLiteral returns a simple string literal.
func PlainLiteral(lexical string) Node {
	return Node{Kind: LiteralNode, Value: lexical}
}

// LangLiteral returns a language-tagged string.
func LangLiteral(lexical, lang string) Node {
	return Node{Kind: LiteralNode, Value: lexical, Lang: strings.ToLower(lang)}
}

func (n Node) IsAny() bool     { return n.Kind == Any }
func (n Node) IsIRI() bool     { return n.Kind == IRINode }
func (n Node) IsBlank() bool   { return n.Kind == BlankNode }
func (n Node) IsLiteral() bool { return n.Kind == LiteralNode }

// IsResource reports whether the node can be the subject of a triple.
func (n Node) IsResource() bool { return n.Kind == IRINode || n.Kind == BlankNode }

// Matches reports whether n satisfies the pattern node p.
func (n Node) Matches(p Node) bool {
	return p.Kind == Any || n == p
}

// String renders the node in N-Triples term syntax.
func (n Node) String() string {
	switch n.Kind {
	case IRINode:
		return "<" + n.Value + ">"
	case BlankNode:
		return "_:" + n.Value
	case LiteralNode:
		s := quoteLiteral(n.Value)
		if n.Lang != "" {
			return s + "@" + n.Lang
		}
		if n.Datatype != "" {
			return s + "^^<" + n.Datatype + ">"
		}
		return s
	default:
		return "?"
	}
}

func quoteLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

// Quad converts the node to its cayley quad representation.
func (n Node) Quad() quad.Value {
	switch n.Kind {
	case IRINode:
		return quad.IRI(n.Value)
	case BlankNode:
		return quad.BNode(n.Value)
	case LiteralNode:
		if n.Lang != "" {
			return quad.LangString{Value: quad.String(n.Value), Lang: n.Lang}
		}
		if n.Datatype != "" {
			return quad.TypedString{Value: quad.String(n.Value), Type: quad.IRI(n.Datatype)}
		}
		return quad.String(n.Value)
	default:
		return nil
	}
}

// FromQuad converts a cayley quad value into a Node.
func FromQuad(v quad.Value) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Wildcard, nil
	case quad.IRI:
		return IRI(string(x.Full())), nil
	case quad.BNode:
		return Blank(string(x)), nil
	case quad.String:
		return PlainLiteral(string(x)), nil
	case quad.LangString:
		return LangLiteral(string(x.Value), x.Lang), nil
	case quad.TypedString:
		return Literal(string(x.Value), string(x.Type.Full())), nil
	case quad.TypedStringer:
		ts := x.TypedString()
		return Literal(string(ts.Value), string(ts.Type.Full())), nil
	default:
		return Wildcard, fmt.Errorf("%w: unsupported quad value %T", ErrMalformedPattern, v)
	}
}
