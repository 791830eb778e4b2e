package objects

import (
	"strconv"
	"strings"
)

// ExprOp tags the variant of an anonymous Expression.
type ExprOp uint8

const (
	OpObjectInverseOf ExprOp = iota + 1
	OpObjectUnionOf
	OpObjectIntersectionOf
	OpObjectOneOf
	OpObjectComplementOf
	OpObjectSomeValuesFrom
	OpObjectAllValuesFrom
	OpObjectHasValue
	OpObjectHasSelf
	OpObjectMinCardinality
	OpObjectMaxCardinality
	OpObjectExactCardinality
	OpDataSomeValuesFrom
	OpDataAllValuesFrom
	OpDataHasValue
	OpDataMinCardinality
	OpDataMaxCardinality
	OpDataExactCardinality
	OpDataUnionOf
	OpDataIntersectionOf
	OpDataComplementOf
	OpDataOneOf
)

var opNames = map[ExprOp]string{
	OpObjectInverseOf:        "ObjectInverseOf",
	OpObjectUnionOf:          "ObjectUnionOf",
	OpObjectIntersectionOf:   "ObjectIntersectionOf",
	OpObjectOneOf:            "ObjectOneOf",
	OpObjectComplementOf:     "ObjectComplementOf",
	OpObjectSomeValuesFrom:   "ObjectSomeValuesFrom",
	OpObjectAllValuesFrom:    "ObjectAllValuesFrom",
	OpObjectHasValue:         "ObjectHasValue",
	OpObjectHasSelf:          "ObjectHasSelf",
	OpObjectMinCardinality:   "ObjectMinCardinality",
	OpObjectMaxCardinality:   "ObjectMaxCardinality",
	OpObjectExactCardinality: "ObjectExactCardinality",
	OpDataSomeValuesFrom:     "DataSomeValuesFrom",
	OpDataAllValuesFrom:      "DataAllValuesFrom",
	OpDataHasValue:           "DataHasValue",
	OpDataMinCardinality:     "DataMinCardinality",
	OpDataMaxCardinality:     "DataMaxCardinality",
	OpDataExactCardinality:   "DataExactCardinality",
	OpDataUnionOf:            "DataUnionOf",
	OpDataIntersectionOf:     "DataIntersectionOf",
	OpDataComplementOf:       "DataComplementOf",
	OpDataOneOf:              "DataOneOf",
}

func (op ExprOp) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "ExprOp(" + strconv.Itoa(int(op)) + ")"
}

// IsCardinality reports whether op carries a cardinality.
func (op ExprOp) IsCardinality() bool {
	switch op {
	case OpObjectMinCardinality, OpObjectMaxCardinality, OpObjectExactCardinality,
		OpDataMinCardinality, OpDataMaxCardinality, OpDataExactCardinality:
		return true
	}
	return false
}

// IsDataRange reports whether op builds a data range rather than a class
// or property expression.
func (op ExprOp) IsDataRange() bool {
	return op >= OpDataUnionOf
}

// Expression is an anonymous class expression, data range or inverse
// property. Args holds the operands: members for n-ary ops, [property,
// filler] for restrictions, [property] for ObjectHasSelf and inverses.
type Expression struct {
	Op          ExprOp
	Cardinality int
	Args        []Object
	key         string
}

func newExpression(op ExprOp, card int, args ...Object) *Expression {
	e := &Expression{Op: op, Cardinality: card, Args: args}
	var b strings.Builder
	b.WriteString(op.String())
	b.WriteByte('(')
	if op.IsCardinality() {
		b.WriteString(strconv.Itoa(card))
		b.WriteByte(' ')
	}
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Key())
	}
	b.WriteByte(')')
	e.key = b.String()
	return e
}

func (e *Expression) Key() string    { return e.key }
func (e *Expression) String() string { return e.key }

// Property returns the restricted property of a restriction or inverse.
func (e *Expression) Property() Object {
	if len(e.Args) == 0 {
		return nil
	}
	return e.Args[0]
}

// Filler returns the second operand of a restriction.
func (e *Expression) Filler() Object {
	if len(e.Args) < 2 {
		return nil
	}
	return e.Args[1]
}

// InverseOf builds ObjectInverseOf(p).
func InverseOf(p Entity) *Expression { return newExpression(OpObjectInverseOf, 0, p) }

// UnionOf builds ObjectUnionOf; operands are a set.
func UnionOf(classes ...Object) *Expression {
	return newExpression(OpObjectUnionOf, 0, SortDistinct(classes)...)
}

// IntersectionOf builds ObjectIntersectionOf; operands are a set.
func IntersectionOf(classes ...Object) *Expression {
	return newExpression(OpObjectIntersectionOf, 0, SortDistinct(classes)...)
}

// OneOf builds ObjectOneOf over individuals.
func OneOf(individuals ...Object) *Expression {
	return newExpression(OpObjectOneOf, 0, SortDistinct(individuals)...)
}

func ComplementOf(c Object) *Expression { return newExpression(OpObjectComplementOf, 0, c) }

func SomeValuesFrom(p, c Object) *Expression { return newExpression(OpObjectSomeValuesFrom, 0, p, c) }
func AllValuesFrom(p, c Object) *Expression  { return newExpression(OpObjectAllValuesFrom, 0, p, c) }
func HasValue(p, ind Object) *Expression     { return newExpression(OpObjectHasValue, 0, p, ind) }
func HasSelf(p Object) *Expression           { return newExpression(OpObjectHasSelf, 0, p) }

// MinCardinality builds ObjectMinCardinality. A nil filler means owl:Thing.
func MinCardinality(n int, p, c Object) *Expression {
	return newExpression(OpObjectMinCardinality, n, p, classFiller(c))
}

func MaxCardinality(n int, p, c Object) *Expression {
	return newExpression(OpObjectMaxCardinality, n, p, classFiller(c))
}

func ExactCardinality(n int, p, c Object) *Expression {
	return newExpression(OpObjectExactCardinality, n, p, classFiller(c))
}

func DataSomeValuesFrom(p Entity, dr Object) *Expression {
	return newExpression(OpDataSomeValuesFrom, 0, p, dr)
}

func DataAllValuesFrom(p Entity, dr Object) *Expression {
	return newExpression(OpDataAllValuesFrom, 0, p, dr)
}

func DataHasValue(p Entity, v Literal) *Expression {
	return newExpression(OpDataHasValue, 0, p, v)
}

// DataMinCardinality builds DataMinCardinality. A nil range means rdfs:Literal.
func DataMinCardinality(n int, p Entity, dr Object) *Expression {
	return newExpression(OpDataMinCardinality, n, p, dataFiller(dr))
}

func DataMaxCardinality(n int, p Entity, dr Object) *Expression {
	return newExpression(OpDataMaxCardinality, n, p, dataFiller(dr))
}

func DataExactCardinality(n int, p Entity, dr Object) *Expression {
	return newExpression(OpDataExactCardinality, n, p, dataFiller(dr))
}

func DataUnionOf(ranges ...Object) *Expression {
	return newExpression(OpDataUnionOf, 0, SortDistinct(ranges)...)
}

func DataIntersectionOf(ranges ...Object) *Expression {
	return newExpression(OpDataIntersectionOf, 0, SortDistinct(ranges)...)
}

func DataComplementOf(dr Object) *Expression { return newExpression(OpDataComplementOf, 0, dr) }

func DataOneOf(values ...Object) *Expression {
	return newExpression(OpDataOneOf, 0, SortDistinct(values)...)
}

func classFiller(c Object) Object {
	if c == nil {
		return Thing
	}
	return c
}

func dataFiller(dr Object) Object {
	if dr == nil {
		return RDFSLiteral
	}
	return dr
}
