package objects

import (
	"strconv"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/vocab"
)

type cardinalityForm struct {
	predicate ontology.Node
	object    ExprOp
	data      ExprOp
	qualified bool
}

var cardinalityForms = []cardinalityForm{
	{vocab.MinCardinality, OpObjectMinCardinality, OpDataMinCardinality, false},
	{vocab.MaxCardinality, OpObjectMaxCardinality, OpDataMaxCardinality, false},
	{vocab.Cardinality, OpObjectExactCardinality, OpDataExactCardinality, false},
	{vocab.MinQualifiedCardinality, OpObjectMinCardinality, OpDataMinCardinality, true},
	{vocab.MaxQualifiedCardinality, OpObjectMaxCardinality, OpDataMaxCardinality, true},
	{vocab.QualifiedCardinality, OpObjectExactCardinality, OpDataExactCardinality, true},
}

func (f *Factory) readClassExpression(n ontology.Node, depth int) (Object, error) {
	if isRange, err := graph.HasType(f.g, n, vocab.RDFSDatatype); err != nil {
		return nil, err
	} else if isRange {
		return nil, ontology.Malformed("%s is a data range, not a class expression", n)
	}
	isRestriction, err := graph.HasType(f.g, n, vocab.Restriction)
	if err != nil {
		return nil, err
	}
	if isRestriction {
		return f.readRestriction(n, depth)
	}

	if head, ok, err := graph.Object(f.g, n, vocab.UnionOf); err != nil {
		return nil, err
	} else if ok {
		members, err := f.classList(head, depth)
		if err != nil {
			return nil, err
		}
		return UnionOf(members...), nil
	}
	if head, ok, err := graph.Object(f.g, n, vocab.IntersectionOf); err != nil {
		return nil, err
	} else if ok {
		members, err := f.classList(head, depth)
		if err != nil {
			return nil, err
		}
		return IntersectionOf(members...), nil
	}
	if c, ok, err := graph.Object(f.g, n, vocab.ComplementOf); err != nil {
		return nil, err
	} else if ok {
		inner, err := f.classExpression(c, depth+1)
		if err != nil {
			return nil, err
		}
		return ComplementOf(inner), nil
	}
	if head, ok, err := graph.Object(f.g, n, vocab.OneOf); err != nil {
		return nil, err
	} else if ok {
		nodes, err := graph.ReadList(f.g, head)
		if err != nil {
			return nil, err
		}
		var inds []Object
		for _, m := range nodes {
			ind, err := f.Individual(m)
			if err != nil {
				return nil, err
			}
			inds = append(inds, ind)
		}
		return OneOf(inds...), nil
	}
	return nil, ontology.Malformed("%s is not a class expression", n)
}

func (f *Factory) classList(head ontology.Node, depth int) ([]Object, error) {
	nodes, err := graph.ReadList(f.g, head)
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, len(nodes))
	for _, m := range nodes {
		c, err := f.classExpression(m, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// isDataProperty decides whether a restriction is a data restriction from
// the declaration of its property.
func (f *Factory) isDataProperty(p ontology.Node) (bool, error) {
	if !p.IsIRI() {
		return false, nil
	}
	if k, ok := vocab.Builtin(p.Value); ok {
		return k == ontology.DataProperty, nil
	}
	return graph.HasType(f.g, p, vocab.DatatypeProperty)
}

func (f *Factory) readRestriction(n ontology.Node, depth int) (Object, error) {
	pn, ok, err := graph.Object(f.g, n, vocab.OnProperty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ontology.Malformed("restriction %s has no owl:onProperty", n)
	}
	isData, err := f.isDataProperty(pn)
	if err != nil {
		return nil, err
	}

	var (
		objProp  Object
		dataProp Entity
	)
	if isData {
		dataProp, err = f.DataProperty(pn)
	} else {
		objProp, err = f.ObjectPropertyExpression(pn)
	}
	if err != nil {
		return nil, err
	}

	filler := func(v ontology.Node) (Object, error) {
		if isData {
			return f.dataRange(v, depth+1)
		}
		return f.classExpression(v, depth+1)
	}

	if v, ok, err := graph.Object(f.g, n, vocab.SomeValuesFrom); err != nil {
		return nil, err
	} else if ok {
		c, err := filler(v)
		if err != nil {
			return nil, err
		}
		if isData {
			return DataSomeValuesFrom(dataProp, c), nil
		}
		return SomeValuesFrom(objProp, c), nil
	}
	if v, ok, err := graph.Object(f.g, n, vocab.AllValuesFrom); err != nil {
		return nil, err
	} else if ok {
		c, err := filler(v)
		if err != nil {
			return nil, err
		}
		if isData {
			return DataAllValuesFrom(dataProp, c), nil
		}
		return AllValuesFrom(objProp, c), nil
	}
	if v, ok, err := graph.Object(f.g, n, vocab.HasValue); err != nil {
		return nil, err
	} else if ok {
		if isData {
			lit, err := f.Literal(v)
			if err != nil {
				return nil, err
			}
			return DataHasValue(dataProp, lit), nil
		}
		ind, err := f.Individual(v)
		if err != nil {
			return nil, err
		}
		return HasValue(objProp, ind), nil
	}
	if _, ok, err := graph.Object(f.g, n, vocab.HasSelf); err != nil {
		return nil, err
	} else if ok && !isData {
		return HasSelf(objProp), nil
	}

	for _, form := range cardinalityForms {
		v, ok, err := graph.Object(f.g, n, form.predicate)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		card, err := parseCardinality(v)
		if err != nil {
			return nil, err
		}
		var c Object
		if form.qualified {
			onPred := vocab.OnClass
			if isData {
				onPred = vocab.OnDataRange
			}
			fn, ok, err := graph.Object(f.g, n, onPred)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ontology.Malformed("qualified restriction %s has no %s", n, onPred)
			}
			if c, err = filler(fn); err != nil {
				return nil, err
			}
		}
		if isData {
			return newExpression(form.data, card, dataProp, dataFiller(c)), nil
		}
		return newExpression(form.object, card, objProp, classFiller(c)), nil
	}
	return nil, ontology.Malformed("restriction %s has no recognised filler", n)
}

func parseCardinality(v ontology.Node) (int, error) {
	if !v.IsLiteral() {
		return 0, ontology.Malformed("cardinality %s is not a literal", v)
	}
	n, err := strconv.Atoi(v.Value)
	if err != nil || n < 0 {
		return 0, ontology.Malformed("cardinality %s is not a non-negative integer", v)
	}
	return n, nil
}

func (f *Factory) readDataRange(n ontology.Node, depth int) (Object, error) {
	if isRange, err := graph.HasType(f.g, n, vocab.RDFSDatatype); err != nil {
		return nil, err
	} else if !isRange {
		return nil, ontology.Malformed("%s is not typed rdfs:Datatype", n)
	}
	list := func(p ontology.Node) ([]Object, bool, error) {
		head, ok, err := graph.Object(f.g, n, p)
		if err != nil || !ok {
			return nil, ok, err
		}
		nodes, err := graph.ReadList(f.g, head)
		if err != nil {
			return nil, true, err
		}
		out := make([]Object, 0, len(nodes))
		for _, m := range nodes {
			var o Object
			if p == vocab.OneOf {
				o, err = f.Literal(m)
			} else {
				o, err = f.dataRange(m, depth+1)
			}
			if err != nil {
				return nil, true, err
			}
			out = append(out, o)
		}
		return out, true, nil
	}

	if ms, ok, err := list(vocab.UnionOf); err != nil {
		return nil, err
	} else if ok {
		return DataUnionOf(ms...), nil
	}
	if ms, ok, err := list(vocab.IntersectionOf); err != nil {
		return nil, err
	} else if ok {
		return DataIntersectionOf(ms...), nil
	}
	if ms, ok, err := list(vocab.OneOf); err != nil {
		return nil, err
	} else if ok {
		return DataOneOf(ms...), nil
	}
	if c, ok, err := graph.Object(f.g, n, vocab.DatatypeComplementOf); err != nil {
		return nil, err
	} else if ok {
		inner, err := f.dataRange(c, depth+1)
		if err != nil {
			return nil, err
		}
		return DataComplementOf(inner), nil
	}
	return nil, ontology.Malformed("%s is not a data range", n)
}
