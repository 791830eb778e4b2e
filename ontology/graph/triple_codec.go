package graph

import (
	"encoding/binary"

	"github.com/wbrown/janus-owl/ontology"
)

// encodeTriple serializes a triple as three nodes, each a kind byte followed
// by length-prefixed value, datatype and language strings.
func encodeTriple(t ontology.Triple) []byte {
	buf := make([]byte, 0, 64)
	for _, n := range []ontology.Node{t.S, t.P, t.O} {
		buf = append(buf, byte(n.Kind))
		for _, s := range []string{n.Value, n.Datatype, n.Lang} {
			buf = binary.AppendUvarint(buf, uint64(len(s)))
			buf = append(buf, s...)
		}
	}
	return buf
}

func decodeTriple(buf []byte) (ontology.Triple, error) {
	var nodes [3]ontology.Node
	for i := range nodes {
		if len(buf) == 0 {
			return ontology.Triple{}, ontology.Invariant("truncated triple value")
		}
		kind := ontology.NodeKind(buf[0])
		buf = buf[1:]
		var fields [3]string
		for j := range fields {
			n, w := binary.Uvarint(buf)
			if w <= 0 || uint64(len(buf)-w) < n {
				return ontology.Triple{}, ontology.Invariant("corrupt triple value")
			}
			fields[j] = string(buf[w : w+int(n)])
			buf = buf[w+int(n):]
		}
		switch kind {
		case ontology.IRINode:
			nodes[i] = ontology.IRI(fields[0])
		case ontology.BlankNode:
			nodes[i] = ontology.Blank(fields[0])
		case ontology.LiteralNode:
			nodes[i] = ontology.Node{Kind: kind, Value: fields[0], Datatype: ontology.InternString(fields[1]), Lang: fields[2]}
		default:
			return ontology.Triple{}, ontology.Invariant("unknown node kind %d", kind)
		}
	}
	return ontology.T(nodes[0], nodes[1], nodes[2]), nil
}
