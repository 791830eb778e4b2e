package ontology

import "strings"

// CompareNodes compares two nodes and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// Nodes order by kind first (wildcard, IRI, blank, literal), then by value,
// datatype and language tag.
func CompareNodes(left, right Node) int {
	if left.Kind != right.Kind {
		if left.Kind < right.Kind {
			return -1
		}
		return 1
	}
	if c := strings.Compare(left.Value, right.Value); c != 0 {
		return c
	}
	if c := strings.Compare(left.Datatype, right.Datatype); c != 0 {
		return c
	}
	return strings.Compare(left.Lang, right.Lang)
}

// CompareTriples compares triples position by position.
func CompareTriples(left, right Triple) int {
	if c := CompareNodes(left.S, right.S); c != 0 {
		return c
	}
	if c := CompareNodes(left.P, right.P); c != 0 {
		return c
	}
	return CompareNodes(left.O, right.O)
}
