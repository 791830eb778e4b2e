package ontology

import "sort"

// Triple is a single subject-predicate-object fact.
type Triple struct {
	S, P, O Node
}

// T is shorthand for building a Triple.
func T(s, p, o Node) Triple {
	return Triple{S: s, P: p, O: o}
}

// Matches reports whether the triple satisfies the (s, p, o) pattern.
func (t Triple) Matches(s, p, o Node) bool {
	return t.S.Matches(s) && t.P.Matches(p) && t.O.Matches(o)
}

// IsGround reports whether no position is a wildcard.
func (t Triple) IsGround() bool {
	return t.S.Kind != Any && t.P.Kind != Any && t.O.Kind != Any
}

func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}

// SortTriples orders triples by subject, predicate, then object.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		return CompareTriples(ts[i], ts[j]) < 0
	})
}
