package graph

import "github.com/wbrown/janus-owl/ontology"

// Closure returns every triple reachable from n through blank objects,
// starting with the triples whose subject is n. Non-blank nodes have an
// empty closure. Used to collect the sub-graph of an anonymous expression.
func Closure(g Graph, n ontology.Node) ([]ontology.Triple, error) {
	var out []ontology.Triple
	seen := map[ontology.Node]bool{}
	queue := []ontology.Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !cur.IsBlank() || seen[cur] {
			continue
		}
		seen[cur] = true
		ts, err := FindAll(g, cur, ontology.Wildcard, ontology.Wildcard)
		if err != nil {
			return nil, err
		}
		for _, t := range ts {
			out = append(out, t)
			if t.O.IsBlank() {
				queue = append(queue, t.O)
			}
		}
	}
	return out, nil
}
