package ontology

import "sync"

// stringIntern deduplicates IRI and datatype strings, which repeat heavily
// across a graph. Uses sync.Map for lock-free concurrent reads.
type stringIntern struct {
	cache sync.Map // map[string]string
}

var iriIntern = &stringIntern{}

// InternString returns the canonical instance of s.
func InternString(s string) string {
	if s == "" {
		return s
	}
	// Fast path: load existing (lock-free)
	if val, ok := iriIntern.cache.Load(s); ok {
		return val.(string)
	}
	actual, _ := iriIntern.cache.LoadOrStore(s, s)
	return actual.(string)
}
