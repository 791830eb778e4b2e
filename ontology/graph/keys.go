package graph

import (
	"crypto/sha1"
	"fmt"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/codec"
)

// IndexType selects one of the three key orderings kept by BadgerStore.
type IndexType byte

const (
	SPO IndexType = iota + 1
	POS
	OSP
)

var allIndices = []IndexType{SPO, POS, OSP}

func (i IndexType) String() string {
	switch i {
	case SPO:
		return "SPO"
	case POS:
		return "POS"
	case OSP:
		return "OSP"
	default:
		return fmt.Sprintf("IndexType(%d)", byte(i))
	}
}

// order returns the triple positions in index order.
func (i IndexType) order(t ontology.Triple) (a, b, c ontology.Node) {
	switch i {
	case POS:
		return t.P, t.O, t.S
	case OSP:
		return t.O, t.S, t.P
	default:
		return t.S, t.P, t.O
	}
}

// TermHash is the fixed-width identity of a node inside store keys.
func TermHash(n ontology.Node) [20]byte {
	return sha1.Sum([]byte(n.String()))
}

// KeyEncoder builds index keys from term hashes.
type KeyEncoder interface {
	// EncodeKey creates the full index key of a triple.
	EncodeKey(index IndexType, t ontology.Triple) []byte

	// EncodePrefix creates a prefix key for range scans over the leading
	// components of an index.
	EncodePrefix(index IndexType, parts ...ontology.Node) []byte
}

// KeyEncodingStrategy represents different encoding strategies
type KeyEncodingStrategy int

const (
	// BinaryStrategy uses raw hashes for space efficiency
	BinaryStrategy KeyEncodingStrategy = iota

	// L85Strategy uses printable L85 hashes, handy when inspecting a store
	L85Strategy
)

// NewKeyEncoder creates a key encoder with the specified strategy
func NewKeyEncoder(strategy KeyEncodingStrategy) KeyEncoder {
	if strategy == L85Strategy {
		return &L85KeyEncoder{}
	}
	return &BinaryKeyEncoder{}
}

// BinaryKeyEncoder lays out keys as index byte + three 20-byte hashes.
type BinaryKeyEncoder struct{}

func (BinaryKeyEncoder) EncodeKey(index IndexType, t ontology.Triple) []byte {
	a, b, c := index.order(t)
	return BinaryKeyEncoder{}.EncodePrefix(index, a, b, c)
}

func (BinaryKeyEncoder) EncodePrefix(index IndexType, parts ...ontology.Node) []byte {
	key := make([]byte, 1, 1+20*len(parts))
	key[0] = byte(index)
	for _, p := range parts {
		h := TermHash(p)
		key = append(key, h[:]...)
	}
	return key
}

// L85KeyEncoder lays out keys as index byte + three 25-character L85 hashes.
type L85KeyEncoder struct{}

func (L85KeyEncoder) EncodeKey(index IndexType, t ontology.Triple) []byte {
	a, b, c := index.order(t)
	return L85KeyEncoder{}.EncodePrefix(index, a, b, c)
}

func (L85KeyEncoder) EncodePrefix(index IndexType, parts ...ontology.Node) []byte {
	key := make([]byte, 1, 1+25*len(parts))
	key[0] = byte(index)
	for _, p := range parts {
		key = append(key, codec.EncodeHash(TermHash(p))...)
	}
	return key
}

// chooseIndex picks the index whose leading components are all bound and
// returns them.
func chooseIndex(s, p, o ontology.Node) (IndexType, []ontology.Node) {
	switch {
	case !s.IsAny() && !p.IsAny():
		if !o.IsAny() {
			return SPO, []ontology.Node{s, p, o}
		}
		return SPO, []ontology.Node{s, p}
	case !s.IsAny() && !o.IsAny():
		return OSP, []ontology.Node{o, s}
	case !s.IsAny():
		return SPO, []ontology.Node{s}
	case !p.IsAny() && !o.IsAny():
		return POS, []ontology.Node{p, o}
	case !p.IsAny():
		return POS, []ontology.Node{p}
	case !o.IsAny():
		return OSP, []ontology.Node{o}
	default:
		return SPO, nil
	}
}
