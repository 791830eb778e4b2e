package codec

import (
	"bytes"
	"crypto/sha1"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff},
		{0x01, 0x00},
		{0xde, 0xad, 0xbe},
		{0x00, 0x00, 0x00, 0x00},
		{0xff, 0xff, 0xff, 0xff, 0xff},
		[]byte("annotated source"),
	}
	for _, in := range inputs {
		enc := Encode(in)
		dec, err := Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, in, dec, "input %x encoded %q", in, enc)
	}
}

func TestEncodingPreservesOrder(t *testing.T) {
	var raw [][]byte
	for _, s := range []string{"owl:Class", "rdf:type", "rdfs:label", "owl:Axiom", "xsd:string"} {
		h := sha1.Sum([]byte(s))
		raw = append(raw, h[:])
	}
	sort.Slice(raw, func(i, j int) bool { return bytes.Compare(raw[i], raw[j]) < 0 })

	for i := 1; i < len(raw); i++ {
		assert.Less(t, Encode(raw[i-1]), Encode(raw[i]))
	}
}

func TestHashEncoding(t *testing.T) {
	h := sha1.Sum([]byte("http://www.w3.org/2002/07/owl#Thing"))
	s := EncodeHash(h)
	assert.Len(t, s, 25)

	back, err := DecodeHash(s)
	require.NoError(t, err)
	assert.Equal(t, h, back)

	_, err = DecodeHash("short")
	assert.Error(t, err)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := Decode("abc\"d")
	assert.ErrorIs(t, err, ErrInvalidCharacter)

	_, err = Decode("abcde0")
	assert.Error(t, err)
}
