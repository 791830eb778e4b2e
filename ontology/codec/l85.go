// Package codec implements L85, a lexicographically sortable base-85
// encoding. Encoded strings sort in the same order as their input bytes, so
// hashed store keys stay range-scannable while remaining printable.
package codec

import (
	"errors"
	"fmt"
)

// Alphabet lists the 85 digits in ascending byte order.
const Alphabet = "!$%&()+,-./" +
	"0123456789:;<=>@" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ[]_`" +
	"abcdefghijklmnopqrstuvwxyz{}"

// ErrInvalidCharacter is returned when decoding a byte outside Alphabet.
var ErrInvalidCharacter = errors.New("invalid L85 character")

// digitValue maps a byte to its digit value plus one; zero marks invalid.
var digitValue [256]byte

func init() {
	for i := 0; i < len(Alphabet); i++ {
		digitValue[Alphabet[i]] = byte(i + 1)
	}
}

// Encode encodes src. Every 4-byte group becomes 5 digits; a trailing group
// of n bytes becomes n+1 digits.
func Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	out := make([]byte, 0, (len(src)+3)/4*5)
	for i := 0; i < len(src); i += 4 {
		var group [4]byte
		n := copy(group[:], src[i:])
		v := uint32(group[0])<<24 | uint32(group[1])<<16 | uint32(group[2])<<8 | uint32(group[3])

		var digits [5]byte
		for j := 4; j >= 0; j-- {
			digits[j] = Alphabet[v%85]
			v /= 85
		}
		out = append(out, digits[:n+1]...)
	}
	return string(out)
}

// Decode reverses Encode.
func Decode(src string) ([]byte, error) {
	for i := 0; i < len(src); i++ {
		if digitValue[src[i]] == 0 {
			return nil, fmt.Errorf("%w at position %d: %q", ErrInvalidCharacter, i, src[i])
		}
	}
	out := make([]byte, 0, len(src)*4/5+4)
	for i := 0; i < len(src); i += 5 {
		end := i + 5
		if end > len(src) {
			end = len(src)
		}
		chunk := src[i:end]
		if len(chunk) == 1 {
			return nil, errors.New("invalid L85 encoding: incomplete group")
		}
		v := uint32(0)
		for j := 0; j < 5; j++ {
			// missing digits take the top value so the truncated low part
			// rounds up instead of borrowing from the kept bytes
			d := uint32(84)
			if j < len(chunk) {
				d = uint32(digitValue[chunk[j]] - 1)
			}
			v = v*85 + d
		}
		group := [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
		out = append(out, group[:len(chunk)-1]...)
	}
	return out, nil
}

// EncodeHash encodes a 20-byte term hash into exactly 25 digits.
func EncodeHash(h [20]byte) string {
	return Encode(h[:])
}

// DecodeHash reverses EncodeHash.
func DecodeHash(s string) ([20]byte, error) {
	var h [20]byte
	if len(s) != 25 {
		return h, fmt.Errorf("expected 25 characters, got %d", len(s))
	}
	b, err := Decode(s)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}
