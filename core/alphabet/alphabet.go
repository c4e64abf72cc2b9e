// core/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Code is the dense integer form of one symbol.
type Code uint8

// Symbol codes. N doubles as the pad code.
const (
	A Code = iota
	C
	G
	T
	N

	Pad  = N
	Size = 5
)

// ErrInvalidCode reports a code outside [0,4] reaching the decoder.
var ErrInvalidCode = errors.New("invalid code")

const symbols = "ACGTN"

// encodeTable maps every byte to its code; anything not a/c/g/t is N.
var encodeTable = func() [256]Code {
	var t [256]Code
	for i := range t {
		t[i] = N
	}
	for c, s := range []byte("ACGT") {
		t[s] = Code(c)
		t[s+'a'-'A'] = Code(c)
	}
	return t
}()

// Encode maps text to codes, one code per character. It never fails.
func Encode(text string) []Code {
	out := make([]Code, 0, len(text))
	for _, r := range text {
		if r < 0x80 {
			out = append(out, encodeTable[byte(r)])
			continue
		}
		out = append(out, N)
	}
	return out
}

// EncodeBytes is Encode for raw ASCII sequence bytes (FASTA payloads).
func EncodeBytes(seq []byte) []Code {
	out := make([]Code, len(seq))
	for i, b := range seq {
		out[i] = encodeTable[b]
	}
	return out
}

// Symbol returns the letter for c.
func (c Code) Symbol() (byte, error) {
	if c >= Size {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCode, c)
	}
	return symbols[c], nil
}

func (c Code) String() string {
	if s, err := c.Symbol(); err == nil {
		return string(s)
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Decode maps codes back to uppercase ACGTN text.
func Decode(codes []Code) (string, error) {
	var b strings.Builder
	b.Grow(len(codes))
	for i, c := range codes {
		if c >= Size {
			return "", fmt.Errorf("%w: %d at position %d", ErrInvalidCode, c, i)
		}
		b.WriteByte(symbols[c])
	}
	return b.String(), nil
}

// Normalize uppercases text and replaces every non-ACGT character with N.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	s, _ := Decode(Encode(text)) // Encode only yields valid codes
	return s
}

// FromInts validates plain integers (e.g. decoded model output) as codes.
func FromInts(vals []int) ([]Code, error) {
	out := make([]Code, len(vals))
	for i, v := range vals {
		if v < 0 || v >= Size {
			return nil, fmt.Errorf("%w: %d at position %d", ErrInvalidCode, v, i)
		}
		out[i] = Code(v)
	}
	return out, nil
}

// Ints is the inverse of FromInts.
func Ints(codes []Code) []int {
	out := make([]int, len(codes))
	for i, c := range codes {
		out[i] = int(c)
	}
	return out
}

// HasDamage reports whether text carries damage markers: any lowercase
// letter or an N.
func HasDamage(text string) bool {
	for _, r := range text {
		if r == 'N' || unicode.IsLower(r) {
			return true
		}
	}
	return false
}
