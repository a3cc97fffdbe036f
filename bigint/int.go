package bigint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// Signedness selects the two's-complement convention used by Encode,
// Decode, GetByte and SetByte.
type Signedness int

const (
	Unsigned Signedness = iota
	Signed
)

// Int is a signed, arbitrary-precision integer. The zero value is 0 and
// is ready to use.
type Int struct {
	v big.Int
}

// Zero returns a freshly constructed zero value.
func Zero() *Int { return &Int{} }

// FromInt64 constructs an Int from a signed 64-bit value.
func FromInt64(n int64) *Int {
	i := &Int{}
	i.v.SetInt64(n)
	return i
}

// FromUint64 constructs an Int from an unsigned 64-bit value.
func FromUint64(n uint64) *Int {
	i := &Int{}
	i.v.SetUint64(n)
	return i
}

// FromString parses a decimal, hex, octal or binary literal, honoring
// the suffix convention `h|H` (hex), `o|O` (octal), `b|B` (binary); no
// suffix means decimal. A leading '-' negates the value.
func FromString(s string) (*Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, cryptoerr.InvalidArgument("s", "empty string")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return nil, cryptoerr.InvalidArgument("s", "no digits after sign")
	}

	base := 10
	switch s[len(s)-1] {
	case 'h', 'H':
		base = 16
		s = s[:len(s)-1]
	case 'o', 'O':
		base = 8
		s = s[:len(s)-1]
	case 'b', 'B':
		base = 2
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil, cryptoerr.InvalidArgument("s", "no digits before radix suffix")
	}

	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, cryptoerr.DecodeError(fmt.Sprintf("malformed integer literal %q", s))
	}
	if neg {
		v.Neg(v)
	}
	return &Int{v: *v}, nil
}

// FromBytes interprets buf as a big-endian encoded integer under the
// given signedness (SIGNED uses two's complement on the MSB of the
// first byte).
func FromBytes(buf []byte, sign Signedness) *Int {
	i := &Int{}
	if len(buf) == 0 {
		return i
	}
	if sign == Unsigned || buf[0]&0x80 == 0 {
		i.v.SetBytes(buf)
		return i
	}

	// Negative two's complement: invert and add one, then negate.
	inv := make([]byte, len(buf))
	for k, b := range buf {
		inv[k] = ^b
	}
	magnitude := new(big.Int).SetBytes(inv)
	magnitude.Add(magnitude, big.NewInt(1))
	i.v.Neg(magnitude)
	return i
}

// Clone returns an independent copy of a.
func (a *Int) Clone() *Int {
	c := &Int{}
	c.v.Set(&a.v)
	return c
}

// Sign returns -1, 0 or 1 matching the sign of a.
func (a *Int) Sign() int { return a.v.Sign() }

// IsZero reports whether a is zero.
func (a *Int) IsZero() bool { return a.v.Sign() == 0 }

// IsUnit reports whether a is 1 or -1.
func (a *Int) IsUnit() bool {
	abs := new(big.Int).Abs(&a.v)
	return abs.Cmp(big.NewInt(1)) == 0
}

// Cmp returns -1, 0, +1 as a <, ==, > b.
func (a *Int) Cmp(b *Int) int { return a.v.Cmp(&b.v) }

// Equal reports whether a and b hold the same value.
func (a *Int) Equal(b *Int) bool { return a.v.Cmp(&b.v) == 0 }

// Add returns a + b.
func (a *Int) Add(b *Int) *Int {
	r := &Int{}
	r.v.Add(&a.v, &b.v)
	return r
}

// Sub returns a - b.
func (a *Int) Sub(b *Int) *Int {
	r := &Int{}
	r.v.Sub(&a.v, &b.v)
	return r
}

// Mul returns a * b.
func (a *Int) Mul(b *Int) *Int {
	r := &Int{}
	r.v.Mul(&a.v, &b.v)
	return r
}

// QuoRem returns (a/b truncated toward zero, a - (a/b)*b), matching the
// spec's division-with-remainder invariant a == (a/b)*b + (a mod b)
// with 0 <= |remainder| < |b|.
func (a *Int) QuoRem(b *Int) (q, r *Int, err error) {
	if b.IsZero() {
		return nil, nil, cryptoerr.DivideByZero()
	}
	q, r = &Int{}, &Int{}
	q.v.QuoRem(&a.v, &b.v, &r.v)
	return q, r, nil
}

// Mod returns the Euclidean remainder of a mod m, in [0, |m|).
func (a *Int) Mod(m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, cryptoerr.DivideByZero()
	}
	r := &Int{}
	r.v.Mod(&a.v, &m.v)
	return r, nil
}

// Neg returns -a.
func (a *Int) Neg() *Int {
	r := &Int{}
	r.v.Neg(&a.v)
	return r
}

// Abs returns |a|.
func (a *Int) Abs() *Int {
	r := &Int{}
	r.v.Abs(&a.v)
	return r
}

// Lsh returns a << n.
func (a *Int) Lsh(n uint) *Int {
	r := &Int{}
	r.v.Lsh(&a.v, n)
	return r
}

// Rsh returns a >> n (arithmetic shift, floor division by 2^n).
func (a *Int) Rsh(n uint) *Int {
	r := &Int{}
	r.v.Rsh(&a.v, n)
	return r
}

// BitLen returns the number of bits required to represent |a|, with
// BitLen(0) == 0.
func (a *Int) BitLen() int { return a.v.BitLen() }

// GetBit returns bit n (0 = least significant) of a; for negative a it
// reads the two's-complement representation, as math/big's Bit does.
func (a *Int) GetBit(n uint) uint { return a.v.Bit(int(n)) }

// SetBit returns a copy of a with bit n set to v (0 or 1); for negative
// a the bit is that of the two's-complement representation, as with
// math/big's SetBit.
func (a *Int) SetBit(n uint, v uint) *Int {
	r := &Int{}
	r.v.SetBit(&a.v, int(n), v)
	return r
}

// WordCount returns the number of machine words needed to hold |a| at
// the given word size in bits (32 or 64), rounded up to an even count
// per the reference multiplier's invariant.
func (a *Int) WordCount(wordBits int) int {
	bits := a.v.BitLen()
	if bits == 0 {
		return 0
	}
	words := (bits + wordBits - 1) / wordBits
	if words%2 != 0 {
		words++
	}
	return words
}

// Gcd returns the non-negative greatest common divisor of a and b.
func (a *Int) Gcd(b *Int) *Int {
	r := &Int{}
	r.v.GCD(nil, nil, new(big.Int).Abs(&a.v), new(big.Int).Abs(&b.v))
	return r
}

// InverseMod returns a^-1 mod m via math/big's ModInverse (an
// extended-Euclid computation); it returns an error
// if a has no inverse mod m (gcd(a, m) != 1).
func (a *Int) InverseMod(m *Int) (*Int, error) {
	r := &Int{}
	g := r.v.ModInverse(&a.v, &m.v)
	if g == nil {
		return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "value has no inverse modulo the given modulus", nil, 0)
	}
	return r, nil
}

// Sqrt returns floor(sqrt(|a|)).
func (a *Int) Sqrt() *Int {
	r := &Int{}
	r.v.Sqrt(new(big.Int).Abs(&a.v))
	return r
}

// IsSquare reports whether a is a non-negative perfect square.
func (a *Int) IsSquare() bool {
	if a.Sign() < 0 {
		return false
	}
	root := a.Sqrt()
	return root.Mul(root).Equal(a)
}

// String renders a in decimal.
func (a *Int) String() string { return a.v.String() }

// Big exposes the underlying math/big.Int for callers (e.g. the
// elgamal and prng packages) that need to call into math/big directly
// for operations this package doesn't wrap (notably ModExp cascades).
func (a *Int) Big() *big.Int { return &a.v }

// FromBig returns an Int holding a copy of v; later changes to v do
// not affect the result.
func FromBig(v *big.Int) *Int {
	i := &Int{}
	i.v.Set(v)
	return i
}
