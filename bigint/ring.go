package bigint

import (
	"math/big"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// Ring wraps a modulus m and performs +, -, *, /, inverse and
// exponentiation modulo m, reducing inputs lazily on ConvertIn.
type Ring struct {
	m big.Int
}

// NewRing returns a Ring over modulus m. m must be non-zero.
func NewRing(m *Int) (*Ring, error) {
	if m.IsZero() {
		return nil, cryptoerr.DivideByZero()
	}
	r := &Ring{}
	r.m.Set(&m.v)
	return r, nil
}

// Modulus returns the ring's modulus.
func (r *Ring) Modulus() *Int { return FromBig(&r.m) }

// ConvertIn reduces a modulo the ring's modulus into [0, m).
func (r *Ring) ConvertIn(a *Int) *Int {
	out := &Int{}
	out.v.Mod(&a.v, &r.m)
	return out
}

// Add returns (a + b) mod m.
func (r *Ring) Add(a, b *Int) *Int {
	out := &Int{}
	out.v.Add(&a.v, &b.v)
	out.v.Mod(&out.v, &r.m)
	return out
}

// Sub returns (a - b) mod m.
func (r *Ring) Sub(a, b *Int) *Int {
	out := &Int{}
	out.v.Sub(&a.v, &b.v)
	out.v.Mod(&out.v, &r.m)
	return out
}

// Mul returns (a * b) mod m.
func (r *Ring) Mul(a, b *Int) *Int {
	out := &Int{}
	out.v.Mul(&a.v, &b.v)
	out.v.Mod(&out.v, &r.m)
	return out
}

// Inverse returns a^-1 mod m.
func (r *Ring) Inverse(a *Int) (*Int, error) {
	out := &Int{}
	g := out.v.ModInverse(&a.v, &r.m)
	if g == nil {
		return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "value has no inverse modulo the ring's modulus", nil, 0)
	}
	return out, nil
}

// Div returns (a * b^-1) mod m.
func (r *Ring) Div(a, b *Int) (*Int, error) {
	inv, err := r.Inverse(b)
	if err != nil {
		return nil, err
	}
	return r.Mul(a, inv), nil
}

// Exponentiate returns a^e mod m.
func (r *Ring) Exponentiate(a, e *Int) *Int {
	out := &Int{}
	out.v.Exp(&a.v, &e.v, &r.m)
	return out
}

// CascadeExponentiate returns (a1^e1 * a2^e2) mod m, computing the two
// powers separately and multiplying them; it is the form the ElGamal
// verifier uses for g^s * y^r.
func (r *Ring) CascadeExponentiate(a1, e1, a2, e2 *Int) *Int {
	t1 := r.Exponentiate(a1, e1)
	t2 := r.Exponentiate(a2, e2)
	return r.Mul(t1, t2)
}

// MontgomeryRing is a modular ring over an odd modulus that caches the
// Montgomery parameters needed to multiply residues without trial
// division. Elements must be converted in with ConvertIn and back out
// with ConvertOut; the representation itself is an implementation
// detail of Multiply/Exponentiate.
type MontgomeryRing struct {
	m      big.Int
	rBig   big.Int // R = 2^(word_bits * n), n = limb count of m
	rMask  big.Int // R - 1, for the mod-R step of REDC
	mPrime big.Int // -m^-1 mod R, precomputed once so REDC never inverts
	shift  uint    // word_bits * n, so dividing by R is a shift
	n      int
}

// NewMontgomeryRing constructs a Montgomery ring over m, which must be
// odd (the reduction step requires an odd modulus to invert). The
// REDC constant m' = -m^-1 mod R is precomputed here and cached for
// the lifetime of the ring, per spec §3.2, rather than re-derived on
// every ConvertOut/Multiply call.
func NewMontgomeryRing(m *Int) (*MontgomeryRing, error) {
	if m.v.Bit(0) == 0 {
		return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "Montgomery modulus must be odd", nil, 0)
	}
	const wordBits = 64
	n := (m.BitLen() + wordBits - 1) / wordBits
	if n == 0 {
		n = 1
	}
	shift := uint(wordBits * n)
	mr := &MontgomeryRing{n: n, shift: shift}
	mr.m.Set(&m.v)
	mr.rBig.Lsh(big.NewInt(1), shift)
	mr.rMask.Sub(&mr.rBig, big.NewInt(1))

	mInvR := new(big.Int).ModInverse(&mr.m, &mr.rBig)
	mr.mPrime.Sub(&mr.rBig, mInvR)
	mr.mPrime.Mod(&mr.mPrime, &mr.rBig)
	return mr, nil
}

// redc performs Montgomery reduction of t (which must satisfy
// 0 <= t < m*R), returning t * R^-1 mod m without ever computing a
// modular inverse of t or R: u = (t mod R) * m' mod R; x = (t + u*m)
// / R; one conditional subtraction brings x into [0, m).
func (mr *MontgomeryRing) redc(t *big.Int) *big.Int {
	u := new(big.Int).And(t, &mr.rMask)
	u.Mul(u, &mr.mPrime)
	u.And(u, &mr.rMask)

	x := new(big.Int).Mul(u, &mr.m)
	x.Add(x, t)
	x.Rsh(x, mr.shift)

	if x.Cmp(&mr.m) >= 0 {
		x.Sub(x, &mr.m)
	}
	return x
}

// ConvertIn maps a into Montgomery form: a * R mod m.
func (mr *MontgomeryRing) ConvertIn(a *Int) *Int {
	out := &Int{}
	out.v.Mul(&a.v, &mr.rBig)
	out.v.Mod(&out.v, &mr.m)
	return out
}

// ConvertOut maps a Montgomery-form residue back to a normal residue:
// a * R^-1 mod m, computed via the cached REDC constant rather than a
// fresh modular inverse.
func (mr *MontgomeryRing) ConvertOut(a *Int) *Int {
	out := &Int{}
	out.v.Set(mr.redc(&a.v))
	return out
}

// Multiply performs Montgomery multiplication of two Montgomery-form
// residues via REDC, returning a Montgomery-form result:
// (a * b * R^-1) mod m.
func (mr *MontgomeryRing) Multiply(a, b *Int) *Int {
	t := new(big.Int).Mul(&a.v, &b.v)
	out := &Int{}
	out.v.Set(mr.redc(t))
	return out
}

// Exponentiate raises a Montgomery-form residue to exponent e (an
// ordinary, non-Montgomery integer), returning a Montgomery-form
// result.
func (mr *MontgomeryRing) Exponentiate(a *Int, e *Int) *Int {
	result := mr.ConvertIn(FromInt64(1))
	base := a.Clone()
	exp := new(big.Int).Set(&e.v)
	zero := big.NewInt(0)
	for exp.Cmp(zero) > 0 {
		if exp.Bit(0) == 1 {
			result = mr.Multiply(result, base)
		}
		base = mr.Multiply(base, base)
		exp.Rsh(exp, 1)
	}
	return result
}
