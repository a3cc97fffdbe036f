package elgamal

import (
	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/cryptoerr"
)

// PublicKey is (p, q, g, y): p prime, q a large prime divisor of p-1,
// g of order q mod p, y = g^x mod p.
type PublicKey struct {
	P, Q, G, Y *bigint.Int
}

// PrivateKey is (p, q, g, y, x) with 1 < x < q-1. GkTable/YkTable are a
// non-persistent stored-exponent precomputation cache the spec allows
// implementations to keep for speed; this implementation recomputes
// instead of caching, since math/big's Exp is already the fast path
// and a precomputation table would only shadow it.
type PrivateKey struct {
	P, Q, G, Y, X *bigint.Int
}

// Public returns the PublicKey half of priv.
func (priv *PrivateKey) Public() *PublicKey {
	return &PublicKey{P: priv.P, Q: priv.Q, G: priv.G, Y: priv.Y}
}

// BitLen returns |p|, the field the wire format self-describes key
// size with.
func (pub *PublicKey) BitLen() int { return pub.P.BitLen() }

// GenerateKeys produces a fresh ElGamal key pair with |p| == bits,
// drawing randomness from rnd. bits is normally 1024 or 2048 (the
// key-file layer enforces that constraint; this function itself
// accepts any bit length >= 8, GenerateSafePrime's floor, since it is
// also useful for the small test-sized groups this package's key and
// marshalling tests use).
func GenerateKeys(bits int, rnd bigint.RandomSource) (*PrivateKey, error) {
	p, q, g, err := bigint.GenerateSafePrime(bits, rnd)
	if err != nil {
		return nil, err
	}

	ring, err := bigint.NewRing(p)
	if err != nil {
		return nil, err
	}

	qMinus2 := q.Sub(bigint.FromInt64(2))
	x, err := bigint.RandomInRange(bigint.FromInt64(2), qMinus2, bigint.Any, rnd)
	if err != nil {
		return nil, err
	}
	y := ring.Exponentiate(g, x)

	return &PrivateKey{P: p, Q: q, G: g, Y: y, X: x}, nil
}

func validateKeyShape(p, q, g, y *bigint.Int) error {
	if p == nil || q == nil || g == nil || y == nil {
		return cryptoerr.InvalidArgument("key", "missing field")
	}
	if !bigint.IsProbablePrime(p, 20) {
		return cryptoerr.New(cryptoerr.KindCryptoFailure, "p is not prime", nil, 0)
	}
	if !bigint.IsProbablePrime(q, 20) {
		return cryptoerr.New(cryptoerr.KindCryptoFailure, "q is not prime", nil, 0)
	}
	return nil
}
