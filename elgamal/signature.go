package elgamal

import (
	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/sha1sum"
)

// hashToInt interprets a SHA-1 digest as an unsigned big-endian
// integer, the "h" term in both Sign and Verify.
func hashToInt(msg []byte) *bigint.Int {
	digest := sha1sum.Sum1(msg)
	return bigint.Decode(digest[:], bigint.Unsigned)
}

// Sign produces an ElGamal signature (r, s) over msg under priv,
// retrying the random nonce k whenever the resulting r is zero (spec
// §4.9 step 3).
func Sign(priv *PrivateKey, msg []byte, rnd bigint.RandomSource) (r, s *bigint.Int, err error) {
	h := hashToInt(msg)
	ring, err := bigint.NewRing(priv.P)
	if err != nil {
		return nil, nil, err
	}
	qRing, err := bigint.NewRing(priv.Q)
	if err != nil {
		return nil, nil, err
	}

	qMinus2 := priv.Q.Sub(bigint.FromInt64(2))
	for {
		k, err := bigint.RandomInRange(bigint.FromInt64(2), qMinus2, bigint.Any, rnd)
		if err != nil {
			return nil, nil, err
		}

		gk := ring.Exponentiate(priv.G, k)
		r = qRing.Add(gk, h)
		if r.IsZero() {
			continue
		}

		xr := qRing.Mul(priv.X, r)
		s = qRing.Sub(k, xr)
		return r, s, nil
	}
}

// Verify reports whether (r, s) is a valid ElGamal signature over msg
// under pub. Per spec §7's security policy, it never distinguishes
// *why* a signature fails (wrong r vs. wrong s vs. r == 0); callers
// needing that distinction for diagnostics are not this package's
// concern.
func Verify(pub *PublicKey, msg []byte, r, s *bigint.Int) bool {
	if r.IsZero() {
		return false
	}
	h := hashToInt(msg)

	pRing, err := bigint.NewRing(pub.P)
	if err != nil {
		return false
	}
	qRing, err := bigint.NewRing(pub.Q)
	if err != nil {
		return false
	}

	lhs := r
	gs := pRing.Exponentiate(pub.G, s)
	yr := pRing.Exponentiate(pub.Y, r)
	product := pRing.Mul(gs, yr)
	rhs := qRing.Add(product, h)

	return lhs.Cmp(rhs) == 0
}

// SignatureSize returns the fixed on-wire width of one signature field
// (r or s) for a group with the given q, i.e. the byte count of |q|.
func SignatureSize(q *bigint.Int) int {
	return q.MinEncodedSize(bigint.Unsigned)
}

// EncodeSignature renders (r, s) as r || s, each fixed-width unsigned
// at SignatureSize(q) bytes, per spec §4.9's wire layout.
func EncodeSignature(q, r, s *bigint.Int) ([]byte, error) {
	width := SignatureSize(q)
	rb, err := r.Encode(width, bigint.Unsigned)
	if err != nil {
		return nil, err
	}
	sb, err := s.Encode(width, bigint.Unsigned)
	if err != nil {
		return nil, err
	}
	return append(rb, sb...), nil
}

// DecodeSignature is the inverse of EncodeSignature.
func DecodeSignature(q *bigint.Int, buf []byte) (r, s *bigint.Int) {
	width := SignatureSize(q)
	r = bigint.Decode(buf[:width], bigint.Unsigned)
	s = bigint.Decode(buf[width:2*width], bigint.Unsigned)
	return r, s
}
