package sha1sum

import "crypto/sha1"

// Size is the length in bytes of a SHA-1 digest.
const Size = sha1.Size

// BlockSize is the block size in bytes SHA-1 operates on.
const BlockSize = sha1.BlockSize

// Hasher streams bytes into a SHA-1 digest. Update may be called an
// arbitrary number of times; Final emits the digest and resets the
// hasher to its initial state, matching the spec's {Update, Final}
// contract.
type Hasher struct {
	h sha1Hash
}

// sha1Hash is the subset of hash.Hash this package depends on, kept
// narrow so New can swap in stdlib's implementation without leaking
// its full interface surface.
type sha1Hash interface {
	Write(p []byte) (n int, err error)
	Sum(b []byte) []byte
	Reset()
}

// New returns a ready-to-use Hasher seeded with SHA-1's standard
// initial constants (0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476,
// 0xC3D2E1F0), matching the spec's required reset state.
func New() *Hasher {
	return &Hasher{h: sha1.New()}
}

// Update feeds bytes into the running digest. It never fails.
func (s *Hasher) Update(p []byte) {
	s.h.Write(p)
}

// Final appends the canonical 1-bit-then-zero-padding-then-64-bit
// big-endian length trailer, emits the 20-byte digest, and resets the
// hasher so it is immediately reusable.
func (s *Hasher) Final() [Size]byte {
	var out [Size]byte
	copy(out[:], s.h.Sum(nil))
	s.h.Reset()
	return out
}

// Sum1 is a convenience one-shot: SHA1(data).
func Sum1(data []byte) [Size]byte {
	h := New()
	h.Update(data)
	return h.Final()
}
