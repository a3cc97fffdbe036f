package block

import (
	"crypto/rand"

	"github.com/veriscan/cryptocore/cryptoerr"
	"github.com/veriscan/cryptocore/sha1sum"
)

// HashedKey128 derives a 128-bit key from arbitrary input material by
// truncating a single SHA-1 digest to 16 bytes.
func HashedKey128(input []byte) [16]byte {
	digest := sha1sum.Sum1(input)
	var key [16]byte
	copy(key[:], digest[:16])
	return key
}

// HashedKey192 derives a 192-bit (24-byte) key suitable for
// NewTripleDES: the first SHA-1 digest of input supplies the first 20
// bytes, and a second SHA-1 digest taken over the first supplies the
// remaining 4, matching the spec §4.7 "second SHA-1 over the first
// digest" construction.
func HashedKey192(input []byte) [TripleDESKeySize]byte {
	first := sha1sum.Sum1(input)
	second := sha1sum.Sum1(first[:])

	var key [TripleDESKeySize]byte
	copy(key[:20], first[:])
	copy(key[20:], second[:4])
	return key
}

// Key holds key material that must be zeroed before release. The zero
// value is not usable; construct with NewKey.
type Key struct {
	bytes []byte
}

// NewKey takes ownership of b (it is not copied) and returns a Key
// that will zero it on Release.
func NewKey(b []byte) *Key { return &Key{bytes: b} }

// Bytes returns the underlying key bytes. The returned slice aliases
// the Key's storage and must not be retained past Release.
func (k *Key) Bytes() []byte { return k.bytes }

// Release overwrites the key's bytes with random data, then with
// zeros, before letting the backing array go, matching spec §4.7's
// "destructor must overwrite the key bytes with random data before
// releasing memory."
func (k *Key) Release() {
	if k == nil || k.bytes == nil {
		return
	}
	if _, err := rand.Read(k.bytes); err != nil {
		// crypto/rand failures are exceedingly rare (OS entropy source
		// unavailable); fall back to a zero-fill so the key is at least
		// not left readable.
		for i := range k.bytes {
			k.bytes[i] = 0
		}
	}
	for i := range k.bytes {
		k.bytes[i] = 0
	}
	k.bytes = nil
}

// ZeroBuffer overwrites buf in place with zeros, used by callers (e.g.
// keyfile's passphrase handling) that must scrub caller-owned buffers
// rather than release module-owned ones.
func ZeroBuffer(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// RequireKeySize validates that key is exactly one of the accepted
// sizes in bytes, returning InvalidKeySize otherwise.
func RequireKeySize(key []byte, accepted ...int) error {
	for _, n := range accepted {
		if len(key) == n {
			return nil
		}
	}
	return cryptoerr.InvalidKeySize(len(key) * 8)
}
