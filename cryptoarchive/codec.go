package cryptoarchive

import (
	"crypto/rand"

	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/block"
	"github.com/veriscan/cryptocore/cryptoerr"
	"github.com/veriscan/cryptocore/elgamal"
)

// ChunkCodec turns one BlockSizePlain-sized plaintext chunk into one
// BlockSizeCipher-sized on-wire chunk and back, the unit the crypto
// archive's write/read path operates on. A cipher-backed codec has
// BlockSizePlain == BlockSizeCipher; a signing codec does not (spec
// §4.9's last paragraph).
type ChunkCodec interface {
	BlockSizePlain() int
	BlockSizeCipher() int
	EncodeChunk(plain []byte) ([]byte, error)
	DecodeChunk(cipher []byte) ([]byte, error)
}

// cipherCodec adapts a pair of block.Cipher values (possibly the same
// value, as for the null cipher) to ChunkCodec.
type cipherCodec struct {
	encrypt block.Cipher
	decrypt block.Cipher
}

// NewCipherCodec returns a ChunkCodec over a symmetric cipher pair.
// For the null cipher, pass the same Cipher for both.
func NewCipherCodec(encrypt, decrypt block.Cipher) ChunkCodec {
	return &cipherCodec{encrypt: encrypt, decrypt: decrypt}
}

func (c *cipherCodec) BlockSizePlain() int  { return c.encrypt.BlockSizePlain() }
func (c *cipherCodec) BlockSizeCipher() int { return c.encrypt.BlockSizeCipher() }

func (c *cipherCodec) EncodeChunk(plain []byte) ([]byte, error) {
	out := make([]byte, c.encrypt.BlockSizeCipher())
	if err := c.encrypt.ProcessBlock(plain, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cipherCodec) DecodeChunk(cipher []byte) ([]byte, error) {
	out := make([]byte, c.decrypt.BlockSizePlain())
	if err := c.decrypt.ProcessBlock(cipher, out); err != nil {
		return nil, err
	}
	return out, nil
}

// signingPlainSize is the fixed plaintext block size spec §4.9 pins
// down for the signing archive.
const signingPlainSize = 4083

// signingCodec treats the ElGamal signature as the "cipher": each
// plaintext block is signed on write, and verified automatically on
// read. A mismatch surfaces CryptoFailure and must abort the read
// (spec §4.10).
type signingCodec struct {
	priv *elgamal.PrivateKey // nil on a verify-only codec
	pub  *elgamal.PublicKey
	rnd  bigint.RandomSource
	pad  int
}

// NewSigningCodec returns a ChunkCodec that signs with priv (which may
// be nil for a read-only/verify-only archive) and verifies against
// pub.
func NewSigningCodec(priv *elgamal.PrivateKey, pub *elgamal.PublicKey, rnd bigint.RandomSource) ChunkCodec {
	sigWidth := elgamal.SignatureSize(pub.Q)
	unpadded := signingPlainSize + 2*sigWidth
	pad := (8 - unpadded%8) % 8
	return &signingCodec{priv: priv, pub: pub, rnd: rnd, pad: pad}
}

func (c *signingCodec) BlockSizePlain() int { return signingPlainSize }

func (c *signingCodec) BlockSizeCipher() int {
	sigWidth := elgamal.SignatureSize(c.pub.Q)
	return signingPlainSize + c.pad + 2*sigWidth
}

func (c *signingCodec) EncodeChunk(plain []byte) ([]byte, error) {
	if c.priv == nil {
		return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "signing codec has no private key to sign with", nil, 0)
	}
	if len(plain) != signingPlainSize {
		return nil, cryptoerr.InvalidArgument("plain", "must be exactly the signing plaintext block size")
	}

	r, s, err := elgamal.Sign(c.priv, plain, c.rnd)
	if err != nil {
		return nil, err
	}
	sigBytes, err := elgamal.EncodeSignature(c.priv.Q, r, s)
	if err != nil {
		return nil, err
	}

	padBytes := make([]byte, c.pad)
	if _, err := rand.Read(padBytes); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInternalError, "fill signing chunk pad", err)
	}

	out := make([]byte, 0, c.BlockSizeCipher())
	out = append(out, plain...)
	out = append(out, padBytes...)
	out = append(out, sigBytes...)
	return out, nil
}

func (c *signingCodec) DecodeChunk(cipher []byte) ([]byte, error) {
	if len(cipher) != c.BlockSizeCipher() {
		return nil, cryptoerr.InvalidArgument("cipher", "wrong signing chunk size")
	}
	plain := cipher[:signingPlainSize]
	sigBytes := cipher[signingPlainSize+c.pad:]

	r, s := elgamal.DecodeSignature(c.pub.Q, sigBytes)
	if !elgamal.Verify(c.pub, plain, r, s) {
		return nil, cryptoerr.CryptoFailure("signature verification failed")
	}

	out := make([]byte, signingPlainSize)
	copy(out, plain)
	return out, nil
}
