package block

import (
	"crypto/des"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// Cipher is the single-block symmetric cipher contract the
// crypto-archive pipeline frames around. ProcessBlock may be called
// with in == out (in-place transform).
type Cipher interface {
	// BlockSizePlain is the number of plaintext bytes one ProcessBlock
	// call consumes.
	BlockSizePlain() int
	// BlockSizeCipher is the number of ciphertext bytes one
	// ProcessBlock call produces. Equal to BlockSizePlain for every
	// cipher in this package; a signing cipher (see the elgamal
	// package) produces more than it consumes.
	BlockSizeCipher() int
	// ProcessBlock transforms exactly BlockSizePlain bytes of in into
	// BlockSizeCipher bytes written to out.
	ProcessBlock(in, out []byte) error
}

// TripleDESKeySize is the key length in bytes Triple-DES EDE requires.
const TripleDESKeySize = 24

// TripleDESBlockSize is the single-block size in bytes.
const TripleDESBlockSize = des.BlockSize

// tripleDES wraps crypto/des.NewTripleDESCipher to satisfy Cipher,
// processing exactly one 8-byte block per call (the pipeline layers
// its own chunking and padding around single-block ECB calls, per
// spec §4.7).
type tripleDES struct {
	c cipherBlock
}

// cipherBlock is the subset of cipher.Block this package depends on.
type cipherBlock interface {
	BlockSize() int
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}

// NewTripleDES returns a Cipher over a 24-byte EDE key.
func NewTripleDES(key []byte) (Cipher, error) {
	if len(key) != TripleDESKeySize {
		return nil, cryptoerr.InvalidKeySize(len(key) * 8)
	}
	c, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindCryptoFailure, "construct triple-DES cipher", err)
	}
	return &tripleDES{c: c}, nil
}

func (t *tripleDES) BlockSizePlain() int  { return TripleDESBlockSize }
func (t *tripleDES) BlockSizeCipher() int { return TripleDESBlockSize }

func (t *tripleDES) ProcessBlock(in, out []byte) error {
	if len(in) != TripleDESBlockSize || len(out) != TripleDESBlockSize {
		return cryptoerr.InvalidArgument("block", "must be exactly BlockSizePlain bytes")
	}
	t.c.Encrypt(out, in)
	return nil
}

// tripleDESDecrypt exposes the inverse transform; the crypto archive's
// read path needs decryption, which is not part of the Cipher
// interface's single ProcessBlock verb by design (the reference treats
// encrypt and decrypt as the "forward" and "backward" direction of the
// same block primitive, modeled here as two sibling types sharing the
// same key schedule).
type tripleDESDecrypt struct {
	c cipherBlock
}

// NewTripleDESDecrypt returns the decrypting counterpart to the Cipher
// returned by NewTripleDES, over the same key.
func NewTripleDESDecrypt(key []byte) (Cipher, error) {
	if len(key) != TripleDESKeySize {
		return nil, cryptoerr.InvalidKeySize(len(key) * 8)
	}
	c, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindCryptoFailure, "construct triple-DES cipher", err)
	}
	return &tripleDESDecrypt{c: c}, nil
}

func (t *tripleDESDecrypt) BlockSizePlain() int  { return TripleDESBlockSize }
func (t *tripleDESDecrypt) BlockSizeCipher() int { return TripleDESBlockSize }

func (t *tripleDESDecrypt) ProcessBlock(in, out []byte) error {
	if len(in) != TripleDESBlockSize || len(out) != TripleDESBlockSize {
		return cryptoerr.InvalidArgument("block", "must be exactly BlockSizeCipher bytes")
	}
	t.c.Decrypt(out, in)
	return nil
}

// nullCipher copies plaintext to ciphertext unchanged but reports the
// same block size as tripleDES, so pipeline framing logic is identical
// whether or not encryption is enabled.
type nullCipher struct{}

// NewNull returns the null cipher: ciphertext == plaintext byte for
// byte, block size TripleDESBlockSize.
func NewNull() Cipher { return nullCipher{} }

func (nullCipher) BlockSizePlain() int  { return TripleDESBlockSize }
func (nullCipher) BlockSizeCipher() int { return TripleDESBlockSize }

func (nullCipher) ProcessBlock(in, out []byte) error {
	if len(in) != TripleDESBlockSize || len(out) != TripleDESBlockSize {
		return cryptoerr.InvalidArgument("block", "must be exactly BlockSizePlain bytes")
	}
	copy(out, in)
	return nil
}
