package keyfile

import (
	"crypto/rand"
	"os"
	"sync"

	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/block"
	"github.com/veriscan/cryptocore/cryptoerr"
	"github.com/veriscan/cryptocore/elgamal"
)

// KeyFile persists an ElGamal key pair: the public key in plaintext,
// the private key under passphrase-derived Triple-DES encryption. It
// is not safe for concurrent use by multiple goroutines.
type KeyFile struct {
	mu sync.Mutex

	public        *elgamal.PublicKey
	encryptedPriv []byte // ECB-encrypted, padded MarshalPrivateKey bytes

	decrypted *elgamal.PrivateKey // cached plaintext, present while refcount > 0
	refcount  int
}

// GenerateKeys produces a fresh ElGamal pair of the given bit size
// (1024 or 2048; anything else is InvalidKeySize) and protects the
// private key under passphrase. passphrase is not retained; the
// caller's buffer is zeroed before this function returns.
func GenerateKeys(bits int, passphrase []byte, rnd bigint.RandomSource) (*KeyFile, error) {
	if err := validateBits(bits); err != nil {
		return nil, err
	}
	priv, err := elgamal.GenerateKeys(bits, rnd)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptPrivateKey(priv, passphrase, rnd)
	block.ZeroBuffer(passphrase)
	if err != nil {
		return nil, err
	}

	return &KeyFile{public: priv.Public(), encryptedPriv: encrypted}, nil
}

// encryptPrivateKey serializes priv, pads it to a multiple of the
// cipher's block size with random bytes, and encrypts it in ECB mode
// under SHA1_2(passphrase) (block.HashedKey192), per spec §4.12.
func encryptPrivateKey(priv *elgamal.PrivateKey, passphrase []byte, rnd bigint.RandomSource) ([]byte, error) {
	key := block.HashedKey192(passphrase)
	cipher, err := block.NewTripleDES(key[:])
	if err != nil {
		return nil, err
	}

	plain := privateKeyBytes(priv)
	blockSize := cipher.BlockSizePlain()
	padded := make([]byte, roundUp(len(plain), blockSize))
	copy(padded, plain)
	if extra := padded[len(plain):]; len(extra) > 0 {
		if err := rnd.ReadRandom(extra); err != nil {
			return nil, err
		}
	}

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += blockSize {
		if err := cipher.ProcessBlock(padded[i:i+blockSize], out[i:i+blockSize]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decryptPrivateKey(encrypted []byte, passphrase []byte) (*elgamal.PrivateKey, error) {
	key := block.HashedKey192(passphrase)
	cipher, err := block.NewTripleDESDecrypt(key[:])
	if err != nil {
		return nil, err
	}
	blockSize := cipher.BlockSizePlain()
	if len(encrypted)%blockSize != 0 {
		return nil, cryptoerr.BadPassphrase()
	}

	padded := make([]byte, len(encrypted))
	for i := 0; i < len(encrypted); i += blockSize {
		if err := cipher.ProcessBlock(encrypted[i:i+blockSize], padded[i:i+blockSize]); err != nil {
			return nil, err
		}
	}

	priv, err := elgamal.UnmarshalPrivateKey(padded)
	if err != nil {
		return nil, cryptoerr.BadPassphrase()
	}
	return priv, nil
}

func roundUp(n, multiple int) int {
	if n%multiple == 0 {
		return n
	}
	return n + (multiple - n%multiple)
}

// PublicKey returns the key file's public key.
func (kf *KeyFile) PublicKey() *elgamal.PublicKey { return kf.public }

// GetWriteLen returns the exact byte length WriteMem will produce.
func (kf *KeyFile) GetWriteLen() int {
	pub := publicKeyBytes(kf.public)
	layout, _ := encodeLayout(pub, kf.encryptedPriv)
	return len(layout)
}

// WriteMem serializes the key file into a freshly allocated buffer.
func (kf *KeyFile) WriteMem() ([]byte, error) {
	kf.mu.Lock()
	defer kf.mu.Unlock()
	pub := publicKeyBytes(kf.public)
	return encodeLayout(pub, kf.encryptedPriv)
}

// ReadMem parses a key file previously produced by WriteMem.
func ReadMem(data []byte) (*KeyFile, error) {
	pubBytes, encryptedPriv, err := decodeLayout(data)
	if err != nil {
		return nil, err
	}
	pub, err := elgamal.UnmarshalPublicKey(pubBytes)
	if err != nil {
		return nil, err
	}
	return &KeyFile{public: pub, encryptedPriv: encryptedPriv}, nil
}

// WriteFile writes the key file to path.
func (kf *KeyFile) WriteFile(path string) error {
	data, err := kf.WriteMem()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return cryptoerr.WriteFailed(path, err)
	}
	return nil
}

// ReadFile reads and parses a key file from path.
func ReadFile(path string) (*KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cryptoerr.OpenFailed(path, err)
	}
	return ReadMem(data)
}

// GetPrivateKey decrypts the private key with passphrase and returns
// a refcounted handle; nested callers within the same KeyFile see the
// same plaintext copy. passphrase is zeroed before this function
// returns, win or lose.
func (kf *KeyFile) GetPrivateKey(passphrase []byte) (*PrivateKeyProxy, error) {
	kf.mu.Lock()
	defer kf.mu.Unlock()

	if kf.refcount > 0 {
		kf.refcount++
		block.ZeroBuffer(passphrase)
		return &PrivateKeyProxy{kf: kf, key: kf.decrypted}, nil
	}

	priv, err := decryptPrivateKey(kf.encryptedPriv, passphrase)
	block.ZeroBuffer(passphrase)
	if err != nil {
		return nil, err
	}
	kf.decrypted = priv
	kf.refcount = 1
	return &PrivateKeyProxy{kf: kf, key: priv}, nil
}

// release is called by PrivateKeyProxy.Release; on the last release it
// overwrites the cached plaintext private key's scalar with random
// data before dropping the reference.
func (kf *KeyFile) release() {
	kf.mu.Lock()
	defer kf.mu.Unlock()

	if kf.refcount == 0 {
		return
	}
	kf.refcount--
	if kf.refcount == 0 && kf.decrypted != nil {
		scrubPrivateKey(kf.decrypted)
		kf.decrypted = nil
	}
}

// scrubPrivateKey overwrites the private scalar's backing bytes with
// random data; bigint.Int doesn't expose a way to zero a math/big.Int
// in place, so this re-derives a byte-length-matched random
// replacement and discards the original, which the garbage collector
// will reclaim.
func scrubPrivateKey(priv *elgamal.PrivateKey) {
	n := priv.X.MinEncodedSize(bigint.Unsigned)
	junk := make([]byte, n)
	_, _ = rand.Read(junk)
	priv.X = bigint.Decode(junk, bigint.Unsigned)
}

// Regenerate replaces the key file's keypair in place with a freshly
// generated one of the given bit size, protected under passphrase. Any
// previously cached decrypted private key is scrubbed (its private
// scalar overwritten with random data) and its refcount discarded, so
// a PrivateKeyProxy obtained before the call no longer yields the old
// private key; callers must not rely on further Release calls
// affecting the new keypair's state.
func (kf *KeyFile) Regenerate(bits int, passphrase []byte, rnd bigint.RandomSource) error {
	if err := validateBits(bits); err != nil {
		block.ZeroBuffer(passphrase)
		return err
	}
	priv, err := elgamal.GenerateKeys(bits, rnd)
	if err != nil {
		block.ZeroBuffer(passphrase)
		return err
	}
	encrypted, err := encryptPrivateKey(priv, passphrase, rnd)
	block.ZeroBuffer(passphrase)
	if err != nil {
		return err
	}

	kf.mu.Lock()
	defer kf.mu.Unlock()
	if kf.decrypted != nil {
		scrubPrivateKey(kf.decrypted)
	}
	kf.decrypted = nil
	kf.refcount = 0
	kf.public = priv.Public()
	kf.encryptedPriv = encrypted
	return nil
}

// ChangePassphrase requires oldPass to successfully decrypt the
// private key, then re-encrypts it under newPass. Both buffers are
// zeroed before return.
func (kf *KeyFile) ChangePassphrase(oldPass, newPass []byte, rnd bigint.RandomSource) error {
	priv, err := decryptPrivateKey(kf.encryptedPriv, oldPass)
	block.ZeroBuffer(oldPass)
	if err != nil {
		block.ZeroBuffer(newPass)
		return err
	}

	encrypted, err := encryptPrivateKey(priv, newPass, rnd)
	block.ZeroBuffer(newPass)
	if err != nil {
		return err
	}

	kf.mu.Lock()
	kf.encryptedPriv = encrypted
	kf.mu.Unlock()
	return nil
}
