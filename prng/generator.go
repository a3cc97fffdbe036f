package prng

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/veriscan/cryptocore/block"
	"github.com/veriscan/cryptocore/cryptoerr"
)

// Generator is an ANSI-X9.17-style pseudo-random byte source keeping
// the two registers spec §4.6 names: each output block is produced as
//
//	D = E(D XOR clock())
//	R = E(S XOR D)
//	S = E(R XOR D)
//
// where E is the keyed block cipher, D is the enciphered-timestamp
// register and S is the running seed register. S starts from the seed
// (drawn from crypto/rand by New, supplied by the caller to
// NewFromCipher), D starts from two enciphered clock readings
// (warmUpD), and both are carried forward across calls.
type Generator struct {
	mu     sync.Mutex
	cipher block.Cipher
	state  []byte // S
	dReg   []byte // D
	cache  []byte // unread bytes from the most recent output block
}

// clockBlock returns clockFunc()'s output truncated or zero-padded to
// exactly n bytes.
func clockBlock(n int) []byte {
	clock := clockFunc()
	if len(clock) < n {
		padded := make([]byte, n)
		copy(padded, clock)
		return padded
	}
	return clock[:n]
}

// warmUpD mixes two clock readings into a freshly zeroed D register,
// mirroring the reference generator's constructor (which folds two
// timestamps into its enciphered-timestamp buffer before the first
// GetByte call) so D does not start as a predictable all-zero block.
func warmUpD(cipher block.Cipher) ([]byte, error) {
	n := cipher.BlockSizePlain()
	d := make([]byte, n)
	for i := 0; i < 2; i++ {
		mixed := make([]byte, n)
		xorBytes(mixed, d, clockBlock(n))
		next := make([]byte, n)
		if err := cipher.ProcessBlock(mixed, next); err != nil {
			return nil, err
		}
		d = next
	}
	return d, nil
}

// clockFunc is swappable in tests so the X9.17 "clock()" term can be
// made deterministic without touching production behavior.
var clockFunc = func() []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	return buf[:]
}

// New constructs a Generator keyed by a fresh 192-bit Triple-DES key
// and an 8-byte seed, both drawn from crypto/rand (the OS entropy
// source; spec §4.6 prefers /dev/urandom with a time-seeded fallback,
// which crypto/rand.Reader already provides across platforms).
func New() (*Generator, error) {
	var keyMat [block.TripleDESKeySize]byte
	if _, err := rand.Read(keyMat[:]); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInternalError, "seed PRNG key from OS entropy", err)
	}
	cipher, err := block.NewTripleDES(keyMat[:])
	if err != nil {
		return nil, err
	}

	seed := make([]byte, cipher.BlockSizePlain())
	if _, err := rand.Read(seed); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInternalError, "seed PRNG state from OS entropy", err)
	}

	d, err := warmUpD(cipher)
	if err != nil {
		return nil, err
	}
	return &Generator{cipher: cipher, state: seed, dReg: d}, nil
}

// NewFromCipher constructs a Generator over an already-keyed cipher
// and explicit seed state, primarily for tests that need determinism.
// The D register is warmed up the same way New does.
func NewFromCipher(cipher block.Cipher, seed []byte) (*Generator, error) {
	if len(seed) != cipher.BlockSizePlain() {
		return nil, cryptoerr.InvalidArgument("seed", "must be exactly one cipher block")
	}
	s := make([]byte, len(seed))
	copy(s, seed)
	d, err := warmUpD(cipher)
	if err != nil {
		return nil, err
	}
	return &Generator{cipher: cipher, state: s, dReg: d}, nil
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// nextBlock produces one cipher-block-sized output, advancing S.
func (g *Generator) nextBlock() ([]byte, error) {
	n := g.cipher.BlockSizePlain()

	dMixed := make([]byte, n)
	xorBytes(dMixed, g.dReg, clockBlock(n))
	encD := make([]byte, n)
	if err := g.cipher.ProcessBlock(dMixed, encD); err != nil {
		return nil, err
	}
	g.dReg = encD

	r := make([]byte, n)
	xorBytes(r, g.state, encD)
	encR := make([]byte, n)
	if err := g.cipher.ProcessBlock(r, encR); err != nil {
		return nil, err
	}

	newState := make([]byte, n)
	xorBytes(newState, encR, encD)
	encState := make([]byte, n)
	if err := g.cipher.ProcessBlock(newState, encState); err != nil {
		return nil, err
	}
	g.state = encState

	return encR, nil
}

// GetByte returns a single pseudo-random byte, refilling the internal
// cache from nextBlock on exhaustion.
func (g *Generator) GetByte() (byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.cache) == 0 {
		blk, err := g.nextBlock()
		if err != nil {
			return 0, err
		}
		g.cache = blk
	}
	b := g.cache[0]
	g.cache = g.cache[1:]
	return b, nil
}

// ReadRandom fills buf with pseudo-random bytes, implementing
// bigint.RandomSource.
func (g *Generator) ReadRandom(buf []byte) error {
	for i := range buf {
		b, err := g.GetByte()
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}
