package keyfile

import (
	"math/rand"
	"testing"

	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/cryptoerr"
)

type seededSource struct{ r *rand.Rand }

func (s *seededSource) ReadRandom(buf []byte) error {
	_, err := s.r.Read(buf)
	return err
}

var _ bigint.RandomSource = (*seededSource)(nil)

func newSource(seed int64) *seededSource { return &seededSource{r: rand.New(rand.NewSource(seed))} }

// TestPassphraseChangeRoundTrip is spec §8 scenario 6: generate a key
// under passphrase "abc", write it to memory and read it back, confirm
// "abc" unlocks the private key, change the passphrase to "xyz", and
// confirm "abc" now fails while "xyz" succeeds.
func TestPassphraseChangeRoundTrip(t *testing.T) {
	src := newSource(1)

	kf, err := GenerateKeys(1024, []byte("abc"), src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	mem, err := kf.WriteMem()
	if err != nil {
		t.Fatalf("WriteMem: %v", err)
	}
	if len(mem) != kf.GetWriteLen() {
		t.Fatalf("GetWriteLen() = %d, want %d", kf.GetWriteLen(), len(mem))
	}

	loaded, err := ReadMem(mem)
	if err != nil {
		t.Fatalf("ReadMem: %v", err)
	}

	proxy, err := loaded.GetPrivateKey([]byte("abc"))
	if err != nil {
		t.Fatalf("GetPrivateKey(abc): %v", err)
	}
	if proxy.Key() == nil {
		t.Fatalf("GetPrivateKey(abc) returned nil key")
	}
	proxy.Release()

	if err := loaded.ChangePassphrase([]byte("abc"), []byte("xyz"), src); err != nil {
		t.Fatalf("ChangePassphrase: %v", err)
	}

	if _, err := loaded.GetPrivateKey([]byte("abc")); err == nil {
		t.Fatalf("GetPrivateKey(abc) succeeded after passphrase change, want BadPassphrase")
	} else if !cryptoerr.HasKind(err, cryptoerr.KindBadPassphrase) {
		t.Fatalf("GetPrivateKey(abc) error = %v, want KindBadPassphrase", err)
	}

	proxy2, err := loaded.GetPrivateKey([]byte("xyz"))
	if err != nil {
		t.Fatalf("GetPrivateKey(xyz): %v", err)
	}
	proxy2.Release()
}

// TestGetPrivateKeyRefcounts is spec §4.12's refcounting contract:
// nested GetPrivateKey calls on the same KeyFile share the decrypted
// plaintext, and it is only scrubbed once every proxy releases.
func TestGetPrivateKeyRefcounts(t *testing.T) {
	src := newSource(2)
	kf, err := GenerateKeys(1024, []byte("hunter2"), src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	first, err := kf.GetPrivateKey([]byte("hunter2"))
	if err != nil {
		t.Fatalf("GetPrivateKey #1: %v", err)
	}
	second, err := kf.GetPrivateKey([]byte("hunter2"))
	if err != nil {
		t.Fatalf("GetPrivateKey #2: %v", err)
	}
	if first.Key() != second.Key() {
		t.Fatalf("nested GetPrivateKey calls returned distinct plaintext copies")
	}

	first.Release()
	if kf.decrypted == nil {
		t.Fatalf("plaintext scrubbed while a proxy is still outstanding")
	}
	second.Release()
	if kf.decrypted != nil {
		t.Fatalf("plaintext not scrubbed after last proxy released")
	}
}

func TestGenerateKeysRejectsBadBits(t *testing.T) {
	src := newSource(3)
	if _, err := GenerateKeys(512, []byte("pw"), src); err == nil {
		t.Fatalf("GenerateKeys(512) succeeded, want InvalidKeySize")
	} else if !cryptoerr.HasKind(err, cryptoerr.KindInvalidKeySize) {
		t.Fatalf("GenerateKeys(512) error = %v, want KindInvalidKeySize", err)
	}
}

// TestRegenerateReplacesKeypair confirms Regenerate discards the old
// keypair and private-key cache in place: the old passphrase no longer
// unlocks anything meaningful against the new public key, and the new
// passphrase works against freshly generated key material.
func TestRegenerateReplacesKeypair(t *testing.T) {
	src := newSource(5)
	kf, err := GenerateKeys(1024, []byte("first-pass"), src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	oldPub := kf.PublicKey()

	proxy, err := kf.GetPrivateKey([]byte("first-pass"))
	if err != nil {
		t.Fatalf("GetPrivateKey: %v", err)
	}

	if err := kf.Regenerate(1024, []byte("second-pass"), src); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	proxy.Release()

	if kf.PublicKey().Y.Equal(oldPub.Y) {
		t.Fatalf("Regenerate did not replace the public key")
	}
	if _, err := kf.GetPrivateKey([]byte("first-pass")); err == nil {
		t.Fatalf("old passphrase unlocked the regenerated key")
	} else if !cryptoerr.HasKind(err, cryptoerr.KindBadPassphrase) {
		t.Fatalf("GetPrivateKey(first-pass) error = %v, want KindBadPassphrase", err)
	}

	newProxy, err := kf.GetPrivateKey([]byte("second-pass"))
	if err != nil {
		t.Fatalf("GetPrivateKey(second-pass): %v", err)
	}
	newProxy.Release()
}

func TestWrongPassphraseIsRejected(t *testing.T) {
	src := newSource(4)
	kf, err := GenerateKeys(1024, []byte("correct-horse"), src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	if _, err := kf.GetPrivateKey([]byte("incorrect-horse")); err == nil {
		t.Fatalf("GetPrivateKey with wrong passphrase succeeded")
	} else if !cryptoerr.HasKind(err, cryptoerr.KindBadPassphrase) {
		t.Fatalf("GetPrivateKey error = %v, want KindBadPassphrase", err)
	}
}
