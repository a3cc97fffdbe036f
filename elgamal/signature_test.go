package elgamal

import (
	"math/rand"
	"testing"

	"github.com/veriscan/cryptocore/bigint"
)

type seededSource struct{ r *rand.Rand }

func (s *seededSource) ReadRandom(buf []byte) error {
	_, err := s.r.Read(buf)
	return err
}

func TestSignVerifyRoundTrip1024(t *testing.T) {
	src := &seededSource{r: rand.New(rand.NewSource(42))}
	priv, err := GenerateKeys(1024, src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	msg := []byte("hello")
	r, s, err := Sign(priv, msg, src)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !Verify(priv.Public(), msg, r, s) {
		t.Fatalf("Verify rejected a valid signature")
	}

	sigBytes, err := EncodeSignature(priv.Q, r, s)
	if err != nil {
		t.Fatalf("EncodeSignature: %v", err)
	}
	flipped := append([]byte(nil), sigBytes...)
	flipped[len(flipped)-1] ^= 0xFF
	fr, fs := DecodeSignature(priv.Q, flipped)
	if Verify(priv.Public(), msg, fr, fs) {
		t.Fatalf("Verify accepted a signature with a flipped byte")
	}
}

func TestPublicFromPrivateMatchesY(t *testing.T) {
	src := &seededSource{r: rand.New(rand.NewSource(7))}
	priv, err := GenerateKeys(64, src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	pub := priv.Public()
	if pub.Y.Cmp(priv.Y) != 0 {
		t.Fatalf("public key Y does not match private key Y")
	}
}

func TestMarshalUnmarshalPublicKey(t *testing.T) {
	src := &seededSource{r: rand.New(rand.NewSource(99))}
	priv, err := GenerateKeys(64, src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	pub := priv.Public()

	data := MarshalPublicKey(pub)
	got, err := UnmarshalPublicKey(data)
	if err != nil {
		t.Fatalf("UnmarshalPublicKey: %v", err)
	}
	if got.P.Cmp(pub.P) != 0 || got.Q.Cmp(pub.Q) != 0 || got.G.Cmp(pub.G) != 0 || got.Y.Cmp(pub.Y) != 0 {
		t.Fatalf("round-tripped public key does not match original")
	}
}

func TestMarshalUnmarshalPrivateKey(t *testing.T) {
	src := &seededSource{r: rand.New(rand.NewSource(123))}
	priv, err := GenerateKeys(64, src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}

	data := MarshalPrivateKey(priv)
	got, err := UnmarshalPrivateKey(data)
	if err != nil {
		t.Fatalf("UnmarshalPrivateKey: %v", err)
	}
	if got.X.Cmp(priv.X) != 0 || got.Y.Cmp(priv.Y) != 0 {
		t.Fatalf("round-tripped private key does not match original")
	}
}

func TestUnmarshalPublicKeyBadMagic(t *testing.T) {
	bad := []byte{0, 64, 0, 0, 0, 0}
	if _, err := UnmarshalPublicKey(bad); err == nil {
		t.Fatalf("expected BadMagic error")
	}
}

var _ bigint.RandomSource = (*seededSource)(nil)
