package block

import "testing"

func TestTripleDESRoundTrip(t *testing.T) {
	key := HashedKey192([]byte("a passphrase"))
	enc, err := NewTripleDES(key[:])
	if err != nil {
		t.Fatalf("NewTripleDES: %v", err)
	}
	dec, err := NewTripleDESDecrypt(key[:])
	if err != nil {
		t.Fatalf("NewTripleDESDecrypt: %v", err)
	}

	plain := []byte("12345678")
	cipher := make([]byte, TripleDESBlockSize)
	if err := enc.ProcessBlock(plain, cipher); err != nil {
		t.Fatalf("ProcessBlock encrypt: %v", err)
	}
	if string(cipher) == string(plain) {
		t.Fatalf("ciphertext should differ from plaintext")
	}

	recovered := make([]byte, TripleDESBlockSize)
	if err := dec.ProcessBlock(cipher, recovered); err != nil {
		t.Fatalf("ProcessBlock decrypt: %v", err)
	}
	if string(recovered) != string(plain) {
		t.Fatalf("recovered %q, want %q", recovered, plain)
	}
}

func TestNullCipherPreservesFraming(t *testing.T) {
	c := NewNull()
	if c.BlockSizePlain() != TripleDESBlockSize || c.BlockSizeCipher() != TripleDESBlockSize {
		t.Fatalf("null cipher must report the real block size")
	}
	plain := []byte("abcdefgh")
	out := make([]byte, TripleDESBlockSize)
	if err := c.ProcessBlock(plain, out); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}
	if string(out) != string(plain) {
		t.Fatalf("null cipher must copy input unchanged, got %q want %q", out, plain)
	}
}

func TestHashedKey192Length(t *testing.T) {
	key := HashedKey192([]byte("abc"))
	if len(key) != 24 {
		t.Fatalf("HashedKey192 length = %d, want 24", len(key))
	}
}

func TestKeyReleaseZeroes(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	k := NewKey(raw)
	k.Release()
	for _, b := range raw {
		if b != 0 {
			t.Fatalf("key bytes not zeroed after Release: %v", raw)
		}
	}
}

func TestInvalidKeySize(t *testing.T) {
	if _, err := NewTripleDES([]byte("short")); err == nil {
		t.Fatalf("expected InvalidKeySize error")
	}
}
