package sha1sum

import (
	"encoding/hex"
	"testing"
)

func TestEmptyStringVector(t *testing.T) {
	got := Sum1(nil)
	want := "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("SHA1(\"\") = %x, want %s", got, want)
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	oneShot := Sum1(data)

	h := New()
	h.Update(data[:10])
	h.Update(data[10:])
	incremental := h.Final()

	if oneShot != incremental {
		t.Fatalf("incremental digest %x != one-shot digest %x", incremental, oneShot)
	}
}

func TestFinalResetsState(t *testing.T) {
	h := New()
	h.Update([]byte("abc"))
	first := h.Final()

	second := h.Final()
	want := Sum1(nil)
	if second != want {
		t.Fatalf("digest after reset = %x, want empty-input digest %x", second, want)
	}
	_ = first
}
