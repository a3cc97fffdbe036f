package bytearchive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/veriscan/cryptocore/serialize"
)

func writeScenario1(t *testing.T, w *serialize.Writer) {
	t.Helper()
	w.WriteInt32(1)
	w.WriteInt32(2)
	w.WriteInt32(3)
	w.WriteInt32(4)
	w.WriteString("Iridogorgia")
	w.WriteInt64(1234567)
	w.WriteInt16(42)
	if w.Err() != nil {
		t.Fatalf("write: %v", w.Err())
	}
}

func readScenario1(t *testing.T, r *serialize.Reader) {
	t.Helper()
	for i, want := range []int32{1, 2, 3, 4} {
		got, err := r.ReadInt32()
		if err != nil {
			t.Fatalf("ReadInt32[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("ReadInt32[%d] = %d, want %d", i, got, want)
		}
	}
	s, err := r.ReadString()
	if err != nil || s != "Iridogorgia" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
	n64, err := r.ReadInt64()
	if err != nil || n64 != 1234567 {
		t.Fatalf("ReadInt64 = %d, %v", n64, err)
	}
	n16, err := r.ReadInt16()
	if err != nil || n16 != 42 {
		t.Fatalf("ReadInt16 = %d, %v", n16, err)
	}
	if _, err := r.ReadInt32(); err == nil {
		t.Fatalf("expected error reading past end of archive")
	}
}

func TestMemoryArchiveRoundTrip(t *testing.T) {
	m := NewMemoryArchive()
	writeScenario1(t, serialize.NewWriter(m))

	if _, err := m.Seek(0, Begin); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	readScenario1(t, serialize.NewReader(m))
}

func TestFileArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.bin")

	fa, err := Open(path, Read|Write|Create|Truncate)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	w := serialize.NewWriter(fa)
	w.WriteInt32(1)
	w.WriteInt32(2)
	w.WriteInt32(3)
	w.WriteInt32(4)
	w.WriteString("Acanthogorgia")
	w.WriteInt64(1234567)
	w.WriteInt16(42)
	if w.Err() != nil {
		t.Fatalf("write: %v", w.Err())
	}
	if err := fa.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fa2, err := Open(path, Read)
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	defer fa2.Close()

	r := serialize.NewReader(fa2)
	for i, want := range []int32{1, 2, 3, 4} {
		got, err := r.ReadInt32()
		if err != nil || got != want {
			t.Fatalf("ReadInt32[%d] = %d, %v; want %d", i, got, err, want)
		}
	}
	s, err := r.ReadString()
	if err != nil || s != "Acanthogorgia" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
}

func TestFileArchiveExclusiveFailsIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exists.bin")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := Open(path, Read|Write|Exclusive); err == nil {
		t.Fatalf("expected Open to fail for an existing file under Exclusive")
	}
}

func TestFileArchiveLockedTempIsRemoved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.bin")

	fa, err := Open(path, Read|Write|LockedTemp)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := fa.Write([]byte("scratch data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("locked-temp file should be unlinked immediately after open")
	}
	if err := fa.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestMemoryArchiveMapArchive(t *testing.T) {
	m := NewMemoryArchiveFromBytes([]byte("0123456789"))
	window, err := m.MapArchive(2, 4)
	if err != nil {
		t.Fatalf("MapArchive: %v", err)
	}
	if !bytes.Equal(window, []byte("2345")) {
		t.Fatalf("MapArchive = %q, want %q", window, "2345")
	}
	if _, err := m.MapArchive(8, 10); err == nil {
		t.Fatalf("expected out-of-bounds error")
	}
}
