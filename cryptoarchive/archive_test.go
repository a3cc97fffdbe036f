package cryptoarchive

import (
	"bytes"
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/bytearchive"
	"github.com/veriscan/cryptocore/elgamal"
)

type seededSource struct{ r *mathrand.Rand }

func (s *seededSource) ReadRandom(buf []byte) error {
	_, err := s.r.Read(buf)
	return err
}

var _ bigint.RandomSource = (*seededSource)(nil)

// TestNullCipherLargeRoundTrip is spec §8 scenario 5: write 32*1024
// copies of a 7-byte random chunk (~224KiB) through the null crypto
// archive, then read it back in 1023*7-byte strides, each matching the
// source.
func TestNullCipherLargeRoundTrip(t *testing.T) {
	chunk := make([]byte, 7)
	if _, err := rand.Read(chunk); err != nil {
		t.Fatalf("seed chunk: %v", err)
	}

	backing := bytearchive.NewMemoryArchive()
	writer := NewNullArchive(backing)
	if err := writer.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 32*1024; i++ {
		if _, err := writer.Write(chunk); err != nil {
			t.Fatalf("Write[%d]: %v", i, err)
		}
	}
	if err := writer.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	reader := NewNullArchive(backing)
	if _, err := backing.Seek(0, bytearchive.Begin); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if err := reader.Start(); err != nil {
		t.Fatalf("Start (read): %v", err)
	}

	stride := make([]byte, 7*1023)
	total := 0
	for {
		n, err := reader.Read(stride)
		if n > 0 {
			for i := 0; i < n; i++ {
				want := chunk[(total+i)%7]
				if stride[i] != want {
					t.Fatalf("byte mismatch at overall offset %d: got %x want %x", total+i, stride[i], want)
				}
			}
			total += n
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if n == 0 {
			if reader.EndOfFile() {
				break
			}
		}
	}
	if total != 32*1024*7 {
		t.Fatalf("total bytes read = %d, want %d", total, 32*1024*7)
	}
}

func TestSymmetricArchiveRoundTrip(t *testing.T) {
	key := make([]byte, 24)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	backing := bytearchive.NewMemoryArchive()
	writer, err := NewSymmetricArchive(backing, key)
	if err != nil {
		t.Fatalf("NewSymmetricArchive: %v", err)
	}
	if err := writer.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	payload := []byte("a modest payload that spans more than one plaintext chunk boundary, repeated. ")
	for i := 0; i < 200; i++ {
		if _, err := writer.Write(payload); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := writer.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if _, err := backing.Seek(0, bytearchive.Begin); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader, err := NewSymmetricArchive(backing, key)
	if err != nil {
		t.Fatalf("NewSymmetricArchive (read): %v", err)
	}
	if err := reader.Start(); err != nil {
		t.Fatalf("Start (read): %v", err)
	}

	var got bytes.Buffer
	buf := make([]byte, 512)
	for {
		n, err := reader.Read(buf)
		got.Write(buf[:n])
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if n == 0 && reader.EndOfFile() {
			break
		}
	}

	want := bytes.Repeat(payload, 200)
	if !bytes.Equal(got.Bytes(), want) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", got.Len(), len(want))
	}
}

func TestSigningArchiveMismatchAborts(t *testing.T) {
	src := &seededSource{r: mathrand.New(mathrand.NewSource(5))}
	priv, err := elgamal.GenerateKeys(64, src)
	if err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	pub := priv.Public()

	backing := bytearchive.NewMemoryArchive()
	writer := NewSigningArchive(backing, priv, pub, src)
	if err := writer.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	payload := bytes.Repeat([]byte("x"), signingPlainSize*2)
	if _, err := writer.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	// Corrupt one byte of the first signed chunk's signature region.
	raw := backing.Bytes()
	raw[len(raw)-1] ^= 0xFF

	reader := NewSigningArchive(backing, nil, pub, src)
	if _, err := backing.Seek(0, bytearchive.Begin); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if err := reader.Start(); err != nil {
		t.Fatalf("Start (read): %v", err)
	}

	buf := make([]byte, 4096)
	var sawFailure bool
	for i := 0; i < 10; i++ {
		_, err := reader.Read(buf)
		if err != nil {
			sawFailure = true
			break
		}
	}
	if !sawFailure {
		t.Fatalf("expected a CryptoFailure on reading a tampered signed archive")
	}
}
