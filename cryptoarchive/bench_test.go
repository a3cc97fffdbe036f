package cryptoarchive

import (
	"testing"

	"github.com/veriscan/cryptocore/bytearchive"
)

// BenchmarkNullArchiveWrite measures the compress+chunk pipeline's
// write-side throughput (spec §4.8/§4.10) absent any cipher cost, the
// baseline every encrypted façade pays on top of.
func BenchmarkNullArchiveWrite(b *testing.B) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backing := bytearchive.NewMemoryArchive()
		w := NewNullArchive(backing)
		if err := w.Start(); err != nil {
			b.Fatalf("Start: %v", err)
		}
		if _, err := w.Write(payload); err != nil {
			b.Fatalf("Write: %v", err)
		}
		if err := w.Finish(); err != nil {
			b.Fatalf("Finish: %v", err)
		}
	}
}

// BenchmarkNullArchiveReadWrite measures a full round trip through the
// null façade, exercising both the deflate and inflate sides of the
// pipeline in one pass.
func BenchmarkNullArchiveReadWrite(b *testing.B) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backing := bytearchive.NewMemoryArchive()
		w := NewNullArchive(backing)
		if err := w.Start(); err != nil {
			b.Fatalf("Start: %v", err)
		}
		if _, err := w.Write(payload); err != nil {
			b.Fatalf("Write: %v", err)
		}
		if err := w.Finish(); err != nil {
			b.Fatalf("Finish: %v", err)
		}

		if _, err := backing.Seek(0, bytearchive.Begin); err != nil {
			b.Fatalf("Seek: %v", err)
		}
		r := NewNullArchive(backing)
		if err := r.Start(); err != nil {
			b.Fatalf("Start (read): %v", err)
		}
		out := make([]byte, len(payload))
		total := 0
		for total < len(out) {
			n, err := r.Read(out[total:])
			total += n
			if err != nil {
				b.Fatalf("Read: %v", err)
			}
			if n == 0 && r.EndOfFile() {
				b.Fatalf("unexpected EOF at %d/%d bytes", total, len(out))
			}
		}
	}
}
