package cryptoarchive

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/veriscan/cryptocore/bytearchive"
	"github.com/veriscan/cryptocore/cryptoerr"
)

// DefaultCompressionLevel matches flate's default trade-off; spec
// §4.8 leaves window size and compression level as build-time
// parameters, and this module fixes them to flate's own sane default
// rather than exposing a tuning knob nothing in this core needs.
const DefaultCompressionLevel = flate.DefaultCompression

// queueWriter adapts a bytearchive.ByteQueue to io.Writer so a flate
// Writer can deposit compressed bytes directly into the queue that
// batches them into cipher-block-sized chunks.
type queueWriter struct{ q *bytearchive.ByteQueue }

func (w queueWriter) Write(p []byte) (int, error) {
	w.q.PutBytes(p)
	return len(p), nil
}

// compressor wraps a flate.Writer, depositing compressed output into a
// ByteQueue as it is produced.
type compressor struct {
	fw   *flate.Writer
	sink *bytearchive.ByteQueue
}

func newCompressor(sink *bytearchive.ByteQueue) (*compressor, error) {
	fw, err := flate.NewWriter(queueWriter{sink}, DefaultCompressionLevel)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInternalError, "construct compressor", err)
	}
	return &compressor{fw: fw, sink: sink}, nil
}

// Write feeds plaintext bytes into the compressor; compressed bytes
// accumulate into the sink as the flate writer's internal buffers
// fill, not necessarily one-for-one with this call.
func (c *compressor) Write(p []byte) error {
	if _, err := c.fw.Write(p); err != nil {
		return cryptoerr.Wrap(cryptoerr.KindInternalError, "compress", err)
	}
	return nil
}

// Finish flushes the final deflate block (InputFinished, per spec
// §4.8) into the sink.
func (c *compressor) Finish() error {
	if err := c.fw.Close(); err != nil {
		return cryptoerr.Wrap(cryptoerr.KindInternalError, "finish compression", err)
	}
	return nil
}

// chunkFeeder presents the decrypted plaintext-of-ciphertext stream
// (i.e. the compressed deflate bytes) as an io.Reader, pulling one
// cipher chunk at a time from the underlying archive via codec and
// decoding it, so a flate.Reader can consume it incrementally.
type chunkFeeder struct {
	archive bytearchive.Sequential
	codec   ChunkCodec
	buf     []byte
}

func (f *chunkFeeder) Read(p []byte) (int, error) {
	if len(f.buf) == 0 {
		if f.archive.EndOfFile() {
			return 0, io.EOF
		}
		cipherBuf := make([]byte, f.codec.BlockSizeCipher())
		if err := f.archive.ReadBlob(cipherBuf); err != nil {
			return 0, err
		}
		plain, err := f.codec.DecodeChunk(cipherBuf)
		if err != nil {
			return 0, err
		}
		f.buf = plain
	}
	n := copy(p, f.buf)
	f.buf = f.buf[n:]
	return n, nil
}

// decompressor wraps a flate reader pulling compressed bytes from a
// chunkFeeder, producing the original plaintext.
type decompressor struct {
	fr io.ReadCloser
}

func newDecompressor(archive bytearchive.Sequential, codec ChunkCodec) *decompressor {
	feeder := &chunkFeeder{archive: archive, codec: codec}
	return &decompressor{fr: flate.NewReader(feeder)}
}

// Read pulls inflated plaintext bytes. It returns io.EOF once the
// underlying chunk feeder and deflate stream are both exhausted.
func (d *decompressor) Read(p []byte) (int, error) {
	n, err := d.fr.Read(p)
	if err != nil && err != io.EOF {
		return n, cryptoerr.Wrap(cryptoerr.KindInternalError, "decompress", err)
	}
	return n, err
}
