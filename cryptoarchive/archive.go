package cryptoarchive

import (
	"io"

	"github.com/veriscan/cryptocore/bytearchive"
	"github.com/veriscan/cryptocore/cryptoerr"
)

// CryptoArchive couples an underlying byte archive with a ChunkCodec
// via a compression filter and padded block framing, implementing
// spec §4.10's state machine and presenting the same byte-archive
// contract (Read/Write/EndOfFile) to the layer above.
type CryptoArchive struct {
	archive bytearchive.Sequential
	codec   ChunkCodec
	state   State

	// write path
	plainQueue *bytearchive.ByteQueue
	comp       *compressor

	// read path
	decomp          *decompressor
	inflated        *bytearchive.ByteQueue
	sourceExhausted bool
}

// New wraps archive with codec, ready for Start.
func New(archive bytearchive.Sequential, codec ChunkCodec) *CryptoArchive {
	return &CryptoArchive{archive: archive, codec: codec, state: Unstarted}
}

// Start (re)enters the UNKNOWN state, ready for either a write or a
// read sequence.
func (a *CryptoArchive) Start() error {
	if a.state != Unstarted && a.state != Finished {
		return ErrInvalidOperation
	}
	a.state = Unknown
	a.plainQueue = nil
	a.comp = nil
	a.decomp = nil
	a.inflated = nil
	a.sourceExhausted = false
	return nil
}

func (a *CryptoArchive) ensureWriting() error {
	switch a.state {
	case Unknown:
		a.state = Writing
		a.plainQueue = bytearchive.NewByteQueue()
		comp, err := newCompressor(a.plainQueue)
		if err != nil {
			return err
		}
		a.comp = comp
		return nil
	case Writing:
		return nil
	default:
		return ErrInvalidOperation
	}
}

func (a *CryptoArchive) ensureReading() error {
	switch a.state {
	case Unknown:
		a.state = Reading
		a.inflated = bytearchive.NewByteQueue()
		a.decomp = newDecompressor(a.archive, a.codec)
		return nil
	case Reading:
		return nil
	default:
		return ErrInvalidOperation
	}
}

// drainFullChunks pulls BlockSizePlain-sized chunks off the plain
// queue as long as enough compressed bytes have accumulated, encoding
// and writing each to the underlying archive.
func (a *CryptoArchive) drainFullChunks() error {
	plainSize := a.codec.BlockSizePlain()
	for a.plainQueue.CurrentSize() >= plainSize {
		chunk := make([]byte, plainSize)
		if err := a.plainQueue.GetBytes(chunk); err != nil {
			return err
		}
		cipherChunk, err := a.codec.EncodeChunk(chunk)
		if err != nil {
			return err
		}
		if err := a.archive.WriteBlob(cipherChunk); err != nil {
			return err
		}
	}
	return nil
}

// Write feeds plaintext bytes through the compressor and, once a full
// plaintext block has accumulated, through the codec to the archive.
func (a *CryptoArchive) Write(p []byte) (int, error) {
	if err := a.ensureWriting(); err != nil {
		return 0, err
	}
	if err := a.comp.Write(p); err != nil {
		return 0, err
	}
	if err := a.drainFullChunks(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finish flushes the compressor, drains any remaining full chunks, and
// pads the final short chunk (if any) with random bytes before
// encoding and writing it, per spec §4.10. On an archive that is
// reading, or that has seen neither a read nor a write since Start,
// Finish only moves it to Finished.
func (a *CryptoArchive) Finish() error {
	if a.state != Writing {
		if a.state == Unknown || a.state == Reading {
			// Nothing to flush; no bytes go to the underlying archive.
			a.state = Finished
			return nil
		}
		return ErrInvalidOperation
	}

	if err := a.comp.Finish(); err != nil {
		return err
	}
	if err := a.drainFullChunks(); err != nil {
		return err
	}

	if remaining := a.plainQueue.CurrentSize(); remaining > 0 {
		plainSize := a.codec.BlockSizePlain()
		chunk := make([]byte, plainSize)
		if err := a.plainQueue.GetBytes(chunk[:remaining]); err != nil {
			return err
		}
		if _, err := randomFill(chunk[remaining:]); err != nil {
			return err
		}
		cipherChunk, err := a.codec.EncodeChunk(chunk)
		if err != nil {
			return err
		}
		if err := a.archive.WriteBlob(cipherChunk); err != nil {
			return err
		}
	}

	a.state = Finished
	return nil
}

// Read pulls decompressed plaintext bytes, decrypting and inflating
// additional cipher chunks from the archive as needed to satisfy the
// request.
func (a *CryptoArchive) Read(dst []byte) (int, error) {
	if err := a.ensureReading(); err != nil {
		return 0, err
	}

	for a.inflated.CurrentSize() < len(dst) && !a.sourceExhausted {
		tmp := make([]byte, 4096)
		n, err := a.decomp.Read(tmp)
		if n > 0 {
			a.inflated.PutBytes(tmp[:n])
		}
		if err == io.EOF {
			a.sourceExhausted = true
			break
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
	}

	avail := a.inflated.CurrentSize()
	if avail == 0 {
		return 0, nil
	}
	if avail > len(dst) {
		avail = len(dst)
	}
	buf := make([]byte, avail)
	if err := a.inflated.GetBytes(buf); err != nil {
		return 0, err
	}
	copy(dst, buf)
	return avail, nil
}

// ReadBlob fully satisfies a read of exactly len(dst) bytes or returns
// cryptoerr.EndOfFile.
func (a *CryptoArchive) ReadBlob(dst []byte) error {
	total := 0
	for total < len(dst) {
		n, err := a.Read(dst[total:])
		if n > 0 {
			total += n
			continue
		}
		if err != nil {
			return err
		}
		if a.EndOfFile() {
			return cryptoerr.EndOfFile()
		}
	}
	return nil
}

// WriteBlob is an alias for Write kept for Sequential parity.
func (a *CryptoArchive) WriteBlob(src []byte) error {
	_, err := a.Write(src)
	return err
}

// EndOfFile reports true when the inflated queue has zero retrievable
// bytes and the underlying source is exhausted.
func (a *CryptoArchive) EndOfFile() bool {
	if a.state != Reading {
		return true
	}
	return a.inflated.CurrentSize() == 0 && a.sourceExhausted
}

// Close releases the underlying archive.
func (a *CryptoArchive) Close() error { return a.archive.Close() }

// State returns the archive's current lifecycle state.
func (a *CryptoArchive) State() State { return a.state }
