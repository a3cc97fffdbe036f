package bytearchive

import "github.com/veriscan/cryptocore/cryptoerr"

// SeekFrom selects the reference point a Seek offset is relative to.
type SeekFrom int

const (
	Begin SeekFrom = iota
	Current
	End
)

// Sequential is the minimal byte-stream contract: read, write, and an
// end-of-file test. ReadBlob/WriteBlob must fully satisfy the request
// or return an error (EndOfFile for a short read, WriteFailed for a
// short write).
type Sequential interface {
	// Read copies up to len(dst) bytes into dst and returns the count
	// actually read; it is not an error for that count to be less than
	// len(dst).
	Read(dst []byte) (int, error)
	// Write writes all of src, satisfying io.Writer.
	Write(src []byte) (int, error)
	// ReadBlob fully satisfies a read of exactly len(dst) bytes or
	// returns an error (typically cryptoerr.EndOfFile).
	ReadBlob(dst []byte) error
	// WriteBlob is an alias for Write kept for symmetry with ReadBlob;
	// like Write it either writes all of src or returns an error.
	WriteBlob(src []byte) error
	// EndOfFile reports whether the archive has no more bytes to read
	// at the current position.
	EndOfFile() bool
	// Close releases any underlying resource.
	Close() error
}

// Bidirectional adds random access to Sequential.
type Bidirectional interface {
	Sequential
	// Seek repositions the read/write cursor and returns the new
	// absolute offset.
	Seek(offset int64, from SeekFrom) (int64, error)
	// CurrentPos returns the current cursor offset.
	CurrentPos() (int64, error)
	// Length returns the total byte length of the archive.
	Length() (int64, error)
	// MapArchive returns a read-only view of length bytes starting at
	// offset, which must already exist in the archive (offset+length
	// <= Length()).
	MapArchive(offset, length int64) ([]byte, error)
}

// ErrOutOfBounds is returned by MapArchive when the requested window
// falls outside the archive's current extent, by MemoryArchive.Seek when
// the target offset is negative (seeking past the end is allowed), and
// by ByteQueue.Peek for an index past the queued bytes.
var ErrOutOfBounds = cryptoerr.New(cryptoerr.KindInvalidArgument, "offset or length out of bounds", nil, 0)

// ErrReadOnly is returned on an attempted write to a read-only archive.
var ErrReadOnly = cryptoerr.New(cryptoerr.KindWriteFailed, "archive is opened read-only", nil, 0)
