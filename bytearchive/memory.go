package bytearchive

import (
	"io"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// MemoryArchive is a Bidirectional archive backed by a contiguous,
// growable in-memory buffer. MapArchive returns a slice aliasing the
// buffer directly.
type MemoryArchive struct {
	buf    []byte
	pos    int64
	closed bool
}

// NewMemoryArchive returns an empty, writable memory archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

// NewMemoryArchiveFromBytes returns a memory archive pre-populated with
// a copy of data, cursor at position 0.
func NewMemoryArchiveFromBytes(data []byte) *MemoryArchive {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemoryArchive{buf: buf}
}

// Bytes returns the archive's current contents. The returned slice
// aliases the archive's storage.
func (m *MemoryArchive) Bytes() []byte { return m.buf }

// Read copies up to len(dst) bytes from the cursor. Once the cursor is
// at or past the end of the buffer it returns 0, io.EOF.
func (m *MemoryArchive) Read(dst []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(dst, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemoryArchive) ReadBlob(dst []byte) error {
	n, _ := m.Read(dst)
	if n != len(dst) {
		return cryptoerr.EndOfFile()
	}
	return nil
}

func (m *MemoryArchive) Write(src []byte) (int, error) {
	end := m.pos + int64(len(src))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], src)
	m.pos = end
	return len(src), nil
}

func (m *MemoryArchive) WriteBlob(src []byte) error {
	_, err := m.Write(src)
	return err
}

func (m *MemoryArchive) EndOfFile() bool {
	return m.pos >= int64(len(m.buf))
}

func (m *MemoryArchive) Close() error {
	m.closed = true
	return nil
}

func (m *MemoryArchive) Seek(offset int64, from SeekFrom) (int64, error) {
	var base int64
	switch from {
	case Begin:
		base = 0
	case Current:
		base = m.pos
	case End:
		base = int64(len(m.buf))
	}
	target := base + offset
	if target < 0 {
		return 0, ErrOutOfBounds
	}
	m.pos = target
	return m.pos, nil
}

func (m *MemoryArchive) CurrentPos() (int64, error) { return m.pos, nil }

func (m *MemoryArchive) Length() (int64, error) { return int64(len(m.buf)), nil }

func (m *MemoryArchive) MapArchive(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(m.buf)) {
		return nil, ErrOutOfBounds
	}
	return m.buf[offset : offset+length], nil
}

var _ Bidirectional = (*MemoryArchive)(nil)
