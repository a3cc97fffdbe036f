package serialize

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// Sentinel errors for malformed or truncated wire data. Callers that need
// the module's richer error taxonomy wrap these with cryptoerr.Wrap.
var (
	ErrShortRead    = errors.New("serialize: short read")
	ErrShortWrite   = errors.New("serialize: short write")
	ErrStringTooBig = errors.New("serialize: string exceeds maximum length")
)

// maxStringLen bounds length-prefixed string and blob reads so a corrupt
// or hostile length field can't force an enormous allocation.
const maxStringLen = 1 << 28

// Writer accumulates primitive writes to an underlying io.Writer, matching
// the framing the typed serializer and file header use throughout.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w for primitive big-endian writes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered by any write on this Writer.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
		return
	}
	if n != len(p) {
		w.err = ErrShortWrite
	}
}

// WriteUint16 writes a 16-bit big-endian field.
func (w *Writer) WriteUint16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

// WriteUint32 writes a 32-bit big-endian field.
func (w *Writer) WriteUint32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// WriteUint64 writes a 64-bit big-endian field.
func (w *Writer) WriteUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// WriteInt16, WriteInt32, WriteInt64 write signed fields using the same
// big-endian two's-complement layout as their unsigned counterparts.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) { w.write([]byte{b}) }

// WriteBlob writes a raw byte slice with no length prefix; the caller is
// responsible for framing (used for fixed-size or already length-prefixed
// fields).
func (w *Writer) WriteBlob(b []byte) { w.write(b) }

// WriteLenBlob writes a 32-bit length prefix followed by the bytes.
func (w *Writer) WriteLenBlob(b []byte) {
	w.WriteUint32(uint32(len(b)))
	w.write(b)
}

// WriteString writes a length-prefixed narrow (UTF-8) string: a 32-bit
// byte length followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteLenBlob([]byte(s))
}

// WriteWString writes a length-prefixed wide string: a 32-bit code-unit
// count followed by big-endian UTF-16 code units.
func (w *Writer) WriteWString(s string) {
	units := utf16.Encode([]rune(s))
	w.WriteUint32(uint32(len(units)))
	for _, u := range units {
		w.WriteUint16(u)
	}
}

// Reader consumes primitive big-endian reads from an underlying io.Reader.
type Reader struct {
	r io.Reader
}

// NewReader wraps r for primitive big-endian reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return nil, err
	}
	return buf, nil
}

// ReadUint16 reads a 16-bit big-endian field.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint32 reads a 32-bit big-endian field.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.readFull(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadUint64 reads a 64-bit big-endian field.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.readFull(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// ReadInt16, ReadInt32, ReadInt64 read signed fields.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadByte reads a single byte, satisfying io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	buf, err := r.readFull(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadBlob reads exactly n raw bytes.
func (r *Reader) ReadBlob(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("serialize: negative blob length %d", n)
	}
	return r.readFull(n)
}

// ReadLenBlob reads a 32-bit length prefix followed by that many bytes.
func (r *Reader) ReadLenBlob() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > maxStringLen {
		return nil, ErrStringTooBig
	}
	return r.readFull(int(n))
}

// ReadString reads a length-prefixed narrow (UTF-8) string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadLenBlob()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadWString reads a length-prefixed wide string of big-endian UTF-16
// code units.
func (r *Reader) ReadWString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", ErrStringTooBig
	}
	units := make([]uint16, n)
	for i := range units {
		u, err := r.ReadUint16()
		if err != nil {
			return "", err
		}
		units[i] = u
	}
	return string(utf16.Decode(units)), nil
}
