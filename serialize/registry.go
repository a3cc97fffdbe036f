package serialize

import (
	"bytes"
	"fmt"
	"sync"
)

// Encodable is implemented by every object that can travel through the
// typed serializer: an object database record, a report, a policy, a
// configuration, or (within this core) the error queue bucket.
type Encodable interface {
	// ClassID returns the stable, registered class identifier, e.g.
	// "cErrorQueue". Identifiers are stable across versions.
	ClassID() string

	// WriteVersion returns the format version this instance writes.
	WriteVersion() uint16

	// MarshalBody writes the object's body (without the class-id/version
	// preamble, which the Serializer writes).
	MarshalBody(w *Writer) error

	// UnmarshalBody reads the object's body written at the given
	// version. version is always <= the registered write-version for
	// this class (the Serializer enforces that before calling in).
	UnmarshalBody(r *Reader, version uint16) error
}

// Factory constructs a zero-value instance of a registered class ready
// to have UnmarshalBody called on it.
type Factory func() Encodable

// ClassInfo is the registry entry for one class identifier.
type ClassInfo struct {
	WriteVersion  uint16
	ReadMinVersion uint16
	New           Factory
}

// Registry maps stable class-id strings to their version contract and
// factory. The zero value is ready to use; DefaultRegistry is shared by
// callers that don't need an isolated registry.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]ClassInfo
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]ClassInfo)}
}

// DefaultRegistry is the process-wide registry populated by package
// registration (e.g. cryptoerr's init registers "cErrorQueue" here).
var DefaultRegistry = NewRegistry()

// Register adds or replaces a class-id's version contract and factory.
func (r *Registry) Register(classID string, writeVersion, readMinVersion uint16, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.classes == nil {
		r.classes = make(map[string]ClassInfo)
	}
	r.classes[classID] = ClassInfo{WriteVersion: writeVersion, ReadMinVersion: readMinVersion, New: f}
}

// Lookup returns the registered ClassInfo for classID.
func (r *Registry) Lookup(classID string) (ClassInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ci, ok := r.classes[classID]
	return ci, ok
}

// ErrVersionMismatch is returned when a persisted object's version is
// newer than this build knows how to read.
type ErrVersionMismatch struct {
	ClassID string
	Written uint16
	Known   uint16
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("serialize: class %q version %d is newer than this build's %d", e.ClassID, e.Written, e.Known)
}

// ErrUnknownClass is returned when a class-id has no registry entry.
type ErrUnknownClass struct {
	ClassID string
}

func (e *ErrUnknownClass) Error() string {
	return fmt.Sprintf("serialize: unknown class %q", e.ClassID)
}

// Serializer reads and writes Encodable objects framed with their class
// id, write version, and a length-delimited body, against a Registry.
type Serializer struct {
	reg *Registry
}

// NewSerializer binds a Serializer to reg. A nil reg uses DefaultRegistry.
func NewSerializer(reg *Registry) *Serializer {
	if reg == nil {
		reg = DefaultRegistry
	}
	return &Serializer{reg: reg}
}

// WriteObject writes class-id || write-version || length-prefixed body.
func (s *Serializer) WriteObject(w *Writer, obj Encodable) error {
	var buf bytes.Buffer
	body := NewWriter(&buf)
	if err := obj.MarshalBody(body); err != nil {
		return err
	}
	if body.Err() != nil {
		return body.Err()
	}

	w.WriteString(obj.ClassID())
	w.WriteUint16(obj.WriteVersion())
	w.WriteLenBlob(buf.Bytes())
	return w.Err()
}

// ReadObject reads a class-id, version, and length-delimited body, looks
// up the class in the registry, and dispatches to its UnmarshalBody.
func (s *Serializer) ReadObject(r *Reader) (Encodable, error) {
	classID, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	version, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	body, err := r.ReadLenBlob()
	if err != nil {
		return nil, err
	}

	ci, ok := s.reg.Lookup(classID)
	if !ok {
		return nil, &ErrUnknownClass{ClassID: classID}
	}
	if version > ci.WriteVersion {
		return nil, &ErrVersionMismatch{ClassID: classID, Written: version, Known: ci.WriteVersion}
	}

	obj := ci.New()
	bodyReader := NewReader(bytes.NewReader(body))
	if err := obj.UnmarshalBody(bodyReader, version); err != nil {
		return nil, err
	}
	return obj, nil
}
