package cryptoerr

import (
	"sync"

	"github.com/veriscan/cryptocore/serialize"
)

// queueClassID is the stable, versioned identifier this bucket registers
// itself under with the typed serializer, so an accumulated error queue
// can travel inside a report the way spec §4.13 describes.
const queueClassID = "cErrorQueue"
const queueWriteVersion = 1
const queueReadMinVersion = 1

func init() {
	serialize.DefaultRegistry.Register(queueClassID, queueWriteVersion, queueReadMinVersion, func() serialize.Encodable {
		return &Queue{}
	})
}

// Queue accumulates errors into a list instead of acting on them
// immediately; it is the bucket a report or database writer attaches so
// every error raised during a run travels with the artifact.
type Queue struct {
	chain
	mu     sync.Mutex
	errors []*Error
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue { return &Queue{} }

func (q *Queue) HandleError(e *Error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errors = append(q.errors, e)
}

func (q *Queue) AddError(e *Error) { addErrorVia(q, q.child, e) }

// Errors returns a snapshot of the accumulated errors in insertion order.
func (q *Queue) Errors() []*Error {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Error, len(q.errors))
	copy(out, q.errors)
	return out
}

// Len returns the number of accumulated errors.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errors)
}

// ClassID implements serialize.Encodable.
func (q *Queue) ClassID() string { return queueClassID }

// WriteVersion implements serialize.Encodable.
func (q *Queue) WriteVersion() uint16 { return queueWriteVersion }

// MarshalBody writes each accumulated error as id, kind, msg, flags.
func (q *Queue) MarshalBody(w *serialize.Writer) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	w.WriteUint32(uint32(len(q.errors)))
	for _, e := range q.errors {
		w.WriteUint32(e.ID)
		w.WriteString(string(e.Kind))
		w.WriteString(e.Msg)
		w.WriteUint32(uint32(e.Flags))
	}
	return w.Err()
}

// UnmarshalBody reads back a queue written by MarshalBody. The wrapped
// cause (Err) of each reconstructed Error is always nil, since the
// underlying Go error value is not itself serializable; the ID, kind,
// message and flags are restored exactly as written.
func (q *Queue) UnmarshalBody(r *serialize.Reader, version uint16) error {
	count, err := r.ReadUint32()
	if err != nil {
		return err
	}
	errs := make([]*Error, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return err
		}
		kind, err := r.ReadString()
		if err != nil {
			return err
		}
		msg, err := r.ReadString()
		if err != nil {
			return err
		}
		flags, err := r.ReadUint32()
		if err != nil {
			return err
		}
		errs = append(errs, &Error{ID: id, Kind: Kind(kind), Msg: msg, Flags: Flags(flags)})
	}
	q.mu.Lock()
	q.errors = errs
	q.mu.Unlock()
	return nil
}
