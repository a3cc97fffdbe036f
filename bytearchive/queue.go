package bytearchive

import "github.com/veriscan/cryptocore/cryptoerr"

// queueNodeSize is the default fixed segment size spec §4.2 names,
// chosen to keep the node chain short for operator[] access.
const queueNodeSize = 1024

// queueNode is a fixed-size ring segment: bytes are consumed from head
// and appended at tail, wrapping within buf.
type queueNode struct {
	buf        [queueNodeSize]byte
	head, tail int // [head, tail) is the valid region; tail never wraps past head
	count      int
	next       *queueNode
}

func (n *queueNode) free() int { return queueNodeSize - n.count }

func (n *queueNode) put(b byte) bool {
	if n.free() == 0 {
		return false
	}
	n.buf[n.tail] = b
	n.tail = (n.tail + 1) % queueNodeSize
	n.count++
	return true
}

func (n *queueNode) get() (byte, bool) {
	if n.count == 0 {
		return 0, false
	}
	b := n.buf[n.head]
	n.head = (n.head + 1) % queueNodeSize
	n.count--
	return b, true
}

func (n *queueNode) peekAt(i int) byte {
	return n.buf[(n.head+i)%queueNodeSize]
}

// ByteQueue is an unbounded FIFO of bytes, chained from fixed-size ring
// segments into a singly-linked list, giving amortized O(1) Put/Get and
// O(node-count) random access.
type ByteQueue struct {
	head, tail *queueNode
	size       int
}

// NewByteQueue returns an empty queue.
func NewByteQueue() *ByteQueue {
	n := &queueNode{}
	return &ByteQueue{head: n, tail: n}
}

// CurrentSize returns the number of bytes currently queued.
func (q *ByteQueue) CurrentSize() int { return q.size }

// Put appends a single byte.
func (q *ByteQueue) Put(b byte) {
	if !q.tail.put(b) {
		n := &queueNode{}
		q.tail.next = n
		q.tail = n
		q.tail.put(b)
	}
	q.size++
}

// PutBytes appends all of p.
func (q *ByteQueue) PutBytes(p []byte) {
	for _, b := range p {
		q.Put(b)
	}
}

// Get removes and returns the oldest byte, or an error if the queue is
// empty.
func (q *ByteQueue) Get() (byte, error) {
	for q.head.count == 0 {
		if q.head.next == nil {
			return 0, cryptoerr.EndOfFile()
		}
		q.head = q.head.next
	}
	b, _ := q.head.get()
	q.size--
	return b, nil
}

// GetBytes fills dst entirely from the queue or returns an error
// without consuming any bytes if the queue holds fewer than len(dst).
func (q *ByteQueue) GetBytes(dst []byte) error {
	if len(dst) > q.size {
		return cryptoerr.EndOfFile()
	}
	for i := range dst {
		b, err := q.Get()
		if err != nil {
			return err
		}
		dst[i] = b
	}
	return nil
}

// Peek returns the byte at index i (0 = oldest) without removing it.
func (q *ByteQueue) Peek(i int) (byte, error) {
	if i < 0 || i >= q.size {
		return 0, ErrOutOfBounds
	}
	n := q.head
	for n.count == 0 {
		n = n.next
	}
	idx := i
	for idx >= n.count {
		idx -= n.count
		n = n.next
	}
	return n.peekAt(idx), nil
}

// At is the random-access operator[]; it panics if i is out of range,
// matching the reference's asserting operator[].
func (q *ByteQueue) At(i int) byte {
	b, err := q.Peek(i)
	if err != nil {
		panic(err)
	}
	return b
}

// MaxRetrievable is an alias for CurrentSize kept for parity with the
// reference's naming.
func (q *ByteQueue) MaxRetrievable() int { return q.size }

// Skip discards the first n bytes.
func (q *ByteQueue) Skip(n int) error {
	if n > q.size {
		return cryptoerr.EndOfFile()
	}
	for i := 0; i < n; i++ {
		if _, err := q.Get(); err != nil {
			return err
		}
	}
	return nil
}

// CopyTo drains the entire queue into dst, which must have length >=
// CurrentSize().
func (q *ByteQueue) CopyTo(dst []byte) error {
	return q.GetBytes(dst[:q.size])
}

// Clone performs a deep copy of the queue's node chain.
func (q *ByteQueue) Clone() *ByteQueue {
	c := NewByteQueue()
	for n := q.head; n != nil; n = n.next {
		for i := 0; i < n.count; i++ {
			c.Put(n.peekAt(i))
		}
	}
	return c
}
