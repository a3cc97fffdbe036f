// Package bytearchive implements the byte-addressable archive
// abstraction every persisted artifact is ultimately written through:
// a sequential contract (Read/Write/EndOfFile), a bidirectional
// contract adding Seek/CurrentPos/Length/MapArchive, and two concrete
// flavors — an in-memory buffer and a POSIX file, the latter including
// a locked-temporary mode that unlinks its backing file immediately
// after opening (via golang.org/x/sys/unix) so its bytes are never
// visible to another process. It also implements the unbounded
// byte-queue FIFO the streaming pipeline stages glue together with.
package bytearchive
